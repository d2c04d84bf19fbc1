package graph

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

// Read-only query surface over the menu and reviews. Mutations stay on the
// REST routes where the auth gates live.

var menuType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MenuItem",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.ID},
		"name":     &graphql.Field{Type: graphql.String},
		"category": &graphql.Field{Type: graphql.String},
		"recipe":   &graphql.Field{Type: graphql.String},
		"price":    &graphql.Field{Type: graphql.Float},
		"image":    &graphql.Field{Type: graphql.String},
	},
})

var reviewType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Review",
	Fields: graphql.Fields{
		"id":      &graphql.Field{Type: graphql.ID},
		"name":    &graphql.Field{Type: graphql.String},
		"details": &graphql.Field{Type: graphql.String},
		"rating":  &graphql.Field{Type: graphql.Float},
	},
})

// NewSchema builds the query schema against the given repositories.
func NewSchema(menu *repositories.MenuRepository, reviews *repositories.ReviewRepository) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"menu": &graphql.Field{
				Type: graphql.NewList(menuType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					items, err := menu.All(p.Context)
					if err != nil {
						return nil, err
					}
					category, _ := p.Args["category"].(string)
					if category == "" {
						return toMenuMaps(items), nil
					}
					filtered := items[:0:0]
					for _, it := range items {
						if it.Category == category {
							filtered = append(filtered, it)
						}
					}
					return toMenuMaps(filtered), nil
				},
			},
			"reviews": &graphql.Field{
				Type: graphql.NewList(reviewType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					all, err := reviews.All(p.Context)
					if err != nil {
						return nil, err
					}
					out := make([]map[string]interface{}, 0, len(all))
					for _, rv := range all {
						out = append(out, map[string]interface{}{
							"id":      rv.ID.Hex(),
							"name":    rv.Name,
							"details": rv.Details,
							"rating":  rv.Rating,
						})
					}
					return out, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}

func toMenuMaps(items []models.MenuItem) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(items))
	for _, it := range items {
		out = append(out, map[string]interface{}{
			"id":       it.ID.Hex(),
			"name":     it.Name,
			"category": it.Category,
			"recipe":   it.Recipe,
			"price":    it.Price,
			"image":    it.Image,
		})
	}
	return out
}

// Handler serves POSTed GraphQL queries against schema.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.Error(w, http.StatusBadRequest, "malformed request body")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}
