package seeders

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/bistro/app/models"
)

func init() {
	Register("menu", SeedMenu)
}

// SeedMenu inserts a starter menu. Skipped when the collection already
// has documents, so it is safe to run against a live database.
func SeedMenu(ctx context.Context, db *mongo.Database) error {
	col := db.Collection("menu")

	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := []interface{}{
		models.MenuItem{Name: "Margherita Pizza", Category: "pizza", Recipe: "San Marzano tomato, fior di latte, basil", Price: 12.50},
		models.MenuItem{Name: "Spaghetti Carbonara", Category: "pasta", Recipe: "Guanciale, pecorino, egg yolk", Price: 14.00},
		models.MenuItem{Name: "Caesar Salad", Category: "salad", Recipe: "Romaine, anchovy dressing, croutons", Price: 9.75},
		models.MenuItem{Name: "Tiramisu", Category: "dessert", Recipe: "Mascarpone, espresso-soaked savoiardi", Price: 7.25},
		models.MenuItem{Name: "Affogato", Category: "dessert", Recipe: "Vanilla gelato drowned in espresso", Price: 5.50},
		models.MenuItem{Name: "Lemonade", Category: "drinks", Recipe: "Fresh lemon, cane sugar, still water", Price: 3.90},
	}

	_, err = col.InsertMany(ctx, items)
	return err
}
