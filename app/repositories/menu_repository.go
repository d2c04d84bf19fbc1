package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/bistro/app/models"
)

// MenuRepository handles the menu collection.
type MenuRepository struct {
	col *mongo.Collection
}

func NewMenuRepository(col *mongo.Collection) *MenuRepository {
	return &MenuRepository{col: col}
}

// All returns the full menu.
func (r *MenuRepository) All(ctx context.Context) ([]models.MenuItem, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("menu: list: %w", err)
	}

	items := []models.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("menu: decode: %w", err)
	}
	return items, nil
}

// FindByID fetches one menu item. A miss returns (nil, nil).
func (r *MenuRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("menu: find: %w", err)
	}
	return &item, nil
}

// Insert adds a menu item and returns its id.
func (r *MenuRepository) Insert(ctx context.Context, item *models.MenuItem) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, item)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("menu: insert: %w", err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// Update overwrites the editable fields of a menu item.
func (r *MenuRepository) Update(ctx context.Context, id primitive.ObjectID, item *models.MenuItem) (int64, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":     item.Name,
			"category": item.Category,
			"recipe":   item.Recipe,
			"price":    item.Price,
			"image":    item.Image,
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("menu: update: %w", err)
	}
	return res.ModifiedCount, nil
}

// SetImage updates just the image URL of a menu item.
func (r *MenuRepository) SetImage(ctx context.Context, id primitive.ObjectID, url string) (int64, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"image": url}},
	)
	if err != nil {
		return 0, fmt.Errorf("menu: set image: %w", err)
	}
	return res.ModifiedCount, nil
}

// DeleteByID removes one menu item.
func (r *MenuRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("menu: delete: %w", err)
	}
	return res.DeletedCount, nil
}
