package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/bistro/app/models"
)

// CartRepository handles the carts collection.
type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(col *mongo.Collection) *CartRepository {
	return &CartRepository{col: col}
}

// Insert adds a cart item and returns its id.
func (r *CartRepository) Insert(ctx context.Context, item *models.CartItem) (primitive.ObjectID, error) {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	res, err := r.col.InsertOne(ctx, item)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("carts: insert: %w", err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// FindByEmail lists the cart items belonging to one user.
func (r *CartRepository) FindByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	cursor, err := r.col.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("carts: list: %w", err)
	}

	items := []models.CartItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("carts: decode: %w", err)
	}
	return items, nil
}

// DeleteByID removes one cart item.
func (r *CartRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("carts: delete: %w", err)
	}
	return res.DeletedCount, nil
}

// DeleteByIDs bulk-deletes the cart items referenced by a settled payment.
func (r *CartRepository) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("carts: bulk delete: %w", err)
	}
	return res.DeletedCount, nil
}

// DeleteOlderThan purges cart items created before cutoff. Used by the
// scheduled cleanup.
func (r *CartRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("carts: purge: %w", err)
	}
	return res.DeletedCount, nil
}
