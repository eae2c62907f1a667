package orderRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sokoni/database/repository"
	"sokoni/domain"
	"sokoni/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.orders.FindOne(ctx, bson.M{"id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *mongoOrderRepo) UpdateStatusCAS(ctx context.Context, id string, from, to domain.OrderStatus, extra bson.M) error {
	set := bson.M{
		"status":     to,
		"updated_at": time.Now(),
	}
	for k, v := range extra {
		set[k] = v
	}

	res, err := r.orders.UpdateOne(ctx,
		bson.M{"id": id, "status": from},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrStaleStatus
	}
	return nil
}

func (r *mongoOrderRepo) RestockItems(ctx context.Context, items []models.OrderItem) error {
	for _, it := range items {
		if _, err := r.products.UpdateOne(ctx,
			bson.M{"id": it.ProductID},
			bson.M{"$inc": bson.M{"stock": it.Quantity}},
		); err != nil {
			return fmt.Errorf("failed to restock product %s: %w", it.ProductID, err)
		}
	}
	return nil
}

func (r *mongoOrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	return r.list(ctx, bson.M{"customer_id": customerID})
}

func (r *mongoOrderRepo) ListBySeller(ctx context.Context, sellerID string) ([]models.Order, error) {
	return r.list(ctx, bson.M{"items.seller_id": sellerID})
}

func (r *mongoOrderRepo) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
