package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sokoni/database/repository"
	"sokoni/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoCatalogRepo) CreateService(ctx context.Context, svc models.Service) error {
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = time.Now()
	if _, err := r.services.InsertOne(ctx, svc); err != nil {
		return fmt.Errorf("failed to insert service: %w", err)
	}
	return nil
}

func (r *mongoCatalogRepo) GetService(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	err := r.services.FindOne(ctx, bson.M{"id": id}).Decode(&svc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *mongoCatalogRepo) UpdateService(ctx context.Context, svc models.Service) error {
	svc.UpdatedAt = time.Now()
	res, err := r.services.ReplaceOne(ctx, bson.M{"id": svc.ID}, svc)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoCatalogRepo) ListServices(ctx context.Context, providerID string, activeOnly bool) ([]models.Service, error) {
	filter := bson.M{}
	if providerID != "" {
		filter["provider_id"] = providerID
	}
	if activeOnly {
		filter["active"] = true
	}
	cursor, err := r.services.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Service
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoCatalogRepo) CreateProduct(ctx context.Context, p models.Product) error {
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	if _, err := r.products.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *mongoCatalogRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := r.products.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoCatalogRepo) UpdateProduct(ctx context.Context, p models.Product) error {
	p.UpdatedAt = time.Now()
	res, err := r.products.ReplaceOne(ctx, bson.M{"id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoCatalogRepo) ListProducts(ctx context.Context, sellerID string, activeOnly bool) ([]models.Product, error) {
	filter := bson.M{}
	if sellerID != "" {
		filter["seller_id"] = sellerID
	}
	if activeOnly {
		filter["active"] = true
	}
	cursor, err := r.products.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Product
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
