package quoteRepo

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

func (r *mongoQuoteRepo) Create(ctx context.Context, quote models.Quote) error {
	if _, err := r.coll.InsertOne(ctx, quote); err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}
	return nil
}

func (r *mongoQuoteRepo) GetByID(ctx context.Context, id string) (*models.Quote, error) {
	var quote models.Quote
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&quote)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *mongoQuoteRepo) AppendResponseCAS(ctx context.Context, id string, from domain.QuoteStatus, response models.QuoteResponse) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": from},
		bson.M{
			"$push": bson.M{"responses": response},
			"$set":  bson.M{"status": domain.QuoteResponded, "updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to append quote response: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrStaleStatus
	}
	return nil
}

func (r *mongoQuoteRepo) UpdateStatusCAS(ctx context.Context, id string, from, to domain.QuoteStatus) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update quote status: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrStaleStatus
	}
	return nil
}

func (r *mongoQuoteRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Quote, error) {
	return r.list(ctx, bson.M{"customer_id": customerID})
}

func (r *mongoQuoteRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Quote, error) {
	return r.list(ctx, bson.M{"provider_id": providerID})
}

func (r *mongoQuoteRepo) list(ctx context.Context, filter bson.M) ([]models.Quote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var quotes []models.Quote
	if err := cursor.All(ctx, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}
