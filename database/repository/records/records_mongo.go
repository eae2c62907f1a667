package recordsRepo

import (
	"context"
	"time"

	"sokoni/database/repository"
	"sokoni/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoRecordsRepo) CreateNotification(ctx context.Context, n models.Notification) (string, error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.CreatedAt = time.Now()

	if _, err := r.notifications.InsertOne(ctx, n); err != nil {
		return "", err
	}
	return n.ID, nil
}

func (r *mongoRecordsRepo) ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.notifications.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Notification
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoRecordsRepo) MarkNotificationRead(ctx context.Context, id string) error {
	res, err := r.notifications.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoRecordsRepo) CreateEarning(ctx context.Context, e models.Earning) (string, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.CreatedAt = time.Now()

	if _, err := r.earnings.InsertOne(ctx, e); err != nil {
		return "", err
	}
	return e.ID, nil
}

func (r *mongoRecordsRepo) ListEarnings(ctx context.Context, providerID string) ([]models.Earning, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.earnings.Find(ctx, bson.M{"provider_id": providerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Earning
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
