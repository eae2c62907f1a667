package recordsRepo

import (
	"context"

	"sokoni/database"
	"sokoni/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// RecordsRepository persists the rows the event worker writes: in-app
// notification records and the provider earnings ledger.
type RecordsRepository interface {
	CreateNotification(ctx context.Context, n models.Notification) (string, error)
	ListNotifications(ctx context.Context, userID string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error

	CreateEarning(ctx context.Context, e models.Earning) (string, error)
	ListEarnings(ctx context.Context, providerID string) ([]models.Earning, error)
}

type mongoRecordsRepo struct {
	notifications *mongo.Collection
	earnings      *mongo.Collection
}

// NewMongoRecordsRepo returns a RecordsRepository backed by MongoDB.
func NewMongoRecordsRepo() RecordsRepository {
	db := database.DB()
	return &mongoRecordsRepo{
		notifications: db.Collection("notifications"),
		earnings:      db.Collection("earnings"),
	}
}
