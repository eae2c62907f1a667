package quoteRepo

import (
	"context"

	"sokoni/database"
	"sokoni/domain"
	"sokoni/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// QuoteRepository is the typed persistence boundary for quote requests.
type QuoteRepository interface {
	Create(ctx context.Context, quote models.Quote) error
	GetByID(ctx context.Context, id string) (*models.Quote, error)
	// AppendResponseCAS pushes a provider response and moves the quote to
	// responded in one write, guarded on the expected current status.
	AppendResponseCAS(ctx context.Context, id string, from domain.QuoteStatus, response models.QuoteResponse) error
	// UpdateStatusCAS moves the quote between statuses; a miss returns
	// repository.ErrStaleStatus.
	UpdateStatusCAS(ctx context.Context, id string, from, to domain.QuoteStatus) error
	ListByCustomer(ctx context.Context, customerID string) ([]models.Quote, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Quote, error)
}

type mongoQuoteRepo struct {
	coll *mongo.Collection
}

// NewMongoQuoteRepo returns a QuoteRepository backed by MongoDB.
func NewMongoQuoteRepo() QuoteRepository {
	return &mongoQuoteRepo{coll: database.DB().Collection("quotes")}
}
