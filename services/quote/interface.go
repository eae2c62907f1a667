package quote

import (
	"context"

	catalogRepo "sokoni/database/repository/catalog"
	quoteRepo "sokoni/database/repository/quote"
	"sokoni/domain"
	"sokoni/models"

	"go.uber.org/zap"
)

// RequestQuoteInput is a customer's ask for a custom price.
type RequestQuoteInput struct {
	ProviderID  string `json:"provider_id"`
	ServiceID   string `json:"service_id,omitempty"`
	Description string `json:"description"`
}

// RespondInput is a provider's offer on an open quote.
type RespondInput struct {
	Message        string  `json:"message"`
	QuotedPrice    float64 `json:"quoted_price"`
	EstimatedHours float64 `json:"estimated_hours"`
}

// QuoteService handles the request/offer/accept flow for custom-priced
// work. It shares the lifecycle discipline of bookings and orders but never
// touches either state machine.
type QuoteService interface {
	Request(ctx context.Context, actor domain.Actor, input RequestQuoteInput) (*models.Quote, error)
	Respond(ctx context.Context, actor domain.Actor, id string, input RespondInput) (*models.Quote, error)
	Decide(ctx context.Context, actor domain.Actor, id string, action domain.QuoteAction) (*models.Quote, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*models.Quote, error)
	ListForCustomer(ctx context.Context, actor domain.Actor, customerID string) ([]models.Quote, error)
	ListForProvider(ctx context.Context, actor domain.Actor, providerID string) ([]models.Quote, error)
}

// DefaultQuoteService implements QuoteService.
type DefaultQuoteService struct {
	Repo    quoteRepo.QuoteRepository
	Catalog catalogRepo.CatalogRepository
	Logger  *zap.Logger
}
