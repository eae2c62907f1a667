package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sokoni/database/repository"
	"sokoni/domain"
	"sokoni/models"
	"sokoni/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request opens a quote in pending status. When a service is named the
// provider is resolved from it so the two can never disagree.
func (s *DefaultQuoteService) Request(ctx context.Context, actor domain.Actor, input RequestQuoteInput) (*models.Quote, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, fmt.Errorf("%w: only customers request quotes", ErrForbidden)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	providerID := strings.TrimSpace(input.ProviderID)
	serviceID := strings.TrimSpace(input.ServiceID)
	if serviceID != "" {
		svc, err := s.Catalog.GetService(ctx, serviceID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown service %s", ErrValidation, serviceID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load service: %w", err)
		}
		providerID = svc.ProviderID
	}
	if providerID == "" {
		return nil, fmt.Errorf("%w: provider is required", ErrValidation)
	}

	now := time.Now()
	quote := models.Quote{
		ID:          uuid.New().String(),
		Code:        utils.NewReferenceCode("QTE"),
		CustomerID:  actor.ID,
		ProviderID:  providerID,
		ServiceID:   serviceID,
		Description: strings.TrimSpace(input.Description),
		Status:      domain.QuotePending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to persist quote: %w", err)
	}

	s.Logger.Info("quote requested",
		zap.String("quote", quote.Code),
		zap.String("customer", quote.CustomerID),
		zap.String("provider", quote.ProviderID),
	)
	return &quote, nil
}

// Respond records a provider offer. The append and the status move happen in
// one guarded write, so a customer decision racing this call loses cleanly
// on one side or the other.
func (s *DefaultQuoteService) Respond(ctx context.Context, actor domain.Actor, id string, input RespondInput) (*models.Quote, error) {
	if input.QuotedPrice <= 0 {
		return nil, fmt.Errorf("%w: quoted price must be positive", ErrValidation)
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}

	quote, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, quote); err != nil {
		return nil, err
	}
	if _, err := domain.NextQuoteStatus(quote.Status, domain.QuoteActionRespond, actor.Role); err != nil {
		return nil, err
	}

	response := models.QuoteResponse{
		ID:             uuid.New().String(),
		Message:        strings.TrimSpace(input.Message),
		QuotedPrice:    input.QuotedPrice,
		EstimatedHours: input.EstimatedHours,
		CreatedAt:      time.Now(),
	}
	if err := s.Repo.AppendResponseCAS(ctx, id, quote.Status, response); err != nil {
		return nil, s.translateCASError(ctx, id, err)
	}

	quote.Status = domain.QuoteResponded
	quote.Responses = append(quote.Responses, response)
	quote.UpdatedAt = response.CreatedAt

	s.Logger.Info("quote responded",
		zap.String("quote", quote.Code),
		zap.String("provider", actor.ID),
		zap.Float64("price", response.QuotedPrice),
	)
	return quote, nil
}

// Decide applies accept, reject or close.
func (s *DefaultQuoteService) Decide(ctx context.Context, actor domain.Actor, id string, action domain.QuoteAction) (*models.Quote, error) {
	if action == domain.QuoteActionRespond {
		return nil, fmt.Errorf("%w: respond carries a body, use Respond", ErrValidation)
	}

	quote, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, quote); err != nil {
		return nil, err
	}

	next, err := domain.NextQuoteStatus(quote.Status, action, actor.Role)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateStatusCAS(ctx, id, quote.Status, next); err != nil {
		return nil, s.translateCASError(ctx, id, err)
	}

	prev := quote.Status
	quote.Status = next
	quote.UpdatedAt = time.Now()

	s.Logger.Info("quote decided",
		zap.String("quote", quote.Code),
		zap.String("action", string(action)),
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
		zap.String("actor", actor.ID),
	)
	return quote, nil
}

func (s *DefaultQuoteService) Get(ctx context.Context, actor domain.Actor, id string) (*models.Quote, error) {
	quote, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *DefaultQuoteService) ListForCustomer(ctx context.Context, actor domain.Actor, customerID string) ([]models.Quote, error) {
	if !actor.IsAdmin() && actor.ID != customerID {
		return nil, fmt.Errorf("%w: cannot list another customer's quotes", ErrForbidden)
	}
	return s.Repo.ListByCustomer(ctx, customerID)
}

func (s *DefaultQuoteService) ListForProvider(ctx context.Context, actor domain.Actor, providerID string) ([]models.Quote, error) {
	if !actor.IsAdmin() && actor.ID != providerID {
		return nil, fmt.Errorf("%w: cannot list another provider's quotes", ErrForbidden)
	}
	return s.Repo.ListByProvider(ctx, providerID)
}

func (s *DefaultQuoteService) load(ctx context.Context, id string) (*models.Quote, error) {
	quote, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}
	return quote, nil
}

func (s *DefaultQuoteService) authorize(actor domain.Actor, quote *models.Quote) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleCustomer:
		if quote.CustomerID == actor.ID {
			return nil
		}
	case domain.RoleProvider:
		if quote.ProviderID == actor.ID {
			return nil
		}
	}
	return fmt.Errorf("%w: actor %s is not a party to quote %s", ErrForbidden, actor.ID, quote.Code)
}

func (s *DefaultQuoteService) translateCASError(ctx context.Context, id string, err error) error {
	if !errors.Is(err, repository.ErrStaleStatus) {
		return fmt.Errorf("failed to update quote: %w", err)
	}
	if _, loadErr := s.Repo.GetByID(ctx, id); errors.Is(loadErr, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return ErrStatusConflict
}
