package service

import (
	"context"

	"github.com/google/uuid"

	"product_service_backend/internal/product/domain"
	"product_service_backend/internal/product/repository"
	"product_service_backend/platform/apperr"
	"product_service_backend/platform/logger"
	"product_service_backend/platform/metrics"
)

// ClientGateway looks up a client profile in the external client service.
type ClientGateway interface {
	Fetch(ctx context.Context, clientID string) (domain.ClientProfile, error)
}

// Service orchestrates product lifecycle operations. Creation runs the
// eligibility pipeline; the remaining operations are thin passthroughs over
// the store.
type Service struct {
	store   repository.Store
	clients ClientGateway
	engine  *Engine
	log     *logger.Logger
	metrics *metrics.Collector
}

// New creates a new product service.
func New(store repository.Store, clients ClientGateway, log *logger.Logger, collector *metrics.Collector) *Service {
	return &Service{
		store:   store,
		clients: clients,
		engine:  NewEngine(),
		log:     log,
		metrics: collector,
	}
}

// FindAll retrieves every product.
func (s *Service) FindAll(ctx context.Context) ([]domain.Product, error) {
	return s.store.FindAll(ctx)
}

// FindByID retrieves a product by id.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	return s.store.FindByID(ctx, id)
}

// FindByClientID retrieves every product owned by a client.
func (s *Service) FindByClientID(ctx context.Context, clientID string) ([]domain.Product, error) {
	return s.store.FindByClientID(ctx, clientID)
}

// Create runs the product creation pipeline: overdue-debt check, client
// profile lookup, eligibility rules, then save. Steps are strictly
// sequential; each depends on the previous one's outcome.
//
// The overdue-debt check runs before the profile fetch so a barred client
// never costs an external call. The existing-products read and the final save
// are not isolated from concurrent creations for the same client; the engine
// is the sole uniqueness authority and two racing requests can both pass it.
func (s *Service) Create(ctx context.Context, candidate domain.Product) (domain.Product, error) {
	existing, err := s.store.FindByClientID(ctx, candidate.ClientID)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range existing {
		if p.IsOverdueCredit() {
			s.log.Warn("product creation blocked by overdue debt", "client_id", candidate.ClientID)
			s.rejected(RuleOverdueDebt)
			return domain.Product{}, apperr.Validation("client has overdue debt")
		}
	}

	client, err := s.clients.Fetch(ctx, candidate.ClientID)
	if err != nil {
		return domain.Product{}, err
	}

	existing, err = s.store.FindByClientID(ctx, candidate.ClientID)
	if err != nil {
		return domain.Product{}, err
	}

	result := s.engine.Evaluate(&candidate, client, existing)
	if !result.Approved {
		s.log.Warn("product creation rejected",
			"client_id", candidate.ClientID,
			"subtype", candidate.Subtype,
			"rule", result.Rule,
			"reason", result.Reason,
		)
		s.rejected(result.Rule)
		return domain.Product{}, apperr.Validation(result.Reason)
	}

	saved, err := s.store.Save(ctx, candidate)
	if err != nil {
		return domain.Product{}, err
	}

	s.log.Info("product created", "id", saved.ID, "client_id", saved.ClientID, "subtype", saved.Subtype)
	if s.metrics != nil {
		s.metrics.ProductCreated()
	}
	return saved, nil
}

// Update replaces a product's fields, keeping the id from the path. Business
// rules deliberately do not re-run here; the upstream contract persists the
// payload unconditionally once the id exists.
func (s *Service) Update(ctx context.Context, id uuid.UUID, product domain.Product) (domain.Product, error) {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return domain.Product{}, err
	}

	product.ID = id
	updated, err := s.store.Save(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}

	s.log.Info("product updated", "id", updated.ID)
	return updated, nil
}

// Delete removes a product by id. Store semantics pass through unchanged.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.log.Info("product deleted", "id", id)
	return nil
}

// MarkOverdue flags a product's debt as overdue, which blocks all further
// product creation for its client.
func (s *Service) MarkOverdue(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	product, err := s.store.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	product.Status = domain.StatusOverdue
	updated, err := s.store.Save(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}

	s.log.Info("product marked overdue", "id", updated.ID, "client_id", updated.ClientID)
	return updated, nil
}

func (s *Service) rejected(rule string) {
	if s.metrics != nil {
		s.metrics.ProductRejected(rule)
	}
}
