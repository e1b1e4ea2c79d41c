package service

import (
	"context"

	"github.com/google/uuid"

	"product_service_backend/internal/product/domain"
)

// CreateDebitCard persists a debit card.
func (s *Service) CreateDebitCard(ctx context.Context, card domain.DebitCard) (domain.DebitCard, error) {
	saved, err := s.store.SaveDebitCard(ctx, card)
	if err != nil {
		return domain.DebitCard{}, err
	}
	s.log.Info("debit card created", "id", saved.ID, "client_id", saved.ClientID)
	return saved, nil
}

// FindDebitCardByID retrieves a debit card by id.
func (s *Service) FindDebitCardByID(ctx context.Context, id uuid.UUID) (domain.DebitCard, error) {
	return s.store.FindDebitCardByID(ctx, id)
}

// FindAllDebitCards retrieves every debit card.
func (s *Service) FindAllDebitCards(ctx context.Context) ([]domain.DebitCard, error) {
	return s.store.FindAllDebitCards(ctx)
}

// MainAccountBalance reports the balance of the card's main account.
func (s *Service) MainAccountBalance(ctx context.Context, cardID uuid.UUID) (float64, error) {
	card, err := s.store.FindDebitCardByID(ctx, cardID)
	if err != nil {
		return 0, err
	}

	account, err := s.store.FindByID(ctx, card.MainAccountID)
	if err != nil {
		return 0, err
	}

	if account.Balance == nil {
		return 0, nil
	}
	return *account.Balance, nil
}
