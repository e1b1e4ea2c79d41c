package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"product_service_backend/internal/product/domain"
	"product_service_backend/platform/apperr"
)

const debitCardNotFoundMessage = "debit card not found"

// SaveDebitCard inserts or replaces a debit card, assigning the id on first
// save.
func (r *Repo) SaveDebitCard(ctx context.Context, card domain.DebitCard) (domain.DebitCard, error) {
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}

	query := `
		INSERT INTO debit_cards (id, client_id, main_account_id, linked_account_ids)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			client_id = EXCLUDED.client_id,
			main_account_id = EXCLUDED.main_account_id,
			linked_account_ids = EXCLUDED.linked_account_ids,
			updated_at = now()`

	if _, err := r.pool.Exec(ctx, query,
		card.ID, card.ClientID, card.MainAccountID, card.LinkedAccountIDs,
	); err != nil {
		return domain.DebitCard{}, fmt.Errorf("save debit card: %w", err)
	}

	return card, nil
}

// FindDebitCardByID retrieves a debit card by id.
func (r *Repo) FindDebitCardByID(ctx context.Context, id uuid.UUID) (domain.DebitCard, error) {
	query := `
		SELECT id, client_id, main_account_id, linked_account_ids
		FROM debit_cards
		WHERE id = $1`

	var card domain.DebitCard
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&card.ID, &card.ClientID, &card.MainAccountID, &card.LinkedAccountIDs,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DebitCard{}, apperr.NotFound(debitCardNotFoundMessage)
		}
		return domain.DebitCard{}, fmt.Errorf("get debit card by id: %w", err)
	}
	return card, nil
}

// FindAllDebitCards retrieves every debit card.
func (r *Repo) FindAllDebitCards(ctx context.Context) ([]domain.DebitCard, error) {
	query := `
		SELECT id, client_id, main_account_id, linked_account_ids
		FROM debit_cards`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list debit cards: %w", err)
	}
	defer rows.Close()

	items := make([]domain.DebitCard, 0)
	for rows.Next() {
		var card domain.DebitCard
		if err := rows.Scan(&card.ID, &card.ClientID, &card.MainAccountID, &card.LinkedAccountIDs); err != nil {
			return nil, fmt.Errorf("scan debit card: %w", err)
		}
		items = append(items, card)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate debit cards: %w", rows.Err())
	}
	return items, nil
}
