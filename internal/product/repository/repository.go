package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"product_service_backend/internal/product/domain"
	"product_service_backend/platform/apperr"
)

const productNotFoundMessage = "product not found"

const productColumns = `id, type, subtype, client_id, balance, maintenance_fee,
		monthly_movement_limit, allowed_movement_day, credit_limit,
		free_transaction_limit, transaction_fee, holders,
		authorized_signatories, status`

// Repo implements Store on postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new product repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Store.
var _ Store = (*Repo)(nil)

// FindAll retrieves every product.
func (r *Repo) FindAll(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products`, productColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// FindByID retrieves a product by id.
func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return domain.Product{}, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// FindByClientID retrieves all products owned by a client.
func (r *Repo) FindByClientID(ctx context.Context, clientID string) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE client_id = $1`, productColumns)

	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list products by client: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Save inserts or replaces a product, assigning the id and defaulting balance
// and status on first save.
func (r *Repo) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.Balance == nil {
		zero := 0.0
		product.Balance = &zero
	}
	if product.Status == "" {
		product.Status = domain.StatusActive
	}

	query := `
		INSERT INTO products (
			id, type, subtype, client_id, balance, maintenance_fee,
			monthly_movement_limit, allowed_movement_day, credit_limit,
			free_transaction_limit, transaction_fee, holders,
			authorized_signatories, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			type = EXCLUDED.type,
			subtype = EXCLUDED.subtype,
			client_id = EXCLUDED.client_id,
			balance = EXCLUDED.balance,
			maintenance_fee = EXCLUDED.maintenance_fee,
			monthly_movement_limit = EXCLUDED.monthly_movement_limit,
			allowed_movement_day = EXCLUDED.allowed_movement_day,
			credit_limit = EXCLUDED.credit_limit,
			free_transaction_limit = EXCLUDED.free_transaction_limit,
			transaction_fee = EXCLUDED.transaction_fee,
			holders = EXCLUDED.holders,
			authorized_signatories = EXCLUDED.authorized_signatories,
			status = EXCLUDED.status,
			updated_at = now()`

	if _, err := r.pool.Exec(ctx, query,
		product.ID, product.Type, product.Subtype, product.ClientID,
		product.Balance, product.MaintenanceFee, product.MonthlyMovementLimit,
		product.AllowedMovementDay, product.CreditLimit,
		product.FreeTransactionLimit, product.TransactionFee,
		product.Holders, product.AuthorizedSignatories, product.Status,
	); err != nil {
		return domain.Product{}, fmt.Errorf("save product: %w", err)
	}

	return product, nil
}

// DeleteByID removes a product. Deleting an id that does not exist is a
// no-op, matching the document-store semantics of the upstream contract.
func (r *Repo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Type, &p.Subtype, &p.ClientID, &p.Balance,
		&p.MaintenanceFee, &p.MonthlyMovementLimit, &p.AllowedMovementDay,
		&p.CreditLimit, &p.FreeTransactionLimit, &p.TransactionFee,
		&p.Holders, &p.AuthorizedSignatories, &p.Status,
	)
	return p, err
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	items := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate products: %w", rows.Err())
	}
	return items, nil
}
