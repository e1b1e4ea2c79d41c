package transport

import (
	"github.com/google/uuid"

	"product_service_backend/internal/product/domain"
)

// ProductRequest is the create/update payload. The balance carries no
// non-negative tag on purpose: a negative opening balance must reach the
// eligibility engine so the rejection reason is the business rule's, not a
// schema error. Any id in the payload is ignored; the store or the path owns
// the id.
type ProductRequest struct {
	Type                  string   `json:"type" validate:"required,oneof=activo pasivo"`
	Subtype               string   `json:"subtype" validate:"required,oneof=SAVINGS CURRENT_ACCOUNT FIXED_TERM PERSONAL_CREDIT BUSINESS_CREDIT CREDIT_CARD"`
	ClientID              string   `json:"clientId" validate:"required,min=1,max=100"`
	Balance               *float64 `json:"balance,omitempty"`
	MaintenanceFee        *float64 `json:"maintenanceFee,omitempty" validate:"omitempty,min=0"`
	MonthlyMovementLimit  *int     `json:"monthlyMovementLimit,omitempty" validate:"omitempty,min=0"`
	AllowedMovementDay    *int     `json:"allowedMovementDay,omitempty" validate:"omitempty,min=1,max=31"`
	CreditLimit           *float64 `json:"creditLimit,omitempty" validate:"omitempty,min=0"`
	FreeTransactionLimit  *int     `json:"freeTransactionLimit,omitempty" validate:"omitempty,min=0"`
	TransactionFee        *float64 `json:"transactionFee,omitempty" validate:"omitempty,min=0"`
	Holders               []string `json:"holders,omitempty" validate:"omitempty,dive,min=1,max=100"`
	AuthorizedSignatories []string `json:"authorizedSignatories,omitempty" validate:"omitempty,dive,min=1,max=100"`
	Status                string   `json:"status,omitempty" validate:"omitempty,oneof=activo vencido"`
}

// ToDomain maps the request onto a domain product with no id assigned.
func (r ProductRequest) ToDomain() domain.Product {
	return domain.Product{
		Type:                  r.Type,
		Subtype:               domain.Subtype(r.Subtype),
		ClientID:              r.ClientID,
		Balance:               r.Balance,
		MaintenanceFee:        r.MaintenanceFee,
		MonthlyMovementLimit:  r.MonthlyMovementLimit,
		AllowedMovementDay:    r.AllowedMovementDay,
		CreditLimit:           r.CreditLimit,
		FreeTransactionLimit:  r.FreeTransactionLimit,
		TransactionFee:        r.TransactionFee,
		Holders:               r.Holders,
		AuthorizedSignatories: r.AuthorizedSignatories,
		Status:                r.Status,
	}
}

// DebitCardRequest is the debit card creation payload.
type DebitCardRequest struct {
	ClientID         string   `json:"clientId" validate:"required,min=1,max=100"`
	MainAccountID    string   `json:"mainAccountId" validate:"required,uuid"`
	LinkedAccountIDs []string `json:"linkedAccountIds,omitempty" validate:"omitempty,dive,uuid"`
}

// ToDomain maps the request onto a domain debit card with no id assigned.
// Callers validate the uuid fields before conversion.
func (r DebitCardRequest) ToDomain() (domain.DebitCard, error) {
	mainAccountID, err := uuid.Parse(r.MainAccountID)
	if err != nil {
		return domain.DebitCard{}, err
	}

	linked := make([]uuid.UUID, 0, len(r.LinkedAccountIDs))
	for _, raw := range r.LinkedAccountIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return domain.DebitCard{}, err
		}
		linked = append(linked, id)
	}

	return domain.DebitCard{
		ClientID:         r.ClientID,
		MainAccountID:    mainAccountID,
		LinkedAccountIDs: linked,
	}, nil
}

// BalanceResponse reports a single account balance.
type BalanceResponse struct {
	Balance float64 `json:"balance"`
}
