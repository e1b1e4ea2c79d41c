// Package domain holds the bank product entities shared across the product
// bounded context.
package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Product categories. Liability products are deposit accounts, asset products
// are credits extended to the client.
const (
	TypeAsset     = "activo"
	TypeLiability = "pasivo"
)

// Product statuses.
const (
	StatusActive  = "activo"
	StatusOverdue = "vencido"
)

// Subtype is the specific product kind.
type Subtype string

const (
	SubtypeSavings        Subtype = "SAVINGS"
	SubtypeCurrentAccount Subtype = "CURRENT_ACCOUNT"
	SubtypeFixedTerm      Subtype = "FIXED_TERM"
	SubtypePersonalCredit Subtype = "PERSONAL_CREDIT"
	SubtypeBusinessCredit Subtype = "BUSINESS_CREDIT"
	SubtypeCreditCard     Subtype = "CREDIT_CARD"
)

// Product is a bank account, card or credit owned by a client. It is a single
// wide record: the optional fields apply only to some subtypes and stay nil
// elsewhere. Pointer fields distinguish "absent" from a zero value, which the
// balance rule depends on.
type Product struct {
	ID       uuid.UUID `json:"id"`
	Type     string    `json:"type"`
	Subtype  Subtype   `json:"subtype"`
	ClientID string    `json:"clientId"`
	Balance  *float64  `json:"balance,omitempty"`

	MaintenanceFee       *float64 `json:"maintenanceFee,omitempty"`       // current accounts
	MonthlyMovementLimit *int     `json:"monthlyMovementLimit,omitempty"` // savings accounts
	AllowedMovementDay   *int     `json:"allowedMovementDay,omitempty"`   // fixed-term accounts
	CreditLimit          *float64 `json:"creditLimit,omitempty"`          // credits and cards
	FreeTransactionLimit *int     `json:"freeTransactionLimit,omitempty"`
	TransactionFee       *float64 `json:"transactionFee,omitempty"`

	Holders               []string `json:"holders,omitempty"`
	AuthorizedSignatories []string `json:"authorizedSignatories,omitempty"`

	Status string `json:"status"`
}

// IsOverdueCredit reports whether the product is a credit-type product whose
// debt is overdue. A client holding one is barred from acquiring new products.
func (p Product) IsOverdueCredit() bool {
	return strings.EqualFold(p.Type, TypeAsset) && strings.EqualFold(p.Status, StatusOverdue)
}

// IsLiability reports whether the product is a deposit-type product.
func (p Product) IsLiability() bool {
	return strings.EqualFold(p.Type, TypeLiability)
}
