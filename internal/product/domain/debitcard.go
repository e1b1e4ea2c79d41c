package domain

import "github.com/google/uuid"

// DebitCard links a client's debit card to a main account plus an ordered
// list of fallback accounts. Each entry references a Product by id.
type DebitCard struct {
	ID               uuid.UUID   `json:"id"`
	ClientID         string      `json:"clientId"`
	MainAccountID    uuid.UUID   `json:"mainAccountId"`
	LinkedAccountIDs []uuid.UUID `json:"linkedAccountIds,omitempty"`
}
