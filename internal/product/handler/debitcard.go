package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"product_service_backend/internal/product/transport"
	"product_service_backend/platform/httpkit"
)

const msgInvalidCardID = "invalid debit card id"

// CreateDebitCard persists a debit card.
// POST /api/v1/debit-card
func (h *Handler) CreateDebitCard(c *gin.Context) {
	var req transport.DebitCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	card, err := req.ToDomain()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	created, err := h.svc.CreateDebitCard(c.Request.Context(), card)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, created)
}

// GetDebitCardByID retrieves a debit card by id.
// GET /api/v1/debit-card/:id
func (h *Handler) GetDebitCardByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidCardID, nil)
		return
	}

	card, err := h.svc.FindDebitCardByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, card)
}

// ListDebitCards retrieves every debit card.
// GET /api/v1/debit-card
func (h *Handler) ListDebitCards(c *gin.Context) {
	cards, err := h.svc.FindAllDebitCards(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, cards)
}

// GetMainAccountBalance reports the balance of a card's main account.
// GET /api/v1/debit-card/:id/main-account-balance
func (h *Handler) GetMainAccountBalance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidCardID, nil)
		return
	}

	balance, err := h.svc.MainAccountBalance(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.BalanceResponse{Balance: balance})
}
