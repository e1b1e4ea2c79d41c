package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"product_service_backend/internal/product/service"
	"product_service_backend/internal/product/transport"
	"product_service_backend/platform/httpkit"
	"product_service_backend/platform/validator"
)

// Handler handles HTTP requests for bank products.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid product id"
)

// New creates a new product handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List retrieves every product.
// GET /api/v1/product
func (h *Handler) List(c *gin.Context) {
	products, err := h.svc.FindAll(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, products)
}

// GetByID retrieves a product by id.
// GET /api/v1/product/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	product, err := h.svc.FindByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, product)
}

// Create runs the creation pipeline and persists the product on approval.
// POST /api/v1/product
func (h *Handler) Create(c *gin.Context) {
	var req transport.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	created, err := h.svc.Create(c.Request.Context(), req.ToDomain())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, created)
}

// Update replaces a product's fields, keeping the id from the path.
// PUT /api/v1/product/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, req.ToDomain())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, updated)
}

// Delete removes a product by id.
// DELETE /api/v1/product/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.NoContent(c)
}

// ListByClient retrieves every product owned by a client.
// GET /api/v1/product/client/:clientId
func (h *Handler) ListByClient(c *gin.Context) {
	products, err := h.svc.FindByClientID(c.Request.Context(), c.Param("clientId"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, products)
}

// MarkOverdue flags a product's debt as overdue.
// PATCH /api/v1/product/:id/overdue
func (h *Handler) MarkOverdue(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	updated, err := h.svc.MarkOverdue(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, updated)
}
