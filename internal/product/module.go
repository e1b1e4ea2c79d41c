// Package product provides the bank product bounded context module.
package product

import (
	apphttp "product_service_backend/internal/http"
	"product_service_backend/internal/product/handler"
	"product_service_backend/internal/product/repository"
	"product_service_backend/internal/product/service"
	"product_service_backend/platform/logger"
	"product_service_backend/platform/metrics"
	"product_service_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the product bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Store
}

// NewModule creates and initializes the product module.
func NewModule(pool *pgxpool.Pool, clients service.ClientGateway, val *validator.Validator, collector *metrics.Collector, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, clients, log, collector)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "product"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts product routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	products := ctx.V1.Group("/product")
	products.GET("", m.handler.List)
	products.GET("/:id", m.handler.GetByID)
	products.POST("", m.handler.Create)
	products.PUT("/:id", m.handler.Update)
	products.DELETE("/:id", m.handler.Delete)
	products.GET("/client/:clientId", m.handler.ListByClient)
	products.PATCH("/:id/overdue", m.handler.MarkOverdue)

	cards := ctx.V1.Group("/debit-card")
	cards.GET("", m.handler.ListDebitCards)
	cards.GET("/:id", m.handler.GetDebitCardByID)
	cards.POST("", m.handler.CreateDebitCard)
	cards.GET("/:id/main-account-balance", m.handler.GetMainAccountBalance)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
