// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"truetrace/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ProvenanceHandler *handler.ProvenanceHandler
	VerifyHandler     *handler.VerifyHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	provenanceHandler *handler.ProvenanceHandler
	verifyHandler     *handler.VerifyHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		provenanceHandler: params.ProvenanceHandler,
		verifyHandler:     params.VerifyHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Manufacturer routes
	mfgGroup := e.Group("/mfg")
	{
		mfgGroup.POST("/products", r.provenanceHandler.RegisterProduct)
	}

	// Retailer custody routes
	retailerGroup := e.Group("/retailer")
	{
		retailerGroup.POST("/batch", r.provenanceHandler.RegisterBatch)
		retailerGroup.POST("/final", r.provenanceHandler.RegisterFinalSale)
	}

	// Public verification surface
	e.POST("/verify", r.verifyHandler.Verify)
	e.GET("/registry/:slot", r.verifyHandler.ReadRegistry)
	e.GET("/products/:id/qr", r.provenanceHandler.ProductQR)
}
