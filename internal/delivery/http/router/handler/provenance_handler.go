// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"truetrace/internal/delivery/http/response"
	"truetrace/internal/domain/entity"
	"truetrace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProvenanceHandler holds dependencies for custody-record handlers.
type ProvenanceHandler struct {
	uc     usecase.ProvenanceUsecase
	logger *slog.Logger
}

// NewProvenanceHandler is the constructor for ProvenanceHandler, injected by Fx.
func NewProvenanceHandler(uc usecase.ProvenanceUsecase, logger *slog.Logger) *ProvenanceHandler {
	return &ProvenanceHandler{
		uc:     uc,
		logger: logger,
	}
}

type registerProductRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
	Address     string `json:"address" validate:"required"`
	ProductID   string `json:"product_id" validate:"required"`
	ProductName string `json:"product_name" validate:"required"`
	Brand       string `json:"brand" validate:"required"`
}

type retailerRecordRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	OutletName    string `json:"outlet_name" validate:"required"`
	OutletAddress string `json:"outlet_address" validate:"required"`
	BatchNumber   string `json:"batch_number" validate:"required"`
	Brand         string `json:"brand" validate:"required"`
}

// RegisterProduct handles the manufacturer origin registration request.
func (h *ProvenanceHandler) RegisterProduct(c echo.Context) error {
	var req registerProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.uc.CreateManufacturerRecord(c.Request().Context(), &usecase.CreateManufacturerRecordInput{
		CompanyName: req.CompanyName,
		Address:     req.Address,
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Brand:       req.Brand,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, result, "Product registered successfully")
}

// RegisterBatch handles a retailer batch custody step.
func (h *ProvenanceHandler) RegisterBatch(c echo.Context) error {
	return h.registerRetailerRecord(c, entity.KindRetailerBatch, "Batch recorded successfully")
}

// RegisterFinalSale handles the final sale custody step.
func (h *ProvenanceHandler) RegisterFinalSale(c echo.Context) error {
	return h.registerRetailerRecord(c, entity.KindRetailerFinal, "Final sale recorded successfully")
}

func (h *ProvenanceHandler) registerRetailerRecord(c echo.Context, kind entity.RecordKind, message string) error {
	var req retailerRecordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid retailer record input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.uc.CreateRetailerRecord(c.Request().Context(), kind, &usecase.CreateRetailerRecordInput{
		ProductID:     req.ProductID,
		OutletName:    req.OutletName,
		OutletAddress: req.OutletAddress,
		BatchNumber:   req.BatchNumber,
		Brand:         req.Brand,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, result, message)
}

// ProductQR serves the product's current provenance payload as a QR image.
func (h *ProvenanceHandler) ProductQR(c echo.Context) error {
	productID := c.Param("id")

	png, err := h.uc.ProductQR(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
