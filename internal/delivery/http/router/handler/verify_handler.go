package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"truetrace/internal/delivery/http/response"
	"truetrace/internal/domain/entity"
	domainerrors "truetrace/internal/domain/errors"
	"truetrace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// VerifyHandler holds dependencies for verification handlers.
type VerifyHandler struct {
	uc     usecase.VerificationUsecase
	logger *slog.Logger
}

// NewVerifyHandler is the constructor for VerifyHandler, injected by Fx.
func NewVerifyHandler(uc usecase.VerificationUsecase, logger *slog.Logger) *VerifyHandler {
	return &VerifyHandler{
		uc:     uc,
		logger: logger,
	}
}

type verifyRequest struct {
	ProductID   string  `json:"product_id"`
	Slot        *uint64 `json:"slot"`
	PayloadText string  `json:"payload_text" validate:"required"`
}

type verifyResponse struct {
	Matches            bool   `json:"matches"`
	LocalCommitment    string `json:"local_commitment"`
	RegistryCommitment string `json:"registry_commitment"`
}

type registryReadResponse struct {
	Slot       uint64 `json:"slot"`
	Registered bool   `json:"registered"`
	Commitment string `json:"commitment,omitempty"`
}

// Verify checks a scanned payload against the registry. The caller
// addresses the registry either by product identity or by raw slot.
func (h *VerifyHandler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	var (
		result *entity.VerificationResult
		err    error
	)

	switch {
	case req.ProductID != "":
		result, err = h.uc.VerifyProduct(c.Request().Context(), req.ProductID, req.PayloadText)
	case req.Slot != nil:
		result, err = h.uc.Verify(c.Request().Context(), entity.Slot(*req.Slot), req.PayloadText)
	default:
		return errors.Wrap(domainerrors.ErrValidationFailed, "either product_id or slot is required")
	}
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, verifyResponse{
		Matches:            result.Matches,
		LocalCommitment:    result.LocalCommitment,
		RegistryCommitment: result.RegistryCommitment,
	}, "Verification completed")
}

// ReadRegistry returns the latest commitment for a slot.
func (h *VerifyHandler) ReadRegistry(c echo.Context) error {
	slot, err := strconv.ParseUint(c.Param("slot"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Slot must be an unsigned integer")
	}

	commitment, registered, err := h.uc.ReadRegistry(c.Request().Context(), entity.Slot(slot))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, registryReadResponse{
		Slot:       slot,
		Registered: registered,
		Commitment: commitment,
	}, "Registry read completed")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
