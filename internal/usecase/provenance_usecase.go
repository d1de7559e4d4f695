// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"truetrace/internal/domain/entity"
)

// ProvenanceUsecase defines the interface for custody-record business operations.
type ProvenanceUsecase interface {
	CreateManufacturerRecord(ctx context.Context, input *CreateManufacturerRecordInput) (*RecordResult, error)
	CreateRetailerRecord(ctx context.Context, kind entity.RecordKind, input *CreateRetailerRecordInput) (*RecordResult, error)
	ProductQR(ctx context.Context, productID string) ([]byte, error)
}

// --- Input DTOs ---

// CreateManufacturerRecordInput defines the facts for an origin record.
type CreateManufacturerRecordInput struct {
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Brand       string `json:"brand"`
}

// CreateRetailerRecordInput defines the facts a retailer appends to an
// existing custody chain.
type CreateRetailerRecordInput struct {
	ProductID     string `json:"product_id"`
	OutletName    string `json:"outlet_name"`
	OutletAddress string `json:"outlet_address"`
	BatchNumber   string `json:"batch_number"`
	Brand         string `json:"brand"`
}

// RecordResult is the outcome of a successful custody-record write: the
// stored record, its commitment, and the registry receipt proving the
// commitment landed.
type RecordResult struct {
	Record     *entity.ProvenanceRecord `json:"record"`
	Commitment string                   `json:"commitment"`
	Slot       entity.Slot              `json:"slot"`
	Receipt    *entity.WriteReceipt     `json:"receipt"`
}
