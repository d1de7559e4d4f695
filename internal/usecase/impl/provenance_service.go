// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	"truetrace/config"
	"truetrace/internal/commitment"
	deliverycontext "truetrace/internal/delivery/context"
	"truetrace/internal/domain/entity"
	domainerrors "truetrace/internal/domain/errors"
	"truetrace/internal/domain/repository"
	"truetrace/internal/domain/service"
	"truetrace/internal/usecase"

	"github.com/pkg/errors"
)

// provenanceService implements the ProvenanceUsecase interface.
type provenanceService struct {
	records  repository.RecordRepository
	registry service.CommitmentRegistry
	qrGen    service.QRCodeService
	slots    entity.SlotAllocator
	writer   string
	logger   *slog.Logger
}

// NewProvenanceService is the constructor for provenanceService.
func NewProvenanceService(
	cfg *config.Config,
	records repository.RecordRepository,
	registry service.CommitmentRegistry,
	qrGen service.QRCodeService,
	logger *slog.Logger,
) usecase.ProvenanceUsecase {
	return &provenanceService{
		records:  records,
		registry: registry,
		qrGen:    qrGen,
		slots:    entity.NewSlotAllocator(cfg.Registry.LegacyFixedSlot),
		writer:   cfg.Registry.Writer,
		logger:   logger,
	}
}

// CreateManufacturerRecord registers the origin of a product lot: builds
// the canonical record, stores it, and registers its commitment. The
// registry write is awaited; a result without error always carries a
// receipt.
func (srv *provenanceService) CreateManufacturerRecord(ctx context.Context, input *usecase.CreateManufacturerRecordInput) (*usecase.RecordResult, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Info("Creating manufacturer record", "productID", input.ProductID)

	record, err := entity.NewManufacturerRecord(entity.ManufacturerFacts{
		CompanyName: input.CompanyName,
		Address:     input.Address,
		ProductID:   input.ProductID,
		ProductName: input.ProductName,
		Brand:       input.Brand,
	}, time.Now())
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	return srv.commitRecord(ctx, record)
}

// CreateRetailerRecord appends a custody step to an existing chain. The
// prior record is the anchor: without a stored manufacturer record for the
// product there is nothing legitimate to extend, and the request fails
// with a not-found error rather than minting an orphan chain.
func (srv *provenanceService) CreateRetailerRecord(ctx context.Context, kind entity.RecordKind, input *usecase.CreateRetailerRecordInput) (*usecase.RecordResult, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Info("Creating retailer record", "productID", input.ProductID, "kind", kind)

	if input.ProductID == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "Product ID is required")
	}

	prior, err := srv.records.FindByProduct(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRecordNotFound, "no prior record for product")
		}

		return nil, errors.Wrap(err, "failed to load prior record")
	}

	record, err := entity.NewRetailerRecord(prior, entity.RetailerFacts{
		OutletName:    input.OutletName,
		OutletAddress: input.OutletAddress,
		BatchNumber:   input.BatchNumber,
		Brand:         input.Brand,
	}, kind, time.Now())
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	return srv.commitRecord(ctx, record)
}

// commitRecord is the shared tail of every custody write: digest, register,
// store. The registry write comes first so a failed registration leaves the
// store untouched and the whole operation can be retried cleanly. A save
// failure after a successful registration is also retry-safe: Save is an
// upsert of the exact text the receipt attests to.
func (srv *provenanceService) commitRecord(ctx context.Context, record *entity.ProvenanceRecord) (*usecase.RecordResult, error) {
	digest, err := commitment.Digest(record.CanonicalText)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrEncodingFailed, err.Error())
	}

	slot := srv.slots.SlotFor(record.ProductID)

	receipt, err := srv.registry.Register(ctx, slot, digest, srv.writer)
	if err != nil {
		return nil, domainerrors.NewRegistryExecuteError(err, "register commitment")
	}

	if err := srv.records.Save(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to save record")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Commitment registered",
		"productID", record.ProductID,
		"slot", slot,
		"sequence", receipt.Sequence,
	)

	return &usecase.RecordResult{
		Record:     record,
		Commitment: digest,
		Slot:       slot,
		Receipt:    receipt,
	}, nil
}

// ProductQR renders the product's current canonical text as a QR image.
// The QR carries the payload itself, not a lookup URL: scanning yields the
// exact bytes to verify against the registry.
func (srv *provenanceService) ProductQR(ctx context.Context, productID string) ([]byte, error) {
	if productID == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "Product ID is required")
	}

	record, err := srv.records.FindByProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRecordNotFound, "no record for product")
		}

		return nil, errors.Wrap(err, "failed to load record")
	}

	png, err := srv.qrGen.GeneratePayloadQR(record.CanonicalText)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate QR code")
	}

	return png, nil
}
