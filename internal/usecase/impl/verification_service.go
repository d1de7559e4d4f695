package impl

import (
	"context"
	"log/slog"

	"truetrace/config"
	"truetrace/internal/commitment"
	deliverycontext "truetrace/internal/delivery/context"
	"truetrace/internal/domain/entity"
	domainerrors "truetrace/internal/domain/errors"
	"truetrace/internal/domain/service"
	"truetrace/internal/usecase"

	"github.com/pkg/errors"
)

// verificationService implements the VerificationUsecase interface.
type verificationService struct {
	registry service.CommitmentRegistry
	slots    entity.SlotAllocator
	logger   *slog.Logger
}

// NewVerificationService is the constructor for verificationService.
func NewVerificationService(
	cfg *config.Config,
	registry service.CommitmentRegistry,
	logger *slog.Logger,
) usecase.VerificationUsecase {
	return &verificationService{
		registry: registry,
		slots:    entity.NewSlotAllocator(cfg.Registry.LegacyFixedSlot),
		logger:   logger,
	}
}

// Verify recomputes the commitment of payloadText and compares it with the
// registered one. A mismatch is a successful verification with
// Matches=false; only missing slots and backend failures are errors.
func (srv *verificationService) Verify(ctx context.Context, slot entity.Slot, payloadText string) (*entity.VerificationResult, error) {
	if payloadText == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "payload text is required")
	}

	local, err := commitment.Digest(payloadText)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrEncodingFailed, err.Error())
	}

	registered, err := srv.registry.Read(ctx, slot)
	if err != nil {
		if errors.Is(err, service.ErrSlotEmpty) {
			return nil, errors.Wrapf(domainerrors.ErrNoRecordForSlot, "slot %d", slot)
		}

		return nil, domainerrors.NewRegistryExecuteError(err, "read commitment")
	}

	result := &entity.VerificationResult{
		Matches:            commitment.Equal(local, registered),
		LocalCommitment:    local,
		RegistryCommitment: registered,
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("Verification completed", "slot", slot, "matches", result.Matches)

	return result, nil
}

// VerifyProduct derives the product's slot and verifies against it.
func (srv *verificationService) VerifyProduct(ctx context.Context, productID string, payloadText string) (*entity.VerificationResult, error) {
	if productID == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "Product ID is required")
	}

	return srv.Verify(ctx, srv.slots.SlotFor(productID), payloadText)
}

// ReadRegistry returns the latest commitment for a slot. An unwritten slot
// reports registered=false with no error.
func (srv *verificationService) ReadRegistry(ctx context.Context, slot entity.Slot) (string, bool, error) {
	registered, err := srv.registry.Read(ctx, slot)
	if err != nil {
		if errors.Is(err, service.ErrSlotEmpty) {
			return "", false, nil
		}

		return "", false, domainerrors.NewRegistryExecuteError(err, "read commitment")
	}

	return registered, true, nil
}
