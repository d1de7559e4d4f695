package impl

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"truetrace/config"
	deliverycontext "truetrace/internal/delivery/context"
	"truetrace/internal/domain/entity"
	domainerrors "truetrace/internal/domain/errors"
	"truetrace/internal/domain/repository"
	"truetrace/internal/domain/service"
	"truetrace/internal/infra/persistence/memory"
	"truetrace/internal/infra/qrcode"
	"truetrace/internal/infra/registry"
	"truetrace/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type provenanceFixture struct {
	svc      usecase.ProvenanceUsecase
	records  repository.RecordRepository
	registry service.CommitmentRegistry
}

func newProvenanceFixture(legacyFixedSlot bool) *provenanceFixture {
	cfg := &config.Config{}
	cfg.Registry.Writer = "test-writer"
	cfg.Registry.LegacyFixedSlot = legacyFixedSlot

	records := memory.NewRecordRepository()
	reg := registry.NewMemoryRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &provenanceFixture{
		svc:      NewProvenanceService(cfg, records, reg, qrcode.NewQRCodeService(256, "M"), logger),
		records:  records,
		registry: reg,
	}
}

// flakyRegistry delegates to a real backend but fails writes while down.
type flakyRegistry struct {
	service.CommitmentRegistry
	down bool
}

func (r *flakyRegistry) Register(ctx context.Context, slot entity.Slot, commitment string, writer string) (*entity.WriteReceipt, error) {
	if r.down {
		return nil, errors.Wrapf(service.ErrRegistryUnavailable, "register slot %d: connection refused", slot)
	}

	return r.CommitmentRegistry.Register(ctx, slot, commitment, writer)
}

// failingRegistry simulates an unreachable ledger backend.
type failingRegistry struct{}

func (failingRegistry) Register(_ context.Context, slot entity.Slot, _ string, _ string) (*entity.WriteReceipt, error) {
	return nil, errors.Wrapf(service.ErrRegistryUnavailable, "register slot %d: connection refused", slot)
}

func (failingRegistry) Read(_ context.Context, slot entity.Slot) (string, error) {
	return "", errors.Wrapf(service.ErrRegistryUnavailable, "read slot %d: connection refused", slot)
}

func manufacturerInput() *usecase.CreateManufacturerRecordInput {
	return &usecase.CreateManufacturerRecordInput{
		CompanyName: "Acme Corp",
		Address:     "1 Factory Road",
		ProductID:   "SKU-1001",
		ProductName: "Widget",
		Brand:       "Acme",
	}
}

func retailerInput(productID string) *usecase.CreateRetailerRecordInput {
	return &usecase.CreateRetailerRecordInput{
		ProductID:     productID,
		OutletName:    "Corner Store",
		OutletAddress: "2 Market Street",
		BatchNumber:   "B-42",
		Brand:         "Acme",
	}
}

func TestProvenanceService_CreateManufacturerRecord(t *testing.T) {
	fixture := newProvenanceFixture(false)
	ctx := context.Background()

	result, err := fixture.svc.CreateManufacturerRecord(ctx, manufacturerInput())
	require.NoError(t, err)

	assert.Equal(t, entity.KindManufacturer, result.Record.Kind)
	assert.Len(t, result.Commitment, 64)
	require.NotNil(t, result.Receipt)
	assert.Equal(t, result.Slot, result.Receipt.Slot)
	assert.Equal(t, "test-writer", result.Receipt.Writer)

	stored, err := fixture.records.FindByProduct(ctx, "SKU-1001")
	require.NoError(t, err)
	assert.Equal(t, result.Record.CanonicalText, stored.CanonicalText)

	registered, err := fixture.registry.Read(ctx, result.Slot)
	require.NoError(t, err)
	assert.Equal(t, result.Commitment, registered)
}

func TestProvenanceService_CreateManufacturerRecord_MissingFact(t *testing.T) {
	fixture := newProvenanceFixture(false)

	input := manufacturerInput()
	input.Brand = ""

	_, err := fixture.svc.CreateManufacturerRecord(context.Background(), input)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestProvenanceService_CreateRetailerRecord_WithoutPrior(t *testing.T) {
	fixture := newProvenanceFixture(false)

	_, err := fixture.svc.CreateRetailerRecord(context.Background(), entity.KindRetailerBatch, retailerInput("never-registered"))
	assert.ErrorIs(t, err, domainerrors.ErrRecordNotFound)
}

func TestProvenanceService_CreateRetailerRecord_ChainsPrior(t *testing.T) {
	fixture := newProvenanceFixture(false)
	ctx := context.Background()

	origin, err := fixture.svc.CreateManufacturerRecord(ctx, manufacturerInput())
	require.NoError(t, err)

	batch, err := fixture.svc.CreateRetailerRecord(ctx, entity.KindRetailerBatch, retailerInput("SKU-1001"))
	require.NoError(t, err)

	assert.Equal(t, entity.KindRetailerBatch, batch.Record.Kind)
	assert.True(t, strings.HasPrefix(batch.Record.CanonicalText, origin.Record.CanonicalText))
	assert.NotEqual(t, origin.Commitment, batch.Commitment)
	assert.Equal(t, origin.Slot, batch.Slot)

	registered, err := fixture.registry.Read(ctx, batch.Slot)
	require.NoError(t, err)
	assert.Equal(t, batch.Commitment, registered)
}

func TestProvenanceService_FinalSaleExtendsBatch(t *testing.T) {
	fixture := newProvenanceFixture(false)
	ctx := context.Background()

	_, err := fixture.svc.CreateManufacturerRecord(ctx, manufacturerInput())
	require.NoError(t, err)

	batch, err := fixture.svc.CreateRetailerRecord(ctx, entity.KindRetailerBatch, retailerInput("SKU-1001"))
	require.NoError(t, err)

	final, err := fixture.svc.CreateRetailerRecord(ctx, entity.KindRetailerFinal, retailerInput("SKU-1001"))
	require.NoError(t, err)

	assert.Equal(t, entity.KindRetailerFinal, final.Record.Kind)
	assert.True(t, strings.HasPrefix(final.Record.CanonicalText, batch.Record.CanonicalText))
	assert.Contains(t, final.Record.CanonicalText, "Sold At: ")
}

func TestProvenanceService_LegacyFixedSlot(t *testing.T) {
	fixture := newProvenanceFixture(true)
	ctx := context.Background()

	first, err := fixture.svc.CreateManufacturerRecord(ctx, manufacturerInput())
	require.NoError(t, err)

	other := manufacturerInput()
	other.ProductID = "SKU-2002"
	second, err := fixture.svc.CreateManufacturerRecord(ctx, other)
	require.NoError(t, err)

	assert.Equal(t, entity.LegacySlot, first.Slot)
	assert.Equal(t, entity.LegacySlot, second.Slot)

	registered, err := fixture.registry.Read(ctx, entity.LegacySlot)
	require.NoError(t, err)
	assert.Equal(t, second.Commitment, registered)
}

func TestProvenanceService_RegistryUnavailable(t *testing.T) {
	cfg := &config.Config{}
	cfg.Registry.Writer = "test-writer"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewProvenanceService(cfg, memory.NewRecordRepository(), failingRegistry{}, qrcode.NewQRCodeService(256, "M"), logger)

	_, err := svc.CreateManufacturerRecord(context.Background(), manufacturerInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrRegistryUnavailable)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "REGISTRY_UNAVAILABLE", appErr.ErrorCode())
}

func TestProvenanceService_RetryAfterRegistryOutage(t *testing.T) {
	cfg := &config.Config{}
	cfg.Registry.Writer = "test-writer"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	records := memory.NewRecordRepository()
	flaky := &flakyRegistry{CommitmentRegistry: registry.NewMemoryRegistry()}
	svc := NewProvenanceService(cfg, records, flaky, qrcode.NewQRCodeService(256, "M"), logger)
	ctx := context.Background()

	origin, err := svc.CreateManufacturerRecord(ctx, manufacturerInput())
	require.NoError(t, err)

	flaky.down = true
	_, err = svc.CreateRetailerRecord(ctx, entity.KindRetailerBatch, retailerInput("SKU-1001"))
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrRegistryUnavailable)

	// A failed registration must leave the store on the manufacturer record.
	stored, err := records.FindByProduct(ctx, "SKU-1001")
	require.NoError(t, err)
	assert.Equal(t, entity.KindManufacturer, stored.Kind)
	assert.Equal(t, origin.Record.CanonicalText, stored.CanonicalText)

	flaky.down = false
	retried, err := svc.CreateRetailerRecord(ctx, entity.KindRetailerBatch, retailerInput("SKU-1001"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(retried.Record.CanonicalText, "Outlet Name: Corner Store"))

	registered, err := flaky.Read(ctx, retried.Slot)
	require.NoError(t, err)
	assert.Equal(t, retried.Commitment, registered)
}

func TestProvenanceService_UsesRequestScopedLogger(t *testing.T) {
	fixture := newProvenanceFixture(false)

	var buf bytes.Buffer
	reqLogger := slog.New(slog.NewTextHandler(&buf, nil)).With(slog.String("request_id", "req-123"))
	ctx := deliverycontext.WithLogger(context.Background(), reqLogger)

	_, err := fixture.svc.CreateManufacturerRecord(ctx, manufacturerInput())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "request_id=req-123")
	assert.Contains(t, buf.String(), "Commitment registered")
}

func TestProvenanceService_ProductQR(t *testing.T) {
	fixture := newProvenanceFixture(false)
	ctx := context.Background()

	_, err := fixture.svc.CreateManufacturerRecord(ctx, manufacturerInput())
	require.NoError(t, err)

	png, err := fixture.svc.ProductQR(ctx, "SKU-1001")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestProvenanceService_ProductQR_UnknownProduct(t *testing.T) {
	fixture := newProvenanceFixture(false)

	_, err := fixture.svc.ProductQR(context.Background(), "never-registered")
	assert.ErrorIs(t, err, domainerrors.ErrRecordNotFound)
}
