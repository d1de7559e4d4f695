// Package entity contains the core business objects of the project.
package entity

import (
	"strings"
	"time"

	"truetrace/internal/errors"
)

// ErrMissingFact is returned when a required fact is absent. Records are
// all-or-nothing: an empty field would change the canonical text silently,
// so partial records are rejected before serialization.
var ErrMissingFact = errors.New("missing required fact")

// RecordKind discriminates which canonical template produced a record's text.
type RecordKind string

const (
	KindManufacturer  RecordKind = "manufacturer"
	KindRetailerBatch RecordKind = "retailer_batch"
	KindRetailerFinal RecordKind = "retailer_final"
)

// ManufacturerFacts are the facts a manufacturer submits when registering
// the origin of a product lot.
type ManufacturerFacts struct {
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Brand       string `json:"brand"`
}

// RetailerFacts are the facts a retailer or seller appends on top of an
// existing manufacturer record.
type RetailerFacts struct {
	OutletName    string `json:"outlet_name"`
	OutletAddress string `json:"outlet_address"`
	BatchNumber   string `json:"batch_number"`
	Brand         string `json:"brand"`
}

// ProvenanceRecord is an immutable custody record. CanonicalText is the
// exact byte sequence that gets hashed; it is produced once here and never
// re-derived from the facts at verification time.
type ProvenanceRecord struct {
	Kind          RecordKind `json:"kind"`
	ProductID     string     `json:"product_id"`
	CanonicalText string     `json:"canonical_text"`
	RecordedAt    time.Time  `json:"recorded_at"`
}

// Canonical template labels, version 1. Field order, label wording, and
// whitespace are load-bearing: any change alters every future commitment
// and must ship as a new template version, never as an edit.
const (
	labelCompanyName   = "Company Name"
	labelAddress       = "Address"
	labelProductID     = "Product ID"
	labelProductName   = "Product Name"
	labelBrand         = "Brand"
	labelRegisteredAt  = "Registered At"
	labelOutletName    = "Outlet Name"
	labelOutletAddress = "Outlet Address"
	labelBatchNumber   = "Batch Number"
	labelRecordedAt    = "Recorded At"
	labelSoldAt        = "Sold At"
)

// NewManufacturerRecord builds the canonical manufacturer record for a
// product lot. All facts are required.
func NewManufacturerRecord(facts ManufacturerFacts, recordedAt time.Time) (*ProvenanceRecord, error) {
	required := []struct {
		label string
		value string
	}{
		{labelCompanyName, facts.CompanyName},
		{labelAddress, facts.Address},
		{labelProductID, facts.ProductID},
		{labelProductName, facts.ProductName},
		{labelBrand, facts.Brand},
	}

	var text strings.Builder
	for _, fact := range required {
		if fact.value == "" {
			return nil, errors.Wrapf(ErrMissingFact, "%s is required", fact.label)
		}
		writeFactLine(&text, fact.label, fact.value)
	}

	recordedAt = recordedAt.UTC()
	text.WriteString(labelRegisteredAt + ": " + recordedAt.Format(time.RFC3339))

	return &ProvenanceRecord{
		Kind:          KindManufacturer,
		ProductID:     facts.ProductID,
		CanonicalText: text.String(),
		RecordedAt:    recordedAt,
	}, nil
}

// NewRetailerRecord builds a retailer custody record on top of the prior
// record in the chain. The prior record's canonical text is embedded
// verbatim, so the new commitment supersedes and subsumes the old one.
func NewRetailerRecord(prior *ProvenanceRecord, facts RetailerFacts, kind RecordKind, recordedAt time.Time) (*ProvenanceRecord, error) {
	var timestampLabel string
	switch kind {
	case KindRetailerBatch:
		timestampLabel = labelRecordedAt
	case KindRetailerFinal:
		timestampLabel = labelSoldAt
	default:
		return nil, errors.Errorf("kind %q is not a retailer record kind", kind)
	}

	if prior == nil {
		return nil, errors.New("retailer record requires a prior record")
	}

	required := []struct {
		label string
		value string
	}{
		{labelOutletName, facts.OutletName},
		{labelOutletAddress, facts.OutletAddress},
		{labelBatchNumber, facts.BatchNumber},
		{labelBrand, facts.Brand},
	}

	var text strings.Builder
	text.WriteString(prior.CanonicalText)
	text.WriteString("\n")
	for _, fact := range required {
		if fact.value == "" {
			return nil, errors.Wrapf(ErrMissingFact, "%s is required", fact.label)
		}
		writeFactLine(&text, fact.label, fact.value)
	}

	recordedAt = recordedAt.UTC()
	text.WriteString(timestampLabel + ": " + recordedAt.Format(time.RFC3339))

	return &ProvenanceRecord{
		Kind:          kind,
		ProductID:     prior.ProductID,
		CanonicalText: text.String(),
		RecordedAt:    recordedAt,
	}, nil
}

func writeFactLine(text *strings.Builder, label, value string) {
	text.WriteString(label)
	text.WriteString(": ")
	text.WriteString(value)
	text.WriteString("\n")
}
