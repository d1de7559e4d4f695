// Package model contains the GORM persistence models.
package model

import "time"

// ProvenanceRecordModel is the GORM model for the provenance store: one
// row per product identity, holding the latest custody record. Upserts
// overwrite in place; history lives in the registry, not here.
type ProvenanceRecordModel struct {
	ProductID     string    `gorm:"column:product_id;type:text;primaryKey"`
	Kind          string    `gorm:"column:kind;type:text;not null"`
	CanonicalText string    `gorm:"column:canonical_text;type:text;not null"`
	RecordedAt    time.Time `gorm:"column:recorded_at;not null"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for ProvenanceRecordModel.
func (ProvenanceRecordModel) TableName() string {
	return "provenance_records"
}
