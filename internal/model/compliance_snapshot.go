package model

import (
	"encoding/json"
	"time"

	"taxoffice/internal/engine"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ComplianceSnapshot is an append-only point-in-time compliance score
type ComplianceSnapshot struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TaxpayerID           uuid.UUID       `gorm:"type:uuid;not null;index:idx_snapshot_history" json:"taxpayer_id"`
	PeriodKey            string          `gorm:"type:varchar(30);not null;index:idx_snapshot_history" json:"period_key"`
	PeriodLabel          string          `gorm:"type:varchar(50)" json:"period_label"`
	AsOf                 time.Time       `gorm:"type:date;not null;index:idx_snapshot_history" json:"as_of"`
	FilingCompleteness   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"filing_completeness"`
	PaymentTimeliness    decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"payment_timeliness"`
	DocumentCompleteness decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"document_completeness"`
	GeneralTimeliness    decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"general_timeliness"`
	Overall              decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"overall"`
	WeightsName          string          `gorm:"type:varchar(50)" json:"weights_name"`
	Weights              string          `gorm:"type:jsonb" json:"weights"`
	Digest               string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"digest"`
	CreatedAt            time.Time       `gorm:"index" json:"created_at"`
}

func (s *ComplianceSnapshot) BeforeCreate(*gorm.DB) error {
	assignID(&s.ID)
	return nil
}

type snapshotWeights struct {
	FilingCompleteness   string `json:"filing_completeness"`
	PaymentTimeliness    string `json:"payment_timeliness"`
	DocumentCompleteness string `json:"document_completeness"`
	GeneralTimeliness    string `json:"general_timeliness"`
}

// NewComplianceSnapshot builds the stored row for an engine snapshot.
func NewComplianceSnapshot(taxpayerID uuid.UUID, snap engine.ComplianceScoreSnapshot) ComplianceSnapshot {
	weights, _ := json.Marshal(snapshotWeights{
		FilingCompleteness:   snap.Weights.FilingCompleteness.String(),
		PaymentTimeliness:    snap.Weights.PaymentTimeliness.String(),
		DocumentCompleteness: snap.Weights.DocumentCompleteness.String(),
		GeneralTimeliness:    snap.Weights.GeneralTimeliness.String(),
	})
	return ComplianceSnapshot{
		TaxpayerID:           taxpayerID,
		PeriodKey:            snap.PeriodKey,
		PeriodLabel:          snap.PeriodLabel,
		AsOf:                 snap.AsOf,
		FilingCompleteness:   snap.FilingCompleteness,
		PaymentTimeliness:    snap.PaymentTimeliness,
		DocumentCompleteness: snap.DocumentCompleteness,
		GeneralTimeliness:    snap.GeneralTimeliness,
		Overall:              snap.Overall,
		WeightsName:          snap.Weights.Name,
		Weights:              string(weights),
		Digest:               snap.Digest,
	}
}
