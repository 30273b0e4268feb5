package model

import (
	"time"

	"taxoffice/internal/engine"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PenaltyRule is one effective-dated cell of the penalty matrix
type PenaltyRule struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	TaxType       string           `gorm:"type:varchar(20);not null;index:idx_penalty_scope" json:"tax_type"`
	Jurisdiction  string           `gorm:"type:varchar(20);not null;index:idx_penalty_scope" json:"jurisdiction"`
	Category      string           `gorm:"type:varchar(20);index:idx_penalty_scope" json:"category"` // empty = any category
	Bracket       string           `gorm:"type:varchar(30);not null;index:idx_penalty_scope" json:"bracket"`
	FlatAmount    *decimal.Decimal `gorm:"type:decimal(20,2)" json:"flat_amount"`
	Percentage    *decimal.Decimal `gorm:"type:decimal(12,6)" json:"percentage"`
	Additive      bool             `gorm:"default:false" json:"additive"`
	EffectiveFrom time.Time        `gorm:"type:date;not null;index" json:"effective_from"`
	EffectiveTo   *time.Time       `gorm:"type:date;index" json:"effective_to"`
	Description   string           `gorm:"type:text" json:"description"`
	CreatedBy     string           `gorm:"type:varchar(100)" json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (p *PenaltyRule) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// ToEngine converts the stored rule into the engine's value type.
func (p PenaltyRule) ToEngine() engine.PenaltyRule {
	return engine.PenaltyRule{
		ID:            p.ID.String(),
		Jurisdiction:  p.Jurisdiction,
		TaxType:       engine.TaxType(p.TaxType),
		Category:      engine.Category(p.Category),
		Bracket:       engine.PenaltyBracket(p.Bracket),
		FlatAmount:    p.FlatAmount,
		Percentage:    p.Percentage,
		Additive:      p.Additive,
		EffectiveFrom: engine.Date(p.EffectiveFrom),
		EffectiveTo:   datePtr(p.EffectiveTo),
	}
}
