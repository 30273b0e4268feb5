package model

import (
	"time"

	"taxoffice/internal/engine"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RateBook stores one effective-dated version of a tax's rate table
type RateBook struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TaxType       string     `gorm:"type:varchar(20);not null;index:idx_rate_book_scope" json:"tax_type"`
	Jurisdiction  string     `gorm:"type:varchar(20);not null;index:idx_rate_book_scope" json:"jurisdiction"`
	EffectiveFrom time.Time  `gorm:"type:date;not null;index" json:"effective_from"`
	EffectiveTo   *time.Time `gorm:"type:date;index" json:"effective_to"` // exclusive, nullable = open
	Description   string     `gorm:"type:text" json:"description"`

	// Minimum alternate tax floor, corporate books only
	MinimumTaxRate            *decimal.Decimal `gorm:"type:decimal(12,6)" json:"minimum_tax_rate"`
	MinimumTaxPeriods         int              `gorm:"default:0" json:"minimum_tax_periods"`
	MinimumTaxProfitThreshold *decimal.Decimal `gorm:"type:decimal(20,2)" json:"minimum_tax_profit_threshold"`

	Entries   []RateEntry `gorm:"foreignKey:RateBookID;constraint:OnDelete:CASCADE" json:"entries"`
	CreatedBy string      `gorm:"type:varchar(100)" json:"created_by"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// RateEntry is one row of a rate book: a bracket, a code-specific rate or a per-unit duty
type RateEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	RateBookID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"rate_book_id"`
	Position    int             `gorm:"not null" json:"position"`
	Code        string          `gorm:"type:varchar(50)" json:"code"`
	Category    string          `gorm:"type:varchar(20)" json:"category"`
	Threshold   decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"threshold"`
	Rate        decimal.Decimal `gorm:"type:decimal(12,6);not null" json:"rate"`
	FixedFee    decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"fixed_fee"`
	UnitBasis   string          `gorm:"type:varchar(10)" json:"unit_basis"`
	Description string          `gorm:"type:text" json:"description"`
}

func (b *RateBook) BeforeCreate(*gorm.DB) error {
	assignID(&b.ID)
	return nil
}

func (e *RateEntry) BeforeCreate(*gorm.DB) error {
	assignID(&e.ID)
	return nil
}

// ToEngine converts the stored version into the engine's value type.
func (b RateBook) ToEngine() engine.RateBook {
	out := engine.RateBook{
		ID:            b.ID.String(),
		Jurisdiction:  b.Jurisdiction,
		TaxType:       engine.TaxType(b.TaxType),
		EffectiveFrom: engine.Date(b.EffectiveFrom),
		EffectiveTo:   datePtr(b.EffectiveTo),
		Entries:       make([]engine.RateEntry, 0, len(b.Entries)),
	}
	for _, e := range sortedEntries(b.Entries) {
		out.Entries = append(out.Entries, engine.RateEntry{
			Code:        e.Code,
			Category:    engine.Category(e.Category),
			Threshold:   e.Threshold,
			Rate:        e.Rate,
			FixedFee:    e.FixedFee,
			UnitBasis:   engine.UnitBasis(e.UnitBasis),
			Description: e.Description,
		})
	}
	if b.MinimumTaxRate != nil {
		rule := engine.MinimumTaxRule{Rate: *b.MinimumTaxRate, ConsecutivePeriods: b.MinimumTaxPeriods}
		if b.MinimumTaxProfitThreshold != nil {
			rule.ProfitThreshold = *b.MinimumTaxProfitThreshold
		}
		out.MinimumTax = &rule
	}
	return out
}

func sortedEntries(entries []RateEntry) []RateEntry {
	out := make([]RateEntry, len(entries))
	copy(out, entries)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Position < out[j-1].Position; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
