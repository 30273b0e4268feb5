package model

import (
	"time"

	"taxoffice/internal/engine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeadlineExtension records an approved extension of one filing period. Rows are
// never updated; a later grant for the same period supersedes the earlier one.
type DeadlineExtension struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	FilingPeriodID uuid.UUID     `gorm:"type:uuid;not null;index" json:"filing_period_id"`
	FilingPeriod   *FilingPeriod `gorm:"foreignKey:FilingPeriodID" json:"-"`
	TaxpayerID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"taxpayer_id"`
	TaxType        string        `gorm:"type:varchar(20);not null" json:"tax_type"`
	PeriodKey      string        `gorm:"type:varchar(30);not null" json:"period_key"`
	ExtendedTo     time.Time     `gorm:"type:date;not null" json:"extended_to"`
	Reason         string        `gorm:"type:text" json:"reason"`
	ApprovedBy     string        `gorm:"type:varchar(100);not null" json:"approved_by"`
	CreatedAt      time.Time     `gorm:"index" json:"created_at"`
}

func (e *DeadlineExtension) BeforeCreate(*gorm.DB) error {
	assignID(&e.ID)
	return nil
}

// ToEngine converts the stored extension into the engine's value type.
func (e DeadlineExtension) ToEngine() engine.ClientDeadlineExtension {
	return engine.ClientDeadlineExtension{
		TaxpayerID: e.TaxpayerID.String(),
		TaxType:    engine.TaxType(e.TaxType),
		PeriodKey:  e.PeriodKey,
		ExtendedTo: engine.Date(e.ExtendedTo),
		Reason:     e.Reason,
		ApprovedBy: e.ApprovedBy,
	}
}
