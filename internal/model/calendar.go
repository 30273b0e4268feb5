package model

import (
	"time"

	"taxoffice/internal/engine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Holiday is an append-only non-business date of a jurisdiction
type Holiday struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Jurisdiction string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_holiday_day" json:"jurisdiction"`
	Date         time.Time `gorm:"column:holiday_date;type:date;not null;uniqueIndex:idx_holiday_day" json:"date"`
	Name         string    `gorm:"type:varchar(255)" json:"name"`
	CreatedBy    string    `gorm:"type:varchar(100)" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// DeadlineRule is the statutory base rule of a tax type. An empty jurisdiction is
// the default rule.
type DeadlineRule struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TaxType        string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_deadline_scope" json:"tax_type"`
	Jurisdiction   string    `gorm:"type:varchar(20);not null;default:'';uniqueIndex:idx_deadline_scope" json:"jurisdiction"`
	Base           string    `gorm:"type:varchar(30);not null" json:"base"` // FIXED_DATE, DAYS_AFTER_PERIOD_END
	Month          int       `json:"month"`
	Day            int       `json:"day"`
	YearOffset     int       `json:"year_offset"`
	Days           int       `json:"days"`
	RollConvention string    `gorm:"type:varchar(30);not null" json:"roll_convention"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (h *Holiday) BeforeCreate(*gorm.DB) error {
	assignID(&h.ID)
	return nil
}

func (r *DeadlineRule) BeforeCreate(*gorm.DB) error {
	assignID(&r.ID)
	return nil
}

// ToEngine converts the stored rule into the engine's value type.
func (r DeadlineRule) ToEngine() engine.DeadlineRule {
	return engine.DeadlineRule{
		TaxType:      engine.TaxType(r.TaxType),
		Jurisdiction: r.Jurisdiction,
		Base:         engine.DeadlineBase(r.Base),
		Month:        time.Month(r.Month),
		Day:          r.Day,
		YearOffset:   r.YearOffset,
		Days:         r.Days,
		Roll:         engine.RollConvention(r.RollConvention),
	}
}
