package model

import (
	"slices"
	"strings"
	"time"

	"taxoffice/internal/engine"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Taxpayer is a client of the office. Category is derived from Turnover and is
// recomputed whenever turnover changes.
type Taxpayer struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	TaxCode       string          `gorm:"type:varchar(50);uniqueIndex" json:"tax_code"`
	Jurisdiction  string          `gorm:"type:varchar(20);not null;index" json:"jurisdiction"`
	Turnover      decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"turnover"`
	Category      string          `gorm:"type:varchar(20);not null;index" json:"category"`
	Reliefs       string          `gorm:"type:varchar(255)" json:"reliefs"` // comma separated relief flags
	ContactPerson string          `gorm:"type:varchar(255)" json:"contact_person"`
	Email         string          `gorm:"type:varchar(255)" json:"email"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (t *Taxpayer) BeforeCreate(*gorm.DB) error {
	assignID(&t.ID)
	return nil
}

// ReliefFlags splits the stored relief list.
func (t Taxpayer) ReliefFlags() []engine.ReliefFlag {
	var out []engine.ReliefFlag
	for _, f := range strings.Split(t.Reliefs, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, engine.ReliefFlag(f))
		}
	}
	return out
}

// JoinReliefs is the inverse of ReliefFlags. Flags are upper-cased and deduplicated.
func JoinReliefs(flags []string) string {
	cleaned := make([]string, 0, len(flags))
	for _, f := range flags {
		if f = strings.ToUpper(strings.TrimSpace(f)); f != "" && !slices.Contains(cleaned, f) {
			cleaned = append(cleaned, f)
		}
	}
	return strings.Join(cleaned, ",")
}

// Profile is the engine view of the taxpayer.
func (t Taxpayer) Profile() engine.TaxpayerProfile {
	return engine.TaxpayerProfile{
		ID:           t.ID.String(),
		Jurisdiction: t.Jurisdiction,
		Category:     engine.Category(t.Category),
		Turnover:     t.Turnover,
		Reliefs:      t.ReliefFlags(),
	}
}
