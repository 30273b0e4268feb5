package model

import (
	"time"

	"taxoffice/internal/engine"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FilingPeriodStatus enum constants
const (
	FilingStatusOpen     = "OPEN"
	FilingStatusFiled    = "FILED"
	FilingStatusAssessed = "ASSESSED"
	FilingStatusPaid     = "PAID"
)

// FilingPeriod is one taxpayer obligation for a tax type and period. The due dates
// are computed once when the period is opened and only change through an explicit
// recompute or an extension grant.
type FilingPeriod struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	TaxpayerID         uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_filing_scope" json:"taxpayer_id"`
	Taxpayer           *Taxpayer        `gorm:"foreignKey:TaxpayerID" json:"taxpayer,omitempty"`
	TaxType            string           `gorm:"type:varchar(20);not null;uniqueIndex:idx_filing_scope" json:"tax_type"`
	Label              string           `gorm:"type:varchar(50)" json:"label"`
	PeriodStart        time.Time        `gorm:"type:date;not null;uniqueIndex:idx_filing_scope" json:"period_start"`
	PeriodEnd          time.Time        `gorm:"type:date;not null;uniqueIndex:idx_filing_scope" json:"period_end"`
	Status             string           `gorm:"type:varchar(20);not null;default:'OPEN';index" json:"status"`
	BaseDueDate        time.Time        `gorm:"type:date" json:"base_due_date"`
	StatutoryDueDate   time.Time        `gorm:"type:date" json:"statutory_due_date"`
	DueDate            time.Time        `gorm:"type:date;not null;index" json:"due_date"` // effective, after extension
	RollConvention     string           `gorm:"type:varchar(30)" json:"roll_convention"`
	ExtensionApplied   bool             `gorm:"default:false" json:"extension_applied"`
	ExtensionID        *uuid.UUID       `gorm:"type:uuid" json:"extension_id"` // extension in force, if any
	FiledAt            *time.Time       `gorm:"type:date" json:"filed_at"`
	PaidAt             *time.Time       `gorm:"type:date" json:"paid_at"`
	LastPaymentAt      *time.Time       `gorm:"type:date" json:"last_payment_at"` // latest payment received, settled or not
	DeclaredAmount     *decimal.Decimal `gorm:"type:decimal(20,2)" json:"declared_amount"`
	PaidAmount         decimal.Decimal  `gorm:"type:decimal(20,2);not null;default:0" json:"paid_amount"`
	AssessedAmount     *decimal.Decimal `gorm:"type:decimal(20,2)" json:"assessed_amount"`
	Declaration        string           `gorm:"type:jsonb" json:"declaration"` // filed declaration payload
	PenaltyAmount      decimal.Decimal  `gorm:"type:decimal(20,2);not null;default:0" json:"penalty_amount"`
	InterestAmount     decimal.Decimal  `gorm:"type:decimal(20,2);not null;default:0" json:"interest_amount"`
	UnderDeclaration   decimal.Decimal  `gorm:"type:decimal(20,2);not null;default:0" json:"under_declaration_penalty"`
	PenaltyBracket     string           `gorm:"type:varchar(30)" json:"penalty_bracket"`
	AssessedAt         *time.Time       `gorm:"type:date" json:"assessed_at"`
	Assessment         string           `gorm:"type:jsonb" json:"assessment"` // serialized liability breakdown
	RequiredDocuments  string           `gorm:"type:jsonb" json:"required_documents"`
	SubmittedDocuments string           `gorm:"type:jsonb" json:"submitted_documents"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func (f *FilingPeriod) BeforeCreate(*gorm.DB) error {
	assignID(&f.ID)
	if f.RequiredDocuments == "" {
		f.RequiredDocuments = "[]"
	}
	if f.SubmittedDocuments == "" {
		f.SubmittedDocuments = "[]"
	}
	if f.Declaration == "" {
		f.Declaration = "{}"
	}
	if f.Assessment == "" {
		f.Assessment = "{}"
	}
	return nil
}

// Period is the engine view of the filing period.
func (f FilingPeriod) Period() engine.Period {
	return engine.Period{
		Label: f.Label,
		Start: engine.Date(f.PeriodStart),
		End:   engine.Date(f.PeriodEnd),
	}
}

// AmountDue is the assessed liability when known, else the declared one.
func (f FilingPeriod) AmountDue() decimal.Decimal {
	switch {
	case f.AssessedAmount != nil:
		return *f.AssessedAmount
	case f.DeclaredAmount != nil:
		return *f.DeclaredAmount
	default:
		return decimal.Zero
	}
}

// FilingRecord is the compliance view of the filing obligation.
func (f FilingPeriod) FilingRecord() engine.FilingRecord {
	return engine.FilingRecord{
		TaxType:   engine.TaxType(f.TaxType),
		PeriodKey: f.Period().Key(),
		DueDate:   engine.Date(f.DueDate),
		FiledAt:   datePtr(f.FiledAt),
	}
}

// PaymentRecord is the compliance view of the payment obligation. Periods with
// nothing to pay carry no payment obligation.
func (f FilingPeriod) PaymentRecord() (engine.PaymentRecord, bool) {
	due := f.AmountDue()
	if !due.IsPositive() {
		return engine.PaymentRecord{}, false
	}
	return engine.PaymentRecord{
		TaxType: engine.TaxType(f.TaxType),
		DueDate: engine.Date(f.DueDate),
		PaidAt:  datePtr(f.PaidAt),
		Amount:  due,
	}, true
}
