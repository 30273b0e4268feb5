package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreateRateBook       = "CREATE_RATE_BOOK"
	ActionSupersedeRateBook    = "SUPERSEDE_RATE_BOOK"
	ActionCreatePenaltyRule    = "CREATE_PENALTY_RULE"
	ActionSupersedePenaltyRule = "SUPERSEDE_PENALTY_RULE"
	ActionAddHoliday           = "ADD_HOLIDAY"
	ActionSetDeadlineRule      = "SET_DEADLINE_RULE"

	ActionCreateTaxpayer     = "CREATE_TAXPAYER"
	ActionUpdateTurnover     = "UPDATE_TURNOVER"
	ActionRecategorize       = "RECATEGORIZE_TAXPAYER"
	ActionUpdateReliefs      = "UPDATE_RELIEFS"
	ActionOpenFilingPeriod   = "OPEN_FILING_PERIOD"
	ActionFileReturn         = "FILE_RETURN"
	ActionRecordPayment      = "RECORD_PAYMENT"
	ActionSubmitDocument     = "SUBMIT_DOCUMENT"
	ActionAssessLiability    = "ASSESS_LIABILITY"
	ActionGrantExtension     = "GRANT_EXTENSION"
	ActionRecomputeDueDate   = "RECOMPUTE_DUE_DATE"
	ActionComplianceSnapshot = "COMPLIANCE_SNAPSHOT"
)

// AuditLog tracks Who, What, and When for configuration writes and decisions
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Actor      string    `gorm:"type:varchar(100);index" json:"actor"` // token subject, or "system" for batch jobs
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string    `gorm:"type:jsonb" json:"details"` // Serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}
