package engine

import (
	"errors"
	"fmt"
	"time"
)

// Sentinels for errors.Is matching. Every typed error below unwraps to one of these.
var (
	ErrNoApplicableRule          = errors.New("no applicable rule")
	ErrConfigurationConflict     = errors.New("configuration conflict")
	ErrStatutoryMinimumViolation = errors.New("statutory minimum violation")
	ErrUnitBasisMismatch         = errors.New("unit basis mismatch")

	// ErrInvalidDeclaration marks malformed declared figures, such as negative amounts.
	ErrInvalidDeclaration = errors.New("invalid declaration")
)

// NoApplicableRuleError is returned when no rate book, penalty rule or deadline rule
// resolves for the requested key and date. Callers must never treat it as a zero rate.
type NoApplicableRuleError struct {
	Kind         string // "rate_book", "rate_entry", "penalty_rule", "deadline_rule"
	TaxType      TaxType
	Jurisdiction string
	Key          string
	AsOf         time.Time
}

func (e *NoApplicableRuleError) Error() string {
	msg := fmt.Sprintf("no applicable %s for tax type '%s'", e.Kind, e.TaxType)
	if e.Jurisdiction != "" {
		msg += fmt.Sprintf(" in '%s'", e.Jurisdiction)
	}
	if e.Key != "" {
		msg += fmt.Sprintf(" (key '%s')", e.Key)
	}
	if !e.AsOf.IsZero() {
		msg += " on " + FormatDate(e.AsOf)
	}
	return msg
}

func (e *NoApplicableRuleError) Unwrap() error { return ErrNoApplicableRule }

// ConfigurationConflictError is raised at configuration write time: overlapping
// versions, gaps in a version chain, malformed brackets or weights.
type ConfigurationConflictError struct {
	Subject string
	Reason  string
}

func (e *ConfigurationConflictError) Error() string {
	return fmt.Sprintf("configuration conflict for %s: %s", e.Subject, e.Reason)
}

func (e *ConfigurationConflictError) Unwrap() error { return ErrConfigurationConflict }

// StatutoryMinimumViolationError rejects an extension that would pull a deadline
// before its statutory date.
type StatutoryMinimumViolationError struct {
	TaxpayerID  string
	TaxType     TaxType
	Statutory   time.Time
	RequestedTo time.Time
}

func (e *StatutoryMinimumViolationError) Error() string {
	return fmt.Sprintf("extension for taxpayer '%s' (%s) to %s precedes statutory due date %s",
		e.TaxpayerID, e.TaxType, FormatDate(e.RequestedTo), FormatDate(e.Statutory))
}

func (e *StatutoryMinimumViolationError) Unwrap() error { return ErrStatutoryMinimumViolation }

// UnitBasisMismatchError is returned when a declared excise quantity is measured in a
// different unit than the resolved rate entry.
type UnitBasisMismatchError struct {
	ProductCode string
	Declared    UnitBasis
	Expected    UnitBasis
}

func (e *UnitBasisMismatchError) Error() string {
	return fmt.Sprintf("product '%s' declared in %s but rate entry is per %s",
		e.ProductCode, e.Declared, e.Expected)
}

func (e *UnitBasisMismatchError) Unwrap() error { return ErrUnitBasisMismatch }

func conflict(subject, format string, args ...any) error {
	return &ConfigurationConflictError{Subject: subject, Reason: fmt.Sprintf(format, args...)}
}
