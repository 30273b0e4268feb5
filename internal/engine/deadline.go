package engine

import (
	"sync"
	"time"
)

// DeadlineBase is how the statutory date is derived from the period.
type DeadlineBase string

const (
	BaseFixedDate          DeadlineBase = "FIXED_DATE"
	BaseDaysAfterPeriodEnd DeadlineBase = "DAYS_AFTER_PERIOD_END"
)

// DeadlineRule is the statutory base rule of one tax type. Jurisdiction "" is the
// default used when a jurisdiction has no specific rule.
type DeadlineRule struct {
	TaxType      TaxType
	Jurisdiction string
	Base         DeadlineBase
	Month        time.Month
	Day          int
	YearOffset   int
	Days         int
	Roll         RollConvention
}

// Validate checks a rule before registration.
func (r DeadlineRule) Validate() error {
	subject := "deadline rule " + string(r.TaxType)
	if !r.TaxType.Valid() {
		return conflict(subject, "unknown tax type")
	}
	switch r.Base {
	case BaseFixedDate:
		if r.Month < time.January || r.Month > time.December || r.Day < 1 || r.Day > 31 {
			return conflict(subject, "fixed date needs a valid month and day")
		}
	case BaseDaysAfterPeriodEnd:
		if r.Days < 0 {
			return conflict(subject, "days after period end must not be negative")
		}
	default:
		return conflict(subject, "unknown base '%s'", r.Base)
	}
	if r.Roll != RollNext && r.Roll != RollPrevious {
		return conflict(subject, "unknown roll convention '%s'", r.Roll)
	}
	return nil
}

func (r DeadlineRule) baseDate(p Period) time.Time {
	if r.Base == BaseDaysAfterPeriodEnd {
		return Date(p.End).AddDate(0, 0, r.Days)
	}
	year := p.End.Year() + r.YearOffset
	day := r.Day
	if last := lastDayOfMonth(year, r.Month); day > last {
		day = last
	}
	return NewDate(year, r.Month, day)
}

func lastDayOfMonth(year int, month time.Month) int {
	return NewDate(year, month+1, 1).AddDate(0, 0, -1).Day()
}

// ClientDeadlineExtension shifts one taxpayer's due date for one period and tax type.
type ClientDeadlineExtension struct {
	TaxpayerID string
	TaxType    TaxType
	PeriodKey  string
	ExtendedTo time.Time
	Reason     string
	ApprovedBy string
}

// DeadlineInput is everything ComputeDueDate needs.
type DeadlineInput struct {
	TaxType   TaxType
	Period    Period
	Taxpayer  TaxpayerProfile
	Extension *ClientDeadlineExtension
}

// DueDate explains how a deadline was reached.
type DueDate struct {
	TaxType          TaxType
	Base             time.Time
	Statutory        time.Time
	Effective        time.Time
	Roll             RollConvention
	ExtensionApplied bool
}

// DeadlineRuleEngine computes statutory due dates.
type DeadlineRuleEngine struct {
	mu        sync.RWMutex
	rules     map[rateBookKey]DeadlineRule
	calendars *CalendarSet
}

// NewDeadlineRuleEngine creates an engine over calendars.
func NewDeadlineRuleEngine(calendars *CalendarSet) *DeadlineRuleEngine {
	return &DeadlineRuleEngine{
		rules:     make(map[rateBookKey]DeadlineRule),
		calendars: calendars,
	}
}

// SetRule registers or replaces the base rule of a tax type. Replacing a rule does not
// touch due dates already stored on filing periods.
func (e *DeadlineRuleEngine) SetRule(rule DeadlineRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules[rateBookKey{rule.TaxType, rule.Jurisdiction}] = rule
	return nil
}

// Rule returns the rule in use for taxType in jurisdiction.
func (e *DeadlineRuleEngine) Rule(taxType TaxType, jurisdiction string) (DeadlineRule, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if r, ok := e.rules[rateBookKey{taxType, jurisdiction}]; ok {
		return r, nil
	}
	if r, ok := e.rules[rateBookKey{taxType, ""}]; ok {
		return r, nil
	}
	return DeadlineRule{}, &NoApplicableRuleError{Kind: "deadline_rule", TaxType: taxType, Jurisdiction: jurisdiction}
}

// StatutoryDueDate applies the base rule and the roll convention.
func (e *DeadlineRuleEngine) StatutoryDueDate(taxType TaxType, period Period, jurisdiction string) (DueDate, error) {
	rule, err := e.Rule(taxType, jurisdiction)
	if err != nil {
		return DueDate{}, err
	}
	base := rule.baseDate(period)
	statutory := e.calendars.For(jurisdiction).Roll(base, rule.Roll)
	return DueDate{
		TaxType:   taxType,
		Base:      base,
		Statutory: statutory,
		Effective: statutory,
		Roll:      rule.Roll,
	}, nil
}

// ComputeDueDate returns the due date for the input, honouring a matching extension.
func (e *DeadlineRuleEngine) ComputeDueDate(in DeadlineInput) (DueDate, error) {
	due, err := e.StatutoryDueDate(in.TaxType, in.Period, in.Taxpayer.Jurisdiction)
	if err != nil {
		return DueDate{}, err
	}
	if in.Extension == nil {
		return due, nil
	}

	ext := in.Extension
	if ext.TaxpayerID != in.Taxpayer.ID || ext.TaxType != in.TaxType || ext.PeriodKey != in.Period.Key() {
		return DueDate{}, conflict("deadline extension", "extension for %s/%s/%s does not match %s/%s/%s",
			ext.TaxpayerID, ext.TaxType, ext.PeriodKey, in.Taxpayer.ID, in.TaxType, in.Period.Key())
	}
	extended, err := e.extendedDate(due, in.Taxpayer, *ext)
	if err != nil {
		return DueDate{}, err
	}
	due.Effective = extended
	due.ExtensionApplied = true
	return due, nil
}

// ValidateExtension checks an extension against the statutory date before it is granted.
func (e *DeadlineRuleEngine) ValidateExtension(period Period, taxpayer TaxpayerProfile, ext ClientDeadlineExtension) (DueDate, error) {
	return e.ComputeDueDate(DeadlineInput{
		TaxType:   ext.TaxType,
		Period:    period,
		Taxpayer:  taxpayer,
		Extension: &ext,
	})
}

// extendedDate rejects extensions earlier than the statutory date, and rolls an
// extension landing on a non-business day forward.
func (e *DeadlineRuleEngine) extendedDate(due DueDate, taxpayer TaxpayerProfile, ext ClientDeadlineExtension) (time.Time, error) {
	to := Date(ext.ExtendedTo)
	if to.Before(due.Statutory) {
		return time.Time{}, &StatutoryMinimumViolationError{
			TaxpayerID:  taxpayer.ID,
			TaxType:     due.TaxType,
			Statutory:   due.Statutory,
			RequestedTo: to,
		}
	}
	return e.calendars.For(taxpayer.Jurisdiction).NextBusinessDay(to), nil
}
