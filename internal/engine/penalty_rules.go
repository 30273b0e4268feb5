package engine

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// PenaltyBracket classifies how late (or how wrong) a filing is.
type PenaltyBracket string

const (
	BracketOnTime              PenaltyBracket = "ON_TIME"
	BracketLateFiler           PenaltyBracket = "LATE_FILER"
	BracketNonFiler            PenaltyBracket = "NON_FILER"
	BracketUnderDeclaration    PenaltyBracket = "UNDER_DECLARATION"
	BracketLatePaymentInterest PenaltyBracket = "LATE_PAYMENT_INTEREST"
)

// Valid reports whether b is a bracket a rule can be configured for.
func (b PenaltyBracket) Valid() bool {
	switch b {
	case BracketLateFiler, BracketNonFiler, BracketUnderDeclaration, BracketLatePaymentInterest:
		return true
	}
	return false
}

// PenaltyRule is one effective-dated cell of the penalty matrix. Percentage is a
// fraction of the base (tax due, or the under-declared difference). For the
// late-payment-interest bracket it is an annual rate.
type PenaltyRule struct {
	ID            string
	Jurisdiction  string
	TaxType       TaxType
	Category      Category
	Bracket       PenaltyBracket
	FlatAmount    *decimal.Decimal
	Percentage    *decimal.Decimal
	Additive      bool
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
}

func (p PenaltyRule) window() Window {
	return Window{From: p.EffectiveFrom, To: p.EffectiveTo}
}

func (p PenaltyRule) closedAt(to time.Time) PenaltyRule {
	c := p.clone()
	c.EffectiveTo = &to
	return c
}

func (p PenaltyRule) clone() PenaltyRule {
	c := p
	if p.FlatAmount != nil {
		v := *p.FlatAmount
		c.FlatAmount = &v
	}
	if p.Percentage != nil {
		v := *p.Percentage
		c.Percentage = &v
	}
	if p.EffectiveTo != nil {
		v := *p.EffectiveTo
		c.EffectiveTo = &v
	}
	return c
}

func (p PenaltyRule) subject() string {
	category := string(p.Category)
	if category == "" {
		category = "*"
	}
	return "penalty rule " + string(p.TaxType) + "/" + p.Jurisdiction + "/" + category + "/" + string(p.Bracket)
}

// Validate checks a rule before it is written.
func (p PenaltyRule) Validate() error {
	subject := p.subject()
	if !p.TaxType.Valid() {
		return conflict(subject, "unknown tax type")
	}
	if p.Jurisdiction == "" {
		return conflict(subject, "jurisdiction is required")
	}
	if !p.Bracket.Valid() {
		return conflict(subject, "unknown bracket")
	}
	if p.FlatAmount == nil && p.Percentage == nil {
		return conflict(subject, "a flat amount or a percentage is required")
	}
	if p.FlatAmount != nil && p.FlatAmount.IsNegative() {
		return conflict(subject, "flat amount must not be negative")
	}
	if p.Percentage != nil && p.Percentage.IsNegative() {
		return conflict(subject, "percentage must not be negative")
	}
	if p.Additive && (p.FlatAmount == nil || p.Percentage == nil) {
		return conflict(subject, "additive rules need both a flat amount and a percentage")
	}
	if p.Bracket == BracketLatePaymentInterest && p.Percentage == nil {
		return conflict(subject, "interest rules need an annual percentage")
	}
	return p.window().validate(subject)
}

type penaltyKey struct {
	taxType      TaxType
	jurisdiction string
	category     Category
	bracket      PenaltyBracket
}

func (p PenaltyRule) key() penaltyKey {
	return penaltyKey{p.TaxType, p.Jurisdiction, p.Category, p.Bracket}
}

// PenaltyRuleRegistry follows the same versioning discipline as RateBookRegistry.
type PenaltyRuleRegistry struct {
	mu    sync.RWMutex
	rules map[penaltyKey]*timeline[PenaltyRule]
}

// NewPenaltyRuleRegistry creates an empty registry.
func NewPenaltyRuleRegistry() *PenaltyRuleRegistry {
	return &PenaltyRuleRegistry{rules: make(map[penaltyKey]*timeline[PenaltyRule])}
}

// Resolve finds the rule in force on asOf for the category, falling back to the
// category-agnostic rule.
func (r *PenaltyRuleRegistry) Resolve(taxType TaxType, jurisdiction string, category Category, bracket PenaltyBracket, asOf time.Time) (PenaltyRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range []Category{category, CategoryAny} {
		tl, ok := r.rules[penaltyKey{taxType, jurisdiction, c, bracket}]
		if !ok {
			continue
		}
		if rule, found := tl.resolve(asOf); found {
			return rule.clone(), nil
		}
	}
	return PenaltyRule{}, &NoApplicableRuleError{
		Kind:         "penalty_rule",
		TaxType:      taxType,
		Jurisdiction: jurisdiction,
		Key:          string(category) + "/" + string(bracket),
		AsOf:         asOf,
	}
}

// Append adds a new rule version.
func (r *PenaltyRuleRegistry) Append(rule PenaltyRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tl := r.timelineFor(rule.key())
	if err := tl.checkAppend(rule.subject(), rule.window()); err != nil {
		return err
	}
	tl.insert(rule.clone())
	return nil
}

// CheckAppend validates rule against the chain without inserting it.
func (r *PenaltyRuleRegistry) CheckAppend(rule PenaltyRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	tl, ok := r.rules[rule.key()]
	if !ok {
		return nil
	}
	return tl.checkAppend(rule.subject(), rule.window())
}

// Supersede closes the open rule for the same key and appends rule.
func (r *PenaltyRuleRegistry) Supersede(rule PenaltyRule) (PenaltyRule, error) {
	if err := rule.Validate(); err != nil {
		return PenaltyRule{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	closed, err := r.timelineFor(rule.key()).supersede(rule.subject(), rule.clone())
	if err != nil {
		return PenaltyRule{}, err
	}
	return closed.clone(), nil
}

// CheckSupersede validates a supersede without applying it.
func (r *PenaltyRuleRegistry) CheckSupersede(rule PenaltyRule) (PenaltyRule, error) {
	if err := rule.Validate(); err != nil {
		return PenaltyRule{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	trial := timeline[PenaltyRule]{}
	if tl, ok := r.rules[rule.key()]; ok {
		trial.versions = tl.all()
	}
	return trial.supersede(rule.subject(), rule)
}

// Versions lists the chain for one matrix cell.
func (r *PenaltyRuleRegistry) Versions(taxType TaxType, jurisdiction string, category Category, bracket PenaltyBracket) []PenaltyRule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tl, ok := r.rules[penaltyKey{taxType, jurisdiction, category, bracket}]
	if !ok {
		return nil
	}
	out := tl.all()
	for i := range out {
		out[i] = out[i].clone()
	}
	return out
}

func (r *PenaltyRuleRegistry) timelineFor(k penaltyKey) *timeline[PenaltyRule] {
	tl, ok := r.rules[k]
	if !ok {
		tl = &timeline[PenaltyRule]{}
		r.rules[k] = tl
	}
	return tl
}
