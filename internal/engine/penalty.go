package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLateFilerThresholdDays separates late filers from non-filers.
const DefaultLateFilerThresholdDays = 30

// PenaltyInput describes one filing or payment event to assess. A nil ActualDate means
// the obligation was still unmet at AsOf, which is then required. Rules are resolved
// for AsOf, or for DueDate when AsOf is zero.
type PenaltyInput struct {
	TaxType      TaxType
	Jurisdiction string
	Category     Category
	DueDate      time.Time
	ActualDate   *time.Time
	TaxDue       decimal.Decimal
	AsOf         time.Time
}

// actualDate is when the obligation was met, or AsOf while it is still unmet. An
// unmet obligation without AsOf cannot be measured.
func (in PenaltyInput) actualDate() (time.Time, error) {
	if in.ActualDate != nil {
		return *in.ActualDate, nil
	}
	if in.AsOf.IsZero() {
		return time.Time{}, fmt.Errorf("%w: an unmet %s obligation due %s needs an as-of date",
			ErrInvalidDeclaration, in.TaxType, FormatDate(in.DueDate))
	}
	return in.AsOf, nil
}

func (in PenaltyInput) ruleDate() time.Time {
	if in.AsOf.IsZero() {
		return in.DueDate
	}
	return in.AsOf
}

// PenaltyAmount is the classified, computed penalty.
type PenaltyAmount struct {
	Bracket             PenaltyBracket
	LatenessDays        int
	Base                decimal.Decimal
	FlatComponent       decimal.Decimal
	PercentageComponent decimal.Decimal
	Additive            bool
	RuleID              string
	Amount              decimal.Decimal
}

// PenaltyCalculator resolves penalty and interest rules and applies them.
type PenaltyCalculator struct {
	rules         *PenaltyRuleRegistry
	thresholdDays int
}

// NewPenaltyCalculator creates a calculator. A non-positive threshold uses
// DefaultLateFilerThresholdDays.
func NewPenaltyCalculator(rules *PenaltyRuleRegistry, thresholdDays int) *PenaltyCalculator {
	if thresholdDays <= 0 {
		thresholdDays = DefaultLateFilerThresholdDays
	}
	return &PenaltyCalculator{rules: rules, thresholdDays: thresholdDays}
}

// ThresholdDays is the late-filer/non-filer boundary in use.
func (c *PenaltyCalculator) ThresholdDays() int { return c.thresholdDays }

// Classify places a lateness into exactly one bracket. Lateness equal to the threshold
// is still a late filing; one day more is a non-filing.
func (c *PenaltyCalculator) Classify(latenessDays int, filed bool) PenaltyBracket {
	switch {
	case latenessDays <= 0:
		return BracketOnTime
	case !filed, latenessDays > c.thresholdDays:
		return BracketNonFiler
	default:
		return BracketLateFiler
	}
}

// CalculatePenalty computes the late-filing penalty. A missing rule is returned as
// an error, never as a zero penalty.
func (c *PenaltyCalculator) CalculatePenalty(in PenaltyInput) (PenaltyAmount, error) {
	filed := in.ActualDate != nil
	actual, err := in.actualDate()
	if err != nil {
		return PenaltyAmount{}, err
	}
	lateness := DaysBetween(in.DueDate, actual)
	bracket := c.Classify(lateness, filed)

	out := PenaltyAmount{
		Bracket:      bracket,
		LatenessDays: max(lateness, 0),
		Base:         in.TaxDue,
		Amount:       decimal.Zero,
	}
	if bracket == BracketOnTime {
		return out, nil
	}

	rule, err := c.rules.Resolve(in.TaxType, in.Jurisdiction, in.Category, bracket, in.ruleDate())
	if err != nil {
		return PenaltyAmount{}, err
	}
	applyRule(&out, rule, in.TaxDue)
	return out, nil
}

// UnderDeclarationInput compares a declared liability with the assessed one.
type UnderDeclarationInput struct {
	TaxType      TaxType
	Jurisdiction string
	Category     Category
	Declared     decimal.Decimal
	Assessed     decimal.Decimal
	AsOf         time.Time
}

// CalculateUnderDeclaration charges the under-declaration rule on the difference
// between assessed and declared tax, not on the total due.
func (c *PenaltyCalculator) CalculateUnderDeclaration(in UnderDeclarationInput) (PenaltyAmount, error) {
	diff := in.Assessed.Sub(in.Declared)
	out := PenaltyAmount{Bracket: BracketUnderDeclaration, Base: diff, Amount: decimal.Zero}
	if !diff.IsPositive() {
		out.Base = decimal.Zero
		return out, nil
	}

	rule, err := c.rules.Resolve(in.TaxType, in.Jurisdiction, in.Category, BracketUnderDeclaration, in.AsOf)
	if err != nil {
		return PenaltyAmount{}, err
	}
	applyRule(&out, rule, diff)
	return out, nil
}

// CalculateLatePaymentInterest charges simple daily interest on tax paid after the due
// date: taxDue × annual rate × days late / 365.
func (c *PenaltyCalculator) CalculateLatePaymentInterest(in PenaltyInput) (PenaltyAmount, error) {
	actual, err := in.actualDate()
	if err != nil {
		return PenaltyAmount{}, err
	}
	days := DaysBetween(in.DueDate, actual)
	out := PenaltyAmount{Bracket: BracketLatePaymentInterest, Base: in.TaxDue, Amount: decimal.Zero}
	if days <= 0 {
		return out, nil
	}
	out.LatenessDays = days

	rule, err := c.rules.Resolve(in.TaxType, in.Jurisdiction, in.Category, BracketLatePaymentInterest, in.ruleDate())
	if err != nil {
		return PenaltyAmount{}, err
	}
	base := in.TaxDue.Mul(decimal.NewFromInt(int64(days))).Div(daysPerYear)
	applyRule(&out, rule, base)
	out.Base = in.TaxDue
	return out, nil
}

// applyRule combines the flat and percentage components: greater-of by default,
// summed only when the rule is marked additive. Rounding happens once, here.
func applyRule(out *PenaltyAmount, rule PenaltyRule, base decimal.Decimal) {
	out.RuleID = rule.ID
	out.Additive = rule.Additive
	out.FlatComponent = decimal.Zero
	out.PercentageComponent = decimal.Zero

	if rule.FlatAmount != nil {
		out.FlatComponent = *rule.FlatAmount
	}
	if rule.Percentage != nil {
		out.PercentageComponent = base.Mul(*rule.Percentage)
	}

	var amount decimal.Decimal
	switch {
	case rule.FlatAmount != nil && rule.Percentage != nil && rule.Additive:
		amount = out.FlatComponent.Add(out.PercentageComponent)
	case rule.FlatAmount != nil && rule.Percentage != nil:
		amount = maxDecimal(out.FlatComponent, out.PercentageComponent)
	case rule.FlatAmount != nil:
		amount = out.FlatComponent
	default:
		amount = out.PercentageComponent
	}
	out.Amount = RoundMoney(amount)
}
