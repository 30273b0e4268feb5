package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func newTestPenaltyRules(t *testing.T) *PenaltyRuleRegistry {
	t.Helper()
	from := NewDate(2024, 1, 1)
	rules := NewPenaltyRuleRegistry()
	for _, r := range []PenaltyRule{
		{ID: "gst-late", Bracket: BracketLateFiler, FlatAmount: decPtr("1000"), Percentage: decPtr("0.05")},
		{ID: "gst-non-filer-large", Category: CategoryLarge, Bracket: BracketNonFiler, FlatAmount: decPtr("5000"), Percentage: decPtr("0.10")},
		{ID: "gst-non-filer", Bracket: BracketNonFiler, FlatAmount: decPtr("2000"), Percentage: decPtr("0.08")},
		{ID: "gst-late-medium", Category: CategoryMedium, Bracket: BracketLateFiler, FlatAmount: decPtr("1000"), Percentage: decPtr("0.05"), Additive: true},
		{ID: "gst-under", Bracket: BracketUnderDeclaration, Percentage: decPtr("0.20")},
		{ID: "gst-interest", Bracket: BracketLatePaymentInterest, Percentage: decPtr("0.10")},
	} {
		r.TaxType = TaxTypeConsumption
		r.Jurisdiction = "NT"
		r.EffectiveFrom = from
		require.NoError(t, rules.Append(r))
	}
	return rules
}

func gstLateInput(category Category, filed string) PenaltyInput {
	in := PenaltyInput{
		TaxType:      TaxTypeConsumption,
		Jurisdiction: "NT",
		Category:     category,
		DueDate:      NewDate(2024, 5, 1),
		TaxDue:       dec("100000"),
	}
	if filed != "" {
		d, _ := ParseDate(filed)
		in.ActualDate = &d
	}
	return in
}

func TestPenaltyCalculator_Brackets(t *testing.T) {
	calc := NewPenaltyCalculator(newTestPenaltyRules(t), 0)
	require.Equal(t, 30, calc.ThresholdDays())

	tests := []struct {
		name     string
		category Category
		filed    string
		bracket  PenaltyBracket
		days     int
		want     string
		ruleID   string
	}{
		{"large taxpayer 35 days late", CategoryLarge, "2024-06-05", BracketNonFiler, 35, "10000.00", "gst-non-filer-large"},
		{"exactly at the threshold is still late", CategorySmall, "2024-05-31", BracketLateFiler, 30, "5000.00", "gst-late"},
		{"one day past the threshold", CategorySmall, "2024-06-01", BracketNonFiler, 31, "8000.00", "gst-non-filer"},
		{"one day late", CategorySmall, "2024-05-02", BracketLateFiler, 1, "5000.00", "gst-late"},
		{"additive rule sums both components", CategoryMedium, "2024-05-10", BracketLateFiler, 9, "6000.00", "gst-late-medium"},
		{"filed on the due date", CategoryLarge, "2024-05-01", BracketOnTime, 0, "0.00", ""},
		{"filed early", CategoryLarge, "2024-04-20", BracketOnTime, 0, "0.00", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := calc.CalculatePenalty(gstLateInput(tt.category, tt.filed))
			require.NoError(t, err)
			assert.Equal(t, tt.bracket, out.Bracket)
			assert.Equal(t, tt.days, out.LatenessDays)
			assert.Equal(t, tt.want, out.Amount.StringFixed(2))
			assert.Equal(t, tt.ruleID, out.RuleID)
		})
	}
}

func TestPenaltyCalculator_GreaterOfUsesLargerComponent(t *testing.T) {
	calc := NewPenaltyCalculator(newTestPenaltyRules(t), 0)
	in := gstLateInput(CategorySmall, "2024-05-05")
	in.TaxDue = dec("10000")

	out, err := calc.CalculatePenalty(in)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", out.Amount.StringFixed(2))
	assert.Equal(t, "500", out.PercentageComponent.String())
	assert.False(t, out.Additive)
}

func TestPenaltyCalculator_UnfiledPastDue(t *testing.T) {
	calc := NewPenaltyCalculator(newTestPenaltyRules(t), 0)
	in := gstLateInput(CategoryLarge, "")
	in.AsOf = NewDate(2024, 5, 10)

	out, err := calc.CalculatePenalty(in)
	require.NoError(t, err)
	assert.Equal(t, BracketNonFiler, out.Bracket)
	assert.Equal(t, 9, out.LatenessDays)
	assert.Equal(t, "10000.00", out.Amount.StringFixed(2))

	in.AsOf = NewDate(2024, 4, 25)
	out, err = calc.CalculatePenalty(in)
	require.NoError(t, err)
	assert.Equal(t, BracketOnTime, out.Bracket)
}

func TestPenaltyCalculator_UnfiledWithoutAsOfIsAnError(t *testing.T) {
	calc := NewPenaltyCalculator(newTestPenaltyRules(t), 0)
	in := gstLateInput(CategoryLarge, "")

	_, err := calc.CalculatePenalty(in)
	assert.ErrorIs(t, err, ErrInvalidDeclaration)

	_, err = calc.CalculateLatePaymentInterest(in)
	assert.ErrorIs(t, err, ErrInvalidDeclaration)
}

func TestPenaltyCalculator_FlatOnlyRules(t *testing.T) {
	rules := NewPenaltyRuleRegistry()
	for _, r := range []PenaltyRule{
		{ID: "gst-late-flat", Bracket: BracketLateFiler, FlatAmount: decPtr("5000")},
		{ID: "gst-non-filer-flat", Bracket: BracketNonFiler, FlatAmount: decPtr("10000")},
	} {
		r.TaxType = TaxTypeConsumption
		r.Jurisdiction = "NT"
		r.Category = CategoryLarge
		r.EffectiveFrom = NewDate(2024, 1, 1)
		require.NoError(t, rules.Append(r))
	}
	calc := NewPenaltyCalculator(rules, 30)

	tests := []struct {
		name    string
		filed   string
		bracket PenaltyBracket
		want    string
	}{
		{"35 days late", "2024-06-05", BracketNonFiler, "10000.00"},
		{"30 days late", "2024-05-31", BracketLateFiler, "5000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := calc.CalculatePenalty(gstLateInput(CategoryLarge, tt.filed))
			require.NoError(t, err)
			assert.Equal(t, tt.bracket, out.Bracket)
			assert.Equal(t, tt.want, out.Amount.StringFixed(2))
			assert.Equal(t, tt.want, out.FlatComponent.StringFixed(2))
			assert.True(t, out.PercentageComponent.IsZero(), "no percentage is applied")
		})
	}
}

func TestPenaltyCalculator_MissingRuleIsAnError(t *testing.T) {
	calc := NewPenaltyCalculator(NewPenaltyRuleRegistry(), 0)

	in := gstLateInput(CategoryLarge, "2024-06-05")
	out, err := calc.CalculatePenalty(in)
	assert.ErrorIs(t, err, ErrNoApplicableRule)
	assert.True(t, out.Amount.IsZero())

	in = gstLateInput(CategoryLarge, "2024-04-30")
	out, err = calc.CalculatePenalty(in)
	require.NoError(t, err, "on-time filings never consult rules")
	assert.Equal(t, BracketOnTime, out.Bracket)
}

func TestPenaltyCalculator_RuleResolvedAsOfDate(t *testing.T) {
	rules := NewPenaltyRuleRegistry()
	require.NoError(t, rules.Append(PenaltyRule{
		ID: "v1", TaxType: TaxTypeConsumption, Jurisdiction: "NT", Bracket: BracketLateFiler,
		FlatAmount: decPtr("100"), EffectiveFrom: NewDate(2024, 1, 1),
	}))
	_, err := rules.Supersede(PenaltyRule{
		ID: "v2", TaxType: TaxTypeConsumption, Jurisdiction: "NT", Bracket: BracketLateFiler,
		FlatAmount: decPtr("300"), EffectiveFrom: NewDate(2024, 6, 1),
	})
	require.NoError(t, err)

	calc := NewPenaltyCalculator(rules, 0)
	in := gstLateInput(CategorySmall, "2024-05-11")

	out, err := calc.CalculatePenalty(in)
	require.NoError(t, err)
	assert.Equal(t, "v1", out.RuleID)

	in.AsOf = NewDate(2024, 7, 1)
	out, err = calc.CalculatePenalty(in)
	require.NoError(t, err)
	assert.Equal(t, "v2", out.RuleID)
	assert.Equal(t, "300.00", out.Amount.StringFixed(2))
}

func TestPenaltyCalculator_CustomThreshold(t *testing.T) {
	calc := NewPenaltyCalculator(newTestPenaltyRules(t), 10)
	assert.Equal(t, BracketLateFiler, calc.Classify(10, true))
	assert.Equal(t, BracketNonFiler, calc.Classify(11, true))
	assert.Equal(t, BracketNonFiler, calc.Classify(1, false))
	assert.Equal(t, BracketOnTime, calc.Classify(0, false))
}

func TestPenaltyCalculator_UnderDeclaration(t *testing.T) {
	calc := NewPenaltyCalculator(newTestPenaltyRules(t), 0)
	in := UnderDeclarationInput{
		TaxType: TaxTypeConsumption, Jurisdiction: "NT", Category: CategoryLarge,
		Declared: dec("8000"), Assessed: dec("10000"), AsOf: NewDate(2024, 6, 1),
	}

	out, err := calc.CalculateUnderDeclaration(in)
	require.NoError(t, err)
	assert.Equal(t, "400.00", out.Amount.StringFixed(2))
	assert.Equal(t, "2000", out.Base.String())

	in.Declared = dec("12000")
	out, err = calc.CalculateUnderDeclaration(in)
	require.NoError(t, err)
	assert.True(t, out.Amount.IsZero())
	assert.True(t, out.Base.IsZero())
}

func TestPenaltyCalculator_LatePaymentInterest(t *testing.T) {
	calc := NewPenaltyCalculator(newTestPenaltyRules(t), 0)
	paid := NewDate(2024, 5, 11)
	in := PenaltyInput{
		TaxType: TaxTypeConsumption, Jurisdiction: "NT", Category: CategoryLarge,
		DueDate: NewDate(2024, 5, 1), ActualDate: &paid, TaxDue: dec("36500"),
	}

	out, err := calc.CalculateLatePaymentInterest(in)
	require.NoError(t, err)
	assert.Equal(t, 10, out.LatenessDays)
	assert.Equal(t, "100.00", out.Amount.StringFixed(2))

	onTime := NewDate(2024, 5, 1)
	in.ActualDate = &onTime
	out, err = calc.CalculateLatePaymentInterest(in)
	require.NoError(t, err)
	assert.True(t, out.Amount.IsZero())
}

func TestPenaltyCalculator_RoundsHalfUpOnce(t *testing.T) {
	rules := NewPenaltyRuleRegistry()
	require.NoError(t, rules.Append(PenaltyRule{
		ID: "excise-late", TaxType: TaxTypeExcise, Jurisdiction: "NT", Bracket: BracketLateFiler,
		Percentage: decPtr("0.05"), EffectiveFrom: NewDate(2024, 1, 1),
	}))
	calc := NewPenaltyCalculator(rules, 0)
	filed := NewDate(2024, 5, 3)

	out, err := calc.CalculatePenalty(PenaltyInput{
		TaxType: TaxTypeExcise, Jurisdiction: "NT", DueDate: NewDate(2024, 5, 1),
		ActualDate: &filed, TaxDue: dec("2.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "0.125", out.PercentageComponent.String())
	assert.Equal(t, "0.13", out.Amount.StringFixed(2))
}

func TestPenaltyRule_Validate(t *testing.T) {
	base := PenaltyRule{
		TaxType: TaxTypeConsumption, Jurisdiction: "NT", Bracket: BracketLateFiler,
		FlatAmount: decPtr("10"), EffectiveFrom: NewDate(2024, 1, 1),
	}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*PenaltyRule)
	}{
		{"no components", func(r *PenaltyRule) { r.FlatAmount = nil }},
		{"negative flat", func(r *PenaltyRule) { r.FlatAmount = decPtr("-1") }},
		{"on-time bracket", func(r *PenaltyRule) { r.Bracket = BracketOnTime }},
		{"additive without percentage", func(r *PenaltyRule) { r.Additive = true }},
		{"interest without rate", func(r *PenaltyRule) { r.Bracket = BracketLatePaymentInterest }},
		{"missing jurisdiction", func(r *PenaltyRule) { r.Jurisdiction = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mutate(&r)
			assert.ErrorIs(t, r.Validate(), ErrConfigurationConflict)
		})
	}
}
