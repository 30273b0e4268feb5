package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testPeriod   = Period{Label: "2024-Q1", Start: NewDate(2024, 1, 1), End: NewDate(2024, 3, 31)}
	testTaxpayer = TaxpayerProfile{ID: "tp-1", Jurisdiction: "NT", Category: CategoryLarge}
)

func TestCalculate_ProgressiveIncome(t *testing.T) {
	book := progressiveBook(NewDate(2024, 1, 1), nil)

	tests := []struct {
		name   string
		income string
		want   string
		lines  int
	}{
		{"below first taxable bracket", "40000", "0.00", 1},
		{"worked example", "120000", "12500.00", 3},
		{"exactly on a bracket boundary", "100000", "7500.00", 2},
		{"exactly on the first boundary", "50000", "0.00", 1},
		{"zero income", "0", "0.00", 0},
		{"fractional income rounds once", "100000.03", "7500.01", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Calculate(testTaxpayer, testPeriod, IncomeDeclaration{GrossIncome: dec(tt.income)}, book)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Total.StringFixed(2))
			assert.Len(t, out.Lines, tt.lines)
		})
	}
}

func TestCalculate_ProgressiveIncomeIsMarginal(t *testing.T) {
	book := progressiveBook(NewDate(2024, 1, 1), nil)
	out, err := Calculate(testTaxpayer, testPeriod, IncomeDeclaration{GrossIncome: dec("120000")}, book)
	require.NoError(t, err)

	flatTop := dec("120000").Mul(dec("0.25"))
	assert.True(t, out.Total.LessThan(flatTop), "top rate must not apply to the whole income")
	assert.Equal(t, "0", out.Lines[0].Amount.String())
	assert.Equal(t, "7500", out.Lines[1].Amount.String())
	assert.Equal(t, "5000", out.Lines[2].Amount.String())
	require.NotNil(t, out.Lines[1].Ceiling)
	assert.Equal(t, "100000", out.Lines[1].Ceiling.String())
	assert.Nil(t, out.Lines[2].Ceiling)
}

func TestCalculate_ProgressiveIncomeIsMonotonic(t *testing.T) {
	book := progressiveBook(NewDate(2024, 1, 1), nil)
	prev := decimal.NewFromInt(-1)
	for income := int64(0); income <= 300000; income += 7919 {
		out, err := Calculate(testTaxpayer, testPeriod, IncomeDeclaration{GrossIncome: decimal.NewFromInt(income)}, book)
		require.NoError(t, err)
		assert.True(t, out.Total.GreaterThanOrEqual(prev), "tax decreased at income %d", income)
		prev = out.Total
	}
}

func TestCalculate_IncomeDeductionsAndCategoryRows(t *testing.T) {
	book := progressiveBook(NewDate(2024, 1, 1), nil)
	book.Entries = append(book.Entries,
		RateEntry{Category: CategoryMicro, Threshold: dec("0"), Rate: dec("0.05")},
	)

	out, err := Calculate(testTaxpayer, testPeriod, IncomeDeclaration{GrossIncome: dec("130000"), Deductions: dec("10000")}, book)
	require.NoError(t, err)
	assert.Equal(t, "12500.00", out.Total.StringFixed(2))

	micro := testTaxpayer
	micro.Category = CategoryMicro
	out, err = Calculate(micro, testPeriod, IncomeDeclaration{GrossIncome: dec("120000")}, book)
	require.NoError(t, err)
	assert.Equal(t, "6000.00", out.Total.StringFixed(2))
}

func corporateBook() RateBook {
	return RateBook{
		ID:            "corp-2024",
		Jurisdiction:  "NT",
		TaxType:       TaxTypeCorporate,
		EffectiveFrom: NewDate(2024, 1, 1),
		Entries:       []RateEntry{{Rate: dec("0.25")}},
		MinimumTax:    &MinimumTaxRule{Rate: dec("0.01"), ConsecutivePeriods: 2, ProfitThreshold: dec("0")},
	}
}

func TestCalculate_CorporateAndMinimumTax(t *testing.T) {
	book := corporateBook()

	tests := []struct {
		name        string
		taxpayer    TaxpayerProfile
		decl        CorporateDeclaration
		want        string
		matApplied  bool
		wantFloored string
	}{
		{
			name:     "flat rate on profit",
			taxpayer: testTaxpayer,
			decl:     CorporateDeclaration{TaxableProfit: dec("1000000"), Revenue: dec("5000000")},
			want:     "250000.00",
		},
		{
			name:     "loss pays nothing without history",
			taxpayer: testTaxpayer,
			decl:     CorporateDeclaration{TaxableProfit: dec("-200000"), Revenue: dec("5000000")},
			want:     "0.00",
		},
		{
			name:     "floor replaces computed tax after consecutive losses",
			taxpayer: testTaxpayer,
			decl: CorporateDeclaration{
				TaxableProfit: dec("100000"), Revenue: dec("50000000"),
				PriorPeriodProfits: []decimal.Decimal{dec("-10"), dec("-5")},
			},
			want:        "500000.00",
			matApplied:  true,
			wantFloored: "500000",
		},
		{
			name:     "floor is not additive when computed tax is higher",
			taxpayer: testTaxpayer,
			decl: CorporateDeclaration{
				TaxableProfit: dec("10000000"), Revenue: dec("50000000"),
				PriorPeriodProfits: []decimal.Decimal{dec("-10"), dec("0")},
			},
			want:        "2500000.00",
			wantFloored: "500000",
		},
		{
			name:     "one profitable period breaks the streak",
			taxpayer: testTaxpayer,
			decl: CorporateDeclaration{
				TaxableProfit: dec("100000"), Revenue: dec("50000000"),
				PriorPeriodProfits: []decimal.Decimal{dec("-10"), dec("5"), dec("-3")},
			},
			want: "25000.00",
		},
		{
			name:     "exempt taxpayer skips the floor",
			taxpayer: TaxpayerProfile{ID: "tp-2", Jurisdiction: "NT", Reliefs: []ReliefFlag{ReliefMinimumTax}},
			decl: CorporateDeclaration{
				TaxableProfit: dec("100000"), Revenue: dec("50000000"),
				PriorPeriodProfits: []decimal.Decimal{dec("-10"), dec("-5")},
			},
			want: "25000.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Calculate(tt.taxpayer, testPeriod, tt.decl, book)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Total.StringFixed(2))
			assert.Equal(t, tt.matApplied, out.MinimumTaxApplied)
			if tt.wantFloored != "" {
				assert.Equal(t, tt.wantFloored, out.MinimumTax.String())
			}
			assert.True(t, sumLines(out.Lines).Round(2).Equal(out.Total))
		})
	}
}

func consumptionBook() RateBook {
	return RateBook{
		ID: "gst-2024", Jurisdiction: "NT", TaxType: TaxTypeConsumption, EffectiveFrom: NewDate(2024, 1, 1),
		Entries: []RateEntry{
			{Rate: dec("0.15")},
			{Code: "ZERO", Rate: dec("0")},
		},
	}
}

func TestCalculate_Consumption(t *testing.T) {
	decl := ConsumptionDeclaration{
		Sales: []SupplyLine{{Amount: dec("100000")}, {Code: "ZERO", Amount: dec("20000")}},
		Purchases: []PurchaseLine{
			{Amount: dec("40000"), Qualifying: true},
			{Amount: dec("10000"), Qualifying: false},
		},
	}

	out, err := Calculate(testTaxpayer, testPeriod, decl, consumptionBook())
	require.NoError(t, err)
	assert.Equal(t, "9000.00", out.Total.StringFixed(2))
	assert.Equal(t, "15000.00", out.OutputTax.StringFixed(2))
	assert.Equal(t, "6000.00", out.InputTax.StringFixed(2))

	t.Run("relieved entity is charged zero output tax", func(t *testing.T) {
		relieved := testTaxpayer
		relieved.Reliefs = []ReliefFlag{ReliefConsumption}
		out, err := Calculate(relieved, testPeriod, decl, consumptionBook())
		require.NoError(t, err)
		assert.True(t, out.OutputTax.IsZero())
		assert.True(t, out.InputTax.IsZero())
		assert.Equal(t, "0.00", out.Total.StringFixed(2))
	})

	t.Run("excess input tax is a credit", func(t *testing.T) {
		credit := ConsumptionDeclaration{
			Sales:     []SupplyLine{{Amount: dec("1000")}},
			Purchases: []PurchaseLine{{Amount: dec("5000"), Qualifying: true}},
		}
		out, err := Calculate(testTaxpayer, testPeriod, credit, consumptionBook())
		require.NoError(t, err)
		assert.Equal(t, "-600.00", out.Total.StringFixed(2))
	})

	t.Run("unknown supply code fails", func(t *testing.T) {
		bad := ConsumptionDeclaration{Sales: []SupplyLine{{Code: "LUXURY", Amount: dec("10")}}}
		_, err := Calculate(testTaxpayer, testPeriod, bad, consumptionBook())
		assert.ErrorIs(t, err, ErrNoApplicableRule)
	})
}

func TestCalculate_Withholding(t *testing.T) {
	book := RateBook{
		ID: "wht-2024", Jurisdiction: "NT", TaxType: TaxTypeWithholding, EffectiveFrom: NewDate(2024, 1, 1),
		Entries: []RateEntry{
			{Code: WithholdingCode(PaymentDividends, true), Rate: dec("0.10")},
			{Code: WithholdingCode(PaymentDividends, false), Rate: dec("0.15")},
			{Code: WithholdingCode(PaymentRent, true), Rate: dec("0.05")},
		},
	}

	decl := WithholdingDeclaration{Payments: []WithholdingPayment{
		{Category: PaymentDividends, Amount: dec("1000"), Resident: true},
		{Category: PaymentDividends, Amount: dec("1000"), Resident: false},
		{Category: PaymentRent, Amount: dec("2000"), Resident: true},
	}}
	out, err := Calculate(testTaxpayer, testPeriod, decl, book)
	require.NoError(t, err)
	assert.Equal(t, "350.00", out.Total.StringFixed(2))
	assert.Equal(t, "DIVIDENDS/NON_RESIDENT", out.Lines[1].Code)

	_, err = Calculate(testTaxpayer, testPeriod, WithholdingDeclaration{Payments: []WithholdingPayment{
		{Category: PaymentRoyalties, Amount: dec("10"), Resident: false},
	}}, book)
	var target *NoApplicableRuleError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "ROYALTIES/NON_RESIDENT", target.Key)
}

func TestCalculate_Excise(t *testing.T) {
	book := RateBook{
		ID: "excise-2024", Jurisdiction: "NT", TaxType: TaxTypeExcise, EffectiveFrom: NewDate(2024, 1, 1),
		Entries: []RateEntry{
			{Code: "BEER", Rate: dec("2.50"), UnitBasis: UnitVolume},
			{Code: "TOBACCO", Rate: dec("40"), UnitBasis: UnitWeight},
			{Code: "CIGARETTES", Rate: dec("0.35"), UnitBasis: UnitCount, FixedFee: dec("10")},
		},
	}

	decl := ExciseDeclaration{Lines: []ExciseLine{
		{ProductCode: "BEER", Quantity: dec("1000"), Unit: UnitVolume},
		{ProductCode: "TOBACCO", Quantity: dec("2.5"), Unit: UnitWeight},
		{ProductCode: "CIGARETTES", Quantity: dec("200"), Unit: UnitCount},
	}}
	out, err := Calculate(testTaxpayer, testPeriod, decl, book)
	require.NoError(t, err)
	assert.Equal(t, "2680.00", out.Total.StringFixed(2))

	_, err = Calculate(testTaxpayer, testPeriod, ExciseDeclaration{Lines: []ExciseLine{
		{ProductCode: "BEER", Quantity: dec("10"), Unit: UnitWeight},
	}}, book)
	var mismatch *UnitBasisMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, UnitVolume, mismatch.Expected)
	assert.Equal(t, UnitWeight, mismatch.Declared)
}

func TestCalculate_RejectsMismatchedInputs(t *testing.T) {
	_, err := Calculate(testTaxpayer, testPeriod, IncomeDeclaration{GrossIncome: dec("10")}, corporateBook())
	assert.ErrorIs(t, err, ErrConfigurationConflict)

	_, err = Calculate(testTaxpayer, testPeriod, IncomeDeclaration{GrossIncome: dec("-10")}, progressiveBook(NewDate(2024, 1, 1), nil))
	assert.ErrorIs(t, err, ErrInvalidDeclaration)

	_, err = Calculate(testTaxpayer, testPeriod, nil, progressiveBook(NewDate(2024, 1, 1), nil))
	assert.ErrorIs(t, err, ErrInvalidDeclaration)
}

// Every calculator must respond to its inputs; a constant output would mean a
// placeholder slipped in.
func TestCalculate_OutputsVaryWithInputs(t *testing.T) {
	excise := RateBook{
		ID: "excise", Jurisdiction: "NT", TaxType: TaxTypeExcise, EffectiveFrom: NewDate(2024, 1, 1),
		Entries: []RateEntry{{Code: "BEER", Rate: dec("2.50"), UnitBasis: UnitVolume}},
	}
	wht := RateBook{
		ID: "wht", Jurisdiction: "NT", TaxType: TaxTypeWithholding, EffectiveFrom: NewDate(2024, 1, 1),
		Entries: []RateEntry{{Code: WithholdingCode(PaymentFees, true), Rate: dec("0.10")}},
	}

	cases := []struct {
		name string
		book RateBook
		a, b Declaration
	}{
		{"income", progressiveBook(NewDate(2024, 1, 1), nil),
			IncomeDeclaration{GrossIncome: dec("80000")}, IncomeDeclaration{GrossIncome: dec("90000")}},
		{"corporate", corporateBook(),
			CorporateDeclaration{TaxableProfit: dec("100"), Revenue: dec("1")},
			CorporateDeclaration{TaxableProfit: dec("200"), Revenue: dec("1")}},
		{"consumption", consumptionBook(),
			ConsumptionDeclaration{Sales: []SupplyLine{{Amount: dec("100")}}},
			ConsumptionDeclaration{Sales: []SupplyLine{{Amount: dec("300")}}}},
		{"withholding", wht,
			WithholdingDeclaration{Payments: []WithholdingPayment{{Category: PaymentFees, Amount: dec("100"), Resident: true}}},
			WithholdingDeclaration{Payments: []WithholdingPayment{{Category: PaymentFees, Amount: dec("500"), Resident: true}}}},
		{"excise", excise,
			ExciseDeclaration{Lines: []ExciseLine{{ProductCode: "BEER", Quantity: dec("1"), Unit: UnitVolume}}},
			ExciseDeclaration{Lines: []ExciseLine{{ProductCode: "BEER", Quantity: dec("2"), Unit: UnitVolume}}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			first, err := Calculate(testTaxpayer, testPeriod, c.a, c.book)
			require.NoError(t, err)
			second, err := Calculate(testTaxpayer, testPeriod, c.b, c.book)
			require.NoError(t, err)
			assert.False(t, first.Total.Equal(second.Total))

			again, err := Calculate(testTaxpayer, testPeriod, c.a, c.book)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		})
	}
}

func TestCalculateAsOf_UsesVersionInForce(t *testing.T) {
	reg := NewRateBookRegistry()
	require.NoError(t, reg.Append(progressiveBook(NewDate(2023, 1, 1), nil)))
	next := progressiveBook(NewDate(2024, 1, 1), nil)
	next.Entries[2].Rate = dec("0.35")
	_, err := reg.Supersede(next)
	require.NoError(t, err)

	decl := IncomeDeclaration{GrossIncome: dec("120000")}
	old, err := CalculateAsOf(reg, testTaxpayer, testPeriod, decl, NewDate(2023, 12, 31))
	require.NoError(t, err)
	current, err := CalculateAsOf(reg, testTaxpayer, testPeriod, decl, NewDate(2024, 1, 1))
	require.NoError(t, err)

	assert.Equal(t, "12500.00", old.Total.StringFixed(2))
	assert.Equal(t, "14500.00", current.Total.StringFixed(2))
	assert.Equal(t, "income-2023-01-01", old.RateBookID)
}
