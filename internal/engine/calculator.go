package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Declaration is the closed set of declared figures, one variant per tax type.
// The unexported marker keeps the set closed to this package.
type Declaration interface {
	TaxType() TaxType
	validate() error
	sealed()
}

// LiabilityLine is one component of a liability: a bracket, a payment, a product.
// Amounts on lines are exact; only the breakdown total is rounded.
type LiabilityLine struct {
	Code     string
	Floor    decimal.Decimal
	Ceiling  *decimal.Decimal
	Base     decimal.Decimal
	Rate     decimal.Decimal
	FixedFee decimal.Decimal
	Amount   decimal.Decimal
}

// LiabilityBreakdown is the result of a calculation.
type LiabilityBreakdown struct {
	TaxpayerID        string
	TaxType           TaxType
	PeriodKey         string
	RateBookID        string
	RateBookFrom      time.Time
	Lines             []LiabilityLine
	OutputTax         decimal.Decimal
	InputTax          decimal.Decimal
	Computed          decimal.Decimal
	MinimumTax        decimal.Decimal
	MinimumTaxApplied bool
	Total             decimal.Decimal
}

// Calculate dispatches decl to its tax-type calculator. book must be the version
// resolved for the calculation's as-of date; the calculators never consult a clock.
func Calculate(taxpayer TaxpayerProfile, period Period, decl Declaration, book RateBook) (LiabilityBreakdown, error) {
	if decl == nil {
		return LiabilityBreakdown{}, fmt.Errorf("%w: declaration is required", ErrInvalidDeclaration)
	}
	if book.TaxType != decl.TaxType() {
		return LiabilityBreakdown{}, conflict("calculation",
			"rate book is for %s but declaration is for %s", book.TaxType, decl.TaxType())
	}
	if err := decl.validate(); err != nil {
		return LiabilityBreakdown{}, err
	}

	var (
		out LiabilityBreakdown
		err error
	)
	switch d := decl.(type) {
	case IncomeDeclaration:
		out = calculateIncome(taxpayer, d, book)
	case CorporateDeclaration:
		out, err = calculateCorporate(taxpayer, period, d, book)
	case ConsumptionDeclaration:
		out, err = calculateConsumption(taxpayer, period, d, book)
	case WithholdingDeclaration:
		out, err = calculateWithholding(taxpayer, period, d, book)
	case ExciseDeclaration:
		out, err = calculateExcise(taxpayer, period, d, book)
	default:
		return LiabilityBreakdown{}, fmt.Errorf("%w: unsupported declaration %T", ErrInvalidDeclaration, decl)
	}
	if err != nil {
		return LiabilityBreakdown{}, err
	}

	out.TaxpayerID = taxpayer.ID
	out.TaxType = book.TaxType
	out.PeriodKey = period.Key()
	out.RateBookID = book.ID
	out.RateBookFrom = book.EffectiveFrom
	out.Total = RoundMoney(out.Total)
	return out, nil
}

// CalculateAsOf resolves the rate book in force on asOf from registry and calculates.
func CalculateAsOf(registry *RateBookRegistry, taxpayer TaxpayerProfile, period Period, decl Declaration, asOf time.Time) (LiabilityBreakdown, error) {
	if decl == nil {
		return LiabilityBreakdown{}, fmt.Errorf("%w: declaration is required", ErrInvalidDeclaration)
	}
	book, err := registry.Resolve(decl.TaxType(), taxpayer.Jurisdiction, asOf)
	if err != nil {
		return LiabilityBreakdown{}, err
	}
	return Calculate(taxpayer, period, decl, book)
}

func sumLines(lines []LiabilityLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}

func requireNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidDeclaration, field)
	}
	return nil
}
