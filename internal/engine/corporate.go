package engine

import "github.com/shopspring/decimal"

// CorporateDeclaration carries the figures for flat-rate corporate tax.
// PriorPeriodProfits is ordered most recent first and feeds the minimum-tax test.
type CorporateDeclaration struct {
	TaxableProfit      decimal.Decimal
	Revenue            decimal.Decimal
	PriorPeriodProfits []decimal.Decimal
}

func (CorporateDeclaration) TaxType() TaxType { return TaxTypeCorporate }
func (CorporateDeclaration) sealed()          {}

func (d CorporateDeclaration) validate() error {
	return requireNonNegative("revenue", d.Revenue)
}

// minimumTaxTriggered reports whether the last n prior periods were all at or below
// the profit threshold. Fewer than n periods of history never trigger the floor.
func (d CorporateDeclaration) minimumTaxTriggered(rule MinimumTaxRule) bool {
	n := rule.ConsecutivePeriods
	if n < 1 || len(d.PriorPeriodProfits) < n {
		return false
	}
	for _, p := range d.PriorPeriodProfits[:n] {
		if p.GreaterThan(rule.ProfitThreshold) {
			return false
		}
	}
	return true
}

// calculateCorporate charges the flat rate on profit, then raises the result to the
// revenue-based minimum when the floor is triggered. The floor replaces, never adds.
func calculateCorporate(taxpayer TaxpayerProfile, period Period, d CorporateDeclaration, book RateBook) (LiabilityBreakdown, error) {
	entry, err := book.entryFor("", taxpayer.Category, period.End)
	if err != nil {
		return LiabilityBreakdown{}, err
	}

	profit := maxDecimal(d.TaxableProfit, decimal.Zero)
	flat := LiabilityLine{
		Code:     "FLAT",
		Base:     profit,
		Rate:     entry.Rate,
		FixedFee: entry.FixedFee,
		Amount:   profit.Mul(entry.Rate).Add(entry.FixedFee),
	}
	out := LiabilityBreakdown{
		Lines:    []LiabilityLine{flat},
		Computed: flat.Amount,
		Total:    flat.Amount,
	}

	if book.MinimumTax == nil || taxpayer.HasRelief(ReliefMinimumTax) || !d.minimumTaxTriggered(*book.MinimumTax) {
		return out, nil
	}
	floor := d.Revenue.Mul(book.MinimumTax.Rate)
	out.MinimumTax = floor
	if floor.GreaterThan(out.Computed) {
		out.MinimumTaxApplied = true
		out.Total = floor
		out.Lines = append(out.Lines, LiabilityLine{
			Code:   "MAT",
			Base:   d.Revenue,
			Rate:   book.MinimumTax.Rate,
			Amount: floor.Sub(out.Computed),
		})
	}
	return out, nil
}
