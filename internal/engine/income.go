package engine

import "github.com/shopspring/decimal"

// IncomeDeclaration carries the figures for progressive personal income tax.
type IncomeDeclaration struct {
	GrossIncome decimal.Decimal
	Deductions  decimal.Decimal
}

func (IncomeDeclaration) TaxType() TaxType { return TaxTypeIncome }
func (IncomeDeclaration) sealed()          {}

func (d IncomeDeclaration) validate() error {
	if err := requireNonNegative("gross income", d.GrossIncome); err != nil {
		return err
	}
	return requireNonNegative("deductions", d.Deductions)
}

// TaxableIncome is gross income less deductions, floored at zero.
func (d IncomeDeclaration) TaxableIncome() decimal.Decimal {
	return maxDecimal(d.GrossIncome.Sub(d.Deductions), decimal.Zero)
}

// calculateIncome applies the brackets marginally: each bracket taxes only the slice
// of income between its floor and the next bracket's floor. Income exactly on a floor
// contributes nothing to that bracket.
func calculateIncome(taxpayer TaxpayerProfile, d IncomeDeclaration, book RateBook) LiabilityBreakdown {
	income := d.TaxableIncome()
	brackets := book.entriesFor("", taxpayer.Category)

	var lines []LiabilityLine
	for i, b := range brackets {
		if !income.GreaterThan(b.Threshold) {
			break
		}
		top := income
		var ceiling *decimal.Decimal
		if i+1 < len(brackets) {
			c := brackets[i+1].Threshold
			ceiling = &c
			top = minDecimal(income, c)
		}
		slice := top.Sub(b.Threshold)
		lines = append(lines, LiabilityLine{
			Floor:    b.Threshold,
			Ceiling:  ceiling,
			Base:     slice,
			Rate:     b.Rate,
			FixedFee: b.FixedFee,
			Amount:   slice.Mul(b.Rate).Add(b.FixedFee),
		})
	}

	total := sumLines(lines)
	return LiabilityBreakdown{
		Lines:    lines,
		Computed: total,
		Total:    total,
	}
}
