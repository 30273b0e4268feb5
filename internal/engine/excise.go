package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExciseLine is a declared quantity of one product.
type ExciseLine struct {
	ProductCode string
	Quantity    decimal.Decimal
	Unit        UnitBasis
}

// ExciseDeclaration carries the dutiable quantities of a period.
type ExciseDeclaration struct {
	Lines []ExciseLine
}

func (ExciseDeclaration) TaxType() TaxType { return TaxTypeExcise }
func (ExciseDeclaration) sealed()          {}

func (d ExciseDeclaration) validate() error {
	for i, l := range d.Lines {
		if l.ProductCode == "" {
			return fmt.Errorf("%w: excise line %d has no product code", ErrInvalidDeclaration, i)
		}
		if err := requireNonNegative(fmt.Sprintf("excise line %d quantity", i), l.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// calculateExcise charges quantity × per-unit rate. The unit basis belongs to the rate
// entry; a declaration in any other unit is rejected rather than converted.
func calculateExcise(taxpayer TaxpayerProfile, period Period, d ExciseDeclaration, book RateBook) (LiabilityBreakdown, error) {
	lines := make([]LiabilityLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		entry, err := book.entryFor(l.ProductCode, taxpayer.Category, period.End)
		if err != nil {
			return LiabilityBreakdown{}, err
		}
		if l.Unit != entry.UnitBasis {
			return LiabilityBreakdown{}, &UnitBasisMismatchError{
				ProductCode: l.ProductCode,
				Declared:    l.Unit,
				Expected:    entry.UnitBasis,
			}
		}
		lines = append(lines, LiabilityLine{
			Code:     l.ProductCode,
			Base:     l.Quantity,
			Rate:     entry.Rate,
			FixedFee: entry.FixedFee,
			Amount:   l.Quantity.Mul(entry.Rate).Add(entry.FixedFee),
		})
	}
	total := sumLines(lines)
	return LiabilityBreakdown{Lines: lines, Computed: total, Total: total}, nil
}
