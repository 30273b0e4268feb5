package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentCategory is the kind of payment tax is withheld from.
type PaymentCategory string

const (
	PaymentDividends   PaymentCategory = "DIVIDENDS"
	PaymentInterest    PaymentCategory = "INTEREST"
	PaymentRoyalties   PaymentCategory = "ROYALTIES"
	PaymentFees        PaymentCategory = "FEES"
	PaymentRent        PaymentCategory = "RENT"
	PaymentCommissions PaymentCategory = "COMMISSIONS"
)

// WithholdingCode is the rate-entry code for a payment category and residency,
// e.g. "DIVIDENDS/NON_RESIDENT".
func WithholdingCode(category PaymentCategory, resident bool) string {
	if resident {
		return string(category) + "/RESIDENT"
	}
	return string(category) + "/NON_RESIDENT"
}

// WithholdingPayment is one payment made by the withholding agent.
type WithholdingPayment struct {
	Category PaymentCategory
	Amount   decimal.Decimal
	Resident bool
}

// WithholdingDeclaration carries the payments of a period.
type WithholdingDeclaration struct {
	Payments []WithholdingPayment
}

func (WithholdingDeclaration) TaxType() TaxType { return TaxTypeWithholding }
func (WithholdingDeclaration) sealed()          {}

func (d WithholdingDeclaration) validate() error {
	for i, p := range d.Payments {
		if p.Category == "" {
			return fmt.Errorf("%w: payment %d has no category", ErrInvalidDeclaration, i)
		}
		if err := requireNonNegative(fmt.Sprintf("payment %d amount", i), p.Amount); err != nil {
			return err
		}
	}
	return nil
}

func calculateWithholding(taxpayer TaxpayerProfile, period Period, d WithholdingDeclaration, book RateBook) (LiabilityBreakdown, error) {
	lines := make([]LiabilityLine, 0, len(d.Payments))
	for _, p := range d.Payments {
		code := WithholdingCode(p.Category, p.Resident)
		entry, err := book.entryFor(code, taxpayer.Category, period.End)
		if err != nil {
			return LiabilityBreakdown{}, err
		}
		lines = append(lines, LiabilityLine{
			Code:   code,
			Base:   p.Amount,
			Rate:   entry.Rate,
			Amount: p.Amount.Mul(entry.Rate),
		})
	}
	total := sumLines(lines)
	return LiabilityBreakdown{Lines: lines, Computed: total, Total: total}, nil
}
