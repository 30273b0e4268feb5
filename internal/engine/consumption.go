package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SupplyLine is a taxable sale. Code selects a reduced or zero rate entry; empty
// means the standard rate.
type SupplyLine struct {
	Code   string
	Amount decimal.Decimal
}

// PurchaseLine is a purchase; only qualifying purchases earn input credit.
type PurchaseLine struct {
	Code       string
	Amount     decimal.Decimal
	Qualifying bool
}

// ConsumptionDeclaration carries a period's sales and purchases for GST-style tax.
type ConsumptionDeclaration struct {
	Sales     []SupplyLine
	Purchases []PurchaseLine
}

func (ConsumptionDeclaration) TaxType() TaxType { return TaxTypeConsumption }
func (ConsumptionDeclaration) sealed()          {}

func (d ConsumptionDeclaration) validate() error {
	for i, s := range d.Sales {
		if err := requireNonNegative(fmt.Sprintf("sale %d amount", i), s.Amount); err != nil {
			return err
		}
	}
	for i, p := range d.Purchases {
		if err := requireNonNegative(fmt.Sprintf("purchase %d amount", i), p.Amount); err != nil {
			return err
		}
	}
	return nil
}

// calculateConsumption nets output tax on sales against input tax on qualifying
// purchases. A relieved entity is not charged output tax and so claims no input
// credit; a negative total is a refundable credit.
func calculateConsumption(taxpayer TaxpayerProfile, period Period, d ConsumptionDeclaration, book RateBook) (LiabilityBreakdown, error) {
	relieved := taxpayer.HasRelief(ReliefConsumption)
	var lines []LiabilityLine
	output, input := decimal.Zero, decimal.Zero

	for _, s := range d.Sales {
		entry, err := book.entryFor(s.Code, taxpayer.Category, period.End)
		if err != nil {
			return LiabilityBreakdown{}, err
		}
		rate := entry.Rate
		if relieved {
			rate = decimal.Zero
		}
		amount := s.Amount.Mul(rate)
		output = output.Add(amount)
		lines = append(lines, LiabilityLine{Code: "OUTPUT:" + s.Code, Base: s.Amount, Rate: rate, Amount: amount})
	}

	if !relieved {
		for _, p := range d.Purchases {
			if !p.Qualifying {
				continue
			}
			entry, err := book.entryFor(p.Code, taxpayer.Category, period.End)
			if err != nil {
				return LiabilityBreakdown{}, err
			}
			amount := p.Amount.Mul(entry.Rate)
			input = input.Add(amount)
			lines = append(lines, LiabilityLine{Code: "INPUT:" + p.Code, Base: p.Amount, Rate: entry.Rate, Amount: amount.Neg()})
		}
	}

	net := output.Sub(input)
	return LiabilityBreakdown{
		Lines:     lines,
		OutputTax: RoundMoney(output),
		InputTax:  RoundMoney(input),
		Computed:  net,
		Total:     net,
	}, nil
}
