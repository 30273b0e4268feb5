package service

import (
	"fmt"

	"taxoffice/internal/engine"

	"github.com/shopspring/decimal"
)

// DeclarationPayload carries declared figures for any tax type. Only the fields of the
// declared tax type are read.
type DeclarationPayload struct {
	// INCOME
	GrossIncome string `json:"gross_income,omitempty"`
	Deductions  string `json:"deductions,omitempty"`

	// CORPORATE
	TaxableProfit      string   `json:"taxable_profit,omitempty"`
	Revenue            string   `json:"revenue,omitempty"`
	PriorPeriodProfits []string `json:"prior_period_profits,omitempty"` // most recent first

	// GST
	Sales     []SupplyPayload   `json:"sales,omitempty"`
	Purchases []PurchasePayload `json:"purchases,omitempty"`

	// WHT
	Payments []WithholdingPayload `json:"payments,omitempty"`

	// EXCISE
	Lines []ExcisePayload `json:"lines,omitempty"`
}

type SupplyPayload struct {
	Code   string `json:"code"`
	Amount string `json:"amount"`
}

type PurchasePayload struct {
	Code       string `json:"code"`
	Amount     string `json:"amount"`
	Qualifying bool   `json:"qualifying"`
}

type WithholdingPayload struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Resident bool   `json:"resident"`
}

type ExcisePayload struct {
	ProductCode string `json:"product_code"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
}

// toDeclaration maps the payload onto the engine variant for taxType.
func (p DeclarationPayload) toDeclaration(taxType engine.TaxType) (engine.Declaration, error) {
	switch taxType {
	case engine.TaxTypeIncome:
		gross, err := parseAmount("gross_income", p.GrossIncome)
		if err != nil {
			return nil, err
		}
		deductions, err := parseAmount("deductions", p.Deductions)
		if err != nil {
			return nil, err
		}
		return engine.IncomeDeclaration{GrossIncome: gross, Deductions: deductions}, nil

	case engine.TaxTypeCorporate:
		profit, err := parseAmount("taxable_profit", p.TaxableProfit)
		if err != nil {
			return nil, err
		}
		revenue, err := parseAmount("revenue", p.Revenue)
		if err != nil {
			return nil, err
		}
		prior := make([]decimal.Decimal, 0, len(p.PriorPeriodProfits))
		for i, raw := range p.PriorPeriodProfits {
			d, err := parseAmount(fmt.Sprintf("prior_period_profits[%d]", i), raw)
			if err != nil {
				return nil, err
			}
			prior = append(prior, d)
		}
		return engine.CorporateDeclaration{TaxableProfit: profit, Revenue: revenue, PriorPeriodProfits: prior}, nil

	case engine.TaxTypeConsumption:
		decl := engine.ConsumptionDeclaration{}
		for i, s := range p.Sales {
			amount, err := parseAmount(fmt.Sprintf("sales[%d].amount", i), s.Amount)
			if err != nil {
				return nil, err
			}
			decl.Sales = append(decl.Sales, engine.SupplyLine{Code: s.Code, Amount: amount})
		}
		for i, pu := range p.Purchases {
			amount, err := parseAmount(fmt.Sprintf("purchases[%d].amount", i), pu.Amount)
			if err != nil {
				return nil, err
			}
			decl.Purchases = append(decl.Purchases, engine.PurchaseLine{Code: pu.Code, Amount: amount, Qualifying: pu.Qualifying})
		}
		return decl, nil

	case engine.TaxTypeWithholding:
		decl := engine.WithholdingDeclaration{}
		for i, pay := range p.Payments {
			amount, err := parseAmount(fmt.Sprintf("payments[%d].amount", i), pay.Amount)
			if err != nil {
				return nil, err
			}
			decl.Payments = append(decl.Payments, engine.WithholdingPayment{
				Category: engine.PaymentCategory(pay.Category),
				Amount:   amount,
				Resident: pay.Resident,
			})
		}
		return decl, nil

	case engine.TaxTypeExcise:
		decl := engine.ExciseDeclaration{}
		for i, l := range p.Lines {
			qty, err := parseAmount(fmt.Sprintf("lines[%d].quantity", i), l.Quantity)
			if err != nil {
				return nil, err
			}
			decl.Lines = append(decl.Lines, engine.ExciseLine{
				ProductCode: l.ProductCode,
				Quantity:    qty,
				Unit:        engine.UnitBasis(l.Unit),
			})
		}
		return decl, nil
	}
	return nil, invalid("unsupported tax type '%s'", taxType)
}

// LiabilityLineResponse is one component of a computed liability.
type LiabilityLineResponse struct {
	Code     string  `json:"code,omitempty"`
	Floor    string  `json:"floor"`
	Ceiling  *string `json:"ceiling,omitempty"`
	Base     string  `json:"base"`
	Rate     string  `json:"rate"`
	FixedFee string  `json:"fixed_fee"`
	Amount   string  `json:"amount"`
}

// LiabilityResponse is the computed liability breakdown.
type LiabilityResponse struct {
	TaxpayerID        string                  `json:"taxpayer_id"`
	TaxType           string                  `json:"tax_type"`
	PeriodKey         string                  `json:"period_key"`
	RateBookID        string                  `json:"rate_book_id"`
	RateBookFrom      string                  `json:"rate_book_from"`
	Lines             []LiabilityLineResponse `json:"lines"`
	OutputTax         string                  `json:"output_tax"`
	InputTax          string                  `json:"input_tax"`
	Computed          string                  `json:"computed"`
	MinimumTax        string                  `json:"minimum_tax"`
	MinimumTaxApplied bool                    `json:"minimum_tax_applied"`
	Total             string                  `json:"total"`
}

func toLiabilityResponse(b engine.LiabilityBreakdown) LiabilityResponse {
	lines := make([]LiabilityLineResponse, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, LiabilityLineResponse{
			Code:     l.Code,
			Floor:    l.Floor.String(),
			Ceiling:  formatDecimalPtr(l.Ceiling, 2),
			Base:     l.Base.String(),
			Rate:     l.Rate.String(),
			FixedFee: l.FixedFee.String(),
			Amount:   l.Amount.String(),
		})
	}
	return LiabilityResponse{
		TaxpayerID:        b.TaxpayerID,
		TaxType:           string(b.TaxType),
		PeriodKey:         b.PeriodKey,
		RateBookID:        b.RateBookID,
		RateBookFrom:      engine.FormatDate(b.RateBookFrom),
		Lines:             lines,
		OutputTax:         engine.RoundMoney(b.OutputTax).StringFixed(2),
		InputTax:          engine.RoundMoney(b.InputTax).StringFixed(2),
		Computed:          engine.RoundMoney(b.Computed).StringFixed(2),
		MinimumTax:        engine.RoundMoney(b.MinimumTax).StringFixed(2),
		MinimumTaxApplied: b.MinimumTaxApplied,
		Total:             b.Total.StringFixed(2),
	}
}
