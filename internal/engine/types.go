package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxType identifies the tax a rate book, penalty rule or deadline rule applies to.
type TaxType string

const (
	TaxTypeIncome      TaxType = "INCOME"
	TaxTypeCorporate   TaxType = "CORPORATE"
	TaxTypeConsumption TaxType = "GST"
	TaxTypeWithholding TaxType = "WHT"
	TaxTypeExcise      TaxType = "EXCISE"
)

// TaxTypes lists every supported tax type.
var TaxTypes = []TaxType{TaxTypeIncome, TaxTypeCorporate, TaxTypeConsumption, TaxTypeWithholding, TaxTypeExcise}

// Valid reports whether t is one of the supported tax types.
func (t TaxType) Valid() bool {
	for _, v := range TaxTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Category is the turnover-derived taxpayer classification.
type Category string

const (
	CategoryAny    Category = ""
	CategoryLarge  Category = "LARGE"
	CategoryMedium Category = "MEDIUM"
	CategorySmall  Category = "SMALL"
	CategoryMicro  Category = "MICRO"
)

// UnitBasis is the measure an excise rate entry is expressed per.
type UnitBasis string

const (
	UnitNone   UnitBasis = ""
	UnitWeight UnitBasis = "KG"
	UnitVolume UnitBasis = "LITRE"
	UnitCount  UnitBasis = "UNIT"
)

// ReliefFlag marks an active relief or exemption on a taxpayer.
type ReliefFlag string

const (
	// ReliefConsumption entities are charged zero output tax.
	ReliefConsumption ReliefFlag = "CONSUMPTION_RELIEVED"
	// ReliefMinimumTax exempts the taxpayer from the minimum-alternate-tax floor.
	ReliefMinimumTax ReliefFlag = "MAT_EXEMPT"
)

// TaxpayerProfile is the subset of a client record the engine needs.
type TaxpayerProfile struct {
	ID           string
	Jurisdiction string
	Category     Category
	Turnover     decimal.Decimal
	Reliefs      []ReliefFlag
}

// HasRelief reports whether flag is active on the profile.
func (p TaxpayerProfile) HasRelief(flag ReliefFlag) bool {
	for _, r := range p.Reliefs {
		if r == flag {
			return true
		}
	}
	return false
}

// Period is an inclusive filing period.
type Period struct {
	Label string
	Start time.Time
	End   time.Time
}

// Key identifies the period independently of its label.
func (p Period) Key() string {
	return FormatDate(p.Start) + "/" + FormatDate(p.End)
}
