package engine

import "github.com/shopspring/decimal"

// CategoryBands are the turnover floors of each category. Turnover at or above Large is
// LARGE, at or above Medium is MEDIUM, at or above Small is SMALL, anything else MICRO.
type CategoryBands struct {
	Large  decimal.Decimal
	Medium decimal.Decimal
	Small  decimal.Decimal
}

// DefaultCategoryBands returns 50M / 10M / 1M turnover floors.
func DefaultCategoryBands() CategoryBands {
	return CategoryBands{
		Large:  decimal.NewFromInt(50_000_000),
		Medium: decimal.NewFromInt(10_000_000),
		Small:  decimal.NewFromInt(1_000_000),
	}
}

// Validate requires strictly descending, non-negative floors.
func (b CategoryBands) Validate() error {
	if b.Small.IsNegative() || !b.Medium.GreaterThan(b.Small) || !b.Large.GreaterThan(b.Medium) {
		return conflict("category bands", "floors must satisfy large > medium > small >= 0")
	}
	return nil
}

// Classify derives the category for a turnover.
func (b CategoryBands) Classify(turnover decimal.Decimal) Category {
	switch {
	case turnover.GreaterThanOrEqual(b.Large):
		return CategoryLarge
	case turnover.GreaterThanOrEqual(b.Medium):
		return CategoryMedium
	case turnover.GreaterThanOrEqual(b.Small):
		return CategorySmall
	default:
		return CategoryMicro
	}
}
