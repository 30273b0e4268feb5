package engine

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// RateEntry is one row of a rate book. Progressive books use Threshold as the bracket
// floor; coded books (withholding, excise, consumption) look rows up by Code.
type RateEntry struct {
	Code        string
	Category    Category
	Threshold   decimal.Decimal
	Rate        decimal.Decimal
	FixedFee    decimal.Decimal
	UnitBasis   UnitBasis
	Description string
}

// MinimumTaxRule configures the minimum-alternate-tax floor of a corporate rate book.
type MinimumTaxRule struct {
	Rate               decimal.Decimal
	ConsecutivePeriods int
	ProfitThreshold    decimal.Decimal
}

// RateBook is one effective-dated version of the rates for a tax type in a jurisdiction.
type RateBook struct {
	ID            string
	Jurisdiction  string
	TaxType       TaxType
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	Entries       []RateEntry
	MinimumTax    *MinimumTaxRule
}

func (b RateBook) window() Window {
	return Window{From: b.EffectiveFrom, To: b.EffectiveTo}
}

func (b RateBook) closedAt(to time.Time) RateBook {
	c := b.clone()
	c.EffectiveTo = &to
	return c
}

func (b RateBook) clone() RateBook {
	c := b
	c.Entries = make([]RateEntry, len(b.Entries))
	copy(c.Entries, b.Entries)
	if b.EffectiveTo != nil {
		to := *b.EffectiveTo
		c.EffectiveTo = &to
	}
	if b.MinimumTax != nil {
		mt := *b.MinimumTax
		c.MinimumTax = &mt
	}
	return c
}

func (b RateBook) subject() string {
	return "rate book " + string(b.TaxType) + "/" + b.Jurisdiction
}

// Validate checks the bracket invariants: each (code, category) group is ordered by
// strictly ascending threshold, rates are fractions (except per-unit excise rates),
// and excise rows carry a unit basis.
func (b RateBook) Validate() error {
	subject := b.subject()
	if !b.TaxType.Valid() {
		return conflict(subject, "unknown tax type")
	}
	if b.Jurisdiction == "" {
		return conflict(subject, "jurisdiction is required")
	}
	if len(b.Entries) == 0 {
		return conflict(subject, "at least one rate entry is required")
	}
	if err := b.window().validate(subject); err != nil {
		return err
	}

	type groupKey struct {
		code     string
		category Category
	}
	last := make(map[groupKey]decimal.Decimal)
	for i, e := range b.Entries {
		if e.Threshold.IsNegative() {
			return conflict(subject, "entry %d has a negative threshold", i)
		}
		if e.Rate.IsNegative() || e.FixedFee.IsNegative() {
			return conflict(subject, "entry %d has a negative rate or fee", i)
		}
		if b.TaxType != TaxTypeExcise && e.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return conflict(subject, "entry %d rate %s exceeds 1", i, e.Rate)
		}
		switch b.TaxType {
		case TaxTypeExcise:
			if e.Code == "" || e.UnitBasis == UnitNone {
				return conflict(subject, "excise entry %d needs a product code and unit basis", i)
			}
		case TaxTypeWithholding:
			if e.Code == "" {
				return conflict(subject, "withholding entry %d needs a payment code", i)
			}
		}

		k := groupKey{code: e.Code, category: e.Category}
		if prev, ok := last[k]; ok && !e.Threshold.GreaterThan(prev) {
			return conflict(subject, "entry %d threshold %s does not ascend past %s", i, e.Threshold, prev)
		}
		last[k] = e.Threshold
	}

	if b.MinimumTax != nil {
		if b.TaxType != TaxTypeCorporate {
			return conflict(subject, "minimum tax applies to corporate books only")
		}
		if b.MinimumTax.Rate.IsNegative() || b.MinimumTax.ConsecutivePeriods < 1 {
			return conflict(subject, "minimum tax needs a non-negative rate and at least one period")
		}
	}
	return nil
}

// entriesFor returns the rows for code, preferring rows scoped to category and falling
// back to rows with no category.
func (b RateBook) entriesFor(code string, category Category) []RateEntry {
	var scoped, generic []RateEntry
	for _, e := range b.Entries {
		if e.Code != code {
			continue
		}
		switch e.Category {
		case category:
			scoped = append(scoped, e)
		case CategoryAny:
			generic = append(generic, e)
		}
	}
	if len(scoped) > 0 {
		return scoped
	}
	return generic
}

func (b RateBook) entryFor(code string, category Category, asOf time.Time) (RateEntry, error) {
	rows := b.entriesFor(code, category)
	if len(rows) == 0 {
		return RateEntry{}, &NoApplicableRuleError{
			Kind: "rate_entry", TaxType: b.TaxType, Jurisdiction: b.Jurisdiction, Key: code, AsOf: asOf,
		}
	}
	return rows[0], nil
}

type rateBookKey struct {
	taxType      TaxType
	jurisdiction string
}

// RateBookRegistry holds every rate book version. Readers get copies, so a concurrent
// Append or Supersede never changes a book mid-calculation.
type RateBookRegistry struct {
	mu    sync.RWMutex
	books map[rateBookKey]*timeline[RateBook]
}

// NewRateBookRegistry creates an empty registry.
func NewRateBookRegistry() *RateBookRegistry {
	return &RateBookRegistry{books: make(map[rateBookKey]*timeline[RateBook])}
}

// Resolve returns a copy of the version in force on asOf.
func (r *RateBookRegistry) Resolve(taxType TaxType, jurisdiction string, asOf time.Time) (RateBook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if tl, ok := r.books[rateBookKey{taxType, jurisdiction}]; ok {
		if book, found := tl.resolve(asOf); found {
			return book.clone(), nil
		}
	}
	return RateBook{}, &NoApplicableRuleError{
		Kind: "rate_book", TaxType: taxType, Jurisdiction: jurisdiction, AsOf: asOf,
	}
}

// Append adds a new version after validating it against the existing chain.
func (r *RateBookRegistry) Append(book RateBook) error {
	if err := book.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tl := r.timelineFor(book.TaxType, book.Jurisdiction)
	if err := tl.checkAppend(book.subject(), book.window()); err != nil {
		return err
	}
	tl.insert(book.clone())
	return nil
}

// Supersede closes the currently open version at book.EffectiveFrom and appends book.
// The closed previous version is returned so callers can persist the close step.
func (r *RateBookRegistry) Supersede(book RateBook) (RateBook, error) {
	if err := book.Validate(); err != nil {
		return RateBook{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tl := r.timelineFor(book.TaxType, book.Jurisdiction)
	closed, err := tl.supersede(book.subject(), book.clone())
	if err != nil {
		return RateBook{}, err
	}
	return closed.clone(), nil
}

// CheckSupersede validates a supersede without applying it.
func (r *RateBookRegistry) CheckSupersede(book RateBook) (RateBook, error) {
	if err := book.Validate(); err != nil {
		return RateBook{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	trial := timeline[RateBook]{}
	if tl, ok := r.books[rateBookKey{book.TaxType, book.Jurisdiction}]; ok {
		trial.versions = tl.all()
	}
	closed, err := trial.supersede(book.subject(), book)
	if err != nil {
		return RateBook{}, err
	}
	return closed.clone(), nil
}

// CheckAppend validates book against the chain without inserting it.
func (r *RateBookRegistry) CheckAppend(book RateBook) error {
	if err := book.Validate(); err != nil {
		return err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	tl, ok := r.books[rateBookKey{book.TaxType, book.Jurisdiction}]
	if !ok {
		return nil
	}
	return tl.checkAppend(book.subject(), book.window())
}

// Versions lists every version for the key ordered by effective date.
func (r *RateBookRegistry) Versions(taxType TaxType, jurisdiction string) []RateBook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tl, ok := r.books[rateBookKey{taxType, jurisdiction}]
	if !ok {
		return nil
	}
	out := tl.all()
	for i := range out {
		out[i] = out[i].clone()
	}
	return out
}

func (r *RateBookRegistry) timelineFor(taxType TaxType, jurisdiction string) *timeline[RateBook] {
	k := rateBookKey{taxType, jurisdiction}
	tl, ok := r.books[k]
	if !ok {
		tl = &timeline[RateBook]{}
		r.books[k] = tl
	}
	return tl
}
