package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ComplianceWeights is a named weighting of the four sub-scores. The components must
// sum to exactly 1.
type ComplianceWeights struct {
	Name                 string
	FilingCompleteness   decimal.Decimal
	PaymentTimeliness    decimal.Decimal
	DocumentCompleteness decimal.Decimal
	GeneralTimeliness    decimal.Decimal
}

// DefaultComplianceWeights favours filing and payment behaviour.
func DefaultComplianceWeights() ComplianceWeights {
	return ComplianceWeights{
		Name:                 "default",
		FilingCompleteness:   decimal.RequireFromString("0.30"),
		PaymentTimeliness:    decimal.RequireFromString("0.30"),
		DocumentCompleteness: decimal.RequireFromString("0.20"),
		GeneralTimeliness:    decimal.RequireFromString("0.20"),
	}
}

// Validate rejects negative components and any total other than 1.
func (w ComplianceWeights) Validate() error {
	subject := "compliance weights '" + w.Name + "'"
	parts := []decimal.Decimal{w.FilingCompleteness, w.PaymentTimeliness, w.DocumentCompleteness, w.GeneralTimeliness}
	sum := decimal.Zero
	for _, p := range parts {
		if p.IsNegative() {
			return conflict(subject, "weights must not be negative")
		}
		sum = sum.Add(p)
	}
	if !sum.Equal(decimal.NewFromInt(1)) {
		return conflict(subject, "weights sum to %s, expected 1", sum)
	}
	return nil
}

// ScorerOptions tunes the scorer.
type ScorerOptions struct {
	// NeutralScore is reported for a sub-score with no data.
	NeutralScore decimal.Decimal
	// TimelinessHorizonDays is the average lateness at which general timeliness hits 0.
	TimelinessHorizonDays int
}

// DefaultScorerOptions returns a neutral score of 50 and a 90-day horizon.
func DefaultScorerOptions() ScorerOptions {
	return ScorerOptions{NeutralScore: decimal.NewFromInt(50), TimelinessHorizonDays: 90}
}

// FilingRecord is one required filing.
type FilingRecord struct {
	TaxType   TaxType
	PeriodKey string
	DueDate   time.Time
	FiledAt   *time.Time
}

// PaymentRecord is one payment obligation.
type PaymentRecord struct {
	TaxType TaxType
	DueDate time.Time
	PaidAt  *time.Time
	Amount  decimal.Decimal
}

// ComplianceInput is the raw record set for one taxpayer and period as of a date.
type ComplianceInput struct {
	TaxpayerID         string
	Period             Period
	AsOf               time.Time
	Filings            []FilingRecord
	Payments           []PaymentRecord
	RequiredDocuments  []string
	SubmittedDocuments []string
}

// ComplianceScoreSnapshot is an immutable point-in-time score.
type ComplianceScoreSnapshot struct {
	TaxpayerID           string
	PeriodKey            string
	PeriodLabel          string
	AsOf                 time.Time
	FilingCompleteness   decimal.Decimal
	PaymentTimeliness    decimal.Decimal
	DocumentCompleteness decimal.Decimal
	GeneralTimeliness    decimal.Decimal
	Overall              decimal.Decimal
	Weights              ComplianceWeights
	Digest               string
}

// ComplianceScorer computes compliance snapshots.
type ComplianceScorer struct {
	weights ComplianceWeights
	opts    ScorerOptions
}

// NewComplianceScorer validates weights and options.
func NewComplianceScorer(weights ComplianceWeights, opts ScorerOptions) (*ComplianceScorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if opts.NeutralScore.IsNegative() || opts.NeutralScore.GreaterThan(hundred) {
		return nil, conflict("compliance scorer", "neutral score must be within 0..100")
	}
	if opts.TimelinessHorizonDays <= 0 {
		return nil, conflict("compliance scorer", "timeliness horizon must be positive")
	}
	return &ComplianceScorer{weights: weights, opts: opts}, nil
}

// Weights returns the weights in use.
func (s *ComplianceScorer) Weights() ComplianceWeights { return s.weights }

// Score computes a snapshot. It reads no clock: AsOf decides what counts as due.
func (s *ComplianceScorer) Score(in ComplianceInput) (ComplianceScoreSnapshot, error) {
	if in.TaxpayerID == "" {
		return ComplianceScoreSnapshot{}, errors.New("compliance input needs a taxpayer id")
	}
	if in.AsOf.IsZero() {
		return ComplianceScoreSnapshot{}, errors.New("compliance input needs an as-of date")
	}
	asOf := Date(in.AsOf)

	filing := s.filingCompleteness(in.Filings, asOf)
	payment := s.paymentTimeliness(in.Payments, asOf)
	documents := s.documentCompleteness(in.RequiredDocuments, in.SubmittedDocuments)
	timeliness := s.generalTimeliness(in.Filings, in.Payments, asOf)

	overall := filing.Mul(s.weights.FilingCompleteness).
		Add(payment.Mul(s.weights.PaymentTimeliness)).
		Add(documents.Mul(s.weights.DocumentCompleteness)).
		Add(timeliness.Mul(s.weights.GeneralTimeliness))

	snap := ComplianceScoreSnapshot{
		TaxpayerID:           in.TaxpayerID,
		PeriodKey:            in.Period.Key(),
		PeriodLabel:          in.Period.Label,
		AsOf:                 asOf,
		FilingCompleteness:   RoundMoney(filing),
		PaymentTimeliness:    RoundMoney(payment),
		DocumentCompleteness: RoundMoney(documents),
		GeneralTimeliness:    RoundMoney(timeliness),
		Overall:              RoundMoney(overall),
		Weights:              s.weights,
	}
	snap.Digest = snap.computeDigest()
	return snap, nil
}

func (s *ComplianceScorer) ratio(num, den int) decimal.Decimal {
	if den == 0 {
		return s.opts.NeutralScore
	}
	return decimal.NewFromInt(int64(num)).Mul(hundred).Div(decimal.NewFromInt(int64(den)))
}

// filingCompleteness counts only returns already due at asOf.
func (s *ComplianceScorer) filingCompleteness(filings []FilingRecord, asOf time.Time) decimal.Decimal {
	required, filed := 0, 0
	for _, f := range filings {
		if Date(f.DueDate).After(asOf) {
			continue
		}
		required++
		if f.FiledAt != nil && !Date(*f.FiledAt).After(asOf) {
			filed++
		}
	}
	return s.ratio(filed, required)
}

// paymentTimeliness counts only payments already due at asOf.
func (s *ComplianceScorer) paymentTimeliness(payments []PaymentRecord, asOf time.Time) decimal.Decimal {
	due, onTime := 0, 0
	for _, p := range payments {
		if Date(p.DueDate).After(asOf) {
			continue
		}
		due++
		if p.PaidAt != nil && !Date(*p.PaidAt).After(Date(p.DueDate)) {
			onTime++
		}
	}
	return s.ratio(onTime, due)
}

func (s *ComplianceScorer) documentCompleteness(required, submitted []string) decimal.Decimal {
	have := make(map[string]bool, len(submitted))
	for _, d := range submitted {
		have[d] = true
	}
	seen := make(map[string]bool, len(required))
	total, done := 0, 0
	for _, d := range required {
		if seen[d] {
			continue
		}
		seen[d] = true
		total++
		if have[d] {
			done++
		}
	}
	return s.ratio(done, total)
}

// generalTimeliness inverts the average lateness of due obligations onto 0..100,
// bounded by the horizon. Unmet obligations accrue lateness up to asOf.
func (s *ComplianceScorer) generalTimeliness(filings []FilingRecord, payments []PaymentRecord, asOf time.Time) decimal.Decimal {
	var lateness []int
	measure := func(due time.Time, done *time.Time) {
		if Date(due).After(asOf) {
			return
		}
		end := asOf
		if done != nil {
			end = *done
		}
		lateness = append(lateness, max(DaysBetween(due, end), 0))
	}
	for _, f := range filings {
		measure(f.DueDate, f.FiledAt)
	}
	for _, p := range payments {
		measure(p.DueDate, p.PaidAt)
	}
	if len(lateness) == 0 {
		return s.opts.NeutralScore
	}

	total := 0
	for _, l := range lateness {
		total += l
	}
	horizon := decimal.NewFromInt(int64(s.opts.TimelinessHorizonDays))
	avg := decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(len(lateness))))
	avg = minDecimal(avg, horizon)
	return decimal.NewFromInt(1).Sub(avg.Div(horizon)).Mul(hundred)
}

func (snap ComplianceScoreSnapshot) computeDigest() string {
	fields := []string{
		snap.TaxpayerID,
		snap.PeriodKey,
		FormatDate(snap.AsOf),
		snap.FilingCompleteness.StringFixed(2),
		snap.PaymentTimeliness.StringFixed(2),
		snap.DocumentCompleteness.StringFixed(2),
		snap.GeneralTimeliness.StringFixed(2),
		snap.Overall.StringFixed(2),
		snap.Weights.Name,
		snap.Weights.FilingCompleteness.String(),
		snap.Weights.PaymentTimeliness.String(),
		snap.Weights.DocumentCompleteness.String(),
		snap.Weights.GeneralTimeliness.String(),
	}
	sum := sha256.Sum256([]byte(strings.Join(fields, "|")))
	return hex.EncodeToString(sum[:])
}
