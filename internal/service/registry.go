package service

import (
	"context"
	"fmt"

	"taxoffice/internal/config"
	"taxoffice/internal/engine"
	"taxoffice/internal/repository"

	"go.uber.org/zap"
)

// Engine bundles the in-memory rule registries shared by every service. Registries
// are hydrated once at start-up by RegistryLoader and kept in step with the database
// by the services that write configuration.
type Engine struct {
	RateBooks           *engine.RateBookRegistry
	PenaltyRules        *engine.PenaltyRuleRegistry
	Calendars           *engine.CalendarSet
	Deadlines           *engine.DeadlineRuleEngine
	Penalties           *engine.PenaltyCalculator
	Scorer              *engine.ComplianceScorer
	Bands               engine.CategoryBands
	BatchConcurrency    int
	DefaultJurisdiction string
}

// NewEngine builds empty registries configured from cfg.
func NewEngine(cfg config.EngineConfig) (*Engine, error) {
	bands, err := cfg.Bands()
	if err != nil {
		return nil, err
	}
	weights, err := cfg.ComplianceWeights()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.ScorerOptions()
	if err != nil {
		return nil, err
	}
	scorer, err := engine.NewComplianceScorer(weights, opts)
	if err != nil {
		return nil, err
	}

	penaltyRules := engine.NewPenaltyRuleRegistry()
	calendars := engine.NewCalendarSet()
	return &Engine{
		RateBooks:           engine.NewRateBookRegistry(),
		PenaltyRules:        penaltyRules,
		Calendars:           calendars,
		Deadlines:           engine.NewDeadlineRuleEngine(calendars),
		Penalties:           engine.NewPenaltyCalculator(penaltyRules, cfg.LateFilerThresholdDays),
		Scorer:              scorer,
		Bands:               bands,
		BatchConcurrency:    cfg.BatchConcurrency,
		DefaultJurisdiction: cfg.DefaultJurisdiction,
	}, nil
}

// RegistryLoader hydrates an Engine from the stored configuration.
type RegistryLoader struct {
	rateBooks    repository.RateBookRepository
	penaltyRules repository.PenaltyRuleRepository
	calendars    repository.CalendarRepository
	log          *zap.Logger
}

func NewRegistryLoader(
	rateBooks repository.RateBookRepository,
	penaltyRules repository.PenaltyRuleRepository,
	calendars repository.CalendarRepository,
	log *zap.Logger,
) *RegistryLoader {
	return &RegistryLoader{rateBooks: rateBooks, penaltyRules: penaltyRules, calendars: calendars, log: log}
}

// Load replays every stored version into eng. Versions are appended oldest first so
// each chain is rebuilt under the same overlap and gap checks as a live write.
func (l *RegistryLoader) Load(ctx context.Context, eng *Engine) error {
	books, err := l.rateBooks.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rate books: %w", err)
	}
	for _, b := range books {
		if err := eng.RateBooks.Append(b.ToEngine()); err != nil {
			return fmt.Errorf("stored rate book %s is inconsistent: %w", b.ID, err)
		}
	}

	rules, err := l.penaltyRules.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load penalty rules: %w", err)
	}
	for _, r := range rules {
		if err := eng.PenaltyRules.Append(r.ToEngine()); err != nil {
			return fmt.Errorf("stored penalty rule %s is inconsistent: %w", r.ID, err)
		}
	}

	holidays, err := l.calendars.ListAllHolidays(ctx)
	if err != nil {
		return fmt.Errorf("failed to load holidays: %w", err)
	}
	for _, h := range holidays {
		eng.Calendars.For(h.Jurisdiction).AddHoliday(h.Date, h.Name)
	}

	deadlineRules, err := l.calendars.ListDeadlineRules(ctx)
	if err != nil {
		return fmt.Errorf("failed to load deadline rules: %w", err)
	}
	for _, r := range deadlineRules {
		if err := eng.Deadlines.SetRule(r.ToEngine()); err != nil {
			return fmt.Errorf("stored deadline rule %s is invalid: %w", r.ID, err)
		}
	}

	l.log.Info("rule registries loaded",
		zap.Int("rate_books", len(books)),
		zap.Int("penalty_rules", len(rules)),
		zap.Int("holidays", len(holidays)),
		zap.Int("deadline_rules", len(deadlineRules)),
	)
	return nil
}
