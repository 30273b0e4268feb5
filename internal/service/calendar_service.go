package service

import (
	"context"
	"fmt"
	"strconv"

	"taxoffice/internal/engine"
	"taxoffice/internal/model"
	"taxoffice/internal/repository"

	"go.uber.org/zap"
)

// --- DTOs ---

type AddHolidayRequest struct {
	Jurisdiction string `json:"jurisdiction" binding:"required"`
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
	Name         string `json:"name" binding:"required"`
}

type HolidayResponse struct {
	Jurisdiction string `json:"jurisdiction"`
	Date         string `json:"date"`
	Name         string `json:"name"`
}

type AddHolidayResponse struct {
	HolidayResponse
	Created bool `json:"created"` // false when the date was already a holiday
}

type SetDeadlineRuleRequest struct {
	TaxType        string `json:"tax_type" binding:"required,oneof=INCOME CORPORATE GST WHT EXCISE"`
	Jurisdiction   string `json:"jurisdiction"` // empty = default for every jurisdiction
	Base           string `json:"base" binding:"required,oneof=FIXED_DATE DAYS_AFTER_PERIOD_END"`
	Month          int    `json:"month" binding:"omitempty,min=1,max=12"`
	Day            int    `json:"day" binding:"omitempty,min=1,max=31"`
	YearOffset     int    `json:"year_offset"`
	Days           int    `json:"days" binding:"omitempty,min=0"`
	RollConvention string `json:"roll_convention" binding:"required,oneof=NEXT_BUSINESS_DAY PREVIOUS_BUSINESS_DAY"`
}

type DeadlineRuleResponse struct {
	TaxType        string `json:"tax_type"`
	Jurisdiction   string `json:"jurisdiction"`
	Base           string `json:"base"`
	Month          int    `json:"month,omitempty"`
	Day            int    `json:"day,omitempty"`
	YearOffset     int    `json:"year_offset,omitempty"`
	Days           int    `json:"days,omitempty"`
	RollConvention string `json:"roll_convention"`
}

// DueDateRequest previews the due date of a period without opening it.
type DueDateRequest struct {
	TaxpayerID   string `json:"taxpayer_id"` // optional; jurisdiction is used when empty
	Jurisdiction string `json:"jurisdiction"`
	TaxType      string `json:"tax_type" binding:"required,oneof=INCOME CORPORATE GST WHT EXCISE"`
	Label        string `json:"label"`
	PeriodStart  string `json:"period_start" binding:"required"`
	PeriodEnd    string `json:"period_end" binding:"required"`
}

type DueDateResponse struct {
	TaxType          string `json:"tax_type"`
	PeriodKey        string `json:"period_key"`
	Base             string `json:"base_date"`
	Statutory        string `json:"statutory_due_date"`
	Effective        string `json:"due_date"`
	RollConvention   string `json:"roll_convention"`
	ExtensionApplied bool   `json:"extension_applied"`
}

type BusinessDayResponse struct {
	Jurisdiction string `json:"jurisdiction"`
	Date         string `json:"date"`
	BusinessDay  bool   `json:"business_day"`
	Next         string `json:"next_business_day"`
	Previous     string `json:"previous_business_day"`
}

// --- Interface ---

type CalendarService interface {
	AddHoliday(ctx context.Context, req AddHolidayRequest, actor string) (AddHolidayResponse, error)
	ListHolidays(ctx context.Context, jurisdiction string, year int) ([]HolidayResponse, error)
	CheckBusinessDay(ctx context.Context, jurisdiction, date string) (BusinessDayResponse, error)
	SetDeadlineRule(ctx context.Context, req SetDeadlineRuleRequest, actor string) (DeadlineRuleResponse, error)
	ListDeadlineRules(ctx context.Context) ([]DeadlineRuleResponse, error)
	PreviewDueDate(ctx context.Context, req DueDateRequest) (DueDateResponse, error)
}

type calendarService struct {
	calendarRepo repository.CalendarRepository
	taxpayerRepo repository.TaxpayerRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	engine       *Engine
	log          *zap.Logger
}

func NewCalendarService(
	calendarRepo repository.CalendarRepository,
	taxpayerRepo repository.TaxpayerRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	eng *Engine,
	log *zap.Logger,
) CalendarService {
	return &calendarService{
		calendarRepo: calendarRepo,
		taxpayerRepo: taxpayerRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		engine:       eng,
		log:          log.Named("calendar"),
	}
}

// --- Implementation ---

// AddHoliday appends a holiday. Due dates already stored on filing periods are left
// as they are; they move only through an explicit recompute.
func (s *calendarService) AddHoliday(ctx context.Context, req AddHolidayRequest, actor string) (AddHolidayResponse, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return AddHolidayResponse{}, err
	}
	holiday := &model.Holiday{
		Jurisdiction: req.Jurisdiction,
		Date:         date,
		Name:         req.Name,
		CreatedBy:    actor,
	}

	var created bool
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		written, err := s.calendarRepo.AddHoliday(txCtx, holiday)
		if err != nil {
			return fmt.Errorf("failed to add holiday: %w", err)
		}
		created = written
		if !written {
			return nil
		}
		return writeAuditLog(txCtx, s.auditRepo, actor, model.ActionAddHoliday, req.Jurisdiction,
			engine.FormatDate(date)+" "+req.Name, req)
	})
	if err != nil {
		return AddHolidayResponse{}, err
	}

	s.engine.Calendars.For(req.Jurisdiction).AddHoliday(date, req.Name)
	if created {
		s.log.Info("holiday added", zap.String("jurisdiction", req.Jurisdiction), zap.String("date", engine.FormatDate(date)))
	}
	return AddHolidayResponse{
		HolidayResponse: HolidayResponse{Jurisdiction: req.Jurisdiction, Date: engine.FormatDate(date), Name: req.Name},
		Created:         created,
	}, nil
}

func (s *calendarService) ListHolidays(ctx context.Context, jurisdiction string, year int) ([]HolidayResponse, error) {
	holidays, err := s.calendarRepo.ListHolidays(ctx, jurisdiction, year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	res := make([]HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		res = append(res, HolidayResponse{Jurisdiction: h.Jurisdiction, Date: engine.FormatDate(h.Date), Name: h.Name})
	}
	return res, nil
}

func (s *calendarService) CheckBusinessDay(_ context.Context, jurisdiction, date string) (BusinessDayResponse, error) {
	d, err := parseDate("date", date)
	if err != nil {
		return BusinessDayResponse{}, err
	}
	cal := s.engine.Calendars.For(jurisdiction)
	return BusinessDayResponse{
		Jurisdiction: jurisdiction,
		Date:         engine.FormatDate(d),
		BusinessDay:  cal.IsBusinessDay(d),
		Next:         engine.FormatDate(cal.NextBusinessDay(d)),
		Previous:     engine.FormatDate(cal.PreviousBusinessDay(d)),
	}, nil
}

func (s *calendarService) SetDeadlineRule(ctx context.Context, req SetDeadlineRuleRequest, actor string) (DeadlineRuleResponse, error) {
	rule := &model.DeadlineRule{
		TaxType:        req.TaxType,
		Jurisdiction:   req.Jurisdiction,
		Base:           req.Base,
		Month:          req.Month,
		Day:            req.Day,
		YearOffset:     req.YearOffset,
		Days:           req.Days,
		RollConvention: req.RollConvention,
	}
	if err := rule.ToEngine().Validate(); err != nil {
		return DeadlineRuleResponse{}, fmt.Errorf("failed to set deadline rule: %w", err)
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.calendarRepo.UpsertDeadlineRule(txCtx, rule); err != nil {
			return fmt.Errorf("failed to set deadline rule: %w", err)
		}
		scope := req.Jurisdiction
		if scope == "" {
			scope = "*"
		}
		return writeAuditLog(txCtx, s.auditRepo, actor, model.ActionSetDeadlineRule, req.TaxType+"/"+scope, req.Base, req)
	})
	if err != nil {
		return DeadlineRuleResponse{}, err
	}

	if err := s.engine.Deadlines.SetRule(rule.ToEngine()); err != nil {
		return DeadlineRuleResponse{}, fmt.Errorf("failed to register deadline rule: %w", err)
	}
	s.log.Info("deadline rule set", zap.String("tax_type", req.TaxType), zap.String("jurisdiction", req.Jurisdiction))
	return toDeadlineRuleResponse(*rule), nil
}

func (s *calendarService) ListDeadlineRules(ctx context.Context) ([]DeadlineRuleResponse, error) {
	rules, err := s.calendarRepo.ListDeadlineRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deadline rules: %w", err)
	}
	res := make([]DeadlineRuleResponse, 0, len(rules))
	for _, r := range rules {
		res = append(res, toDeadlineRuleResponse(r))
	}
	return res, nil
}

func (s *calendarService) PreviewDueDate(ctx context.Context, req DueDateRequest) (DueDateResponse, error) {
	period, err := parsePeriod(req.Label, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return DueDateResponse{}, err
	}

	profile := engine.TaxpayerProfile{Jurisdiction: req.Jurisdiction}
	if req.TaxpayerID != "" {
		id, err := parseID("taxpayer_id", req.TaxpayerID)
		if err != nil {
			return DueDateResponse{}, err
		}
		taxpayer, err := s.taxpayerRepo.FindByID(ctx, id)
		if err != nil {
			return DueDateResponse{}, lookupErr("taxpayer", err)
		}
		profile = taxpayer.Profile()
	}
	if profile.Jurisdiction == "" {
		profile.Jurisdiction = s.engine.DefaultJurisdiction
	}

	due, err := s.engine.Deadlines.ComputeDueDate(engine.DeadlineInput{
		TaxType:  engine.TaxType(req.TaxType),
		Period:   period,
		Taxpayer: profile,
	})
	if err != nil {
		return DueDateResponse{}, fmt.Errorf("failed to compute due date: %w", err)
	}
	return toDueDateResponse(due, period), nil
}

// --- Helpers ---

func toDeadlineRuleResponse(r model.DeadlineRule) DeadlineRuleResponse {
	return DeadlineRuleResponse{
		TaxType:        r.TaxType,
		Jurisdiction:   r.Jurisdiction,
		Base:           r.Base,
		Month:          r.Month,
		Day:            r.Day,
		YearOffset:     r.YearOffset,
		Days:           r.Days,
		RollConvention: r.RollConvention,
	}
}

func toDueDateResponse(d engine.DueDate, p engine.Period) DueDateResponse {
	return DueDateResponse{
		TaxType:          string(d.TaxType),
		PeriodKey:        p.Key(),
		Base:             engine.FormatDate(d.Base),
		Statutory:        engine.FormatDate(d.Statutory),
		Effective:        engine.FormatDate(d.Effective),
		RollConvention:   string(d.Roll),
		ExtensionApplied: d.ExtensionApplied,
	}
}

// ParseYear reads a calendar year query value.
func ParseYear(raw string) (int, error) {
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1900 || year > 2200 {
		return 0, invalid("year must be a four-digit year")
	}
	return year, nil
}
