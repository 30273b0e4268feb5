package service

import (
	"context"
	"fmt"
	"sync"

	"taxoffice/internal/engine"
	"taxoffice/internal/model"
	"taxoffice/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// --- DTOs ---

type CreatePenaltyRuleRequest struct {
	TaxType       string `json:"tax_type" binding:"required,oneof=INCOME CORPORATE GST WHT EXCISE"`
	Jurisdiction  string `json:"jurisdiction" binding:"required"`
	Category      string `json:"category" binding:"omitempty,oneof=LARGE MEDIUM SMALL MICRO"`
	Bracket       string `json:"bracket" binding:"required,oneof=LATE_FILER NON_FILER UNDER_DECLARATION LATE_PAYMENT_INTEREST"`
	FlatAmount    string `json:"flat_amount"` // Decimal string, optional
	Percentage    string `json:"percentage"`  // Decimal fraction, annual for interest rules
	Additive      bool   `json:"additive"`
	EffectiveFrom string `json:"effective_from" binding:"required"`
	EffectiveTo   string `json:"effective_to"`
	Description   string `json:"description"`
}

type PenaltyRuleResponse struct {
	ID            string  `json:"id"`
	TaxType       string  `json:"tax_type"`
	Jurisdiction  string  `json:"jurisdiction"`
	Category      string  `json:"category,omitempty"`
	Bracket       string  `json:"bracket"`
	FlatAmount    *string `json:"flat_amount"`
	Percentage    *string `json:"percentage"`
	Additive      bool    `json:"additive"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to"`
	Description   string  `json:"description,omitempty"`
	CreatedBy     string  `json:"created_by,omitempty"`
}

type SupersedePenaltyRuleResponse struct {
	Closed  PenaltyRuleResponse `json:"closed"`
	Created PenaltyRuleResponse `json:"created"`
}

// PenaltyQuoteRequest previews the penalty for a filing that is, or would be, late.
type PenaltyQuoteRequest struct {
	TaxpayerID string `json:"taxpayer_id" binding:"required"`
	TaxType    string `json:"tax_type" binding:"required,oneof=INCOME CORPORATE GST WHT EXCISE"`
	DueDate    string `json:"due_date" binding:"required"`
	FiledAt    string `json:"filed_at"` // empty = not filed yet
	PaidAt     string `json:"paid_at"`  // empty = not paid yet
	TaxDue     string `json:"tax_due" binding:"required"`
	Declared   string `json:"declared"` // when set, an under-declaration penalty is quoted too
	AsOf       string `json:"as_of" binding:"required"`
}

type PenaltyAmountResponse struct {
	Bracket             string `json:"bracket"`
	LatenessDays        int    `json:"lateness_days"`
	Base                string `json:"base"`
	FlatComponent       string `json:"flat_component"`
	PercentageComponent string `json:"percentage_component"`
	Additive            bool   `json:"additive"`
	RuleID              string `json:"rule_id,omitempty"`
	Amount              string `json:"amount"`
}

type PenaltyQuoteResponse struct {
	Penalty          PenaltyAmountResponse  `json:"penalty"`
	Interest         PenaltyAmountResponse  `json:"interest"`
	UnderDeclaration *PenaltyAmountResponse `json:"under_declaration,omitempty"`
	Total            string                 `json:"total"`
}

// --- Interface ---

type PenaltyService interface {
	ListPenaltyRules(ctx context.Context, filter repository.PenaltyRuleFilter) ([]PenaltyRuleResponse, int64, error)
	CreatePenaltyRule(ctx context.Context, req CreatePenaltyRuleRequest, actor string) (PenaltyRuleResponse, error)
	SupersedePenaltyRule(ctx context.Context, req CreatePenaltyRuleRequest, actor string) (SupersedePenaltyRuleResponse, error)
	QuotePenalty(ctx context.Context, req PenaltyQuoteRequest) (PenaltyQuoteResponse, error)
}

type penaltyService struct {
	ruleRepo     repository.PenaltyRuleRepository
	taxpayerRepo repository.TaxpayerRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	engine       *Engine
	log          *zap.Logger

	writeMu sync.Mutex
}

func NewPenaltyService(
	ruleRepo repository.PenaltyRuleRepository,
	taxpayerRepo repository.TaxpayerRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	eng *Engine,
	log *zap.Logger,
) PenaltyService {
	return &penaltyService{
		ruleRepo:     ruleRepo,
		taxpayerRepo: taxpayerRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		engine:       eng,
		log:          log.Named("penalty"),
	}
}

// --- Implementation ---

func (s *penaltyService) ListPenaltyRules(ctx context.Context, filter repository.PenaltyRuleFilter) ([]PenaltyRuleResponse, int64, error) {
	rules, total, err := s.ruleRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch penalty rules: %w", err)
	}
	res := make([]PenaltyRuleResponse, 0, len(rules))
	for _, r := range rules {
		res = append(res, toPenaltyRuleResponse(r))
	}
	return res, total, nil
}

func (s *penaltyService) CreatePenaltyRule(ctx context.Context, req CreatePenaltyRuleRequest, actor string) (PenaltyRuleResponse, error) {
	rule, err := buildPenaltyRule(req, actor)
	if err != nil {
		return PenaltyRuleResponse{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.engine.PenaltyRules.CheckAppend(rule.ToEngine()); err != nil {
		return PenaltyRuleResponse{}, fmt.Errorf("failed to create penalty rule: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.ruleRepo.Create(txCtx, rule); err != nil {
			return fmt.Errorf("failed to create penalty rule: %w", err)
		}
		return writeAuditLog(txCtx, s.auditRepo, actor, model.ActionCreatePenaltyRule, rule.ID.String(), penaltyRuleName(rule), req)
	})
	if err != nil {
		return PenaltyRuleResponse{}, err
	}

	if err := s.engine.PenaltyRules.Append(rule.ToEngine()); err != nil {
		s.log.Error("penalty rule stored but registry rejected it", zap.String("id", rule.ID.String()), zap.Error(err))
		return PenaltyRuleResponse{}, fmt.Errorf("failed to register penalty rule: %w", err)
	}
	s.log.Info("penalty rule appended", zap.String("id", rule.ID.String()), zap.String("rule", penaltyRuleName(rule)))
	return toPenaltyRuleResponse(*rule), nil
}

func (s *penaltyService) SupersedePenaltyRule(ctx context.Context, req CreatePenaltyRuleRequest, actor string) (SupersedePenaltyRuleResponse, error) {
	req.EffectiveTo = ""
	rule, err := buildPenaltyRule(req, actor)
	if err != nil {
		return SupersedePenaltyRuleResponse{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	closed, err := s.engine.PenaltyRules.CheckSupersede(rule.ToEngine())
	if err != nil {
		return SupersedePenaltyRuleResponse{}, fmt.Errorf("failed to supersede penalty rule: %w", err)
	}
	closedID, err := uuid.Parse(closed.ID)
	if err != nil {
		return SupersedePenaltyRuleResponse{}, fmt.Errorf("open penalty rule has an invalid id %q: %w", closed.ID, err)
	}

	var closedModel *model.PenaltyRule
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.ruleRepo.CloseVersion(txCtx, closedID, rule.EffectiveFrom); err != nil {
			return lookupErr("open penalty rule", err)
		}
		if err := s.ruleRepo.Create(txCtx, rule); err != nil {
			return fmt.Errorf("failed to create penalty rule: %w", err)
		}
		found, err := s.ruleRepo.FindByID(txCtx, closedID)
		if err != nil {
			return lookupErr("closed penalty rule", err)
		}
		closedModel = found
		return writeAuditLog(txCtx, s.auditRepo, actor, model.ActionSupersedePenaltyRule, rule.ID.String(), penaltyRuleName(rule),
			map[string]any{"closed_id": closedID.String(), "request": req})
	})
	if err != nil {
		return SupersedePenaltyRuleResponse{}, err
	}

	if _, err := s.engine.PenaltyRules.Supersede(rule.ToEngine()); err != nil {
		s.log.Error("penalty rule superseded in storage but registry rejected it", zap.String("id", rule.ID.String()), zap.Error(err))
		return SupersedePenaltyRuleResponse{}, fmt.Errorf("failed to register penalty rule: %w", err)
	}
	s.log.Info("penalty rule superseded", zap.String("closed_id", closedID.String()), zap.String("id", rule.ID.String()))
	return SupersedePenaltyRuleResponse{
		Closed:  toPenaltyRuleResponse(*closedModel),
		Created: toPenaltyRuleResponse(*rule),
	}, nil
}

func (s *penaltyService) QuotePenalty(ctx context.Context, req PenaltyQuoteRequest) (PenaltyQuoteResponse, error) {
	taxpayerID, err := parseID("taxpayer_id", req.TaxpayerID)
	if err != nil {
		return PenaltyQuoteResponse{}, err
	}
	due, err := parseDate("due_date", req.DueDate)
	if err != nil {
		return PenaltyQuoteResponse{}, err
	}
	asOf, err := parseDate("as_of", req.AsOf)
	if err != nil {
		return PenaltyQuoteResponse{}, err
	}
	filedAt, err := parseOptionalDate("filed_at", req.FiledAt)
	if err != nil {
		return PenaltyQuoteResponse{}, err
	}
	paidAt, err := parseOptionalDate("paid_at", req.PaidAt)
	if err != nil {
		return PenaltyQuoteResponse{}, err
	}
	taxDue, err := parseAmount("tax_due", req.TaxDue)
	if err != nil {
		return PenaltyQuoteResponse{}, err
	}
	declared, err := parseOptionalAmount("declared", req.Declared)
	if err != nil {
		return PenaltyQuoteResponse{}, err
	}

	taxpayer, err := s.taxpayerRepo.FindByID(ctx, taxpayerID)
	if err != nil {
		return PenaltyQuoteResponse{}, lookupErr("taxpayer", err)
	}

	base := engine.PenaltyInput{
		TaxType:      engine.TaxType(req.TaxType),
		Jurisdiction: taxpayer.Jurisdiction,
		Category:     engine.Category(taxpayer.Category),
		DueDate:      due,
		ActualDate:   filedAt,
		TaxDue:       taxDue,
		AsOf:         asOf,
	}
	penalty, err := s.engine.Penalties.CalculatePenalty(base)
	if err != nil {
		return PenaltyQuoteResponse{}, fmt.Errorf("failed to calculate penalty: %w", err)
	}

	base.ActualDate = paidAt
	interest, err := s.engine.Penalties.CalculateLatePaymentInterest(base)
	if err != nil {
		return PenaltyQuoteResponse{}, fmt.Errorf("failed to calculate interest: %w", err)
	}

	resp := PenaltyQuoteResponse{
		Penalty:  toPenaltyAmountResponse(penalty),
		Interest: toPenaltyAmountResponse(interest),
	}
	total := penalty.Amount.Add(interest.Amount)

	if declared != nil {
		under, err := s.engine.Penalties.CalculateUnderDeclaration(engine.UnderDeclarationInput{
			TaxType:      engine.TaxType(req.TaxType),
			Jurisdiction: taxpayer.Jurisdiction,
			Category:     engine.Category(taxpayer.Category),
			Declared:     *declared,
			Assessed:     taxDue,
			AsOf:         asOf,
		})
		if err != nil {
			return PenaltyQuoteResponse{}, fmt.Errorf("failed to calculate under-declaration penalty: %w", err)
		}
		u := toPenaltyAmountResponse(under)
		resp.UnderDeclaration = &u
		total = total.Add(under.Amount)
	}
	resp.Total = total.StringFixed(2)
	return resp, nil
}

// --- Helpers ---

func buildPenaltyRule(req CreatePenaltyRuleRequest, actor string) (*model.PenaltyRule, error) {
	from, err := parseDate("effective_from", req.EffectiveFrom)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate("effective_to", req.EffectiveTo)
	if err != nil {
		return nil, err
	}
	flat, err := parseOptionalAmount("flat_amount", req.FlatAmount)
	if err != nil {
		return nil, err
	}
	pct, err := parseOptionalAmount("percentage", req.Percentage)
	if err != nil {
		return nil, err
	}
	return &model.PenaltyRule{
		TaxType:       req.TaxType,
		Jurisdiction:  req.Jurisdiction,
		Category:      req.Category,
		Bracket:       req.Bracket,
		FlatAmount:    flat,
		Percentage:    pct,
		Additive:      req.Additive,
		EffectiveFrom: from,
		EffectiveTo:   to,
		Description:   req.Description,
		CreatedBy:     actor,
	}, nil
}

func penaltyRuleName(r *model.PenaltyRule) string {
	category := r.Category
	if category == "" {
		category = "*"
	}
	return r.TaxType + "/" + r.Jurisdiction + "/" + category + "/" + r.Bracket
}

func toPenaltyRuleResponse(r model.PenaltyRule) PenaltyRuleResponse {
	var flat, pct *string
	if r.FlatAmount != nil {
		v := r.FlatAmount.String()
		flat = &v
	}
	if r.Percentage != nil {
		v := r.Percentage.String()
		pct = &v
	}
	return PenaltyRuleResponse{
		ID:            r.ID.String(),
		TaxType:       r.TaxType,
		Jurisdiction:  r.Jurisdiction,
		Category:      r.Category,
		Bracket:       r.Bracket,
		FlatAmount:    flat,
		Percentage:    pct,
		Additive:      r.Additive,
		EffectiveFrom: engine.FormatDate(r.EffectiveFrom),
		EffectiveTo:   formatDatePtr(r.EffectiveTo),
		Description:   r.Description,
		CreatedBy:     r.CreatedBy,
	}
}

func toPenaltyAmountResponse(p engine.PenaltyAmount) PenaltyAmountResponse {
	return PenaltyAmountResponse{
		Bracket:             string(p.Bracket),
		LatenessDays:        p.LatenessDays,
		Base:                p.Base.StringFixed(2),
		FlatComponent:       p.FlatComponent.StringFixed(2),
		PercentageComponent: p.PercentageComponent.StringFixed(2),
		Additive:            p.Additive,
		RuleID:              p.RuleID,
		Amount:              p.Amount.StringFixed(2),
	}
}
