package service

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"taxoffice/internal/engine"
	"taxoffice/internal/model"
	"taxoffice/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// priorProfitHistory bounds how many earlier corporate periods feed the minimum-tax test.
const priorProfitHistory = 8

// --- DTOs ---

type OpenFilingPeriodRequest struct {
	TaxpayerID        string   `json:"taxpayer_id" binding:"required"`
	TaxType           string   `json:"tax_type" binding:"required,oneof=INCOME CORPORATE GST WHT EXCISE"`
	Label             string   `json:"label"`
	PeriodStart       string   `json:"period_start" binding:"required"`
	PeriodEnd         string   `json:"period_end" binding:"required"`
	RequiredDocuments []string `json:"required_documents"`
}

type FileReturnRequest struct {
	FiledAt        string             `json:"filed_at" binding:"required"`
	Declaration    DeclarationPayload `json:"declaration"`
	DeclaredAmount string             `json:"declared_amount"` // self-assessed tax; computed from the declaration when empty
}

type RecordPaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
	PaidAt string `json:"paid_at" binding:"required"`
}

type SubmitDocumentRequest struct {
	Document string `json:"document" binding:"required"`
}

type GrantExtensionRequest struct {
	ExtendedTo string `json:"extended_to" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

type AssessRequest struct {
	AsOf        string              `json:"as_of" binding:"required"` // lateness and penalty-rule date
	RateAsOf    string              `json:"rate_as_of"`               // rate-book date, defaults to period end
	Declaration *DeclarationPayload `json:"declaration"`              // corrected figures; the filed declaration when nil
}

type FilingPeriodResponse struct {
	ID                 string   `json:"id"`
	TaxpayerID         string   `json:"taxpayer_id"`
	TaxpayerName       string   `json:"taxpayer_name,omitempty"`
	TaxType            string   `json:"tax_type"`
	Label              string   `json:"label"`
	PeriodKey          string   `json:"period_key"`
	PeriodStart        string   `json:"period_start"`
	PeriodEnd          string   `json:"period_end"`
	Status             string   `json:"status"`
	BaseDueDate        string   `json:"base_due_date"`
	StatutoryDueDate   string   `json:"statutory_due_date"`
	DueDate            string   `json:"due_date"`
	RollConvention     string   `json:"roll_convention"`
	ExtensionApplied   bool     `json:"extension_applied"`
	FiledAt            *string  `json:"filed_at"`
	PaidAt             *string  `json:"paid_at"`
	DeclaredAmount     *string  `json:"declared_amount"`
	AssessedAmount     *string  `json:"assessed_amount"`
	PaidAmount         string   `json:"paid_amount"`
	PenaltyAmount      string   `json:"penalty_amount"`
	InterestAmount     string   `json:"interest_amount"`
	UnderDeclaration   string   `json:"under_declaration_penalty"`
	PenaltyBracket     string   `json:"penalty_bracket,omitempty"`
	AssessedAt         *string  `json:"assessed_at"`
	RequiredDocuments  []string `json:"required_documents"`
	SubmittedDocuments []string `json:"submitted_documents"`
}

type ExtensionResponse struct {
	ID         string `json:"id"`
	PeriodKey  string `json:"period_key"`
	TaxType    string `json:"tax_type"`
	ExtendedTo string `json:"extended_to"`
	Reason     string `json:"reason"`
	ApprovedBy string `json:"approved_by"`
	CreatedAt  string `json:"created_at"`
}

type GrantExtensionResponse struct {
	Extension ExtensionResponse    `json:"extension"`
	DueDate   DueDateResponse      `json:"due_date"`
	Period    FilingPeriodResponse `json:"period"`
}

type AssessmentResponse struct {
	Period           FilingPeriodResponse   `json:"period"`
	Liability        LiabilityResponse      `json:"liability"`
	Penalty          PenaltyAmountResponse  `json:"penalty"`
	Interest         PenaltyAmountResponse  `json:"interest"`
	UnderDeclaration *PenaltyAmountResponse `json:"under_declaration,omitempty"`
	TotalDue         string                 `json:"total_due"` // tax + penalties + interest
	Outstanding      string                 `json:"outstanding"`
}

// --- Interface ---

type FilingService interface {
	OpenPeriod(ctx context.Context, req OpenFilingPeriodRequest, actor string) (FilingPeriodResponse, error)
	GetPeriod(ctx context.Context, id string) (FilingPeriodResponse, error)
	ListPeriods(ctx context.Context, filter repository.FilingPeriodFilter) ([]FilingPeriodResponse, int64, error)
	FileReturn(ctx context.Context, id string, req FileReturnRequest, actor string) (FilingPeriodResponse, error)
	RecordPayment(ctx context.Context, id string, req RecordPaymentRequest, actor string) (FilingPeriodResponse, error)
	SubmitDocument(ctx context.Context, id string, req SubmitDocumentRequest, actor string) (FilingPeriodResponse, error)
	GrantExtension(ctx context.Context, id string, req GrantExtensionRequest, approver string) (GrantExtensionResponse, error)
	ListExtensions(ctx context.Context, id string) ([]ExtensionResponse, error)
	RecomputeDueDate(ctx context.Context, id string, actor string) (FilingPeriodResponse, error)
	Assess(ctx context.Context, id string, req AssessRequest, actor string) (AssessmentResponse, error)
}

type filingService struct {
	filingRepo   repository.FilingRepository
	taxpayerRepo repository.TaxpayerRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	engine       *Engine
	log          *zap.Logger
}

func NewFilingService(
	filingRepo repository.FilingRepository,
	taxpayerRepo repository.TaxpayerRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	eng *Engine,
	log *zap.Logger,
) FilingService {
	return &filingService{
		filingRepo:   filingRepo,
		taxpayerRepo: taxpayerRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		engine:       eng,
		log:          log.Named("filing"),
	}
}

// --- Implementation ---

// OpenPeriod creates the obligation and fixes its due date. Later holiday or rule
// changes do not move it; RecomputeDueDate does.
func (s *filingService) OpenPeriod(ctx context.Context, req OpenFilingPeriodRequest, actor string) (FilingPeriodResponse, error) {
	taxpayerID, err := parseID("taxpayer_id", req.TaxpayerID)
	if err != nil {
		return FilingPeriodResponse{}, err
	}
	period, err := parsePeriod(req.Label, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return FilingPeriodResponse{}, err
	}

	var created model.FilingPeriod
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		taxpayer, err := s.taxpayerRepo.FindByID(txCtx, taxpayerID)
		if err != nil {
			return lookupErr("taxpayer", err)
		}
		due, err := s.engine.Deadlines.ComputeDueDate(engine.DeadlineInput{
			TaxType:  engine.TaxType(req.TaxType),
			Period:   period,
			Taxpayer: taxpayer.Profile(),
		})
		if err != nil {
			return fmt.Errorf("failed to compute due date: %w", err)
		}

		fp := &model.FilingPeriod{
			TaxpayerID:        taxpayerID,
			TaxType:           req.TaxType,
			Label:             period.Label,
			PeriodStart:       period.Start,
			PeriodEnd:         period.End,
			Status:            model.FilingStatusOpen,
			BaseDueDate:       due.Base,
			StatutoryDueDate:  due.Statutory,
			DueDate:           due.Effective,
			RollConvention:    string(due.Roll),
			RequiredDocuments: model.EncodeList(req.RequiredDocuments),
		}
		if err := s.filingRepo.Create(txCtx, fp); err != nil {
			return fmt.Errorf("failed to open filing period: %w", err)
		}
		fp.Taxpayer = taxpayer
		created = *fp
		return writeAuditLog(txCtx, s.auditRepo, actor, model.ActionOpenFilingPeriod, fp.ID.String(),
			taxpayer.Name+" "+req.TaxType+" "+period.Label,
			map[string]string{"period_key": period.Key(), "due_date": engine.FormatDate(due.Effective)})
	})
	if err != nil {
		return FilingPeriodResponse{}, err
	}
	return toFilingPeriodResponse(created), nil
}

func (s *filingService) GetPeriod(ctx context.Context, id string) (FilingPeriodResponse, error) {
	fp, err := s.findPeriod(ctx, id)
	if err != nil {
		return FilingPeriodResponse{}, err
	}
	return toFilingPeriodResponse(*fp), nil
}

func (s *filingService) ListPeriods(ctx context.Context, filter repository.FilingPeriodFilter) ([]FilingPeriodResponse, int64, error) {
	periods, total, err := s.filingRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch filing periods: %w", err)
	}
	res := make([]FilingPeriodResponse, 0, len(periods))
	for _, p := range periods {
		res = append(res, toFilingPeriodResponse(p))
	}
	return res, total, nil
}

func (s *filingService) FileReturn(ctx context.Context, id string, req FileReturnRequest, actor string) (FilingPeriodResponse, error) {
	filedAt, err := parseDate("filed_at", req.FiledAt)
	if err != nil {
		return FilingPeriodResponse{}, err
	}
	declared, err := parseOptionalAmount("declared_amount", req.DeclaredAmount)
	if err != nil {
		return FilingPeriodResponse{}, err
	}

	var result model.FilingPeriod
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		fp, err := s.findPeriod(txCtx, id)
		if err != nil {
			return err
		}
		if fp.FiledAt != nil {
			return invalid("filing period %s was already filed on %s", fp.Period().Key(), engine.FormatDate(*fp.FiledAt))
		}
		if filedAt.Before(engine.Date(fp.PeriodStart)) {
			return invalid("filed_at must not precede the period start")
		}

		if declared == nil {
			decl, err := s.declarationFor(txCtx, fp, req.Declaration)
			if err != nil {
				return err
			}
			breakdown, err := engine.CalculateAsOf(s.engine.RateBooks, fp.Taxpayer.Profile(), fp.Period(), decl, fp.Period().End)
			if err != nil {
				return fmt.Errorf("failed to compute declared liability: %w", err)
			}
			declared = &breakdown.Total
		} else if declared.IsNegative() {
			return invalid("declared_amount must not be negative")
		}

		payload, err := json.Marshal(req.Declaration)
		if err != nil {
			return fmt.Errorf("failed to encode declaration: %w", err)
		}
		fp.FiledAt = &filedAt
		fp.DeclaredAmount = declared
		fp.Declaration = string(payload)
		fp.Status = model.FilingStatusFiled
		if fp.LastPaymentAt != nil {
			settlePayment(fp, *fp.LastPaymentAt)
		}
		if err := s.filingRepo.Update(txCtx, fp); err != nil {
			return fmt.Errorf("failed to file return: %w", err)
		}
		result = *fp
		return writeAuditLog(txCtx, s.auditRepo, actor, model.ActionFileReturn, fp.ID.String(), fp.TaxType+" "+fp.Label,
			map[string]string{"filed_at": engine.FormatDate(filedAt), "declared_amount": declared.StringFixed(2)})
	})
	if err != nil {
		return FilingPeriodResponse{}, err
	}
	return toFilingPeriodResponse(result), nil
}

// RecordPayment accumulates payments. The period counts as paid on the date the
// running total first covers the amount due.
func (s *filingService) RecordPayment(ctx context.Context, id string, req RecordPaymentRequest, actor string) (FilingPeriodResponse, error) {
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return FilingPeriodResponse{}, err
	}
	if !amount.IsPositive() {
		return FilingPeriodResponse{}, invalid("amount must be positive")
	}
	paidAt, err := parseDate("paid_at", req.PaidAt)
	if err != nil {
		return FilingPeriodResponse{}, err
	}

	var result model.FilingPeriod
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		fp, err := s.findPeriod(txCtx, id)
		if err != nil {
			return err
		}
		fp.PaidAmount = fp.PaidAmount.Add(amount)
		if fp.LastPaymentAt == nil || paidAt.After(*fp.LastPaymentAt) {
			last := engine.Date(paidAt)
			fp.LastPaymentAt = &last
		}
		settlePayment(fp, paidAt)
		if err := s.filingRepo.Update(txCtx, fp); err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}
		result = *fp
		return writeAuditLog(txCtx, s.auditRepo, actor, model.ActionRecordPayment, fp.ID.String(), fp.TaxType+" "+fp.Label,
			map[string]string{"amount": amount.StringFixed(2), "paid_at": engine.FormatDate(paidAt), "paid_total": fp.PaidAmount.StringFixed(2)})
	})
	if err != nil {
		return FilingPeriodResponse{}, err
	}
	return toFilingPeriodResponse(result), nil
}

func (s *filingService) SubmitDocument(ctx context.Context, id string, req SubmitDocumentRequest, actor string) (FilingPeriodResponse, error) {
	doc := strings.TrimSpace(req.Document)
	if doc == "" {
		return FilingPeriodResponse{}, invalid("document is required")
	}

	var result model.FilingPeriod
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		fp, err := s.findPeriod(txCtx, id)
		if err != nil {
			return err
		}
		submitted := model.DecodeList(fp.SubmittedDocuments)
		if slices.Contains(submitted, doc) {
			result = *fp
			return nil
		}
		fp.SubmittedDocuments = model.EncodeList(append(submitted, doc))
		if err := s.filingRepo.Update(txCtx, fp); err != nil {
			return fmt.Errorf("failed to submit document: %w", err)
		}
		result = *fp
		return writeAuditLog(txCtx, s.auditRepo, actor, model.ActionSubmitDocument, fp.ID.String(), doc, req)
	})
	if err != nil {
		return FilingPeriodResponse{}, err
	}
	return toFilingPeriodResponse(result), nil
}

// GrantExtension records an approved extension and moves the period's due date. The
// extended date may not precede the statutory date.
func (s *filingService) GrantExtension(ctx context.Context, id string, req GrantExtensionRequest, approver string) (GrantExtensionResponse, error) {
	if approver == "" {
		return GrantExtensionResponse{}, invalid("an approver is required")
	}
	extendedTo, err := parseDate("extended_to", req.ExtendedTo)
	if err != nil {
		return GrantExtensionResponse{}, err
	}

	var resp GrantExtensionResponse
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		fp, err := s.findPeriod(txCtx, id)
		if err != nil {
			return err
		}
		profile := fp.Taxpayer.Profile()
		period := fp.Period()
		ext := &model.DeadlineExtension{
			FilingPeriodID: fp.ID,
			TaxpayerID:     fp.TaxpayerID,
			TaxType:        fp.TaxType,
			PeriodKey:      period.Key(),
			ExtendedTo:     extendedTo,
			Reason:         req.Reason,
			ApprovedBy:     approver,
		}
		due, err := s.engine.Deadlines.ValidateExtension(period, profile, ext.ToEngine())
		if err != nil {
			return fmt.Errorf("failed to grant extension: %w", err)
		}

		if err := s.filingRepo.CreateExtension(txCtx, ext); err != nil {
			return fmt.Errorf("failed to record extension: %w", err)
		}
		previous := engine.FormatDate(fp.DueDate)
		applyDueDate(fp, due)
		fp.ExtensionID = &ext.ID
		if err := s.filingRepo.Update(txCtx, fp); err != nil {
			return fmt.Errorf("failed to update filing period: %w", err)
		}

		resp = GrantExtensionResponse{
			Extension: toExtensionResponse(*ext),
			DueDate:   toDueDateResponse(due, period),
			Period:    toFilingPeriodResponse(*fp),
		}
		return writeAuditLog(txCtx, s.auditRepo, approver, model.ActionGrantExtension, fp.ID.String(), fp.TaxType+" "+fp.Label,
			map[string]string{
				"extension_id": ext.ID.String(),
				"from":         previous,
				"to":           engine.FormatDate(due.Effective),
				"reason":       req.Reason,
			})
	})
	if err != nil {
		return GrantExtensionResponse{}, err
	}
	s.log.Info("deadline extension granted",
		zap.String("period_id", resp.Period.ID),
		zap.String("approved_by", approver),
		zap.String("due_date", resp.DueDate.Effective),
	)
	return resp, nil
}

func (s *filingService) ListExtensions(ctx context.Context, id string) ([]ExtensionResponse, error) {
	periodID, err := parseID("filing period id", id)
	if err != nil {
		return nil, err
	}
	exts, err := s.filingRepo.ListExtensions(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch extensions: %w", err)
	}
	res := make([]ExtensionResponse, 0, len(exts))
	for _, e := range exts {
		res = append(res, toExtensionResponse(e))
	}
	return res, nil
}

// RecomputeDueDate re-derives the due date from the current rules and calendar,
// keeping any extension in force.
func (s *filingService) RecomputeDueDate(ctx context.Context, id string, actor string) (FilingPeriodResponse, error) {
	var result model.FilingPeriod
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		fp, err := s.findPeriod(txCtx, id)
		if err != nil {
			return err
		}
		in := engine.DeadlineInput{
			TaxType:  engine.TaxType(fp.TaxType),
			Period:   fp.Period(),
			Taxpayer: fp.Taxpayer.Profile(),
		}
		if fp.ExtensionID != nil {
			ext, err := s.filingRepo.FindExtension(txCtx, *fp.ExtensionID)
			if err != nil {
				return lookupErr("deadline extension", err)
			}
			e := ext.ToEngine()
			in.Extension = &e
		}
		due, err := s.engine.Deadlines.ComputeDueDate(in)
		if err != nil {
			return fmt.Errorf("failed to recompute due date: %w", err)
		}

		previous := engine.FormatDate(fp.DueDate)
		applyDueDate(fp, due)
		if err := s.filingRepo.Update(txCtx, fp); err != nil {
			return fmt.Errorf("failed to update filing period: %w", err)
		}
		result = *fp
		return writeAuditLog(txCtx, s.auditRepo, actor, model.ActionRecomputeDueDate, fp.ID.String(), fp.TaxType+" "+fp.Label,
			map[string]string{"from": previous, "to": engine.FormatDate(due.Effective)})
	})
	if err != nil {
		return FilingPeriodResponse{}, err
	}
	return toFilingPeriodResponse(result), nil
}

// Assess computes the liability, the late-filing penalty, late-payment interest and
// any under-declaration penalty, and stores them on the period.
func (s *filingService) Assess(ctx context.Context, id string, req AssessRequest, actor string) (AssessmentResponse, error) {
	asOf, err := parseDate("as_of", req.AsOf)
	if err != nil {
		return AssessmentResponse{}, err
	}
	rateAsOf, err := parseOptionalDate("rate_as_of", req.RateAsOf)
	if err != nil {
		return AssessmentResponse{}, err
	}

	var resp AssessmentResponse
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		fp, err := s.findPeriod(txCtx, id)
		if err != nil {
			return err
		}

		var payload DeclarationPayload
		switch {
		case req.Declaration != nil:
			payload = *req.Declaration
		case fp.FiledAt != nil:
			if err := json.Unmarshal([]byte(fp.Declaration), &payload); err != nil {
				return fmt.Errorf("stored declaration is unreadable: %w", err)
			}
		default:
			return invalid("filing period has no filed declaration; send one to assess")
		}
		decl, err := s.declarationFor(txCtx, fp, payload)
		if err != nil {
			return err
		}

		profile := fp.Taxpayer.Profile()
		period := fp.Period()
		rateDate := period.End
		if rateAsOf != nil {
			rateDate = *rateAsOf
		}
		breakdown, err := engine.CalculateAsOf(s.engine.RateBooks, profile, period, decl, rateDate)
		if err != nil {
			return fmt.Errorf("failed to calculate liability: %w", err)
		}

		penaltyIn := engine.PenaltyInput{
			TaxType:      engine.TaxType(fp.TaxType),
			Jurisdiction: profile.Jurisdiction,
			Category:     profile.Category,
			DueDate:      engine.Date(fp.DueDate),
			ActualDate:   fp.FiledAt,
			TaxDue:       breakdown.Total,
			AsOf:         asOf,
		}
		penalty, err := s.engine.Penalties.CalculatePenalty(penaltyIn)
		if err != nil {
			return fmt.Errorf("failed to calculate penalty: %w", err)
		}

		// A payment that no longer covers the assessed total leaves the period unpaid.
		// Otherwise the period counts as paid when the money arrived, not when it
		// was assessed.
		covered := breakdown.Total.IsPositive() && fp.PaidAmount.GreaterThanOrEqual(breakdown.Total)
		if !covered {
			fp.PaidAt = nil
		} else if fp.PaidAt == nil && fp.LastPaymentAt != nil {
			paidAt := engine.Date(*fp.LastPaymentAt)
			fp.PaidAt = &paidAt
		}

		interest := engine.PenaltyAmount{Bracket: engine.BracketLatePaymentInterest, Base: breakdown.Total, Amount: decimal.Zero}
		if breakdown.Total.IsPositive() {
			penaltyIn.ActualDate = fp.PaidAt
			if interest, err = s.engine.Penalties.CalculateLatePaymentInterest(penaltyIn); err != nil {
				return fmt.Errorf("failed to calculate interest: %w", err)
			}
		}

		var under *engine.PenaltyAmount
		if fp.DeclaredAmount != nil {
			u, err := s.engine.Penalties.CalculateUnderDeclaration(engine.UnderDeclarationInput{
				TaxType:      engine.TaxType(fp.TaxType),
				Jurisdiction: profile.Jurisdiction,
				Category:     profile.Category,
				Declared:     *fp.DeclaredAmount,
				Assessed:     breakdown.Total,
				AsOf:         asOf,
			})
			if err != nil {
				return fmt.Errorf("failed to calculate under-declaration penalty: %w", err)
			}
			under = &u
		}

		liability := toLiabilityResponse(breakdown)
		resp = AssessmentResponse{
			Liability: liability,
			Penalty:   toPenaltyAmountResponse(penalty),
			Interest:  toPenaltyAmountResponse(interest),
		}
		totalDue := breakdown.Total.Add(penalty.Amount).Add(interest.Amount)
		fp.UnderDeclaration = decimal.Zero
		if under != nil {
			u := toPenaltyAmountResponse(*under)
			resp.UnderDeclaration = &u
			totalDue = totalDue.Add(under.Amount)
			fp.UnderDeclaration = under.Amount
		}

		assessment, err := json.Marshal(liability)
		if err != nil {
			return fmt.Errorf("failed to encode assessment: %w", err)
		}
		total := breakdown.Total
		fp.AssessedAmount = &total
		fp.PenaltyAmount = penalty.Amount
		fp.InterestAmount = interest.Amount
		fp.PenaltyBracket = string(penalty.Bracket)
		fp.AssessedAt = &asOf
		fp.Assessment = string(assessment)
		fp.Status = model.FilingStatusAssessed
		if fp.PaidAt != nil {
			fp.Status = model.FilingStatusPaid
		}
		if err := s.filingRepo.Update(txCtx, fp); err != nil {
			return fmt.Errorf("failed to store assessment: %w", err)
		}

		resp.Period = toFilingPeriodResponse(*fp)
		resp.TotalDue = totalDue.StringFixed(2)
		resp.Outstanding = decimal.Max(totalDue.Sub(fp.PaidAmount), decimal.Zero).StringFixed(2)
		return writeAuditLog(txCtx, s.auditRepo, actor, model.ActionAssessLiability, fp.ID.String(), fp.TaxType+" "+fp.Label,
			map[string]string{
				"as_of":        engine.FormatDate(asOf),
				"rate_book_id": breakdown.RateBookID,
				"liability":    breakdown.Total.StringFixed(2),
				"bracket":      string(penalty.Bracket),
				"total_due":    resp.TotalDue,
			})
	})
	if err != nil {
		return AssessmentResponse{}, err
	}
	return resp, nil
}

// --- Helpers ---

func (s *filingService) findPeriod(ctx context.Context, id string) (*model.FilingPeriod, error) {
	periodID, err := parseID("filing period id", id)
	if err != nil {
		return nil, err
	}
	fp, err := s.filingRepo.FindByID(ctx, periodID)
	if err != nil {
		return nil, lookupErr("filing period", err)
	}
	if fp.Taxpayer == nil {
		return nil, fmt.Errorf("filing period %s has no taxpayer", fp.ID)
	}
	return fp, nil
}

// declarationFor converts payload and, for corporate tax without explicit history,
// fills the prior-period profits from the taxpayer's earlier filed returns.
func (s *filingService) declarationFor(ctx context.Context, fp *model.FilingPeriod, payload DeclarationPayload) (engine.Declaration, error) {
	if fp.TaxType == string(engine.TaxTypeCorporate) && len(payload.PriorPeriodProfits) == 0 {
		prior, err := s.priorProfits(ctx, fp)
		if err != nil {
			return nil, err
		}
		payload.PriorPeriodProfits = prior
	}
	return payload.toDeclaration(engine.TaxType(fp.TaxType))
}

// priorProfits walks back from the most recent earlier corporate period and stops at
// the first one that was never filed, so only an unbroken run is reported.
func (s *filingService) priorProfits(ctx context.Context, fp *model.FilingPeriod) ([]string, error) {
	prior, err := s.filingRepo.ListPriorCorporate(ctx, fp.TaxpayerID, engine.Date(fp.PeriodStart), priorProfitHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prior corporate periods: %w", err)
	}
	out := make([]string, 0, len(prior))
	for _, p := range prior {
		if p.FiledAt == nil {
			break
		}
		var payload DeclarationPayload
		if err := json.Unmarshal([]byte(p.Declaration), &payload); err != nil || payload.TaxableProfit == "" {
			break
		}
		out = append(out, payload.TaxableProfit)
	}
	return out, nil
}

func applyDueDate(fp *model.FilingPeriod, due engine.DueDate) {
	fp.BaseDueDate = due.Base
	fp.StatutoryDueDate = due.Statutory
	fp.DueDate = due.Effective
	fp.RollConvention = string(due.Roll)
	fp.ExtensionApplied = due.ExtensionApplied
}

// settlePayment marks the period paid once the paid total covers the amount due.
func settlePayment(fp *model.FilingPeriod, on time.Time) {
	due := fp.AmountDue()
	if fp.PaidAt != nil || !due.IsPositive() || fp.PaidAmount.LessThan(due) {
		return
	}
	paidAt := engine.Date(on)
	fp.PaidAt = &paidAt
	fp.Status = model.FilingStatusPaid
}

func toFilingPeriodResponse(fp model.FilingPeriod) FilingPeriodResponse {
	resp := FilingPeriodResponse{
		ID:                 fp.ID.String(),
		TaxpayerID:         fp.TaxpayerID.String(),
		TaxType:            fp.TaxType,
		Label:              fp.Label,
		PeriodKey:          fp.Period().Key(),
		PeriodStart:        engine.FormatDate(fp.PeriodStart),
		PeriodEnd:          engine.FormatDate(fp.PeriodEnd),
		Status:             fp.Status,
		BaseDueDate:        engine.FormatDate(fp.BaseDueDate),
		StatutoryDueDate:   engine.FormatDate(fp.StatutoryDueDate),
		DueDate:            engine.FormatDate(fp.DueDate),
		RollConvention:     fp.RollConvention,
		ExtensionApplied:   fp.ExtensionApplied,
		FiledAt:            formatDatePtr(fp.FiledAt),
		PaidAt:             formatDatePtr(fp.PaidAt),
		DeclaredAmount:     formatDecimalPtr(fp.DeclaredAmount, 2),
		AssessedAmount:     formatDecimalPtr(fp.AssessedAmount, 2),
		PaidAmount:         fp.PaidAmount.StringFixed(2),
		PenaltyAmount:      fp.PenaltyAmount.StringFixed(2),
		InterestAmount:     fp.InterestAmount.StringFixed(2),
		UnderDeclaration:   fp.UnderDeclaration.StringFixed(2),
		PenaltyBracket:     fp.PenaltyBracket,
		AssessedAt:         formatDatePtr(fp.AssessedAt),
		RequiredDocuments:  model.DecodeList(fp.RequiredDocuments),
		SubmittedDocuments: model.DecodeList(fp.SubmittedDocuments),
	}
	if fp.Taxpayer != nil {
		resp.TaxpayerName = fp.Taxpayer.Name
	}
	return resp
}

func toExtensionResponse(e model.DeadlineExtension) ExtensionResponse {
	return ExtensionResponse{
		ID:         e.ID.String(),
		PeriodKey:  e.PeriodKey,
		TaxType:    e.TaxType,
		ExtendedTo: engine.FormatDate(e.ExtendedTo),
		Reason:     e.Reason,
		ApprovedBy: e.ApprovedBy,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
}
