package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taxoffice/internal/engine"
	"taxoffice/internal/model"
	"taxoffice/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// --- DTOs ---

type RateEntryPayload struct {
	Code        string `json:"code"`
	Category    string `json:"category" binding:"omitempty,oneof=LARGE MEDIUM SMALL MICRO"`
	Threshold   string `json:"threshold"`               // Decimal string, bracket floor
	Rate        string `json:"rate" binding:"required"` // Decimal string, e.g. "0.10" (per unit for excise)
	FixedFee    string `json:"fixed_fee"`
	UnitBasis   string `json:"unit_basis" binding:"omitempty,oneof=KG LITRE UNIT"`
	Description string `json:"description"`
}

type MinimumTaxPayload struct {
	Rate               string `json:"rate" binding:"required"`
	ConsecutivePeriods int    `json:"consecutive_periods" binding:"required,min=1"`
	ProfitThreshold    string `json:"profit_threshold"`
}

type CreateRateBookRequest struct {
	TaxType       string             `json:"tax_type" binding:"required,oneof=INCOME CORPORATE GST WHT EXCISE"`
	Jurisdiction  string             `json:"jurisdiction" binding:"required"`
	EffectiveFrom string             `json:"effective_from" binding:"required"` // YYYY-MM-DD
	EffectiveTo   string             `json:"effective_to"`                      // YYYY-MM-DD, exclusive, nullable
	Description   string             `json:"description"`
	Entries       []RateEntryPayload `json:"entries" binding:"required,min=1,dive"`
	MinimumTax    *MinimumTaxPayload `json:"minimum_tax"`
}

type RateEntryResponse struct {
	Code        string `json:"code,omitempty"`
	Category    string `json:"category,omitempty"`
	Threshold   string `json:"threshold"`
	Rate        string `json:"rate"`
	FixedFee    string `json:"fixed_fee"`
	UnitBasis   string `json:"unit_basis,omitempty"`
	Description string `json:"description,omitempty"`
}

type MinimumTaxResponse struct {
	Rate               string `json:"rate"`
	ConsecutivePeriods int    `json:"consecutive_periods"`
	ProfitThreshold    string `json:"profit_threshold"`
}

type RateBookResponse struct {
	ID            string              `json:"id"`
	TaxType       string              `json:"tax_type"`
	Jurisdiction  string              `json:"jurisdiction"`
	EffectiveFrom string              `json:"effective_from"`
	EffectiveTo   *string             `json:"effective_to"`
	Description   string              `json:"description,omitempty"`
	Entries       []RateEntryResponse `json:"entries"`
	MinimumTax    *MinimumTaxResponse `json:"minimum_tax,omitempty"`
	CreatedBy     string              `json:"created_by,omitempty"`
	CreatedAt     string              `json:"created_at,omitempty"`
}

type SupersedeRateBookResponse struct {
	Closed  RateBookResponse `json:"closed"`
	Created RateBookResponse `json:"created"`
}

type CalculateRequest struct {
	TaxpayerID  string             `json:"taxpayer_id" binding:"required"`
	TaxType     string             `json:"tax_type" binding:"required,oneof=INCOME CORPORATE GST WHT EXCISE"`
	Label       string             `json:"label"`
	PeriodStart string             `json:"period_start" binding:"required"`
	PeriodEnd   string             `json:"period_end" binding:"required"`
	AsOf        string             `json:"as_of"` // rate-book resolution date, defaults to period_end
	Declaration DeclarationPayload `json:"declaration"`
}

// --- Interface ---

type TaxService interface {
	ListRateBooks(ctx context.Context, taxType, jurisdiction string, page, limit int) ([]RateBookResponse, int64, error)
	GetRateBook(ctx context.Context, id string) (RateBookResponse, error)
	CreateRateBook(ctx context.Context, req CreateRateBookRequest, actor string) (RateBookResponse, error)
	SupersedeRateBook(ctx context.Context, req CreateRateBookRequest, actor string) (SupersedeRateBookResponse, error)
	ResolveRateBook(ctx context.Context, taxType, jurisdiction, asOf string) (RateBookResponse, error)
	CalculateLiability(ctx context.Context, req CalculateRequest) (LiabilityResponse, error)
}

type taxService struct {
	rateBookRepo repository.RateBookRepository
	taxpayerRepo repository.TaxpayerRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	engine       *Engine
	log          *zap.Logger

	// writeMu serializes configuration writes so the registry check and the
	// database write see the same chain.
	writeMu sync.Mutex
}

func NewTaxService(
	rateBookRepo repository.RateBookRepository,
	taxpayerRepo repository.TaxpayerRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	eng *Engine,
	log *zap.Logger,
) TaxService {
	return &taxService{
		rateBookRepo: rateBookRepo,
		taxpayerRepo: taxpayerRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		engine:       eng,
		log:          log.Named("tax"),
	}
}

// --- Implementation ---

func (s *taxService) ListRateBooks(ctx context.Context, taxType, jurisdiction string, page, limit int) ([]RateBookResponse, int64, error) {
	books, total, err := s.rateBookRepo.List(ctx, taxType, jurisdiction, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch rate books: %w", err)
	}

	res := make([]RateBookResponse, 0, len(books))
	for _, b := range books {
		res = append(res, toRateBookResponse(b))
	}
	return res, total, nil
}

func (s *taxService) GetRateBook(ctx context.Context, id string) (RateBookResponse, error) {
	bookID, err := parseID("rate book id", id)
	if err != nil {
		return RateBookResponse{}, err
	}
	book, err := s.rateBookRepo.FindByID(ctx, bookID)
	if err != nil {
		return RateBookResponse{}, lookupErr("rate book", err)
	}
	return toRateBookResponse(*book), nil
}

func (s *taxService) CreateRateBook(ctx context.Context, req CreateRateBookRequest, actor string) (RateBookResponse, error) {
	book, err := buildRateBook(req, actor)
	if err != nil {
		return RateBookResponse{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.engine.RateBooks.CheckAppend(book.ToEngine()); err != nil {
		return RateBookResponse{}, fmt.Errorf("failed to create rate book: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.checkStoredOverlap(txCtx, book, nil); err != nil {
			return err
		}
		if err := s.rateBookRepo.Create(txCtx, book); err != nil {
			return fmt.Errorf("failed to create rate book: %w", err)
		}
		return writeAuditLog(txCtx, s.auditRepo, actor, model.ActionCreateRateBook, book.ID.String(),
			book.TaxType+"/"+book.Jurisdiction+" from "+engine.FormatDate(book.EffectiveFrom), req)
	})
	if err != nil {
		return RateBookResponse{}, err
	}

	if err := s.engine.RateBooks.Append(book.ToEngine()); err != nil {
		s.log.Error("rate book stored but registry rejected it", zap.String("id", book.ID.String()), zap.Error(err))
		return RateBookResponse{}, fmt.Errorf("failed to register rate book: %w", err)
	}
	s.log.Info("rate book appended",
		zap.String("id", book.ID.String()),
		zap.String("tax_type", book.TaxType),
		zap.String("jurisdiction", book.Jurisdiction),
		zap.String("effective_from", engine.FormatDate(book.EffectiveFrom)),
	)
	return toRateBookResponse(*book), nil
}

// SupersedeRateBook closes the open version at the new version's effective date and
// appends the new version in one transaction.
func (s *taxService) SupersedeRateBook(ctx context.Context, req CreateRateBookRequest, actor string) (SupersedeRateBookResponse, error) {
	req.EffectiveTo = ""
	book, err := buildRateBook(req, actor)
	if err != nil {
		return SupersedeRateBookResponse{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	closed, err := s.engine.RateBooks.CheckSupersede(book.ToEngine())
	if err != nil {
		return SupersedeRateBookResponse{}, fmt.Errorf("failed to supersede rate book: %w", err)
	}
	closedID, err := uuid.Parse(closed.ID)
	if err != nil {
		return SupersedeRateBookResponse{}, fmt.Errorf("open rate book has an invalid id %q: %w", closed.ID, err)
	}

	var closedModel *model.RateBook
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.rateBookRepo.CloseVersion(txCtx, closedID, book.EffectiveFrom); err != nil {
			return lookupErr("open rate book", err)
		}
		if err := s.checkStoredOverlap(txCtx, book, nil); err != nil {
			return err
		}
		if err := s.rateBookRepo.Create(txCtx, book); err != nil {
			return fmt.Errorf("failed to create rate book: %w", err)
		}
		found, err := s.rateBookRepo.FindByID(txCtx, closedID)
		if err != nil {
			return lookupErr("closed rate book", err)
		}
		closedModel = found
		return writeAuditLog(txCtx, s.auditRepo, actor, model.ActionSupersedeRateBook, book.ID.String(),
			book.TaxType+"/"+book.Jurisdiction+" from "+engine.FormatDate(book.EffectiveFrom),
			map[string]any{"closed_id": closedID.String(), "closed_at": engine.FormatDate(book.EffectiveFrom), "request": req})
	})
	if err != nil {
		return SupersedeRateBookResponse{}, err
	}

	if _, err := s.engine.RateBooks.Supersede(book.ToEngine()); err != nil {
		s.log.Error("rate book superseded in storage but registry rejected it", zap.String("id", book.ID.String()), zap.Error(err))
		return SupersedeRateBookResponse{}, fmt.Errorf("failed to register rate book: %w", err)
	}
	s.log.Info("rate book superseded",
		zap.String("closed_id", closedID.String()),
		zap.String("id", book.ID.String()),
		zap.String("effective_from", engine.FormatDate(book.EffectiveFrom)),
	)
	return SupersedeRateBookResponse{
		Closed:  toRateBookResponse(*closedModel),
		Created: toRateBookResponse(*book),
	}, nil
}

// ResolveRateBook returns the version in force on asOf. A missing version is an
// error, never an empty book.
func (s *taxService) ResolveRateBook(_ context.Context, taxType, jurisdiction, asOf string) (RateBookResponse, error) {
	date, err := parseDate("as_of", asOf)
	if err != nil {
		return RateBookResponse{}, err
	}
	book, err := s.engine.RateBooks.Resolve(engine.TaxType(taxType), jurisdiction, date)
	if err != nil {
		return RateBookResponse{}, err
	}
	return engineRateBookResponse(book), nil
}

func (s *taxService) CalculateLiability(ctx context.Context, req CalculateRequest) (LiabilityResponse, error) {
	taxpayerID, err := parseID("taxpayer_id", req.TaxpayerID)
	if err != nil {
		return LiabilityResponse{}, err
	}
	period, err := parsePeriod(req.Label, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return LiabilityResponse{}, err
	}
	asOf := period.End
	if req.AsOf != "" {
		if asOf, err = parseDate("as_of", req.AsOf); err != nil {
			return LiabilityResponse{}, err
		}
	}

	taxpayer, err := s.taxpayerRepo.FindByID(ctx, taxpayerID)
	if err != nil {
		return LiabilityResponse{}, lookupErr("taxpayer", err)
	}
	decl, err := req.Declaration.toDeclaration(engine.TaxType(req.TaxType))
	if err != nil {
		return LiabilityResponse{}, err
	}

	breakdown, err := engine.CalculateAsOf(s.engine.RateBooks, taxpayer.Profile(), period, decl, asOf)
	if err != nil {
		return LiabilityResponse{}, fmt.Errorf("failed to calculate liability: %w", err)
	}
	return toLiabilityResponse(breakdown), nil
}

// --- Helpers ---

func (s *taxService) checkStoredOverlap(ctx context.Context, book *model.RateBook, excludeID *uuid.UUID) error {
	count, err := s.rateBookRepo.FindOverlapping(ctx, book.TaxType, book.Jurisdiction, book.EffectiveFrom, book.EffectiveTo, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check overlap: %w", err)
	}
	if count > 0 {
		return &engine.ConfigurationConflictError{
			Subject: "rate book " + book.TaxType + "/" + book.Jurisdiction,
			Reason:  "a stored version overlaps the effective range",
		}
	}
	return nil
}

func buildRateBook(req CreateRateBookRequest, actor string) (*model.RateBook, error) {
	from, err := parseDate("effective_from", req.EffectiveFrom)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate("effective_to", req.EffectiveTo)
	if err != nil {
		return nil, err
	}

	book := &model.RateBook{
		TaxType:       req.TaxType,
		Jurisdiction:  req.Jurisdiction,
		EffectiveFrom: from,
		EffectiveTo:   to,
		Description:   req.Description,
		CreatedBy:     actor,
		Entries:       make([]model.RateEntry, 0, len(req.Entries)),
	}
	for i, e := range req.Entries {
		threshold, err := parseAmount(fmt.Sprintf("entries[%d].threshold", i), e.Threshold)
		if err != nil {
			return nil, err
		}
		rate, err := parseAmount(fmt.Sprintf("entries[%d].rate", i), e.Rate)
		if err != nil {
			return nil, err
		}
		fee, err := parseAmount(fmt.Sprintf("entries[%d].fixed_fee", i), e.FixedFee)
		if err != nil {
			return nil, err
		}
		book.Entries = append(book.Entries, model.RateEntry{
			Position:    i,
			Code:        e.Code,
			Category:    e.Category,
			Threshold:   threshold,
			Rate:        rate,
			FixedFee:    fee,
			UnitBasis:   e.UnitBasis,
			Description: e.Description,
		})
	}

	if mt := req.MinimumTax; mt != nil {
		rate, err := parseAmount("minimum_tax.rate", mt.Rate)
		if err != nil {
			return nil, err
		}
		threshold, err := parseAmount("minimum_tax.profit_threshold", mt.ProfitThreshold)
		if err != nil {
			return nil, err
		}
		book.MinimumTaxRate = &rate
		book.MinimumTaxPeriods = mt.ConsecutivePeriods
		book.MinimumTaxProfitThreshold = &threshold
	}
	return book, nil
}

func parsePeriod(label, start, end string) (engine.Period, error) {
	from, err := parseDate("period_start", start)
	if err != nil {
		return engine.Period{}, err
	}
	to, err := parseDate("period_end", end)
	if err != nil {
		return engine.Period{}, err
	}
	if to.Before(from) {
		return engine.Period{}, invalid("period_end must not precede period_start")
	}
	if label == "" {
		label = engine.FormatDate(from) + ".." + engine.FormatDate(to)
	}
	return engine.Period{Label: label, Start: from, End: to}, nil
}

func toRateBookResponse(b model.RateBook) RateBookResponse {
	resp := engineRateBookResponse(b.ToEngine())
	resp.Description = b.Description
	resp.CreatedBy = b.CreatedBy
	if !b.CreatedAt.IsZero() {
		resp.CreatedAt = b.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func engineRateBookResponse(b engine.RateBook) RateBookResponse {
	resp := RateBookResponse{
		ID:            b.ID,
		TaxType:       string(b.TaxType),
		Jurisdiction:  b.Jurisdiction,
		EffectiveFrom: engine.FormatDate(b.EffectiveFrom),
		EffectiveTo:   formatDatePtr(b.EffectiveTo),
		Entries:       make([]RateEntryResponse, 0, len(b.Entries)),
	}
	for _, e := range b.Entries {
		resp.Entries = append(resp.Entries, RateEntryResponse{
			Code:        e.Code,
			Category:    string(e.Category),
			Threshold:   e.Threshold.String(),
			Rate:        e.Rate.String(),
			FixedFee:    e.FixedFee.String(),
			UnitBasis:   string(e.UnitBasis),
			Description: e.Description,
		})
	}
	if b.MinimumTax != nil {
		resp.MinimumTax = &MinimumTaxResponse{
			Rate:               b.MinimumTax.Rate.String(),
			ConsecutivePeriods: b.MinimumTax.ConsecutivePeriods,
			ProfitThreshold:    b.MinimumTax.ProfitThreshold.String(),
		}
	}
	return resp
}
