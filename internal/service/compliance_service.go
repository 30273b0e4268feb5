package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"taxoffice/internal/engine"
	"taxoffice/internal/model"
	"taxoffice/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// --- DTOs ---

type ScoreRequest struct {
	TaxpayerID  string `json:"taxpayer_id" binding:"required"`
	Label       string `json:"label"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	AsOf        string `json:"as_of" binding:"required"`
}

// RecomputeRequest rescores many taxpayers for one period. An empty TaxpayerIDs means
// every active taxpayer.
type RecomputeRequest struct {
	TaxpayerIDs []string `json:"taxpayer_ids"`
	Label       string   `json:"label"`
	PeriodStart string   `json:"period_start" binding:"required"`
	PeriodEnd   string   `json:"period_end" binding:"required"`
	AsOf        string   `json:"as_of" binding:"required"`

	// Progress, when set, is called once per scored taxpayer with the batch size.
	// Calls may come from several workers at once.
	Progress func(total int) `json:"-"`
}

type ComplianceSnapshotResponse struct {
	ID                   string            `json:"id"`
	TaxpayerID           string            `json:"taxpayer_id"`
	PeriodKey            string            `json:"period_key"`
	PeriodLabel          string            `json:"period_label"`
	AsOf                 string            `json:"as_of"`
	FilingCompleteness   string            `json:"filing_completeness"`
	PaymentTimeliness    string            `json:"payment_timeliness"`
	DocumentCompleteness string            `json:"document_completeness"`
	GeneralTimeliness    string            `json:"general_timeliness"`
	Overall              string            `json:"overall"`
	WeightsName          string            `json:"weights_name"`
	Weights              map[string]string `json:"weights"`
	Digest               string            `json:"digest"`
	Created              bool              `json:"created"` // false when an identical snapshot already existed
}

type RecomputeItemResponse struct {
	TaxpayerID string                      `json:"taxpayer_id"`
	Snapshot   *ComplianceSnapshotResponse `json:"snapshot,omitempty"`
	Error      string                      `json:"error,omitempty"`
}

type RecomputeResponse struct {
	Total     int                     `json:"total"`
	Succeeded int                     `json:"succeeded"`
	Failed    int                     `json:"failed"`
	Created   int                     `json:"created"`
	Results   []RecomputeItemResponse `json:"results"`
}

// --- Interface ---

type ComplianceService interface {
	Score(ctx context.Context, req ScoreRequest, actor string) (ComplianceSnapshotResponse, error)
	History(ctx context.Context, taxpayerID string, page, limit int) ([]ComplianceSnapshotResponse, int64, error)
	RecomputeAll(ctx context.Context, req RecomputeRequest, actor string) (RecomputeResponse, error)
}

type complianceService struct {
	complianceRepo repository.ComplianceRepository
	filingRepo     repository.FilingRepository
	taxpayerRepo   repository.TaxpayerRepository
	auditRepo      repository.AuditRepository
	txManager      repository.TransactionManager
	engine         *Engine
	log            *zap.Logger
}

func NewComplianceService(
	complianceRepo repository.ComplianceRepository,
	filingRepo repository.FilingRepository,
	taxpayerRepo repository.TaxpayerRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	eng *Engine,
	log *zap.Logger,
) ComplianceService {
	return &complianceService{
		complianceRepo: complianceRepo,
		filingRepo:     filingRepo,
		taxpayerRepo:   taxpayerRepo,
		auditRepo:      auditRepo,
		txManager:      txManager,
		engine:         eng,
		log:            log.Named("compliance"),
	}
}

// --- Implementation ---

func (s *complianceService) Score(ctx context.Context, req ScoreRequest, actor string) (ComplianceSnapshotResponse, error) {
	taxpayerID, err := parseID("taxpayer_id", req.TaxpayerID)
	if err != nil {
		return ComplianceSnapshotResponse{}, err
	}
	period, asOf, err := parseScoreWindow(req.Label, req.PeriodStart, req.PeriodEnd, req.AsOf)
	if err != nil {
		return ComplianceSnapshotResponse{}, err
	}
	return s.scoreOne(ctx, taxpayerID, period, asOf, actor)
}

func (s *complianceService) History(ctx context.Context, taxpayerID string, page, limit int) ([]ComplianceSnapshotResponse, int64, error) {
	id, err := parseID("taxpayer id", taxpayerID)
	if err != nil {
		return nil, 0, err
	}
	snaps, total, err := s.complianceRepo.History(ctx, id, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch compliance history: %w", err)
	}
	res := make([]ComplianceSnapshotResponse, 0, len(snaps))
	for _, snap := range snaps {
		res = append(res, toSnapshotResponse(snap, false))
	}
	return res, total, nil
}

// RecomputeAll scores every requested taxpayer on a bounded worker pool. One
// taxpayer's failure is reported in its own result and does not stop the others.
// Snapshots are keyed by content digest, so rerunning with unchanged records writes
// nothing new.
func (s *complianceService) RecomputeAll(ctx context.Context, req RecomputeRequest, actor string) (RecomputeResponse, error) {
	period, asOf, err := parseScoreWindow(req.Label, req.PeriodStart, req.PeriodEnd, req.AsOf)
	if err != nil {
		return RecomputeResponse{}, err
	}

	ids := make([]uuid.UUID, 0, len(req.TaxpayerIDs))
	for i, raw := range req.TaxpayerIDs {
		id, err := parseID(fmt.Sprintf("taxpayer_ids[%d]", i), raw)
		if err != nil {
			return RecomputeResponse{}, err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		if ids, err = s.taxpayerRepo.ListActiveIDs(ctx); err != nil {
			return RecomputeResponse{}, fmt.Errorf("failed to list taxpayers: %w", err)
		}
	}

	started := time.Now()
	results := engine.RunBatch(ctx, ids, s.engine.BatchConcurrency, func(id uuid.UUID) (ComplianceSnapshotResponse, error) {
		snap, err := s.scoreOne(ctx, id, period, asOf, actor)
		if req.Progress != nil {
			req.Progress(len(ids))
		}
		return snap, err
	})

	resp := RecomputeResponse{Total: len(ids), Results: make([]RecomputeItemResponse, 0, len(results))}
	for _, r := range results {
		item := RecomputeItemResponse{TaxpayerID: ids[r.Index].String()}
		if r.Err != nil {
			resp.Failed++
			item.Error = r.Err.Error()
			s.log.Warn("compliance recompute failed", zap.String("taxpayer_id", item.TaxpayerID), zap.Error(r.Err))
		} else {
			resp.Succeeded++
			if r.Value.Created {
				resp.Created++
			}
			snap := r.Value
			item.Snapshot = &snap
		}
		resp.Results = append(resp.Results, item)
	}

	s.log.Info("compliance recompute finished",
		zap.String("period_key", period.Key()),
		zap.String("as_of", engine.FormatDate(asOf)),
		zap.Int("total", resp.Total),
		zap.Int("succeeded", resp.Succeeded),
		zap.Int("failed", resp.Failed),
		zap.Int("created", resp.Created),
		zap.Duration("elapsed", time.Since(started)),
	)
	return resp, nil
}

// --- Helpers ---

func (s *complianceService) scoreOne(ctx context.Context, taxpayerID uuid.UUID, period engine.Period, asOf time.Time, actor string) (ComplianceSnapshotResponse, error) {
	if _, err := s.taxpayerRepo.FindByID(ctx, taxpayerID); err != nil {
		return ComplianceSnapshotResponse{}, lookupErr("taxpayer", err)
	}
	periods, err := s.filingRepo.ListWithin(ctx, taxpayerID, period.Start, period.End)
	if err != nil {
		return ComplianceSnapshotResponse{}, fmt.Errorf("failed to fetch filing periods: %w", err)
	}
	snap, err := s.engine.Scorer.Score(complianceInput(taxpayerID, period, asOf, periods))
	if err != nil {
		return ComplianceSnapshotResponse{}, fmt.Errorf("failed to score compliance: %w", err)
	}

	row := model.NewComplianceSnapshot(taxpayerID, snap)
	var written bool
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if written, err = s.complianceRepo.Save(txCtx, &row); err != nil {
			return fmt.Errorf("failed to store compliance snapshot: %w", err)
		}
		if !written {
			existing, err := s.complianceRepo.FindByDigest(txCtx, row.Digest)
			if err != nil {
				return lookupErr("compliance snapshot", err)
			}
			row = *existing
			return nil
		}
		return writeAuditLog(txCtx, s.auditRepo, actor, model.ActionComplianceSnapshot, row.ID.String(), period.Label,
			map[string]string{
				"taxpayer_id": taxpayerID.String(),
				"as_of":       engine.FormatDate(asOf),
				"overall":     row.Overall.StringFixed(2),
				"digest":      row.Digest,
			})
	})
	if err != nil {
		return ComplianceSnapshotResponse{}, err
	}
	return toSnapshotResponse(row, written), nil
}

// complianceInput flattens the taxpayer's filing periods into scorer records.
// Document names are qualified by tax type and period so equal names in two periods
// stay distinct.
func complianceInput(taxpayerID uuid.UUID, period engine.Period, asOf time.Time, periods []model.FilingPeriod) engine.ComplianceInput {
	in := engine.ComplianceInput{
		TaxpayerID: taxpayerID.String(),
		Period:     period,
		AsOf:       asOf,
	}
	for _, fp := range periods {
		in.Filings = append(in.Filings, fp.FilingRecord())
		if pay, ok := fp.PaymentRecord(); ok {
			in.Payments = append(in.Payments, pay)
		}
		prefix := fp.TaxType + "/" + fp.Period().Key() + "/"
		for _, doc := range model.DecodeList(fp.RequiredDocuments) {
			in.RequiredDocuments = append(in.RequiredDocuments, prefix+doc)
		}
		for _, doc := range model.DecodeList(fp.SubmittedDocuments) {
			in.SubmittedDocuments = append(in.SubmittedDocuments, prefix+doc)
		}
	}
	return in
}

func parseScoreWindow(label, start, end, asOf string) (engine.Period, time.Time, error) {
	period, err := parsePeriod(label, start, end)
	if err != nil {
		return engine.Period{}, time.Time{}, err
	}
	at, err := parseDate("as_of", asOf)
	if err != nil {
		return engine.Period{}, time.Time{}, err
	}
	return period, at, nil
}

func toSnapshotResponse(s model.ComplianceSnapshot, created bool) ComplianceSnapshotResponse {
	weights := map[string]string{}
	_ = json.Unmarshal([]byte(s.Weights), &weights)
	return ComplianceSnapshotResponse{
		ID:                   s.ID.String(),
		TaxpayerID:           s.TaxpayerID.String(),
		PeriodKey:            s.PeriodKey,
		PeriodLabel:          s.PeriodLabel,
		AsOf:                 engine.FormatDate(s.AsOf),
		FilingCompleteness:   s.FilingCompleteness.StringFixed(2),
		PaymentTimeliness:    s.PaymentTimeliness.StringFixed(2),
		DocumentCompleteness: s.DocumentCompleteness.StringFixed(2),
		GeneralTimeliness:    s.GeneralTimeliness.StringFixed(2),
		Overall:              s.Overall.StringFixed(2),
		WeightsName:          s.WeightsName,
		Weights:              weights,
		Digest:               s.Digest,
		Created:              created,
	}
}
