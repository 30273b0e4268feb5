package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"taxoffice/internal/model"
	"taxoffice/internal/repository"

	"go.uber.org/zap"
)

// --- DTOs ---

type CreateTaxpayerRequest struct {
	Name          string   `json:"name" binding:"required"`
	TaxCode       string   `json:"tax_code" binding:"required"`
	Jurisdiction  string   `json:"jurisdiction"` // defaults to the configured jurisdiction
	Turnover      string   `json:"turnover" binding:"required"`
	Reliefs       []string `json:"reliefs"`
	ContactPerson string   `json:"contact_person"`
	Email         string   `json:"email"`
}

type UpdateTaxpayerRequest struct {
	Name          *string   `json:"name"`
	Turnover      *string   `json:"turnover"`
	Reliefs       *[]string `json:"reliefs"` // pointer so nil = not sent, [] = clear all
	ContactPerson *string   `json:"contact_person"`
	Email         *string   `json:"email"`
	IsActive      *bool     `json:"is_active"`
}

type TaxpayerResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	TaxCode       string   `json:"tax_code"`
	Jurisdiction  string   `json:"jurisdiction"`
	Turnover      string   `json:"turnover"`
	Category      string   `json:"category"`
	Reliefs       []string `json:"reliefs"`
	ContactPerson string   `json:"contact_person"`
	Email         string   `json:"email"`
	IsActive      bool     `json:"is_active"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// --- Interface ---

type TaxpayerService interface {
	CreateTaxpayer(ctx context.Context, req CreateTaxpayerRequest, actor string) (TaxpayerResponse, error)
	UpdateTaxpayer(ctx context.Context, id string, req UpdateTaxpayerRequest, actor string) (TaxpayerResponse, error)
	GetTaxpayer(ctx context.Context, id string) (TaxpayerResponse, error)
	GetTaxpayers(ctx context.Context, filter repository.TaxpayerFilter) ([]TaxpayerResponse, int64, error)
}

type taxpayerService struct {
	taxpayerRepo repository.TaxpayerRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	engine       *Engine
	log          *zap.Logger
}

func NewTaxpayerService(
	taxpayerRepo repository.TaxpayerRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	eng *Engine,
	log *zap.Logger,
) TaxpayerService {
	return &taxpayerService{
		taxpayerRepo: taxpayerRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		engine:       eng,
		log:          log.Named("taxpayer"),
	}
}

// --- Implementation ---

func (s *taxpayerService) CreateTaxpayer(ctx context.Context, req CreateTaxpayerRequest, actor string) (TaxpayerResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return TaxpayerResponse{}, invalid("name is required")
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return TaxpayerResponse{}, invalid("invalid email format")
		}
	}
	turnover, err := parseAmount("turnover", req.Turnover)
	if err != nil {
		return TaxpayerResponse{}, err
	}
	if turnover.IsNegative() {
		return TaxpayerResponse{}, invalid("turnover must not be negative")
	}
	jurisdiction := req.Jurisdiction
	if jurisdiction == "" {
		jurisdiction = s.engine.DefaultJurisdiction
	}

	taxpayer := &model.Taxpayer{
		Name:          req.Name,
		TaxCode:       req.TaxCode,
		Jurisdiction:  jurisdiction,
		Turnover:      turnover,
		Category:      string(s.engine.Bands.Classify(turnover)),
		Reliefs:       model.JoinReliefs(req.Reliefs),
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		IsActive:      true,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.taxpayerRepo.Create(txCtx, taxpayer); err != nil {
			return fmt.Errorf("failed to create taxpayer: %w", err)
		}
		return writeAuditLog(txCtx, s.auditRepo, actor, model.ActionCreateTaxpayer, taxpayer.ID.String(), taxpayer.Name,
			map[string]any{"tax_code": taxpayer.TaxCode, "category": taxpayer.Category, "turnover": taxpayer.Turnover.String()})
	})
	if err != nil {
		return TaxpayerResponse{}, err
	}

	s.log.Info("taxpayer created", zap.String("id", taxpayer.ID.String()), zap.String("category", taxpayer.Category))
	return toTaxpayerResponse(*taxpayer), nil
}

// UpdateTaxpayer applies the sent fields. A turnover change reclassifies the
// taxpayer; the new category only affects rules resolved afterwards.
func (s *taxpayerService) UpdateTaxpayer(ctx context.Context, id string, req UpdateTaxpayerRequest, actor string) (TaxpayerResponse, error) {
	uid, err := parseID("taxpayer id", id)
	if err != nil {
		return TaxpayerResponse{}, err
	}

	var result model.Taxpayer
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		taxpayer, err := s.taxpayerRepo.FindByID(txCtx, uid)
		if err != nil {
			return lookupErr("taxpayer", err)
		}

		type auditEntry struct {
			action  string
			details any
		}
		var audits []auditEntry

		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				return invalid("name cannot be empty")
			}
			taxpayer.Name = *req.Name
		}
		if req.Email != nil && *req.Email != "" {
			if _, err := mail.ParseAddress(*req.Email); err != nil {
				return invalid("invalid email format")
			}
			taxpayer.Email = *req.Email
		}
		if req.ContactPerson != nil {
			taxpayer.ContactPerson = *req.ContactPerson
		}
		if req.IsActive != nil {
			taxpayer.IsActive = *req.IsActive
		}
		if req.Turnover != nil {
			turnover, err := parseAmount("turnover", *req.Turnover)
			if err != nil {
				return err
			}
			if turnover.IsNegative() {
				return invalid("turnover must not be negative")
			}
			if !turnover.Equal(taxpayer.Turnover) {
				audits = append(audits, auditEntry{model.ActionUpdateTurnover, map[string]string{
					"from": taxpayer.Turnover.String(), "to": turnover.String(),
				}})
				taxpayer.Turnover = turnover
			}
			if category := string(s.engine.Bands.Classify(turnover)); category != taxpayer.Category {
				audits = append(audits, auditEntry{model.ActionRecategorize, map[string]string{
					"from": taxpayer.Category, "to": category,
				}})
				taxpayer.Category = category
			}
		}
		if req.Reliefs != nil {
			reliefs := model.JoinReliefs(*req.Reliefs)
			if reliefs != taxpayer.Reliefs {
				audits = append(audits, auditEntry{model.ActionUpdateReliefs, map[string]string{
					"from": taxpayer.Reliefs, "to": reliefs,
				}})
				taxpayer.Reliefs = reliefs
			}
		}

		if err := s.taxpayerRepo.Update(txCtx, taxpayer); err != nil {
			return fmt.Errorf("failed to update taxpayer: %w", err)
		}
		for _, a := range audits {
			if err := writeAuditLog(txCtx, s.auditRepo, actor, a.action, taxpayer.ID.String(), taxpayer.Name, a.details); err != nil {
				return err
			}
		}
		result = *taxpayer
		return nil
	})
	if err != nil {
		return TaxpayerResponse{}, err
	}
	return toTaxpayerResponse(result), nil
}

func (s *taxpayerService) GetTaxpayer(ctx context.Context, id string) (TaxpayerResponse, error) {
	uid, err := parseID("taxpayer id", id)
	if err != nil {
		return TaxpayerResponse{}, err
	}
	taxpayer, err := s.taxpayerRepo.FindByID(ctx, uid)
	if err != nil {
		return TaxpayerResponse{}, lookupErr("taxpayer", err)
	}
	return toTaxpayerResponse(*taxpayer), nil
}

func (s *taxpayerService) GetTaxpayers(ctx context.Context, filter repository.TaxpayerFilter) ([]TaxpayerResponse, int64, error) {
	taxpayers, total, err := s.taxpayerRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch taxpayers: %w", err)
	}
	res := make([]TaxpayerResponse, 0, len(taxpayers))
	for _, t := range taxpayers {
		res = append(res, toTaxpayerResponse(t))
	}
	return res, total, nil
}

func toTaxpayerResponse(t model.Taxpayer) TaxpayerResponse {
	reliefs := make([]string, 0)
	for _, f := range t.ReliefFlags() {
		reliefs = append(reliefs, string(f))
	}
	return TaxpayerResponse{
		ID:            t.ID.String(),
		Name:          t.Name,
		TaxCode:       t.TaxCode,
		Jurisdiction:  t.Jurisdiction,
		Turnover:      t.Turnover.StringFixed(2),
		Category:      t.Category,
		Reliefs:       reliefs,
		ContactPerson: t.ContactPerson,
		Email:         t.Email,
		IsActive:      t.IsActive,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.Format(time.RFC3339),
	}
}
