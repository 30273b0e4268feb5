package repository

import (
	"context"
	"time"

	"taxoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PenaltyRuleFilter struct {
	TaxType      string
	Jurisdiction string
	Bracket      string
	Page         int
	Limit        int
}

type PenaltyRuleRepository interface {
	Create(ctx context.Context, rule *model.PenaltyRule) error
	CloseVersion(ctx context.Context, id uuid.UUID, to time.Time) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PenaltyRule, error)
	List(ctx context.Context, filter PenaltyRuleFilter) ([]model.PenaltyRule, int64, error)
	ListAll(ctx context.Context) ([]model.PenaltyRule, error)
}

type penaltyRuleRepository struct {
	db *gorm.DB
}

func NewPenaltyRuleRepository(db *gorm.DB) PenaltyRuleRepository {
	return &penaltyRuleRepository{db: db}
}

func (r *penaltyRuleRepository) Create(ctx context.Context, rule *model.PenaltyRule) error {
	return GetDB(ctx, r.db).Create(rule).Error
}

func (r *penaltyRuleRepository) CloseVersion(ctx context.Context, id uuid.UUID, to time.Time) error {
	res := GetDB(ctx, r.db).Model(&model.PenaltyRule{}).
		Where("id = ? AND effective_to IS NULL", id).
		Update("effective_to", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *penaltyRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PenaltyRule, error) {
	var rule model.PenaltyRule
	if err := GetDB(ctx, r.db).First(&rule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *penaltyRuleRepository) List(ctx context.Context, filter PenaltyRuleFilter) ([]model.PenaltyRule, int64, error) {
	var rules []model.PenaltyRule
	var total int64

	query := GetDB(ctx, r.db).Model(&model.PenaltyRule{})
	if filter.TaxType != "" {
		query = query.Where("tax_type = ?", filter.TaxType)
	}
	if filter.Jurisdiction != "" {
		query = query.Where("jurisdiction = ?", filter.Jurisdiction)
	}
	if filter.Bracket != "" {
		query = query.Where("bracket = ?", filter.Bracket)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("tax_type, jurisdiction, bracket, category, effective_from DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&rules).Error; err != nil {
		return nil, 0, err
	}
	return rules, total, nil
}

func (r *penaltyRuleRepository) ListAll(ctx context.Context) ([]model.PenaltyRule, error) {
	var rules []model.PenaltyRule
	if err := GetDB(ctx, r.db).Order("effective_from ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}
