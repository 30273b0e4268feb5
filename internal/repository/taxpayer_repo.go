package repository

import (
	"context"
	"strings"

	"taxoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaxpayerFilter struct {
	Jurisdiction string
	Category     string
	Search       string
	Page         int
	Limit        int
}

type TaxpayerRepository interface {
	Create(ctx context.Context, taxpayer *model.Taxpayer) error
	Update(ctx context.Context, taxpayer *model.Taxpayer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Taxpayer, error)
	List(ctx context.Context, filter TaxpayerFilter) ([]model.Taxpayer, int64, error)
	ListActiveIDs(ctx context.Context) ([]uuid.UUID, error)
}

type taxpayerRepository struct {
	db *gorm.DB
}

func NewTaxpayerRepository(db *gorm.DB) TaxpayerRepository {
	return &taxpayerRepository{db: db}
}

func (r *taxpayerRepository) Create(ctx context.Context, taxpayer *model.Taxpayer) error {
	return GetDB(ctx, r.db).Create(taxpayer).Error
}

func (r *taxpayerRepository) Update(ctx context.Context, taxpayer *model.Taxpayer) error {
	return GetDB(ctx, r.db).Save(taxpayer).Error
}

func (r *taxpayerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Taxpayer, error) {
	var taxpayer model.Taxpayer
	if err := GetDB(ctx, r.db).First(&taxpayer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &taxpayer, nil
}

func (r *taxpayerRepository) List(ctx context.Context, filter TaxpayerFilter) ([]model.Taxpayer, int64, error) {
	var taxpayers []model.Taxpayer
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Taxpayer{})
	if filter.Jurisdiction != "" {
		query = query.Where("jurisdiction = ?", filter.Jurisdiction)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(tax_code) LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&taxpayers).Error; err != nil {
		return nil, 0, err
	}
	return taxpayers, total, nil
}

func (r *taxpayerRepository) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := GetDB(ctx, r.db).Model(&model.Taxpayer{}).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
