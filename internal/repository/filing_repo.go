package repository

import (
	"context"
	"time"

	"taxoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FilingPeriodFilter struct {
	TaxpayerID *uuid.UUID
	TaxType    string
	Status     string
	Page       int
	Limit      int
}

type FilingRepository interface {
	Create(ctx context.Context, period *model.FilingPeriod) error
	Update(ctx context.Context, period *model.FilingPeriod) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.FilingPeriod, error)
	List(ctx context.Context, filter FilingPeriodFilter) ([]model.FilingPeriod, int64, error)
	// ListWithin returns the taxpayer's periods that end inside [from, to].
	ListWithin(ctx context.Context, taxpayerID uuid.UUID, from, to time.Time) ([]model.FilingPeriod, error)
	// ListPriorCorporate returns earlier corporate periods, most recent first.
	ListPriorCorporate(ctx context.Context, taxpayerID uuid.UUID, before time.Time, limit int) ([]model.FilingPeriod, error)

	CreateExtension(ctx context.Context, ext *model.DeadlineExtension) error
	FindExtension(ctx context.Context, id uuid.UUID) (*model.DeadlineExtension, error)
	ListExtensions(ctx context.Context, periodID uuid.UUID) ([]model.DeadlineExtension, error)
}

type filingRepository struct {
	db *gorm.DB
}

func NewFilingRepository(db *gorm.DB) FilingRepository {
	return &filingRepository{db: db}
}

func (r *filingRepository) Create(ctx context.Context, period *model.FilingPeriod) error {
	return GetDB(ctx, r.db).Omit("Taxpayer").Create(period).Error
}

func (r *filingRepository) Update(ctx context.Context, period *model.FilingPeriod) error {
	return GetDB(ctx, r.db).Omit("Taxpayer").Save(period).Error
}

func (r *filingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.FilingPeriod, error) {
	var period model.FilingPeriod
	if err := GetDB(ctx, r.db).Preload("Taxpayer").First(&period, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *filingRepository) List(ctx context.Context, filter FilingPeriodFilter) ([]model.FilingPeriod, int64, error) {
	var periods []model.FilingPeriod
	var total int64

	query := GetDB(ctx, r.db).Model(&model.FilingPeriod{})
	if filter.TaxpayerID != nil {
		query = query.Where("taxpayer_id = ?", *filter.TaxpayerID)
	}
	if filter.TaxType != "" {
		query = query.Where("tax_type = ?", filter.TaxType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("period_end DESC, tax_type").Offset(offset).Limit(filter.Limit).Find(&periods).Error; err != nil {
		return nil, 0, err
	}
	return periods, total, nil
}

func (r *filingRepository) ListWithin(ctx context.Context, taxpayerID uuid.UUID, from, to time.Time) ([]model.FilingPeriod, error) {
	var periods []model.FilingPeriod
	if err := GetDB(ctx, r.db).
		Where("taxpayer_id = ? AND period_end >= ? AND period_end <= ?", taxpayerID, from, to).
		Order("period_end ASC, tax_type").
		Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *filingRepository) ListPriorCorporate(ctx context.Context, taxpayerID uuid.UUID, before time.Time, limit int) ([]model.FilingPeriod, error) {
	var periods []model.FilingPeriod
	if err := GetDB(ctx, r.db).
		Where("taxpayer_id = ? AND tax_type = ? AND period_end < ?", taxpayerID, "CORPORATE", before).
		Order("period_end DESC").
		Limit(limit).
		Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *filingRepository) CreateExtension(ctx context.Context, ext *model.DeadlineExtension) error {
	return GetDB(ctx, r.db).Omit("FilingPeriod").Create(ext).Error
}

func (r *filingRepository) FindExtension(ctx context.Context, id uuid.UUID) (*model.DeadlineExtension, error) {
	var ext model.DeadlineExtension
	if err := GetDB(ctx, r.db).First(&ext, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ext, nil
}

func (r *filingRepository) ListExtensions(ctx context.Context, periodID uuid.UUID) ([]model.DeadlineExtension, error) {
	var exts []model.DeadlineExtension
	if err := GetDB(ctx, r.db).
		Where("filing_period_id = ?", periodID).
		Order("created_at ASC").
		Find(&exts).Error; err != nil {
		return nil, err
	}
	return exts, nil
}
