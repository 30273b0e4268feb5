package repository

import (
	"context"
	"time"

	"taxoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RateBookRepository interface {
	Create(ctx context.Context, book *model.RateBook) error
	CloseVersion(ctx context.Context, id uuid.UUID, to time.Time) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RateBook, error)
	FindActive(ctx context.Context, taxType, jurisdiction string, asOf time.Time) (*model.RateBook, error)
	List(ctx context.Context, taxType, jurisdiction string, page, limit int) ([]model.RateBook, int64, error)
	ListAll(ctx context.Context) ([]model.RateBook, error)
	FindOverlapping(ctx context.Context, taxType, jurisdiction string, from time.Time, to *time.Time, excludeID *uuid.UUID) (int64, error)
}

type rateBookRepository struct {
	db *gorm.DB
}

func NewRateBookRepository(db *gorm.DB) RateBookRepository {
	return &rateBookRepository{db: db}
}

// Create inserts the book together with its entries.
func (r *rateBookRepository) Create(ctx context.Context, book *model.RateBook) error {
	return GetDB(ctx, r.db).Create(book).Error
}

// CloseVersion sets the exclusive end date of an open version. Only the end date is
// ever written after creation.
func (r *rateBookRepository) CloseVersion(ctx context.Context, id uuid.UUID, to time.Time) error {
	res := GetDB(ctx, r.db).Model(&model.RateBook{}).
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

func (r *rateBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.RateBook, error) {
	var book model.RateBook
	if err := GetDB(ctx, r.db).Preload("Entries", orderByPosition).First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// FindActive applies the half-open window: effective_from <= asOf < effective_to.
func (r *rateBookRepository) FindActive(ctx context.Context, taxType, jurisdiction string, asOf time.Time) (*model.RateBook, error) {
	var book model.RateBook
	if err := GetDB(ctx, r.db).
		Preload("Entries", orderByPosition).
		Where("tax_type = ? AND jurisdiction = ?", taxType, jurisdiction).
		Where("effective_from <= ? AND (effective_to IS NULL OR effective_to > ?)", asOf, asOf).
		Order("effective_from DESC").
		First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *rateBookRepository) List(ctx context.Context, taxType, jurisdiction string, page, limit int) ([]model.RateBook, int64, error) {
	var books []model.RateBook
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.RateBook{})
	if taxType != "" {
		query = query.Where("tax_type = ?", taxType)
	}
	if jurisdiction != "" {
		query = query.Where("jurisdiction = ?", jurisdiction)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("Entries", orderByPosition).
		Order("tax_type, jurisdiction, effective_from DESC").
		Offset(offset).Limit(limit).
		Find(&books).Error; err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// ListAll returns every version, oldest first, for hydrating the in-memory registry.
func (r *rateBookRepository) ListAll(ctx context.Context) ([]model.RateBook, error) {
	var books []model.RateBook
	if err := GetDB(ctx, r.db).
		Preload("Entries", orderByPosition).
		Order("effective_from ASC").
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// FindOverlapping counts versions of the same scope sharing at least one day with
// [from, to). Both ends are exclusive-to, so a version ending on from does not overlap.
func (r *rateBookRepository) FindOverlapping(ctx context.Context, taxType, jurisdiction string, from time.Time, to *time.Time, excludeID *uuid.UUID) (int64, error) {
	var count int64
	query := GetDB(ctx, r.db).Model(&model.RateBook{}).
		Where("tax_type = ? AND jurisdiction = ?", taxType, jurisdiction).
		Where("(effective_to IS NULL OR effective_to > ?)", from)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if to != nil {
		query = query.Where("effective_from < ?", *to)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
