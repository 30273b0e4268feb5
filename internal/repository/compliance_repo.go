package repository

import (
	"context"

	"taxoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ComplianceRepository interface {
	// Save appends the snapshot unless an identical one (same digest) already exists.
	// The bool reports whether a row was written.
	Save(ctx context.Context, snapshot *model.ComplianceSnapshot) (bool, error)
	FindByDigest(ctx context.Context, digest string) (*model.ComplianceSnapshot, error)
	History(ctx context.Context, taxpayerID uuid.UUID, page, limit int) ([]model.ComplianceSnapshot, int64, error)
}

type complianceRepository struct {
	db *gorm.DB
}

func NewComplianceRepository(db *gorm.DB) ComplianceRepository {
	return &complianceRepository{db: db}
}

func (r *complianceRepository) Save(ctx context.Context, snapshot *model.ComplianceSnapshot) (bool, error) {
	res := GetDB(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "digest"}}, DoNothing: true}).
		Create(snapshot)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *complianceRepository) FindByDigest(ctx context.Context, digest string) (*model.ComplianceSnapshot, error) {
	var snapshot model.ComplianceSnapshot
	if err := GetDB(ctx, r.db).First(&snapshot, "digest = ?", digest).Error; err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// History lists a taxpayer's snapshots, newest as-of date first.
func (r *complianceRepository) History(ctx context.Context, taxpayerID uuid.UUID, page, limit int) ([]model.ComplianceSnapshot, int64, error) {
	var snapshots []model.ComplianceSnapshot
	var total int64

	query := GetDB(ctx, r.db).Model(&model.ComplianceSnapshot{}).Where("taxpayer_id = ?", taxpayerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("as_of DESC, period_key DESC").Offset(offset).Limit(limit).Find(&snapshots).Error; err != nil {
		return nil, 0, err
	}
	return snapshots, total, nil
}
