package repository

import (
	"context"
	"time"

	"taxoffice/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CalendarRepository interface {
	// AddHoliday inserts the holiday unless the date is already marked; the bool
	// reports whether a row was written.
	AddHoliday(ctx context.Context, holiday *model.Holiday) (bool, error)
	ListHolidays(ctx context.Context, jurisdiction string, year int) ([]model.Holiday, error)
	ListAllHolidays(ctx context.Context) ([]model.Holiday, error)
	UpsertDeadlineRule(ctx context.Context, rule *model.DeadlineRule) error
	ListDeadlineRules(ctx context.Context) ([]model.DeadlineRule, error)
}

type calendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) AddHoliday(ctx context.Context, holiday *model.Holiday) (bool, error) {
	res := GetDB(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "jurisdiction"}, {Name: "holiday_date"}}, DoNothing: true}).
		Create(holiday)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *calendarRepository) ListHolidays(ctx context.Context, jurisdiction string, year int) ([]model.Holiday, error) {
	var holidays []model.Holiday
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	if err := GetDB(ctx, r.db).
		Where("jurisdiction = ? AND holiday_date >= ? AND holiday_date < ?", jurisdiction, from, to).
		Order("holiday_date ASC").
		Find(&holidays).Error; err != nil {
		return nil, err
	}
	return holidays, nil
}

func (r *calendarRepository) ListAllHolidays(ctx context.Context) ([]model.Holiday, error) {
	var holidays []model.Holiday
	if err := GetDB(ctx, r.db).Order("jurisdiction, holiday_date ASC").Find(&holidays).Error; err != nil {
		return nil, err
	}
	return holidays, nil
}

// UpsertDeadlineRule replaces the rule of (tax_type, jurisdiction) in place.
func (r *calendarRepository) UpsertDeadlineRule(ctx context.Context, rule *model.DeadlineRule) error {
	return GetDB(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tax_type"}, {Name: "jurisdiction"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"base", "month", "day", "year_offset", "days", "roll_convention", "updated_at",
			}),
		}).
		Create(rule).Error
}

func (r *calendarRepository) ListDeadlineRules(ctx context.Context) ([]model.DeadlineRule, error) {
	var rules []model.DeadlineRule
	if err := GetDB(ctx, r.db).Order("tax_type, jurisdiction").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}
