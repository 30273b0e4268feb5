package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"taxoffice/internal/engine"
	"taxoffice/internal/model"
	"taxoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrNotFound marks a missing record.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks a malformed request field.
	ErrInvalidInput = errors.New("invalid input")
)

// SystemActor is recorded on audit entries written by batch jobs.
const SystemActor = "system"

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// lookupErr turns a repository error into a not-found or fetch failure for entity.
func lookupErr(entity string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", entity, ErrNotFound)
	}
	return fmt.Errorf("failed to fetch %s: %w", entity, err)
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid("%s must be a UUID", field)
	}
	return id, nil
}

func parseDate(field, raw string) (time.Time, error) {
	t, err := engine.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, invalid("%s must be a YYYY-MM-DD date", field)
	}
	return t, nil
}

func parseOptionalDate(field, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := parseDate(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, invalid("%s must be a decimal number", field)
	}
	return d, nil
}

func parseOptionalAmount(field, raw string) (*decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := parseAmount(field, raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := engine.FormatDate(*t)
	return &s
}

func formatDecimalPtr(d *decimal.Decimal, places int32) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(places)
	return &s
}

// writeAuditLog records the action inside the caller's transaction, so the audit
// entry commits or rolls back with the change it describes.
func writeAuditLog(ctx context.Context, repo repository.AuditRepository, actor, action, entityID, entityName string, details any) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}
	if actor == "" {
		actor = SystemActor
	}
	entry := model.AuditLog{
		Actor:      actor,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(detailsJSON),
	}
	if err := repo.Log(ctx, &entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
