package service

import (
	"context"
	"errors"
	"testing"

	"taxoffice/internal/engine"
	"taxoffice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTaxService_RateBookLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.tax.CreateRateBook(ctx, incomeBookRequest("2024-01-01"), "admin-1")
	require.NoError(t, err)
	assert.Nil(t, first.EffectiveTo)
	assert.Len(t, first.Entries, 3)

	t.Run("resolves the open version", func(t *testing.T) {
		got, err := env.tax.ResolveRateBook(ctx, "INCOME", "NT", "2024-06-30")
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
	})

	t.Run("an overlapping create is a configuration conflict", func(t *testing.T) {
		_, err := env.tax.CreateRateBook(ctx, incomeBookRequest("2024-07-01"), "admin-1")
		assert.True(t, errors.Is(err, engine.ErrConfigurationConflict))
	})

	next := incomeBookRequest("2025-01-01")
	next.Entries[2].Rate = "0.30"
	superseded, err := env.tax.SupersedeRateBook(ctx, next, "admin-1")
	require.NoError(t, err)
	require.NotNil(t, superseded.Closed.EffectiveTo)
	assert.Equal(t, "2025-01-01", *superseded.Closed.EffectiveTo)
	assert.Equal(t, first.ID, superseded.Closed.ID)

	t.Run("the end date is exclusive", func(t *testing.T) {
		got, err := env.tax.ResolveRateBook(ctx, "INCOME", "NT", "2024-12-31")
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)

		got, err = env.tax.ResolveRateBook(ctx, "INCOME", "NT", "2025-01-01")
		require.NoError(t, err)
		assert.Equal(t, superseded.Created.ID, got.ID)
		assert.Equal(t, "0.3", got.Entries[2].Rate)
	})

	t.Run("no version before the first one", func(t *testing.T) {
		_, err := env.tax.ResolveRateBook(ctx, "INCOME", "NT", "2023-12-31")
		var target *engine.NoApplicableRuleError
		assert.True(t, errors.As(err, &target))
	})

	t.Run("bad dates are invalid input", func(t *testing.T) {
		_, err := env.tax.ResolveRateBook(ctx, "INCOME", "NT", "31/12/2024")
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("stored history reloads into a fresh registry", func(t *testing.T) {
		fresh, err := NewEngine(testEngineConfig())
		require.NoError(t, err)
		loader := NewRegistryLoader(env.rateBooks, env.penaltyRules, env.calendars, zap.NewNop())
		require.NoError(t, loader.Load(ctx, fresh))

		versions := fresh.RateBooks.Versions(engine.TaxTypeIncome, "NT")
		require.Len(t, versions, 2)
		require.NotNil(t, versions[0].EffectiveTo)
		assert.Equal(t, "2025-01-01", engine.FormatDate(*versions[0].EffectiveTo))
	})

	assert.Equal(t, int64(1), env.auditCount(t, model.ActionCreateRateBook))
	assert.Equal(t, int64(1), env.auditCount(t, model.ActionSupersedeRateBook))

	books, total, err := env.tax.ListRateBooks(ctx, "INCOME", "NT", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, books, 2)
}

func TestTaxService_CalculateLiability(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.tax.CreateRateBook(ctx, incomeBookRequest("2024-01-01"), "admin-1")
	require.NoError(t, err)
	tp := env.createTaxpayer(t, "Alice", "500000")

	calc := func(gross string) LiabilityResponse {
		t.Helper()
		res, err := env.tax.CalculateLiability(ctx, CalculateRequest{
			TaxpayerID:  tp.ID,
			TaxType:     "INCOME",
			PeriodStart: "2024-01-01",
			PeriodEnd:   "2024-12-31",
			Declaration: DeclarationPayload{GrossIncome: gross},
		})
		require.NoError(t, err)
		return res
	}

	tests := []struct {
		gross string
		total string
	}{
		{"40000", "0.00"},
		{"50000", "0.00"},
		{"100000", "7500.00"},
		{"120000", "12500.00"},
	}
	for _, tt := range tests {
		t.Run(tt.gross, func(t *testing.T) {
			assert.Equal(t, tt.total, calc(tt.gross).Total)
		})
	}

	t.Run("unknown taxpayer", func(t *testing.T) {
		_, err := env.tax.CalculateLiability(ctx, CalculateRequest{
			TaxpayerID:  "7b0c6f3e-8f0b-4c43-9c9e-1a2b3c4d5e6f",
			TaxType:     "INCOME",
			PeriodStart: "2024-01-01",
			PeriodEnd:   "2024-12-31",
		})
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("no rate book for the tax type", func(t *testing.T) {
		_, err := env.tax.CalculateLiability(ctx, CalculateRequest{
			TaxpayerID:  tp.ID,
			TaxType:     "GST",
			PeriodStart: "2024-01-01",
			PeriodEnd:   "2024-03-31",
		})
		assert.True(t, errors.Is(err, engine.ErrNoApplicableRule))
	})
}
