package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taxoffice/internal/config"
	"taxoffice/internal/database"
	"taxoffice/internal/middleware"
	"taxoffice/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
	Meta       *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
	} `json:"meta"`
	Error string `json:"error"`
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewConnection(config.DatabaseConfig{Driver: "sqlite", DBName: ":memory:", LogLevel: "silent"}, zap.NewNop())
	require.NoError(t, err)

	cfg := &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{Secret: testSecret},
		HTTP: config.HTTPConfig{
			CORSAllowOrigins: []string{"http://localhost:5173"},
			CORSAllowMethods: []string{"GET", "POST", "PUT", "PATCH"},
			CORSAllowHeaders: []string{"Content-Type", "Authorization"},
		},
		Engine: config.EngineConfig{
			DefaultJurisdiction:    "NT",
			LateFilerThresholdDays: 30,
			NeutralScore:           "50",
			TimelinessHorizonDays:  90,
			BatchConcurrency:       2,
			CategoryBands:          config.CategoryBandsConfig{Large: "50000000", Medium: "10000000", Small: "1000000"},
			Weights: config.WeightsConfig{
				Name:                 "default",
				FilingCompleteness:   "0.30",
				PaymentTimeliness:    "0.30",
				DocumentCompleteness: "0.20",
				GeneralTimeliness:    "0.20",
			},
		},
	}
	a, err := Build(context.Background(), db, cfg.Engine, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return &apiClient{t: t, router: NewRouter(a, cfg)}
}

func (c *apiClient) token(role string) string {
	c.t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  role + "-1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(c.t, err)
	return tok
}

func (c *apiClient) do(method, path, role string, body any) (int, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(c.t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+c.token(role))
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func incomeBook(from string) service.CreateRateBookRequest {
	return service.CreateRateBookRequest{
		TaxType:       "INCOME",
		Jurisdiction:  "NT",
		EffectiveFrom: from,
		Entries: []service.RateEntryPayload{
			{Threshold: "0", Rate: "0"},
			{Threshold: "50000", Rate: "0.15"},
			{Threshold: "100000", Rate: "0.25"},
		},
	}
}

func TestRouter_Health(t *testing.T) {
	api := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK"}`, w.Body.String())
}

func TestRouter_Taxpayers(t *testing.T) {
	api := newAPI(t)

	status, _ := api.do(http.MethodGet, "/api/taxpayers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := api.do(http.MethodPost, "/api/taxpayers", middleware.RoleClerk, service.CreateTaxpayerRequest{
		Name:     "Acme",
		TaxCode:  "TC-ACME",
		Turnover: "2000000",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	var tp service.TaxpayerResponse
	require.NoError(t, json.Unmarshal(env.Data, &tp))
	assert.Equal(t, "SMALL", tp.Category)
	assert.Equal(t, "NT", tp.Jurisdiction)

	t.Run("assessors cannot register taxpayers", func(t *testing.T) {
		status, _ := api.do(http.MethodPost, "/api/taxpayers", middleware.RoleAssessor, service.CreateTaxpayerRequest{
			Name: "Other", TaxCode: "TC-OTHER", Turnover: "1",
		})
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("list carries paging metadata", func(t *testing.T) {
		status, env := api.do(http.MethodGet, "/api/taxpayers?page=1&limit=5", middleware.RoleAssessor, nil)
		require.Equal(t, http.StatusOK, status)
		require.NotNil(t, env.Meta)
		assert.Equal(t, int64(1), env.Meta.Total)
		assert.Equal(t, 5, env.Meta.Limit)
	})

	t.Run("lookup errors map to status codes", func(t *testing.T) {
		status, env := api.do(http.MethodGet, "/api/taxpayers/"+uuid.NewString(), middleware.RoleClerk, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "error", env.Status)

		status, _ = api.do(http.MethodGet, "/api/taxpayers/not-a-uuid", middleware.RoleClerk, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestRouter_RateBooksAndCalculation(t *testing.T) {
	api := newAPI(t)

	status, _ := api.do(http.MethodPost, "/api/rate-books", middleware.RoleClerk, incomeBook("2024-01-01"))
	assert.Equal(t, http.StatusForbidden, status)

	status, env := api.do(http.MethodPost, "/api/rate-books", middleware.RoleAdmin, `{"tax_type":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Error, "Invalid request payload")

	status, env = api.do(http.MethodPost, "/api/rate-books", middleware.RoleAdmin, incomeBook("2024-01-01"))
	require.Equal(t, http.StatusCreated, status, env.Error)

	status, _ = api.do(http.MethodPost, "/api/rate-books", middleware.RoleAdmin, incomeBook("2024-07-01"))
	assert.Equal(t, http.StatusConflict, status, "overlapping versions are rejected")

	status, env = api.do(http.MethodGet, "/api/rate-books/resolve?tax_type=INCOME&jurisdiction=NT&as_of=2024-06-30", middleware.RoleClerk, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	var book service.RateBookResponse
	require.NoError(t, json.Unmarshal(env.Data, &book))
	assert.Equal(t, "2024-01-01", book.EffectiveFrom)

	status, _ = api.do(http.MethodGet, "/api/rate-books/resolve?tax_type=INCOME&jurisdiction=NT&as_of=2023-06-30", middleware.RoleClerk, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	_, env = api.do(http.MethodPost, "/api/taxpayers", middleware.RoleClerk, service.CreateTaxpayerRequest{
		Name: "Alice", TaxCode: "TC-ALICE", Turnover: "500000",
	})
	var tp service.TaxpayerResponse
	require.NoError(t, json.Unmarshal(env.Data, &tp))

	status, env = api.do(http.MethodPost, "/api/calculations", middleware.RoleAssessor, service.CalculateRequest{
		TaxpayerID:  tp.ID,
		TaxType:     "INCOME",
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-12-31",
		Declaration: service.DeclarationPayload{GrossIncome: "120000"},
	})
	require.Equal(t, http.StatusOK, status, env.Error)
	var liability service.LiabilityResponse
	require.NoError(t, json.Unmarshal(env.Data, &liability))
	assert.Equal(t, "12500.00", liability.Total)

	t.Run("audit trail is restricted", func(t *testing.T) {
		status, _ := api.do(http.MethodGet, "/api/audit-logs", middleware.RoleClerk, nil)
		assert.Equal(t, http.StatusForbidden, status)

		status, env := api.do(http.MethodGet, "/api/audit-logs", middleware.RoleManager, nil)
		require.Equal(t, http.StatusOK, status)
		require.NotNil(t, env.Meta)
		assert.Equal(t, int64(2), env.Meta.Total, "rate book and taxpayer")
	})
}
