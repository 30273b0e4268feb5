package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"taxoffice/internal/engine"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Engine   EngineConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver          string // postgres, sqlite
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string // database name, or file path for sqlite
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	LogLevel        string
}

// JWTConfig holds the secret used to verify bearer tokens
type JWTConfig struct {
	Secret string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
}

// EngineConfig holds the tunables of the calculation engine
type EngineConfig struct {
	DefaultJurisdiction    string
	LateFilerThresholdDays int
	NeutralScore           string
	TimelinessHorizonDays  int
	BatchConcurrency       int
	CategoryBands          CategoryBandsConfig
	Weights                WeightsConfig
}

// CategoryBandsConfig holds turnover floors as decimal strings
type CategoryBandsConfig struct {
	Large  string
	Medium string
	Small  string
}

// WeightsConfig holds the compliance sub-score weights as decimal strings
type WeightsConfig struct {
	Name                 string
	FilingCompleteness   string
	PaymentTimeliness    string
	DocumentCompleteness string
	GeneralTimeliness    string
}

// Load reads configs/.env (if present), then config.toml and TAXOFFICE_* environment
// variables. Priority (highest to lowest):
// 1. Environment variables with TAXOFFICE_ prefix (e.g., TAXOFFICE_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("TAXOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			LogLevel:        v.GetString("database.log_level"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
		},
		Engine: EngineConfig{
			DefaultJurisdiction:    v.GetString("engine.default_jurisdiction"),
			LateFilerThresholdDays: v.GetInt("engine.late_filer_threshold_days"),
			NeutralScore:           v.GetString("engine.neutral_score"),
			TimelinessHorizonDays:  v.GetInt("engine.timeliness_horizon_days"),
			BatchConcurrency:       v.GetInt("engine.batch_concurrency"),
			CategoryBands: CategoryBandsConfig{
				Large:  v.GetString("engine.category_bands.large"),
				Medium: v.GetString("engine.category_bands.medium"),
				Small:  v.GetString("engine.category_bands.small"),
			},
			Weights: WeightsConfig{
				Name:                 v.GetString("engine.weights.name"),
				FilingCompleteness:   v.GetString("engine.weights.filing_completeness"),
				PaymentTimeliness:    v.GetString("engine.weights.payment_timeliness"),
				DocumentCompleteness: v.GetString("engine.weights.document_completeness"),
				GeneralTimeliness:    v.GetString("engine.weights.general_timeliness"),
			},
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "taxoffice"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "taxoffice"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if len(cfg.HTTP.CORSAllowOrigins) == 0 {
		cfg.HTTP.CORSAllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	}

	e := &cfg.Engine
	if e.LateFilerThresholdDays == 0 {
		e.LateFilerThresholdDays = engine.DefaultLateFilerThresholdDays
	}
	if e.BatchConcurrency == 0 {
		e.BatchConcurrency = engine.DefaultBatchConcurrency
	}
	opts := engine.DefaultScorerOptions()
	if e.NeutralScore == "" {
		e.NeutralScore = opts.NeutralScore.String()
	}
	if e.TimelinessHorizonDays == 0 {
		e.TimelinessHorizonDays = opts.TimelinessHorizonDays
	}
	bands := engine.DefaultCategoryBands()
	if e.CategoryBands.Large == "" {
		e.CategoryBands.Large = bands.Large.String()
	}
	if e.CategoryBands.Medium == "" {
		e.CategoryBands.Medium = bands.Medium.String()
	}
	if e.CategoryBands.Small == "" {
		e.CategoryBands.Small = bands.Small.String()
	}
	w := engine.DefaultComplianceWeights()
	if e.Weights.Name == "" {
		e.Weights.Name = w.Name
	}
	if e.Weights.FilingCompleteness == "" && e.Weights.PaymentTimeliness == "" &&
		e.Weights.DocumentCompleteness == "" && e.Weights.GeneralTimeliness == "" {
		e.Weights.FilingCompleteness = w.FilingCompleteness.String()
		e.Weights.PaymentTimeliness = w.PaymentTimeliness.String()
		e.Weights.DocumentCompleteness = w.DocumentCompleteness.String()
		e.Weights.GeneralTimeliness = w.GeneralTimeliness.String()
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("database.driver must be postgres or sqlite, got %q", c.Database.Driver)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.App.Env == "production" {
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Driver == "postgres" && c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
	}
	if c.Engine.LateFilerThresholdDays < 0 {
		return fmt.Errorf("engine.late_filer_threshold_days cannot be negative")
	}
	if c.Engine.BatchConcurrency < 0 {
		return fmt.Errorf("engine.batch_concurrency cannot be negative")
	}

	bands, err := c.Engine.Bands()
	if err != nil {
		return err
	}
	if err := bands.Validate(); err != nil {
		return fmt.Errorf("engine.category_bands: %w", err)
	}
	weights, err := c.Engine.ComplianceWeights()
	if err != nil {
		return err
	}
	if err := weights.Validate(); err != nil {
		return fmt.Errorf("engine.weights: %w", err)
	}
	if _, err := c.Engine.ScorerOptions(); err != nil {
		return err
	}
	return nil
}

// Bands parses the category turnover floors.
func (e EngineConfig) Bands() (engine.CategoryBands, error) {
	large, err := parseDecimal("engine.category_bands.large", e.CategoryBands.Large)
	if err != nil {
		return engine.CategoryBands{}, err
	}
	medium, err := parseDecimal("engine.category_bands.medium", e.CategoryBands.Medium)
	if err != nil {
		return engine.CategoryBands{}, err
	}
	small, err := parseDecimal("engine.category_bands.small", e.CategoryBands.Small)
	if err != nil {
		return engine.CategoryBands{}, err
	}
	return engine.CategoryBands{Large: large, Medium: medium, Small: small}, nil
}

// ComplianceWeights parses the configured weights. It does not validate their sum.
func (e EngineConfig) ComplianceWeights() (engine.ComplianceWeights, error) {
	w := engine.ComplianceWeights{Name: e.Weights.Name}
	fields := []struct {
		key string
		raw string
		dst *decimal.Decimal
	}{
		{"engine.weights.filing_completeness", e.Weights.FilingCompleteness, &w.FilingCompleteness},
		{"engine.weights.payment_timeliness", e.Weights.PaymentTimeliness, &w.PaymentTimeliness},
		{"engine.weights.document_completeness", e.Weights.DocumentCompleteness, &w.DocumentCompleteness},
		{"engine.weights.general_timeliness", e.Weights.GeneralTimeliness, &w.GeneralTimeliness},
	}
	for _, f := range fields {
		d, err := parseDecimal(f.key, f.raw)
		if err != nil {
			return engine.ComplianceWeights{}, err
		}
		*f.dst = d
	}
	return w, nil
}

// ScorerOptions parses the neutral score and timeliness horizon.
func (e EngineConfig) ScorerOptions() (engine.ScorerOptions, error) {
	neutral, err := parseDecimal("engine.neutral_score", e.NeutralScore)
	if err != nil {
		return engine.ScorerOptions{}, err
	}
	if neutral.IsNegative() || neutral.GreaterThan(decimal.NewFromInt(100)) {
		return engine.ScorerOptions{}, fmt.Errorf("engine.neutral_score must be within 0..100, got %s", neutral)
	}
	if e.TimelinessHorizonDays <= 0 {
		return engine.ScorerOptions{}, fmt.Errorf("engine.timeliness_horizon_days must be positive")
	}
	return engine.ScorerOptions{NeutralScore: neutral, TimelinessHorizonDays: e.TimelinessHorizonDays}, nil
}

func parseDecimal(key, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: invalid decimal %q: %w", key, raw, err)
	}
	return d, nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   d.Host + ":" + strconv.Itoa(d.Port),
		Path:   "/" + d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// ConnMaxLifetimeDuration converts the configured minutes to a duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Minute
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
