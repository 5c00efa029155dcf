package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

// RiskConfig carries the analyzer cutoffs so they can be tuned per
// deployment instead of living as literals in the engine. Fields mirror
// calc.Thresholds so the struct converts directly.
type RiskConfig struct {
	UnderbillingHighRatio    float64
	UnderbillingMediumRatio  float64
	DemobilizeCriticalDays   int
	BehindTargetCriticalDays int
	MarginFadePoints         float64
	ScheduleDriftNoiseRatio  float64
	BillingNeutralBand       float64
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Risk        RiskConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	v.SetDefault("RISK_UNDERBILLING_HIGH_RATIO", -0.10)
	v.SetDefault("RISK_UNDERBILLING_MEDIUM_RATIO", -0.05)
	v.SetDefault("RISK_DEMOBILIZE_CRITICAL_DAYS", 14)
	v.SetDefault("RISK_BEHIND_TARGET_CRITICAL_DAYS", 30)
	v.SetDefault("RISK_MARGIN_FADE_POINTS", 2.0)
	v.SetDefault("RISK_SCHEDULE_DRIFT_NOISE_RATIO", 0.10)
	v.SetDefault("RISK_BILLING_NEUTRAL_BAND", 100.0)

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Risk: RiskConfig{
			UnderbillingHighRatio:    v.GetFloat64("RISK_UNDERBILLING_HIGH_RATIO"),
			UnderbillingMediumRatio:  v.GetFloat64("RISK_UNDERBILLING_MEDIUM_RATIO"),
			DemobilizeCriticalDays:   v.GetInt("RISK_DEMOBILIZE_CRITICAL_DAYS"),
			BehindTargetCriticalDays: v.GetInt("RISK_BEHIND_TARGET_CRITICAL_DAYS"),
			MarginFadePoints:         v.GetFloat64("RISK_MARGIN_FADE_POINTS"),
			ScheduleDriftNoiseRatio:  v.GetFloat64("RISK_SCHEDULE_DRIFT_NOISE_RATIO"),
			BillingNeutralBand:       v.GetFloat64("RISK_BILLING_NEUTRAL_BAND"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 792
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Risk.UnderbillingHighRatio >= cfg.Risk.UnderbillingMediumRatio {
		return fmt.Errorf("RISK_UNDERBILLING_HIGH_RATIO must be below RISK_UNDERBILLING_MEDIUM_RATIO")
	}
	return nil
}
