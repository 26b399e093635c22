package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/heartlog/heartlog/internal/domain/rules"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	AuthSecret  string   `mapstructure:"AUTH_SECRET"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Rule thresholds. Defaults are the clinically informed ones; a care team
	// can tighten or relax them per deployment without a rebuild.
	WeightGain24hLb      float64 `mapstructure:"WEIGHT_GAIN_24H_LB"`
	WeightGain7dLb       float64 `mapstructure:"WEIGHT_GAIN_7D_LB"`
	HeartRateLow         float64 `mapstructure:"HEART_RATE_LOW"`
	HeartRateHigh        float64 `mapstructure:"HEART_RATE_HIGH"`
	HeartRateStreak      int     `mapstructure:"HEART_RATE_STREAK"`
	SpO2Low              float64 `mapstructure:"SPO2_LOW"`
	SystolicLow          float64 `mapstructure:"SYSTOLIC_LOW"`
	MAPLow               float64 `mapstructure:"MAP_LOW"`
	SymptomAlertSeverity int     `mapstructure:"SYMPTOM_ALERT_SEVERITY"`
	DizzinessSeverity    int     `mapstructure:"DIZZINESS_SEVERITY"`
	BPRecencyHours       int     `mapstructure:"BP_RECENCY_HOURS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	def := rules.DefaultThresholds()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("WEIGHT_GAIN_24H_LB", def.WeightGain24hLb)
	v.SetDefault("WEIGHT_GAIN_7D_LB", def.WeightGain7dLb)
	v.SetDefault("HEART_RATE_LOW", def.HeartRateLow)
	v.SetDefault("HEART_RATE_HIGH", def.HeartRateHigh)
	v.SetDefault("HEART_RATE_STREAK", def.HeartRateStreak)
	v.SetDefault("SPO2_LOW", def.SpO2Low)
	v.SetDefault("SYSTOLIC_LOW", def.SystolicLow)
	v.SetDefault("MAP_LOW", def.MAPLow)
	v.SetDefault("SYMPTOM_ALERT_SEVERITY", def.SymptomAlertSeverity)
	v.SetDefault("DIZZINESS_SEVERITY", def.DizzinessSeverity)
	v.SetDefault("BP_RECENCY_HOURS", int(def.BPRecency/time.Hour))

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range []string{
		"PORT", "ENV", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
		"AUTH_SECRET", "CORS_ORIGINS",
		"WEIGHT_GAIN_24H_LB", "WEIGHT_GAIN_7D_LB",
		"HEART_RATE_LOW", "HEART_RATE_HIGH", "HEART_RATE_STREAK",
		"SPO2_LOW", "SYSTOLIC_LOW", "MAP_LOW",
		"SYMPTOM_ALERT_SEVERITY", "DIZZINESS_SEVERITY", "BP_RECENCY_HOURS",
	} {
		v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Thresholds assembles the rule configuration the evaluators run with.
func (c *Config) Thresholds() rules.Thresholds {
	return rules.Thresholds{
		WeightGain24hLb:      c.WeightGain24hLb,
		WeightGain7dLb:       c.WeightGain7dLb,
		HeartRateLow:         c.HeartRateLow,
		HeartRateHigh:        c.HeartRateHigh,
		HeartRateStreak:      c.HeartRateStreak,
		SpO2Low:              c.SpO2Low,
		SystolicLow:          c.SystolicLow,
		MAPLow:               c.MAPLow,
		SymptomAlertSeverity: c.SymptomAlertSeverity,
		DizzinessSeverity:    c.DizzinessSeverity,
		BPRecency:            time.Duration(c.BPRecencyHours) * time.Hour,
	}
}

// Validate checks that the configuration is safe to run. Outside development
// the auth secret must be set so the bearer-token middleware can verify
// tokens.
func (c *Config) Validate() error {
	if !c.IsDev() && c.AuthSecret == "" {
		return fmt.Errorf("AUTH_SECRET is required when ENV is not development")
	}
	if c.WeightGain24hLb <= 0 || c.WeightGain7dLb <= 0 {
		return fmt.Errorf("weight-gain thresholds must be positive")
	}
	if c.HeartRateLow >= c.HeartRateHigh {
		return fmt.Errorf("HEART_RATE_LOW %.0f must be below HEART_RATE_HIGH %.0f", c.HeartRateLow, c.HeartRateHigh)
	}
	if c.HeartRateStreak < 1 {
		return fmt.Errorf("HEART_RATE_STREAK must be at least 1")
	}
	if c.SymptomAlertSeverity < rules.MinSeverity || c.SymptomAlertSeverity > rules.MaxSeverity {
		return fmt.Errorf("SYMPTOM_ALERT_SEVERITY must be within [%d, %d]", rules.MinSeverity, rules.MaxSeverity)
	}
	if c.DizzinessSeverity < rules.MinSeverity || c.DizzinessSeverity > rules.MaxSeverity {
		return fmt.Errorf("DIZZINESS_SEVERITY must be within [%d, %d]", rules.MinSeverity, rules.MaxSeverity)
	}
	if c.BPRecencyHours < 1 {
		return fmt.Errorf("BP_RECENCY_HOURS must be at least 1")
	}
	return nil
}
