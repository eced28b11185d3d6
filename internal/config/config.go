// Package config provides configuration management for the options engine.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all engine configuration.
type Config struct {
	Limits    RiskLimits      `mapstructure:"limits"`
	Synthesis SynthesisConfig `mapstructure:"synthesis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// RiskLimits is the named set of hard thresholds enforced by the risk gate.
// It is loaded once per process and treated as read-only; runtime updates
// must swap a whole new instance via LimitsHolder, never mutate fields.
//
// Percent fields are expressed as percentages (5.0 means 5%). The legacy
// system disagreed with itself on several of these caps, so every one is
// named configuration with an explicit default rather than a constant.
type RiskLimits struct {
	MaxCapitalAtRiskPerTradePct  float64 `mapstructure:"max_capital_at_risk_per_trade_pct"`
	MaxCapitalAtRiskPortfolioPct float64 `mapstructure:"max_capital_at_risk_portfolio_pct"`
	MaxDailyLossPct              float64 `mapstructure:"max_daily_loss_pct"`

	MaxSinglePositionSize int `mapstructure:"max_single_position_size"`
	MaxTotalPositions     int `mapstructure:"max_total_positions"`
	MaxContracts          int `mapstructure:"max_contracts"`

	MaxPortfolioDelta float64 `mapstructure:"max_portfolio_delta"`
	MaxPortfolioGamma float64 `mapstructure:"max_portfolio_gamma"`
	MaxPortfolioTheta float64 `mapstructure:"max_portfolio_theta"`
	MaxPortfolioVega  float64 `mapstructure:"max_portfolio_vega"`

	MaxSingleSymbolAllocationPct float64 `mapstructure:"max_single_symbol_allocation_pct"`

	MinOpenInterest    int64   `mapstructure:"min_open_interest"`
	MinVolume          int64   `mapstructure:"min_volume"`
	MaxBidAskSpreadPct float64 `mapstructure:"max_bid_ask_spread_pct"`

	BlackoutSymbols []string `mapstructure:"blackout_symbols"`
	MinDaysToExpiry int      `mapstructure:"min_days_to_expiry"`

	MaxMarginUtilizationPct float64 `mapstructure:"max_margin_utilization_pct"`

	MaxOverallRiskScore float64 `mapstructure:"max_overall_risk_score"`
}

// IsBlackedOut reports whether a symbol is in the blackout set.
func (l *RiskLimits) IsBlackedOut(symbol string) bool {
	for _, s := range l.BlackoutSymbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// SynthesisConfig holds tunables for trade synthesis.
type SynthesisConfig struct {
	// OutlookShiftMultiplier scales short-strike target deltas further
	// out-of-the-money for directional outlooks (< 1.0 shifts OTM).
	OutlookShiftMultiplier float64 `mapstructure:"outlook_shift_multiplier"`

	// MarginRate is the fraction of short-leg strike notional used as the
	// margin requirement estimate.
	MarginRate float64 `mapstructure:"margin_rate"`

	// Kill-switch parameters.
	ProfitTargetPct      float64 `mapstructure:"profit_target_pct"`
	StopLossPct          float64 `mapstructure:"stop_loss_pct"`
	ReviewDTE            int     `mapstructure:"review_dte"`
	DeltaRehedgeMultiple float64 `mapstructure:"delta_rehedge_multiple"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Console  bool   `mapstructure:"console"`
	File     bool   `mapstructure:"file"`
	FilePath string `mapstructure:"file_path"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/optionsengine"
	}
	return filepath.Join(home, ".config", "optionsengine")
}

// Default returns the built-in configuration, used when no config file is
// present and as the base for file overrides.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	cfg := &Config{}
	// Unmarshal of pure defaults cannot fail.
	_ = v.Unmarshal(cfg)
	return cfg
}

// Load loads configuration from the specified directory, falling back to
// defaults when no config file exists. If configDir is empty, the default
// config directory is used.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Risk limits.
	v.SetDefault("limits.max_capital_at_risk_per_trade_pct", 5.0)
	v.SetDefault("limits.max_capital_at_risk_portfolio_pct", 20.0)
	v.SetDefault("limits.max_daily_loss_pct", 5.0)
	v.SetDefault("limits.max_single_position_size", 25)
	v.SetDefault("limits.max_total_positions", 20)
	v.SetDefault("limits.max_contracts", 50)
	v.SetDefault("limits.max_portfolio_delta", 100.0)
	v.SetDefault("limits.max_portfolio_gamma", 10.0)
	v.SetDefault("limits.max_portfolio_theta", 500.0)
	v.SetDefault("limits.max_portfolio_vega", 300.0)
	v.SetDefault("limits.max_single_symbol_allocation_pct", 10.0)
	v.SetDefault("limits.min_open_interest", 100)
	v.SetDefault("limits.min_volume", 10)
	v.SetDefault("limits.max_bid_ask_spread_pct", 8.0)
	v.SetDefault("limits.blackout_symbols", []string{})
	v.SetDefault("limits.min_days_to_expiry", 2)
	v.SetDefault("limits.max_margin_utilization_pct", 60.0)
	v.SetDefault("limits.max_overall_risk_score", 25.0)

	// Synthesis tunables.
	v.SetDefault("synthesis.outlook_shift_multiplier", 0.75)
	v.SetDefault("synthesis.margin_rate", 0.20)
	v.SetDefault("synthesis.profit_target_pct", 0.50)
	v.SetDefault("synthesis.stop_loss_pct", 0.75)
	v.SetDefault("synthesis.review_dte", 7)
	v.SetDefault("synthesis.delta_rehedge_multiple", 2.0)

	// Logging.
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", false)
	v.SetDefault("logging.file_path", filepath.Join(DefaultConfigDir(), "logs", "engine.log"))
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	l := &c.Limits

	pctFields := map[string]float64{
		"max_capital_at_risk_per_trade_pct": l.MaxCapitalAtRiskPerTradePct,
		"max_capital_at_risk_portfolio_pct": l.MaxCapitalAtRiskPortfolioPct,
		"max_daily_loss_pct":                l.MaxDailyLossPct,
		"max_single_symbol_allocation_pct":  l.MaxSingleSymbolAllocationPct,
		"max_margin_utilization_pct":        l.MaxMarginUtilizationPct,
		"max_bid_ask_spread_pct":            l.MaxBidAskSpreadPct,
	}
	for name, val := range pctFields {
		if val <= 0 || val > 100 {
			return fmt.Errorf("%s must be in (0, 100], got %.2f", name, val)
		}
	}

	if l.MaxContracts < 1 {
		return fmt.Errorf("max_contracts must be at least 1, got %d", l.MaxContracts)
	}
	if l.MaxSinglePositionSize < 1 {
		return fmt.Errorf("max_single_position_size must be at least 1, got %d", l.MaxSinglePositionSize)
	}
	if l.MaxTotalPositions < 1 {
		return fmt.Errorf("max_total_positions must be at least 1, got %d", l.MaxTotalPositions)
	}
	if l.MaxOverallRiskScore <= 0 || l.MaxOverallRiskScore > 100 {
		return fmt.Errorf("max_overall_risk_score must be in (0, 100], got %.2f", l.MaxOverallRiskScore)
	}
	if l.MinDaysToExpiry < 0 {
		return fmt.Errorf("min_days_to_expiry must be non-negative, got %d", l.MinDaysToExpiry)
	}

	s := &c.Synthesis
	if s.OutlookShiftMultiplier <= 0 || s.OutlookShiftMultiplier > 1 {
		return fmt.Errorf("outlook_shift_multiplier must be in (0, 1], got %.2f", s.OutlookShiftMultiplier)
	}
	if s.MarginRate <= 0 || s.MarginRate > 1 {
		return fmt.Errorf("margin_rate must be in (0, 1], got %.2f", s.MarginRate)
	}
	if s.ProfitTargetPct <= 0 || s.ProfitTargetPct > 1 {
		return fmt.Errorf("profit_target_pct must be in (0, 1], got %.2f", s.ProfitTargetPct)
	}
	if s.StopLossPct <= 0 || s.StopLossPct > 1 {
		return fmt.Errorf("stop_loss_pct must be in (0, 1], got %.2f", s.StopLossPct)
	}
	if s.ReviewDTE < 0 {
		return fmt.Errorf("review_dte must be non-negative, got %d", s.ReviewDTE)
	}
	if s.DeltaRehedgeMultiple < 1 {
		return fmt.Errorf("delta_rehedge_multiple must be at least 1, got %.2f", s.DeltaRehedgeMultiple)
	}

	return nil
}
