// Package config loads and validates application configuration from file,
// environment, and defaults using Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/metabo-score-server/internal/domain"
)

// Manager loads and holds the application configuration
type Manager struct {
	config *domain.Config
}

// NewManager creates a new configuration manager
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/metabo-score-server/")

	viper.SetEnvPrefix("METABO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	m.setDefaults()

	// Config file is optional; defaults and env vars cover every key.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	// Scoring band defaults: domain score-to-label and total-to-risk
	viper.SetDefault("scoring.domain_band_mild", 6.0)
	viper.SetDefault("scoring.domain_band_moderate", 12.0)
	viper.SetDefault("scoring.domain_band_severe", 18.0)
	viper.SetDefault("scoring.risk_band_mild", 20.0)
	viper.SetDefault("scoring.risk_band_moderate", 40.0)
	viper.SetDefault("scoring.risk_band_high", 70.0)

	// API defaults
	viper.SetDefault("api.rate_limit_per_second", 20.0)
	viper.SetDefault("api.rate_limit_burst", 40)
	viper.SetDefault("api.report_cache_size", 256)
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetServerConfig returns server configuration
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// GetScoringConfig returns scoring band configuration
func (m *Manager) GetScoringConfig() *domain.ScoringConfig {
	return &m.config.Scoring
}

// GetAPIConfig returns API collaborator configuration
func (m *Manager) GetAPIConfig() *domain.APIConfig {
	return &m.config.API
}

// Validate validates the configuration. Any fault here is fatal at
// startup; scoring requests can no longer fail on configuration.
func (m *Manager) Validate() error {
	config := m.config

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	s := config.Scoring
	if !(0 < s.DomainBandMild && s.DomainBandMild < s.DomainBandModerate && s.DomainBandModerate < s.DomainBandSevere && s.DomainBandSevere < 25) {
		return fmt.Errorf("domain banding thresholds must ascend within (0,25): %.1f/%.1f/%.1f",
			s.DomainBandMild, s.DomainBandModerate, s.DomainBandSevere)
	}
	if !(0 < s.RiskBandMild && s.RiskBandMild < s.RiskBandModerate && s.RiskBandModerate < s.RiskBandHigh && s.RiskBandHigh < 100) {
		return fmt.Errorf("risk banding thresholds must ascend within (0,100): %.1f/%.1f/%.1f",
			s.RiskBandMild, s.RiskBandModerate, s.RiskBandHigh)
	}

	if config.API.RateLimitPerSecond <= 0 {
		return fmt.Errorf("api rate limit must be positive: %f", config.API.RateLimitPerSecond)
	}
	if config.API.ReportCacheSize <= 0 {
		return fmt.Errorf("api report cache size must be positive: %d", config.API.ReportCacheSize)
	}

	return nil
}
