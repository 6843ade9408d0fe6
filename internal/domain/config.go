package domain

import "time"

// Config represents the main application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Scoring ScoringConfig `mapstructure:"scoring"`
	API     APIConfig     `mapstructure:"api"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ScoringConfig carries the tunable banding thresholds of the aggregator
// and risk synthesizer. Defaults are the canonical 6/12/18 domain bands
// and 20/40/70 risk bands.
type ScoringConfig struct {
	DomainBandMild     float64 `mapstructure:"domain_band_mild"`
	DomainBandModerate float64 `mapstructure:"domain_band_moderate"`
	DomainBandSevere   float64 `mapstructure:"domain_band_severe"`
	RiskBandMild       float64 `mapstructure:"risk_band_mild"`
	RiskBandModerate   float64 `mapstructure:"risk_band_moderate"`
	RiskBandHigh       float64 `mapstructure:"risk_band_high"`
}

// APIConfig represents API collaborator configuration
type APIConfig struct {
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second"`
	RateLimitBurst     int     `mapstructure:"rate_limit_burst"`
	ReportCacheSize    int     `mapstructure:"report_cache_size"`
}
