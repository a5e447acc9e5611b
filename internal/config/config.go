// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (./config.yaml or ~/.ndu/config.yaml)
//  3. Default values
//
// Main configuration categories:
//   - AI: model selection, agentic turn limit, history window
//   - Conference: venue, dates, support contacts
//   - Maps: Google Maps Directions credentials
//   - Scraper: conference website fetching limits and cache
//   - HTTP: listen address, CORS origins, rate limits
//   - History: session history cache cap and persistence path
//
// Security: sensitive values (API keys) are never logged; MarshalJSON masks
// them explicitly.
//
// Error handling: sentinel errors for Go-idiomatic checks with errors.Is(),
// wrapped with context via fmt.Errorf("%w: details", ErrXxx).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAPIKey indicates a required API key is missing.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidCoordinates indicates the venue coordinates are not "lat,lng".
	ErrInvalidCoordinates = errors.New("invalid venue coordinates")

	// ErrInvalidHistoryCap indicates the session history cap is out of range.
	ErrInvalidHistoryCap = errors.New("invalid history cap")

	// ErrInvalidMaxTurns indicates the agentic turn limit is out of range.
	ErrInvalidMaxTurns = errors.New("invalid max turns")

	// ErrInvalidScraper indicates the web scraper settings are out of range.
	ErrInvalidScraper = errors.New("invalid scraper configuration")

	// ErrInvalidAddr indicates the HTTP listen address is malformed.
	ErrInvalidAddr = errors.New("invalid listen address")
)

const (
	// DefaultModelName is the Gemini model used when none is configured.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultHistoryCap is the maximum number of session records kept in
	// the history cache before the oldest are evicted.
	DefaultHistoryCap = 20

	// DefaultMaxHistoryMessages is the conversation window loaded per session.
	DefaultMaxHistoryMessages = 100
)

// ScraperConfig holds conference-website scraper settings.
type ScraperConfig struct {
	// BaseURL is the conference site root (e.g. https://apiconf.net)
	BaseURL string `mapstructure:"base_url" json:"base_url"`
	// UserAgent identifies the bot to the scraped site.
	UserAgent string `mapstructure:"user_agent" json:"user_agent"`
	// Parallelism is max concurrent requests per domain (default: 2)
	Parallelism int `mapstructure:"parallelism" json:"parallelism"`
	// DelayMs is delay between requests in milliseconds (default: 1000)
	DelayMs int `mapstructure:"delay_ms" json:"delay_ms"`
	// TimeoutMs is request timeout in milliseconds (default: 30000)
	TimeoutMs int `mapstructure:"timeout_ms" json:"timeout_ms"`
	// CacheDir holds scraped-page cache files (default: "cache")
	CacheDir string `mapstructure:"cache_dir" json:"cache_dir"`
	// CacheTTLMinutes is how long cached pages stay fresh (default: 60)
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes" json:"cache_ttl_minutes"`
	// MaxRetries is how many times a transient fetch failure is retried.
	MaxRetries int `mapstructure:"max_retries" json:"max_retries"`
}

// ConferenceConfig holds static event information surfaced by the agent.
type ConferenceConfig struct {
	VenueName        string `mapstructure:"venue_name" json:"venue_name"`
	VenueAddress     string `mapstructure:"venue_address" json:"venue_address"`
	VenueCoordinates string `mapstructure:"venue_coordinates" json:"venue_coordinates"` // "lat,lng"
	Dates            string `mapstructure:"dates" json:"dates"`
	SupportPhone     string `mapstructure:"support_phone" json:"support_phone"`
	SupportEmail     string `mapstructure:"support_email" json:"support_email"`
}

// Config stores application configuration.
// SECURITY: sensitive fields are explicitly masked in MarshalJSON().
// When adding new sensitive fields (API keys, tokens), update MarshalJSON.
type Config struct {
	// AI model configuration. The Gemini API key itself is read directly
	// by Genkit from GEMINI_API_KEY; only its presence is validated here.
	ModelName          string `mapstructure:"model_name" json:"model_name"`
	MaxTurns           int    `mapstructure:"max_turns" json:"max_turns"`
	MaxHistoryMessages int    `mapstructure:"max_history_messages" json:"max_history_messages"`

	// Google Maps Directions API
	MapsAPIKey string `mapstructure:"maps_api_key" json:"maps_api_key"` // SENSITIVE: masked in MarshalJSON

	// Conference information
	Conference ConferenceConfig `mapstructure:"conference" json:"conference"`

	// Conference website scraper
	Scraper ScraperConfig `mapstructure:"scraper" json:"scraper"`

	// HTTP surface
	Addr        string   `mapstructure:"addr" json:"addr"`
	Environment string   `mapstructure:"environment" json:"environment"`
	LogLevelStr string   `mapstructure:"log_level" json:"log_level"` // debug|info|warn|error
	CORSOrigins []string `mapstructure:"cors_origins" json:"cors_origins"`
	RateLimit   float64  `mapstructure:"rate_limit" json:"rate_limit"`   // tokens per second per IP
	RateBurst   int      `mapstructure:"rate_burst" json:"rate_burst"`   // bucket size per IP
	TrustProxy  bool     `mapstructure:"trust_proxy" json:"trust_proxy"` // trust X-Real-IP/X-Forwarded-For

	// Session history cache
	HistoryCap  int    `mapstructure:"history_cap" json:"history_cap"`
	HistoryPath string `mapstructure:"history_path" json:"history_path"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".ndu"))
	}

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is not an error, defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	// AI defaults
	v.SetDefault("model_name", DefaultModelName)
	v.SetDefault("max_turns", 5)
	v.SetDefault("max_history_messages", DefaultMaxHistoryMessages)

	// Conference defaults (API Conference Lagos 2025)
	v.SetDefault("conference.venue_name", "The Zone")
	v.SetDefault("conference.venue_address", "Plot 9, Gbagada Industrial Scheme, Lagos, Nigeria")
	v.SetDefault("conference.venue_coordinates", "6.5502,3.3792")
	v.SetDefault("conference.dates", "July 18-19, 2025")
	v.SetDefault("conference.support_phone", "+234 800 000 0000")
	v.SetDefault("conference.support_email", "support@apiconf.net")

	// Scraper defaults
	v.SetDefault("scraper.base_url", "https://apiconf.net")
	v.SetDefault("scraper.user_agent", "Mozilla/5.0 (compatible; NduBot/1.0)")
	v.SetDefault("scraper.parallelism", 2)
	v.SetDefault("scraper.delay_ms", 1000)
	v.SetDefault("scraper.timeout_ms", 30000)
	v.SetDefault("scraper.cache_dir", "cache")
	v.SetDefault("scraper.cache_ttl_minutes", 60)
	v.SetDefault("scraper.max_retries", 2)

	// HTTP defaults
	v.SetDefault("addr", "0.0.0.0:8000")
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("rate_limit", 5.0)
	v.SetDefault("rate_burst", 20)
	v.SetDefault("trust_proxy", false)

	// History cache defaults
	v.SetDefault("history_cap", DefaultHistoryCap)
	v.SetDefault("history_path", "data/history.json")
}

// bindEnvVariables binds environment variables explicitly.
// GEMINI_API_KEY is read directly by Genkit, not via viper; its presence is
// checked in Validate().
func bindEnvVariables(v *viper.Viper) {
	// Hardcoded keys cannot fail to bind; a panic here is a bug.
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("maps_api_key", "GOOGLE_MAPS_API_KEY")
	mustBind("model_name", "NDU_MODEL_NAME")
	mustBind("addr", "NDU_ADDR")
	mustBind("environment", "NDU_ENVIRONMENT")
	mustBind("log_level", "NDU_LOG_LEVEL")
	mustBind("cors_origins", "NDU_CORS_ORIGINS")
	mustBind("trust_proxy", "NDU_TRUST_PROXY")
	mustBind("history_path", "NDU_HISTORY_PATH")

	mustBind("conference.venue_name", "CONFERENCE_VENUE_NAME")
	mustBind("conference.venue_address", "CONFERENCE_VENUE_ADDRESS")
	mustBind("conference.venue_coordinates", "CONFERENCE_VENUE_COORDINATES")
	mustBind("conference.dates", "CONFERENCE_DATES")
	mustBind("conference.support_phone", "SUPPORT_PHONE")
	mustBind("conference.support_email", "SUPPORT_EMAIL")

	mustBind("scraper.base_url", "SCRAPER_BASE_URL")
	mustBind("scraper.user_agent", "SCRAPER_USER_AGENT")
}

// maskedValue is the placeholder for masked sensitive data.
const maskedValue = "████████"

// maskSecret masks a secret string for safe logging. Short secrets are
// fully masked to prevent substring matching; longer ones keep the first
// and last two characters for debug utility.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with explicit sensitive field masking.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.MapsAPIKey = maskSecret(a.MapsAPIKey)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}

// LogLevel maps the configured level name to a slog.Level. Unknown names
// fall back to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.LogLevelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FullModelName returns the provider-qualified model name for Genkit,
// e.g. "googleai/gemini-2.5-flash". A name already containing "/" is
// returned as-is.
func (c *Config) FullModelName() string {
	if strings.Contains(c.ModelName, "/") {
		return c.ModelName
	}
	return "googleai/" + c.ModelName
}
