package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Auth      AuthConfig      `mapstructure:"auth"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Callback  CallbackConfig  `mapstructure:"callback"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
	TLS       bool   `mapstructure:"tls"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type NATSConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	URL           string `mapstructure:"url"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
}

// AuthConfig holds API authentication settings. An empty key disables the check.
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	RequestsPerHour   int  `mapstructure:"requests_per_hour"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// EngineConfig tunes intelligence extraction and scoring.
type EngineConfig struct {
	// DetectionThreshold is the confidence above which a session counts as a scam.
	DetectionThreshold float64 `mapstructure:"detection_threshold"`
	// DefaultCountryCode is prepended to bare 10-digit phone numbers.
	DefaultCountryCode string            `mapstructure:"default_country_code"`
	Weights            ConfidenceWeights `mapstructure:"weights"`
	Escalation         EscalationConfig  `mapstructure:"escalation"`
}

// ConfidenceWeights are the per-category confidence contributions for newly
// seen intelligence items. Keyword weights come from the vocabulary table.
type ConfidenceWeights struct {
	UPIID              float64 `mapstructure:"upi_id"`
	PhishingLink       float64 `mapstructure:"phishing_link"`
	BankAccount        float64 `mapstructure:"bank_account"`
	PhoneNumber        float64 `mapstructure:"phone_number"`
	TacticPattern      float64 `mapstructure:"tactic_pattern"`
	ImpersonationClaim float64 `mapstructure:"impersonation_claim"`
	OrganizationalClue float64 `mapstructure:"organizational_clue"`
}

// EscalationConfig holds the escalation gate thresholds. Conditions are
// evaluated in order: high confidence after a few turns, moderate confidence
// over a longer exchange, then a hard turn cap.
type EscalationConfig struct {
	HighConfidence      float64 `mapstructure:"high_confidence"`
	HighConfidenceTurns int     `mapstructure:"high_confidence_turns"`
	ModerateConfidence  float64 `mapstructure:"moderate_confidence"`
	ModerateTurns       int     `mapstructure:"moderate_turns"`
	MaxTurns            int     `mapstructure:"max_turns"`
}

// CallbackConfig configures the external scam report endpoint.
type CallbackConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/honeypot-lab")
	}

	// Environment variables
	v.SetEnvPrefix("HONEYPOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested env vars explicitly (viper doesn't auto-bind nested struct fields)
	v.BindEnv("redis.enabled", "HONEYPOT_REDIS_ENABLED")
	v.BindEnv("redis.host", "HONEYPOT_REDIS_HOST")
	v.BindEnv("redis.port", "HONEYPOT_REDIS_PORT")
	v.BindEnv("redis.password", "HONEYPOT_REDIS_PASSWORD")
	v.BindEnv("redis.tls", "HONEYPOT_REDIS_TLS")
	v.BindEnv("nats.enabled", "HONEYPOT_NATS_ENABLED")
	v.BindEnv("nats.url", "HONEYPOT_NATS_URL")
	v.BindEnv("auth.api_key", "HONEYPOT_AUTH_API_KEY")
	v.BindEnv("callback.url", "HONEYPOT_CALLBACK_URL")
	v.BindEnv("callback.api_key", "HONEYPOT_CALLBACK_API_KEY")
	v.BindEnv("app.environment", "HONEYPOT_APP_ENVIRONMENT")

	// Read config file; defaults carry the service when no file is present
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadDefault loads configuration with default path
func LoadDefault() (*Config, error) {
	return Load("")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "honeypot-lab")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.key_prefix", "honeypot:")

	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.subject_prefix", "honeypot")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Content-Type", "X-API-Key"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.requests_per_minute", 120)
	v.SetDefault("ratelimit.requests_per_hour", 2000)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.time_format", time.RFC3339)

	v.SetDefault("engine.detection_threshold", 0.3)
	v.SetDefault("engine.default_country_code", "91")
	v.SetDefault("engine.weights.upi_id", 0.3)
	v.SetDefault("engine.weights.phishing_link", 0.3)
	v.SetDefault("engine.weights.bank_account", 0.2)
	v.SetDefault("engine.weights.phone_number", 0.1)
	v.SetDefault("engine.weights.tactic_pattern", 0.05)
	v.SetDefault("engine.weights.impersonation_claim", 0.05)
	v.SetDefault("engine.weights.organizational_clue", 0.05)
	v.SetDefault("engine.escalation.high_confidence", 0.8)
	v.SetDefault("engine.escalation.high_confidence_turns", 3)
	v.SetDefault("engine.escalation.moderate_confidence", 0.5)
	v.SetDefault("engine.escalation.moderate_turns", 8)
	v.SetDefault("engine.escalation.max_turns", 15)

	v.SetDefault("callback.timeout", 10*time.Second)
}
