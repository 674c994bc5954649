package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Jina       JinaConfig       `yaml:"jina" mapstructure:"jina"`
	Firecrawl  FirecrawlConfig  `yaml:"firecrawl" mapstructure:"firecrawl"`
	Fetch      FetchConfig      `yaml:"fetch" mapstructure:"fetch"`
	Verify     VerifyConfig     `yaml:"verify" mapstructure:"verify"`
	Batch      BatchConfig      `yaml:"batch" mapstructure:"batch"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Monitoring MonitoringConfig `yaml:"monitoring" mapstructure:"monitoring"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// JinaConfig holds Jina AI Reader settings.
type JinaConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// FirecrawlConfig holds Firecrawl scrape API settings.
type FirecrawlConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// FetchConfig configures how candidate link content is obtained.
type FetchConfig struct {
	// Provider is one of "none", "snapshot", "jina" or "firecrawl".
	Provider          string  `yaml:"provider" mapstructure:"provider"`
	SnapshotPath      string  `yaml:"snapshot_path" mapstructure:"snapshot_path"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	CacheTTLHours     int     `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`

	// Retry and circuit breaker tuning for remote fetchers.
	MaxAttempts      int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs int     `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMs     int     `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
	Multiplier       float64 `yaml:"multiplier" mapstructure:"multiplier"`
	JitterFraction   float64 `yaml:"jitter_fraction" mapstructure:"jitter_fraction"`
	FailureThreshold int     `yaml:"failure_threshold" mapstructure:"failure_threshold"`
	ResetTimeoutSecs int     `yaml:"reset_timeout_secs" mapstructure:"reset_timeout_secs"`
}

// VerifyConfig holds signal weights and decision thresholds.
type VerifyConfig struct {
	NameWeight    float64 `yaml:"name_weight" mapstructure:"name_weight"`
	AddressWeight float64 `yaml:"address_weight" mapstructure:"address_weight"`
	PhoneWeight   float64 `yaml:"phone_weight" mapstructure:"phone_weight"`

	// LinkVerifiedThreshold is the overall score at which a link is verified.
	LinkVerifiedThreshold float64 `yaml:"link_verified_threshold" mapstructure:"link_verified_threshold"`
	// LikelyThreshold is the best score at which an entity is LIKELY_CORRECT.
	LikelyThreshold float64 `yaml:"likely_threshold" mapstructure:"likely_threshold"`
	// ScoreFloor is the minimum name/address signal used during weighting.
	// Zero lets missing textual evidence contribute nothing.
	ScoreFloor float64 `yaml:"score_floor" mapstructure:"score_floor"`

	// Reporting thresholds for the human-readable details only.
	NameReportThreshold    float64 `yaml:"name_report_threshold" mapstructure:"name_report_threshold"`
	AddressReportThreshold float64 `yaml:"address_report_threshold" mapstructure:"address_report_threshold"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	MaxConcurrentEntities int `yaml:"max_concurrent_entities" mapstructure:"max_concurrent_entities"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// MonitoringConfig configures post-run alerting.
type MonitoringConfig struct {
	WebhookURL string `yaml:"webhook_url" mapstructure:"webhook_url"`
	// FailureRateThreshold alerts when failed / finished entities exceeds it.
	FailureRateThreshold float64 `yaml:"failure_rate_threshold" mapstructure:"failure_rate_threshold"`
	// MinAnalyzedRatio alerts when fewer links than this share had page text.
	MinAnalyzedRatio float64 `yaml:"min_analyzed_ratio" mapstructure:"min_analyzed_ratio"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SOCIALVERIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "socialverify.db")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("jina.base_url", "https://r.jina.ai")
	v.SetDefault("firecrawl.base_url", "https://api.firecrawl.dev/v1")
	v.SetDefault("fetch.provider", "none")
	v.SetDefault("fetch.requests_per_second", 0.2)
	v.SetDefault("fetch.burst", 1)
	v.SetDefault("fetch.timeout_secs", 60)
	v.SetDefault("fetch.cache_ttl_hours", 24)
	v.SetDefault("fetch.max_attempts", 3)
	v.SetDefault("fetch.initial_backoff_ms", 1000)
	v.SetDefault("fetch.max_backoff_ms", 30000)
	v.SetDefault("fetch.multiplier", 2.0)
	v.SetDefault("fetch.jitter_fraction", 0.25)
	v.SetDefault("fetch.failure_threshold", 5)
	v.SetDefault("fetch.reset_timeout_secs", 120)
	v.SetDefault("verify.name_weight", 1.0)
	v.SetDefault("verify.address_weight", 3.0)
	v.SetDefault("verify.phone_weight", 2.0)
	v.SetDefault("verify.link_verified_threshold", 0.6)
	v.SetDefault("verify.likely_threshold", 0.4)
	v.SetDefault("verify.score_floor", 0.1)
	v.SetDefault("verify.name_report_threshold", 0.6)
	v.SetDefault("verify.address_report_threshold", 0.4)
	v.SetDefault("batch.max_concurrent_entities", 4)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("monitoring.failure_rate_threshold", 0.2)
	v.SetDefault("monitoring.min_analyzed_ratio", 0.5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
