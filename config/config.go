package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"roster-calendar/pkg/charset"
)

// Config is the application-wide configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Calendar  CalendarConfig  `mapstructure:"calendar"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port           int        `mapstructure:"port"`
	MaxUploadBytes int64      `mapstructure:"max_upload_bytes"`
	CORS           CORSConfig `mapstructure:"cors"`
}

// CORSConfig cross-origin settings
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RedisConfig backs the optional upload rate limiter.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig sliding-window limit applied to the calendar endpoints
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

// LogConfig logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EngineConfig controls how rosters are read and interpreted.
//
// Roster variants collected from different clinics disagree on two points, both of
// which are exposed here instead of being fixed in code:
//   - OnCallTeamKeywords: whether backup ("icap") and emergency ("acil") columns
//     count as part of the on-call team listed in on-call entries.
//   - RequireStaffRoster: whether a missing staff roster is rejected or tolerated.
type EngineConfig struct {
	HeaderScanRows     int           `mapstructure:"header_scan_rows"`
	MinNameLength      int           `mapstructure:"min_name_length"`
	Encodings          []string      `mapstructure:"encodings"`
	RequireStaffRoster bool          `mapstructure:"require_staff_roster"`
	OnCallTeamKeywords []string      `mapstructure:"on_call_team_keywords"`
	Placeholders       []string      `mapstructure:"placeholders"`
	HeaderKeywords     []string      `mapstructure:"header_keywords"`
	Keywords           KeywordConfig `mapstructure:"keywords"`
}

// KeywordConfig holds the keyword roots used to classify duty columns and staff cells.
type KeywordConfig struct {
	OnCall    string   `mapstructure:"on_call"`
	PostCall  string   `mapstructure:"post_call"`
	Backup    string   `mapstructure:"backup"`
	Emergency string   `mapstructure:"emergency"`
	Surgery   string   `mapstructure:"surgery"`
	Clinic    []string `mapstructure:"clinic"`
}

// CalendarConfig settings of the generated calendar document
type CalendarConfig struct {
	Name           string `mapstructure:"name"`
	ProductID      string `mapstructure:"product_id"`
	FilenameSuffix string `mapstructure:"filename_suffix"`
}

// DefaultHeaderKeywords are the terms scored when looking for the header row.
var DefaultHeaderKeywords = []string{
	"nöbet", "ameliyat", "poliklinik", "klinik", "servis", "acil", "icap", "asistan",
	"tarih", "gün", "date",
	"pazartesi", "salı", "çarşamba", "perşembe", "cuma", "cumartesi", "pazar",
}

// Load reads configuration from file and environment.
// Precedence: environment > config file > defaults
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("ROSTERCAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// no config file: defaults and environment only
	}

	// unknown keys are rejected, so a misspelled setting fails at startup
	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration built from defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_bytes", 10<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.limit", 30)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("engine.header_scan_rows", 20)
	v.SetDefault("engine.min_name_length", 3)
	v.SetDefault("engine.encodings", []string{"utf-8", "windows-1254", "iso-8859-9"})
	v.SetDefault("engine.require_staff_roster", false)
	v.SetDefault("engine.on_call_team_keywords", []string{"nöbet", "acil", "icap"})
	v.SetDefault("engine.placeholders", []string{"-", "--", "—", ".", "nan", "none", "null", "yok"})
	v.SetDefault("engine.header_keywords", DefaultHeaderKeywords)
	v.SetDefault("engine.keywords.on_call", "nöbet")
	v.SetDefault("engine.keywords.post_call", "ertesi")
	v.SetDefault("engine.keywords.backup", "icap")
	v.SetDefault("engine.keywords.emergency", "acil")
	v.SetDefault("engine.keywords.surgery", "ameliyat")
	v.SetDefault("engine.keywords.clinic", []string{"klinik", "poli"})

	v.SetDefault("calendar.name", "Nöbet ve Ameliyat Takvimi")
	v.SetDefault("calendar.product_id", "-//roster-calendar//TR")
	v.SetDefault("calendar.filename_suffix", "_Program")
}

// Validate checks the settings the rest of the program relies on.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be within 1-65535")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("config: server.max_upload_bytes must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("config: rate_limit.limit and rate_limit.window must be positive")
	}
	if c.Engine.HeaderScanRows <= 0 {
		return fmt.Errorf("config: engine.header_scan_rows must be positive")
	}
	if c.Engine.MinNameLength < 1 {
		return fmt.Errorf("config: engine.min_name_length must be at least 1")
	}
	if len(c.Engine.Encodings) == 0 {
		return fmt.Errorf("config: engine.encodings must not be empty")
	}
	for _, name := range c.Engine.Encodings {
		if !charset.Known(name) {
			return fmt.Errorf("config: engine.encodings: unknown encoding %q", name)
		}
	}
	k := c.Engine.Keywords
	if k.OnCall == "" || k.PostCall == "" || k.Surgery == "" || len(k.Clinic) == 0 {
		return fmt.Errorf("config: engine.keywords on_call, post_call, surgery and clinic are required")
	}
	return nil
}
