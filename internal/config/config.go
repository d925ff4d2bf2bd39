package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env           string `mapstructure:"ENV"`
	Port          string `mapstructure:"PORT"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	CORSAllowed   string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	AdminKey      string `mapstructure:"ADMIN_KEY"`
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`

	SessionBackend       string        `mapstructure:"SESSION_BACKEND"`
	SessionTTL           time.Duration `mapstructure:"SESSION_TTL"`
	SessionSweepInterval time.Duration `mapstructure:"SESSION_SWEEP_INTERVAL"`
	RedisAddr            string        `mapstructure:"REDIS_ADDR"`
	RedisPassword        string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB              int           `mapstructure:"REDIS_DB"`

	BookingStore string `mapstructure:"BOOKING_STORE"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	SQLitePath   string `mapstructure:"SQLITE_PATH"`

	AIProvider       string        `mapstructure:"AI_PROVIDER"`
	AIURL            string        `mapstructure:"AI_URL"`
	AssistantBaseURL string        `mapstructure:"ASSISTANT_BASE_URL"`
	AssistantModel   string        `mapstructure:"ASSISTANT_MODEL"`
	AssistantAPIKey  string        `mapstructure:"ASSISTANT_API_KEY"`
	GeminiAPIKey     string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel      string        `mapstructure:"GEMINI_MODEL"`
	AITimeout        time.Duration `mapstructure:"AI_TIMEOUT"`

	TelephonyMode     string `mapstructure:"TELEPHONY_MODE"`
	TwilioAccountSID  string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber string `mapstructure:"TWILIO_PHONE_NUMBER"`
	SalonNotifyNumber string `mapstructure:"SALON_NOTIFY_NUMBER"`

	GeocodeEnabled bool    `mapstructure:"GEOCODE_ENABLED"`
	GeocodeBaseURL string  `mapstructure:"GEOCODE_BASE_URL"`
	SalonLat       float64 `mapstructure:"SALON_LAT"`
	SalonLon       float64 `mapstructure:"SALON_LON"`

	CompletionWorkers int           `mapstructure:"COMPLETION_WORKERS"`
	CompletionQueue   int           `mapstructure:"COMPLETION_QUEUE"`
	CompletionTimeout time.Duration `mapstructure:"COMPLETION_TIMEOUT"`

	CallRatePerMinute int  `mapstructure:"CALL_RATE_PER_MINUTE"`
	MetricsEnabled    bool `mapstructure:"METRICS_ENABLED"`
}

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"

	BookingStorePostgres = "postgres"
	BookingStoreSQLite   = "sqlite"
	BookingStoreLog      = "log"

	AIProviderRule   = "rule"
	AIProviderOpenAI = "openai"
	AIProviderGemini = "gemini"
	AIProviderHTTP   = "http"

	TelephonyTwilio    = "twilio"
	TelephonySimulated = "simulated"
)

func Load() (Config, error) {
	// Export .env into the process so libraries reading os.Getenv see it too.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "5000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:5000")
	v.SetDefault("SESSION_BACKEND", SessionBackendMemory)
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "1m")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("BOOKING_STORE", BookingStoreSQLite)
	v.SetDefault("SQLITE_PATH", "salon_bookings.db")
	v.SetDefault("AI_PROVIDER", AIProviderRule)
	v.SetDefault("AI_TIMEOUT", "3s")
	v.SetDefault("TELEPHONY_MODE", TelephonySimulated)
	v.SetDefault("GEOCODE_ENABLED", false)
	v.SetDefault("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("SALON_LAT", 12.9716)
	v.SetDefault("SALON_LON", 77.5946)
	v.SetDefault("COMPLETION_WORKERS", 4)
	v.SetDefault("COMPLETION_QUEUE", 256)
	v.SetDefault("COMPLETION_TIMEOUT", "30s")
	v.SetDefault("CALL_RATE_PER_MINUTE", 6)
	v.SetDefault("METRICS_ENABLED", true)
	// Unmarshal only sees keys viper knows about, so secrets get empty defaults.
	for _, key := range []string{
		"ADMIN_KEY", "REDIS_PASSWORD", "DATABASE_URL", "AI_URL",
		"ASSISTANT_BASE_URL", "ASSISTANT_MODEL", "ASSISTANT_API_KEY",
		"GEMINI_API_KEY", "GEMINI_MODEL",
		"TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_PHONE_NUMBER", "SALON_NOTIFY_NUMBER",
	} {
		v.SetDefault(key, "")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every selected backend has what it needs.
func (c Config) Validate() error {
	var problems []string
	switch strings.ToLower(c.SessionBackend) {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if c.RedisAddr == "" {
			problems = append(problems, "REDIS_ADDR is required for the redis session backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown SESSION_BACKEND %q", c.SessionBackend))
	}
	switch strings.ToLower(c.BookingStore) {
	case BookingStoreLog:
	case BookingStorePostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required for the postgres booking store")
		}
	case BookingStoreSQLite:
		if c.SQLitePath == "" {
			problems = append(problems, "SQLITE_PATH is required for the sqlite booking store")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown BOOKING_STORE %q", c.BookingStore))
	}
	switch strings.ToLower(c.AIProvider) {
	case AIProviderRule, AIProviderOpenAI, AIProviderGemini:
	case AIProviderHTTP:
		if c.AIURL == "" {
			problems = append(problems, "AI_URL is required for the http AI provider")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown AI_PROVIDER %q", c.AIProvider))
	}
	switch strings.ToLower(c.TelephonyMode) {
	case TelephonySimulated:
	case TelephonyTwilio:
		if c.TwilioAccountSID == "" || c.TwilioAuthToken == "" || c.TwilioPhoneNumber == "" {
			problems = append(problems, "TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_PHONE_NUMBER are required in twilio mode")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown TELEPHONY_MODE %q", c.TelephonyMode))
	}
	if c.SessionTTL <= 0 {
		problems = append(problems, "SESSION_TTL must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
