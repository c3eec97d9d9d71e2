package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel LogLeveler `mapstructure:"LOG_LEVEL"`
	HTTP     HTTP       `mapstructure:",squash"`
	Scraper  Scraper    `mapstructure:",squash"`
	Browser  Browser    `mapstructure:",squash"`
	Session  Session    `mapstructure:",squash"`
	Redis    Redis      `mapstructure:",squash"`
	OpenAI   OpenAI     `mapstructure:",squash"`
	Audio    Audio      `mapstructure:",squash"`
	Metrics  Metrics    `mapstructure:",squash"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

// Scraper holds the retry policy and the per-step waits of one search.
type Scraper struct {
	PageURL           string        `mapstructure:"SCRAPER_PAGE_URL"`
	MaxAttempts       int           `mapstructure:"SCRAPER_MAX_ATTEMPTS"`
	BackoffInitial    time.Duration `mapstructure:"SCRAPER_BACKOFF_INITIAL"`
	BackoffMax        time.Duration `mapstructure:"SCRAPER_BACKOFF_MAX"`
	BackoffMultiplier float64       `mapstructure:"SCRAPER_BACKOFF_MULTIPLIER"`
	ElementTimeout    time.Duration `mapstructure:"SCRAPER_ELEMENT_TIMEOUT"`
	NoResultsTimeout  time.Duration `mapstructure:"SCRAPER_NO_RESULTS_TIMEOUT"`
	ResultsTimeout    time.Duration `mapstructure:"SCRAPER_RESULTS_TIMEOUT"`
	DateDialogTimeout time.Duration `mapstructure:"SCRAPER_DATE_DIALOG_TIMEOUT"`
	PopoverTimeout    time.Duration `mapstructure:"SCRAPER_POPOVER_TIMEOUT"`
	LegCountTimeout   time.Duration `mapstructure:"SCRAPER_LEG_COUNT_TIMEOUT"`
	LegSettleDelay    time.Duration `mapstructure:"SCRAPER_LEG_SETTLE_DELAY"`
}

type Browser struct {
	ExecutablePath string `mapstructure:"BROWSER_EXECUTABLE_PATH"`
	Headless       bool   `mapstructure:"BROWSER_HEADLESS"`
	UserAgent      string `mapstructure:"BROWSER_USER_AGENT"`
	Locale         string `mapstructure:"BROWSER_LOCALE"`
	TimezoneID     string `mapstructure:"BROWSER_TIMEZONE"`
	ViewportWidth  int    `mapstructure:"BROWSER_VIEWPORT_WIDTH"`
	ViewportHeight int    `mapstructure:"BROWSER_VIEWPORT_HEIGHT"`
	InstallDriver  bool   `mapstructure:"BROWSER_INSTALL_DRIVER"`
}

// Session bounds concurrent browser sessions. Slots live in Redis when
// SESSION_DISTRIBUTED is set, otherwise in process memory.
type Session struct {
	MaxConcurrent  int           `mapstructure:"SESSION_MAX_CONCURRENT"`
	AcquireTimeout time.Duration `mapstructure:"SESSION_ACQUIRE_TIMEOUT"`
	SlotTTL        time.Duration `mapstructure:"SESSION_SLOT_TTL"`
	Distributed    bool          `mapstructure:"SESSION_DISTRIBUTED"`
	KeyPrefix      string        `mapstructure:"SESSION_KEY_PREFIX"`
}

type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

type OpenAI struct {
	APIKey             string        `mapstructure:"OPENAI_API_KEY"`
	BaseURL            string        `mapstructure:"OPENAI_BASE_URL"`
	ChatModel          string        `mapstructure:"OPENAI_CHAT_MODEL"`
	TranscriptionModel string        `mapstructure:"OPENAI_TRANSCRIPTION_MODEL"`
	Temperature        float32       `mapstructure:"OPENAI_TEMPERATURE"`
	Timeout            time.Duration `mapstructure:"OPENAI_TIMEOUT"`
	TextTemplatePath   string        `mapstructure:"OPENAI_TEXT_TEMPLATE_PATH"`
	VoiceTemplatePath  string        `mapstructure:"OPENAI_VOICE_TEMPLATE_PATH"`
}

type Audio struct {
	MaxFileSizeBytes int64    `mapstructure:"AUDIO_MAX_FILE_SIZE_BYTES"`
	SupportedFormats []string `mapstructure:"AUDIO_SUPPORTED_FORMATS"`
}

type Metrics struct {
	Enabled bool `mapstructure:"METRICS_ENABLED"`
}

// LogValue hides secrets when the config is logged.
func (c Config) LogValue() slog.Value {
	type plain Config

	redacted := plain(c)
	if redacted.OpenAI.APIKey != "" {
		redacted.OpenAI.APIKey = "***"
	}

	if redacted.Redis.Password != "" {
		redacted.Redis.Password = "***"
	}

	return slog.AnyValue(redacted)
}
