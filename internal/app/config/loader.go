package config

import (
	"encoding/json"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var defaults = map[string]any{
	"LOG_LEVEL":    "info",
	"HTTP_PORT":    8080,
	"HTTP_TIMEOUT": 5 * time.Minute,

	"SCRAPER_PAGE_URL":            "https://www.google.com/flights",
	"SCRAPER_MAX_ATTEMPTS":        5,
	"SCRAPER_BACKOFF_INITIAL":     4 * time.Second,
	"SCRAPER_BACKOFF_MAX":         10 * time.Second,
	"SCRAPER_BACKOFF_MULTIPLIER":  2.0,
	"SCRAPER_ELEMENT_TIMEOUT":     30 * time.Second,
	"SCRAPER_NO_RESULTS_TIMEOUT":  10 * time.Second,
	"SCRAPER_RESULTS_TIMEOUT":     30 * time.Second,
	"SCRAPER_DATE_DIALOG_TIMEOUT": 800 * time.Millisecond,
	"SCRAPER_POPOVER_TIMEOUT":     time.Second,
	"SCRAPER_LEG_COUNT_TIMEOUT":   5 * time.Second,
	"SCRAPER_LEG_SETTLE_DELAY":    500 * time.Millisecond,

	"BROWSER_HEADLESS":        true,
	"BROWSER_USER_AGENT":      userAgent,
	"BROWSER_LOCALE":          "en-US",
	"BROWSER_TIMEZONE":        "UTC",
	"BROWSER_VIEWPORT_WIDTH":  1280,
	"BROWSER_VIEWPORT_HEIGHT": 800,

	"SESSION_MAX_CONCURRENT":  4,
	"SESSION_ACQUIRE_TIMEOUT": 30 * time.Second,
	"SESSION_SLOT_TTL":        5 * time.Minute,
	"SESSION_KEY_PREFIX":      "flight-scraper:sessions",

	"REDIS_ADDR":    "localhost:6379",
	"REDIS_TIMEOUT": 3 * time.Second,

	"OPENAI_CHAT_MODEL":          "gpt-4o-mini",
	"OPENAI_TRANSCRIPTION_MODEL": "whisper-1",
	"OPENAI_TEMPERATURE":         0.1,
	"OPENAI_TIMEOUT":             time.Minute,
	"OPENAI_TEXT_TEMPLATE_PATH":  "templates/text_prompt.txt",
	"OPENAI_VOICE_TEMPLATE_PATH": "templates/voice_prompt.txt",

	"AUDIO_MAX_FILE_SIZE_BYTES": 25 * 1024 * 1024,
	"AUDIO_SUPPORTED_FORMATS":   []string{"mp3", "mp4", "mpeg", "mpga", "m4a", "wav", "webm"},

	"METRICS_ENABLED": true,
}

// MustInitConfig initializes configuration from .env file or environment variables.
// If configFile exists, it loads from the file. Otherwise, it automatically binds
// environment variables based on the Config struct's mapstructure tags.
func MustInitConfig(configFile string) Config {
	var (
		vpr = viper.New()
		cfg Config
	)

	// Set default values
	for key, value := range defaults {
		vpr.SetDefault(key, value)
	}

	vpr.AutomaticEnv()

	vpr.SetConfigFile(configFile)
	vpr.SetConfigType("env")

	if err := vpr.ReadInConfig(); err != nil {
		slog.Warn("config file not found or cannot be read, using environment variables",
			slog.String("file", configFile),
			slog.String("error", err.Error()))
	} else {
		slog.Info("config file loaded successfully", slog.String("file", configFile))

		vpr.WatchConfig()
	}

	// Automatically bind all environment variables from Config struct
	bindEnvFromStruct(vpr)

	// Unmarshal configuration into struct
	if err := vpr.Unmarshal(&cfg); err != nil {
		slog.Error("cannot unmarshal config", slog.String("error", err.Error()))
		panic(err)
	}

	return cfg
}

// bindEnvFromStruct automatically binds environment variables based on mapstructure tags using reflection
func bindEnvFromStruct(vpr *viper.Viper) {
	bindEnvFromType(vpr, reflect.TypeOf(Config{}))
}

func bindEnvFromType(vpr *viper.Viper, t reflect.Type) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" || tag == "-" {
			// If it's an embedded struct without a tag, recurse
			if field.Anonymous && field.Type.Kind() == reflect.Struct {
				bindEnvFromType(vpr, field.Type)
			}
			continue
		}

		parts := strings.Split(tag, ",")
		envVar := parts[0]
		isSquash := false
		for _, p := range parts {
			if strings.TrimSpace(p) == "squash" {
				isSquash = true
				break
			}
		}

		if isSquash && field.Type.Kind() == reflect.Struct {
			bindEnvFromType(vpr, field.Type)
			continue
		}

		if envVar != "" {
			_ = vpr.BindEnv(envVar)

			// If it's an array of struct, check if the value is a JSON string and unmarshal it
			if (field.Type.Kind() == reflect.Slice && field.Type.Elem().Kind() == reflect.Struct) ||
				field.Type.Kind() == reflect.Struct {
				val := vpr.Get(envVar)
				if s, ok := val.(string); ok && s != "" {
					var jsonVal interface{}
					if err := json.Unmarshal([]byte(s), &jsonVal); err == nil {
						vpr.Set(envVar, jsonVal)
					}
				}
			}
		}
	}
}
