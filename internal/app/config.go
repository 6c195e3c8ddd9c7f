package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendNative = "native"
	BackendHTTP   = "http"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string
	LogLevel    string

	// Error monitoring
	SentryDSN              string
	SentryTracing          bool
	SentryTracesSampleRate float64
	Environment            string

	// Engine
	OpenJTalkDict string
	Backend       string // native or http
	EngineURL     string // VOICEVOX engine, used by the http backend
	CPUThreads    int
	Acceleration  string // auto, cpu or gpu
	HTTPTimeout   time.Duration
	OutputDir     string // empty means next to the executable

	// HTTP API
	MaxTextBytes    int
	ShutdownTimeout time.Duration

	// Event log retention, used when DATABASE_URL is set
	EventRetention time.Duration

	// Notifications
	DiscordWebhookURL string

	// JWT Authentication
	JWTSecret string
	JWTExpiry time.Duration
}

func LoadConfigFromEnv() Config {
	jwtExpiry, err := time.ParseDuration(getenv("JWT_EXPIRY", "24h"))
	if err != nil {
		jwtExpiry = 24 * time.Hour
	}

	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		DatabaseURL: getenv("DATABASE_URL", ""),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		SentryDSN:              getenv("SENTRY_DSN", ""),
		SentryTracing:          getenvBool("SENTRY_TRACING", true),
		SentryTracesSampleRate: getenvFloatClamped("SENTRY_TRACES_SAMPLE_RATE", 0.2, 0, 1),
		Environment:            getenv("ENVIRONMENT", "development"),

		OpenJTalkDict: getenv("OPENJTALK_DICT", "open_jtalk_dic_utf_8-1.11"),
		Backend:       strings.ToLower(getenv("VOICEVOX_BACKEND", BackendNative)),
		EngineURL:     getenv("VOICEVOX_ENGINE_URL", "http://127.0.0.1:50021"),
		CPUThreads:    getenvIntClamped("VOICEVOX_CPU_THREADS", 0, 0, 64),
		Acceleration:  getenv("VOICEVOX_ACCELERATION", "auto"),
		HTTPTimeout:   time.Duration(getenvIntClamped("VOICEVOX_HTTP_TIMEOUT_SEC", 30, 1, 300)) * time.Second,
		OutputDir:     getenv("OUTPUT_DIR", ""),

		MaxTextBytes:    getenvIntClamped("MAX_TEXT_BYTES", 64*1024, 1024, 1024*1024),
		ShutdownTimeout: time.Duration(getenvIntClamped("SHUTDOWN_TIMEOUT_SEC", 10, 1, 300)) * time.Second,

		EventRetention: time.Duration(getenvIntClamped("EVENT_RETENTION_DAYS", 30, 1, 3650)) * 24 * time.Hour,

		DiscordWebhookURL: getenv("DISCORD_WEBHOOK_URL", ""),

		// JWT Authentication
		JWTSecret: os.Getenv("JWT_SECRET"), // no fallback; empty disables auth
		JWTExpiry: jwtExpiry,
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvIntClamped(k string, def, min, max int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

func getenvFloatClamped(k string, def, min, max float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	if f < min {
		return min
	}
	if f > max {
		return max
	}
	return f
}
