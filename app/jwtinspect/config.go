package jwtinspect

import (
	"time"

	"github.com/dmitrymomot/jwtinspect/core/server"
	"github.com/dmitrymomot/jwtinspect/integration/database/mongo"
	"github.com/dmitrymomot/jwtinspect/integration/database/pg"
	"github.com/dmitrymomot/jwtinspect/integration/database/redis"
)

// History backends accepted by HISTORY_BACKEND.
const (
	BackendMemory   = "memory"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	Server   server.Config
	Mongo    mongo.Config
	Postgres pg.Config
	Redis    redis.Config

	AppName  string `env:"APP_NAME" envDefault:"jwtinspect"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	HistoryBackend string `env:"HISTORY_BACKEND" envDefault:"memory"`
	HistoryLimit   int    `env:"HISTORY_LIMIT" envDefault:"100"`

	// HistoryMaxRecords caps the memory backend; older records are evicted.
	// 0 keeps everything.
	HistoryMaxRecords int `env:"HISTORY_MAX_RECORDS" envDefault:"1000"`

	AllowAlgNone bool          `env:"JWT_ALLOW_ALG_NONE" envDefault:"false"`
	ClockLeeway  time.Duration `env:"JWT_CLOCK_LEEWAY" envDefault:"0s"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	MaxBodySize        int64    `env:"MAX_BODY_SIZE" envDefault:"1048576"`
}

// DefaultConfig mirrors the envDefault tags. Handy in tests.
func DefaultConfig() Config {
	return Config{
		Server:             server.DefaultConfig(),
		AppName:            "jwtinspect",
		Env:                "development",
		LogLevel:           "info",
		HistoryBackend:     BackendMemory,
		HistoryLimit:       100,
		HistoryMaxRecords:  1000,
		CORSAllowedOrigins: []string{"*"},
		MaxBodySize:        1 << 20,
	}
}
