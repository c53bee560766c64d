package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "ORDERDESK"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced by tests and deploy tooling.
const (
	EnvAppEnv        = "ORDERDESK_APP_ENV"
	EnvPort          = "ORDERDESK_APP_PORT"
	EnvJWTSecret     = "ORDERDESK_JWT_SECRET"
	EnvSpreadsheetID = "ORDERDESK_SHEETS_SPREADSHEET_ID"
	EnvRedisURL      = "ORDERDESK_REDIS_URL"
)

type Config struct {
	App      AppConfig
	JWT      JWTConfig
	Operator OperatorConfig
	Password PasswordConfig
	Redis    RedisConfig
	Sheets   SheetsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Sheets.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ORDERDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"ORDERDESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ORDERDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ORDERDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type JWTConfig struct {
	Secret                 string `envconfig:"ORDERDESK_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"ORDERDESK_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"ORDERDESK_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"ORDERDESK_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

// OperatorConfig holds the single operator account that gates the API.
// The password ships as an Argon2id hash, never in the clear.
type OperatorConfig struct {
	Username     string `envconfig:"ORDERDESK_OPERATOR_USERNAME" required:"true"`
	PasswordHash string `envconfig:"ORDERDESK_OPERATOR_PASSWORD_HASH" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ORDERDESK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ORDERDESK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ORDERDESK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ORDERDESK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ORDERDESK_ARGON_KEY_LEN" default:"32"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ORDERDESK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ORDERDESK_REDIS_ADDR"`
	Password     string        `envconfig:"ORDERDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"ORDERDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ORDERDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ORDERDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ORDERDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ORDERDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ORDERDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SheetsConfig locates the spreadsheet that backs order persistence.
type SheetsConfig struct {
	SpreadsheetID          string `envconfig:"ORDERDESK_SHEETS_SPREADSHEET_ID" required:"true"`
	WorksheetName          string `envconfig:"ORDERDESK_SHEETS_WORKSHEET" default:"Orders"`
	CredentialsJSON        string `envconfig:"ORDERDESK_SHEETS_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`
}

func (s SheetsConfig) validate() error {
	if strings.TrimSpace(s.WorksheetName) == "" {
		return fmt.Errorf("sheets worksheet name cannot be blank")
	}
	return nil
}
