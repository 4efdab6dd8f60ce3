package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppPort  string `envconfig:"APP_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DBDriver string `envconfig:"DB_DRIVER" default:"mysql"`

	MySQLHost string `envconfig:"MYSQL_HOST" default:"mysql"`
	MySQLPort string `envconfig:"MYSQL_PORT" default:"3306"`
	MySQLDB   string `envconfig:"MYSQL_DB" default:"agricredit"`
	MySQLUser string `envconfig:"MYSQL_USER" default:"agricredit"`
	MySQLPass string `envconfig:"MYSQL_PASS" default:"agricredit"`

	PostgresHost string `envconfig:"POSTGRES_HOST" default:"postgres"`
	PostgresPort string `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresDB   string `envconfig:"POSTGRES_DB" default:"agricredit"`
	PostgresUser string `envconfig:"POSTGRES_USER" default:"agricredit"`
	PostgresPass string `envconfig:"POSTGRES_PASS" default:"agricredit"`

	SQLitePath string `envconfig:"SQLITE_PATH" default:"agricredit.db"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"redis:6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`

	IdempTTLSecs int `envconfig:"IDEMPOTENCY_TTL_SECONDS" default:"300"`

	JWTSecret     string        `envconfig:"JWT_SECRET"`
	JWTAccessTTL  time.Duration `envconfig:"JWT_ACCESS_TTL" default:"1h"`
	JWTRefreshTTL time.Duration `envconfig:"JWT_REFRESH_TTL" default:"168h"`

	OTPTTL        time.Duration `envconfig:"OTP_TTL" default:"5m"`
	OTPWebhookURL string        `envconfig:"OTP_WEBHOOK_URL"`

	RateLimitPerSecond float64 `envconfig:"RATE_LIMIT_PER_SECOND" default:"5"`

	// optional bootstrap admin, created at startup when missing
	AdminUsername string `envconfig:"ADMIN_USERNAME"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverPostgres:
		if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDB == "" || c.PostgresUser == "" {
			return errors.New("missing Postgres config (POSTGRES_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.PostgresPort); err != nil {
			return fmt.Errorf("invalid POSTGRES_PORT %q: %w", c.PostgresPort, err)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.JWTAccessTTL <= 0 || c.JWTRefreshTTL <= 0 || c.OTPTTL <= 0 {
		return errors.New("JWT_ACCESS_TTL, JWT_REFRESH_TTL and OTP_TTL must be positive")
	}
	if c.AdminUsername != "" && (c.AdminEmail == "" || len(c.AdminPassword) < 6) {
		return errors.New("ADMIN_USERNAME needs ADMIN_EMAIL and an ADMIN_PASSWORD of at least 6 characters")
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPass, c.PostgresDB)
}
