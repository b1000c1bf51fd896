package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8082"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"5m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15s"`
}

type Security struct {
	JWTKey         string `yaml:"JWT_KEY" env:"JWT_KEY"`
	JWTExpiryHours int    `yaml:"JWT_EXPIRY_HOURS" env:"JWT_EXPIRY_HOURS" env-default:"24"`
}

// Admin holds the allow-list as the raw comma-separated string it is configured with.
type Admin struct {
	Emails string `yaml:"ADMIN_EMAILS" env:"ADMIN_EMAILS" env-default:""`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

type Kafka struct {
	Brokers      []string `yaml:"KAFKA_BROKERS" env:"KAFKA_BROKERS" env-separator:","`
	CatalogTopic string   `yaml:"KAFKA_CATALOG_TOPIC" env:"KAFKA_CATALOG_TOPIC" env-default:"catalog.changes"`
}

type Otel struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"fashionhub"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT" env-default:""`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Theme struct {
	DefaultMode   string `yaml:"DEFAULT_MODE" env:"THEME_DEFAULT_MODE" env-default:"auto"`
	SystemDefault string `yaml:"SYSTEM_DEFAULT" env:"THEME_SYSTEM_DEFAULT" env-default:"light"`
}

type Log struct {
	Level string `yaml:"LEVEL" env:"LOG_LEVEL" env-default:"info"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	Backend      string `yaml:"backend" env:"BACKEND" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Security     Security     `yaml:"security"`
	Admin        Admin        `yaml:"admin"`
	Cache        CacheConfig  `yaml:"cache"`
	Kafka        Kafka        `yaml:"kafka"`
	Otel         Otel         `yaml:"otel"`
	Theme        Theme        `yaml:"theme"`
	Log          Log          `yaml:"log"`
}

func MustLoad() *Config {

	// .env is optional, real environment wins over it
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", slog.String("error", err.Error()))
	}

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			configPath = "config/local.yaml"
		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg

}

func LoadConfigFromPath(configPath string) (*Config, error) {

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the fields that only the remote backend needs.
func (c *Config) Validate() error {

	switch c.Backend {
	case BackendLocal:
		return nil
	case BackendRemote:
	default:
		return fmt.Errorf("unknown backend %q, expected %q or %q", c.Backend, BackendLocal, BackendRemote)
	}

	var errs []error

	if c.Database.User == "" || c.Database.Password == "" || c.Database.Name == "" {
		errs = append(errs, errors.New("database PG_USER, PG_PASSWORD and PG_DBNAME are required for the remote backend"))
	}

	if c.Security.JWTKey == "" {
		errs = append(errs, errors.New("security JWT_KEY is required for the remote backend"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsRemote() bool {
	return c.Backend == BackendRemote
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}

// AllowList returns the admin emails lower-cased and trimmed, blanks dropped.
func (a *Admin) AllowList() []string {

	var emails []string

	for _, e := range strings.Split(a.Emails, ",") {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			emails = append(emails, e)
		}
	}

	return emails
}

func (s *Security) JWTExpiry() time.Duration {
	return time.Duration(s.JWTExpiryHours) * time.Hour
}
