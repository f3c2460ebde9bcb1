package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	Env       string    `yaml:"env" env:"APP_ENV" env-default:"local"`
	Server    Server    `yaml:"server"`
	Postgres  Postgres  `yaml:"postgres"`
	Auth      Auth      `yaml:"auth"`
	Storage   Storage   `yaml:"storage"`
	Redis     Redis     `yaml:"redis"`
	RateLimit RateLimit `yaml:"rate_limit"`
}

type Server struct {
	Host            string        `yaml:"host" env:"SERVER_HOST" env-default:"localhost"`
	Port            string        `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
	CORSOrigins     []string      `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

func (s Server) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

type Postgres struct {
	Username        string        `env:"POSTGRES_USER" env-required:"true"`
	Password        string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Host            string        `yaml:"host" env:"POSTGRES_HOST" env-required:"true"`
	Port            string        `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	Database        string        `yaml:"database" env:"POSTGRES_DB" env-required:"true"`
	SSLMode         string        `yaml:"sslmode" env:"POSTGRES_SSLMODE" env-default:"disable"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"50"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"10"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env-default:"1m"`
}

// DSN builds a postgres:// URL usable by both lib/pq and golang-migrate.
func (p Postgres) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.Username, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     p.Database,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}

	return u.String()
}

type Auth struct {
	JWTSecret      string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL       time.Duration `yaml:"token_ttl" env:"JWT_TTL" env-default:"24h"`
	Issuer         string        `yaml:"issuer" env-default:"fraud-registry"`
	GoogleClientID string        `yaml:"google_client_id" env:"GOOGLE_CLIENT_ID"`
}

type Storage struct {
	Mode          string `yaml:"mode" env:"STORAGE_MODE" env-default:"local"`
	LocalDir      string `yaml:"local_dir" env:"STORAGE_LOCAL_DIR" env-default:"./uploads/images"`
	PublicBaseURL string `yaml:"public_base_url" env:"STORAGE_PUBLIC_BASE_URL" env-default:"http://localhost:8080/uploads/images"`
	S3            S3     `yaml:"s3"`
}

type S3 struct {
	Bucket       string `yaml:"bucket" env:"S3_BUCKET"`
	Region       string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	Endpoint     string `yaml:"endpoint" env:"S3_ENDPOINT"`
	AccessKey    string `env:"S3_ACCESS_KEY"`
	SecretKey    string `env:"S3_SECRET_KEY"`
	PublicDomain string `yaml:"public_domain" env:"S3_PUBLIC_DOMAIN"`
	Prefix       string `yaml:"prefix" env:"S3_PREFIX" env-default:"reports"`
}

type Redis struct {
	Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Limit struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

type RateLimit struct {
	Login  Limit `yaml:"login"`
	Submit Limit `yaml:"submit"`
	Search Limit `yaml:"search"`
}

func Load() (*Config, error) {
	configPath, err := resolvePath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	cfg.RateLimit.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadPostgres reads only the database section, for tools that do not
// need auth or storage settings.
func LoadPostgres() (*Postgres, error) {
	configPath, err := resolvePath()
	if err != nil {
		return nil, err
	}

	var cfg struct {
		Postgres Postgres `yaml:"postgres"`
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg.Postgres, nil
}

func resolvePath() (string, error) {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("cannot load .env: %w", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return "", errors.New("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); err != nil {
		return "", fmt.Errorf("config file does not exist: %w", err)
	}

	return configPath, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}

func (c *Config) validate() error {
	switch c.Storage.Mode {
	case StorageLocal:
	case StorageS3:
		if c.Storage.S3.Bucket == "" {
			return errors.New("storage.s3.bucket is required in s3 mode")
		}
	default:
		return fmt.Errorf("unknown storage mode %q", c.Storage.Mode)
	}

	if len(c.Auth.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 bytes")
	}

	return nil
}

func (r *RateLimit) applyDefaults() {
	fill := func(l *Limit, requests int, window time.Duration) {
		if l.Requests <= 0 {
			l.Requests = requests
		}

		if l.Window <= 0 {
			l.Window = window
		}
	}

	fill(&r.Login, 10, time.Minute)
	fill(&r.Submit, 5, time.Hour)
	fill(&r.Search, 60, time.Minute)
}
