package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Drivers de storage soportados.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

type Config struct {
	Port string `yaml:"port"`

	Store    string         `yaml:"store"` // vacío = se resuelve por DSN/URI
	Postgres PostgresConfig `yaml:"postgres"`
	Mongo    MongoConfig    `yaml:"mongo"`

	Auth     AuthConfig     `yaml:"auth"`
	Identity IdentityConfig `yaml:"identity"`

	RateLimit    RateLimitConfig `yaml:"rate_limit"`
	CORS         CORSConfig      `yaml:"cors"`
	RevokePolicy string          `yaml:"revoke_policy"`

	Log LogConfig `yaml:"log"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"` // vacío = modo dev (header X-Wallet-Address)
	JWTIssuer string `yaml:"jwt_issuer"`
}

type IdentityConfig struct {
	RegistryURL string        `yaml:"registry_url"`
	APIKey      string        `yaml:"api_key"`
	Timeout     time.Duration `yaml:"timeout"`
	// EnforceRoles activa el chequeo patient/provider al crear grants.
	EnforceRoles bool `yaml:"enforce_roles"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"` // <= 0 desactiva
	Burst int     `yaml:"burst"`
}

type CORSConfig struct {
	// AllowedOrigins vacío o con "*" = cualquier origen.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

func Default() Config {
	return Config{
		Port:            "8080",
		Mongo:           MongoConfig{Database: "health_records"},
		Identity:        IdentityConfig{Timeout: 5 * time.Second},
		RateLimit:       RateLimitConfig{RPS: 0, Burst: 20},
		RevokePolicy:    "any",
		CORS:            CORSConfig{AllowedOrigins: []string{"*"}},
		Log:             LogConfig{Level: "info", Format: "text", App: "health-records-access"},
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load: defaults, después el YAML (si path no es vacío), después env.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	str("PORT", &cfg.Port)
	str("STORE", &cfg.Store)
	str("DB_DSN", &cfg.Postgres.DSN)
	str("MONGO_URI", &cfg.Mongo.URI)
	str("MONGO_DB", &cfg.Mongo.Database)
	str("AUTH_JWT_SECRET", &cfg.Auth.JWTSecret)
	str("AUTH_JWT_ISSUER", &cfg.Auth.JWTIssuer)
	str("IDENTITY_REGISTRY_URL", &cfg.Identity.RegistryURL)
	str("IDENTITY_REGISTRY_API_KEY", &cfg.Identity.APIKey)
	str("REVOKE_POLICY", &cfg.RevokePolicy)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("APP_NAME", &cfg.Log.App)

	if v := strings.TrimSpace(getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORS.AllowedOrigins = origins
	}

	if v := strings.TrimSpace(getenv("IDENTITY_ENFORCE_ROLES")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("IDENTITY_ENFORCE_ROLES: %w", err)
		}
		cfg.Identity.EnforceRoles = b
	}
	if v := strings.TrimSpace(getenv("RATE_LIMIT_RPS")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimit.RPS = f
	}
	if v := strings.TrimSpace(getenv("RATE_LIMIT_BURST")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_BURST: %w", err)
		}
		cfg.RateLimit.Burst = n
	}
	return nil
}

// StoreDriver resuelve el storage: explícito, o postgres si hay DSN, o mongo si hay URI, o memoria.
func (c Config) StoreDriver() string {
	if s := strings.ToLower(strings.TrimSpace(c.Store)); s != "" {
		return s
	}
	switch {
	case c.Postgres.DSN != "":
		return StorePostgres
	case c.Mongo.URI != "":
		return StoreMongo
	default:
		return StoreMemory
	}
}

func (c Config) Validate() error {
	var errs []error

	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("port %q is not a number", c.Port))
	}

	switch c.StoreDriver() {
	case StoreMemory:
	case StorePostgres:
		if c.Postgres.DSN == "" {
			errs = append(errs, errors.New("store postgres requires postgres.dsn (DB_DSN)"))
		}
	case StoreMongo:
		if c.Mongo.URI == "" {
			errs = append(errs, errors.New("store mongo requires mongo.uri (MONGO_URI)"))
		}
		if c.Mongo.Database == "" {
			errs = append(errs, errors.New("store mongo requires mongo.database (MONGO_DB)"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}

	if c.Identity.EnforceRoles && c.Identity.RegistryURL == "" {
		errs = append(errs, errors.New("identity.enforce_roles requires identity.registry_url"))
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("rate_limit.burst must be > 0 when rps is set"))
	}

	return errors.Join(errs...)
}
