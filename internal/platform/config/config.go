// Package config loads process configuration from an optional YAML file and
// environment variables. Environment variables always win over the file.
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

const (
	// LimitPaginate is the page size used when the caller does not send a limit.
	LimitPaginate = 10

	defaultCacheTTLMin = 2419200 * time.Second // 28 days
	defaultCacheTTLMax = 4838400 * time.Second // 56 days
)

// Config is the root configuration of the server process.
type Config struct {
	Env      string         `yaml:"env"`
	HTTPAddr string         `yaml:"http_addr"`
	DB       DBConfig       `yaml:"db"`
	Redis    RedisConfig    `yaml:"redis"`
	Cache    CacheConfig    `yaml:"cache"`
	JWT      JWTConfig      `yaml:"jwt"`
	CORS     CORSConfig     `yaml:"cors"`
	Paginate PaginateConfig `yaml:"paginate"`
	Auth     AuthConfig     `yaml:"auth"`
}

type DBConfig struct {
	Driver        string `yaml:"driver"` // postgres or sqlite
	Host          string `yaml:"host"`
	Port          string `yaml:"port"`
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	Name          string `yaml:"name"`
	SSLMode       string `yaml:"sslmode"`
	Path          string `yaml:"path"` // sqlite file
	RunMigrations bool   `yaml:"run_migrations"`
}

type RedisConfig struct {
	Host     string        `yaml:"host"`
	Port     string        `yaml:"port"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Namespace string        `yaml:"namespace"`
	TTLMin    time.Duration `yaml:"ttl_min"`
	TTLMax    time.Duration `yaml:"ttl_max"`
}

type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	Expiration time.Duration `yaml:"expiration"`
	RememberMe time.Duration `yaml:"remember_me"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type PaginateConfig struct {
	Limit int `yaml:"limit"`
}

// AuthConfig controls the per client rate limit on /login and /signup.
type AuthConfig struct {
	RateLimit int           `yaml:"rate_limit"`
	RateEvery time.Duration `yaml:"rate_every"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Env:      "production",
		HTTPAddr: ":8080",
		DB: DBConfig{
			Driver:  "postgres",
			Host:    "localhost",
			Port:    "5432",
			SSLMode: "disable",
			Path:    "./admin.db",
		},
		Redis: RedisConfig{
			Host:    "localhost",
			Port:    "6379",
			Timeout: 3 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTLMin:  defaultCacheTTLMin,
			TTLMax:  defaultCacheTTLMax,
		},
		JWT: JWTConfig{
			Expiration: time.Hour,
			RememberMe: 7 * 24 * time.Hour,
		},
		Paginate: PaginateConfig{Limit: LimitPaginate},
		Auth: AuthConfig{
			RateLimit: 10,
			RateEvery: time.Minute,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := parseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	str("APP_ENV", &cfg.Env)
	str("HTTP_ADDR", &cfg.HTTPAddr)

	str("DB_DRIVER", &cfg.DB.Driver)
	str("DB_HOST", &cfg.DB.Host)
	str("DB_PORT", &cfg.DB.Port)
	str("DB_USER", &cfg.DB.User)
	str("DB_PASSWORD", &cfg.DB.Password)
	str("DB_NAME", &cfg.DB.Name)
	str("DB_SSLMODE", &cfg.DB.SSLMode)
	str("DB_PATH", &cfg.DB.Path)
	boolean("RUN_MIGRATIONS", &cfg.DB.RunMigrations)

	str("REDIS_HOST", &cfg.Redis.Host)
	str("REDIS_PORT", &cfg.Redis.Port)
	str("REDIS_PASSWORD", &cfg.Redis.Password)
	integer("REDIS_DB", &cfg.Redis.DB)
	duration("REDIS_TIMEOUT", &cfg.Redis.Timeout)

	boolean("CACHE_ENABLED", &cfg.Cache.Enabled)
	str("CACHE_NAMESPACE", &cfg.Cache.Namespace)
	duration("CACHE_TTL_MIN", &cfg.Cache.TTLMin)
	duration("CACHE_TTL_MAX", &cfg.Cache.TTLMax)

	str("JWT_SECRET", &cfg.JWT.Secret)
	duration("JWT_EXPIRATION", &cfg.JWT.Expiration)
	duration("JWT_REMEMBER_ME", &cfg.JWT.RememberMe)

	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		cfg.CORS.AllowedOrigins = splitList(v)
	}

	integer("PAGINATE_LIMIT", &cfg.Paginate.Limit)
	integer("AUTH_RATE_LIMIT", &cfg.Auth.RateLimit)
	duration("AUTH_RATE_EVERY", &cfg.Auth.RateEvery)

	return errors.Join(errs...)
}

// parseDuration accepts Go durations ("90s") and bare seconds ("2419200").
func parseDuration(v string) (time.Duration, error) {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsDevelopment reports whether the process runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

// Validate checks invariants that would otherwise fail at request time.
func (c Config) Validate() error {
	var errs []error
	if c.JWT.Secret == "" && !c.IsDevelopment() {
		errs = append(errs, errors.New("JWT_SECRET is required outside development"))
	}
	if c.JWT.Expiration <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION must be positive"))
	}
	if c.Cache.TTLMin <= 0 || c.Cache.TTLMax < c.Cache.TTLMin {
		errs = append(errs, fmt.Errorf("invalid cache TTL window [%s, %s]", c.Cache.TTLMin, c.Cache.TTLMax))
	}
	if c.Paginate.Limit <= 0 {
		errs = append(errs, errors.New("PAGINATE_LIMIT must be positive"))
	}
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver))
	}
	return errors.Join(errs...)
}
