// Package config предоставляет структуры и функции для загрузки конфига сервиса.
// Конфиг читается из YAML-файла по пути CONFIG_PATH, переменные окружения
// переопределяют значения из файла. Без CONFIG_PATH читается только окружение.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Драйверы документного хранилища.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Хранилища счётчиков ограничения частоты запросов.
const (
	RateLimitMemory = "memory"
	RateLimitRedis  = "redis"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string          `yaml:"env" env:"ENV" env-default:"local"`
	Storage         Storage         `yaml:"storage"`
	RedisConnection RedisConnection `yaml:"redis_connection"`
	RabbitMQ        RabbitMQ        `yaml:"rabbitmq"`
	HTTPServer      HTTPServer      `yaml:"http_server"`
	GRPCServer      GRPCServer      `yaml:"grpc_server"`
	JWTToken        JWTToken        `yaml:"jwttoken"`
	RateLimit       RateLimit       `yaml:"rate_limit"`
	CORS            CORS            `yaml:"cors"`
}

// Storage настройки документного хранилища
type Storage struct {
	Driver         string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"mongo"`
	MongoURI       string        `yaml:"mongodb_uri" env:"MONGODB_URI" env-default:"mongodb://localhost:27017"`
	MongoDatabase  string        `yaml:"mongodb_database" env:"MONGODB_DATABASE" env-default:"oforha-ai"`
	Timeout        time.Duration `yaml:"timeout" env:"STORAGE_TIMEOUT" env-default:"10s"`
	PostgresDSN    string        `yaml:"postgres_dsn" env:"POSTGRES_DSN"`
	MigrationsPath string        `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кэш профилей и общий лимитер.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDR"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT"`
	ProfileTTL   time.Duration `yaml:"profile_ttl" env:"REDIS_PROFILE_TTL" env-default:"5m"`
}

// RabbitMQ настройки публикации событий. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL            string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange       string        `yaml:"exchange" env:"RABBITMQ_EXCHANGE" env-default:"oforha.events"`
	ConnectRetries int           `yaml:"connect_retries" env:"RABBITMQ_CONNECT_RETRIES" env-default:"5"`
	RetryDelay     time.Duration `yaml:"retry_delay" env:"RABBITMQ_RETRY_DELAY" env-default:"2s"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":4000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// GRPCServer настройки gRPC health-сервера. Пустой адрес отключает сервер.
type GRPCServer struct {
	AddressGRPC   string        `yaml:"addressgrpc" env:"GRPC_ADDRESS"`
	ProbeInterval time.Duration `yaml:"probe_interval" env:"GRPC_PROBE_INTERVAL" env-default:"15s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"24h"`
}

// RateLimit настройки ограничения частоты запросов по IP клиента.
type RateLimit struct {
	Disabled bool   `yaml:"disabled" env:"RATE_LIMIT_DISABLED"`
	Storage  string `yaml:"storage" env:"RATE_LIMIT_STORAGE" env-default:"memory"`
	Default  string `yaml:"default" env:"RATE_LIMIT_DEFAULT" env-default:"200 per day;50 per hour"`
	Health   string `yaml:"health" env:"RATE_LIMIT_HEALTH" env-default:"30 per minute"`
	MaxKeys  int    `yaml:"max_keys" env:"RATE_LIMIT_MAX_KEYS" env-default:"10000"`
}

// CORS настройки кросс-доменных запросов.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}

// Load читает конфиг и проверяет его согласованность.
func Load() (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("%s: config file %s: %w", op, configPath, err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.HTTPServer.AddressHTTP = ":" + port
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverMongo:
		if c.Storage.MongoURI == "" {
			return errors.New("storage.mongodb_uri is required for mongo driver")
		}
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			return errors.New("storage.postgres_dsn is required for postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.GRPCServer.AddressGRPC != "" && c.GRPCServer.ProbeInterval <= 0 {
		return fmt.Errorf("grpc_server.probe_interval must be positive, got %s", c.GRPCServer.ProbeInterval)
	}

	switch c.RateLimit.Storage {
	case RateLimitMemory, RateLimitRedis:
	default:
		return fmt.Errorf("unknown rate limit storage %q", c.RateLimit.Storage)
	}
	return nil
}

// RedisEnabled сообщает, задано ли подключение к redis.
func (c *Config) RedisEnabled() bool {
	return c.RedisConnection.AddressRedis != ""
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Storage:\n"+
			"  Driver: %s\n"+
			"  MongoURI: %s\n"+
			"  MongoDatabase: %s\n"+
			"  PostgresDSN: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  Password: %s\n"+
			"  User: %s\n"+
			"  DB: %d\n"+
			"RabbitMQ:\n"+
			"  URL: %s\n"+
			"  Exchange: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"GRPCServer:\n"+
			"  Address: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"RateLimit:\n"+
			"  Storage: %s\n"+
			"  Default: %s\n"+
			"  Health: %s\n"+
			"CORS:\n"+
			"  AllowedOrigins: %s\n",
		c.Env,
		c.Storage.Driver,
		maskURL(c.Storage.MongoURI),
		c.Storage.MongoDatabase,
		maskURL(c.Storage.PostgresDSN),
		c.RedisConnection.AddressRedis,
		mask(c.RedisConnection.Password),
		c.RedisConnection.User,
		c.RedisConnection.DB,
		maskURL(c.RabbitMQ.URL),
		c.RabbitMQ.Exchange,
		c.HTTPServer.AddressHTTP,
		c.HTTPServer.TimeoutHTTP,
		c.HTTPServer.IdleTimeout,
		c.GRPCServer.AddressGRPC,
		mask(c.JWTToken.JWTSecretKey),
		c.JWTToken.TokenTTL,
		c.RateLimit.Storage,
		c.RateLimit.Default,
		c.RateLimit.Health,
		strings.Join(c.CORS.AllowedOrigins, ","),
	)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}

var passwordPair = regexp.MustCompile(`(?i)(password\s*=\s*)('(?:[^'\\]|\\.)*'|[^\s&]+)`)

// maskURL скрывает учётные данные в строке подключения: user:pass@ в URL
// и пары password=... в DSN вида key=value и в параметрах запроса.
func maskURL(raw string) string {
	masked := passwordPair.ReplaceAllString(raw, "${1}***")
	schemeEnd := strings.Index(masked, "://")
	at := strings.LastIndex(masked, "@")
	if schemeEnd < 0 || at < schemeEnd {
		return masked
	}
	return masked[:schemeEnd+3] + "***" + masked[at:]
}
