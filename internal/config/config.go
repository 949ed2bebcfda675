// Package config предоставляет структуры и функцию для загрузки конфига dashboard-shell.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Хранилища записей гейта.
const (
	GateStoreMemory   = "memory"
	GateStoreRedis    = "redis"
	GateStorePostgres = "postgres"
	GateStoreSQLite   = "sqlite"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	AttendanceAPI           `yaml:"attendance_api"`
	Gate                    `yaml:"gate"`
	RabbitMQ                `yaml:"rabbitmq"`
	NATS                    `yaml:"nats"`
	Dashboard               `yaml:"dashboard"`
	Session                 `yaml:"session"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	RateLimit   float64       `yaml:"rate_limit" env-default:"20"`
	RateBurst   int           `yaml:"rate_burst" env-default:"40"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес: redis не используется.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// AttendanceAPI: удалённый API посещаемости и статистики дашборда.
type AttendanceAPI struct {
	BaseURL      string        `yaml:"base_url" env-required:"true"`
	ServiceToken string        `yaml:"service_token"`
	TimeoutAPI   time.Duration `yaml:"timeoutapi" env-default:"10s"`
}

// Gate: настройки ежедневного гейта.
type Gate struct {
	Store        string        `yaml:"store" env-default:"memory"`
	RecordTTL    time.Duration `yaml:"record_ttl" env-default:"48h"`
	CheckTimeout time.Duration `yaml:"check_timeout" env-default:"5s"`
	SQLitePath   string        `yaml:"sqlite_path" env-default:"./dashboard-shell.db"`
}

// RabbitMQ: брокер для команд рассылок. Пустой URL: рассылки недоступны.
type RabbitMQ struct {
	URL        string        `yaml:"url"`
	Retries    int           `yaml:"retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// NATS: альтернативный брокер для команд рассылок.
type NATS struct {
	NATSURL       string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix" env-default:"dashboard"`
}

// Dashboard: настройки страницы дашборда.
type Dashboard struct {
	StatsTTL time.Duration `yaml:"stats_ttl" env-default:"30s"`
}

// Session: настройки сессий гейта.
type Session struct {
	MaxAge        time.Duration `yaml:"max_age" env-default:"12h"`
	SweepInterval time.Duration `yaml:"sweep_interval" env-default:"10m"`
}

// PathFromEnv возвращает путь к конфигу из CONFIG_PATH.
func PathFromEnv() string {
	return os.Getenv("CONFIG_PATH")
}

// MustLoad загружает конфиг из файла, путь к которому лежит в CONFIG_PATH.
func MustLoad() *Config {
	configPath := PathFromEnv()
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает и проверяет конфиг по указанному пути.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Gate.Store {
	case GateStoreMemory:
	case GateStoreRedis:
		if c.AddressRedis == "" {
			return fmt.Errorf("gate store %q requires redis_connection.addressredis", c.Gate.Store)
		}
	case GateStorePostgres:
		if c.StorageConnectionString == "" {
			return fmt.Errorf("gate store %q requires storage_connection_string", c.Gate.Store)
		}
	case GateStoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("gate store %q requires gate.sqlite_path", c.Gate.Store)
		}
	default:
		return fmt.Errorf("unknown gate store %q", c.Gate.Store)
	}
	if c.RabbitMQ.URL != "" && c.NATSURL != "" {
		return fmt.Errorf("configure only one broadcast broker: rabbitmq or nats")
	}
	return nil
}

// String печатает конфиг без секретов.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"AttendanceAPI:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"Gate:\n"+
			"  Store: %s\n"+
			"  RecordTTL: %s\n"+
			"  CheckTimeout: %s\n"+
			"RabbitMQ configured: %t\n"+
			"NATS configured: %t\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.AddressRedis,
		c.DB,
		c.BaseURL,
		c.TimeoutAPI,
		c.Gate.Store,
		c.RecordTTL,
		c.CheckTimeout,
		c.RabbitMQ.URL != "",
		c.NATSURL != "",
	)
}
