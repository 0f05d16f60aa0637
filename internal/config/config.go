package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Worker    WorkerConfig
	Discovery DiscoveryConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	SearchCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

// DetailBand - полоса уровней детализации: начиная с MinDetail действуют
// данный радиус поиска и лимит результатов
type DetailBand struct {
	MinDetail int
	RadiusKm  float64
	Cap       int
}

// DiscoveryConfig - единая таблица настройки плотности выдачи.
// Серверные радиусы/лимиты и клиентский порог кластеризации читаются из одной
// таблицы, чтобы два слоя не могли разъехаться при ручной подстройке.
type DiscoveryConfig struct {
	// Bands отсортированы по MinDetail по убыванию, первая подошедшая выигрывает
	Bands []DetailBand

	// Ниже этого уровня детализации работает grid-агрегация вместо прямой выдачи
	GridDetailThreshold int

	// Начиная с этого уровня детализации ячейка сетки округляется до 2 знаков,
	// ниже - до 1 знака
	GridFineDetail int

	// Максимум позиций одной категории в ленточной (list) выдаче
	LimitPerCategory int

	// Базовая единица порога кластеризации в градусах; порог = base / 2^detail
	ClusterBaseUnit float64

	// Начиная с этого уровня детализации маркеры не кластеризуются вовсе
	ExpandedDetail int

	// Прибавка к уровню детализации при раскрытии кластера
	ExpansionStep int

	// Верхняя граница уровня детализации карты
	MaxDetail int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			SearchCacheTTL: time.Duration(viper.GetInt("SEARCH_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
		Discovery: DefaultDiscovery(),
	}

	// Set default values if not provided
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "discovery-cache-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}
	if cfg.Cache.SearchCacheTTL == 0 {
		cfg.Cache.SearchCacheTTL = 60 * time.Second
	}

	// Scalar discovery knobs are overridable, the band table is a code artifact
	if v := viper.GetInt("DISCOVERY_LIMIT_PER_CATEGORY"); v > 0 {
		cfg.Discovery.LimitPerCategory = v
	}
	if v := viper.GetFloat64("DISCOVERY_CLUSTER_BASE_UNIT"); v > 0 {
		cfg.Discovery.ClusterBaseUnit = v
	}
	if v := viper.GetInt("DISCOVERY_EXPANDED_DETAIL"); v > 0 {
		cfg.Discovery.ExpandedDetail = v
	}

	return cfg, nil
}

// DefaultDiscovery возвращает таблицу настройки плотности по умолчанию
func DefaultDiscovery() DiscoveryConfig {
	return DiscoveryConfig{
		Bands: []DetailBand{
			{MinDetail: 11, RadiusKm: 500, Cap: 200},
			{MinDetail: 8, RadiusKm: 2000, Cap: 1000},
			{MinDetail: 0, RadiusKm: 20000, Cap: 5000}, // effectively global
		},
		GridDetailThreshold: 10,
		GridFineDetail:      7,
		LimitPerCategory:    5,
		ClusterBaseUnit:     10.0,
		ExpandedDetail:      14,
		ExpansionStep:       3,
		MaxDetail:           18,
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
