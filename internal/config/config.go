package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	OSMDB        DatabaseConfig
	Redis        RedisConfig
	RedisStreams RedisStreamsConfig
	Cache        CacheConfig
	Log          LogConfig
	Providers    ProvidersConfig
	Resolver     ResolverConfig
	Ranking      RankingConfig
	Worker       WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
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

// RedisStreamsConfig - отдельный Redis для стримов (может совпадать с основным)
type RedisStreamsConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	SearchCacheTTL time.Duration
	// WriteMode - способ заполнения кеша обратного геокодирования: inline | stream
	WriteMode string
}

type LogConfig struct {
	Level string
}

// ProvidersConfig - настройки внешних геокодеров
type ProvidersConfig struct {
	GoogleAPIKey     string
	GoogleBaseURL    string
	NominatimBaseURL string
	NominatimEmail   string
	UserAgent        string
	RequestTimeout   time.Duration
	CountryCode      string
	Region           BoundingBox
}

// BoundingBox - зона обслуживания, которой ограничиваются ответы провайдеров
type BoundingBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}

// Contains - точка внутри bbox; пустой bbox содержит любую точку
func (b BoundingBox) Contains(lat, lon float64) bool {
	if b.IsZero() {
		return true
	}
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// ResolverConfig - параметры агрегации кандидатов
type ResolverConfig struct {
	CoverageThreshold int
	SearchRadiusKm    float64
	DefaultLimit      int
	MaxLimit          int
}

// RankingConfig - настраиваемые константы ранжирования
type RankingConfig struct {
	ProximityWindowKm float64
	PopularityCeiling float64
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

const (
	CacheWriteInline = "inline"
	CacheWriteStream = "stream"

	maxUserAgentLength = 64
)

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env необязателен: в контейнере всё приходит через окружение
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
			// список через запятую
			CORSOrigins: viper.GetString("API_CORS_ORIGINS"),
		},
		Database: loadDatabase("DB"),
		OSMDB:    loadDatabase("OSM_DB"),
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RedisStreams: RedisStreamsConfig{
			Host:     viper.GetString("REDIS_STREAMS_HOST"),
			Port:     viper.GetInt("REDIS_STREAMS_PORT"),
			Password: viper.GetString("REDIS_STREAMS_PASSWORD"),
			DB:       viper.GetInt("REDIS_STREAMS_DB"),
		},
		Cache: CacheConfig{
			SearchCacheTTL: time.Duration(viper.GetInt("SEARCH_CACHE_TTL")) * time.Second,
			WriteMode:      strings.ToLower(viper.GetString("CACHE_WRITE_MODE")),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Providers: ProvidersConfig{
			GoogleAPIKey:     viper.GetString("GOOGLE_API_KEY"),
			GoogleBaseURL:    viper.GetString("GOOGLE_BASE_URL"),
			NominatimBaseURL: viper.GetString("NOMINATIM_BASE_URL"),
			NominatimEmail:   viper.GetString("NOMINATIM_EMAIL"),
			UserAgent:        viper.GetString("PROVIDER_USER_AGENT"),
			RequestTimeout:   time.Duration(viper.GetInt("PROVIDER_TIMEOUT")) * time.Second,
			CountryCode:      strings.ToLower(viper.GetString("PROVIDER_COUNTRY_CODE")),
			Region:           parseBoundingBox(viper.GetString("PROVIDER_REGION_BBOX")),
		},
		Resolver: ResolverConfig{
			CoverageThreshold: viper.GetInt("RESOLVER_COVERAGE_THRESHOLD"),
			SearchRadiusKm:    viper.GetFloat64("RESOLVER_SEARCH_RADIUS_KM"),
			DefaultLimit:      viper.GetInt("RESOLVER_DEFAULT_LIMIT"),
			MaxLimit:          viper.GetInt("RESOLVER_MAX_LIMIT"),
		},
		Ranking: RankingConfig{
			ProximityWindowKm: viper.GetFloat64("RANKING_PROXIMITY_WINDOW_KM"),
			PopularityCeiling: viper.GetFloat64("RANKING_POPULARITY_CEILING"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	cfg.applyDefaults()

	return cfg, nil
}

func loadDatabase(prefix string) DatabaseConfig {
	return DatabaseConfig{
		Host:            viper.GetString(prefix + "_HOST"),
		Port:            viper.GetInt(prefix + "_PORT"),
		User:            viper.GetString(prefix + "_USER"),
		Password:        viper.GetString(prefix + "_PASSWORD"),
		DBName:          viper.GetString(prefix + "_NAME"),
		SSLMode:         viper.GetString(prefix + "_SSLMODE"),
		MaxConns:        viper.GetInt(prefix + "_MAX_CONNS"),
		MaxIdleConns:    viper.GetInt(prefix + "_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt(prefix+"_CONN_MAX_LIFETIME")) * time.Second,
		ConnMaxIdleTime: time.Duration(viper.GetInt(prefix+"_CONN_MAX_IDLE_TIME")) * time.Second,
	}
}

// applyDefaults - значения по умолчанию, если не заданы в окружении
func (c *Config) applyDefaults() {
	if c.Cache.SearchCacheTTL == 0 {
		c.Cache.SearchCacheTTL = 10 * time.Minute
	}
	if c.Cache.WriteMode != CacheWriteStream {
		c.Cache.WriteMode = CacheWriteInline
	}

	if c.RedisStreams.Host == "" {
		c.RedisStreams = RedisStreamsConfig(c.Redis)
	}

	if c.Providers.GoogleBaseURL == "" {
		c.Providers.GoogleBaseURL = "https://maps.googleapis.com/maps/api"
	}
	if c.Providers.NominatimBaseURL == "" {
		c.Providers.NominatimBaseURL = "https://nominatim.openstreetmap.org"
	}
	if c.Providers.UserAgent == "" {
		c.Providers.UserAgent = "place-resolver/1.0"
	}
	if len(c.Providers.UserAgent) > maxUserAgentLength {
		c.Providers.UserAgent = c.Providers.UserAgent[:maxUserAgentLength]
	}
	if c.Providers.RequestTimeout == 0 {
		c.Providers.RequestTimeout = 5 * time.Second
	}
	if c.Providers.CountryCode == "" {
		c.Providers.CountryCode = "ph"
	}
	if c.Providers.Region.IsZero() {
		// Philippines
		c.Providers.Region = BoundingBox{MinLat: 4.5, MinLon: 116.9, MaxLat: 21.2, MaxLon: 126.7}
	}

	if c.Resolver.CoverageThreshold == 0 {
		c.Resolver.CoverageThreshold = 5
	}
	if c.Resolver.SearchRadiusKm == 0 {
		c.Resolver.SearchRadiusKm = 50
	}
	if c.Resolver.DefaultLimit == 0 {
		c.Resolver.DefaultLimit = 10
	}
	if c.Resolver.MaxLimit == 0 {
		c.Resolver.MaxLimit = 50
	}

	if c.Ranking.ProximityWindowKm == 0 {
		c.Ranking.ProximityWindowKm = 20
	}
	if c.Ranking.PopularityCeiling == 0 {
		c.Ranking.PopularityCeiling = 1000
	}

	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "geocode-cache-workers"
	}
	if c.Worker.StreamReadTimeout == 0 {
		c.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
}

// parseBoundingBox разбирает строку вида "minLat,minLon,maxLat,maxLon"
func parseBoundingBox(s string) BoundingBox {
	if s == "" {
		return BoundingBox{}
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BoundingBox{}
	}

	values := make([]float64, 0, 4)
	for _, p := range parts {
		var v float64
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%g", &v); err != nil {
			return BoundingBox{}
		}
		values = append(values, v)
	}

	return BoundingBox{MinLat: values[0], MinLon: values[1], MaxLat: values[2], MaxLon: values[3]}
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
