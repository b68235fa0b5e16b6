package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/place-resolver/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

type Redis struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedis - подключение к Redis для кеша ответов провайдеров
func NewRedis(cfg *config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	client, err := connect(cfg.Host, cfg.Port, cfg.Password, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
	)

	return &Redis{
		client: client,
		logger: logger,
	}, nil
}

// NewRedisStreams - клиент для стрима заданий записи в кеш геокодирования.
// Может указывать на тот же Redis, что и кеш ответов.
func NewRedisStreams(cfg *config.RedisStreamsConfig, logger *zap.Logger) (*redis.Client, error) {
	client, err := connect(cfg.Host, cfg.Port, cfg.Password, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis streams: %w", err)
	}

	logger.Info("Redis Streams connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Int("db", cfg.DB),
	)

	return client, nil
}

// NewRedisFromClient оборачивает уже созданный клиент
func NewRedisFromClient(client *redis.Client, logger *zap.Logger) *Redis {
	return &Redis{client: client, logger: logger}
}

// connect создаёт клиент и проверяет соединение
func connect(host string, port int, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (r *Redis) Close() error {
	r.logger.Info("Closing Redis connection")
	return r.client.Close()
}

func (r *Redis) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Client() *redis.Client {
	return r.client
}
