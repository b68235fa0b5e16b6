package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultBlock   = time.Second
	readBatch      = 10
	maxStreamLen   = 100000
	dataField      = "data"
	busyGroupError = "BUSYGROUP"
)

type streamRepository struct {
	client *redis.Client
	block  time.Duration
	logger *zap.Logger
}

// NewStreamRepository создает новый экземпляр StreamRepository.
// block - сколько XREADGROUP ждёт новых сообщений за одну итерацию.
func NewStreamRepository(client *redis.Client, block time.Duration, logger *zap.Logger) repository.StreamRepository {
	if block <= 0 {
		block = defaultBlock
	}
	return &streamRepository{
		client: client,
		block:  block,
		logger: logger,
	}
}

// CreateConsumerGroup создаёт consumer group, стрим создаётся при необходимости (MKSTREAM)
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), busyGroupError) {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeStream читает сообщения группы. Сначала отдаются сообщения, полученные этим
// consumer'ом ранее и не подтверждённые (после рестарта), затем новые.
func (r *streamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	msgChan := make(chan domain.StreamMessage, readBatch)

	go func() {
		defer close(msgChan)

		// "0" - собственные pending сообщения, ">" - новые
		lastID := "0"

		for {
			if ctx.Err() != nil {
				r.logger.Info("Stream consumer stopped",
					zap.String("stream", stream),
					zap.String("consumer", consumer))
				return
			}

			result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    group,
				Consumer: consumer,
				Streams:  []string{stream, lastID},
				Count:    readBatch,
				Block:    r.block,
			}).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				r.logger.Error("Failed to read from stream",
					zap.String("stream", stream),
					zap.Error(err))
				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
					return
				}
				continue
			}

			delivered := 0
			for _, s := range result {
				for _, msg := range s.Messages {
					delivered++
					data, ok := msg.Values[dataField].(string)
					if !ok {
						r.logger.Warn("Message does not contain data field, acknowledging",
							zap.String("message_id", msg.ID))
						_ = r.AckMessage(ctx, stream, group, msg.ID)
						continue
					}

					select {
					case msgChan <- domain.StreamMessage{ID: msg.ID, Data: data}:
					case <-ctx.Done():
						return
					}
				}
			}

			if lastID == "0" && delivered == 0 {
				lastID = ">"
			}
		}
	}()

	return msgChan, nil
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}

	r.logger.Debug("Message acknowledged", zap.String("message_id", messageID))
	return nil
}

// Backlog возвращает размер PEL группы
func (r *streamRepository) Backlog(ctx context.Context, stream, group string) (int64, error) {
	pending, err := r.client.XPending(ctx, stream, group).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get pending summary: %w", err)
	}
	return pending.Count, nil
}

// PublishToStream публикует JSON в поле data, длина стрима ограничена приблизительно
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		r.logger.Error("Failed to marshal data",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: map[string]interface{}{
			dataField: string(payload),
		},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published to stream",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}
