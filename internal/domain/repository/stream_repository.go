package repository

import (
	"context"

	"github.com/place-resolver/internal/domain"
)

// StreamRepository - очередь заданий на Redis Streams с consumer group
type StreamRepository interface {
	// CreateConsumerGroup идемпотентна, стрим создаётся при необходимости
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeStream отдаёт сначала неподтверждённые сообщения consumer'а, затем новые.
	// Канал закрывается при отмене ctx.
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	AckMessage(ctx context.Context, stream, group, messageID string) error

	// PublishToStream сериализует data в JSON
	PublishToStream(ctx context.Context, stream string, data interface{}) error

	// Backlog - число выданных группе, но не подтверждённых сообщений
	Backlog(ctx context.Context, stream, group string) (int64, error)
}
