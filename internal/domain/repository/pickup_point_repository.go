package repository

import (
	"context"
	"time"

	"github.com/place-resolver/internal/domain"
)

// PickupPointRepository - точки посадки и подтверждения пользователей
type PickupPointRepository interface {
	// ListByParent возвращает все точки родительского места
	ListByParent(ctx context.Context, placeID string) ([]*domain.PickupPoint, error)

	GetByID(ctx context.Context, id string) (*domain.PickupPoint, error)

	Create(ctx context.Context, point *domain.PickupPoint) error

	// InsertVerification добавляет подтверждение пользователя.
	// Возвращает false, если пользователь уже подтверждал эту точку.
	InsertVerification(ctx context.Context, pointID, userID string) (bool, error)

	// CompareAndSwapVerification записывает новое состояние проверки,
	// только если verification_count в базе всё ещё равен expectedCount.
	CompareAndSwapVerification(ctx context.Context, point *domain.PickupPoint, expectedCount int) (bool, error)

	// DeleteVerification снимает подтверждение, которое не попало в счётчик
	DeleteVerification(ctx context.Context, pointID, userID string) error

	// IncrementUse увеличивает use_count и обновляет last_used_at
	IncrementUse(ctx context.Context, id string, at time.Time) error
}
