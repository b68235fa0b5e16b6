package worker

import "context"

// Worker - фоновый потребитель стрима.
// Start блокируется до Stop или отмены ctx, ошибка означает, что воркер не смог начать работу.
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}
