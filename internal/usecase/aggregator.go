package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
)

const (
	DefaultCoverageThreshold = 5
	DefaultSearchRadiusKm    = 50.0
	DefaultProviderTimeout   = 5 * time.Second
)

// AggregatorConfig - параметры сбора кандидатов
type AggregatorConfig struct {
	CoverageThreshold int
	SearchRadiusKm    float64
	ProviderTimeout   time.Duration
}

// Aggregator - собирает кандидатов из локального хранилища и внешних геокодеров
type Aggregator struct {
	places    repository.PlaceRepository
	providers []repository.PlaceSource
	cfg       AggregatorConfig
	logger    *zap.Logger
}

// NewAggregator - создание нового Aggregator. Порядок providers задаёт приоритет при слиянии.
func NewAggregator(
	places repository.PlaceRepository,
	providers []repository.PlaceSource,
	cfg AggregatorConfig,
	logger *zap.Logger,
) *Aggregator {
	if cfg.CoverageThreshold <= 0 {
		cfg.CoverageThreshold = DefaultCoverageThreshold
	}
	if cfg.SearchRadiusKm <= 0 {
		cfg.SearchRadiusKm = DefaultSearchRadiusKm
	}
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = DefaultProviderTimeout
	}
	return &Aggregator{
		places:    places,
		providers: providers,
		cfg:       cfg,
		logger:    logger,
	}
}

// Collect - локальный поиск, затем (при недостаточном покрытии) параллельный опрос провайдеров.
// Ошибка локального хранилища возвращается, ошибки провайдеров дают пустой вклад.
func (a *Aggregator) Collect(ctx context.Context, q domain.SearchQuery) (*CandidateSet, error) {
	local, err := a.searchLocal(ctx, q)
	if err != nil {
		return nil, err
	}

	set := &CandidateSet{
		Local:     local,
		Providers: make([][]*domain.Place, len(a.providers)),
	}

	if len(local) >= a.cfg.CoverageThreshold {
		a.logger.Debug("Local coverage sufficient, skipping providers",
			zap.String("query", q.Text),
			zap.Int("local", len(local)))
		return set, nil
	}

	if q.RadiusKm <= 0 {
		q.RadiusKm = a.cfg.SearchRadiusKm
	}

	results := make([]chan []*domain.Place, len(a.providers))
	for i, provider := range a.providers {
		ch := make(chan []*domain.Place, 1)
		results[i] = ch
		go a.queryProvider(ctx, provider, q, ch)
	}

	for i, ch := range results {
		set.Providers[i] = a.await(ctx, a.providers[i].Name(), ch)
	}

	return set, nil
}

func (a *Aggregator) searchLocal(ctx context.Context, q domain.SearchQuery) ([]*domain.Place, error) {
	var (
		local []*domain.Place
		err   error
	)

	// выборка не меньше порога покрытия, иначе при малом limit провайдеры опрашиваются всегда
	fetch := max(q.Limit, a.cfg.CoverageThreshold)

	if q.UserLocation != nil {
		local, err = a.places.SearchNearby(ctx, q.Text, q.UserLocation.Lat, q.UserLocation.Lon, a.cfg.SearchRadiusKm, fetch)
	} else {
		local, err = a.places.Search(ctx, q.Text, fetch)
	}
	if err != nil {
		a.logger.Error("Local store search failed", zap.String("query", q.Text), zap.Error(err))
		return nil, err
	}

	for _, p := range local {
		p.Source = domain.SourceLocal
	}
	return local, nil
}

// queryProvider выполняет один запрос к провайдеру с собственным таймаутом
func (a *Aggregator) queryProvider(ctx context.Context, provider repository.PlaceSource, q domain.SearchQuery, out chan<- []*domain.Place) {
	var places []*domain.Place
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Provider panicked",
				zap.String("provider", provider.Name()),
				zap.String("panic", fmt.Sprint(r)))
			places = nil
		}
		out <- places
	}()

	pctx, cancel := context.WithTimeout(ctx, a.cfg.ProviderTimeout)
	defer cancel()

	start := time.Now()
	found, err := provider.ForwardSearch(pctx, q)
	if err != nil {
		a.logger.Warn("Provider search failed",
			zap.String("provider", provider.Name()),
			zap.String("query", q.Text),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return
	}

	for _, p := range found {
		if p != nil && p.Source == "" {
			p.Source = provider.Name()
		}
	}
	places = found
}

// await ждёт ответа провайдера, но не дольше контекста вызывающего
func (a *Aggregator) await(ctx context.Context, name string, ch <-chan []*domain.Place) []*domain.Place {
	select {
	case places := <-ch:
		return places
	default:
	}

	select {
	case places := <-ch:
		return places
	case <-ctx.Done():
		a.logger.Warn("Provider did not answer before request deadline",
			zap.String("provider", name),
			zap.Error(ctx.Err()))
		return nil
	}
}
