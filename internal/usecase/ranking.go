package usecase

import (
	"math"
	"sort"
	"strings"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/pkg/utils"
)

// Веса композитной оценки, в сумме 1.0
const (
	WeightText            = 0.35
	WeightProximity       = 0.30
	WeightPopularity      = 0.20
	WeightPersonalization = 0.15
)

// Ступени текстовой оценки
const (
	textScoreExact      = 1.0
	textScorePrefix     = 0.8
	textScoreSubstring  = 0.6
	textScoreWordPrefix = 0.5
	textScoreOther      = 0.3

	neutralProximity = 0.5

	savedPlaceScore    = 1.0
	frequentPlaceScore = 0.6
	frequentUseMin     = 3
)

const (
	DefaultProximityWindowKm = 20.0
	DefaultPopularityCeiling = 1000.0
)

// QueryContext - контекст запроса для ранжирования
type QueryContext struct {
	Query        string
	UserLocation *domain.Point
	UserID       string
	HourOfDay    int
	DayOfWeek    int
}

// RankingConfig - настраиваемые константы ранжирования
type RankingConfig struct {
	ProximityWindowKm float64
	PopularityCeiling float64
}

// Ranker - вычисление оценок и сортировка кандидатов
type Ranker struct {
	cfg RankingConfig
}

// NewRanker - создание нового Ranker, нулевые значения заменяются значениями по умолчанию
func NewRanker(cfg RankingConfig) *Ranker {
	if cfg.ProximityWindowKm <= 0 {
		cfg.ProximityWindowKm = DefaultProximityWindowKm
	}
	if cfg.PopularityCeiling <= 1 {
		cfg.PopularityCeiling = DefaultPopularityCeiling
	}
	return &Ranker{cfg: cfg}
}

// Rank считает оценки для каждого кандидата и сортирует по убыванию композитной оценки.
// При равенстве сохраняется порядок слияния. limit <= 0 - без ограничения.
func (r *Ranker) Rank(places []*domain.Place, qc QueryContext, signals *domain.Personalization, limit int) []*domain.RankedPlace {
	ranked := make([]*domain.RankedPlace, 0, len(places))

	for _, p := range places {
		if p == nil {
			continue
		}

		placed, proximity := r.proximityScore(p, qc.UserLocation)
		rp := &domain.RankedPlace{
			Place:                placed,
			TextScore:            TextScore(qc.Query, p.Name, p.Similarity),
			ProximityScore:       proximity,
			PopularityScore:      r.PopularityScore(p.SearchCount),
			PersonalizationScore: PersonalizationScore(p.ID, qc.UserID, signals),
		}
		rp.Score = WeightText*rp.TextScore +
			WeightProximity*rp.ProximityScore +
			WeightPopularity*rp.PopularityScore +
			WeightPersonalization*rp.PersonalizationScore

		ranked = append(ranked, rp)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}

// TextScore - текстовая оценка по лестнице совпадений.
// Если источник вернул триграммную близость, используется она.
func TextScore(query, name string, similarity *float64) float64 {
	if similarity != nil {
		return clamp01(*similarity)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	n := strings.ToLower(strings.TrimSpace(name))

	switch {
	case q == "" || n == "":
		return textScoreOther
	case n == q:
		return textScoreExact
	case strings.HasPrefix(n, q):
		return textScorePrefix
	case strings.Contains(n, q):
		return textScoreSubstring
	}

	// Без учёта диакритики: "cafe" совпадает со словом "Café"
	fq := utils.FoldName(query)
	for _, word := range strings.Fields(utils.FoldName(name)) {
		if fq != "" && strings.HasPrefix(word, fq) {
			return textScoreWordPrefix
		}
	}

	return textScoreOther
}

// ProximityScore - линейное убывание от 1.0 на 0 км до 0.0 на границе окна
func (r *Ranker) ProximityScore(distanceKm float64) float64 {
	return math.Max(0, 1-distanceKm/r.cfg.ProximityWindowKm)
}

// proximityScore не меняет входное место: посчитанная дистанция пишется в копию
func (r *Ranker) proximityScore(p *domain.Place, user *domain.Point) (*domain.Place, float64) {
	if user == nil {
		return p, neutralProximity
	}
	if p.DistanceKm != nil {
		return p, r.ProximityScore(*p.DistanceKm)
	}

	d := utils.HaversineDistance(user.Lat, user.Lon, p.Lat, p.Lon)
	cp := *p
	cp.DistanceKm = &d
	return &cp, r.ProximityScore(d)
}

// PopularityScore - логарифмическая нормализация числа выборов
func (r *Ranker) PopularityScore(count int64) float64 {
	if count <= 0 {
		return 0
	}
	return math.Min(1, math.Log10(float64(count)+1)/math.Log10(r.cfg.PopularityCeiling))
}

// PersonalizationScore - 1.0 для сохранённых мест, 0.6 для часто используемых
func PersonalizationScore(placeID, userID string, signals *domain.Personalization) float64 {
	if userID == "" || signals == nil || placeID == "" {
		return 0
	}
	if _, ok := signals.SavedPlaceIDs[placeID]; ok {
		return savedPlaceScore
	}
	if signals.UseCounts[placeID] > frequentUseMin {
		return frequentPlaceScore
	}
	return 0
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
