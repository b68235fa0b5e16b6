package usecase

import (
	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/pkg/utils"
)

// CandidateSet - сырые кандидаты от всех источников в порядке приоритета
type CandidateSet struct {
	Local     []*domain.Place
	Providers [][]*domain.Place
}

// Total - общее число кандидатов до дедупликации
func (s *CandidateSet) Total() int {
	n := len(s.Local)
	for _, p := range s.Providers {
		n += len(p)
	}
	return n
}

// identityKeys - ключи идентичности кандидата: нормализованное имя и координата
type identityKeys struct {
	name  string
	coord string
}

func keysOf(p *domain.Place) identityKeys {
	return identityKeys{
		name:  utils.FoldName(p.Name),
		coord: utils.CoordinateKey(p.Lat, p.Lon),
	}
}

// MergeCandidates объединяет кандидатов: сначала локальные, затем провайдеры по порядку.
// Локальные записи не сравниваются друг с другом, но занимают ключи.
// Кандидат провайдера с уже занятым именем или координатой отбрасывается.
// Устаревшая локальная запись на той же координате вытесняет более свежий ответ
// провайдера; поведение оставлено как есть, обновление локальных данных не делается.
func MergeCandidates(set *CandidateSet) []*domain.Place {
	merged := make([]*domain.Place, 0, set.Total())
	names := make(map[string]struct{})
	coords := make(map[string]struct{})

	claim := func(k identityKeys) {
		if k.name != "" {
			names[k.name] = struct{}{}
		}
		coords[k.coord] = struct{}{}
	}

	for _, p := range set.Local {
		if p == nil {
			continue
		}
		claim(keysOf(p))
		merged = append(merged, p)
	}

	for _, group := range set.Providers {
		for _, p := range group {
			if p == nil {
				continue
			}
			k := keysOf(p)
			if _, dup := coords[k.coord]; dup {
				continue
			}
			if _, dup := names[k.name]; dup && k.name != "" {
				continue
			}
			claim(k)
			merged = append(merged, p)
		}
	}

	return merged
}
