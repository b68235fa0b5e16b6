package domain

import (
	"time"

	"github.com/place-resolver/internal/pkg/utils"
)

// VerificationThreshold - число подтверждений, после которого точка считается проверенной
const VerificationThreshold = 3

// Типы точек посадки
const (
	PickupKindEntrance = "entrance"
	PickupKindGate     = "gate"
	PickupKindParking  = "parking"
	PickupKindPlatform = "platform"
	PickupKindTerminal = "terminal"
)

// VerificationState - состояние проверки точки посадки
type VerificationState int

const (
	StateUnverified VerificationState = iota
	StateVerified
)

func (s VerificationState) String() string {
	switch s {
	case StateVerified:
		return "verified"
	default:
		return "unverified"
	}
}

// VerificationTransition - результат применения подтверждения
type VerificationTransition int

const (
	// TransitionCounted - счётчик увеличен, состояние не изменилось
	TransitionCounted VerificationTransition = iota
	// TransitionVerified - точка только что стала проверенной
	TransitionVerified
)

// NextVerificationState - функция перехода: состояние после count подтверждений
func NextVerificationState(current VerificationState, count int) VerificationState {
	if current == StateVerified {
		return StateVerified
	}
	if count >= VerificationThreshold {
		return StateVerified
	}
	return StateUnverified
}

// PickupPoint - вход, ворота, парковка или платформа у родительского места
type PickupPoint struct {
	ID                string     `json:"id" db:"id"`
	PlaceID           string     `json:"place_id" db:"place_id"`
	Lat               float64    `json:"lat" db:"lat"`
	Lon               float64    `json:"lon" db:"lon"`
	Geohash           string     `json:"geohash" db:"geohash"`
	Kind              string     `json:"kind" db:"kind"`
	Name              string     `json:"name" db:"name"`
	Notes             *string    `json:"notes,omitempty" db:"notes"`
	Verified          bool       `json:"verified" db:"verified"`
	VerificationCount int        `json:"verification_count" db:"verification_count"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty" db:"verified_at"`
	VerifiedBy        *string    `json:"verified_by,omitempty" db:"verified_by"`
	Accessible        bool       `json:"accessible" db:"accessible"`
	UseCount          int64      `json:"use_count" db:"use_count"`
	LastUsedAt        *time.Time `json:"last_used_at,omitempty" db:"last_used_at"`
	CreatedBy         *string    `json:"created_by,omitempty" db:"created_by"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`

	DistanceKm *float64 `json:"distance_km,omitempty" db:"-"`
}

// State возвращает текущее состояние проверки
func (p *PickupPoint) State() VerificationState {
	if p.Verified {
		return StateVerified
	}
	return StateUnverified
}

// ApplyConfirmation учитывает одно независимое подтверждение.
// verified_at/verified_by проставляются только при первом переходе в verified.
func (p *PickupPoint) ApplyConfirmation(userID string, at time.Time) VerificationTransition {
	before := p.State()
	p.VerificationCount++
	after := NextVerificationState(before, p.VerificationCount)

	if before == StateUnverified && after == StateVerified {
		p.Verified = true
		p.VerifiedAt = &at
		if userID != "" {
			by := userID
			p.VerifiedBy = &by
		}
		return TransitionVerified
	}

	return TransitionCounted
}

// MarkUsed отмечает выбор точки как места посадки/высадки
func (p *PickupPoint) MarkUsed(at time.Time) {
	p.UseCount++
	p.LastUsedAt = &at
}

// Normalize пересчитывает geohash из координат
func (p *PickupPoint) Normalize() {
	p.Geohash = utils.EncodeGeohash(p.Lat, p.Lon, utils.GeohashPrecision)
}

// IsValidPickupKind проверяет тип точки посадки
func IsValidPickupKind(kind string) bool {
	switch kind {
	case PickupKindEntrance, PickupKindGate, PickupKindParking, PickupKindPlatform, PickupKindTerminal:
		return true
	}
	return false
}
