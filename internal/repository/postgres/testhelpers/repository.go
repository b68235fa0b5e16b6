package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewPlaceRepositoryForTest creates a place repository with test database and logger
func NewPlaceRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.PlaceRepository {
	return postgres.NewPlaceRepository(NewDBForTest(db, logger))
}

// NewPickupPointRepositoryForTest creates a pickup point repository with test database and logger
func NewPickupPointRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.PickupPointRepository {
	return postgres.NewPickupPointRepository(NewDBForTest(db, logger))
}

// NewPersonalizationRepositoryForTest creates a personalization repository with test database and logger
func NewPersonalizationRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.PersonalizationRepository {
	return postgres.NewPersonalizationRepository(NewDBForTest(db, logger))
}
