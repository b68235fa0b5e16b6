package postgresosm

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/place-resolver/internal/config"
	"go.uber.org/zap"
)

// ErrNoRoadData - в базе нет таблицы дорог, загруженной osm2pgsql
var ErrNoRoadData = errors.New("osm road table is not loaded")

// DB - подключение к OSM базе (osm2pgsql, только чтение)
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// New подключается к OSM базе и проверяет наличие planet_osm_line.
// Ошибка не фатальна для API: без дорог валидатор координат работает в режиме fail-open.
func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	sqlxDB, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to osm database: %w", err)
	}

	sqlxDB.SetMaxOpenConns(cfg.MaxConns)
	sqlxDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlxDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlxDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlxDB.PingContext(ctx); err != nil {
		sqlxDB.Close()
		return nil, fmt.Errorf("failed to ping osm database: %w", err)
	}

	db := &DB{DB: sqlxDB, logger: logger}

	ok, err := db.HasRoadTable(ctx)
	if err != nil {
		sqlxDB.Close()
		return nil, fmt.Errorf("failed to inspect osm database: %w", err)
	}
	if !ok {
		sqlxDB.Close()
		return nil, ErrNoRoadData
	}

	logger.Info("OSM road database connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.DBName),
		zap.String("table", planetLineTable),
	)

	return db, nil
}

// HasRoadTable проверяет, что osm2pgsql уже создал таблицу линий
func (db *DB) HasRoadTable(ctx context.Context) (bool, error) {
	var exists bool
	err := db.GetContext(ctx, &exists, `SELECT to_regclass($1) IS NOT NULL`, "public."+planetLineTable)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (db *DB) Close() error {
	db.logger.Info("Closing OSM road database connection")
	return db.DB.Close()
}

func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// NewDBForTest оборачивает готовое соединение
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{DB: sqlxDB, logger: logger}
}
