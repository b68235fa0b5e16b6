package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/place-resolver/internal/config"
	"go.uber.org/zap"
)

// requiredExtensions - расширения, без которых не работают запросы к places
var requiredExtensions = []string{"postgis", "pg_trgm"}

// DB - подключение к базе мест, точек посадки и истории
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// New открывает пул соединений и проверяет, что схема готова к работе
func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to places database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping places database: %w", err)
	}

	missing, err := missingExtensions(ctx, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to check extensions: %w", err)
	}
	if len(missing) > 0 {
		db.Close()
		return nil, fmt.Errorf("places database is missing extensions %v, run migrations first", missing)
	}

	logger.Info("Places database connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DBName),
		zap.Int("max_conns", cfg.MaxConns),
	)

	return &DB{DB: db, logger: logger}, nil
}

func missingExtensions(ctx context.Context, db *sqlx.DB) ([]string, error) {
	var installed []string
	err := db.SelectContext(ctx, &installed,
		`SELECT extname FROM pg_extension WHERE extname = ANY($1)`,
		pq.Array(requiredExtensions),
	)
	if err != nil {
		return nil, err
	}

	have := make(map[string]bool, len(installed))
	for _, name := range installed {
		have[name] = true
	}

	var missing []string
	for _, name := range requiredExtensions {
		if !have[name] {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

func (db *DB) Close() error {
	db.logger.Info("Closing places database connection")
	return db.DB.Close()
}

// Health используется в /health
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// NewDBForTest оборачивает готовое соединение без проверок схемы
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		DB:     sqlxDB,
		logger: logger,
	}
}
