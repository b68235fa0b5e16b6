package postgresosm

import (
	"errors"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/place-resolver/internal/config"
	"go.uber.org/zap"
)

// testOSMConfig - OSM база из docker-compose (osm_db), переопределяется через OSM_DB_*
func testOSMConfig() config.DatabaseConfig {
	port, err := strconv.Atoi(getEnv("OSM_DB_PORT", "5435"))
	if err != nil {
		port = 5435
	}

	return config.DatabaseConfig{
		Host:            getEnv("OSM_DB_HOST", "localhost"),
		Port:            port,
		User:            getEnv("OSM_DB_USER", "osmuser"),
		Password:        getEnv("OSM_DB_PASSWORD", "osmpass"),
		DBName:          getEnv("OSM_DB_NAME", "osm"),
		SSLMode:         getEnv("OSM_DB_SSLMODE", "disable"),
		MaxConns:        4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// setupRoadDB подключается через New, поэтому заодно проверяет наличие planet_osm_line.
// Без базы или без загруженного экстракта тест пропускается.
func setupRoadDB(t *testing.T) *DB {
	t.Helper()

	cfg := testOSMConfig()
	db, err := New(&cfg, zap.NewNop())
	if errors.Is(err, ErrNoRoadData) {
		t.Skip("OSM extract is not loaded")
	}
	if err != nil {
		t.Skipf("OSM test database not available: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close OSM test database: %v", err)
		}
	})
	return db
}

func assertNotEmpty(t *testing.T, value string, fieldName string) {
	t.Helper()
	if value == "" {
		t.Errorf("Expected %s to be not empty", fieldName)
	}
}

func assertValidCoordinates(t *testing.T, lat, lon float64) {
	t.Helper()
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		t.Errorf("Invalid coordinate: %f,%f", lat, lon)
	}
}

func assertInRange(t *testing.T, value, min, max float64, fieldName string) {
	t.Helper()
	if value < min || value > max {
		t.Errorf("Expected %s to be in range [%f, %f], got %f", fieldName, min, max, value)
	}
}
