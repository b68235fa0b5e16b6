package testhelpers

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
)

// migrationsDir - каталог migrations/ в корне модуля, вычисляется от этого файла,
// чтобы не зависеть от рабочей директории go test
func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations")
}

// ensureSchema применяет *.up.sql, если схема ещё не создана.
// Каждая миграция выполняется в своей транзакции.
func ensureSchema(tb testing.TB, db *sqlx.DB) error {
	var exists bool
	if err := db.Get(&exists, `SELECT to_regclass('public.places') IS NOT NULL`); err != nil {
		return fmt.Errorf("inspect schema: %w", err)
	}
	if exists {
		return nil
	}

	dir := migrationsDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var upFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			upFiles = append(upFiles, e.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		tx, err := db.Beginx()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", name, err)
		}
		tb.Logf("Applied migration: %s", name)
	}

	return nil
}
