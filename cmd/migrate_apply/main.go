package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"trading_platform/internal/db"
	"trading_platform/internal/logger"

	"github.com/joho/godotenv"
)

// Applies the SQL files under internal/migrations in name order. Each applied
// file is recorded in schema_migrations so reruns only pick up new ones.
// Without -apply the tool just reports what is pending.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	apply := flag.Bool("apply", false, "apply pending migrations instead of listing them")
	flag.Parse()

	pool := db.Connect(dsn)
	defer pool.Close()

	ctx := context.Background()
	if _, err := pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		logger.Fatal("create schema_migrations", "error", err)
	}

	applied := map[string]bool{}
	rows, err := pool.Query(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		logger.Fatal("read schema_migrations", "error", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			logger.Fatal("scan schema_migrations", "error", err)
		}
		applied[name] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		logger.Fatal("read schema_migrations", "error", err)
	}

	migDir := filepath.Join("internal", "migrations")
	entries, err := os.ReadDir(migDir)
	if err != nil {
		logger.Fatal("read migrations dir", "dir", migDir, "error", err)
	}

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if applied[name] {
			logger.Info("already applied", "migration", name)
			continue
		}
		if !*apply {
			logger.Info("pending", "migration", name)
			continue
		}

		b, err := os.ReadFile(filepath.Join(migDir, name))
		if err != nil {
			logger.Fatal("read migration", "migration", name, "error", err)
		}
		if _, err := pool.Exec(ctx, string(b)); err != nil {
			logger.Fatal("apply migration", "migration", name, "error", err)
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
			logger.Fatal("record migration", "migration", name, "error", err)
		}
		logger.Info("applied", "migration", name)
	}
}
