package config

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect identifie le moteur SQL utilisé pour l'historique.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// ParseDatabaseURL choisit le driver selon le schéma de l'URL.
// "sqlite://path/to/file.db" (ou "file:") ouvre SQLite, le reste part sur Postgres.
func ParseDatabaseURL(dbURL string) (Dialect, string) {
	switch {
	case strings.HasPrefix(dbURL, "sqlite://"):
		return DialectSQLite, strings.TrimPrefix(dbURL, "sqlite://")
	case strings.HasPrefix(dbURL, "file:"):
		return DialectSQLite, dbURL
	default:
		return DialectPostgres, dbURL
	}
}

func InitDB(dbURL string) (*sql.DB, Dialect, error) {
	if dbURL == "" {
		return nil, "", fmt.Errorf("DATABASE_URL environment variable is required")
	}

	dialect, dsn := ParseDatabaseURL(dbURL)
	if dialect == DialectSQLite {
		// clés étrangères activées sur chaque connexion
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_foreign_keys=on&_busy_timeout=5000"
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	if dialect == DialectSQLite {
		// un seul writer pour SQLite
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}

	return db, dialect, nil
}

func RunMigrations(db *sql.DB, dialect Dialect) error {
	migrations := postgresMigrations
	if dialect == DialectSQLite {
		migrations = sqliteMigrations
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}

var postgresMigrations = []string{
	`CREATE TABLE IF NOT EXISTS gift_searches (
		id UUID PRIMARY KEY,
		user_id TEXT,
		occasion TEXT NOT NULL,
		budget_min NUMERIC NOT NULL,
		budget_max NUMERIC NOT NULL,
		recipient_age INTEGER,
		recipient_gender TEXT,
		interests TEXT[],
		relationship TEXT,
		personality_type TEXT,
		search_query TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS gift_results (
		search_id UUID NOT NULL REFERENCES gift_searches(id) ON DELETE CASCADE,
		result_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		price NUMERIC NOT NULL,
		image_url TEXT,
		product_url TEXT,
		store_name TEXT,
		rating NUMERIC,
		tags TEXT[],
		ai_relevance_score NUMERIC,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (search_id, result_id)
	)`,

	`CREATE TABLE IF NOT EXISTS user_favorites (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		search_id UUID NOT NULL,
		result_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, search_id, result_id),
		FOREIGN KEY (search_id, result_id) REFERENCES gift_results(search_id, result_id) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_gift_searches_user_id ON gift_searches(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_gift_searches_created_at ON gift_searches(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_user_favorites_user_id ON user_favorites(user_id)`,
}

var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS gift_searches (
		id TEXT PRIMARY KEY,
		user_id TEXT,
		occasion TEXT NOT NULL,
		budget_min REAL NOT NULL,
		budget_max REAL NOT NULL,
		recipient_age INTEGER,
		recipient_gender TEXT,
		interests TEXT NOT NULL DEFAULT '[]',
		relationship TEXT,
		personality_type TEXT,
		search_query TEXT,
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS gift_results (
		search_id TEXT NOT NULL REFERENCES gift_searches(id) ON DELETE CASCADE,
		result_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		price REAL NOT NULL,
		image_url TEXT,
		product_url TEXT,
		store_name TEXT,
		rating REAL,
		tags TEXT NOT NULL DEFAULT '[]',
		ai_relevance_score REAL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (search_id, result_id)
	)`,

	`CREATE TABLE IF NOT EXISTS user_favorites (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		search_id TEXT NOT NULL,
		result_id TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, search_id, result_id),
		FOREIGN KEY (search_id, result_id) REFERENCES gift_results(search_id, result_id) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_gift_searches_user_id ON gift_searches(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_gift_searches_created_at ON gift_searches(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_user_favorites_user_id ON user_favorites(user_id)`,
}
