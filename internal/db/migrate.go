package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate creates every table and index and adds later columns. It re-runs
// the whole list on each start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN fails once the column exists.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS results (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		instrument_id TEXT NOT NULL,
		overall REAL NOT NULL DEFAULT 0,
		dimensions TEXT NOT NULL DEFAULT '{}',
		answered INTEGER NOT NULL DEFAULT 0,
		classification TEXT NOT NULL DEFAULT '{}',
		unscored INTEGER NOT NULL DEFAULT 0,
		warnings TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_results_user_created ON results(user_id, created_at)`,
	`ALTER TABLE results ADD COLUMN recommended_tests TEXT NOT NULL DEFAULT '[]'`,
	`ALTER TABLE results ADD COLUMN recommendation_messages TEXT NOT NULL DEFAULT '[]'`,

	`CREATE TABLE IF NOT EXISTS interpretations (
		result_id TEXT PRIMARY KEY REFERENCES results(id) ON DELETE CASCADE,
		summary TEXT NOT NULL DEFAULT '',
		chunks TEXT NOT NULL DEFAULT '[]',
		fallback INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS mood_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		day TEXT NOT NULL,
		mood TEXT NOT NULL CHECK(mood IN ('great','good','neutral','low','bad')),
		note TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mood_entries_user_day ON mood_entries(user_id, day)`,

	`CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		phase TEXT NOT NULL,
		combined_report TEXT NOT NULL DEFAULT '',
		narrative_source TEXT NOT NULL DEFAULT 'deterministic',
		narrative_degraded INTEGER NOT NULL DEFAULT 0,
		chart_data TEXT NOT NULL DEFAULT '[]',
		risk_level TEXT NOT NULL DEFAULT 'unknown',
		mood_trend TEXT NOT NULL DEFAULT 'unknown',
		state TEXT NOT NULL DEFAULT 'balanced',
		signals TEXT NOT NULL DEFAULT '{}',
		recommendations TEXT NOT NULL DEFAULT '[]',
		recommendation_text TEXT NOT NULL DEFAULT '',
		stats TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS content_items (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_content_items_category ON content_items(category, created_at)`,
}
