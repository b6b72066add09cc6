package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/psyche/internal/db"
	"github.com/alexanderramin/psyche/internal/domain"
)

// SQLiteMoodRepo stores daily mood entries.
type SQLiteMoodRepo struct {
	db db.DBTX
}

// NewSQLiteMoodRepo creates a new SQLiteMoodRepo.
func NewSQLiteMoodRepo(conn db.DBTX) *SQLiteMoodRepo {
	return &SQLiteMoodRepo{db: conn}
}

func (r *SQLiteMoodRepo) Create(ctx context.Context, m *domain.MoodEntry) error {
	query := `INSERT INTO mood_entries (id, user_id, day, mood, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.UserID,
		m.DayKey(),
		string(m.Mood),
		m.Note,
		formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting mood entry: %w", err)
	}
	return nil
}

func (r *SQLiteMoodRepo) ListByUser(ctx context.Context, userID string, since time.Time) ([]*domain.MoodEntry, error) {
	query := `SELECT id, user_id, day, mood, note, created_at
		FROM mood_entries
		WHERE user_id = ? AND day >= ?
		ORDER BY day, created_at, id`
	from := ""
	if !since.IsZero() {
		from = since.Format(domain.DayLayout)
	}
	rows, err := r.db.QueryContext(ctx, query, userID, from)
	if err != nil {
		return nil, fmt.Errorf("listing mood entries: %w", err)
	}
	defer rows.Close()

	var out []*domain.MoodEntry
	for rows.Next() {
		var m domain.MoodEntry
		var day, mood, createdAt string
		if err := rows.Scan(&m.ID, &m.UserID, &day, &mood, &m.Note, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning mood entry: %w", err)
		}
		m.Mood = domain.Mood(mood)
		if m.Day, err = time.Parse(domain.DayLayout, day); err != nil {
			return nil, fmt.Errorf("parsing day: %w", err)
		}
		if m.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mood entries: %w", err)
	}
	return out, nil
}
