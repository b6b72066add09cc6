package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/psyche/internal/db"
	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/google/uuid"
)

const profileColumns = `id, user_id, phase, combined_report, narrative_source, narrative_degraded,
	chart_data, risk_level, mood_trend, state, signals, recommendations,
	recommendation_text, stats, created_at, updated_at`

// SQLiteProfileRepo stores one profile row per user.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

func (r *SQLiteProfileRepo) GetByUser(ctx context.Context, userID string) (*domain.MentalHealthProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`, userID)

	var p domain.MentalHealthProfile
	var chart, signals, recs, stats, createdAt, updatedAt string
	var degraded int
	err := row.Scan(
		&p.ID, &p.UserID, &p.Phase, &p.CombinedReport, &p.NarrativeSource, &degraded,
		&chart, &p.RiskLevel, &p.MoodTrend, &p.State, &signals, &recs,
		&p.RecommendationText, &stats, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile for %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}

	p.NarrativeDegraded = intToBool(degraded)
	for _, c := range []struct {
		name string
		raw  string
		dst  any
	}{
		{"chart_data", chart, &p.ChartData},
		{"signals", signals, &p.Signals},
		{"recommendations", recs, &p.Recommendations},
		{"stats", stats, &p.Stats},
	} {
		if err := decodeJSON(c.name, c.raw, c.dst); err != nil {
			return nil, err
		}
	}
	if p.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert writes p in a single statement keyed by user id. On conflict every
// content column is replaced while id and created_at stay as stored; p is
// updated with the stored values afterwards.
func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.MentalHealthProfile) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	chart, err := encodeJSON("chart_data", p.ChartData, "[]")
	if err != nil {
		return err
	}
	signals, err := encodeJSON("signals", p.Signals, "{}")
	if err != nil {
		return err
	}
	recs, err := encodeJSON("recommendations", p.Recommendations, "[]")
	if err != nil {
		return err
	}
	stats, err := encodeJSON("stats", p.Stats, "{}")
	if err != nil {
		return err
	}

	query := `INSERT INTO profiles (` + profileColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			phase = excluded.phase,
			combined_report = excluded.combined_report,
			narrative_source = excluded.narrative_source,
			narrative_degraded = excluded.narrative_degraded,
			chart_data = excluded.chart_data,
			risk_level = excluded.risk_level,
			mood_trend = excluded.mood_trend,
			state = excluded.state,
			signals = excluded.signals,
			recommendations = excluded.recommendations,
			recommendation_text = excluded.recommendation_text,
			stats = excluded.stats,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		string(p.Phase),
		p.CombinedReport,
		string(p.NarrativeSource),
		boolToInt(p.NarrativeDegraded),
		chart,
		string(p.RiskLevel),
		string(p.MoodTrend),
		string(p.State),
		signals,
		recs,
		p.RecommendationText,
		stats,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}

	var createdAt string
	err = r.db.QueryRowContext(ctx, `SELECT id, created_at FROM profiles WHERE user_id = ?`, p.UserID).
		Scan(&p.ID, &createdAt)
	if err != nil {
		return fmt.Errorf("reading back profile identity: %w", err)
	}
	if p.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return err
	}
	return nil
}
