package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/psyche/internal/db"
	"github.com/alexanderramin/psyche/internal/domain"
)

const resultColumns = `id, user_id, instrument_id, overall, dimensions, answered,
	classification, unscored, warnings, recommended_tests, recommendation_messages, created_at`

// SQLiteResultRepo stores scored results.
type SQLiteResultRepo struct {
	db db.DBTX
}

// NewSQLiteResultRepo creates a new SQLiteResultRepo.
func NewSQLiteResultRepo(conn db.DBTX) *SQLiteResultRepo {
	return &SQLiteResultRepo{db: conn}
}

func (r *SQLiteResultRepo) Create(ctx context.Context, res *domain.ScoredResult) error {
	dims, err := encodeJSON("dimensions", res.Dimensions, "{}")
	if err != nil {
		return err
	}
	class, err := encodeJSON("classification", res.Classification, "{}")
	if err != nil {
		return err
	}
	warnings, err := encodeJSON("warnings", res.Warnings, "[]")
	if err != nil {
		return err
	}
	recTests, err := encodeJSON("recommended_tests", res.RecommendedTests, "[]")
	if err != nil {
		return err
	}
	recMessages, err := encodeJSON("recommendation_messages", res.RecommendationMessages, "[]")
	if err != nil {
		return err
	}

	query := `INSERT INTO results (` + resultColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		res.ID,
		res.UserID,
		res.InstrumentID,
		res.Overall,
		dims,
		res.Answered,
		class,
		boolToInt(res.Unscored),
		warnings,
		recTests,
		recMessages,
		formatTime(res.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting result: %w", err)
	}
	return nil
}

func (r *SQLiteResultRepo) GetByID(ctx context.Context, id string) (*domain.ScoredResult, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+resultColumns+` FROM results WHERE id = ?`, id)
	res, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("result %s: %w", id, ErrNotFound)
	}
	return res, err
}

func (r *SQLiteResultRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.ScoredResult, error) {
	query := `SELECT ` + resultColumns + ` FROM results
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	defer rows.Close()

	var out []*domain.ScoredResult
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}
	return out, nil
}

func scanResult(s scanner) (*domain.ScoredResult, error) {
	var res domain.ScoredResult
	var dims, class, warnings, recTests, recMessages, createdAt string
	var unscored int

	err := s.Scan(
		&res.ID, &res.UserID, &res.InstrumentID, &res.Overall, &dims, &res.Answered,
		&class, &unscored, &warnings, &recTests, &recMessages, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning result: %w", err)
	}

	res.Unscored = intToBool(unscored)
	if err := decodeJSON("dimensions", dims, &res.Dimensions); err != nil {
		return nil, err
	}
	if err := decodeJSON("classification", class, &res.Classification); err != nil {
		return nil, err
	}
	if err := decodeJSON("warnings", warnings, &res.Warnings); err != nil {
		return nil, err
	}
	if err := decodeJSON("recommended_tests", recTests, &res.RecommendedTests); err != nil {
		return nil, err
	}
	if err := decodeJSON("recommendation_messages", recMessages, &res.RecommendationMessages); err != nil {
		return nil, err
	}
	if res.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &res, nil
}
