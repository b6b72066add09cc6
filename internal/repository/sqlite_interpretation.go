package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/psyche/internal/db"
	"github.com/alexanderramin/psyche/internal/domain"
)

// SQLiteInterpretationRepo stores the interpretation of each result.
type SQLiteInterpretationRepo struct {
	db db.DBTX
}

// NewSQLiteInterpretationRepo creates a new SQLiteInterpretationRepo.
func NewSQLiteInterpretationRepo(conn db.DBTX) *SQLiteInterpretationRepo {
	return &SQLiteInterpretationRepo{db: conn}
}

func (r *SQLiteInterpretationRepo) Create(ctx context.Context, in *domain.Interpretation) error {
	chunks, err := encodeJSON("chunks", in.Chunks, "[]")
	if err != nil {
		return err
	}
	query := `INSERT INTO interpretations (result_id, summary, chunks, fallback, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		in.ResultID,
		in.Summary,
		chunks,
		boolToInt(in.Fallback),
		formatTime(in.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting interpretation: %w", err)
	}
	return nil
}

func (r *SQLiteInterpretationRepo) GetByResult(ctx context.Context, resultID string) (*domain.Interpretation, error) {
	query := `SELECT result_id, summary, chunks, fallback, created_at
		FROM interpretations WHERE result_id = ?`
	var in domain.Interpretation
	var chunks, createdAt string
	var fallback int
	err := r.db.QueryRowContext(ctx, query, resultID).Scan(&in.ResultID, &in.Summary, &chunks, &fallback, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("interpretation for %s: %w", resultID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning interpretation: %w", err)
	}

	in.Fallback = intToBool(fallback)
	if err := decodeJSON("chunks", chunks, &in.Chunks); err != nil {
		return nil, err
	}
	if in.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &in, nil
}
