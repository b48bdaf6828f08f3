package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cm_sheet/internal/domain/model"
)

// ProgressRepository persists manually ticked problems, keyed by
// (user, problem title).
type ProgressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.ManualProgress, error)
	Exists(ctx context.Context, userID, title string) (bool, error)
	Insert(ctx context.Context, userID, title string) error
	Delete(ctx context.Context, userID, title string) error
}

type pgProgressRepository struct {
	db *sql.DB
}

func NewPgProgressRepository(db *sql.DB) ProgressRepository {
	return &pgProgressRepository{db: db}
}

func (r *pgProgressRepository) ListByUser(ctx context.Context, userID string) ([]model.ManualProgress, error) {
	query := `SELECT user_id, problem_title, created_at FROM user_progress
	          WHERE user_id = $1 ORDER BY created_at, problem_title`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.ListByUser: %w", err)
	}
	defer rows.Close()

	var out []model.ManualProgress
	for rows.Next() {
		var mp model.ManualProgress
		if err := rows.Scan(&mp.UserID, &mp.ProblemTitle, &mp.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgProgressRepository.ListByUser: %w", err)
		}
		out = append(out, mp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProgressRepository.ListByUser: %w", err)
	}
	return out, nil
}

func (r *pgProgressRepository) Exists(ctx context.Context, userID, title string) (bool, error) {
	query := `SELECT 1 FROM user_progress WHERE user_id = $1 AND problem_title = $2`
	var one int
	err := r.db.QueryRowContext(ctx, query, userID, title).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("pgProgressRepository.Exists: %w", err)
	}
	return true, nil
}

// Insert is a no-op when the row already exists.
func (r *pgProgressRepository) Insert(ctx context.Context, userID, title string) error {
	query := `INSERT INTO user_progress (user_id, problem_title) VALUES ($1, $2)
	          ON CONFLICT (user_id, problem_title) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, userID, title); err != nil {
		return fmt.Errorf("pgProgressRepository.Insert: %w", err)
	}
	return nil
}

func (r *pgProgressRepository) Delete(ctx context.Context, userID, title string) error {
	query := `DELETE FROM user_progress WHERE user_id = $1 AND problem_title = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, title); err != nil {
		return fmt.Errorf("pgProgressRepository.Delete: %w", err)
	}
	return nil
}
