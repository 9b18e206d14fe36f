package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Jevon1999/api-presensi/internal/domain/progress"
	"github.com/Jevon1999/api-presensi/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type progressRepository struct {
	db *database.DB
}

func NewProgressRepository(db *database.DB) progress.ProgressRepository {
	return &progressRepository{db: db}
}

// Create implements progress.ProgressRepository.
func (r *progressRepository) Create(ctx context.Context, p progress.Progress) (progress.Progress, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO progresses (member_id, date, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (member_id, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`, p.MemberID, p.Date, p.Description).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return progress.Progress{}, progress.ErrDuplicateProgress
		}
		return progress.Progress{}, fmt.Errorf("failed to create progress: %w", err)
	}
	return p, nil
}

// GetByMemberAndDate implements progress.ProgressRepository.
func (r *progressRepository) GetByMemberAndDate(ctx context.Context, memberID string, date time.Time) (*progress.Progress, error) {
	q := GetQuerier(ctx, r.db)

	var p progress.Progress
	err := q.QueryRow(ctx, `
		SELECT id, member_id, date, description, created_at, updated_at
		FROM progresses
		WHERE member_id = $1 AND date = $2
	`, memberID, date).Scan(&p.ID, &p.MemberID, &p.Date, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &p, nil
}
