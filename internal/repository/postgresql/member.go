package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jevon1999/api-presensi/internal/domain/member"
	"github.com/Jevon1999/api-presensi/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type memberRepository struct {
	db *database.DB
}

func NewMemberRepository(db *database.DB) member.MemberRepository {
	return &memberRepository{db: db}
}

const memberSelect = `
	SELECT m.id, m.phone, m.name, m.office_id, m.is_active, m.created_at, m.updated_at, o.name
	FROM members m
	JOIN offices o ON o.id = m.office_id
`

func scanMember(row pgx.Row) (member.Member, error) {
	var m member.Member
	err := row.Scan(&m.ID, &m.Phone, &m.Name, &m.OfficeID, &m.Active, &m.CreatedAt, &m.UpdatedAt, &m.OfficeName)
	return m, err
}

// GetActiveByPhone implements member.MemberRepository.
func (r *memberRepository) GetActiveByPhone(ctx context.Context, phone string) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	m, err := scanMember(q.QueryRow(ctx, memberSelect+` WHERE m.phone = $1 AND m.is_active`, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.Member{}, member.ErrMemberNotFound
		}
		return member.Member{}, fmt.Errorf("failed to get member by phone: %w", err)
	}
	return m, nil
}

// GetByID implements member.MemberRepository.
func (r *memberRepository) GetByID(ctx context.Context, id string) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	m, err := scanMember(q.QueryRow(ctx, memberSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.Member{}, member.ErrMemberNotFound
		}
		return member.Member{}, fmt.Errorf("failed to get member by id: %w", err)
	}
	return m, nil
}

// ListActive implements member.MemberRepository.
func (r *memberRepository) ListActive(ctx context.Context) ([]member.Member, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, memberSelect+` WHERE m.is_active ORDER BY m.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var result []member.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
