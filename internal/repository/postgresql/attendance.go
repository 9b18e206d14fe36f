package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Jevon1999/api-presensi/internal/domain/attendance"
	"github.com/Jevon1999/api-presensi/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.member_id, a.date, a.check_in, a.check_out, a.status,
		   a.created_at, a.updated_at,
		   m.name, m.phone, m.office_id, o.name
	FROM attendances a
	JOIN members m ON m.id = a.member_id
	JOIN offices o ON o.id = m.office_id
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		att               attendance.Attendance
		checkIn, checkOut pgtype.Time
	)
	err := row.Scan(
		&att.ID, &att.MemberID, &att.Date, &checkIn, &checkOut, &att.Status,
		&att.CreatedAt, &att.UpdatedAt,
		&att.MemberName, &att.MemberPhone, &att.OfficeID, &att.OfficeName,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if att.CheckIn, err = fromPgTime(checkIn); err != nil {
		return attendance.Attendance{}, err
	}
	if att.CheckOut, err = fromPgTime(checkOut); err != nil {
		return attendance.Attendance{}, err
	}
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (member_id, date, check_in, check_out, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (member_id, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.MemberID, a.Date, toPgTime(a.CheckIn), toPgTime(a.CheckOut), a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrDuplicateAttendance
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return a, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}
	return att, nil
}

// GetByMemberAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByMemberAndDate(ctx context.Context, memberID string, date time.Time) (*attendance.Attendance, error) {
	return r.getByMemberAndDate(ctx, memberID, date, "")
}

// GetByMemberAndDateForUpdate implements attendance.AttendanceRepository.
// It must run inside a transaction for the row lock to mean anything.
func (r *attendanceRepository) GetByMemberAndDateForUpdate(ctx context.Context, memberID string, date time.Time) (*attendance.Attendance, error) {
	return r.getByMemberAndDate(ctx, memberID, date, " FOR UPDATE OF a")
}

func (r *attendanceRepository) getByMemberAndDate(ctx context.Context, memberID string, date time.Time, lock string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + ` WHERE a.member_id = $1 AND a.date = $2` + lock

	att, err := scanAttendance(q.QueryRow(ctx, query, memberID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by member and date: %w", err)
	}
	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in = $1, check_out = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, toPgTime(a.CheckIn), toPgTime(a.CheckOut), a.Status, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// ListByDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDateRange(ctx context.Context, start, end time.Time, officeID, memberID *string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.date >= $1", "a.date <= $2"}
	args := []interface{}{start, end}

	if officeID != nil && *officeID != "" {
		args = append(args, *officeID)
		conditions = append(conditions, fmt.Sprintf("m.office_id = $%d", len(args)))
	}
	if memberID != nil && *memberID != "" {
		args = append(args, *memberID)
		conditions = append(conditions, fmt.Sprintf("a.member_id = $%d", len(args)))
	}

	query := attendanceSelect + " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY a.date ASC, m.name ASC"
	return r.list(ctx, q, query, args...)
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	return r.list(ctx, q, attendanceSelect+` WHERE a.date = $1 ORDER BY m.name ASC`, date)
}

func (r *attendanceRepository) list(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Attendance, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return result, nil
}

type resetLogRepository struct {
	db *database.DB
}

func NewResetLogRepository(db *database.DB) attendance.ResetLogRepository {
	return &resetLogRepository{db: db}
}

// Append implements attendance.ResetLogRepository.
func (r *resetLogRepository) Append(ctx context.Context, log attendance.ResetLog) (attendance.ResetLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_reset_logs (
			attendance_id, reset_by, old_status, new_status,
			old_check_in, new_check_in, old_check_out, new_check_out, reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		log.AttendanceID, log.ResetBy, log.OldStatus, log.NewStatus,
		toPgTime(log.OldCheckIn), toPgTime(log.NewCheckIn),
		toPgTime(log.OldCheckOut), toPgTime(log.NewCheckOut),
		log.Reason,
	).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return attendance.ResetLog{}, fmt.Errorf("failed to append reset log: %w", err)
	}
	return log, nil
}

// ListByAttendance implements attendance.ResetLogRepository.
func (r *resetLogRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]attendance.ResetLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_id, reset_by, old_status, new_status,
			   old_check_in, new_check_in, old_check_out, new_check_out, reason, created_at
		FROM attendance_reset_logs
		WHERE attendance_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reset logs: %w", err)
	}
	defer rows.Close()

	var result []attendance.ResetLog
	for rows.Next() {
		var (
			log                          attendance.ResetLog
			oldIn, newIn, oldOut, newOut pgtype.Time
		)
		if err := rows.Scan(
			&log.ID, &log.AttendanceID, &log.ResetBy, &log.OldStatus, &log.NewStatus,
			&oldIn, &newIn, &oldOut, &newOut, &log.Reason, &log.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reset log: %w", err)
		}
		for _, col := range []struct {
			dst **attendance.TimeOfDay
			src pgtype.Time
		}{
			{&log.OldCheckIn, oldIn}, {&log.NewCheckIn, newIn},
			{&log.OldCheckOut, oldOut}, {&log.NewCheckOut, newOut},
		} {
			if *col.dst, err = fromPgTime(col.src); err != nil {
				return nil, fmt.Errorf("failed to scan reset log: %w", err)
			}
		}
		result = append(result, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reset logs: %w", err)
	}
	return result, nil
}

func toPgTime(t *attendance.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: t.Duration().Microseconds(), Valid: true}
}

// fromPgTime rejects 24:00:00, which TIME allows but a TimeOfDay cannot hold.
func fromPgTime(t pgtype.Time) (*attendance.TimeOfDay, error) {
	if !t.Valid {
		return nil, nil
	}
	tod, err := attendance.TimeOfDayFromDuration(time.Duration(t.Microseconds) * time.Microsecond)
	if err != nil {
		return nil, err
	}
	return &tod, nil
}
