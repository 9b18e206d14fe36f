package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Jevon1999/api-presensi/internal/domain/attendance"
	"github.com/Jevon1999/api-presensi/internal/domain/member"
	"github.com/Jevon1999/api-presensi/internal/domain/progress"
	"github.com/Jevon1999/api-presensi/internal/repository/postgresql"
	attendanceService "github.com/Jevon1999/api-presensi/internal/service/attendance"
	"github.com/Jevon1999/api-presensi/internal/service/geofence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_CreateAndUpdate(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	_, memberID, err := setup.SeedOffice(ctx, "HQ001", "6281234567890", "-6.20000000", "106.81666600", 100)
	require.NoError(t, err)

	repo := postgresql.NewAttendanceRepository(setup.DB)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	checkIn := attendance.TimeOfDay(8*3600 + 15*60)

	created, err := repo.Create(ctx, attendance.Attendance{MemberID: memberID, Date: date, CheckIn: &checkIn, Status: attendance.StatusPresent})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = repo.Create(ctx, attendance.Attendance{MemberID: memberID, Date: date, Status: attendance.StatusPresent})
	assert.ErrorIs(t, err, attendance.ErrDuplicateAttendance)

	got, err := repo.GetByMemberAndDate(ctx, memberID, date)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Budi Santoso", got.MemberName)
	require.NotNil(t, got.CheckIn)
	assert.Equal(t, "08:15:00", got.CheckIn.String())
	assert.Nil(t, got.CheckOut)

	checkOut := attendance.TimeOfDay(17 * 3600)
	got.CheckOut = &checkOut
	require.NoError(t, repo.Update(ctx, *got))

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID.CheckOut)
	assert.Equal(t, "17:00", byID.CheckOut.HHMM())

	missing, err := repo.GetByMemberAndDate(ctx, memberID, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestResetLogRepository_Append(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	_, memberID, err := setup.SeedOffice(ctx, "HQ001", "6281234567890", "-6.20000000", "106.81666600", 100)
	require.NoError(t, err)

	attRepo := postgresql.NewAttendanceRepository(setup.DB)
	logRepo := postgresql.NewResetLogRepository(setup.DB)

	created, err := attRepo.Create(ctx, attendance.Attendance{MemberID: memberID, Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent})
	require.NoError(t, err)

	newOut := attendance.TimeOfDay(16*3600 + 30*60)
	_, err = logRepo.Append(ctx, attendance.ResetLog{
		AttendanceID: created.ID,
		ResetBy:      "admin-1",
		OldStatus:    attendance.StatusPresent,
		NewStatus:    attendance.StatusSick,
		NewCheckOut:  &newOut,
		Reason:       "sakit sejak siang",
	})
	require.NoError(t, err)

	logs, err := logRepo.ListByAttendance(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, attendance.StatusSick, logs[0].NewStatus)
	assert.Nil(t, logs[0].OldCheckIn)
	require.NotNil(t, logs[0].NewCheckOut)
	assert.Equal(t, "16:30", logs[0].NewCheckOut.HHMM())
}

func TestOfficeAndMemberRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	officeID, memberID, err := setup.SeedOffice(ctx, "HQ001", "6281234567890", "-6.20000001", "106.81666612", 100)
	require.NoError(t, err)

	locations, err := postgresql.NewOfficeRepository(setup.DB).ActiveLocations(ctx, officeID)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "-6.20000001", locations[0].Latitude.String())
	assert.Equal(t, "106.81666612", locations[0].Longitude.String())

	memberRepo := postgresql.NewMemberRepository(setup.DB)
	m, err := memberRepo.GetActiveByPhone(ctx, "6281234567890")
	require.NoError(t, err)
	assert.Equal(t, memberID, m.ID)
	assert.Equal(t, "Kantor HQ001", m.OfficeName)

	_, err = setup.DB.Exec(ctx, `UPDATE members SET is_active = FALSE WHERE id = $1`, memberID)
	require.NoError(t, err)
	_, err = memberRepo.GetActiveByPhone(ctx, "6281234567890")
	assert.ErrorIs(t, err, member.ErrMemberNotFound)
}

func TestProgressRepository_OnePerDay(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	_, memberID, err := setup.SeedOffice(ctx, "HQ001", "6281234567890", "-6.20000000", "106.81666600", 100)
	require.NoError(t, err)

	repo := postgresql.NewProgressRepository(setup.DB)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err = repo.Create(ctx, progress.Progress{MemberID: memberID, Date: date, Description: "Membuat API login"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, progress.Progress{MemberID: memberID, Date: date, Description: "lagi"})
	assert.ErrorIs(t, err, progress.ErrDuplicateProgress)
}

func TestAttendanceService_ConcurrentCheckIn_Postgres(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	_, _, err := setup.SeedOffice(ctx, "HQ001", "6281234567890", "-6.20000000", "106.81666600", 100)
	require.NoError(t, err)

	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := attendanceService.NewAttendanceService(
		postgresql.NewTransactor(setup.DB),
		postgresql.NewAttendanceRepository(setup.DB),
		postgresql.NewResetLogRepository(setup.DB),
		postgresql.NewMemberRepository(setup.DB),
		geofence.NewGeofenceService(postgresql.NewOfficeRepository(setup.DB)),
		nil,
		attendanceService.Options{Location: time.UTC, Now: func() time.Time { return now }},
	)

	const workers = 6
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CheckIn(ctx, attendance.CheckInRequest{Phone: "081234567890", Latitude: -6.2, Longitude: 106.816666})
			if err != nil && !errors.Is(err, attendance.ErrAlreadyCheckedIn) {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)

	var rows int
	require.NoError(t, setup.DB.QueryRow(ctx, `SELECT COUNT(*) FROM attendances`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestAttendanceRepository_ListByDateRange_Order(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	_, memberID, err := setup.SeedOffice(ctx, "HQ001", "6281234567890", "-6.20000000", "106.81666600", 100)
	require.NoError(t, err)

	repo := postgresql.NewAttendanceRepository(setup.DB)
	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	for _, day := range []int{2, 0, 1} {
		_, err := repo.Create(ctx, attendance.Attendance{MemberID: memberID, Date: start.AddDate(0, 0, day), Status: attendance.StatusPresent})
		require.NoError(t, err)
	}

	list, err := repo.ListByDateRange(ctx, start, start.AddDate(0, 0, 2), nil, &memberID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := range list {
		assert.True(t, list[i].Date.Equal(start.AddDate(0, 0, i)), "row %d is %s", i, list[i].Date)
	}
}
