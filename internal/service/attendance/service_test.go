package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Jevon1999/api-presensi/internal/domain/attendance"
	"github.com/Jevon1999/api-presensi/internal/domain/member"
	"github.com/Jevon1999/api-presensi/internal/fixtures"
	"github.com/Jevon1999/api-presensi/internal/pkg/geo"
	"github.com/Jevon1999/api-presensi/internal/pkg/sse"
	"github.com/Jevon1999/api-presensi/internal/pkg/validator"
	"github.com/Jevon1999/api-presensi/internal/repository/memory"
	"github.com/Jevon1999/api-presensi/internal/service/geofence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "time/tzdata"
)

const budiPhone = "081234567890"

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []sse.Event
}

func (p *recordingPublisher) PublishToMany(topics []string, event sse.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

type testEnv struct {
	store   *memory.Store
	clock   *testClock
	events  *recordingPublisher
	service attendance.AttendanceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	store := memory.NewStore()
	store.Seed(fixtures.DemoOffices(), fixtures.DemoLocations(), fixtures.DemoMembers(), nil)

	clock := &testClock{t: time.Date(2026, 3, 10, 8, 0, 0, 0, jakarta)}
	events := &recordingPublisher{}

	svc := NewAttendanceService(
		memory.NewTransactor(store),
		memory.NewAttendanceRepository(store),
		memory.NewResetLogRepository(store),
		memory.NewMemberRepository(store),
		geofence.NewGeofenceService(memory.NewOfficeRepository(store)),
		events,
		Options{Location: jakarta, Now: clock.Now},
	)

	return &testEnv{store: store, clock: clock, events: events, service: svc}
}

func insideHQ() (float64, float64) {
	p := geo.Offset(geo.Point{Latitude: fixtures.HeadquartersLat, Longitude: fixtures.HeadquartersLon}, 50, 0)
	return p.Latitude, p.Longitude
}

func outsideHQ() (float64, float64) {
	p := geo.Offset(geo.Point{Latitude: fixtures.HeadquartersLat, Longitude: fixtures.HeadquartersLon}, 500, 0)
	return p.Latitude, p.Longitude
}

func TestAttendanceService_CheckIn_Success(t *testing.T) {
	env := newTestEnv(t)
	lat, lon := insideHQ()

	resp, err := env.service.CheckIn(context.Background(), attendance.CheckInRequest{Phone: budiPhone, Latitude: lat, Longitude: lon})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", resp.Date)
	require.NotNil(t, resp.CheckInTime)
	assert.Equal(t, "08:00", *resp.CheckInTime)
	assert.Nil(t, resp.CheckOutTime)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	require.NotNil(t, resp.Member)
	assert.Equal(t, "Budi Santoso", resp.Member.Name)
	assert.Equal(t, "Kantor Pusat Jakarta", resp.Member.OfficeName)
	assert.Equal(t, 1, env.store.AttendanceCount())
	require.Len(t, env.events.events, 1)
	assert.Equal(t, sse.EventCheckIn, env.events.events[0].Event)
}

func TestAttendanceService_CheckIn_Twice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lat, lon := insideHQ()

	first, err := env.service.CheckIn(ctx, attendance.CheckInRequest{Phone: budiPhone, Latitude: lat, Longitude: lon})
	require.NoError(t, err)

	env.clock.Set(env.clock.Now().Add(30 * time.Minute))
	_, err = env.service.CheckIn(ctx, attendance.CheckInRequest{Phone: "+62 812-3456-7890", Latitude: lat, Longitude: lon})
	require.Error(t, err)
	assert.True(t, errors.Is(err, attendance.ErrAlreadyCheckedIn))

	var conflict *attendance.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, first.ID, conflict.Existing.ID)
	require.NotNil(t, conflict.Existing.CheckInTime)
	assert.Equal(t, "08:00", *conflict.Existing.CheckInTime)
	assert.Equal(t, 1, env.store.AttendanceCount())
}

func TestAttendanceService_CheckIn_Concurrent(t *testing.T) {
	env := newTestEnv(t)
	lat, lon := insideHQ()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.service.CheckIn(context.Background(), attendance.CheckInRequest{Phone: budiPhone, Latitude: lat, Longitude: lon})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, attendance.ErrAlreadyCheckedIn):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, 1, env.store.AttendanceCount())
}

func TestAttendanceService_CheckIn_OutsideGeofence(t *testing.T) {
	env := newTestEnv(t)
	lat, lon := outsideHQ()

	_, err := env.service.CheckIn(context.Background(), attendance.CheckInRequest{Phone: budiPhone, Latitude: lat, Longitude: lon})
	assert.ErrorIs(t, err, attendance.ErrOutsideGeofence)
	assert.Equal(t, 0, env.store.AttendanceCount())
	assert.Empty(t, env.events.events)
}

func TestAttendanceService_CheckIn_MemberNotFound(t *testing.T) {
	tests := []struct {
		name  string
		phone string
	}{
		{name: "unknown number", phone: "089900000000"},
		{name: "inactive member", phone: "081999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			lat, lon := insideHQ()

			_, err := env.service.CheckIn(context.Background(), attendance.CheckInRequest{Phone: tt.phone, Latitude: lat, Longitude: lon})
			assert.ErrorIs(t, err, member.ErrMemberNotFound)
			assert.Equal(t, 0, env.store.AttendanceCount())
		})
	}
}

func TestAttendanceService_CheckIn_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.CheckIn(context.Background(), attendance.CheckInRequest{Phone: "", Latitude: 120, Longitude: 0})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.Has("phone"))
	assert.True(t, verrs.Has("latitude"))
}

func TestAttendanceService_CheckOut(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lat, lon := insideHQ()

	_, err := env.service.CheckIn(ctx, attendance.CheckInRequest{Phone: budiPhone, Latitude: lat, Longitude: lon})
	require.NoError(t, err)

	env.clock.Set(env.clock.Now().Add(9 * time.Hour))
	resp, err := env.service.CheckOut(ctx, attendance.CheckOutRequest{Phone: budiPhone, Latitude: lat, Longitude: lon})
	require.NoError(t, err)

	require.NotNil(t, resp.CheckOutTime)
	assert.Equal(t, "17:00", *resp.CheckOutTime)
	assert.Equal(t, "9 jam 0 menit", resp.WorkingHours)

	_, err = env.service.CheckOut(ctx, attendance.CheckOutRequest{Phone: budiPhone, Latitude: lat, Longitude: lon})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendanceService_CheckOut_NotCheckedIn(t *testing.T) {
	env := newTestEnv(t)
	lat, lon := insideHQ()

	_, err := env.service.CheckOut(context.Background(), attendance.CheckOutRequest{Phone: budiPhone, Latitude: lat, Longitude: lon})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	assert.Equal(t, 0, env.store.AttendanceCount())
}

func TestAttendanceService_CheckOut_OutsideGeofence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inLat, inLon := insideHQ()
	outLat, outLon := outsideHQ()

	checkedIn, err := env.service.CheckIn(ctx, attendance.CheckInRequest{Phone: budiPhone, Latitude: inLat, Longitude: inLon})
	require.NoError(t, err)

	_, err = env.service.CheckOut(ctx, attendance.CheckOutRequest{Phone: budiPhone, Latitude: outLat, Longitude: outLon})
	assert.ErrorIs(t, err, attendance.ErrOutsideGeofence)

	got, err := env.service.Get(ctx, checkedIn.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CheckOutTime)
}

func TestAttendanceService_NextDayStartsFresh(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lat, lon := insideHQ()

	_, err := env.service.CheckIn(ctx, attendance.CheckInRequest{Phone: budiPhone, Latitude: lat, Longitude: lon})
	require.NoError(t, err)

	env.clock.Set(env.clock.Now().Add(24 * time.Hour))
	resp, err := env.service.CheckIn(ctx, attendance.CheckInRequest{Phone: budiPhone, Latitude: lat, Longitude: lon})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-11", resp.Date)
	assert.Equal(t, 2, env.store.AttendanceCount())
}

func TestAttendanceService_Reset(t *testing.T) {
	ctx := context.Background()

	t.Run("short reason is rejected without a log", func(t *testing.T) {
		env := newTestEnv(t)
		lat, lon := insideHQ()
		checkedIn, err := env.service.CheckIn(ctx, attendance.CheckInRequest{Phone: budiPhone, Latitude: lat, Longitude: lon})
		require.NoError(t, err)

		_, err = env.service.Reset(ctx, attendance.ResetRequest{
			AttendanceID: checkedIn.ID,
			ActorID:      "admin-1",
			Status:       "sick",
			Reason:       "123456789",
		})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.True(t, verrs.Has("reason"))
		assert.Equal(t, 0, env.store.ResetLogCount())

		got, err := env.service.Get(ctx, checkedIn.ID)
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusPresent, got.Status)
	})

	t.Run("valid reset writes one log with the previous state", func(t *testing.T) {
		env := newTestEnv(t)
		lat, lon := insideHQ()
		checkedIn, err := env.service.CheckIn(ctx, attendance.CheckInRequest{Phone: budiPhone, Latitude: lat, Longitude: lon})
		require.NoError(t, err)

		out := "16:30"
		resp, err := env.service.Reset(ctx, attendance.ResetRequest{
			AttendanceID: checkedIn.ID,
			ActorID:      "admin-1",
			Status:       "izin",
			CheckOutTime: &out,
			Reason:       "1234567890",
		})
		require.NoError(t, err)

		assert.Equal(t, attendance.StatusExcused, resp.Status)
		require.NotNil(t, resp.CheckInTime)
		assert.Equal(t, "08:00", *resp.CheckInTime)
		require.NotNil(t, resp.CheckOutTime)
		assert.Equal(t, "16:30", *resp.CheckOutTime)

		assert.Equal(t, 1, env.store.ResetLogCount())
		require.Len(t, resp.ResetLogs, 1)
		log := resp.ResetLogs[0]
		assert.Equal(t, attendance.StatusPresent, log.OldStatus)
		assert.Equal(t, attendance.StatusExcused, log.NewStatus)
		assert.Equal(t, "admin-1", log.ResetBy)
		assert.Nil(t, log.OldCheckOut)
		require.NotNil(t, log.NewCheckOut)
		assert.Equal(t, "16:30", *log.NewCheckOut)
	})

	t.Run("unknown attendance", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.service.Reset(ctx, attendance.ResetRequest{
			AttendanceID: "missing",
			ActorID:      "admin-1",
			Status:       "absent",
			Reason:       "member was not in the office",
		})
		assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
		assert.Equal(t, 0, env.store.ResetLogCount())
	})
}

func TestAttendanceService_Today(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.service.Today(ctx, budiPhone)
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", resp.Member.Name)
	assert.Nil(t, resp.Attendance)

	lat, lon := insideHQ()
	_, err = env.service.CheckIn(ctx, attendance.CheckInRequest{Phone: budiPhone, Latitude: lat, Longitude: lon})
	require.NoError(t, err)

	resp, err = env.service.Today(ctx, budiPhone)
	require.NoError(t, err)
	require.NotNil(t, resp.Attendance)
	assert.Equal(t, "08:00", *resp.Attendance.CheckInTime)
}

func TestAttendanceService_Report(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lat, lon := insideHQ()

	for _, p := range []string{budiPhone, "081234567891"} {
		_, err := env.service.CheckIn(ctx, attendance.CheckInRequest{Phone: p, Latitude: lat, Longitude: lon})
		require.NoError(t, err)
	}

	officeID := fixtures.OfficeJakartaID
	resp, err := env.service.Report(ctx, attendance.ReportFilter{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
		OfficeID:  &officeID,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Statistics.TotalDays)
	assert.Equal(t, 2, resp.Statistics.Present)
	assert.Len(t, resp.Attendances, 2)

	_, err = env.service.Report(ctx, attendance.ReportFilter{StartDate: "2026-03-31", EndDate: "2026-03-01"})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

// uuidColumnRepository rejects malformed ids the way a UUID column does.
type uuidColumnRepository struct {
	attendance.AttendanceRepository
	calls int
}

func (r *uuidColumnRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.calls++
	if !validator.IsValidUUID(id) {
		return attendance.Attendance{}, errors.New("invalid input syntax for type uuid")
	}
	return r.AttendanceRepository.GetByID(ctx, id)
}

func TestAttendanceService_MalformedIDs(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.Seed(fixtures.DemoOffices(), fixtures.DemoLocations(), fixtures.DemoMembers(), nil)
	repo := &uuidColumnRepository{AttendanceRepository: memory.NewAttendanceRepository(store)}

	svc := NewAttendanceService(
		memory.NewTransactor(store),
		repo,
		memory.NewResetLogRepository(store),
		memory.NewMemberRepository(store),
		geofence.NewGeofenceService(memory.NewOfficeRepository(store)),
		&recordingPublisher{},
		Options{},
	)

	_, err := svc.Get(ctx, "abc")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	_, err = svc.Reset(ctx, attendance.ResetRequest{
		AttendanceID: "abc",
		ActorID:      "admin-1",
		Status:       "absent",
		Reason:       "member was not in the office",
	})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	assert.Zero(t, repo.calls)

	memberID := "abc"
	_, err = svc.Report(ctx, attendance.ReportFilter{StartDate: "2026-03-01", EndDate: "2026-03-31", MemberID: &memberID})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.Has("member_id"))
}
