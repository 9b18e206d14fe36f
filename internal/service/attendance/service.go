package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Jevon1999/api-presensi/internal/domain/attendance"
	"github.com/Jevon1999/api-presensi/internal/domain/member"
	"github.com/Jevon1999/api-presensi/internal/pkg/database"
	"github.com/Jevon1999/api-presensi/internal/pkg/phone"
	"github.com/Jevon1999/api-presensi/internal/pkg/sse"
	"github.com/Jevon1999/api-presensi/internal/pkg/validator"
	"github.com/Jevon1999/api-presensi/internal/service/geofence"
)

// EventPublisher receives attendance changes for live dashboards.
type EventPublisher interface {
	PublishToMany(topics []string, event sse.Event)
}

// Options carries deployment settings. Zero values fall back to
// Asia/Jakarta, country code 62 and time.Now.
type Options struct {
	Location    *time.Location
	CountryCode string
	Now         func() time.Time
}

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	attendance.ResetLogRepository
	member.MemberRepository
	geofence geofence.Service
	events   EventPublisher

	location    *time.Location
	countryCode string
	now         func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	resetLogRepo attendance.ResetLogRepository,
	memberRepo member.MemberRepository,
	geofenceService geofence.Service,
	events EventPublisher,
	opts Options,
) attendance.AttendanceService {
	if opts.Location == nil {
		opts.Location = attendance.DefaultLocation()
	}
	if opts.CountryCode == "" {
		opts.CountryCode = phone.DefaultCountryCode
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		ResetLogRepository:   resetLogRepo,
		MemberRepository:     memberRepo,
		geofence:             geofenceService,
		events:               events,
		location:             opts.Location,
		countryCode:          opts.CountryCode,
		now:                  opts.Now,
	}
}

// localNow is evaluated once per operation so that every check in the
// operation sees the same calendar day.
func (s *AttendanceServiceImpl) localNow() time.Time {
	return s.now().In(s.location)
}

func (s *AttendanceServiceImpl) resolveMember(ctx context.Context, rawPhone string) (member.Member, error) {
	key := phone.Canonical(rawPhone, s.countryCode)
	m, err := s.MemberRepository.GetActiveByPhone(ctx, key)
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			return member.Member{}, member.ErrMemberNotFound
		}
		return member.Member{}, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

func (s *AttendanceServiceImpl) checkGeofence(ctx context.Context, m member.Member, lat, lon float64, op string) error {
	decision, err := s.geofence.Admits(ctx, lat, lon, m.OfficeID)
	if err != nil {
		return err
	}
	if !decision.Admitted {
		slog.Warn("geofence denied",
			"operation", op,
			"member_id", m.ID,
			"office_id", m.OfficeID,
			"nearest_location_id", decision.NearestLocation,
			"nearest_meters", decision.NearestMeters,
		)
		return attendance.ErrOutsideGeofence
	}
	return nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.localNow()
	today := attendance.DateOf(now)

	m, err := s.resolveMember(ctx, req.Phone)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := s.AttendanceRepository.GetByMemberAndDate(ctx, m.ID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil && existing.HasCheckedIn() {
		return attendance.AttendanceResponse{}, &attendance.ConflictError{
			Err:      attendance.ErrAlreadyCheckedIn,
			Existing: mapAttendanceToResponse(withMember(*existing, m)),
		}
	}

	if err := s.checkGeofence(ctx, m, req.Latitude, req.Longitude, "check_in"); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkIn := attendance.TimeOfDayOf(now)
	var result attendance.Attendance

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.AttendanceRepository.GetByMemberAndDateForUpdate(txCtx, m.ID, today)
		if err != nil {
			return fmt.Errorf("failed to lock today's attendance: %w", err)
		}

		if current == nil {
			created, err := s.AttendanceRepository.Create(txCtx, attendance.Attendance{
				MemberID: m.ID,
				Date:     today,
				CheckIn:  &checkIn,
				Status:   attendance.StatusPresent,
			})
			if err == nil {
				result = created
				return nil
			}
			if !errors.Is(err, attendance.ErrDuplicateAttendance) {
				return fmt.Errorf("failed to create attendance: %w", err)
			}

			// A concurrent request won the insert, continue as an update.
			current, err = s.AttendanceRepository.GetByMemberAndDateForUpdate(txCtx, m.ID, today)
			if err != nil {
				return fmt.Errorf("failed to re-read attendance after conflict: %w", err)
			}
			if current == nil {
				return fmt.Errorf("attendance for member %s missing after unique conflict", m.ID)
			}
		}

		if current.HasCheckedIn() {
			return &attendance.ConflictError{Err: attendance.ErrAlreadyCheckedIn, Existing: mapAttendanceToResponse(withMember(*current, m))}
		}

		current.CheckIn = &checkIn
		current.Status = attendance.StatusPresent
		if err := s.AttendanceRepository.Update(txCtx, *current); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		result = *current
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	result = withMember(result, m)
	resp := mapAttendanceToResponse(result)
	s.publish(sse.EventCheckIn, m.OfficeID, resp)

	slog.Info("member checked in", "member_id", m.ID, "attendance_id", result.ID, "time", checkIn.String())
	return resp, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	now := s.localNow()
	today := attendance.DateOf(now)

	m, err := s.resolveMember(ctx, req.Phone)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	existing, err := s.AttendanceRepository.GetByMemberAndDate(ctx, m.ID, today)
	if err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if err := checkOutAllowed(existing, m); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	if err := s.checkGeofence(ctx, m, req.Latitude, req.Longitude, "check_out"); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	checkOut := attendance.TimeOfDayOf(now)
	var result attendance.Attendance

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.AttendanceRepository.GetByMemberAndDateForUpdate(txCtx, m.ID, today)
		if err != nil {
			return fmt.Errorf("failed to lock today's attendance: %w", err)
		}
		if err := checkOutAllowed(current, m); err != nil {
			return err
		}

		current.CheckOut = &checkOut
		if err := s.AttendanceRepository.Update(txCtx, *current); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		result = *current
		return nil
	})
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	result = withMember(result, m)
	duration, _ := result.WorkingDuration()
	resp := attendance.CheckOutResponse{
		AttendanceResponse: mapAttendanceToResponse(result),
		WorkingHours:       duration.String(),
	}
	s.publish(sse.EventCheckOut, m.OfficeID, resp)

	slog.Info("member checked out", "member_id", m.ID, "attendance_id", result.ID, "working_hours", duration.String())
	return resp, nil
}

func checkOutAllowed(current *attendance.Attendance, m member.Member) error {
	if current == nil || !current.HasCheckedIn() {
		return attendance.ErrNotCheckedIn
	}
	if current.HasCheckedOut() {
		return &attendance.ConflictError{Err: attendance.ErrAlreadyCheckedOut, Existing: mapAttendanceToResponse(withMember(*current, m))}
	}
	return nil
}

// Reset implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Reset(ctx context.Context, req attendance.ResetRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !validator.IsValidUUID(req.AttendanceID) {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}

	status, _ := attendance.ParseStatus(req.Status)
	newCheckIn, err := parseOptionalTime(req.CheckInTime)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	newCheckOut, err := parseOptionalTime(req.CheckOutTime)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.Attendance
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.AttendanceRepository.GetByID(txCtx, req.AttendanceID)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrAttendanceNotFound
			}
			return fmt.Errorf("failed to get attendance: %w", err)
		}

		after := current
		after.Status = status
		if newCheckIn != nil {
			after.CheckIn = newCheckIn
		}
		if newCheckOut != nil {
			after.CheckOut = newCheckOut
		}

		_, err = s.ResetLogRepository.Append(txCtx, attendance.ResetLog{
			AttendanceID: current.ID,
			ResetBy:      req.ActorID,
			OldStatus:    current.Status,
			NewStatus:    after.Status,
			OldCheckIn:   current.CheckIn,
			NewCheckIn:   after.CheckIn,
			OldCheckOut:  current.CheckOut,
			NewCheckOut:  after.CheckOut,
			Reason:       strings.TrimSpace(req.Reason),
		})
		if err != nil {
			return fmt.Errorf("failed to write reset log: %w", err)
		}

		if err := s.AttendanceRepository.Update(txCtx, after); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		updated = after
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("attendance reset",
		"attendance_id", updated.ID,
		"reset_by", req.ActorID,
		"new_status", updated.Status,
	)

	resp, err := s.Get(ctx, updated.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	s.publish(sse.EventReset, updated.OfficeID, resp)
	return resp, nil
}

func parseOptionalTime(value *string) (*attendance.TimeOfDay, error) {
	if value == nil {
		return nil, nil
	}
	t, err := attendance.ParseTimeOfDay(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context, rawPhone string) (attendance.TodayResponse, error) {
	now := s.localNow()
	today := attendance.DateOf(now)

	m, err := s.resolveMember(ctx, rawPhone)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	existing, err := s.AttendanceRepository.GetByMemberAndDate(ctx, m.ID, today)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	resp := attendance.TodayResponse{
		Member: memberSummary(m),
		Date:   today.Format("2006-01-02"),
	}
	if existing != nil {
		record := mapAttendanceToResponse(*existing)
		record.Member = nil
		resp.Attendance = &record
	}
	return resp, nil
}

// Get implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	if !validator.IsValidUUID(id) {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}

	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	logs, err := s.ResetLogRepository.ListByAttendance(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get reset logs: %w", err)
	}

	resp := mapAttendanceToResponse(record)
	for _, log := range logs {
		resp.ResetLogs = append(resp.ResetLogs, mapResetLogToResponse(log))
	}
	return resp, nil
}

// Report implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Report(ctx context.Context, filter attendance.ReportFilter) (attendance.ReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ReportResponse{}, err
	}
	start, end := filter.Range()

	records, err := s.AttendanceRepository.ListByDateRange(ctx, start, end, filter.OfficeID, filter.MemberID)
	if err != nil {
		return attendance.ReportResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	resp := attendance.ReportResponse{
		Period: attendance.ReportPeriod{
			Start: start.Format("2006-01-02"),
			End:   end.Format("2006-01-02"),
		},
		Attendances: make([]attendance.AttendanceResponse, 0, len(records)),
	}
	for _, record := range records {
		resp.Statistics.TotalDays++
		switch record.Status {
		case attendance.StatusPresent:
			resp.Statistics.Present++
		case attendance.StatusExcused:
			resp.Statistics.Excused++
		case attendance.StatusSick:
			resp.Statistics.Sick++
		case attendance.StatusAbsent:
			resp.Statistics.Absent++
		}
		resp.Attendances = append(resp.Attendances, mapAttendanceToResponse(record))
	}
	return resp, nil
}

func (s *AttendanceServiceImpl) publish(eventType, officeID string, data interface{}) {
	if s.events == nil {
		return
	}
	s.events.PublishToMany([]string{sse.TopicAll, sse.OfficeTopic(officeID)}, sse.Event{
		Event: eventType,
		Data:  data,
	})
}

// ========================================
// MAPPERS
// ========================================

func withMember(a attendance.Attendance, m member.Member) attendance.Attendance {
	a.MemberName = m.Name
	a.MemberPhone = m.Phone
	a.OfficeID = m.OfficeID
	a.OfficeName = m.OfficeName
	return a
}

func memberSummary(m member.Member) attendance.MemberSummary {
	return attendance.MemberSummary{
		ID:         m.ID,
		Name:       m.Name,
		Phone:      m.Phone,
		OfficeID:   m.OfficeID,
		OfficeName: m.OfficeName,
	}
}

func mapAttendanceToResponse(a attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:           a.ID,
		Date:         a.Date.Format("2006-01-02"),
		CheckInTime:  timeOfDayPtrToString(a.CheckIn),
		CheckOutTime: timeOfDayPtrToString(a.CheckOut),
		Status:       a.Status,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
	if a.MemberName != "" {
		resp.Member = &attendance.MemberSummary{
			ID:         a.MemberID,
			Name:       a.MemberName,
			Phone:      a.MemberPhone,
			OfficeID:   a.OfficeID,
			OfficeName: a.OfficeName,
		}
	}
	return resp
}

func mapResetLogToResponse(l attendance.ResetLog) attendance.ResetLogResponse {
	return attendance.ResetLogResponse{
		ID:          l.ID,
		ResetBy:     l.ResetBy,
		OldStatus:   l.OldStatus,
		NewStatus:   l.NewStatus,
		OldCheckIn:  timeOfDayPtrToString(l.OldCheckIn),
		NewCheckIn:  timeOfDayPtrToString(l.NewCheckIn),
		OldCheckOut: timeOfDayPtrToString(l.OldCheckOut),
		NewCheckOut: timeOfDayPtrToString(l.NewCheckOut),
		Reason:      l.Reason,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
}

func timeOfDayPtrToString(t *attendance.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.HHMM()
	return &s
}
