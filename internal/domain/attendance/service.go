package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn records today's arrival after geofence admission
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut records today's departure and returns the worked duration
	CheckOut(ctx context.Context, req CheckOutRequest) (CheckOutResponse, error)

	// Reset overwrites a record as an administrator, always writing a reset log
	Reset(ctx context.Context, req ResetRequest) (AttendanceResponse, error)

	// Today summarizes the member's record for the current local date
	Today(ctx context.Context, phone string) (TodayResponse, error)

	// Get retrieves a single record with its reset logs
	Get(ctx context.Context, id string) (AttendanceResponse, error)

	// Report aggregates status counts over a date range
	Report(ctx context.Context, filter ReportFilter) (ReportResponse, error)
}
