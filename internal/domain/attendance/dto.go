package attendance

import (
	"time"

	"github.com/Jevon1999/api-presensi/internal/pkg/validator"
)

// ========================================
// CHECK-IN / CHECK-OUT DTOs
// ========================================

type CheckInRequest struct {
	Phone     string  `json:"phone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *CheckInRequest) Validate() error {
	return validatePresence(r.Phone, r.Latitude, r.Longitude)
}

type CheckOutRequest struct {
	Phone     string  `json:"phone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *CheckOutRequest) Validate() error {
	return validatePresence(r.Phone, r.Latitude, r.Longitude)
}

func validatePresence(phone string, lat, lon float64) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone is required",
		})
	} else if !validator.IsValidPhoneNumber(phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be a valid phone number",
		})
	}

	if !validator.IsInRange(lat, -90, 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsInRange(lon, -180, 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CheckOutResponse adds the worked duration to the record.
type CheckOutResponse struct {
	AttendanceResponse
	WorkingHours string `json:"working_hours"`
}

// ========================================
// RESET DTOs
// ========================================

type ResetRequest struct {
	AttendanceID string  `json:"-"`
	ActorID      string  `json:"-"`
	Status       string  `json:"status"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Reason       string  `json:"reason"`
}

func (r *ResetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "attendance id is required",
		})
	}

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if _, ok := ParseStatus(r.Status); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + statusChoices(),
		})
	}

	if r.CheckInTime != nil {
		if _, err := ParseTimeOfDay(*r.CheckInTime); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be in HH:MM format",
			})
		}
	}

	if r.CheckOutTime != nil {
		if _, err := ParseTimeOfDay(*r.CheckOutTime); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be in HH:MM format",
			})
		}
	}

	if !validator.MinRunes(r.Reason, 10) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: ErrInvalidReason.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// REPORT DTOs
// ========================================

type ReportFilter struct {
	StartDate string  `json:"start_date"` // YYYY-MM-DD
	EndDate   string  `json:"end_date"`   // YYYY-MM-DD
	OfficeID  *string `json:"office_id,omitempty"`
	MemberID  *string `json:"member_id,omitempty"`
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be on or after start_date",
		})
	}

	if f.OfficeID != nil && !validator.IsValidUUID(*f.OfficeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "office_id",
			Message: "office_id must be a valid UUID",
		})
	}

	if f.MemberID != nil && !validator.IsValidUUID(*f.MemberID) {
		errs = append(errs, validator.ValidationError{
			Field:   "member_id",
			Message: "member_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Range returns the parsed bounds. Call Validate first.
func (f *ReportFilter) Range() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(f.StartDate)
	end, _ := validator.IsValidDate(f.EndDate)
	return start, end
}

type ReportStatistics struct {
	TotalDays int `json:"total_days"`
	Present   int `json:"present"`
	Excused   int `json:"excused"`
	Sick      int `json:"sick"`
	Absent    int `json:"absent"`
}

type ReportPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type ReportResponse struct {
	Period      ReportPeriod         `json:"period"`
	Statistics  ReportStatistics     `json:"statistics"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ========================================
// RESPONSE DTOs
// ========================================

type MemberSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	OfficeID   string `json:"office_id"`
	OfficeName string `json:"office_name"`
}

type AttendanceResponse struct {
	ID           string             `json:"id"`
	Date         string             `json:"date"`
	CheckInTime  *string            `json:"check_in_time,omitempty"`
	CheckOutTime *string            `json:"check_out_time,omitempty"`
	Status       Status             `json:"status"`
	Member       *MemberSummary     `json:"member,omitempty"`
	ResetLogs    []ResetLogResponse `json:"reset_logs,omitempty"`
	CreatedAt    string             `json:"created_at"`
	UpdatedAt    string             `json:"updated_at"`
}

type ResetLogResponse struct {
	ID          string  `json:"id"`
	ResetBy     string  `json:"reset_by"`
	OldStatus   Status  `json:"old_status"`
	NewStatus   Status  `json:"new_status"`
	OldCheckIn  *string `json:"old_check_in,omitempty"`
	NewCheckIn  *string `json:"new_check_in,omitempty"`
	OldCheckOut *string `json:"old_check_out,omitempty"`
	NewCheckOut *string `json:"new_check_out,omitempty"`
	Reason      string  `json:"reason"`
	CreatedAt   string  `json:"created_at"`
}

// TodayResponse answers a status query. Attendance is nil when nothing has
// been recorded yet today.
type TodayResponse struct {
	Member     MemberSummary       `json:"member"`
	Date       string              `json:"date"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}
