package response

import (
	"errors"
	"net/http"

	"github.com/Jevon1999/api-presensi/internal/domain/attendance"
	"github.com/Jevon1999/api-presensi/internal/domain/auth"
	"github.com/Jevon1999/api-presensi/internal/domain/member"
	"github.com/Jevon1999/api-presensi/internal/domain/progress"
	"github.com/Jevon1999/api-presensi/internal/domain/user"
	"github.com/Jevon1999/api-presensi/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var conflict *attendance.ConflictError
	if errors.As(err, &conflict) {
		ConflictWithData(w, conflict.Error(), conflict.Existing)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, auth.ErrInvalidBotAPIKey):
		Unauthorized(w, "Invalid bot API key")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Attendance domain errors
	case errors.Is(err, member.ErrMemberNotFound):
		NotFound(w, "Member not found or inactive")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrOutsideGeofence):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrDuplicateAttendance):
		Conflict(w, err.Error())

	// Progress domain errors
	case errors.Is(err, progress.ErrDuplicateProgress):
		Conflict(w, err.Error())

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
