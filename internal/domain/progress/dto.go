package progress

import (
	"unicode/utf8"

	"github.com/Jevon1999/api-presensi/internal/pkg/validator"
)

const maxDescriptionLength = 2000

type CreateProgressRequest struct {
	Phone       string `json:"phone"`
	Description string `json:"description"`
}

func (r *CreateProgressRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone is required",
		})
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	} else if utf8.RuneCountInString(r.Description) > maxDescriptionLength {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 2000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProgressResponse struct {
	ID          string `json:"id"`
	MemberID    string `json:"member_id"`
	MemberName  string `json:"member_name"`
	Date        string `json:"date"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}
