package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Has reports whether a field already carries an error.
func (v ValidationErrors) Has(field string) bool {
	for _, err := range v {
		if err.Field == field {
			return true
		}
	}
	return false
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// MinRunes reports whether the trimmed string has at least n characters.
// Counts runes, not bytes, so "Sakit demam" and "Sakít démam" measure the same.
func MinRunes(s string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= n
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidUUID accepts the canonical hyphenated form of any UUID version.
func IsValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// Phone number validation. Accepts local (08...) and international
// (+62..., 62...) forms with common separators.
func IsValidPhoneNumber(phone string) bool {
	phone = phoneSeparators.Replace(phone)
	phone = strings.TrimPrefix(phone, "+")

	if len(phone) < 9 || len(phone) > 15 {
		return false
	}
	return IsNumeric(phone)
}

// IsInRange reports whether v lies in the closed interval [min, max].
func IsInRange(v, min, max float64) bool {
	return v >= min && v <= max
}
