package phone

import (
	"strings"
	"unicode"
)

// DefaultCountryCode is the Indonesian calling code.
const DefaultCountryCode = "62"

// Canonical normalizes a phone number into the digits-only form used as the
// member join key. Non-digits are stripped, a leading trunk "0" becomes the
// country code, and the country code is prepended when missing.
//
// WhatsApp chat ids such as "6281234567890@c.us" are accepted; everything
// after the "@" is ignored.
func Canonical(raw, countryCode string) string {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	if at := strings.IndexByte(raw, '@'); at >= 0 {
		raw = raw[:at]
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(digits, countryCode):
		return digits
	case strings.HasPrefix(digits, "0"):
		return countryCode + strings.TrimPrefix(digits, "0")
	default:
		return countryCode + digits
	}
}

// ChatID turns a canonical number into a WhatsApp personal chat id.
func ChatID(canonical string) string {
	return canonical + "@c.us"
}
