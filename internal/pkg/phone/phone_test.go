package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"081234567890", "6281234567890"},
		{"+6281234567890", "6281234567890"},
		{"6281234567890", "6281234567890"},
		{"0812-3456-7890", "6281234567890"},
		{"+62 812 3456 7890", "6281234567890"},
		{"6281234567890@c.us", "6281234567890"},
		{"81234567890", "6281234567890"},
		{"", ""},
		{"abc", ""},
	}
	for _, c := range cases {
		got := Canonical(c.input, DefaultCountryCode)
		if got != c.want {
			t.Errorf("Canonical(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestCanonical_Idempotent(t *testing.T) {
	for _, raw := range []string{"081234567890", "+6281234567890", "0857 1111 2222"} {
		once := Canonical(raw, DefaultCountryCode)
		assert.Equal(t, once, Canonical(once, DefaultCountryCode), raw)
	}
}

func TestCanonical_CustomCountryCode(t *testing.T) {
	assert.Equal(t, "60123456789", Canonical("0123456789", "60"))
	assert.Equal(t, "6281234567890", Canonical("081234567890", ""))
}

func TestChatID(t *testing.T) {
	assert.Equal(t, "6281234567890@c.us", ChatID("6281234567890"))
}
