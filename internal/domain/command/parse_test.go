package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChatText(t *testing.T) {
	cases := []struct {
		input    string
		wantKind Kind
		wantText string
	}{
		{"CheckIn", KindCheckIn, ""},
		{"checkin", KindCheckIn, ""},
		{" checkin ", KindCheckIn, ""},
		{"Check   In", KindCheckIn, ""},
		{"/masuk", KindCheckIn, ""},
		{"ABSEN", KindCheckIn, ""},
		{"hadir", KindCheckIn, ""},
		{"pulang", KindCheckOut, ""},
		{"check out", KindCheckOut, ""},
		{"Keluar", KindCheckOut, ""},
		{"status", KindStatusQuery, ""},
		{"cek", KindStatusQuery, ""},
		{"menu", KindHelp, ""},
		{"/start", KindHelp, ""},
		{"progress Membuat API login", KindProgressNote, "Membuat API login"},
		{"PROGRESS   fix  bug\nmodul absen", KindProgressNote, "fix bug modul absen"},
		{"progress", KindProgressNote, ""},
		{"progressive", KindUnknown, ""},
		{"halo", KindUnknown, ""},
		{"checkin sekarang", KindUnknown, ""},
		{"", KindUnknown, ""},
		{"   ", KindUnknown, ""},
	}
	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			kind, text := ParseChatText(c.input)
			assert.Equal(t, c.wantKind, kind)
			assert.Equal(t, c.wantText, text)
		})
	}
}

func TestParseChatText_CaseAndSpaceInsensitive(t *testing.T) {
	variants := []string{"CheckIn", "checkin", " checkin ", "CHECKIN"}
	for _, v := range variants {
		kind, _ := ParseChatText(v)
		assert.Equal(t, KindCheckIn, kind, v)
	}
}
