package command

import (
	"strings"
)

var synonyms = map[string]Kind{
	"masuk":     KindCheckIn,
	"checkin":   KindCheckIn,
	"check in":  KindCheckIn,
	"check-in":  KindCheckIn,
	"absen":     KindCheckIn,
	"hadir":     KindCheckIn,
	"keluar":    KindCheckOut,
	"checkout":  KindCheckOut,
	"check out": KindCheckOut,
	"check-out": KindCheckOut,
	"pulang":    KindCheckOut,
	"status":    KindStatusQuery,
	"cek":       KindStatusQuery,
	"info":      KindStatusQuery,
	"help":      KindHelp,
	"bantuan":   KindHelp,
	"menu":      KindHelp,
	"mulai":     KindHelp,
	"start":     KindHelp,
}

const progressPrefix = "progress"

// ParseChatText maps free chat text to a command kind. Matching ignores
// case, surrounding and repeated whitespace, and a leading "/". For
// PROGRESS_NOTE the remainder after the prefix is returned with its
// original casing.
func ParseChatText(text string) (Kind, string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return KindUnknown, ""
	}
	fields[0] = strings.TrimPrefix(fields[0], "/")

	if strings.EqualFold(fields[0], progressPrefix) {
		return KindProgressNote, strings.Join(fields[1:], " ")
	}

	normalized := strings.ToLower(strings.Join(fields, " "))
	if kind, ok := synonyms[normalized]; ok {
		return kind, ""
	}
	return KindUnknown, ""
}
