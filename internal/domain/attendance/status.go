package attendance

import "strings"

type Status string

const (
	StatusPresent Status = "present"
	StatusExcused Status = "excused"
	StatusSick    Status = "sick"
	StatusAbsent  Status = "absent"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPresent, StatusExcused, StatusSick, StatusAbsent}

var statusAliases = map[string]Status{
	"present": StatusPresent,
	"excused": StatusExcused,
	"sick":    StatusSick,
	"absent":  StatusAbsent,
	"hadir":   StatusPresent,
	"izin":    StatusExcused,
	"sakit":   StatusSick,
	"alpha":   StatusAbsent,
}

// statusChoices renders the accepted values for validation messages.
func statusChoices() string {
	names := make([]string, 0, len(Statuses))
	labels := make([]string, 0, len(Statuses))
	for _, st := range Statuses {
		names = append(names, string(st))
		labels = append(labels, strings.ToLower(st.Label()))
	}
	return strings.Join(names, ", ") + " (or " + strings.Join(labels, ", ") + ")"
}

// ParseStatus accepts the English values and the Indonesian aliases
// (hadir, izin, sakit, alpha), case-insensitively.
func ParseStatus(s string) (Status, bool) {
	st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}

// Label is the Indonesian display name used in chat replies.
func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "Hadir"
	case StatusExcused:
		return "Izin"
	case StatusSick:
		return "Sakit"
	case StatusAbsent:
		return "Alpha"
	default:
		return string(s)
	}
}
