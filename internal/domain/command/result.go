package command

// Outcome classifies a Result for adapters mapping it to a transport.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeConflict Outcome = "conflict"
	OutcomeDenied   Outcome = "denied"
	OutcomeNotFound Outcome = "not_found"
	OutcomeInvalid  Outcome = "invalid"
	OutcomeInfo     Outcome = "info"
	OutcomeUnknown  Outcome = "unknown"
)

// Message keys. Each maps to one bot template.
const (
	MsgCheckInSuccess       = "check_in.success"
	MsgCheckInAlready       = "check_in.already"
	MsgCheckOutSuccess      = "check_out.success"
	MsgCheckOutAlready      = "check_out.already"
	MsgNotCheckedIn         = "check_out.not_checked_in"
	MsgOutsideGeofence      = "geofence.denied"
	MsgMemberNotFound       = "member.not_found"
	MsgProgressSuccess      = "progress.success"
	MsgProgressDuplicate    = "progress.duplicate"
	MsgProgressEmpty        = "progress.description_required"
	MsgStatusNone           = "status.none"
	MsgStatusCheckedIn      = "status.checked_in"
	MsgStatusCheckedOut     = "status.checked_out"
	MsgHelp                 = "help"
	MsgUnknown              = "unknown"
	MsgLocationRequired     = "location.required"
	MsgLocationCaptionFirst = "location.caption_required"
	MsgValidationFailed     = "validation.failed"
	MsgError                = "error"
)

// Result is a channel-neutral answer: an outcome, a message key and the
// values a template may interpolate. Payload holds the structured response
// for channels that render JSON.
type Result struct {
	Kind       Kind
	Outcome    Outcome
	MessageKey string
	Data       map[string]string
	Fields     map[string]string
	Payload    any
}

// Succeeded reports whether the command changed or returned state as asked.
func (r Result) Succeeded() bool {
	return r.Outcome == OutcomeSuccess || r.Outcome == OutcomeInfo
}
