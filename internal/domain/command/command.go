package command

import "context"

// Kind is what a normalized command asks for, independent of its channel.
type Kind string

const (
	KindCheckIn      Kind = "CHECK_IN"
	KindCheckOut     Kind = "CHECK_OUT"
	KindProgressNote Kind = "PROGRESS_NOTE"
	KindStatusQuery  Kind = "STATUS_QUERY"
	KindHelp         Kind = "HELP"
	KindUnknown      Kind = "UNKNOWN"
)

// Channel names where a command came from. Only used for logging.
type Channel string

const (
	ChannelREST Channel = "rest"
	ChannelChat Channel = "chat"
)

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Command is the channel-neutral form of an inbound instruction.
type Command struct {
	Kind        Kind
	MemberKey   string
	Coordinates *Coordinates
	FreeText    string
	Channel     Channel
}

// Dispatcher routes a command to the attendance state machine or the
// progress collaborator. The error return is reserved for internal faults,
// every domain outcome is carried by Result.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd Command) (Result, error)
}
