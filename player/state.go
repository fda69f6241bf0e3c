package player

// State is a node of the playback state machine.
type State string

const (
	Loading   State = "loading"
	Stopped   State = "stopped"
	Playing   State = "playing"
	Paused    State = "paused"
	Frozen    State = "frozen"
	Completed State = "completed"
	Error     State = "error"
	Destroyed State = "destroyed"
)

func (s State) String() string {
	return string(s)
}
