package layer

import "time"

// StateKind names the blocking state of a layer.
type StateKind int

const (
	// Idle layers take the next command from the queue.
	Idle StateKind = iota
	// WaitingForRedraw layers are released at the start of the next Poll.
	WaitingForRedraw
	// Timer layers are released once the deadline has passed.
	Timer
)

func (k StateKind) String() string {
	switch k {
	case Idle:
		return "idle"
	case WaitingForRedraw:
		return "wait-redraw"
	case Timer:
		return "timer"
	default:
		return "unknown"
	}
}

// State is the blocking state of a layer. Until is only meaningful for Timer.
type State struct {
	Kind  StateKind
	Until time.Time
}

func idle() State {
	return State{Kind: Idle}
}
