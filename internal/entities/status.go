package entities

// Status is a player's current activity state. The integer values are part
// of the timer store wire contract (the status_{owner} key) and must not be
// renumbered.
type Status int32

// Player activity states
const (
	StatusIdle       Status = 0
	StatusTravelling Status = 1
	StatusExploring  Status = 2
)

// IsValid reports whether s is one of the known states.
func (s Status) IsValid() bool {
	switch s {
	case StatusIdle, StatusTravelling, StatusExploring:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusTravelling:
		return "travelling"
	case StatusExploring:
		return "exploring"
	default:
		return "unknown"
	}
}
