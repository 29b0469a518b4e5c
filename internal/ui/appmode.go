package ui

// AppMode is the dashboard's input mode. Keys mean different things while a
// widget is being moved or resized.
type AppMode int

const (
	ModeDashboard AppMode = iota
	ModeMove
	ModeResize
)

func (m AppMode) String() string {
	switch m {
	case ModeDashboard:
		return "Dashboard"
	case ModeMove:
		return "Move"
	case ModeResize:
		return "Resize"
	default:
		return "Unknown"
	}
}
