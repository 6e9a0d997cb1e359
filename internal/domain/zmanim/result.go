package zmanim

// Phase locates "now" relative to this week's window.
type Phase int

const (
	// PhaseBeforeWindow covers Sunday through Friday before the pause boundary.
	PhaseBeforeWindow Phase = iota
	// PhaseInWindow means the pause is active.
	PhaseInWindow
	// PhaseAfterWindow covers Saturday after the resume boundary.
	PhaseAfterWindow
)

// String returns the upper-case phase name used in structured output.
func (p Phase) String() string {
	switch p {
	case PhaseBeforeWindow:
		return "BEFORE_WINDOW"
	case PhaseInWindow:
		return "IN_WINDOW"
	case PhaseAfterWindow:
		return "AFTER_WINDOW"
	default:
		return "UNKNOWN"
	}
}

// Result is the outcome of one evaluation.
type Result struct {
	// PauseAt is the clock time the window opens on the pause day.
	PauseAt TimeOfDay
	// ResumeAt is the clock time the window closes on the resume day.
	ResumeAt TimeOfDay
	// Phase is where "now" sits relative to the window.
	Phase Phase
}

// IsActive reports whether the window is open.
func (r Result) IsActive() bool {
	return r.Phase == PhaseInWindow
}
