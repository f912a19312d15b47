package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionJump              // Space, Up, X - flap
	ActionUp                // Up, K - scroll up (scoreboard)
	ActionDown              // Down, J - scroll down (scoreboard)
	ActionBack              // B, Escape - leave the current screen
	ActionQuit              // Q, Ctrl+C - exit game/session
	ActionScreenshot        // Ctrl+S - dump the current frame to a file
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionScreenshot:
		return "Screenshot"
	default:
		return "Unknown"
	}
}

// Cue is a one-shot event a front end may turn into sound or a visual flash.
// Cues are fire-and-forget; overlapping playback is fine.
type Cue int

const (
	CueJump  Cue = iota // every jump input
	CueScore            // a pipe pair was passed
	CueHit              // first collision with a pipe
	CueDie              // fell off the bottom of the play area
	CueStart            // a run started or restarted
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueScore:
		return "score"
	case CueHit:
		return "hit"
	case CueDie:
		return "die"
	case CueStart:
		return "start"
	default:
		return "unknown"
	}
}
