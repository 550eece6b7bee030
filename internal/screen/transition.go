package screen

import tea "github.com/charmbracelet/bubbletea"

// Kind enumerates stack transitions.
type Kind int

const (
	KindKeep Kind = iota
	KindPush
	KindPop
	KindReplace
	KindPopThenReplace
	KindQuit
)

func (k Kind) String() string {
	switch k {
	case KindKeep:
		return "keep"
	case KindPush:
		return "push"
	case KindPop:
		return "pop"
	case KindReplace:
		return "replace"
	case KindPopThenReplace:
		return "pop_then_replace"
	case KindQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Transition is what a screen's Event asks the host to do with the stack.
// Notice, when set, is shown to the user and logged. Cmd is handed back to
// the Bubble Tea runtime so embedded components can schedule work.
type Transition struct {
	Kind   Kind
	Screen Screen
	Notice string
	Cmd    tea.Cmd
}

// Keep leaves the stack alone.
func Keep() Transition { return Transition{Kind: KindKeep} }

// Push suspends the current top and makes s active.
func Push(s Screen) Transition { return Transition{Kind: KindPush, Screen: s} }

// Pop discards the top; the screen beneath resumes.
func Pop() Transition { return Transition{Kind: KindPop} }

// Replace discards the top and makes s active in its place.
func Replace(s Screen) Transition { return Transition{Kind: KindReplace, Screen: s} }

// PopThenReplace discards the top, then replaces the screen beneath with s.
func PopThenReplace(s Screen) Transition {
	return Transition{Kind: KindPopThenReplace, Screen: s}
}

// Quit ends the session.
func Quit() Transition { return Transition{Kind: KindQuit} }

// WithNotice attaches a diagnostic for the user.
func (t Transition) WithNotice(notice string) Transition {
	t.Notice = notice
	return t
}

// WithCmd attaches a Bubble Tea command to run after the transition.
func (t Transition) WithCmd(cmd tea.Cmd) Transition {
	t.Cmd = cmd
	return t
}
