package screen

import "fmt"

// InvariantViolation is the panic value for programming errors in stack
// use: popping the root, replacing with nil and the like.
type InvariantViolation struct {
	Op  string
	Msg string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation in %s: %s", e.Op, e.Msg)
}

// Violation panics with an *InvariantViolation.
func Violation(op, format string, args ...any) {
	panic(&InvariantViolation{Op: op, Msg: fmt.Sprintf(format, args...)})
}

// Stack is the ordered list of screens; the last one is active.
type Stack struct {
	screens []Screen
}

// NewStack creates a stack holding only root.
func NewStack(root Screen) *Stack {
	if root == nil {
		Violation("NewStack", "nil root screen")
	}
	return &Stack{screens: []Screen{root}}
}

// Top returns the active screen.
func (s *Stack) Top() Screen {
	return s.screens[len(s.screens)-1]
}

// Len returns the number of screens.
func (s *Stack) Len() int {
	return len(s.screens)
}

// Screens returns a copy of the stack, bottom to top.
func (s *Stack) Screens() []Screen {
	out := make([]Screen, len(s.screens))
	copy(out, s.screens)
	return out
}

// Apply performs a transition and reports whether the session should end.
// Misuse panics with *InvariantViolation and leaves the stack unchanged.
func (s *Stack) Apply(t Transition) bool {
	n := len(s.screens)
	next := s.screens

	switch t.Kind {
	case KindKeep:
		return false

	case KindQuit:
		return true

	case KindPush:
		requireScreen("Push", t.Screen)
		next = append(s.Screens(), t.Screen)

	case KindPop:
		if n < 2 {
			Violation("Pop", "cannot pop the last screen")
		}
		next = s.screens[:n-1]

	case KindReplace:
		requireScreen("Replace", t.Screen)
		next = append(s.Screens()[:n-1], t.Screen)

	case KindPopThenReplace:
		requireScreen("PopThenReplace", t.Screen)
		if n < 2 {
			Violation("PopThenReplace", "need at least 2 screens, have %d", n)
		}
		next = append(s.Screens()[:n-2], t.Screen)

	default:
		Violation("Apply", "unknown transition kind %d", int(t.Kind))
	}

	s.screens = next
	return false
}

func requireScreen(op string, s Screen) {
	if s == nil {
		Violation(op, "nil screen")
	}
}
