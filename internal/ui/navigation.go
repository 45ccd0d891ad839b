package ui

// Action is a navigation command decoded from input
type Action int

const (
	ActionNone Action = iota
	ActionPrev
	ActionNext
	ActionFirst
	ActionLast
	ActionScrollUp
	ActionScrollDown
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionPrev:
		return "prev"
	case ActionNext:
		return "next"
	case ActionFirst:
		return "first"
	case ActionLast:
		return "last"
	case ActionScrollUp:
		return "scroll-up"
	case ActionScrollDown:
		return "scroll-down"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// State is the pager cursor: which diagnostic is shown and how many of
// its lines are scrolled off the top. Scroll may run past the content.
type State struct {
	Index  int
	Scroll int
}

// Navigate applies an action to a state over a buffer of length n.
// Index stays in [0, n-1]; Scroll never goes negative and resets when
// Index moves. Quit and None return the state unchanged.
func Navigate(s State, a Action, n int) State {
	if n <= 0 {
		return s
	}
	last := n - 1

	switch a {
	case ActionPrev:
		if s.Index > 0 {
			return State{Index: s.Index - 1}
		}
	case ActionNext:
		if s.Index < last {
			return State{Index: s.Index + 1}
		}
	case ActionFirst:
		return State{Index: 0}
	case ActionLast:
		return State{Index: last}
	case ActionScrollUp:
		if s.Scroll > 0 {
			s.Scroll--
		}
	case ActionScrollDown:
		s.Scroll++
	}
	return s
}
