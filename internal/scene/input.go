package scene

import (
	"slices"

	"github.com/iburimskiy/valentine/internal/prompt"
)

// Control identifies an interactive element of the prompt window.
type Control int

const (
	NoControl Control = iota
	AcceptControl
	RejectControl
	AudioControl
)

func (c Control) String() string {
	switch c {
	case AcceptControl:
		return "accept"
	case RejectControl:
		return "reject"
	case AudioControl:
		return "audio"
	default:
		return "none"
	}
}

// Focusable is the keyboard focus order for the current state.
func (s *Scene) Focusable() []Control {
	if s.machine.State() == prompt.Accepted {
		return []Control{AudioControl}
	}
	return []Control{AcceptControl, RejectControl, AudioControl}
}

// NextFocus moves focus by delta through order, wrapping at both ends. From
// no focus (or a control no longer in order) it lands on the first or last.
func NextFocus(order []Control, current Control, delta int) Control {
	if len(order) == 0 {
		return NoControl
	}
	i := slices.Index(order, current)
	switch {
	case i < 0 && delta >= 0:
		return order[0]
	case i < 0:
		return order[len(order)-1]
	}
	n := len(order)
	return order[((i+delta)%n+n)%n]
}

// PointerOver records the control under the pointer this frame. Crossing
// into the reject control counts as a pointer enter.
func (s *Scene) PointerOver(c Control) {
	over := c == RejectControl
	if over && !s.overReject {
		s.PointerEnterReject()
	}
	s.overReject = over
}

// Touch handles a touch starting on c and reports whether it should also
// activate c. A touch on an evasive reject control only makes it run.
func (s *Scene) Touch(c Control) bool {
	if c == RejectControl && s.PointerEnterReject() {
		return false
	}
	return true
}

// Activate presses the accept or reject control. Other controls are not
// the scene's and are ignored.
func (s *Scene) Activate(c Control) {
	switch c {
	case AcceptControl:
		s.Accept()
	case RejectControl:
		s.Reject()
	}
}
