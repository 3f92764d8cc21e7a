package prompt

import "math"

// DefaultRejectLabel is shown before the first rejection.
const DefaultRejectLabel = "No"

// Sizing controls how the accept control grows. Sizes are font pixels.
type Sizing struct {
	Base    float64
	Step    float64
	Max     float64
	MinPadX float64
	MinPadY float64
}

// Display is everything the view derives from an InteractionState.
type Display struct {
	AcceptFontSize float64
	AcceptPadX     float64
	AcceptPadY     float64
	RejectMessage  string
	RejectEvasive  bool
}

// Deriver computes a Display. Messages must not be empty.
type Deriver struct {
	Sizing   Sizing
	Messages []string
}

func (d Deriver) Derive(s InteractionState) Display {
	size := d.AcceptFontSize(s.RejectionCount)
	return Display{
		AcceptFontSize: size,
		AcceptPadX:     math.Max(d.Sizing.MinPadX, size/1.5),
		AcceptPadY:     math.Max(d.Sizing.MinPadY, size/3),
		RejectMessage:  d.RejectMessage(s.RejectionCount),
		RejectEvasive:  s.RejectionCount >= 1,
	}
}

// AcceptFontSize grows linearly with n and is clamped to Sizing.Max.
func (d Deriver) AcceptFontSize(n int) float64 {
	if n < 0 {
		n = 0
	}
	return math.Min(float64(n)*d.Sizing.Step+d.Sizing.Base, d.Sizing.Max)
}

// RejectMessage cycles through Messages by n mod len, so index 0 is first
// seen after a full cycle.
func (d Deriver) RejectMessage(n int) string {
	if n <= 0 || len(d.Messages) == 0 {
		return DefaultRejectLabel
	}
	return d.Messages[n%len(d.Messages)]
}
