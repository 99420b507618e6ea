package tcodec

// Progress tells the driver why a transcoding step stopped.
//
// Exactly one value is reported per step. It reflects the stop reason, not
// whether progress was made: a step may translate elements and still report
// a stop reason for whatever ended it.
type Progress uint8

const (
	// InputUnderflow means the input window was exhausted, or what remains
	// of it does not contain one more complete unit. It is not an error and
	// not necessarily the end of the stream: the driver supplies more input
	// and steps again.
	InputUnderflow Progress = iota
	// OutputUnderflow means the output window has no remaining free space.
	// The driver drains the output and steps again.
	OutputUnderflow
	// InvalidSequence means the output has room for at least one more unit,
	// but the next input unit(s) do not form a valid or representable
	// sequence under the active scheme. Everything valid before the bad
	// sequence has already been translated, so the failure point is exactly
	// the front of the input window.
	InvalidSequence
)

func (p Progress) String() string {
	switch p {
	case InputUnderflow:
		return "input underflow"
	case OutputUnderflow:
		return "output underflow"
	case InvalidSequence:
		return "invalid sequence"
	default:
		return "unknown progress"
	}
}
