// Package tcodec defines a protocol for incremental, stateful conversion
// between byte sequences and character sequences. A [Codec] transcodes in
// bounded-size window steps, reporting after each step why it stopped; the
// driving loop that feeds input, drains output and recovers from invalid
// sequences lives in the caller. Concrete schemes are in the codec
// subpackages and register themselves with [Register].
package tcodec

import "errors"

// State is an opaque snapshot of a codec's internal progress. Its concrete
// type is private to each implementation; callers only move it between
// [Codec.State] and [Codec.SetState] of instances of the same scheme.
type State = any

// ErrNotRecoverable is returned by [Codec.Recover] when the scheme has no
// safe resynchronization point at the failure. The driver must treat it as
// fatal for the stream.
var ErrNotRecoverable = errors.New("no safe resynchronization point")

// Codec is a stateful, incremental transform engine from From elements to To
// elements. Decoders go byte to rune, encoders rune to byte.
//
// Instances are not thread-safe: each is single-use, single-stream, with all
// calls strictly ordered. Windows are lent to the codec for the duration of
// one call only and must not be retained.
type Codec[From, To any] interface {
	// Encode translates the maximal structurally complete prefix of from
	// that fits in to, and reports why it stopped. It never stops early for
	// any reason other than the three [Progress] values.
	//
	// An empty from yields [InputUnderflow] with to untouched; a full to
	// with a non-empty from yields [OutputUnderflow] with from untouched.
	// Calling Encode after Close panics.
	Encode(from Window[From], to Window[To]) (Progress, Window[From], Window[To])

	// Recover resynchronizes after [InvalidSequence] by skipping the
	// smallest input prefix necessary (at least one scheme unit), writing a
	// substitute into to when the scheme transliterates. It may rewrite the
	// input window's contents in place. Returns [ErrNotRecoverable] when no
	// safe resynchronization point exists.
	//
	// Calling Recover with a full output window, or after Close, panics.
	Recover(from Window[From], to Window[To]) (Window[From], Window[To], error)

	// Close releases codec-held resources. Encode and Recover must not be
	// called afterwards.
	Close() error

	// State returns a snapshot of the codec's internal state. Restoring it
	// with SetState, on this instance or a fresh one of the same scheme,
	// reproduces identical subsequent behavior for the same inputs.
	State() State

	// SetState restores a snapshot taken from a codec of the same scheme
	// and direction. A foreign snapshot panics.
	SetState(state State)
}

// Decoder converts encoded bytes into characters.
type Decoder = Codec[byte, rune]

// Encoder converts characters into encoded bytes.
type Encoder = Codec[rune, byte]
