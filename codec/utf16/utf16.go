// Package utf16 implements the UTF-16 encodings.
package utf16

import (
	"encoding/binary"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/teenjuna/tcodec"
)

func init() {
	tcodec.Register(New(), "UTF16")
	tcodec.Register(BigEndian())
	tcodec.Register(LittleEndian())
}

type variant uint8

const (
	sniffing variant = iota
	bigEndian
	littleEndian
)

// Encoding is a UTF-16 encoding. [New] sniffs a leading byte-order mark and
// defaults to big-endian without one; [BigEndian] and [LittleEndian] use a
// fixed byte order and treat a BOM as an ordinary character. Lone or
// reversed surrogate units are invalid. The transliterating variant
// substitutes U+FFFD when decoding and '?' when encoding. The encoder's
// substitute takes a whole 2-byte unit; recovering with less free output
// space skips the invalid character without substituting. Encode only
// reports an invalid sequence with a unit of output room free, so recovery
// right after it always has space for the substitute.
type Encoding struct {
	variant  variant
	translit bool
}

var (
	_ tcodec.Encoding       = Encoding{}
	_ tcodec.Transliterator = Encoding{}
)

// New returns the byte-order-mark sniffing UTF-16 encoding. Its encoder
// emits a big-endian BOM before the first character.
func New() Encoding {
	return Encoding{variant: sniffing}
}

// BigEndian returns the UTF-16BE encoding.
func BigEndian() Encoding {
	return Encoding{variant: bigEndian}
}

// LittleEndian returns the UTF-16LE encoding.
func LittleEndian() Encoding {
	return Encoding{variant: littleEndian}
}

func (e Encoding) Name() string {
	name := "UTF-16"
	switch e.variant {
	case bigEndian:
		name = "UTF-16BE"
	case littleEndian:
		name = "UTF-16LE"
	}
	if e.translit {
		name += tcodec.TranslitSuffix
	}
	return name
}

func (e Encoding) String() string {
	return e.Name()
}

func (e Encoding) Translit() tcodec.Encoding {
	return Encoding{variant: e.variant, translit: true}
}

func (e Encoding) NewDecoder() tcodec.Decoder {
	return &decoder{
		translit: e.translit,
		st:       e.initialState(),
	}
}

func (e Encoding) NewEncoder() tcodec.Encoder {
	return &encoder{
		translit: e.translit,
		st:       e.initialState(),
	}
}

func (e Encoding) initialState() state {
	return state{
		big:    e.variant != littleEndian,
		locked: e.variant != sniffing,
	}
}

// state carries the byte order and whether the BOM phase is over: for a
// decoder that the mark has been sniffed, for an encoder that it has been
// emitted. It is the codec's whole checkpointable state.
type state struct {
	big    bool
	locked bool
}

type decoder struct {
	translit bool
	st       state
	closed   bool
}

var _ tcodec.Decoder = (*decoder)(nil)

func (d *decoder) Encode(
	from tcodec.Window[byte], to tcodec.Window[rune],
) (tcodec.Progress, tcodec.Window[byte], tcodec.Window[rune]) {
	if d.closed {
		panic("codec is closed")
	}

	if from.Empty() {
		return tcodec.InputUnderflow, from, to
	}
	if to.Full() {
		return tcodec.OutputUnderflow, from, to
	}

	if !d.st.locked {
		if from.Len() < 2 {
			return tcodec.InputUnderflow, from, to
		}
		switch {
		case from.At(0) == 0xFE && from.At(1) == 0xFF:
			d.st.big = true
			from = from.Advance(2)
		case from.At(0) == 0xFF && from.At(1) == 0xFE:
			d.st.big = false
			from = from.Advance(2)
		}
		d.st.locked = true
	}

	for from.Len() >= 2 {
		if to.Full() {
			return tcodec.OutputUnderflow, from, to
		}

		u := d.unit(from.Elems())
		switch {
		case u >= 0xD800 && u < 0xDC00:
			// Lead surrogate, needs a trail unit.
			if from.Len() < 4 {
				return tcodec.InputUnderflow, from, to
			}
			u2 := d.unit(from.Elems()[2:4])
			if u2 < 0xDC00 || u2 >= 0xE000 {
				return tcodec.InvalidSequence, from, to
			}
			to = to.Put(utf16.DecodeRune(rune(u), rune(u2)))
			from = from.Advance(4)
		case u >= 0xDC00 && u < 0xE000:
			// Lone trail surrogate.
			return tcodec.InvalidSequence, from, to
		default:
			to = to.Put(rune(u))
			from = from.Advance(2)
		}
	}

	return tcodec.InputUnderflow, from, to
}

func (d *decoder) Recover(
	from tcodec.Window[byte], to tcodec.Window[rune],
) (tcodec.Window[byte], tcodec.Window[rune], error) {
	if d.closed {
		panic("codec is closed")
	}
	if to.Full() {
		panic("recover needs a free output slot")
	}

	if !from.Empty() {
		from = from.Advance(min(2, from.Len()))
		if d.translit {
			to = to.Put('�')
		}
	}

	return from, to, nil
}

func (d *decoder) Close() error {
	d.closed = true
	return nil
}

func (d *decoder) State() tcodec.State {
	return d.st
}

func (d *decoder) SetState(st tcodec.State) {
	s, ok := st.(state)
	if !ok {
		panic("state from a different codec")
	}
	d.st = s
}

func (d *decoder) unit(p []byte) uint16 {
	if d.st.big {
		return binary.BigEndian.Uint16(p)
	}
	return binary.LittleEndian.Uint16(p)
}

type encoder struct {
	translit bool
	st       state
	closed   bool
}

var _ tcodec.Encoder = (*encoder)(nil)

func (e *encoder) Encode(
	from tcodec.Window[rune], to tcodec.Window[byte],
) (tcodec.Progress, tcodec.Window[rune], tcodec.Window[byte]) {
	if e.closed {
		panic("codec is closed")
	}

	if from.Empty() {
		return tcodec.InputUnderflow, from, to
	}

	if !e.st.locked {
		if to.Free() < 2 {
			return tcodec.OutputUnderflow, from, to
		}
		to = e.append(to, 0xFEFF)
		e.st.locked = true
	}

	for !from.Empty() {
		if to.Free() < 2 {
			return tcodec.OutputUnderflow, from, to
		}

		r := from.At(0)
		switch {
		case !utf8.ValidRune(r):
			return tcodec.InvalidSequence, from, to
		case r <= 0xFFFF:
			to = e.append(to, uint16(r))
			from = from.Advance(1)
		default:
			if to.Free() < 4 {
				return tcodec.OutputUnderflow, from, to
			}
			r1, r2 := utf16.EncodeRune(r)
			to = e.append(e.append(to, uint16(r1)), uint16(r2))
			from = from.Advance(1)
		}
	}

	return tcodec.InputUnderflow, from, to
}

func (e *encoder) Recover(
	from tcodec.Window[rune], to tcodec.Window[byte],
) (tcodec.Window[rune], tcodec.Window[byte], error) {
	if e.closed {
		panic("codec is closed")
	}
	if to.Full() {
		panic("recover needs a free output slot")
	}

	if !from.Empty() {
		from = from.Advance(1)
		if e.translit && to.Free() >= 2 {
			to = e.append(to, '?')
		}
	}

	return from, to, nil
}

func (e *encoder) Close() error {
	e.closed = true
	return nil
}

func (e *encoder) State() tcodec.State {
	return e.st
}

func (e *encoder) SetState(st tcodec.State) {
	s, ok := st.(state)
	if !ok {
		panic("state from a different codec")
	}
	e.st = s
}

func (e *encoder) append(to tcodec.Window[byte], u uint16) tcodec.Window[byte] {
	var b [2]byte
	if e.st.big {
		binary.BigEndian.PutUint16(b[:], u)
	} else {
		binary.LittleEndian.PutUint16(b[:], u)
	}
	return to.Append(b[:]...)
}
