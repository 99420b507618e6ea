// Package latin1 implements the ISO-8859-1 encoding.
package latin1

import (
	"github.com/teenjuna/tcodec"
)

const name = "LATIN1"

func init() {
	tcodec.Register(New(), "ISO-8859-1", "ISO8859-1")
}

// Encoding is the ISO-8859-1 encoding. Every byte decodes to the character
// with the same code point; characters above 0xFF are unrepresentable. The
// transliterating variant substitutes '?' when encoding.
type Encoding struct {
	translit bool
}

var (
	_ tcodec.Encoding       = Encoding{}
	_ tcodec.Transliterator = Encoding{}
)

func New() Encoding {
	return Encoding{}
}

func (e Encoding) Name() string {
	if e.translit {
		return name + tcodec.TranslitSuffix
	}
	return name
}

func (e Encoding) String() string {
	return e.Name()
}

func (e Encoding) Translit() tcodec.Encoding {
	return Encoding{translit: true}
}

func (e Encoding) NewDecoder() tcodec.Decoder {
	return &decoder{}
}

func (e Encoding) NewEncoder() tcodec.Encoder {
	return &encoder{translit: e.translit}
}

type noState struct{}

// decoder is total: every byte maps to a character, so it never reports an
// invalid sequence.
type decoder struct {
	closed bool
}

var _ tcodec.Decoder = (*decoder)(nil)

func (d *decoder) Encode(
	from tcodec.Window[byte], to tcodec.Window[rune],
) (tcodec.Progress, tcodec.Window[byte], tcodec.Window[rune]) {
	if d.closed {
		panic("codec is closed")
	}

	for !from.Empty() {
		if to.Full() {
			return tcodec.OutputUnderflow, from, to
		}
		to = to.Put(rune(from.At(0)))
		from = from.Advance(1)
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
		from = from.Advance(1)
	}

	return from, to, nil
}

func (d *decoder) Close() error {
	d.closed = true
	return nil
}

func (d *decoder) State() tcodec.State {
	return noState{}
}

func (d *decoder) SetState(state tcodec.State) {
	if _, ok := state.(noState); !ok {
		panic("state from a different codec")
	}
}

type encoder struct {
	translit bool
	closed   bool
}

var _ tcodec.Encoder = (*encoder)(nil)

func (e *encoder) Encode(
	from tcodec.Window[rune], to tcodec.Window[byte],
) (tcodec.Progress, tcodec.Window[rune], tcodec.Window[byte]) {
	if e.closed {
		panic("codec is closed")
	}

	for !from.Empty() {
		if to.Full() {
			return tcodec.OutputUnderflow, from, to
		}
		r := from.At(0)
		if r > 0xFF || r < 0 {
			return tcodec.InvalidSequence, from, to
		}
		to = to.Put(byte(r))
		from = from.Advance(1)
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
		if e.translit {
			to = to.Put('?')
		}
	}

	return from, to, nil
}

func (e *encoder) Close() error {
	e.closed = true
	return nil
}

func (e *encoder) State() tcodec.State {
	return noState{}
}

func (e *encoder) SetState(state tcodec.State) {
	if _, ok := state.(noState); !ok {
		panic("state from a different codec")
	}
}
