// Package utf8 implements the UTF-8 encoding.
package utf8

import (
	"unicode/utf8"

	"github.com/teenjuna/tcodec"
)

const name = "UTF-8"

func init() {
	tcodec.Register(New(), "UTF8")
}

// Encoding is the UTF-8 encoding. The decoder rejects invalid leading or
// continuation bytes, overlong forms, surrogates and code points above
// U+10FFFF; a trailing partial rune is underflow, not an error. The encoder
// rejects surrogates. The transliterating variant substitutes U+FFFD when
// decoding and '?' when encoding.
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
	return &decoder{translit: e.translit}
}

func (e Encoding) NewEncoder() tcodec.Encoder {
	return &encoder{translit: e.translit}
}

type noState struct{}

type decoder struct {
	translit bool
	closed   bool
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

		r, size := utf8.DecodeRune(from.Elems())
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(from.Elems()) {
				// A valid prefix of a multi-byte rune: more input may
				// complete it.
				return tcodec.InputUnderflow, from, to
			}
			return tcodec.InvalidSequence, from, to
		}

		to = to.Put(r)
		from = from.Advance(size)
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
		if d.translit {
			to = to.Put(utf8.RuneError)
		}
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
		size := utf8.RuneLen(r)
		if size < 0 {
			return tcodec.InvalidSequence, from, to
		}
		if to.Free() < size {
			return tcodec.OutputUnderflow, from, to
		}

		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], r)
		to = to.Append(buf[:n]...)
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
