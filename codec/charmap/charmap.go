// Package charmap adapts the 8-bit character set tables of
// golang.org/x/text/encoding/charmap to the codec protocol.
package charmap

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/teenjuna/tcodec"
)

func init() {
	tcodec.Register(FromCharmap(charmap.Windows1252), "CP1252")
	tcodec.Register(FromCharmap(charmap.ISO8859_15), "LATIN9")
}

// Encoding adapts one [charmap.Charmap]. Bytes the table leaves undefined
// and characters outside the table are invalid. The transliterating variant
// substitutes U+FFFD when decoding and '?' when encoding.
type Encoding struct {
	cm       *charmap.Charmap
	translit bool
}

var (
	_ tcodec.Encoding       = Encoding{}
	_ tcodec.Transliterator = Encoding{}
)

// FromCharmap returns an encoding backed by the given table. The name is the
// table's, uppercased with spaces mapped to dashes ("Windows 1252" becomes
// "WINDOWS-1252").
func FromCharmap(cm *charmap.Charmap) Encoding {
	if cm == nil {
		panic("charmap can't be nil")
	}
	return Encoding{cm: cm}
}

func (e Encoding) Name() string {
	name := strings.ReplaceAll(strings.ToUpper(e.cm.String()), " ", "-")
	if e.translit {
		name += tcodec.TranslitSuffix
	}
	return name
}

func (e Encoding) String() string {
	return e.Name()
}

func (e Encoding) Translit() tcodec.Encoding {
	return Encoding{cm: e.cm, translit: true}
}

func (e Encoding) NewDecoder() tcodec.Decoder {
	return &decoder{cm: e.cm, translit: e.translit}
}

func (e Encoding) NewEncoder() tcodec.Encoder {
	return &encoder{cm: e.cm, translit: e.translit}
}

type noState struct{}

type decoder struct {
	cm       *charmap.Charmap
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
		r := d.cm.DecodeByte(from.At(0))
		if r == utf8.RuneError {
			return tcodec.InvalidSequence, from, to
		}
		to = to.Put(r)
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
	cm       *charmap.Charmap
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
		b, ok := e.cm.EncodeRune(from.At(0))
		if !ok {
			return tcodec.InvalidSequence, from, to
		}
		to = to.Put(b)
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
