package charmap_test

import (
	"testing"

	xcharmap "golang.org/x/text/encoding/charmap"

	"github.com/teenjuna/tcodec"
	"github.com/teenjuna/tcodec/codec/charmap"
	"github.com/teenjuna/tcodec/internal/testing/require"
)

func TestDecode(t *testing.T) {
	dec := charmap.FromCharmap(xcharmap.Windows1252).NewDecoder()
	defer dec.Close()

	progress, from, to := dec.Encode(
		tcodec.WindowOf[byte](0x80, 'a', 0xE9),
		tcodec.NewWindow[rune](4),
	)
	require.Equal(t, progress, tcodec.InputUnderflow)
	require.Equal(t, from.Len(), 0)
	require.Equal(t, to.Elems(), []rune{'€', 'a', 'é'})
}

func TestDecodeUndefinedByte(t *testing.T) {
	dec := charmap.FromCharmap(xcharmap.Windows1252).NewDecoder()
	defer dec.Close()

	from := tcodec.WindowOf[byte]('a', 0x81, 'b')
	to := tcodec.NewWindow[rune](4)

	progress, from, to := dec.Encode(from, to)
	require.Equal(t, progress, tcodec.InvalidSequence)
	require.Equal(t, from.Len(), 2)
	require.Equal(t, to.Elems(), []rune{'a'})

	from, to, err := dec.Recover(from, to)
	require.Nil(t, err)

	progress, from, to = dec.Encode(from, to)
	require.Equal(t, progress, tcodec.InputUnderflow)
	require.Equal(t, from.Len(), 0)
	require.Equal(t, to.Elems(), []rune{'a', 'b'})
}

func TestDecodeTranslit(t *testing.T) {
	e, err := tcodec.Lookup("WINDOWS-1252//TRANSLIT")
	require.Nil(t, err)

	dec := e.NewDecoder()
	defer dec.Close()

	from := tcodec.WindowOf[byte]('a', 0x81, 'b')
	to := tcodec.NewWindow[rune](4)

	progress, from, to := dec.Encode(from, to)
	require.Equal(t, progress, tcodec.InvalidSequence)

	from, to, err = dec.Recover(from, to)
	require.Nil(t, err)

	progress, from, to = dec.Encode(from, to)
	require.Equal(t, progress, tcodec.InputUnderflow)
	require.Equal(t, from.Len(), 0)
	require.Equal(t, to.Elems(), []rune{'a', '�', 'b'})
}

func TestEncode(t *testing.T) {
	enc := charmap.FromCharmap(xcharmap.Windows1252).NewEncoder()
	defer enc.Close()

	progress, from, to := enc.Encode(
		tcodec.WindowOf('€', 'a'),
		tcodec.NewWindow[byte](4),
	)
	require.Equal(t, progress, tcodec.InputUnderflow)
	require.Equal(t, from.Len(), 0)
	require.Equal(t, to.Elems(), []byte{0x80, 'a'})
}

func TestEncodeUnrepresentable(t *testing.T) {
	enc := charmap.FromCharmap(xcharmap.Windows1252).NewEncoder()
	defer enc.Close()

	from := tcodec.WindowOf('a', '世', 'b')
	to := tcodec.NewWindow[byte](4)

	progress, from, to := enc.Encode(from, to)
	require.Equal(t, progress, tcodec.InvalidSequence)
	require.Equal(t, from.Len(), 2)

	from, _, err := enc.Recover(from, to)
	require.Nil(t, err)
	require.Equal(t, from.Len(), 1)
}

func TestEncodeTranslit(t *testing.T) {
	enc := charmap.FromCharmap(xcharmap.Windows1252).Translit().NewEncoder()
	defer enc.Close()

	from := tcodec.WindowOf('a', '世')
	to := tcodec.NewWindow[byte](4)

	progress, from, to := enc.Encode(from, to)
	require.Equal(t, progress, tcodec.InvalidSequence)

	from, to, err := enc.Recover(from, to)
	require.Nil(t, err)

	progress, from, to = enc.Encode(from, to)
	require.Equal(t, progress, tcodec.InputUnderflow)
	require.Equal(t, from.Len(), 0)
	require.Equal(t, to.Elems(), []byte{'a', '?'})
}

func TestNames(t *testing.T) {
	require.Equal(t, charmap.FromCharmap(xcharmap.Windows1252).Name(), "WINDOWS-1252")
	require.Equal(t, charmap.FromCharmap(xcharmap.ISO8859_15).Name(), "ISO-8859-15")

	e, err := tcodec.Lookup("CP1252")
	require.Nil(t, err)
	require.Equal(t, e.Name(), "WINDOWS-1252")

	e, err = tcodec.Lookup("latin9")
	require.Nil(t, err)
	require.Equal(t, e.Name(), "ISO-8859-15")
}

func TestFromCharmapPanics(t *testing.T) {
	require.PanicWithError(t, "charmap can't be nil", func() {
		charmap.FromCharmap(nil)
	})
}
