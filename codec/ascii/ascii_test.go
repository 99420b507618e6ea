package ascii_test

import (
	"testing"

	"github.com/teenjuna/tcodec"
	"github.com/teenjuna/tcodec/codec/ascii"
	"github.com/teenjuna/tcodec/internal/testing/require"
)

func TestDecode(t *testing.T) {
	dec := ascii.New().NewDecoder()
	defer dec.Close()

	from := tcodec.WindowOf[byte](0x41, 0xFF, 0x42)
	to := tcodec.NewWindow[rune](10)

	// Everything valid before the bad byte is produced, then the failure is
	// reported with the cursor parked exactly on it.
	progress, from, to := dec.Encode(from, to)
	require.Equal(t, progress, tcodec.InvalidSequence)
	require.Equal(t, to.Elems(), []rune{'A'})
	require.Equal(t, from.At(0), byte(0xFF))

	from, to, err := dec.Recover(from, to)
	require.Nil(t, err)
	require.Equal(t, from.Len(), 1)
	require.Equal(t, to.Elems(), []rune{'A'})

	progress, from, to = dec.Encode(from, to)
	require.Equal(t, progress, tcodec.InputUnderflow)
	require.Equal(t, from.Len(), 0)
	require.Equal(t, to.Elems(), []rune{'A', 'B'})
}

func TestDecodeOutputUnderflow(t *testing.T) {
	dec := ascii.New().NewDecoder()
	defer dec.Close()

	progress, from, to := dec.Encode(
		tcodec.WindowOf[byte](0x41, 0x42, 0x43),
		tcodec.NewWindow[rune](1),
	)
	require.Equal(t, progress, tcodec.OutputUnderflow)
	require.Equal(t, from.Len(), 2)
	require.Equal(t, to.Elems(), []rune{'A'})
}

func TestDecodeTranslit(t *testing.T) {
	dec := ascii.New().Translit().NewDecoder()
	defer dec.Close()

	from := tcodec.WindowOf[byte](0xFF)
	to := tcodec.NewWindow[rune](4)

	progress, from, to := dec.Encode(from, to)
	require.Equal(t, progress, tcodec.InvalidSequence)

	from, to, err := dec.Recover(from, to)
	require.Nil(t, err)
	require.Equal(t, from.Len(), 0)
	require.Equal(t, to.Elems(), []rune{'�'})
}

func TestEncode(t *testing.T) {
	enc := ascii.New().NewEncoder()
	defer enc.Close()

	progress, from, to := enc.Encode(
		tcodec.WindowOf('h', 'i', 'é'),
		tcodec.NewWindow[byte](10),
	)
	require.Equal(t, progress, tcodec.InvalidSequence)
	require.Equal(t, to.Elems(), []byte("hi"))
	require.Equal(t, from.At(0), 'é')

	from, to, err := enc.Recover(from, to)
	require.Nil(t, err)
	require.Equal(t, from.Len(), 0)
	require.Equal(t, to.Elems(), []byte("hi"))
}

func TestEncodeTranslit(t *testing.T) {
	enc := ascii.New().Translit().NewEncoder()
	defer enc.Close()

	progress, from, to := enc.Encode(
		tcodec.WindowOf('h', 'é'),
		tcodec.NewWindow[byte](4),
	)
	require.Equal(t, progress, tcodec.InvalidSequence)

	from, to, err := enc.Recover(from, to)
	require.Nil(t, err)
	require.Equal(t, from.Len(), 0)
	require.Equal(t, to.Elems(), []byte("h?"))
}

func TestRecoverNeedsFreeSlot(t *testing.T) {
	dec := ascii.New().NewDecoder()
	defer dec.Close()

	require.PanicWithError(t, "recover needs a free output slot", func() {
		_, _, _ = dec.Recover(tcodec.WindowOf[byte](0xFF), tcodec.WindowOf[rune]())
	})
}

func TestNames(t *testing.T) {
	require.Equal(t, ascii.New().Name(), "ASCII")
	require.Equal(t, ascii.New().Translit().Name(), "ASCII//TRANSLIT")

	e, err := tcodec.Lookup("US-ASCII")
	require.Nil(t, err)
	require.Equal(t, e.Name(), "ASCII")
}
