package utf32_test

import (
	"testing"

	"github.com/teenjuna/tcodec"
	"github.com/teenjuna/tcodec/codec/utf32"
	"github.com/teenjuna/tcodec/internal/testing/require"
)

func TestDecodeSniffsBOM(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input []byte
	}{
		{"big-endian BOM", []byte{0x00, 0x00, 0xFE, 0xFF, 0x00, 0x00, 0x00, 'A'}},
		{"little-endian BOM", []byte{0xFF, 0xFE, 0x00, 0x00, 'A', 0x00, 0x00, 0x00}},
		{"no BOM defaults to big-endian", []byte{0x00, 0x00, 0x00, 'A'}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dec := utf32.New().NewDecoder()
			defer dec.Close()

			progress, from, to := dec.Encode(
				tcodec.WindowOf(tc.input...),
				tcodec.NewWindow[rune](4),
			)
			require.Equal(t, progress, tcodec.InputUnderflow)
			require.Equal(t, from.Len(), 0)
			require.Equal(t, to.Elems(), []rune{'A'})
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input []byte
	}{
		{"above max code point", []byte{0x00, 0x11, 0x00, 0x00}},
		{"surrogate value", []byte{0x00, 0x00, 0xD8, 0x00}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dec := utf32.BigEndian().NewDecoder()
			defer dec.Close()

			from := tcodec.WindowOf(tc.input...)
			to := tcodec.NewWindow[rune](4)

			progress, from, to := dec.Encode(from, to)
			require.Equal(t, progress, tcodec.InvalidSequence)
			require.Equal(t, from.Len(), 4)

			from, _, err := dec.Recover(from, to)
			require.Nil(t, err)
			require.Equal(t, from.Len(), 0)
		})
	}
}

func TestDecodePartialUnit(t *testing.T) {
	dec := utf32.BigEndian().NewDecoder()
	defer dec.Close()

	progress, from, to := dec.Encode(
		tcodec.WindowOf[byte](0x00, 0x00, 0x00),
		tcodec.NewWindow[rune](4),
	)
	require.Equal(t, progress, tcodec.InputUnderflow)
	require.Equal(t, from.Len(), 3)
	require.Equal(t, to.Len(), 0)
}

func TestEncode(t *testing.T) {
	enc := utf32.New().NewEncoder()
	defer enc.Close()

	progress, from, to := enc.Encode(
		tcodec.WindowOf('A', rune(0x1F600)),
		tcodec.NewWindow[byte](16),
	)
	require.Equal(t, progress, tcodec.InputUnderflow)
	require.Equal(t, from.Len(), 0)
	require.Equal(t, to.Elems(), []byte{
		0x00, 0x00, 0xFE, 0xFF, // BOM
		0x00, 0x00, 0x00, 'A',
		0x00, 0x01, 0xF6, 0x00,
	})
}

func TestEncodeTranslit(t *testing.T) {
	enc := utf32.BigEndian().Translit().NewEncoder()
	defer enc.Close()

	from := tcodec.WindowOf(rune(0xD800), 'A')
	to := tcodec.NewWindow[byte](16)

	progress, from, to := enc.Encode(from, to)
	require.Equal(t, progress, tcodec.InvalidSequence)
	require.Equal(t, to.Len(), 0)

	// An invalid sequence is only reported with a whole unit of output room
	// free, so the substitute fits.
	from, to, err := enc.Recover(from, to)
	require.Nil(t, err)
	require.Equal(t, to.Elems(), []byte{0x00, 0x00, 0x00, '?'})

	progress, from, to = enc.Encode(from, to)
	require.Equal(t, progress, tcodec.InputUnderflow)
	require.Equal(t, from.Len(), 0)
	require.Equal(t, to.Elems(), []byte{0x00, 0x00, 0x00, '?', 0x00, 0x00, 0x00, 'A'})
}

func TestEncodeTranslitSkipsWithoutRoomForUnit(t *testing.T) {
	enc := utf32.BigEndian().Translit().NewEncoder()
	defer enc.Close()

	// Three free bytes satisfy Recover's precondition but can't hold the
	// 4-byte substitute: the invalid character is skipped without one.
	from, to, err := enc.Recover(
		tcodec.WindowOf(rune(0xD800)),
		tcodec.NewWindow[byte](3),
	)
	require.Nil(t, err)
	require.Equal(t, from.Len(), 0)
	require.Equal(t, to.Len(), 0)
}

func TestEncodeSurrogateIsInvalid(t *testing.T) {
	enc := utf32.LittleEndian().NewEncoder()
	defer enc.Close()

	progress, from, to := enc.Encode(
		tcodec.WindowOf(rune(0xD800)),
		tcodec.NewWindow[byte](8),
	)
	require.Equal(t, progress, tcodec.InvalidSequence)
	require.Equal(t, from.Len(), 1)
	require.Equal(t, to.Len(), 0)
}

func TestNames(t *testing.T) {
	require.Equal(t, utf32.New().Name(), "UTF-32")
	require.Equal(t, utf32.BigEndian().Name(), "UTF-32BE")
	require.Equal(t, utf32.LittleEndian().Name(), "UTF-32LE")

	e, err := tcodec.Lookup("UTF-32LE//TRANSLIT")
	require.Nil(t, err)
	require.Equal(t, e.Name(), "UTF-32LE//TRANSLIT")
}
