package tcodec

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

const (
	decodeDirection = "decode"
	encodeDirection = "encode"
)

// Option configures the driving loop of [Transcode], [DecodeString] and
// [EncodeString].
type Option = func(*config)

// WithWindowSize sets the capacity of the windows the driver exchanges with
// the codecs. It must be large enough to hold one complete unit of the
// scheme; all built-in schemes fit in 4 elements.
func WithWindowSize(size int) Option {
	if size < 4 {
		panic("window size can't be < 4")
	}
	return func(c *config) {
		c.windowSize = size
	}
}

// WithRecovery makes the driver call [Codec.Recover] on invalid sequences
// and continue, instead of failing with an [InvalidSequenceError].
func WithRecovery() Option {
	return func(c *config) {
		c.recovery = true
	}
}

// WithPrometheus enables driver metrics with the provided config.
func WithPrometheus(pc *PrometheusConfig) Option {
	if pc == nil {
		panic("prometheus config can't be nil")
	}
	return func(c *config) {
		c.metrics = pc.metrics()
	}
}

type config struct {
	windowSize int
	recovery   bool
	metrics    *metrics
}

func newConfig(options ...Option) *config {
	cfg := config{
		windowSize: 4096,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &cfg
}

// InvalidSequenceError reports an invalid or unrepresentable sequence at an
// exact position of the stream. Everything valid before the bad sequence has
// already been produced.
type InvalidSequenceError struct {
	// Scheme is the name of the encoding that rejected the sequence.
	Scheme string
	// Offset is the number of source units consumed before the bad
	// sequence: bytes when decoding, characters when encoding.
	Offset int64
	// Unit is the textual form of the offending unit.
	Unit string
}

func (e *InvalidSequenceError) Error() string {
	return fmt.Sprintf("%s: invalid sequence %s at offset %d", e.Scheme, e.Unit, e.Offset)
}

// Transcode decodes src under the from encoding, re-encodes the characters
// under the to encoding and writes them to dst, transcoding in bounded
// windows without buffering the stream. It returns the number of bytes
// written to dst.
//
// By default an invalid sequence fails with an [InvalidSequenceError];
// [WithRecovery] skips (or substitutes, for transliterating schemes) and
// continues. Input that ends in the middle of a multi-byte sequence is
// treated the same way: the codec only ever sees underflow, the driver knows
// there is no more input.
func Transcode(dst io.Writer, src io.Reader, from, to Encoding, options ...Option) (written int64, err error) {
	if dst == nil {
		panic("dst can't be nil")
	}
	if src == nil {
		panic("src can't be nil")
	}
	if from == nil {
		panic("from can't be nil")
	}
	if to == nil {
		panic("to can't be nil")
	}

	cfg := newConfig(options...)

	dec := from.NewDecoder()
	enc := to.NewEncoder()
	defer func() {
		if cerr := dec.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close decoder: %w", cerr)
		}
		if cerr := enc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close encoder: %w", cerr)
		}
	}()

	var (
		in       = NewWindow[byte](cfg.windowSize)
		mid      = NewWindow[rune](cfg.windowSize)
		out      = NewWindow[byte](cfg.windowSize)
		buf      = make([]byte, cfg.windowSize)
		eof      bool
		consumed int64
		encoded  int64
	)

	flush := func() error {
		if !out.Empty() {
			n, werr := dst.Write(out.Elems())
			written += int64(n)
			if werr != nil {
				return fmt.Errorf("write destination: %w", werr)
			}
			out = out.Advance(out.Len())
		}
		out = out.Compact()
		return nil
	}

	// drain runs the encoder until the character window is exhausted.
	drain := func() error {
		for {
			progress, mid2, out2 := enc.Encode(mid, out)
			cfg.metrics.step(encodeDirection, progress, mid.Len()-mid2.Len(), out2.Len()-out.Len())
			encoded += int64(mid.Len() - mid2.Len())
			mid, out = mid2, out2

			switch progress {
			case InputUnderflow:
				mid = mid.Compact()
				return nil
			case OutputUnderflow:
				if err := flush(); err != nil {
					return err
				}
			case InvalidSequence:
				if !cfg.recovery {
					return &InvalidSequenceError{
						Scheme: to.Name(),
						Offset: encoded,
						Unit:   fmt.Sprintf("%U", mid.At(0)),
					}
				}
				mid2, out2, rerr := enc.Recover(mid, out)
				if rerr != nil {
					return fmt.Errorf("recover %s at offset %d: %w", to.Name(), encoded, rerr)
				}
				cfg.metrics.recovery(encodeDirection)
				encoded += int64(mid.Len() - mid2.Len())
				mid, out = mid2, out2
			}
		}
	}

	recoverInput := func() error {
		if !cfg.recovery {
			return &InvalidSequenceError{
				Scheme: from.Name(),
				Offset: consumed,
				Unit:   fmt.Sprintf("0x%02X", in.At(0)),
			}
		}
		if mid.Full() {
			if err := drain(); err != nil {
				return err
			}
		}
		in2, mid2, rerr := dec.Recover(in, mid)
		if rerr != nil {
			return fmt.Errorf("recover %s at offset %d: %w", from.Name(), consumed, rerr)
		}
		cfg.metrics.recovery(decodeDirection)
		consumed += int64(in.Len() - in2.Len())
		in, mid = in2, mid2
		return nil
	}

	for {
		if !eof && in.Len() < in.Cap() {
			in = in.Compact()
			n, rerr := src.Read(buf[:in.Free()])
			if n > 0 {
				in = in.Append(buf[:n]...)
			}
			if rerr == io.EOF {
				eof = true
			} else if rerr != nil {
				return written, fmt.Errorf("read source: %w", rerr)
			}
		}

		progress, in2, mid2 := dec.Encode(in, mid)
		cfg.metrics.step(decodeDirection, progress, in.Len()-in2.Len(), mid2.Len()-mid.Len())
		consumed += int64(in.Len() - in2.Len())
		in, mid = in2, mid2

		switch progress {
		case InputUnderflow:
			if !eof {
				if in.Len() == in.Cap() {
					return written, fmt.Errorf(
						"window size %d can't hold one %s unit", cfg.windowSize, from.Name(),
					)
				}
				continue
			}
			if in.Empty() {
				if err := drain(); err != nil {
					return written, err
				}
				if err := flush(); err != nil {
					return written, err
				}
				return written, nil
			}
			// Truncated final sequence.
			if err := recoverInput(); err != nil {
				return written, err
			}
		case OutputUnderflow:
			if err := drain(); err != nil {
				return written, err
			}
		case InvalidSequence:
			if err := recoverInput(); err != nil {
				return written, err
			}
		}
	}
}

// DecodeString decodes data under the given encoding and returns the result
// as a string. It drives the decoder the same way [Transcode] does.
func DecodeString(e Encoding, data []byte, options ...Option) (s string, err error) {
	if e == nil {
		panic("encoding can't be nil")
	}

	cfg := newConfig(options...)

	dec := e.NewDecoder()
	defer func() {
		if cerr := dec.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close decoder: %w", cerr)
		}
	}()

	var (
		in       = WindowOf(data...)
		out      = NewWindow[rune](cfg.windowSize)
		sb       strings.Builder
		consumed int64
	)

	for {
		progress, in2, out2 := dec.Encode(in, out)
		cfg.metrics.step(decodeDirection, progress, in.Len()-in2.Len(), out2.Len()-out.Len())
		consumed += int64(in.Len() - in2.Len())
		in, out = in2, out2

		switch progress {
		case OutputUnderflow:
			sb.WriteString(string(out.Elems()))
			out = out.Advance(out.Len()).Compact()
		case InputUnderflow:
			if in.Empty() {
				sb.WriteString(string(out.Elems()))
				return sb.String(), nil
			}
			// All input is already here, so a trailing partial sequence can
			// never complete.
			fallthrough
		case InvalidSequence:
			if !cfg.recovery {
				return "", &InvalidSequenceError{
					Scheme: e.Name(),
					Offset: consumed,
					Unit:   fmt.Sprintf("0x%02X", in.At(0)),
				}
			}
			if out.Full() {
				sb.WriteString(string(out.Elems()))
				out = out.Advance(out.Len()).Compact()
			}
			in2, out2, rerr := dec.Recover(in, out)
			if rerr != nil {
				return "", fmt.Errorf("recover %s at offset %d: %w", e.Name(), consumed, rerr)
			}
			cfg.metrics.recovery(decodeDirection)
			consumed += int64(in.Len() - in2.Len())
			in, out = in2, out2
		}
	}
}

// EncodeString encodes s under the given encoding and returns the produced
// bytes. It drives the encoder the same way [Transcode] does.
func EncodeString(e Encoding, s string, options ...Option) (data []byte, err error) {
	if e == nil {
		panic("encoding can't be nil")
	}

	cfg := newConfig(options...)

	enc := e.NewEncoder()
	defer func() {
		if cerr := enc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close encoder: %w", cerr)
		}
	}()

	var (
		in       = WindowOf([]rune(s)...)
		out      = NewWindow[byte](cfg.windowSize)
		bb       bytes.Buffer
		consumed int64
	)

	for {
		progress, in2, out2 := enc.Encode(in, out)
		cfg.metrics.step(encodeDirection, progress, in.Len()-in2.Len(), out2.Len()-out.Len())
		consumed += int64(in.Len() - in2.Len())
		in, out = in2, out2

		switch progress {
		case OutputUnderflow:
			bb.Write(out.Elems())
			out = out.Advance(out.Len()).Compact()
		case InputUnderflow:
			if in.Empty() {
				bb.Write(out.Elems())
				return bb.Bytes(), nil
			}
			fallthrough
		case InvalidSequence:
			if !cfg.recovery {
				return nil, &InvalidSequenceError{
					Scheme: e.Name(),
					Offset: consumed,
					Unit:   fmt.Sprintf("%U", in.At(0)),
				}
			}
			if out.Full() {
				bb.Write(out.Elems())
				out = out.Advance(out.Len()).Compact()
			}
			in2, out2, rerr := enc.Recover(in, out)
			if rerr != nil {
				return nil, fmt.Errorf("recover %s at offset %d: %w", e.Name(), consumed, rerr)
			}
			cfg.metrics.recovery(encodeDirection)
			consumed += int64(in.Len() - in2.Len())
			in, out = in2, out2
		}
	}
}
