package tcodec

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownEncoding is returned by [Lookup] when no encoding is registered
// under the requested name.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Encoding is a named factory for one logical encoding scheme.
//
// Every constructor call returns a brand-new codec with fresh state,
// side-effect-isolated from any other instance of the same scheme.
// Implementations also satisfy [fmt.Stringer], returning exactly Name.
type Encoding interface {
	// Name returns a stable identifier sufficient to reconstruct an
	// equivalent encoding through [Lookup].
	Name() string
	// NewDecoder returns a fresh, independent byte-to-rune codec.
	NewDecoder() Decoder
	// NewEncoder returns a fresh, independent rune-to-byte codec.
	NewEncoder() Encoder
}

// Transliterator is implemented by encodings that offer a variant
// substituting a replacement for invalid or unrepresentable sequences during
// recovery, instead of plain skipping.
type Transliterator interface {
	// Translit returns the transliterating variant. Its name carries the
	// "//TRANSLIT" suffix.
	Translit() Encoding
}

// TranslitSuffix is the name suffix selecting an encoding's transliterating
// variant in [Lookup].
const TranslitSuffix = "//TRANSLIT"

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Encoding)
)

// Register makes an encoding available to [Lookup] under its name and the
// given aliases. Names are case-insensitive. Registering a nil encoding, a
// blank name or a name that is already taken panics.
func Register(e Encoding, aliases ...string) {
	if e == nil {
		panic("encoding can't be nil")
	}

	names := append([]string{e.Name()}, aliases...)

	registryMu.Lock()
	defer registryMu.Unlock()

	for _, name := range names {
		key := normalize(name)
		if key == "" {
			panic("encoding name can't be blank")
		}
		if _, ok := registry[key]; ok {
			panic(fmt.Sprintf("encoding %q is already registered", key))
		}
		registry[key] = e
	}
}

// Lookup returns the encoding registered under name. The match is
// case-insensitive. A [TranslitSuffix] suffix resolves the base encoding and
// returns its transliterating variant; if the base does not offer one, or no
// encoding is registered under the base name, Lookup returns
// [ErrUnknownEncoding].
func Lookup(name string) (Encoding, error) {
	key := normalize(name)
	translit := strings.HasSuffix(key, TranslitSuffix)
	if translit {
		key = strings.TrimSuffix(key, TranslitSuffix)
	}

	registryMu.RLock()
	e, ok := registry[key]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownEncoding)
	}

	if translit {
		t, ok := e.(Transliterator)
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrUnknownEncoding)
		}
		return t.Translit(), nil
	}

	return e, nil
}

// Encodings returns the sorted names and aliases of all registered
// encodings.
func Encodings() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(registry))
}

func normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
