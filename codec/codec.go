// Package codec registers all built-in encodings, making them available to
// [github.com/teenjuna/tcodec.Lookup]. Import it for its side effects:
//
//	import _ "github.com/teenjuna/tcodec/codec"
//
// Programs that only need some schemes can import the subpackages directly.
package codec

import (
	_ "github.com/teenjuna/tcodec/codec/ascii"
	_ "github.com/teenjuna/tcodec/codec/charmap"
	_ "github.com/teenjuna/tcodec/codec/latin1"
	_ "github.com/teenjuna/tcodec/codec/utf16"
	_ "github.com/teenjuna/tcodec/codec/utf32"
	_ "github.com/teenjuna/tcodec/codec/utf8"
)
