package strata

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	gencoding "github.com/gdamore/encoding"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// detectCharset returns the charset named by the locale environment,
// checking LC_ALL, LC_CTYPE, and LANG in the usual precedence order. A
// locale of the form "en_US.UTF-8" yields "UTF-8"; an unset or bare
// locale ("C", "POSIX") yields "US-ASCII".
func detectCharset() string {
	locale := os.Getenv("LC_ALL")
	if locale == "" {
		locale = os.Getenv("LC_CTYPE")
	}
	if locale == "" {
		locale = os.Getenv("LANG")
	}

	if locale == "" || locale == "C" || locale == "POSIX" {
		return "US-ASCII"
	}

	// Strip any modifier ("@euro") and take the part after the dot.
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		locale = locale[:i]
	}
	if i := strings.IndexByte(locale, '.'); i >= 0 {
		return locale[i+1:]
	}

	// Locale names a language with no explicit charset; UTF-8 is the only
	// sane assumption on a modern system.
	return "UTF-8"
}

// charsetEncoder encodes runes into the terminal's output charset. A nil
// enc means the native UTF-8 path.
type charsetEncoder struct {
	name string
	enc  *encoding.Encoder
}

// encoderFor resolves a charset name to an encoder. UTF-8 needs none;
// ASCII uses a dedicated table; anything else goes through the IANA
// registry. Unknown charsets are an init-time failure.
func encoderFor(charset string) (*charsetEncoder, error) {
	name := strings.ToUpper(strings.ReplaceAll(charset, "_", "-"))
	switch name {
	case "UTF-8", "UTF8":
		return &charsetEncoder{name: "UTF-8"}, nil
	case "US-ASCII", "ASCII", "ANSI-X3.4-1968":
		return &charsetEncoder{name: "US-ASCII", enc: gencoding.ASCII.NewEncoder()}, nil
	}

	if e, err := ianaindex.IANA.Encoding(charset); err == nil && e != nil {
		return &charsetEncoder{name: name, enc: e.NewEncoder()}, nil
	}
	// The IANA index misses some historical aliases that charmap carries.
	for _, cm := range charmap.All {
		if c, ok := cm.(*charmap.Charmap); ok && strings.EqualFold(c.String(), charset) {
			return &charsetEncoder{name: name, enc: c.NewEncoder()}, nil
		}
	}
	return nil, fmt.Errorf("charset %q: %w", charset, ErrEncoding)
}

// asciiSub is the ASCII substitute control character some encoders emit
// for unmapped runes instead of reporting an error.
const asciiSub = 0x1a

// append encodes one rune and appends the encoded bytes to dst. A rune
// the charset cannot represent contributes exactly one replacement
// character: U+FFFD where the charset has it, '?' otherwise. Raw
// unencodable bytes never reach the output.
func (c *charsetEncoder) append(dst []byte, r rune) []byte {
	if c.enc == nil {
		return utf8.AppendRune(dst, r)
	}

	if out, ok := c.encode(r); ok {
		return append(dst, out...)
	}
	if out, ok := c.encode(utf8.RuneError); ok {
		return append(dst, out...)
	}
	return append(dst, '?')
}

// encode runs one rune through the charset encoder, treating both an
// error and a substitute-character result as "not representable".
func (c *charsetEncoder) encode(r rune) ([]byte, bool) {
	var buf [8]byte
	n := utf8.EncodeRune(buf[:], r)
	out, err := c.enc.Bytes(buf[:n])
	if err != nil || len(out) == 0 {
		return nil, false
	}
	if len(out) == 1 && out[0] == asciiSub && r != asciiSub {
		return nil, false
	}
	return out, true
}

// utf8Native reports whether the encoder is the pass-through UTF-8 path.
func (c *charsetEncoder) utf8Native() bool { return c.enc == nil }
