// Package textenc converts between UTF-8 Go strings and the UTF-16 wide
// strings used by managed callers.
package textenc

import (
	"encoding/binary"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrInvalidUTF8 is returned when a string is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("textenc: invalid UTF-8")
	// ErrInvalidUTF16 is returned for unpaired surrogates.
	ErrInvalidUTF16 = errors.New("textenc: invalid UTF-16")
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// ValidUTF8 reports whether s can cross to the engine unchanged. The engine
// reads NUL-terminated strings, so an embedded NUL would cut the text short.
func ValidUTF8(s string) bool {
	return utf8.ValidString(s) && strings.IndexByte(s, 0) < 0
}

// UTF8ToWide converts s to UTF-16 code units, without a terminating NUL.
func UTF8ToWide(s string) ([]uint16, error) {
	if !utf8.ValidString(s) {
		return nil, ErrInvalidUTF8
	}
	b, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, err
	}
	w := make([]uint16, len(b)/2)
	for i := range w {
		w[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return w, nil
}

// WideToUTF8 converts UTF-16 code units to a Go string. Conversion stops at
// the first NUL.
func WideToUTF8(w []uint16) (string, error) {
	for i, u := range w {
		if u == 0 {
			w = w[:i]
			break
		}
	}
	if !validUTF16(w) {
		return "", ErrInvalidUTF16
	}
	b := make([]byte, 2*len(w))
	for i, u := range w {
		binary.LittleEndian.PutUint16(b[2*i:], u)
	}
	out, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func validUTF16(w []uint16) bool {
	for i := 0; i < len(w); i++ {
		switch u := w[i]; {
		case u >= 0xD800 && u <= 0xDBFF:
			if i+1 >= len(w) || w[i+1] < 0xDC00 || w[i+1] > 0xDFFF {
				return false
			}
			i++
		case u >= 0xDC00 && u <= 0xDFFF:
			return false
		}
	}
	return true
}
