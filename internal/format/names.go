package format

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// maxNameUnits is the longest name that fits beside its terminator.
const maxNameUnits = DirNameMaxBytes/2 - 1

// DecodeName converts a NUL-terminated UTF-16LE directory name to a string.
// Trailing bytes after the first NUL code unit are ignored.
func DecodeName(b []byte) (string, error) {
	if len(b)%2 == 1 {
		b = b[:len(b)-1]
	}
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			b = b[:i]
			break
		}
	}
	out, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// EncodeName converts a name to UTF-16LE with a NUL terminator.
func EncodeName(name string) ([]byte, error) {
	if len(utf16.Encode([]rune(name))) > maxNameUnits {
		return nil, fmt.Errorf("%q: %w", name, ErrNameTooLong)
	}
	out, err := utf16le.NewEncoder().Bytes([]byte(name))
	if err != nil {
		return nil, err
	}
	return append(out, 0, 0), nil
}

// CompareNames orders sibling names the way compound file directories do:
// shorter names first, then by upper-cased code units.
func CompareNames(a, b string) int {
	ua := utf16.Encode([]rune(strings.ToUpper(a)))
	ub := utf16.Encode([]rune(strings.ToUpper(b)))
	if len(ua) != len(ub) {
		if len(ua) < len(ub) {
			return -1
		}
		return 1
	}
	for i := range ua {
		if ua[i] != ub[i] {
			if ua[i] < ub[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
