// Package props implements the pipe-delimited property table used by
// schematic records:
//
//	|RECORD=1|LIBREFERENCE=RES|LOCATION.X=100|...|\x00
//
// Tables keep the key spelling and order they were parsed with so that an
// unmodified table serializes back to the same bytes. Lookups ignore case.
package props

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Charset records how a table's text was encoded on disk.
type Charset int

const (
	// UTF8 is the default encoding.
	UTF8 Charset = iota
	// Latin1 is used when the payload was not valid UTF-8.
	Latin1
)

func (c Charset) String() string {
	if c == Latin1 {
		return "latin1"
	}
	return "utf8"
}

type entry struct {
	key   string
	value string
}

// Table is an ordered, case-insensitive key/value mapping.
// The zero value is an empty UTF-8 table ready to use.
type Table struct {
	entries []entry
	index   map[string]int
	charset Charset
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// Parse decodes a property payload. It never fails: malformed segments are
// dropped and the worst case is an empty table.
func Parse(b []byte) *Table {
	t := &Table{}
	if n := len(b); n > 0 && b[n-1] == 0 {
		b = b[:n-1]
	}
	var text string
	if utf8.Valid(b) {
		text = string(b)
	} else {
		t.charset = Latin1
		dec, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
		if err != nil {
			return t
		}
		text = string(dec)
	}
	for _, seg := range strings.Split(text, "|") {
		if seg == "" {
			continue
		}
		k, v, ok := strings.Cut(seg, "=")
		if !ok {
			continue
		}
		t.set(k, v, true)
	}
	return t
}

// Serialize encodes the table as |K=V|...| followed by a NUL byte, in the
// table's charset. Characters the charset cannot represent are replaced.
func (t *Table) Serialize() []byte {
	text := t.String()
	var out []byte
	if t.charset == Latin1 {
		enc := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
		b, err := enc.Bytes([]byte(text))
		if err == nil {
			out = b
		}
	}
	if out == nil {
		out = []byte(strings.ToValidUTF8(text, "�"))
	}
	return append(out, 0)
}

// Charset returns the encoding the table was parsed with.
func (t *Table) Charset() Charset { return t.charset }

// SetCharset changes the encoding used by Serialize.
func (t *Table) SetCharset(c Charset) { t.charset = c }

// Len returns the number of keys.
func (t *Table) Len() int { return len(t.entries) }

// Keys returns the keys in table order with their stored spelling.
func (t *Table) Keys() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.key
	}
	return out
}

func (t *Table) lookup(key string) (int, bool) {
	if t.index == nil {
		return 0, false
	}
	i, ok := t.index[strings.ToUpper(key)]
	return i, ok
}

// Get returns the value for key.
func (t *Table) Get(key string) (string, bool) {
	i, ok := t.lookup(key)
	if !ok {
		return "", false
	}
	return t.entries[i].value, true
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.lookup(key)
	return ok
}

// Str returns the value for key or def when absent.
func (t *Table) Str(key, def string) string {
	if v, ok := t.Get(key); ok {
		return v
	}
	return def
}

// Int returns the integer value for key, or def when absent or unparseable.
func (t *Table) Int(key string, def int) int {
	v, ok := t.Get(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// Float returns the float value for key, or def when absent or unparseable.
func (t *Table) Float(key string, def float64) float64 {
	v, ok := t.Get(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// Bool returns true when key holds "T" (any case), false for any other
// present value, and def when absent.
func (t *Table) Bool(key string, def bool) bool {
	v, ok := t.Get(key)
	if !ok {
		return def
	}
	return strings.EqualFold(strings.TrimSpace(v), "T")
}

// Set stores value under key. An existing key keeps its position and
// spelling; a new key is appended in upper case.
func (t *Table) Set(key, value string) { t.set(key, value, false) }

// set stores value under key. Parsed keys keep their spelling.
func (t *Table) set(key, value string, keepSpelling bool) {
	if i, ok := t.lookup(key); ok {
		t.entries[i].value = value
		return
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	up := strings.ToUpper(key)
	t.index[up] = len(t.entries)
	if keepSpelling {
		up = key
	}
	t.entries = append(t.entries, entry{key: up, value: value})
}

// SetInt stores an integer value.
func (t *Table) SetInt(key string, v int) { t.Set(key, strconv.Itoa(v)) }

// SetBool stores "T" or "F".
func (t *Table) SetBool(key string, v bool) {
	if v {
		t.Set(key, "T")
		return
	}
	t.Set(key, "F")
}

// SetFloat stores a float with the given number of decimals.
func (t *Table) SetFloat(key string, v float64, prec int) {
	t.Set(key, strconv.FormatFloat(v, 'f', prec, 64))
}

// Delete removes key. It reports whether the key was present.
func (t *Table) Delete(key string) bool {
	i, ok := t.lookup(key)
	if !ok {
		return false
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	delete(t.index, strings.ToUpper(key))
	for j := i; j < len(t.entries); j++ {
		t.index[strings.ToUpper(t.entries[j].key)] = j
	}
	return true
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := &Table{charset: t.charset}
	if len(t.entries) > 0 {
		c.entries = append([]entry(nil), t.entries...)
		c.index = make(map[string]int, len(t.index))
		for k, v := range t.index {
			c.index[k] = v
		}
	}
	return c
}

// Equal reports whether both tables hold the same keys, spellings, values
// and order. The charset is not compared.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.entries) != len(o.entries) {
		return false
	}
	for i := range t.entries {
		if t.entries[i] != o.entries[i] {
			return false
		}
	}
	return true
}

// Map returns the contents keyed by upper-case key.
func (t *Table) Map() map[string]string {
	out := make(map[string]string, len(t.entries))
	for _, e := range t.entries {
		out[strings.ToUpper(e.key)] = e.value
	}
	return out
}

// Range calls fn for every entry in order until fn returns false.
func (t *Table) Range(fn func(key, value string) bool) {
	for _, e := range t.entries {
		if !fn(e.key, e.value) {
			return
		}
	}
}

// String renders the table text without the trailing NUL.
func (t *Table) String() string {
	if len(t.entries) == 0 {
		return "||"
	}
	var sb strings.Builder
	sb.WriteByte('|')
	for _, e := range t.entries {
		sb.WriteString(e.key)
		sb.WriteByte('=')
		sb.WriteString(e.value)
		sb.WriteByte('|')
	}
	return sb.String()
}
