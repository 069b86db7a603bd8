package schdoc

import (
	"slices"
	"strconv"
	"strings"

	"github.com/joshuapare/schdockit/schdoc/props"
)

// Upper bounds for count properties. A corrupt count must not make the
// decoder allocate without limit; no payload under 64 KiB can carry more.
const (
	maxPoints = 8192
	maxFonts  = 1024
)

// binder moves typed fields in and out of a property table. Every entity
// describes its fields once in bind; the same description serves decoding
// and encoding.
//
// While decoding, values are read from t with the given defaults. While
// encoding, t is the output table (a copy of the entity's current bag) and
// a field is written only when it differs from what decoding orig yields,
// which leaves untouched fields byte-identical. Fields equal to their
// default are removed instead of written, unless the field is always
// present in a record of that kind and the entity is new.
type binder struct {
	t     *props.Table
	orig  *props.Table
	enc   bool
	fresh bool
}

func decoder(t *props.Table) *binder {
	return &binder{t: t}
}

func encoder(out, orig *props.Table) *binder {
	b := &binder{t: out, orig: orig, enc: true}
	if orig == nil {
		b.orig = props.New()
		b.fresh = true
	}
	return b
}

func (b *binder) decoding() bool { return !b.enc }

// put applies the write rule shared by the scalar fields.
func (b *binder) put(key string, unchanged, isDefault, always bool, value string) {
	if unchanged && !(always && b.fresh) {
		return
	}
	if isDefault && !always {
		b.t.Delete(key)
		return
	}
	b.t.Set(key, value)
}

func (b *binder) intField(key string, v *int, def int, always bool) {
	if b.decoding() {
		*v = b.t.Int(key, def)
		return
	}
	b.put(key, *v == b.orig.Int(key, def), *v == def, always, strconv.Itoa(*v))
}

// Int binds an integer field.
func (b *binder) Int(key string, v *int, def int) { b.intField(key, v, def, false) }

// IntAlways binds an integer field that new records always carry.
func (b *binder) IntAlways(key string, v *int, def int) { b.intField(key, v, def, true) }

func (b *binder) strField(key string, v *string, def string, always bool) {
	if b.decoding() {
		*v = b.t.Str(key, def)
		return
	}
	b.put(key, *v == b.orig.Str(key, def), *v == def, always, *v)
}

// Str binds a string field.
func (b *binder) Str(key string, v *string, def string) { b.strField(key, v, def, false) }

// StrAlways binds a string field that new records always carry.
func (b *binder) StrAlways(key string, v *string, def string) { b.strField(key, v, def, true) }

// Bool binds a T/F field.
func (b *binder) Bool(key string, v *bool, def bool) {
	if b.decoding() {
		*v = b.t.Bool(key, def)
		return
	}
	s := "F"
	if *v {
		s = "T"
	}
	b.put(key, *v == b.orig.Bool(key, def), *v == def, false, s)
}

// Float binds a decimal field written with prec fractional digits.
func (b *binder) Float(key string, v *float64, def float64, prec int) {
	if b.decoding() {
		*v = b.t.Float(key, def)
		return
	}
	b.put(key, *v == b.orig.Float(key, def), *v == def, false, strconv.FormatFloat(*v, 'f', prec, 64))
}

func (b *binder) colorField(key string, v *Color, def Color, always bool) {
	n := int(*v)
	b.intField(key, &n, int(def), always)
	*v = Color(n)
}

// Color binds a colour field.
func (b *binder) Color(key string, v *Color, def Color) { b.colorField(key, v, def, false) }

// ColorAlways binds a colour field that new records always carry.
func (b *binder) ColorAlways(key string, v *Color, def Color) { b.colorField(key, v, def, true) }

// Orientation binds an ORIENTATION-style field. An absent key reads as
// Right; a value that is neither a quadrant code nor 90/180/270 reads as
// invalid.
func (b *binder) Orientation(key string, v *Orientation, invalid Orientation) {
	if b.decoding() {
		*v = readOrientation(b.t, key, invalid)
		return
	}
	b.put(key, *v == readOrientation(b.orig, key, invalid), *v == Right, false, strconv.Itoa(int(*v&3)))
}

func readOrientation(t *props.Table, key string, invalid Orientation) Orientation {
	s, ok := t.Get(key)
	if !ok {
		return Right
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return invalid
	}
	o, ok := ParseOrientation(n)
	if !ok {
		return invalid
	}
	return o
}

// Coordinate key forms, most specific first. The first form present in a
// table wins when decoding; encoding rewrites the form the table already
// uses and creates the first form otherwise.
func locationKeys(axis string) []string {
	return []string{"LOCATION." + axis, axis}
}

func cornerKeys(axis string) []string {
	return []string{"CORNER." + axis, "LOCATION.CORNER" + axis, "CORNER" + axis}
}

// readCoord returns the integer part of a coordinate. The _FRAC companion
// (1/100000 units) is not folded in.
func readCoord(t *props.Table, keys []string) int {
	for _, k := range keys {
		if t.Has(k) {
			return t.Int(k, 0)
		}
	}
	return 0
}

func presentKey(t *props.Table, keys []string) string {
	for _, k := range keys {
		if t.Has(k) {
			return k
		}
	}
	return keys[0]
}

func (b *binder) coord(keys []string, v *int) {
	if b.decoding() {
		*v = readCoord(b.t, keys)
		return
	}
	if *v == readCoord(b.orig, keys) {
		return
	}
	key := presentKey(b.t, keys)
	b.t.Delete(key + "_FRAC")
	if *v == 0 {
		b.t.Delete(key)
		return
	}
	b.t.SetInt(key, *v)
}

// Location binds LOCATION.X/LOCATION.Y.
func (b *binder) Location(p *Point) {
	b.coord(locationKeys("X"), &p.X)
	b.coord(locationKeys("Y"), &p.Y)
}

// Corner binds the opposite corner of a two-point primitive.
func (b *binder) Corner(p *Point) {
	b.coord(cornerKeys("X"), &p.X)
	b.coord(cornerKeys("Y"), &p.Y)
}

func pointKeys(axis string, i int) []string {
	n := axis + strconv.Itoa(i)
	return []string{"LOCATION." + n, n}
}

func readPoints(t *props.Table) []Point {
	n := t.Int("LOCATIONCOUNT", 0)
	if n <= 0 {
		return nil
	}
	n = min(n, maxPoints)
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{
			X: readCoord(t, pointKeys("X", i+1)),
			Y: readCoord(t, pointKeys("Y", i+1)),
		}
	}
	return pts
}

// Points binds LOCATIONCOUNT and the X{i}/Y{i} vertex list. LOCATIONCOUNT
// always matches the number of points written.
func (b *binder) Points(pts *[]Point) {
	if b.decoding() {
		*pts = readPoints(b.t)
		return
	}
	old := readPoints(b.orig)
	if slices.Equal(*pts, old) && !b.fresh {
		return
	}
	b.t.SetInt("LOCATIONCOUNT", len(*pts))
	for i, p := range *pts {
		same := i < len(old)
		b.vertex("X", i+1, p.X, same && old[i].X == p.X)
		b.vertex("Y", i+1, p.Y, same && old[i].Y == p.Y)
	}
	stale := max(len(old), min(b.orig.Int("LOCATIONCOUNT", 0), maxPoints))
	for i := len(*pts) + 1; i <= stale; i++ {
		for _, axis := range []string{"X", "Y"} {
			for _, k := range pointKeys(axis, i) {
				b.t.Delete(k)
				b.t.Delete(k + "_FRAC")
			}
		}
	}
}

func (b *binder) vertex(axis string, i, v int, same bool) {
	if same {
		return
	}
	keys := pointKeys(axis, i)
	key := keys[1]
	if b.t.Has(keys[0]) {
		key = keys[0]
	}
	b.t.Delete(key + "_FRAC")
	b.t.SetInt(key, v)
}

// Fonts binds FONTIDCOUNT and the SIZE{i}/FONTNAME{i}/BOLD{i}/ITALIC{i}/
// UNDERLINE{i} groups of the sheet font table.
func (b *binder) Fonts(fonts *[]Font) {
	n := len(*fonts)
	b.IntAlways("FONTIDCOUNT", &n, 0)
	if b.decoding() {
		n = max(0, min(n, maxFonts))
		*fonts = make([]Font, n)
	}
	stale := 0
	if b.enc {
		stale = min(b.orig.Int("FONTIDCOUNT", 0), maxFonts)
	}
	for i := range *fonts {
		fb := b
		if b.enc && i >= stale {
			// a font added past the original table is written in full
			fb = encoder(b.t, nil)
		}
		f := &(*fonts)[i]
		k := strconv.Itoa(i + 1)
		fb.IntAlways("SIZE"+k, &f.Size, 10)
		fb.StrAlways("FONTNAME"+k, &f.Name, "Arial")
		fb.Bool("BOLD"+k, &f.Bold, false)
		fb.Bool("ITALIC"+k, &f.Italic, false)
		fb.Bool("UNDERLINE"+k, &f.Underline, false)
	}
	if b.decoding() {
		return
	}
	for i := len(*fonts) + 1; i <= stale; i++ {
		k := strconv.Itoa(i)
		for _, p := range []string{"SIZE", "FONTNAME", "BOLD", "ITALIC", "UNDERLINE", "ROTATION"} {
			b.t.Delete(p + k)
		}
	}
}

// Enum binds an integer field whose decoded value is normalised by norm.
// Comparison happens on normalised values so an out-of-range value in the
// original record survives an unrelated edit.
func (b *binder) Enum(key string, v *int, def int, norm func(int) int) {
	if b.decoding() {
		*v = norm(b.t.Int(key, def))
		return
	}
	b.put(key, *v == norm(b.orig.Int(key, def)), *v == def, false, strconv.Itoa(*v))
}
