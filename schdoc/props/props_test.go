package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasic(t *testing.T) {
	tbl := Parse([]byte("|RECORD=1|LibReference=RES|Location.X=100|Comment=a=b|junk|=|\x00"))
	require.Equal(t, 5, tbl.Len())
	assert.Equal(t, 1, tbl.Int("record", -1))
	assert.Equal(t, "RES", tbl.Str("LIBREFERENCE", ""))
	assert.Equal(t, 100, tbl.Int("LOCATION.X", 0))
	assert.Equal(t, "a=b", tbl.Str("COMMENT", ""), "split on first '=' only")
	assert.Equal(t, "", tbl.Str("", "x"), "empty key is kept")
	assert.Equal(t, []string{"RECORD", "LibReference", "Location.X", "Comment", ""}, tbl.Keys())
}

func TestParseNeverFails(t *testing.T) {
	for _, in := range [][]byte{nil, {}, {0}, []byte("|||"), []byte("no pipes"), {0xFF, 0xFE}} {
		tbl := Parse(in)
		require.NotNil(t, tbl)
	}
	assert.Equal(t, 0, Parse([]byte("garbage")).Len())
}

func TestSerializeIsByteExact(t *testing.T) {
	in := []byte("|RECORD=31|FontIdCount=1|Size1=10|FontName1=Times New Roman|\x00")
	tbl := Parse(in)
	assert.Equal(t, in, tbl.Serialize())
	assert.Equal(t, []byte("||\x00"), New().Serialize())
}

func TestRoundTripLaw(t *testing.T) {
	tbl := New()
	tbl.Set("RECORD", "27")
	tbl.Set("LINEWIDTH", "1")
	tbl.Set("TEXT", "=tricky= value")
	tbl.Set("UNICODE", "Ω µ")
	back := Parse(tbl.Serialize())
	assert.True(t, tbl.Equal(back))
	assert.Equal(t, tbl.Map(), back.Map())
}

func TestLatin1Fallback(t *testing.T) {
	in := []byte("|TEXT=caf\xe9|\x00")
	tbl := Parse(in)
	assert.Equal(t, Latin1, tbl.Charset())
	assert.Equal(t, "café", tbl.Str("TEXT", ""))
	assert.Equal(t, in, tbl.Serialize(), "latin-1 tables re-encode as latin-1")

	tbl.Set("NAME", "日本")
	out := tbl.Serialize()
	back := Parse(out)
	assert.Equal(t, "café", back.Str("TEXT", ""))
	assert.NotEmpty(t, back.Str("NAME", ""), "unencodable characters are replaced, not dropped")
}

func TestTypedAccessors(t *testing.T) {
	tbl := Parse([]byte("|A= 42 |B=x|C=t|D=F|E=1.5|\x00"))
	assert.Equal(t, 42, tbl.Int("A", 0))
	assert.Equal(t, 7, tbl.Int("B", 7))
	assert.Equal(t, 7, tbl.Int("MISSING", 7))
	assert.True(t, tbl.Bool("C", false))
	assert.False(t, tbl.Bool("D", true))
	assert.True(t, tbl.Bool("MISSING", true))
	assert.Equal(t, 1.5, tbl.Float("E", 0))
	assert.Equal(t, 2.5, tbl.Float("B", 2.5))
}

func TestSetKeepsPositionAndSpelling(t *testing.T) {
	tbl := Parse([]byte("|Record=4|Text=hi|Color=0|\x00"))
	tbl.Set("TEXT", "bye")
	tbl.SetInt("ownerindex", 3)
	tbl.SetBool("IsHidden", true)
	assert.Equal(t, "|Record=4|Text=bye|Color=0|OWNERINDEX=3|ISHIDDEN=T|", tbl.String())

	require.True(t, tbl.Delete("text"))
	require.False(t, tbl.Delete("text"))
	assert.Equal(t, "|Record=4|Color=0|OWNERINDEX=3|ISHIDDEN=T|", tbl.String())
	assert.Equal(t, 3, tbl.Int("OWNERINDEX", -1), "index rebuilt after delete")
	assert.Equal(t, "T", tbl.Str("ishidden", ""))
}

func TestDuplicateKeysLaterWins(t *testing.T) {
	tbl := Parse([]byte("|X=1|Y=2|x=3|\x00"))
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 3, tbl.Int("X", 0))
	assert.Equal(t, []string{"X", "Y"}, tbl.Keys())
}

func TestCloneAndEqual(t *testing.T) {
	tbl := Parse([]byte("|A=1|B=2|\x00"))
	c := tbl.Clone()
	require.True(t, tbl.Equal(c))
	c.Set("A", "9")
	assert.False(t, tbl.Equal(c))
	assert.Equal(t, 1, tbl.Int("A", 0), "clone is independent")

	var zero Table
	assert.False(t, zero.Has("A"))
	zero.Set("A", "1")
	assert.True(t, zero.Has("a"))

	var n *Table
	assert.True(t, n.Equal(nil))
	assert.False(t, n.Equal(tbl))
}

func TestRange(t *testing.T) {
	tbl := Parse([]byte("|A=1|B=2|C=3|\x00"))
	var keys []string
	tbl.Range(func(k, v string) bool {
		keys = append(keys, k)
		return k != "B"
	})
	assert.Equal(t, []string{"A", "B"}, keys)
}
