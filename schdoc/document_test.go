package schdoc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/schdockit/internal/testutil"
)

func TestFixtureDocument(t *testing.T) {
	doc, rep := DecodeStreams(testutil.FileHeaderStream(), nil)
	require.True(t, rep.Clean())
	require.Equal(t, testutil.FixtureObjects, doc.Len())
	assert.Equal(t, 1586, doc.Len())

	assert.Len(t, doc.Components(), testutil.FixtureComponents)
	assert.Len(t, doc.Wires(), testutil.FixtureWires)
	assert.Len(t, doc.NetLabels(), testutil.FixtureNetLabels)
	assert.Len(t, doc.PowerPorts(), testutil.FixturePowerPorts)
	assert.Len(t, doc.Junctions(), testutil.FixtureJunctions)
	assert.Len(t, doc.Parameters(), testutil.FixtureComponents)

	for i, c := range doc.Components() {
		require.Len(t, c.Children(), testutil.FixturePinsPerComponent+1)
		assert.Len(t, c.Pins(), testutil.FixturePinsPerComponent)
		assert.Equal(t, fmt.Sprintf("R%d", i+1), c.Designator())
	}
	assert.Equal(t, "10µF capacitor", doc.Components()[testutil.FixtureLatin1Component].ComponentDescription)
	assert.Equal(t, Up, doc.Components()[1].Orientation, "degree-coded orientation")

	pin := doc.Components()[0].Pins()[0]
	assert.Equal(t, Left, pin.Orientation())
	assert.Equal(t, 3, pin.Length())
	assert.Equal(t, PinPassive, pin.Electrical)

	require.NotNil(t, doc.Sheet)
	assert.Equal(t, []Font{{Size: 10, Name: "Times New Roman"}, {Size: 10, Name: "Arial", Bold: true}}, doc.Sheet.Fonts)
	assert.Equal(t, 4, doc.Sheet.DisplayUnit)

	counts := doc.CountByKind()
	assert.Equal(t, testutil.FixtureComponents*testutil.FixturePinsPerComponent, counts[KindPin])
	assert.Len(t, doc.ObjectsOfKind(KindJunction), testutil.FixtureJunctions)
}

func TestFixtureRoundTripIsIdentity(t *testing.T) {
	stream := testutil.FileHeaderStream()
	doc, _ := DecodeStreams(stream, nil)
	s, err := EncodeStreams(doc, EncodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, stream, s.FileHeader)
}

func TestFixtureAppendKeepsOriginals(t *testing.T) {
	doc, _ := DecodeStreams(testutil.FileHeaderStream(), nil)
	next := doc.MaxIndex() + 1

	comp := NewComponent()
	comp.Index = next
	comp.LibReference = "CAP"
	comp.Location = Point{5000, 5000}
	doc.Append(comp)

	w := NewWire()
	w.Index = next + 1
	w.Points = []Point{{5000, 5000}, {5200, 5000}}
	doc.Append(w)

	n := NewNetLabel()
	n.Index = next + 2
	n.Text = "ADDED"
	doc.Append(n)

	s, err := EncodeStreams(doc, EncodeOptions{})
	require.NoError(t, err)

	again, rep := DecodeStreams(s.FileHeader, nil)
	require.True(t, rep.Clean())
	assert.Equal(t, testutil.FixtureObjects+3, again.Len())
	assert.Len(t, again.Components(), testutil.FixtureComponents+1)
	assert.Len(t, again.Wires(), testutil.FixtureWires+1)
	assert.Len(t, again.NetLabels(), testutil.FixtureNetLabels+1)
	assert.Len(t, again.PowerPorts(), testutil.FixturePowerPorts)

	payloads := testutil.SchematicPayloads()
	objs := again.Objects()
	for i, p := range payloads {
		require.Equal(t, p, objs[i].Common().Raw(), "object %d", i)
	}
	added := again.NetLabels()[testutil.FixtureNetLabels]
	assert.Equal(t, "ADDED", added.Text)
	assert.Equal(t, next+2, added.Index)
}

func TestDocumentRemove(t *testing.T) {
	doc := decodeStream(t,
		testHeader,
		"|RECORD=31|",
		"|RECORD=1|",
		"|RECORD=2|OWNERINDEX=2|",
		"|RECORD=41|OWNERINDEX=3|NAME=OnPin|",
	)
	comp := doc.Components()[0]
	pin := doc.Objects()[3]

	require.True(t, doc.Remove(pin))
	assert.False(t, doc.Remove(pin))
	assert.Empty(t, comp.Children())
	assert.Equal(t, []Object{doc.ByIndex(4)}, doc.DanglingOwners())

	require.True(t, doc.Remove(doc.Sheet))
	assert.Nil(t, doc.Sheet)
	require.True(t, doc.Remove(doc.Header))
	assert.Nil(t, doc.Header)
}

func TestDocumentZeroValue(t *testing.T) {
	d := &Document{}
	j := NewJunction()
	j.Index = 0
	d.Append(j)
	p := NewParameter()
	p.Index, p.OwnerIndex = 1, 0
	d.Append(p)

	require.True(t, d.Remove(j))
	assert.Equal(t, []Object{p}, d.DanglingOwners())
	assert.Equal(t, 2, d.FreeIndex())
}

func TestDocumentAppendSingletons(t *testing.T) {
	doc := NewDocument()
	h := NewHeader()
	doc.Append(h)
	doc.Append(NewHeader())
	assert.Same(t, h, doc.Header)
	s := NewSheet()
	doc.Append(s)
	assert.Same(t, s, doc.Sheet)
	assert.Equal(t, 3, doc.Len())
	assert.Equal(t, -1, doc.MaxIndex())
	assert.Nil(t, doc.ByIndex(-1))
}

func TestColorAndUnits(t *testing.T) {
	c := ColorFromRGB(0x12, 0x34, 0x56)
	assert.Equal(t, Color(0x563412), c)
	r, g, b := c.RGB()
	assert.Equal(t, []uint8{0x12, 0x34, 0x56}, []uint8{r, g, b})
	assert.InDelta(t, 2.54, MilsToMM(10), 1e-9)
	assert.InDelta(t, 10.0, MMToMils(2.54), 1e-9)
	assert.Equal(t, 270, Down.Degrees())
	assert.Equal(t, "Wire", KindWire.String())
	assert.Equal(t, "Record99", Kind(99).String())
	assert.Equal(t, "Passive", PinPassive.String())
	assert.Equal(t, "GostBar", StyleGostBar.String())
}
