package edit

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/schdockit/internal/format"
	"github.com/joshuapare/schdockit/internal/reader"
)

func pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i*7)
	}
	return b
}

type sample struct {
	fileHeader []byte
	storage    []byte
	additional []byte
}

func newSample(t *testing.T) (*reader.Container, sample) {
	t.Helper()
	s := sample{
		fileHeader: pattern(10000, 1),
		storage:    []byte{0xD0, 0, 0, 0, 0, 0},
		additional: pattern(300, 9),
	}
	img, err := Create([]Update{
		{Path: "FileHeader", Data: s.fileHeader},
		{Path: "Storage", Data: s.storage},
		{Path: "Additional", Data: s.additional},
	}, Options{})
	require.NoError(t, err)
	c, err := reader.OpenBytes(img)
	require.NoError(t, err)
	return c, s
}

func mustStream(t *testing.T, img []byte, path string) []byte {
	t.Helper()
	c, err := reader.OpenBytes(img)
	require.NoError(t, err)
	got, err := c.Stream(path)
	require.NoError(t, err)
	return got
}

func TestCreateAndRead(t *testing.T) {
	c, s := newSample(t)
	for path, want := range map[string][]byte{
		"FileHeader": s.fileHeader,
		"Storage":    s.storage,
		"Additional": s.additional,
	} {
		got, err := c.Stream(path)
		require.NoError(t, err, path)
		require.Equal(t, want, got, path)
	}
	require.Len(t, c.Entries(), 3)
	require.True(t, c.IsMini(uint64(len(s.additional))))
	require.Equal(t, uint16(format.MajorVersion3), c.Header().MajorVersion)
}

func TestPlanReplace(t *testing.T) {
	c, _ := newSample(t)
	cases := []struct {
		name string
		path string
		size int
		want Plan
	}{
		{"same regular", "FileHeader", 9900, PlanSameSectorCount},
		{"exact", "FileHeader", 10000, PlanSameSectorCount},
		{"shrink regular", "FileHeader", 5000, PlanShrink},
		{"grow regular", "FileHeader", 10241, PlanGrow},
		{"same mini", "Additional", 310, PlanSameSectorCount},
		{"shrink mini", "Additional", 64, PlanShrink},
		{"grow mini", "Additional", 400, PlanGrow},
		{"mini to regular", "Additional", 4096, PlanCrossCutoff},
		{"regular to mini", "FileHeader", 4095, PlanCrossCutoff},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := PlanReplace(c, tc.path, tc.size, false)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	_, err := PlanReplace(c, "Missing", 10, false)
	require.ErrorIs(t, err, reader.ErrStreamNotFound)
	p, err := PlanReplace(c, "Missing", 10, true)
	require.NoError(t, err)
	require.Equal(t, PlanAdd, p)
}

// changedOutside reports offsets that differ between a and b and are not in
// any of the allowed [start, end) ranges.
func changedOutside(a, b []byte, allowed [][2]int) []int {
	var out []int
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		ok := false
		for _, r := range allowed {
			if i >= r[0] && i < r[1] {
				ok = true
				break
			}
		}
		if !ok {
			out = append(out, i)
		}
	}
	return out
}

func streamRanges(t *testing.T, c *reader.Container, path string) [][2]int {
	t.Helper()
	e, ok := c.Lookup(path)
	require.True(t, ok)
	chain, err := c.Chain(e.StartSector)
	require.NoError(t, err)
	var out [][2]int
	for _, sid := range chain {
		off := int(c.SectorOffset(sid))
		out = append(out, [2]int{off, off + c.SectorSize()})
	}
	per := uint32(c.SectorSize() / format.DirEntrySize)
	dirOff := int(c.SectorOffset(c.DirSectors()[e.ID/per])) + int(e.ID%per)*format.DirEntrySize + format.DirSizeOffset
	return append(out, [2]int{dirOff, dirOff + 8})
}

func TestSameSectorCountPatch(t *testing.T) {
	c, s := newSample(t)
	data := pattern(9900, 42)

	out, res, err := ReplaceStream(c, "FileHeader", data, Options{})
	require.NoError(t, err)
	require.False(t, res.Rebuilt)
	require.Equal(t, PlanSameSectorCount, res.Plans["FileHeader"])
	require.Len(t, out, len(c.Data()))

	require.Empty(t, changedOutside(c.Data(), out, streamRanges(t, c, "FileHeader")),
		"only the stream's sectors and size field may change")
	require.Equal(t, data, mustStream(t, out, "FileHeader"))
	require.Equal(t, s.storage, mustStream(t, out, "Storage"))
	require.Equal(t, s.additional, mustStream(t, out, "Additional"))
}

func TestShrinkPatch(t *testing.T) {
	c, s := newSample(t)
	data := pattern(5000, 3)

	out, res, err := ReplaceStream(c, "FileHeader", data, Options{})
	require.NoError(t, err)
	require.False(t, res.Rebuilt)
	require.Equal(t, PlanShrink, res.Plans["FileHeader"])
	require.Len(t, out, len(c.Data()))
	require.Empty(t, changedOutside(c.Data(), out, streamRanges(t, c, "FileHeader")))

	require.Equal(t, data, mustStream(t, out, "FileHeader"))
	require.Equal(t, s.additional, mustStream(t, out, "Additional"))

	// The tail of the old chain is zero padded.
	e, _ := c.Lookup("FileHeader")
	chain, err := c.Chain(e.StartSector)
	require.NoError(t, err)
	last := int(c.SectorOffset(chain[len(chain)-1]))
	require.Equal(t, make([]byte, c.SectorSize()), out[last:last+c.SectorSize()])
}

func TestGrowRebuilds(t *testing.T) {
	c, s := newSample(t)
	data := pattern(20000, 5)

	out, res, err := ReplaceStream(c, "FileHeader", data, Options{})
	require.NoError(t, err)
	require.True(t, res.Rebuilt)
	require.Equal(t, PlanGrow, res.Plans["FileHeader"])
	require.Greater(t, res.Iterations, 0)
	require.Greater(t, len(out), len(c.Data()))

	require.Equal(t, data, mustStream(t, out, "FileHeader"))
	require.Equal(t, s.storage, mustStream(t, out, "Storage"))
	require.Equal(t, s.additional, mustStream(t, out, "Additional"))
}

func TestMiniPatchInPlace(t *testing.T) {
	c, s := newSample(t)
	data := pattern(310, 77)

	out, res, err := ReplaceStream(c, "Additional", data, Options{})
	require.NoError(t, err)
	require.False(t, res.Rebuilt)
	require.Len(t, out, len(c.Data()))
	require.Equal(t, data, mustStream(t, out, "Additional"))
	require.Equal(t, s.fileHeader, mustStream(t, out, "FileHeader"))
	require.Equal(t, s.storage, mustStream(t, out, "Storage"))

	nc, err := reader.OpenBytes(out)
	require.NoError(t, err)
	require.Equal(t, c.FAT(), nc.FAT(), "FAT must not change")
	require.Equal(t, c.MiniFAT(), nc.MiniFAT(), "mini FAT must not change")
}

func TestMiniGrowAndCrossCutoff(t *testing.T) {
	c, s := newSample(t)

	out, res, err := ReplaceStream(c, "Additional", pattern(400, 1), Options{})
	require.NoError(t, err)
	require.True(t, res.Rebuilt)
	require.Equal(t, pattern(400, 1), mustStream(t, out, "Additional"))

	big := pattern(6000, 2)
	out, res, err = ReplaceStream(c, "Additional", big, Options{})
	require.NoError(t, err)
	require.True(t, res.Rebuilt)
	require.Equal(t, PlanCrossCutoff, res.Plans["Additional"])
	require.Equal(t, big, mustStream(t, out, "Additional"))
	require.Equal(t, s.fileHeader, mustStream(t, out, "FileHeader"))

	small := pattern(100, 4)
	out, res, err = ReplaceStream(c, "FileHeader", small, Options{})
	require.NoError(t, err)
	require.Equal(t, PlanCrossCutoff, res.Plans["FileHeader"])
	require.Equal(t, small, mustStream(t, out, "FileHeader"))
}

func TestInPlaceOnlyRefusesGrowth(t *testing.T) {
	c, _ := newSample(t)
	_, _, err := ReplaceStream(c, "FileHeader", pattern(20000, 0), Options{Strategy: StrategyInPlaceOnly})
	require.ErrorIs(t, err, ErrRebuildRequired)

	_, res, err := ReplaceStream(c, "FileHeader", []byte("tiny"), Options{Strategy: StrategyInPlaceOnly})
	require.ErrorIs(t, err, ErrRebuildRequired, "regular to mini needs a rebuild")
	require.Equal(t, PlanCrossCutoff, res.Plans["FileHeader"])
}

func TestForcedRebuild(t *testing.T) {
	c, s := newSample(t)
	out, res, err := ReplaceStream(c, "FileHeader", s.fileHeader, Options{Strategy: StrategyRebuild})
	require.NoError(t, err)
	require.True(t, res.Rebuilt)
	require.Equal(t, PlanSameSectorCount, res.Plans["FileHeader"])
	require.Equal(t, c.Data(), out, "rebuilding an unchanged container is deterministic")
}

func TestReplaceMissingStream(t *testing.T) {
	c, s := newSample(t)
	_, _, err := ReplaceStream(c, "Extra", []byte("x"), Options{})
	require.ErrorIs(t, err, reader.ErrStreamNotFound)

	out, res, err := ReplaceStream(c, "Extra", []byte("extra data"), Options{CreateMissing: true})
	require.NoError(t, err)
	require.True(t, res.Rebuilt)
	require.Equal(t, []byte("extra data"), mustStream(t, out, "Extra"))
	require.Equal(t, s.fileHeader, mustStream(t, out, "FileHeader"))
}

func TestReplaceStreamsSingleRebuild(t *testing.T) {
	c, s := newSample(t)
	fh := pattern(9000, 8)
	add := pattern(5000, 9)
	out, res, err := ReplaceStreams(c, []Update{
		{Path: "FileHeader", Data: fh},
		{Path: "Additional", Data: add},
	}, Options{})
	require.NoError(t, err)
	require.True(t, res.Rebuilt)
	require.Equal(t, PlanSameSectorCount, res.Plans["FileHeader"])
	require.Equal(t, PlanCrossCutoff, res.Plans["Additional"])
	require.Equal(t, fh, mustStream(t, out, "FileHeader"))
	require.Equal(t, add, mustStream(t, out, "Additional"))
	require.Equal(t, s.storage, mustStream(t, out, "Storage"))
}

func TestLayoutNotConverged(t *testing.T) {
	_, err := Create([]Update{{Path: "FileHeader", Data: pattern(200_000, 1)}}, Options{MaxLayoutIterations: 1})
	require.ErrorIs(t, err, ErrLayoutNotConverged)
}

func TestSizeFAT(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cases := []struct {
		base, fat, difat int
	}{
		{1, 1, 0},
		{127, 1, 0},
		{128, 2, 0},
		{254, 2, 0},
		{255, 3, 0},
		{109*128 - 109, 109, 0},
		{109 * 128, 110, 1},
	}
	for _, tc := range cases {
		fat, difat, _, err := sizeFAT(tc.base, 128, DefaultMaxLayoutIterations, log)
		require.NoError(t, err)
		require.Equal(t, tc.fat, fat, "base %d", tc.base)
		require.Equal(t, tc.difat, difat, "base %d", tc.base)
		total := tc.base + fat + difat
		require.GreaterOrEqual(t, fat*128, total, "FAT must cover every sector")
	}
}

func TestDIFATContainer(t *testing.T) {
	if testing.Short() {
		t.Skip("builds an 8 MiB container")
	}
	big := pattern(8<<20, 3)
	img, err := Create([]Update{
		{Path: "FileHeader", Data: big},
		{Path: "Storage", Data: []byte{0xD0, 0, 0, 0, 0, 0}},
	}, Options{})
	require.NoError(t, err)

	c, err := reader.OpenBytes(img)
	require.NoError(t, err)
	require.Greater(t, int(c.Header().NumFATSectors), format.HeaderDIFATEntries)
	require.NotEmpty(t, c.DIFATSectors())
	got, err := c.Stream("FileHeader")
	require.NoError(t, err)
	require.True(t, bytes.Equal(big, got))
}

func TestCreateV4(t *testing.T) {
	data := pattern(9000, 1)
	img, err := Create([]Update{{Path: "FileHeader", Data: data}, {Path: "Additional", Data: []byte("tiny")}},
		Options{MajorVersion: format.MajorVersion4})
	require.NoError(t, err)
	c, err := reader.OpenBytes(img)
	require.NoError(t, err)
	require.Equal(t, 4096, c.SectorSize())
	require.Equal(t, uint32(1), c.Header().NumDirSectors)
	require.Equal(t, data, mustStream(t, img, "FileHeader"))
	require.Equal(t, []byte("tiny"), mustStream(t, img, "Additional"))

	_, err = Create(nil, Options{MajorVersion: 5})
	require.ErrorIs(t, err, format.ErrUnsupported)
}

func TestCreateNestedAndEmpty(t *testing.T) {
	img, err := Create([]Update{
		{Path: "Sub/Inner", Data: []byte("nested")},
		{Path: "Empty", Data: nil},
	}, Options{})
	require.NoError(t, err)
	c, err := reader.OpenBytes(img)
	require.NoError(t, err)
	require.Equal(t, []byte("nested"), mustStream(t, img, "Sub/Inner"))
	e, ok := c.Lookup("Empty")
	require.True(t, ok)
	require.Equal(t, uint64(0), e.Size)
	require.Equal(t, format.EndOfChain, e.StartSector)
	sub, ok := c.Lookup("Sub")
	require.True(t, ok)
	require.True(t, sub.IsStorage())
}

func TestRebuildPreservesMetadata(t *testing.T) {
	c, _ := newSample(t)
	img := append([]byte(nil), c.Data()...)
	e, _ := c.Lookup("Storage")
	dirOff := func(id uint32) int {
		return int(c.SectorOffset(c.DirSectors()[0])) + int(id)*format.DirEntrySize
	}
	copy(img[dirOff(0)+format.DirCLSIDOffset:], bytes.Repeat([]byte{0xAB}, 16))
	img[dirOff(e.ID)+format.DirStateBitsOffset] = 7
	img[dirOff(e.ID)+format.DirModifiedOffset] = 9

	src, err := reader.OpenBytes(img)
	require.NoError(t, err)
	out, _, err := ReplaceStream(src, "FileHeader", pattern(30000, 1), Options{})
	require.NoError(t, err)

	nc, err := reader.OpenBytes(out)
	require.NoError(t, err)
	clsid := nc.Root().CLSID
	require.Equal(t, bytes.Repeat([]byte{0xAB}, 16), clsid[:])
	ne, ok := nc.Lookup("Storage")
	require.True(t, ok)
	require.Equal(t, uint32(7), ne.StateBits)
	require.Equal(t, uint64(9), ne.Modified)
}

func TestModTime(t *testing.T) {
	stamp := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	ft := format.TimeToFiletime(stamp)
	img, err := Create([]Update{
		{Path: "FileHeader", Data: pattern(10000, 1)},
		{Path: "Storage", Data: []byte{0xD0, 0, 0, 0, 0, 0}},
	}, Options{ModTime: stamp})
	require.NoError(t, err)
	c, err := reader.OpenBytes(img)
	require.NoError(t, err)
	require.Equal(t, ft, c.Root().Modified)
	for _, e := range c.Entries() {
		require.Equal(t, stamp, format.FiletimeToTime(e.Modified), e.Path)
	}

	// in-place patches do not touch the directory times
	later := stamp.Add(time.Hour)
	out, res, err := ReplaceStream(c, "FileHeader", pattern(9000, 2), Options{ModTime: later})
	require.NoError(t, err)
	require.False(t, res.Rebuilt)
	nc, err := reader.OpenBytes(out)
	require.NoError(t, err)
	e, _ := nc.Lookup("FileHeader")
	require.Equal(t, ft, e.Modified)

	// a rebuild stamps the root and the written stream only
	out, res, err = ReplaceStream(c, "FileHeader", pattern(20000, 3), Options{ModTime: later})
	require.NoError(t, err)
	require.True(t, res.Rebuilt)
	nc, err = reader.OpenBytes(out)
	require.NoError(t, err)
	require.Equal(t, format.TimeToFiletime(later), nc.Root().Modified)
	e, _ = nc.Lookup("FileHeader")
	require.Equal(t, later, format.FiletimeToTime(e.Modified))
	e, _ = nc.Lookup("Storage")
	require.Equal(t, ft, e.Modified)
}
