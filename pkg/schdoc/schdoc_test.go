package schdoc

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/schdockit/internal/edit"
	"github.com/joshuapare/schdockit/internal/testutil"
	"github.com/joshuapare/schdockit/schdoc"
	"github.com/joshuapare/schdockit/schdoc/verify"
)

func requireFixtureCounts(t *testing.T, s *Schematic, extra int) {
	t.Helper()
	assert.Len(t, s.Components(), testutil.FixtureComponents+extra)
	assert.Len(t, s.Wires(), testutil.FixtureWires+extra)
	assert.Len(t, s.NetLabels(), testutil.FixtureNetLabels+extra)
	assert.Len(t, s.PowerPorts(), testutil.FixturePowerPorts)
	assert.Len(t, s.Junctions(), testutil.FixtureJunctions)
}

// TestOpen tests reading the generated schematic through both read paths.
func TestOpen(t *testing.T) {
	path := testutil.SetupSchematic(t)
	for _, noMmap := range []bool{false, true} {
		s, err := Open(path, &OpenOptions{NoMmap: noMmap})
		require.NoError(t, err)
		require.Equal(t, testutil.FixtureObjects, s.Len())
		assert.True(t, s.Report.Clean())
		requireFixtureCounts(t, s, 0)
		require.NotNil(t, s.Header)
		require.NotNil(t, s.Sheet)
		assert.True(t, s.Verify().OK())
		assert.NotEmpty(t, s.Template())
	}
}

// TestOpen_Errors tests the fatal open conditions.
func TestOpen_Errors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.SchDoc"), nil)
	require.Error(t, err)

	notCFB := testutil.WriteFile(t, "plain.SchDoc", make([]byte, 1024))
	_, err = Open(notCFB, nil)
	require.ErrorIs(t, err, ErrNotCFB)

	noHeader := testutil.Container(t, edit.Update{Path: "Storage", Data: StorageData})
	_, err = OpenBytes(noHeader, nil)
	require.ErrorIs(t, err, ErrMissingStream)
}

// TestOpen_Additional tests that both record streams are decoded as one
// sequence and split again on save.
func TestOpen_Additional(t *testing.T) {
	fh := testutil.Frame(
		"|HEADER=Protel for Windows - Schematic Capture Binary File Version 5.0|WEIGHT=3|",
		"|RECORD=31|",
	)
	add := testutil.Frame("|RECORD=29|LOCATION.X=10|", "|RECORD=29|LOCATION.X=20|")
	s, err := OpenBytes(testutil.SchematicContainer(t, fh, add), nil)
	require.NoError(t, err)
	require.Equal(t, 4, s.Len())
	assert.Equal(t, 2, s.Report.FileHeaderRecords)
	js := s.Junctions()
	require.Len(t, js, 2)
	assert.Equal(t, schdoc.InAdditional, js[0].Stream)

	out, err := s.SaveBytes(nil)
	require.NoError(t, err)
	path := testutil.WriteFile(t, "out.SchDoc", out)
	gotFH, err := ReadStream(path, "FileHeader")
	require.NoError(t, err)
	assert.Equal(t, fh, gotFH)
	gotAdd, err := ReadStream(path, "Additional")
	require.NoError(t, err)
	assert.Equal(t, add, gotAdd)
}

// TestSaveBytes_Unchanged tests that an unmodified document writes back the
// same record stream.
func TestSaveBytes_Unchanged(t *testing.T) {
	path := testutil.SetupSchematic(t)
	s, err := Open(path, nil)
	require.NoError(t, err)

	out, err := s.SaveBytes(&SaveOptions{Strategy: StrategyInPlaceOnly})
	require.NoError(t, err)
	reread, err := OpenBytes(out, nil)
	require.NoError(t, err)
	require.Equal(t, s.Len(), reread.Len())

	dst := testutil.WriteFile(t, "same.SchDoc", out)
	got, err := ReadStream(dst, "FileHeader")
	require.NoError(t, err)
	assert.Equal(t, testutil.FileHeaderStream(), got)
	storage, err := ReadStream(dst, "Storage")
	require.NoError(t, err)
	assert.Equal(t, StorageData, storage)
}

// TestSave_AppendScenario adds one component, wire and net label to the
// generated schematic, saves, reloads and checks that the original records
// are untouched.
func TestSave_AppendScenario(t *testing.T) {
	path := testutil.SetupSchematic(t)
	s, err := Open(path, nil)
	require.NoError(t, err)

	ed := s.Edit()
	comp := ed.AddComponent("LM358", "U100", Point{X: 5000, Y: 5000}, Right)
	_, err = ed.AddWire(Point{X: 5000, Y: 4000}, Point{X: 5500, Y: 4000})
	require.NoError(t, err)
	ed.AddNetLabel("NEW_NET", Point{X: 5100, Y: 4000}, Right)

	require.NoError(t, s.Save(path, nil))
	_, err = os.Stat(path + ".lock")
	require.NoError(t, err)

	reread, err := Open(path, nil)
	require.NoError(t, err)
	requireFixtureCounts(t, reread, 1)
	// the component's Designator parameter is the fourth new object
	require.Equal(t, testutil.FixtureObjects+4, reread.Len())
	assert.True(t, reread.Verify().OK(), "%v", reread.Verify().Anomalies)

	objs := reread.Objects()
	for i, p := range testutil.SchematicPayloads() {
		require.Equal(t, p, objs[i].Common().Raw(), "object %d", i)
	}

	added, ok := objs[testutil.FixtureObjects].(*schdoc.Component)
	require.True(t, ok)
	assert.Equal(t, "U100", added.Designator())
	assert.Equal(t, comp.UniqueID, added.UniqueID)
}

// TestSave_Grow tests the strategies against a stream that outgrows its
// sectors.
func TestSave_Grow(t *testing.T) {
	path := testutil.SetupSchematic(t)
	s, err := Open(path, nil)
	require.NoError(t, err)
	ed := s.Edit()
	for i := range 60 {
		_, err := ed.AddWire(Point{X: i * 10, Y: 0}, Point{X: i * 10, Y: 100})
		require.NoError(t, err)
	}

	_, err = s.SaveBytes(&SaveOptions{Strategy: StrategyInPlaceOnly})
	require.ErrorIs(t, err, ErrRebuildRequired)

	out, err := s.SaveBytes(nil)
	require.NoError(t, err)
	require.NoError(t, verify.Container(out))
	reread, err := OpenBytes(out, nil)
	require.NoError(t, err)
	assert.Len(t, reread.Wires(), testutil.FixtureWires+60)

	dst := testutil.WriteFile(t, "grown.SchDoc", out)
	storage, err := ReadStream(dst, "Storage")
	require.NoError(t, err)
	assert.Equal(t, StorageData, storage)
}

// TestSave_DanglingOwners tests the removed-owner guard.
func TestSave_DanglingOwners(t *testing.T) {
	s, err := Open(testutil.SetupSchematic(t), nil)
	require.NoError(t, err)
	comp := s.Components()[0]
	require.True(t, s.Remove(comp))

	_, err = s.SaveBytes(nil)
	require.ErrorIs(t, err, ErrDanglingOwner)

	out, err := s.SaveBytes(&SaveOptions{AllowDanglingOwners: true})
	require.NoError(t, err)
	assert.Equal(t, out, s.Template())

	// the orphans still point past every object after compaction
	dangling := s.DanglingOwners()
	require.Len(t, dangling, 1+testutil.FixturePinsPerComponent)
	reread, err := OpenBytes(out, nil)
	require.NoError(t, err)
	for _, o := range dangling {
		b := o.Common()
		assert.GreaterOrEqual(t, b.OwnerIndex, s.Len())
		assert.Nil(t, reread.Owner(reread.ByIndex(b.Index)))
	}
}

// TestListStreams_Times tests that directory times set on save are listed.
func TestListStreams_Times(t *testing.T) {
	stamp := time.Date(2026, 5, 4, 8, 15, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "stamped.SchDoc")
	require.NoError(t, New().Save(path, &SaveOptions{NoLock: true, ModTime: stamp}))

	infos, err := ListStreams(path)
	require.NoError(t, err)
	require.NotEmpty(t, infos)
	for _, in := range infos {
		assert.Equal(t, stamp, in.Modified, in.Path)
		assert.True(t, in.Created.IsZero(), in.Path)
	}
}

// TestNew tests saving a document that has no source container.
func TestNew(t *testing.T) {
	s := New()
	ed := s.Edit()
	ed.AddResistor(Point{X: 100, Y: 100}, "", "R1", Right)
	ed.AddPowerPort("VCC", Point{X: 100, Y: 300}, schdoc.StyleBar, Up)

	dir := t.TempDir()
	path := filepath.Join(dir, "new.SchDoc")
	require.NoError(t, s.Save(path, &SaveOptions{NoLock: true}))
	_, err := os.Stat(path + ".lock")
	require.True(t, os.IsNotExist(err))

	infos, err := ListStreams(path)
	require.NoError(t, err)
	names := make(map[string]StreamInfo)
	for _, in := range infos {
		names[in.Path] = in
	}
	require.Contains(t, names, "FileHeader")
	require.Contains(t, names, "Storage")
	assert.NotContains(t, names, "Additional")
	assert.True(t, names["Storage"].Mini)
	assert.Equal(t, uint64(len(StorageData)), names["Storage"].Size)

	reread, err := Open(path, nil)
	require.NoError(t, err)
	require.Equal(t, 6, reread.Len())
	c, ok := reread.Edit().FindComponent("R1")
	require.True(t, ok)
	v, ok := c.Parameter("Value")
	require.True(t, ok)
	assert.Equal(t, "10k", v.Text)
	assert.Equal(t, "VCC", reread.PowerPorts()[0].Text)
	assert.Len(t, reread.Sheet.Fonts, 2)
}

// TestParse tests decoding bare record streams and saving onto a template.
func TestParse(t *testing.T) {
	s := Parse(testutil.FileHeaderStream(), nil, nil)
	require.Equal(t, testutil.FixtureObjects, s.Len())
	assert.Nil(t, s.Template())

	template := testutil.SchematicContainer(t, testutil.Frame("|HEADER=x|"), nil)
	out, err := s.SaveBytes(&SaveOptions{Template: template})
	require.NoError(t, err)
	reread, err := OpenBytes(out, nil)
	require.NoError(t, err)
	assert.Equal(t, testutil.FixtureObjects, reread.Len())
}

// TestSave_Backup tests the backup copy of the previous file.
func TestSave_Backup(t *testing.T) {
	path := testutil.SetupSchematic(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	s, err := Open(path, nil)
	require.NoError(t, err)
	s.Edit().AddJunction(Point{X: 1, Y: 1})
	require.NoError(t, s.Save(path, &SaveOptions{CreateBackup: true}))

	bak, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, before, bak)
}

// TestPatchStream tests replacing a stream in place and by rebuild.
func TestPatchStream(t *testing.T) {
	src := testutil.SetupSchematic(t)
	dst := filepath.Join(t.TempDir(), "patched.SchDoc")

	res, err := PatchStream(src, "Storage", []byte{0xD0, 1, 2, 3, 4, 5}, dst, nil)
	require.NoError(t, err)
	assert.False(t, res.Rebuilt)
	assert.Equal(t, edit.PlanSameSectorCount, res.Plans["Storage"])

	big := make([]byte, 10000)
	for i := range big {
		big[i] = byte(i)
	}
	res, err = PatchStream(dst, "Storage", big, dst, nil)
	require.NoError(t, err)
	assert.True(t, res.Rebuilt)
	assert.Equal(t, edit.PlanCrossCutoff, res.Plans["Storage"])

	got, err := ReadStream(dst, "Storage")
	require.NoError(t, err)
	assert.Equal(t, big, got)
	fh, err := ReadStream(dst, "FileHeader")
	require.NoError(t, err)
	assert.Equal(t, testutil.FileHeaderStream(), fh)
}
