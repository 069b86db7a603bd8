package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/schdockit/internal/edit"
)

// StorageData is the content of the Storage stream of generated containers.
var StorageData = []byte{0xD0, 0x00, 0x00, 0x00, 0x00, 0x00}

// Container builds a compound file holding the given streams.
// Calls t.Fatal if the container cannot be built.
func Container(t testing.TB, streams ...edit.Update) []byte {
	t.Helper()

	data, err := edit.Create(streams, edit.Options{})
	if err != nil {
		t.Fatalf("Failed to build container: %v", err)
	}
	return data
}

// SchematicContainer builds a container with the given FileHeader stream,
// the Storage stream and, when additional is non-nil, an Additional stream.
func SchematicContainer(t testing.TB, fileHeader, additional []byte) []byte {
	t.Helper()

	streams := []edit.Update{
		{Path: "FileHeader", Data: fileHeader},
		{Path: "Storage", Data: StorageData},
	}
	if additional != nil {
		streams = append(streams, edit.Update{Path: "Additional", Data: additional})
	}
	return Container(t, streams...)
}

// SetupSchematic writes the generated schematic to a temporary directory
// and returns its path.
//
// Example:
//
//	path := testutil.SetupSchematic(t)
//	doc, err := schdoc.Open(path, nil)
func SetupSchematic(t testing.TB) string {
	t.Helper()
	return WriteFile(t, "fixture.SchDoc", SchematicContainer(t, FileHeaderStream(), nil))
}

// WriteFile writes data under the test's temporary directory.
// Calls t.Fatal if the write fails.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}
