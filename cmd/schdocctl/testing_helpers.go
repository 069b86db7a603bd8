package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/schdockit/pkg/schdoc"
)

// testDocument writes a small schematic to a temporary directory and
// returns its path: two resistors joined by a wire, a net label and a
// ground port.
func testDocument(t *testing.T) string {
	t.Helper()

	s := schdoc.New()
	ed := s.Edit()
	ed.AddResistor(schdoc.Point{X: 1000, Y: 1000}, "4k7", "R1", schdoc.Right)
	ed.AddResistor(schdoc.Point{X: 2000, Y: 1000}, "", "R2", schdoc.Right)
	ed.ConnectPoints(schdoc.Point{X: 1100, Y: 1000}, schdoc.Point{X: 1900, Y: 1000}, true)
	ed.AddNetLabel("MID", schdoc.Point{X: 1500, Y: 1000}, schdoc.Right)
	ed.AddPowerPort("GND", schdoc.Point{X: 1500, Y: 800}, 0, schdoc.Down)

	path := filepath.Join(t.TempDir(), "test.SchDoc")
	if err := s.Save(path, &schdoc.SaveOptions{NoLock: true}); err != nil {
		t.Fatalf("failed to write test document: %v", err)
	}
	return path
}

// resetFlags restores global flags after a test changes them
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		verbose, quiet, jsonOut, noColor = false, false, false, false
		recordsKind, recordsLimit = -1, 0
		roundtripForce = false
		patchOutput, patchStrategy, patchBackup = "", "auto", false
	})
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
