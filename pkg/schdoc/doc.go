/*
Package schdoc reads and writes Altium binary schematic documents (.SchDoc).

# Quick Start

Open a document, add a wire and save it back:

	doc, err := schdoc.Open("board.SchDoc", nil)
	if err != nil {
	    log.Fatal(err)
	}
	ed := doc.Edit()
	ed.ConnectPoints(schdoc.Point{X: 1000, Y: 2000}, schdoc.Point{X: 1500, Y: 2000}, false)
	if err := doc.Save("board.SchDoc", nil); err != nil {
	    log.Fatal(err)
	}

# Fidelity

Objects that were not changed are written back with their original record
bytes, and changed objects keep the key order and spelling of their
original property table. Saving a document that was opened from a file
patches its record streams into the original container: streams that
still fit their sectors are overwritten in place and everything else in
the container is left as it was. When a stream outgrows its allocation
the container is rebuilt with every other stream copied unchanged.

# Files

Save writes through a temporary file in the destination directory and
renames it over the destination, so a failed save leaves the previous
file intact. An advisory lock on <path>.lock serializes concurrent savers.

# Error Handling

Errors wrap the sentinels re-exported by this package:

	if errors.Is(err, schdoc.ErrMissingStream) {
	    // not a schematic document
	}
*/
package schdoc
