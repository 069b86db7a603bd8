// Package verify checks decoded schematics and their containers for
// structural anomalies.
//
// # Overview
//
// Decoding never fails on malformed content: unresolved owners, missing
// singletons and inconsistent vertex lists are carried through as they are.
// This package reports them.
//
// Document checks:
//   - Header: present, first, exactly once
//   - Sheet: present exactly once
//   - Indices: unique
//   - Owners: resolvable, not self-referencing, acyclic
//   - Vertices: LOCATIONCOUNT matches the X{i}/Y{i} keys present
//   - Fonts: FONTID within the sheet font table
//
// Container checks walk every directory entry and stream chain of the
// compound file.
//
// # Quick Start
//
//	doc, _ := schdoc.DecodeStreams(fileHeader, additional)
//	rep := verify.Document(doc)
//	for _, a := range rep.Anomalies {
//	    fmt.Println(a)
//	}
//
//	if err := verify.Container(data); err != nil {
//	    fmt.Printf("container invalid: %v\n", err)
//	}
//
// # Anomaly
//
// Each finding names a check, the object index it concerns (-1 when it
// concerns the document as a whole) and a human-readable message:
//
//	type Anomaly struct {
//	    Code     Code
//	    Severity Severity
//	    Index    int
//	    Kind     schdoc.Kind
//	    Message  string
//	}
package verify
