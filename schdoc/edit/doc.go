// Package edit provides a session for building and modifying schematic
// documents without dealing with record indices or ownership by hand.
//
// # Overview
//
// A Session wraps a *schdoc.Document and hands out record indices from an
// explicit counter that starts one past the largest index in the document.
// Every object added through the session gets a fresh 8-character unique
// ID and is linked under its owner.
//
//	s := edit.Blank(nil)
//	r1 := s.AddResistor(schdoc.Point{X: 1000, Y: 2000}, "4k7", "R1", schdoc.Right)
//	s.ConnectPoints(schdoc.Point{X: 1000, Y: 2000}, schdoc.Point{X: 1500, Y: 2000}, true)
//	s.AddPowerPort("GND", schdoc.Point{X: 1500, Y: 1900}, schdoc.StylePowerGround, schdoc.Down)
//
// # Removal
//
// Remove refuses to drop an object that other objects still name as their
// owner and returns ErrHasChildren. RemoveCascade removes the owned objects
// first, depth first, then the object itself.
package edit
