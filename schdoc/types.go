package schdoc

import (
	"fmt"
	"strconv"
)

// Stream names inside a schematic container.
const (
	FileHeaderStream = "FileHeader"
	AdditionalStream = "Additional"
	StorageStream    = "Storage"
)

// StorageData is the content of the Storage stream in a container written
// from scratch.
var StorageData = []byte{0xD0, 0x00, 0x00, 0x00, 0x00, 0x00}

// Stream identifies which record stream an object belongs to.
type Stream int

const (
	// InFileHeader is the main record stream.
	InFileHeader Stream = iota
	// InAdditional holds records stored after the main stream, typically
	// hierarchical sheet entries.
	InAdditional
)

func (s Stream) String() string {
	if s == InAdditional {
		return AdditionalStream
	}
	return FileHeaderStream
}

// Point is a coordinate pair in 1/100 inch.
type Point struct {
	X, Y int
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// MilsToMM converts 1/100 inch to millimetres.
func MilsToMM(v float64) float64 { return v * 0.254 }

// MMToMils converts millimetres to 1/100 inch.
func MMToMils(mm float64) float64 { return mm / 0.254 }

// Color is a 0x00BBGGRR colour value as stored in records.
type Color uint32

// ColorFromRGB packs red, green and blue components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color(uint32(r) | uint32(g)<<8 | uint32(b)<<16)
}

// RGB unpacks the colour.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16)
}

// Orientation is a quadrant rotation.
type Orientation int

const (
	Right Orientation = iota // 0°
	Up                       // 90°
	Left                     // 180°
	Down                     // 270°
)

// Degrees returns the rotation in degrees.
func (o Orientation) Degrees() int { return int(o&3) * 90 }

func (o Orientation) String() string {
	switch o {
	case Right:
		return "Right"
	case Up:
		return "Up"
	case Left:
		return "Left"
	case Down:
		return "Down"
	default:
		return "Orientation(" + strconv.Itoa(int(o)) + ")"
	}
}

// ParseOrientation accepts quadrant codes 0..3 and literal degrees 90, 180
// and 270.
func ParseOrientation(v int) (Orientation, bool) {
	switch v {
	case 0, 1, 2, 3:
		return Orientation(v), true
	case 90:
		return Up, true
	case 180:
		return Left, true
	case 270:
		return Down, true
	}
	return Right, false
}

// PinElectrical is the electrical type of a pin.
type PinElectrical int

const (
	PinInput PinElectrical = iota
	PinIO
	PinOutput
	PinOpenCollector
	PinPassive
	PinHiZ
	PinOpenEmitter
	PinPower
)

var pinElectricalNames = [...]string{"Input", "IO", "Output", "OpenCollector", "Passive", "HiZ", "OpenEmitter", "Power"}

func (p PinElectrical) String() string {
	if p >= 0 && int(p) < len(pinElectricalNames) {
		return pinElectricalNames[p]
	}
	return "PinElectrical(" + strconv.Itoa(int(p)) + ")"
}

// PowerPortStyle is the symbol drawn for a power port.
type PowerPortStyle int

const (
	StyleArrow PowerPortStyle = iota
	StyleBar
	StyleWave
	StylePowerGround
	StyleSignalGround
	StyleEarth
	StyleGostArrow
	StyleGostPowerGround
	StyleGostEarth
	StyleGostBar
)

var powerPortStyleNames = [...]string{
	"Arrow", "Bar", "Wave", "PowerGround", "SignalGround", "Earth",
	"GostArrow", "GostPowerGround", "GostEarth", "GostBar",
}

func (s PowerPortStyle) String() string {
	if s >= 0 && int(s) < len(powerPortStyleNames) {
		return powerPortStyleNames[s]
	}
	return "PowerPortStyle(" + strconv.Itoa(int(s)) + ")"
}

// Font is one entry of the sheet font table. Records refer to fonts by
// 1-based position through FONTID.
type Font struct {
	Size      int
	Name      string
	Bold      bool
	Italic    bool
	Underline bool
}
