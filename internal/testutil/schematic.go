package testutil

import (
	"fmt"

	"github.com/joshuapare/schdockit/schdoc/record"
)

// Composition of the generated schematic.
const (
	FixtureComponents        = 200
	FixturePinsPerComponent  = 2
	FixtureWires             = 500
	FixtureNetLabels         = 150
	FixturePowerPorts        = 84
	FixtureJunctions         = 50
	FixtureObjects           = 2 + FixtureComponents*(2+FixturePinsPerComponent) + FixtureWires + FixtureNetLabels + FixturePowerPorts + FixtureJunctions
	FixtureLatin1Component   = 7
	fixtureHeaderUniqueID    = "QHXKBTNC"
	fixturePowerPortStyleMod = 10
)

// SchematicPayloads returns the property payloads of the generated
// schematic in stream order: header, sheet, components each followed by
// their pins and designator parameter, then wires, net labels, power ports
// and junctions.
//
// The records mix the spellings found in real files: dotted and bare
// coordinates, _FRAC companions, mixed-case keys, degree-coded orientations
// and one Latin-1 encoded description.
func SchematicPayloads() [][]byte {
	var out [][]byte
	add := func(format string, args ...any) {
		out = append(out, append([]byte(fmt.Sprintf(format, args...)), 0))
	}

	add("|HEADER=Protel for Windows - Schematic Capture Binary File Version 5.0|WEIGHT=%d|MINORVERSION=13|UNIQUEID=%s|",
		FixtureObjects-1, fixtureHeaderUniqueID)
	add("|RECORD=31|FONTIDCOUNT=2|SIZE1=10|FONTNAME1=Times New Roman|SIZE2=10|FONTNAME2=Arial|BOLD2=T" +
		"|USEMBCS=T|ISBOC=T|HOTSPOTGRIDON=T|HOTSPOTGRIDSIZE=4|SHEETSTYLE=9|SYSTEMFONT=1|BORDERON=T" +
		"|AREACOLOR=16317695|SNAPGRIDON=T|SNAPGRIDSIZE=10|VISIBLEGRIDON=T|VISIBLEGRIDSIZE=10" +
		"|CUSTOMX=18000|CUSTOMY=18000|USECUSTOMSHEET=T|REFERENCEZONESON=T|Display_Unit=4|")

	for c := range FixtureComponents {
		idx := len(out)
		x, y := 1000+(c%20)*300, 1000+(c/20)*400
		desc := "Resistor"
		if c == FixtureLatin1Component {
			desc = "10\xb5F capacitor"
		}
		if c%2 == 0 {
			add("|RECORD=1|LIBREFERENCE=RES|COMPONENTDESCRIPTION=%s|OWNERPARTID=-1|LOCATION.X=%d|LOCATION.Y=%d"+
				"|CURRENTPARTID=1|DISPLAYMODECOUNT=1|COLOR=128|AREACOLOR=11599871|UNIQUEID=C%07d|",
				desc, x, y, c)
		} else {
			add("|RECORD=1|LIBREFERENCE=RES|COMPONENTDESCRIPTION=%s|OWNERPARTID=-1|X=%d|Y=%d|X_FRAC=25000"+
				"|ORIENTATION=90|CURRENTPARTID=1|DISPLAYMODECOUNT=1|COLOR=128|AREACOLOR=11599871|UNIQUEID=C%07d|",
				desc, x, y, c)
		}
		for p := range FixturePinsPerComponent {
			// length 3 (30 mils), pointing left for pin 1 and right for pin 2
			cong := 3<<8 | 2<<2
			px := x
			if p == 1 {
				cong = 3 << 8
				px = x + 100
			}
			add("|RECORD=2|OWNERINDEX=%d|OWNERPARTID=1|DESCRIPTION=|FORMALTYPE=1|ELECTRICAL=4|PINCONGLOMERATE=%d"+
				"|PINLENGTH=30|LOCATION.X=%d|LOCATION.Y=%d|NAME=%d|DESIGNATOR=%d|SWAPIDPIN=%d|",
				idx, cong, px, y, p+1, p+1, p+1)
		}
		add("|RECORD=41|OWNERINDEX=%d|OWNERPARTID=-1|LOCATION.X=%d|LOCATION.Y=%d|COLOR=8388608|FONTID=1"+
			"|TEXT=R%d|NAME=Designator|READONLYSTATE=1|", idx, x, y+50, c+1)
	}
	for w := range FixtureWires {
		x, y := 500+(w%25)*80, 500+(w/25)*60
		if w%5 == 0 {
			add("|RECORD=27|OWNERPARTID=-1|LINEWIDTH=1|COLOR=8388608|LOCATIONCOUNT=3|X1=%d|Y1=%d|X2=%d|Y2=%d|X3=%d|Y3=%d|",
				x, y, x+40, y, x+40, y+30)
			continue
		}
		add("|RECORD=27|OWNERPARTID=-1|LINEWIDTH=1|COLOR=8388608|LOCATIONCOUNT=2|X1=%d|Y1=%d|X2=%d|Y2=%d|",
			x, y, x+40, y)
	}
	for n := range FixtureNetLabels {
		add("|RECORD=25|OWNERPARTID=-1|LOCATION.X=%d|LOCATION.Y=%d|LOCATION.X_FRAC=5000|COLOR=128|FONTID=1|TEXT=NET%d|",
			600+n*10, 700, n)
	}
	for p := range FixturePowerPorts {
		orient := []string{"0", "90", "2", "270"}[p%4]
		text := "GND"
		if p%3 == 0 {
			text = "VCC"
		}
		add("|RECORD=17|OWNERPARTID=-1|STYLE=%d|SHOWNETNAME=T|LOCATION.X=%d|LOCATION.Y=%d|ORIENTATION=%s"+
			"|COLOR=128|FONTID=1|TEXT=%s|", p%fixturePowerPortStyleMod, 300+p*20, 200, orient, text)
	}
	for j := range FixtureJunctions {
		add("|RECORD=29|OWNERPARTID=-1|LOCATION.X=%d|LOCATION.Y=%d|COLOR=128|", 540+j*80, 500)
	}
	return out
}

// FileHeaderStream frames SchematicPayloads as a FileHeader stream.
func FileHeaderStream() []byte {
	var data []byte
	for _, p := range SchematicPayloads() {
		var err error
		data, err = record.Append(data, record.TypeProperties, p)
		if err != nil {
			panic(err)
		}
	}
	return data
}

// Frame joins property payloads into a record stream. Each payload gets a
// NUL terminator.
func Frame(payloads ...string) []byte {
	var data []byte
	for _, p := range payloads {
		var err error
		data, err = record.Append(data, record.TypeProperties, append([]byte(p), 0))
		if err != nil {
			panic(err)
		}
	}
	return data
}
