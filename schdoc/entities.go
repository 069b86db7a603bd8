package schdoc

import "strings"

// DefaultHeaderVersion is the HEADER text of binary schematic documents.
const DefaultHeaderVersion = "Protel for Windows - Schematic Capture Binary File Version 5.0"

// Default colours.
const (
	Black Color = 0x000000
	White Color = 0xFFFFFF
	Navy  Color = 0x800000
)

// Header is the first record of a document. It has no RECORD key.
type Header struct {
	Base
	Version      string
	Weight       int
	MinorVersion int
}

// NewHeader returns a Header holding the values of an empty record.
func NewHeader() *Header { h := &Header{}; initNew(h); return h }

func (*Header) Kind() Kind { return KindHeader }

func (h *Header) bind(b *binder) {
	b.StrAlways("HEADER", &h.Version, DefaultHeaderVersion)
	b.IntAlways("WEIGHT", &h.Weight, 0)
	b.IntAlways("MINORVERSION", &h.MinorVersion, 13)
}

// Sheet holds the document-wide settings and the font table.
type Sheet struct {
	Base
	Fonts                []Font
	UseCustomSheet       bool
	CustomX, CustomY     int
	CustomXZones         int
	CustomYZones         int
	CustomMarginWidth    int
	SheetStyle           int
	SystemFont           int
	AreaColor            Color
	BorderOn             bool
	SnapGridOn           bool
	SnapGridSize         int
	VisibleGridOn        bool
	VisibleGridSize      int
	HotSpotGridOn        bool
	HotSpotGridSize      int
	ReferenceZonesOn     bool
	DisplayUnit          int
	WorkspaceOrientation int
}

// NewSheet returns a sheet with grids, border and reference zones on and
// no fonts.
func NewSheet() *Sheet {
	s := &Sheet{}
	initNew(s)
	s.BorderOn = true
	s.SnapGridOn = true
	s.VisibleGridOn = true
	s.HotSpotGridOn = true
	s.ReferenceZonesOn = true
	return s
}

func (*Sheet) Kind() Kind { return KindSheet }

// Font returns the font a FONTID refers to.
func (s *Sheet) Font(id int) (Font, bool) {
	if id < 1 || id > len(s.Fonts) {
		return Font{}, false
	}
	return s.Fonts[id-1], true
}

// AddFont appends a font and returns its FONTID.
func (s *Sheet) AddFont(f Font) int {
	s.Fonts = append(s.Fonts, f)
	return len(s.Fonts)
}

func (s *Sheet) bind(b *binder) {
	b.Fonts(&s.Fonts)
	b.Bool("USECUSTOMSHEET", &s.UseCustomSheet, false)
	b.Int("CUSTOMX", &s.CustomX, 0)
	b.Int("CUSTOMY", &s.CustomY, 0)
	b.Int("CUSTOMXZONES", &s.CustomXZones, 0)
	b.Int("CUSTOMYZONES", &s.CustomYZones, 0)
	b.Int("CUSTOMMARGINWIDTH", &s.CustomMarginWidth, 0)
	b.Int("SHEETSTYLE", &s.SheetStyle, 0)
	b.Int("SYSTEMFONT", &s.SystemFont, 1)
	b.ColorAlways("AREACOLOR", &s.AreaColor, White)
	b.Bool("BORDERON", &s.BorderOn, false)
	b.Bool("SNAPGRIDON", &s.SnapGridOn, false)
	b.Int("SNAPGRIDSIZE", &s.SnapGridSize, 10)
	b.Bool("VISIBLEGRIDON", &s.VisibleGridOn, false)
	b.Int("VISIBLEGRIDSIZE", &s.VisibleGridSize, 10)
	b.Bool("HOTSPOTGRIDON", &s.HotSpotGridOn, false)
	b.Int("HOTSPOTGRIDSIZE", &s.HotSpotGridSize, 10)
	b.Bool("REFERENCEZONESON", &s.ReferenceZonesOn, false)
	b.Int("DISPLAY_UNIT", &s.DisplayUnit, 4)
	b.Int("WORKSPACEORIENTATION", &s.WorkspaceOrientation, 0)
}

// Component is a placed library part. Pins, parameters, designators and
// graphics of the part symbol are its children.
type Component struct {
	Base
	children
	LibReference         string
	ComponentDescription string
	DesignItemID         string
	Location             Point
	Orientation          Orientation
	IsMirrored           bool
	CurrentPartID        int
	PartCount            int
	DisplayModeCount     int
	DisplayMode          int
	Color                Color
	AreaColor            Color
	SourceLibraryName    string
	LibraryPath          string
	SheetPartFilename    string
	TargetFilename       string
}

// NewComponent returns a Component holding the values of an empty record.
func NewComponent() *Component { c := &Component{}; initNew(c); return c }

func (*Component) Kind() Kind { return KindComponent }

// Designator returns the reference designator text, taken from an owned
// Designator record or from an owned parameter named "Designator".
func (c *Component) Designator() string {
	for _, ch := range c.list {
		if d, ok := ch.(*Designator); ok {
			return d.Text
		}
	}
	for _, ch := range c.list {
		if p, ok := ch.(*Parameter); ok && strings.EqualFold(p.Name, "Designator") {
			return p.Text
		}
	}
	return ""
}

// Pins returns the owned pins.
func (c *Component) Pins() []*Pin {
	var pins []*Pin
	for _, ch := range c.list {
		if p, ok := ch.(*Pin); ok {
			pins = append(pins, p)
		}
	}
	return pins
}

// Parameter returns the owned parameter with the given name.
func (c *Component) Parameter(name string) (*Parameter, bool) {
	for _, ch := range c.list {
		if p, ok := ch.(*Parameter); ok && strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return nil, false
}

func (c *Component) bind(b *binder) {
	b.Str("LIBREFERENCE", &c.LibReference, "")
	b.Str("COMPONENTDESCRIPTION", &c.ComponentDescription, "")
	b.Str("DESIGNITEMID", &c.DesignItemID, "")
	b.Location(&c.Location)
	b.Orientation("ORIENTATION", &c.Orientation, Right)
	b.Bool("ISMIRRORED", &c.IsMirrored, false)
	b.IntAlways("CURRENTPARTID", &c.CurrentPartID, 1)
	b.Int("PARTCOUNT", &c.PartCount, 1)
	b.IntAlways("DISPLAYMODECOUNT", &c.DisplayModeCount, 1)
	b.Int("DISPLAYMODE", &c.DisplayMode, 0)
	b.ColorAlways("COLOR", &c.Color, Black)
	b.ColorAlways("AREACOLOR", &c.AreaColor, White)
	b.Str("SOURCELIBRARYNAME", &c.SourceLibraryName, "")
	b.Str("LIBRARYPATH", &c.LibraryPath, "")
	b.Str("SHEETPARTFILENAME", &c.SheetPartFilename, "")
	b.Str("TARGETFILENAME", &c.TargetFilename, "")
}

// Pin is a component pin.
type Pin struct {
	Base
	Location           Point
	Electrical         PinElectrical
	Conglomerate       int
	Name               string
	Designator         string
	Description        string
	Color              Color
	NamePosition       int
	DesignatorPosition int
	SymbolInner        int
	SymbolOuter        int
	SymbolInnerEdge    int
	SymbolOuterEdge    int
	IsHidden           bool
}

// NewPin returns a Pin holding the values of an empty record.
func NewPin() *Pin { p := &Pin{}; initNew(p); return p }

func (*Pin) Kind() Kind { return KindPin }

// Orientation returns the direction the pin points away from its body,
// packed in bits 2-3 of PINCONGLOMERATE.
func (p *Pin) Orientation() Orientation {
	return Orientation((p.Conglomerate >> 2) & 0x3)
}

// SetOrientation stores o in the conglomerate.
func (p *Pin) SetOrientation(o Orientation) {
	p.Conglomerate = p.Conglomerate&^(0x3<<2) | int(o&3)<<2
}

// Length returns the pin length in units of 10 mils, packed in bits 8-15
// of PINCONGLOMERATE.
func (p *Pin) Length() int {
	return (p.Conglomerate >> 8) & 0xFF
}

// SetLength stores n (0..255) in the conglomerate.
func (p *Pin) SetLength(n int) {
	p.Conglomerate = p.Conglomerate&^(0xFF<<8) | (n&0xFF)<<8
}

// Tip returns the electrical end of the pin.
func (p *Pin) Tip() Point {
	d := p.Length() * 10
	switch p.Orientation() {
	case Up:
		return Point{p.Location.X, p.Location.Y + d}
	case Left:
		return Point{p.Location.X - d, p.Location.Y}
	case Down:
		return Point{p.Location.X, p.Location.Y - d}
	}
	return Point{p.Location.X + d, p.Location.Y}
}

func normElectrical(v int) int {
	if v < 0 || v > int(PinPower) {
		return int(PinPassive)
	}
	return v
}

func (p *Pin) bind(b *binder) {
	b.Location(&p.Location)
	e := int(p.Electrical)
	b.Enum("ELECTRICAL", &e, int(PinInput), normElectrical)
	p.Electrical = PinElectrical(e)
	b.Int("PINCONGLOMERATE", &p.Conglomerate, 0)
	b.StrAlways("NAME", &p.Name, "")
	b.StrAlways("DESIGNATOR", &p.Designator, "")
	b.Str("DESCRIPTION", &p.Description, "")
	b.ColorAlways("COLOR", &p.Color, Black)
	b.Int("PINNAME_POSITIONCONGLOMERATE", &p.NamePosition, 0)
	b.Int("PINDESIGNATOR_POSITIONCONGLOMERATE", &p.DesignatorPosition, 0)
	b.Int("SYMBOL_INNER", &p.SymbolInner, 0)
	b.Int("SYMBOL_OUTER", &p.SymbolOuter, 0)
	b.Int("SYMBOL_INNEREDGE", &p.SymbolInnerEdge, 0)
	b.Int("SYMBOL_OUTEREDGE", &p.SymbolOuterEdge, 0)
	b.Bool("ISHIDDEN", &p.IsHidden, false)
}

// Label is free text.
type Label struct {
	Base
	Location        Point
	Text            string
	Orientation     Orientation
	Justification   int
	Color           Color
	FontID          int
	IsMirrored      bool
	IsNotAccessible bool
}

// NewLabel returns a Label holding the values of an empty record.
func NewLabel() *Label { l := &Label{}; initNew(l); return l }

func (*Label) Kind() Kind { return KindLabel }

func (l *Label) bind(b *binder) {
	b.Location(&l.Location)
	b.StrAlways("TEXT", &l.Text, "")
	b.Orientation("ORIENTATION", &l.Orientation, Right)
	b.Int("JUSTIFICATION", &l.Justification, 0)
	b.ColorAlways("COLOR", &l.Color, Black)
	b.Int("FONTID", &l.FontID, 1)
	b.Bool("ISMIRRORED", &l.IsMirrored, false)
	b.Bool("ISNOTACCESIBLE", &l.IsNotAccessible, false)
}

// Polyline is an open multi-segment line.
type Polyline struct {
	Base
	Points          []Point
	Color           Color
	LineWidth       int
	LineStyle       int
	LineShape       int
	IsNotAccessible bool
}

// NewPolyline returns a Polyline holding the values of an empty record.
func NewPolyline() *Polyline { p := &Polyline{}; initNew(p); return p }

func (*Polyline) Kind() Kind { return KindPolyline }

func (p *Polyline) bind(b *binder) {
	b.Points(&p.Points)
	b.ColorAlways("COLOR", &p.Color, Black)
	b.IntAlways("LINEWIDTH", &p.LineWidth, 1)
	b.Int("LINESTYLE", &p.LineStyle, 0)
	b.Int("LINESHAPE", &p.LineShape, 0)
	b.Bool("ISNOTACCESIBLE", &p.IsNotAccessible, false)
}

// Polygon is a closed, optionally filled outline.
type Polygon struct {
	Base
	Points          []Point
	Color           Color
	AreaColor       Color
	IsSolid         bool
	Transparent     bool
	LineWidth       int
	IsNotAccessible bool
}

// NewPolygon returns a Polygon holding the values of an empty record.
func NewPolygon() *Polygon { p := &Polygon{}; initNew(p); return p }

func (*Polygon) Kind() Kind { return KindPolygon }

func (p *Polygon) bind(b *binder) {
	b.Points(&p.Points)
	b.ColorAlways("COLOR", &p.Color, Black)
	b.ColorAlways("AREACOLOR", &p.AreaColor, White)
	b.Bool("ISSOLID", &p.IsSolid, false)
	b.Bool("TRANSPARENT", &p.Transparent, false)
	b.IntAlways("LINEWIDTH", &p.LineWidth, 1)
	b.Bool("ISNOTACCESIBLE", &p.IsNotAccessible, false)
}

// Ellipse is centred on Location.
type Ellipse struct {
	Base
	Location        Point
	Radius          int
	SecondaryRadius int
	Color           Color
	AreaColor       Color
	IsSolid         bool
	Transparent     bool
	LineWidth       int
	IsNotAccessible bool
}

// NewEllipse returns an Ellipse holding the values of an empty record.
func NewEllipse() *Ellipse { e := &Ellipse{}; initNew(e); return e }

func (*Ellipse) Kind() Kind { return KindEllipse }

func (e *Ellipse) bind(b *binder) {
	b.Location(&e.Location)
	b.Int("RADIUS", &e.Radius, 100)
	b.Int("SECONDARYRADIUS", &e.SecondaryRadius, 100)
	b.ColorAlways("COLOR", &e.Color, Black)
	b.ColorAlways("AREACOLOR", &e.AreaColor, White)
	b.Bool("ISSOLID", &e.IsSolid, false)
	b.Bool("TRANSPARENT", &e.Transparent, false)
	b.IntAlways("LINEWIDTH", &e.LineWidth, 1)
	b.Bool("ISNOTACCESIBLE", &e.IsNotAccessible, false)
}

// RoundRect is a rectangle with rounded corners.
type RoundRect struct {
	Base
	Location        Point
	Corner          Point
	CornerXRadius   int
	CornerYRadius   int
	Color           Color
	AreaColor       Color
	IsSolid         bool
	Transparent     bool
	LineWidth       int
	IsNotAccessible bool
}

// NewRoundRect returns a RoundRect holding the values of an empty record.
func NewRoundRect() *RoundRect { r := &RoundRect{}; initNew(r); return r }

func (*RoundRect) Kind() Kind { return KindRoundRect }

func (r *RoundRect) bind(b *binder) {
	b.Location(&r.Location)
	b.Corner(&r.Corner)
	b.Int("CORNERXRADIUS", &r.CornerXRadius, 0)
	b.Int("CORNERYRADIUS", &r.CornerYRadius, 0)
	b.ColorAlways("COLOR", &r.Color, Black)
	b.ColorAlways("AREACOLOR", &r.AreaColor, White)
	b.Bool("ISSOLID", &r.IsSolid, false)
	b.Bool("TRANSPARENT", &r.Transparent, false)
	b.IntAlways("LINEWIDTH", &r.LineWidth, 1)
	b.Bool("ISNOTACCESIBLE", &r.IsNotAccessible, false)
}

// Arc is a circular arc; angles are in degrees.
type Arc struct {
	Base
	Location        Point
	Radius          int
	StartAngle      float64
	EndAngle        float64
	Color           Color
	LineWidth       int
	IsNotAccessible bool
}

// NewArc returns an Arc holding the values of an empty record.
func NewArc() *Arc { a := &Arc{}; initNew(a); return a }

func (*Arc) Kind() Kind { return KindArc }

func (a *Arc) bind(b *binder) {
	b.Location(&a.Location)
	b.Int("RADIUS", &a.Radius, 100)
	b.Float("STARTANGLE", &a.StartAngle, 0, 3)
	b.Float("ENDANGLE", &a.EndAngle, 90, 3)
	b.ColorAlways("COLOR", &a.Color, Black)
	b.IntAlways("LINEWIDTH", &a.LineWidth, 1)
	b.Bool("ISNOTACCESIBLE", &a.IsNotAccessible, false)
}

// Line is a single graphic segment from Location to Corner.
type Line struct {
	Base
	Location        Point
	Corner          Point
	Color           Color
	LineWidth       int
	LineStyle       int
	IsNotAccessible bool
}

// NewLine returns a Line holding the values of an empty record.
func NewLine() *Line { l := &Line{}; initNew(l); return l }

func (*Line) Kind() Kind { return KindLine }

func (l *Line) bind(b *binder) {
	b.Location(&l.Location)
	b.Corner(&l.Corner)
	b.ColorAlways("COLOR", &l.Color, Black)
	b.IntAlways("LINEWIDTH", &l.LineWidth, 1)
	b.Int("LINESTYLE", &l.LineStyle, 0)
	b.Bool("ISNOTACCESIBLE", &l.IsNotAccessible, false)
}

// Rectangle spans Location to Corner.
type Rectangle struct {
	Base
	Location        Point
	Corner          Point
	Color           Color
	AreaColor       Color
	IsSolid         bool
	Transparent     bool
	LineWidth       int
	IsNotAccessible bool
}

// NewRectangle returns a Rectangle holding the values of an empty record.
func NewRectangle() *Rectangle { r := &Rectangle{}; initNew(r); return r }

func (*Rectangle) Kind() Kind { return KindRectangle }

func (r *Rectangle) bind(b *binder) {
	b.Location(&r.Location)
	b.Corner(&r.Corner)
	b.ColorAlways("COLOR", &r.Color, Black)
	b.ColorAlways("AREACOLOR", &r.AreaColor, White)
	b.Bool("ISSOLID", &r.IsSolid, false)
	b.Bool("TRANSPARENT", &r.Transparent, false)
	b.IntAlways("LINEWIDTH", &r.LineWidth, 1)
	b.Bool("ISNOTACCESIBLE", &r.IsNotAccessible, false)
}

// SheetSymbol is a hierarchical sheet reference. Its entries, name and
// file name are children.
type SheetSymbol struct {
	Base
	children
	Location  Point
	XSize     int
	YSize     int
	Color     Color
	AreaColor Color
	IsSolid   bool
	LineWidth int
}

// NewSheetSymbol returns a SheetSymbol holding the values of an empty record.
func NewSheetSymbol() *SheetSymbol { s := &SheetSymbol{}; initNew(s); return s }

func (*SheetSymbol) Kind() Kind { return KindSheetSymbol }

func (s *SheetSymbol) bind(b *binder) {
	b.Location(&s.Location)
	b.Int("XSIZE", &s.XSize, 0)
	b.Int("YSIZE", &s.YSize, 0)
	b.ColorAlways("COLOR", &s.Color, Black)
	b.ColorAlways("AREACOLOR", &s.AreaColor, White)
	b.Bool("ISSOLID", &s.IsSolid, false)
	b.IntAlways("LINEWIDTH", &s.LineWidth, 1)
}

// PowerPort is a power or ground symbol; its Text names the net.
type PowerPort struct {
	Base
	Location    Point
	Text        string
	Style       PowerPortStyle
	Orientation Orientation
	Color       Color
	FontID      int
	ShowNetName bool
}

// NewPowerPort returns a GND power-ground port pointing down.
func NewPowerPort() *PowerPort {
	p := &PowerPort{}
	initNew(p)
	p.Style = StylePowerGround
	p.Orientation = Down
	p.ShowNetName = true
	return p
}

func (*PowerPort) Kind() Kind { return KindPowerPort }

func normPowerStyle(v int) int {
	if v < 0 || v > int(StyleGostBar) {
		return int(StylePowerGround)
	}
	return v
}

func (p *PowerPort) bind(b *binder) {
	b.Location(&p.Location)
	b.StrAlways("TEXT", &p.Text, "GND")
	s := int(p.Style)
	b.Enum("STYLE", &s, int(StyleArrow), normPowerStyle)
	p.Style = PowerPortStyle(s)
	b.Orientation("ORIENTATION", &p.Orientation, Down)
	b.ColorAlways("COLOR", &p.Color, Black)
	b.Int("FONTID", &p.FontID, 1)
	b.Bool("SHOWNETNAME", &p.ShowNetName, false)
}

// Port is a sheet-level connection to a parent sheet entry.
type Port struct {
	Base
	Name        string
	Location    Point
	Width       int
	Height      int
	Style       int
	IOType      int
	Alignment   int
	Color       Color
	AreaColor   Color
	TextColor   Color
	FontID      int
	HarnessType string
}

// NewPort returns a Port holding the values of an empty record.
func NewPort() *Port { p := &Port{}; initNew(p); return p }

func (*Port) Kind() Kind { return KindPort }

func (p *Port) bind(b *binder) {
	b.StrAlways("NAME", &p.Name, "")
	b.Location(&p.Location)
	b.Int("WIDTH", &p.Width, 0)
	b.Int("HEIGHT", &p.Height, 0)
	b.Int("STYLE", &p.Style, 0)
	b.Int("IOTYPE", &p.IOType, 0)
	b.Int("ALIGNMENT", &p.Alignment, 0)
	b.ColorAlways("COLOR", &p.Color, Black)
	b.ColorAlways("AREACOLOR", &p.AreaColor, Black)
	b.Color("TEXTCOLOR", &p.TextColor, Black)
	b.Int("FONTID", &p.FontID, 0)
	b.Str("HARNESSTYPE", &p.HarnessType, "")
}

// NoERC suppresses electrical rule checks at a point.
type NoERC struct {
	Base
	Location    Point
	Orientation Orientation
	Symbol      int
	IsActive    bool
	Color       Color
}

// NewNoERC returns a NoERC holding the values of an empty record.
func NewNoERC() *NoERC {
	n := &NoERC{}
	initNew(n)
	n.IsActive = true
	return n
}

func (*NoERC) Kind() Kind { return KindNoERC }

func (n *NoERC) bind(b *binder) {
	b.Location(&n.Location)
	b.Orientation("ORIENTATION", &n.Orientation, Right)
	b.Int("SYMBOL", &n.Symbol, 0)
	b.Bool("ISACTIVE", &n.IsActive, false)
	b.ColorAlways("COLOR", &n.Color, Black)
}

// NetLabel names the net of the wire it sits on.
type NetLabel struct {
	Base
	Location      Point
	Text          string
	Orientation   Orientation
	Justification int
	Color         Color
	FontID        int
	IsMirrored    bool
}

// NewNetLabel returns a NetLabel holding the values of an empty record.
func NewNetLabel() *NetLabel { n := &NetLabel{}; initNew(n); return n }

func (*NetLabel) Kind() Kind { return KindNetLabel }

func (n *NetLabel) bind(b *binder) {
	b.Location(&n.Location)
	b.StrAlways("TEXT", &n.Text, "")
	b.Orientation("ORIENTATION", &n.Orientation, Right)
	b.Int("JUSTIFICATION", &n.Justification, 0)
	b.ColorAlways("COLOR", &n.Color, Black)
	b.Int("FONTID", &n.FontID, 1)
	b.Bool("ISMIRRORED", &n.IsMirrored, false)
}

// Bus is a multi-segment bus line.
type Bus struct {
	Base
	Points    []Point
	Color     Color
	LineWidth int
}

// NewBus returns a Bus holding the values of an empty record.
func NewBus() *Bus { bus := &Bus{}; initNew(bus); return bus }

func (*Bus) Kind() Kind { return KindBus }

func (bus *Bus) bind(b *binder) {
	b.Points(&bus.Points)
	b.ColorAlways("COLOR", &bus.Color, Navy)
	b.IntAlways("LINEWIDTH", &bus.LineWidth, 3)
}

// Wire is an electrical connection through a list of vertices.
type Wire struct {
	Base
	Points    []Point
	Color     Color
	LineWidth int
}

// NewWire returns a Wire holding the values of an empty record.
func NewWire() *Wire { w := &Wire{}; initNew(w); return w }

func (*Wire) Kind() Kind { return KindWire }

func (w *Wire) bind(b *binder) {
	b.Points(&w.Points)
	b.ColorAlways("COLOR", &w.Color, Black)
	b.IntAlways("LINEWIDTH", &w.LineWidth, 1)
}

// TextFrame is a box of wrapped text.
type TextFrame struct {
	Base
	Location    Point
	Corner      Point
	Text        string
	Orientation Orientation
	Alignment   int
	TextMargin  int
	Color       Color
	AreaColor   Color
	FontID      int
	IsSolid     bool
	ShowBorder  bool
	WordWrap    bool
	ClipToRect  bool
}

// NewTextFrame returns a TextFrame holding the values of an empty record.
func NewTextFrame() *TextFrame { t := &TextFrame{}; initNew(t); return t }

func (*TextFrame) Kind() Kind { return KindTextFrame }

func (t *TextFrame) bind(b *binder) {
	b.Location(&t.Location)
	b.Corner(&t.Corner)
	b.StrAlways("TEXT", &t.Text, "")
	b.Orientation("ORIENTATION", &t.Orientation, Right)
	b.Int("ALIGNMENT", &t.Alignment, 0)
	b.Int("TEXTMARGIN", &t.TextMargin, 0)
	b.ColorAlways("COLOR", &t.Color, Black)
	b.ColorAlways("AREACOLOR", &t.AreaColor, White)
	b.Int("FONTID", &t.FontID, 1)
	b.Bool("ISSOLID", &t.IsSolid, false)
	b.Bool("SHOWBORDER", &t.ShowBorder, false)
	b.Bool("WORDWRAP", &t.WordWrap, false)
	b.Bool("CLIPTORECT", &t.ClipToRect, false)
}

// Junction marks a connection between crossing wires.
type Junction struct {
	Base
	Location Point
	Color    Color
}

// NewJunction returns a Junction holding the values of an empty record.
func NewJunction() *Junction { j := &Junction{}; initNew(j); return j }

func (*Junction) Kind() Kind { return KindJunction }

func (j *Junction) bind(b *binder) {
	b.Location(&j.Location)
	b.ColorAlways("COLOR", &j.Color, Black)
}

// Designator is the reference designator text of a component.
type Designator struct {
	Base
	Location      Point
	Name          string
	Text          string
	Orientation   Orientation
	Color         Color
	FontID        int
	IsHidden      bool
	IsMirrored    bool
	ReadOnlyState int
}

// NewDesignator returns a Designator holding the values of an empty record.
func NewDesignator() *Designator { d := &Designator{}; initNew(d); return d }

func (*Designator) Kind() Kind { return KindDesignator }

func (d *Designator) bind(b *binder) {
	b.Location(&d.Location)
	b.StrAlways("NAME", &d.Name, "Designator")
	b.StrAlways("TEXT", &d.Text, "")
	b.Orientation("ORIENTATION", &d.Orientation, Right)
	b.ColorAlways("COLOR", &d.Color, Black)
	b.Int("FONTID", &d.FontID, 0)
	b.Bool("ISHIDDEN", &d.IsHidden, false)
	b.Bool("ISMIRRORED", &d.IsMirrored, false)
	b.Int("READONLYSTATE", &d.ReadOnlyState, 0)
}

// BusEntry is the diagonal segment joining a wire to a bus.
type BusEntry struct {
	Base
	Location  Point
	Corner    Point
	Color     Color
	LineWidth int
}

// NewBusEntry returns a BusEntry holding the values of an empty record.
func NewBusEntry() *BusEntry { e := &BusEntry{}; initNew(e); return e }

func (*BusEntry) Kind() Kind { return KindBusEntry }

func (e *BusEntry) bind(b *binder) {
	b.Location(&e.Location)
	b.Corner(&e.Corner)
	b.ColorAlways("COLOR", &e.Color, Black)
	b.IntAlways("LINEWIDTH", &e.LineWidth, 1)
}

// Parameter is a named value, usually owned by a component.
type Parameter struct {
	Base
	Location        Point
	Name            string
	Text            string
	Orientation     Orientation
	Color           Color
	FontID          int
	IsHidden        bool
	IsMirrored      bool
	IsNotAccessible bool
	ReadOnlyState   int
}

// NewParameter returns a Parameter holding the values of an empty record.
func NewParameter() *Parameter { p := &Parameter{}; initNew(p); return p }

func (*Parameter) Kind() Kind { return KindParameter }

func (p *Parameter) bind(b *binder) {
	b.Location(&p.Location)
	b.StrAlways("NAME", &p.Name, "")
	b.StrAlways("TEXT", &p.Text, "")
	b.Orientation("ORIENTATION", &p.Orientation, Right)
	b.ColorAlways("COLOR", &p.Color, Black)
	b.Int("FONTID", &p.FontID, 1)
	b.Bool("ISHIDDEN", &p.IsHidden, false)
	b.Bool("ISMIRRORED", &p.IsMirrored, false)
	b.Bool("ISNOTACCESIBLE", &p.IsNotAccessible, false)
	b.Int("READONLYSTATE", &p.ReadOnlyState, 0)
}

// ImplementationList groups the models of a component.
type ImplementationList struct {
	Base
	children
}

// NewImplementationList returns an ImplementationList holding the values of an empty record.
func NewImplementationList() *ImplementationList {
	l := &ImplementationList{}
	initNew(l)
	return l
}

func (*ImplementationList) Kind() Kind { return KindImplementationList }

func (*ImplementationList) bind(*binder) {}

// Implementation is one model (footprint, simulation, ...) of a component.
type Implementation struct {
	Base
	Description         string
	ModelName           string
	ModelType           string
	DatafileCount       int
	ModelDatafileEntity string
	ModelDatafileKind   string
	IsCurrent           bool
	DatabaseModel       bool
}

// NewImplementation returns an Implementation holding the values of an empty record.
func NewImplementation() *Implementation { i := &Implementation{}; initNew(i); return i }

func (*Implementation) Kind() Kind { return KindImplementation }

func (i *Implementation) bind(b *binder) {
	b.Str("DESCRIPTION", &i.Description, "")
	b.Str("MODELNAME", &i.ModelName, "")
	b.Str("MODELTYPE", &i.ModelType, "")
	b.Int("DATAFILECOUNT", &i.DatafileCount, 0)
	b.Str("MODELDATAFILEENTITY0", &i.ModelDatafileEntity, "")
	b.Str("MODELDATAFILEKIND0", &i.ModelDatafileKind, "")
	b.Bool("ISCURRENT", &i.IsCurrent, false)
	b.Bool("DATABASEMODEL", &i.DatabaseModel, false)
}

// SheetEntryConnection is the body of a harness connector. Its ports,
// label and border line are children.
type SheetEntryConnection struct {
	Base
	children
	Location                  Point
	XSize                     int
	YSize                     int
	Color                     Color
	AreaColor                 Color
	LineWidth                 int
	PrimaryConnectionPosition int
}

// NewSheetEntryConnection returns a SheetEntryConnection holding the values of an empty record.
func NewSheetEntryConnection() *SheetEntryConnection {
	s := &SheetEntryConnection{}
	initNew(s)
	return s
}

func (*SheetEntryConnection) Kind() Kind { return KindSheetEntryConnection }

func (s *SheetEntryConnection) bind(b *binder) {
	b.Location(&s.Location)
	b.Int("XSIZE", &s.XSize, 0)
	b.Int("YSIZE", &s.YSize, 0)
	b.ColorAlways("COLOR", &s.Color, Black)
	b.ColorAlways("AREACOLOR", &s.AreaColor, Black)
	b.IntAlways("LINEWIDTH", &s.LineWidth, 1)
	b.Int("PRIMARYCONNECTIONPOSITION", &s.PrimaryConnectionPosition, 0)
}

// SheetEntryPort is a named entry on a harness connector.
type SheetEntryPort struct {
	Base
	Name            string
	Side            int
	DistanceFromTop int
	Color           Color
	AreaColor       Color
	TextColor       Color
	FontID          int
	TextStyle       string
}

// NewSheetEntryPort returns a SheetEntryPort holding the values of an empty record.
func NewSheetEntryPort() *SheetEntryPort { p := &SheetEntryPort{}; initNew(p); return p }

func (*SheetEntryPort) Kind() Kind { return KindSheetEntryPort }

func (p *SheetEntryPort) bind(b *binder) {
	b.StrAlways("NAME", &p.Name, "")
	b.Int("SIDE", &p.Side, 0)
	b.Int("DISTANCEFROMTOP", &p.DistanceFromTop, 0)
	b.ColorAlways("COLOR", &p.Color, Black)
	b.ColorAlways("AREACOLOR", &p.AreaColor, Black)
	b.Color("TEXTCOLOR", &p.TextColor, Black)
	b.Int("TEXTFONTID", &p.FontID, 0)
	b.Str("TEXTSTYLE", &p.TextStyle, "")
}

// SheetEntryLabel is the type label of a harness connector.
type SheetEntryLabel struct {
	Base
	Location        Point
	Text            string
	Justification   int
	Color           Color
	FontID          int
	IsMirrored      bool
	NotAutoPosition bool
}

// NewSheetEntryLabel returns a SheetEntryLabel holding the values of an empty record.
func NewSheetEntryLabel() *SheetEntryLabel { l := &SheetEntryLabel{}; initNew(l); return l }

func (*SheetEntryLabel) Kind() Kind { return KindSheetEntryLabel }

func (l *SheetEntryLabel) bind(b *binder) {
	b.Location(&l.Location)
	b.StrAlways("TEXT", &l.Text, "")
	b.Int("JUSTIFICATION", &l.Justification, 0)
	b.ColorAlways("COLOR", &l.Color, Black)
	b.Int("FONTID", &l.FontID, 0)
	b.Bool("ISMIRRORED", &l.IsMirrored, false)
	b.Bool("NOTAUTOPOSITION", &l.NotAutoPosition, false)
}

// SheetEntryLine is the harness line leaving a connector.
type SheetEntryLine struct {
	Base
	Points    []Point
	Color     Color
	LineWidth int
}

// NewSheetEntryLine returns a SheetEntryLine holding the values of an empty record.
func NewSheetEntryLine() *SheetEntryLine { l := &SheetEntryLine{}; initNew(l); return l }

func (*SheetEntryLine) Kind() Kind { return KindSheetEntryLine }

func (l *SheetEntryLine) bind(b *binder) {
	b.Points(&l.Points)
	b.ColorAlways("COLOR", &l.Color, Black)
	b.IntAlways("LINEWIDTH", &l.LineWidth, 1)
}

// Generic is a property record of a kind without a dedicated type. All of
// its content lives in the property bag. It can own children, since some
// untyped kinds (sheet entries, implementation parameters) do.
type Generic struct {
	Base
	children
	kind Kind
}

// NewGeneric returns an empty record of kind k.
func NewGeneric(k Kind) *Generic { g := &Generic{kind: k}; initNew(g); return g }

func (g *Generic) Kind() Kind { return g.kind }

func (*Generic) bind(*binder) {}

// Opaque is a record whose type byte is not 0. Its payload round-trips
// verbatim.
type Opaque struct {
	Base
	Type    byte
	Payload []byte
}

func (*Opaque) Kind() Kind { return KindBinary }

func (*Opaque) bind(*binder) {}
