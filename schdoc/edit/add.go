package edit

import "github.com/joshuapare/schdockit/schdoc"

// Offsets of the designator and value parameters from the component origin.
const (
	designatorOffset = 50
	valueOffset      = -50
)

// AddComponent places a component and an owned "Designator" parameter 50
// units above it.
func (s *Session) AddComponent(libReference, designator string, at schdoc.Point, o schdoc.Orientation) *schdoc.Component {
	c := schdoc.NewComponent()
	c.LibReference = libReference
	c.Location = at
	c.Orientation = o
	s.add(c, nil)
	s.AddParameter(c, "Designator", designator, schdoc.Point{X: at.X, Y: at.Y + designatorOffset})
	return c
}

// AddParameter adds a named parameter. owner may be nil for a sheet-level
// parameter.
func (s *Session) AddParameter(owner schdoc.Object, name, text string, at schdoc.Point) *schdoc.Parameter {
	p := schdoc.NewParameter()
	p.Name = name
	p.Text = text
	p.Location = at
	s.add(p, owner)
	return p
}

// AddResistor places a "RES" component with Designator and Value
// parameters. Empty value and designator default to "10k" and "R?".
func (s *Session) AddResistor(at schdoc.Point, value, designator string, o schdoc.Orientation) *schdoc.Component {
	return s.addPassive("RES", at, value, "10k", designator, "R?", o)
}

// AddCapacitor places a "CAP" component with Designator and Value
// parameters. Empty value and designator default to "10uF" and "C?".
func (s *Session) AddCapacitor(at schdoc.Point, value, designator string, o schdoc.Orientation) *schdoc.Component {
	return s.addPassive("CAP", at, value, "10uF", designator, "C?", o)
}

func (s *Session) addPassive(lib string, at schdoc.Point, value, defValue, designator, defDesignator string, o schdoc.Orientation) *schdoc.Component {
	if value == "" {
		value = defValue
	}
	if designator == "" {
		designator = defDesignator
	}
	c := s.AddComponent(lib, designator, at, o)
	s.AddParameter(c, "Value", value, schdoc.Point{X: at.X, Y: at.Y + valueOffset})
	return c
}

// AddWire adds a wire through points.
func (s *Session) AddWire(points ...schdoc.Point) (*schdoc.Wire, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	w := schdoc.NewWire()
	w.Points = append([]schdoc.Point(nil), points...)
	w.Color = schdoc.Black
	w.LineWidth = 1
	s.add(w, nil)
	return w, nil
}

// ConnectPoints joins a and b with a straight wire, optionally placing a
// junction at both ends.
func (s *Session) ConnectPoints(a, b schdoc.Point, junctions bool) *schdoc.Wire {
	w, _ := s.AddWire(a, b)
	if junctions {
		s.AddJunction(a)
		s.AddJunction(b)
	}
	return w
}

// AddJunction adds a connection dot.
func (s *Session) AddJunction(at schdoc.Point) *schdoc.Junction {
	j := schdoc.NewJunction()
	j.Location = at
	s.add(j, nil)
	return j
}

// AddNetLabel adds a net label.
func (s *Session) AddNetLabel(text string, at schdoc.Point, o schdoc.Orientation) *schdoc.NetLabel {
	n := schdoc.NewNetLabel()
	n.Text = text
	n.Location = at
	n.Orientation = o
	s.add(n, nil)
	return n
}

// AddPowerPort adds a power port. An empty text names the GND net.
func (s *Session) AddPowerPort(text string, at schdoc.Point, style schdoc.PowerPortStyle, o schdoc.Orientation) *schdoc.PowerPort {
	p := schdoc.NewPowerPort()
	if text != "" {
		p.Text = text
	}
	p.Location = at
	p.Style = style
	p.Orientation = o
	s.add(p, nil)
	return p
}

// AddLine adds a graphic line.
func (s *Session) AddLine(from, to schdoc.Point) *schdoc.Line {
	l := schdoc.NewLine()
	l.Location = from
	l.Corner = to
	l.LineWidth = 1
	s.add(l, nil)
	return l
}

// AddRectangle adds a rectangle filled with fill when solid is set.
func (s *Session) AddRectangle(from, to schdoc.Point, fill schdoc.Color, solid bool) *schdoc.Rectangle {
	r := schdoc.NewRectangle()
	r.Location = from
	r.Corner = to
	r.AreaColor = fill
	r.IsSolid = solid
	r.LineWidth = 1
	s.add(r, nil)
	return r
}

// AddLabel adds free text in the first sheet font.
func (s *Session) AddLabel(text string, at schdoc.Point, o schdoc.Orientation) *schdoc.Label {
	l := schdoc.NewLabel()
	l.Text = text
	l.Location = at
	l.Orientation = o
	l.FontID = 1
	s.add(l, nil)
	return l
}
