package schdoc

import "slices"

// Document is a decoded schematic: every record as an entity, in stream
// order, with the header and sheet singletons identified.
//
// Objects are addressed by Index, the position they were decoded at or
// were given when added. Ownership is the OWNERINDEX of a child naming
// the Index of its owner.
type Document struct {
	// Header is the object at position 0, if it is a header record.
	Header *Header
	// Sheet is the first sheet record.
	Sheet *Sheet

	objects []Object
	removed map[int]struct{}
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{removed: make(map[int]struct{})}
}

// Len returns the number of objects.
func (d *Document) Len() int { return len(d.objects) }

// Objects returns all objects in document order.
func (d *Document) Objects() []Object { return slices.Clone(d.objects) }

// Append adds o at the end of the document. A header or sheet becomes the
// document singleton when none is set. Linking o under its owner is left
// to the caller.
func (d *Document) Append(o Object) {
	d.objects = append(d.objects, o)
	switch v := o.(type) {
	case *Header:
		if d.Header == nil {
			d.Header = v
		}
	case *Sheet:
		if d.Sheet == nil {
			d.Sheet = v
		}
	}
	delete(d.removed, o.Common().Index)
}

// Remove drops o from the document and from its owner's children. Objects
// owned by o are not touched; see DanglingOwners.
func (d *Document) Remove(o Object) bool {
	i := slices.Index(d.objects, o)
	if i < 0 {
		return false
	}
	d.objects = slices.Delete(d.objects, i, i+1)
	if c, ok := d.ByIndex(o.Common().OwnerIndex).(Container); ok {
		c.RemoveChild(o)
	}
	if i := o.Common().Index; i >= 0 && d.ByIndex(i) == nil {
		if d.removed == nil {
			d.removed = make(map[int]struct{})
		}
		d.removed[i] = struct{}{}
	}
	if o == Object(d.Header) {
		d.Header = nil
	}
	if o == Object(d.Sheet) {
		d.Sheet = First[*Sheet](d)
	}
	return true
}

// ByIndex returns the first object with the given Index, or nil.
func (d *Document) ByIndex(i int) Object {
	if i < 0 {
		return nil
	}
	for _, o := range d.objects {
		if o.Common().Index == i {
			return o
		}
	}
	return nil
}

func (d *Document) indexMap() map[int]Object {
	m := make(map[int]Object, len(d.objects))
	for _, o := range d.objects {
		i := o.Common().Index
		if _, dup := m[i]; !dup {
			m[i] = o
		}
	}
	return m
}

// Owner returns the object o's OwnerIndex refers to, or nil.
func (d *Document) Owner(o Object) Object {
	return d.ByIndex(o.Common().OwnerIndex)
}

// Children returns the objects linked under o.
func (d *Document) Children(o Object) []Object {
	if c, ok := o.(Container); ok {
		return c.Children()
	}
	return nil
}

// Owned returns every object whose OwnerIndex names o, whether or not o
// can hold children.
func (d *Document) Owned(o Object) []Object {
	idx := o.Common().Index
	var out []Object
	for _, c := range d.objects {
		if c != o && c.Common().OwnerIndex == idx {
			out = append(out, c)
		}
	}
	return out
}

// DanglingOwners returns objects whose owner was removed from the document.
func (d *Document) DanglingOwners() []Object {
	if len(d.removed) == 0 {
		return nil
	}
	var out []Object
	for _, o := range d.objects {
		if _, gone := d.removed[o.Common().OwnerIndex]; gone {
			out = append(out, o)
		}
	}
	return out
}

// MaxIndex returns the largest Index in the document, or -1.
func (d *Document) MaxIndex() int {
	m := -1
	for _, o := range d.objects {
		m = max(m, o.Common().Index)
	}
	return m
}

// FreeIndex returns an index above every object index, every removed index
// and every owner reference, so an object given it adopts no orphans.
func (d *Document) FreeIndex() int {
	m := d.MaxIndex()
	for i := range d.removed {
		m = max(m, i)
	}
	for _, o := range d.objects {
		m = max(m, o.Common().OwnerIndex)
	}
	return m + 1
}

// ObjectsOf returns every object of type T in document order.
func ObjectsOf[T Object](d *Document) []T {
	var out []T
	for _, o := range d.objects {
		if v, ok := o.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// First returns the first object of type T, or the zero T.
func First[T Object](d *Document) T {
	for _, o := range d.objects {
		if v, ok := o.(T); ok {
			return v
		}
	}
	var zero T
	return zero
}

// ObjectsOfKind returns every object of kind k.
func (d *Document) ObjectsOfKind(k Kind) []Object {
	var out []Object
	for _, o := range d.objects {
		if o.Kind() == k {
			out = append(out, o)
		}
	}
	return out
}

// CountByKind tallies objects per kind.
func (d *Document) CountByKind() map[Kind]int {
	m := make(map[Kind]int)
	for _, o := range d.objects {
		m[o.Kind()]++
	}
	return m
}

// Components returns the components in document order.
func (d *Document) Components() []*Component { return ObjectsOf[*Component](d) }

// Wires returns the wires in document order.
func (d *Document) Wires() []*Wire { return ObjectsOf[*Wire](d) }

// NetLabels returns the net labels in document order.
func (d *Document) NetLabels() []*NetLabel { return ObjectsOf[*NetLabel](d) }

// PowerPorts returns the power ports in document order.
func (d *Document) PowerPorts() []*PowerPort { return ObjectsOf[*PowerPort](d) }

// Junctions returns the junctions in document order.
func (d *Document) Junctions() []*Junction { return ObjectsOf[*Junction](d) }

// Parameters returns the parameters in document order.
func (d *Document) Parameters() []*Parameter { return ObjectsOf[*Parameter](d) }
