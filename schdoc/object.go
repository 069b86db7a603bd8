package schdoc

import (
	"slices"

	"github.com/joshuapare/schdockit/schdoc/props"
)

// Object is one schematic entity. The set of implementations is closed:
// every RECORD value maps to one of the types in this package, *Generic or
// *Opaque.
type Object interface {
	Kind() Kind
	Common() *Base
	bind(b *binder)
}

// Container is an Object that owns children through their OWNERINDEX.
//
// AppendChild and RemoveChild only maintain the children list. The child's
// OwnerIndex is the caller's to set.
type Container interface {
	Object
	Children() []Object
	AppendChild(o Object)
	RemoveChild(o Object) bool
}

// Base carries the fields every entity has plus its property bag.
//
// The bag holds every property of the record, typed or not. Typed fields
// are projected out of it when decoding and back into it when encoding; a
// typed field that still holds its decoded value leaves the bag's text for
// that key alone, so SetProp on a typed key takes effect unless the typed
// field was changed as well.
type Base struct {
	// Index is the position of the record in the document. Encoding
	// reassigns it.
	Index int
	// OwnerIndex is the Index of the owning entity, or -1.
	OwnerIndex int
	// OwnerPartID selects the part of a multi-part component. -1 means all.
	OwnerPartID int
	UniqueID    string
	// Stream is the record stream the entity is stored in.
	Stream Stream

	orig *props.Table
	bag  *props.Table
	raw  []byte
}

// Common returns b.
func (b *Base) Common() *Base { return b }

func (b *Base) current() *props.Table {
	switch {
	case b.bag != nil:
		return b.bag
	case b.orig != nil:
		return b.orig
	}
	return props.New()
}

func (b *Base) writable() *props.Table {
	if b.bag == nil {
		if b.orig != nil {
			b.bag = b.orig.Clone()
		} else {
			b.bag = props.New()
		}
	}
	return b.bag
}

// Prop returns a raw property of the entity.
func (b *Base) Prop(key string) (string, bool) {
	return b.current().Get(key)
}

// SetProp sets a raw property.
func (b *Base) SetProp(key, value string) {
	b.writable().Set(key, value)
}

// DeleteProp removes a raw property.
func (b *Base) DeleteProp(key string) bool {
	if !b.current().Has(key) {
		return false
	}
	return b.writable().Delete(key)
}

// Props returns a copy of the entity's property bag as it stands, without
// typed field changes folded in.
func (b *Base) Props() *props.Table {
	return b.current().Clone()
}

// Original returns a copy of the table the entity was decoded from, or nil
// for entities created in memory.
func (b *Base) Original() *props.Table {
	if b.orig == nil {
		return nil
	}
	return b.orig.Clone()
}

// Raw returns the payload the entity was decoded from.
func (b *Base) Raw() []byte { return b.raw }

// IsNew reports whether the entity was created in memory.
func (b *Base) IsNew() bool { return b.orig == nil && b.raw == nil }

// children implements the list half of Container.
type children struct {
	list []Object
}

// Children returns the owned entities in link order.
func (c *children) Children() []Object { return slices.Clone(c.list) }

// AppendChild adds o to the children list.
func (c *children) AppendChild(o Object) { c.list = append(c.list, o) }

// RemoveChild drops o from the children list.
func (c *children) RemoveChild(o Object) bool {
	i := slices.Index(c.list, o)
	if i < 0 {
		return false
	}
	c.list = slices.Delete(c.list, i, i+1)
	return true
}

// project binds the common fields around the entity's own fields. The
// order fixes the key order of records created in memory.
func project(o Object, b *binder) {
	base := o.Common()
	k := o.Kind()
	owned := k != KindHeader && k != KindSheet && k != KindBinary
	if owned {
		b.Int("OWNERINDEX", &base.OwnerIndex, -1)
	} else {
		base.OwnerIndex, base.OwnerPartID = -1, -1
	}
	o.bind(b)
	if owned {
		b.IntAlways("OWNERPARTID", &base.OwnerPartID, -1)
	}
	if k != KindBinary {
		b.Str("UNIQUEID", &base.UniqueID, "")
	}
}

// initNew gives o the field values an empty record decodes to.
func initNew(o Object) {
	project(o, decoder(props.New()))
	o.Common().Index = -1
}
