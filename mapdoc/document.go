// Package mapdoc holds the in-memory map document and its JSON form.
package mapdoc

import (
	"github.com/milk9111/mapeditor/catalog"
)

// Vec3 is an integer grid coordinate. Z is 0 for 2D placement.
type Vec3 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// PlacedObject is one object instance in a map. It refers to its catalog
// entry by (ObjectID, Pack) only.
type PlacedObject struct {
	ObjectID int    `json:"ObjectID"`
	Pack     string `json:"ObjectPack"`
	Layer    int    `json:"LayerInMap"`
	Position Vec3   `json:"position"`
}

func (o PlacedObject) Key() catalog.Key {
	return catalog.Key{ID: o.ObjectID, Pack: o.Pack}
}

// Document is one map: a background name plus placed objects in insertion
// order.
type Document struct {
	Name       string         `json:"MapName"`
	Background string         `json:"Background"`
	Objects    []PlacedObject `json:"MapData"`
}

func New(name string) *Document {
	return &Document{Name: name}
}

func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Objects)
}

// Add appends o. Occupancy rules are enforced by the placement engine.
func (d *Document) Add(o PlacedObject) {
	d.Objects = append(d.Objects, o)
}

// FindAt returns the object at pos. Layers are not considered.
func (d *Document) FindAt(pos Vec3) (PlacedObject, bool) {
	if i := d.indexAt(pos); i >= 0 {
		return d.Objects[i], true
	}
	return PlacedObject{}, false
}

// RemoveAt removes the object at pos, keeping the order of the rest.
func (d *Document) RemoveAt(pos Vec3) (PlacedObject, bool) {
	i := d.indexAt(pos)
	if i < 0 {
		return PlacedObject{}, false
	}
	removed := d.Objects[i]
	d.Objects = append(d.Objects[:i], d.Objects[i+1:]...)
	return removed, true
}

func (d *Document) indexAt(pos Vec3) int {
	if d == nil {
		return -1
	}
	for i := range d.Objects {
		if d.Objects[i].Position == pos {
			return i
		}
	}
	return -1
}

// Count returns how many placed objects refer to key.
func (d *Document) Count(key catalog.Key) int {
	if d == nil {
		return 0
	}
	n := 0
	for _, o := range d.Objects {
		if o.ObjectID == key.ID && o.Pack == key.Pack {
			n++
		}
	}
	return n
}

// Clear removes every placed object. Name and background are kept.
func (d *Document) Clear() {
	d.Objects = nil
}

func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Objects = append([]PlacedObject(nil), d.Objects...)
	return &out
}

// Instance is a placed object joined with its catalog entry, as consumed by
// render and collision code.
type Instance struct {
	Entry    *catalog.Entry
	Position Vec3
	Layer    int
}

func (i Instance) Collider() catalog.ColliderKind {
	if i.Entry == nil {
		return catalog.ColliderNone
	}
	return i.Entry.Collider
}

// Resolve joins every placed object with its entry. Unresolved objects are
// skipped.
func (d *Document) Resolve(r Resolver) []Instance {
	if d == nil || r == nil {
		return nil
	}
	out := make([]Instance, 0, len(d.Objects))
	for _, o := range d.Objects {
		e, ok := r.FindObject(o.ObjectID, o.Pack)
		if !ok {
			continue
		}
		out = append(out, Instance{Entry: e, Position: o.Position, Layer: o.Layer})
	}
	return out
}
