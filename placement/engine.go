// Package placement implements the editing session over a map document: the
// object currently in hand, grid snapping, occupancy, per-object instance
// caps and layer bounds.
//
// Engine methods never return errors. Illegal transitions, occupied cells
// and locked kinds are refused silently and reported only through the
// boolean results.
package placement

import (
	"math"

	"github.com/milk9111/mapeditor/catalog"
	"github.com/milk9111/mapeditor/mapdoc"
)

const (
	DefaultMinLayer = -1
	DefaultMaxLayer = 1
)

// State is the hand slot state.
type State int

const (
	Empty State = iota
	Holding
)

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Holding:
		return "Holding"
	default:
		return "Unknown"
	}
}

// Catalog lists the entries whose instance caps are enforced.
type Catalog interface {
	Entries() []*catalog.Entry
}

// Invalidator is told when composite collision geometry needs rebuilding.
type Invalidator interface {
	MarkDirty()
}

type Option func(*Engine)

// WithLayerBounds sets the closed layer range. Inverted bounds are swapped.
func WithLayerBounds(min, max int) Option {
	return func(e *Engine) {
		if min > max {
			min, max = max, min
		}
		e.minLayer = min
		e.maxLayer = max
	}
}

// WithInvalidator registers the geometry collaborator.
func WithInvalidator(inv Invalidator) Option {
	return func(e *Engine) {
		e.geometry = inv
	}
}

type Engine struct {
	doc      *mapdoc.Document
	cat      Catalog
	held     *catalog.Entry
	layer    int
	minLayer int
	maxLayer int
	locked   map[catalog.Key]bool
	geometry Invalidator
}

// New creates an engine editing doc. A nil doc starts an empty, unnamed map.
func New(doc *mapdoc.Document, cat Catalog, opts ...Option) *Engine {
	if doc == nil {
		doc = mapdoc.New("")
	}
	e := &Engine{
		doc:      doc,
		cat:      cat,
		minLayer: DefaultMinLayer,
		maxLayer: DefaultMaxLayer,
		locked:   make(map[catalog.Key]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.layer = clamp(0, e.minLayer, e.maxLayer)
	e.clampLayers()
	e.UpdateLocks()
	return e
}

func (e *Engine) Document() *mapdoc.Document {
	return e.doc
}

// SetDocument replaces the edited document, drops anything in hand, pulls
// every object's layer into the layer bounds and recomputes locks.
func (e *Engine) SetDocument(doc *mapdoc.Document) {
	if doc == nil {
		doc = mapdoc.New("")
	}
	e.held = nil
	e.doc = doc
	e.clampLayers()
	e.UpdateLocks()
	e.invalidate()
}

func (e *Engine) State() State {
	if e.held != nil {
		return Holding
	}
	return Empty
}

// Held returns the entry in hand.
func (e *Engine) Held() (*catalog.Entry, bool) {
	return e.held, e.held != nil
}

// Begin puts entry in hand. It does nothing while already holding and
// refuses locked kinds.
func (e *Engine) Begin(entry *catalog.Entry) bool {
	if entry == nil || e.held != nil {
		return false
	}
	if e.IsLocked(entry.ID, entry.Pack) {
		return false
	}
	e.held = entry
	return true
}

// Cancel empties the hand without touching the document.
func (e *Engine) Cancel() {
	e.held = nil
}

// Confirm places the held entry at pos on layer (clamped to the layer
// bounds). When the placement fills the entry's instance cap the hand is
// emptied.
func (e *Engine) Confirm(pos mapdoc.Vec3, layer int) (mapdoc.PlacedObject, bool) {
	if e.held == nil {
		return mapdoc.PlacedObject{}, false
	}
	if e.IsOccupied(pos) || e.IsLocked(e.held.ID, e.held.Pack) {
		return mapdoc.PlacedObject{}, false
	}

	placed := mapdoc.PlacedObject{
		ObjectID: e.held.ID,
		Pack:     e.held.Pack,
		Position: pos,
		Layer:    clamp(layer, e.minLayer, e.maxLayer),
	}
	e.doc.Add(placed)
	e.UpdateLocks()
	if e.held.Collider != catalog.ColliderNone {
		e.invalidate()
	}
	if !e.CanPlace(e.held.ID, e.held.Pack) {
		e.Cancel()
	}
	return placed, true
}

// ConfirmAt snaps a world point and places on the current layer.
func (e *Engine) ConfirmAt(x, y float64) (mapdoc.PlacedObject, bool) {
	return e.Confirm(Snap(x, y), e.layer)
}

// Erase removes whatever sits at pos.
func (e *Engine) Erase(pos mapdoc.Vec3) (mapdoc.PlacedObject, bool) {
	removed, ok := e.doc.RemoveAt(pos)
	if !ok {
		return mapdoc.PlacedObject{}, false
	}
	e.UpdateLocks()
	e.invalidate()
	return removed, true
}

// IsOccupied reports whether any object sits at pos, on any layer.
func (e *Engine) IsOccupied(pos mapdoc.Vec3) bool {
	_, ok := e.doc.FindAt(pos)
	return ok
}

func (e *Engine) FindAt(pos mapdoc.Vec3) (mapdoc.PlacedObject, bool) {
	return e.doc.FindAt(pos)
}

// CanPlace reports whether another instance of (id, pack) may be placed.
func (e *Engine) CanPlace(id int, pack string) bool {
	return !e.IsLocked(id, pack)
}

func (e *Engine) IsLocked(id int, pack string) bool {
	return e.locked[catalog.Key{ID: id, Pack: pack}]
}

// Locked returns the locked keys in catalog order.
func (e *Engine) Locked() []catalog.Key {
	if e.cat == nil {
		return nil
	}
	var out []catalog.Key
	for _, entry := range e.cat.Entries() {
		if e.locked[entry.Key()] {
			out = append(out, entry.Key())
		}
	}
	return out
}

// UpdateLocks recounts every capped entry against the document. The engine
// calls it after each placement, erase and document swap.
func (e *Engine) UpdateLocks() {
	locked := make(map[catalog.Key]bool)
	if e.cat != nil {
		for _, entry := range e.cat.Entries() {
			if entry.MaxPerScene <= 0 {
				continue
			}
			key := entry.Key()
			if e.doc.Count(key) >= entry.MaxPerScene {
				locked[key] = true
			}
		}
	}
	e.locked = locked
}

func (e *Engine) Layer() int {
	return e.layer
}

func (e *Engine) LayerBounds() (int, int) {
	return e.minLayer, e.maxLayer
}

// IncreaseLayer moves up one layer unless already at the top.
func (e *Engine) IncreaseLayer() bool {
	if e.layer+1 > e.maxLayer {
		return false
	}
	e.layer++
	return true
}

// DecreaseLayer moves down one layer unless already at the bottom.
func (e *Engine) DecreaseLayer() bool {
	if e.layer-1 < e.minLayer {
		return false
	}
	e.layer--
	return true
}

func (e *Engine) SetLayer(layer int) {
	e.layer = clamp(layer, e.minLayer, e.maxLayer)
}

func (e *Engine) clampLayers() {
	for i := range e.doc.Objects {
		o := &e.doc.Objects[i]
		o.Layer = clamp(o.Layer, e.minLayer, e.maxLayer)
	}
}

func (e *Engine) invalidate() {
	if e.geometry != nil {
		e.geometry.MarkDirty()
	}
}

// Snap maps a world point to the grid by rounding each axis half away from
// zero.
func Snap(x, y float64) mapdoc.Vec3 {
	return mapdoc.Vec3{X: int(math.Round(x)), Y: int(math.Round(y))}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
