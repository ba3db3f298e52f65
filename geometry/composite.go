// Package geometry keeps the static collision geometry of a map in a
// Chipmunk space. Placements only mark it dirty; the rebuild happens once in
// Flush, which the front-end calls before drawing the next frame.
package geometry

import (
	"image"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mapeditor/catalog"
	"github.com/milk9111/mapeditor/mapdoc"
	"github.com/rs/zerolog"
)

const collisionTypeSolid cp.CollisionType = 1

// Shape describes one collider built from a placed object, in world units
// (one unit per grid cell).
type Shape struct {
	Kind     catalog.ColliderKind
	Position mapdoc.Vec3
	Layer    int
	BB       cp.BB
	shape    *cp.Shape
}

// Composite owns the space and the shapes generated from the last flush.
type Composite struct {
	space    *cp.Space
	shapes   []Shape
	dirty    bool
	rebuilds int
	log      zerolog.Logger
}

func New(logger zerolog.Logger) *Composite {
	return &Composite{
		space: cp.NewSpace(),
		log:   logger.With().Str("component", "geometry").Logger(),
	}
}

// MarkDirty schedules a rebuild on the next Flush.
func (c *Composite) MarkDirty() {
	c.dirty = true
}

func (c *Composite) Dirty() bool {
	return c.dirty
}

// Rebuilds reports how many times Flush actually regenerated geometry.
func (c *Composite) Rebuilds() int {
	return c.rebuilds
}

func (c *Composite) Space() *cp.Space {
	return c.space
}

func (c *Composite) Shapes() []Shape {
	return append([]Shape(nil), c.shapes...)
}

// Flush regenerates every static shape from instances if the geometry is
// dirty. It reports whether a rebuild happened.
func (c *Composite) Flush(instances []mapdoc.Instance) bool {
	if !c.dirty {
		return false
	}
	c.dirty = false
	c.rebuild(instances)
	c.rebuilds++
	c.log.Debug().Int("shapes", len(c.shapes)).Int("rebuilds", c.rebuilds).Msg("regenerated collision geometry")
	return true
}

func (c *Composite) rebuild(instances []mapdoc.Instance) {
	space := cp.NewSpace()
	static := space.StaticBody
	shapes := make([]Shape, 0, len(instances))

	for _, inst := range instances {
		s, ok := buildShape(static, inst)
		if !ok {
			continue
		}
		s.shape.SetFriction(0.8)
		s.shape.SetCollisionType(collisionTypeSolid)
		space.AddShape(s.shape)
		shapes = append(shapes, s)
	}

	c.space = space
	c.shapes = shapes
}

// spriteExtent returns the sprite size in world units.
func spriteExtent(e *catalog.Entry) (float64, float64) {
	if e.Image == nil || e.SpriteSize <= 0 {
		return 1, 1
	}
	b := e.Image.Bounds()
	return float64(b.Dx()) / float64(e.SpriteSize), float64(b.Dy()) / float64(e.SpriteSize)
}

func buildShape(body *cp.Body, inst mapdoc.Instance) (Shape, bool) {
	e := inst.Entry
	if e == nil {
		return Shape{}, false
	}
	w, h := spriteExtent(e)
	cx := float64(inst.Position.X)
	cy := float64(inst.Position.Y)
	bb := cp.BB{L: cx - w/2, B: cy - h/2, R: cx + w/2, T: cy + h/2}

	out := Shape{Kind: e.Collider, Position: inst.Position, Layer: inst.Layer, BB: bb}
	switch e.Collider {
	case catalog.ColliderBox:
		out.shape = cp.NewBox2(body, bb, 0)
	case catalog.ColliderCircle:
		r := w
		if h > r {
			r = h
		}
		out.shape = cp.NewCircle(body, r/2, cp.Vector{X: cx, Y: cy})
	case catalog.ColliderPolygon:
		pts := spriteOutline(e.Image, e.SpriteSize, cx, cy)
		if len(pts) < 3 {
			out.Kind = catalog.ColliderBox
			out.shape = cp.NewBox2(body, bb, 0)
			break
		}
		out.shape = cp.NewPolyShape(body, len(pts), pts, cp.NewTransformIdentity(), 0)
		out.BB = out.shape.CacheBB()
	default:
		return Shape{}, false
	}
	return out, true
}

// spriteOutline returns the corners of every opaque pixel run of img, one
// run per row, in world units centred on (cx, cy) with y up. cp builds the
// convex hull from these points.
func spriteOutline(img *image.NRGBA, ppu int, cx, cy float64) []cp.Vector {
	if img == nil || ppu <= 0 {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	scale := float64(ppu)
	world := func(x, y int) cp.Vector {
		return cp.Vector{
			X: cx + (float64(x)-float64(w)/2)/scale,
			Y: cy + (float64(y)-float64(h)/2)/scale,
		}
	}

	var pts []cp.Vector
	for y := 0; y < h; y++ {
		minX, maxX := -1, -1
		for x := 0; x < w; x++ {
			if img.NRGBAAt(b.Min.X+x, b.Min.Y+y).A == 0 {
				continue
			}
			if minX < 0 {
				minX = x
			}
			maxX = x
		}
		if minX < 0 {
			continue
		}
		// image rows grow downward; world y grows upward
		top, bottom := h-y, h-y-1
		pts = append(pts,
			world(minX, top), world(minX, bottom),
			world(maxX+1, top), world(maxX+1, bottom),
		)
	}
	return pts
}
