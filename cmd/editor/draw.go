package main

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/mapeditor/catalog"
	"github.com/milk9111/mapeditor/editor"
	"github.com/milk9111/mapeditor/placement"
)

var (
	gridColor     = color.RGBA{R: 255, G: 255, B: 255, A: 24}
	blockedColor  = color.RGBA{R: 255, G: 70, B: 70, A: 255}
	colliderColor = color.RGBA{R: 0, G: 255, B: 120, A: 200}
)

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	if g.showGrid {
		g.drawGrid(screen)
	}

	instances := g.session.Instances()
	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].Layer < instances[j].Layer
	})
	for _, inst := range instances {
		g.drawEntry(screen, inst.Entry, float64(inst.Position.X), float64(inst.Position.Y), 1, nil)
	}

	if held, ok := g.session.Engine().Held(); ok {
		mx, my := ebiten.CursorPosition()
		if mx < g.canvasWidth() {
			pos := placement.Snap(g.screenToWorld(mx, my))
			var tint color.Color
			if g.session.Blocked(pos) {
				tint = blockedColor
			}
			g.drawEntry(screen, held, float64(pos.X), float64(pos.Y), 0.5, tint)
		}
	}

	if g.showGeometry {
		g.drawGeometry(screen)
	}
	g.ui.ui.Draw(screen)
	g.drawStatus(screen)
}

func (g *Game) sprite(e *catalog.Entry) *ebiten.Image {
	img, ok := g.sprites[e]
	if !ok {
		img = ebiten.NewImageFromImage(e.Image)
		g.sprites[e] = img
	}
	return img
}

// drawEntry draws a sprite centred on a grid position. SpriteSize is pixels
// per world unit. A non-nil tint is applied on top of the entry's own.
func (g *Game) drawEntry(screen *ebiten.Image, e *catalog.Entry, x, y float64, alpha float32, tint color.Color) {
	img := g.sprite(e)
	ppu := e.SpriteSize
	if ppu <= 0 {
		ppu = img.Bounds().Dx()
	}
	scale := float64(g.cellSize) / float64(ppu)
	w, h := float64(img.Bounds().Dx())*scale, float64(img.Bounds().Dy())*scale
	sx, sy := g.worldToScreen(x, y)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(sx-w/2, sy-h/2)
	op.ColorScale.ScaleWithColor(e.Tint.RGBA())
	if tint != nil {
		op.ColorScale.ScaleWithColor(tint)
	}
	op.ColorScale.ScaleAlpha(alpha)
	screen.DrawImage(img, op)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	bg, ok := g.session.Background()
	if !ok {
		return
	}
	img, ok := g.backgrounds[bg.Name]
	if !ok {
		img = ebiten.NewImageFromImage(bg.Image)
		g.backgrounds[bg.Name] = img
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.canvasWidth())/float64(b.Dx()), float64(g.height)/float64(b.Dy()))
	screen.DrawImage(img, op)
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	cw := g.canvasWidth()
	ox, oy := g.worldToScreen(-0.5, 0.5)
	cell := float32(g.cellSize)
	for x := float32(ox) - cell*float32(int(ox)/g.cellSize+1); x < float32(cw); x += cell {
		vector.StrokeLine(screen, x, 0, x, float32(g.height), 1, gridColor, false)
	}
	for y := float32(oy) - cell*float32(int(oy)/g.cellSize+1); y < float32(g.height); y += cell {
		vector.StrokeLine(screen, 0, y, float32(cw), y, 1, gridColor, false)
	}
}

func (g *Game) drawGeometry(screen *ebiten.Image) {
	cell := float64(g.cellSize)
	for _, sh := range g.session.Geometry().Shapes() {
		x, y := g.worldToScreen(sh.BB.L, sh.BB.T)
		w, h := (sh.BB.R-sh.BB.L)*cell, (sh.BB.T-sh.BB.B)*cell
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, colliderColor, false)
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	s := g.session
	eng := s.Engine()
	name := s.Document().Name
	if name == "" {
		name = "(unnamed)"
	}
	held := "-"
	if e, ok := eng.Held(); ok {
		held = e.Name
	}
	if s.Tool() == editor.ToolErase {
		held = "eraser"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Map: %s  Objects: %d  Layer: %d  Hand: %s  FPS: %.0f",
		name, s.Document().Len(), eng.Layer(), held, ebiten.ActualFPS()))
	ebitenutil.DebugPrintAt(screen, "E erase  S save  N new  L load  X clear  C copy  G colliders  H grid", 0, 16)
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 0, g.height-18)
	}
}
