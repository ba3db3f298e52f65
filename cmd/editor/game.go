package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/mapeditor/catalog"
	"github.com/milk9111/mapeditor/config"
	"github.com/milk9111/mapeditor/editor"
	"github.com/milk9111/mapeditor/mapdoc"
	"github.com/rs/zerolog"
	"golang.design/x/clipboard"
)

type Game struct {
	session   *editor.Session
	watcher   *catalog.Watcher
	cfg       *config.Config
	log       zerolog.Logger
	clipboard bool
	ui        *editorUI

	width, height int
	cellSize      int
	showGrid      bool
	showGeometry  bool
	// stroking is set while a left-button press that began on the canvas
	// is held down.
	stroking bool

	sprites     map[*catalog.Entry]*ebiten.Image
	backgrounds map[string]*ebiten.Image

	mapCursor int
	status    string
}

func NewGame(session *editor.Session, watcher *catalog.Watcher, cfg *config.Config, logger zerolog.Logger) (*Game, error) {
	g := &Game{
		session:     session,
		watcher:     watcher,
		cfg:         cfg,
		log:         logger.With().Str("component", "ui").Logger(),
		width:       cfg.Window.Width,
		height:      cfg.Window.Height,
		cellSize:    cfg.Window.CellSize,
		showGrid:    true,
		sprites:     make(map[*catalog.Entry]*ebiten.Image),
		backgrounds: make(map[string]*ebiten.Image),
	}
	ui, err := buildEditorUI(g)
	if err != nil {
		return nil, err
	}
	g.ui = ui
	return g, nil
}

func (g *Game) Update() error {
	g.pollWatcher()
	if !g.ui.typing() {
		g.updateHotkeys()
	}
	g.updateCanvas()
	g.ui.update(g)
	g.session.Tick()
	return nil
}

func (g *Game) updateHotkeys() {
	s := g.session
	eng := s.Engine()

	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.status = "tool: " + s.ToggleErase().String()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		eng.Cancel()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.cycleTab()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.cyclePack()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.cycleBackground()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.toggleGeometry()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.toggleGrid()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		eng.IncreaseLayer()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		eng.DecreaseLayer()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveMap(g.ui.mapName.GetText())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.ui.mapName.SetText("")
		g.ui.mapName.Focus(true)
		g.status = "type a name and press New"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.loadNextMap()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.clearMap()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyMap()
	}
}

// updateCanvas applies the active tool under the cursor for as long as a
// press that started on the canvas is held. Placing on an occupied cell and
// erasing an empty one are no-ops, so repeating over a cell is harmless.
func (g *Game) updateCanvas() {
	mx, my := ebiten.CursorPosition()
	onCanvas := mx >= 0 && mx < g.canvasWidth() && my >= 0 && my < g.height

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && onCanvas {
		g.session.Engine().Cancel()
	}
	if onCanvas {
		_, wy := ebiten.Wheel()
		if wy > 0 {
			g.session.Engine().IncreaseLayer()
		} else if wy < 0 {
			g.session.Engine().DecreaseLayer()
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.stroking = onCanvas
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.stroking = false
	}
	if g.stroking && onCanvas {
		g.session.Click(g.screenToWorld(mx, my))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Game) canvasWidth() int {
	return g.width - panelWidth
}

// screenToWorld maps a screen pixel to world units. The world origin sits
// at the centre of the canvas and y grows upwards.
func (g *Game) screenToWorld(mx, my int) (float64, float64) {
	ox, oy := float64(g.canvasWidth())/2, float64(g.height)/2
	return (float64(mx) - ox) / float64(g.cellSize), (oy - float64(my)) / float64(g.cellSize)
}

func (g *Game) worldToScreen(x, y float64) (float64, float64) {
	ox, oy := float64(g.canvasWidth())/2, float64(g.height)/2
	return ox + x*float64(g.cellSize), oy - y*float64(g.cellSize)
}

func (g *Game) cycleTab() {
	tabs := g.session.Catalog().Tabs()
	if len(tabs) == 0 {
		return
	}
	next := 0
	for i, t := range tabs {
		if t.Label == g.session.Tab() {
			next = (i + 1) % len(tabs)
		}
	}
	g.session.SetTab(tabs[next].Label)
}

func (g *Game) cyclePack() {
	packs := g.session.Catalog().Packs()
	if len(packs) == 0 {
		return
	}
	next := 0
	for i, p := range packs {
		if p == g.session.Pack() {
			next = (i + 1) % len(packs)
		}
	}
	g.session.SetPack(packs[next])
}

func (g *Game) cycleBackground() {
	bgs := g.session.Catalog().Backgrounds()
	if len(bgs) == 0 {
		return
	}
	next := 0
	for i, b := range bgs {
		if b.Name == g.session.Document().Background {
			next = (i + 1) % len(bgs)
		}
	}
	if err := g.session.SetBackground(bgs[next].Name); err != nil {
		g.status = err.Error()
	}
}

func (g *Game) loadNextMap() {
	refs, err := g.session.MapList()
	if err != nil {
		g.status = err.Error()
		return
	}
	if len(refs) == 0 {
		g.status = "no maps to load"
		return
	}
	ref := refs[g.mapCursor%len(refs)]
	g.mapCursor++
	orphans, err := g.session.LoadMapFile(ref.Path)
	if err != nil {
		g.status = err.Error()
		return
	}
	g.ui.mapName.SetText(g.session.Document().Name)
	g.status = fmt.Sprintf("loaded %s", ref.Name)
	if len(orphans) > 0 {
		g.status += fmt.Sprintf(" (%d missing objects dropped)", len(orphans))
	}
}

func (g *Game) toggleGrid() {
	g.showGrid = !g.showGrid
}

func (g *Game) toggleGeometry() {
	g.showGeometry = !g.showGeometry
}

func (g *Game) copyMap() {
	if !g.clipboard {
		g.status = "clipboard unavailable"
		return
	}
	data, err := mapdoc.Save(g.session.Document())
	if err != nil {
		g.status = err.Error()
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.status = "map copied to clipboard"
}

// pollWatcher reloads the catalog after content on disk changed. A broken
// reload keeps the previous catalog.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Debug().Str("path", path).Msg("content changed")
			changed = true
			continue
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn().Err(err).Msg("content watch error")
			continue
		default:
		}
		break
	}
	if !changed {
		return
	}
	cat, err := catalog.Load(g.session.Catalog().Root(), g.log)
	if err != nil {
		g.log.Error().Err(err).Msg("catalog reload failed, keeping previous catalog")
		g.status = "reload failed: " + err.Error()
		return
	}
	if _, err := g.session.Reload(cat); err != nil {
		g.status = err.Error()
		return
	}
	g.sprites = make(map[*catalog.Entry]*ebiten.Image)
	g.backgrounds = make(map[string]*ebiten.Image)
	g.ui.browser.signature = ""
	g.status = "catalog reloaded"
}
