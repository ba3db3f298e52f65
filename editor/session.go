// Package editor ties the catalog, the map document, the placement engine
// and the collision geometry into one editing session. It is the surface a
// UI drives; it never bypasses the engine's occupancy and cap checks.
package editor

import (
	"fmt"

	"github.com/milk9111/mapeditor/catalog"
	"github.com/milk9111/mapeditor/geometry"
	"github.com/milk9111/mapeditor/mapdoc"
	"github.com/milk9111/mapeditor/placement"
	"github.com/rs/zerolog"
)

// Tool is the active editing tool.
type Tool int

const (
	ToolPlace Tool = iota
	ToolErase
)

func (t Tool) String() string {
	switch t {
	case ToolPlace:
		return "Place"
	case ToolErase:
		return "Erase"
	default:
		return "Unknown"
	}
}

// Options configures a session.
type Options struct {
	MinLayer int
	MaxLayer int
	Logger   zerolog.Logger
}

// DefaultOptions uses the engine's default layer range and no logging.
func DefaultOptions() Options {
	return Options{
		MinLayer: placement.DefaultMinLayer,
		MaxLayer: placement.DefaultMaxLayer,
		Logger:   zerolog.Nop(),
	}
}

// Session is one editing session over one map at a time.
type Session struct {
	cat      *catalog.Catalog
	engine   *placement.Engine
	geometry *geometry.Composite
	tool     Tool
	tab      string
	pack     string
	handles  map[catalog.Key]any
	log      zerolog.Logger
}

func NewSession(cat *catalog.Catalog, opts Options) *Session {
	geo := geometry.New(opts.Logger)
	s := &Session{
		cat:      cat,
		geometry: geo,
		handles:  make(map[catalog.Key]any),
		log:      opts.Logger.With().Str("component", "editor").Logger(),
	}
	s.engine = placement.New(mapdoc.New(""), cat,
		placement.WithLayerBounds(opts.MinLayer, opts.MaxLayer),
		placement.WithInvalidator(geo),
	)
	if tabs := cat.Tabs(); len(tabs) > 0 {
		s.tab = tabs[0].Label
	}
	if packs := cat.Packs(); len(packs) > 0 {
		s.pack = packs[0]
	}
	return s
}

func (s *Session) Catalog() *catalog.Catalog {
	return s.cat
}

func (s *Session) Engine() *placement.Engine {
	return s.engine
}

func (s *Session) Geometry() *geometry.Composite {
	return s.geometry
}

func (s *Session) Document() *mapdoc.Document {
	return s.engine.Document()
}

func (s *Session) Tool() Tool {
	return s.tool
}

// ToggleErase switches between placing and erasing. Entering erase mode
// drops whatever is in hand.
func (s *Session) ToggleErase() Tool {
	if s.tool == ToolErase {
		s.tool = ToolPlace
	} else {
		s.tool = ToolErase
		s.engine.Cancel()
	}
	return s.tool
}

// Pick puts the entry for (id, pack) in hand. It fails while erasing, for
// unknown entries and for locked kinds.
func (s *Session) Pick(id int, pack string) bool {
	if s.tool != ToolPlace {
		return false
	}
	e, ok := s.cat.FindObject(id, pack)
	if !ok {
		return false
	}
	return s.engine.Begin(e)
}

// Click applies the active tool at a world point.
func (s *Session) Click(x, y float64) bool {
	pos := placement.Snap(x, y)
	switch s.tool {
	case ToolErase:
		_, ok := s.engine.Erase(pos)
		return ok
	default:
		_, ok := s.engine.Confirm(pos, s.engine.Layer())
		return ok
	}
}

// Blocked reports whether placing the held entry at pos would be refused,
// either because the cell is taken or the kind is at its cap.
func (s *Session) Blocked(pos mapdoc.Vec3) bool {
	held, ok := s.engine.Held()
	if !ok {
		return false
	}
	return s.engine.IsOccupied(pos) || s.engine.IsLocked(held.ID, held.Pack)
}

// SetBackground selects a background by name. Unknown names are rejected
// and leave the document unchanged.
func (s *Session) SetBackground(name string) error {
	if _, ok := s.cat.FindBackground(name); !ok {
		return fmt.Errorf("editor: unknown background %q", name)
	}
	s.Document().Background = name
	return nil
}

// Background returns the current background, if it resolves.
func (s *Session) Background() (*catalog.Background, bool) {
	return s.cat.FindBackground(s.Document().Background)
}

// NewMap discards the current document and starts an empty one.
func (s *Session) NewMap(name string) {
	s.engine.SetDocument(mapdoc.New(name))
}

// Clear removes all placed objects but keeps name and background.
func (s *Session) Clear() {
	doc := s.Document().Clone()
	doc.Clear()
	s.engine.SetDocument(doc)
}

// Instances resolves the document for rendering.
func (s *Session) Instances() []mapdoc.Instance {
	return s.Document().Resolve(s.cat)
}

// Tick runs the work deferred until before the next frame is drawn. It
// reports whether collision geometry was regenerated.
func (s *Session) Tick() bool {
	if !s.geometry.Dirty() {
		return false
	}
	return s.geometry.Flush(s.Instances())
}

// Reload swaps in a freshly loaded catalog. The current document is
// re-resolved against it: objects whose definition disappeared are dropped
// and returned, locks are recounted and UI handles are released.
func (s *Session) Reload(cat *catalog.Catalog) ([]mapdoc.PlacedObject, error) {
	data, err := mapdoc.Save(s.Document())
	if err != nil {
		return nil, err
	}
	doc, orphans, err := mapdoc.Load(data, cat)
	if err != nil {
		return nil, err
	}
	for _, o := range orphans {
		s.log.Warn().Int("objectId", o.ObjectID).Str("pack", o.Pack).Msg("object removed from catalog, dropped")
	}

	minLayer, maxLayer := s.engine.LayerBounds()
	layer := s.engine.Layer()
	s.cat = cat
	s.engine = placement.New(doc, cat,
		placement.WithLayerBounds(minLayer, maxLayer),
		placement.WithInvalidator(s.geometry),
	)
	s.engine.SetLayer(layer)
	s.geometry.MarkDirty()
	s.Unbind()
	if !containsTab(cat.Tabs(), s.tab) {
		s.tab = ""
		if tabs := cat.Tabs(); len(tabs) > 0 {
			s.tab = tabs[0].Label
		}
	}
	if !containsString(cat.Packs(), s.pack) {
		s.pack = ""
		if packs := cat.Packs(); len(packs) > 0 {
			s.pack = packs[0]
		}
	}
	s.log.Info().Int("objects", doc.Len()).Int("dropped", len(orphans)).Msg("catalog reloaded")
	return orphans, nil
}

func containsTab(tabs []catalog.Tab, label string) bool {
	for _, t := range tabs {
		if t.Label == label {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// mapPath returns where a map named name lives in the content root.
func (s *Session) mapPath(name string) string {
	return mapdoc.FilePath(s.cat.MapsDir(), name)
}
