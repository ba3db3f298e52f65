package main

import (
	"fmt"
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/mapeditor/catalog"
)

// browserEntry is one row of the object browser.
type browserEntry struct {
	Key        catalog.Key
	Name       string
	Label      string
	Selectable bool
}

// browserPanel lists the entries of the selected tab and pack. Rows for
// locked kinds stay visible but refuse selection.
type browserPanel struct {
	tab       *widget.Button
	pack      *widget.Button
	list      *widget.List
	signature string
	// suppressEvents keeps programmatic repopulation from reading as a pick.
	suppressEvents bool
}

func addBrowserSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, g *Game) *browserPanel {
	bp := &browserPanel{}

	parent.AddChild(widget.NewLabel(widget.LabelOpts.Text("Objects", fontFace, labelColor)))

	selectors := newRowContainer()
	bp.tab = newButton(theme, fontFace, "Tab", 110, g.cycleTab)
	bp.pack = newButton(theme, fontFace, "Pack", 110, g.cyclePack)
	selectors.AddChild(bp.tab)
	selectors.AddChild(bp.pack)
	parent.AddChild(selectors)

	bp.list = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if be, ok := e.(*browserEntry); ok {
				return be.Label
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if bp.suppressEvents {
				return
			}
			if be, ok := args.Entry.(*browserEntry); ok {
				g.pick(be)
			}
		}),
	)
	bp.list.GetWidget().MinHeight = 260
	parent.AddChild(bp.list)

	bp.refresh(g)
	return bp
}

func browserLabel(e *catalog.Entry, count int, selectable bool) string {
	label := fmt.Sprintf("%3d %s", e.ID, e.Name)
	if e.MaxPerScene > 0 {
		label += fmt.Sprintf(" (%d/%d)", count, e.MaxPerScene)
	}
	if !selectable {
		label += " [locked]"
	}
	return label
}

// refresh repopulates the list when the visible rows, their counts or the
// hand changed. Each row is bound to its key so the held entry can be
// selected again after repopulating.
func (bp *browserPanel) refresh(g *Game) {
	s := g.session
	if t := bp.tab.Text(); t != nil {
		t.Label = "Tab: " + s.Tab()
	}
	if t := bp.pack.Text(); t != nil {
		t.Label = "Pack: " + s.Pack()
	}

	visible := s.Visible()
	rows := make([]*browserEntry, 0, len(visible))
	var sig strings.Builder
	for _, e := range visible {
		ok := s.Selectable(e.Key())
		row := &browserEntry{
			Key:        e.Key(),
			Name:       e.Name,
			Label:      browserLabel(e, s.Document().Count(e.Key()), ok),
			Selectable: ok,
		}
		rows = append(rows, row)
		sig.WriteString(row.Label)
		sig.WriteByte('\n')
	}
	held, holding := s.Engine().Held()
	if holding {
		fmt.Fprintf(&sig, "held %d/%s", held.ID, held.Pack)
	}
	if sig.String() == bp.signature {
		return
	}
	bp.signature = sig.String()

	bp.suppressEvents = true
	defer func() { bp.suppressEvents = false }()

	s.Unbind()
	entries := make([]any, len(rows))
	for i, row := range rows {
		entries[i] = row
		s.Bind(row.Key, row)
	}
	bp.list.SetEntries(entries)
	if !holding {
		return
	}
	if h, ok := s.Handle(held.Key()); ok {
		bp.list.SetSelectedEntry(h)
	}
}

// pick puts a browser row in hand, replacing whatever was held.
func (g *Game) pick(be *browserEntry) {
	s := g.session
	if !be.Selectable || !s.Selectable(be.Key) {
		g.status = be.Name + " limit reached"
		g.ui.browser.signature = ""
		return
	}
	eng := s.Engine()
	if held, ok := eng.Held(); ok && held.Key() != be.Key {
		eng.Cancel()
	}
	if s.Pick(be.Key.ID, be.Key.Pack) {
		g.status = "holding " + be.Name
	}
}
