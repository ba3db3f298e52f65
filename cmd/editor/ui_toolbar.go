package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/mapeditor/editor"
)

// toolBar mirrors the session's tool, layer and overlay toggles.
type toolBar struct {
	group    *widget.RadioGroup
	place    *widget.Button
	erase    *widget.Button
	layer    *widget.Text
	grid     *widget.Button
	geometry *widget.Button
	active   *widget.Button
	suppress bool
}

func newRowContainer() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(4),
			),
		),
	)
}

func newButton(theme *widget.Theme, fontFace *text.Face, label string, width int, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(label, fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 28)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func addToolBarSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, g *Game) *toolBar {
	tb := &toolBar{}
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{R: 0, G: 0, B: 200, A: 255},
		Disabled: color.Gray{Y: 128},
	}

	tools := newRowContainer()
	for _, name := range []string{"Place", "Erase"} {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(name, fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(72, 28)),
		)
		tools.AddChild(btn)
		if name == "Place" {
			tb.place = btn
		} else {
			tb.erase = btn
		}
	}
	tb.group = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(tb.place, tb.erase),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if tb.suppress {
				return
			}
			want := editor.ToolPlace
			tb.active = tb.place
			if args.Active == tb.erase {
				tb.active = tb.erase
				want = editor.ToolErase
			}
			if g.session.Tool() != want {
				g.status = "tool: " + g.session.ToggleErase().String()
			}
		}),
	)
	parent.AddChild(tools)

	layers := newRowContainer()
	layers.AddChild(newButton(theme, fontFace, "-", 28, func() { g.session.Engine().DecreaseLayer() }))
	tb.layer = widget.NewText(widget.TextOpts.Text("Layer 0", fontFace, color.White))
	layers.AddChild(tb.layer)
	layers.AddChild(newButton(theme, fontFace, "+", 28, func() { g.session.Engine().IncreaseLayer() }))
	parent.AddChild(layers)

	overlays := newRowContainer()
	tb.grid = newButton(theme, fontFace, "Grid: On", 72, g.toggleGrid)
	tb.geometry = newButton(theme, fontFace, "Colliders: Off", 104, g.toggleGeometry)
	overlays.AddChild(tb.grid)
	overlays.AddChild(tb.geometry)
	parent.AddChild(overlays)

	parent.AddChild(newButton(theme, fontFace, "Background", 180, g.cycleBackground))

	tb.sync(g)
	return tb
}

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}

// sync reflects state changed through hotkeys back into the widgets.
func (tb *toolBar) sync(g *Game) {
	active := tb.place
	if g.session.Tool() == editor.ToolErase {
		active = tb.erase
	}
	if tb.active != active {
		tb.active = active
		tb.suppress = true
		tb.group.SetActive(active)
		tb.suppress = false
	}
	tb.layer.Label = fmt.Sprintf("Layer %d", g.session.Engine().Layer())
	if t := tb.grid.Text(); t != nil {
		t.Label = "Grid: " + onOff(g.showGrid)
	}
	if t := tb.geometry.Text(); t != nil {
		t.Label = "Colliders: " + onOff(g.showGeometry)
	}
}
