package main

import (
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func addMapSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, g *Game) *widget.TextInput {
	parent.AddChild(widget.NewLabel(widget.LabelOpts.Text("Map", fontFace, labelColor)))

	nameInput := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(228, 28),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(color.RGBA{R: 245, G: 245, B: 245, A: 255}),
			Disabled: solidNineSlice(color.RGBA{R: 200, G: 200, B: 200, A: 255}),
		}),
		widget.TextInputOpts.Color(inputColors),
		widget.TextInputOpts.Face(fontFace),
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			g.saveMap(args.InputText)
		}),
	)
	nameInput.SetText(g.session.Document().Name)
	parent.AddChild(nameInput)

	file := newRowContainer()
	file.AddChild(newButton(theme, fontFace, "Save", 72, func() { g.saveMap(nameInput.GetText()) }))
	file.AddChild(newButton(theme, fontFace, "New", 72, func() { g.newMap(nameInput.GetText()) }))
	file.AddChild(newButton(theme, fontFace, "Load", 72, g.loadNextMap))
	parent.AddChild(file)

	edit := newRowContainer()
	edit.AddChild(newButton(theme, fontFace, "Clear", 110, g.clearMap))
	edit.AddChild(newButton(theme, fontFace, "Copy", 110, g.copyMap))
	parent.AddChild(edit)

	return nameInput
}

func (g *Game) saveMap(name string) {
	path, err := g.session.SaveMap(strings.TrimSpace(name))
	if err != nil {
		g.status = err.Error()
		return
	}
	g.status = "saved " + path
}

func (g *Game) newMap(name string) {
	name = strings.TrimSpace(name)
	g.session.NewMap(name)
	g.status = "new map " + name
}

func (g *Game) clearMap() {
	g.session.Clear()
	g.status = "map cleared"
}
