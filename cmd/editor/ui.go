package main

import (
	"bytes"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// panelWidth is the width of the right-hand panel; the canvas takes the
// rest of the window.
const panelWidth = 260

type editorUI struct {
	ui      *ebitenui.UI
	toolbar *toolBar
	browser *browserPanel
	mapName *widget.TextInput
}

func buildEditorUI(g *Game) (*editorUI, error) {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}

	ui := &ebitenui.UI{}
	ui.PrimaryTheme = newEditorTheme(&fontFace)
	theme := ui.PrimaryTheme

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(panelWidth, 0)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 12, Right: 12}),
			),
		),
	)
	panel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}

	eu := &editorUI{ui: ui}
	eu.toolbar = addToolBarSection(panel, theme, &fontFace, g)
	eu.browser = addBrowserSection(panel, theme, &fontFace, g)
	eu.mapName = addMapSection(panel, theme, &fontFace, g)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	ui.Container = root
	return eu, nil
}

// typing reports whether a text input holds the keyboard focus.
func (eu *editorUI) typing() bool {
	if fw := eu.ui.GetFocusedWidget(); fw != nil {
		switch fw.(type) {
		case *widget.TextInput:
			return true
		}
	}
	return false
}

func (eu *editorUI) update(g *Game) {
	eu.toolbar.sync(g)
	eu.browser.refresh(g)
	eu.ui.Update()
}
