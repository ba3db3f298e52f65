package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	panelColor  = color.RGBA{R: 24, G: 24, B: 32, A: 255}
	labelColor  = &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}
	inputColors = &widget.TextInputColor{
		Idle:     color.Black,
		Disabled: color.Gray{Y: 120},
		Caret:    color.Black,
	}
)

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          color.White,
				Selected:            color.RGBA{R: 255, G: 220, B: 120, A: 255},
				DisabledUnselected:  color.Gray{Y: 110},
				DisabledSelected:    color.Gray{Y: 80},
				SelectingBackground: color.RGBA{R: 60, G: 70, B: 110, A: 255},
				SelectedBackground:  color.RGBA{R: 50, G: 60, B: 100, A: 255},
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(color.RGBA{R: 36, G: 36, B: 48, A: 255}),
				Mask: solidNineSlice(color.RGBA{R: 36, G: 36, B: 48, A: 255}),
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(panelColor),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{R: 180, G: 180, B: 190, A: 255}),
				Hover:   solidNineSlice(color.RGBA{R: 205, G: 205, B: 215, A: 255}),
				Pressed: solidNineSlice(color.RGBA{R: 150, G: 150, B: 165, A: 255}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle: color.Black,
			},
		},
	}
}
