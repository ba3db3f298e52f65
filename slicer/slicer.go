// Package slicer cuts a tileset image into catalog entries and writes them
// in the content-root layout the catalog loads.
package slicer

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/milk9111/mapeditor/catalog"
	"golang.org/x/image/draw"
)

// TileType is the object type given to every sliced tile.
const TileType = "Tiles"

// Options describes the grid to cut.
type Options struct {
	TileSize int
	Columns  int
	Rows     int
	Prefix   string
	Pack     string
}

// Validate checks the pack and name prefix before any work is done.
func Validate(pack, prefix string) error {
	switch {
	case pack == "" && prefix == "":
		return &catalog.ValidationError{Field: "Pack,Prefix", Msg: "pack name and file name can't be empty"}
	case pack == "":
		return &catalog.ValidationError{Field: "Pack", Msg: "pack name can't be empty"}
	case prefix == "":
		return &catalog.ValidationError{Field: "Prefix", Msg: "file name can't be empty"}
	}
	return nil
}

func (o Options) validate(bounds image.Rectangle) error {
	if err := Validate(o.Pack, o.Prefix); err != nil {
		return err
	}
	if o.TileSize <= 0 || o.Columns <= 0 || o.Rows <= 0 {
		return &catalog.ValidationError{
			Field: "Grid",
			Msg:   fmt.Sprintf("tile size and grid dimensions must be positive (got %d px, %dx%d)", o.TileSize, o.Columns, o.Rows),
		}
	}
	if o.Columns > bounds.Dx()/o.TileSize || o.Rows > bounds.Dy()/o.TileSize {
		return &catalog.ValidationError{
			Field: "Grid",
			Msg: fmt.Sprintf("grid %dx%d of %d px tiles does not fit a %dx%d image",
				o.Columns, o.Rows, o.TileSize, bounds.Dx(), bounds.Dy()),
		}
	}
	return nil
}

// Slice cuts img into Columns x Rows tiles of TileSize pixels.
//
// Tile rows are counted upward from the bottom edge of the image, and the
// row with the highest index is emitted first, so output starts with the
// visually topmost row. Columns run left to right. Tiles whose pixels are
// all fully transparent are dropped and do not consume an id.
func Slice(img image.Image, opts Options) ([]*catalog.Entry, error) {
	if img == nil {
		return nil, &catalog.ValidationError{Field: "Image", Msg: "no tileset loaded"}
	}
	b := img.Bounds()
	if err := opts.validate(b); err != nil {
		return nil, err
	}

	size := opts.TileSize
	var entries []*catalog.Entry
	for y := opts.Rows - 1; y >= 0; y-- {
		top := b.Max.Y - (y+1)*size
		for x := 0; x < opts.Columns; x++ {
			left := b.Min.X + x*size
			cell := image.Rect(left, top, left+size, top+size)

			tile := image.NewNRGBA(image.Rect(0, 0, size, size))
			draw.Copy(tile, image.Point{}, img, cell, draw.Src, nil)
			if transparentPixels(tile) == size*size {
				continue
			}

			id := len(entries)
			entries = append(entries, &catalog.Entry{
				Definition: catalog.Definition{
					ID:         id,
					Type:       TileType,
					Name:       TileName(opts.Prefix, id),
					SpriteSize: size,
					Tint:       catalog.White,
					Collider:   catalog.ColliderBox,
					Pack:       opts.Pack,
				},
				Image: tile,
			})
		}
	}
	return entries, nil
}

// TileName is the object name of the id-th surviving tile.
func TileName(prefix string, id int) string {
	return fmt.Sprintf("%s_%02d", prefix, id)
}

func transparentPixels(img *image.NRGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 0 {
			n++
		}
	}
	return n
}

// Write stores entries under root as Objects/<pack>/<name>/{Sprite.png,Data.json}.
// Nothing is written if any entry has an empty pack or name.
func Write(root string, entries []*catalog.Entry) error {
	for _, e := range entries {
		if err := Validate(e.Pack, e.Name); err != nil {
			return err
		}
	}
	for _, e := range entries {
		dir := filepath.Join(root, catalog.ObjectsDir, e.Pack, e.Name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("slicer: create %s: %w", dir, err)
		}
		if err := catalog.WritePNG(filepath.Join(dir, catalog.SpriteFile), e.Image); err != nil {
			return fmt.Errorf("slicer: write sprite %s: %w", e.Name, err)
		}
		data, err := json.MarshalIndent(e.Definition, "", "    ")
		if err != nil {
			return fmt.Errorf("slicer: marshal %s: %w", e.Name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, catalog.DataFile), data, 0644); err != nil {
			return fmt.Errorf("slicer: write data %s: %w", e.Name, err)
		}
	}
	return nil
}
