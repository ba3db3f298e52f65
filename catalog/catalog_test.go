package catalog

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writeObject(t *testing.T, root, pack, dir string, def map[string]any) {
	t.Helper()
	path := filepath.Join(root, ObjectsDir, pack, dir)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	raw, err := json.Marshal(def)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(filepath.Join(path, DataFile), raw, 0644); err != nil {
		t.Fatalf("write data: %v", err)
	}
	if err := WritePNG(filepath.Join(path, SpriteFile), solidImage(4, 4, color.NRGBA{R: 200, A: 255})); err != nil {
		t.Fatalf("write sprite: %v", err)
	}
}

func writeFile(t *testing.T, path string, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func buildRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeObject(t, root, "Base", "Crate", map[string]any{
		"ID": 5, "ObjectType": "Props", "ObjectName": "Crate", "SpriteSize": 4,
		"SpriteTint":     map[string]int{"r": 255, "g": 255, "b": 255, "a": 255},
		"ObjectCollider": "BoxCollider", "MaxPerScene": 1,
		"ObjectPack": "Stale",
	})
	writeObject(t, root, "Base", "Rock", map[string]any{
		"ID": 6, "ObjectType": "Props", "ObjectName": "Rock", "SpriteSize": 4,
		"ObjectCollider": "CircleCollider",
	})
	writeObject(t, root, "Forest", "Tree", map[string]any{
		"ID": 5, "ObjectType": "Nature", "ObjectName": "Tree", "SpriteSize": 8,
		"ObjectCollider": "Whatever",
	})
	if err := os.MkdirAll(filepath.Join(root, BackgroundsDir), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := WritePNG(filepath.Join(root, BackgroundsDir, "Sky.png"), solidImage(2, 2, color.NRGBA{B: 255, A: 255})); err != nil {
		t.Fatalf("write background: %v", err)
	}
	writeFile(t, filepath.Join(root, TabsDir, TabsFile), `{"tabList":[{"tab":"Props"},{"tab":"Nature"}]}`)
	writeFile(t, filepath.Join(root, MapsDir, "b.json"), `{"MapName":"B"}`)
	writeFile(t, filepath.Join(root, MapsDir, "a.json"), `{"MapName":"A"}`)
	writeFile(t, filepath.Join(root, MapsDir, "notes.txt"), `ignored`)
	return root
}

func TestLoad(t *testing.T) {
	root := buildRoot(t)
	c, err := Load(root, zerolog.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := c.Packs(); len(got) != 2 || got[0] != "Base" || got[1] != "Forest" {
		t.Fatalf("packs = %v", got)
	}
	if len(c.Entries()) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(c.Entries()))
	}

	cases := []struct {
		name     string
		id       int
		pack     string
		wantName string
		collider ColliderKind
		found    bool
	}{
		{"base_crate", 5, "Base", "Crate", ColliderBox, true},
		{"base_rock", 6, "Base", "Rock", ColliderCircle, true},
		{"same_id_other_pack", 5, "Forest", "Tree", ColliderNone, true},
		{"stale_pack_ignored", 5, "Stale", "", ColliderNone, false},
		{"missing_id", 7, "Base", "", ColliderNone, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, ok := c.FindObject(tc.id, tc.pack)
			if ok != tc.found {
				t.Fatalf("found = %v, want %v", ok, tc.found)
			}
			if !ok {
				return
			}
			if e.Name != tc.wantName || e.Collider != tc.collider || e.Pack != tc.pack {
				t.Fatalf("unexpected entry %+v", e.Definition)
			}
			if e.Image == nil || e.Image.Bounds().Dx() != 4 {
				t.Fatalf("sprite not loaded")
			}
		})
	}

	crate, _ := c.FindObject(5, "Base")
	if crate.MaxPerScene != 1 || crate.Tint != White {
		t.Fatalf("crate metadata = %+v", crate.Definition)
	}

	if b, ok := c.FindBackground("Sky"); !ok || b.Image.Bounds().Dx() != 2 {
		t.Fatalf("background Sky not found")
	}
	if _, ok := c.FindBackground("Night"); ok {
		t.Fatalf("unexpected background")
	}

	tabs := c.Tabs()
	if len(tabs) != 2 || tabs[0].Label != "Props" || tabs[1].Label != "Nature" {
		t.Fatalf("tabs = %v", tabs)
	}

	paths, err := c.ListMapPaths()
	if err != nil {
		t.Fatalf("ListMapPaths: %v", err)
	}
	want := []string{filepath.Join(root, MapsDir, "a.json"), filepath.Join(root, MapsDir, "b.json")}
	if len(paths) != len(want) || paths[0] != want[0] || paths[1] != want[1] {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T, root string)
	}{
		{
			name: "no_json",
			setup: func(t *testing.T, root string) {
				dir := filepath.Join(root, ObjectsDir, "Base", "Empty")
				if err := os.MkdirAll(dir, 0755); err != nil {
					t.Fatal(err)
				}
				if err := WritePNG(filepath.Join(dir, SpriteFile), solidImage(1, 1, color.NRGBA{A: 255})); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "two_json",
			setup: func(t *testing.T, root string) {
				writeObject(t, root, "Base", "Crate", map[string]any{"ID": 1})
				writeFile(t, filepath.Join(root, ObjectsDir, "Base", "Crate", "Extra.json"), `{"ID":2}`)
			},
		},
		{
			name: "malformed_json",
			setup: func(t *testing.T, root string) {
				writeObject(t, root, "Base", "Crate", map[string]any{"ID": 1})
				writeFile(t, filepath.Join(root, ObjectsDir, "Base", "Crate", DataFile), `{"ID":`)
			},
		},
		{
			name: "missing_sprite",
			setup: func(t *testing.T, root string) {
				writeFile(t, filepath.Join(root, ObjectsDir, "Base", "Crate", DataFile), `{"ID":1}`)
			},
		},
		{
			name: "corrupt_sprite",
			setup: func(t *testing.T, root string) {
				writeObject(t, root, "Base", "Crate", map[string]any{"ID": 1})
				writeFile(t, filepath.Join(root, ObjectsDir, "Base", "Crate", SpriteFile), "not a png")
			},
		},
		{
			name: "duplicate_id_in_pack",
			setup: func(t *testing.T, root string) {
				writeObject(t, root, "Base", "A", map[string]any{"ID": 1})
				writeObject(t, root, "Base", "B", map[string]any{"ID": 1})
			},
		},
		{
			name: "malformed_tabs",
			setup: func(t *testing.T, root string) {
				writeFile(t, filepath.Join(root, TabsDir, TabsFile), `[`)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root := t.TempDir()
			tc.setup(t, root)
			_, err := Load(root, zerolog.Nop())
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestLoadEmptyRoot(t *testing.T) {
	c, err := Load(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Entries()) != 0 || len(c.Tabs()) != 0 || len(c.Backgrounds()) != 0 {
		t.Fatalf("expected empty catalog")
	}
	paths, err := c.ListMapPaths()
	if err != nil || len(paths) != 0 {
		t.Fatalf("ListMapPaths = %v, %v", paths, err)
	}
}

func TestFromEntries(t *testing.T) {
	a := &Entry{Definition: Definition{ID: 1, Pack: "P", Name: "a"}}
	b := &Entry{Definition: Definition{ID: 1, Pack: "Q", Name: "b"}}
	c, err := FromEntries([]*Entry{a, b}, nil, nil)
	if err != nil {
		t.Fatalf("FromEntries: %v", err)
	}
	if e, ok := c.FindObject(1, "Q"); !ok || e != b {
		t.Fatalf("lookup by pack failed")
	}
	if e, ok := c.FindByName("a"); !ok || e != a {
		t.Fatalf("lookup by name failed")
	}
	if _, err := FromEntries([]*Entry{a, a}, nil, nil); err == nil {
		t.Fatalf("expected duplicate key error")
	}
}

func TestColliderKindText(t *testing.T) {
	cases := []struct {
		in   string
		want ColliderKind
	}{
		{"BoxCollider", ColliderBox},
		{"CircleCollider", ColliderCircle},
		{"PolygonCollider", ColliderPolygon},
		{"", ColliderNone},
		{"MeshCollider", ColliderNone},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var k ColliderKind
			if err := k.UnmarshalText([]byte(tc.in)); err != nil {
				t.Fatal(err)
			}
			if k != tc.want {
				t.Fatalf("got %v, want %v", k, tc.want)
			}
		})
	}
}

func TestNormalizeKeepsPixels(t *testing.T) {
	src := image.NewRGBA(image.Rect(3, 3, 5, 5))
	src.Set(3, 3, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	src.Set(4, 4, color.RGBA{A: 0})
	dst := Normalize(src)
	if dst.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v", dst.Bounds())
	}
	if got := dst.NRGBAAt(0, 0); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Fatalf("pixel = %v", got)
	}
	if got := dst.NRGBAAt(1, 1); got.A != 0 {
		t.Fatalf("expected transparent pixel, got %v", got)
	}
}
