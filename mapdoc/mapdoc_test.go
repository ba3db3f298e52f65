package mapdoc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/mapeditor/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.FromEntries([]*catalog.Entry{
		{Definition: catalog.Definition{ID: 1, Pack: "Base", Name: "Grass", Collider: catalog.ColliderBox}},
		{Definition: catalog.Definition{ID: 2, Pack: "Base", Name: "Stone"}},
		{Definition: catalog.Definition{ID: 1, Pack: catalog.DefaultPack, Name: "Legacy"}},
	}, nil, nil)
	if err != nil {
		t.Fatalf("FromEntries: %v", err)
	}
	return c
}

func sampleDoc() *Document {
	doc := New("Level1")
	doc.Background = "Sky"
	doc.Add(PlacedObject{ObjectID: 1, Pack: "Base", Position: Vec3{X: 0, Y: 0}, Layer: 0})
	doc.Add(PlacedObject{ObjectID: 2, Pack: "Base", Position: Vec3{X: -3, Y: 4}, Layer: 1})
	doc.Add(PlacedObject{ObjectID: 1, Pack: "Base", Position: Vec3{X: 7, Y: -2}, Layer: -1})
	return doc
}

func TestSaveLoadRoundTrip(t *testing.T) {
	doc := sampleDoc()
	data, err := Save(doc)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	for _, field := range []string{`"MapName": "Level1"`, `"Background": "Sky"`, `"MapData"`, `"ObjectID"`, `"ObjectPack"`, `"LayerInMap"`, `"position"`} {
		if !strings.Contains(string(data), field) {
			t.Fatalf("encoded map missing %s:\n%s", field, data)
		}
	}

	got, orphans, err := Load(data, testCatalog(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(orphans) != 0 {
		t.Fatalf("unexpected orphans: %v", orphans)
	}
	if got.Name != doc.Name || got.Background != doc.Background {
		t.Fatalf("header mismatch: %+v", got)
	}
	if len(got.Objects) != len(doc.Objects) {
		t.Fatalf("expected %d objects, got %d", len(doc.Objects), len(got.Objects))
	}
	for i := range doc.Objects {
		if got.Objects[i] != doc.Objects[i] {
			t.Fatalf("object %d: got %+v, want %+v", i, got.Objects[i], doc.Objects[i])
		}
	}
}

func TestSaveEmptyDocumentWritesArray(t *testing.T) {
	data, err := Save(New("Empty"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.Contains(string(data), `"MapData": []`) {
		t.Fatalf("expected empty MapData array:\n%s", data)
	}
}

func TestLoadDropsOrphans(t *testing.T) {
	raw := `{
		"MapName": "Broken",
		"Background": "Sky",
		"MapData": [
			{"ObjectID": 1, "ObjectPack": "Base", "LayerInMap": 0, "position": {"x": 0, "y": 0, "z": 0}},
			{"ObjectID": 9, "ObjectPack": "Base", "LayerInMap": 0, "position": {"x": 1, "y": 0, "z": 0}},
			{"ObjectID": 2, "ObjectPack": "Gone", "LayerInMap": 0, "position": {"x": 2, "y": 0, "z": 0}},
			{"ObjectID": 2, "ObjectPack": "Base", "LayerInMap": 1, "position": {"x": 3, "y": 0, "z": 0}}
		]
	}`
	doc, orphans, err := Load([]byte(raw), testCatalog(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(orphans) != 2 {
		t.Fatalf("expected 2 orphans, got %v", orphans)
	}
	if doc.Len() != 4-len(orphans) {
		t.Fatalf("expected %d objects, got %d", 4-len(orphans), doc.Len())
	}
	if doc.Objects[0].Position.X != 0 || doc.Objects[1].Position.X != 3 {
		t.Fatalf("surviving order changed: %+v", doc.Objects)
	}
}

func TestLoadDefaultsPack(t *testing.T) {
	raw := `{"MapName":"Old","MapData":[{"ObjectID":1,"LayerInMap":0,"position":{"x":0,"y":0,"z":0}}]}`
	doc, orphans, err := Load([]byte(raw), testCatalog(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(orphans) != 0 || doc.Len() != 1 {
		t.Fatalf("expected legacy object to resolve, orphans=%v", orphans)
	}
	if doc.Objects[0].Pack != catalog.DefaultPack {
		t.Fatalf("pack = %q", doc.Objects[0].Pack)
	}
}

func TestLoadDropsOverlappingObjects(t *testing.T) {
	raw := `{"MapName":"Stacked","MapData":[
		{"ObjectID":9,"ObjectPack":"Base","LayerInMap":0,"position":{"x":0,"y":0,"z":0}},
		{"ObjectID":1,"ObjectPack":"Base","LayerInMap":0,"position":{"x":0,"y":0,"z":0}},
		{"ObjectID":2,"ObjectPack":"Base","LayerInMap":7,"position":{"x":0,"y":0,"z":0}},
		{"ObjectID":2,"ObjectPack":"Base","LayerInMap":1,"position":{"x":1,"y":0,"z":0}}
	]}`
	doc, dropped, err := Load([]byte(raw), testCatalog(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Len() != 2 {
		t.Fatalf("expected 2 objects, got %+v", doc.Objects)
	}
	if doc.Objects[0].ObjectID != 1 || doc.Objects[1].Position.X != 1 {
		t.Fatalf("the first resolvable object at a cell must win: %+v", doc.Objects)
	}
	if len(dropped) != 2 || dropped[0].ObjectID != 9 || dropped[1].Layer != 7 {
		t.Fatalf("dropped = %+v", dropped)
	}

	doc, dropped, err = Load([]byte(raw), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Len() != 2 || len(dropped) != 2 {
		t.Fatalf("without a resolver only overlaps are dropped: kept %d dropped %d", doc.Len(), len(dropped))
	}
}

func TestLoadMalformed(t *testing.T) {
	if _, _, err := Load([]byte(`{"MapName":`), nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDocumentOps(t *testing.T) {
	doc := sampleDoc()
	key := catalog.Key{ID: 1, Pack: "Base"}

	if n := doc.Count(key); n != 2 {
		t.Fatalf("Count = %d", n)
	}
	if _, ok := doc.FindAt(Vec3{X: -3, Y: 4}); !ok {
		t.Fatalf("FindAt missed")
	}
	if _, ok := doc.FindAt(Vec3{X: -3, Y: 4, Z: 1}); ok {
		t.Fatalf("FindAt matched a different z")
	}

	clone := doc.Clone()
	if _, ok := doc.RemoveAt(Vec3{X: 0, Y: 0}); !ok {
		t.Fatalf("RemoveAt missed")
	}
	if doc.Count(key) != 1 || clone.Count(key) != 2 {
		t.Fatalf("clone shares storage with original")
	}
	if _, ok := doc.RemoveAt(Vec3{X: 0, Y: 0}); ok {
		t.Fatalf("second RemoveAt should miss")
	}

	doc.Clear()
	if doc.Len() != 0 || doc.Name != "Level1" {
		t.Fatalf("Clear: %+v", doc)
	}
}

func TestResolve(t *testing.T) {
	doc := sampleDoc()
	doc.Add(PlacedObject{ObjectID: 42, Pack: "Base", Position: Vec3{X: 9}})
	inst := doc.Resolve(testCatalog(t))
	if len(inst) != 3 {
		t.Fatalf("expected 3 instances, got %d", len(inst))
	}
	if inst[0].Collider() != catalog.ColliderBox || inst[1].Collider() != catalog.ColliderNone {
		t.Fatalf("colliders = %v, %v", inst[0].Collider(), inst[1].Collider())
	}
	if inst[1].Layer != 1 || inst[1].Position != (Vec3{X: -3, Y: 4}) {
		t.Fatalf("instance = %+v", inst[1])
	}
}

func TestPeekName(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{"name_first", `{"MapName":"Alpha","MapData":[]}`, "Alpha", false},
		{"name_after_data", `{"Background":"Sky","MapData":[{"ObjectID":1,"position":{"x":1}}],"MapName":"Beta"}`, "Beta", false},
		{"name_missing", `{"Background":"Sky"}`, "", false},
		{"truncated_after_name", `{"MapName":"Gamma","MapData":[`, "Gamma", false},
		{"not_object", `[1,2]`, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".json")
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatal(err)
			}
			got, err := PeekName(path)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSaveFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Maps")
	doc := sampleDoc()

	path, err := SaveFile(dir, doc)
	if err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if path != filepath.Join(dir, "Level1.json") {
		t.Fatalf("path = %s", path)
	}
	got, _, err := LoadFile(path, nil)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.Len() != doc.Len() {
		t.Fatalf("reloaded %d objects, want %d", got.Len(), doc.Len())
	}

	for _, bad := range []string{"", "  ", "../escape", `a\b`} {
		doc.Name = bad
		_, err := SaveFile(dir, doc)
		var vErr *catalog.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("name %q: expected ValidationError, got %v", bad, err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("invalid names must not write files, found %d", len(entries))
	}
}
