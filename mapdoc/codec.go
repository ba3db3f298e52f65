package mapdoc

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/mapeditor/catalog"
)

// Resolver looks up catalog entries. *catalog.Catalog implements it.
type Resolver interface {
	FindObject(id int, pack string) (*catalog.Entry, bool)
}

// Save encodes doc as indented JSON. Object order is preserved.
func Save(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("mapdoc: nil document")
	}
	out := *doc
	if out.Objects == nil {
		out.Objects = []PlacedObject{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&out); err != nil {
		return nil, fmt.Errorf("mapdoc: encode %q: %w", doc.Name, err)
	}
	return buf.Bytes(), nil
}

// Load decodes a map. Objects without a pack get catalog.DefaultPack.
// Objects the resolver cannot find, and objects sharing a position with an
// earlier object, are removed and returned as dropped; they are not an
// error. A nil resolver resolves every object.
func Load(data []byte, r Resolver) (*Document, []PlacedObject, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("mapdoc: unmarshal map: %w", err)
	}

	var dropped []PlacedObject
	kept := make([]PlacedObject, 0, len(doc.Objects))
	taken := make(map[Vec3]bool, len(doc.Objects))
	for _, o := range doc.Objects {
		if o.Pack == "" {
			o.Pack = catalog.DefaultPack
		}
		if r != nil {
			if _, ok := r.FindObject(o.ObjectID, o.Pack); !ok {
				dropped = append(dropped, o)
				continue
			}
		}
		if taken[o.Position] {
			dropped = append(dropped, o)
			continue
		}
		taken[o.Position] = true
		kept = append(kept, o)
	}
	doc.Objects = kept
	return &doc, dropped, nil
}

// PeekName reads only as far as the top-level MapName of the map at path.
func PeekName(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return peekName(bufio.NewReader(f))
}

func peekName(r io.Reader) (string, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("mapdoc: peek name: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return "", errors.New("mapdoc: peek name: map is not an object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("mapdoc: peek name: %w", err)
		}
		key, _ := tok.(string)
		if strings.EqualFold(key, "MapName") {
			var name string
			if err := dec.Decode(&name); err != nil {
				return "", fmt.Errorf("mapdoc: peek name: %w", err)
			}
			return name, nil
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return "", fmt.Errorf("mapdoc: peek name: %w", err)
		}
	}
	return "", nil
}

// ValidateName rejects map names that cannot be used as a file name.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return &catalog.ValidationError{Field: "MapName", Msg: "map name can't be empty"}
	case strings.ContainsAny(name, `/\`) || name == "." || name == "..":
		return &catalog.ValidationError{Field: "MapName", Msg: fmt.Sprintf("map name %q is not a valid file name", name)}
	}
	return nil
}

// FilePath returns the path a map named name is stored at inside dir.
func FilePath(dir, name string) string {
	return filepath.Join(dir, name+".json")
}

// SaveFile writes doc to <dir>/<doc.Name>.json and returns the path.
func SaveFile(dir string, doc *Document) (string, error) {
	if doc == nil {
		return "", errors.New("mapdoc: nil document")
	}
	if err := ValidateName(doc.Name); err != nil {
		return "", err
	}
	data, err := Save(doc)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := FilePath(dir, doc.Name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("mapdoc: write %s: %w", path, err)
	}
	return path, nil
}

// LoadFile reads and decodes the map at path.
func LoadFile(path string, r Resolver) (*Document, []PlacedObject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("mapdoc: read %s: %w", path, err)
	}
	return Load(data, r)
}
