// Package catalog loads placeable object definitions, backgrounds and tabs
// from a content root laid out as
//
//	Objects/<pack>/<object>/{Data.json,Sprite.png}
//	Backgrounds/<name>.png
//	Maps/<map>.json
//	Tabs/tabs.json
//
// A Catalog is built once and is read-only afterwards.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

const (
	ObjectsDir     = "Objects"
	BackgroundsDir = "Backgrounds"
	MapsDir        = "Maps"
	TabsDir        = "Tabs"
	TabsFile       = "tabs.json"
	DataFile       = "Data.json"
	SpriteFile     = "Sprite.png"
)

// Catalog indexes everything found under a content root.
type Catalog struct {
	root        string
	packs       []string
	entries     []*Entry
	byPack      map[string]map[int]*Entry
	backgrounds []*Background
	tabs        []Tab
	log         zerolog.Logger
}

// Load builds a catalog from root. Any ConfigError aborts the load.
func Load(root string, logger zerolog.Logger) (*Catalog, error) {
	c := &Catalog{
		root:   root,
		byPack: make(map[string]map[int]*Entry),
		log:    logger.With().Str("component", "catalog").Logger(),
	}
	if err := c.loadObjects(); err != nil {
		return nil, err
	}
	if err := c.loadBackgrounds(); err != nil {
		return nil, err
	}
	if err := c.loadTabs(); err != nil {
		return nil, err
	}
	c.log.Info().
		Int("objects", len(c.entries)).
		Int("packs", len(c.packs)).
		Int("backgrounds", len(c.backgrounds)).
		Int("tabs", len(c.tabs)).
		Msg("catalog loaded")
	return c, nil
}

// FromEntries builds an in-memory catalog with no content root, used to
// preview sliced tiles before they are written. Packs are ordered by first
// appearance.
func FromEntries(entries []*Entry, backgrounds []*Background, tabs []Tab) (*Catalog, error) {
	c := &Catalog{
		byPack:      make(map[string]map[int]*Entry),
		backgrounds: backgrounds,
		tabs:        tabs,
		log:         zerolog.Nop(),
	}
	for _, e := range entries {
		if c.byPack[e.Pack] == nil {
			c.byPack[e.Pack] = make(map[int]*Entry)
			c.packs = append(c.packs, e.Pack)
		}
		if _, ok := c.byPack[e.Pack][e.ID]; ok {
			return nil, configErr(e.Pack, "duplicate id %d in pack %q", e.ID, e.Pack)
		}
		c.byPack[e.Pack][e.ID] = e
		c.entries = append(c.entries, e)
	}
	return c, nil
}

func (c *Catalog) loadObjects() error {
	objectsRoot := filepath.Join(c.root, ObjectsDir)
	packDirs, err := subdirs(objectsRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.log.Warn().Str("path", objectsRoot).Msg("no objects folder")
			return nil
		}
		return &ConfigError{Path: objectsRoot, Err: err}
	}

	for _, pack := range packDirs {
		packPath := filepath.Join(objectsRoot, pack)
		objectDirs, err := subdirs(packPath)
		if err != nil {
			return &ConfigError{Path: packPath, Err: err}
		}
		c.packs = append(c.packs, pack)
		if c.byPack[pack] == nil {
			c.byPack[pack] = make(map[int]*Entry)
		}
		for _, dir := range objectDirs {
			entry, err := c.loadObject(filepath.Join(packPath, dir), pack)
			if err != nil {
				c.log.Error().Err(err).Str("pack", pack).Str("object", dir).Msg("object load failed")
				return err
			}
			if prev, ok := c.byPack[pack][entry.ID]; ok {
				return configErr(filepath.Join(packPath, dir), "duplicate id %d in pack %q (also used by %q)", entry.ID, pack, prev.Name)
			}
			c.byPack[pack][entry.ID] = entry
			c.entries = append(c.entries, entry)
		}
	}
	return nil
}

func (c *Catalog) loadObject(dir, pack string) (*Entry, error) {
	jsonFiles, err := filesWithExt(dir, ".json")
	if err != nil {
		return nil, &ConfigError{Path: dir, Err: err}
	}
	switch {
	case len(jsonFiles) == 0:
		return nil, configErr(dir, "no .json file in object folder")
	case len(jsonFiles) > 1:
		return nil, configErr(dir, "more than one .json file in object folder: %s", strings.Join(jsonFiles, ", "))
	}

	dataPath := filepath.Join(dir, jsonFiles[0])
	raw, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, &ConfigError{Path: dataPath, Err: err}
	}
	var def Definition
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, &ConfigError{Path: dataPath, Err: fmt.Errorf("unmarshal object data: %w", err)}
	}
	def.Pack = pack

	spritePath, err := spriteFor(dir)
	if err != nil {
		return nil, err
	}
	img, err := ReadPNG(spritePath)
	if err != nil {
		return nil, &ConfigError{Path: spritePath, Err: err}
	}

	return &Entry{Definition: def, Image: img}, nil
}

// spriteFor prefers Sprite.png and falls back to the first PNG by name.
func spriteFor(dir string) (string, error) {
	pngs, err := filesWithExt(dir, ".png")
	if err != nil {
		return "", &ConfigError{Path: dir, Err: err}
	}
	if len(pngs) == 0 {
		return "", configErr(dir, "no .png sprite in object folder")
	}
	for _, name := range pngs {
		if name == SpriteFile {
			return filepath.Join(dir, name), nil
		}
	}
	return filepath.Join(dir, pngs[0]), nil
}

func (c *Catalog) loadBackgrounds() error {
	dir := filepath.Join(c.root, BackgroundsDir)
	names, err := filesWithExt(dir, ".png")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &ConfigError{Path: dir, Err: err}
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		img, err := ReadPNG(path)
		if err != nil {
			return &ConfigError{Path: path, Err: err}
		}
		c.backgrounds = append(c.backgrounds, &Background{
			Name:  strings.TrimSuffix(name, filepath.Ext(name)),
			Image: img,
		})
	}
	return nil
}

func (c *Catalog) loadTabs() error {
	path := filepath.Join(c.root, TabsDir, TabsFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.log.Warn().Str("path", path).Msg("no tabs file")
			return nil
		}
		return &ConfigError{Path: path, Err: err}
	}
	var tf tabFile
	if err := json.Unmarshal(raw, &tf); err != nil {
		return &ConfigError{Path: path, Err: fmt.Errorf("unmarshal tabs: %w", err)}
	}
	c.tabs = tf.TabList
	return nil
}

// ListMapPaths returns the full paths of all map files without loading them.
func (c *Catalog) ListMapPaths() ([]string, error) {
	dir := c.MapsDir()
	names, err := filesWithExt(dir, ".json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths, nil
}

// FindObject returns the entry with the given id in the given pack.
func (c *Catalog) FindObject(id int, pack string) (*Entry, bool) {
	if c == nil {
		return nil, false
	}
	e, ok := c.byPack[pack][id]
	return e, ok
}

// FindByName returns the first entry with the given object name.
func (c *Catalog) FindByName(name string) (*Entry, bool) {
	if c == nil {
		return nil, false
	}
	for _, e := range c.entries {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// FindBackground returns the background with the given name.
func (c *Catalog) FindBackground(name string) (*Background, bool) {
	if c == nil {
		return nil, false
	}
	for _, b := range c.backgrounds {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Entries returns all entries in load order (pack, then object folder name).
func (c *Catalog) Entries() []*Entry {
	out := make([]*Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Packs() []string {
	return append([]string(nil), c.packs...)
}

func (c *Catalog) Backgrounds() []*Background {
	return append([]*Background(nil), c.backgrounds...)
}

func (c *Catalog) Tabs() []Tab {
	return append([]Tab(nil), c.tabs...)
}

func (c *Catalog) Root() string {
	return c.root
}

func (c *Catalog) MapsDir() string {
	return filepath.Join(c.root, MapsDir)
}

func (c *Catalog) ObjectsDir() string {
	return filepath.Join(c.root, ObjectsDir)
}

func subdirs(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range ents {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

func filesWithExt(dir, ext string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}
