package editor

import (
	"github.com/milk9111/mapeditor/mapdoc"
)

// MapRef is one entry of the map selection list.
type MapRef struct {
	Name string
	Path string
}

// MapList peeks the name of every map in the content root. Files that can't
// be read are skipped with a warning.
func (s *Session) MapList() ([]MapRef, error) {
	paths, err := s.cat.ListMapPaths()
	if err != nil {
		return nil, err
	}
	refs := make([]MapRef, 0, len(paths))
	for _, p := range paths {
		name, err := mapdoc.PeekName(p)
		if err != nil {
			s.log.Warn().Err(err).Str("path", p).Msg("skipping unreadable map")
			continue
		}
		refs = append(refs, MapRef{Name: name, Path: p})
	}
	return refs, nil
}

// LoadMap replaces the current document with the map stored under name.
// Objects that no longer resolve against the catalog, or that sit on a cell
// already taken, are dropped, logged and returned; the load still succeeds.
func (s *Session) LoadMap(name string) ([]mapdoc.PlacedObject, error) {
	return s.LoadMapFile(s.mapPath(name))
}

// LoadMapFile is LoadMap for an explicit path, as returned by MapList.
func (s *Session) LoadMapFile(path string) ([]mapdoc.PlacedObject, error) {
	doc, orphans, err := mapdoc.LoadFile(path, s.cat)
	if err != nil {
		return nil, err
	}
	for _, o := range orphans {
		msg := "missing object in map, dropped"
		if _, ok := s.cat.FindObject(o.ObjectID, o.Pack); ok {
			msg = "overlapping object in map, dropped"
		}
		s.log.Warn().
			Str("map", doc.Name).
			Int("objectId", o.ObjectID).
			Str("pack", o.Pack).
			Interface("position", o.Position).
			Msg(msg)
	}
	if doc.Background != "" {
		if _, ok := s.cat.FindBackground(doc.Background); !ok {
			s.log.Warn().Str("map", doc.Name).Str("background", doc.Background).Msg("missing background")
		}
	}
	s.engine.SetDocument(doc)
	s.log.Info().Str("map", doc.Name).Int("objects", doc.Len()).Int("dropped", len(orphans)).Msg("map loaded")
	return orphans, nil
}

// SaveMap stores the current document under name, which also becomes the
// document's name.
func (s *Session) SaveMap(name string) (string, error) {
	if err := mapdoc.ValidateName(name); err != nil {
		return "", err
	}
	doc := s.Document()
	named := *doc
	named.Name = name
	path, err := mapdoc.SaveFile(s.cat.MapsDir(), &named)
	if err != nil {
		return "", err
	}
	doc.Name = name
	s.log.Info().Str("map", name).Str("path", path).Int("objects", doc.Len()).Msg("map saved")
	return path, nil
}
