package editor

import "github.com/milk9111/mapeditor/catalog"

// Tab returns the selected tab label.
func (s *Session) Tab() string {
	return s.tab
}

// Pack returns the selected pack.
func (s *Session) Pack() string {
	return s.pack
}

func (s *Session) SetTab(label string) {
	s.tab = label
}

func (s *Session) SetPack(pack string) {
	s.pack = pack
}

// Visible lists the entries shown for the selected tab and pack: entries
// whose Type equals the tab label and whose pack matches.
func (s *Session) Visible() []*catalog.Entry {
	var out []*catalog.Entry
	for _, e := range s.cat.Entries() {
		if e.Type == s.tab && e.Pack == s.pack {
			out = append(out, e)
		}
	}
	return out
}

// Selectable reports whether the browser should enable the entry's button.
func (s *Session) Selectable(key catalog.Key) bool {
	return s.engine.CanPlace(key.ID, key.Pack)
}

// Bind associates a UI handle with a catalog key. UI callbacks look the
// handle up by key instead of capturing loop variables.
func (s *Session) Bind(key catalog.Key, handle any) {
	s.handles[key] = handle
}

// Handle returns the UI handle bound to key.
func (s *Session) Handle(key catalog.Key) (any, bool) {
	h, ok := s.handles[key]
	return h, ok
}

// Unbind drops every UI handle, e.g. when the browser is repopulated.
func (s *Session) Unbind() {
	s.handles = make(map[catalog.Key]any)
}
