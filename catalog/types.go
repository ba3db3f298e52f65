package catalog

import (
	"image"
	"image/color"
	"strings"
)

// DefaultPack is the pack assumed for placed objects saved before packs existed.
const DefaultPack = "DefaultPack"

// ColliderKind selects the collision shape attached to a placed object.
type ColliderKind int

const (
	ColliderNone ColliderKind = iota
	ColliderBox
	ColliderCircle
	ColliderPolygon
)

func (k ColliderKind) String() string {
	switch k {
	case ColliderBox:
		return "BoxCollider"
	case ColliderCircle:
		return "CircleCollider"
	case ColliderPolygon:
		return "PolygonCollider"
	default:
		return "None"
	}
}

// ParseColliderKind maps the Data.json collider name to a kind. Unknown
// names map to ColliderNone.
func ParseColliderKind(s string) ColliderKind {
	switch strings.TrimSpace(s) {
	case "BoxCollider":
		return ColliderBox
	case "CircleCollider":
		return ColliderCircle
	case "PolygonCollider":
		return ColliderPolygon
	default:
		return ColliderNone
	}
}

func (k ColliderKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ColliderKind) UnmarshalText(b []byte) error {
	*k = ParseColliderKind(string(b))
	return nil
}

// Color is an 8-bit RGBA tint as stored in Data.json.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// White is the opaque white tint.
var White = Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Key identifies an object definition. IDs are only unique within a pack.
type Key struct {
	ID   int
	Pack string
}

// Definition is the metadata of one placeable object kind.
type Definition struct {
	ID          int          `json:"ID"`
	Type        string       `json:"ObjectType"`
	Name        string       `json:"ObjectName"`
	SpriteSize  int          `json:"SpriteSize"`
	Tint        Color        `json:"SpriteTint"`
	Collider    ColliderKind `json:"ObjectCollider"`
	MaxPerScene int          `json:"MaxPerScene"`
	// Pack is taken from the directory the definition was loaded from.
	Pack string `json:"-"`
}

func (d Definition) Key() Key {
	return Key{ID: d.ID, Pack: d.Pack}
}

// Entry is a loaded definition plus its sprite.
type Entry struct {
	Definition
	Image *image.NRGBA
}

// Background is a named backdrop image.
type Background struct {
	Name  string
	Image *image.NRGBA
}

// Tab is a label used to group entries in the object browser. Entries are
// shown under the tab whose label equals their Type.
type Tab struct {
	Label string `json:"tab"`
}

type tabFile struct {
	TabList []Tab `json:"tabList"`
}
