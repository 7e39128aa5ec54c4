package mapdata

import "strings"

// Settings holds the compiled-in map conventions: the tile scale, the glyph
// set, the content tree layout, and the renderer color table. A Settings
// value is built once at startup and treated as immutable; there is no
// package-level state.
type Settings struct {
	// Version is the format tag written into the output document.
	Version string
	// TileSize is the scale factor from grid units to render-space pixels.
	TileSize int
	// TileGlyphs are the characters that open a tile-geometry line.
	TileGlyphs string
	// TileColors maps each glyph to its display color. The compiler never
	// reads it; it is carried for the renderer.
	TileColors map[string]string
	// RegionManifest names the file listing the regions to process,
	// relative to the content root.
	RegionManifest string
	// RegionPosFile names the file mapping region codes to grid positions.
	RegionPosFile string
	// HeaderPrefix marks room-list lines that are headers, not room names.
	// It is also the leading component of room-list file names.
	HeaderPrefix string
	// RegionSuffix is stripped from a region identifier to get its code.
	RegionSuffix string
	// RoomExt is the file extension of room description files.
	RoomExt string
}

// DefaultSettings returns the conventions of the content tree as authored.
func DefaultSettings() Settings {
	return Settings{
		Version:    "1.0",
		TileSize:   15,
		TileGlyphs: ".#|+-=HV/",
		TileColors: map[string]string{
			".": "#1a1a1a",
			"#": "#444",
			"|": "#666",
			"-": "#666",
			"+": "#888",
			"=": "#666",
			"/": "#555",
			"H": "#ff6600",
		},
		RegionManifest: "regions.txt",
		RegionPosFile:  "region_pos.txt",
		HeaderPrefix:   "cf-",
		RegionSuffix:   "-rooms",
		RoomExt:        ".txt",
	}
}

// RegionCode returns the short code for a region identifier, e.g.
// "harbor-rooms" -> "harbor".
func (s Settings) RegionCode(region string) string {
	return strings.TrimSuffix(region, s.RegionSuffix)
}

// RoomListName returns the room-list manifest file name for a region code,
// e.g. "harbor" -> "cf-harbor-rooms.txt".
func (s Settings) RoomListName(code string) string {
	return s.HeaderPrefix + code + s.RegionSuffix + s.RoomExt
}
