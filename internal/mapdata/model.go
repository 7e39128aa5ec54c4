// Package mapdata provides the map content model (rooms, region positions)
// and the heuristics that extract it from hand-authored text files.
package mapdata

import "strings"

// Point is an integer coordinate pair, in either region-grid or
// render-space units depending on context.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RoomRecord holds everything extracted from one room description file.
// A record is fully populated in a single parse pass and never mutated
// afterwards, except for the world position attached by the assembler.
type RoomRecord struct {
	// FullName is the identifier from the file's declaration line, e.g.
	// "cf-harbor_Lighthouse". Absent when the file carries no declaration.
	FullName string `json:"fullName,omitempty"`
	// Name is the short display name derived from FullName.
	Name string `json:"name"`
	// Width and Height are the declared room dimensions in tiles. A record
	// with Width == 0 is unusable and never enters the output document.
	Width  int `json:"width"`
	Height int `json:"height"`
	// Position is the room's offset within its region, in region-grid
	// units. Negative offsets are valid.
	Position Point `json:"position"`
	// WorldPos is the absolute render-space coordinate. Nil when the
	// owning region's position is unknown.
	WorldPos *Point `json:"worldPos,omitempty"`
	// TileMap holds the raw glyph lines collected during parsing. It only
	// exists to establish that the file had drawable content; the
	// assembler strips it before the record enters the output document.
	TileMap []string `json:"-"`
}

// RegionPosition places a named region on the region grid.
// Coordinates are grid units, not yet scaled by the tile size.
type RegionPosition struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Name string `json:"name"`
}

// Point returns the region's grid coordinate as a Point.
func (rp RegionPosition) Point() Point {
	return Point{X: rp.X, Y: rp.Y}
}

// DisplayName derives a room's short display name from its full
// identifier: the substring after the first underscore, or the identifier
// itself when it contains none.
//
// Postcondition: DisplayName("cf-harbor_Lighthouse") == "Lighthouse";
// DisplayName("Lighthouse") == "Lighthouse".
func DisplayName(fullName string) string {
	if i := strings.IndexByte(fullName, '_'); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}

// WorldPosition composes the absolute render-space coordinate for a room
// at offset local within a region positioned at regionPos.
//
// Postcondition: each axis equals (regionPos + local) * tileSize.
func WorldPosition(regionPos, local Point, tileSize int) Point {
	return Point{
		X: (regionPos.X + local.X) * tileSize,
		Y: (regionPos.Y + local.Y) * tileSize,
	}
}
