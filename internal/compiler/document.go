// Package compiler assembles parsed map content into the single aggregated
// JSON document the map client consumes.
package compiler

import (
	"bytes"
	"encoding/json"

	"github.com/cory-johannsen/mapcompiler/internal/mapdata"
)

// Document is the aggregated output of one full rebuild.
//
// Invariant: TotalRooms equals the sum of the per-region room counts, and
// every room's WorldPos (when present) is consistent with its region's
// entry in RegionPositions.
type Document struct {
	Version         string                            `json:"version"`
	TileSize        int                               `json:"tileSize"`
	RegionPositions map[string]mapdata.RegionPosition `json:"regionPositions"`
	Rooms           RegionRoomsList                   `json:"rooms"`
	TotalRooms      int                               `json:"totalRooms"`
}

// RegionRooms holds one region's rooms in room-manifest order. A region
// whose room list was missing or empty still appears, with no rooms.
type RegionRooms struct {
	Code  string
	Rooms []*mapdata.RoomRecord
}

// RegionRoomsList preserves region-manifest order. It serialises as a JSON
// object whose keys appear in list order, so repeated runs over unchanged
// inputs produce byte-identical output.
type RegionRoomsList []RegionRooms

// MarshalJSON implements json.Marshaler. Regions with no rooms serialise
// as empty arrays, never null.
func (l RegionRoomsList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rr := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(rr.Code)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		rooms := rr.Rooms
		if rooms == nil {
			rooms = []*mapdata.RoomRecord{}
		}
		val, err := json.Marshal(rooms)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
