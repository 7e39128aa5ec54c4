package compiler_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mapcompiler/internal/compiler"
	"github.com/cory-johannsen/mapcompiler/internal/mapdata"
)

const lighthouseRoom = `Piece : cf-harbor_Lighthouse
10x8
1x1
.########.
#........#
.########.
end file :
`

const groveRoom = `Piece : cf-forest_Grove
6x6
-2x4
.####.
#....#
.####.
`

func writeFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0644))
}

// contentTree builds the standard two-region fixture: harbor has a known
// position and two listed rooms of which one is missing on disk; forest
// has no position entry.
func contentTree(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "map/regions.txt", "harbor-rooms\nforest-rooms\n")
	writeFile(t, fsys, "map/region_pos.txt", "harbor: 2,3\n")
	writeFile(t, fsys, "map/harbor-rooms/cf-harbor-rooms.txt", "cf-harbor room list\nLighthouse.txt\nJetty\n")
	writeFile(t, fsys, "map/harbor-rooms/Lighthouse.txt", lighthouseRoom)
	writeFile(t, fsys, "map/forest-rooms/cf-forest-rooms.txt", "Grove\n")
	writeFile(t, fsys, "map/forest-rooms/Grove.txt", groveRoom)
	return fsys
}

func newAssembler(fsys afero.Fs) *compiler.Assembler {
	return compiler.New(fsys, mapdata.DefaultSettings(), zap.NewNop())
}

func TestAssemble_EndToEnd(t *testing.T) {
	doc, err := newAssembler(contentTree(t)).Assemble("map")
	require.NoError(t, err)

	assert.Equal(t, "1.0", doc.Version)
	assert.Equal(t, 15, doc.TileSize)
	assert.Equal(t, 2, doc.TotalRooms)

	require.Len(t, doc.Rooms, 2)
	assert.Equal(t, "harbor", doc.Rooms[0].Code)
	assert.Equal(t, "forest", doc.Rooms[1].Code)

	require.Len(t, doc.Rooms[0].Rooms, 1)
	lighthouse := doc.Rooms[0].Rooms[0]
	assert.Equal(t, "Lighthouse", lighthouse.Name)
	require.NotNil(t, lighthouse.WorldPos)
	assert.Equal(t, mapdata.Point{X: 45, Y: 60}, *lighthouse.WorldPos)
	assert.Nil(t, lighthouse.TileMap, "geometry must be stripped before aggregation")

	require.Len(t, doc.Rooms[1].Rooms, 1)
	grove := doc.Rooms[1].Rooms[0]
	assert.Equal(t, "Grove", grove.Name)
	assert.Nil(t, grove.WorldPos, "region without a position entry must leave rooms unplaced")
}

func TestAssemble_MissingRegionManifest(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "map/region_pos.txt", "harbor: 2,3\n")

	_, err := newAssembler(fsys).Assemble("map")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region manifest")
}

func TestAssemble_MissingRoomList(t *testing.T) {
	fsys := contentTree(t)
	require.NoError(t, fsys.Remove("map/forest-rooms/cf-forest-rooms.txt"))

	doc, err := newAssembler(fsys).Assemble("map")
	require.NoError(t, err)

	assert.Equal(t, 1, doc.TotalRooms)
	require.Len(t, doc.Rooms, 2)
	assert.Equal(t, "forest", doc.Rooms[1].Code)
	assert.Empty(t, doc.Rooms[1].Rooms)
}

func TestAssemble_MissingRegionPositionFile(t *testing.T) {
	fsys := contentTree(t)
	require.NoError(t, fsys.Remove("map/region_pos.txt"))

	doc, err := newAssembler(fsys).Assemble("map")
	require.NoError(t, err)

	assert.Empty(t, doc.RegionPositions)
	for _, rr := range doc.Rooms {
		for _, room := range rr.Rooms {
			assert.Nil(t, room.WorldPos)
		}
	}
}

func TestAssemble_GeometrylessRoomSkipped(t *testing.T) {
	fsys := contentTree(t)
	writeFile(t, fsys, "map/forest-rooms/Grove.txt", "Piece : cf-forest_Grove\nno size here\n")

	doc, err := newAssembler(fsys).Assemble("map")
	require.NoError(t, err)

	assert.Equal(t, 1, doc.TotalRooms)
	assert.Empty(t, doc.Rooms[1].Rooms)
}

func TestAssemble_DuplicateManifestEntries(t *testing.T) {
	fsys := contentTree(t)
	writeFile(t, fsys, "map/harbor-rooms/cf-harbor-rooms.txt", "Lighthouse\nLighthouse\n")

	doc, err := newAssembler(fsys).Assemble("map")
	require.NoError(t, err)

	require.Len(t, doc.Rooms[0].Rooms, 2)
	assert.Equal(t, 3, doc.TotalRooms)
}

func TestAssemble_RoomOrderFollowsManifest(t *testing.T) {
	fsys := contentTree(t)
	writeFile(t, fsys, "map/harbor-rooms/cf-harbor-rooms.txt", "Beacon\nLighthouse\n")
	writeFile(t, fsys, "map/harbor-rooms/Beacon.txt", "Piece : cf-harbor_Beacon\n4x4\n####\n")

	doc, err := newAssembler(fsys).Assemble("map")
	require.NoError(t, err)

	require.Len(t, doc.Rooms[0].Rooms, 2)
	assert.Equal(t, "Beacon", doc.Rooms[0].Rooms[0].Name)
	assert.Equal(t, "Lighthouse", doc.Rooms[0].Rooms[1].Name)
}

func TestAssemble_Idempotent(t *testing.T) {
	fsys := contentTree(t)

	first, err := newAssembler(fsys).Assemble("map")
	require.NoError(t, err)
	second, err := newAssembler(fsys).Assemble("map")
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

// TestAssemble_NRoomsCounted is a property-based test: a manifest listing
// N valid rooms yields exactly N records and TotalRooms == N.
func TestAssemble_NRoomsCounted(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "numRooms")

		fsys := afero.NewMemMapFs()
		if err := afero.WriteFile(fsys, "map/regions.txt", []byte("harbor-rooms\n"), 0644); err != nil {
			rt.Fatal(err)
		}
		manifest := ""
		for i := 0; i < n; i++ {
			name := fmt.Sprintf("Room%d", i)
			manifest += name + "\n"
			room := fmt.Sprintf("Piece : cf-harbor_%s\n5x5\n%dx%d\n####\n", name, i, -i)
			if err := afero.WriteFile(fsys, "map/harbor-rooms/"+name+".txt", []byte(room), 0644); err != nil {
				rt.Fatal(err)
			}
		}
		if err := afero.WriteFile(fsys, "map/harbor-rooms/cf-harbor-rooms.txt", []byte(manifest), 0644); err != nil {
			rt.Fatal(err)
		}

		doc, err := newAssembler(fsys).Assemble("map")
		if err != nil {
			rt.Fatal(err)
		}
		assert.Equal(rt, n, doc.TotalRooms)
		assert.Equal(rt, n, len(doc.Rooms[0].Rooms))
	})
}
