package compiler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/cory-johannsen/mapcompiler/internal/mapdata"
)

// Assembler performs one full rebuild of the aggregated map document from
// a content tree. Every run rebuilds from scratch; no state is carried
// between runs, so re-running is always safe.
type Assembler struct {
	fs       afero.Fs
	settings mapdata.Settings
	logger   *zap.Logger
}

// New constructs an Assembler.
//
// Precondition: fsys, settings, and logger must be non-nil/populated.
// Postcondition: returns a non-nil Assembler.
func New(fsys afero.Fs, settings mapdata.Settings, logger *zap.Logger) *Assembler {
	return &Assembler{fs: fsys, settings: settings, logger: logger}
}

// Assemble runs a full rebuild over the content tree rooted at root.
//
// A missing region manifest is the only fatal condition. A missing room
// list leaves its region empty; a missing, unreadable, or geometry-less
// room file is skipped. Region and room order follow the manifests; no
// sorting or deduplication is performed.
func (a *Assembler) Assemble(root string) (*Document, error) {
	s := a.settings

	positions := mapdata.LoadRegionPositions(a.fs, filepath.Join(root, s.RegionPosFile), a.logger)
	a.logger.Info("loaded region positions", zap.Int("count", len(positions)))

	regions, err := a.readRegionManifest(filepath.Join(root, s.RegionManifest))
	if err != nil {
		return nil, err
	}
	a.logger.Info("found regions",
		zap.Int("count", len(regions)),
		zap.String("regions", strings.Join(regions, ", ")),
	)

	doc := &Document{
		Version:         s.Version,
		TileSize:        s.TileSize,
		RegionPositions: positions,
		Rooms:           RegionRoomsList{},
	}
	for _, region := range regions {
		code := s.RegionCode(region)
		rooms := a.assembleRegion(root, region, code, positions)
		doc.Rooms = append(doc.Rooms, RegionRooms{Code: code, Rooms: rooms})
		doc.TotalRooms += len(rooms)
		a.logger.Info("region assembled",
			zap.String("region", code),
			zap.Int("rooms", len(rooms)),
		)
	}
	return doc, nil
}

// readRegionManifest reads the ordered list of region identifiers, one per
// non-blank line.
func (a *Assembler) readRegionManifest(path string) ([]string, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading region manifest %s: %w", path, err)
	}
	var regions []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			regions = append(regions, line)
		}
	}
	return regions, nil
}

// assembleRegion parses every room listed in the region's room manifest
// and attaches world positions when the region's grid position is known.
// All failures below the region manifest are per-item skips.
func (a *Assembler) assembleRegion(root, region, code string, positions map[string]mapdata.RegionPosition) []*mapdata.RoomRecord {
	s := a.settings

	listPath := filepath.Join(root, region, s.RoomListName(code))
	names, err := a.readRoomList(listPath)
	if err != nil {
		a.logger.Warn("room list not found",
			zap.String("region", code),
			zap.String("path", listPath),
			zap.Error(err),
		)
		return nil
	}

	regionPos, hasPos := positions[code]

	var rooms []*mapdata.RoomRecord
	for _, name := range names {
		path := filepath.Join(root, region, name+s.RoomExt)
		if exists, _ := afero.Exists(a.fs, path); !exists {
			continue
		}
		res := mapdata.ParseRoomFile(a.fs, path, s)
		if !res.OK() {
			if res.Err != nil {
				a.logger.Error("room file unreadable",
					zap.String("path", path),
					zap.Error(res.Err),
				)
			} else {
				a.logger.Debug("room skipped",
					zap.String("path", path),
					zap.String("reason", string(res.Reason)),
				)
			}
			continue
		}
		room := res.Room
		if hasPos {
			wp := mapdata.WorldPosition(regionPos.Point(), room.Position, s.TileSize)
			room.WorldPos = &wp
		}
		// Geometry is intermediate-only; the document carries outlines.
		room.TileMap = nil
		rooms = append(rooms, room)
	}
	return rooms
}

// readRoomList reads a region's room manifest: one room name per line,
// blank lines and header lines skipped, a trailing room-file extension
// stripped when present.
func (a *Assembler) readRoomList(path string) ([]string, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, a.settings.HeaderPrefix) {
			continue
		}
		names = append(names, strings.TrimSuffix(line, a.settings.RoomExt))
	}
	return names, nil
}
