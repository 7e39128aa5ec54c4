package mapdata

import (
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ParseRegionPositions parses the flat region-position format: one region
// per line, "name: x,y". The coordinate portion may be arbitrary text as
// long as it carries exactly two signed integer tokens. Lines without a
// colon, or whose coordinates do not yield exactly two integers, are
// skipped; the affected region simply has no known position.
func ParseRegionPositions(data []byte) map[string]RegionPosition {
	positions := make(map[string]RegionPosition)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		name, coords, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		tokens := signedInt.FindAllString(coords, -1)
		if len(tokens) != 2 {
			continue
		}
		name = strings.TrimSpace(name)
		x, _ := strconv.Atoi(tokens[0])
		y, _ := strconv.Atoi(tokens[1])
		positions[name] = RegionPosition{X: x, Y: y, Name: name}
	}
	return positions
}

// LoadRegionPositions reads and parses the region-position file at path.
// A missing or unreadable file is not fatal: a warning is logged and an
// empty mapping returned, leaving every region without a world position.
func LoadRegionPositions(fsys afero.Fs, path string, logger *zap.Logger) map[string]RegionPosition {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		logger.Warn("region position file not found",
			zap.String("path", path),
			zap.Error(err),
		)
		return map[string]RegionPosition{}
	}
	return ParseRegionPositions(data)
}
