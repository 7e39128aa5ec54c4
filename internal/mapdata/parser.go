package mapdata

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// declMarker opens a room declaration line.
const declMarker = "Piece :"

// endMarker terminates a room file; anything after it is ignored.
const endMarker = "end file :"

// signedInt extracts signed integer tokens from coordinate text.
var signedInt = regexp.MustCompile(`-?\d+`)

// SkipReason explains why a room file yielded no usable record.
type SkipReason string

const (
	// SkipNoGeometry means the file contained no recognizable size line.
	SkipNoGeometry SkipReason = "no size line"
	// SkipUnreadable means the file could not be read or decoded.
	SkipUnreadable SkipReason = "unreadable"
)

// RoomResult is the outcome of parsing one room file: either a usable
// record, or a skip reason (and, for read failures, the underlying error).
type RoomResult struct {
	Room   *RoomRecord
	Reason SkipReason
	Err    error
}

// OK reports whether the parse produced a usable record.
func (r RoomResult) OK() bool {
	return r.Room != nil
}

// parseState is the per-file accumulator threaded through the classifier
// rules.
type parseState struct {
	room   RoomRecord
	glyphs string
	named  bool
	done   bool
}

// lineRule is one named line classifier. Rules run in a fixed priority
// order per line; the first rule that claims a line handles it and
// classification stops. Lines no rule claims are skipped.
type lineRule struct {
	name  string
	apply func(st *parseState, raw, stripped string) bool
}

// roomLineRules is the classifier chain, in priority order. The order is
// load-bearing: whether a "12x3" line is a size or a position depends on
// whether an earlier line already set the size.
var roomLineRules = []lineRule{
	{name: "declaration", apply: applyDeclaration},
	{name: "size", apply: applySize},
	{name: "position", apply: applyPosition},
	{name: "tile", apply: applyTile},
	{name: "end-marker", apply: applyEndMarker},
}

// applyDeclaration handles "Piece : <fullName>" lines. The first
// declaration wins; later ones are claimed but ignored.
func applyDeclaration(st *parseState, _, stripped string) bool {
	if !strings.HasPrefix(stripped, declMarker) {
		return false
	}
	if st.named {
		return true
	}
	st.room.FullName = strings.TrimSpace(stripped[len(declMarker):])
	st.room.Name = DisplayName(st.room.FullName)
	st.named = true
	return true
}

// applySize handles "WxH" lines: digits and 'x' only, exactly two numeric
// parts. Once the size is set the rule stands down, so a later dash-free
// coordinate line falls through to the position rule.
func applySize(st *parseState, _, stripped string) bool {
	if st.room.Width > 0 || stripped == "" {
		return false
	}
	if !consistsOf(stripped, "0123456789x") || !strings.Contains(stripped, "x") {
		return false
	}
	parts := strings.Split(stripped, "x")
	if len(parts) != 2 || !isDigits(parts[0]) || !isDigits(parts[1]) {
		return false
	}
	st.room.Width, _ = strconv.Atoi(parts[0])
	st.room.Height, _ = strconv.Atoi(parts[1])
	return true
}

// applyPosition handles region-offset lines: digits, 'x', and '-' only,
// considered only once the size is known. The line must carry exactly two
// signed integer tokens.
func applyPosition(st *parseState, _, stripped string) bool {
	if st.room.Width == 0 || stripped == "" {
		return false
	}
	if !consistsOf(stripped, "0123456789x-") || !strings.Contains(stripped, "x") {
		return false
	}
	tokens := signedInt.FindAllString(stripped, -1)
	if len(tokens) != 2 {
		return true
	}
	st.room.Position.X, _ = strconv.Atoi(tokens[0])
	st.room.Position.Y, _ = strconv.Atoi(tokens[1])
	return true
}

// applyTile collects geometry lines, identified by their first
// non-whitespace character. The raw line is kept verbatim so indentation
// survives. Tile lines are collected anywhere in the file, not just in one
// contiguous block.
func applyTile(st *parseState, raw, stripped string) bool {
	if stripped == "" || !strings.ContainsRune(st.glyphs, rune(stripped[0])) {
		return false
	}
	st.room.TileMap = append(st.room.TileMap, raw)
	return true
}

// applyEndMarker stops the parse; remaining lines are ignored.
func applyEndMarker(st *parseState, _, stripped string) bool {
	if !strings.Contains(stripped, endMarker) {
		return false
	}
	st.done = true
	return true
}

// ParseRoom extracts a room record from the content of one room
// description file. Each line is classified independently by the rule
// chain in a single forward pass; there is no backtracking.
//
// Postcondition: returns a result with a non-nil Room when a size line was
// found, or SkipNoGeometry otherwise. Never returns an error.
func ParseRoom(content []byte, s Settings) RoomResult {
	st := parseState{glyphs: s.TileGlyphs}
	for _, line := range strings.Split(string(content), "\n") {
		stripped := strings.TrimSpace(line)
		for _, rule := range roomLineRules {
			if rule.apply(&st, line, stripped) {
				break
			}
		}
		if st.done {
			break
		}
	}
	if st.room.Width == 0 {
		return RoomResult{Reason: SkipNoGeometry}
	}
	room := st.room
	return RoomResult{Room: &room}
}

// ParseRoomFile reads and parses a single room description file. Read
// failures are converted into a skip result, never propagated.
func ParseRoomFile(fsys afero.Fs, path string, s Settings) RoomResult {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return RoomResult{Reason: SkipUnreadable, Err: err}
	}
	return ParseRoom(data, s)
}

func consistsOf(s, set string) bool {
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(set, s[i]) < 0 {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	return s != "" && consistsOf(s, "0123456789")
}
