// Package synth implements the Synth Riders data model: grid/beat
// coordinates, the note and wall catalogs, per-difficulty containers and the
// file/clipboard codecs. Everything outside this package works exclusively
// in grid squares and beats.
package synth

// NoteType is the color/hand channel of a note or rail.
type NoteType int

const (
	NoteRight NoteType = iota
	NoteLeft
	NoteSingle
	NoteBoth
)

// NoteTypes lists every note channel in wire order.
var NoteTypes = []NoteType{NoteRight, NoteLeft, NoteSingle, NoteBoth}

var noteTypeNames = map[NoteType]string{
	NoteRight:  "right",
	NoteLeft:   "left",
	NoteSingle: "single",
	NoteBoth:   "both",
}

func (t NoteType) String() string {
	if n, ok := noteTypeNames[t]; ok {
		return n
	}
	return "unknown"
}

// NoteTypeNamed resolves a channel name used on the CLI.
func NoteTypeNamed(name string) (NoteType, bool) {
	for t, n := range noteTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// WallType is the numeric wall shape id. Ids 0-4 are the file format's
// slide sub-types; 100+ are synthetic ids for shapes the format stores in
// their own arrays.
type WallType int

const (
	WallRight  WallType = 0
	WallLeft   WallType = 1
	AngleRight WallType = 2
	WallCenter WallType = 3
	AngleLeft  WallType = 4
	Crouch     WallType = 100
	Square     WallType = 101
	Triangle   WallType = 102
)

// WallInfo is one entry of the wall catalog.
type WallInfo struct {
	Name   string
	ID     WallType
	Center [2]float64   // offset from the stored position to the visual center
	Verts  [][2]float64 // outline in grid squares, relative to center
	Mirror WallType     // partner id when mirrored across a single axis
	// Symmetry is the smallest rotation in degrees under which the shape
	// looks identical. It decides the blending rotation direction.
	Symmetry float64
}

// WallTypes is the wall catalog keyed by name.
var WallTypes = map[string]WallInfo{
	"wall_right": {
		Name: "wall_right", ID: WallRight, Center: [2]float64{4.05, 2.8},
		Verts:    [][2]float64{{-1.5, -4}, {1.5, -4}, {1.5, 4}, {-1.5, 4}},
		Mirror:   WallLeft,
		Symmetry: 360,
	},
	"wall_left": {
		Name: "wall_left", ID: WallLeft, Center: [2]float64{-4.05, 2.8},
		Verts:    [][2]float64{{-1.5, -4}, {1.5, -4}, {1.5, 4}, {-1.5, 4}},
		Mirror:   WallRight,
		Symmetry: 360,
	},
	"angle_right": {
		Name: "angle_right", ID: AngleRight, Center: [2]float64{2.5, 2.8},
		Verts:    [][2]float64{{-3, -3.5}, {-1, -3.5}, {3, 3.5}, {1, 3.5}},
		Mirror:   AngleLeft,
		Symmetry: 360,
	},
	"center": {
		Name: "center", ID: WallCenter, Center: [2]float64{0, 1.8},
		Verts:    [][2]float64{{-1, -3.5}, {1, -3.5}, {1, 3.5}, {-1, 3.5}},
		Mirror:   WallCenter,
		Symmetry: 180,
	},
	"angle_left": {
		Name: "angle_left", ID: AngleLeft, Center: [2]float64{-2.5, 2.8},
		Verts:    [][2]float64{{1, -3.5}, {3, -3.5}, {-1, 3.5}, {-3, 3.5}},
		Mirror:   AngleRight,
		Symmetry: 360,
	},
	"crouch": {
		Name: "crouch", ID: Crouch, Center: [2]float64{0, 5.3},
		Verts:    [][2]float64{{-8, -1}, {8, -1}, {8, 1}, {-8, 1}},
		Mirror:   Crouch,
		// the outline alone would be 180-symmetric, but like the side
		// walls the in-game texture distinguishes up from down
		Symmetry: 360,
	},
	"square": {
		Name: "square", ID: Square, Center: [2]float64{0, 2.8},
		Verts:    [][2]float64{{-2.5, -2.5}, {2.5, -2.5}, {2.5, 2.5}, {-2.5, 2.5}},
		Mirror:   Square,
		Symmetry: 90,
	},
	"triangle": {
		Name: "triangle", ID: Triangle, Center: [2]float64{0, 2.8},
		Verts:    [][2]float64{{-2.9, -1.7}, {2.9, -1.7}, {0, 3.4}},
		Mirror:   Triangle,
		Symmetry: 120,
	},
}

// WallLookup resolves a wall id back to its catalog entry.
var WallLookup = map[WallType]WallInfo{}

func init() {
	for _, info := range WallTypes {
		WallLookup[info.ID] = info
	}
}

// WallTypeNamed resolves a wall type by name or the name of its id.
func WallTypeNamed(name string) (WallType, bool) {
	info, ok := WallTypes[name]
	if !ok {
		return 0, false
	}
	return info.ID, true
}
