package synth

import "sort"

// Node is one point of a note or rail: x/y in editor grid squares
// (+x right, +y up), T in beats since the start of the selection.
type Node struct {
	X, Y, T float64
}

// Rail is an ordered sequence of nodes sharing one color. Length 1 is a
// single note. Node times are non-decreasing and the rail's key in its
// owning map equals the head's time.
type Rail []Node

// Head returns the first node.
func (r Rail) Head() Node { return r[0] }

// Tail returns the last node.
func (r Rail) Tail() Node { return r[len(r)-1] }

// Clone returns an independent copy of the rail.
func (r Rail) Clone() Rail {
	out := make(Rail, len(r))
	copy(out, r)
	return out
}

// Wall is an oriented wall object placed at one point in time.
// Rotation is counterclockwise degrees.
type Wall struct {
	X, Y, T  float64
	Type     WallType
	Rotation float64
}

// NoteMap maps head time in beats to the rail starting there.
type NoteMap map[float64]Rail

// WallMap maps time in beats to the wall at that time. At most one wall per
// time; callers resolve collisions via FindFreeSlot or InsertWall.
type WallMap map[float64]Wall

// SortedTimes returns the map keys in ascending order. The topology and
// pattern algorithms require this ordering for correctness.
func (m NoteMap) SortedTimes() []float64 {
	out := make([]float64, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	sort.Float64s(out)
	return out
}

// SortedTimes returns the wall times in ascending order.
func (m WallMap) SortedTimes() []float64 {
	out := make([]float64, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	sort.Float64s(out)
	return out
}

// Sorted returns the walls in ascending time order.
func (m WallMap) Sorted() []Wall {
	out := make([]Wall, 0, len(m))
	for _, t := range m.SortedTimes() {
		out = append(out, m[t])
	}
	return out
}

// Clone returns an independent copy of the map. Rails are shared, they are
// immutable by contract.
func (m NoteMap) Clone() NoteMap {
	out := make(NoteMap, len(m))
	for t, r := range m {
		out[t] = r
	}
	return out
}

// Clone returns an independent copy of the map.
func (m WallMap) Clone() WallMap {
	out := make(WallMap, len(m))
	for t, w := range m {
		out[t] = w
	}
	return out
}
