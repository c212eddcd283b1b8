// Package movement implements the geometric transforms for note/rail node
// sequences and walls: offset, scale, rotate and outset, each with absolute,
// pivot and relative-to-first-node variants.
//
// None of these functions modify their input; they always return a fresh
// slice. Callers rely on passing the same rail through several transforms
// and comparing before and after.
package movement

import (
	"errors"
	"math"

	"git.lost.host/meutraa/remap/internal/synth"
)

// ErrZeroTimeScale is returned when a scale would collapse the time axis.
var ErrZeroTimeScale = errors.New("movement: cannot have 0 for time scale")

// Offset translates every node by the given x/y/t delta.
func Offset(nodes synth.Rail, delta [3]float64) synth.Rail {
	out := make(synth.Rail, len(nodes))
	for i, n := range nodes {
		out[i] = synth.Node{X: n.X + delta[0], Y: n.Y + delta[1], T: n.T + delta[2]}
	}
	return out
}

// Scale multiplies every node elementwise by the given x/y/t factors.
// A negative time factor reverses the node order so the result stays in
// chronological order. A zero time factor is an error.
func Scale(nodes synth.Rail, scale [3]float64) (synth.Rail, error) {
	if scale[2] == 0 {
		return nil, ErrZeroTimeScale
	}
	out := make(synth.Rail, len(nodes))
	for i, n := range nodes {
		out[i] = synth.Node{X: n.X * scale[0], Y: n.Y * scale[1], T: n.T * scale[2]}
	}
	if scale[2] < 0 {
		reverse(out)
	}
	return out, nil
}

// ScaleFrom scales with the given pivot as origin.
func ScaleFrom(nodes synth.Rail, scale, pivot [3]float64) (synth.Rail, error) {
	out, err := Scale(Offset(nodes, neg(pivot)), scale)
	if nil != err {
		return nil, err
	}
	return Offset(out, pivot), nil
}

// ScaleRelative scales with the rail's own first node as pivot. A single
// note has nothing to scale against and is returned unchanged.
func ScaleRelative(nodes synth.Rail, scale [3]float64) (synth.Rail, error) {
	if len(nodes) == 1 {
		return nodes, nil
	}
	h := nodes.Head()
	return ScaleFrom(nodes, scale, [3]float64{h.X, h.Y, h.T})
}

// Rotate rotates x/y counterclockwise by angle degrees around the origin.
// Time is unchanged.
func Rotate(nodes synth.Rail, angle float64) synth.Rail {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	out := make(synth.Rail, len(nodes))
	for i, n := range nodes {
		out[i] = synth.Node{X: n.X*cos - n.Y*sin, Y: n.X*sin + n.Y*cos, T: n.T}
	}
	return out
}

// RotateAround rotates around the given pivot.
func RotateAround(nodes synth.Rail, angle float64, pivot [3]float64) synth.Rail {
	return Offset(Rotate(Offset(nodes, neg(pivot)), angle), pivot)
}

// RotateRelative rotates around the rail's own first node. A single note is
// returned unchanged.
func RotateRelative(nodes synth.Rail, angle float64) synth.Rail {
	if len(nodes) == 1 {
		return nodes
	}
	h := nodes.Head()
	return RotateAround(nodes, angle, [3]float64{h.X, h.Y, h.T})
}

// Outset moves every node away from the origin by the given amount along
// its own radial direction. Nodes already at the origin stay put.
func Outset(nodes synth.Rail, amount float64) synth.Rail {
	out := make(synth.Rail, len(nodes))
	for i, n := range nodes {
		out[i] = n
		if closeToZero(n.X) && closeToZero(n.Y) {
			continue
		}
		ang := math.Atan2(n.Y, n.X)
		out[i].X += math.Cos(ang) * amount
		out[i].Y += math.Sin(ang) * amount
	}
	return out
}

// OutsetFrom outsets away from the given pivot.
func OutsetFrom(nodes synth.Rail, amount float64, pivot [3]float64) synth.Rail {
	return Offset(Outset(Offset(nodes, neg(pivot)), amount), pivot)
}

// OutsetRelative outsets away from the rail's own first node. A single note
// is returned unchanged.
func OutsetRelative(nodes synth.Rail, amount float64) synth.Rail {
	if len(nodes) == 1 {
		return nodes
	}
	h := nodes.Head()
	return OutsetFrom(nodes, amount, [3]float64{h.X, h.Y, h.T})
}

func neg(v [3]float64) [3]float64 {
	return [3]float64{-v[0], -v[1], -v[2]}
}

func reverse(nodes synth.Rail) {
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
}

func closeToZero(v float64) bool {
	return math.Abs(v) < 1e-5
}
