package movement

import (
	"math"

	"git.lost.host/meutraa/remap/internal/synth"
)

// Wall variants of the transforms. Walls carry a type and rotation column
// that some transforms must keep consistent: mirroring swaps the type for
// its mirror partner and adjusts the rotation, rotating adds to the
// rotation of everything except crouch walls.

// OffsetWalls translates every wall by the given delta. When relative is
// set, the x/y delta is rotated into each wall's own frame first, so
// "up" means "away from the wall's top edge" regardless of orientation.
func OffsetWalls(walls []synth.Wall, delta [3]float64, relative bool) []synth.Wall {
	out := make([]synth.Wall, len(walls))
	for i, w := range walls {
		dx, dy := delta[0], delta[1]
		if relative {
			sin, cos := math.Sincos(w.Rotation * math.Pi / 180)
			dx, dy = delta[0]*cos-delta[1]*sin, delta[0]*sin+delta[1]*cos
		}
		out[i] = w
		out[i].X += dx
		out[i].Y += dy
		out[i].T += delta[2]
	}
	return out
}

// ScaleWalls scales wall positions. Mirroring across exactly one axis swaps
// each wall type for its mirror partner and negates the rotation; mirroring
// across Y additionally turns the wall upside down (adds 180 degrees).
func ScaleWalls(walls []synth.Wall, scale [3]float64) ([]synth.Wall, error) {
	if scale[2] == 0 {
		return nil, ErrZeroTimeScale
	}
	out := make([]synth.Wall, len(walls))
	for i, w := range walls {
		w.X *= scale[0]
		w.Y *= scale[1]
		w.T *= scale[2]
		if (scale[0] < 0) != (scale[1] < 0) {
			w.Type = synth.WallLookup[w.Type].Mirror
			w.Rotation = -w.Rotation
		}
		if scale[1] < 0 {
			w.Rotation += 180
		}
		out[i] = w
	}
	if scale[2] < 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

// ScaleWallsFrom scales with the given pivot as origin.
func ScaleWallsFrom(walls []synth.Wall, scale, pivot [3]float64) ([]synth.Wall, error) {
	out, err := ScaleWalls(OffsetWalls(walls, neg(pivot), false), scale)
	if nil != err {
		return nil, err
	}
	return OffsetWalls(out, pivot, false), nil
}

// RotateWalls rotates wall positions counterclockwise around the origin and
// adds the angle to each wall's own rotation. Crouch walls are horizontal
// bars the game never tilts, so their rotation stays untouched.
func RotateWalls(walls []synth.Wall, angle float64) []synth.Wall {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	out := make([]synth.Wall, len(walls))
	for i, w := range walls {
		w.X, w.Y = w.X*cos-w.Y*sin, w.X*sin+w.Y*cos
		if w.Type != synth.Crouch {
			w.Rotation += angle
		}
		out[i] = w
	}
	return out
}

// RotateWallsAround rotates around the given pivot.
func RotateWallsAround(walls []synth.Wall, angle float64, pivot [3]float64) []synth.Wall {
	return OffsetWalls(RotateWalls(OffsetWalls(walls, neg(pivot), false), angle), pivot, false)
}

// OutsetWalls moves walls away from the pivot along their radial direction.
func OutsetWalls(walls []synth.Wall, amount float64, pivot [3]float64) []synth.Wall {
	out := make([]synth.Wall, len(walls))
	for i, w := range walls {
		out[i] = w
		x, y := w.X-pivot[0], w.Y-pivot[1]
		if closeToZero(x) && closeToZero(y) {
			continue
		}
		ang := math.Atan2(y, x)
		out[i].X += math.Cos(ang) * amount
		out[i].Y += math.Sin(ang) * amount
	}
	return out
}
