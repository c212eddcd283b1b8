package pattern

import (
	"errors"
	"fmt"
	"math"

	"git.lost.host/meutraa/remap/internal/movement"
	"git.lost.host/meutraa/remap/internal/numeric"
	"git.lost.host/meutraa/remap/internal/synth"
)

var (
	ErrTooFewWalls     = errors.New("pattern: need at least two walls to find repeating patterns")
	ErrNoRepeats       = errors.New("pattern: no repeats of the first wall type")
	ErrNoDivisor       = errors.New("pattern: no repeat of the first wall divides the total wall count")
	ErrNoTypePattern   = errors.New("pattern: no wall type pattern repeats consistently")
	ErrNoTimingPattern = errors.New("pattern: no pattern of type and timing repeats consistently")
	ErrMismatchedTypes = errors.New("pattern: patterns have mismatched wall types")
	ErrMismatchedTimes = errors.New("pattern: patterns have mismatched timing")
	ErrZeroDeltaT      = errors.New("pattern: patterns start at the same time")
)

// Candidate is one detected repeat unit: Size walls repeating Count times,
// each repetition spanning Length beats from its first to its last wall.
type Candidate struct {
	Size   int
	Count  int
	Length float64
}

// FindWallPatterns detects the repeat unit of a wall sequence. A candidate
// period must repeat the first wall's type, divide the total count, repeat
// the whole type sequence and finally repeat the relative timing of every
// period. All surviving candidates are returned, largest first. Each stage
// that eliminates every candidate fails with its own error.
func FindWallPatterns(walls synth.WallMap) ([]Candidate, error) {
	if len(walls) < 2 {
		return nil, ErrTooFewWalls
	}
	sorted := walls.Sorted()
	count := len(sorted)

	var matching []int
	for i := 1; i < count; i++ {
		if sorted[i].Type == sorted[0].Type {
			matching = append(matching, i)
		}
	}
	if len(matching) == 0 {
		return nil, fmt.Errorf("%w (%s)", ErrNoRepeats, synth.WallLookup[sorted[0].Type].Name)
	}

	var divisors []int
	for _, i := range matching {
		if count%i == 0 {
			divisors = append(divisors, i)
		}
	}
	if len(divisors) == 0 {
		return nil, fmt.Errorf("%w (%d walls)", ErrNoDivisor, count)
	}

	var typed []int
	for _, size := range divisors {
		ok := true
		for i := size; i < count && ok; i++ {
			ok = sorted[i].Type == sorted[i%size].Type
		}
		if ok {
			typed = append(typed, size)
		}
	}
	if len(typed) == 0 {
		return nil, ErrNoTypePattern
	}

	var out []Candidate
	for c := len(typed) - 1; c >= 0; c-- { // largest candidate first
		size := typed[c]
		ok := true
		for i := size; i < count && ok; i++ {
			rel := sorted[i].T - sorted[(i/size)*size].T
			ok = numeric.Close(rel, sorted[i%size].T-sorted[0].T)
		}
		if ok {
			out = append(out, Candidate{
				Size:   size,
				Count:  count / size,
				Length: sorted[size-1].T - sorted[0].T,
			})
		}
	}
	if len(out) == 0 {
		return nil, ErrNoTimingPattern
	}
	return out, nil
}

// BlendWallSingle generates intermediate walls at multiples of interval
// between two same-shaped patterns. Walls whose orientation matches modulo
// their own symmetry period slide linearly; walls whose orientation differs
// are swept along the circular arc whose pivot maps the first wall onto the
// second. Set withSymmetry to false to ignore that symmetric shapes look
// identical in several orientations.
func BlendWallSingle(first, second []synth.Wall, interval float64, withSymmetry bool) (synth.WallMap, error) {
	if len(first) != len(second) {
		return nil, ErrMismatchedTypes
	}
	deltaT := second[0].T - first[0].T
	if deltaT == 0 {
		return nil, ErrZeroDeltaT
	}
	for i := range first {
		if first[i].Type != second[i].Type {
			return nil, fmt.Errorf("%w (wall %d: %s vs %s)", ErrMismatchedTypes, i,
				synth.WallLookup[first[i].Type].Name, synth.WallLookup[second[i].Type].Name)
		}
		if !numeric.Close(first[i].T, second[i].T-deltaT) {
			return nil, fmt.Errorf("%w (wall %d)", ErrMismatchedTimes, i)
		}
	}
	offsets := numeric.BoundedRange(0, deltaT, interval)
	out := make(synth.WallMap)

	for i := range first {
		f, s := first[i], second[i]
		sym := 360.0
		if withSymmetry {
			sym = synth.WallLookup[f.Type].Symmetry
		}
		fAng := posMod(f.Rotation, sym)
		sAng := posMod(s.Rotation, sym)

		if fAng == sAng {
			// equal orientation: slide x/y linearly over time
			for _, off := range offsets {
				w := f
				w.X += (s.X - f.X) / deltaT * off
				w.Y += (s.Y - f.Y) / deltaT * off
				w.T += off
				out[w.T] = w
			}
			continue
		}
		// differing orientation: reconstruct the arc. The pivot is found
		// via the isosceles triangle spanned by the two positions and the
		// angular delta.
		ang := posMod(sAng-fAng+sym/2, sym) - sym/2
		hx, hy := (s.X-f.X)/2, (s.Y-f.Y)/2
		rx, ry := rotateVec(hx, hy, 90-ang/2)
		sin := math.Sin(ang / 2 * math.Pi / 180)
		pivot := [3]float64{f.X + rx/sin, f.Y + ry/sin, f.T}
		for _, off := range offsets {
			w := movement.RotateWallsAround([]synth.Wall{f}, ang*(off/deltaT), pivot)[0]
			w.T += off
			out[w.T] = w
		}
	}
	return out, nil
}

// BlendWallsMultiple chains BlendWallSingle across consecutive pattern
// pairs, later blends overwriting earlier ones on key collisions.
func BlendWallsMultiple(patterns [][]synth.Wall, interval float64, withSymmetry bool) (synth.WallMap, error) {
	if len(patterns) < 2 {
		return nil, ErrTooFewWalls
	}
	out := make(synth.WallMap)
	for i := 0; i < len(patterns)-1; i++ {
		part, err := BlendWallSingle(patterns[i], patterns[i+1], interval, withSymmetry)
		if nil != err {
			return nil, err
		}
		for t, w := range part {
			out[t] = w
		}
	}
	return out, nil
}

// SymmetryKind selects a symmetry operation.
type SymmetryKind int

const (
	MirrorX SymmetryKind = iota
	MirrorY
	Rotational
)

// SymmetryOp is one step of a symmetry chain. Order is only used for
// Rotational and gives the number of copies around the circle (negative
// for clockwise).
type SymmetryOp struct {
	Kind  SymmetryKind
	Order int
}

var ErrBadSymmetry = errors.New("pattern: unknown symmetry operation")

// GenerateSymmetry applies a chain of mirror/rotation operations to the
// source walls, offsetting each generated copy by interval beats per
// accumulated copy so the results do not collide in time.
func GenerateSymmetry(source synth.WallMap, ops []SymmetryOp, interval float64, pivot [3]float64) (synth.WallMap, error) {
	out := source.Clone()
	counter := 1
	for _, op := range ops {
		next := out.Clone()
		switch op.Kind {
		case MirrorX, MirrorY:
			scale := [3]float64{-1, 1, 1}
			if op.Kind == MirrorY {
				scale = [3]float64{1, -1, 1}
			}
			for _, t := range out.SortedTimes() {
				ws, err := movement.ScaleWallsFrom([]synth.Wall{out[t]}, scale, pivot)
				if nil != err {
					return nil, err
				}
				w := ws[0]
				w.T += interval * float64(counter)
				next[w.T] = w
			}
			counter++
		case Rotational:
			if op.Order == 0 {
				return nil, fmt.Errorf("%w: rotational order 0", ErrBadSymmetry)
			}
			order := op.Order
			abs := order
			if abs < 0 {
				abs = -abs
			}
			ang := 360 / float64(order)
			for _, t := range out.SortedTimes() {
				for r := 1; r < abs; r++ {
					w := movement.RotateWallsAround([]synth.Wall{out[t]}, ang*float64(r), pivot)[0]
					w.T += interval * float64(counter) * float64(r)
					next[w.T] = w
				}
			}
			counter += abs - 1
		default:
			return nil, fmt.Errorf("%w: %d", ErrBadSymmetry, op.Kind)
		}
		out = next
	}
	return out, nil
}

// ChangeWallType retypes every wall. Crouch walls cannot be rotated by the
// game, so their rotation resets to 0.
func ChangeWallType(walls []synth.Wall, newType synth.WallType) []synth.Wall {
	out := make([]synth.Wall, len(walls))
	for i, w := range walls {
		w.Type = newType
		if newType == synth.Crouch {
			w.Rotation = 0
		}
		out[i] = w
	}
	return out
}

// posMod returns v modulo m in [0, m).
func posMod(v, m float64) float64 {
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	return r
}

func rotateVec(x, y, deg float64) (float64, float64) {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return x*cos - y*sin, x*sin + y*cos
}
