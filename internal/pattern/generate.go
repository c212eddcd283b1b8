// Package pattern synthesizes new map content: spirals, spikes, parallel
// hand patterns, wall pattern detection, blending between wall patterns and
// symmetry generation.
package pattern

import (
	"math"
	"math/rand"

	"git.lost.host/meutraa/remap/internal/synth"
)

// AngleToXY converts an angle in degrees to a point on the unit circle.
func AngleToXY(angle float64) [2]float64 {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	return [2]float64{cos, sin}
}

// RandomRing returns count random positions on a ring of radius 1.
func RandomRing(count int) [][2]float64 {
	out := make([][2]float64, count)
	for i := range out {
		out[i] = AngleToXY(rand.Float64() * 360)
	}
	return out
}

// RandomXY returns count random positions in the given rectangle.
func RandomXY(count int, min, max [2]float64) [][2]float64 {
	out := make([][2]float64, count)
	for i := range out {
		out[i] = [2]float64{
			min[0] + rand.Float64()*(max[0]-min[0]),
			min[1] + rand.Float64()*(max[1]-min[1]),
		}
	}
	return out
}

// Spiral returns unit-circle points advancing by 360/fidelity degrees per
// step over length steps, plus a final partial-angle point when length is
// fractional. Fidelity 0 selects random ring positions instead.
func Spiral(fidelity, length, startAngle float64) [][2]float64 {
	if fidelity == 0 {
		return RandomRing(int(length))
	}
	// a fractional length still gets a whole step at its truncation
	n := int(math.Ceil(length))
	out := make([][2]float64, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, AngleToXY(float64(i)/fidelity*360+startAngle))
	}
	if frac := length - math.Trunc(length); frac != 0 {
		out = append(out, AngleToXY(length/fidelity*360+startAngle))
	}
	return out
}

// AddSpiral offsets each node of a rail along a spiral of the given radius.
// Direction -1 spirals the other way round for the matching hand.
func AddSpiral(nodes synth.Rail, fidelity, radius, startAngle float64, direction int) synth.Rail {
	if direction != 1 {
		fidelity = -fidelity
		startAngle = 180 - startAngle
	}
	ring := Spiral(fidelity, float64(len(nodes)), startAngle)
	out := nodes.Clone()
	for i := range out {
		out[i].X += ring[i][0] * radius
		out[i].Y += ring[i][1] * radius
	}
	return out
}

// Spikes interleaves zero vectors with spiral directions at stride 3
// (base, tip, base), length*3 points total.
func Spikes(fidelity, length, startAngle float64) [][2]float64 {
	out := make([][2]float64, int(length)*3)
	tips := Spiral(fidelity, length, startAngle)
	for i := range out {
		if i%3 == 1 {
			out[i] = tips[i/3]
		}
	}
	return out
}

// AddSpikes replaces every node of a rail with a base-tip-base triple,
// the tip halfway through spikeDuration and offset along the spiral.
func AddSpikes(nodes synth.Rail, fidelity, radius, spikeDuration, startAngle float64, direction int) synth.Rail {
	if direction != 1 {
		fidelity = -fidelity
		startAngle = 180 - startAngle
	}
	spikes := Spikes(fidelity, float64(len(nodes)), startAngle)
	out := make(synth.Rail, 0, len(nodes)*3)
	for _, n := range nodes {
		base := n
		base.T -= spikeDuration
		tip := n
		tip.T -= spikeDuration / 2
		out = append(out, base, tip, n)
	}
	for i := range out {
		out[i].X += spikes[i][0] * radius
		out[i].Y += spikes[i][1] * radius
	}
	return out
}

// CreateParallel splits unified notes into a left/right pair and adds the
// opposite hand to existing left/right notes. Previously unified notes move
// half the distance each way, existing hands spawn their partner a full
// distance over. Distance can be negative to create crossovers. The single
// and both channels end up empty, their content now lives in left/right.
func CreateParallel(data *synth.DataContainer, distance float64) {
	leftOrig, rightOrig := data.Left, data.Right
	left := leftOrig.Clone()
	right := rightOrig.Clone()

	shift := func(dst synth.NoteMap, src synth.NoteMap, dx float64) {
		for _, t := range src.SortedTimes() {
			nodes := src[t].Clone()
			for i := range nodes {
				nodes[i].X += dx
			}
			dst[t] = nodes
		}
	}
	shift(left, rightOrig, -distance)
	shift(left, data.Single, -distance/2)
	shift(left, data.Both, -distance/2)
	shift(right, leftOrig, distance)
	shift(right, data.Single, distance/2)
	shift(right, data.Both, distance/2)

	data.Left = left
	data.Right = right
	data.Single = synth.NoteMap{}
	data.Both = synth.NoteMap{}
}
