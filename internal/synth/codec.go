package synth

import "math"

// Conversion constants between grid/beat coordinates and the units the game
// stores. These must match the game exactly or saved maps drift.
const (
	// IndexScale is the number of ticks per beat in the file format.
	IndexScale = 64
	// GridScale converts grid squares to meters.
	GridScale = 0.1365
	// The editor grid snap is off by a small fixed amount.
	XOffset = 0.002
	YOffset = 0.0012
	// The stored z coordinate is elapsed seconds times TimeScale, so
	// z = tick * BPMDivisor / bpm.
	TimeScale  = 20.0
	BPMDivisor = TimeScale * 60.0 / IndexScale
)

// SnapBeat rounds a beat to the nearest 1/64 or 1/48, whichever is closer.
// The editor itself quantizes to these two grids.
func SnapBeat(beat float64) float64 {
	b64 := math.Round(beat*64) / 64
	b48 := math.Round(beat*48) / 48
	if math.Abs(beat-b48) < math.Abs(beat-b64) {
		return b48
	}
	return b64
}

// SnapTick is the file-output variant of SnapBeat: it snaps a tick count
// (64ths) to the nearest whole tick or the nearest 4/3 tick (the 1/48-beat
// grid expressed in ticks), whichever is closer.
func SnapTick(tick float64) float64 {
	t64 := math.Round(tick)
	t48 := math.Round(tick*3/4) * 4 / 3
	if math.Abs(tick-t48) < math.Abs(tick-t64) {
		return t48
	}
	return t64
}

// CoordFromSynth converts a stored [x,y,z] position to grid coordinates and
// beats relative to startMeasure (in ticks).
func CoordFromSynth(bpm, startMeasure float64, coord [3]float64) Node {
	return Node{
		X: (coord[0] - XOffset) / GridScale,
		Y: (coord[1] - YOffset) / GridScale,
		// absolute z coordinate to beats since selection start
		T: math.Round(coord[2]*bpm/BPMDivisor-startMeasure) / IndexScale,
	}
}

// CoordToSynth converts a node back to the stored representation.
func CoordToSynth(bpm float64, n Node) [3]float64 {
	return [3]float64{
		n.X*GridScale + XOffset,
		n.Y*GridScale + YOffset,
		n.T * IndexScale * BPMDivisor / bpm,
	}
}
