package synth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Position observed in a real map at 76 bpm: tick 192 (beat 3) is stored
// with z == beat * 60 / bpm * 20.
func TestCoordMatchesGameData(t *testing.T) {
	const bpm = 76.0
	out := CoordToSynth(bpm, Node{T: 3})
	assert.InDelta(t, 47.36842105263158, out[2], 1e-9)

	n := CoordFromSynth(bpm, 0, out)
	assert.Equal(t, 3.0, n.T)
}

func TestCoordRoundTrip(t *testing.T) {
	const bpm = 128.0
	for _, n := range []Node{
		{X: 0, Y: 0, T: 0},
		{X: 1, Y: -2, T: 0.25},
		{X: -3.5, Y: 4, T: 7.015625},
	} {
		back := CoordFromSynth(bpm, 0, CoordToSynth(bpm, n))
		assert.InDelta(t, n.X, back.X, 1e-9)
		assert.InDelta(t, n.Y, back.Y, 1e-9)
		assert.Equal(t, n.T, back.T)
	}
}

func TestCoordStartMeasure(t *testing.T) {
	const bpm = 120.0
	// a note two beats in, selection starting one beat in
	pos := CoordToSynth(bpm, Node{T: 2})
	n := CoordFromSynth(bpm, IndexScale, pos)
	assert.Equal(t, 1.0, n.T)
}

func TestSnapBeat(t *testing.T) {
	// quarter beats sit on the 1/64 grid
	assert.Equal(t, 0.25, SnapBeat(0.2501))
	// thirds are only representable on the 1/48 grid
	third := 1.0 / 3
	assert.InDelta(t, third, SnapBeat(third+1e-4), 1e-9)
	assert.Equal(t, 0.0, SnapBeat(0.001))
}

func TestSnapTick(t *testing.T) {
	assert.Equal(t, 16.0, SnapTick(16.01))
	// 1/3 beat in ticks is 64/3, on the 4/3-tick grid
	assert.InDelta(t, 64.0/3, SnapTick(64.0/3+0.01), 1e-9)
}

func TestGridOffsets(t *testing.T) {
	// the grid origin is not quite at zero
	out := CoordToSynth(120, Node{})
	if out[0] != XOffset || out[1] != YOffset {
		t.Log("out", out)
		t.Fail()
	}
	if math.Abs(BPMDivisor-18.75) > 1e-12 {
		t.Log("divisor", BPMDivisor)
		t.Fail()
	}
}
