package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lost.host/meutraa/remap/internal/synth"
)

func wallsAt(types []synth.WallType, times []float64) synth.WallMap {
	out := synth.WallMap{}
	for i, t := range times {
		out[t] = synth.Wall{T: t, Type: types[i%len(types)]}
	}
	return out
}

func TestFindWallPatternsAlternating(t *testing.T) {
	walls := wallsAt(
		[]synth.WallType{synth.Crouch, synth.Square},
		[]float64{0, 1, 2, 3, 4, 5},
	)
	out, err := FindWallPatterns(walls)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, Candidate{Size: 2, Count: 3, Length: 1}, out[0])
}

func TestFindWallPatternsThreeByFive(t *testing.T) {
	types := []synth.WallType{synth.Crouch, synth.Square, synth.Triangle}
	var times []float64
	for rep := 0; rep < 5; rep++ {
		base := float64(rep) * 4
		times = append(times, base, base+1, base+2)
	}
	out, err := FindWallPatterns(wallsAt(types, times))
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, 3, out[0].Size)
	assert.Equal(t, 5, out[0].Count)
}

func TestFindWallPatternsUniform(t *testing.T) {
	walls := wallsAt(
		[]synth.WallType{synth.Crouch},
		[]float64{0, 1, 2, 3},
	)
	out, err := FindWallPatterns(walls)
	require.NoError(t, err)
	// both period 2 and period 1 fit, largest first
	require.Len(t, out, 2)
	assert.Equal(t, 2, out[0].Size)
	assert.Equal(t, 1, out[1].Size)
	assert.Equal(t, 4, out[1].Count)
}

func TestFindWallPatternsErrors(t *testing.T) {
	_, err := FindWallPatterns(synth.WallMap{0: {T: 0, Type: synth.Crouch}})
	assert.ErrorIs(t, err, ErrTooFewWalls)

	_, err = FindWallPatterns(wallsAt(
		[]synth.WallType{synth.Crouch, synth.Square},
		[]float64{0, 1},
	))
	assert.ErrorIs(t, err, ErrNoRepeats)

	// the type sequence repeats but the timing drifts
	walls := wallsAt(
		[]synth.WallType{synth.Crouch, synth.Square},
		[]float64{0, 1, 2, 3.5},
	)
	_, err = FindWallPatterns(walls)
	assert.ErrorIs(t, err, ErrNoTimingPattern)
}

func TestBlendWallSingleSlide(t *testing.T) {
	first := []synth.Wall{{X: 0, Y: 0, T: 0, Type: synth.Crouch}}
	second := []synth.Wall{{X: 2, Y: 0, T: 1, Type: synth.Crouch}}
	out, err := BlendWallSingle(first, second, 0.5, false)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.InDelta(t, 1, out[0.5].X, 1e-9)
	assert.InDelta(t, 0, out[0.5].Y, 1e-9)
}

func TestBlendWallSingleQuarterInterval(t *testing.T) {
	first := []synth.Wall{{X: 0, Y: 0, T: 0, Type: synth.Crouch}}
	second := []synth.Wall{{X: 2, Y: 4, T: 1, Type: synth.Crouch}}
	out, err := BlendWallSingle(first, second, 0.25, false)
	require.NoError(t, err)
	require.Len(t, out, 5)
	for i, time := range []float64{0, 0.25, 0.5, 0.75, 1} {
		w, ok := out[time]
		require.True(t, ok, "wall at %v", time)
		assert.Equal(t, synth.Crouch, w.Type)
		assert.InDelta(t, float64(i)*0.5, w.X, 1e-9)
		assert.InDelta(t, float64(i)*1.0, w.Y, 1e-9)
	}
}

func TestBlendWallSingleArc(t *testing.T) {
	first := []synth.Wall{{X: 0, Y: 0, T: 0, Type: synth.Square, Rotation: 0}}
	second := []synth.Wall{{X: 2, Y: 0, T: 1, Type: synth.Square, Rotation: 90}}
	out, err := BlendWallSingle(first, second, 0.5, false)
	require.NoError(t, err)
	require.Len(t, out, 3)
	// halfway through the sweep the wall is halfway rotated
	assert.InDelta(t, 45, out[0.5].Rotation, 1e-9)
	// endpoints are reproduced exactly
	assert.InDelta(t, 0, out[0].X, 1e-9)
	assert.InDelta(t, 2, out[1].X, 1e-9)
	assert.InDelta(t, 90, out[1].Rotation, 1e-9)
}

func TestBlendWallSingleWithSymmetry(t *testing.T) {
	// a square looks the same every 90 degrees, so 0 -> 90 is no rotation
	first := []synth.Wall{{X: 0, Y: 0, T: 0, Type: synth.Square, Rotation: 0}}
	second := []synth.Wall{{X: 2, Y: 0, T: 1, Type: synth.Square, Rotation: 90}}
	out, err := BlendWallSingle(first, second, 0.5, true)
	require.NoError(t, err)
	assert.InDelta(t, 0, out[0.5].Rotation, 1e-9)
	assert.InDelta(t, 1, out[0.5].X, 1e-9)
}

func TestBlendWallSingleErrors(t *testing.T) {
	a := []synth.Wall{{T: 0, Type: synth.Crouch}}
	b := []synth.Wall{{T: 0, Type: synth.Crouch}}
	_, err := BlendWallSingle(a, b, 0.5, false)
	assert.ErrorIs(t, err, ErrZeroDeltaT)

	c := []synth.Wall{{T: 1, Type: synth.Square}}
	_, err = BlendWallSingle(a, c, 0.5, false)
	assert.ErrorIs(t, err, ErrMismatchedTypes)

	_, err = BlendWallSingle(a, []synth.Wall{}, 0.5, false)
	assert.ErrorIs(t, err, ErrMismatchedTypes)
}

func TestBlendWallsMultiple(t *testing.T) {
	patterns := [][]synth.Wall{
		{{X: 0, T: 0, Type: synth.Crouch}},
		{{X: 2, T: 1, Type: synth.Crouch}},
		{{X: 2, T: 2, Type: synth.Crouch}},
	}
	out, err := BlendWallsMultiple(patterns, 0.5, false)
	require.NoError(t, err)
	// 0, 0.5, 1 from the first pair, 1.5, 2 more from the second
	require.Len(t, out, 5)
	assert.InDelta(t, 1, out[0.5].X, 1e-9)
	assert.InDelta(t, 2, out[1.5].X, 1e-9)

	_, err = BlendWallsMultiple(patterns[:1], 0.5, false)
	assert.ErrorIs(t, err, ErrTooFewWalls)
}

func TestGenerateSymmetryMirror(t *testing.T) {
	source := synth.WallMap{0: {X: 2, Y: 1, T: 0, Type: synth.Square, Rotation: 30}}
	out, err := GenerateSymmetry(source, []SymmetryOp{{Kind: MirrorX}}, 0.015625, [3]float64{})
	require.NoError(t, err)
	require.Len(t, out, 2)
	m, ok := out[0.015625]
	require.True(t, ok)
	assert.InDelta(t, -2, m.X, 1e-9)
	assert.InDelta(t, 1, m.Y, 1e-9)
	assert.Equal(t, -30.0, m.Rotation)
	// the original stays
	assert.Equal(t, source[0], out[0])
}

func TestGenerateSymmetryRotational(t *testing.T) {
	source := synth.WallMap{0: {X: 1, Y: 0, T: 0, Type: synth.Square}}
	out, err := GenerateSymmetry(source, []SymmetryOp{{Kind: Rotational, Order: 4}}, 0.25, [3]float64{})
	require.NoError(t, err)
	require.Len(t, out, 4)
	quarter, ok := out[0.25]
	require.True(t, ok)
	assert.InDelta(t, 0, quarter.X, 1e-9)
	assert.InDelta(t, 1, quarter.Y, 1e-9)
	assert.InDelta(t, 90, quarter.Rotation, 1e-9)

	_, err = GenerateSymmetry(source, []SymmetryOp{{Kind: Rotational, Order: 0}}, 0.25, [3]float64{})
	assert.ErrorIs(t, err, ErrBadSymmetry)
}

func TestChangeWallType(t *testing.T) {
	in := []synth.Wall{
		{T: 0, Type: synth.Square, Rotation: 45},
		{T: 1, Type: synth.WallLeft, Rotation: 30},
	}
	out := ChangeWallType(in, synth.Triangle)
	assert.Equal(t, synth.Triangle, out[0].Type)
	assert.Equal(t, 45.0, out[0].Rotation)

	// crouch walls cannot tilt
	out = ChangeWallType(in, synth.Crouch)
	assert.Equal(t, 0.0, out[0].Rotation)
	assert.Equal(t, synth.Crouch, out[1].Type)
}
