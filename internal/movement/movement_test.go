package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lost.host/meutraa/remap/internal/synth"
)

func testRail() synth.Rail {
	return synth.Rail{
		{X: 1, Y: 2, T: 0},
		{X: 2, Y: 3, T: 0.5},
		{X: 3, Y: 4, T: 1},
	}
}

func assertRailInDelta(t *testing.T, expected, actual synth.Rail) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.InDelta(t, expected[i].X, actual[i].X, 1e-9, "node %d x", i)
		assert.InDelta(t, expected[i].Y, actual[i].Y, 1e-9, "node %d y", i)
		assert.InDelta(t, expected[i].T, actual[i].T, 1e-9, "node %d t", i)
	}
}

func TestOffsetInverse(t *testing.T) {
	in := testRail()
	out := Offset(Offset(in, [3]float64{1, -2, 0.5}), [3]float64{-1, 2, -0.5})
	assertRailInDelta(t, in, out)
}

func TestOffsetDoesNotMutate(t *testing.T) {
	in := testRail()
	Offset(in, [3]float64{5, 5, 5})
	assert.Equal(t, testRail(), in)
}

func TestScaleInverse(t *testing.T) {
	in := testRail()
	scaled, err := Scale(in, [3]float64{2, 0.5, 4})
	require.NoError(t, err)
	out, err := Scale(scaled, [3]float64{0.5, 2, 0.25})
	require.NoError(t, err)
	assertRailInDelta(t, in, out)
}

func TestScaleZeroTime(t *testing.T) {
	_, err := Scale(testRail(), [3]float64{1, 1, 0})
	assert.ErrorIs(t, err, ErrZeroTimeScale)
}

func TestScaleNegativeTimeReverses(t *testing.T) {
	out, err := Scale(testRail(), [3]float64{1, 1, -1})
	require.NoError(t, err)
	// chronological order is restored, so the old tail leads
	assert.Equal(t, -1.0, out.Head().T)
	assert.Equal(t, 3.0, out.Head().X)
	assert.Equal(t, 0.0, out.Tail().T)
}

func TestScaleRelativeKeepsHead(t *testing.T) {
	in := testRail()
	out, err := ScaleRelative(in, [3]float64{2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, in.Head(), out.Head())
	assert.InDelta(t, 3, out[1].X, 1e-9)
	assert.InDelta(t, 1, out[1].T, 1e-9)
}

func TestScaleRelativeSingleNote(t *testing.T) {
	in := synth.Rail{{X: 1, Y: 2, T: 3}}
	out, err := ScaleRelative(in, [3]float64{5, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRotateQuarterTurn(t *testing.T) {
	out := Rotate(synth.Rail{{X: 1, Y: 0, T: 2}}, 90)
	assertRailInDelta(t, synth.Rail{{X: 0, Y: 1, T: 2}}, out)
}

func TestRotateInverse(t *testing.T) {
	in := testRail()
	out := Rotate(Rotate(in, 37), -37)
	assertRailInDelta(t, in, out)
}

func TestRotateAround(t *testing.T) {
	out := RotateAround(synth.Rail{{X: 2, Y: 1, T: 0}}, 180, [3]float64{1, 1, 0})
	assertRailInDelta(t, synth.Rail{{X: 0, Y: 1, T: 0}}, out)
}

func TestRotateRelativeKeepsHead(t *testing.T) {
	in := testRail()
	out := RotateRelative(in, 123)
	assert.Equal(t, in.Head(), out.Head())
}

func TestRotateRelativeSingleNote(t *testing.T) {
	in := synth.Rail{{X: 0, Y: 0, T: 0}}
	out := RotateRelative(in, 90)
	assert.Equal(t, in, out)
}

func TestOutset(t *testing.T) {
	out := Outset(synth.Rail{{X: 3, Y: 4, T: 0}}, 5)
	// radius grows from 5 to 10 along the same direction
	assertRailInDelta(t, synth.Rail{{X: 6, Y: 8, T: 0}}, out)
}

func TestOutsetOrigin(t *testing.T) {
	out := Outset(synth.Rail{{X: 0, Y: 0, T: 1}}, 5)
	assertRailInDelta(t, synth.Rail{{X: 0, Y: 0, T: 1}}, out)
}

func TestOutsetInverse(t *testing.T) {
	in := testRail()
	out := Outset(Outset(in, 2), -2)
	assertRailInDelta(t, in, out)
}

func TestOffsetWallsRelative(t *testing.T) {
	walls := []synth.Wall{{X: 0, Y: 0, T: 0, Type: synth.Square, Rotation: 90}}
	out := OffsetWalls(walls, [3]float64{0, 1, 0}, true)
	// "up" rotated by 90 degrees points left
	assert.InDelta(t, -1, out[0].X, 1e-9)
	assert.InDelta(t, 0, out[0].Y, 1e-9)
}

func TestScaleWallsMirrorX(t *testing.T) {
	walls := []synth.Wall{{X: 2, Y: 3, T: 1, Type: synth.WallRight, Rotation: 30}}
	out, err := ScaleWalls(walls, [3]float64{-1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, synth.WallLeft, out[0].Type)
	assert.Equal(t, -30.0, out[0].Rotation)
	assert.Equal(t, -2.0, out[0].X)
}

func TestScaleWallsMirrorY(t *testing.T) {
	walls := []synth.Wall{{X: 2, Y: 3, T: 1, Type: synth.AngleLeft, Rotation: 10}}
	out, err := ScaleWalls(walls, [3]float64{1, -1, 1})
	require.NoError(t, err)
	assert.Equal(t, synth.AngleRight, out[0].Type)
	assert.Equal(t, 170.0, out[0].Rotation)
}

func TestScaleWallsBothAxes(t *testing.T) {
	// mirroring both axes is a 180 degree rotation, no partner swap
	walls := []synth.Wall{{X: 2, Y: 3, T: 1, Type: synth.WallRight, Rotation: 30}}
	out, err := ScaleWalls(walls, [3]float64{-1, -1, 1})
	require.NoError(t, err)
	assert.Equal(t, synth.WallRight, out[0].Type)
	assert.Equal(t, 210.0, out[0].Rotation)
}

func TestRotateWallsCrouchKeepsRotation(t *testing.T) {
	walls := []synth.Wall{
		{X: 1, Y: 0, T: 0, Type: synth.Crouch},
		{X: 1, Y: 0, T: 1, Type: synth.Square, Rotation: 15},
	}
	out := RotateWalls(walls, 90)
	assert.Equal(t, 0.0, out[0].Rotation)
	assert.Equal(t, 105.0, out[1].Rotation)
	assert.InDelta(t, 1, out[0].Y, 1e-9)
}

func TestScaleWallsNegativeTimeReverses(t *testing.T) {
	walls := []synth.Wall{
		{T: 0, Type: synth.Crouch},
		{T: 1, Type: synth.Square},
	}
	out, err := ScaleWalls(walls, [3]float64{1, 1, -1})
	require.NoError(t, err)
	assert.Equal(t, synth.Square, out[0].Type)
	assert.Equal(t, -1.0, out[0].T)
}
