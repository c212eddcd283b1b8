package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lost.host/meutraa/remap/internal/synth"
)

func TestDensityEmpty(t *testing.T) {
	out := Density(nil, 4)
	assert.Empty(t, out.Points)
	assert.Equal(t, 0, out.Max)
}

func TestDensitySingle(t *testing.T) {
	out := Density([]float64{10}, 4)
	assert.Equal(t, 1, out.Max)
	// one rise at t-window, one fall at t
	require.Len(t, out.Points, 4)
	assert.Equal(t, Point{6, 0}, out.Points[0])
	assert.Equal(t, Point{6, 1}, out.Points[1])
	assert.Equal(t, Point{10, 1}, out.Points[2])
	assert.Equal(t, Point{10, 0}, out.Points[3])
}

func TestDensityOverlap(t *testing.T) {
	// both objects visible together between 2 and 3
	out := Density([]float64{3, 5}, 3)
	assert.Equal(t, 2, out.Max)
}

func TestDensityDisjoint(t *testing.T) {
	out := Density([]float64{0, 100}, 4)
	assert.Equal(t, 1, out.Max)
}

func TestDensityUnsortedInput(t *testing.T) {
	a := Density([]float64{5, 3, 9}, 3)
	b := Density([]float64{3, 5, 9}, 3)
	assert.Equal(t, b, a)
}

func TestNoteDensities(t *testing.T) {
	d := synth.NewDataContainer(60) // window is then exactly RenderWindow beats
	d.Right[0] = synth.Rail{{T: 0}}
	d.Right[1] = synth.Rail{{T: 1}, {T: 2}, {T: 3}}
	d.Left[2] = synth.Rail{{T: 2}}

	out := NoteDensities(d)
	right := out[synth.NoteRight.String()]
	assert.Equal(t, 2, right[KindNote].Max)
	assert.Equal(t, 1, right[KindSingle].Max)
	assert.Equal(t, 1, right[KindRail].Max)
	// two tail nodes of the rail
	assert.Equal(t, 2, right[KindRailNode].Max)

	combined := out[Combined]
	assert.Equal(t, 3, combined[KindNote].Max)
}

func TestWallDensities(t *testing.T) {
	d := synth.NewDataContainer(60)
	d.Walls[0] = synth.Wall{T: 0, Type: synth.Crouch}
	d.Walls[1] = synth.Wall{T: 1, Type: synth.Crouch}
	d.Walls[2] = synth.Wall{T: 2, Type: synth.Square}

	out := WallDensities(d)
	assert.Equal(t, 2, out["crouch"].Max)
	assert.Equal(t, 1, out["square"].Max)
	assert.Equal(t, 0, out["triangle"].Max)
	assert.Equal(t, 3, out[Combined].Max)
}

func TestWallMode(t *testing.T) {
	assert.Equal(t, "OK, max 10", WallMode(10, true))
	assert.Equal(t, "Quest-Wireframe, max 200", WallMode(200, true))
	assert.Equal(t, "Quest-Limited, max 500", WallMode(500, true))
	assert.Equal(t, "OK, max 79", WallMode(79, false))
	assert.Equal(t, "PC-Despawn, max 80", WallMode(80, false))
}
