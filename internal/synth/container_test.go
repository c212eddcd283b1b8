package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContainer() *DataContainer {
	d := NewDataContainer(120)
	d.Right[0] = Rail{{X: 1, Y: 1, T: 0}}
	d.Right[1] = Rail{{X: 1, Y: 1, T: 1}, {X: 2, Y: 1, T: 2}}
	d.Left[0.5] = Rail{{X: -1, Y: 1, T: 0.5}}
	d.Walls[0] = Wall{T: 0, Type: Crouch}
	d.Walls[1] = Wall{X: 4.05, Y: 2.8, T: 1, Type: WallRight}
	d.Lights = []float64{0, 2}
	d.Effects = []float64{1}
	return d
}

func TestFilterNamed(t *testing.T) {
	f, ok := FilterNamed([]string{"right", "crouch", "lights"})
	require.True(t, ok)
	assert.Equal(t, []NoteType{NoteRight}, f.Notes)
	assert.Equal(t, []WallType{Crouch}, f.WallTypes)
	assert.True(t, f.Lights)
	assert.False(t, f.Effects)

	_, ok = FilterNamed([]string{"bogus"})
	assert.False(t, ok)
}

func TestFiltered(t *testing.T) {
	d := testContainer()
	out := d.Filtered(Filter{Notes: []NoteType{NoteRight}, WallTypes: []WallType{Crouch}})
	assert.Len(t, out.Right, 2)
	assert.Empty(t, out.Left)
	assert.Len(t, out.Walls, 1)
	assert.Equal(t, Crouch, out.Walls[0].Type)
	assert.Empty(t, out.Lights)
}

func TestMergeOtherWins(t *testing.T) {
	d := testContainer()
	other := NewDataContainer(120)
	other.Right[0] = Rail{{X: 9, Y: 9, T: 0}}
	other.Walls[0] = Wall{T: 0, Type: Square}
	other.Lights = []float64{0, 3}

	d.Merge(other)
	assert.Equal(t, 9.0, d.Right[0].Head().X)
	assert.Equal(t, Square, d.Walls[0].Type)
	// duplicate light times collapse
	assert.ElementsMatch(t, []float64{0, 2, 3}, d.Lights)
}

func TestSetBPM(t *testing.T) {
	d := testContainer()
	d.SetBPM(60)
	require.Equal(t, 60.0, d.BPM)
	// half the bpm, half the beat count for the same wall clock time
	_, ok := d.Right[0.5]
	assert.True(t, ok)
	assert.Equal(t, 1.0, d.Right[0.5].Tail().T)
	_, ok = d.Walls[0.5]
	assert.True(t, ok)
	assert.Equal(t, []float64{0, 1}, d.Lights)
}

func TestApplyForNotesRekeys(t *testing.T) {
	d := testContainer()
	d.ApplyForNotes(func(r Rail) Rail {
		out := r.Clone()
		for i := range out {
			out[i].T += 10
		}
		return out
	}, NoteRight)
	_, ok := d.Right[10]
	assert.True(t, ok)
	_, ok = d.Right[0]
	assert.False(t, ok)
	// left channel untouched
	_, ok = d.Left[0.5]
	assert.True(t, ok)
}

func TestFindFreeSlot(t *testing.T) {
	d := NewDataContainer(120)
	d.Walls[1] = Wall{T: 1}
	d.Walls[1.25] = Wall{T: 1.25}
	assert.Equal(t, 1.5, d.FindFreeSlot(1, 0.25))
	assert.Equal(t, 0.5, d.FindFreeSlot(0.5, 0.25))
}

func TestInsertWallDisplaces(t *testing.T) {
	d := NewDataContainer(120)
	d.Walls[1] = Wall{T: 1, Type: Crouch}
	d.Walls[1.25] = Wall{T: 1.25, Type: Square}

	d.InsertWall(Wall{T: 1, Type: Triangle}, 1, 0.25)
	require.Len(t, d.Walls, 3)
	assert.Equal(t, Triangle, d.Walls[1].Type)
	assert.Equal(t, Crouch, d.Walls[1.25].Type)
	assert.Equal(t, Square, d.Walls[1.5].Type)
}

func TestInsertWallBackward(t *testing.T) {
	d := NewDataContainer(120)
	d.Walls[1] = Wall{T: 1, Type: Crouch}

	d.InsertWall(Wall{T: 1, Type: Triangle}, -1, 0.25)
	require.Len(t, d.Walls, 2)
	assert.Equal(t, Triangle, d.Walls[1].Type)
	assert.Equal(t, Crouch, d.Walls[0.75].Type)
}

func TestSortedTimes(t *testing.T) {
	d := testContainer()
	assert.Equal(t, []float64{0, 1}, d.Right.SortedTimes())
	assert.Equal(t, []float64{0, 1}, d.Walls.SortedTimes())
}
