// Package analysis reports how densely notes and walls are packed, using
// the same look-ahead window the game renders with.
package analysis

import (
	"fmt"
	"sort"

	"git.lost.host/meutraa/remap/internal/synth"
)

// RenderWindow is how far ahead the game renders, in seconds.
const RenderWindow = 4.0

// Wall count limits observed in game.
const (
	QuestWireframeLimit = 200 // combined
	QuestRenderLimit    = 500 // combined
	PCTypeDespawn       = 80  // per type
)

// Point is one step of a density curve.
type Point struct {
	Time  float64
	Count int
}

// Curve is a step function of how many objects are visible over time.
// Each change in count contributes two points sharing a time, so plotting
// the points directly draws discrete steps.
type Curve struct {
	Points []Point
	Max    int
}

// Density sweeps the given times with a look-ahead window and records how
// many objects are visible at once. An object at time t is visible from
// t-window until t.
func Density(times []float64, window float64) Curve {
	if len(times) == 0 {
		return Curve{}
	}
	sorted := append([]float64(nil), times...)
	sort.Float64s(sorted)

	var c Curve
	var visible []float64
	for _, t := range sorted {
		start := t - window
		for len(visible) > 0 && visible[0] < start {
			c.step(visible[0], len(visible), len(visible)-1)
			visible = visible[1:]
		}
		c.step(start, len(visible), len(visible)+1)
		visible = append(visible, t)
	}
	for len(visible) > 0 {
		c.step(visible[0], len(visible), len(visible)-1)
		visible = visible[1:]
	}
	return c
}

func (c *Curve) step(t float64, before, after int) {
	c.Points = append(c.Points, Point{t, before}, Point{t, after})
	if after > c.Max {
		c.Max = after
	}
}

// Combined is the key used for the curve aggregated over all types.
const Combined = "combined"

// Density curve keys per note type.
const (
	KindNote     = "note"      // every note and rail head
	KindSingle   = "single"    // single notes only
	KindRail     = "rail"      // rail heads only
	KindRailNode = "rail node" // rail nodes excluding heads
)

var Kinds = []string{KindNote, KindSingle, KindRail, KindRailNode}

// NoteDensities builds density curves per note type and curve kind, plus a
// "combined" set over all types. Windows are measured in beats.
func NoteDensities(d *synth.DataContainer) map[string]map[string]Curve {
	window := RenderWindow * d.BPM / 60
	out := map[string]map[string]Curve{}
	all := map[string][]float64{}
	for _, nt := range synth.NoteTypes {
		notes := d.Notes(nt)
		var heads, singles, rails, nodes []float64
		for _, t := range notes.SortedTimes() {
			rail := notes[t]
			heads = append(heads, t)
			if len(rail) == 1 {
				singles = append(singles, t)
			} else {
				rails = append(rails, t)
			}
			for _, n := range rail[1:] {
				nodes = append(nodes, n.T)
			}
		}
		kinds := map[string][]float64{
			KindNote: heads, KindSingle: singles, KindRail: rails, KindRailNode: nodes,
		}
		curves := map[string]Curve{}
		for k, times := range kinds {
			curves[k] = Density(times, window)
			all[k] = append(all[k], times...)
		}
		out[nt.String()] = curves
	}
	combined := map[string]Curve{}
	for k, times := range all {
		combined[k] = Density(times, window)
	}
	out[Combined] = combined
	return out
}

// WallDensities builds one density curve per wall type plus a combined one.
func WallDensities(d *synth.DataContainer) map[string]Curve {
	window := RenderWindow * d.BPM / 60
	byType := map[synth.WallType][]float64{}
	var all []float64
	for t, w := range d.Walls {
		byType[w.Type] = append(byType[w.Type], t)
		all = append(all, t)
	}
	out := map[string]Curve{}
	for name, info := range synth.WallTypes {
		out[name] = Density(byType[info.ID], window)
	}
	out[Combined] = Density(all, window)
	return out
}

// WallMode names the rendering consequence of a peak wall density. Combined
// counts hit the Quest limits, per-type counts hit the PC despawn limit.
func WallMode(peak int, combined bool) string {
	mode := "OK"
	if combined {
		if peak >= QuestRenderLimit {
			mode = "Quest-Limited"
		} else if peak >= QuestWireframeLimit {
			mode = "Quest-Wireframe"
		}
	} else if peak >= PCTypeDespawn {
		mode = "PC-Despawn"
	}
	return fmt.Sprintf("%s, max %d", mode, peak)
}
