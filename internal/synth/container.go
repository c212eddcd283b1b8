package synth

import (
	"math"
	"sort"
)

// DataContainer owns one difficulty's BPM and channels. Channel maps are
// exclusively owned: operations replace maps and rails rather than mutate
// them, so filtered views and originals stay independent.
type DataContainer struct {
	BPM float64

	// Original is the clipboard JSON this container was decoded from, kept
	// so chained invocations can start over from the unmodified input.
	Original string

	Right  NoteMap
	Left   NoteMap
	Single NoteMap
	Both   NoteMap

	Walls WallMap

	Lights  []float64
	Effects []float64
}

// NewDataContainer returns an empty container at the given BPM.
func NewDataContainer(bpm float64) *DataContainer {
	return &DataContainer{
		BPM:    bpm,
		Right:  NoteMap{},
		Left:   NoteMap{},
		Single: NoteMap{},
		Both:   NoteMap{},
		Walls:  WallMap{},
	}
}

// Notes returns the channel map for a note type.
func (d *DataContainer) Notes(t NoteType) NoteMap {
	switch t {
	case NoteRight:
		return d.Right
	case NoteLeft:
		return d.Left
	case NoteSingle:
		return d.Single
	}
	return d.Both
}

// SetNotes replaces the channel map for a note type.
func (d *DataContainer) SetNotes(t NoteType, m NoteMap) {
	switch t {
	case NoteRight:
		d.Right = m
	case NoteLeft:
		d.Left = m
	case NoteSingle:
		d.Single = m
	default:
		d.Both = m
	}
}

// ApplyForNotes runs f over every rail of the given channels (all channels
// when none are named) and re-keys each result by its new head time.
func (d *DataContainer) ApplyForNotes(f func(Rail) Rail, types ...NoteType) {
	if len(types) == 0 {
		types = NoteTypes
	}
	for _, t := range types {
		src := d.Notes(t)
		out := make(NoteMap, len(src))
		for _, time := range src.SortedTimes() {
			r := f(src[time])
			out[r.Head().T] = r
		}
		d.SetNotes(t, out)
	}
}

// ApplyForNoteMaps runs a whole-channel rewrite (the topology operations)
// over the given channels.
func (d *DataContainer) ApplyForNoteMaps(f func(NoteMap) NoteMap, types ...NoteType) {
	if len(types) == 0 {
		types = NoteTypes
	}
	for _, t := range types {
		d.SetNotes(t, f(d.Notes(t)))
	}
}

// ApplyForWalls runs f over every wall and re-keys the results by their new
// times.
func (d *DataContainer) ApplyForWalls(f func(Wall) Wall) {
	out := make(WallMap, len(d.Walls))
	for _, time := range d.Walls.SortedTimes() {
		w := f(d.Walls[time])
		out[w.T] = w
	}
	d.Walls = out
}

// Filter selects channels and wall types for Filtered.
type Filter struct {
	Notes     []NoteType
	WallTypes []WallType
	Walls     bool // all wall types
	Lights    bool
	Effects   bool
}

// FilterNamed builds a filter from CLI channel names: note type names,
// wall type names, "walls", "lights" and "effects".
func FilterNamed(names []string) (Filter, bool) {
	var f Filter
	for _, name := range names {
		if t, ok := NoteTypeNamed(name); ok {
			f.Notes = append(f.Notes, t)
			continue
		}
		if w, ok := WallTypeNamed(name); ok {
			f.WallTypes = append(f.WallTypes, w)
			continue
		}
		switch name {
		case "walls":
			f.Walls = true
		case "lights":
			f.Lights = true
		case "effects":
			f.Effects = true
		default:
			return Filter{}, false
		}
	}
	return f, true
}

// Filtered returns a new container holding only the requested content.
// The copy is structural: rails are shared with the original, which is safe
// because rails are immutable by contract.
func (d *DataContainer) Filtered(f Filter) *DataContainer {
	out := NewDataContainer(d.BPM)
	for _, t := range f.Notes {
		out.SetNotes(t, d.Notes(t).Clone())
	}
	if f.Walls {
		out.Walls = d.Walls.Clone()
	} else {
		for _, wt := range f.WallTypes {
			for time, w := range d.Walls {
				if w.Type == wt {
					out.Walls[time] = w
				}
			}
		}
	}
	if f.Lights {
		out.Lights = append([]float64(nil), d.Lights...)
	}
	if f.Effects {
		out.Effects = append([]float64(nil), d.Effects...)
	}
	return out
}

// Merge unions other into d per channel. On a key collision the other
// container wins; this mirrors how every caller composed containers in the
// past, so it is a fixed rule rather than an option.
func (d *DataContainer) Merge(other *DataContainer) {
	for _, t := range NoteTypes {
		dst := d.Notes(t)
		for time, r := range other.Notes(t) {
			dst[time] = r
		}
	}
	for time, w := range other.Walls {
		d.Walls[time] = w
	}
	d.Lights = mergeTimes(d.Lights, other.Lights)
	d.Effects = mergeTimes(d.Effects, other.Effects)
}

// SetBPM changes the difficulty's BPM and rescales every time coordinate by
// new/old, re-keying all channels.
func (d *DataContainer) SetBPM(bpm float64) {
	if bpm == d.BPM {
		return
	}
	ratio := bpm / d.BPM
	for _, t := range NoteTypes {
		src := d.Notes(t)
		out := make(NoteMap, len(src))
		for _, r := range src {
			scaled := make(Rail, len(r))
			for i, n := range r {
				n.T *= ratio
				scaled[i] = n
			}
			out[scaled.Head().T] = scaled
		}
		d.SetNotes(t, out)
	}
	walls := make(WallMap, len(d.Walls))
	for _, w := range d.Walls {
		w.T *= ratio
		walls[w.T] = w
	}
	d.Walls = walls
	for i := range d.Lights {
		d.Lights[i] *= ratio
	}
	for i := range d.Effects {
		d.Effects[i] *= ratio
	}
	d.BPM = bpm
}

// FindFreeSlot probes forward from t in steps of step until it finds a time
// no wall occupies.
func (d *DataContainer) FindFreeSlot(t, step float64) float64 {
	for {
		if _, occupied := d.Walls[t]; !occupied {
			return t
		}
		t = math.Round(t/step+1) * step
	}
}

// InsertWall places w at its own time. An existing wall there is displaced
// by one step in the given direction (+1 later, -1 earlier), cascading
// through any further collisions until the whole chain settles.
func (d *DataContainer) InsertWall(w Wall, direction int, step float64) {
	pending := w
	for {
		existing, occupied := d.Walls[pending.T]
		d.Walls[pending.T] = pending
		if !occupied {
			return
		}
		pending = existing
		pending.T = math.Round(pending.T/step+float64(direction)) * step
	}
}

func mergeTimes(a, b []float64) []float64 {
	seen := make(map[float64]struct{}, len(a)+len(b))
	out := make([]float64, 0, len(a)+len(b))
	for _, s := range [][]float64{a, b} {
		for _, t := range s {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				out = append(out, t)
			}
		}
	}
	sort.Float64s(out)
	return out
}
