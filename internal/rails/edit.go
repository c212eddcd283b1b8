package rails

import (
	"math"
	"sort"

	"git.lost.host/meutraa/remap/internal/numeric"
	"git.lost.host/meutraa/remap/internal/synth"
)

// ShortenRail removes distance beats of the rail from the end (positive) or
// from the start (negative). Nodes strictly inside the kept span survive
// and a single interpolated node is placed exactly on the new boundary.
// Single notes and zero distance are returned unchanged; cutting more than
// the rail's length leaves only the surviving endpoint.
func ShortenRail(data synth.Rail, distance float64) synth.Rail {
	if len(data) == 1 || distance == 0 {
		return data
	}
	span := data.Tail().T - data.Head().T
	if distance > 0 {
		if span <= distance {
			return data[:1]
		}
		newEnd := data.Tail().T - distance
		// last node strictly before the new end
		li := len(data) - 1
		for data[li].T >= newEnd {
			li--
		}
		boundary := InterpolateSpline(data, []float64{newEnd})
		return append(data[:li+1:li+1], boundary...)
	}
	if span <= -distance {
		return data[len(data)-1:]
	}
	newStart := data.Head().T - distance // distance is negative
	fi := 0
	for data[fi].T <= newStart {
		fi++
	}
	out := InterpolateSpline(data, []float64{newStart})
	return append(out, data[fi:]...)
}

// ExtendLevel appends a level section of the given length at the end, or
// prepends one at the start if negative. Works on single notes too, turning
// them into rails.
func ExtendLevel(data synth.Rail, distance float64) synth.Rail {
	if distance == 0 {
		return data
	}
	if distance > 0 {
		tail := data.Tail()
		tail.T += distance
		return append(data.Clone(), tail)
	}
	head := data.Head()
	head.T += distance
	return append(synth.Rail{head}, data...)
}

// ExtendStraight appends (or prepends, if negative) a section continuing
// the direction of the rail's outermost segment. Single notes have no
// direction and are returned unchanged.
func ExtendStraight(data synth.Rail, distance float64) synth.Rail {
	if len(data) == 1 || distance == 0 {
		return data
	}
	if distance > 0 {
		a, b := data[len(data)-2], data[len(data)-1]
		return append(data.Clone(), continueNode(b, delta(a, b), distance))
	}
	a, b := data[1], data[0]
	return append(synth.Rail{continueNode(b, delta(a, b), distance)}, data...)
}

// ExtendToNext appends a section to each note/rail pointing at the next one
// (or, if negative, prepends a section arriving from the previous one).
// Single notes become rails. The outermost object has no partner and is
// kept as-is.
func ExtendToNext(notes synth.NoteMap, distance float64) synth.NoteMap {
	if len(notes) < 2 || distance == 0 {
		return notes
	}
	out := make(synth.NoteMap, len(notes))
	var last synth.Rail
	if distance > 0 {
		for _, time := range notes.SortedTimes() {
			nodes := notes[time]
			if last != nil {
				d := delta(last.Tail(), nodes.Head())
				ext := append(last.Clone(), continueNode(last.Tail(), d, distance))
				out[ext.Head().T] = ext
			}
			last = nodes
		}
		out[last.Head().T] = last
		return out
	}
	for _, time := range notes.SortedTimes() {
		nodes := notes[time]
		if last != nil {
			d := delta(last.Tail(), nodes.Head())
			ext := append(synth.Rail{continueNode(nodes.Head(), d, distance)}, nodes...)
			out[ext.Head().T] = ext
		} else {
			out[nodes.Head().T] = nodes
		}
		last = nodes
	}
	return out
}

// SegmentRail chops every rail into segments no longer than maxLength
// beats, keyed by each segment's start. Negative maxLength segments from
// the end instead. Short rails and single notes are untouched.
func SegmentRail(notes synth.NoteMap, maxLength float64) synth.NoteMap {
	out := make(synth.NoteMap, len(notes))
	length := math.Abs(maxLength)
	for _, time := range notes.SortedTimes() {
		nodes := notes[time]
		if len(nodes) == 1 || nodes.Tail().T-nodes.Head().T <= length {
			out[time] = nodes
			continue
		}
		steps := numeric.BoundedRangePlusMinus(nodes.Head().T, nodes.Tail().T, maxLength)
		// sample at every original node time plus every segment boundary
		sampleTimes := unionTimes(nodes, steps)
		for i := 0; i+1 < len(steps); i++ {
			// adjacent boundaries delimit each segment, so the partial
			// segment of a from-the-end split stays short
			start, end := steps[i], steps[i+1]
			if start > end {
				start, end = end, start
			}
			var window []float64
			for _, t := range sampleTimes {
				if t >= start-1e-9 && t <= end+1e-9 {
					window = append(window, t)
				}
			}
			out[start] = InterpolateSpline(nodes, window)
		}
	}
	return out
}

func unionTimes(nodes synth.Rail, steps []float64) []float64 {
	seen := make(map[float64]struct{}, len(nodes)+len(steps))
	out := make([]float64, 0, len(nodes)+len(steps))
	for _, n := range nodes {
		if _, ok := seen[n.T]; !ok {
			seen[n.T] = struct{}{}
			out = append(out, n.T)
		}
	}
	for _, s := range steps {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Float64s(out)
	return out
}

func delta(a, b synth.Node) synth.Node {
	return synth.Node{X: b.X - a.X, Y: b.Y - a.Y, T: b.T - a.T}
}

// continueNode extends from n along d so the time component grows by
// distance (negative distance extends backwards).
func continueNode(n, d synth.Node, distance float64) synth.Node {
	f := distance / d.T
	return synth.Node{X: n.X + d.X*f, Y: n.Y + d.Y*f, T: n.T + distance}
}
