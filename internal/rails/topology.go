package rails

import (
	"math"

	"git.lost.host/meutraa/remap/internal/synth"
)

// Tolerances for deciding that a rail end and the next rail head are the
// same point.
const (
	// MergeAccuracyGrid is the x/y tolerance in grid squares.
	MergeAccuracyGrid = 1.0 / 8
	// MergeAccuracyBeat is the time tolerance in beats (one file tick).
	MergeAccuracyBeat = 1.0 / 64
)

// The topology operations below are single-pass scans over the channel in
// ascending time order. None of them modify the input map or its rails;
// they return a new map (rails that did not change are shared).

// SplitRails cuts every rail in two wherever a single note falls strictly
// inside its time span. Cuts snap to an existing node at the same time,
// otherwise the note becomes the new boundary node of both halves.
func SplitRails(notes synth.NoteMap) synth.NoteMap {
	var railStart, railEnd float64
	active := false
	out := make(synth.NoteMap, len(notes))

	for _, time := range notes.SortedTimes() {
		if active && time >= railEnd {
			active = false
		}
		nodes := notes[time]
		switch {
		case len(nodes) > 1:
			railStart, railEnd = nodes.Head().T, nodes.Tail().T
			active = true
			out[time] = nodes
		case active:
			prev := out[railStart]
			// last index that is before or at the note
			li := len(prev) - 1
			for prev[li].T > nodes[0].T {
				li--
			}
			// the remainder becomes a new rail headed by the note
			remainder := prev[li:].Clone()
			remainder[0] = nodes[0]
			out[time] = remainder

			if prev[li].T == time {
				// existing node at the cut, leave it as the end
				out[railStart] = prev[:li+1]
			} else {
				// finish the first half with the note itself
				head := prev[: li+2 : li+2].Clone()
				head[li+1] = nodes[0]
				out[railStart] = head
			}
			railStart, railEnd = remainder.Head().T, remainder.Tail().T
		default:
			// freestanding single note
			out[time] = nodes
		}
	}
	return out
}

// SnapSinglesToRail moves single notes that fall on top of a rail onto the
// rail's path.
func SnapSinglesToRail(notes synth.NoteMap) synth.NoteMap {
	var railStart, railEnd float64
	active := false
	out := make(synth.NoteMap, len(notes))

	for _, time := range notes.SortedTimes() {
		if active && time > railEnd {
			active = false
		}
		nodes := notes[time]
		switch {
		case len(nodes) > 1:
			railStart, railEnd = nodes.Head().T, nodes.Tail().T
			active = true
			out[time] = nodes
		case active:
			out[time] = InterpolateSpline(out[railStart], []float64{time})
		default:
			out[time] = nodes
		}
	}
	return out
}

// MergeSequentialRails splices rails whose start matches the previous
// rail's end within the merge tolerances (position and time). The absorbed
// rail leaves a single-note marker at its original start. Single notes pass
// through untouched.
func MergeSequentialRails(notes synth.NoteMap) synth.NoteMap {
	var railStart, railEnd float64
	active := false
	out := make(synth.NoteMap, len(notes))

	for _, time := range notes.SortedTimes() {
		nodes := notes[time]
		if len(nodes) == 1 {
			out[time] = nodes
			continue
		}
		if active && time <= railEnd+MergeAccuracyBeat {
			prev := out[railStart]
			if endsMatch(prev.Tail(), nodes.Head()) {
				// drop the duplicated boundary node and splice
				out[railStart] = append(prev[:len(prev)-1:len(prev)-1], nodes...)
				railEnd = nodes.Tail().T
				// single note marks where the absorbed rail started
				out[time] = nodes[:1]
				continue
			}
		}
		railStart, railEnd = time, nodes.Tail().T
		active = true
		out[time] = nodes
	}
	return out
}

// MergeRails splices every rail that starts within maxInterval beats of the
// previous rail's end, regardless of position. A boundary node duplicated
// within the standard tolerances is still dropped.
func MergeRails(notes synth.NoteMap, maxInterval float64) synth.NoteMap {
	var railStart, railEnd float64
	active := false
	out := make(synth.NoteMap, len(notes))

	for _, time := range notes.SortedTimes() {
		nodes := notes[time]
		if len(nodes) == 1 {
			out[time] = nodes
			continue
		}
		if !active || time > railEnd+maxInterval {
			railStart, railEnd = time, nodes.Tail().T
			active = true
			out[time] = nodes
			continue
		}
		prev := out[railStart]
		if endsMatch(prev.Tail(), nodes.Head()) {
			prev = prev[:len(prev)-1]
		}
		out[railStart] = append(prev[:len(prev):len(prev)], nodes...)
		railEnd = nodes.Tail().T
		out[time] = nodes[:1]
	}
	return out
}

// ConnectSingles concatenates chains of single notes spaced closer than
// maxInterval into one rail. Absorbed notes disappear from the map; only
// the chain's head key remains. Existing rails pass through and break the
// chain.
func ConnectSingles(notes synth.NoteMap, maxInterval float64) synth.NoteMap {
	var railStart, railEnd float64
	active := false
	out := make(synth.NoteMap, len(notes))

	for _, time := range notes.SortedTimes() {
		nodes := notes[time]
		if len(nodes) != 1 {
			active = false
			out[time] = nodes
			continue
		}
		if !active || time > railEnd+maxInterval+MergeAccuracyBeat {
			railStart, railEnd = time, nodes.Tail().T
			active = true
			out[time] = nodes
			continue
		}
		cur := out[railStart]
		out[railStart] = append(cur[:len(cur):len(cur)], nodes...)
		railEnd = nodes.Tail().T
	}
	return out
}

// RailsToSingles explodes every rail into one single note per node. With
// keepRail the rail entry survives and only its tail nodes are written out,
// so the head is not counted twice.
func RailsToSingles(notes synth.NoteMap, keepRail bool) synth.NoteMap {
	out := make(synth.NoteMap, len(notes))
	for _, time := range notes.SortedTimes() {
		nodes := notes[time]
		if len(nodes) == 1 {
			out[time] = nodes
			continue
		}
		first := 0
		if keepRail {
			out[nodes.Head().T] = nodes
			first = 1
		}
		for _, n := range nodes[first:] {
			out[n.T] = synth.Rail{n}
		}
	}
	return out
}

// RailsToNotestacks replaces every rail with interpolated single notes at
// the given interval (negative to stack from the end).
func RailsToNotestacks(notes synth.NoteMap, interval float64, keepRail bool) synth.NoteMap {
	out := make(synth.NoteMap, len(notes))
	for _, time := range notes.SortedTimes() {
		nodes := notes[time]
		if len(nodes) == 1 {
			out[time] = nodes
			continue
		}
		stacked, _ := InterpolateNodes(nodes, Spline, interval)
		first := 0
		if keepRail {
			out[nodes.Head().T] = nodes
			first = 1
		}
		for _, n := range stacked[first:] {
			out[n.T] = synth.Rail{n}
		}
	}
	return out
}

func endsMatch(end, start synth.Node) bool {
	return math.Abs(end.T-start.T) <= MergeAccuracyBeat &&
		math.Abs(end.X-start.X) <= MergeAccuracyGrid &&
		math.Abs(end.Y-start.Y) <= MergeAccuracyGrid
}
