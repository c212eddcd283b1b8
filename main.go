package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"git.lost.host/meutraa/remap/internal/analysis"
	"git.lost.host/meutraa/remap/internal/audio"
	"git.lost.host/meutraa/remap/internal/config"
	"git.lost.host/meutraa/remap/internal/movement"
	"git.lost.host/meutraa/remap/internal/numeric"
	"git.lost.host/meutraa/remap/internal/pattern"
	"git.lost.host/meutraa/remap/internal/rails"
	"git.lost.host/meutraa/remap/internal/synth"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func run() error {
	switch {
	case *config.Info != "":
		return fileInfo(*config.Info)
	case *config.Finalize != "":
		return finalize(*config.Finalize, *config.Revert)
	}
	return process()
}

func readInput() ([]byte, error) {
	if *config.Input == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(*config.Input)
}

func writeOutput(data []byte) error {
	if *config.Output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(*config.Output, data, 0o644)
}

func process() error {
	raw, err := readInput()
	if nil != err {
		return fmt.Errorf("unable to read input: %w", err)
	}
	d, err := synth.DecodeClipboard(raw, *config.UseOriginal)
	if nil != err {
		return err
	}

	// nil selects every channel
	noteTypes := config.Filter.Notes

	preProcess(d, noteTypes)
	if err := applyMovement(d, noteTypes); nil != err {
		return err
	}
	if err := applyRails(d, noteTypes); nil != err {
		return err
	}
	if err := applyPatterns(d, noteTypes); nil != err {
		return err
	}
	if *config.SplitRails {
		d.ApplyForNoteMaps(rails.SplitRails, noteTypes...)
	}

	out, err := synth.EncodeClipboard(d, !*config.KeepAlignment)
	if nil != err {
		return err
	}
	return writeOutput(out)
}

// wallsActive reports whether the filter lets wall operations run at all.
func wallsActive() bool {
	return !config.HasFilter || config.Filter.Walls || len(config.Filter.WallTypes) > 0
}

func wallSelected(w synth.Wall) bool {
	if !config.HasFilter || config.Filter.Walls {
		return true
	}
	for _, t := range config.Filter.WallTypes {
		if w.Type == t {
			return true
		}
	}
	return false
}

func lightsActive() bool  { return !config.HasFilter || config.Filter.Lights }
func effectsActive() bool { return !config.HasFilter || config.Filter.Effects }

// transformWalls rewrites the selected walls through f and leaves the rest
// untouched. A moved wall that lands on an untouched one wins the slot.
func transformWalls(d *synth.DataContainer, f func([]synth.Wall) ([]synth.Wall, error)) error {
	if !wallsActive() {
		return nil
	}
	var sel, rest []synth.Wall
	for _, w := range d.Walls.Sorted() {
		if wallSelected(w) {
			sel = append(sel, w)
		} else {
			rest = append(rest, w)
		}
	}
	out, err := f(sel)
	if nil != err {
		return err
	}
	m := make(synth.WallMap, len(out)+len(rest))
	for _, w := range rest {
		m[w.T] = w
	}
	for _, w := range out {
		m[w.T] = w
	}
	d.Walls = m
	return nil
}

func preProcess(d *synth.DataContainer, noteTypes []synth.NoteType) {
	if config.HasChangeType {
		changeNoteType(d, noteTypes, config.ChangeType)
	}
	if *config.MergeRails {
		d.ApplyForNoteMaps(rails.MergeSequentialRails, noteTypes...)
	}
	if config.MergeInterval > 0 {
		d.ApplyForNoteMaps(func(m synth.NoteMap) synth.NoteMap {
			return rails.MergeRails(m, config.MergeInterval)
		}, noteTypes...)
	}
	if config.ConnectSingles > 0 {
		d.ApplyForNoteMaps(func(m synth.NoteMap) synth.NoteMap {
			return rails.ConnectSingles(m, config.ConnectSingles)
		}, noteTypes...)
	}
	if *config.SnapSingles {
		d.ApplyForNoteMaps(rails.SnapSinglesToRail, noteTypes...)
	}
}

// changeNoteType moves the selected channels into target. Notes already in
// the target channel keep their slot on a time collision.
func changeNoteType(d *synth.DataContainer, noteTypes []synth.NoteType, target synth.NoteType) {
	if len(noteTypes) == 0 {
		noteTypes = synth.NoteTypes
	}
	dst := d.Notes(target)
	for _, t := range noteTypes {
		if t == target {
			continue
		}
		for time, r := range d.Notes(t) {
			if _, ok := dst[time]; !ok {
				dst[time] = r
			}
		}
		d.SetNotes(t, synth.NoteMap{})
	}
}

// applyMovement runs the transform stage in the fixed order scale, rotate,
// offset, outset.
func applyMovement(d *synth.DataContainer, noteTypes []synth.NoteType) error {
	if config.HasScale {
		if config.Scale[2] == 0 {
			return movement.ErrZeroTimeScale
		}
		scaleRail := func(r synth.Rail) synth.Rail {
			var out synth.Rail
			switch {
			case *config.Relative:
				out, _ = movement.ScaleRelative(r, config.Scale)
			case config.HasPivot:
				out, _ = movement.ScaleFrom(r, config.Scale, config.Pivot)
			default:
				out, _ = movement.Scale(r, config.Scale)
			}
			return out
		}
		d.ApplyForNotes(scaleRail, noteTypes...)
		err := transformWalls(d, func(ws []synth.Wall) ([]synth.Wall, error) {
			if *config.Relative {
				out := make([]synth.Wall, 0, len(ws))
				for _, w := range ws {
					one, err := movement.ScaleWallsFrom([]synth.Wall{w}, config.Scale, [3]float64{w.X, w.Y, w.T})
					if nil != err {
						return nil, err
					}
					out = append(out, one...)
				}
				return out, nil
			}
			if config.HasPivot {
				return movement.ScaleWallsFrom(ws, config.Scale, config.Pivot)
			}
			return movement.ScaleWalls(ws, config.Scale)
		})
		if nil != err {
			return err
		}
		if lightsActive() {
			scaleTimes(d.Lights, config.Scale[2])
		}
		if effectsActive() {
			scaleTimes(d.Effects, config.Scale[2])
		}
	}

	if *config.Rotate != 0 {
		angle := *config.Rotate
		d.ApplyForNotes(func(r synth.Rail) synth.Rail {
			switch {
			case *config.Relative:
				return movement.RotateRelative(r, angle)
			case config.HasPivot:
				return movement.RotateAround(r, angle, config.Pivot)
			default:
				return movement.Rotate(r, angle)
			}
		}, noteTypes...)
		if err := transformWalls(d, func(ws []synth.Wall) ([]synth.Wall, error) {
			if config.HasPivot {
				return movement.RotateWallsAround(ws, angle, config.Pivot), nil
			}
			return movement.RotateWalls(ws, angle), nil
		}); nil != err {
			return err
		}
	}

	if config.HasOffset {
		delta := config.Offset
		d.ApplyForNotes(func(r synth.Rail) synth.Rail {
			return movement.Offset(r, delta)
		}, noteTypes...)
		if err := transformWalls(d, func(ws []synth.Wall) ([]synth.Wall, error) {
			return movement.OffsetWalls(ws, delta, *config.Relative), nil
		}); nil != err {
			return err
		}
		if lightsActive() {
			shiftTimes(d.Lights, delta[2])
		}
		if effectsActive() {
			shiftTimes(d.Effects, delta[2])
		}
	}

	if *config.Outset != 0 {
		amount := *config.Outset
		d.ApplyForNotes(func(r synth.Rail) synth.Rail {
			switch {
			case *config.Relative:
				return movement.OutsetRelative(r, amount)
			case config.HasPivot:
				return movement.OutsetFrom(r, amount, config.Pivot)
			default:
				return movement.Outset(r, amount)
			}
		}, noteTypes...)
		if err := transformWalls(d, func(ws []synth.Wall) ([]synth.Wall, error) {
			return movement.OutsetWalls(ws, amount, config.Pivot), nil
		}); nil != err {
			return err
		}
	}
	return nil
}

func shiftTimes(times []float64, delta float64) {
	for i := range times {
		times[i] += delta
	}
}

func scaleTimes(times []float64, factor float64) {
	for i := range times {
		times[i] *= factor
	}
}

func interpolationMode() rails.Mode {
	switch *config.InterpolateMode {
	case "linear":
		return rails.Linear
	case "hermite":
		return rails.Hermite
	}
	return rails.Spline
}

func applyRails(d *synth.DataContainer, noteTypes []synth.NoteType) error {
	if config.Interpolate > 0 {
		mode := interpolationMode()
		d.ApplyForNotes(func(r synth.Rail) synth.Rail {
			out, _ := rails.InterpolateNodes(r, mode, config.Interpolate)
			return out
		}, noteTypes...)
	}
	if config.ShortenRails > 0 {
		d.ApplyForNotes(func(r synth.Rail) synth.Rail {
			return rails.ShortenRail(r, config.ShortenRails)
		}, noteTypes...)
	}
	if config.SegmentRails != 0 {
		d.ApplyForNoteMaps(func(m synth.NoteMap) synth.NoteMap {
			return rails.SegmentRail(m, config.SegmentRails)
		}, noteTypes...)
	}
	if config.ToSingles {
		d.ApplyForNoteMaps(func(m synth.NoteMap) synth.NoteMap {
			return rails.RailsToSingles(m, *config.KeepRails)
		}, noteTypes...)
	}
	if config.ToNotestacks > 0 {
		d.ApplyForNoteMaps(func(m synth.NoteMap) synth.NoteMap {
			return rails.RailsToNotestacks(m, config.ToNotestacks, *config.KeepRails)
		}, noteTypes...)
	}
	return nil
}

// patternTypes spells out the default channels so spirals can wind the
// opposite way on the left hand.
func patternTypes(noteTypes []synth.NoteType) []synth.NoteType {
	if len(noteTypes) == 0 {
		return synth.NoteTypes
	}
	return noteTypes
}

func applyPatterns(d *synth.DataContainer, noteTypes []synth.NoteType) error {
	if config.HasSpiral {
		for _, t := range patternTypes(noteTypes) {
			dir := handDirection(t)
			d.ApplyForNotes(func(r synth.Rail) synth.Rail {
				return pattern.AddSpiral(r, config.Spiral, *config.Radius, *config.StartAngle, dir)
			}, t)
		}
	}
	if config.HasSpikes {
		for _, t := range patternTypes(noteTypes) {
			dir := handDirection(t)
			d.ApplyForNotes(func(r synth.Rail) synth.Rail {
				return pattern.AddSpikes(r, config.Spikes, *config.Radius, *config.SpikeDuration, *config.StartAngle, dir)
			}, t)
		}
	}
	if *config.Parallel != 0 {
		pattern.CreateParallel(d, *config.Parallel)
	}

	if *config.FindPatterns {
		cands, err := pattern.FindWallPatterns(d.Walls)
		if nil != err {
			return err
		}
		for _, c := range cands {
			log.Printf("pattern of %d walls, repeated %d times over %s beats\n",
				c.Size, c.Count, numeric.PrettyFraction(c.Length))
		}
	}
	if *config.BlendWalls {
		if err := blendWalls(d); nil != err {
			return err
		}
	}
	if len(config.Symmetry) > 0 {
		out, err := pattern.GenerateSymmetry(d.Walls, config.Symmetry, config.BlendInterval, config.Pivot)
		if nil != err {
			return err
		}
		d.Walls = out
	}
	if config.HasChangeWall {
		if err := transformWalls(d, func(ws []synth.Wall) ([]synth.Wall, error) {
			return pattern.ChangeWallType(ws, config.ChangeWall), nil
		}); nil != err {
			return err
		}
	}
	return nil
}

func handDirection(t synth.NoteType) int {
	if t == synth.NoteLeft {
		return -config.Direction()
	}
	return config.Direction()
}

// blendWalls finds the largest repeating wall pattern and fills the gaps
// between its repetitions. Existing walls keep their slots.
func blendWalls(d *synth.DataContainer) error {
	cands, err := pattern.FindWallPatterns(d.Walls)
	if nil != err {
		return err
	}
	best := cands[0]
	sorted := d.Walls.Sorted()
	groups := make([][]synth.Wall, best.Count)
	for i := range groups {
		groups[i] = sorted[i*best.Size : (i+1)*best.Size]
	}
	blended, err := pattern.BlendWallsMultiple(groups, config.BlendInterval, *config.WithSymmetry)
	if nil != err {
		return err
	}
	for t, w := range blended {
		if _, ok := d.Walls[t]; !ok {
			d.Walls[t] = w
		}
	}
	return nil
}

func fileInfo(name string) error {
	f, err := synth.LoadFile(name)
	if nil != err {
		return err
	}
	fmt.Printf("%s by %s, %v bpm\n", f.Name, f.Author, f.BPM)
	if audioName, data, ok := f.AudioPayload(); ok {
		info, err := audio.ReadInfo(audioName, data)
		if nil != err {
			return err
		}
		fmt.Printf("audio: %s, %s, %v, %d channel(s)\n",
			info.Format, numeric.PrettyTimeDelta(info.Duration.Seconds()),
			info.SampleRate, info.Channels)
	}
	for _, b := range f.Bookmarks {
		fmt.Printf("bookmark %q at beat %s\n", b.Name, numeric.PrettyFraction(b.Time))
	}
	for _, diff := range synth.Difficulties {
		d, ok := f.Difficulties[diff]
		if !ok {
			continue
		}
		notes, nodes := 0, 0
		for _, t := range synth.NoteTypes {
			for _, r := range d.Notes(t) {
				notes++
				nodes += len(r) - 1
			}
		}
		fmt.Printf("%s: %d notes (%d rail nodes), %d walls, %d lights, %d effects\n",
			diff, notes, nodes, len(d.Walls), len(d.Lights), len(d.Effects))

		wd := analysis.WallDensities(d)
		peakPerType := 0
		for name, curve := range wd {
			if name != analysis.Combined && curve.Max > peakPerType {
				peakPerType = curve.Max
			}
		}
		fmt.Printf("  walls combined: %s\n", analysis.WallMode(wd[analysis.Combined].Max, true))
		fmt.Printf("  walls per type: %s\n", analysis.WallMode(peakPerType, false))
		nd := analysis.NoteDensities(d)
		fmt.Printf("  peak notes in view: %d\n", nd[analysis.Combined][analysis.KindNote].Max)
	}
	return nil
}

func finalize(name string, revert bool) error {
	f, err := synth.LoadFile(name)
	if nil != err {
		return err
	}
	if revert {
		err = f.Revert()
	} else {
		err = f.Finalize()
	}
	if nil != err {
		return err
	}
	return f.Save(name)
}
