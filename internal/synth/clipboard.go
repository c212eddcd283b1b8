package synth

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// The editor's clipboard payload. Field names (including the "lenght" typo)
// belong to the game and must not be fixed here.
type clipboardJSON struct {
	BPM          float64               `json:"BPM"`
	StartMeasure float64               `json:"startMeasure"`
	StartTime    float64               `json:"startTime"`
	Length       float64               `json:"lenght"`
	Notes        map[string][]noteJSON `json:"notes"`
	Effects      []float64             `json:"effects"`
	Jumps        []float64             `json:"jumps"`
	Crouchs      []wallJSON            `json:"crouchs"`
	Squares      []wallJSON            `json:"squares"`
	Triangles    []wallJSON            `json:"triangles"`
	Slides       []slideJSON           `json:"slides"`
	Lights       []float64             `json:"lights"`
	OriginalJSON string                `json:"original_json,omitempty"`
}

type noteJSON struct {
	Position [3]float64   `json:"Position"`
	Segments [][3]float64 `json:"Segments"`
	Type     int          `json:"Type"`
}

type wallJSON struct {
	Time        float64    `json:"time"`
	Position    [3]float64 `json:"position"`
	ZRotation   float64    `json:"zRotation"`
	Initialized bool       `json:"initialized"`
}

type slideJSON struct {
	Time        float64    `json:"time"`
	SlideType   int        `json:"slideType"`
	Position    [3]float64 `json:"position"`
	ZRotation   float64    `json:"zRotation"`
	Initialized bool       `json:"initialized"`
}

func noteFromSynth(bpm, startMeasure float64, n noteJSON) (NoteType, Rail) {
	rail := Rail{CoordFromSynth(bpm, startMeasure, n.Position)}
	for _, seg := range n.Segments {
		rail = append(rail, CoordFromSynth(bpm, startMeasure, seg))
	}
	return NoteType(n.Type), rail
}

func noteToSynth(bpm float64, t NoteType, rail Rail) noteJSON {
	out := noteJSON{Position: CoordToSynth(bpm, rail[0]), Type: int(t)}
	for _, n := range rail[1:] {
		out.Segments = append(out.Segments, CoordToSynth(bpm, n))
	}
	return out
}

func wallFromSynth(bpm, startMeasure float64, t WallType, time float64, pos [3]float64, rot float64) Wall {
	n := CoordFromSynth(bpm, startMeasure, pos)
	return Wall{
		X: n.X, Y: n.Y,
		T:        (time - startMeasure) / IndexScale,
		Type:     t,
		Rotation: rot,
	}
}

// DecodeClipboard parses a clipboard payload into a container. With
// useOriginal set, an embedded original payload from an earlier invocation
// is decoded instead of the (possibly already modified) outer one.
func DecodeClipboard(data []byte, useOriginal bool) (*DataContainer, error) {
	var cb clipboardJSON
	if err := json.Unmarshal(data, &cb); nil != err {
		return nil, fmt.Errorf("synth: bad clipboard json: %w", err)
	}
	if useOriginal && cb.OriginalJSON != "" {
		data = []byte(cb.OriginalJSON)
		if err := json.Unmarshal(data, &cb); nil != err {
			return nil, fmt.Errorf("synth: bad original clipboard json: %w", err)
		}
	}
	d := NewDataContainer(cb.BPM)
	d.Original = string(data)

	for _, group := range cb.Notes {
		for _, n := range group {
			t, rail := noteFromSynth(cb.BPM, cb.StartMeasure, n)
			if int(t) < 0 || int(t) >= len(NoteTypes) {
				return nil, fmt.Errorf("synth: unknown note type %d", t)
			}
			d.Notes(t)[rail.Head().T] = rail
		}
	}
	for _, s := range cb.Slides {
		if _, ok := WallLookup[WallType(s.SlideType)]; !ok {
			return nil, fmt.Errorf("synth: unknown slide type %d", s.SlideType)
		}
		w := wallFromSynth(cb.BPM, cb.StartMeasure, WallType(s.SlideType), s.Time, s.Position, s.ZRotation)
		d.Walls[w.T] = w
	}
	for t, ws := range map[WallType][]wallJSON{Crouch: cb.Crouchs, Square: cb.Squares, Triangle: cb.Triangles} {
		for _, j := range ws {
			w := wallFromSynth(cb.BPM, cb.StartMeasure, t, j.Time, j.Position, j.ZRotation)
			d.Walls[w.T] = w
		}
	}
	for _, tick := range cb.Lights {
		d.Lights = append(d.Lights, (tick-cb.StartMeasure)/IndexScale)
	}
	for _, tick := range cb.Effects {
		d.Effects = append(d.Effects, (tick-cb.StartMeasure)/IndexScale)
	}
	sort.Float64s(d.Lights)
	sort.Float64s(d.Effects)
	return d, nil
}

// EncodeClipboard serializes the container back into a clipboard payload.
// With realign set (the default on the CLI) every time shifts so the first
// object sits at the selection start.
func EncodeClipboard(d *DataContainer, realign bool) ([]byte, error) {
	shift := 0.0
	if realign {
		if first, ok := firstTime(d); ok {
			shift = -first
		}
	}
	cb := clipboardJSON{
		BPM:   d.BPM,
		Notes: map[string][]noteJSON{},
		// everything is relative to the selection start, so these stay 0
		StartMeasure: 0,
		StartTime:    0,
		Effects:      []float64{},
		Jumps:        []float64{},
		Crouchs:      []wallJSON{},
		Squares:      []wallJSON{},
		Triangles:    []wallJSON{},
		Slides:       []slideJSON{},
		Lights:       []float64{},
		OriginalJSON: d.Original,
	}
	end := 0.0
	for _, t := range NoteTypes {
		for _, time := range d.Notes(t).SortedTimes() {
			rail := d.Notes(t)[time]
			if shift != 0 {
				rail = shiftRail(rail, shift)
			}
			key := strconv.FormatInt(int64(SnapTick(rail.Head().T*IndexScale)), 10)
			cb.Notes[key] = append(cb.Notes[key], noteToSynth(d.BPM, t, rail))
			if last := rail.Tail().T; last > end {
				end = last
			}
		}
	}
	for _, w := range d.Walls.Sorted() {
		w.T += shift
		tick := SnapTick(w.T * IndexScale)
		pos := CoordToSynth(d.BPM, Node{X: w.X, Y: w.Y, T: w.T})
		if w.T > end {
			end = w.T
		}
		switch w.Type {
		case Crouch:
			cb.Crouchs = append(cb.Crouchs, wallJSON{Time: tick, Position: pos, ZRotation: w.Rotation, Initialized: true})
		case Square:
			cb.Squares = append(cb.Squares, wallJSON{Time: tick, Position: pos, ZRotation: w.Rotation, Initialized: true})
		case Triangle:
			cb.Triangles = append(cb.Triangles, wallJSON{Time: tick, Position: pos, ZRotation: w.Rotation, Initialized: true})
		default:
			cb.Slides = append(cb.Slides, slideJSON{Time: tick, SlideType: int(w.Type), Position: pos, ZRotation: w.Rotation, Initialized: true})
		}
	}
	for _, t := range d.Lights {
		cb.Lights = append(cb.Lights, math.Round((t+shift)*IndexScale))
	}
	for _, t := range d.Effects {
		cb.Effects = append(cb.Effects, math.Round((t+shift)*IndexScale))
	}
	// selection length in milliseconds
	cb.Length = end * 60000 / d.BPM
	return json.Marshal(cb)
}

func shiftRail(r Rail, shift float64) Rail {
	out := r.Clone()
	for i := range out {
		out[i].T += shift
	}
	return out
}

func firstTime(d *DataContainer) (float64, bool) {
	first := math.Inf(1)
	for _, t := range NoteTypes {
		for time := range d.Notes(t) {
			if time < first {
				first = time
			}
		}
	}
	for time := range d.Walls {
		if time < first {
			first = time
		}
	}
	for _, s := range [][]float64{d.Lights, d.Effects} {
		for _, time := range s {
			if time < first {
				first = time
			}
		}
	}
	return first, !math.IsInf(first, 1)
}
