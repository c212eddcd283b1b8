package synth

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path"
	"strconv"
)

// BeatmapJSONFile is the beatmap entry inside a .synth zip.
const BeatmapJSONFile = "beatmap.meta.bin"

// FinalizedBookmark marks a map whose walls were already shifted for
// in-game appearance.
const FinalizedBookmark = "#remap_finalized"

// Difficulties lists every difficulty slot the format knows, in order.
var Difficulties = []string{"Easy", "Normal", "Hard", "Expert", "Master", "Custom"}

// Bookmark is a named time marker.
type Bookmark struct {
	Time float64 // beats
	Name string
}

// SynthFile is a loaded .synth beatmap: metadata, bookmarks, the audio
// payload and one DataContainer per non-empty difficulty. Unknown metadata
// fields and extra zip entries are preserved for round-tripping.
type SynthFile struct {
	Name   string
	Author string
	BPM    float64

	Bookmarks    []Bookmark
	Difficulties map[string]*DataContainer

	meta    map[string]json.RawMessage
	entries []zipEntry
	comment string
}

type zipEntry struct {
	name string
	data []byte
}

type bookmarkJSON struct {
	Time float64 `json:"time"`
	Name string  `json:"name"`
}

var ErrNoBeatmap = errors.New("synth: zip holds no " + BeatmapJSONFile)

// LoadFile reads a .synth beatmap from disk.
func LoadFile(name string) (*SynthFile, error) {
	data, err := os.ReadFile(name)
	if nil != err {
		return nil, err
	}
	return ReadFile(bytes.NewReader(data), int64(len(data)))
}

// ReadFile parses a .synth beatmap from a zip stream.
func ReadFile(r io.ReaderAt, size int64) (*SynthFile, error) {
	zr, err := zip.NewReader(r, size)
	if nil != err {
		return nil, fmt.Errorf("synth: bad beatmap zip: %w", err)
	}
	f := &SynthFile{
		Difficulties: map[string]*DataContainer{},
		comment:      zr.Comment,
	}
	var beatmap []byte
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if nil != err {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if nil != err {
			return nil, err
		}
		if zf.Name == BeatmapJSONFile {
			beatmap = data
			continue
		}
		f.entries = append(f.entries, zipEntry{name: zf.Name, data: data})
	}
	if beatmap == nil {
		return nil, ErrNoBeatmap
	}
	if err := f.decodeMeta(beatmap); nil != err {
		return nil, err
	}
	return f, nil
}

func (f *SynthFile) decodeMeta(data []byte) error {
	if err := json.Unmarshal(data, &f.meta); nil != err {
		return fmt.Errorf("synth: bad beatmap json: %w", err)
	}
	f.unmarshalField("Name", &f.Name)
	f.unmarshalField("Author", &f.Author)
	if err := f.unmarshalField("BPM", &f.BPM); nil != err {
		return err
	}
	var bm struct {
		BookmarksList []bookmarkJSON `json:"BookmarksList"`
	}
	f.unmarshalField("Bookmarks", &bm)
	for _, b := range bm.BookmarksList {
		f.Bookmarks = append(f.Bookmarks, Bookmark{Time: b.Time / IndexScale, Name: b.Name})
	}

	var track map[string]map[string][]noteJSON
	var slides map[string][]slideJSON
	var crouchs, squares, triangles map[string][]wallJSON
	var lights, effects map[string][]float64
	f.unmarshalField("Track", &track)
	f.unmarshalField("Slides", &slides)
	f.unmarshalField("Crouchs", &crouchs)
	f.unmarshalField("Squares", &squares)
	f.unmarshalField("Triangles", &triangles)
	f.unmarshalField("Lights", &lights)
	f.unmarshalField("Effects", &effects)

	for _, diff := range Difficulties {
		if len(track[diff]) == 0 && len(slides[diff]) == 0 && len(crouchs[diff]) == 0 &&
			len(squares[diff]) == 0 && len(triangles[diff]) == 0 {
			continue
		}
		d := NewDataContainer(f.BPM)
		for _, group := range track[diff] {
			for _, n := range group {
				t, rail := noteFromSynth(f.BPM, 0, n)
				if int(t) < 0 || int(t) >= len(NoteTypes) {
					return fmt.Errorf("synth: %s: unknown note type %d", diff, t)
				}
				d.Notes(t)[rail.Head().T] = rail
			}
		}
		for _, s := range slides[diff] {
			w := wallFromSynth(f.BPM, 0, WallType(s.SlideType), s.Time, s.Position, s.ZRotation)
			d.Walls[w.T] = w
		}
		for t, ws := range map[WallType][]wallJSON{Crouch: crouchs[diff], Square: squares[diff], Triangle: triangles[diff]} {
			for _, j := range ws {
				w := wallFromSynth(f.BPM, 0, t, j.Time, j.Position, j.ZRotation)
				d.Walls[w.T] = w
			}
		}
		for _, tick := range lights[diff] {
			d.Lights = append(d.Lights, tick/IndexScale)
		}
		for _, tick := range effects[diff] {
			d.Effects = append(d.Effects, tick/IndexScale)
		}
		f.Difficulties[diff] = d
	}
	return nil
}

func (f *SynthFile) unmarshalField(key string, dst interface{}) error {
	raw, ok := f.meta[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); nil != err {
		return fmt.Errorf("synth: bad beatmap field %q: %w", key, err)
	}
	return nil
}

func (f *SynthFile) marshalField(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if nil != err {
		return err
	}
	f.meta[key] = raw
	return nil
}

// Difficulty returns the container for a difficulty, creating it on demand
// so it carries the file's BPM.
func (f *SynthFile) Difficulty(name string) *DataContainer {
	if d, ok := f.Difficulties[name]; ok {
		return d
	}
	d := NewDataContainer(f.BPM)
	f.Difficulties[name] = d
	return d
}

// AudioPayload returns the name and bytes of the embedded audio file, found
// by extension like the song directory scan does.
func (f *SynthFile) AudioPayload() (string, []byte, bool) {
	for _, e := range f.entries {
		switch path.Ext(e.name) {
		case ".ogg", ".mp3", ".wav":
			return e.name, e.data, true
		}
	}
	return "", nil, false
}

// Finalized reports whether the finalize marker bookmark is present.
func (f *SynthFile) Finalized() bool {
	for _, b := range f.Bookmarks {
		if b.Name == FinalizedBookmark {
			return true
		}
	}
	return false
}

// finalizeShift is how far slide-type walls sit too low in the editor
// compared to the game, in grid squares.
const finalizeShift = 2.1

var (
	ErrAlreadyFinalized = errors.New("synth: already finalized")
	ErrNotFinalized     = errors.New("synth: not finalized, will not revert")
)

// Finalize moves slide-type walls up so they appear in game as they do in
// the editor, and drops the marker bookmark.
func (f *SynthFile) Finalize() error {
	if f.Finalized() {
		return ErrAlreadyFinalized
	}
	f.shiftSlides(finalizeShift)
	f.Bookmarks = append(f.Bookmarks, Bookmark{Time: 0, Name: FinalizedBookmark})
	return nil
}

// Revert undoes Finalize.
func (f *SynthFile) Revert() error {
	if !f.Finalized() {
		return ErrNotFinalized
	}
	f.shiftSlides(-finalizeShift)
	kept := f.Bookmarks[:0]
	for _, b := range f.Bookmarks {
		if b.Name != FinalizedBookmark {
			kept = append(kept, b)
		}
	}
	f.Bookmarks = kept
	return nil
}

func (f *SynthFile) shiftSlides(dy float64) {
	for _, d := range f.Difficulties {
		walls := make(WallMap, len(d.Walls))
		for t, w := range d.Walls {
			if _, slide := slideType(w.Type); slide {
				w.Y += dy
			}
			walls[t] = w
		}
		d.Walls = walls
	}
}

func slideType(t WallType) (int, bool) {
	if t >= WallRight && t <= AngleLeft {
		return int(t), true
	}
	return 0, false
}

// Save writes the beatmap back to disk. The zip is built in memory first
// and only written on success.
func (f *SynthFile) Save(name string) error {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if err := zw.SetComment(f.comment); nil != err {
		return err
	}
	meta, err := f.encodeMeta()
	if nil != err {
		return err
	}
	w, err := zw.Create(BeatmapJSONFile)
	if nil != err {
		return err
	}
	if _, err := w.Write(meta); nil != err {
		return err
	}
	for _, e := range f.entries {
		w, err := zw.Create(e.name)
		if nil != err {
			return err
		}
		if _, err := w.Write(e.data); nil != err {
			return err
		}
	}
	if err := zw.Close(); nil != err {
		return err
	}
	return os.WriteFile(name, buf.Bytes(), 0o644)
}

func (f *SynthFile) encodeMeta() ([]byte, error) {
	bms := make([]bookmarkJSON, len(f.Bookmarks))
	for i, b := range f.Bookmarks {
		bms[i] = bookmarkJSON{Time: math.Round(b.Time * IndexScale), Name: b.Name}
	}
	track := map[string]map[string][]noteJSON{}
	slides := map[string][]slideJSON{}
	crouchs := map[string][]wallJSON{}
	squares := map[string][]wallJSON{}
	triangles := map[string][]wallJSON{}
	lights := map[string][]float64{}
	effects := map[string][]float64{}

	for _, diff := range Difficulties {
		d, ok := f.Difficulties[diff]
		if !ok {
			track[diff] = map[string][]noteJSON{}
			continue
		}
		notes := map[string][]noteJSON{}
		for _, t := range NoteTypes {
			for _, time := range d.Notes(t).SortedTimes() {
				rail := d.Notes(t)[time]
				key := strconv.FormatInt(int64(SnapTick(rail.Head().T*IndexScale)), 10)
				notes[key] = append(notes[key], noteToSynth(f.BPM, t, rail))
			}
		}
		track[diff] = notes
		slides[diff] = []slideJSON{}
		crouchs[diff] = []wallJSON{}
		squares[diff] = []wallJSON{}
		triangles[diff] = []wallJSON{}
		for _, w := range d.Walls.Sorted() {
			tick := SnapTick(w.T * IndexScale)
			pos := CoordToSynth(f.BPM, Node{X: w.X, Y: w.Y, T: w.T})
			switch w.Type {
			case Crouch:
				crouchs[diff] = append(crouchs[diff], wallJSON{Time: tick, Position: pos, ZRotation: w.Rotation, Initialized: true})
			case Square:
				squares[diff] = append(squares[diff], wallJSON{Time: tick, Position: pos, ZRotation: w.Rotation, Initialized: true})
			case Triangle:
				triangles[diff] = append(triangles[diff], wallJSON{Time: tick, Position: pos, ZRotation: w.Rotation, Initialized: true})
			default:
				slides[diff] = append(slides[diff], slideJSON{Time: tick, SlideType: int(w.Type), Position: pos, ZRotation: w.Rotation, Initialized: true})
			}
		}
		for _, t := range d.Lights {
			lights[diff] = append(lights[diff], math.Round(t*IndexScale))
		}
		for _, t := range d.Effects {
			effects[diff] = append(effects[diff], math.Round(t*IndexScale))
		}
	}

	fields := []struct {
		key string
		val interface{}
	}{
		{"Name", f.Name},
		{"Author", f.Author},
		{"BPM", f.BPM},
		{"Bookmarks", map[string]interface{}{"BookmarksList": bms}},
		{"Track", track},
		{"Slides", slides},
		{"Crouchs", crouchs},
		{"Squares", squares},
		{"Triangles", triangles},
		{"Lights", lights},
		{"Effects", effects},
	}
	for _, fd := range fields {
		if err := f.marshalField(fd.key, fd.val); nil != err {
			return nil, err
		}
	}
	return json.Marshal(f.meta)
}
