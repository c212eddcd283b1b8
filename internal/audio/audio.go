// Package audio reads metadata from the audio payload of a beatmap.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// Info describes a decoded audio payload.
type Info struct {
	Name       string
	Format     string
	Duration   time.Duration
	SampleRate beep.SampleRate
	Channels   int
}

// ReadInfo decodes just enough of an audio payload to report its duration
// and format. The codec is chosen by file extension.
func ReadInfo(name string, data []byte) (Info, error) {
	rc := io.NopCloser(bytes.NewReader(data))
	var streamer beep.StreamSeekCloser
	var format beep.Format
	var err error
	ext := path.Ext(name)
	switch ext {
	case ".ogg":
		streamer, format, err = vorbis.Decode(rc)
	case ".mp3":
		streamer, format, err = mp3.Decode(rc)
	case ".wav":
		streamer, format, err = wav.Decode(rc)
	default:
		return Info{}, fmt.Errorf("audio: unsupported payload %q", name)
	}
	if nil != err {
		return Info{}, fmt.Errorf("audio: decode %v: %w", name, err)
	}
	defer streamer.Close()
	return Info{
		Name:       name,
		Format:     ext[1:],
		Duration:   format.SampleRate.D(streamer.Len()),
		SampleRate: format.SampleRate,
		Channels:   format.NumChannels,
	}, nil
}
