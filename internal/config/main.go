package config

import (
	"strconv"
	"strings"

	"git.lost.host/meutraa/remap/internal/numeric"
	"git.lost.host/meutraa/remap/internal/pattern"
	"git.lost.host/meutraa/remap/internal/synth"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Input       = kingpin.Flag("input", "Clipboard payload file, - for stdin").Default("-").Short('i').String()
	Output      = kingpin.Flag("output", "Output file, - for stdout").Default("-").Short('O').String()
	UseOriginal = kingpin.Flag("use-original", "Start over from the payload embedded by an earlier invocation").Bool()
	filterTypes = kingpin.Flag("filter-types", "Only affect these channels (note types, wall types, walls, lights, effects)").Short('f').Strings()

	// pre-processing
	MergeRails     = kingpin.Flag("merge-rails", "Merge sequential rails").Bool()
	mergeInterval  = kingpin.Flag("merge-interval", "Also merge rails whose gap is at most this many beats").Default("0").String()
	changeType     = kingpin.Flag("change-type", "Change the type/color of notes").Short('t').String()
	connectSingles = kingpin.Flag("connect-singles", "Connect single notes at most this many beats apart into rails").Default("0").String()
	SnapSingles    = kingpin.Flag("snap-singles", "Snap single notes onto rails passing through their time").Bool()

	// movement, in grid squares (+x right, +y up) and beats
	pivot    = kingpin.Flag("pivot", "Pivot for scale and rotate as x,y,t").Short('p').String()
	Relative = kingpin.Flag("relative", "Use the head of each rail as the pivot").Bool()
	scale    = kingpin.Flag("scale", "Scale by x,y,t. Negative values mirror across the axis").Short('s').String()
	Rotate   = kingpin.Flag("rotate", "Rotate counterclockwise by degrees").Short('r').Float64()
	offset   = kingpin.Flag("offset", "Move by x,y,t").Short('o').String()
	Outset   = kingpin.Flag("outset", "Push positions away from the pivot by this many grid squares").Float64()

	// rails
	interpolate     = kingpin.Flag("interpolate", "Resample rails at this interval in beats, e.g. 1/16").String()
	InterpolateMode = kingpin.Flag("interpolate-mode", "Rail interpolation mode").Default("spline").Enum("linear", "hermite", "spline")
	shortenRails    = kingpin.Flag("shorten-rails", "Cut this many beats off the end of every rail").Default("0").String()
	segmentRails    = kingpin.Flag("segment-rails", "Split rails into segments at most this many beats long").Default("0").String()
	toSingles       = kingpin.Flag("rails-to-singles", "Turn rail nodes into single notes").Bool()
	toNotestacks    = kingpin.Flag("rails-to-notestacks", "Turn rails into note stacks at this interval in beats").Default("0").String()
	KeepRails       = kingpin.Flag("keep-rails", "Keep the source rails when converting to singles or stacks").Bool()

	// pattern generation
	spiral        = kingpin.Flag("spiral", "Wrap rail nodes in a spiral, this many nodes per full turn. 0 picks random ring positions").String()
	spikes        = kingpin.Flag("spikes", "Replace rail nodes with radial spikes, rotating like --spiral").String()
	Radius        = kingpin.Flag("radius", "Spiral/spike radius in grid squares").Default("1").Float64()
	StartAngle    = kingpin.Flag("start-angle", "Spiral/spike start angle in degrees").Default("0").Float64()
	SpikeDuration = kingpin.Flag("spike-duration", "Spike length in beats").Default("0.0625").Float64()
	Clockwise     = kingpin.Flag("clockwise", "Wind spirals and spikes clockwise instead of counterclockwise").Bool()
	Parallel      = kingpin.Flag("parallel", "Create parallel patterns this many grid squares apart").Default("0").Float64()

	// walls
	FindPatterns  = kingpin.Flag("find-wall-patterns", "Report repeating wall patterns in the selection").Bool()
	BlendWalls    = kingpin.Flag("blend-walls", "Blend between repetitions of a wall pattern").Bool()
	blendInterval = kingpin.Flag("blend-interval", "Spacing of blended walls in beats").Default("1/64").String()
	WithSymmetry  = kingpin.Flag("with-symmetry", "Blend rotation the short way around the wall's symmetry").Bool()
	changeWall    = kingpin.Flag("change-wall-type", "Change every wall to this type").String()
	symmetry      = kingpin.Flag("symmetry", "Mirror or rotate walls: mirror-x, mirror-y or rotate:N. Repeat to chain").Strings()

	// post-processing
	SplitRails    = kingpin.Flag("split-rails", "Split rails at single notes").Bool()
	KeepAlignment = kingpin.Flag("keep-alignment", "Do not shift the start of the selection to its first object").Bool()

	// .synth files
	Info     = kingpin.Flag("info", "Print summary, audio and density info for a .synth file").ExistingFile()
	Finalize = kingpin.Flag("finalize", "Shift slide walls of a .synth file for in-game appearance").ExistingFile()
	Revert   = kingpin.Flag("revert", "Undo --finalize instead of applying it").Bool()

	Filter         synth.Filter
	HasFilter      bool
	Pivot          [3]float64
	HasPivot       bool
	Scale          [3]float64
	HasScale       bool
	Offset         [3]float64
	HasOffset      bool
	MergeInterval  float64
	ConnectSingles float64
	Interpolate    float64
	ShortenRails   float64
	SegmentRails   float64
	ToSingles      bool
	ToNotestacks   float64
	Spiral         float64
	HasSpiral      bool
	Spikes         float64
	HasSpikes      bool
	BlendInterval  float64
	ChangeType     synth.NoteType
	HasChangeType  bool
	ChangeWall     synth.WallType
	HasChangeWall  bool
	Symmetry       []pattern.SymmetryOp
)

func beats(name, val string) float64 {
	if val == "" {
		return 0
	}
	v, err := numeric.ParseNumber(val)
	if nil != err {
		kingpin.Fatalf("--%v: %v", name, err)
	}
	return v
}

func vector(name, val string) ([3]float64, bool) {
	if val == "" {
		return [3]float64{}, false
	}
	v, err := numeric.ParseVector(val)
	if nil != err {
		kingpin.Fatalf("--%v: %v", name, err)
	}
	return v, true
}

func init() {
	kingpin.Version("0.3.0")
	kingpin.Parse()

	var ok bool
	if len(*filterTypes) > 0 {
		Filter, ok = synth.FilterNamed(*filterTypes)
		if !ok {
			kingpin.Fatalf("--filter-types: unknown channel in %v", *filterTypes)
		}
		HasFilter = true
	}
	if *changeType != "" {
		ChangeType, ok = synth.NoteTypeNamed(*changeType)
		if !ok {
			kingpin.Fatalf("--change-type: unknown note type %q", *changeType)
		}
		HasChangeType = true
	}
	if *changeWall != "" {
		ChangeWall, ok = synth.WallTypeNamed(*changeWall)
		if !ok {
			kingpin.Fatalf("--change-wall-type: unknown wall type %q", *changeWall)
		}
		HasChangeWall = true
	}
	Pivot, HasPivot = vector("pivot", *pivot)
	Scale, HasScale = vector("scale", *scale)
	Offset, HasOffset = vector("offset", *offset)
	MergeInterval = beats("merge-interval", *mergeInterval)
	ConnectSingles = beats("connect-singles", *connectSingles)
	Interpolate = beats("interpolate", *interpolate)
	ShortenRails = beats("shorten-rails", *shortenRails)
	SegmentRails = beats("segment-rails", *segmentRails)
	ToSingles = *toSingles
	ToNotestacks = beats("rails-to-notestacks", *toNotestacks)
	Spiral = beats("spiral", *spiral)
	HasSpiral = *spiral != ""
	Spikes = beats("spikes", *spikes)
	HasSpikes = *spikes != ""
	BlendInterval = beats("blend-interval", *blendInterval)
	for _, s := range *symmetry {
		switch {
		case s == "mirror-x":
			Symmetry = append(Symmetry, pattern.SymmetryOp{Kind: pattern.MirrorX})
		case s == "mirror-y":
			Symmetry = append(Symmetry, pattern.SymmetryOp{Kind: pattern.MirrorY})
		case strings.HasPrefix(s, "rotate:"):
			order, err := strconv.Atoi(strings.TrimPrefix(s, "rotate:"))
			if nil != err {
				kingpin.Fatalf("--symmetry: bad rotation order in %q", s)
			}
			Symmetry = append(Symmetry, pattern.SymmetryOp{Kind: pattern.Rotational, Order: order})
		default:
			kingpin.Fatalf("--symmetry: unknown operation %q", s)
		}
	}
}

// Direction is the winding for spirals and spikes.
func Direction() int {
	if *Clockwise {
		return -1
	}
	return 1
}
