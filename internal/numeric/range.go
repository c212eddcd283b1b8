package numeric

import "math"

// BeatToSecond converts beats to seconds at the given BPM.
func BeatToSecond(beat, bpm float64) float64 {
	return beat * 60 / bpm
}

// SecondToBeat converts seconds to beats at the given BPM.
func SecondToBeat(second, bpm float64) float64 {
	return second * bpm / 60
}

// Close reports whether two values match within the usual floating
// tolerance (relative 1e-5, absolute 1e-8).
func Close(a, b float64) bool {
	return math.Abs(a-b) <= 1e-8+1e-5*math.Abs(b)
}

// BoundedRange generates start, start+step, ... and guarantees the final
// value equals end exactly. The natural sequence intentionally overshoots
// past end by up to one step; when the penultimate value already matches end
// the overshoot is dropped, otherwise the last value is clamped to end.
// step must be positive and start <= end.
func BoundedRange(start, end, step float64) []float64 {
	n := int(math.Ceil((end + step - start) / step))
	if n < 2 {
		return []float64{end}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	if Close(out[n-2], end) {
		out[n-2] = end
		return out[:n-1]
	}
	out[n-1] = end
	return out
}

// BoundedRangePlusMinus is BoundedRange with support for a negative step,
// in which case the values run from end down to start.
func BoundedRangePlusMinus(start, end, step float64) []float64 {
	if step > 0 {
		return BoundedRange(start, end, step)
	}
	out := BoundedRange(0, end-start, -step)
	for i, v := range out {
		out[i] = end - v
	}
	return out
}
