// Package numeric holds the small parsing and range helpers shared by the
// rest of the toolkit: fraction/percent parsing for flag values, beat/second
// conversion and bounded interval generation.
package numeric

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrEmptyValue = errors.New("numeric: value empty")

// ParseNumber parses a plain float, a fraction ("3/4"), a mixed fraction
// ("1 1/2", sign of the integer part applies to the fraction) or a
// percentage ("25%").
func ParseNumber(val string) (float64, error) {
	if val == "" {
		return 0, ErrEmptyValue
	}
	if strings.Contains(val, "/") {
		num, denom, _ := strings.Cut(val, "/")
		d, err := strconv.ParseFloat(strings.TrimSpace(denom), 64)
		if nil != err {
			return 0, fmt.Errorf("numeric: bad denominator %q: %w", denom, err)
		}
		if d == 0 {
			return 0, fmt.Errorf("numeric: zero denominator in %q", val)
		}
		if integer, frac, ok := strings.Cut(strings.TrimSpace(num), " "); ok {
			i, err := strconv.ParseInt(integer, 10, 64)
			if nil != err {
				return 0, fmt.Errorf("numeric: bad integer part %q: %w", integer, err)
			}
			n, err := strconv.ParseFloat(frac, 64)
			if nil != err {
				return 0, fmt.Errorf("numeric: bad numerator %q: %w", frac, err)
			}
			sign := 1.0
			if i < 0 {
				sign = -1.0
			}
			return float64(i) + sign*(n/d), nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if nil != err {
			return 0, fmt.Errorf("numeric: bad numerator %q: %w", num, err)
		}
		return n / d, nil
	}
	if strings.HasSuffix(val, "%") {
		p, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64)
		if nil != err {
			return 0, fmt.Errorf("numeric: bad percentage %q: %w", val, err)
		}
		return p / 100, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if nil != err {
		return 0, fmt.Errorf("numeric: bad number %q: %w", val, err)
	}
	return f, nil
}

// ParseRange parses "max" into (-max, max) or "min:max" into (min, max).
func ParseRange(val string) (min, max float64, err error) {
	if !strings.Contains(val, ":") {
		v, err := ParseNumber(val)
		if nil != err {
			return 0, 0, err
		}
		return -v, v, nil
	}
	split := strings.Split(val, ":")
	if len(split) != 2 {
		return 0, 0, errors.New("numeric: must be in the form 'max' or 'min:max'")
	}
	if min, err = ParseNumber(split[0]); nil != err {
		return 0, 0, fmt.Errorf("numeric: bad minimum: %w", err)
	}
	if max, err = ParseNumber(split[1]); nil != err {
		return 0, 0, fmt.Errorf("numeric: bad maximum: %w", err)
	}
	return min, max, nil
}

// ParseXYRange parses "X_RANGE,Y_RANGE" into (xmin,ymin),(xmax,ymax).
func ParseXYRange(val string) (min, max [2]float64, err error) {
	split := strings.Split(val, ",")
	if len(split) != 2 {
		return min, max, errors.New("numeric: must be in the form X_RANGE,Y_RANGE")
	}
	xmin, xmax, err := ParseRange(split[0])
	if nil != err {
		return min, max, fmt.Errorf("numeric: bad x range: %w", err)
	}
	ymin, ymax, err := ParseRange(split[1])
	if nil != err {
		return min, max, fmt.Errorf("numeric: bad y range: %w", err)
	}
	return [2]float64{xmin, ymin}, [2]float64{xmax, ymax}, nil
}

// Time is a time value parsed from a flag. Values given in seconds ("2.5s"
// or "mm:ss.fff") can only be resolved to beats once the BPM is known.
type Time struct {
	Value   float64
	Seconds bool
}

// Beats resolves the time to beats at the given BPM.
func (t Time) Beats(bpm float64) float64 {
	if t.Seconds {
		return SecondToBeat(t.Value, bpm)
	}
	return t.Value
}

func (t Time) String() string {
	if t.Seconds {
		return fmt.Sprintf("%vs", t.Value)
	}
	return strconv.FormatFloat(t.Value, 'g', -1, 64)
}

// ParseTime parses a time flag value: beats by default, seconds with a
// trailing "s", or "mm:ss.fff". No rounding happens here.
func ParseTime(val string) (Time, error) {
	if strings.HasSuffix(val, "s") && !strings.Contains(val, ":") {
		v, err := ParseNumber(strings.TrimSuffix(val, "s"))
		if nil != err {
			return Time{}, err
		}
		return Time{Value: v, Seconds: true}, nil
	}
	if i := strings.LastIndex(val, ":"); i >= 0 {
		m, err := strconv.ParseFloat(val[:i], 64)
		if nil != err {
			return Time{}, fmt.Errorf("numeric: bad minutes %q: %w", val[:i], err)
		}
		s, err := strconv.ParseFloat(val[i+1:], 64)
		if nil != err {
			return Time{}, fmt.Errorf("numeric: bad seconds %q: %w", val[i+1:], err)
		}
		return Time{Value: m*60 + s, Seconds: true}, nil
	}
	v, err := ParseNumber(val)
	if nil != err {
		return Time{}, err
	}
	return Time{Value: v}, nil
}

// ParsePosition parses "x,y,t" into grid coordinates and a time.
func ParsePosition(val string) (x, y float64, t Time, err error) {
	split := strings.Split(val, ",")
	if len(split) != 3 {
		return 0, 0, Time{}, errors.New("numeric: must be in the form x,y,t")
	}
	if x, err = ParseNumber(split[0]); nil != err {
		return 0, 0, Time{}, fmt.Errorf("numeric: bad x: %w", err)
	}
	if y, err = ParseNumber(split[1]); nil != err {
		return 0, 0, Time{}, fmt.Errorf("numeric: bad y: %w", err)
	}
	if t, err = ParseTime(split[2]); nil != err {
		return 0, 0, Time{}, fmt.Errorf("numeric: bad t: %w", err)
	}
	return x, y, t, nil
}

// ParseVector parses "x,y,t" where all three components are plain numbers.
func ParseVector(val string) ([3]float64, error) {
	split := strings.Split(val, ",")
	if len(split) != 3 {
		return [3]float64{}, errors.New("numeric: must be in the form x,y,t")
	}
	var out [3]float64
	for i, s := range split {
		v, err := ParseNumber(s)
		if nil != err {
			return [3]float64{}, fmt.Errorf("numeric: bad component %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
