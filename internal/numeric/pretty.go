package numeric

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func isWhole(v float64) bool {
	r := math.Round(v*1e4) / 1e4
	return r == math.Trunc(r)
}

// PrettyFraction formats a beat value as a fraction of 192nds where that is
// exact, e.g. 0.75 -> "3/4" and 1.5 -> "1 1/2".
func PrettyFraction(val float64) string {
	if isWhole(val) {
		return strconv.FormatInt(int64(math.Round(val)), 10)
	}
	if isWhole(val * 192) {
		if val < 1 {
			v := int64(math.Round(val * 192))
			g := gcd(v, 192)
			return fmt.Sprintf("%d/%d", v/g, 192/g)
		}
		i := int64(val)
		v := int64(math.Round((val - float64(i)) * 192))
		g := gcd(v, 192)
		return fmt.Sprintf("%d %d/%d", i, v/g, 192/g)
	}
	return strconv.FormatFloat(val, 'g', -1, 64)
}

// PrettyTimeDelta formats a duration in seconds as a rough human scale.
func PrettyTimeDelta(seconds float64) string {
	seconds = math.Abs(seconds)
	if seconds < 1 {
		return fmt.Sprintf("%.0f ms", seconds*1000)
	}
	units := []struct {
		name string
		next float64
	}{
		{"second", 60},
		{"minute", 60},
		{"hour", 24},
		{"day", 7},
		{"week", 30.0 / 7},
		{"month", 365.0 / 30},
		{"year", 1000},
	}
	value := seconds
	for _, u := range units {
		if value < u.next {
			s := ""
			if value >= 1.5 {
				s = "s"
			}
			return fmt.Sprintf("%.0f %s%s", value, u.name, s)
		}
		value /= u.next
	}
	return "a really long time"
}

// PrettyList joins values as "a, b and c".
func PrettyList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
