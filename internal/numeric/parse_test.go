package numeric

import (
	"math"
	"testing"
)

var numberTests = map[string]float64{
	"1":      1,
	"-2.5":   -2.5,
	"3/4":    0.75,
	"-3/4":   -0.75,
	"1 1/2":  1.5,
	"-1 1/2": -1.5,
	"25%":    0.25,
	"1/64":   0.015625,
}

func TestParseNumber(t *testing.T) {
	for in, expected := range numberTests {
		out, err := ParseNumber(in)
		if nil != err {
			t.Log(in, err)
			t.Fail()
			continue
		}
		if math.Abs(out-expected) > 1e-12 {
			t.Log(in, "out", out, "expected", expected)
			t.Fail()
		}
	}
}

func TestParseNumberErrors(t *testing.T) {
	for _, in := range []string{"", "1/0", "x", "1/y", "a 1/2", "z%"} {
		if _, err := ParseNumber(in); nil == err {
			t.Log(in, "expected an error")
			t.Fail()
		}
	}
}

func TestParseRange(t *testing.T) {
	min, max, err := ParseRange("2")
	if nil != err || min != -2 || max != 2 {
		t.Log(min, max, err)
		t.Fail()
	}
	min, max, err = ParseRange("-1:3")
	if nil != err || min != -1 || max != 3 {
		t.Log(min, max, err)
		t.Fail()
	}
}

var timeTests = map[string]Time{
	"4":      {Value: 4},
	"1/2":    {Value: 0.5},
	"2.5s":   {Value: 2.5, Seconds: true},
	"1:30.5": {Value: 90.5, Seconds: true},
}

func TestParseTime(t *testing.T) {
	for in, expected := range timeTests {
		out, err := ParseTime(in)
		if nil != err || out != expected {
			t.Log(in, "out", out, "expected", expected, err)
			t.Fail()
		}
	}
}

func TestTimeBeats(t *testing.T) {
	// 2 seconds at 120 bpm is 4 beats
	if b := (Time{Value: 2, Seconds: true}).Beats(120); b != 4 {
		t.Log("out", b)
		t.Fail()
	}
	if b := (Time{Value: 2}).Beats(120); b != 2 {
		t.Log("out", b)
		t.Fail()
	}
}

func TestParseVector(t *testing.T) {
	out, err := ParseVector("1,1/2,-3")
	if nil != err || out != [3]float64{1, 0.5, -3} {
		t.Log(out, err)
		t.Fail()
	}
	if _, err := ParseVector("1,2"); nil == err {
		t.Log("expected an error")
		t.Fail()
	}
}
