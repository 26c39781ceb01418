package tinyjs

import (
	"math"
	"testing"
)

// TestNumberMemo tests that small integers are memoized to identical Value
// pointers, matching the teacher's number-cache behavior.
func TestNumberMemo(t *testing.T) {
	c := NewContext()
	for i := -5; i <= 5; i++ {
		a := c.NewInt(float64(i))
		b := c.NewInt(float64(i))
		if a != b {
			t.Errorf("%d not memoized to the same Value", i)
		}
	}
}

// TestToNumberCoercion tests ToNumber's coercion across kinds.
func TestToNumberCoercion(t *testing.T) {
	c := NewContext()
	cases := []struct {
		name string
		v    *Value
		want float64
	}{
		{"true", c.trueVal, 1},
		{"false", c.falseVal, 0},
		{"null", c.nullVal, 0},
		{"empty string", c.NewString(""), 0},
		{"numeric string", c.NewString("42"), 42},
		{"whitespace string", c.NewString("  7  "), 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.ToNumber(tc.v)
			if got != tc.want {
				t.Errorf("ToNumber(%s) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

// TestToNumberUndefinedIsNaN tests that undefined coerces to NaN, which
// must be compared via inequality with itself.
func TestToNumberUndefinedIsNaN(t *testing.T) {
	c := NewContext()
	got := c.ToNumber(c.undefinedVal)
	if got == got {
		t.Errorf("ToNumber(undefined) = %v, want NaN", got)
	}
}

// TestStrictEqualsNegativeZero tests that -0 and +0 are strictly equal, per
// the reference design's equality table.
func TestStrictEqualsNegativeZero(t *testing.T) {
	c := NewContext()
	posZero := c.NewFloat(0)
	negZero := c.NewFloat(math.Copysign(0, -1))
	if !c.StrictEquals(posZero, negZero) {
		t.Error("+0 and -0 should be strictly equal")
	}
}

// TestStrictEqualsNaN tests that NaN is never strictly equal to itself.
func TestStrictEqualsNaN(t *testing.T) {
	c := NewContext()
	if c.StrictEquals(c.nanVal, c.nanVal) {
		t.Error("NaN should never be strictly equal to itself")
	}
}
