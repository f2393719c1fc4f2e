package common

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"inside", 0.3, 0.2, 0.5, 0.3},
		{"below", -1, 0.2, 0.5, 0.2},
		{"above", 2, 0.2, 0.5, 0.5},
		{"edge", 0.5, 0.2, 0.5, 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Clamp(c.v, c.lo, c.hi); got != c.want {
				t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
			}
		})
	}
}

func TestSmoothDampConvergesWithoutOvershoot(t *testing.T) {
	cases := []struct {
		name            string
		current, target float64
	}{
		{"forward", 0, 10},
		{"backward", 10, -4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pos := c.current
			vel := 0.0
			dir := math.Copysign(1, c.target-c.current)
			for i := 0; i < 600; i++ {
				prev := pos
				pos = SmoothDamp(pos, c.target, &vel, 0.125, math.Inf(1), 1.0/60)
				if (pos-c.target)*dir > 1e-9 {
					t.Fatalf("step %d overshot: pos=%v target=%v", i, pos, c.target)
				}
				if (pos-prev)*dir < -1e-9 {
					t.Fatalf("step %d moved away from target: %v -> %v", i, prev, pos)
				}
			}
			if math.Abs(pos-c.target) > 1e-3 {
				t.Fatalf("did not converge: pos=%v target=%v", pos, c.target)
			}
		})
	}
}

func TestSmoothDampIsNotLinear(t *testing.T) {
	vel := 0.0
	first := SmoothDamp(0, 10, &vel, 0.5, math.Inf(1), 0.1)
	second := SmoothDamp(first, 10, &vel, 0.5, math.Inf(1), 0.1)
	if first <= 0 || second <= first {
		t.Fatalf("expected monotonic approach, got %v then %v", first, second)
	}
	// a critically damped spring starting at rest accelerates first
	if second-first <= first {
		t.Fatalf("expected second step (%v) to exceed first (%v)", second-first, first)
	}
}

func TestSmoothDampZeroDelta(t *testing.T) {
	vel := 3.0
	if got := SmoothDamp(1, 5, &vel, 0.2, math.Inf(1), 0); got != 1 {
		t.Fatalf("expected position unchanged, got %v", got)
	}
	if vel != 3 {
		t.Fatalf("expected velocity unchanged, got %v", vel)
	}
}
