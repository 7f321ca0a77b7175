package geom

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := R(10, 10, 20, 20)
	tests := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"inside", V(15, 15), true},
		{"min corner", V(10, 10), true},
		{"max corner", V(30, 30), false},
		{"left of", V(9, 15), false},
		{"below", V(15, 31), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	a := R(0, 0, 10, 10)
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"same", R(0, 0, 10, 10), true},
		{"partial", R(5, 5, 10, 10), true},
		{"inside", R(2, 2, 2, 2), true},
		{"touching edge", R(10, 0, 10, 10), false},
		{"disjoint", R(20, 20, 5, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps(%v) = %v, want %v", tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(a); got != tt.want {
				t.Errorf("reverse Overlaps(%v) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}
}

func TestRectFromPoints(t *testing.T) {
	r := RectFromPoints(V(30, 5), V(10, 25))
	if r.Min != V(10, 5) || r.Max != V(30, 25) {
		t.Errorf("RectFromPoints = %+v, want min (10,5) max (30,25)", r)
	}
}

func TestLerpClampSign(t *testing.T) {
	if got := Lerp(1.0, 3.0, 0.15); math.Abs(got-1.3) > 1e-12 {
		t.Errorf("Lerp = %v, want 1.3", got)
	}
	if got := Clamp(5.0, 0.2, 3.0); got != 3.0 {
		t.Errorf("Clamp high = %v, want 3", got)
	}
	if got := Clamp(0.1, 0.2, 3.0); got != 0.2 {
		t.Errorf("Clamp low = %v, want 0.2", got)
	}
	if Sign(0.0) != 1 || Sign(-0.5) != -1 || Sign(2.0) != 1 {
		t.Error("Sign must treat zero as positive")
	}
}

func TestVecDiv(t *testing.T) {
	if got := V(4, 8).Div(2); got != V(2, 4) {
		t.Errorf("Div = %v, want (2,4)", got)
	}
	if got := V(4, 8).Div(0); !got.IsZero() {
		t.Errorf("Div by zero = %v, want zero vector", got)
	}
}
