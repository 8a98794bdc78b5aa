package ringgeom

import "testing"

func TestExtentBounds(t *testing.T) {
	if got := Extent(0); got != 0 {
		t.Errorf("Extent(0) = %v, want 0", got)
	}
	if got := Extent(127); got != -240 {
		t.Errorf("Extent(127) = %v, want -240", got)
	}
}

func TestExtentMonotoneDecreasing(t *testing.T) {
	prev := Extent(0)
	for v := 1; v <= 127; v++ {
		cur := Extent(v)
		if cur > prev {
			t.Fatalf("Extent not monotone decreasing at v=%d: prev=%v cur=%v", v, prev, cur)
		}
		prev = cur
	}
}

func TestExtentClampsOutOfRange(t *testing.T) {
	if got := Extent(-10); got != Extent(0) {
		t.Errorf("Extent(-10) = %v, want Extent(0) = %v", got, Extent(0))
	}
	if got := Extent(999); got != Extent(127) {
		t.Errorf("Extent(999) = %v, want Extent(127) = %v", got, Extent(127))
	}
}

func TestPeakDotAtZero(t *testing.T) {
	p := PeakDot(100, 100, OuterRadius, 0)
	// At v=0 the angle is exactly StartAngle (210deg); sanity-check it
	// lands left-and-below the center, matching the 7-o'clock start.
	if p.X >= 100 {
		t.Errorf("expected dot left of center at v=0, got x=%v", p.X)
	}
	if p.Y <= 100 {
		t.Errorf("expected dot below center at v=0, got y=%v", p.Y)
	}
}
