package filter

import (
	"math"
	"testing"

	"github.com/gogpu/crt/internal/image"
)

// Test helper functions shared across filter tests.

// constBuf creates a w x h linear buffer filled with v.
func constBuf(t testing.TB, w, h int, v image.Vec3) *image.Buf {
	t.Helper()
	buf, err := image.New(w, h, image.EncodingLinear)
	if err != nil {
		t.Fatalf("image.New(%d, %d) failed: %v", w, h, err)
	}
	buf.Fill(v)
	return buf
}

// rampBuf creates a smooth w x h linear buffer with values in [0,1].
func rampBuf(t testing.TB, w, h int) *image.Buf {
	t.Helper()
	buf := constBuf(t, w, h, image.Vec3{})
	for y := range h {
		for x := range w {
			fx := float64(x) / float64(w)
			fy := float64(y) / float64(h)
			buf.Set(x, y, image.Vec3{fx, fy, 0.5 + 0.5*math.Sin(3*fx+2*fy)})
		}
	}
	return buf
}

// vecApproxEqual compares two vectors with tolerance.
func vecApproxEqual(a, b image.Vec3, tolerance float64) bool {
	return math.Abs(a[0]-b[0]) <= tolerance &&
		math.Abs(a[1]-b[1]) <= tolerance &&
		math.Abs(a[2]-b[2]) <= tolerance
}
