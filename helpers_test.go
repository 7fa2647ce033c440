package crt

import (
	"testing"

	"github.com/gogpu/crt/internal/image"
)

// smallParams returns the default parameters rendered to 4x4.
func smallParams() Params {
	p := DefaultParams()
	p.OutputWidth, p.OutputHeight = 4, 4
	return p
}

// solidInput returns a w x h EncodingByte image filled with rgb.
func solidInput(t testing.TB, w, h int, rgb [3]float64) *image.Buf {
	t.Helper()
	buf, err := image.New(w, h, image.EncodingByte)
	if err != nil {
		t.Fatalf("image.New() error = %v", err)
	}
	buf.Fill(image.Vec3(rgb))
	return buf
}

// newTestRenderer creates a Renderer and closes it at the end of the test.
func newTestRenderer(t testing.TB, p Params, opts ...Option) *Renderer {
	t.Helper()
	r, err := NewRenderer(p, opts...)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	t.Cleanup(r.Close)
	return r
}
