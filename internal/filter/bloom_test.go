package filter

import (
	"errors"
	"testing"

	"github.com/gogpu/crt/internal/image"
)

func TestBloom(t *testing.T) {
	sharp := constBuf(t, 4, 3, image.Vec3{1, 0.5, 0})
	blurred := constBuf(t, 4, 3, image.Vec3{0, 0.5, 1})

	tests := []struct {
		amount float64
		want   image.Vec3
	}{
		{0, image.Vec3{1, 0.5, 0}},
		{1, image.Vec3{0, 0.5, 1}},
		{0.15, image.Vec3{0.85, 0.5, 0.15}},
	}
	for _, tt := range tests {
		out, err := Bloom(sharp, blurred, tt.amount)
		if err != nil {
			t.Fatalf("Bloom(%v) error = %v", tt.amount, err)
		}
		for y := range 3 {
			for x := range 4 {
				if got := out.At(x, y); !vecApproxEqual(got, tt.want, 1e-12) {
					t.Errorf("Bloom(%v).At(%d, %d) = %v, want %v", tt.amount, x, y, got, tt.want)
				}
			}
		}
	}

	if sharp.At(0, 0) != (image.Vec3{1, 0.5, 0}) {
		t.Error("Bloom modified its sharp input")
	}
}

func TestBloomShapeMismatch(t *testing.T) {
	a := constBuf(t, 4, 3, image.Vec3{})
	b := constBuf(t, 3, 4, image.Vec3{})
	if _, err := Bloom(a, b, 0.5); !errors.Is(err, image.ErrInvalidDimensions) {
		t.Errorf("Bloom(mismatch) error = %v, want ErrInvalidDimensions", err)
	}
}
