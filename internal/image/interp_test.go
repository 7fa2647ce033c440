package image

import (
	"math"
	"testing"
)

// gradientBuf returns a w x h buffer whose pixel (x, y) is {x, y, x*100+y}.
func gradientBuf(t *testing.T, w, h int) *Buf {
	t.Helper()
	buf, err := New(w, h, EncodingLinear)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for y := range h {
		for x := range w {
			buf.Set(x, y, Vec3{float64(x), float64(y), float64(x*100 + y)})
		}
	}
	return buf
}

func TestTexelFetch(t *testing.T) {
	sizes := [][2]int{{1, 1}, {3, 2}, {7, 5}, {16, 1}}

	for _, sz := range sizes {
		w, h := sz[0], sz[1]
		buf := gradientBuf(t, w, h)

		for y := -2; y < h+2; y++ {
			for x := -2; x < w+2; x++ {
				got := buf.TexelFetch(x, y)
				inside := x >= 0 && x < w && y >= 0 && y < h
				if !inside && got != (Vec3{}) {
					t.Errorf("%dx%d: TexelFetch(%d, %d) = %v, want zero", w, h, x, y, got)
				}
				if inside && got != buf.At(x, y) {
					t.Errorf("%dx%d: TexelFetch(%d, %d) = %v, want %v", w, h, x, y, got, buf.At(x, y))
				}
			}
		}
	}
}

func TestRoundCoord(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{1.5, 2},
		{-0.5, 0},
		{-0.51, -1},
		{-1.5, -1},
	}
	for _, tt := range tests {
		if got := RoundCoord(tt.in); got != tt.want {
			t.Errorf("RoundCoord(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTextureConstantInterior(t *testing.T) {
	buf, _ := New(8, 8, EncodingLinear)
	buf.Fill(Vec3{0.25, 0.5, 0.75})

	// Away from the zero border every neighbor is the constant.
	for _, u := range []float64{0.3, 0.45, 0.5, 0.62} {
		got := buf.Texture(u, 0.9)
		for c := range 3 {
			if math.Abs(got[c]-buf.At(0, 0)[c]) > 1e-12 {
				t.Errorf("Texture(%v) = %v, want constant", u, got)
			}
		}
	}
}

func TestTextureIgnoresV(t *testing.T) {
	buf := gradientBuf(t, 6, 4)
	a := buf.Texture(0.4, 0.1)
	b := buf.Texture(0.4, 0.95)
	if a != b {
		t.Errorf("Texture depends on v: %v vs %v", a, b)
	}
}

func TestTextureNeighborhood(t *testing.T) {
	buf := gradientBuf(t, 10, 10)

	// u = 0.52: lookup (5.2, 5.2), anchor (5, 5), fx = fy = 0.7.
	got := buf.Texture(0.52, 0)

	v11 := buf.At(5, 5)
	v01 := buf.At(4, 5)
	v10 := buf.At(5, 4)
	v00 := buf.At(4, 4)
	row1 := Mix(v10, v11, 0.7)
	row0 := Mix(v01, v00, 0.7)
	want := Mix(row0, row1, 0.7)

	for c := range 3 {
		if math.Abs(got[c]-want[c]) > 1e-9 {
			t.Errorf("Texture(0.52)[%d] = %v, want %v", c, got[c], want[c])
		}
	}
}

func TestTextureZeroBorder(t *testing.T) {
	buf, _ := New(4, 4, EncodingLinear)
	buf.Fill(Vec3{1, 1, 1})

	// u = 0: anchor (0, 0), three of four neighbors lie outside.
	got := buf.Texture(0, 0)
	// fx = fy = 0.5: row1 = 0.5*v10 + 0.5*v11 = 0.5, row0 = 0, result 0.25.
	if math.Abs(got[0]-0.25) > 1e-12 {
		t.Errorf("Texture(0, 0) = %v, want 0.25", got)
	}

	if got := buf.Texture(-1, 0); got != (Vec3{}) {
		t.Errorf("Texture(-1, 0) = %v, want zero", got)
	}
}
