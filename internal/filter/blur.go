package filter

import (
	"github.com/gogpu/crt/internal/image"
	"github.com/gogpu/crt/internal/parallel"
)

// Blurrer is a same-shape diffusion filter.
type Blurrer interface {
	Blur(pool *parallel.WorkerPool, src *image.Buf) (*image.Buf, error)
}

// DefaultBoxIterations is the number of horizontal+vertical pass pairs
// BoxBlur runs when Iterations is not set.
const DefaultBoxIterations = 2

// BoxBlur approximates a Gaussian with repeated box filters.
// Its cost does not depend on the radius.
type BoxBlur struct {
	// Radius is the box half-width in pixels; the box spans 2*Radius+1.
	Radius int

	// Iterations is the number of horizontal+vertical pass pairs.
	// Zero means DefaultBoxIterations.
	Iterations int
}

// NewBoxBlur creates a box blur approximating a Gaussian of the given sigma
// with the given number of pass pairs.
func NewBoxBlur(sigma float64, iterations int) *BoxBlur {
	if iterations <= 0 {
		iterations = DefaultBoxIterations
	}
	return &BoxBlur{
		Radius:     BoxRadius(sigma, iterations),
		Iterations: iterations,
	}
}

// Blur applies the box passes. A zero radius returns a copy.
func (b *BoxBlur) Blur(pool *parallel.WorkerPool, src *image.Buf) (*image.Buf, error) {
	if b.Radius <= 0 {
		return src.Clone(), nil
	}
	iterations := b.Iterations
	if iterations <= 0 {
		iterations = DefaultBoxIterations
	}

	cur := src
	for range iterations * 2 {
		next, err := transposedPass(pool, cur, func(in, out *image.Buf, y int) {
			boxRow(in, out, y, b.Radius)
		})
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// boxRow runs a running-sum box filter over row y of in and writes it to
// column y of out. Samples beyond the row are zero.
func boxRow(in, out *image.Buf, y, radius int) {
	w := in.Width()
	width := 2*radius + 1
	inv := 1 / float64(width)
	row := in.Row(y)

	at := func(x int) image.Vec3 {
		if x < 0 || x >= w {
			return image.Vec3{}
		}
		i := x * image.Channels
		return image.Vec3{row[i], row[i+1], row[i+2]}
	}

	var sum image.Vec3
	for x := range radius {
		sum = sum.Add(at(x))
	}
	for x := radius; x < w+radius; x++ {
		sum = sum.Add(at(x))
		sum = sum.Sub(at(x - width))
		out.Set(y, x-radius, sum.Scale(inv))
	}
}

// GaussianBlur is a separable direct Gaussian convolution.
type GaussianBlur struct {
	Sigma float64
}

// Blur applies a horizontal and a vertical pass. Sigma <= 0 returns a copy.
func (g *GaussianBlur) Blur(pool *parallel.WorkerPool, src *image.Buf) (*image.Buf, error) {
	if g.Sigma <= 0 {
		return src.Clone(), nil
	}

	cur := src
	for range 2 {
		next, err := transposedPass(pool, cur, func(in, out *image.Buf, y int) {
			gaussianRow(in, out, y, g.Sigma)
		})
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// gaussianRow convolves row y of in and writes it to column y of out.
// Output x is centered on source position x+0.5 and the window is anchored
// at round(x+0.5). Only in-bounds samples contribute to the normalizing
// weight sum.
func gaussianRow(in, out *image.Buf, y int, sigma float64) {
	w := in.Width()
	radius := GaussianRadius(sigma)
	row := in.Row(y)

	for x := range w {
		pos := float64(x) + 0.5
		center := image.RoundCoord(pos)
		lo := max(center-radius, 0)
		hi := min(center+radius, w-1)

		var value image.Vec3
		weightSum := 0.0
		for k := lo; k <= hi; k++ {
			weight := GaussianWeight(pos-float64(k)-0.5, sigma)
			weightSum += weight
			i := k * image.Channels
			value[0] += weight * row[i]
			value[1] += weight * row[i+1]
			value[2] += weight * row[i+2]
		}

		if weightSum > 0 {
			value = value.Scale(1 / weightSum)
		}
		out.Set(y, x, value)
	}
}

// transposedPass runs fn for every row of src into a new buffer with width
// and height swapped. fn must write only column y of out.
func transposedPass(pool *parallel.WorkerPool, src *image.Buf, fn func(in, out *image.Buf, y int)) (*image.Buf, error) {
	dst, err := image.New(src.Height(), src.Width(), src.Encoding())
	if err != nil {
		return nil, err
	}
	pool.ForRows(src.Height(), func(start, end int) {
		for y := start; y < end; y++ {
			fn(src, dst, y)
		}
	})
	return dst, nil
}
