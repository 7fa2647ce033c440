package color

import (
	"fmt"

	"github.com/gogpu/crt/internal/image"
	"github.com/gogpu/crt/internal/parallel"
)

// EncodedToNormalized scales an EncodingByte buffer to [0,1] without any
// curve, treating the stored bytes as a CRT gamma signal.
func EncodedToNormalized(pool *parallel.WorkerPool, src *image.Buf) (*image.Buf, error) {
	return mapPixels(pool, src, image.EncodingByte, image.EncodingGamma, func(v image.Vec3) image.Vec3 {
		return image.Vec3{v[0] / 255, v[1] / 255, v[2] / 255}
	})
}

// EncodedToGamma decodes an EncodingByte buffer with the sRGB EOTF and
// re-encodes it with a simple power-law gamma.
func EncodedToGamma(pool *parallel.WorkerPool, src *image.Buf, outGamma float64) (*image.Buf, error) {
	return mapPixels(pool, src, image.EncodingByte, image.EncodingGamma, func(v image.Vec3) image.Vec3 {
		return image.Vec3{
			EncodeGamma(decodeByte(v[0]), outGamma),
			EncodeGamma(decodeByte(v[1]), outGamma),
			EncodeGamma(decodeByte(v[2]), outGamma),
		}
	})
}

// GammaToGamma converts between two power-law gammas: clamp to [0,1],
// raise to inGamma, then to 1/outGamma.
func GammaToGamma(pool *parallel.WorkerPool, src *image.Buf, inGamma, outGamma float64) (*image.Buf, error) {
	return mapPixels(pool, src, image.EncodingGamma, image.EncodingGamma, func(v image.Vec3) image.Vec3 {
		return image.Vec3{
			EncodeGamma(DecodeGamma(v[0], inGamma), outGamma),
			EncodeGamma(DecodeGamma(v[1], inGamma), outGamma),
			EncodeGamma(DecodeGamma(v[2], inGamma), outGamma),
		}
	})
}

// EncodedToYIQ decodes an EncodingByte buffer like EncodedToGamma and then
// rotates the gamma-encoded RGB into YIQ.
func EncodedToYIQ(pool *parallel.WorkerPool, src *image.Buf, outGamma float64) (*image.Buf, error) {
	return mapPixels(pool, src, image.EncodingByte, image.EncodingYIQ, func(v image.Vec3) image.Vec3 {
		return RGBToYIQ.Apply(image.Vec3{
			EncodeGamma(decodeByte(v[0]), outGamma),
			EncodeGamma(decodeByte(v[1]), outGamma),
			EncodeGamma(decodeByte(v[2]), outGamma),
		})
	})
}

// GammaToLinear clamps to [0,1] and raises each channel to inGamma.
func GammaToLinear(pool *parallel.WorkerPool, src *image.Buf, inGamma float64) (*image.Buf, error) {
	return mapPixels(pool, src, image.EncodingGamma, image.EncodingLinear, func(v image.Vec3) image.Vec3 {
		return image.Vec3{
			DecodeGamma(v[0], inGamma),
			DecodeGamma(v[1], inGamma),
			DecodeGamma(v[2], inGamma),
		}
	})
}

// YIQToLinear rotates YIQ back to gamma-encoded RGB, clamps to [0,1] and
// raises each channel to inGamma.
func YIQToLinear(pool *parallel.WorkerPool, src *image.Buf, inGamma float64) (*image.Buf, error) {
	return mapPixels(pool, src, image.EncodingYIQ, image.EncodingLinear, func(v image.Vec3) image.Vec3 {
		rgb := YIQToRGB.Apply(v)
		return image.Vec3{
			DecodeGamma(rgb[0], inGamma),
			DecodeGamma(rgb[1], inGamma),
			DecodeGamma(rgb[2], inGamma),
		}
	})
}

// LinearToEncoded applies the sRGB OETF and quantizes to bytes.
func LinearToEncoded(pool *parallel.WorkerPool, src *image.Buf) (*image.Buf, error) {
	return mapPixels(pool, src, image.EncodingLinear, image.EncodingByte, func(v image.Vec3) image.Vec3 {
		return image.Vec3{
			float64(LinearToSRGBByte(v[0])),
			float64(LinearToSRGBByte(v[1])),
			float64(LinearToSRGBByte(v[2])),
		}
	})
}

// mapPixels checks the source encoding and applies fn to every pixel into a
// new buffer tagged out.
func mapPixels(pool *parallel.WorkerPool, src *image.Buf, want, out image.Encoding, fn func(image.Vec3) image.Vec3) (*image.Buf, error) {
	if src.Encoding() != want {
		return nil, fmt.Errorf("%w: have %v, want %v", image.ErrEncodingMismatch, src.Encoding(), want)
	}

	dst := src.NewLike(out)
	w := src.Width()
	pool.ForRows(src.Height(), func(start, end int) {
		for y := start; y < end; y++ {
			in := src.Row(y)
			o := dst.Row(y)
			for x := range w {
				i := x * image.Channels
				r := fn(image.Vec3{in[i], in[i+1], in[i+2]})
				o[i], o[i+1], o[i+2] = r[0], r[1], r[2]
			}
		}
	})
	return dst, nil
}
