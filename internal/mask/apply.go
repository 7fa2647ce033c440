package mask

import (
	"fmt"
	stdimage "image"

	vecmath "github.com/cwbudde/algo-vecmath"
	"golang.org/x/image/draw"

	"github.com/gogpu/crt/internal/image"
)

// FromImage resamples a mask image to w x h with Catmull-Rom filtering and
// normalizes it so its brightest channel value is 1.
func FromImage(src stdimage.Image, w, h int) (*image.Buf, error) {
	buf, err := image.New(w, h, image.EncodingLinear)
	if err != nil {
		return nil, err
	}

	scaled := stdimage.NewRGBA64(stdimage.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)

	pix := buf.Pix()
	for y := range h {
		row := scaled.Pix[y*scaled.Stride:]
		for x := range w {
			for c := range image.Channels {
				hi, lo := row[x*8+c*2], row[x*8+c*2+1]
				pix[(y*w+x)*image.Channels+c] = float64(uint16(hi)<<8|uint16(lo)) / 0xffff
			}
		}
	}

	peak := vecmath.MaxAbs(pix)
	if peak == 0 {
		return nil, ErrEmptyMask
	}
	vecmath.ScaleBlockInPlace(pix, 1/peak)
	return buf, nil
}

// Apply mixes mask into img: img * ((1-amount) + mask*amount).
// An amount of zero returns a copy of img.
func Apply(img, mask *image.Buf, amount float64) (*image.Buf, error) {
	if !img.SameShape(mask) {
		return nil, fmt.Errorf("%w: mask %dx%d for image %dx%d", image.ErrInvalidDimensions,
			mask.Width(), mask.Height(), img.Width(), img.Height())
	}
	if amount == 0 {
		return img.Clone(), nil
	}

	n := len(img.Pix())
	scaled := make([]float64, n)
	base := make([]float64, n)
	vecmath.ScaleBlock(scaled, mask.Pix(), amount)
	vecmath.ScaleBlock(base, img.Pix(), 1-amount)

	out := img.NewLike(img.Encoding())
	vecmath.MulAddBlock(out.Pix(), img.Pix(), scaled, base)
	return out, nil
}
