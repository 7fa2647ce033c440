package filter

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/gogpu/crt/internal/image"
)

// Bloom mixes a blurred copy back into the sharp image:
// sharp + (blurred - sharp) * amount.
func Bloom(sharp, blurred *image.Buf, amount float64) (*image.Buf, error) {
	if !sharp.SameShape(blurred) {
		return nil, fmt.Errorf("%w: bloom %dx%d with %dx%d", image.ErrInvalidDimensions,
			sharp.Width(), sharp.Height(), blurred.Width(), blurred.Height())
	}

	out := sharp.NewLike(sharp.Encoding())
	diff := out.Pix()
	vecmath.ScaleBlock(diff, sharp.Pix(), -1)
	vecmath.AddBlockInPlace(diff, blurred.Pix())
	vecmath.ScaleBlockInPlace(diff, amount)
	vecmath.AddBlockInPlace(diff, sharp.Pix())
	return out, nil
}
