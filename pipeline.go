package crt

import (
	"fmt"
	stdimage "image"
	"log/slog"
	"time"

	"github.com/gogpu/crt/internal/color"
	"github.com/gogpu/crt/internal/filter"
	"github.com/gogpu/crt/internal/image"
	"github.com/gogpu/crt/internal/mask"
	"github.com/gogpu/crt/internal/parallel"
	"github.com/gogpu/crt/internal/spot"
)

// gamma22 is the input exponent assumed by WorkingSpaceGamma22.
const gamma22 = 2.2

// Renderer runs the CRT simulation for one set of Params.
//
// A Renderer owns a worker pool; call Close when done. Render may be called
// any number of times, including concurrently.
type Renderer struct {
	params Params
	opts   options
	pool   *parallel.WorkerPool

	band *filter.BandLimit
	spot *spot.Renderer
	blur filter.Blurrer
	mask *image.Buf // nil when the mask stage is disabled
}

// NewRenderer validates params and prepares every stage.
func NewRenderer(params Params, opts ...Option) (*Renderer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	band, err := filter.NewBandLimit(params.Cutoff, params.ActiveLineTime, params.Samples)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	footprint, err := spot.NewFootprint(params.SpotShape, params.Precision, params.MaxSpotSize, params.MinSpotSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	r := &Renderer{
		params: params,
		opts:   o,
		band:   band,
		spot: &spot.Renderer{
			Width:     params.OutputWidth,
			Height:    params.OutputHeight,
			MaxSpot:   params.MaxSpotSize,
			OverscanH: params.OverscanHorizontal,
			OverscanV: params.OverscanVertical,
			Scan:      params.Scan,
			Footprint: footprint,
		},
		blur: newBlurrer(params),
	}

	if params.MaskAmount > 0 {
		if r.mask, err = buildMask(params, o.mask); err != nil {
			return nil, err
		}
	}

	r.pool = parallel.NewWorkerPool(o.workers)

	r.logger().Debug("crt: renderer ready",
		"output", fmt.Sprintf("%dx%d", params.OutputWidth, params.OutputHeight),
		"samples", params.Samples,
		"halfWidths", params.HalfWidths(),
		"blurSigmaPx", params.BlurSigmaPixels(),
		"bloom", params.Bloom,
		"workers", r.pool.Workers())
	return r, nil
}

func newBlurrer(p Params) filter.Blurrer {
	sigma := p.BlurSigmaPixels()
	switch p.Bloom {
	case BloomBox:
		return filter.NewBoxBlur(sigma, p.BoxIterations)
	case BloomFFT:
		return &filter.FFTGaussianBlur{Sigma: sigma}
	default:
		return &filter.GaussianBlur{Sigma: sigma}
	}
}

func buildMask(p Params, img stdimage.Image) (*image.Buf, error) {
	if img == nil {
		pattern := mask.Pattern{Type: p.MaskType, Dark: p.MaskDark, Stagger: p.MaskStagger}
		m, err := pattern.Render(p.OutputWidth, p.OutputHeight)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
		}
		return m, nil
	}

	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty mask image", ErrInvalidImageShape)
	}
	m, err := mask.FromImage(img, p.OutputWidth, p.OutputHeight)
	if err != nil {
		return nil, fmt.Errorf("crt: mask: %w", err)
	}
	return m, nil
}

// Params returns the parameters the Renderer was created with.
func (r *Renderer) Params() Params {
	return r.params
}

// Close stops the worker pool. Close is safe to call multiple times.
func (r *Renderer) Close() {
	r.pool.Close()
}

func (r *Renderer) logger() *slog.Logger {
	if r.opts.logger != nil {
		return r.opts.logger
	}
	return Logger()
}

// Render simulates the CRT for src, which must be EncodingByte, and returns
// an EncodingByte image of OutputWidth x OutputHeight.
func (r *Renderer) Render(src *image.Buf) (*image.Buf, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImageShape)
	}
	if src.Encoding() != image.EncodingByte {
		return nil, fmt.Errorf("crt: input: %w: have %v, want %v",
			image.ErrEncodingMismatch, src.Encoding(), image.EncodingByte)
	}

	log := r.logger()
	start := time.Now()
	var dumps []debugStage

	log.Info("crt: working space", "space", r.params.WorkingSpace,
		"input", fmt.Sprintf("%dx%d", src.Width(), src.Height()))
	working, err := r.toWorking(src)
	if err != nil {
		return nil, fmt.Errorf("crt: working space: %w", err)
	}

	log.Info("crt: band-limit", "samples", r.band.Samples)
	filtered, err := r.band.Apply(r.pool, working)
	if err != nil {
		return nil, fmt.Errorf("crt: band-limit: %w", err)
	}

	linear, err := r.toLinear(filtered)
	if err != nil {
		return nil, fmt.Errorf("crt: to linear: %w", err)
	}
	dumps = r.collect(dumps, "filtered", linear)

	log.Info("crt: spot", "shape", r.params.SpotShape, "precision", r.params.Precision,
		"delta", r.spot.Delta(linear.Width(), linear.Height()))
	out, err := r.spot.Render(r.pool, linear)
	if err != nil {
		return nil, fmt.Errorf("crt: spot: %w", err)
	}
	dumps = r.collect(dumps, "spot", out)

	if r.mask != nil {
		log.Info("crt: mask", "amount", r.params.MaskAmount)
		if out, err = mask.Apply(out, r.mask, r.params.MaskAmount); err != nil {
			return nil, fmt.Errorf("crt: mask: %w", err)
		}
	}

	if r.params.BlurAmount > 0 {
		log.Info("crt: bloom", "method", r.params.Bloom, "sigma", r.params.BlurSigmaPixels())
		blurred, err := r.blur.Blur(r.pool, out)
		if err != nil {
			return nil, fmt.Errorf("crt: blur: %w", err)
		}
		dumps = r.collect(dumps, "blurred", blurred)
		if out, err = filter.Bloom(out, blurred, r.params.BlurAmount); err != nil {
			return nil, fmt.Errorf("crt: bloom: %w", err)
		}
	}

	encoded, err := color.LinearToEncoded(r.pool, out)
	if err != nil {
		return nil, fmt.Errorf("crt: encode: %w", err)
	}

	if len(dumps) > 0 {
		if err := r.writeDebug(dumps); err != nil {
			log.Warn("crt: debug dump failed", "dir", r.opts.debugDir, "err", err)
		}
	}

	log.Debug("crt: render done", "elapsed", time.Since(start))
	return encoded, nil
}

// RenderImage converts img, renders it and returns the result as an opaque
// NRGBA image.
func (r *Renderer) RenderImage(img stdimage.Image) (*stdimage.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImageShape)
	}
	src, err := image.FromStdImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImageShape, err)
	}
	out, err := r.Render(src)
	if err != nil {
		return nil, err
	}
	return out.ToStdImage()
}

// toWorking converts encoded bytes into the space that is band-limited.
func (r *Renderer) toWorking(src *image.Buf) (*image.Buf, error) {
	switch r.params.WorkingSpace {
	case WorkingSpaceSRGB:
		return color.EncodedToGamma(r.pool, src, r.params.Gamma)
	case WorkingSpaceGamma22:
		n, err := color.EncodedToNormalized(r.pool, src)
		if err != nil {
			return nil, err
		}
		return color.GammaToGamma(r.pool, n, gamma22, r.params.Gamma)
	case WorkingSpaceYIQ:
		return color.EncodedToYIQ(r.pool, src, r.params.Gamma)
	default:
		return color.EncodedToNormalized(r.pool, src)
	}
}

func (r *Renderer) toLinear(filtered *image.Buf) (*image.Buf, error) {
	if filtered.Encoding() == image.EncodingYIQ {
		return color.YIQToLinear(r.pool, filtered, r.params.Gamma)
	}
	return color.GammaToLinear(r.pool, filtered, r.params.Gamma)
}
