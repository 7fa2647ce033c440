package crt

import (
	"fmt"
	stdimage "image"
	stdcolor "image/color"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/crt/internal/color"
	"github.com/gogpu/crt/internal/image"
)

// debugStage is an intermediate linear image kept for a debug dump.
type debugStage struct {
	name string
	buf  *image.Buf
}

// collect appends a stage when debug dumps are enabled. Stages are never
// modified after they are produced, so no copy is taken.
func (r *Renderer) collect(stages []debugStage, name string, buf *image.Buf) []debugStage {
	if r.opts.debugDir == "" {
		return stages
	}
	return append(stages, debugStage{name: name, buf: buf})
}

// debugFileName returns the dump file name for the i-th stage.
func debugFileName(i int, name string) string {
	return fmt.Sprintf("%02d-%s.png", i+1, name)
}

// writeDebug encodes and writes every stage concurrently and returns the
// first error.
func (r *Renderer) writeDebug(stages []debugStage) error {
	var g errgroup.Group
	for i, s := range stages {
		g.Go(func() error {
			enc, err := color.LinearToEncoded(r.pool, s.buf)
			if err != nil {
				return fmt.Errorf("%s: %w", s.name, err)
			}
			img, err := enc.ToStdImage()
			if err != nil {
				return fmt.Errorf("%s: %w", s.name, err)
			}
			label(img, s.name)

			path := filepath.Join(r.opts.debugDir, debugFileName(i, s.name))
			if err := image.SaveStdImage(img, path); err != nil {
				return err
			}
			r.logger().Debug("crt: debug dump", "stage", s.name, "path", path)
			return nil
		})
	}
	return g.Wait()
}

// label stamps text in the top-left corner on a black backing box.
func label(img *stdimage.NRGBA, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  stdimage.NewUniform(stdcolor.White),
		Face: face,
	}

	box := stdimage.Rect(0, 0, d.MeasureString(text).Ceil()+4, face.Height+4).Intersect(img.Bounds())
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			img.SetNRGBA(x, y, stdcolor.NRGBA{A: 255})
		}
	}

	d.Dot = fixed.P(2, face.Ascent+2)
	d.DrawString(text)
}
