package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")
)

// FileFormat is an output container format.
type FileFormat uint8

const (
	// FilePNG writes lossless 8-bit PNG.
	FilePNG FileFormat = iota
	// FileJPEG writes baseline JPEG.
	FileJPEG
	// FileBMP writes uncompressed BMP.
	FileBMP
	// FileTIFF writes deflate-compressed TIFF.
	FileTIFF
)

// jpegQuality is used for all JPEG output; CRT renders are dominated by fine
// scanline structure that lower qualities smear.
const jpegQuality = 95

// FormatFromPath picks an output format from a file extension.
func FormatFromPath(path string) (FileFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FilePNG, nil
	case ".jpg", ".jpeg":
		return FileJPEG, nil
	case ".bmp":
		return FileBMP, nil
	case ".tif", ".tiff":
		return FileTIFF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadImage loads an image file and returns it as an EncodingByte buffer.
// Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP.
func LoadImage(path string) (*Buf, error) {
	img, err := LoadStdImage(path)
	if err != nil {
		return nil, err
	}
	return FromStdImage(img)
}

// LoadStdImage loads an image file without converting it.
func LoadStdImage(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return decodeStd(f)
}

// Decode decodes any registered image format from r.
func Decode(r io.Reader) (*Buf, error) {
	img, err := decodeStd(r)
	if err != nil {
		return nil, err
	}
	return FromStdImage(img)
}

func decodeStd(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return img, nil
}

// SaveImage encodes an EncodingByte buffer to path, choosing the format from
// the file extension.
func (b *Buf) SaveImage(path string) error {
	img, err := b.ToStdImage()
	if err != nil {
		return err
	}
	return SaveStdImage(img, path)
}

// SaveStdImage encodes img to path, choosing the format from the file
// extension.
func SaveStdImage(img image.Image, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := EncodeStd(f, img, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Encode writes an EncodingByte buffer to w in the given format.
func (b *Buf) Encode(w io.Writer, format FileFormat) error {
	img, err := b.ToStdImage()
	if err != nil {
		return err
	}
	return EncodeStd(w, img, format)
}

// EncodeStd writes img to w in the given format.
func EncodeStd(w io.Writer, img image.Image, format FileFormat) error {
	var err error
	switch format {
	case FilePNG:
		err = png.Encode(w, img)
	case FileJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case FileBMP:
		err = bmp.Encode(w, img)
	case FileTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return ErrUnsupportedFormat
	}
	if err != nil {
		return fmt.Errorf("image: encode: %w", err)
	}
	return nil
}

// FromStdImage converts a standard library image to an EncodingByte buffer.
// Alpha is dropped after compositing over black, as a CRT has no
// transparency.
func FromStdImage(img image.Image) (*Buf, error) {
	bounds := img.Bounds()
	buf, err := New(bounds.Dx(), bounds.Dy(), EncodingByte)
	if err != nil {
		return nil, err
	}

	// Fast path for NRGBA images
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range buf.height {
			src := nrgba.Pix[y*nrgba.Stride:]
			dst := buf.Row(y)
			for x := range buf.width {
				a := float64(src[x*4+3]) / 255
				dst[x*3] = roundByte(float64(src[x*4]) * a)
				dst[x*3+1] = roundByte(float64(src[x*4+1]) * a)
				dst[x*3+2] = roundByte(float64(src[x*4+2]) * a)
			}
		}
		return buf, nil
	}

	// Generic path for any image type. RGBA() is premultiplied, which is
	// the same as compositing over black.
	for y := range buf.height {
		dst := buf.Row(y)
		for x := range buf.width {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			dst[x*3] = float64(r >> 8)
			dst[x*3+1] = float64(g >> 8)
			dst[x*3+2] = float64(b >> 8)
		}
	}
	return buf, nil
}

// ToStdImage converts an EncodingByte buffer to an opaque *image.NRGBA.
func (b *Buf) ToStdImage() (*image.NRGBA, error) {
	if b.enc != EncodingByte {
		return nil, fmt.Errorf("%w: have %v, want %v", ErrEncodingMismatch, b.enc, EncodingByte)
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for y := range b.height {
		src := b.Row(y)
		dst := nrgba.Pix[y*nrgba.Stride:]
		for x := range b.width {
			dst[x*4] = clampByte(src[x*3])
			dst[x*4+1] = clampByte(src[x*3+1])
			dst[x*4+2] = clampByte(src[x*3+2])
			dst[x*4+3] = 255
		}
	}
	return nrgba, nil
}

// ByteAt returns the pixel at (x, y) of an EncodingByte buffer as a color.
func (b *Buf) ByteAt(x, y int) color.NRGBA {
	v := b.At(x, y)
	return color.NRGBA{R: clampByte(v[0]), G: clampByte(v[1]), B: clampByte(v[2]), A: 255}
}

// roundByte rounds to the nearest whole byte value, kept as float64.
func roundByte(v float64) float64 {
	return float64(clampByte(v))
}

// clampByte clamps a float64 to [0, 255] and converts to uint8 with rounding.
func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
