package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testPattern() *Buf {
	buf, _ := New(5, 3, EncodingByte)
	for y := range 3 {
		for x := range 5 {
			buf.Set(x, y, Vec3{float64(x * 50), float64(y * 100), 17})
		}
	}
	return buf
}

func TestFromStdImage_NRGBA(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	nrgba.Set(3, 3, color.NRGBA{R: 128, G: 64, B: 32, A: 255})
	nrgba.Set(4, 4, color.NRGBA{R: 200, G: 200, B: 200, A: 0})

	buf, err := FromStdImage(nrgba)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}
	if buf.Encoding() != EncodingByte {
		t.Errorf("Encoding() = %v, want Byte", buf.Encoding())
	}

	if got := buf.At(3, 3); got != (Vec3{128, 64, 32}) {
		t.Errorf("At(3, 3) = %v, want {128 64 32}", got)
	}
	// Fully transparent pixels composite to black.
	if got := buf.At(4, 4); got != (Vec3{}) {
		t.Errorf("At(4, 4) = %v, want zero", got)
	}
}

func TestFromStdImage_Gray(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	gray.SetGray(1, 2, color.Gray{Y: 99})

	buf, err := FromStdImage(gray)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}
	if got := buf.At(1, 2); got != (Vec3{99, 99, 99}) {
		t.Errorf("At(1, 2) = %v, want {99 99 99}", got)
	}
}

func TestFromStdImage_Empty(t *testing.T) {
	_, err := FromStdImage(image.NewRGBA(image.Rect(0, 0, 0, 5)))
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("FromStdImage(empty) error = %v, want ErrInvalidDimensions", err)
	}
}

func TestToStdImage_RequiresByteEncoding(t *testing.T) {
	buf, _ := New(2, 2, EncodingLinear)
	if _, err := buf.ToStdImage(); !errors.Is(err, ErrEncodingMismatch) {
		t.Errorf("ToStdImage(linear) error = %v, want ErrEncodingMismatch", err)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	formats := []struct {
		name   string
		format FileFormat
	}{
		{"png", FilePNG},
		{"bmp", FileBMP},
		{"tiff", FileTIFF},
	}

	src := testPattern()
	for _, tt := range formats {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := src.Encode(&buf, tt.format); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			got, err := Decode(&buf)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !got.SameShape(src) {
				t.Fatalf("dims = %dx%d, want %dx%d", got.Width(), got.Height(), src.Width(), src.Height())
			}
			for y := range src.Height() {
				for x := range src.Width() {
					if got.At(x, y) != src.At(x, y) {
						t.Errorf("At(%d, %d) = %v, want %v", x, y, got.At(x, y), src.At(x, y))
					}
				}
			}
		})
	}
}

func TestEncodeJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := testPattern().Encode(&buf, FileJPEG); err != nil {
		t.Fatalf("Encode(JPEG) error = %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Width() != 5 || got.Height() != 3 {
		t.Errorf("dims = %dx%d, want 5x3", got.Width(), got.Height())
	}
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode(strings.NewReader("definitely not an image"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Decode(garbage) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    FileFormat
		wantErr bool
	}{
		{"out.png", FilePNG, false},
		{"OUT.JPG", FileJPEG, false},
		{"a/b.jpeg", FileJPEG, false},
		{"x.bmp", FileBMP, false},
		{"x.tif", FileTIFF, false},
		{"x.tiff", FileTIFF, false},
		{"x.webp", 0, true},
		{"noext", 0, true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSaveLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pattern.png")

	src := testPattern()
	if err := src.SaveImage(path); err != nil {
		t.Fatalf("SaveImage() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not written: %v", err)
	}

	got, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	if got.At(4, 2) != src.At(4, 2) {
		t.Errorf("At(4, 2) = %v, want %v", got.At(4, 2), src.At(4, 2))
	}
}

func TestLoadImageMissing(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadImage(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestSaveLoadStdImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gray.tiff")

	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	gray.SetGray(2, 1, color.Gray{Y: 200})
	if err := SaveStdImage(gray, path); err != nil {
		t.Fatalf("SaveStdImage() error = %v", err)
	}

	img, err := LoadStdImage(path)
	if err != nil {
		t.Fatalf("LoadStdImage() error = %v", err)
	}
	if img.Bounds() != gray.Bounds() {
		t.Errorf("Bounds() = %v, want %v", img.Bounds(), gray.Bounds())
	}
	if r, _, _, _ := img.At(2, 1).RGBA(); r>>8 != 200 {
		t.Errorf("At(2, 1) red = %d, want 200", r>>8)
	}

	if err := SaveStdImage(gray, filepath.Join(t.TempDir(), "gray.xyz")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("SaveStdImage(.xyz) error = %v, want ErrUnsupportedFormat", err)
	}
}
