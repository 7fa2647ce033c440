package image

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		enc     Encoding
		wantErr error
	}{
		{"valid byte", 100, 100, EncodingByte, nil},
		{"valid linear", 50, 20, EncodingLinear, nil},
		{"1x1 minimum", 1, 1, EncodingYIQ, nil},
		{"zero width", 0, 100, EncodingByte, ErrInvalidDimensions},
		{"zero height", 100, 0, EncodingByte, ErrInvalidDimensions},
		{"negative width", -1, 100, EncodingByte, ErrInvalidDimensions},
		{"negative height", 100, -1, EncodingByte, ErrInvalidDimensions},
		{"invalid encoding", 100, 100, Encoding(255), ErrInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := New(tt.width, tt.height, tt.enc)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil {
				return
			}
			if buf.Width() != tt.width {
				t.Errorf("Width() = %d, want %d", buf.Width(), tt.width)
			}
			if buf.Height() != tt.height {
				t.Errorf("Height() = %d, want %d", buf.Height(), tt.height)
			}
			if buf.Encoding() != tt.enc {
				t.Errorf("Encoding() = %v, want %v", buf.Encoding(), tt.enc)
			}
			if len(buf.Pix()) != tt.width*tt.height*Channels {
				t.Errorf("len(Pix()) = %d, want %d", len(buf.Pix()), tt.width*tt.height*Channels)
			}
		})
	}
}

func TestFromPix(t *testing.T) {
	pix := make([]float64, 2*3*Channels+5)
	buf, err := FromPix(pix, 2, 3, EncodingLinear)
	if err != nil {
		t.Fatalf("FromPix() error = %v", err)
	}
	if len(buf.Pix()) != 2*3*Channels {
		t.Errorf("len(Pix()) = %d, want %d", len(buf.Pix()), 2*3*Channels)
	}

	if _, err := FromPix(pix[:4], 2, 3, EncodingLinear); !errors.Is(err, ErrDataTooSmall) {
		t.Errorf("FromPix(short) error = %v, want ErrDataTooSmall", err)
	}
}

func TestSetAt(t *testing.T) {
	buf, _ := New(4, 3, EncodingLinear)
	buf.Set(3, 2, Vec3{0.1, 0.2, 0.3})

	if got := buf.At(3, 2); got != (Vec3{0.1, 0.2, 0.3}) {
		t.Errorf("At(3, 2) = %v, want {0.1 0.2 0.3}", got)
	}

	row := buf.Row(2)
	if row[9] != 0.1 || row[10] != 0.2 || row[11] != 0.3 {
		t.Errorf("Row(2)[9:12] = %v, want [0.1 0.2 0.3]", row[9:12])
	}
	if buf.Row(3) != nil || buf.Row(-1) != nil {
		t.Error("Row() out of bounds should be nil")
	}
}

func TestClone(t *testing.T) {
	buf, _ := New(2, 2, EncodingGamma)
	buf.Fill(Vec3{1, 2, 3})

	c := buf.Clone()
	c.Set(0, 0, Vec3{})

	if buf.At(0, 0) != (Vec3{1, 2, 3}) {
		t.Error("Clone() shares data with the original")
	}
	if c.Encoding() != EncodingGamma {
		t.Errorf("Clone().Encoding() = %v, want Gamma", c.Encoding())
	}
}

func TestVec3(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Max(); got != 3 {
		t.Errorf("Max = %v", got)
	}
	if got := Mix(a, b, 0.5); got != (Vec3{2.5, 3.5, 4.5}) {
		t.Errorf("Mix = %v", got)
	}
}

func TestEncodingString(t *testing.T) {
	tests := []struct {
		enc  Encoding
		want string
	}{
		{EncodingByte, "Byte"},
		{EncodingGamma, "Gamma"},
		{EncodingLinear, "Linear"},
		{EncodingYIQ, "YIQ"},
		{Encoding(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.enc.String(); got != tt.want {
			t.Errorf("Encoding(%d).String() = %q, want %q", tt.enc, got, tt.want)
		}
	}
	if EncodingByte.IsFloat() || !EncodingLinear.IsFloat() {
		t.Error("IsFloat() mismatch")
	}
}
