//go:build linux

package linux

import (
	"image"
	"testing"
)

func TestBGRXToRGBA(t *testing.T) {
	bounds := image.Rect(10, 20, 12, 21)
	data := []byte{
		1, 2, 3, 0, // B G R x
		4, 5, 6, 0,
	}
	img, err := bgrxToRGBA(data, bounds)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != bounds {
		t.Fatalf("bounds = %v, want %v", img.Bounds(), bounds)
	}
	if c := img.RGBAAt(10, 20); c.R != 3 || c.G != 2 || c.B != 1 || c.A != 0xff {
		t.Errorf("first pixel = %+v", c)
	}
	if c := img.RGBAAt(11, 20); c.R != 6 || c.G != 5 || c.B != 4 {
		t.Errorf("second pixel = %+v", c)
	}
}

func TestBGRXToRGBA_ShortData(t *testing.T) {
	if _, err := bgrxToRGBA(make([]byte, 7), image.Rect(0, 0, 2, 1)); err == nil {
		t.Error("expected error for short data")
	}
}
