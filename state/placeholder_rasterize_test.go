package state

import (
	"testing"

	"bookforge/assets"
)

func TestMissingImageRasterize(t *testing.T) {
	env := newLocalEnv()
	img, err := assets.RasterizeSVG(env.MissingImage, 0, 0)
	if err != nil {
		t.Fatalf("rasterize placeholder: %v", err)
	}
	if img.Bounds().Dx() != 160 || img.Bounds().Dy() != 120 {
		t.Fatalf("unexpected bounds: %v", img.Bounds())
	}
}
