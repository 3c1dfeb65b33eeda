package bmpx_test

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/adriansahlman/bmpraster/bmpx"
	"github.com/stretchr/testify/require"
)

func requireEqualImages(
	t testing.TB,
	expected, actual image.Image,
) {
	type RGBA struct{ R, G, B, A uint32 }
	require.Equal(t, expected.Bounds(), actual.Bounds(), "image sizes")
	for y := expected.Bounds().Min.Y; y < expected.Bounds().Max.Y; y++ {
		for x := expected.Bounds().Min.X; x < expected.Bounds().Max.X; x++ {
			eR, eG, eB, eA := expected.At(x, y).RGBA()
			aR, aG, aB, aA := actual.At(x, y).RGBA()
			require.Equal(
				t,
				RGBA{eR, eG, eB, eA},
				RGBA{aR, aG, aB, aA},
				fmt.Sprintf("Pixel at (%d, %d)", x, y),
			)
		}
	}
}

// generateImage returns an opaque gradient.
func generateImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(math.Round(float64(y) / float64(max(height-1, 1)) * 255)),
				G: uint8(math.Round(float64(x) / float64(max(width-1, 1)) * 255)),
				B: uint8(
					math.Round(
						float64(x+y) / float64(max(width+height-2, 1)) * 255,
					),
				),
				A: 0xFF,
			})
		}
	}
	return img
}

func generateRaster(t testing.TB, rows, cols int) *bmpx.Raster {
	r, err := bmpx.FromImage(generateImage(cols, rows))
	require.NoError(t, err)
	return r
}

func solidRaster(t testing.TB, rows, cols int, p bmpx.Pixel) *bmpx.Raster {
	r, err := bmpx.New(rows, cols)
	require.NoError(t, err)
	r.Fill(p)
	return r
}
