package bmpx_test

import (
	"image"
	"testing"

	"github.com/adriansahlman/bmpraster/bmpx"
	"github.com/stretchr/testify/require"
)

func TestCrop(t *testing.T) {
	src := generateRaster(t, 8, 10)
	for _, tc := range []struct {
		name   string
		region image.Rectangle
		want   image.Rectangle
	}{
		{"Inside", image.Rect(2, 3, 7, 6), image.Rect(2, 3, 7, 6)},
		{"Clipped", image.Rect(-5, -5, 3, 2), image.Rect(0, 0, 3, 2)},
		{"Whole", image.Rect(0, 0, 100, 100), image.Rect(0, 0, 10, 8)},
		{"SinglePixel", image.Rect(9, 7, 10, 8), image.Rect(9, 7, 10, 8)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c, err := src.Crop(tc.region)
			require.NoError(t, err)
			require.Equal(t, tc.want.Dy(), c.Height())
			require.Equal(t, tc.want.Dx(), c.Width())
			require.Zero(t, c.BytesPerRow()%4)
			for y := 1; y <= c.Height(); y++ {
				for x := 1; x <= c.Width(); x++ {
					require.Equal(
						t,
						src.At(y+tc.want.Min.Y, x+tc.want.Min.X),
						c.At(y, x),
						"(%d, %d)", y, x,
					)
				}
			}
			requireEqualImages(
				t,
				src.Image().SubImage(tc.want),
				shift(c.Image(), tc.want.Min.X, tc.want.Min.Y),
			)
		})
	}
}

func TestCropEmpty(t *testing.T) {
	src := generateRaster(t, 4, 4)
	_, err := src.Crop(image.Rect(10, 10, 20, 20))
	require.Error(t, err)
	_, err = src.Crop(image.Rect(2, 2, 2, 3))
	require.Error(t, err)

	var null bmpx.Raster
	_, err = null.Crop(image.Rect(0, 0, 1, 1))
	require.ErrorIs(t, err, bmpx.ErrNullRaster)
}
