package bmpx_test

import (
	"fmt"
	"testing"

	"github.com/adriansahlman/bmpraster/bmpx"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

var filters = []struct {
	name   string
	filter imaging.ResampleFilter
}{
	{"Box", imaging.Box},
	{"Linear", imaging.Linear},
	{"Hermite", imaging.Hermite},
	{"MitchellNetravali", imaging.MitchellNetravali},
	{"CatmullRom", imaging.CatmullRom},
	{"BSpline", imaging.BSpline},
	{"Gaussian", imaging.Gaussian},
	{"Bartlett", imaging.Bartlett},
	{"Lanczos", imaging.Lanczos},
	{"Hann", imaging.Hann},
	{"Hamming", imaging.Hamming},
	{"Blackman", imaging.Blackman},
	{"Welch", imaging.Welch},
	{"Cosine", imaging.Cosine},
}

func TestResizeFilter(t *testing.T) {
	srcImg := generateImage(100, 175)
	src, err := bmpx.FromImage(srcImg)
	require.NoError(t, err)
	for _, filter := range filters {
		for _, width := range []int{175, 100, 10} {
			for _, height := range []int{175, 100, 10} {
				name := fmt.Sprintf("%s/%dx%d", filter.name, width, height)
				ok := t.Run(name, func(t *testing.T) {
					expected := imaging.Resize(srcImg, width, height, filter.filter)
					r := src.Clone()
					err := r.ResizeFilter(
						height,
						width,
						filter.filter,
						bmpx.WithParallelBatchSize(7),
					)
					require.NoError(t, err)
					require.Equal(t, height, r.Height())
					require.Equal(t, width, r.Width())
					requireEqualImages(t, expected, r.Image())
				})
				if !ok {
					t.SkipNow()
				}
			}
		}
	}
}

func TestResizeFilterInvalid(t *testing.T) {
	var null bmpx.Raster
	require.ErrorIs(t, null.ResizeFilter(2, 2, imaging.Box), bmpx.ErrNullRaster)

	r := generateRaster(t, 4, 4)
	require.ErrorIs(t, r.ResizeFilter(0, 2, imaging.Box), bmpx.ErrInvalidDimensions)
	require.Error(t, r.ResizeFilter(2, 2, imaging.NearestNeighbor))
	require.Equal(t, 4, r.Height())
}

func BenchmarkResizeFilter(b *testing.B) {
	for _, filter := range []struct {
		name   string
		filter imaging.ResampleFilter
	}{
		{"Box", imaging.Box},
		{"Lanczos", imaging.Lanczos},
	} {
		for _, size := range []int{256, 1024} {
			srcImg := generateImage(size, size)
			src, err := bmpx.FromImage(srcImg)
			require.NoError(b, err)
			name := fmt.Sprintf("%s/%dx%d/%dx%d", filter.name, size, size, size/3, size/2)
			ok := b.Run(name+"/Imaging", func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					imaging.Resize(srcImg, size/3, size/2, filter.filter)
				}
			})
			if !ok {
				b.SkipNow()
			}
			b.Run(name+"/Raster", func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					r := src.Clone()
					require.NoError(b, r.ResizeFilter(size/2, size/3, filter.filter))
				}
			})
		}
	}
}
