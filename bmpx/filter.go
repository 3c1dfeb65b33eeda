package bmpx

import (
	"errors"
	"fmt"
	"math"

	"github.com/disintegration/imaging"
)

// ResizeFilter resamples r to rows x cols with a separable convolution
// kernel, horizontally first and then vertically. Output matches
// imaging.Resize for the same filter.
//
// Parts of this code are taken from or inspired by
// https://github.com/disintegration/imaging/blob/24d954dc01266ac1e8ba74cbe5e632c87fb0b38a/resize.go
func (r *Raster) ResizeFilter(
	rows, cols int,
	filter imaging.ResampleFilter,
	opts ...ResizeOption,
) error {
	if r.IsNull() {
		return ErrNullRaster
	}
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if filter.Support <= 0 {
		return errors.New(
			"unsupported filter, filter.Support must be larger than 0",
		)
	}
	o, err := newResizeOptions(opts)
	if err != nil {
		return err
	}
	// Check for no-op
	if rows == r.height && cols == r.width {
		return nil
	}

	srcW, srcH := r.width, r.height
	lineOut := cols * bytesPerPixel

	// Holds the horizontally resized rows, top-down without padding
	interm := make([]uint8, srcH*lineOut)
	if cols == srcW {
		for y := 0; y < srcH; y++ {
			copy(interm[y*lineOut:(y+1)*lineOut], r.row(y))
		}
	} else {
		weightsX := computeWeights(cols, srcW, filter)
		err = o.parallel(0, srcH, func(start, stop int) error {
			for y := start; y < stop; y++ {
				in := r.row(y)
				out := interm[y*lineOut : (y+1)*lineOut]
				for x := range weightsX {
					weigh(in, 0, bytesPerPixel, weightsX[x], out[x*bytesPerPixel:])
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	dst, err := New(rows, cols)
	if err != nil {
		return err
	}
	if rows == srcH {
		for y := 0; y < rows; y++ {
			copy(dst.row(y), interm[y*lineOut:(y+1)*lineOut])
		}
	} else {
		weightsY := computeWeights(rows, srcH, filter)
		err = o.parallel(0, rows, func(start, stop int) error {
			for y := start; y < stop; y++ {
				out := dst.row(y)
				for x := 0; x < cols; x++ {
					weigh(interm, x*bytesPerPixel, lineOut, weightsY[y], out[x*bytesPerPixel:])
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	r.MoveFrom(dst)
	return nil
}

// row returns the pixels of row y, counted from 0 at the top, without the
// trailing padding.
func (r *Raster) row(y int) []uint8 {
	off := r.size - (y+1)*r.bytesPerRow
	return r.pix[off : off+r.width*bytesPerPixel]
}

// weigh writes the weighted sum of the samples at base+index*stride into
// out[0:3]. Pixels are treated as opaque, so the result equals what an
// alpha-weighted NRGBA resample produces.
func weigh(src []uint8, base, stride int, weights []indexWeight, out []uint8) {
	var rgb [bytesPerPixel]float64
	var a, aw float64
	var loc int
	for _, w := range weights {
		loc = base + w.index*stride
		aw = 0xFF * w.weight
		rgb[0] += float64(src[loc+0]) * aw
		rgb[1] += float64(src[loc+1]) * aw
		rgb[2] += float64(src[loc+2]) * aw
		a += aw
	}
	out[0], out[1], out[2] = 0, 0, 0
	if a != 0 {
		aInv := 1 / a
		out[0] = floatToByte(rgb[0] * aInv)
		out[1] = floatToByte(rgb[1] * aInv)
		out[2] = floatToByte(rgb[2] * aInv)
	}
}

func floatToByte(x float64) uint8 {
	v := int64(x + 0.5)
	if v > 255 {
		return 255
	}
	if v > 0 {
		return uint8(v)
	}
	return 0
}

type indexWeight struct {
	index  int
	weight float64
}

// Returns the normalized kernel weights for a single dimension.
// For each output index there is a set of weights for
// corresponding input indices.
func computeWeights(
	dstSize, srcSize int,
	filter imaging.ResampleFilter,
) [][]indexWeight {
	du := float64(srcSize) / float64(dstSize)
	scale := du
	if scale < 1.0 {
		scale = 1.0
	}
	ru := math.Ceil(scale * filter.Support)

	out := make([][]indexWeight, dstSize)
	tmp := make([]indexWeight, 0, dstSize*int(ru+2)*2)

	var begin, end, u int
	var fu, sum, w float64
	for v := 0; v < dstSize; v++ {
		fu = (float64(v)+0.5)*du - 0.5

		begin = int(math.Ceil(fu - ru))
		if begin < 0 {
			begin = 0
		}
		end = int(math.Floor(fu + ru))
		if end > srcSize-1 {
			end = srcSize - 1
		}

		sum = 0
		for u = begin; u <= end; u++ {
			if w = filter.Kernel((float64(u) - fu) / scale); w != 0 {
				sum += w
				tmp = append(tmp, indexWeight{index: u, weight: w})
			}
		}
		if sum != 0 {
			for i := range tmp {
				tmp[i].weight /= sum
			}
		}
		out[v] = tmp
		tmp = tmp[len(tmp):]
	}
	return out
}
