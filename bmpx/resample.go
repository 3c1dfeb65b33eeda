package bmpx

import (
	"fmt"
	"math"
	"strings"
)

// Kernel selects how a fractional source coordinate is reconstructed.
type Kernel int

const (
	Nearest Kernel = iota
	Bilinear
	// Unsupported samples as White. Resize methods reject it.
	Unsupported
)

func (k Kernel) String() string {
	switch k {
	case Nearest:
		return "nearest"
	case Bilinear:
		return "bilinear"
	}
	return fmt.Sprintf("Kernel(%d)", int(k))
}

func (k Kernel) valid() bool { return k == Nearest || k == Bilinear }

// ParseKernel maps a kernel name, as returned by Kernel.String, to a Kernel.
func ParseKernel(name string) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "nearest", "neighbor", "neighbour":
		return Nearest, nil
	case "bilinear", "linear":
		return Bilinear, nil
	}
	return Unsupported, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
}

// Interpolate reconstructs the pixel at fractional row y, column x.
// Integer corners outside the raster contribute White. Unknown kernels
// return White without an error.
func (r *Raster) Interpolate(y, x float64, k Kernel) (Pixel, error) {
	if math.IsNaN(y) || math.IsNaN(x) || math.IsInf(y, 0) || math.IsInf(x, 0) {
		return White, nil
	}
	fy, cy := math.Floor(y), math.Ceil(y)
	fx, cx := math.Floor(x), math.Ceil(x)
	upB, downB := int(fy), int(cy)
	leftB, rightB := int(fx), int(cx)

	switch k {
	case Nearest:
		ny, nx := upB, leftB
		// ties go to the ceiling
		if cy-y <= y-fy {
			ny = downB
		}
		if cx-x <= x-fx {
			nx = rightB
		}
		return r.At(ny, nx), nil
	case Bilinear:
		leftUp, rightUp := r.At(upB, leftB), r.At(upB, rightB)
		rightDown, leftDown := r.At(downB, rightB), r.At(downB, leftB)
		wy := cy - y
		wx := x - fx
		var p Pixel
		var left, right float64
		for c := range p {
			left = float64(leftDown[c]) + wy*(float64(leftUp[c])-float64(leftDown[c]))
			right = float64(rightDown[c]) + wy*(float64(rightUp[c])-float64(rightDown[c]))
			v := int(left + wx*(right-left))
			// only reachable through floating-point edge cases; weights stay in [0,1]
			if v < 0 {
				return White, fmt.Errorf("%w: %d at (%g, %g)", ErrNegativeSample, v, y, x)
			}
			p[c] = uint8(v)
		}
		return p, nil
	}
	return White, nil
}

// ResizeTo resamples r to rows x cols. A null raster is instead initialized
// as a blank raster of that size and k is ignored.
func (r *Raster) ResizeTo(rows, cols int, k Kernel, opts ...ResizeOption) error {
	if r.IsNull() {
		return r.init(rows, cols)
	}
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	yk := float64(rows) / float64(r.height)
	xk := float64(cols) / float64(r.width)
	return r.ResizeFactor(yk, xk, k, opts...)
}

// Scale resamples r by the same factor on both axes.
func (r *Raster) Scale(factor float64, k Kernel, opts ...ResizeOption) error {
	return r.ResizeFactor(factor, factor, k, opts...)
}

// ResizeFactor resamples r to round(height*yk) x round(width*xk).
//
// Every target pixel (y, x) is reconstructed from source coordinate
// (y/yk, x/xk), clamped to the raster so edge pixels are replicated rather
// than blended with White. Rows are processed in parallel; r is replaced
// only after the new raster has been built completely.
func (r *Raster) ResizeFactor(yk, xk float64, k Kernel, opts ...ResizeOption) error {
	if r.IsNull() || r.height <= 0 || r.width <= 0 {
		return ErrNullRaster
	}
	if !validFactor(yk) || !validFactor(xk) {
		return fmt.Errorf("%w: %g, %g", ErrInvalidFactor, yk, xk)
	}
	if !k.valid() {
		return fmt.Errorf("%w: %v", ErrUnknownKernel, k)
	}
	o, err := newResizeOptions(opts)
	if err != nil {
		return err
	}

	newHeight := int(math.Round(float64(r.height) * yk))
	newWidth := int(math.Round(float64(r.width) * xk))
	dst, err := New(newHeight, newWidth)
	if err != nil {
		return fmt.Errorf("resize %dx%d by (%g, %g): %w", r.height, r.width, yk, xk, err)
	}

	maxY, maxX := float64(r.height), float64(r.width)
	err = o.parallel(1, newHeight+1, func(start, stop int) error {
		for y := start; y < stop; y++ {
			sy := clamp(float64(y)/yk, 1, maxY)
			for x := 1; x <= newWidth; x++ {
				p, err := r.Interpolate(sy, clamp(float64(x)/xk, 1, maxX), k)
				if err != nil {
					return fmt.Errorf("resample y=%d x=%d: %w", y, x, err)
				}
				i := dst.offset(y, x)
				copy(dst.pix[i:i+bytesPerPixel], p[:])
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.MoveFrom(dst)
	return nil
}

func validFactor(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
