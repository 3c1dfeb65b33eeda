package bmpx

import "errors"

var (
	// ErrInvalidDimensions is returned when a raster is requested with a
	// non-positive number of rows or columns, or one too large for the
	// header fields.
	ErrInvalidDimensions = errors.New("bmpx: invalid dimensions")

	// ErrOutOfRange is returned when a pixel is addressed outside the raster.
	ErrOutOfRange = errors.New("bmpx: pixel coordinate out of range")

	// ErrNullRaster is returned by operations that need pixel data.
	ErrNullRaster = errors.New("bmpx: raster is null")

	// ErrInvalidFactor is returned for zero, negative or non-finite factors.
	ErrInvalidFactor = errors.New("bmpx: scale factor must be positive and finite")

	// ErrUnknownKernel is returned by resize methods for kernels other than
	// Nearest and Bilinear.
	ErrUnknownKernel = errors.New("bmpx: unknown interpolation kernel")

	// ErrNegativeSample means a bilinear sample came out negative, which only
	// floating-point edge cases can cause.
	ErrNegativeSample = errors.New("bmpx: interpolated sample is negative")

	// ErrUnsupported is returned when decoding a bitmap variant other than
	// 24-bit, uncompressed, bottom-up with a BITMAPINFOHEADER.
	ErrUnsupported = errors.New("bmpx: unsupported bitmap")
)
