// Package bmpx holds 24-bit images in BMP file layout and resizes them in
// memory.
package bmpx

import (
	"fmt"
	"math"
)

// Pixel is one stored pixel. Samples are in file order, which for the
// supported header is blue, green, red.
type Pixel [3]uint8

// White is returned when sampling outside a raster.
var White = Pixel{0xFF, 0xFF, 0xFF}

type rasterState uint8

const (
	stateNull rasterState = iota
	statePopulated
)

// Raster is a 24-bit image held in the exact layout of a bottom-up BMP:
// each row padded to a multiple of 4 bytes, the topmost row stored last.
//
// The zero value is a null raster. Rows and columns are 1-indexed from the
// top-left corner.
type Raster struct {
	state       rasterState
	height      int
	width       int
	bytesPerRow int
	size        int
	header      []byte
	pix         []byte
}

// New returns a blank raster of the given size. Pixel bytes are zeroed.
func New(rows, cols int) (*Raster, error) {
	r := &Raster{}
	if err := r.init(rows, cols); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Raster) init(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	// width, height and size must each fit their 4-byte header field
	if cols > (math.MaxInt32-HeaderSize)/bytesPerPixel || rows > math.MaxInt32 {
		return fmt.Errorf("%w: %dx%d exceeds bitmap limits", ErrInvalidDimensions, rows, cols)
	}
	stride := rowStride(cols)
	if int64(rows) > maxImageSize/int64(stride) {
		return fmt.Errorf("%w: %dx%d exceeds bitmap limits", ErrInvalidDimensions, rows, cols)
	}
	*r = Raster{
		state:       statePopulated,
		height:      rows,
		width:       cols,
		bytesPerRow: stride,
		size:        rows * stride,
	}
	r.pix = make([]byte, r.size)
	r.header = newHeader(r.width, r.height, r.size)
	return nil
}

// maxImageSize bounds the pixel buffer so HeaderSize+size fits the file
// size field and the buffer length fits an int.
const maxImageSize = min(int64(math.MaxUint32-HeaderSize), int64(math.MaxInt))

// rowStride is the padded byte length of a row of cols pixels.
func rowStride(cols int) int {
	return cols*bytesPerPixel + getNumPaddingBytes(cols, bytesPerPixel)
}

func getNumPaddingBytes(width, bytesPerPixel int) int {
	if n := 4 + -bytesPerPixel*width%4; n != 4 {
		return n
	}
	return 0
}

// Clone returns a deep copy of r with an independently derived header.
func (r *Raster) Clone() *Raster {
	if r.IsNull() {
		return &Raster{}
	}
	c := &Raster{
		state:       statePopulated,
		height:      r.height,
		width:       r.width,
		bytesPerRow: r.bytesPerRow,
		size:        r.size,
		header:      newHeader(r.width, r.height, r.size),
		pix:         make([]byte, r.size),
	}
	copy(c.pix, r.pix)
	return c
}

// CopyFrom makes r a deep copy of src. r is only modified once the copy has
// been fully built.
func (r *Raster) CopyFrom(src *Raster) error {
	if src == nil {
		return ErrNullRaster
	}
	if r == src {
		return nil
	}
	c := src.Clone()
	*r = *c
	return nil
}

// MoveFrom transfers src's buffer and header to r without copying pixel
// data. src is left null. A nil src leaves r unchanged.
func (r *Raster) MoveFrom(src *Raster) {
	if src == nil || r == src {
		return
	}
	*r = *src
	*src = Raster{}
}

// IsNull reports whether r holds no image.
func (r *Raster) IsNull() bool { return r == nil || r.state == stateNull }

func (r *Raster) Height() int { return r.height }

func (r *Raster) Width() int { return r.width }

// Size is the length of the pixel buffer in bytes.
func (r *Raster) Size() int { return r.size }

func (r *Raster) BytesPerRow() int { return r.bytesPerRow }

// Header returns a copy of the 54-byte header, or nil for a null raster.
func (r *Raster) Header() []byte {
	if r.IsNull() {
		return nil
	}
	return append([]byte(nil), r.header...)
}

// Pix returns the pixel buffer itself. Writes through it are visible to r.
func (r *Raster) Pix() []byte { return r.pix }

// Locate returns the buffer offset of the pixel at row y, column x.
func (r *Raster) Locate(y, x int) (int, error) {
	if !r.inside(y, x) {
		return 0, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfRange, y, x, r.height, r.width)
	}
	return r.offset(y, x), nil
}

func (r *Raster) inside(y, x int) bool {
	return !r.IsNull() && y >= 1 && y <= r.height && x >= 1 && x <= r.width
}

// offset assumes y and x are in range.
func (r *Raster) offset(y, x int) int {
	return r.size - y*r.bytesPerRow + bytesPerPixel*(x-1)
}

// At returns the pixel at row y, column x, or White if the coordinate lies
// outside the raster.
func (r *Raster) At(y, x int) Pixel {
	if !r.inside(y, x) {
		return White
	}
	i := r.offset(y, x)
	return Pixel{r.pix[i], r.pix[i+1], r.pix[i+2]}
}

// Set writes p at row y, column x.
func (r *Raster) Set(y, x int, p Pixel) error {
	i, err := r.Locate(y, x)
	if err != nil {
		return err
	}
	copy(r.pix[i:i+bytesPerPixel], p[:])
	return nil
}

// Fill sets every pixel to p. Row padding is left untouched.
func (r *Raster) Fill(p Pixel) {
	if r.IsNull() {
		return
	}
	for row := 0; row < r.height; row++ {
		line := r.pix[row*r.bytesPerRow:]
		for x := 0; x < r.width; x++ {
			copy(line[x*bytesPerPixel:], p[:])
		}
	}
}
