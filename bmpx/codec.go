package bmpx

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// WriteTo writes the 54-byte header followed by the pixel buffer.
func (r *Raster) WriteTo(w io.Writer) (int64, error) {
	if r.IsNull() {
		return 0, ErrNullRaster
	}
	n, err := w.Write(r.header)
	if err != nil {
		return int64(n), fmt.Errorf("failed to write %d header bytes: %w", len(r.header), err)
	}
	m, err := w.Write(r.pix)
	if err != nil {
		return int64(n + m), fmt.Errorf("failed to write %d pixel bytes: %w", len(r.pix), err)
	}
	return int64(n + m), nil
}

// WriteFile writes r to the named file, creating or truncating it.
func (r *Raster) WriteFile(name string) (err error) {
	if r.IsNull() {
		return ErrNullRaster
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = r.WriteTo(f)
	return err
}

// Decode reads a 24-bit, bottom-up, uncompressed BMP with a
// BITMAPINFOHEADER. The stored header is rebuilt from the decoded
// dimensions rather than kept verbatim.
func Decode(src io.Reader) (*Raster, error) {
	hdr, err := DecodeHeader(src)
	if err != nil {
		return nil, err
	}
	if hdr.TopDown {
		return nil, fmt.Errorf("%w: topDown not supported", ErrUnsupported)
	}
	r, err := New(hdr.Height, hdr.Width)
	if err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(src, r.pix); err != nil {
		return nil, fmt.Errorf(
			"failed to read %d pixel bytes: %w",
			len(r.pix),
			err,
		)
	}
	return r, nil
}

// Load decodes any BMP that golang.org/x/image/bmp understands. Images
// Decode accepts are loaded byte-for-byte; the rest are converted through
// FromImage.
func Load(src io.Reader) (*Raster, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	r, err := Decode(bytes.NewReader(data))
	if err == nil || !errors.Is(err, ErrUnsupported) {
		return r, err
	}
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return FromImage(img)
}

// FromImage converts img to a raster. Alpha is discarded.
func FromImage(img image.Image) (*Raster, error) {
	src := imaging.Clone(img)
	b := src.Bounds()
	r, err := New(b.Dy(), b.Dx())
	if err != nil {
		return nil, err
	}
	for y := 0; y < r.height; y++ {
		in := src.Pix[y*src.Stride : y*src.Stride+r.width*4]
		out := r.row(y)
		for x := 0; x < r.width; x++ {
			out[x*3+0] = in[x*4+2]
			out[x*3+1] = in[x*4+1]
			out[x*3+2] = in[x*4+0]
		}
	}
	return r, nil
}

// Image returns an opaque copy of r as an *image.NRGBA.
func (r *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(r.Bounds())
	if r.IsNull() {
		return img
	}
	for y := 0; y < r.height; y++ {
		in := r.row(y)
		for x := 0; x < r.width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: in[x*3+2],
				G: in[x*3+1],
				B: in[x*3+0],
				A: 0xFF,
			})
		}
	}
	return img
}
