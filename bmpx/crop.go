package bmpx

import (
	"errors"
	"image"
)

// Crop returns a new raster holding the given region of r. The region uses
// image.Rectangle conventions: 0-based, origin at the top-left pixel, Max
// exclusive. It is clipped to r's bounds.
func (r *Raster) Crop(region image.Rectangle) (*Raster, error) {
	if r.IsNull() {
		return nil, ErrNullRaster
	}
	// Find / validate crop area
	region = r.Bounds().Intersect(region)
	if region.Empty() {
		return nil, errors.New("crop area empty or out of bounds")
	}
	dst, err := New(region.Dy(), region.Dx())
	if err != nil {
		return nil, err
	}
	left := region.Min.X * bytesPerPixel
	right := region.Max.X * bytesPerPixel
	for y := region.Min.Y; y < region.Max.Y; y++ {
		copy(dst.row(y-region.Min.Y), r.row(y)[left:right])
	}
	return dst, nil
}

// Bounds is the 0-based rectangle covered by r, for use with Crop.
func (r *Raster) Bounds() image.Rectangle {
	if r.IsNull() {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, r.width, r.height)
}
