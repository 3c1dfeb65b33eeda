package bmpx

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

const (
	// HeaderSize is the length of the file header plus BITMAPINFOHEADER.
	HeaderSize = fileHeaderLen + infoHeaderLen

	fileHeaderLen = 14
	infoHeaderLen = 40

	bytesPerPixel = 3
)

// Offsets of the mutable header fields.
const (
	offFileSize  = 2
	offWidth     = 18
	offHeight    = 22
	offImageSize = 34
)

// headerTemplate is a 24-bit, uncompressed, bottom-up BITMAPINFOHEADER file
// with zeroed dimensions and 2835 pixels per metre in both directions.
const headerTemplate = "424d" + "00000000" + "00000000" + "36000000" +
	"28000000" + "00000000" + "00000000" + "0100" + "1800" +
	"00000000" + "00000000" + "130b0000" + "130b0000" +
	"00000000" + "00000000"

var template = func() [HeaderSize]byte {
	var b [HeaderSize]byte
	n, err := hex.Decode(b[:], []byte(headerTemplate))
	if err != nil || n != HeaderSize {
		panic(fmt.Sprintf("bmpx: malformed header template (%d bytes): %v", n, err))
	}
	return b
}()

// newHeader materializes the template and stamps the dimension fields.
func newHeader(width, height, size int) []byte {
	b := make([]byte, HeaderSize)
	copy(b, template[:])
	stampHeader(b, width, height, size)
	return b
}

func stampHeader(b []byte, width, height, size int) {
	binary.LittleEndian.PutUint32(b[offFileSize:], uint32(HeaderSize+size))
	binary.LittleEndian.PutUint32(b[offWidth:], uint32(width))
	binary.LittleEndian.PutUint32(b[offHeight:], uint32(height))
	binary.LittleEndian.PutUint32(b[offImageSize:], uint32(size))
}

// Header is the decoded form of the fields this package interprets.
type Header struct {
	Width        int
	Height       int
	BitsPerPixel int
	ImageSize    int
	TopDown      bool
	ImageOffset  uint32
	// HeaderBytes holds the raw bytes preceding the pixel data.
	HeaderBytes []byte
}

// DecodeHeader reads a BMP file header and BITMAPINFOHEADER from r.
// Only 24-bit, single plane, uncompressed images with a 40-byte info header
// and no palette are accepted; anything else yields ErrUnsupported.
func DecodeHeader(r io.Reader) (res Header, err error) {
	var empty Header
	b := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, b); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return empty, err
	}
	if string(b[:2]) != "BM" {
		return empty, errors.New("bmp: invalid format")
	}
	res.ImageOffset = binary.LittleEndian.Uint32(b[10:14])
	if infoLen := binary.LittleEndian.Uint32(b[14:18]); infoLen != infoHeaderLen {
		return empty, fmt.Errorf("%w: info header length %d", ErrUnsupported, infoLen)
	}
	if res.ImageOffset != HeaderSize {
		return empty, fmt.Errorf("%w: pixel data offset %d", ErrUnsupported, res.ImageOffset)
	}
	res.Width = int(int32(binary.LittleEndian.Uint32(b[offWidth:])))
	res.Height = int(int32(binary.LittleEndian.Uint32(b[offHeight:])))
	if res.Height < 0 {
		res.Height, res.TopDown = -res.Height, true
	}
	if res.Width <= 0 || res.Height == 0 {
		return empty, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, res.Width, res.Height)
	}
	planes := binary.LittleEndian.Uint16(b[26:28])
	res.BitsPerPixel = int(binary.LittleEndian.Uint16(b[28:30]))
	compression := binary.LittleEndian.Uint32(b[30:34])
	if planes != 1 || compression != 0 {
		return empty, fmt.Errorf("%w: planes=%d compression=%d", ErrUnsupported, planes, compression)
	}
	if res.BitsPerPixel != 8*bytesPerPixel {
		return empty, fmt.Errorf("%w: %d bits per pixel", ErrUnsupported, res.BitsPerPixel)
	}
	res.ImageSize = int(binary.LittleEndian.Uint32(b[offImageSize:]))
	res.HeaderBytes = b
	return res, nil
}
