// Package swizzle converts between the premultiplied RGBA8 byte layout produced
// by the rasterizer and the packed 32-bit XRGB words consumed by presentation
// surfaces.
//
// An XRGB word holds red in bits 16-23, green in bits 8-15 and blue in bits
// 0-7. In little-endian memory this is the BGRA8 byte order most compositors
// expect.
package swizzle

import (
	"errors"
	"fmt"
)

// Transparent is the word written for a pixel whose alpha is zero.
// Compositors treat it as opaque white.
const Transparent uint32 = 0xFFFFFFFF

// ErrLengthMismatch is returned when the source and destination buffers
// describe a different number of pixels. Nothing is written in that case.
var ErrLengthMismatch = errors.New("swizzle: source and destination pixel counts differ")

// XRGB packs a single premultiplied RGBA8 pixel.
//
// Alpha only selects between the transparent sentinel and the color: any
// nonzero alpha keeps the channels as they are, without blending toward a
// background.
func XRGB(r, g, b, a uint8) uint32 {
	if a == 0 {
		return Transparent
	}
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// PremulToXRGB converts src, 4 bytes per pixel in R, G, B, A order, into dst.
// The pixel counts must match exactly.
func PremulToXRGB(dst []uint32, src []byte) error {
	if len(src)%4 != 0 || len(src)/4 != len(dst) {
		return fmt.Errorf("%w: src=%d dst=%d", ErrLengthMismatch, len(src)/4, len(dst))
	}
	for i := range dst {
		p := src[i*4 : i*4+4 : i*4+4]
		dst[i] = XRGB(p[0], p[1], p[2], p[3])
	}
	return nil
}

// XRGBToRGBA expands packed XRGB words into opaque RGBA8 bytes, the layout
// of image.RGBA. The top byte of each word is ignored.
func XRGBToRGBA(dst []byte, src []uint32) error {
	if len(dst)%4 != 0 || len(dst)/4 != len(src) {
		return fmt.Errorf("%w: src=%d dst=%d", ErrLengthMismatch, len(src), len(dst)/4)
	}
	for i, w := range src {
		p := dst[i*4 : i*4+4 : i*4+4]
		p[0] = uint8(w >> 16)
		p[1] = uint8(w >> 8)
		p[2] = uint8(w)
		p[3] = 0xFF
	}
	return nil
}
