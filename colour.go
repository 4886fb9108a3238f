package oled128

import "image/color"

// Channel maxima for Colour.
const (
	MaxRed   = 31
	MaxGreen = 63
	MaxBlue  = 31
)

// ColourModel converts arbitrary colors to the panel's 5-6-5 Colour.
var ColourModel color.Model = color.ModelFunc(colourModel)

// Colour is the native colour of the panel: red and blue span 0-31, green
// spans 0-63. The zero value is black.
type Colour struct {
	R, G, B uint8
}

// NewColour returns a Colour from native channel values. Values beyond the
// channel range are masked to it.
func NewColour(r, g, b uint8) Colour {
	return Colour{R: r & MaxRed, G: g & MaxGreen, B: b & MaxBlue}
}

// RGB returns a Colour from 8-bit per channel values, truncating each channel
// to the panel depth.
func RGB(r, g, b uint8) Colour {
	return Colour{R: r >> 3, G: g >> 2, B: b >> 3}
}

// RGBA implements the color.Color interface.
func (c Colour) RGBA() (r, g, b, a uint32) {
	// Build a 5- or 6-bit value at the top of the low byte of each component.
	red := uint32(c.R) << 3
	grn := uint32(c.G) << 2
	blu := uint32(c.B) << 3
	// Duplicate the high bits in the low bits.
	red |= red >> 5
	grn |= grn >> 6
	blu |= blu >> 5
	// Duplicate the whole value in the high byte.
	red |= red << 8
	grn |= grn << 8
	blu |= blu << 8
	return red, grn, blu, 0xffff
}

// Pack returns the 16-bit 5-6-5 packing of the colour.
func (c Colour) Pack() uint16 {
	return uint16(c.R&MaxRed)<<11 | uint16(c.G&MaxGreen)<<5 | uint16(c.B&MaxBlue)
}

// Unpack returns the Colour for a 16-bit 5-6-5 packed value.
func Unpack(v uint16) Colour {
	return Colour{
		R: uint8(v >> 11),
		G: uint8(v>>5) & MaxGreen,
		B: uint8(v) & MaxBlue,
	}
}

// bytes returns the two wire bytes of the colour, high byte first.
func (c Colour) bytes() (hi, lo byte) {
	return (c.G >> 3) | (c.R << 3), (c.G << 5) | c.B
}

func colourModel(c color.Color) color.Color {
	if c, ok := c.(Colour); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return Colour{
		R: uint8(r >> 11),
		G: uint8(g >> 10),
		B: uint8(b >> 11),
	}
}
