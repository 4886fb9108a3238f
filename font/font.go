// Package font loads bitmap fonts in the FontCreator binary layout: a six
// byte header followed by an optional per-glyph width table and the glyph
// bitmaps.
//
// Glyph bitmaps are stored in blocks of eight rows. Each block holds one byte
// per column, least significant bit at the topmost row of the block. Variable
// width fonts carry one width byte per glyph between the header and the
// bitmap data; fixed width fonts omit the table.
package font

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Parse errors.
var (
	ErrTruncated = errors.New("font: truncated font data")
	ErrHeader    = errors.New("font: invalid font header")
)

const headerSize = 6

// Font is a bitmap font resource.
type Font struct {
	fixedWidth byte
	height     byte
	firstChar  byte
	charCount  byte
	widths     []byte // nil for fixed width fonts
	glyphs     []byte
}

// Parse loads a font from its binary representation. The data is retained by
// the returned Font and must not be modified.
func Parse(data []byte) (*Font, error) {
	if len(data) < headerSize {
		return nil, ErrTruncated
	}

	size := binary.LittleEndian.Uint16(data)
	f := &Font{
		fixedWidth: data[2],
		height:     data[3],
		firstChar:  data[4],
		charCount:  data[5],
	}
	if f.height == 0 || f.charCount == 0 {
		return nil, ErrHeader
	}
	if size != 0 && int(size) > len(data) {
		return nil, ErrTruncated
	}

	rest := data[headerSize:]
	if f.fixedWidth == 0 {
		if len(rest) < int(f.charCount) {
			return nil, ErrTruncated
		}
		f.widths, rest = rest[:f.charCount], rest[f.charCount:]
	}

	var total int
	if f.fixedWidth != 0 {
		total = int(f.charCount) * int(f.fixedWidth) * f.blocks()
	} else {
		for _, w := range f.widths {
			total += int(w) * f.blocks()
		}
	}
	if len(rest) < total {
		return nil, fmt.Errorf("%w: need %d glyph bytes, have %d", ErrTruncated, total, len(rest))
	}
	f.glyphs = rest[:total]

	return f, nil
}

// MustParse is like Parse but panics on malformed data. It is intended for
// fonts compiled into the binary.
func MustParse(data []byte) *Font {
	f, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return f
}

// Height returns the glyph height in pixels.
func (f *Font) Height() int {
	return int(f.height)
}

// blocks returns the number of 8-row blocks per glyph column.
func (f *Font) blocks() int {
	return (int(f.height) + 7) / 8
}

// index returns the glyph index for a character, or -1 when the font has no
// glyph for it.
func (f *Font) index(c byte) int {
	if c < f.firstChar {
		return -1
	}
	i := int(c) - int(f.firstChar)
	if i >= int(f.charCount) {
		return -1
	}
	return i
}

// CharWidth returns the width of a character in pixels, zero when the font
// has no glyph for it.
func (f *Font) CharWidth(c byte) int {
	i := f.index(c)
	if i < 0 {
		return 0
	}
	if f.fixedWidth != 0 {
		return int(f.fixedWidth)
	}
	return int(f.widths[i])
}

// Glyph returns the bitmap for a character.
func (f *Font) Glyph(c byte) (Glyph, bool) {
	i := f.index(c)
	if i < 0 {
		return Glyph{}, false
	}

	var width, offset int
	if f.fixedWidth != 0 {
		width = int(f.fixedWidth)
		offset = i * width * f.blocks()
	} else {
		width = int(f.widths[i])
		for _, w := range f.widths[:i] {
			offset += int(w) * f.blocks()
		}
	}

	return Glyph{
		Width:  width,
		height: int(f.height),
		bitmap: f.glyphs[offset : offset+width*f.blocks()],
	}, true
}

// Glyph is a single character bitmap.
type Glyph struct {
	// Width of the glyph in pixels.
	Width int

	height int
	bitmap []byte
}

// Height returns the glyph height in pixels.
func (g Glyph) Height() int {
	return g.height
}

// At reports whether the pixel at (x, y) is set, with (0, 0) the top left
// corner of the glyph. Out of range coordinates are clear.
func (g Glyph) At(x, y int) bool {
	if x < 0 || x >= g.Width || y < 0 || y >= g.height {
		return false
	}
	return g.bitmap[(y/8)*g.Width+x]&(1<<uint(y&7)) != 0
}
