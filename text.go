package oled128

import "github.com/BeatGlow/oled128/font"

// SelectFont sets the font used by the text drawing operations.
func (d *OLED) SelectFont(f *font.Font) {
	d.font = f
}

// Font returns the currently selected font, nil if none.
func (d *OLED) Font() *font.Font {
	return d.font
}

// CharWidth returns the width of a character in the selected font, zero when
// no font is selected or the font has no glyph for it.
func (d *OLED) CharWidth(letter byte) int {
	if d.font == nil {
		return 0
	}
	return d.font.CharWidth(letter)
}

// DrawChar draws a single character with its top left corner at (x,y) and
// returns the glyph width. Pixels outside the glyph bitmap are painted in
// the background colour.
func (d *OLED) DrawChar(x, y int, letter byte, colour, background Colour) int {
	if d.font == nil {
		return 0
	}
	glyph, ok := d.font.Glyph(letter)
	if !ok {
		return 0
	}
	d.drawGlyph(x, y, glyph, colour, background)
	return glyph.Width
}

func (d *OLED) drawGlyph(x, y int, g font.Glyph, colour, background Colour) {
	w, h := g.Width, g.Height()
	if w == 0 || x+w <= 0 || y+h <= 0 || x >= Columns || y >= Rows {
		return
	}

	if x >= 0 && y >= 0 && x+w <= Columns && y+h <= Rows {
		// Fast path: stream the glyph bounding box through a single window.
		if err := d.setWindow(x, y, x+w-1, y+h-1); err != nil {
			return
		}
		var (
			fhi, flo = colour.bytes()
			bhi, blo = background.bytes()
			buf      = make([]byte, 0, 2*w*h)
		)
		for row := 0; row < h; row++ {
			for col := 0; col < w; col++ {
				if g.At(col, row) {
					buf = append(buf, fhi, flo)
				} else {
					buf = append(buf, bhi, blo)
				}
			}
		}
		d.data(buf...)
		return
	}

	// Partially off screen, fall back to per-pixel writes.
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			if g.At(col, row) {
				d.SetPixel(x+col, y+row, colour)
			} else {
				d.SetPixel(x+col, y+row, background)
			}
		}
	}
}

// DrawString draws a string with its top left corner at (x,y), advancing by
// each glyph's width plus one pixel of spacing. The spacing column between
// glyphs is painted in the background colour; no column is painted after the
// final glyph. No line wrapping is performed.
func (d *OLED) DrawString(x, y int, text string, foreground, background Colour) {
	if d.font == nil {
		return
	}
	height := d.font.Height()
	for i := 0; i < len(text); i++ {
		if x >= Columns {
			break
		}
		width := d.DrawChar(x, y, text[i], foreground, background)
		if width == 0 {
			continue
		}
		x += width
		if i+1 < len(text) {
			d.vline(x, y, y+height-1, background)
		}
		x++
	}
}
