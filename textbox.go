package oled128

import (
	"fmt"
	"io"
)

// TextBox is a scrolling text surface over a rectangular region of the
// display. Characters are appended at a cursor, wrap at the right edge, and
// scroll the visible lines up when the bottom edge is reached. It implements
// io.Writer and io.ByteWriter so it can be the target of fmt printing.
type TextBox struct {
	oled       *OLED
	left, top  int
	width      int
	height     int
	curX, curY int

	// lines holds the characters of the currently visible lines, used to
	// repaint them when the surface scrolls.
	lines [][]byte

	foreground Colour
	background Colour

	// A newline is not applied until the next character arrives, so a
	// trailing newline does not leave a blank line at the bottom.
	pendingNewline bool

	scrolled int
}

var (
	_ io.Writer     = (*TextBox)(nil)
	_ io.ByteWriter = (*TextBox)(nil)
)

// NewTextBox returns a text surface over the given region of the display,
// drawing white on black with the display's selected font. A zero width or
// height selects the remainder of the screen.
func NewTextBox(oled *OLED, left, top, width, height int) *TextBox {
	if width <= 0 {
		width = Columns - left
	}
	if height <= 0 {
		height = Rows - top
	}
	return &TextBox{
		oled:       oled,
		left:       left,
		top:        top,
		width:      width,
		height:     height,
		lines:      [][]byte{nil},
		foreground: White,
		background: Black,
	}
}

// SetForegroundColour sets the colour used for glyph pixels.
func (t *TextBox) SetForegroundColour(colour Colour) {
	t.foreground = colour
}

// SetBackgroundColour sets the colour used for glyph padding, cleared areas
// and inter-glyph spacing.
func (t *TextBox) SetBackgroundColour(colour Colour) {
	t.background = colour
}

// Scrolled returns the number of lines scrolled out of view since the last
// Reset.
func (t *TextBox) Scrolled() int {
	return t.scrolled
}

// WriteByte appends one character to the surface. A newline defers the line
// advance until the next character; a printable character wraps to the next
// line first when it would not fit the surface width. Characters without a
// glyph in the selected font are dropped.
func (t *TextBox) WriteByte(c byte) error {
	f := t.oled.font
	if f == nil || f.Height() > t.height {
		return nil
	}

	if t.pendingNewline {
		t.pendingNewline = false
		t.newline(f.Height())
	}

	if c == '\n' {
		t.pendingNewline = true
		return nil
	}

	width := f.CharWidth(c)
	if width == 0 {
		return nil
	}
	if t.curX+width > t.width {
		t.newline(f.Height())
	}

	t.oled.DrawChar(t.left+t.curX, t.top+t.curY, c, t.foreground, t.background)
	t.lines[len(t.lines)-1] = append(t.lines[len(t.lines)-1], c)
	t.curX += width

	// inter-glyph spacing column
	if t.curX < t.width {
		t.oled.vline(t.left+t.curX, t.top+t.curY, t.top+t.curY+f.Height()-1, t.background)
	}
	t.curX++
	return nil
}

// Write appends a run of characters to the surface.
func (t *TextBox) Write(p []byte) (int, error) {
	for _, c := range p {
		if err := t.WriteByte(c); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// WriteString appends a string to the surface.
func (t *TextBox) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// Printf formats like fmt.Printf and appends the result to the surface.
func (t *TextBox) Printf(format string, args ...interface{}) (int, error) {
	return fmt.Fprintf(t, format, args...)
}

// Println formats like fmt.Println and appends the result to the surface.
func (t *TextBox) Println(args ...interface{}) (int, error) {
	return fmt.Fprintln(t, args...)
}

// newline moves the cursor to the start of the next line, scrolling when the
// new line would cross the bottom edge.
func (t *TextBox) newline(fontHeight int) {
	t.curX = 0
	t.curY += fontHeight
	if t.curY+fontHeight > t.height {
		t.scroll(fontHeight)
	}
	t.lines = append(t.lines, nil)
}

// scroll shifts the visible content up by one line height: the dropped top
// line vanishes, the surviving lines are repainted one row up and the newly
// exposed bottom strip is cleared to the background.
func (t *TextBox) scroll(fontHeight int) {
	if len(t.lines) > 0 {
		t.lines = t.lines[1:]
	}
	t.scrolled++

	for i, line := range t.lines {
		y := t.top + i*fontHeight
		t.oled.fill(t.left, y, t.left+t.width-1, y+fontHeight-1, t.background)
		x := t.left
		for _, c := range line {
			x += t.oled.DrawChar(x, y, c, t.foreground, t.background) + 1
		}
	}

	y := t.top + len(t.lines)*fontHeight
	t.oled.fill(t.left, y, t.left+t.width-1, y+fontHeight-1, t.background)
	t.curY = len(t.lines) * fontHeight
}

// Clear blanks the surface and moves the cursor to the top left corner. Any
// deferred newline is dropped.
func (t *TextBox) Clear() {
	t.oled.fill(t.left, t.top, t.left+t.width-1, t.top+t.height-1, t.background)
	t.curX, t.curY = 0, 0
	t.pendingNewline = false
	t.lines = t.lines[:0]
	t.lines = append(t.lines, nil)
}

// Reset clears the surface and additionally resets the scroll bookkeeping.
func (t *TextBox) Reset() {
	t.Clear()
	t.scrolled = 0
}
