package oled128

// SetPixel sets the colour of a single pixel. Out of range coordinates are
// silently ignored.
func (d *OLED) SetPixel(x, y int, colour Colour) {
	if x < 0 || y < 0 || x >= Columns || y >= Rows {
		return
	}
	d.setSinglePixel(x, y, colour)
}

// FillScreen fills the whole screen with a single solid colour.
func (d *OLED) FillScreen(colour Colour) {
	d.fill(0, 0, Columns-1, Rows-1, colour)
}

// ClearScreen fills the screen with black.
func (d *OLED) ClearScreen() {
	d.FillScreen(Black)
}

// fill streams a solid colour into the rectangle spanning both corner pairs,
// clipped to the screen. The whole rectangle is a single write window.
func (d *OLED) fill(x0, y0, x1, y1 int, colour Colour) error {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > Columns-1 {
		x1 = Columns - 1
	}
	if y1 > Rows-1 {
		y1 = Rows - 1
	}
	if x0 > x1 || y0 > y1 {
		return nil
	}
	if err := d.setWindow(x0, y0, x1, y1); err != nil {
		return err
	}
	return d.writeColour(colour, (x1-x0+1)*(y1-y0+1))
}

func (d *OLED) hline(x0, x1, y int, colour Colour) {
	d.fill(x0, y, x1, y, colour)
}

func (d *OLED) vline(x, y0, y1 int, colour Colour) {
	d.fill(x, y0, x, y1, colour)
}

// DrawLine draws a line from (x1,y1) to (x2,y2), endpoints inclusive.
func (d *OLED) DrawLine(x1, y1, x2, y2 int, colour Colour) {
	// Drawing p1 -> p2 is equivalent to drawing p2 -> p1, so sort the points
	// in x-axis order to halve the number of cases.
	if x1 > x2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	dx, dy := x2-x1, y2-y1
	// Because the points are x-axis ordered, dx cannot be negative.
	if dy < 0 {
		dy = -dy
	}

	var e, slope int
	switch {

	// Is the line a point?
	case x1 == x2 && y1 == y2:
		d.SetPixel(x1, y1, colour)

	// Horizontal and vertical lines are a single window fill.
	case y1 == y2:
		d.hline(x1, x2, y1, colour)

	case x1 == x2:
		d.vline(x1, y1, y2, colour)

	// Is the line a diagonal?
	case dx == dy:
		step := 1
		if y1 > y2 {
			step = -1
		}
		for ; dx != 0; dx-- {
			d.SetPixel(x1, y1, colour)
			x1++
			y1 += step
		}
		d.SetPixel(x2, y2, colour)

	// Wider than high?
	case dx > dy:
		step := 1
		if y1 > y2 {
			step = -1
		}
		dy, e, slope = 2*dy, dx, 2*dx
		for ; dx != 0; dx-- {
			d.SetPixel(x1, y1, colour)
			x1++
			e -= dy
			if e < 0 {
				y1 += step
				e += slope
			}
		}
		d.SetPixel(x2, y2, colour)

	// Higher than wide.
	default:
		step := 1
		if y1 > y2 {
			step = -1
		}
		dx, e, slope = 2*dx, dy, 2*dy
		for ; dy != 0; dy-- {
			d.SetPixel(x1, y1, colour)
			y1 += step
			e -= dx
			if e < 0 {
				x1++
				e += slope
			}
		}
		d.SetPixel(x2, y2, colour)
	}
}

// DrawBox draws the outline of a box from (x1,y1) to (x2,y2) with sides
// edgeWidth pixels wide. The border thickens inwards as nested rectangles.
func (d *OLED) DrawBox(x1, y1, x2, y2, edgeWidth int, colour Colour) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for i := 0; i < edgeWidth; i++ {
		if x1+i > x2-i || y1+i > y2-i {
			break
		}
		d.outlineBox(x1+i, y1+i, x2-i, y2-i, colour)
	}
}

// outlineBox draws a single pixel wide rectangle outline as 2-4 segments.
// The corners must be normalized.
func (d *OLED) outlineBox(x0, y0, x1, y1 int, colour Colour) {
	if y0 == y1 {
		d.hline(x0, x1, y0, colour)
		return
	}
	if x0 == x1 {
		d.vline(x0, y0, y1, colour)
		return
	}
	d.hline(x0, x1, y0, colour)
	d.hline(x0, x1, y1, colour)
	if y1-y0 > 1 {
		d.vline(x0, y0+1, y1-1, colour)
		d.vline(x1, y0+1, y1-1, colour)
	}
}

// DrawFilledBox draws a box from (x1,y1) to (x2,y2) filled with fillColour,
// optionally with a border edgeWidth pixels wide drawn in edgeColour. The
// interior is painted as one window fill; the border is painted on top when
// its colour differs from the fill.
func (d *OLED) DrawFilledBox(x1, y1, x2, y2 int, fillColour Colour, edgeWidth int, edgeColour Colour) {
	d.fill(x1, y1, x2, y2, fillColour)
	if edgeWidth > 0 && edgeColour != fillColour {
		d.DrawBox(x1, y1, x2, y2, edgeWidth, edgeColour)
	}
}

// DrawCircle draws the outline of a circle of the given radius centred at
// (xCenter,yCenter). Radius 0 draws a single pixel.
func (d *OLED) DrawCircle(xCenter, yCenter, radius int, colour Colour) {
	if radius < 0 {
		return
	}
	if radius == 0 {
		d.SetPixel(xCenter, yCenter, colour)
		return
	}

	x, y, e := 0, radius, 1-radius
	for x <= y {
		d.SetPixel(xCenter+x, yCenter+y, colour)
		d.SetPixel(xCenter+x, yCenter-y, colour)
		d.SetPixel(xCenter-x, yCenter+y, colour)
		d.SetPixel(xCenter-x, yCenter-y, colour)
		d.SetPixel(xCenter+y, yCenter+x, colour)
		d.SetPixel(xCenter+y, yCenter-x, colour)
		d.SetPixel(xCenter-y, yCenter+x, colour)
		d.SetPixel(xCenter-y, yCenter-x, colour)

		x++
		if e < 0 {
			e += 2*x + 1
		} else {
			y--
			e += 2*(x-y) + 1
		}
	}
}

// DrawFilledCircle draws a filled circle of the given radius centred at
// (xCenter,yCenter). The interior is painted as horizontal spans between the
// mirrored offsets, one window per scanline.
func (d *OLED) DrawFilledCircle(xCenter, yCenter, radius int, fillColour Colour) {
	if radius < 0 {
		return
	}
	if radius == 0 {
		d.SetPixel(xCenter, yCenter, fillColour)
		return
	}

	x, y, e := 0, radius, 1-radius
	for x <= y {
		d.hline(xCenter-y, xCenter+y, yCenter+x, fillColour)
		d.hline(xCenter-y, xCenter+y, yCenter-x, fillColour)
		d.hline(xCenter-x, xCenter+x, yCenter+y, fillColour)
		d.hline(xCenter-x, xCenter+x, yCenter-y, fillColour)

		x++
		if e < 0 {
			e += 2*x + 1
		} else {
			y--
			e += 2*(x-y) + 1
		}
	}
}
