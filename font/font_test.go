package font

import (
	"errors"
	"testing"
)

func TestParseFixed(t *testing.T) {
	data := []byte{
		0, 0, // size unknown
		3,   // fixed width
		7,   // height
		'A', // first char
		2,   // char count
		0x7F, 0x08, 0x7F, // A
		0x7F, 0x49, 0x36, // B
	}
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("expected font to parse, got %v", err)
	}
	if f.Height() != 7 {
		t.Errorf("expected height 7, got %d", f.Height())
	}
	if w := f.CharWidth('A'); w != 3 {
		t.Errorf("expected width 3, got %d", w)
	}
	if w := f.CharWidth('@'); w != 0 {
		t.Errorf("expected no width before the first char, got %d", w)
	}
	if w := f.CharWidth('C'); w != 0 {
		t.Errorf("expected no width past the last char, got %d", w)
	}

	g, ok := f.Glyph('B')
	if !ok {
		t.Fatal("expected a glyph for B")
	}
	if !g.At(0, 0) { // 0x7F bit 0
		t.Error("expected pixel (0,0) of B to be set")
	}
	if g.At(1, 1) { // 0x49 bit 1
		t.Error("expected pixel (1,1) of B to be clear")
	}
}

func TestParseVariable(t *testing.T) {
	data := []byte{
		11, 0, // size
		0,   // variable width
		8,   // height
		'a', // first char
		2,   // char count
		1, 2, // width table
		0xFF,       // a
		0x0F, 0xF0, // b
	}
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("expected font to parse, got %v", err)
	}
	if w := f.CharWidth('a'); w != 1 {
		t.Errorf("expected width 1, got %d", w)
	}
	if w := f.CharWidth('b'); w != 2 {
		t.Errorf("expected width 2, got %d", w)
	}

	// the second glyph starts past the first glyph's bytes
	g, ok := f.Glyph('b')
	if !ok {
		t.Fatal("expected a glyph for b")
	}
	if !g.At(0, 0) || g.At(0, 4) { // 0x0F, low rows set
		t.Error("expected the first column of b to be 0x0F")
	}
	if g.At(1, 0) || !g.At(1, 4) { // 0xF0, high rows set
		t.Error("expected the second column of b to be 0xF0")
	}
}

func TestParseTallGlyphs(t *testing.T) {
	// a 10 pixel high font uses two 8-row blocks per column
	data := []byte{
		0, 0,
		2,   // fixed width
		10,  // height
		'A', // first char
		1,   // char count
		0x01, 0x80, // block 0, rows 0-7
		0x02, 0x01, // block 1, rows 8-9
	}
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("expected font to parse, got %v", err)
	}

	g, ok := f.Glyph('A')
	if !ok {
		t.Fatal("expected a glyph for A")
	}
	if !g.At(0, 0) || !g.At(1, 7) {
		t.Error("expected block 0 bits at rows 0 and 7")
	}
	if !g.At(0, 9) || !g.At(1, 8) {
		t.Error("expected block 1 bits at rows 9 and 8")
	}
	if g.At(0, 10) || g.At(-1, 0) {
		t.Error("expected out of range pixels to be clear")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"Empty", nil, ErrTruncated},
		{"ShortHeader", []byte{0, 0, 5, 7}, ErrTruncated},
		{"ZeroHeight", []byte{0, 0, 5, 0, 'A', 1}, ErrHeader},
		{"ZeroCount", []byte{0, 0, 5, 7, 'A', 0}, ErrHeader},
		{"SizeBeyondData", []byte{99, 0, 5, 7, 'A', 1}, ErrTruncated},
		{"MissingWidths", []byte{0, 0, 0, 7, 'A', 4, 1, 2}, ErrTruncated},
		{"MissingGlyphs", []byte{0, 0, 5, 7, 'A', 2, 0xFF, 0xFF}, ErrTruncated},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Parse(test.data); !errors.Is(err, test.want) {
				t.Errorf("expected %v, got %v", test.want, err)
			}
		})
	}
}

func TestMustParse(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustParse to panic on malformed data")
		}
	}()
	MustParse([]byte{0, 0})
}

func TestSystem5x7(t *testing.T) {
	f := System5x7
	if f.Height() != 7 {
		t.Errorf("expected height 7, got %d", f.Height())
	}
	if w := f.CharWidth('A'); w != 5 {
		t.Errorf("expected width 5, got %d", w)
	}
	if w := f.CharWidth('\n'); w != 0 {
		t.Errorf("expected no glyph for control characters, got width %d", w)
	}
	if w := f.CharWidth(0x7F); w != 0 {
		t.Errorf("expected no glyph past the printable range, got width %d", w)
	}

	space, ok := f.Glyph(' ')
	if !ok {
		t.Fatal("expected a glyph for space")
	}
	for y := 0; y < 7; y++ {
		for x := 0; x < 5; x++ {
			if space.At(x, y) {
				t.Fatalf("expected space to be blank, pixel (%d,%d) is set", x, y)
			}
		}
	}

	// A is 0x7E, 0x11, 0x11, 0x11, 0x7E column-major
	a, _ := f.Glyph('A')
	if a.At(0, 0) || !a.At(0, 1) || !a.At(1, 0) || !a.At(1, 4) {
		t.Error("expected the A glyph to match its bitmap")
	}
}
