// Command oled-mkfont rasterizes a TrueType font into the binary bitmap
// layout used by the oled128 font package: a six byte header, a per-glyph
// width table and the glyph bitmaps in blocks of eight rows.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

func main() {
	sizeFlag := flag.Float64("size", 12, "Point size")
	dpiFlag := flag.Float64("dpi", 72, "Rasterization resolution in DPI")
	firstFlag := flag.Int("first", 0x20, "First character code")
	countFlag := flag.Int("count", 95, "Number of characters")
	outFlag := flag.String("o", "font.bin", "Output file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <font.ttf>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *firstFlag < 0 || *countFlag < 1 || *firstFlag+*countFlag > 0x100 {
		fatal(fmt.Errorf("character range %d-%d outside a single byte", *firstFlag, *firstFlag+*countFlag-1))
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fatal(err)
	}
	ttf, err := freetype.ParseFont(data)
	if err != nil {
		fatal(err)
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    *sizeFlag,
		DPI:     *dpiFlag,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()
	if height < 1 || height > 0xFF {
		fatal(fmt.Errorf("glyph height %d out of range", height))
	}

	var (
		blocks = (height + 7) / 8
		widths = make([]byte, 0, *countFlag)
		glyphs []byte
	)
	for c := *firstFlag; c < *firstFlag+*countFlag; c++ {
		width, bitmap := rasterize(face, rune(c), ascent, height, blocks)
		widths = append(widths, byte(width))
		glyphs = append(glyphs, bitmap...)
	}

	// header: size, fixed width (0 = variable), height, first char, count
	total := 6 + len(widths) + len(glyphs)
	size := total
	if size > 0xFFFF {
		size = 0 // too large for the header field, leave it unknown
	}
	out := make([]byte, 0, total)
	out = append(out, byte(size), byte(size>>8), 0, byte(height), byte(*firstFlag), byte(*countFlag))
	out = append(out, widths...)
	out = append(out, glyphs...)

	if err = os.WriteFile(*outFlag, out, 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s: %d characters, height %d, %d bytes\n", *outFlag, *countFlag, height, total)
}

// rasterize draws one glyph onto a grayscale canvas and thresholds it into
// the 8-row block layout. Characters the face cannot render get width zero
// and no bitmap bytes.
func rasterize(face font.Face, c rune, ascent, height, blocks int) (int, []byte) {
	advance, ok := face.GlyphAdvance(c)
	if !ok {
		return 0, nil
	}
	width := advance.Ceil()
	if width < 1 {
		width = 1
	}
	if width > 0xFF {
		width = 0xFF
	}

	canvas := image.NewGray(image.Rect(0, 0, width, height))
	drawer := font.Drawer{
		Dst:  canvas,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	drawer.DrawString(string(c))

	bitmap := make([]byte, width*blocks)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if canvas.GrayAt(x, y).Y >= 0x80 {
				bitmap[(y/8)*width+x] |= 1 << uint(y&7)
			}
		}
	}
	return width, bitmap
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
