// Command oled-demo exercises an OLED128 panel: it draws a shape test
// pattern, then either displays an image or runs a scrolling text demo.
//
// BMP images are streamed to the panel directly; other formats are decoded
// and re-encoded as BMP in memory first.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/bmp"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/oled128"
	"github.com/BeatGlow/oled128/font"
)

func main() {
	spiFlag := flag.String("spi", "", "SPI port (default: use first available)")
	speedFlag := flag.Int("speed", 8, "SPI clock in MHz")
	resetPinFlag := flag.String("reset", "GPIO25", "Reset GPIO pin")
	dcPinFlag := flag.String("dc", "GPIO24", "Data/Command GPIO pin (DC)")
	rotateFlag := flag.Bool("rotate", false, "Rotate the panel 180 degrees")
	imageFlag := flag.String("image", "", "Image file to display")
	fontFlag := flag.String("font", "", "Font file (default: built-in 5x7)")
	flag.Parse()

	if _, err := host.Init(); err != nil {
		fatal(err)
	}

	conn, err := oled128.OpenSPI(&oled128.SPIConfig{
		Port:  *spiFlag,
		Speed: physic.Frequency(*speedFlag) * physic.MegaHertz,
		Reset: gpioreg.ByName(*resetPinFlag),
		DC:    gpioreg.ByName(*dcPinFlag),
	})
	if err != nil {
		fatal(err)
	}
	defer conn.Close()
	fmt.Printf("using connection: %s\n", conn)

	textFont := font.System5x7
	if *fontFlag != "" {
		data, err := os.ReadFile(*fontFlag)
		if err != nil {
			fatal(err)
		}
		if textFont, err = font.Parse(data); err != nil {
			fatal(err)
		}
	}

	display, err := oled128.New(conn, &oled128.Config{
		Rotated: *rotateFlag,
		Font:    textFont,
	})
	if err != nil {
		fatal(err)
	}
	defer display.Close()
	fmt.Printf("using driver: %s\n", display)

	shapes(display)
	time.Sleep(2 * time.Second)

	if *imageFlag != "" {
		showImage(display, *imageFlag)
		return
	}

	fmt.Println("hit control-c to stop...")
	scrollingText(display)
}

func shapes(d *oled128.OLED) {
	d.FillScreen(oled128.Black)
	d.DrawBox(0, 0, 127, 127, 2, oled128.White)
	d.DrawLine(4, 4, 123, 123, oled128.Red)
	d.DrawLine(123, 4, 4, 123, oled128.Green)
	d.DrawFilledBox(24, 52, 103, 75, oled128.Navy, 2, oled128.Cyan)
	d.DrawCircle(63, 63, 50, oled128.Yellow)
	d.DrawFilledCircle(63, 63, 12, oled128.Magenta)
	d.DrawString(34, 60, "OLED128", oled128.White, oled128.Navy)
}

func showImage(d *oled128.OLED, path string) {
	var source oled128.ImageSource

	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		f, err := os.Open(path)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		if source, err = oled128.NewReaderSource(f); err != nil {
			fatal(err)
		}
	} else {
		img, kind, err := decodeOpaque(path)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("converting %s image to BMP\n", kind)
		var buf bytes.Buffer
		if err = bmp.Encode(&buf, img); err != nil {
			fatal(err)
		}
		source = oled128.NewMemorySource(buf.Bytes())
	}

	d.ClearScreen()
	if status := d.DisplayBMPRect(source, 0, 0, 127, 127); status != oled128.StatusOK {
		fatal(fmt.Errorf("display %s: %s", path, status))
	}
}

// decodeOpaque decodes an image file and flattens it onto a black opaque
// background, so the BMP encoder emits 24-bit pixel data.
func decodeOpaque(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, kind, err := image.Decode(f)
	if err != nil {
		return nil, "", err
	}

	flat := image.NewNRGBA(img.Bounds())
	draw.Draw(flat, flat.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Over)
	return flat, kind, nil
}

func scrollingText(d *oled128.OLED) {
	box := oled128.NewTextBox(d, 0, 0, 0, 0)
	box.SetForegroundColour(oled128.Green)
	box.Println("oled-demo")
	box.SetForegroundColour(oled128.White)

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		box.Printf("line %d\n", i)
		<-ticker.C
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
