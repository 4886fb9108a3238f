package oled128

import (
	"testing"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/oled128/font"
)

// testConn records the command and data traffic a test generates.
type testConn struct {
	ops    []testOp
	resets []gpio.Level
	closed bool
}

// testOp is a single recorded transfer. Command transfers carry the opcode in
// the first byte.
type testOp struct {
	command bool
	bytes   []byte
}

func (c *testConn) String() string { return "test" }

func (c *testConn) Close() error {
	c.closed = true
	return nil
}

func (c *testConn) Reset(level gpio.Level) error {
	c.resets = append(c.resets, level)
	return nil
}

func (c *testConn) Command(cmd byte, data ...byte) error {
	c.ops = append(c.ops, testOp{command: true, bytes: append([]byte{cmd}, data...)})
	return nil
}

func (c *testConn) Data(data ...byte) error {
	c.ops = append(c.ops, testOp{bytes: append([]byte(nil), data...)})
	return nil
}

func (c *testConn) clear() {
	c.ops = nil
}

// commandOps returns the recorded command transfers, opcode first.
func (c *testConn) commandOps() [][]byte {
	var out [][]byte
	for _, op := range c.ops {
		if op.command {
			out = append(out, op.bytes)
		}
	}
	return out
}

// lastCommand returns the most recent transfer of the given opcode, nil when
// it was never sent.
func (c *testConn) lastCommand(opcode byte) []byte {
	var out []byte
	for _, op := range c.ops {
		if op.command && op.bytes[0] == opcode {
			out = op.bytes
		}
	}
	return out
}

// testPanel models the pixel RAM of the controller: replaying recorded
// traffic interprets the window commands and fills the windows from the data
// stream, wrapping at the window edges like the device does.
type testPanel struct {
	pixels [Rows][Columns]uint16
}

func (p *testPanel) replay(ops []testOp) {
	var (
		colStart, colEnd = 0, Columns - 1
		rowStart, rowEnd = 0, Rows - 1
		x, y             int
		writing          bool
		partial          []byte
	)
	for _, op := range ops {
		if op.command {
			// any command terminates a RAM write in progress
			writing = false
			partial = partial[:0]
			switch op.bytes[0] {
			case cmdSetColumn:
				colStart, colEnd = int(op.bytes[1]), int(op.bytes[2])
			case cmdSetRow:
				rowStart, rowEnd = int(op.bytes[1]), int(op.bytes[2])
			case cmdWriteRAM:
				writing = true
				x, y = colStart, rowStart
			}
			continue
		}
		if !writing {
			continue
		}

		data := append(partial, op.bytes...)
		for len(data) >= 2 {
			p.pixels[y][x] = uint16(data[0])<<8 | uint16(data[1])
			data = data[2:]
			if x++; x > colEnd {
				x = colStart
				if y++; y > rowEnd {
					y = rowStart
				}
			}
		}
		partial = data
	}
}

// colour returns the replayed colour of a single pixel.
func (p *testPanel) colour(x, y int) Colour {
	return Unpack(p.pixels[y][x])
}

// count returns the number of pixels set to the given colour.
func (p *testPanel) count(colour Colour) int {
	var (
		packed = colour.Pack()
		n      int
	)
	for y := 0; y < Rows; y++ {
		for x := 0; x < Columns; x++ {
			if p.pixels[y][x] == packed {
				n++
			}
		}
	}
	return n
}

func render(ops []testOp) *testPanel {
	p := new(testPanel)
	p.replay(ops)
	return p
}

// newTestDisplay opens a display over a recording connection and drops the
// power-up traffic, so tests only see the transfers they generate.
func newTestDisplay(t *testing.T, config *Config) (*OLED, *testConn) {
	t.Helper()
	c := new(testConn)
	d, err := New(c, config)
	if err != nil {
		t.Fatalf("expected display to open, got %v", err)
	}
	c.clear()
	return d, c
}

// newTestTextDisplay is newTestDisplay with the system font selected.
func newTestTextDisplay(t *testing.T) (*OLED, *testConn) {
	t.Helper()
	return newTestDisplay(t, &Config{Font: font.System5x7})
}
