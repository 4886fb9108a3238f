// Package oled128 controls a 128x128 colour OLED panel with an SSD1351
// controller via SPI.
//
// The driver keeps no frame buffer; the panel's internal RAM is the only
// pixel store. Every drawing call resolves to a rectangular write window and
// a stream of 16-bit 5-6-5 pixel values sent over the bus.
package oled128

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/oled128/font"
)

// Display dimensions. The device wraps RAM addresses modulo these, so all
// coordinates are masked to the valid range before transmission.
const (
	Columns = 128
	Rows    = 128

	columnMask = Columns - 1
	rowMask    = Rows - 1
)

// Errors
var (
	ErrGrayscaleTable = errors.New("oled128: grayscale table must be strictly increasing with values 0-180")
	ErrDisplayMode    = errors.New("oled128: invalid display mode")
)

// Config is the display configuration.
type Config struct {
	// Rotated flips the panel by 180°.
	Rotated bool

	// Font is the initial text font, may be nil.
	Font *font.Font
}

// OLED is the display driver.
type OLED struct {
	c          Conn
	font       *font.Font
	remapFlags byte
	gpioStatus byte
	halted     bool
}

// New opens the display and runs the power-up sequence, leaving the panel on
// and cleared to black.
func New(c Conn, config *Config) (*OLED, error) {
	if config == nil {
		config = new(Config)
	}

	d := &OLED{
		c:          c,
		font:       config.Font,
		gpioStatus: byte(GPIOHighZ) | byte(GPIOHighZ)<<2,
	}

	if err := d.init(config); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *OLED) String() string {
	return fmt.Sprintf("SSD1351 OLED %dx%d", Columns, Rows)
}

// Close turns the display off and closes the connection.
func (d *OLED) Close() error {
	if !d.halted {
		if err := d.Show(false); err != nil {
			_ = d.c.Close()
			return err
		}
		d.halted = true
	}
	return d.c.Close()
}

func (d *OLED) data(data ...byte) error {
	return d.c.Data(data...)
}

func (d *OLED) command(command byte, data ...byte) error {
	return d.c.Command(command, data...)
}

func (d *OLED) commands(commands [][]byte) (err error) {
	for _, command := range commands {
		if err = d.c.Command(command[0], command[1:]...); err != nil {
			return
		}
	}
	return
}

func (d *OLED) init(config *Config) (err error) {
	// reset the device
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}
	time.Sleep(10 * time.Millisecond)
	if err = d.c.Reset(gpio.Low); err != nil {
		return
	}
	time.Sleep(10 * time.Millisecond)
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}
	time.Sleep(10 * time.Millisecond)

	remap := remapColor65K | remapComSplitOddEven | remapOrderRGB
	if config.Rotated {
		remap |= remapColumnsRightToLeft
	} else {
		remap |= remapScanDownToUp
	}
	d.remapFlags = remap

	// init display
	if err = d.commands([][]byte{
		{cmdSetCommandLock, commandUnlock},
		{cmdSetCommandLock, commandAllowSpecial},
		{cmdSetSleepOn},
		{cmdSetClockDiv, byte(ClockDiv1) | 0xF0}, // divide by 1, maximum oscillator frequency
		{cmdSetMuxRatio, Rows - 1},
		{cmdSetRemap, remap},
		{cmdSetColumn, 0, Columns - 1},
		{cmdSetRow, 0, Rows - 1},
		{cmdSetStartLine, 0},
		{cmdSetDisplayOffset, 0},
		{cmdSetGPIO, d.gpioStatus},
		{cmdFunctionSelect, 0x01}, // internal VDD regulator
		{cmdSetPhaseLength, phaseLength(5, 3)},
		{cmdSetVSL, 0xA0, 0xB5, 0x55},  // external VSL
		{cmdSetPrechargeVoltage, 0x17}, // 0.50 * Vcc
		{cmdSetVCOMH, 0x05},
		{cmdSetColorContrast, 0xC8, 0x80, 0xC8},
		{cmdSetMasterContrast, 0x0F},
		{cmdSetSecondPrecharge, 0x01},
		{cmdUseLinearGrayTable},
	}); err != nil {
		return
	}

	if err = d.SetDisplayMode(DisplayNormal); err != nil {
		return
	}

	// clear RAM before lighting the panel
	if err = d.fill(0, 0, Columns-1, Rows-1, Black); err != nil {
		return
	}

	return d.Show(true)
}

// setWindow arms the write window for the normalized rectangle spanning both
// corner pairs. Subsequent data bytes land sequentially inside the window.
func (d *OLED) setWindow(x0, y0, x1, y1 int) error {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return d.commands([][]byte{
		{cmdSetColumn, byte(x0) & columnMask, byte(x1) & columnMask},
		{cmdSetRow, byte(y0) & rowMask, byte(y1) & rowMask},
		{cmdWriteRAM},
	})
}

// writeColour streams n copies of a colour into the armed window.
func (d *OLED) writeColour(c Colour, n int) error {
	hi, lo := c.bytes()
	buf := make([]byte, 2*n)
	for i := 0; i < len(buf); i += 2 {
		buf[i], buf[i+1] = hi, lo
	}
	return d.data(buf...)
}

// setSinglePixel writes one pixel through a degenerate 1x1 window. The
// coordinates must be in range.
func (d *OLED) setSinglePixel(x, y int, c Colour) error {
	if err := d.setWindow(x, y, x, y); err != nil {
		return err
	}
	hi, lo := c.bytes()
	return d.data(hi, lo)
}

// Show toggles the display on or off. GPIO0 drives the panel power supply on
// the OLED128 board and is switched along with the sleep mode.
func (d *OLED) Show(show bool) error {
	if show {
		if err := d.setGPIO0(GPIOHigh); err != nil {
			return err
		}
		return d.command(cmdSetSleepOff)
	}
	if err := d.command(cmdSetSleepOn); err != nil {
		return err
	}
	return d.setGPIO0(GPIOLow)
}

// SetDisplayMode selects one of the global pixel modes.
func (d *OLED) SetDisplayMode(mode DisplayMode) error {
	if mode > DisplayInverse {
		return ErrDisplayMode
	}
	return d.command(cmdSetDisplayMode + byte(mode))
}

// SetContrast adjusts the master contrast, level 0-15.
func (d *OLED) SetContrast(level uint8) error {
	return d.command(cmdSetMasterContrast, level&0x0F)
}

// SetColorContrasts sets the per-channel contrast currents. The arguments
// are R, G, B with the default RGB channel order.
func (d *OLED) SetColorContrasts(a, b, c byte) error {
	return d.command(cmdSetColorContrast, a, b, c)
}

// SetGPIO1 sets the drive mode of the controller's GPIO1 pin.
func (d *OLED) SetGPIO1(mode GPIOMode) error {
	d.gpioStatus = (d.gpioStatus & 0x03) | byte(mode)<<2
	return d.command(cmdSetGPIO, d.gpioStatus)
}

// setGPIO0 sets the drive mode of GPIO0. This is panel power on the OLED128
// board, so it is not exposed; use Show instead.
func (d *OLED) setGPIO0(mode GPIOMode) error {
	d.gpioStatus = (d.gpioStatus & 0x0C) | byte(mode)
	return d.command(cmdSetGPIO, d.gpioStatus)
}

// SetStartRow sets the display start line, row 0-127.
func (d *OLED) SetStartRow(row uint8) error {
	return d.command(cmdSetStartLine, row&rowMask)
}

// SetDisplayOffset sets the display offset row, 0-127.
func (d *OLED) SetDisplayOffset(row uint8) error {
	return d.command(cmdSetDisplayOffset, row&rowMask)
}

// SetDisplayClock sets the display refresh clock. The frequency is a value
// 0-15 proportional to the oscillator frequency.
func (d *OLED) SetDisplayClock(divisor ClockDiv, frequency byte) error {
	return d.command(cmdSetClockDiv, byte(divisor)|(frequency&0x0F)<<4)
}

// SetResetPrechargePeriods sets the phase 1 (reset) and phase 2 (precharge)
// lengths. Reset is 5-31 DCLK periods, odd values only; precharge is 3-15.
func (d *OLED) SetResetPrechargePeriods(reset, precharge byte) error {
	return d.command(cmdSetPhaseLength, phaseLength(reset, precharge))
}

// phaseLength packs the phase length register value. Phase 1 is coded as
// (2n+1) DCLKs, so the odd 5-31 range maps to register values 2-15.
func phaseLength(reset, precharge byte) byte {
	p1 := (reset - 1) / 2
	if p1 < 2 {
		p1 = 2
	}
	if p1 > 15 {
		p1 = 15
	}
	return p1 | (precharge&0x0F)<<4
}

// SetPrechargeVoltage sets the precharge voltage as a proportion of Vcc,
// where 0x00 is 0.20 and 0x1F is 0.60. The power-up default 0x17 is 0.50.
func (d *OLED) SetPrechargeVoltage(level byte) error {
	return d.command(cmdSetPrechargeVoltage, level&0x1F)
}

// SetSecondPrechargePeriod sets the phase 3 length as 1-15 DCLK periods.
// Zero selects the power-up default of 8.
func (d *OLED) SetSecondPrechargePeriod(clocks byte) error {
	clocks &= 0x0F
	if clocks == 0 {
		clocks = 8
	}
	return d.command(cmdSetSecondPrecharge, clocks)
}

// Lock disables all commands until the next Unlock, guarding against
// accidental configuration changes.
func (d *OLED) Lock() error {
	return d.command(cmdSetCommandLock, commandLock)
}

// Unlock re-enables commands after a Lock.
func (d *OLED) Unlock() error {
	return d.command(cmdSetCommandLock, commandUnlock)
}

// SetDefaultGrayscaleTable resets the grayscale lookup to the built-in
// linear table.
func (d *OLED) SetDefaultGrayscaleTable() error {
	return d.command(cmdUseLinearGrayTable)
}

// SetBrightGrayscaleTable installs a grayscale table using the full drive
// range of the panel.
func (d *OLED) SetBrightGrayscaleTable() error {
	var table [64]byte
	for i := range table {
		table[i] = byte(i * 180 / 63)
	}
	return d.SetGrayscaleTable(table)
}

// SetDimGrayscaleTable installs a grayscale table at half the drive range of
// the panel.
func (d *OLED) SetDimGrayscaleTable() error {
	var table [64]byte
	for i := range table {
		table[i] = byte(i * 90 / 63)
	}
	return d.SetGrayscaleTable(table)
}

// SetGrayscaleTable installs a custom grayscale table mapping GS levels 0-63
// to pixel drive periods. The values must be strictly increasing and no
// larger than 180.
func (d *OLED) SetGrayscaleTable(table [64]byte) error {
	for i, v := range table {
		if v > 180 || (i > 0 && v <= table[i-1]) {
			return ErrGrayscaleTable
		}
	}
	return d.command(cmdSetGrayTable, table[:]...)
}
