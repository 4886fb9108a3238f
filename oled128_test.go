package oled128

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/gpio"
)

func TestNew(t *testing.T) {
	c := new(testConn)
	d, err := New(c, nil)
	if err != nil {
		t.Fatalf("expected display to open, got %v", err)
	}
	if s := d.String(); s != "SSD1351 OLED 128x128" {
		t.Errorf("expected driver name, got %q", s)
	}

	want := []gpio.Level{gpio.High, gpio.Low, gpio.High}
	if len(c.resets) != len(want) {
		t.Fatalf("expected %d reset transitions, got %d", len(want), len(c.resets))
	}
	for i, level := range want {
		if c.resets[i] != level {
			t.Errorf("expected reset transition %d to be %v, got %v", i, level, c.resets[i])
		}
	}

	commands := c.commandOps()
	if len(commands) < 2 {
		t.Fatal("expected power-up command sequence")
	}
	if commands[0][0] != cmdSetCommandLock || commands[0][1] != commandUnlock {
		t.Errorf("expected power-up to start with unlock, got %#02x %#02x", commands[0][0], commands[0][1])
	}
	if last := commands[len(commands)-1]; last[0] != cmdSetSleepOff {
		t.Errorf("expected power-up to end with display on, got %#02x", last[0])
	}

	// power-up clears the panel
	if n := render(c.ops).count(Black); n != Columns*Rows {
		t.Errorf("expected a black panel after power-up, got %d black pixels", n)
	}
}

func TestNewRemap(t *testing.T) {
	base := remapColor65K | remapComSplitOddEven | remapOrderRGB
	tests := []struct {
		name    string
		rotated bool
		want    byte
	}{
		{"Normal", false, base | remapScanDownToUp},
		{"Rotated", true, base | remapColumnsRightToLeft},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := new(testConn)
			if _, err := New(c, &Config{Rotated: test.rotated}); err != nil {
				t.Fatalf("expected display to open, got %v", err)
			}
			remap := c.lastCommand(cmdSetRemap)
			if remap == nil {
				t.Fatal("expected a remap command")
			}
			if remap[1] != test.want {
				t.Errorf("expected remap %#02x, got %#02x", test.want, remap[1])
			}
		})
	}
}

func TestClose(t *testing.T) {
	d, c := newTestDisplay(t, nil)
	if err := d.Close(); err != nil {
		t.Fatalf("expected close to succeed, got %v", err)
	}
	if !c.closed {
		t.Error("expected connection to be closed")
	}
	if cmd := c.lastCommand(cmdSetSleepOn); cmd == nil {
		t.Error("expected the display to be put to sleep")
	}

	// a second close must not touch the bus again
	c.clear()
	if err := d.Close(); err != nil {
		t.Fatalf("expected close to succeed, got %v", err)
	}
	if len(c.ops) != 0 {
		t.Errorf("expected no traffic on second close, got %d transfers", len(c.ops))
	}
}

func TestSetPixelWire(t *testing.T) {
	d, c := newTestDisplay(t, nil)
	d.SetPixel(3, 5, Red)

	want := []testOp{
		{command: true, bytes: []byte{cmdSetColumn, 3, 3}},
		{command: true, bytes: []byte{cmdSetRow, 5, 5}},
		{command: true, bytes: []byte{cmdWriteRAM}},
		{command: false, bytes: []byte{0xF8, 0x00}},
	}
	if len(c.ops) != len(want) {
		t.Fatalf("expected %d transfers, got %d", len(want), len(c.ops))
	}
	for i, op := range want {
		got := c.ops[i]
		if got.command != op.command || len(got.bytes) != len(op.bytes) {
			t.Fatalf("expected transfer %d to be %v, got %v", i, op, got)
		}
		for j := range op.bytes {
			if got.bytes[j] != op.bytes[j] {
				t.Errorf("expected transfer %d byte %d to be %#02x, got %#02x", i, j, op.bytes[j], got.bytes[j])
			}
		}
	}
}

func TestSetPixelOffScreen(t *testing.T) {
	d, c := newTestDisplay(t, nil)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {Columns, 0}, {0, Rows}} {
		d.SetPixel(p[0], p[1], White)
	}
	if len(c.ops) != 0 {
		t.Errorf("expected no traffic for off-screen pixels, got %d transfers", len(c.ops))
	}
}

func TestSetWindowNormalized(t *testing.T) {
	d, c := newTestDisplay(t, nil)
	if err := d.setWindow(120, 90, 7, 12); err != nil {
		t.Fatalf("expected window to be set, got %v", err)
	}
	column := c.lastCommand(cmdSetColumn)
	if column[1] != 7 || column[2] != 120 {
		t.Errorf("expected column range 7-120, got %d-%d", column[1], column[2])
	}
	row := c.lastCommand(cmdSetRow)
	if row[1] != 12 || row[2] != 90 {
		t.Errorf("expected row range 12-90, got %d-%d", row[1], row[2])
	}
}

func TestShow(t *testing.T) {
	d, c := newTestDisplay(t, nil)

	if err := d.Show(false); err != nil {
		t.Fatalf("expected show to succeed, got %v", err)
	}
	if cmd := c.lastCommand(cmdSetSleepOn); cmd == nil {
		t.Error("expected sleep command")
	}
	if cmd := c.lastCommand(cmdSetGPIO); cmd == nil || cmd[1]&0x03 != byte(GPIOLow) {
		t.Errorf("expected GPIO0 low, got %v", cmd)
	}

	c.clear()
	if err := d.Show(true); err != nil {
		t.Fatalf("expected show to succeed, got %v", err)
	}
	if cmd := c.lastCommand(cmdSetSleepOff); cmd == nil {
		t.Error("expected wake command")
	}
	if cmd := c.lastCommand(cmdSetGPIO); cmd == nil || cmd[1]&0x03 != byte(GPIOHigh) {
		t.Errorf("expected GPIO0 high, got %v", cmd)
	}
}

func TestSetGPIO1(t *testing.T) {
	d, c := newTestDisplay(t, nil)
	if err := d.SetGPIO1(GPIOLow); err != nil {
		t.Fatalf("expected GPIO update to succeed, got %v", err)
	}
	cmd := c.lastCommand(cmdSetGPIO)
	if cmd[1]>>2 != byte(GPIOLow) {
		t.Errorf("expected GPIO1 low, got %#02x", cmd[1])
	}
	if cmd[1]&0x03 != byte(GPIOHigh) {
		t.Errorf("expected GPIO0 to be left alone, got %#02x", cmd[1])
	}
}

func TestSetDisplayMode(t *testing.T) {
	d, c := newTestDisplay(t, nil)
	for _, mode := range []DisplayMode{DisplayOff, DisplayAllOn, DisplayNormal, DisplayInverse} {
		if err := d.SetDisplayMode(mode); err != nil {
			t.Fatalf("expected mode %d to be accepted, got %v", mode, err)
		}
		if cmd := c.ops[len(c.ops)-1]; cmd.bytes[0] != cmdSetDisplayMode+byte(mode) {
			t.Errorf("expected command %#02x, got %#02x", cmdSetDisplayMode+byte(mode), cmd.bytes[0])
		}
	}
	if err := d.SetDisplayMode(DisplayInverse + 1); !errors.Is(err, ErrDisplayMode) {
		t.Errorf("expected ErrDisplayMode, got %v", err)
	}
}

func TestSetContrast(t *testing.T) {
	d, c := newTestDisplay(t, nil)
	if err := d.SetContrast(0xFF); err != nil {
		t.Fatalf("expected contrast to be set, got %v", err)
	}
	if cmd := c.lastCommand(cmdSetMasterContrast); cmd[1] != 0x0F {
		t.Errorf("expected contrast level to be masked to 0x0F, got %#02x", cmd[1])
	}
}

func TestSetDisplayClock(t *testing.T) {
	d, c := newTestDisplay(t, nil)
	if err := d.SetDisplayClock(ClockDiv2, 0x0C); err != nil {
		t.Fatalf("expected clock to be set, got %v", err)
	}
	if cmd := c.lastCommand(cmdSetClockDiv); cmd[1] != byte(ClockDiv2)|0xC0 {
		t.Errorf("expected clock value %#02x, got %#02x", byte(ClockDiv2)|0xC0, cmd[1])
	}
}

func TestPhaseLength(t *testing.T) {
	tests := []struct {
		reset, precharge, want byte
	}{
		{5, 3, 0x32},
		{31, 15, 0xFF},
		{1, 0, 0x02},  // clamped to the 5 DCLK minimum
		{99, 3, 0x3F}, // clamped to the 31 DCLK maximum
	}
	for _, test := range tests {
		if got := phaseLength(test.reset, test.precharge); got != test.want {
			t.Errorf("expected phaseLength(%d, %d) to be %#02x, got %#02x",
				test.reset, test.precharge, test.want, got)
		}
	}
}

func TestSetSecondPrechargePeriod(t *testing.T) {
	d, c := newTestDisplay(t, nil)
	if err := d.SetSecondPrechargePeriod(0); err != nil {
		t.Fatalf("expected period to be set, got %v", err)
	}
	if cmd := c.lastCommand(cmdSetSecondPrecharge); cmd[1] != 8 {
		t.Errorf("expected zero to select the default of 8, got %d", cmd[1])
	}
}

func TestLockUnlock(t *testing.T) {
	d, c := newTestDisplay(t, nil)
	if err := d.Lock(); err != nil {
		t.Fatalf("expected lock to succeed, got %v", err)
	}
	if cmd := c.lastCommand(cmdSetCommandLock); cmd[1] != commandLock {
		t.Errorf("expected lock argument %#02x, got %#02x", commandLock, cmd[1])
	}
	if err := d.Unlock(); err != nil {
		t.Fatalf("expected unlock to succeed, got %v", err)
	}
	if cmd := c.lastCommand(cmdSetCommandLock); cmd[1] != commandUnlock {
		t.Errorf("expected unlock argument %#02x, got %#02x", commandUnlock, cmd[1])
	}
}

func TestSetGrayscaleTable(t *testing.T) {
	d, c := newTestDisplay(t, nil)

	var table [64]byte
	for i := range table {
		table[i] = byte(i * 2)
	}
	if err := d.SetGrayscaleTable(table); err != nil {
		t.Fatalf("expected table to be accepted, got %v", err)
	}
	if cmd := c.lastCommand(cmdSetGrayTable); len(cmd) != 65 {
		t.Errorf("expected 64 table bytes, got %d", len(cmd)-1)
	}

	flat := table
	flat[10] = flat[9]
	if err := d.SetGrayscaleTable(flat); !errors.Is(err, ErrGrayscaleTable) {
		t.Errorf("expected ErrGrayscaleTable for non-increasing table, got %v", err)
	}

	high := table
	high[63] = 181
	if err := d.SetGrayscaleTable(high); !errors.Is(err, ErrGrayscaleTable) {
		t.Errorf("expected ErrGrayscaleTable for out of range value, got %v", err)
	}
}

func TestGrayscaleTablePresets(t *testing.T) {
	d, _ := newTestDisplay(t, nil)
	if err := d.SetBrightGrayscaleTable(); err != nil {
		t.Errorf("expected bright table to be valid, got %v", err)
	}
	if err := d.SetDimGrayscaleTable(); err != nil {
		t.Errorf("expected dim table to be valid, got %v", err)
	}
}
