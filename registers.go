package oled128

// Registers (from SSD1351 datasheet, rev 1.5).
const (
	cmdSetColumn           = 0x15 // Set column start and end address
	cmdWriteRAM            = 0x5C // Write RAM, begin pixel stream
	cmdReadRAM             = 0x5D
	cmdSetRow              = 0x75 // Set row start and end address
	cmdSetRemap            = 0xA0 // Remap and colour depth
	cmdSetStartLine        = 0xA1 // Display start line
	cmdSetDisplayOffset    = 0xA2 // Display offset (COM shift)
	cmdSetDisplayMode      = 0xA4 // 0xA4..0xA7, see DisplayMode
	cmdFunctionSelect      = 0xAB // Internal/external VDD
	cmdSetSleepOn          = 0xAE // Display off
	cmdSetSleepOff         = 0xAF // Display on
	cmdSetPhaseLength      = 0xB1 // Phase 1 (reset) and phase 2 (precharge)
	cmdDisplayEnhance      = 0xB2
	cmdSetClockDiv         = 0xB3 // Clock divider and oscillator frequency
	cmdSetVSL              = 0xB4 // Segment low voltage
	cmdSetGPIO             = 0xB5 // GPIO0 and GPIO1 state
	cmdSetSecondPrecharge  = 0xB6 // Phase 3 length
	cmdSetGrayTable        = 0xB8 // Custom grayscale lookup table
	cmdUseLinearGrayTable  = 0xB9 // Reset to built-in linear grayscale
	cmdSetPrechargeVoltage = 0xBB
	cmdSetVCOMH            = 0xBE
	cmdSetColorContrast    = 0xC1 // Per-channel contrast current
	cmdSetMasterContrast   = 0xC7
	cmdSetMuxRatio         = 0xCA
	cmdSetCommandLock      = 0xFD
)

// Remap register (0xA0) bit fields.
const (
	remapHorizontalIncrement byte = 0
	remapVerticalIncrement   byte = 1 << 0
	remapColumnsRightToLeft  byte = 1 << 1
	remapOrderRGB            byte = 1 << 2 // BGR when clear
	remapScanDownToUp        byte = 1 << 4
	remapComSplitOddEven     byte = 1 << 5
	remapColor65K            byte = 1 << 6 // 8-bit colour when clear
	remapColor262K           byte = 2 << 6
)

// DisplayMode selects between the global pixel modes of the panel.
type DisplayMode byte

// Supported display modes, offsets from the 0xA4 command base.
const (
	DisplayOff       DisplayMode = iota // no pixels lit
	DisplayAllOn                        // every pixel at GS level 63
	DisplayNormal                       // normal operation
	DisplayInverse                      // inverted grayscale mapping
)

// GPIOMode is the drive mode for the two GPIO pins of the controller.
type GPIOMode byte

// Supported GPIO modes. The input (0b01) mode is not exposed, matching the
// pin wiring on the OLED128 board.
const (
	GPIOHighZ GPIOMode = 0
	GPIOLow   GPIOMode = 2
	GPIOHigh  GPIOMode = 3
)

// Command lock (0xFD) arguments.
const (
	commandUnlock       = 0x12 // allow commands (default state)
	commandLock         = 0x16 // disallow all commands until next unlock
	commandLockSpecial  = 0xB0 // lock out "special" commands (default state)
	commandAllowSpecial = 0xB1 // allow "special" commands when unlocked
)

// ClockDiv is the display clock divisor for SetDisplayClock.
type ClockDiv byte

// Display clock divisor options.
const (
	ClockDiv1 ClockDiv = iota
	ClockDiv2
	ClockDiv4
	ClockDiv8
	ClockDiv16
	ClockDiv32
	ClockDiv64
	ClockDiv128
	ClockDiv256
	ClockDiv512
	ClockDiv1024
)
