package oled128

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// Conn errors.
var (
	ErrResetPin = errors.New("oled128: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("oled128: data/command (DC) GPIO pin is invalid")
)

// Conn is the connection interface for communicating with the panel. A
// command transfer toggles the data/command line low for the opcode byte and
// high for its arguments; data transfers keep it high. Chip select framing is
// handled by the transport.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level.
	Reset(gpio.Level) error

	// Command sends a command byte with optional arguments.
	Command(byte, ...byte) error

	// Data sends data bytes.
	Data(...byte) error
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	// Port is the SPI port name or alias, empty for the first available.
	Port string

	// Speed is the bus clock; the SSD1351 tops out at 20MHz.
	Speed physic.Frequency

	// BatchSize limits the size of a single bus transfer.
	BatchSize int

	// Reset pin.
	Reset gpio.PinOut

	// DC is the data/command pin.
	DC gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Speed:     8 * physic.MegaHertz,
	BatchSize: 4096,
	Reset:     gpioreg.ByName("GPIO25"),
	DC:        gpioreg.ByName("GPIO24"),
}

type spiConn struct {
	port      spi.PortCloser
	bus       conn.Conn
	reset     gpio.PinOut
	dc        gpio.PinOut
	dcLevel   gpio.Level
	batchSize int
}

// OpenSPI opens an SPI connection to the panel.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}

	if config.Reset == nil || config.Reset == gpio.INVALID {
		return nil, ErrResetPin
	}
	if config.DC == nil || config.DC == gpio.INVALID {
		return nil, ErrDCPin
	}
	if config.Speed == 0 {
		config.Speed = DefaultSPIConfig.Speed
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultSPIConfig.BatchSize
	}

	port, err := spireg.Open(config.Port)
	if err != nil {
		return nil, err
	}

	bus, err := port.Connect(config.Speed, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, err
	}

	c := &spiConn{
		port:      port,
		bus:       bus,
		reset:     config.Reset,
		dc:        config.DC,
		dcLevel:   gpio.Low,
		batchSize: config.BatchSize,
	}
	// Start with DC in a known state.
	if err = c.updateDC(gpio.High); err != nil {
		_ = port.Close()
		return nil, err
	}
	return c, nil
}

func (c *spiConn) String() string {
	return fmt.Sprintf("SPI bus %s", c.bus)
}

func (c *spiConn) Close() error {
	return c.port.Close()
}

func (c *spiConn) Reset(level gpio.Level) error {
	return c.reset.Out(level)
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel = level
	}
	return nil
}

func (c *spiConn) Command(cmnd byte, data ...byte) (err error) {
	if err = c.updateDC(gpio.Low); err != nil {
		return
	}
	if err = c.bus.Tx([]byte{cmnd}, nil); err != nil {
		return
	}
	if len(data) > 0 {
		if err = c.updateDC(gpio.High); err != nil {
			return
		}
		if err = c.writeChunked(data); err != nil {
			return
		}
	}
	return
}

func (c *spiConn) Data(data ...byte) (err error) {
	if len(data) == 0 {
		return
	}
	if err = c.updateDC(gpio.High); err != nil {
		return
	}
	return c.writeChunked(data)
}

func (c *spiConn) writeChunked(data []byte) (err error) {
	for len(data) > c.batchSize {
		if err = c.bus.Tx(data[:c.batchSize], nil); err != nil {
			return
		}
		data = data[c.batchSize:]
	}
	return c.bus.Tx(data, nil)
}
