package oled128

import (
	"encoding/binary"
	"errors"
	"io"
)

// Status is the outcome of a bitmap decode. Exactly one value is returned
// per decode attempt; decoding halts at the first detected violation. Rows
// streamed before the fault remain on screen, so callers needing a clean
// state after a failure must re-clear the affected area.
type Status uint8

// Status codes returned by DisplayBMP.
const (
	StatusOK Status = iota
	StatusInvalidFormat
	StatusUnsupportedHeader
	StatusTooManyColours
	StatusCompressionNotSupported
	StatusOriginOutsideImage
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusInvalidFormat:
		return "invalid format"
	case StatusUnsupportedHeader:
		return "unsupported header"
	case StatusTooManyColours:
		return "too many palette colours"
	case StatusCompressionNotSupported:
		return "compression not supported"
	case StatusOriginOutsideImage:
		return "origin outside image bounds"
	default:
		return "unknown status"
	}
}

var errSeekRange = errors.New("oled128: seek offset out of range")

// ImageSource is a seekable byte source holding a bitmap container. It is
// satisfied by the in-memory and reader-backed adapters below, so a single
// decode routine serves both.
type ImageSource interface {
	// Seek positions the next Read at an absolute offset.
	Seek(offset int64) error

	// Read reads sequential bytes into p.
	Read(p []byte) (int, error)

	// Size returns the total length of the source.
	Size() int64
}

type memorySource struct {
	data []byte
	pos  int
}

// NewMemorySource returns an ImageSource reading from a flat in-memory
// buffer. The buffer is not copied.
func NewMemorySource(data []byte) ImageSource {
	return &memorySource{data: data}
}

func (s *memorySource) Seek(offset int64) error {
	if offset < 0 || offset > int64(len(s.data)) {
		return errSeekRange
	}
	s.pos = int(offset)
	return nil
}

func (s *memorySource) Read(p []byte) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += n
	return n, nil
}

func (s *memorySource) Size() int64 {
	return int64(len(s.data))
}

type readerSource struct {
	r    io.ReadSeeker
	size int64
}

// NewReaderSource returns an ImageSource backed by a file-like store. The
// length is determined once by seeking to the end.
func NewReaderSource(r io.ReadSeeker) (ImageSource, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return &readerSource{r: r, size: size}, nil
}

func (s *readerSource) Seek(offset int64) error {
	_, err := s.r.Seek(offset, io.SeekStart)
	return err
}

func (s *readerSource) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

func (s *readerSource) Size() int64 {
	return s.size
}

func readFull(src ImageSource, p []byte) bool {
	for n := 0; n < len(p); {
		m, err := src.Read(p[n:])
		n += m
		if err != nil {
			return n >= len(p)
		}
		if m == 0 {
			return false
		}
	}
	return true
}

// BMP container constraints.
const (
	bmpFileHeaderSize = 14
	bmpInfoHeaderSize = 40 // BITMAPINFOHEADER, the only supported variant
	bmpMaxColours     = 256
)

// DisplayBMP shows a BMP image with its bottom left corner at (x,y). The
// destination window is taken from the image's own dimensions.
func (d *OLED) DisplayBMP(source ImageSource, x, y int) Status {
	return d.displayBMP(source, x, y, 0, 0, false)
}

// DisplayBMPRect shows a BMP image inside the rectangle spanning both corner
// pairs. The image is anchored at the rectangle's bottom left corner and
// cropped to the rectangle.
func (d *OLED) DisplayBMPRect(source ImageSource, fromX, fromY, toX, toY int) Status {
	return d.displayBMP(source, fromX, fromY, toX, toY, true)
}

func (d *OLED) displayBMP(src ImageSource, x0, y0, x1, y1 int, bounded bool) Status {
	var header [bmpFileHeaderSize + bmpInfoHeaderSize]byte
	if src.Seek(0) != nil || !readFull(src, header[:]) {
		return StatusInvalidFormat
	}
	if header[0] != 'B' || header[1] != 'M' {
		return StatusInvalidFormat
	}

	var (
		dataOffset  = binary.LittleEndian.Uint32(header[10:])
		infoSize    = binary.LittleEndian.Uint32(header[14:])
		width       = int32(binary.LittleEndian.Uint32(header[18:]))
		height      = int32(binary.LittleEndian.Uint32(header[22:]))
		planes      = binary.LittleEndian.Uint16(header[26:])
		depth       = binary.LittleEndian.Uint16(header[28:])
		compression = binary.LittleEndian.Uint32(header[30:])
		clrUsed     = binary.LittleEndian.Uint32(header[46:])
	)

	if infoSize != bmpInfoHeaderSize {
		return StatusUnsupportedHeader
	}
	if planes != 1 || width <= 0 || height <= 0 {
		return StatusUnsupportedHeader
	}
	switch depth {
	case 1, 4, 8, 24:
	default:
		return StatusUnsupportedHeader
	}

	var colours uint32
	if depth <= 8 {
		colours = clrUsed
		if colours == 0 {
			colours = 1 << depth
		}
		if colours > bmpMaxColours {
			return StatusTooManyColours
		}
	}

	if compression != 0 {
		return StatusCompressionNotSupported
	}
	if int64(dataOffset) >= src.Size() {
		return StatusInvalidFormat
	}

	imgW, imgH := int(width), int(height)

	if !bounded {
		x1 = x0 + imgW - 1
		y1 = y0
		y0 = y0 - imgH + 1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}

	drawW := min(imgW, x1-x0+1)
	drawH := min(imgH, y1-y0+1)
	top := y1 - drawH + 1
	if x0 < 0 || top < 0 || x0+drawW-1 > Columns-1 || y1 > Rows-1 {
		return StatusOriginOutsideImage
	}

	var palette []Colour
	if depth <= 8 {
		raw := make([]byte, colours*4)
		if src.Seek(int64(bmpFileHeaderSize+infoSize)) != nil || !readFull(src, raw) {
			return StatusInvalidFormat
		}
		palette = make([]Colour, colours)
		for i := range palette {
			// stored as B, G, R, reserved
			palette[i] = RGB(raw[i*4+2], raw[i*4+1], raw[i*4])
		}
	}

	d.setWindow(x0, top, x0+drawW-1, y1)

	var (
		rowSize  = ((imgW*int(depth) + 31) / 32) * 4 // rows pad to 32-bit boundaries
		rowBytes = (drawW*int(depth) + 7) / 8
		row      = make([]byte, rowBytes)
		out      = make([]byte, 0, 2*drawW)
	)

	// Rows are stored bottom-up while the window fills top-down, so walk the
	// bottom drawH rows of the container in reverse.
	for r := drawH - 1; r >= 0; r-- {
		if src.Seek(int64(dataOffset)+int64(r)*int64(rowSize)) != nil || !readFull(src, row) {
			return StatusInvalidFormat
		}

		out = out[:0]
		for i := 0; i < drawW; i++ {
			var colour Colour
			switch depth {
			case 24:
				colour = RGB(row[i*3+2], row[i*3+1], row[i*3])
			case 8:
				index := row[i]
				if int(index) >= len(palette) {
					return StatusInvalidFormat
				}
				colour = palette[index]
			case 4:
				index := row[i/2]
				if i%2 == 0 {
					index >>= 4
				} else {
					index &= 0x0F
				}
				if int(index) >= len(palette) {
					return StatusInvalidFormat
				}
				colour = palette[index]
			case 1:
				index := row[i/8] >> (7 - uint(i%8)) & 1
				if int(index) >= len(palette) {
					return StatusInvalidFormat
				}
				colour = palette[index]
			}
			hi, lo := colour.bytes()
			out = append(out, hi, lo)
		}
		d.data(out...)
	}

	return StatusOK
}
