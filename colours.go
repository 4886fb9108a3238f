package oled128

// Named colours at full channel depth.
var (
	Black   = Colour{0, 0, 0}
	White   = Colour{31, 63, 31}
	Red     = Colour{31, 0, 0}
	Green   = Colour{0, 63, 0}
	Blue    = Colour{0, 0, 31}
	Yellow  = Colour{31, 63, 0}
	Cyan    = Colour{0, 63, 31}
	Magenta = Colour{31, 0, 31}
	Orange  = Colour{31, 31, 0}
	Purple  = Colour{15, 0, 15}
	Gray    = Colour{15, 31, 15}
	Silver  = Colour{24, 48, 24}
	Maroon  = Colour{15, 0, 0}
	Olive   = Colour{15, 31, 0}
	Navy    = Colour{0, 0, 15}
	Teal    = Colour{0, 31, 15}
)
