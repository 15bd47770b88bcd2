package stream

// PixelFormat identifies the byte layout of a raw frame's pixel buffer.
type PixelFormat int

const (
	// FormatBGRA is the layout native capture subsystems commonly deliver.
	FormatBGRA PixelFormat = iota
	// FormatRGBA matches image.RGBA and needs no swizzle when decoding.
	FormatRGBA
)

func (f PixelFormat) String() string {
	switch f {
	case FormatBGRA:
		return "bgra"
	case FormatRGBA:
		return "rgba"
	default:
		return "unknown"
	}
}

// RawFrame is one frame as produced by the capture subsystem, delivered on
// the background delivery path. Pix must not be mutated after delivery.
type RawFrame struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
	Format PixelFormat
}

// Empty reports whether the frame has no renderable extent.
func (f RawFrame) Empty() bool {
	return f.Width <= 0 || f.Height <= 0 || len(f.Pix) == 0
}
