package stream

import (
	"encoding/binary"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const defaultPixels = 500

// Frame is a strip of RGB pixels previewing the layer stack on an ledrx device.
type Frame struct {
	pixels []colorful.Color
}

// NewFrame creates a Frame of n pixels filled with background.
func NewFrame(n int, background colorful.Color) *Frame {
	if n > math.MaxUint16 {
		n = math.MaxUint16
	}
	f := new(Frame)
	f.pixels = make([]colorful.Color, n)
	for i := range f.pixels {
		f.pixels[i] = background
	}
	return f
}

// Len returns the number of pixels.
func (f *Frame) Len() int { return len(f.pixels) }

// Pixel returns the colour of pixel i.
func (f *Frame) Pixel(i int) colorful.Color { return f.pixels[i] }

// MarshalBinary converts a Frame into binary data.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 2, (len(f.pixels)*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.pixels)))
	for _, p := range f.pixels {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}
