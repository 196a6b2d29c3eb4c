package stream

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/layertx/layer"
	"github.com/matt-g-everett/layertx/util"
)

// Preview paints a one dimensional impression of the layer stack: every layer
// with an image lights the pixels around its x origin in its own colour,
// spread by its horizontal blur and faded by its opacity.
type Preview struct {
	Pixels     int
	Width      float64
	Gradient   GradientTable
	Background colorful.Color
	Twinkle    *Twinkle

	luts util.Memoizer
}

// NewPreview creates a Preview mapping a scene width onto pixels.
func NewPreview(pixels int, width float64) *Preview {
	p := new(Preview)
	p.Pixels = pixels
	p.Width = width
	p.Gradient = DefaultGradient
	p.Background, _ = colorful.Hex("#000005")
	p.Twinkle = NewTwinkle(1)
	p.luts = util.Memoizer{}
	return p
}

// Render creates a new Frame from layer snapshots, drawn in order.
func (p *Preview) Render(snaps []layer.Snapshot) *Frame {
	f := NewFrame(p.Pixels, p.Background)
	n := f.Len()
	if n == 0 {
		return f
	}

	for _, s := range snaps {
		if s.Filename == "" || s.Opacity <= 0 {
			continue
		}

		colour := p.Gradient.GetColor(p.hue(s.ID, len(snaps)), 1.0, 0.4).Clamped()
		centre := p.pixelOf(s.X, n)
		radius := int(s.BlurX)
		if radius < 0 {
			radius = -radius
		}
		// the strip wraps, so a wider spread only repaints the same pixels
		if limit := (n - 1) / 2; radius > limit {
			radius = limit
		}
		lut := util.GenerateLutMemoized(2*radius+1, p.luts)
		opacity := math.Min(s.Opacity, 1)

		for k, gain := range lut {
			i := mod(centre-radius+k, n)
			f.pixels[i] = f.pixels[i].BlendHcl(colour, gain*opacity)
		}
		if p.Twinkle != nil {
			p.Twinkle.Apply(f, s, centre, radius)
		}
	}

	return f
}

func (p *Preview) hue(id, count int) float64 {
	if count <= 1 {
		return 0
	}
	return float64(id) / float64(count)
}

func (p *Preview) pixelOf(x float64, n int) int {
	scale := 1.0
	if p.Width > 0 {
		scale = float64(n) / p.Width
	}
	return mod(int(math.Round(x*scale)), n)
}

func mod(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
