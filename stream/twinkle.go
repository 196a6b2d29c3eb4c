package stream

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/layertx/layer"
)

// A Twinkle sprinkles random particles over the span of a layer that has an
// overlay selected. The particle density follows the overlay rate and each
// overlay entry adds one more particle.
type Twinkle struct {
	Colour colorful.Color

	rng *rand.Rand
}

// NewTwinkle creates an instance of a Twinkle object.
func NewTwinkle(seed int64) *Twinkle {
	t := new(Twinkle)
	t.Colour, _ = colorful.Hex("#404040")
	t.rng = rand.New(rand.NewSource(seed))
	return t
}

// Particles returns how many particles a layer gets over a span of pixels.
func (t *Twinkle) Particles(s layer.Snapshot, span int) int {
	if s.Overlay == "" || span <= 0 {
		return 0
	}
	n := int(math.Round(math.Max(s.OverlayRate, 0)*float64(span))) + len(s.OverlayEntries)
	if n > span {
		n = span
	}
	return n
}

// Apply paints the particles for one layer onto f, centred on a pixel.
func (t *Twinkle) Apply(f *Frame, s layer.Snapshot, centre, radius int) {
	n := f.Len()
	span := 2*radius + 1
	if span > n {
		span = n
	}
	count := t.Particles(s, span)
	if count == 0 {
		return
	}

	opacity := math.Min(s.Opacity, 1)
	particles := make(map[int]bool)
	for len(particles) < count {
		particles[t.rng.Intn(span)] = true
	}
	for k := range particles {
		i := mod(centre-radius+k, n)
		f.pixels[i] = f.pixels[i].BlendRgb(t.Colour, opacity)
	}
}
