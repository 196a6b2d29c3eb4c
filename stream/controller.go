package stream

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/matt-g-everett/layertx/layer"
	"github.com/matt-g-everett/layertx/script"
	"github.com/rs/zerolog/log"
)

// FrameHandler receives every rendered frame together with the layer
// snapshots it was drawn from.
type FrameHandler func(frame *Frame, snaps []layer.Snapshot)

// Controller that drives a set of layers once per frame. Layers are not safe
// for concurrent use, so every access goes through the Controller.
type Controller struct {
	mu        sync.Mutex
	layers    *layer.Set
	renderer  Renderer
	frameRate float64

	frame    *Frame
	snaps    []layer.Snapshot
	frameID  uint64
	handlers []FrameHandler
}

// NewController creates an instance of a Controller.
func NewController(config Config) *Controller {
	c := new(Controller)
	c.layers = layer.NewSet(config.Layers)
	preview := NewPreview(config.Preview.Pixels, config.Preview.Width)
	c.renderer = preview
	c.frameRate = config.FrameRate
	c.frame = NewFrame(config.Preview.Pixels, preview.Background)
	c.snaps = c.layers.Snapshots()
	return c
}

// OnFrame registers a handler called after every Tick, outside the lock.
func (c *Controller) OnFrame(h FrameHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, h)
}

// Send queues commands on one layer.
func (c *Controller) Send(id int, commands ...layer.Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layers.Send(id, commands...)
}

// Apply queues a whole program.
func (c *Controller) Apply(p *script.Program) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return p.Apply(c.layers)
}

// SetOverlay selects the overlay image of one layer.
func (c *Controller) SetOverlay(id int, filename string, entries []int32, rate float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	l := c.layers.Layer(id)
	if l == nil {
		return fmt.Errorf("layer %d: %w", id, layer.ErrUnknownLayer)
	}
	l.SetOverlay(filename, append([]int32(nil), entries...), rate)
	return nil
}

// Finalize fast-forwards every layer on the next Tick.
func (c *Controller) Finalize() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layers.Finalize()
}

// Snapshots returns the layer properties as of the last Tick.
func (c *Controller) Snapshots() []layer.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snaps
}

// Snapshot returns one layer as of the last Tick.
func (c *Controller) Snapshot(id int) (layer.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id < 0 || id >= len(c.snaps) {
		return layer.Snapshot{}, false
	}
	return c.snaps[id], true
}

// LastFrame returns the last rendered frame and its sequence number.
func (c *Controller) LastFrame() (*Frame, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame, c.frameID
}

// Tick advances every layer to now and renders a preview frame.
func (c *Controller) Tick(now time.Time) {
	c.mu.Lock()
	c.layers.Poll(now)
	snaps := c.layers.Snapshots()
	frame := c.renderer.Render(snaps)
	c.snaps = snaps
	c.frame = frame
	c.frameID++
	handlers := append([]FrameHandler(nil), c.handlers...)
	c.mu.Unlock()

	for _, h := range handlers {
		h(frame, snaps)
	}
}

// Run ticks at the configured frame rate until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	interval := time.Duration(float64(time.Second) / c.frameRate)
	log.Info().Dur("interval", interval).Int("layers", c.layers.Len()).Msg("controller running")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			c.Tick(now)
		}
	}
}
