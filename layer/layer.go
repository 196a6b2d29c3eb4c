package layer

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Layer schedules the program of a single image plane. Commands are queued
// with Send and interpreted by Poll, once per rendered frame. A Layer is not
// safe for concurrent use.
type Layer struct {
	id int

	filename string
	entries  []int32
	x, y     float64
	opacity  float64
	blurX    int32
	blurY    int32

	// overlay selection, carried for the renderer
	overlay        string
	overlayEntries []int32
	overlayRate    float64

	queue      []Command
	state      State
	animations []animation
	finalize   bool
}

// New creates an idle Layer with an empty program.
func New(id int) *Layer {
	l := new(Layer)
	l.id = id
	l.state = idle()
	return l
}

// ID returns the layer number.
func (l *Layer) ID() int { return l.id }

// Filename returns the selected image, or "" when none is loaded.
func (l *Layer) Filename() string { return l.filename }

// Entries returns the selected image entries.
func (l *Layer) Entries() []int32 { return l.entries }

// Position returns the layer origin.
func (l *Layer) Position() (float64, float64) { return l.x, l.y }

// Opacity returns the layer opacity.
func (l *Layer) Opacity() float64 { return l.opacity }

// Blur returns the blur radius along each axis.
func (l *Layer) Blur() (int32, int32) { return l.blurX, l.blurY }

// State returns the current blocking state.
func (l *Layer) State() State { return l.state }

// Pending returns the number of queued commands.
func (l *Layer) Pending() int { return len(l.queue) }

// Animating returns the number of running animations.
func (l *Layer) Animating() int { return len(l.animations) }

// SetOverlay replaces the overlay selection.
func (l *Layer) SetOverlay(filename string, entries []int32, rate float64) {
	l.overlay = filename
	l.overlayEntries = entries
	l.overlayRate = rate
}

// Send appends a command to the end of the queue.
func (l *Layer) Send(c Command) {
	l.queue = append(l.queue, c)
}

// Finalize makes the next Poll settle every timer and animation immediately
// and drain the whole queue.
func (l *Layer) Finalize() {
	l.finalize = true
}

// Poll advances the layer to now. It runs queued commands until one blocks
// (or the queue is empty) and moves every running animation along.
func (l *Layer) Poll(now time.Time) {
	// one frame has been drawn since the last poll
	if l.state.Kind == WaitingForRedraw {
		l.state = idle()
	}

	for {
		l.update(now)
		l.tick(now)

		if (!l.finalize && l.state.Kind != Idle) || len(l.queue) == 0 {
			break
		}
	}

	l.finalize = false
}

// update interprets one command if the layer is idle.
func (l *Layer) update(now time.Time) {
	if l.state.Kind != Idle || len(l.queue) == 0 {
		return
	}

	c := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]

	switch c := c.(type) {
	case WaitForRedraw:
		l.state = State{Kind: WaitingForRedraw}
	case Clear:
		l.filename = ""
		l.entries = nil
	case LoadImage:
		l.filename = c.Path
	case LoadEntries:
		l.entries = c.Entries
	case MoveTo:
		l.x, l.y = c.X, c.Y
	case SetOpacity:
		l.opacity = c.Value
	case SetBlur:
		l.blurX, l.blurY = c.X, c.Y
	case Delay:
		if l.finalize {
			l.state = idle()
		} else {
			l.state = State{Kind: Timer, Until: now.Add(c.Duration)}
		}
	case Animate:
		l.startAnimation(now, c)
	default:
		log.Debug().Int("layer", l.id).Str("command", fmt.Sprintf("%T", c)).Msg("ignoring command")
	}
}

func (l *Layer) startAnimation(now time.Time, c Animate) {
	var from, to Value
	switch target := c.Target.(type) {
	case Position:
		from, to = Position{X: l.x, Y: l.y}, target
	case Offset:
		from = Position{X: l.x, Y: l.y}
		to = Position{X: l.x + target.DX, Y: l.y + target.DY}
	case Opacity:
		from, to = Opacity(l.opacity), target
		// corrected by the sweep later in this poll
		l.opacity = float64(target)
	default:
		log.Debug().Int("layer", l.id).Str("target", fmt.Sprintf("%T", c.Target)).Msg("ignoring animation")
		return
	}

	duration := c.Duration
	if duration < MinAnimationDuration {
		log.Warn().Int("layer", l.id).Dur("duration", duration).Msg("animation duration clamped")
		duration = MinAnimationDuration
	}

	l.animations = append(l.animations, newAnimation(now, duration, from, to, c.Easing, c.Then))
}

// tick sweeps the running animations and re-evaluates the blocking state.
func (l *Layer) tick(now time.Time) {
	running := l.animations[:0]
	for i := range l.animations {
		a := l.animations[i]
		switch {
		case l.finalize || a.done(now):
			l.apply(a.to)
			l.queue = append(l.queue, a.then...)
			a.then = nil
			l.releaseOnCompletion()
		case now.Before(a.start):
			running = append(running, a)
		default:
			l.apply(a.valueAt(now))
			running = append(running, a)
		}
	}
	for i := len(running); i < len(l.animations); i++ {
		l.animations[i] = animation{}
	}
	l.animations = running

	switch l.state.Kind {
	case WaitingForRedraw:
		if l.finalize {
			l.state = idle()
		}
	case Timer:
		if l.finalize || !now.Before(l.state.Until) {
			l.state = idle()
		}
	}
}

// releaseOnCompletion unblocks the layer when any animation completes,
// whatever set the current Timer or WaitingForRedraw state.
func (l *Layer) releaseOnCompletion() {
	l.state = idle()
}

func (l *Layer) apply(v Value) {
	switch v := v.(type) {
	case Position:
		l.x, l.y = v.X, v.Y
	case Opacity:
		l.opacity = float64(v)
	default:
		panic(fmt.Sprintf("layer: cannot apply %T", v))
	}
}
