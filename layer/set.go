package layer

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownLayer is returned when a command is addressed to a layer that is
// not part of a Set.
var ErrUnknownLayer = errors.New("unknown layer")

// Set is the fixed group of layers making up a scene, numbered from zero.
// Layers are polled in ascending order. A Set is not safe for concurrent use.
type Set struct {
	layers []*Layer
}

// NewSet creates count idle layers.
func NewSet(count int) *Set {
	s := new(Set)
	s.layers = make([]*Layer, count)
	for i := range s.layers {
		s.layers[i] = New(i)
	}
	return s
}

// Len returns the number of layers.
func (s *Set) Len() int { return len(s.layers) }

// Layer returns the layer with the given id, or nil.
func (s *Set) Layer(id int) *Layer {
	if id < 0 || id >= len(s.layers) {
		return nil
	}
	return s.layers[id]
}

// Send queues commands on one layer.
func (s *Set) Send(id int, commands ...Command) error {
	l := s.Layer(id)
	if l == nil {
		return fmt.Errorf("layer %d: %w", id, ErrUnknownLayer)
	}
	for _, c := range commands {
		l.Send(c)
	}
	return nil
}

// Poll advances every layer to now.
func (s *Set) Poll(now time.Time) {
	for _, l := range s.layers {
		l.Poll(now)
	}
}

// Finalize arms fast-forward on every layer for the next Poll.
func (s *Set) Finalize() {
	for _, l := range s.layers {
		l.Finalize()
	}
}

// Snapshots copies the properties of every layer.
func (s *Set) Snapshots() []Snapshot {
	out := make([]Snapshot, len(s.layers))
	for i, l := range s.layers {
		out[i] = l.Snapshot()
	}
	return out
}
