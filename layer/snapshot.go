package layer

// Snapshot is a copy of the properties a renderer reads from a layer.
type Snapshot struct {
	ID             int     `json:"id" yaml:"id"`
	Filename       string  `json:"filename,omitempty" yaml:"filename,omitempty"`
	Entries        []int32 `json:"entries,omitempty" yaml:"entries,omitempty"`
	X              float64 `json:"x" yaml:"x"`
	Y              float64 `json:"y" yaml:"y"`
	Opacity        float64 `json:"opacity" yaml:"opacity"`
	BlurX          int32   `json:"blurX" yaml:"blurX"`
	BlurY          int32   `json:"blurY" yaml:"blurY"`
	Overlay        string  `json:"overlay,omitempty" yaml:"overlay,omitempty"`
	OverlayEntries []int32 `json:"overlayEntries,omitempty" yaml:"overlayEntries,omitempty"`
	OverlayRate    float64 `json:"overlayRate,omitempty" yaml:"overlayRate,omitempty"`
	State          string  `json:"state" yaml:"state"`
	Pending        int     `json:"pending" yaml:"pending"`
	Animating      int     `json:"animating" yaml:"animating"`
}

// Snapshot copies the current properties of the layer.
func (l *Layer) Snapshot() Snapshot {
	return Snapshot{
		ID:             l.id,
		Filename:       l.filename,
		Entries:        append([]int32(nil), l.entries...),
		X:              l.x,
		Y:              l.y,
		Opacity:        l.opacity,
		BlurX:          l.blurX,
		BlurY:          l.blurY,
		Overlay:        l.overlay,
		OverlayEntries: append([]int32(nil), l.overlayEntries...),
		OverlayRate:    l.overlayRate,
		State:          l.state.Kind.String(),
		Pending:        len(l.queue),
		Animating:      len(l.animations),
	}
}
