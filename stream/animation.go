package stream

import "github.com/matt-g-everett/layertx/layer"

// A Renderer turns the current layer snapshots into a Frame.
type Renderer interface {
	Render(snaps []layer.Snapshot) *Frame
}
