package layer

import "time"

// A Command is one instruction in a layer program. Commands are queued with
// Layer.Send and interpreted in order by Layer.Poll.
type Command interface {
	isCommand()
}

// Clear drops the current image selection. Queued commands and running
// animations are left alone.
type Clear struct{}

// LoadImage selects the image file shown by the layer.
type LoadImage struct {
	Path string
}

// LoadEntries selects the entries of the current image that are drawn.
type LoadEntries struct {
	Entries []int32
}

// Delay blocks the queue for Duration.
type Delay struct {
	Duration time.Duration
}

// MoveTo sets the layer origin.
type MoveTo struct {
	X float64
	Y float64
}

// SetOpacity sets the layer opacity.
type SetOpacity struct {
	Value float64
}

// SetBlur sets the blur radius in pixels along each axis.
type SetBlur struct {
	X int32
	Y int32
}

// WaitForRedraw blocks the queue until the next Poll.
type WaitForRedraw struct{}

// Animate tweens a property towards Target over Duration. Then is queued when
// the animation completes.
type Animate struct {
	Duration time.Duration
	Target   Value
	Easing   Easing
	Then     []Command
}

func (Clear) isCommand()         {}
func (LoadImage) isCommand()     {}
func (LoadEntries) isCommand()   {}
func (Delay) isCommand()         {}
func (MoveTo) isCommand()        {}
func (SetOpacity) isCommand()    {}
func (SetBlur) isCommand()       {}
func (WaitForRedraw) isCommand() {}
func (Animate) isCommand()       {}
