package layer

import (
	"fmt"
	"sort"

	"github.com/fogleman/ease"
)

// An Easing remaps linear progress in [0, 1]. The result may leave [0, 1] for
// curves that overshoot. A nil Easing is linear.
type Easing func(t float64) float64

// Apply evaluates the easing, treating a nil Easing as linear.
func (e Easing) Apply(t float64) float64 {
	if e == nil {
		return t
	}
	return e(t)
}

var easings = map[string]Easing{
	"linear": ease.Linear,

	"in-quad":     ease.InQuad,
	"out-quad":    ease.OutQuad,
	"in-out-quad": ease.InOutQuad,

	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,

	"in-quart":     ease.InQuart,
	"out-quart":    ease.OutQuart,
	"in-out-quart": ease.InOutQuart,

	"in-quint":     ease.InQuint,
	"out-quint":    ease.OutQuint,
	"in-out-quint": ease.InOutQuint,

	"in-sine":     ease.InSine,
	"out-sine":    ease.OutSine,
	"in-out-sine": ease.InOutSine,

	"in-expo":     ease.InExpo,
	"out-expo":    ease.OutExpo,
	"in-out-expo": ease.InOutExpo,

	"in-circ":     ease.InCirc,
	"out-circ":    ease.OutCirc,
	"in-out-circ": ease.InOutCirc,

	"in-elastic":     ease.InElastic,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,

	"in-back":     ease.InBack,
	"out-back":    ease.OutBack,
	"in-out-back": ease.InOutBack,

	"in-bounce":     ease.InBounce,
	"out-bounce":    ease.OutBounce,
	"in-out-bounce": ease.InOutBounce,
}

// EasingByName looks up a named easing curve. The empty name is linear.
func EasingByName(name string) (Easing, error) {
	if name == "" {
		return ease.Linear, nil
	}
	e, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return e, nil
}

// EasingNames lists the names accepted by EasingByName.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
