package layer

import "time"

// MinAnimationDuration is the shortest animation a layer will run. Animate
// commands with a shorter (or non-positive) duration are stretched to it.
const MinAnimationDuration = time.Millisecond

// animation is an in-flight tween owned by a Layer.
type animation struct {
	start    time.Time
	duration time.Duration
	rate     float64
	from     Value
	to       Value
	easing   Easing
	then     []Command
}

func newAnimation(now time.Time, duration time.Duration, from, to Value, easing Easing, then []Command) animation {
	return animation{
		start:    now,
		duration: duration,
		rate:     1.0 / duration.Seconds(),
		from:     from,
		to:       to,
		easing:   easing,
		then:     then,
	}
}

func (a *animation) done(now time.Time) bool {
	return !now.Before(a.start.Add(a.duration))
}

func (a *animation) valueAt(now time.Time) Value {
	t := now.Sub(a.start).Seconds() * a.rate
	return Interpolate(a.from, a.to, a.easing.Apply(t))
}
