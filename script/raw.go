package script

import (
	"errors"
	"fmt"
	"time"

	"github.com/matt-g-everett/layertx/layer"
)

type rawProgram struct {
	Layers []rawBlock `yaml:"layers"`
}

type rawBlock struct {
	Layer    int          `yaml:"layer"`
	Commands []rawCommand `yaml:"commands"`
}

type rawCommand struct {
	Clear   bool           `yaml:"clear"`
	Load    *string        `yaml:"load"`
	Entries *[]int32       `yaml:"entries"`
	Delay   *time.Duration `yaml:"delay"`
	Move    []float64      `yaml:"move"`
	Opacity *float64       `yaml:"opacity"`
	Blur    []int32        `yaml:"blur"`
	Wait    string         `yaml:"wait"`
	Animate *rawAnimate    `yaml:"animate"`
}

type rawAnimate struct {
	Duration time.Duration `yaml:"duration"`
	To       []float64     `yaml:"to"`
	By       []float64     `yaml:"by"`
	Opacity  *float64      `yaml:"opacity"`
	Easing   string        `yaml:"easing"`
	Then     []rawCommand  `yaml:"then"`
}

func (rb rawBlock) block() (Block, error) {
	if rb.Layer < 0 {
		return Block{}, fmt.Errorf("layer %d: negative layer number", rb.Layer)
	}
	cmds, err := commands(rb.Commands)
	if err != nil {
		return Block{}, fmt.Errorf("layer %d: %w", rb.Layer, err)
	}
	return Block{Layer: rb.Layer, Commands: cmds}, nil
}

func commands(raw []rawCommand) ([]layer.Command, error) {
	out := make([]layer.Command, 0, len(raw))
	for i, rc := range raw {
		c, err := rc.command()
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (rc rawCommand) command() (layer.Command, error) {
	var found []layer.Command
	var errs []error
	add := func(c layer.Command, err error) {
		if err != nil {
			errs = append(errs, err)
			return
		}
		found = append(found, c)
	}

	if rc.Clear {
		add(layer.Clear{}, nil)
	}
	if rc.Load != nil {
		add(layer.LoadImage{Path: *rc.Load}, nil)
	}
	if rc.Entries != nil {
		add(layer.LoadEntries{Entries: *rc.Entries}, nil)
	}
	if rc.Delay != nil {
		if *rc.Delay < 0 {
			add(nil, fmt.Errorf("delay: negative duration %v", *rc.Delay))
		} else {
			add(layer.Delay{Duration: *rc.Delay}, nil)
		}
	}
	if rc.Move != nil {
		x, y, err := pair(rc.Move)
		add(layer.MoveTo{X: x, Y: y}, wrap("move", err))
	}
	if rc.Opacity != nil {
		add(layer.SetOpacity{Value: *rc.Opacity}, nil)
	}
	if rc.Blur != nil {
		if len(rc.Blur) != 2 {
			add(nil, fmt.Errorf("blur: want [x, y], got %d values", len(rc.Blur)))
		} else {
			add(layer.SetBlur{X: rc.Blur[0], Y: rc.Blur[1]}, nil)
		}
	}
	if rc.Wait != "" {
		if rc.Wait != "redraw" {
			add(nil, fmt.Errorf("wait: unknown condition %q", rc.Wait))
		} else {
			add(layer.WaitForRedraw{}, nil)
		}
	}
	if rc.Animate != nil {
		add(rc.Animate.command())
	}

	if len(errs) > 0 {
		return nil, errs[0]
	}
	switch len(found) {
	case 0:
		return nil, ErrEmptyCommand
	case 1:
		return found[0], nil
	default:
		return nil, ErrAmbiguousCommand
	}
}

func (ra *rawAnimate) command() (layer.Command, error) {
	if ra.Duration <= 0 {
		return nil, fmt.Errorf("animate: duration must be positive, got %v", ra.Duration)
	}

	var targets []layer.Value
	if ra.To != nil {
		x, y, err := pair(ra.To)
		if err != nil {
			return nil, wrap("animate: to", err)
		}
		targets = append(targets, layer.Position{X: x, Y: y})
	}
	if ra.By != nil {
		dx, dy, err := pair(ra.By)
		if err != nil {
			return nil, wrap("animate: by", err)
		}
		targets = append(targets, layer.Offset{DX: dx, DY: dy})
	}
	if ra.Opacity != nil {
		targets = append(targets, layer.Opacity(*ra.Opacity))
	}
	switch len(targets) {
	case 0:
		return nil, errors.New("animate: one of to, by or opacity is required")
	case 1:
	default:
		return nil, fmt.Errorf("animate: %w: set only one of to, by or opacity", ErrAmbiguousCommand)
	}

	easing, err := layer.EasingByName(ra.Easing)
	if err != nil {
		return nil, wrap("animate", err)
	}

	then, err := commands(ra.Then)
	if err != nil {
		return nil, wrap("animate: then", err)
	}

	return layer.Animate{
		Duration: ra.Duration,
		Target:   targets[0],
		Easing:   easing,
		Then:     then,
	}, nil
}

func pair(v []float64) (float64, float64, error) {
	if len(v) != 2 {
		return 0, 0, fmt.Errorf("want [x, y], got %d values", len(v))
	}
	return v[0], v[1], nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", what, err)
}
