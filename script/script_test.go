package script

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matt-g-everett/layertx/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const program = `
layers:
  - layer: 1
    commands:
      - load: bg/sky.s25
      - entries: [0, 4]
      - move: [10, -5.5]
      - opacity: 0
      - blur: [2, 3]
      - animate: {duration: 1s, opacity: 1, easing: out-quad}
      - animate:
          duration: 2s
          by: [120, 0]
          then:
            - wait: redraw
            - clear: true
      - delay: 500ms
  - layer: 0
    commands:
      - animate: {duration: 250ms, to: [3, 4]}
`

func TestDecode(t *testing.T) {
	p, err := Decode([]byte(program))
	require.NoError(t, err)
	require.Len(t, p.Blocks, 2)
	assert.Equal(t, 9, p.Len())

	b := p.Blocks[0]
	assert.Equal(t, 1, b.Layer)
	require.Len(t, b.Commands, 8)
	assert.Equal(t, layer.LoadImage{Path: "bg/sky.s25"}, b.Commands[0])
	assert.Equal(t, layer.LoadEntries{Entries: []int32{0, 4}}, b.Commands[1])
	assert.Equal(t, layer.MoveTo{X: 10, Y: -5.5}, b.Commands[2])
	assert.Equal(t, layer.SetOpacity{Value: 0}, b.Commands[3])
	assert.Equal(t, layer.SetBlur{X: 2, Y: 3}, b.Commands[4])
	assert.Equal(t, layer.Delay{Duration: 500 * time.Millisecond}, b.Commands[7])

	fade, ok := b.Commands[5].(layer.Animate)
	require.True(t, ok)
	assert.Equal(t, time.Second, fade.Duration)
	assert.Equal(t, layer.Opacity(1), fade.Target)
	assert.InDelta(t, 0.75, fade.Easing.Apply(0.5), 1e-9)

	slide, ok := b.Commands[6].(layer.Animate)
	require.True(t, ok)
	assert.Equal(t, layer.Offset{DX: 120, DY: 0}, slide.Target)
	assert.Equal(t, []layer.Command{layer.WaitForRedraw{}, layer.Clear{}}, slide.Then)

	move, ok := p.Blocks[1].Commands[0].(layer.Animate)
	require.True(t, ok)
	assert.Equal(t, layer.Position{X: 3, Y: 4}, move.Target)
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"empty":          `[{}]`,
		"two keys":       `[{opacity: 1, move: [1, 2]}]`,
		"short move":     `[{move: [1]}]`,
		"bad wait":       `[{wait: vsync}]`,
		"zero duration":  `[{animate: {duration: 0s, opacity: 1}}]`,
		"no target":      `[{animate: {duration: 1s}}]`,
		"two targets":    `[{animate: {duration: 1s, opacity: 1, to: [1, 1]}}]`,
		"bad easing":     `[{animate: {duration: 1s, opacity: 1, easing: wobble}}]`,
		"bad follow-up":  `[{animate: {duration: 1s, opacity: 1, then: [{}]}}]`,
		"unknown key":    `[{fade: 1}]`,
		"negative delay": `[{delay: -1s}]`,
	}
	for name, doc := range cases {
		_, err := DecodeCommands([]byte(doc))
		assert.Error(t, err, name)
	}

	_, err := DecodeCommands([]byte(`[{}]`))
	assert.ErrorIs(t, err, ErrEmptyCommand)
	_, err = DecodeCommands([]byte(`[{clear: true, wait: redraw}]`))
	assert.ErrorIs(t, err, ErrAmbiguousCommand)
}

func TestDecodeBlockJSON(t *testing.T) {
	b, err := DecodeBlock([]byte(`{"layer": 3, "commands": [{"move": [1, 2]}, {"wait": "redraw"}]}`))
	require.NoError(t, err)
	assert.Equal(t, 3, b.Layer)
	assert.Equal(t, []layer.Command{layer.MoveTo{X: 1, Y: 2}, layer.WaitForRedraw{}}, b.Commands)
}

func TestLoadAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(program), 0644))

	p, err := Load(path)
	require.NoError(t, err)

	s := layer.NewSet(2)
	require.NoError(t, p.Apply(s))
	assert.Equal(t, 8, s.Layer(1).Pending())
	assert.Equal(t, 1, s.Layer(0).Pending())

	s.Finalize()
	s.Poll(time.Unix(0, 0))
	snap := s.Layer(1).Snapshot()
	assert.Equal(t, "", snap.Filename)
	assert.Equal(t, 130.0, snap.X)
	assert.Equal(t, 1.0, snap.Opacity)

	assert.ErrorIs(t, p.Apply(layer.NewSet(1)), layer.ErrUnknownLayer)
}
