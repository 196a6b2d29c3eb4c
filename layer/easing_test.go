package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasingByName(t *testing.T) {
	for _, name := range EasingNames() {
		e, err := EasingByName(name)
		require.NoError(t, err, name)
		assert.InDelta(t, 0, e(0), 1e-2, name)
		assert.InDelta(t, 1, e(1), 1e-2, name)
	}

	e, err := EasingByName("")
	require.NoError(t, err)
	assert.Equal(t, 0.5, e(0.5))

	_, err = EasingByName("wobble")
	assert.Error(t, err)
}

func TestNilEasingIsLinear(t *testing.T) {
	var e Easing
	assert.Equal(t, 0.3, e.Apply(0.3))
}
