package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateLut(t *testing.T) {
	assert.Equal(t, []float64{1}, GenerateLut(1))
	assert.Empty(t, GenerateLut(0))

	lut := GenerateLut(5)
	assert.Len(t, lut, 5)
	assert.Equal(t, 1.0, lut[2])
	for i := 0; i < 2; i++ {
		assert.Equal(t, lut[i], lut[4-i])
		assert.Less(t, lut[i], lut[i+1])
		assert.Greater(t, lut[i], 0.0)
	}
}

func TestGenerateLutMemoized(t *testing.T) {
	m := Memoizer{}
	a := GenerateLutMemoized(7, m)
	b := GenerateLutMemoized(7, m)
	assert.Same(t, &a[0], &b[0])
	assert.Len(t, m, 1)
}
