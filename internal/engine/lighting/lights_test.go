package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBank(t *testing.T) {
	b := NewBank()
	assert.Equal(t, []int32{1, 0, 0, 0}, b.GetEnabled())
	assert.Equal(t, [3]float32{1, 1, 1}, b.Lights[0].Direction)
}

func TestToggle(t *testing.T) {
	b := NewBank()
	require.NoError(t, b.Toggle(2))
	assert.True(t, b.Enabled(2))
	require.NoError(t, b.Toggle(2))
	assert.False(t, b.Enabled(2))

	require.NoError(t, b.Toggle(0))
	assert.False(t, b.Enabled(0))

	assert.ErrorIs(t, b.Toggle(LightCount), ErrNoSuchLight)
	assert.ErrorIs(t, b.Toggle(-1), ErrNoSuchLight)
	assert.False(t, b.Enabled(9))
}

func TestFlatten(t *testing.T) {
	b := NewBank()
	dirs := b.GetDirections()
	require.Len(t, dirs, LightCount*3)
	assert.Equal(t, []float32{-1, 1, 1}, dirs[3:6])

	assert.Len(t, b.GetDiffuse(), LightCount*3)
	specular := b.GetSpecular()
	assert.Equal(t, []float32{1, 1, 1}, specular[0:3])
}
