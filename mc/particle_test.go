package mc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParticle_ZeroValue(t *testing.T) {
	var p Particle
	assert.False(t, p.Alive)
	assert.Zero(t, p.X)
	assert.Zero(t, p.Wgt)
}

func TestParticle_CopiedByValue(t *testing.T) {
	p := Particle{X: 1, Y: 2, Z: 3, Wgt: 1, Alive: true}
	q := p
	q.X = 99
	q.Alive = false

	assert.Equal(t, 1.0, p.X)
	assert.True(t, p.Alive)
	assert.Equal(t, 99.0, q.X)
	assert.False(t, q.Alive)
}
