package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomSourceIsSeedable(t *testing.T) {
	a, b := NewRandomSource(7), NewRandomSource(7)
	for i := 0; i < 5; i++ {
		v := a.Float64()
		assert.Equal(t, v, b.Float64())
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}
