package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	t.Run("OverwritesAllBytes", func(t *testing.T) {
		b := []byte{0xde, 0xad, 0xbe, 0xef}
		Zero(b)
		assert.Equal(t, []byte{0, 0, 0, 0}, b)
	})

	t.Run("NilSliceIsSafe", func(t *testing.T) {
		assert.NotPanics(t, func() { Zero(nil) })
	})

	t.Run("EmptySliceIsSafe", func(t *testing.T) {
		assert.NotPanics(t, func() { Zero([]byte{}) })
	})
}
