package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWipeBytes(t *testing.T) {
	b := []byte("secret")
	WipeBytes(b)
	assert.Equal(t, make([]byte, 6), b)

	assert.NotPanics(t, func() { WipeBytes(nil) })
}
