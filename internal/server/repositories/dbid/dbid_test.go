package dbid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"1", 1, true},
		{"9223372036854775807", 9223372036854775807, true},
		{"0", 0, false},
		{"-4", 0, false},
		{"", 0, false},
		{"34556ea6727277193884848e", 0, false},
		{"1.5", 0, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseParent(t *testing.T) {
	n, ok := ParseParent("0")
	assert.True(t, ok)
	assert.Zero(t, n)

	n, ok = ParseParent("17")
	assert.True(t, ok)
	assert.Equal(t, int64(17), n)

	_, ok = ParseParent("abc")
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "42", Format(42))
}
