package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePage(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"0", 0},
		{"3", 3},
		{" 2 ", 2},
		{"-1", 0},
		{"abc", 0},
		{"1.5", 0},
		{"99999", 99999},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePage(tt.raw))
		})
	}
}

func TestWindow(t *testing.T) {
	p := New(20)
	assert.Equal(t, Window{Limit: 20, Offset: 0}, p.Window(0))
	assert.Equal(t, Window{Limit: 20, Offset: 40}, p.Window(2))
	assert.Equal(t, Window{Limit: 20, Offset: 0}, p.Window(-5))
}

func TestWindow_Overflow(t *testing.T) {
	p := New(20)
	w := p.Window(int(^uint(0) >> 1))
	assert.Equal(t, 20, w.Limit)
	assert.Greater(t, w.Offset, 0)
}

func TestNew_DefaultSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, New(0).Size())
	assert.Equal(t, 5, New(5).Size())
}
