package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"a.txt":        "text/plain; charset=utf-8",
		"README.MD":    "text/markdown; charset=utf-8",
		"photo.JPEG":   "image/jpeg",
		"x.png":        "image/png",
		"archive.tar":  "application/octet-stream",
		"no-extension": "application/octet-stream",
		".txt":         "text/plain; charset=utf-8",
	}
	for name, want := range tests {
		assert.Equal(t, want, ContentType(name), name)
	}
}
