// Package pagination translates the raw page query parameter into a
// repository window of fixed size.
package pagination

import (
	"strings"

	"github.com/spf13/cast"
)

// DefaultPageSize is used when no positive size is configured.
const DefaultPageSize = 20

// ResolvePage parses the raw page parameter. Missing, unparsable and
// negative values resolve to the first page. There is no upper bound.
func ResolvePage(raw string) int {
	n, err := cast.ToIntE(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Window is a LIMIT/OFFSET pair.
type Window struct {
	Limit  int
	Offset int
}

// Paginator computes windows for a single global page size.
type Paginator struct {
	size int
}

func New(size int) *Paginator {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Paginator{size: size}
}

func (p *Paginator) Size() int { return p.size }

// Window returns the slice [page*size, page*size+size). Pages large enough
// to overflow saturate at the largest representable offset, which yields an
// empty result.
func (p *Paginator) Window(page int) Window {
	if page < 0 {
		page = 0
	}
	const maxInt = int(^uint(0) >> 1)
	offset := maxInt
	if page <= maxInt/p.size {
		offset = page * p.size
	}
	return Window{Limit: p.size, Offset: offset}
}
