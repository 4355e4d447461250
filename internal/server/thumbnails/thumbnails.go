// Package thumbnails derives resized variants of stored images in the
// background. Each variant is written next to the original blob under
// content.VariantRef(ref, width).
package thumbnails

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/content"
)

// Widths are the generated variant widths, largest first.
var Widths = []int{500, 250, 100}

// IsWidth reports whether w is one of the generated widths.
func IsWidth(w int) bool {
	for _, v := range Widths {
		if v == w {
			return true
		}
	}
	return false
}

var (
	// ErrQueueFull is returned by Enqueue when the backlog is at capacity.
	ErrQueueFull = errors.New("thumbnail queue full")
	// ErrStopped is returned by Enqueue once Stop has been called.
	ErrStopped = errors.New("thumbnail generator stopped")
)

// Job identifies one stored image. Name selects the output encoding.
type Job struct {
	FileID     string
	ContentRef string
	Name       string
}

// Generator runs a fixed pool of workers over a bounded job queue.
type Generator struct {
	engine  content.Engine
	logger  logging.Logger
	workers int

	mu      sync.RWMutex
	stopped bool
	jobs    chan Job
	wg      sync.WaitGroup
}

func NewGenerator(engine content.Engine, logger logging.Logger, workers, queueSize int) *Generator {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Generator{
		engine:  engine,
		logger:  logger.With("module", "thumbnails"),
		workers: workers,
		jobs:    make(chan Job, queueSize),
	}
}

// Start launches the workers. They keep draining the queue after ctx is
// cancelled and exit only once Stop has closed it, so every accepted job
// gets its variants.
func (g *Generator) Start(ctx context.Context) {
	for i := 0; i < g.workers; i++ {
		g.wg.Add(1)
		go g.run(ctx)
	}
}

// Stop closes the queue and waits until the workers have processed every
// job still in it. Further calls only wait.
func (g *Generator) Stop() {
	g.mu.Lock()
	if !g.stopped {
		g.stopped = true
		close(g.jobs)
	}
	g.mu.Unlock()

	g.wg.Wait()
}

// Enqueue schedules a job without blocking the caller.
func (g *Generator) Enqueue(job Job) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.stopped {
		return ErrStopped
	}
	select {
	case g.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

func (g *Generator) run(ctx context.Context) {
	defer g.wg.Done()

	// Queued jobs outlive the server context; nothing re-queues them.
	ctx = context.WithoutCancel(ctx)
	for job := range g.jobs {
		if err := g.Process(ctx, job); err != nil {
			g.logger.Error(ctx, "thumbnail generation failed", "file_id", job.FileID, "error", err)
			continue
		}
		g.logger.Debug(ctx, "thumbnails generated", "file_id", job.FileID)
	}
}

// Process generates every width for one job synchronously.
func (g *Generator) Process(ctx context.Context, job Job) error {
	data, err := g.engine.Read(ctx, job.ContentRef)
	if err != nil {
		return fmt.Errorf("read original: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	format, err := imaging.FormatFromFilename(job.Name)
	if err != nil {
		format = imaging.JPEG
	}

	for _, w := range Widths {
		resized := imaging.Resize(img, w, 0, imaging.Lanczos)

		buf := new(bytes.Buffer)
		if err := imaging.Encode(buf, resized, format); err != nil {
			return fmt.Errorf("encode %d: %w", w, err)
		}
		if err := g.engine.Write(ctx, content.VariantRef(job.ContentRef, w), buf.Bytes()); err != nil {
			return fmt.Errorf("write %d: %w", w, err)
		}
	}
	return nil
}
