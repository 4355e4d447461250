package thumbnails

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBase64(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestProcess_WritesAllWidths(t *testing.T) {
	ctx := context.Background()
	engine := content.NewDiskEngine(t.TempDir())
	ref, err := engine.Store(ctx, pngBase64(t, 640, 320))
	require.NoError(t, err)

	g := NewGenerator(engine, logging.Discard(), 1, 1)
	require.NoError(t, g.Process(ctx, Job{FileID: "1", ContentRef: ref, Name: "photo.png"}))

	for _, w := range Widths {
		data, err := engine.Read(ctx, content.VariantRef(ref, w))
		require.NoError(t, err, w)

		img, err := imaging.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, w, img.Bounds().Dx())
		assert.Equal(t, w/2, img.Bounds().Dy())
	}
}

func TestProcess_NotAnImage(t *testing.T) {
	ctx := context.Background()
	engine := content.NewDiskEngine(t.TempDir())
	ref, err := engine.Store(ctx, base64.StdEncoding.EncodeToString([]byte("plain text")))
	require.NoError(t, err)

	g := NewGenerator(engine, logging.Discard(), 1, 1)
	err = g.Process(ctx, Job{ContentRef: ref, Name: "x.png"})
	assert.ErrorContains(t, err, "decode image")

	_, err = engine.Read(ctx, content.VariantRef(ref, 100))
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGenerator_BackgroundRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine := content.NewDiskEngine(t.TempDir())
	ref, err := engine.Store(ctx, pngBase64(t, 120, 60))
	require.NoError(t, err)

	g := NewGenerator(engine, logging.Discard(), 2, 4)
	g.Start(ctx)
	require.NoError(t, g.Enqueue(Job{FileID: "9", ContentRef: ref, Name: "small.jpg"}))

	assert.Eventually(t, func() bool {
		_, err := engine.Read(ctx, content.VariantRef(ref, 100))
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	g.Stop()
}

func TestEnqueue_QueueFull(t *testing.T) {
	g := NewGenerator(content.NewDiskEngine(t.TempDir()), logging.Discard(), 1, 1)

	require.NoError(t, g.Enqueue(Job{FileID: "1"}))
	assert.ErrorIs(t, g.Enqueue(Job{FileID: "2"}), ErrQueueFull)
}

func TestIsWidth(t *testing.T) {
	assert.True(t, IsWidth(500))
	assert.True(t, IsWidth(100))
	assert.False(t, IsWidth(0))
	assert.False(t, IsWidth(300))
}

func TestGenerator_StopDrainsQueueAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	engine := content.NewDiskEngine(t.TempDir())
	g := NewGenerator(engine, logging.Discard(), 2, 8)

	refs := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		ref, err := engine.Store(context.Background(), pngBase64(t, 64, 32))
		require.NoError(t, err)
		require.NoError(t, g.Enqueue(Job{FileID: ref, ContentRef: ref, Name: "p.png"}))
		refs = append(refs, ref)
	}

	cancel()
	g.Start(ctx)
	g.Stop()

	for _, ref := range refs {
		for _, w := range Widths {
			_, err := engine.Read(context.Background(), content.VariantRef(ref, w))
			assert.NoError(t, err, "%s width %d", ref, w)
		}
	}
}

func TestEnqueue_AfterStop(t *testing.T) {
	g := NewGenerator(content.NewDiskEngine(t.TempDir()), logging.Discard(), 1, 4)
	g.Start(context.Background())
	g.Stop()

	assert.ErrorIs(t, g.Enqueue(Job{FileID: "1"}), ErrStopped)
	g.Stop()
}
