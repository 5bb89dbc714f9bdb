package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrymomot/streamkit/core/pipeline"
	"github.com/dmitrymomot/streamkit/core/stream"
	"github.com/dmitrymomot/streamkit/core/stream/streamtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {
	t.Parallel()

	t.Run("panics on non-positive size", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { pipeline.Buffer(stream.Just(1), 0) })
		assert.Panics(t, func() { pipeline.Buffer(stream.Just(1), -2) })
	})

	t.Run("groups elements into full batches", func(t *testing.T) {
		t.Parallel()

		rec := streamtest.NewRecorder[[]int]()
		pipeline.Buffer(stream.Range(1, 6), 2).Subscribe(context.Background(), rec)
		require.NoError(t, rec.Request(stream.Unbounded))

		assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5, 6}}, rec.Items())
		assert.True(t, rec.Completed())
	})

	t.Run("flushes the partial batch on completion", func(t *testing.T) {
		t.Parallel()

		rec := streamtest.NewRecorder[[]int]()
		pipeline.Buffer(stream.Range(1, 5), 2).Subscribe(context.Background(), rec)
		require.NoError(t, rec.Request(stream.Unbounded))

		assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, rec.Items())
		assert.True(t, rec.Completed())
		assert.Equal(t, 1, rec.TerminalCount())
	})

	t.Run("discards the partial batch on failure", func(t *testing.T) {
		t.Parallel()

		errSrc := errors.New("source failed")
		pub := stream.Generate(func() stream.Source[int] {
			i := 0
			return stream.SourceFunc[int](func(context.Context) (int, bool, error) {
				i++
				if i == 4 {
					return 0, false, errSrc
				}
				return i, true, nil
			})
		})

		rec := streamtest.NewRecorder[[]int]()
		pipeline.Buffer(pub, 2).Subscribe(context.Background(), rec)
		require.NoError(t, rec.Request(stream.Unbounded))

		assert.Equal(t, [][]int{{1, 2}}, rec.Items())
		require.ErrorIs(t, rec.Err(), errSrc)
		assert.Equal(t, 1, rec.TerminalCount())
	})

	t.Run("one downstream unit pulls one batch upstream", func(t *testing.T) {
		t.Parallel()

		var pulls int
		rec := streamtest.NewRecorder[[]int]()
		pipeline.Buffer(countingSource(&pulls), 3).Subscribe(context.Background(), rec)
		require.NoError(t, rec.Request(1))

		assert.Equal(t, [][]int{{1, 2, 3}}, rec.Items())
		assert.Equal(t, 3, pulls)
		assert.Zero(t, rec.TerminalCount())
	})
}
