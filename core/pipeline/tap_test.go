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

func TestTap(t *testing.T) {
	t.Parallel()

	t.Run("observes without altering the stream", func(t *testing.T) {
		t.Parallel()

		var seen []int
		pub := pipeline.Tap(stream.Just(1, 2, 3), func(n int) { seen = append(seen, n) })
		rec := streamtest.NewRecorder[int]()
		pub.Subscribe(context.Background(), rec)
		require.NoError(t, rec.Request(stream.Unbounded))

		assert.Equal(t, []int{1, 2, 3}, seen)
		assert.Equal(t, []int{1, 2, 3}, rec.Items())
		assert.True(t, rec.Completed())
	})

	t.Run("respects demand", func(t *testing.T) {
		t.Parallel()

		var seen []int
		pub := pipeline.Tap(stream.Just(1, 2, 3), func(n int) { seen = append(seen, n) })
		rec := streamtest.NewRecorder[int]()
		pub.Subscribe(context.Background(), rec)
		require.NoError(t, rec.Request(1))

		assert.Equal(t, []int{1}, seen)
		assert.Equal(t, []int{1}, rec.Items())
	})

	t.Run("failure passes through unobserved", func(t *testing.T) {
		t.Parallel()

		errSrc := errors.New("source failed")
		var seen []int
		pub := pipeline.Tap(stream.Fail[int](errSrc), func(n int) { seen = append(seen, n) })
		rec := streamtest.NewRecorder[int]()
		pub.Subscribe(context.Background(), rec)
		require.NoError(t, rec.Request(1))

		assert.Empty(t, seen)
		require.ErrorIs(t, rec.Err(), errSrc)
	})
}
