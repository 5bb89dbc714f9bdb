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

func TestTake(t *testing.T) {
	t.Parallel()

	t.Run("caps an infinite source", func(t *testing.T) {
		t.Parallel()

		var pulls int
		pub := pipeline.Take(countingSource(&pulls), 3)
		rec := streamtest.NewRecorder[int]()
		pub.Subscribe(context.Background(), rec)
		require.NoError(t, rec.Request(stream.Unbounded))

		assert.Equal(t, []int{1, 2, 3}, rec.Items())
		assert.True(t, rec.Completed())
		assert.Equal(t, 1, rec.TerminalCount())
		assert.Equal(t, 3, pulls, "upstream demand must be capped at the limit")
	})

	t.Run("completes eagerly without extra demand", func(t *testing.T) {
		t.Parallel()

		rec := streamtest.NewRecorder[int]()
		pipeline.Take(stream.Range(1, 10), 2).Subscribe(context.Background(), rec)
		require.NoError(t, rec.Request(2))

		// The bound is known in advance, so completion arrives with the
		// last element instead of waiting for another request.
		assert.Equal(t, []int{1, 2}, rec.Items())
		assert.True(t, rec.Completed())
	})

	t.Run("zero limit completes immediately", func(t *testing.T) {
		t.Parallel()

		var pulls int
		rec := streamtest.NewRecorder[int]()
		pipeline.Take(countingSource(&pulls), 0).Subscribe(context.Background(), rec)

		assert.True(t, rec.Completed())
		assert.Empty(t, rec.Items())
		assert.Zero(t, pulls)

		// Late demand on the finished subscription is swallowed.
		require.NoError(t, rec.Request(5))
		assert.Zero(t, pulls)
	})

	t.Run("shorter source completes normally", func(t *testing.T) {
		t.Parallel()

		rec := streamtest.NewRecorder[int]()
		pipeline.Take(stream.Just(1, 2), 5).Subscribe(context.Background(), rec)
		require.NoError(t, rec.Request(stream.Unbounded))

		assert.Equal(t, []int{1, 2}, rec.Items())
		assert.True(t, rec.Completed())
	})

	t.Run("repeated requests never overshoot the cap", func(t *testing.T) {
		t.Parallel()

		var pulls int
		rec := streamtest.NewRecorder[int]()
		pipeline.Take(countingSource(&pulls), 3).Subscribe(context.Background(), rec)

		require.NoError(t, rec.Request(10))
		require.NoError(t, rec.Request(10))

		assert.Equal(t, []int{1, 2, 3}, rec.Items())
		assert.Equal(t, 3, pulls)
		assert.Equal(t, 1, rec.TerminalCount())
	})

	t.Run("rejects invalid demand", func(t *testing.T) {
		t.Parallel()

		rec := streamtest.NewRecorder[int]()
		pipeline.Take(stream.Just(1), 1).Subscribe(context.Background(), rec)

		require.ErrorIs(t, rec.Request(0), stream.ErrInvalidDemand)
	})

	t.Run("failure before the limit passes through", func(t *testing.T) {
		t.Parallel()

		errSrc := errors.New("source failed")
		rec := streamtest.NewRecorder[int]()
		pipeline.Take(stream.Fail[int](errSrc), 3).Subscribe(context.Background(), rec)
		require.NoError(t, rec.Request(1))

		require.ErrorIs(t, rec.Err(), errSrc)
		assert.False(t, rec.Completed())
	})
}
