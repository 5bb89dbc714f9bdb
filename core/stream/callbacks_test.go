package stream_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrymomot/streamkit/core/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbacks_Build(t *testing.T) {
	t.Parallel()

	t.Run("default subscribe hook requests unbounded demand", func(t *testing.T) {
		t.Parallel()

		var got []int
		var completed bool
		stream.Just(1, 2, 3).Subscribe(context.Background(), stream.Callbacks[int]{
			OnNext:     func(n int) { got = append(got, n) },
			OnComplete: func() { completed = true },
		}.Build())

		assert.Equal(t, []int{1, 2, 3}, got)
		assert.True(t, completed)
	})

	t.Run("custom subscribe hook controls demand", func(t *testing.T) {
		t.Parallel()

		var got []int
		stream.Just(1, 2, 3).Subscribe(context.Background(), stream.Callbacks[int]{
			OnSubscribe: func(s stream.Subscription) {
				require.NoError(t, s.Request(1))
			},
			OnNext: func(n int) { got = append(got, n) },
		}.Build())

		assert.Equal(t, []int{1}, got)
	})

	t.Run("error hook receives stream failure", func(t *testing.T) {
		t.Parallel()

		errStream := errors.New("stream failed")
		var got error
		stream.Fail[string](errStream).Subscribe(context.Background(), stream.Callbacks[string]{
			OnError: func(err error) { got = err },
		}.Build())

		require.ErrorIs(t, got, errStream)
	})

	t.Run("reusing a callbacks value builds independent subscribers", func(t *testing.T) {
		t.Parallel()

		var total int
		hooks := stream.Callbacks[int]{
			OnNext: func(n int) { total += n },
		}

		stream.Just(1, 2).Subscribe(context.Background(), hooks.Build())
		stream.Just(3).Subscribe(context.Background(), hooks.Build())

		assert.Equal(t, 6, total)
	})
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	// Discard exhausts the stream for its side effects.
	var pulls int
	pub := stream.Generate(func() stream.Source[int] {
		return stream.SourceFunc[int](func(context.Context) (int, bool, error) {
			if pulls >= 5 {
				return 0, false, nil
			}
			pulls++
			return pulls, true, nil
		})
	})

	assert.NotPanics(t, func() {
		pub.Subscribe(context.Background(), stream.Discard[int]())
	})
	assert.Equal(t, 5, pulls)
}
