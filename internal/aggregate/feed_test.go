package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stefanv/moneta/internal/aggregate"
)

func TestFeed_PublishAndLatest(t *testing.T) {
	feed := aggregate.NewFeed[int]()

	_, ok := feed.Latest()
	require.False(t, ok, "empty feed must report no value")

	feed.Publish(1)
	feed.Publish(2)

	got, ok := feed.Latest()
	require.True(t, ok)
	require.Equal(t, 2, got)
}

func TestFeed_SubscribeReceivesPublishes(t *testing.T) {
	feed := aggregate.NewFeed[string]()

	var got []string
	feed.Subscribe(func(v string) { got = append(got, v) })

	feed.Publish("a")
	feed.Publish("b")

	require.Equal(t, []string{"a", "b"}, got)
}

func TestFeed_SubscribeReplaysLatest(t *testing.T) {
	feed := aggregate.NewFeed[string]()
	feed.Publish("initial")

	var got []string
	feed.Subscribe(func(v string) { got = append(got, v) })

	require.Equal(t, []string{"initial"}, got, "late subscriber must see the latest value immediately")
}

func TestFeed_CancelStopsCallbacks(t *testing.T) {
	feed := aggregate.NewFeed[int]()

	var got []int
	cancel := feed.Subscribe(func(v int) { got = append(got, v) })

	feed.Publish(1)
	cancel()
	feed.Publish(2)

	require.Equal(t, []int{1}, got)
	require.Equal(t, 0, feed.Subscribers())
}

func TestFeed_CancelIsIdempotent(t *testing.T) {
	feed := aggregate.NewFeed[int]()

	cancelA := feed.Subscribe(func(int) {})
	cancelB := feed.Subscribe(func(int) {})

	cancelA()
	cancelA()

	require.Equal(t, 1, feed.Subscribers())
	cancelB()
	require.Equal(t, 0, feed.Subscribers())
}

func TestFeed_IndependentSubscribers(t *testing.T) {
	feed := aggregate.NewFeed[int]()

	var a, b int
	feed.Subscribe(func(v int) { a = v })
	cancel := feed.Subscribe(func(v int) { b = v })

	feed.Publish(7)
	cancel()
	feed.Publish(9)

	require.Equal(t, 9, a)
	require.Equal(t, 7, b)
}
