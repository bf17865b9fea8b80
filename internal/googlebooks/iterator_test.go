package googlebooks

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/libris/internal/ratelimit"
)

func TestIteratorYieldsAllResultsInOrder(t *testing.T) {
	provider := newFakeProvider(t, 13)
	search, err := provider.client().Search(NewQuery(), WithSearchPageSize(5))
	require.NoError(t, err)

	ctx := context.Background()
	it := search.Iterate()

	var titles []string
	for it.Next(ctx) {
		titles = append(titles, it.Volume().Title)
	}
	require.NoError(t, it.Err())

	require.Len(t, titles, 13)
	for i, title := range titles {
		assert.Equal(t, fmt.Sprintf("Result %d", i), title)
	}

	// further calls stay terminated
	assert.False(t, it.Next(ctx))
	assert.Nil(t, it.Volume())
}

func TestIteratorEmptyResultSet(t *testing.T) {
	provider := newFakeProvider(t, 0)
	search, err := provider.client().Search(NewQuery())
	require.NoError(t, err)

	it := search.Iterate()
	assert.False(t, it.Next(context.Background()))
	assert.NoError(t, it.Err(), "exhaustion is not an iteration error")
	assert.Nil(t, it.Volume())
	assert.Equal(t, 1, provider.calls())
}

func TestIteratorReportsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend unavailable", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := NewClient(
		WithBaseURL(server.URL),
		WithRateLimiter(ratelimit.New("test", 1000)),
		WithRetryAttempts(1),
	)
	search, err := client.Search(NewQuery())
	require.NoError(t, err)

	it := search.Iterate()
	assert.False(t, it.Next(context.Background()))

	var statusErr *StatusError
	require.ErrorAs(t, it.Err(), &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestIteratorsShareWarmedCache(t *testing.T) {
	provider := newFakeProvider(t, 20)
	search, err := provider.client().Search(NewQuery())
	require.NoError(t, err)

	ctx := context.Background()

	first := search.Iterate()
	for i := 0; i < 10; i++ {
		require.True(t, first.Next(ctx))
	}
	assert.Equal(t, 1, provider.calls())

	// a restarted walk replays the cached first page without refetching
	second := search.Iterate()
	for i := 0; i < 10; i++ {
		require.True(t, second.Next(ctx))
		assert.Equal(t, fmt.Sprintf("Result %d", i), second.Volume().Title)
	}
	assert.Equal(t, 1, provider.calls())

	// either iterator crossing into page two triggers exactly one fetch
	require.True(t, second.Next(ctx))
	require.True(t, first.Next(ctx))
	assert.Equal(t, 2, provider.calls())
}
