package book

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicdesk/bridge/internal/providers/agents"
)

func TestServiceCondition(t *testing.T) {
	provider := NewProvider(nil, true)

	conds := provider.Conditions("book.outline")
	require.Len(t, conds, 1)
	assert.Equal(t, "service", conds[0].ID)
	assert.Error(t, conds[0].Check(context.Background(), nil), "nil client means unavailable")

	assert.Empty(t, provider.Conditions("book.status"))
}

func TestOutlineCallsAgentOnce(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v1/outline", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "The Glass Harbor", body["title"])
		assert.Equal(t, "mystery", body["genre"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"outline": []string{"Arrival", "The Locked Pier", "Departure"},
		})
	}))
	defer server.Close()

	provider := NewProvider(agents.NewClient(server.URL, "", 0), true)

	result, err := provider.Execute(context.Background(), "book.outline", map[string]interface{}{
		"title": "The Glass Harbor",
		"genre": "mystery",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success, result.Reason())
	assert.NotNil(t, result.Data["outline"])
	assert.Equal(t, int64(1), calls.Load())
}

func TestOutlineRequiresTitle(t *testing.T) {
	provider := NewProvider(agents.NewClient("http://127.0.0.1:1", "", 0), true)

	result, _ := provider.Execute(context.Background(), "book.outline", map[string]interface{}{}, nil)
	assert.False(t, result.Success)
	assert.Contains(t, result.Reason(), "title")
}

func TestChapterAgentErrorNotRetried(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := NewProvider(agents.NewClient(server.URL, "", 0), true)

	result, _ := provider.Execute(context.Background(), "book.chapter", map[string]interface{}{
		"outline": "Arrival at the harbor",
		"index":   float64(1),
	}, nil)
	assert.False(t, result.Success)
	assert.Contains(t, result.Reason(), "model overloaded")
	assert.Equal(t, int64(1), calls.Load(), "execute calls must not be retried")
}

func TestChapterMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	provider := NewProvider(agents.NewClient(server.URL, "", 0), true)

	result, _ := provider.Execute(context.Background(), "book.chapter", map[string]interface{}{
		"outline": "Arrival",
	}, nil)
	assert.False(t, result.Success)
	assert.Contains(t, result.Reason(), "malformed")
}

func TestStatusCountsRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"outline": []string{"One"}})
	}))
	defer server.Close()

	provider := NewProvider(agents.NewClient(server.URL, "", 0), true)

	status, _ := provider.Execute(context.Background(), "book.status", nil, nil)
	require.True(t, status.Success)
	assert.Equal(t, int64(0), status.Data["requests"])

	_, err := provider.Execute(context.Background(), "book.outline", map[string]interface{}{
		"title": "One",
	}, nil)
	require.NoError(t, err)

	status, _ = provider.Execute(context.Background(), "book.status", nil, nil)
	assert.Equal(t, int64(1), status.Data["requests"])
	assert.Equal(t, true, status.Data["enabled"])
}
