package thumb

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicdesk/bridge/internal/providers/agents"
)

// Smallest valid PNG header bytes, enough for content type detection.
var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}

func thumbServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/generate", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBytes)
	}))
}

func TestGenerateConditions(t *testing.T) {
	server := thumbServer(t)
	defer server.Close()

	provider := NewProvider(agents.NewClient(server.URL, "", 0), true, 2)

	conds := provider.Conditions("thumb.generate")
	require.Len(t, conds, 2)
	assert.Equal(t, "service", conds[0].ID)
	assert.Equal(t, "quota", conds[1].ID)
	assert.NoError(t, conds[0].Check(context.Background(), nil))
	assert.NoError(t, conds[1].Check(context.Background(), nil))

	assert.Empty(t, provider.Conditions("thumb.usage"))
}

func TestGenerateDetectsContentType(t *testing.T) {
	server := thumbServer(t)
	defer server.Close()

	provider := NewProvider(agents.NewClient(server.URL, "", 0), true, 5)

	result, err := provider.Execute(context.Background(), "thumb.generate", map[string]interface{}{
		"prompt": "sunset harbor",
		"width":  float64(256),
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success, result.Reason())

	assert.Equal(t, "image/png", result.Data["content_type"])
	assert.Equal(t, ".png", result.Data["extension"])

	decoded, err := base64.StdEncoding.DecodeString(result.Data["data"].(string))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, decoded)
}

func TestQuotaConditionBlocksWhenExhausted(t *testing.T) {
	server := thumbServer(t)
	defer server.Close()

	provider := NewProvider(agents.NewClient(server.URL, "", 0), true, 1)

	result, err := provider.Execute(context.Background(), "thumb.generate", map[string]interface{}{
		"prompt": "one",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success, result.Reason())
	assert.Equal(t, int64(0), provider.Remaining())

	conds := provider.Conditions("thumb.generate")
	assert.Error(t, conds[1].Check(context.Background(), nil))
}

func TestFailedGenerationDoesNotConsumeQuota(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "render farm busy", http.StatusBadGateway)
	}))
	defer server.Close()

	provider := NewProvider(agents.NewClient(server.URL, "", 0), true, 3)

	result, _ := provider.Execute(context.Background(), "thumb.generate", map[string]interface{}{
		"prompt": "busy",
	}, nil)
	assert.False(t, result.Success)
	assert.Contains(t, result.Reason(), "render farm busy")
	assert.Equal(t, int64(3), provider.Remaining())
}

func TestGenerateRequiresPrompt(t *testing.T) {
	provider := NewProvider(agents.NewClient("http://127.0.0.1:1", "", 0), true, 3)

	result, _ := provider.Execute(context.Background(), "thumb.generate", map[string]interface{}{}, nil)
	assert.False(t, result.Success)
	assert.Contains(t, result.Reason(), "prompt")
}

func TestUsageReporting(t *testing.T) {
	server := thumbServer(t)
	defer server.Close()

	provider := NewProvider(agents.NewClient(server.URL, "", 0), true, 4)

	_, err := provider.Execute(context.Background(), "thumb.generate", map[string]interface{}{
		"prompt": "one",
	}, nil)
	require.NoError(t, err)

	usage, _ := provider.Execute(context.Background(), "thumb.usage", nil, nil)
	require.True(t, usage.Success)
	assert.Equal(t, int64(1), usage.Data["used"])
	assert.Equal(t, int64(4), usage.Data["quota"])
	assert.Equal(t, int64(3), usage.Data["remaining"])
}
