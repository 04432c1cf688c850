package canvas

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openHost(items ...Item) *MemoryHost {
	host := NewMemoryHost()
	host.Open()
	host.SetSelection(items...)
	return host
}

func TestConditionsRequireDocument(t *testing.T) {
	host := NewMemoryHost()
	provider := NewProvider(host)

	conds := provider.Conditions("canvas.layer")
	require.Len(t, conds, 1)
	assert.Equal(t, "document", conds[0].ID)
	assert.Error(t, conds[0].Check(context.Background(), nil))

	host.Open()
	assert.NoError(t, conds[0].Check(context.Background(), nil))
}

func TestConditionsRequireSelection(t *testing.T) {
	host := openHost()
	provider := NewProvider(host)

	conds := provider.Conditions("canvas.wave")
	require.Len(t, conds, 2)
	assert.Equal(t, "document", conds[0].ID)
	assert.Equal(t, "selection", conds[1].ID)
	assert.Error(t, conds[1].Check(context.Background(), nil), "empty selection should not satisfy")

	host.SetSelection(Item{ID: "item-1", Bounds: Rect{Width: 100, Height: 50}})
	assert.NoError(t, conds[1].Check(context.Background(), nil))
}

func TestWaveDistortsSelection(t *testing.T) {
	host := openHost(
		Item{ID: "item-1", Bounds: Rect{Width: 120, Height: 40}},
		Item{ID: "item-2", Bounds: Rect{Left: 150, Width: 80, Height: 40}},
	)
	provider := NewProvider(host)

	result, err := provider.Execute(context.Background(), "canvas.wave", map[string]interface{}{
		"amplitude":  float64(5),
		"wavelength": float64(30),
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success, result.Reason())

	assert.Equal(t, 2, result.Data["distorted"])

	d, ok := host.Distortion("item-1")
	require.True(t, ok)
	assert.Equal(t, float64(30), d.Wavelength)
	assert.NotEmpty(t, d.Offsets)
	for _, off := range d.Offsets {
		assert.LessOrEqual(t, math.Abs(off), 5.0+1e-9)
	}
}

func TestWaveRejectsBadParameters(t *testing.T) {
	host := openHost(Item{ID: "item-1", Bounds: Rect{Width: 100}})
	provider := NewProvider(host)

	result, _ := provider.Execute(context.Background(), "canvas.wave", map[string]interface{}{
		"amplitude": float64(-1),
	}, nil)
	assert.False(t, result.Success)
	assert.Contains(t, result.Reason(), "positive")
}

func TestGoldFrameAddsLayerPathAndGradient(t *testing.T) {
	host := openHost(Item{ID: "item-1", Bounds: Rect{Left: 10, Top: 10, Width: 200, Height: 100}})
	provider := NewProvider(host)

	result, err := provider.Execute(context.Background(), "canvas.gold_frame", map[string]interface{}{
		"stops": float64(7),
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success, result.Reason())

	layerID := result.Data["layer"].(string)
	pathID := result.Data["path"].(string)
	assert.Equal(t, "Gold Frame", host.Layers()[layerID])

	g, ok := host.Gradient(pathID)
	require.True(t, ok)
	require.Len(t, g.Stops, 7)
	assert.Equal(t, 0.0, g.Stops[0].Offset)
	assert.Equal(t, 1.0, g.Stops[6].Offset)
	// Edges are dark, the center carries the highlight.
	assert.Equal(t, goldDark, g.Stops[0].Color)
	assert.Equal(t, goldLight, g.Stops[3].Color)
	assert.Equal(t, goldDark, g.Stops[6].Color)
}

func TestAddLayerRequiresName(t *testing.T) {
	host := openHost()
	provider := NewProvider(host)

	result, _ := provider.Execute(context.Background(), "canvas.layer", map[string]interface{}{}, nil)
	assert.False(t, result.Success)

	result, _ = provider.Execute(context.Background(), "canvas.layer", map[string]interface{}{
		"name": "Sketch",
	}, nil)
	require.True(t, result.Success, result.Reason())
	layerID := result.Data["layer"].(string)
	assert.Equal(t, "Sketch", host.Layers()[layerID])
}

func TestSelectionInfo(t *testing.T) {
	host := openHost(
		Item{ID: "item-1", Bounds: Rect{Width: 10, Height: 10}},
		Item{ID: "item-2", Bounds: Rect{Left: 20, Width: 10, Height: 10}},
	)
	provider := NewProvider(host)

	result, err := provider.Execute(context.Background(), "canvas.selection", nil, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 2, result.Data["count"])
}

func TestUnknownTool(t *testing.T) {
	provider := NewProvider(openHost())
	result, _ := provider.Execute(context.Background(), "canvas.sparkle", nil, nil)
	assert.False(t, result.Success)
	assert.Contains(t, result.Reason(), "unknown tool")
}

func TestWaveOffsets(t *testing.T) {
	offsets := waveOffsets(100, 10, 25, 0)
	require.NotEmpty(t, offsets)
	// 4 periods at 16 samples each, plus the endpoint.
	assert.Len(t, offsets, 65)
	assert.InDelta(t, 0, offsets[0], 1e-9)

	assert.Nil(t, waveOffsets(0, 10, 25, 0))
	assert.Nil(t, waveOffsets(100, 10, 0, 0))
}

func TestGoldStopsClampedToThree(t *testing.T) {
	stops := goldStops(1)
	require.Len(t, stops, 3)
	assert.Equal(t, goldDark, stops[0].Color)
	assert.Equal(t, goldLight, stops[1].Color)
	assert.Equal(t, goldDark, stops[2].Color)
}

func TestUnionBounds(t *testing.T) {
	got := unionBounds([]Item{
		{Bounds: Rect{Left: 0, Top: 0, Width: 50, Height: 50}},
		{Bounds: Rect{Left: 100, Top: 20, Width: 50, Height: 60}},
	})
	assert.Equal(t, Rect{Left: 0, Top: 0, Width: 150, Height: 80}, got)
	assert.Equal(t, Rect{}, unionBounds(nil))
}
