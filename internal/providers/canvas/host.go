package canvas

import (
	"fmt"
	"sync"
)

// Host is the minimal surface of the external design studio the bridge
// needs. The studio owns the document and the selection; the bridge only
// queries state and requests mutations, trusting the host to apply each
// call atomically.
type Host interface {
	DocumentOpen() bool
	Selection() (Selection, error)
	AddLayer(name string) (string, error)
	AddFramePath(layerID string, spec FrameSpec) (string, error)
	ApplyGradient(targetID string, g Gradient) error
	ApplyDistortion(targetID string, d Distortion) error
}

// Rect is an item bounding box in document coordinates.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Item is a selected document element.
type Item struct {
	ID     string `json:"id"`
	Bounds Rect   `json:"bounds"`
}

// Selection is the host's current selection snapshot.
type Selection struct {
	Items []Item `json:"items"`
}

// Color is an opaque RGB fill color.
type Color struct {
	R, G, B uint8
}

// GradientStop is a color stop at a normalized offset in [0,1].
type GradientStop struct {
	Offset float64 `json:"offset"`
	Color  Color   `json:"color"`
}

// Gradient is a linear gradient fill request.
type Gradient struct {
	Angle float64        `json:"angle"`
	Stops []GradientStop `json:"stops"`
}

// Distortion is a sampled wave displacement along an item's width.
type Distortion struct {
	Offsets    []float64 `json:"offsets"`
	Wavelength float64   `json:"wavelength"`
	Phase      float64   `json:"phase"`
}

// FrameSpec describes a rectangular frame path around some bounds.
type FrameSpec struct {
	Bounds    Rect    `json:"bounds"`
	Inset     float64 `json:"inset"`
	Thickness float64 `json:"thickness"`
}

// MemoryHost is an in-memory Host used for dry runs and tests. It records
// every mutation instead of rendering anything.
type MemoryHost struct {
	mu          sync.Mutex
	open        bool
	selection   Selection
	layers      map[string]string
	paths       map[string]FrameSpec
	gradients   map[string]Gradient
	distortions map[string]Distortion
	nextID      int
}

// NewMemoryHost creates a memory host with no open document.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		layers:      make(map[string]string),
		paths:       make(map[string]FrameSpec),
		gradients:   make(map[string]Gradient),
		distortions: make(map[string]Distortion),
	}
}

// Open marks a document as open.
func (h *MemoryHost) Open() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.open = true
}

// SetSelection replaces the current selection.
func (h *MemoryHost) SetSelection(items ...Item) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.selection = Selection{Items: items}
}

func (h *MemoryHost) DocumentOpen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open
}

func (h *MemoryHost) Selection() (Selection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.open {
		return Selection{}, fmt.Errorf("no document open")
	}
	return h.selection, nil
}

func (h *MemoryHost) AddLayer(name string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.open {
		return "", fmt.Errorf("no document open")
	}
	h.nextID++
	id := fmt.Sprintf("layer-%d", h.nextID)
	h.layers[id] = name
	return id, nil
}

func (h *MemoryHost) AddFramePath(layerID string, spec FrameSpec) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.layers[layerID]; !ok {
		return "", fmt.Errorf("layer not found: %s", layerID)
	}
	h.nextID++
	id := fmt.Sprintf("path-%d", h.nextID)
	h.paths[id] = spec
	return id, nil
}

func (h *MemoryHost) ApplyGradient(targetID string, g Gradient) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.paths[targetID]; !ok {
		return fmt.Errorf("path not found: %s", targetID)
	}
	h.gradients[targetID] = g
	return nil
}

func (h *MemoryHost) ApplyDistortion(targetID string, d Distortion) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.distortions[targetID] = d
	return nil
}

// Layers returns recorded layer names by ID.
func (h *MemoryHost) Layers() map[string]string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]string, len(h.layers))
	for k, v := range h.layers {
		out[k] = v
	}
	return out
}

// Gradient returns the gradient recorded for a path, if any.
func (h *MemoryHost) Gradient(pathID string) (Gradient, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	g, ok := h.gradients[pathID]
	return g, ok
}

// Distortion returns the distortion recorded for an item, if any.
func (h *MemoryHost) Distortion(itemID string) (Distortion, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	d, ok := h.distortions[itemID]
	return d, ok
}
