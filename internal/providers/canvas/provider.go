package canvas

import (
	"context"
	"fmt"

	"github.com/mosaicdesk/bridge/internal/types"
)

// Provider adapts the external design-studio host into capabilities.
type Provider struct {
	host Host
}

// NewProvider creates a canvas provider over a host connection.
func NewProvider(host Host) *Provider {
	return &Provider{host: host}
}

// Definition returns provider metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "canvas",
		Name:        "Canvas Effects",
		Description: "Visual effects and structure mutations on the studio document",
		Category:    types.CategoryCanvas,
		Capabilities: []string{
			"wave_distortion",
			"frame_decoration",
			"layer_management",
			"selection_query",
		},
		Tools: []types.Tool{
			{
				ID:          "canvas.wave",
				Name:        "Wave Distortion",
				Description: "Apply a sine wave distortion to every selected item",
				Parameters: []types.Parameter{
					{Name: "amplitude", Type: "number", Description: "Peak displacement in points", Required: false},
					{Name: "wavelength", Type: "number", Description: "Wave period in points", Required: false},
					{Name: "phase", Type: "number", Description: "Phase offset in radians", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "canvas.gold_frame",
				Name:        "Gold Frame",
				Description: "Add a gradient gold frame around the selection on a new layer",
				Parameters: []types.Parameter{
					{Name: "inset", Type: "number", Description: "Gap between selection and frame", Required: false},
					{Name: "thickness", Type: "number", Description: "Frame stroke thickness", Required: false},
					{Name: "stops", Type: "number", Description: "Gradient stop count", Required: false},
					{Name: "angle", Type: "number", Description: "Gradient angle in degrees", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "canvas.layer",
				Name:        "Add Layer",
				Description: "Add a named layer to the document",
				Parameters: []types.Parameter{
					{Name: "name", Type: "string", Description: "Layer name", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "canvas.selection",
				Name:        "Selection Info",
				Description: "Describe the current selection",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// Conditions declares the ambient host state each tool requires.
func (p *Provider) Conditions(toolID string) []types.Condition {
	document := types.Condition{
		ID:   "document",
		Hint: "open a document in the studio first",
		Check: func(ctx context.Context, ictx *types.Context) error {
			if !p.host.DocumentOpen() {
				return fmt.Errorf("no document open")
			}
			return nil
		},
	}
	selection := types.Condition{
		ID:   "selection",
		Hint: "select at least one item first",
		Check: func(ctx context.Context, ictx *types.Context) error {
			sel, err := p.host.Selection()
			if err != nil {
				return err
			}
			if len(sel.Items) == 0 {
				return fmt.Errorf("selection is empty")
			}
			return nil
		},
	}

	switch toolID {
	case "canvas.wave", "canvas.gold_frame":
		return []types.Condition{document, selection}
	case "canvas.layer", "canvas.selection":
		return []types.Condition{document}
	default:
		return nil
	}
}

// Execute runs a canvas operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, ictx *types.Context) (*types.Result, error) {
	switch toolID {
	case "canvas.wave":
		return p.wave(params)
	case "canvas.gold_frame":
		return p.goldFrame(params)
	case "canvas.layer":
		return p.addLayer(params)
	case "canvas.selection":
		return p.selectionInfo()
	default:
		return types.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) wave(params map[string]interface{}) (*types.Result, error) {
	amplitude := numberOrDefault(params, "amplitude", 10)
	wavelength := numberOrDefault(params, "wavelength", 40)
	phase := numberOrDefault(params, "phase", 0)

	if amplitude <= 0 || wavelength <= 0 {
		return types.Failure("amplitude and wavelength must be positive")
	}

	sel, err := p.host.Selection()
	if err != nil {
		return types.Failure(fmt.Sprintf("selection query failed: %v", err))
	}

	distorted := 0
	for _, item := range sel.Items {
		offsets := waveOffsets(item.Bounds.Width, amplitude, wavelength, phase)
		if len(offsets) == 0 {
			continue
		}
		d := Distortion{Offsets: offsets, Wavelength: wavelength, Phase: phase}
		if err := p.host.ApplyDistortion(item.ID, d); err != nil {
			return types.Failure(fmt.Sprintf("distortion failed on %s: %v", item.ID, err))
		}
		distorted++
	}

	return types.Success(map[string]interface{}{
		"distorted":  distorted,
		"amplitude":  amplitude,
		"wavelength": wavelength,
	})
}

func (p *Provider) goldFrame(params map[string]interface{}) (*types.Result, error) {
	inset := numberOrDefault(params, "inset", 8)
	thickness := numberOrDefault(params, "thickness", 12)
	stopCount := int(numberOrDefault(params, "stops", 5))
	angle := numberOrDefault(params, "angle", 90)

	if thickness <= 0 {
		return types.Failure("thickness must be positive")
	}

	sel, err := p.host.Selection()
	if err != nil {
		return types.Failure(fmt.Sprintf("selection query failed: %v", err))
	}

	layerID, err := p.host.AddLayer("Gold Frame")
	if err != nil {
		return types.Failure(fmt.Sprintf("layer creation failed: %v", err))
	}

	spec := FrameSpec{Bounds: unionBounds(sel.Items), Inset: inset, Thickness: thickness}
	pathID, err := p.host.AddFramePath(layerID, spec)
	if err != nil {
		return types.Failure(fmt.Sprintf("frame path failed: %v", err))
	}

	gradient := Gradient{Angle: angle, Stops: goldStops(stopCount)}
	if err := p.host.ApplyGradient(pathID, gradient); err != nil {
		return types.Failure(fmt.Sprintf("gradient fill failed: %v", err))
	}

	return types.Success(map[string]interface{}{
		"layer": layerID,
		"path":  pathID,
		"stops": len(gradient.Stops),
	})
}

func (p *Provider) addLayer(params map[string]interface{}) (*types.Result, error) {
	name, err := types.GetString(params, "name", true)
	if err != nil {
		return types.Failure(err.Error())
	}

	layerID, err := p.host.AddLayer(name)
	if err != nil {
		return types.Failure(fmt.Sprintf("layer creation failed: %v", err))
	}

	return types.Success(map[string]interface{}{"layer": layerID, "name": name})
}

func (p *Provider) selectionInfo() (*types.Result, error) {
	sel, err := p.host.Selection()
	if err != nil {
		return types.Failure(fmt.Sprintf("selection query failed: %v", err))
	}

	items := make([]interface{}, 0, len(sel.Items))
	for _, it := range sel.Items {
		items = append(items, map[string]interface{}{
			"id":     it.ID,
			"bounds": it.Bounds,
		})
	}

	return types.Success(map[string]interface{}{
		"count": len(sel.Items),
		"items": items,
	})
}

func numberOrDefault(params map[string]interface{}, key string, def float64) float64 {
	v, err := types.GetNumber(params, key, false)
	if err != nil || params[key] == nil {
		return def
	}
	return v
}
