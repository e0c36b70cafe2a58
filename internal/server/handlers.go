package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/palette-tools-mcp/internal/colour"
	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
	"github.com/ironsheep/palette-tools-mcp/internal/palette"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "palette_generate", "image_pick_color").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	log := s.log.WithField("tool", params.Name)
	log.Debug("tool call")

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.Warn(err.Error())
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Colour Operations
	case "color_info":
		return s.handleColorInfo(args)
	case "color_rotate_hue":
		return s.handleColorRotateHue(args)
	case "color_complementary":
		return s.handleColorComplementary(args)
	case "color_lighten":
		return s.handleColorShift(args, colour.Lighten)
	case "color_darken":
		return s.handleColorShift(args, colour.Darken)

	// Palette Operations
	case "palette_generate":
		return s.handlePaletteGenerate(args)
	case "palette_schemes":
		return s.handlePaletteSchemes()
	case "palette_presets":
		return palette.Presets(), nil
	case "palette_random":
		return s.handlePaletteRandom()
	case "palette_image":
		return s.handlePaletteImage(args)

	// Session
	case "session_state":
		return s.session.Snapshot(), nil
	case "session_set_base":
		return s.handleSessionSetBase(args)
	case "session_apply_preset":
		return s.handleSessionApplyPreset(args)

	// Image Operations
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_pick_color":
		return s.handleImagePickColor(args)
	case "image_magnify":
		return s.handleImageMagnify(args)
	case "image_picked_colors":
		return pickedResult{Colors: s.session.Picked()}, nil
	case "image_remove_picked":
		return s.handleImageRemovePicked(args)
	case "image_use_picked":
		return s.handleImageUsePicked(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)
	case "image_average_color":
		return s.handleImageAverageColor(args)
	case "image_compare_regions":
		return s.handleImageCompareRegions(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Colour Handlers ===

type colorArgs struct {
	Color string `json:"color"`
}

func (s *Server) handleColorInfo(args json.RawMessage) (interface{}, error) {
	var a colorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	rgb, ok := colour.HexToRGB(a.Color)
	if !ok {
		// Unparseable input is answered with null rather than an error.
		return nil, nil
	}
	return colour.Info(rgb), nil
}

type colorResult struct {
	Input string `json:"input"`
	Color string `json:"color"`
}

type colorRotateArgs struct {
	Color   string  `json:"color"`
	Degrees float64 `json:"degrees"`
}

type colorRotateResult struct {
	Input   string  `json:"input"`
	Degrees float64 `json:"degrees"`
	Color   string  `json:"color"`
}

func (s *Server) handleColorRotateHue(args json.RawMessage) (interface{}, error) {
	var a colorRotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	rgb, err := colour.ParseHex(a.Color)
	if err != nil {
		return nil, err
	}
	return colorRotateResult{
		Input:   a.Color,
		Degrees: a.Degrees,
		Color:   colour.RGBToHex(colour.RotateHue(rgb, a.Degrees)),
	}, nil
}

func (s *Server) handleColorComplementary(args json.RawMessage) (interface{}, error) {
	var a colorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	rgb, err := colour.ParseHex(a.Color)
	if err != nil {
		return nil, err
	}
	return colorResult{Input: a.Color, Color: colour.RGBToHex(colour.Complementary(rgb))}, nil
}

type colorShiftArgs struct {
	Color  string   `json:"color"`
	Amount *float64 `json:"amount"`
}

type colorShiftResult struct {
	Input  string  `json:"input"`
	Amount float64 `json:"amount"`
	Color  string  `json:"color"`
}

// handleColorShift serves lighten and darken. Invalid colours are echoed
// back unchanged.
func (s *Server) handleColorShift(args json.RawMessage, shift func(string, float64) string) (interface{}, error) {
	var a colorShiftArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	amount := 0.1
	if a.Amount != nil {
		amount = *a.Amount
	}
	return colorShiftResult{Input: a.Color, Amount: amount, Color: shift(a.Color, amount)}, nil
}

// === Palette Handlers ===

type paletteGenerateArgs struct {
	Color  string `json:"color"`
	Scheme string `json:"scheme"`
}

type paletteResult struct {
	Base   string   `json:"base"`
	Scheme string   `json:"scheme"`
	Colors []string `json:"colors"`
}

func (s *Server) handlePaletteGenerate(args json.RawMessage) (interface{}, error) {
	var a paletteGenerateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = s.session.Base()
	}
	if a.Scheme == "" {
		a.Scheme = s.session.Scheme().String()
	}
	return paletteResult{
		Base:   a.Color,
		Scheme: a.Scheme,
		Colors: palette.GenerateNamed(a.Color, a.Scheme),
	}, nil
}

type schemeInfo struct {
	Name        string `json:"name"`
	Size        int    `json:"size"`
	Description string `json:"description"`
}

func (s *Server) handlePaletteSchemes() (interface{}, error) {
	all := palette.Schemes()
	out := make([]schemeInfo, len(all))
	for i, sc := range all {
		out[i] = schemeInfo{Name: sc.String(), Size: sc.Size(), Description: palette.Description(sc)}
	}
	return out, nil
}

func (s *Server) handlePaletteRandom() (interface{}, error) {
	if err := s.session.SetBase(palette.RandomBase(s.rng)); err != nil {
		return nil, err
	}
	return s.session.Snapshot(), nil
}

// === Session Handlers ===

type paletteImageArgs struct {
	Colors []string `json:"colors"`
	Color  string   `json:"color"`
	Scheme string   `json:"scheme"`
	Size   int      `json:"size"`
	Labels *bool    `json:"labels"`
}

func (s *Server) handlePaletteImage(args json.RawMessage) (interface{}, error) {
	var a paletteImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	colors := a.Colors
	if len(colors) == 0 {
		if a.Color == "" {
			a.Color = s.session.Base()
		}
		if a.Scheme == "" {
			a.Scheme = s.session.Scheme().String()
		}
		colors = palette.GenerateNamed(a.Color, a.Scheme)
	}
	if a.Size == 0 {
		a.Size = 48
	}
	labels := a.Labels == nil || *a.Labels
	return imaging.PaletteStrip(colors, a.Size, labels)
}

type sessionSetBaseArgs struct {
	Color  string `json:"color"`
	Scheme string `json:"scheme"`
}

func (s *Server) handleSessionSetBase(args json.RawMessage) (interface{}, error) {
	var a sessionSetBaseArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" && a.Scheme == "" {
		return nil, errors.New("color or scheme is required")
	}

	// Validate both before changing either.
	var scheme palette.Scheme
	if a.Scheme != "" {
		var err error
		if scheme, err = palette.ParseScheme(a.Scheme); err != nil {
			return nil, err
		}
	}
	if a.Color != "" {
		if err := s.session.SetBase(a.Color); err != nil {
			return nil, err
		}
	}
	if a.Scheme != "" {
		s.session.SetScheme(scheme)
	}
	return s.session.Snapshot(), nil
}

type sessionApplyPresetArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleSessionApplyPreset(args json.RawMessage) (interface{}, error) {
	var a sessionApplyPresetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if _, err := s.session.ApplyPreset(a.Name); err != nil {
		return nil, err
	}
	return s.session.Snapshot(), nil
}

// === Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
	Data string `json:"data"`
}

type imageLoadResult struct {
	Source   string              `json:"source"`
	Info     *imaging.ImageInfo  `json:"info,omitempty"`
	Original imaging.Dimensions  `json:"original"`
	Surface  imaging.Dimensions  `json:"surface"`
	Rect     imaging.DisplayRect `json:"rect"`
}

// handleImageLoad decodes an image from a path or inline data, scales it to
// the configured display bounds and makes it the session's pick surface.
func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var (
		img    image.Image
		info   *imaging.ImageInfo
		source string
		err    error
	)
	switch {
	case a.Path != "" && a.Data != "":
		return nil, errors.New("give either path or data, not both")
	case a.Path != "":
		if info, err = imaging.LoadImageInfo(s.cache, a.Path); err != nil {
			return nil, err
		}
		if img, err = s.cache.Load(a.Path); err != nil {
			return nil, err
		}
		source = a.Path
	case a.Data != "":
		if img, err = imaging.DecodeDataURL(a.Data); err != nil {
			return nil, err
		}
		source = "inline"
	default:
		return nil, errors.New("path or data is required")
	}

	fitted := imaging.FitToDisplay(img, s.cfg.Display.MaxWidth, s.cfg.Display.MaxHeight)
	surface := imaging.NewSurface(fitted)
	s.session.LoadSurface(surface)

	dims := surface.Dimensions()
	s.log.WithFields(map[string]any{
		"source": source,
		"width":  dims.Width,
		"height": dims.Height,
	}).Info("image loaded")

	b := img.Bounds()
	return imageLoadResult{
		Source:   source,
		Info:     info,
		Original: imaging.Dimensions{Width: b.Dx(), Height: b.Dy()},
		Surface:  dims,
		Rect:     imaging.DisplayRect{Width: float64(dims.Width), Height: float64(dims.Height)},
	}, nil
}

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imagePickColorArgs struct {
	X      float64              `json:"x"`
	Y      float64              `json:"y"`
	Rect   *imaging.DisplayRect `json:"rect"`
	Record *bool                `json:"record"`
}

type pickResult struct {
	Picked  *imaging.PickedColor `json:"picked"`
	Base    string               `json:"base"`
	Palette []string             `json:"palette"`
}

// handleImagePickColor samples the session surface. Without a rect the
// coordinates are taken as buffer pixels.
func (s *Server) handleImagePickColor(args json.RawMessage) (interface{}, error) {
	var a imagePickColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	var rect imaging.DisplayRect
	if a.Rect != nil {
		rect = *a.Rect
	}
	record := a.Record == nil || *a.Record

	var (
		c  imaging.PickedColor
		ok bool
	)
	if record {
		c, ok = s.session.Pick(rect, a.X, a.Y)
	} else {
		c, ok = s.session.Peek(rect, a.X, a.Y)
	}

	res := pickResult{Base: s.session.Base(), Palette: s.session.Palette()}
	if ok {
		res.Picked = &c
	}
	return res, nil
}

type imageMagnifyArgs struct {
	X      float64              `json:"x"`
	Y      float64              `json:"y"`
	Rect   *imaging.DisplayRect `json:"rect"`
	Radius *int                 `json:"radius"`
	Zoom   int                  `json:"zoom"`
}

func (s *Server) handleImageMagnify(args json.RawMessage) (interface{}, error) {
	var a imageMagnifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	var rect imaging.DisplayRect
	if a.Rect != nil {
		rect = *a.Rect
	}
	radius := 5
	if a.Radius != nil {
		radius = *a.Radius
	}
	if a.Zoom == 0 {
		a.Zoom = 8
	}
	return imaging.Magnify(s.session.Surface(), rect, a.X, a.Y, radius, a.Zoom)
}

type pickedResult struct {
	Colors []imaging.PickedColor `json:"colors"`
}

type indexArgs struct {
	Index int `json:"index"`
}

func (s *Server) handleImageRemovePicked(args json.RawMessage) (interface{}, error) {
	var a indexArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.RemovePicked(a.Index); err != nil {
		return nil, err
	}
	return pickedResult{Colors: s.session.Picked()}, nil
}

func (s *Server) handleImageUsePicked(args json.RawMessage) (interface{}, error) {
	var a indexArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	c, err := s.session.UsePicked(a.Index)
	if err != nil {
		return nil, err
	}
	return pickResult{Picked: &c, Base: s.session.Base(), Palette: s.session.Palette()}, nil
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.imageFor(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.imageFor(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(img, points)
}

type imageDominantColorsArgs struct {
	Path          string          `json:"path"`
	Count         int             `json:"count"`
	Region        *imaging.Region `json:"region"`
	MergeDistance *float64        `json:"merge_distance"`
	Apply         bool            `json:"apply"`
}

type dominantColorsResult struct {
	*imaging.DominantColorsResult
	Base    string   `json:"base,omitempty"`
	Palette []string `json:"palette,omitempty"`
}

// handleImageDominantColors extracts the most frequent colours. With apply
// set, the most frequent colour becomes the session base.
func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = s.cfg.Dominant.Count
	}
	merge := s.cfg.Dominant.MergeDistance
	if a.MergeDistance != nil {
		merge = *a.MergeDistance
	}

	img, err := s.imageFor(a.Path)
	if err != nil {
		return nil, err
	}
	dc, err := imaging.DominantColors(img, a.Count, a.Region, merge)
	if err != nil {
		return nil, err
	}

	res := dominantColorsResult{DominantColorsResult: dc}
	if a.Apply && len(dc.Colors) > 0 {
		if err := s.session.SetBase(dc.Colors[0].Hex); err != nil {
			return nil, err
		}
		res.Base = s.session.Base()
		res.Palette = s.session.Palette()
	}
	return res, nil
}

// imageFor loads the image at path, or the session surface when path is
// empty.
func (s *Server) imageFor(path string) (image.Image, error) {
	if path != "" {
		return s.cache.Load(path)
	}
	surface := s.session.Surface()
	if surface == nil {
		return nil, imaging.ErrNoSurface
	}
	return surface.Image(), nil
}

type imageAverageColorArgs struct {
	Path   string          `json:"path"`
	Region *imaging.Region `json:"region"`
	Apply  bool            `json:"apply"`
}

type averageColorResult struct {
	*imaging.AverageColorResult
	Base    string   `json:"base,omitempty"`
	Palette []string `json:"palette,omitempty"`
}

func (s *Server) handleImageAverageColor(args json.RawMessage) (interface{}, error) {
	var a imageAverageColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.imageFor(a.Path)
	if err != nil {
		return nil, err
	}
	avg, err := imaging.AverageColor(img, a.Region)
	if err != nil {
		return nil, err
	}

	res := averageColorResult{AverageColorResult: avg}
	if a.Apply {
		if err := s.session.SetBase(avg.Color.Hex); err != nil {
			return nil, err
		}
		res.Base = s.session.Base()
		res.Palette = s.session.Palette()
	}
	return res, nil
}

type imageCompareRegionsArgs struct {
	Path      string          `json:"path"`
	Region1   *imaging.Region `json:"region1"`
	Region2   *imaging.Region `json:"region2"`
	Tolerance *float64        `json:"tolerance"`
}

func (s *Server) handleImageCompareRegions(args json.RawMessage) (interface{}, error) {
	var a imageCompareRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Region1 == nil || a.Region2 == nil {
		return nil, fmt.Errorf("region1 and region2 are required")
	}
	tolerance := 0.02
	if a.Tolerance != nil {
		tolerance = *a.Tolerance
	}
	img, err := s.imageFor(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CompareRegions(img, *a.Region1, *a.Region2, tolerance)
}
