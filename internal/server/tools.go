package server

import "github.com/ironsheep/palette-tools-mcp/internal/palette"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func colorProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"pattern":     "^#?[0-9a-fA-F]{6}$",
	}
}

func schemeProp(description string) map[string]interface{} {
	var names []string
	for _, s := range palette.Schemes() {
		names = append(names, s.String())
	}
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"enum":        names,
	}
}

var (
	pathProp = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
	optionalPathProp = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to an image file. Omit to use the image loaded with image_load",
	}
	indexProp = map[string]interface{}{
		"type":        "integer",
		"description": "Zero-based position in the picked colour list",
		"minimum":     0,
	}
	rectProp = map[string]interface{}{
		"type":        "object",
		"description": "On-screen bounding box of the drawn image",
		"properties": map[string]interface{}{
			"left":   map[string]interface{}{"type": "number"},
			"top":    map[string]interface{}{"type": "number"},
			"width":  map[string]interface{}{"type": "number"},
			"height": map[string]interface{}{"type": "number"},
		},
	}
	regionProp = map[string]interface{}{
		"type":        "object",
		"description": "Optional region to analyze (default: entire image)",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
)

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Colour Operations
		{
			Name:        "color_info",
			Description: "Describe a hex colour: canonical hex, RGB, HSL and the nearest CSS colour name. Returns null for text that is not a 6-digit hex colour.",
			InputSchema: objectSchema(map[string]interface{}{
				"color": colorProp("Hex colour, with or without leading #"),
			}, "color"),
		},
		{
			Name:        "color_rotate_hue",
			Description: "Rotate a colour around the HSL hue wheel by the given number of degrees, keeping saturation and lightness.",
			InputSchema: objectSchema(map[string]interface{}{
				"color": colorProp("Hex colour to rotate"),
				"degrees": map[string]interface{}{
					"type":        "number",
					"description": "Degrees to rotate; negative values rotate backwards",
				},
			}, "color", "degrees"),
		},
		{
			Name:        "color_complementary",
			Description: "Return the colour opposite on the hue wheel (hue + 180 degrees).",
			InputSchema: objectSchema(map[string]interface{}{
				"color": colorProp("Hex colour"),
			}, "color"),
		},
		{
			Name:        "color_lighten",
			Description: "Raise HSL lightness by amount*100 percentage points, clamped at white. Invalid colours are returned unchanged.",
			InputSchema: objectSchema(map[string]interface{}{
				"color": colorProp("Hex colour"),
				"amount": map[string]interface{}{
					"type":        "number",
					"description": "Fraction in [0,1]. Default 0.1",
					"default":     0.1,
				},
			}, "color"),
		},
		{
			Name:        "color_darken",
			Description: "Lower HSL lightness by amount*100 percentage points, clamped at black. Invalid colours are returned unchanged.",
			InputSchema: objectSchema(map[string]interface{}{
				"color": colorProp("Hex colour"),
				"amount": map[string]interface{}{
					"type":        "number",
					"description": "Fraction in [0,1]. Default 0.1",
					"default":     0.1,
				},
			}, "color"),
		},

		// Palette Operations
		{
			Name:        "palette_generate",
			Description: "Generate a colour palette from a base colour and scheme. Defaults to the session's base colour and scheme. Unknown schemes return just the base colour.",
			InputSchema: objectSchema(map[string]interface{}{
				"color":  colorProp("Base hex colour (default: session base)"),
				"scheme": schemeProp("Colour scheme (default: session scheme)"),
			}),
		},
		{
			Name:        "palette_schemes",
			Description: "List the supported colour schemes with their palette size and a short explanation.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "palette_presets",
			Description: "List the built-in named palettes.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "palette_random",
			Description: "Pick a random suggested base colour, make it the session base and return the new session state.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},

		{
			Name:        "palette_image",
			Description: "Render a palette as a PNG strip of square swatches labelled with their hex values. Renders the given colours, or the palette generated from color and scheme (defaulting to the session).",
			InputSchema: objectSchema(map[string]interface{}{
				"colors": map[string]interface{}{
					"type":        "array",
					"description": "Hex colours to render, left to right",
					"items":       map[string]interface{}{"type": "string"},
				},
				"color":  colorProp("Base colour when colors is omitted (default: session base)"),
				"scheme": schemeProp("Scheme when colors is omitted (default: session scheme)"),
				"size": map[string]interface{}{
					"type":        "integer",
					"description": "Swatch side in pixels. Default 48; labels need at least 31",
					"default":     48,
				},
				"labels": map[string]interface{}{
					"type":        "boolean",
					"description": "Print hex values on the swatches. Default true",
					"default":     true,
				},
			}),
		},
		// Session
		{
			Name:        "session_state",
			Description: "Return the session's base colour, scheme, derived palette, loaded image size and number of picked colours.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "session_set_base",
			Description: "Set the session's base colour and/or scheme. Invalid values are rejected and leave the session unchanged.",
			InputSchema: objectSchema(map[string]interface{}{
				"color":  colorProp("New base hex colour"),
				"scheme": schemeProp("New colour scheme"),
			}),
		},
		{
			Name:        "session_apply_preset",
			Description: "Apply a named preset: its first colour becomes the base and its scheme becomes the session scheme.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Preset name, case-insensitive (see palette_presets)",
				},
			}, "name"),
		},

		// Image Operations
		{
			Name:        "image_load",
			Description: "Load an image from a file path or inline base64/data URL, scale it down to the display bounds and make it the surface colours are picked from. Clears previously picked colours.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp,
				"data": map[string]interface{}{
					"type":        "string",
					"description": "Image bytes as base64 or a data:image/...;base64, URL",
				},
			}),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp,
			}, "path"),
		},
		{
			Name:        "image_pick_color",
			Description: "Pick the colour under a pointer on the loaded image. Coordinates are viewport units mapped through rect, the box the image is drawn in; without rect they are image pixels. Out-of-range positions read the nearest edge pixel. Recording a pick adds it to the picked list and makes it the base colour. Returns picked: null when no image is loaded.",
			InputSchema: objectSchema(map[string]interface{}{
				"x": map[string]interface{}{"type": "number", "description": "Pointer X in viewport units"},
				"y": map[string]interface{}{"type": "number", "description": "Pointer Y in viewport units"},
				"rect": rectProp,
				"record": map[string]interface{}{
					"type":        "boolean",
					"description": "Record the pick (default true). False only previews the colour",
					"default":     true,
				},
			}, "x", "y"),
		},
		{
			Name:        "image_magnify",
			Description: "Return an enlarged PNG (base64) of the pixels around a pointer on the loaded image, plus the colour directly under it. Coordinates are mapped as in image_pick_color. Nothing is recorded.",
			InputSchema: objectSchema(map[string]interface{}{
				"x":    map[string]interface{}{"type": "number", "description": "Pointer X in viewport units"},
				"y":    map[string]interface{}{"type": "number", "description": "Pointer Y in viewport units"},
				"rect": rectProp,
				"radius": map[string]interface{}{
					"type":        "integer",
					"description": "Pixels on each side of the centre. Default 5",
					"default":     5,
				},
				"zoom": map[string]interface{}{
					"type":        "integer",
					"description": "Scale factor; each pixel becomes a zoom x zoom block. Default 8",
					"default":     8,
				},
			}, "x", "y"),
		},
		{
			Name:        "image_picked_colors",
			Description: "List colours picked from the loaded image, oldest first.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "image_remove_picked",
			Description: "Remove a colour from the picked list.",
			InputSchema: objectSchema(map[string]interface{}{
				"index": indexProp,
			}, "index"),
		},
		{
			Name:        "image_use_picked",
			Description: "Make a previously picked colour the session base colour.",
			InputSchema: objectSchema(map[string]interface{}{
				"index": indexProp,
			}, "index"),
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color at a specific pixel coordinate. Returns hex, RGB, alpha and HSL values.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": optionalPathProp,
				"x":    map[string]interface{}{"type": "integer", "description": "X coordinate"},
				"y":    map[string]interface{}{"type": "integer", "description": "Y coordinate"},
			}, "x", "y"),
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colors at multiple points in one call, each with an optional label.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": optionalPathProp,
				"points": map[string]interface{}{
					"type":        "array",
					"description": "Array of points to sample",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x":     map[string]interface{}{"type": "integer"},
							"y":     map[string]interface{}{"type": "integer"},
							"label": map[string]interface{}{"type": "string"},
						},
						"required": []string{"x", "y"},
					},
				},
			}, "points"),
		},
		{
			Name:        "image_dominant_colors",
			Description: "Extract the most common colors from an image or region. Near-identical shades are merged. With apply, the most common colour becomes the session base.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": optionalPathProp,
				"count": map[string]interface{}{
					"type":        "integer",
					"description": "Number of colors to return (default from configuration, normally 5)",
				},
				"region": regionProp,
				"merge_distance": map[string]interface{}{
					"type":        "number",
					"description": "CIEDE2000 distance below which shades merge; 0 disables merging",
				},
				"apply": map[string]interface{}{
					"type":        "boolean",
					"description": "Set the session base to the most common colour",
				},
			}),
		},
		{
			Name:        "image_average_color",
			Description: "Average colour of an image or region. With apply, the average becomes the session base.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":   optionalPathProp,
				"region": regionProp,
				"apply": map[string]interface{}{
					"type":        "boolean",
					"description": "Set the session base to the average colour",
				},
			}),
		},
		{
			Name:        "image_compare_regions",
			Description: "Compare two regions pixel by pixel using CIEDE2000. Reports each region's average colour, the distance between the averages and the share of matching pixels.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":    optionalPathProp,
				"region1": regionProp,
				"region2": regionProp,
				"tolerance": map[string]interface{}{
					"type":        "number",
					"description": "CIEDE2000 distance above which a pixel pair counts as different. Default 0.02",
					"default":     0.02,
				},
			}, "region1", "region2"),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
