// Package server implements the MCP (Model Context Protocol) server for palette tools.
//
// The server exposes colour conversion, palette generation and image colour
// picking over JSON-RPC 2.0. It keeps one palette session: a base colour, a
// scheme, the image being picked from and the colours picked so far.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// Logs go to the configured logger, never to stdout.
//
// # Available Tools
//
// Colour:
//   - color_info, color_rotate_hue, color_complementary
//   - color_lighten, color_darken
//
// Palette:
//   - palette_generate: Derive a palette from a base colour and scheme
//   - palette_schemes, palette_presets, palette_random
//   - palette_image: Render a palette as a PNG strip
//
// Session:
//   - session_state, session_set_base, session_apply_preset
//
// Image:
//   - image_load: Load a file or pasted data as the pick surface
//   - image_pick_color: Map a pointer position to a pixel colour
//   - image_magnify: Enlarged view of the pixels around a pointer
//   - image_picked_colors, image_remove_picked, image_use_picked
//   - image_dimensions, image_sample_color, image_sample_colors_multi
//   - image_dominant_colors: Seed a palette from an image
//   - image_average_color, image_compare_regions
//
// Scheme names in arguments are not validated by palette_generate: an
// unknown name produces a palette holding only the base colour.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(cfg, log)
//	if err := srv.Run(); err != nil {
//	    log.Error(err, "server stopped")
//	}
package server
