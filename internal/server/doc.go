// Package server implements the MCP (Model Context Protocol) server for image editing tools.
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line, and exposes
// every editor operation as a tool.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Inspection (read only):
//   - image_info, image_color_at, image_trim_box
//
// Format and orientation:
//   - image_convert, image_flip, image_rotate, image_filter
//
// Resizing:
//   - image_resize, image_resize_to_width, image_resize_to_height
//   - image_shrink_to_fit, image_shrink_to_square
//   - image_shrink_to_non_background (rewrites src in place)
//   - image_shrink_to_square_non_background
//
// Cropping:
//   - image_crop, image_square_crop
//
// Overlays:
//   - image_watermark, image_text
//
// Every writing tool takes src, dest and an optional quality. Results report
// the written path, its dimensions, the format and the effective quality.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000 and the Go error string in data. Malformed tools/call params get
// -32602.
//
// # Usage
//
//	srv := server.New(editor.New(cfg))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
