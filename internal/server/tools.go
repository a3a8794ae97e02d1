package server

import "github.com/ironsheep/image-edit-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

func enumProp(description string, values []string) map[string]interface{} {
	p := prop("string", description)
	p["enum"] = values
	return p
}

// schema builds an object schema. props is merged over the src/dest/quality
// properties when files is set.
func schema(files bool, props map[string]interface{}, required ...string) map[string]interface{} {
	all := map[string]interface{}{}
	if files {
		all["src"] = prop("string", "Absolute path to the source image")
		all["dest"] = prop("string", "Absolute path to write the result to; may equal src")
		all["quality"] = prop("integer", "JPEG quality 0-100 (default 85) or PNG compression 0-9 (default 9); out-of-range values are clamped, GIF ignores it")
		required = append([]string{"src", "dest"}, required...)
	}
	for k, v := range props {
		all[k] = v
	}
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": all,
		"required":   required,
	}
}

// resizeProps are shared by the resize tools.
func resizeProps(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"resample":         prop("boolean", "Smooth interpolation (default from config, normally true)"),
		"new_type":         enumProp("Output format override; defaults to the source format", []string{"png", "jpeg", "gif"}),
		"white_background": prop("boolean", "Flatten transparency onto white instead of keeping it"),
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Inspection
		{
			Name:        "image_info",
			Description: "Get the dimensions, format, color depth, alpha support and file size of an image.",
			InputSchema: schema(false, map[string]interface{}{
				"path": prop("string", "Absolute path to the image file"),
			}, "path"),
		},
		{
			Name:        "image_color_at",
			Description: "Get the exact color at a pixel as hex, RGB, alpha and HSL.",
			InputSchema: schema(false, map[string]interface{}{
				"path": prop("string", "Absolute path to the image file"),
				"x":    prop("integer", "X coordinate (0-based, from left)"),
				"y":    prop("integer", "Y coordinate (0-based, from top)"),
			}, "path", "x", "y"),
		},
		{
			Name:        "image_trim_box",
			Description: "Find the bounding box of everything that differs from the background color, without modifying the image.",
			InputSchema: schema(false, map[string]interface{}{
				"path":             prop("string", "Absolute path to the image file"),
				"background_color": prop("string", "Background as #RRGGBB or #RGB; defaults to the top-left pixel"),
			}, "path"),
		},

		// Format and orientation
		{
			Name:        "image_convert",
			Description: "Re-encode an image; the output format is taken from the dest file extension (.png, .jpg, .jpeg, .gif).",
			InputSchema: schema(true, nil),
		},
		{
			Name:        "image_flip",
			Description: "Mirror an image vertically (top to bottom) or horizontally (left to right).",
			InputSchema: schema(true, map[string]interface{}{
				"direction": enumProp("Flip axis", []string{"vertical", "v", "y", "horizontal", "h", "x"}),
			}, "direction"),
		},
		{
			Name:        "image_rotate",
			Description: "Rotate an image counter-clockwise by a number of degrees, or \"cw\"/\"ccw\" for a quarter turn. Exposed corners are filled with bg_color.",
			InputSchema: schema(true, map[string]interface{}{
				"angle":    prop("string", "Degrees counter-clockwise, or cw/clockwise (270) or ccw/counterclockwise (90). Default 270"),
				"bg_color": prop("string", "Fill color for exposed corners (default #FFFFFF)"),
			}),
		},
		{
			Name:        "image_filter",
			Description: "Apply a filter: grayscale, invert, brightness, contrast, colorize, edgedetect, emboss, blur, sketch, smooth, pixelate or sepia.",
			InputSchema: schema(true, map[string]interface{}{
				"filter":     enumProp("Filter name", imaging.FilterNames()),
				"level":      prop("integer", "brightness -255..255, contrast -100..100 (negative = more), smooth weight, or blur/sketch passes"),
				"red":        prop("integer", "colorize: red shift -255..255"),
				"green":      prop("integer", "colorize: green shift -255..255"),
				"blue":       prop("integer", "colorize: blue shift -255..255"),
				"alpha":      prop("integer", "colorize: transparency 0 (opaque) to 127"),
				"block_size": prop("integer", "pixelate: tile size in pixels"),
				"advanced":   prop("boolean", "pixelate: average each tile instead of taking its corner pixel"),
			}, "filter"),
		},

		// Resizing
		{
			Name:        "image_resize",
			Description: "Scale an image to an exact width and height, ignoring aspect ratio.",
			InputSchema: schema(true, resizeProps(map[string]interface{}{
				"width":  prop("integer", "New width in pixels"),
				"height": prop("integer", "New height in pixels"),
			}), "width", "height"),
		},
		{
			Name:        "image_resize_to_width",
			Description: "Scale an image to a width, keeping its aspect ratio.",
			InputSchema: schema(true, resizeProps(map[string]interface{}{
				"width": prop("integer", "New width in pixels"),
			}), "width"),
		},
		{
			Name:        "image_resize_to_height",
			Description: "Scale an image to a height, keeping its aspect ratio.",
			InputSchema: schema(true, resizeProps(map[string]interface{}{
				"height": prop("integer", "New height in pixels"),
			}), "height"),
		},
		{
			Name:        "image_shrink_to_fit",
			Description: "Shrink an image to fit within a box, keeping its aspect ratio. Images that already fit are not enlarged.",
			InputSchema: schema(true, resizeProps(map[string]interface{}{
				"max_width":  prop("integer", "Maximum width in pixels"),
				"max_height": prop("integer", "Maximum height in pixels"),
			}), "max_width", "max_height"),
		},
		{
			Name:        "image_shrink_to_square",
			Description: "Fit an image into a square canvas of the given size, padding the rest with a background color.",
			InputSchema: schema(true, resizeProps(map[string]interface{}{
				"size":             prop("integer", "Side length of the square in pixels"),
				"background_color": prop("string", "Padding color (default #FFFFFF)"),
			}), "size"),
		},
		{
			Name:        "image_shrink_to_non_background",
			Description: "Remove the uniform border around an image's content, overwriting the source file.",
			InputSchema: schema(false, map[string]interface{}{
				"src":              prop("string", "Absolute path to the image; it is rewritten in place"),
				"quality":          prop("integer", "Encoder quality (default 100, clamped per format)"),
				"background_color": prop("string", "Border color; defaults to the top-left pixel"),
			}, "src"),
		},
		{
			Name:        "image_shrink_to_square_non_background",
			Description: "Trim the border of src in place, then fit the result into a square written to dest.",
			InputSchema: schema(true, map[string]interface{}{
				"size":     prop("integer", "Side length of the square in pixels"),
				"resample": prop("boolean", "Smooth interpolation (default true)"),
			}, "size"),
		},

		// Cropping
		{
			Name:        "image_crop",
			Description: "Cut a rectangle out of an image, optionally scaling it. Give corner coordinates or a named region.",
			InputSchema: schema(true, map[string]interface{}{
				"x1":         prop("integer", "First corner X (0-based)"),
				"y1":         prop("integer", "First corner Y (0-based)"),
				"x2":         prop("integer", "Opposite corner X (exclusive)"),
				"y2":         prop("integer", "Opposite corner Y (exclusive)"),
				"region":     enumProp("Named region used instead of coordinates", []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"}),
				"new_width":  prop("integer", "Output width (default: crop width)"),
				"new_height": prop("integer", "Output height (default: crop height)"),
				"resample":   prop("boolean", "Smooth interpolation when scaling (default true)"),
			}),
		},
		{
			Name:        "image_square_crop",
			Description: "Trim the longer side of an image equally on both ends to make it square, then optionally scale it.",
			InputSchema: schema(true, map[string]interface{}{
				"new_size": prop("integer", "Output side length (default: shorter side of the source)"),
			}),
		},

		// Overlays
		{
			Name:        "image_watermark",
			Description: "Overlay another image at one of nine anchor positions with the given opacity. Transparency in both images is preserved.",
			InputSchema: schema(true, map[string]interface{}{
				"watermark": prop("string", "Absolute path to the overlay image"),
				"anchor":    enumProp("Placement (default center)", imaging.AnchorNames()),
				"opacity":   prop("integer", "Overlay opacity 0-100 (default 50)"),
				"margin":    prop("integer", "Distance from the anchored edges in pixels (default 0)"),
			}, "watermark"),
		},
		{
			Name:        "image_text",
			Description: "Draw text onto an image at one of nine anchor positions, with an optional drop shadow.",
			InputSchema: schema(true, map[string]interface{}{
				"text":            prop("string", "Text to draw"),
				"font_file":       prop("string", "TrueType/OpenType font file (default: built-in Go Regular)"),
				"size":            prop("integer", "Font size in pixels (default 12)"),
				"color":           prop("string", "Text color (default #000000)"),
				"anchor":          enumProp("Placement (default center)", imaging.AnchorNames()),
				"margin":          prop("integer", "Distance from the anchored edges in pixels (default 0)"),
				"shadow_color":    prop("string", "Shadow color; omit for no shadow"),
				"shadow_offset_x": prop("integer", "Shadow X offset in pixels"),
				"shadow_offset_y": prop("integer", "Shadow Y offset in pixels"),
			}, "text"),
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
