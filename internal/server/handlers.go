package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/image-edit-mcp/internal/detection"
	"github.com/ironsheep/image-edit-mcp/internal/editor"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_info", "image_crop").
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

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	text, err := marshalResult(result)
	if err != nil {
		return s.errorResponse(req.ID, -32603, "Internal error", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": text,
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Leaves optional parameters nil so the editor applies its defaults
//  3. Calls the matching editor operation
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Inspection
	case "image_info":
		return s.handleImageInfo(args)
	case "image_color_at":
		return s.handleImageColorAt(args)
	case "image_trim_box":
		return s.handleImageTrimBox(args)

	// Format and orientation
	case "image_convert":
		return s.handleImageConvert(args)
	case "image_flip":
		return s.handleImageFlip(args)
	case "image_rotate":
		return s.handleImageRotate(args)
	case "image_filter":
		return s.handleImageFilter(args)

	// Resizing
	case "image_resize":
		return s.handleImageResize(args)
	case "image_resize_to_width":
		return s.handleImageResizeToWidth(args)
	case "image_resize_to_height":
		return s.handleImageResizeToHeight(args)
	case "image_shrink_to_fit":
		return s.handleImageShrinkToFit(args)
	case "image_shrink_to_square":
		return s.handleImageShrinkToSquare(args)
	case "image_shrink_to_non_background":
		return s.handleImageShrinkToNonBackground(args)
	case "image_shrink_to_square_non_background":
		return s.handleImageShrinkToSquareNonBackground(args)

	// Cropping
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_square_crop":
		return s.handleImageSquareCrop(args)

	// Overlays
	case "image_watermark":
		return s.handleImageWatermark(args)
	case "image_text":
		return s.handleImageText(args)

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

// marshalResult converts a tool result to a pretty-printed JSON string.
func marshalResult(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(b), nil
}

// decode unmarshals tool arguments.
func decode(args json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// param is a named argument value.
type param struct {
	name  string
	value string
}

// requirePaths reports the first empty path, in argument order.
func requirePaths(params ...param) error {
	for _, p := range params {
		if p.value == "" {
			return fmt.Errorf("%w: %s is required", imaging.ErrInvalidArgument, p.name)
		}
	}
	return nil
}

// fileArgs are common to every tool that writes an image.
type fileArgs struct {
	Src     string `json:"src"`
	Dest    string `json:"dest"`
	Quality *int   `json:"quality"`
}

func (a fileArgs) check() error {
	return requirePaths(param{"src", a.Src}, param{"dest", a.Dest})
}

func (a fileArgs) save() editor.SaveOptions {
	return editor.SaveOptions{Quality: a.Quality}
}

type resizeArgs struct {
	fileArgs
	Resample        *bool  `json:"resample"`
	NewType         string `json:"new_type"`
	WhiteBackground bool   `json:"white_background"`
	BackgroundColor string `json:"background_color"`
}

func (a resizeArgs) options() editor.ResizeOptions {
	return editor.ResizeOptions{
		SaveOptions:     editor.SaveOptions{Quality: a.Quality, NewType: a.NewType},
		Resample:        a.Resample,
		WhiteBackground: a.WhiteBackground,
		BackgroundColor: a.BackgroundColor,
	}
}

// === Inspection Handlers ===

// trimBoxResponse adds a readable status next to the numeric result.
type trimBoxResponse struct {
	detection.TrimBox
	Status string `json:"status"`
}

func trimBoxResult(box detection.TrimBox) trimBoxResponse {
	return trimBoxResponse{TrimBox: box, Status: box.Result.String()}
}

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := requirePaths(param{"path", a.Path}); err != nil {
		return nil, err
	}
	return s.editor.Info(a.Path)
}

type colorAtArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageColorAt(args json.RawMessage) (interface{}, error) {
	var a colorAtArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := requirePaths(param{"path", a.Path}); err != nil {
		return nil, err
	}
	return s.editor.ColorAt(a.Path, a.X, a.Y)
}

type trimBoxArgs struct {
	Path            string `json:"path"`
	BackgroundColor string `json:"background_color"`
}

func (s *Server) handleImageTrimBox(args json.RawMessage) (interface{}, error) {
	var a trimBoxArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := requirePaths(param{"path", a.Path}); err != nil {
		return nil, err
	}
	box, err := s.editor.TrimBox(a.Path, a.BackgroundColor)
	if err != nil {
		return nil, err
	}
	return trimBoxResult(box), nil
}

// === Format and Orientation Handlers ===

func (s *Server) handleImageConvert(args json.RawMessage) (interface{}, error) {
	var a fileArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := a.check(); err != nil {
		return nil, err
	}
	return s.editor.Convert(a.Src, a.Dest, a.Quality)
}

type flipArgs struct {
	fileArgs
	Direction string `json:"direction"`
}

func (s *Server) handleImageFlip(args json.RawMessage) (interface{}, error) {
	var a flipArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := a.check(); err != nil {
		return nil, err
	}
	return s.editor.Flip(a.Src, a.Dest, a.Direction, a.save())
}

type rotateArgs struct {
	fileArgs
	Angle   json.RawMessage `json:"angle"`
	BgColor string          `json:"bg_color"`
}

// angleString accepts the angle as a JSON string or number.
func angleString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str, nil
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return "", fmt.Errorf("%w: angle must be a string or number", imaging.ErrInvalidArgument)
	}
	return num.String(), nil
}

func (s *Server) handleImageRotate(args json.RawMessage) (interface{}, error) {
	var a rotateArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := a.check(); err != nil {
		return nil, err
	}
	angle, err := angleString(a.Angle)
	if err != nil {
		return nil, err
	}
	return s.editor.Rotate(a.Src, a.Dest, angle, a.BgColor, a.save())
}

type filterArgs struct {
	fileArgs
	imaging.FilterSpec
	Filter string `json:"filter"`
}

func (s *Server) handleImageFilter(args json.RawMessage) (interface{}, error) {
	var a filterArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := a.check(); err != nil {
		return nil, err
	}
	spec := a.FilterSpec
	if a.Filter != "" {
		spec.Name = a.Filter
	}
	return s.editor.Filter(a.Src, a.Dest, spec, a.save())
}

// === Resizing Handlers ===

type sizeArgs struct {
	resizeArgs
	Width     int `json:"width"`
	Height    int `json:"height"`
	MaxWidth  int `json:"max_width"`
	MaxHeight int `json:"max_height"`
	Size      int `json:"size"`
}

func (s *Server) decodeSize(args json.RawMessage) (sizeArgs, error) {
	var a sizeArgs
	if err := decode(args, &a); err != nil {
		return a, err
	}
	return a, a.check()
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	a, err := s.decodeSize(args)
	if err != nil {
		return nil, err
	}
	return s.editor.Resize(a.Src, a.Dest, a.Width, a.Height, a.options())
}

func (s *Server) handleImageResizeToWidth(args json.RawMessage) (interface{}, error) {
	a, err := s.decodeSize(args)
	if err != nil {
		return nil, err
	}
	return s.editor.ResizeToWidth(a.Src, a.Dest, a.Width, a.options())
}

func (s *Server) handleImageResizeToHeight(args json.RawMessage) (interface{}, error) {
	a, err := s.decodeSize(args)
	if err != nil {
		return nil, err
	}
	return s.editor.ResizeToHeight(a.Src, a.Dest, a.Height, a.options())
}

func (s *Server) handleImageShrinkToFit(args json.RawMessage) (interface{}, error) {
	a, err := s.decodeSize(args)
	if err != nil {
		return nil, err
	}
	return s.editor.ShrinkToFit(a.Src, a.Dest, a.MaxWidth, a.MaxHeight, a.options())
}

func (s *Server) handleImageShrinkToSquare(args json.RawMessage) (interface{}, error) {
	a, err := s.decodeSize(args)
	if err != nil {
		return nil, err
	}
	return s.editor.ShrinkToSquare(a.Src, a.Dest, a.Size, a.options())
}

func (s *Server) handleImageShrinkToSquareNonBackground(args json.RawMessage) (interface{}, error) {
	a, err := s.decodeSize(args)
	if err != nil {
		return nil, err
	}
	return s.editor.ShrinkToSquareNonBackground(a.Src, a.Dest, a.Size, editor.ResizeOptions{
		SaveOptions: a.save(),
		Resample:    a.Resample,
	})
}

type shrinkToNonBackgroundArgs struct {
	Src             string `json:"src"`
	Quality         *int   `json:"quality"`
	BackgroundColor string `json:"background_color"`
}

func (s *Server) handleImageShrinkToNonBackground(args json.RawMessage) (interface{}, error) {
	var a shrinkToNonBackgroundArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := requirePaths(param{"src", a.Src}); err != nil {
		return nil, err
	}
	res, box, err := s.editor.ShrinkToNonBackground(a.Src, a.Quality, a.BackgroundColor)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"result":   res,
		"trim_box": trimBoxResult(box),
	}, nil
}

// === Cropping Handlers ===

type cropArgs struct {
	fileArgs
	X1        int    `json:"x1"`
	Y1        int    `json:"y1"`
	X2        int    `json:"x2"`
	Y2        int    `json:"y2"`
	Region    string `json:"region"`
	NewWidth  int    `json:"new_width"`
	NewHeight int    `json:"new_height"`
	Resample  *bool  `json:"resample"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a cropArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := a.check(); err != nil {
		return nil, err
	}
	return s.editor.Crop(a.Src, a.Dest, editor.CropOptions{
		SaveOptions: a.save(),
		X1:          a.X1,
		Y1:          a.Y1,
		X2:          a.X2,
		Y2:          a.Y2,
		Region:      a.Region,
		NewWidth:    a.NewWidth,
		NewHeight:   a.NewHeight,
		Resample:    a.Resample,
	})
}

type squareCropArgs struct {
	fileArgs
	NewSize int `json:"new_size"`
}

func (s *Server) handleImageSquareCrop(args json.RawMessage) (interface{}, error) {
	var a squareCropArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := a.check(); err != nil {
		return nil, err
	}
	return s.editor.SquareCrop(a.Src, a.Dest, a.NewSize, a.save())
}

// === Overlay Handlers ===

type watermarkArgs struct {
	fileArgs
	Watermark string `json:"watermark"`
	Anchor    string `json:"anchor"`
	Opacity   *int   `json:"opacity"`
	Margin    *int   `json:"margin"`
}

func (s *Server) handleImageWatermark(args json.RawMessage) (interface{}, error) {
	var a watermarkArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := a.check(); err != nil {
		return nil, err
	}
	if err := requirePaths(param{"watermark", a.Watermark}); err != nil {
		return nil, err
	}
	return s.editor.Watermark(a.Src, a.Dest, a.Watermark, editor.WatermarkOptions{
		SaveOptions: a.save(),
		Anchor:      a.Anchor,
		Opacity:     a.Opacity,
		Margin:      a.Margin,
	})
}

type textArgs struct {
	fileArgs
	Text          string `json:"text"`
	FontFile      string `json:"font_file"`
	Size          int    `json:"size"`
	Color         string `json:"color"`
	Anchor        string `json:"anchor"`
	Margin        *int   `json:"margin"`
	ShadowColor   string `json:"shadow_color"`
	ShadowOffsetX int    `json:"shadow_offset_x"`
	ShadowOffsetY int    `json:"shadow_offset_y"`
}

func (s *Server) handleImageText(args json.RawMessage) (interface{}, error) {
	var a textArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := a.check(); err != nil {
		return nil, err
	}
	return s.editor.Text(a.Src, a.Dest, editor.TextOptions{
		SaveOptions:   a.save(),
		Text:          a.Text,
		FontFile:      a.FontFile,
		Size:          a.Size,
		Color:         a.Color,
		Anchor:        a.Anchor,
		Margin:        a.Margin,
		ShadowColor:   a.ShadowColor,
		ShadowOffsetX: a.ShadowOffsetX,
		ShadowOffsetY: a.ShadowOffsetY,
	})
}
