package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp(t.TempDir(), "handler-test-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

// callTool sends a tools/call request and returns the decoded result text.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) (map[string]interface{}, *MCPError) {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		return nil, resp.Error
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("unexpected content: %v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Errorf("content type: got %v, want text", content[0]["type"])
	}

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), &out); err != nil {
		t.Fatalf("result text is not JSON: %v", err)
	}
	return out, nil
}

func mustCall(t *testing.T, s *Server, name string, args map[string]interface{}) map[string]interface{} {
	t.Helper()
	out, mcpErr := callTool(t, s, name, args)
	if mcpErr != nil {
		t.Fatalf("%s failed: %s (%v)", name, mcpErr.Message, mcpErr.Data)
	}
	return out
}

func TestHandleToolsCall_ImageInfo(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})

	out := mustCall(t, s, "image_info", map[string]interface{}{"path": imgPath})

	if out["width"] != float64(100) || out["height"] != float64(80) {
		t.Errorf("dimensions: got %vx%v, want 100x80", out["width"], out["height"])
	}
	if out["format"] != "png" {
		t.Errorf("format: got %v, want png", out["format"])
	}
}

func TestHandleToolsCall_ColorAt(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 10, 10, color.RGBA{0x33, 0x66, 0x99, 255})

	out := mustCall(t, s, "image_color_at", map[string]interface{}{"path": imgPath, "x": 4, "y": 5})
	if out["hex"] != "#336699" {
		t.Errorf("hex: got %v, want #336699", out["hex"])
	}

	_, mcpErr := callTool(t, s, "image_color_at", map[string]interface{}{"path": imgPath, "x": 40, "y": 5})
	if mcpErr == nil || mcpErr.Code != -32000 {
		t.Errorf("out of bounds: got %+v, want code -32000", mcpErr)
	}
}

func TestHandleToolsCall_TrimBox(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 20, 20, color.White)

	out := mustCall(t, s, "image_trim_box", map[string]interface{}{"path": imgPath})
	if out["status"] != "all" {
		t.Errorf("status: got %v, want all", out["status"])
	}
	if out["result"] != float64(2) {
		t.Errorf("result: got %v, want 2", out["result"])
	}
	if out["width"] != float64(20) {
		t.Errorf("width: got %v, want 20", out["width"])
	}
}

func TestHandleToolsCall_Convert(t *testing.T) {
	s := New(nil)
	src := createTestImageFile(t, 16, 8, color.RGBA{0, 0, 255, 255})
	dest := filepath.Join(t.TempDir(), "out.jpg")

	out := mustCall(t, s, "image_convert", map[string]interface{}{"src": src, "dest": dest, "quality": 150})
	if out["format"] != "jpeg" {
		t.Errorf("format: got %v, want jpeg", out["format"])
	}
	if out["quality"] != float64(100) {
		t.Errorf("quality: got %v, want 100 (clamped)", out["quality"])
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("dest not written: %v", err)
	}
}

func TestHandleToolsCall_Rotate(t *testing.T) {
	s := New(nil)
	src := createTestImageFile(t, 30, 10, color.Black)
	dir := t.TempDir()

	tests := []struct {
		name  string
		angle interface{}
		wantW float64
	}{
		{"default", nil, 10},
		{"string", "ccw", 10},
		{"number", 180, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]interface{}{"src": src, "dest": filepath.Join(dir, tt.name+".png")}
			if tt.angle != nil {
				args["angle"] = tt.angle
			}
			out := mustCall(t, s, "image_rotate", args)
			if out["width"] != tt.wantW {
				t.Errorf("width: got %v, want %v", out["width"], tt.wantW)
			}
		})
	}

	_, mcpErr := callTool(t, s, "image_rotate", map[string]interface{}{
		"src": src, "dest": filepath.Join(dir, "bad.png"), "angle": true,
	})
	if mcpErr == nil {
		t.Error("boolean angle should fail")
	}
}

func TestHandleToolsCall_Filter(t *testing.T) {
	s := New(nil)
	src := createTestImageFile(t, 8, 8, color.RGBA{200, 100, 50, 255})
	dest := filepath.Join(t.TempDir(), "out.png")

	mustCall(t, s, "image_filter", map[string]interface{}{
		"src": src, "dest": dest, "filter": "pixelate", "block_size": 4, "advanced": true,
	})

	_, mcpErr := callTool(t, s, "image_filter", map[string]interface{}{
		"src": src, "dest": dest, "filter": "unknown",
	})
	if mcpErr == nil {
		t.Error("unknown filter should fail")
	}
}

func TestHandleToolsCall_ResizeFamily(t *testing.T) {
	s := New(nil)
	src := createTestImageFile(t, 200, 100, color.RGBA{0, 128, 0, 255})
	dir := t.TempDir()

	tests := []struct {
		tool  string
		args  map[string]interface{}
		wantW float64
		wantH float64
	}{
		{"image_resize", map[string]interface{}{"width": 20, "height": 30}, 20, 30},
		{"image_resize_to_width", map[string]interface{}{"width": 100}, 100, 50},
		{"image_resize_to_height", map[string]interface{}{"height": 25, "resample": false}, 50, 25},
		{"image_shrink_to_fit", map[string]interface{}{"max_width": 80, "max_height": 80}, 80, 40},
		{"image_shrink_to_square", map[string]interface{}{"size": 50, "background_color": "#000"}, 50, 50},
		{"image_square_crop", map[string]interface{}{"new_size": 16}, 16, 16},
		{"image_crop", map[string]interface{}{"x1": 10, "y1": 10, "x2": 50, "y2": 30}, 40, 20},
		{"image_crop", map[string]interface{}{"region": "left-half"}, 100, 100},
	}

	for i, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tt.args["src"] = src
			tt.args["dest"] = filepath.Join(dir, tt.tool+string(rune('a'+i))+".png")
			out := mustCall(t, s, tt.tool, tt.args)
			if out["width"] != tt.wantW || out["height"] != tt.wantH {
				t.Errorf("size: got %vx%v, want %vx%v", out["width"], out["height"], tt.wantW, tt.wantH)
			}
		})
	}
}

func TestHandleToolsCall_NewType(t *testing.T) {
	s := New(nil)
	src := createTestImageFile(t, 20, 20, color.White)
	dest := filepath.Join(t.TempDir(), "out.gif")

	out := mustCall(t, s, "image_shrink_to_fit", map[string]interface{}{
		"src": src, "dest": dest, "max_width": 10, "max_height": 10, "new_type": "gif",
	})
	if out["format"] != "gif" {
		t.Errorf("format: got %v, want gif", out["format"])
	}
}

func TestHandleToolsCall_ShrinkToNonBackground(t *testing.T) {
	s := New(nil)
	src := createTestImageFile(t, 30, 30, color.White)

	out := mustCall(t, s, "image_shrink_to_non_background", map[string]interface{}{"src": src})

	box, ok := out["trim_box"].(map[string]interface{})
	if !ok {
		t.Fatalf("trim_box missing: %v", out)
	}
	if box["status"] != "all" {
		t.Errorf("status: got %v, want all", box["status"])
	}
	res := out["result"].(map[string]interface{})
	if res["path"] != src {
		t.Errorf("path: got %v, want %v", res["path"], src)
	}
}

func TestHandleToolsCall_ShrinkToSquareNonBackground(t *testing.T) {
	s := New(nil)
	src := createTestImageFile(t, 30, 30, color.White)
	dest := filepath.Join(t.TempDir(), "square.png")

	out := mustCall(t, s, "image_shrink_to_square_non_background", map[string]interface{}{
		"src": src, "dest": dest, "size": 12,
	})
	if out["width"] != float64(12) {
		t.Errorf("width: got %v, want 12", out["width"])
	}
}

func TestHandleToolsCall_Watermark(t *testing.T) {
	s := New(nil)
	src := createTestImageFile(t, 40, 40, color.White)
	mark := createTestImageFile(t, 8, 8, color.Black)
	dest := filepath.Join(t.TempDir(), "out.png")

	mustCall(t, s, "image_watermark", map[string]interface{}{
		"src": src, "dest": dest, "watermark": mark, "anchor": "top-left", "opacity": 100,
	})

	px := mustCall(t, s, "image_color_at", map[string]interface{}{"path": dest, "x": 2, "y": 2})
	if px["hex"] != "#000000" {
		t.Errorf("watermark pixel: got %v, want #000000", px["hex"])
	}

	_, mcpErr := callTool(t, s, "image_watermark", map[string]interface{}{"src": src, "dest": dest})
	if mcpErr == nil {
		t.Error("missing watermark path should fail")
	}
}

func TestHandleToolsCall_Text(t *testing.T) {
	s := New(nil)
	src := createTestImageFile(t, 80, 40, color.White)
	dest := filepath.Join(t.TempDir(), "out.png")

	out := mustCall(t, s, "image_text", map[string]interface{}{
		"src": src, "dest": dest, "text": "Go", "size": 20, "color": "#F00", "shadow_color": "#000",
		"shadow_offset_x": 1, "shadow_offset_y": 1,
	})
	if out["width"] != float64(80) {
		t.Errorf("width: got %v, want 80", out["width"])
	}
}

func TestHandleToolsCall_Errors(t *testing.T) {
	s := New(nil)
	src := createTestImageFile(t, 10, 10, color.White)

	tests := []struct {
		name string
		tool string
		args map[string]interface{}
	}{
		{"unknown tool", "image_nonexistent", map[string]interface{}{}},
		{"missing dest", "image_flip", map[string]interface{}{"src": src, "direction": "h"}},
		{"bad direction", "image_flip", map[string]interface{}{"src": src, "dest": src, "direction": "z"}},
		{"missing file", "image_info", map[string]interface{}{"path": "/nonexistent/file.png"}},
		{"bad anchor", "image_text", map[string]interface{}{"src": src, "dest": src, "text": "x", "anchor": "middle"}},
		{"bad type", "image_resize", map[string]interface{}{"src": "x.png", "dest": "y.png", "width": "wide"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mcpErr := callTool(t, s, tt.tool, tt.args)
			if mcpErr == nil {
				t.Fatal("expected an error")
			}
			if mcpErr.Code != -32000 {
				t.Errorf("code: got %d, want -32000", mcpErr.Code)
			}
		})
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New(nil)
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("got %+v, want code -32602", resp.Error)
	}
}

func TestHandleToolsCall_HugeSize(t *testing.T) {
	s := New(nil)
	src := createTestImageFile(t, 10, 10, color.White)
	dest := filepath.Join(t.TempDir(), "huge.png")

	tests := []struct {
		tool string
		args map[string]interface{}
	}{
		{"image_resize", map[string]interface{}{"width": 1 << 40, "height": 1 << 40}},
		{"image_resize_to_width", map[string]interface{}{"width": 1 << 40}},
		{"image_shrink_to_square", map[string]interface{}{"size": 1 << 40}},
		{"image_crop", map[string]interface{}{"x2": 5, "y2": 5, "new_width": 1 << 40, "new_height": 1 << 40}},
		{"image_square_crop", map[string]interface{}{"new_size": 1 << 40}},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tt.args["src"] = src
			tt.args["dest"] = dest
			_, mcpErr := callTool(t, s, tt.tool, tt.args)
			if mcpErr == nil || mcpErr.Code != -32000 {
				t.Fatalf("got %+v, want code -32000", mcpErr)
			}
			if data, _ := mcpErr.Data.(string); !strings.Contains(data, "invalid dimensions") {
				t.Errorf("error data: got %q, want invalid dimensions", data)
			}
		})
	}
}

func TestRequirePaths_Order(t *testing.T) {
	for i := 0; i < 20; i++ {
		err := requirePaths(param{"src", ""}, param{"dest", ""}, param{"watermark", ""})
		if err == nil || !strings.Contains(err.Error(), "src is required") {
			t.Fatalf("got %v, want the first missing name", err)
		}
	}

	if err := requirePaths(param{"src", "a.png"}, param{"dest", ""}); err == nil || !strings.Contains(err.Error(), "dest") {
		t.Errorf("got %v, want dest missing", err)
	}
	if err := requirePaths(param{"src", "a.png"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMarshalResult(t *testing.T) {
	text, err := marshalResult(map[string]int{"width": 3})
	if err != nil {
		t.Fatalf("marshalResult failed: %v", err)
	}
	if !strings.Contains(text, `"width": 3`) {
		t.Errorf("got %q", text)
	}

	if _, err := marshalResult(make(chan int)); err == nil {
		t.Error("unencodable result should fail")
	}
}
