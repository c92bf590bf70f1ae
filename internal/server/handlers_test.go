package server

import (
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createTestImageFile writes a PNG with an opaque 2x2 block in the top-left
// corner and stale magenta in every transparent pixel, and returns its path.
func createTestImageFile(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBA{255, 0, 255, 0}
			if x < 2 && y < 2 {
				c = color.NRGBA{20, 40, 60, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return writeTestImage(t, img)
}

// writeTestImage encodes img as PNG into the test's temp dir.
func writeTestImage(t *testing.T, img image.Image) string {
	t.Helper()

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

// callTool sends a tools/call request through handleRequest.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
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
	return resp
}

// decodeToolResult unmarshals the JSON text payload of a successful tool call.
func decodeToolResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content: got %#v", result["content"])
	}
	text, ok := content[0]["text"].(string)
	if !ok {
		t.Fatal("content text should be a string")
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("failed to unmarshal tool result: %v", err)
	}
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 5, 4)

	resp := callTool(t, s, "image_load", map[string]interface{}{"path": imgPath})

	var info struct {
		Width             int  `json:"width"`
		Height            int  `json:"height"`
		HasAlpha          bool `json:"has_alpha"`
		TransparentPixels int  `json:"transparent_pixels"`
	}
	decodeToolResult(t, resp, &info)

	if info.Width != 5 || info.Height != 4 {
		t.Errorf("dimensions: got %dx%d, want 5x4", info.Width, info.Height)
	}
	if !info.HasAlpha {
		t.Error("has_alpha should be true")
	}
	if info.TransparentPixels != 16 {
		t.Errorf("transparent_pixels: got %d, want 16", info.TransparentPixels)
	}
}

func TestHandleToolsCall_SampleColor(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 4, 4)

	resp := callTool(t, s, "image_sample_color", map[string]interface{}{
		"path": imgPath, "x": 3, "y": 3,
	})

	var sample struct {
		Hex         string `json:"hex"`
		Transparent bool   `json:"transparent"`
	}
	decodeToolResult(t, resp, &sample)

	if sample.Hex != "#FF00FF" {
		t.Errorf("hex: got %s, want #FF00FF", sample.Hex)
	}
	if !sample.Transparent {
		t.Error("pixel should be transparent")
	}
}

func TestHandleToolsCall_Defringe(t *testing.T) {
	tests := []struct {
		action   string
		wantPix  color.NRGBA
		wantHex  string
		passes   int
		checkHex bool
	}{
		{"black", color.NRGBA{0, 0, 0, 0}, "", 0, false},
		{"avg", color.NRGBA{20, 40, 60, 0}, "#14283c", 0, true},
		{"match", color.NRGBA{20, 40, 60, 0}, "", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			s := New()
			imgPath := createTestImageFile(t, 5, 4)
			outPath := filepath.Join(t.TempDir(), "out.png")

			resp := callTool(t, s, "image_defringe", map[string]interface{}{
				"path":        imgPath,
				"action":      tt.action,
				"output_path": outPath,
			})

			var res struct {
				Action            string `json:"action"`
				TransparentPixels int    `json:"transparent_pixels"`
				Passes            int    `json:"passes"`
				AverageHex        string `json:"average_hex"`
				OutputPath        string `json:"output_path"`
			}
			decodeToolResult(t, resp, &res)

			if res.Action != tt.action {
				t.Errorf("action: got %s, want %s", res.Action, tt.action)
			}
			if res.TransparentPixels != 16 {
				t.Errorf("transparent_pixels: got %d, want 16", res.TransparentPixels)
			}
			if res.Passes != tt.passes {
				t.Errorf("passes: got %d, want %d", res.Passes, tt.passes)
			}
			if tt.checkHex && res.AverageHex != tt.wantHex {
				t.Errorf("average_hex: got %s, want %s", res.AverageHex, tt.wantHex)
			}
			if res.OutputPath != outPath {
				t.Errorf("output_path: got %s, want %s", res.OutputPath, outPath)
			}

			f, err := os.Open(outPath)
			if err != nil {
				t.Fatalf("output not written: %v", err)
			}
			defer f.Close()
			out, err := png.Decode(f)
			if err != nil {
				t.Fatalf("failed to decode output: %v", err)
			}

			got := color.NRGBAModel.Convert(out.At(4, 3)).(color.NRGBA)
			if got != tt.wantPix {
				t.Errorf("pixel (4,3): got %v, want %v", got, tt.wantPix)
			}
			corner := color.NRGBAModel.Convert(out.At(0, 0)).(color.NRGBA)
			if corner != (color.NRGBA{20, 40, 60, 255}) {
				t.Errorf("opaque pixel changed: got %v", corner)
			}
		})
	}
}

func TestHandleToolsCall_DefringeAverageAllTransparent(t *testing.T) {
	s := New()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	imgPath := writeTestImage(t, img)
	outPath := filepath.Join(t.TempDir(), "out.png")

	resp := callTool(t, s, "image_defringe", map[string]interface{}{
		"path":        imgPath,
		"action":      "avg",
		"output_path": outPath,
	})

	if resp.Error == nil {
		t.Fatal("Expected error for all-transparent image")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
	data, _ := resp.Error.Data.(string)
	if !strings.Contains(data, "no opaque pixels") {
		t.Errorf("Error data: got %q, want mention of no opaque pixels", data)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Error("output should not be written on failure")
	}
}

func TestHandleToolsCall_DefringeBadArguments(t *testing.T) {
	imgPath := createTestImageFile(t, 3, 3)
	outPath := filepath.Join(t.TempDir(), "out.png")

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing path", map[string]interface{}{"action": "match", "output_path": outPath}},
		{"missing output", map[string]interface{}{"path": imgPath, "action": "match"}},
		{"unknown action", map[string]interface{}{"path": imgPath, "action": "blur", "output_path": outPath}},
		{"unsupported output format", map[string]interface{}{"path": imgPath, "action": "black", "output_path": outPath + ".xyz"}},
		{"nonexistent input", map[string]interface{}{"path": "/nonexistent/image.png", "action": "black", "output_path": outPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, New(), "image_defringe", tt.args)
			if resp.Error == nil {
				t.Fatal("Expected error")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
			}
		})
	}
}

func TestHandleToolsCall_DefringeLeavesCacheIntact(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 4, 4)
	outPath := filepath.Join(t.TempDir(), "out.png")

	resp := callTool(t, s, "image_defringe", map[string]interface{}{
		"path": imgPath, "action": "black", "output_path": outPath,
	})
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}

	// The cached source must still carry its original stale color.
	resp = callTool(t, s, "image_sample_color", map[string]interface{}{
		"path": imgPath, "x": 3, "y": 3,
	})
	var sample struct {
		Hex string `json:"hex"`
	}
	decodeToolResult(t, resp, &sample)
	if sample.Hex != "#FF00FF" {
		t.Errorf("cached source was mutated: hex %s", sample.Hex)
	}
}

func TestHandleToolsCall_DefringePreview(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 4, 4)

	resp := callTool(t, s, "image_defringe_preview", map[string]interface{}{
		"path":       imgPath,
		"action":     "match",
		"background": "#FFFFFF",
		"scale":      2.0,
	})

	var preview struct {
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		ImageBase64 string `json:"image_base64"`
		MimeType    string `json:"mime_type"`
	}
	decodeToolResult(t, resp, &preview)

	if preview.Width != 8 || preview.Height != 8 {
		t.Errorf("dimensions: got %dx%d, want 8x8", preview.Width, preview.Height)
	}
	if preview.MimeType != "image/png" {
		t.Errorf("mime_type: got %s, want image/png", preview.MimeType)
	}
	if _, err := base64.StdEncoding.DecodeString(preview.ImageBase64); err != nil {
		t.Errorf("failed to decode base64: %v", err)
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	resp := callTool(t, New(), "image_crop", map[string]interface{}{"path": "/x.png"})

	if resp.Error == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()
	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`not json`),
	})

	if resp.Error == nil {
		t.Fatal("Expected error for invalid params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}
