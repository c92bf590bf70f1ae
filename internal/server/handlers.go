package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/png-defringe/internal/defringe"
	"github.com/ironsheep/png-defringe/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_defringe").
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
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_defringe":
		return s.handleImageDefringe(args)
	case "image_defringe_preview":
		return s.handleImageDefringePreview(args)
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

var errMissingPath = errors.New("path is required")

// === Inspection Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errMissingPath
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
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
	if a.Path == "" {
		return nil, errMissingPath
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// === Defringe Handlers ===

type imageDefringeArgs struct {
	Path       string `json:"path"`
	Action     string `json:"action"`
	OutputPath string `json:"output_path"`
}

// defringeResult is the image_defringe response.
type defringeResult struct {
	*defringe.Result
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageDefringe(args json.RawMessage) (interface{}, error) {
	var a imageDefringeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errMissingPath
	}
	if a.OutputPath == "" {
		return nil, errors.New("output_path is required")
	}

	grid, res, err := s.loadAndApply(a.Path, a.Action)
	if err != nil {
		return nil, err
	}

	if !imaging.KeepsAlpha(a.OutputPath) {
		log.Printf("Warning: %s cannot store alpha, transparency will be lost", a.OutputPath)
	}
	if err := imaging.Save(grid, a.OutputPath); err != nil {
		return nil, err
	}
	// A later image_load of the output must see the new file.
	s.cache.Evict(a.OutputPath)

	return &defringeResult{Result: res, OutputPath: a.OutputPath}, nil
}

type imageDefringePreviewArgs struct {
	Path       string  `json:"path"`
	Action     string  `json:"action"`
	Background string  `json:"background"`
	Scale      float64 `json:"scale"`
}

func (s *Server) handleImageDefringePreview(args json.RawMessage) (interface{}, error) {
	var a imageDefringePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errMissingPath
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	grid, _, err := s.loadAndApply(a.Path, a.Action)
	if err != nil {
		return nil, err
	}
	return imaging.Preview(grid, a.Background, a.Scale)
}

// loadAndApply loads a mutable copy of the image at path and applies the named
// action to it.
func (s *Server) loadAndApply(path, actionName string) (*image.NRGBA, *defringe.Result, error) {
	action, err := defringe.ParseAction(actionName)
	if err != nil {
		return nil, nil, err
	}
	grid, err := imaging.LoadGrid(s.cache, path)
	if err != nil {
		return nil, nil, err
	}
	res, err := defringe.Apply(grid, action)
	if err != nil {
		return nil, nil, err
	}
	return grid, res, nil
}
