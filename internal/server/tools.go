package server

import (
	"github.com/ironsheep/png-defringe/internal/defringe"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// actionNames lists the recognized actions for the "enum" of tool schemas.
func actionNames() []string {
	actions := defringe.Actions()
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	return names
}

// actionProperty is the schema shared by every tool that takes an action.
func actionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        actionNames(),
		"description": "Recoloring strategy: black (transparent pixels become transparent black), avg (average of all opaque pixels), match (propagate nearest opaque colors, keep original alpha)",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Inspection
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, alpha support and the number of transparent pixels a defringe pass would recolor.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the stored (non-premultiplied) color at a pixel, including the hidden RGB of transparent pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Defringing
		{
			Name:        "image_defringe",
			Description: "Recolor the transparent pixels of an image to remove color fringes and write the result to a new file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the input image",
					},
					"action": actionProperty(),
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the output image. The extension selects the format; use .png to keep alpha",
					},
				},
				"required": []string{"path", "action", "output_path"},
			},
		},
		{
			Name:        "image_defringe_preview",
			Description: "Defringe an image in memory and return it flattened over a solid background as base64 PNG, to check for remaining halos.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the input image",
					},
					"action": actionProperty(),
					"background": map[string]interface{}{
						"type":        "string",
						"description": "Background hex color. Default #FF00FF",
						"default":     "#FF00FF",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional upscale factor applied before flattening. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "action"},
			},
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
