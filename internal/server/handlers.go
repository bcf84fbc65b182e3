package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/image-edit-tools/internal/imaging"
	"github.com/ironsheep/image-edit-tools/internal/runner"
)

var errNoRunner = errors.New("no editor configured")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_edit").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
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
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Editing
	case "image_edit":
		return s.handleImageEdit(ctx, args)
	case "image_apply_tools":
		return s.handleImageApplyTools(ctx, args)

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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
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
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// === Editing Handlers ===

// EditResult is returned by image_edit.
type EditResult struct {
	Output string `json:"output"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// handleImageEdit runs one editor process from input to output. Every
// argument other than input and output is an editing option.
func (s *Server) handleImageEdit(ctx context.Context, args json.RawMessage) (interface{}, error) {
	if s.runner == nil {
		return nil, errNoRunner
	}

	var tools runner.Tools
	if err := json.Unmarshal(args, &tools); err != nil {
		return nil, err
	}
	input, _ := tools["input"].(string)
	output, _ := tools["output"].(string)
	if input == "" || output == "" {
		return nil, errors.New("input and output are required")
	}
	delete(tools, "input")
	delete(tools, "output")

	if err := s.runner.Run(ctx, runner.Args(input, output, tools)); err != nil {
		return nil, err
	}

	// The file at output is new; drop any stale cached copy.
	s.cache.Evict(output)
	dims, err := imaging.GetDimensions(s.cache, output)
	if err != nil {
		return nil, err
	}
	return &EditResult{Output: output, Width: dims.Width, Height: dims.Height}, nil
}

type imageApplyToolsArgs struct {
	ImageDataURL string       `json:"imageDataUrl"`
	Tools        runner.Tools `json:"tools"`
}

func (s *Server) handleImageApplyTools(ctx context.Context, args json.RawMessage) (interface{}, error) {
	if s.runner == nil {
		return nil, errNoRunner
	}

	var a imageApplyToolsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	edited, err := s.runner.Apply(ctx, a.ImageDataURL, a.Tools)
	if err != nil {
		return nil, err
	}
	return map[string]string{"editedDataUrl": edited}, nil
}
