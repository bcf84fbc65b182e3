package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// editOption describes one editing option as it appears in image_edit
// arguments and in the image_apply_tools tool map.
type editOption struct {
	name, kind, description string
}

var editOptions = []editOption{
	{"crop", "string", "Crop rectangle as 'left,top,right,bottom'; areas outside the image become transparent"},
	{"resize", "string", "Target size as 'width,height'"},
	{"rotate", "number", "Counter-clockwise rotation in degrees; the canvas grows to fit"},
	{"filter", "string", "Color preset: none, bw, vintage, warm or cool"},
	{"brightness", "number", "Brightness factor (1 = unchanged)"},
	{"exposure", "number", "Exposure in stops, clamped to [-2, 2] and folded into brightness"},
	{"contrast", "number", "Contrast factor (1 = unchanged)"},
	{"saturation", "number", "Saturation factor (1 = unchanged, 0 = greyscale)"},
	{"temperature", "integer", "Warm (+) or cool (-) shift, clamped to [-100, 100]"},
	{"blur", "number", "Gaussian blur radius (0 = off)"},
	{"sharpen", "number", "Sharpness factor (1 = unchanged)"},
	{"bgRemove", "integer", "Background removal threshold 0-255; near-white pixels become transparent"},
	{"text", "string", "Text to draw"},
	{"textPos", "string", "Text position as 'x,y'"},
	{"textSize", "integer", "Text size (14 = natural bitmap size)"},
	{"textColor", "string", "Text color as #rgb, #rrggbb or #rrggbbaa"},
	{"sticker", "string", "Sticker text, drawn white on its own layer"},
	{"stickerPos", "string", "Sticker position as 'x,y'"},
	{"stickerSize", "integer", "Sticker size (14 = natural bitmap size)"},
	{"stickerOpacity", "integer", "Sticker opacity 0-100"},
	{"heal", "array", "Heal spots, each 'x,y,radius'"},
	{"brush", "array", "Brush dabs, each 'x,y,size,color'"},
	{"clone", "array", "Clone patches, each 'sx,sy,w,h,dx,dy'"},
}

// editProperties returns the JSON schema properties for every editing
// option.
func editProperties() map[string]interface{} {
	props := make(map[string]interface{}, len(editOptions))
	for _, o := range editOptions {
		p := map[string]interface{}{
			"type":        o.kind,
			"description": o.description,
		}
		if o.kind == "array" {
			p["items"] = map[string]interface{}{"type": "string"}
		}
		props[o.name] = p
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	editProps := editProperties()
	editProps["input"] = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the source image",
	}
	editProps["output"] = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path for the edited image; the extension selects the format",
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and file size.",
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
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
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
			Description: "Get the color of the pixel at (x, y) as hex, RGB, RGBA and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Editing
		{
			Name: "image_edit",
			Description: "Edit an image file and write the result to output. Operations always run in a fixed order: " +
				"crop, resize, rotate, filter, brightness, contrast, saturation, temperature, blur, heal, brush, " +
				"sharpen, text, background removal, clone, sticker.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": editProps,
				"required":   []string{"input", "output"},
			},
		},
		{
			Name:        "image_apply_tools",
			Description: "Apply editing tools to an image given as a data URL and return the edited image as a PNG data URL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"imageDataUrl": map[string]interface{}{
						"type":        "string",
						"description": "Source image as a base64 data URL (data:image/...;base64,...)",
					},
					"tools": map[string]interface{}{
						"type":        "object",
						"description": "Editing options; missing or unusable values fall back to their defaults",
						"properties":  editProperties(),
					},
				},
				"required": []string{"imageDataUrl"},
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
