// Package server implements the MCP (Model Context Protocol) server for the
// image editor.
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
// # Available Tools
//
// Inspection:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_sample_color: Get color at pixel
//
// Editing:
//   - image_edit: Edit a file on disk, writing the result to another path
//   - image_apply_tools: Edit an image passed as a data URL
//
// Both editing tools spawn one editor process per call through
// [runner.Runner], so a slow or crashing edit is bounded by the runner's
// timeout and never takes the server down with it.
//
// # Image Caching
//
// Inspection tools share an in-memory cache of decoded images keyed by
// path. image_edit evicts its output path before reading it back.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The error string, e.g. the editor's stderr
package server
