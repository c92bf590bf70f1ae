// Package server implements an MCP (Model Context Protocol) server exposing
// the defringe tools.
//
// # Protocol
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
//   - image_load: Load image and get metadata, including transparent pixel count
//   - image_sample_color: Get the stored color at a pixel
//
// Defringing:
//   - image_defringe: Recolor transparent pixels and write the result to a file
//   - image_defringe_preview: Recolor in memory and return a flattened preview
//
// # Image Caching
//
// Decoded source images are cached by path for the lifetime of the process.
// Every defringe call works on its own copy, so cached images are never
// modified. Output paths are evicted from the cache after they are written.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server
