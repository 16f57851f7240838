// Package mcp implements the tool registry and request dispatcher of the
// Pocket TTS MCP server.
//
// Tools are declared once at startup as Descriptors (name, description, JSON
// Schema for the input, handler) and collected into an ordered, immutable
// Registry. The Dispatcher answers list requests from the registry, and for
// call requests looks up the tool, validates and defaults the arguments
// against its schema, invokes the handler, and normalizes every outcome into
// a CallToolResult. Handler errors and panics become error results; only an
// unknown tool name is reported as a protocol error.
//
// Mount attaches a Dispatcher to an official MCP SDK server so that the
// session's tools/list and tools/call requests are served from the registry.
package mcp
