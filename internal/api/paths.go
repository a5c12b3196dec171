// Package api provides the client for the MoECatalyst chat endpoint.
package api

// GJSON paths for extracting values from chat responses.
const (
	// PathResponse holds the assistant text: {"response": "..."}
	PathResponse = "response"
)

// Limits applied while reading response bodies
const (
	maxResponseBytes  = 8 << 20
	maxErrorBodyBytes = 4096
)
