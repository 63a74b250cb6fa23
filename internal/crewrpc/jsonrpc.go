// Package crewrpc lets crews run as services. A Service exposes one crew
// executor over HTTP/JSON-RPC 2.0; the Client implements crew.Executor
// against such a service, so a flow can drive local and remote crews
// interchangeably.
package crewrpc

import "encoding/json"

// Version is the JSON-RPC protocol version.
const Version = "2.0"

// Request is a JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC 2.0 response envelope.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Standard JSON-RPC error codes, plus crewrpc-specific ones.
const (
	ErrCodeParse          = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603

	ErrCodeRunNotFound = -32001
)

// crewrpc method names.
const (
	MethodPlan     = "crew/plan"
	MethodWrite    = "crew/write"
	MethodGetRun   = "runs/get"
	MethodListRuns = "runs/list"
)

// CardPath is the well-known URI where a service describes itself.
const CardPath = "/.well-known/crew-card.json"

// Card is the self-describing manifest served by a crew service.
type Card struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}
