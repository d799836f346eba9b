package api

import (
	"reflect"

	"github.com/danielgtaylor/huma/v2"
)

// Envelope is the uniform response wrapper: {"success": true, "data": ...}
// on success and {"success": false, "error": {...}} on failure. Absent parts
// are omitted, never null.
type Envelope struct {
	Success bool      `json:"success" doc:"Whether the request succeeded"`
	Data    any       `json:"data,omitempty" doc:"Response payload"`
	Error   *APIError `json:"error,omitempty" doc:"Error information"`
}

// EnvelopeTransformer wraps every response body in the envelope. Registered
// as a huma transformer so handlers return plain payloads.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return &Envelope{Success: false, Error: apiErr}, nil
	}

	if isNilPayload(v) {
		return &Envelope{Success: true}, nil
	}
	return &Envelope{Success: true, Data: v}, nil
}

// isNilPayload reports whether v is nil, including a typed nil pointer, so
// empty lookups serialize without a "data" key.
func isNilPayload(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
