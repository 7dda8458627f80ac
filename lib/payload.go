package main

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/memheal/memcore/internal/memory"
)

// Fallback payloads handed across the C boundary when a snapshot
// cannot be rendered. Callers parse these like any other response.
const (
	errEncodePayload = `{"error": "Failed to serialize memory statistics"}`
	errStringPayload = `{"error": "Failed to create C string"}`
)

// statsPayload renders one snapshot as JSON. An interior NUL would
// silently truncate the C string on the far side of the boundary, so
// a payload containing one is replaced with an error payload instead.
func statsPayload(c memory.Collector) string {
	data, err := json.Marshal(c.Snapshot(context.Background()))
	if err != nil {
		return errEncodePayload
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return errStringPayload
	}
	return string(data)
}
