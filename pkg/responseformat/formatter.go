// Package responseformat writes API responses as JSON or MessagePack.
package responseformat

import (
	"encoding/json"
	"net/http"

	"github.com/vmihailenco/msgpack/v5"
)

// Format is a response encoding
type Format int

const (
	JSON Format = iota
	MsgPack
)

// ContentType returns the MIME type for f
func (f Format) ContentType() string {
	if f == MsgPack {
		return "application/x-msgpack"
	}
	return "application/json"
}

// FormatFor returns MsgPack when the request carries format=msgpack, and JSON
// for anything else
func FormatFor(req *http.Request) Format {
	if req.URL.Query().Get("format") == "msgpack" {
		return MsgPack
	}
	return JSON
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}

// Formatter handles encoding and writing responses in JSON or MessagePack format
type Formatter struct{}

// NewFormatter creates a new response formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// WriteResponse writes data with the given status in the format the request
// asked for. headers are set before the body is written.
func (f *Formatter) WriteResponse(w http.ResponseWriter, req *http.Request, status int, data any, headers map[string]string) error {
	for k, v := range headers {
		w.Header().Set(k, v)
	}

	// Always set CORS header
	w.Header().Set("Access-Control-Allow-Origin", "*")

	format := FormatFor(req)
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(status)

	if format == MsgPack {
		return f.writeMsgPack(w, data)
	}
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes err as an ErrorResponse
func (f *Formatter) WriteError(w http.ResponseWriter, req *http.Request, status int, err error) error {
	return f.WriteResponse(w, req, status, ErrorResponse{Error: err.Error()}, nil)
}

func (f *Formatter) writeMsgPack(w http.ResponseWriter, data any) error {
	encoder := msgpack.NewEncoder(w)
	encoder.SetCustomStructTag("json") // Use json tags for MessagePack
	return encoder.Encode(data)
}
