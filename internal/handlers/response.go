package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	emptyRequest = json.RawMessage(`""`)
	emptyUser    = struct{}{}

	errNotJSON   = errors.New("request body is not valid JSON")
	errNotObject = errors.New("request body is not a JSON object")
)

// responseBody is the JSON document every handler returns. Field order is
// the wire order; only one of S3Objects and User is set per handler.
type responseBody struct {
	Request   json.RawMessage `json:"request"`
	Response  string          `json:"response"`
	S3Objects any             `json:"s3Objects,omitempty"`
	User      any             `json:"user,omitempty"`
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
}

// echo returns body unchanged when it is valid JSON, otherwise as a JSON string
func echo(body []byte) json.RawMessage {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}

// decodeObject unmarshals a JSON object body into v
func decodeObject(body []byte, v any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errNotObject
	}
	return json.Unmarshal(trimmed, v)
}
