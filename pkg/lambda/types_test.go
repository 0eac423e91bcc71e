package lambda

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantBody string
		wantID   string
		wantErr  bool
	}{
		{
			name:     "proxy event",
			raw:      `{"httpMethod":"POST","path":"/simple","body":"{\"a\":1}","requestContext":{"requestId":"req-1"}}`,
			wantBody: `{"a":1}`,
			wantID:   "req-1",
		},
		{
			name:     "empty body",
			raw:      `{"body":""}`,
			wantBody: "",
		},
		{
			name:     "base64 body",
			raw:      `{"body":"eyJhIjoxfQ==","isBase64Encoded":true}`,
			wantBody: `{"a":1}`,
		},
		{name: "missing body", raw: `{"httpMethod":"POST"}`, wantErr: true},
		{name: "null body", raw: `{"body":null}`, wantErr: true},
		{name: "null event", raw: `null`, wantErr: true},
		{name: "not json", raw: `not json`, wantErr: true},
		{name: "bad base64", raw: `{"body":"%%%","isBase64Encoded":true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseEnvelope([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, req)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(req.Body))
			assert.Equal(t, tt.wantID, req.RequestID)
		})
	}
}

func TestParseEnvelope_MissingBody(t *testing.T) {
	_, err := ParseEnvelope([]byte(`{}`))
	assert.ErrorIs(t, err, ErrMissingBody)
}

func TestNewEnvelope_RoundTrip(t *testing.T) {
	raw, err := NewEnvelope(&Request{
		Method:    "POST",
		Path:      "/readdynamodb",
		Body:      []byte(`{"email":"a@b.com"}`),
		RequestID: "req-2",
	})
	require.NoError(t, err)

	req, err := ParseEnvelope(raw)
	require.NoError(t, err)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/readdynamodb", req.Path)
	assert.Equal(t, `{"email":"a@b.com"}`, string(req.Body))
	assert.Equal(t, "req-2", req.RequestID)
}

type staticHandler struct {
	body string
}

func (h staticHandler) Handle(ctx context.Context, raw []byte) *Response {
	return NewTextResponse([]byte(h.body))
}

func TestAdapt(t *testing.T) {
	fn := Adapt(staticHandler{body: `{"success":true}`})

	resp, err := fn(context.Background(), json.RawMessage(`garbage`))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "text/plain", resp.Headers["Content-Type"])
	assert.Equal(t, `{"success":true}`, resp.Body)
}
