package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// ErrMissingBody is returned when the envelope carries no body field
var ErrMissingBody = errors.New("request envelope has no body")

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method    string            `json:"method"`
	Path      string            `json:"path"`
	Headers   map[string]string `json:"headers"`
	Body      []byte            `json:"body"`
	RequestID string            `json:"request_id"`
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// Handler processes one raw invocation event. Implementations report every
// failure inside the returned response.
type Handler interface {
	Handle(ctx context.Context, raw []byte) *Response
}

// envelope shadows the embedded Body so a missing body can be told apart
// from an empty one.
type envelope struct {
	events.APIGatewayProxyRequest
	Body *string `json:"body"`
}

// ParseEnvelope decodes an API Gateway proxy event
func ParseEnvelope(raw []byte) (*Request, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid request envelope: %w", err)
	}
	if env.Body == nil {
		return nil, ErrMissingBody
	}

	body := []byte(*env.Body)
	if env.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(*env.Body)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 request body: %w", err)
		}
		body = decoded
	}

	return &Request{
		Method:    env.HTTPMethod,
		Path:      env.Path,
		Headers:   env.Headers,
		Body:      body,
		RequestID: env.RequestContext.RequestID,
	}, nil
}

// NewEnvelope builds the raw proxy event for a request, the inverse of ParseEnvelope
func NewEnvelope(req *Request) ([]byte, error) {
	event := events.APIGatewayProxyRequest{
		HTTPMethod: req.Method,
		Path:       req.Path,
		Headers:    req.Headers,
		Body:       string(req.Body),
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID: req.RequestID,
		},
	}
	return json.Marshal(event)
}

// NewTextResponse returns a 200 response with a text/plain content type
func NewTextResponse(body []byte) *Response {
	return &Response{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "text/plain"},
		Body:       body,
	}
}

// ToAPIGateway converts the response to the proxy integration shape
func (r *Response) ToAPIGateway() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Body:       string(r.Body),
	}
}

// Adapt turns a Handler into a function accepted by the Lambda runtime.
// The event is taken as raw JSON so malformed envelopes reach the handler
// and the returned error is always nil.
func Adapt(h Handler) func(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
		return h.Handle(ctx, event).ToAPIGateway(), nil
	}
}
