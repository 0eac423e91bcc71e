package handlers

import (
	"context"

	"github.com/collin-smith/CdkApp/pkg/lambda"
)

// SimpleHandler echoes the request body with a timestamped trace
type SimpleHandler struct {
	base
}

// NewSimpleHandler creates a new echo handler
func NewSimpleHandler(opts Options) *SimpleHandler {
	return &SimpleHandler{base: newBase("simple", "SimpleLambdaHandler", opts)}
}

// Handle implements lambda.Handler
// @Summary Echo the request
// @Description Echo any JSON body back with a timestamped trace
// @Tags echo
// @Accept json
// @Produce plain
// @Param body body object true "Any JSON value"
// @Success 200 {object} responseBody
// @Router /simple [post]
func (h *SimpleHandler) Handle(ctx context.Context, raw []byte) *lambda.Response {
	return h.invoke(ctx, raw, func(ctx context.Context, inv *invocation) {
		inv.tracef("SimpleLambda CDK Lambda call at %s with Environment variable=%s", h.timestamp(), h.settings.Environment)
		inv.envelope()
	})
}
