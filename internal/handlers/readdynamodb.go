package handlers

import (
	"context"
	"fmt"

	"github.com/collin-smith/CdkApp/internal/services"
	"github.com/collin-smith/CdkApp/pkg/lambda"
)

// ReadDynamoDBHandler looks up a user record by email
type ReadDynamoDBHandler struct {
	base
	users services.UserService
}

// NewReadDynamoDBHandler creates a new record read handler
func NewReadDynamoDBHandler(users services.UserService, opts Options) *ReadDynamoDBHandler {
	return &ReadDynamoDBHandler{
		base:  newBase("readdynamodb", "ReadDynamoDBLambdaHandler", opts),
		users: users,
	}
}

// Handle implements lambda.Handler. A missing record is reported as
// success=false with a "record not found" message, distinct from a lookup
// error.
// @Summary Find a user
// @Description Look up a user record by email in the {ENVIRONMENT}-User table
// @Tags users
// @Accept json
// @Produce plain
// @Param lookup body services.FindUserRequest true "Email to look up"
// @Success 200 {object} responseBody
// @Router /readdynamodb [post]
func (h *ReadDynamoDBHandler) Handle(ctx context.Context, raw []byte) *lambda.Response {
	return h.invoke(ctx, raw, func(ctx context.Context, inv *invocation) {
		inv.user = emptyUser
		inv.tracef("ReadDynamoDB CDK Lambda %s", h.timestamp())

		req, ok := inv.envelope()
		if !ok {
			return
		}

		var body services.FindUserRequest
		if err := decodeObject(req.Body, &body); err != nil {
			inv.fail(fmt.Errorf("invalid request body: %w", err))
			return
		}
		inv.tracef("Searching for user(%s)", body.Email)

		lookup, err := h.users.FindUser(ctx, h.settings.Environment, body.Email)
		if err != nil {
			inv.fail(err)
			return
		}
		inv.tracef("DynamoDBUserService Log:%s", lookup.Log)

		if !lookup.Found {
			inv.tracef("Did not find the user(%s)", body.Email)
			inv.missing(body.Email)
			return
		}

		inv.tracef("Found the User:%s", lookup.User)
		inv.user = lookup.User
	})
}
