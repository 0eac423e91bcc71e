package handlers

import (
	"context"
	"fmt"

	"github.com/collin-smith/CdkApp/internal/models"
	"github.com/collin-smith/CdkApp/internal/services"
	"github.com/collin-smith/CdkApp/pkg/lambda"
)

// WriteDynamoDBHandler stores the user record carried in the body
type WriteDynamoDBHandler struct {
	base
	users services.UserService
}

// NewWriteDynamoDBHandler creates a new record write handler
func NewWriteDynamoDBHandler(users services.UserService, opts Options) *WriteDynamoDBHandler {
	return &WriteDynamoDBHandler{
		base:  newBase("writedynamodb", "WriteDynamoDBLambdaHandler", opts),
		users: users,
	}
}

// Handle implements lambda.Handler. The record is only echoed under "user"
// once the write has completed.
// @Summary Save a user
// @Description Write a user record to the {ENVIRONMENT}-User table, replacing any record with the same email
// @Tags users
// @Accept json
// @Produce plain
// @Param user body services.SaveUserRequest true "User record"
// @Success 200 {object} responseBody
// @Router /writedynamodb [post]
func (h *WriteDynamoDBHandler) Handle(ctx context.Context, raw []byte) *lambda.Response {
	return h.invoke(ctx, raw, func(ctx context.Context, inv *invocation) {
		inv.user = emptyUser

		env := h.settings.Environment
		table := models.UserTable(env)
		inv.tracef("WriteDynamoDB CDK Lambda %s", h.timestamp())
		inv.tracef("DynamoDB Table:%s", table)

		req, ok := inv.envelope()
		if !ok {
			return
		}

		var body services.SaveUserRequest
		if err := decodeObject(req.Body, &body); err != nil {
			inv.fail(fmt.Errorf("invalid request body: %w", err))
			return
		}

		user, err := h.users.SaveUser(ctx, env, &body)
		if err != nil {
			inv.fail(err)
			return
		}

		inv.tracef("Successfully saved User(%s) to our DynamoDB table %s", user, table)
		inv.user = user
	})
}
