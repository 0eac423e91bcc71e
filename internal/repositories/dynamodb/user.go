// Package dynamodb stores user records in DynamoDB tables keyed by email.
package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"github.com/collin-smith/CdkApp/internal/models"
	"github.com/collin-smith/CdkApp/internal/repositories"
)

// API is the subset of the DynamoDB client used by the repository
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

var _ API = (*dynamodb.Client)(nil)

// UserRepository implements repositories.UserRepository on DynamoDB
type UserRepository struct {
	client API
	logger *logrus.Logger
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new DynamoDB user repository
func NewUserRepository(client API, logger *logrus.Logger) *UserRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &UserRepository{
		client: client,
		logger: logger,
	}
}

// NewClient builds a DynamoDB client, honouring an endpoint override for DynamoDB Local
func NewClient(awsCfg aws.Config, endpoint string) *dynamodb.Client {
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// Put writes the user with PutItem. There is no condition expression, so a
// second write for the same email replaces the first.
func (r *UserRepository) Put(ctx context.Context, table string, user *models.User) error {
	if table == "" {
		return repositories.NewRepositoryError("put", table, user.Email, repositories.ErrInvalidTable)
	}
	if user.Email == "" {
		return repositories.NewRepositoryError("put", table, "", repositories.ErrInvalidID)
	}

	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return repositories.NewRepositoryError("put", table, user.Email, err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		return repositories.NewRepositoryError("put", table, user.Email, err)
	}

	r.logger.WithFields(logrus.Fields{
		"table": table,
		"email": user.Email,
	}).Debug("User record written")
	return nil
}

// Get reads the user with a strongly consistent GetItem
func (r *UserRepository) Get(ctx context.Context, table, email string) (*models.User, error) {
	if table == "" {
		return nil, repositories.NewRepositoryError("get", table, email, repositories.ErrInvalidTable)
	}
	if email == "" {
		return nil, repositories.NewRepositoryError("get", table, "", repositories.ErrInvalidID)
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, repositories.NewRepositoryError("get", table, email, err)
	}
	if len(out.Item) == 0 {
		return nil, repositories.NotFoundError(table, email)
	}

	user := &models.User{}
	if err := attributevalue.UnmarshalMap(out.Item, user); err != nil {
		return nil, repositories.NewRepositoryError("get", table, email, err)
	}

	return user, nil
}
