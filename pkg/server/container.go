package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sirupsen/logrus"

	"github.com/collin-smith/CdkApp/internal/adapters/awsclient"
	"github.com/collin-smith/CdkApp/internal/adapters/storage"
	"github.com/collin-smith/CdkApp/internal/config"
	"github.com/collin-smith/CdkApp/internal/database"
	"github.com/collin-smith/CdkApp/internal/handlers"
	"github.com/collin-smith/CdkApp/internal/models"
	"github.com/collin-smith/CdkApp/internal/observability"
	"github.com/collin-smith/CdkApp/internal/repositories"
	"github.com/collin-smith/CdkApp/internal/repositories/dynamodb"
	"github.com/collin-smith/CdkApp/internal/repositories/memory"
	"github.com/collin-smith/CdkApp/internal/repositories/sqlite"
	"github.com/collin-smith/CdkApp/internal/services"
)

// Table backends
const (
	TableBackendDynamoDB = "dynamodb"
	TableBackendSQLite   = "sqlite"
	TableBackendMemory   = "memory"
)

// Container holds all application dependencies
type Container struct {
	Config              *config.Config
	Logger              *logrus.Logger
	Metrics             *observability.Metrics
	ObjectReportService services.ObjectReportService
	UserService         services.UserService

	SimpleHandler        *handlers.SimpleHandler
	S3Handler            *handlers.S3Handler
	WriteDynamoDBHandler *handlers.WriteDynamoDBHandler
	ReadDynamoDBHandler  *handlers.ReadDynamoDBHandler

	// Internal dependencies
	db *database.ConnectionManager
}

// NewContainer wires configuration, clients, services and handlers. It is
// called once per process; Lambda entrypoints call it from init.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := config.NewLogger(cfg.Log)

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
	}

	var awsCfg aws.Config
	if needsAWS(cfg) {
		var err error
		awsCfg, err = awsclient.LoadConfig(ctx, awsclient.Options{
			Region:          cfg.Region,
			Endpoint:        cfg.AWS.Endpoint,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Retry: &awsclient.RetryConfig{
				MaxAttempts: cfg.AWS.MaxAttempts,
				MaxBackoff:  cfg.AWS.MaxBackoff,
			},
		})
		if err != nil {
			return nil, err
		}
	}

	lister, err := storage.NewFactory(awsCfg).Create(&storage.Config{
		Type:           cfg.Storage.Type,
		Region:         cfg.Region,
		Endpoint:       cfg.AWS.Endpoint,
		ForcePathStyle: cfg.AWS.ForcePathStyle,
		BasePath:       cfg.Storage.LocalPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store: %w", err)
	}

	userRepo, err := c.newUserRepository(ctx, awsCfg)
	if err != nil {
		return nil, err
	}

	c.ObjectReportService = services.NewObjectReportService(lister, logger)
	c.UserService = services.NewUserService(userRepo, logger)

	opts := handlers.Options{
		Settings: handlers.Settings{
			Environment: cfg.Environment,
			Region:      cfg.Region,
			Bucket:      cfg.Bucket,
		},
		Logger:  logger,
		Metrics: c.Metrics,
	}
	c.SimpleHandler = handlers.NewSimpleHandler(opts)
	c.S3Handler = handlers.NewS3Handler(c.ObjectReportService, opts)
	c.WriteDynamoDBHandler = handlers.NewWriteDynamoDBHandler(c.UserService, opts)
	c.ReadDynamoDBHandler = handlers.NewReadDynamoDBHandler(c.UserService, opts)

	table := cfg.TablePrefix() + models.UserTableName
	if cfg.Table != "" && cfg.Table != table {
		logger.WithFields(logrus.Fields{
			"configured": cfg.Table,
			"derived":    table,
		}).Warn("TABLE does not match the table derived from ENVIRONMENT; the derived name is used")
	}

	logger.WithFields(startupFields(cfg, table, config.GetServerlessConfig())).Info("Container initialized")

	return c, nil
}

func startupFields(cfg *config.Config, table string, sc *config.ServerlessConfig) logrus.Fields {
	fields := logrus.Fields{
		"environment":   cfg.Environment,
		"storage_type":  cfg.Storage.Type,
		"table_backend": cfg.Storage.TableBackend,
		"table":         table,
		"mode":          config.GetDeploymentMode(),
	}
	if sc != nil && sc.IsLambda {
		fields["function_name"] = sc.FunctionName
		fields["lambda_region"] = sc.Region
		fields["stage"] = sc.Stage
	}
	return fields
}

func needsAWS(cfg *config.Config) bool {
	return strings.EqualFold(cfg.Storage.Type, string(storage.StorageTypeS3)) ||
		strings.EqualFold(cfg.Storage.TableBackend, TableBackendDynamoDB)
}

func (c *Container) newUserRepository(ctx context.Context, awsCfg aws.Config) (repositories.UserRepository, error) {
	cfg := c.Config

	switch strings.ToLower(cfg.Storage.TableBackend) {
	case TableBackendDynamoDB:
		client := dynamodb.NewClient(awsCfg, cfg.AWS.Endpoint)
		return dynamodb.NewUserRepository(client, c.Logger), nil
	case TableBackendSQLite:
		cm := database.NewConnectionManager(&database.ConnectionConfig{
			DatabasePath:    cfg.Database.Path,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			Logger:          c.Logger,
		})
		if err := cm.Connect(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.db = cm
		return sqlite.NewUserRepository(cm.GetDB(), c.Logger), nil
	case TableBackendMemory:
		return memory.NewUserRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported table backend: %s", cfg.Storage.TableBackend)
	}
}

// RouterConfig returns the route configuration for the local HTTP server
func (c *Container) RouterConfig() *handlers.RouterConfig {
	return &handlers.RouterConfig{
		Simple:        c.SimpleHandler,
		S3:            c.S3Handler,
		WriteDynamoDB: c.WriteDynamoDBHandler,
		ReadDynamoDB:  c.ReadDynamoDBHandler,
		Registry:      c.Metrics.Registry,
		Environment:   c.Config.Environment,
	}
}

// HealthCheck reports whether the local database, if any, is usable
func (c *Container) HealthCheck(ctx context.Context) error {
	if c.db == nil {
		return nil
	}
	return c.db.HealthCheck(ctx)
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
