// Package di assembles the application's dependency graph with Wire.
package di

import (
	"context"

	"newsagg-backend/application/ports"
	"newsagg-backend/application/services"
	"newsagg-backend/infrastructure/config"
	"newsagg-backend/infrastructure/messaging/eventbridge"
	"newsagg-backend/infrastructure/persistence/dynamodb"
	"newsagg-backend/infrastructure/persistence/s3"
	"newsagg-backend/infrastructure/persistence/storage"
	"newsagg-backend/pkg/auth"
	"newsagg-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	ObjectStore   ports.ObjectStore
	DigestStore   ports.DigestStore
	CacheStore    ports.CacheStore
	UserRepo      ports.UserRepository
	Publisher     ports.EventPublisher
	Metrics       *observability.Metrics
	JWTValidator  *auth.JWTValidator
	DigestService *services.DigestService
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideObjectStore creates the S3-backed object store
func ProvideObjectStore(client *awss3.Client, cfg *config.Config, logger *zap.Logger) ports.ObjectStore {
	return s3.NewObjectStore(client, cfg.DigestBucket, logger)
}

// ProvideDigestStore creates the digest store
func ProvideDigestStore(store ports.ObjectStore, logger *zap.Logger) ports.DigestStore {
	return storage.NewDigestStore(store, logger)
}

// ProvideCacheStore creates the artifact cache store
func ProvideCacheStore(store ports.ObjectStore, metrics *observability.Metrics, logger *zap.Logger) ports.CacheStore {
	return storage.NewCacheStore(store, metrics, logger)
}

// ProvideUserRepository creates the user registry repository
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	return dynamodb.NewUserRepository(client, cfg.UsersTable, logger)
}

// ProvideEventPublisher creates the EventBridge publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewEventBridgePublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the CloudWatch metrics emitter. Metrics are
// optional; a nil emitter disables emission without touching call sites.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewMetrics(client, cfg.MetricsNamespace, logger)
}

// ProvideJWTValidator creates the token validator. Outside production an
// unset secret falls back to a fixed development key; Validate rejects
// that combination for production deployments.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" && !cfg.IsProduction() {
		secret = "dev-only-secret"
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideDigestService creates the digest application service
func ProvideDigestService(
	digests ports.DigestStore,
	users ports.UserRepository,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.DigestService {
	return services.NewDigestService(digests, users, publisher, metrics, logger)
}
