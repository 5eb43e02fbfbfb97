// Package observability provides the CloudWatch metrics emitter and the
// X-Ray tracing wrapper.
package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metric names emitted by the storage layer.
const (
	MetricDigestStored  = "DigestStored"
	MetricDigestDeleted = "DigestDeleted"
	MetricCacheHit      = "CacheHit"
	MetricCacheMiss     = "CacheMiss"
	MetricCacheExpired  = "CacheExpired"
)

// Metrics emits counters to CloudWatch. A nil *Metrics is a valid no-op
// emitter, so callers never need to guard their calls.
type Metrics struct {
	client    *awscloudwatch.Client
	namespace string
	logger    *zap.Logger
}

// NewMetrics creates a new metrics emitter
func NewMetrics(client *awscloudwatch.Client, namespace string, logger *zap.Logger) *Metrics {
	return &Metrics{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

// Count emits a count metric. Emission is best-effort: a failed put is
// logged and dropped, never surfaced to the caller.
func (m *Metrics) Count(ctx context.Context, name string, value float64) {
	if m == nil || m.client == nil {
		return
	}

	_, err := m.client.PutMetricData(ctx, &awscloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(name),
				Value:      aws.Float64(value),
				Unit:       types.StandardUnitCount,
				Timestamp:  aws.Time(time.Now()),
			},
		},
	})
	if err != nil {
		m.logger.Warn("Failed to emit metric",
			zap.String("metric", name),
			zap.Error(err),
		)
	}
}
