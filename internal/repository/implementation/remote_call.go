package implementation

import (
	"context"
	"time"

	"medstory-be/internal/metrics"
	"medstory-be/internal/pkg/apperror"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "medstory-be/repository"

// DefaultRemoteTimeout bounds a single remote store call when none is configured.
const DefaultRemoteTimeout = 10 * time.Second

type remoteCaller struct {
	store   string
	timeout time.Duration
	metrics *metrics.Metrics
}

func newRemoteCaller(store string, timeout time.Duration, m *metrics.Metrics) remoteCaller {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return remoteCaller{store: store, timeout: timeout, metrics: m}
}

// do runs fn under the call timeout and maps any failure to a TransientIOError.
func (c remoteCaller) do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, c.store+"."+op)
	defer span.End()
	span.SetAttributes(attribute.String("store", c.store), attribute.String("op", op))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	c.metrics.ObserveStore(c.store, op, start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return apperror.Transient(c.store, op, err)
}
