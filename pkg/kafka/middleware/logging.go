package kafka_middleware

import (
	"context"
	"time"

	"pediacenter/pkg/kafka"
	"pediacenter/pkg/logger"
)

// LoggingProducerMiddleware logs every publish with its outcome and duration
func LoggingProducerMiddleware(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.PublishFunc) error {
		start := time.Now()

		err := next(ctx, msg)

		attrs := []any{
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"correlation_id", msg.GetCorrelationID(),
			"duration", time.Since(start),
		}
		if err != nil {
			log.Error("Failed to publish message", append(attrs, "error", err, "error_type", kafka.ClassifyError(err).String())...)
			return err
		}

		log.Debug("Published message", attrs...)
		return nil
	}
}
