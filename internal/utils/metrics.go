package utils

import (
	"time"

	"medspace-api/pkg/metrics"
)

func RecordMongoOperationDuration(operation, collection string, start time.Time) {
	duration := time.Since(start).Seconds()
	metrics.MongoOperationDuration.WithLabelValues(operation, collection).Observe(duration)
}

func RecordMongoError(operation, collection string) {
	metrics.MongoErrorsTotal.WithLabelValues(operation, collection).Inc()
}

func RecordMailDelivery(kind string, err error) {
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	metrics.MailDeliveriesTotal.WithLabelValues(kind, outcome).Inc()
}
