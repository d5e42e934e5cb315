package queue

import (
	"fmt"

	"go.uber.org/zap"
)

// MessageQueue is the broker-agnostic publish/subscribe surface. Report
// events fan out through it so downstream consumers (alerting, analytics)
// stay decoupled from the HTTP path.
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}

// Subjects published by the report pipeline.
const (
	SubjectReportCreated  = "reports.created"
	SubjectScoreThreshold = "reports.threshold_crossed"
)

// New builds a MessageQueue for the configured driver.
func New(driver, url string, log *zap.Logger) (MessageQueue, error) {
	switch driver {
	case "nats":
		return NewNATSQueue(url, log)
	case "rabbitmq":
		return NewRabbitMQQueue(url, log)
	default:
		return nil, fmt.Errorf("unknown queue driver %q", driver)
	}
}
