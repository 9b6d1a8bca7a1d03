package utils

import (
	"context"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/viniciusmf/gym-management-backend/config"
)

var auditWriter *kafka.Writer

// InitKafka sets up the audit topic writer. When no brokers are configured
// the writer stays nil and PublishAuditEvent becomes a no-op.
func InitKafka(cfg *config.Config, log *logrus.Logger) {
	if cfg.KafkaBrokers == "" {
		log.Info("ℹ️ Kafka brokers not configured, audit events stay local only")
		return
	}

	topic := cfg.KafkaAuditTopic
	if topic == "" {
		topic = "gym.audit-events"
	}

	auditWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 100 * time.Millisecond,
	}

	log.WithField("topic", topic).Info("✅ Kafka audit writer initialized")
}

// PublishAuditEvent mirrors an audit log entry to Kafka. Failures are
// returned for the caller to log, never to abort the originating request.
func PublishAuditEvent(ctx context.Context, key string, payload []byte) error {
	if auditWriter == nil {
		return nil
	}
	return auditWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

// CloseKafka flushes and closes the audit writer.
func CloseKafka() error {
	if auditWriter == nil {
		return nil
	}
	return auditWriter.Close()
}
