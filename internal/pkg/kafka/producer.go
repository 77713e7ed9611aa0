package kafka

import (
	"StudentQuiz/internal/api/config"
	"context"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// CommentEventProducer 同步发送评论事件，按题目分区保证同一题目的事件有序
type CommentEventProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewCommentEventProducer(cfg *config.Config) (*CommentEventProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, errors.Wrap(err, "create comment event producer")
	}
	return NewCommentEventProducerWith(producer, cfg.KafkaCommentConsumer.Topic), nil
}

// NewCommentEventProducerWith 使用已有的 SyncProducer
func NewCommentEventProducerWith(producer sarama.SyncProducer, topic string) *CommentEventProducer {
	return &CommentEventProducer{producer: producer, topic: topic}
}

func (s *CommentEventProducer) Publish(ctx context.Context, event *CommentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal comment event")
	}

	partition, offset, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(event.QuestionID, 10)),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return errors.Wrapf(err, "publish %s event for comment %d", event.Action, event.CommentID)
	}

	log.DebugContext(ctx, "comment event published",
		"action", event.Action,
		"comment_id", event.CommentID,
		"partition", partition,
		"offset", offset)
	return nil
}

func (s *CommentEventProducer) Close() error {
	return s.producer.Close()
}
