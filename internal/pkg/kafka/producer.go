package kafka

import (
	"Jandi/internal/api/config"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// ArticleMessage 注册成功后发往下游索引/通知的文章条目
type ArticleMessage struct {
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"published_at"`
	Title       string    `json:"title"`
	UserID      string    `json:"user_id"`
	Platform    string    `json:"platform"`
}

// MailMessage 邮件队列的消息体
type MailMessage struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Producer 同步生产者封装，主服务与邮件调度共用
type Producer struct {
	producer sarama.SyncProducer
}

func NewProducer(cfg *config.Config) (*Producer, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &Producer{producer: producer}, nil
}

// Publish JSON 编码后发送一条消息，至少一次投递
func (s *Producer) Publish(ctx context.Context, topic string, payload interface{}) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	partition, offset, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "Kafka message published",
		"topic", topic, "partition", partition, "offset", offset)
	return nil
}

func (s *Producer) Close() error {
	return s.producer.Close()
}
