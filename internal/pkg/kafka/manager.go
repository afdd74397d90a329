package kafka

import (
	"Jandi/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理邮件进程的 Kafka 消费者
type ConsumerManager struct {
	mailConsumer sarama.ConsumerGroup
	mailHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, mailHandler sarama.ConsumerGroupHandler) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	mailConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaMailConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		mailConsumer: mailConsumer,
		mailHandler:  mailHandler,
	}, nil
}

// Start 启动消费者，阻塞到 ctx 取消为止
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaMailConsumer.Topic
		log.Info("Mail consumer started", "topic", topic)
		for {
			if err := m.mailConsumer.Consume(ctx, []string{topic}, m.mailHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.mailConsumer.Close(); err != nil {
		log.Error("Failed to close mail consumer", "err", err)
	}

	return nil
}
