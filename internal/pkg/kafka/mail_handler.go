package kafka

import (
	"Jandi/internal/pkg/mail"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// MailHandler 消费邮件队列并触发 SMTP 发送
type MailHandler struct {
	sender mail.Sender
}

func NewMailHandler(sender mail.Sender) *MailHandler {
	return &MailHandler{sender: sender}
}

func (s *MailHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("mail consumer setup")
	return nil
}

func (s *MailHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("mail consumer cleanup")
	return nil
}

func (s *MailHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-mail consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-mail process batch error", "err", err)
		return err
	}
	log.Info("topic-mail consume claim end")
	return nil
}

func (s *MailHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var mailMsg MailMessage
	if err := json.Unmarshal(msg.Value, &mailMsg); err != nil {
		// 坏消息重试也不会变好，记录后跳过
		log.ErrorContext(ctx, "unmarshal mail message error", "err", err)
		return nil
	}

	if mailMsg.Recipient == "" {
		log.WarnContext(ctx, "mail message without recipient, skipped")
		return nil
	}

	return s.sender.Send(ctx, mailMsg.Recipient, mailMsg.Subject, mailMsg.Body)
}
