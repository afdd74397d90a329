package job

import (
	"context"
	log "log/slog"

	"Jandi/internal/pkg/consts"
	"Jandi/internal/pkg/kafka"
	"Jandi/internal/pkg/logger"
	"Jandi/internal/repository"

	"github.com/google/uuid"
)

// MailPublisher 邮件消息的队列投递抽象
type MailPublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// InactivityJob 扫描最近一周没有发布文章的用户并投递提醒邮件
type InactivityJob struct {
	userRepo  repository.UserRepo
	publisher MailPublisher
	mailTopic string
}

func NewInactivityJob(userRepo repository.UserRepo, publisher MailPublisher, mailTopic string) *InactivityJob {
	return &InactivityJob{
		userRepo:  userRepo,
		publisher: publisher,
		mailTopic: mailTopic,
	}
}

func (s *InactivityJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	emails, err := s.userRepo.ListInactiveEmails(ctx, consts.InactiveDays)
	if err != nil {
		log.ErrorContext(ctx, "list inactive users error", "err", err)
		return
	}
	if len(emails) == 0 {
		log.InfoContext(ctx, "no inactive users found")
		return
	}

	sent := 0
	for _, email := range emails {
		msg := kafka.MailMessage{
			Recipient: email,
			Subject:   "이번 주 잔디가 비어 있어요",
			Body:      "최근 7일 동안 새 글이 없습니다. 오늘 한 편 어떠세요?",
		}
		if err = s.publisher.Publish(ctx, s.mailTopic, msg); err != nil {
			// 单个失败不阻断其余用户
			log.ErrorContext(ctx, "publish mail message error", "recipient", email, "err", err)
			continue
		}
		sent++
	}

	log.InfoContext(ctx, "inactivity reminders dispatched", "total", len(emails), "sent", sent)
}
