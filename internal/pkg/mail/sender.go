package mail

import (
	"Jandi/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"net/smtp"
	"strings"
)

// Sender 邮件发送抽象，消费端只依赖这个接口
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// SMTPSender net/smtp 实现
type SMTPSender struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
		from: cfg.From,
	}
}

func (s *SMTPSender) Send(ctx context.Context, recipient, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + recipient,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{recipient}, []byte(msg)); err != nil {
		return err
	}

	log.InfoContext(ctx, "Mail sent", "recipient", recipient, "subject", subject)
	return nil
}
