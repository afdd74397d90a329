package kafka

import (
	"context"
	"testing"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	recipients []string
	subjects   []string
}

func (s *recordingSender) Send(ctx context.Context, recipient, subject, body string) error {
	s.recipients = append(s.recipients, recipient)
	s.subjects = append(s.subjects, subject)
	return nil
}

func TestMailHandlerSendsMessage(t *testing.T) {
	sender := &recordingSender{}
	handler := NewMailHandler(sender)

	value, err := json.Marshal(MailMessage{
		Recipient: "user@example.com",
		Subject:   "하루 한 편",
		Body:      "오늘의 잔디를 채워 보세요.",
	})
	require.NoError(t, err)

	err = handler.logic(context.Background(), &sarama.ConsumerMessage{Value: value})
	require.NoError(t, err)
	require.Len(t, sender.recipients, 1)
	assert.Equal(t, "user@example.com", sender.recipients[0])
	assert.Equal(t, "하루 한 편", sender.subjects[0])
}

func TestMailHandlerSkipsBadPayload(t *testing.T) {
	sender := &recordingSender{}
	handler := NewMailHandler(sender)

	// 坏消息不重试，直接确认跳过
	err := handler.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte("not json")})
	assert.NoError(t, err)
	assert.Empty(t, sender.recipients)
}

func TestMailHandlerSkipsMissingRecipient(t *testing.T) {
	sender := &recordingSender{}
	handler := NewMailHandler(sender)

	value, err := json.Marshal(MailMessage{Subject: "제목만 있는 메일"})
	require.NoError(t, err)

	err = handler.logic(context.Background(), &sarama.ConsumerMessage{Value: value})
	assert.NoError(t, err)
	assert.Empty(t, sender.recipients)
}
