package service

import (
	"context"

	"skillbridge/pkg/logger"
)

// MailService delivers resolution notifications. Delivery is best-effort and
// always happens after the transactional write has committed; a failed send is
// logged and never rolls anything back.
type MailService interface {
	Send(ctx context.Context, to, subject, body string) error
}

type logMailService struct{}

// NewLogMailService returns a MailService that only records the send. Actual
// delivery is handled by an external provider behind the same interface.
func NewLogMailService() MailService {
	return &logMailService{}
}

func (s *logMailService) Send(ctx context.Context, to, subject, body string) error {
	logger.Info("mail queued: to=%s subject=%q bytes=%d", to, subject, len(body))
	return nil
}
