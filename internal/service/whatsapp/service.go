package whatsapp

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/sortbench/internal/domain/models"
	"github.com/mamadbah2/sortbench/internal/service/reporting"
	client "github.com/mamadbah2/sortbench/pkg/clients/whatsapp"
)

// RunNotifier delivers the outcome of a benchmark run.
type RunNotifier interface {
	SendRunSummary(ctx context.Context, summary models.RunSummary) error
}

// NotificationService sends run summaries as WhatsApp text messages.
type NotificationService struct {
	client    client.Client
	recipient string
	logger    *zap.Logger
}

// NewNotificationService wires a new service instance.
func NewNotificationService(c client.Client, recipient string, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{client: c, recipient: recipient, logger: logger}
}

// SendRunSummary formats summary and sends it to the configured recipient.
func (s *NotificationService) SendRunSummary(ctx context.Context, summary models.RunSummary) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:   s.recipient,
		Body: reporting.SummarizeRun(summary),
	})
	if err != nil {
		return fmt.Errorf("send run summary %s: %w", summary.RunID, err)
	}

	var messageID string
	if resp != nil && len(resp.Messages) > 0 {
		messageID = resp.Messages[0].ID
	}
	s.logger.Info("run summary sent", zap.String("run_id", summary.RunID), zap.String("message_id", messageID))
	return nil
}
