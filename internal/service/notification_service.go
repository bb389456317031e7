package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
	"github.com/sukanyaghosh74/sstudize-task/pkg/jobs"
)

type notificationStore interface {
	Insert(ctx context.Context, notification *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// Mailer delivers high-priority notifications out of band.
type Mailer interface {
	SendEmail(ctx context.Context, recipientID, subject, body string) error
}

// LogMailer writes deliveries to the log instead of a real mail transport.
type LogMailer struct {
	Logger *zap.Logger
}

func (m *LogMailer) SendEmail(_ context.Context, recipientID, subject, body string) error {
	m.Logger.Info("email sent",
		zap.String("recipient_id", recipientID),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// NotificationService persists notifications and dispatches them through a
// background queue. Dispatch failures never propagate to callers; the core
// treats notifications as fire-and-forget.
type NotificationService struct {
	store   notificationStore
	mailer  Mailer
	queue   *jobs.Queue
	logger  *zap.Logger
	now     func() time.Time
	enabled bool
}

func NewNotificationService(store notificationStore, mailer Mailer, logger *zap.Logger, enabled bool, queueCfg jobs.QueueConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{
		store:   store,
		mailer:  mailer,
		logger:  logger,
		now:     time.Now,
		enabled: enabled,
	}
	queueCfg.Logger = logger
	s.queue = jobs.NewQueue("notifications", s.deliver, queueCfg)
	return s
}

// Start launches the dispatch workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the dispatch workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// Send persists the notification and enqueues its delivery. Errors are
// logged and swallowed so feedback submission never fails on notification
// trouble.
func (s *NotificationService) Send(ctx context.Context, recipientID, notificationType, title, message string, priority models.TaskPriority) {
	if !s.enabled {
		return
	}
	notification := &models.Notification{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		Type:        notificationType,
		Title:       title,
		Message:     message,
		Priority:    priority,
		CreatedAt:   s.now(),
	}
	if err := s.store.Insert(ctx, notification); err != nil {
		s.logger.Error("persist notification", zap.Error(err), zap.String("recipient_id", recipientID))
		return
	}
	if err := s.queue.Enqueue(jobs.Job{
		ID:      notification.ID,
		Type:    notificationType,
		Payload: *notification,
	}); err != nil {
		s.logger.Warn("enqueue notification", zap.Error(err), zap.String("notification_id", notification.ID))
	}
}

func (s *NotificationService) deliver(ctx context.Context, job jobs.Job) error {
	notification, ok := job.Payload.(models.Notification)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}
	s.logger.Info("notification dispatched",
		zap.String("recipient_id", notification.RecipientID),
		zap.String("title", notification.Title),
	)
	if s.mailer != nil && (notification.Priority == models.PriorityHigh || notification.Priority == models.PriorityCritical) {
		return s.mailer.SendEmail(ctx, notification.RecipientID, notification.Title, notification.Message)
	}
	return nil
}

// ListForRecipient returns a recipient's notifications, newest first.
func (s *NotificationService) ListForRecipient(ctx context.Context, recipientID string, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.store.ListByRecipient(ctx, recipientID, limit)
}

// MarkRead flags a notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.store.MarkRead(ctx, id)
}
