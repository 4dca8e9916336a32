package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

// statusMessages maps an order status to the push notification body.
var statusMessages = map[domain.OrderStatus]string{
	domain.StatusPending:    "We received your order.",
	domain.StatusConfirmed:  "Your order has been confirmed.",
	domain.StatusProcessing: "Your order is being prepared.",
	domain.StatusShipped:    "Your order is on its way.",
	domain.StatusDelivered:  "Your order has been delivered.",
	domain.StatusCancelled:  "Your order has been cancelled.",
}

type notificationService struct {
	users  ports.UserRepository
	sender ports.NotificationSender
	log    zerolog.Logger
}

// NewNotificationService returns a ports.NotificationService that resolves
// the user's device token and sends the push message.
func NewNotificationService(users ports.UserRepository, sender ports.NotificationSender, log zerolog.Logger) ports.NotificationService {
	return &notificationService{users: users, sender: sender, log: log}
}

// Process builds and sends the push notification for one status change.
// Users without a registered device token are skipped silently.
func (s *notificationService) Process(ctx context.Context, job ports.NotificationJob) error {
	user, err := s.users.FindByID(ctx, job.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("user_id", job.UserID).Msg("notification target gone, dropping")
			return nil
		}
		return fmt.Errorf("process notification: %w", err)
	}
	if user.DeviceToken == "" {
		s.log.Debug().Str("user_id", job.UserID).Msg("no device token, skipping notification")
		return nil
	}

	body, ok := statusMessages[job.Status]
	if !ok {
		body = fmt.Sprintf("Your order is now %s.", job.Status)
	}

	n := &domain.PushNotification{
		To: user.DeviceToken,
		Notification: domain.NotificationPayload{
			Title: "Order update",
			Body:  body,
		},
		Data: map[string]string{
			"type":     "order_status",
			"order_id": job.OrderID,
			"status":   string(job.Status),
		},
	}

	if err := s.sender.Send(ctx, n); err != nil {
		return fmt.Errorf("process notification: send: %w", err)
	}

	s.log.Info().Str("order_id", job.OrderID).Str("status", string(job.Status)).Msg("notification sent")
	return nil
}
