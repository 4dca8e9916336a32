package ports

import (
	"context"

	"github.com/marketcore/marketplace-api/internal/core/domain"
)

// NotificationJob is the unit of work handed to the notification dispatcher
// whenever an order changes status.
type NotificationJob struct {
	UserID   string
	OrderID  string
	Status   domain.OrderStatus
	Previous domain.OrderStatus
}

// NotificationService turns a job into a delivered push notification.
type NotificationService interface {
	Process(ctx context.Context, job NotificationJob) error
}
