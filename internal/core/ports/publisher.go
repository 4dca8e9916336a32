package ports

import (
	"context"

	"github.com/marketcore/marketplace-api/internal/core/domain"
)

// OrderEventPublisher emits order lifecycle events to the message broker.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
	PublishOrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error
	Close() error
}

// NotificationSender routes a push notification to its target token.
type NotificationSender interface {
	Send(ctx context.Context, n *domain.PushNotification) error
}
