package service

import (
	"context"
	"testing"

	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

func TestNotificationService_Process(t *testing.T) {
	repo := newStubUserRepo()
	sender := &stubSender{}
	svc := NewNotificationService(repo, sender, discardLogger)
	ctx := context.Background()

	u := &domain.User{Name: "Ana", DeviceToken: "tok-abc"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatal(err)
	}

	err := svc.Process(ctx, ports.NotificationJob{
		UserID:   u.ID,
		OrderID:  "ord1",
		Status:   domain.StatusShipped,
		Previous: domain.StatusProcessing,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(sender.sent))
	}
	n := sender.sent[0]
	if n.To != "tok-abc" {
		t.Errorf("to = %s", n.To)
	}
	if n.Data["order_id"] != "ord1" || n.Data["status"] != "shipped" {
		t.Errorf("data = %v", n.Data)
	}
	if n.Notification.Body == "" {
		t.Error("empty body")
	}
}

func TestNotificationService_Process_SkipsWithoutDeviceToken(t *testing.T) {
	repo := newStubUserRepo()
	sender := &stubSender{}
	svc := NewNotificationService(repo, sender, discardLogger)
	ctx := context.Background()

	u := &domain.User{Name: "Ana"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatal(err)
	}

	if err := svc.Process(ctx, ports.NotificationJob{UserID: u.ID, OrderID: "ord1", Status: domain.StatusConfirmed}); err != nil {
		t.Fatal(err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("sent %d notifications, want 0", len(sender.sent))
	}
}

func TestNotificationService_Process_DropsDeletedUser(t *testing.T) {
	repo := newStubUserRepo()
	sender := &stubSender{}
	svc := NewNotificationService(repo, sender, discardLogger)

	err := svc.Process(context.Background(), ports.NotificationJob{UserID: "ghost", OrderID: "ord1", Status: domain.StatusConfirmed})
	if err != nil {
		t.Errorf("deleted user must be dropped silently, got %v", err)
	}
	if len(sender.sent) != 0 {
		t.Error("nothing should be sent")
	}
}

func TestNotificationService_Process_SenderFailure(t *testing.T) {
	repo := newStubUserRepo()
	sender := &stubSender{err: errBoom}
	svc := NewNotificationService(repo, sender, discardLogger)
	ctx := context.Background()

	u := &domain.User{Name: "Ana", DeviceToken: "tok-abc"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatal(err)
	}

	if err := svc.Process(ctx, ports.NotificationJob{UserID: u.ID, OrderID: "ord1", Status: domain.StatusConfirmed}); err == nil {
		t.Error("sender failure must surface so the job can be retried")
	}
}
