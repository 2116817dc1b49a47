package scheduler

import (
	"context"
	"testing"
	"time"

	"bookinghub_backend/internal/workflows/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

func newTaskFromInfo(taskType string, payload []byte) *asynq.Task {
	return asynq.NewTask(taskType, payload)
}

type testSchedulerConfig struct {
	url string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.url }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string { return "test-reminders" }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func newTestClient(t *testing.T) *Client {
	t.Helper()

	srv := miniredis.RunT(t)
	client, err := NewClient(testSchedulerConfig{url: "redis://" + srv.Addr()})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestScheduleDeliveryEnqueuesByReferenceUID(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	referenceUID := uuid.NewString()
	runAt := time.Now().Add(2 * time.Hour)
	if err := client.ScheduleDelivery(ctx, uuid.New(), referenceUID, domain.MethodEmail, runAt); err != nil {
		t.Fatalf("failed to schedule delivery: %v", err)
	}

	info, err := client.inspector.GetTaskInfo(client.queue, referenceUID)
	if err != nil {
		t.Fatalf("expected task to exist: %v", err)
	}
	if info.Type != TaskReminderDelivery {
		t.Errorf("expected task type %s, got %s", TaskReminderDelivery, info.Type)
	}

	payload, err := ParseReminderDeliveryPayload(newTaskFromInfo(info.Type, info.Payload))
	if err != nil {
		t.Fatalf("failed to parse payload: %v", err)
	}
	if payload.Method != string(domain.MethodEmail) {
		t.Errorf("expected EMAIL method, got %s", payload.Method)
	}
}

func TestScheduleDeliveryRejectsDuplicateReference(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	referenceUID := uuid.NewString()
	runAt := time.Now().Add(time.Hour)
	if err := client.ScheduleDelivery(ctx, uuid.New(), referenceUID, domain.MethodSMS, runAt); err != nil {
		t.Fatalf("first schedule failed: %v", err)
	}
	if err := client.ScheduleDelivery(ctx, uuid.New(), referenceUID, domain.MethodSMS, runAt); err == nil {
		t.Fatal("expected duplicate reference UID to be rejected")
	}
}

func TestCancelDeliveryIsIdempotent(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	referenceUID := uuid.NewString()
	if err := client.ScheduleDelivery(ctx, uuid.New(), referenceUID, domain.MethodEmail, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("failed to schedule delivery: %v", err)
	}

	if err := client.CancelDelivery(ctx, referenceUID); err != nil {
		t.Fatalf("failed to cancel delivery: %v", err)
	}
	if _, err := client.inspector.GetTaskInfo(client.queue, referenceUID); err == nil {
		t.Fatal("expected task to be gone after cancel")
	}

	// Cancelling again, or cancelling a reference that never existed, is fine.
	if err := client.CancelDelivery(ctx, referenceUID); err != nil {
		t.Fatalf("second cancel should be a no-op, got: %v", err)
	}
	if err := client.CancelDelivery(ctx, uuid.NewString()); err != nil {
		t.Fatalf("cancelling unknown reference should be a no-op, got: %v", err)
	}
}
