package scheduler

import (
	"context"
	"fmt"

	"bookinghub_backend/internal/email"
	"bookinghub_backend/internal/reminders/repository"
	"bookinghub_backend/internal/sms"
	"bookinghub_backend/internal/workflows/domain"
	"bookinghub_backend/platform/apperr"
	"bookinghub_backend/platform/config"
	"bookinghub_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Worker consumes reminder delivery tasks and sends the stored messages.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   *repository.Repository
	email  email.Sender
	sms    sms.Sender
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, emailSender email.Sender, smsSender sms.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   repository.New(pool),
		email:  emailSender,
		sms:    smsSender,
		log:    log,
	}

	mux.HandleFunc(TaskReminderDelivery, w.handleReminderDelivery)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleReminderDelivery(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseReminderDeliveryPayload(task)
	if err != nil {
		return err
	}

	reminderID, err := uuid.Parse(payload.ReminderID)
	if err != nil {
		return err
	}

	reminder, err := w.repo.GetByID(ctx, reminderID)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			// Record removed since scheduling; nothing to deliver.
			return nil
		}
		return err
	}

	// The cancelled flag is the source of truth; a task that outlived its
	// record's cancellation is dropped here.
	if reminder.Cancelled || !reminder.Scheduled {
		return nil
	}

	switch domain.Method(reminder.Method) {
	case domain.MethodEmail:
		err = w.email.Send(ctx, reminder.Recipient, reminder.Subject, reminder.Body)
	case domain.MethodSMS:
		err = w.sms.SendMessage(ctx, reminder.Recipient, reminder.Body)
	default:
		w.log.DeliveryEvent(reminder.Method, reminder.BookingUID, false, "unknown delivery method")
		return nil
	}

	if err != nil {
		w.log.DeliveryEvent(reminder.Method, reminder.BookingUID, false, err.Error())
		return err
	}

	w.log.DeliveryEvent(reminder.Method, reminder.BookingUID, true, "")
	return nil
}
