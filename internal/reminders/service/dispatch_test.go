package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bookinghub_backend/internal/reminders/repository"
	"bookinghub_backend/internal/workflows/domain"
	"bookinghub_backend/platform/config"
	"bookinghub_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	created   []*repository.Reminder
	cancelled []uuid.UUID
	active    []repository.Reminder
	createErr error
	listErr   error
}

func (f *fakeStore) Create(_ context.Context, reminder *repository.Reminder) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, reminder)
	return nil
}

func (f *fakeStore) ListActiveForBooking(_ context.Context, bookingUID string, method string, seatReferenceUID string) ([]repository.Reminder, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []repository.Reminder
	for _, r := range f.active {
		if r.BookingUID != bookingUID || r.Method != method || r.Cancelled {
			continue
		}
		if seatReferenceUID != "" && (r.SeatReferenceUID == nil || *r.SeatReferenceUID != seatReferenceUID) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) ListActiveForTeam(_ context.Context, _ uuid.UUID) ([]repository.Reminder, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []repository.Reminder
	for _, r := range f.active {
		if !r.Cancelled {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkCancelled(_ context.Context, id uuid.UUID) error {
	for i := range f.active {
		if f.active[i].ID == id && !f.active[i].Cancelled {
			f.active[i].Cancelled = true
			f.cancelled = append(f.cancelled, id)
			return nil
		}
	}
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeStore) DeleteForTeam(_ context.Context, _ uuid.UUID) (int64, error) {
	deleted := int64(len(f.active))
	f.active = nil
	return deleted, nil
}

type scheduledTask struct {
	reminderID   uuid.UUID
	referenceUID string
	method       domain.Method
	runAt        time.Time
}

type fakeTasks struct {
	scheduled   []scheduledTask
	cancelled   []string
	scheduleErr error
	cancelErr   error
}

func (f *fakeTasks) ScheduleDelivery(_ context.Context, reminderID uuid.UUID, referenceUID string, method domain.Method, runAt time.Time) error {
	if f.scheduleErr != nil {
		return f.scheduleErr
	}
	f.scheduled = append(f.scheduled, scheduledTask{reminderID, referenceUID, method, runAt})
	return nil
}

func (f *fakeTasks) CancelDelivery(_ context.Context, referenceUID string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, referenceUID)
	return nil
}

type fakeSMSConfig struct {
	configured bool
}

func (f fakeSMSConfig) LookupSMSCredentials() (config.SMSCredentials, bool) {
	if !f.configured {
		return config.SMSCredentials{}, false
	}
	return config.SMSCredentials{AccountSID: "AC123", AuthToken: "secret", FromNumber: "+15005550006"}, true
}

func testLogger() *logger.Logger {
	return logger.New("development")
}

func testEvent() domain.CalendarEvent {
	return domain.CalendarEvent{
		BookingUID: "booking-abc",
		Title:      "Intro Call",
		StartTime:  time.Now().UTC().Add(48 * time.Hour),
		EndTime:    time.Now().UTC().Add(49 * time.Hour),
		Organizer:  domain.Person{Name: "Dana Host", Email: "dana@example.com", Timezone: "Europe/Amsterdam"},
		Attendees: []domain.Person{
			{Name: "Alex Guest", Email: "alex@example.com", Phone: "+31612345678", Locale: "en", Timezone: "Europe/Amsterdam"},
		},
	}
}

func beforeEventWorkflow(action domain.Action) (domain.Workflow, domain.WorkflowStep) {
	owner := uuid.New()
	wf := domain.Workflow{
		ID:          uuid.New(),
		Name:        "reminder",
		OwnerUserID: &owner,
		Trigger:     domain.TriggerBeforeEvent,
		Offset:      &domain.Offset{Value: 30, Unit: domain.UnitMinute},
	}
	step := domain.WorkflowStep{
		ID:         uuid.New(),
		WorkflowID: wf.ID,
		StepNumber: 1,
		Action:     action,
	}
	wf.Steps = []domain.WorkflowStep{step}
	return wf, step
}

func TestEmailDispatcherSchedules(t *testing.T) {
	store := &fakeStore{}
	tasks := &fakeTasks{}
	d := NewEmailDispatcher(store, tasks, testLogger())

	wf, step := beforeEventWorkflow(domain.ActionEmailAttendee)
	evt := testEvent()

	result := d.Schedule(context.Background(), wf, step, evt, ScheduleOptions{})
	if result.Outcome != domain.OutcomeScheduled {
		t.Fatalf("expected scheduled, got %s (%s)", result.Outcome, result.Reason)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected 1 stored reminder, got %d", len(store.created))
	}

	reminder := store.created[0]
	if reminder.Recipient != "alex@example.com" {
		t.Errorf("expected attendee recipient, got %q", reminder.Recipient)
	}
	if reminder.Method != string(domain.MethodEmail) {
		t.Errorf("expected EMAIL method, got %q", reminder.Method)
	}
	if !reminder.Scheduled || reminder.Cancelled {
		t.Error("expected reminder scheduled and not cancelled")
	}
	if reminder.ReferenceUID == nil || *reminder.ReferenceUID == "" {
		t.Fatal("expected a reference UID")
	}
	if strings.Contains(reminder.Body, "{EVENT_NAME}") {
		t.Error("expected template tokens to be substituted")
	}

	wantAt := evt.StartTime.Add(-30 * time.Minute)
	if len(tasks.scheduled) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks.scheduled))
	}
	if !tasks.scheduled[0].runAt.Equal(wantAt) {
		t.Errorf("expected task at %v, got %v", wantAt, tasks.scheduled[0].runAt)
	}
	if tasks.scheduled[0].referenceUID != *reminder.ReferenceUID {
		t.Error("task reference UID does not match the stored record")
	}
}

func TestEmailDispatcherRecipientPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		action domain.Action
		sendTo string
		want   string
	}{
		{"host", domain.ActionEmailHost, "", "dana@example.com"},
		{"attendee", domain.ActionEmailAttendee, "", "alex@example.com"},
		{"attendee override", domain.ActionEmailAttendee, "override@example.com", "override@example.com"},
		{"address", domain.ActionEmailAddress, "third@example.com", "third@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			d := NewEmailDispatcher(store, &fakeTasks{}, testLogger())
			wf, step := beforeEventWorkflow(tt.action)
			step.SendTo = tt.sendTo

			result := d.Schedule(context.Background(), wf, step, testEvent(), ScheduleOptions{})
			if result.Outcome != domain.OutcomeScheduled {
				t.Fatalf("expected scheduled, got %s (%s)", result.Outcome, result.Reason)
			}
			if store.created[0].Recipient != tt.want {
				t.Errorf("expected recipient %q, got %q", tt.want, store.created[0].Recipient)
			}
		})
	}
}

func TestSMSDispatcherRecipientPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		action domain.Action
		sendTo string
		want   string
	}{
		{"attendee", domain.ActionSMSAttendee, "", "+31612345678"},
		{"attendee override", domain.ActionSMSAttendee, "+31687654321", "+31687654321"},
		{"number", domain.ActionSMSNumber, "+31687654321", "+31687654321"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			d := NewSMSDispatcher(store, &fakeTasks{}, fakeSMSConfig{configured: true}, testLogger())
			wf, step := beforeEventWorkflow(tt.action)
			step.SendTo = tt.sendTo

			result := d.Schedule(context.Background(), wf, step, testEvent(), ScheduleOptions{})
			if result.Outcome != domain.OutcomeScheduled {
				t.Fatalf("expected scheduled, got %s (%s)", result.Outcome, result.Reason)
			}
			if store.created[0].Recipient != tt.want {
				t.Errorf("expected recipient %q, got %q", tt.want, store.created[0].Recipient)
			}
		})
	}
}

func TestEmailDispatcherSkipsSMSSteps(t *testing.T) {
	d := NewEmailDispatcher(&fakeStore{}, &fakeTasks{}, testLogger())
	wf, step := beforeEventWorkflow(domain.ActionSMSAttendee)

	result := d.Schedule(context.Background(), wf, step, testEvent(), ScheduleOptions{})
	if result.Outcome != domain.OutcomeSkipped {
		t.Fatalf("expected skipped, got %s", result.Outcome)
	}
}

func TestEmailDispatcherFailsWithoutRecipient(t *testing.T) {
	store := &fakeStore{}
	d := NewEmailDispatcher(store, &fakeTasks{}, testLogger())
	wf, step := beforeEventWorkflow(domain.ActionEmailAttendee)
	evt := testEvent()
	evt.Attendees = nil

	result := d.Schedule(context.Background(), wf, step, evt, ScheduleOptions{})
	if result.Outcome != domain.OutcomeFailed {
		t.Fatalf("expected failed, got %s", result.Outcome)
	}
	if len(store.created) != 0 {
		t.Error("expected no reminder stored for a failed dispatch")
	}
}

func TestEmailDispatcherFailsWithoutOffset(t *testing.T) {
	d := NewEmailDispatcher(&fakeStore{}, &fakeTasks{}, testLogger())
	wf, step := beforeEventWorkflow(domain.ActionEmailAttendee)
	wf.Offset = nil

	result := d.Schedule(context.Background(), wf, step, testEvent(), ScheduleOptions{})
	if result.Outcome != domain.OutcomeFailed {
		t.Fatalf("expected failed, got %s", result.Outcome)
	}
	if result.Reason != "cannot determine send time" {
		t.Errorf("unexpected reason: %q", result.Reason)
	}
}

func TestScheduleAllDryRunIsNoOp(t *testing.T) {
	store := &fakeStore{}
	tasks := &fakeTasks{}
	s := newTestScheduler(store, tasks, true)
	wf, _ := beforeEventWorkflow(domain.ActionEmailHost)

	summary := s.ScheduleAll(context.Background(), []domain.Workflow{wf}, testEvent(), ScheduleOptions{DryRun: true})
	if summary.Scheduled != 0 || summary.Skipped != 0 || summary.Failed != 0 || len(summary.Results) != 0 {
		t.Fatalf("dry run must report an empty summary, got %+v", summary)
	}
	if len(store.created) != 0 || len(tasks.scheduled) != 0 {
		t.Error("dry run must not persist or enqueue")
	}
}

func TestEmailDispatcherCancelsRecordOnEnqueueFailure(t *testing.T) {
	store := &fakeStore{}
	tasks := &fakeTasks{scheduleErr: errors.New("queue down")}
	d := NewEmailDispatcher(store, tasks, testLogger())
	wf, step := beforeEventWorkflow(domain.ActionEmailHost)

	result := d.Schedule(context.Background(), wf, step, testEvent(), ScheduleOptions{})
	if result.Outcome != domain.OutcomeFailed {
		t.Fatalf("expected failed, got %s", result.Outcome)
	}
	if len(store.created) != 1 || len(store.cancelled) != 1 {
		t.Fatalf("expected stored record to be cancelled, created=%d cancelled=%d", len(store.created), len(store.cancelled))
	}
	if store.cancelled[0] != store.created[0].ID {
		t.Error("cancelled the wrong record")
	}
}

func TestSMSDispatcherSchedules(t *testing.T) {
	store := &fakeStore{}
	tasks := &fakeTasks{}
	d := NewSMSDispatcher(store, tasks, fakeSMSConfig{configured: true}, testLogger())
	wf, step := beforeEventWorkflow(domain.ActionSMSAttendee)

	result := d.Schedule(context.Background(), wf, step, testEvent(), ScheduleOptions{})
	if result.Outcome != domain.OutcomeScheduled {
		t.Fatalf("expected scheduled, got %s (%s)", result.Outcome, result.Reason)
	}

	reminder := store.created[0]
	if reminder.Recipient != "+31612345678" {
		t.Errorf("expected attendee phone, got %q", reminder.Recipient)
	}
	if reminder.Subject != "" {
		t.Error("sms reminders carry no subject")
	}
	if reminder.Body == "" || strings.Contains(reminder.Body, "{EVENT_NAME}") {
		t.Errorf("expected rendered sms body, got %q", reminder.Body)
	}
}

func TestSMSDispatcherFailsWhenVerificationPending(t *testing.T) {
	store := &fakeStore{}
	d := NewSMSDispatcher(store, &fakeTasks{}, fakeSMSConfig{configured: true}, testLogger())
	wf, step := beforeEventWorkflow(domain.ActionSMSAttendee)
	step.NumberVerificationPending = true

	result := d.Schedule(context.Background(), wf, step, testEvent(), ScheduleOptions{})
	if result.Outcome != domain.OutcomeFailed {
		t.Fatalf("expected failed, got %s", result.Outcome)
	}
	if result.Reason != "phone number not verified" {
		t.Errorf("unexpected reason: %q", result.Reason)
	}
	if len(store.created) != 0 {
		t.Error("expected no reminder stored")
	}
}

func TestSMSDispatcherFailsWhenNotConfigured(t *testing.T) {
	d := NewSMSDispatcher(&fakeStore{}, &fakeTasks{}, fakeSMSConfig{configured: false}, testLogger())
	wf, step := beforeEventWorkflow(domain.ActionSMSAttendee)

	result := d.Schedule(context.Background(), wf, step, testEvent(), ScheduleOptions{})
	if result.Outcome != domain.OutcomeFailed {
		t.Fatalf("expected failed, got %s", result.Outcome)
	}
	if result.Reason != "sms delivery not configured" {
		t.Errorf("unexpected reason: %q", result.Reason)
	}
}

func TestSMSDispatcherSkipsEmailSteps(t *testing.T) {
	d := NewSMSDispatcher(&fakeStore{}, &fakeTasks{}, fakeSMSConfig{configured: true}, testLogger())
	wf, step := beforeEventWorkflow(domain.ActionEmailHost)

	result := d.Schedule(context.Background(), wf, step, testEvent(), ScheduleOptions{})
	if result.Outcome != domain.OutcomeSkipped {
		t.Fatalf("expected skipped, got %s", result.Outcome)
	}
}

func newTestScheduler(store *fakeStore, tasks *fakeTasks, smsConfigured bool) *Scheduler {
	log := testLogger()
	email := NewEmailDispatcher(store, tasks, log)
	sms := NewSMSDispatcher(store, tasks, fakeSMSConfig{configured: smsConfigured}, log)
	return NewScheduler(email, sms, store, tasks, log)
}

func TestScheduleAllAggregatesOutcomes(t *testing.T) {
	store := &fakeStore{}
	tasks := &fakeTasks{}
	s := newTestScheduler(store, tasks, false)

	owner := uuid.New()
	wf := domain.Workflow{
		ID:          uuid.New(),
		Name:        "mixed",
		OwnerUserID: &owner,
		Trigger:     domain.TriggerBeforeEvent,
		Offset:      &domain.Offset{Value: 1, Unit: domain.UnitHour},
		Steps: []domain.WorkflowStep{
			{ID: uuid.New(), StepNumber: 1, Action: domain.ActionEmailAttendee},
			{ID: uuid.New(), StepNumber: 2, Action: domain.ActionSMSAttendee},
			{ID: uuid.New(), StepNumber: 3, Action: domain.Action("CAL_AI_PHONE_CALL")},
		},
	}

	summary := s.ScheduleAll(context.Background(), []domain.Workflow{wf}, testEvent(), ScheduleOptions{})
	if summary.Scheduled != 1 {
		t.Errorf("expected 1 scheduled, got %d", summary.Scheduled)
	}
	if summary.Failed != 1 {
		t.Errorf("expected 1 failed (sms unconfigured), got %d", summary.Failed)
	}
	if summary.Skipped != 1 {
		t.Errorf("expected 1 skipped (unsupported action), got %d", summary.Skipped)
	}
	if len(summary.Results) != 3 {
		t.Errorf("expected 3 results, got %d", len(summary.Results))
	}
}

func TestCancelAllForBookingCancelsBothChannels(t *testing.T) {
	emailRef := "ref-email"
	smsRef := "ref-sms"
	store := &fakeStore{
		active: []repository.Reminder{
			{ID: uuid.New(), BookingUID: "booking-abc", Method: string(domain.MethodEmail), Scheduled: true, ReferenceUID: &emailRef},
			{ID: uuid.New(), BookingUID: "booking-abc", Method: string(domain.MethodSMS), Scheduled: true, ReferenceUID: &smsRef},
			{ID: uuid.New(), BookingUID: "other", Method: string(domain.MethodEmail), Scheduled: true},
		},
	}
	tasks := &fakeTasks{}
	s := newTestScheduler(store, tasks, true)

	if err := s.CancelAllForBooking(context.Background(), "booking-abc", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.cancelled) != 2 {
		t.Fatalf("expected 2 cancelled records, got %d", len(store.cancelled))
	}
	if len(tasks.cancelled) != 2 {
		t.Fatalf("expected 2 cancelled tasks, got %d", len(tasks.cancelled))
	}
}

func TestCancelAllForBookingSecondCallIsNoOp(t *testing.T) {
	emailRef := "ref-email"
	smsRef := "ref-sms"
	store := &fakeStore{
		active: []repository.Reminder{
			{ID: uuid.New(), BookingUID: "booking-abc", Method: string(domain.MethodEmail), Scheduled: true, ReferenceUID: &emailRef},
			{ID: uuid.New(), BookingUID: "booking-abc", Method: string(domain.MethodSMS), Scheduled: true, ReferenceUID: &smsRef},
		},
	}
	tasks := &fakeTasks{}
	s := newTestScheduler(store, tasks, true)

	if err := s.CancelAllForBooking(context.Background(), "booking-abc", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.cancelled) != 2 || len(tasks.cancelled) != 2 {
		t.Fatalf("expected 2 cancellations, got records=%d tasks=%d", len(store.cancelled), len(tasks.cancelled))
	}

	if err := s.CancelAllForBooking(context.Background(), "booking-abc", ""); err != nil {
		t.Fatalf("unexpected error on second call: %v", err)
	}
	if len(store.cancelled) != 2 || len(tasks.cancelled) != 2 {
		t.Fatalf("second call must touch nothing, got records=%d tasks=%d", len(store.cancelled), len(tasks.cancelled))
	}
}

func TestCancelAllForBookingMarksRecordWhenTaskCancelFails(t *testing.T) {
	ref := "ref-email"
	store := &fakeStore{
		active: []repository.Reminder{
			{ID: uuid.New(), BookingUID: "booking-abc", Method: string(domain.MethodEmail), Scheduled: true, ReferenceUID: &ref},
		},
	}
	tasks := &fakeTasks{cancelErr: errors.New("task already gone")}
	s := newTestScheduler(store, tasks, true)

	if err := s.CancelAllForBooking(context.Background(), "booking-abc", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.cancelled) != 1 {
		t.Fatal("record must be marked cancelled even when the task cancel fails")
	}
}

func TestCancelAllForBookingSeatScoped(t *testing.T) {
	seat := "seat-1"
	store := &fakeStore{
		active: []repository.Reminder{
			{ID: uuid.New(), BookingUID: "booking-abc", Method: string(domain.MethodEmail), Scheduled: true, SeatReferenceUID: &seat},
			{ID: uuid.New(), BookingUID: "booking-abc", Method: string(domain.MethodEmail), Scheduled: true},
		},
	}
	s := newTestScheduler(store, &fakeTasks{}, true)

	if err := s.CancelAllForBooking(context.Background(), "booking-abc", seat); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.cancelled) != 1 {
		t.Fatalf("expected only the seat's reminder cancelled, got %d", len(store.cancelled))
	}
}

func TestCancelForTeamDeletesRecords(t *testing.T) {
	ref := "ref-1"
	store := &fakeStore{
		active: []repository.Reminder{
			{ID: uuid.New(), BookingUID: "b1", Method: string(domain.MethodEmail), Scheduled: true, ReferenceUID: &ref},
			{ID: uuid.New(), BookingUID: "b2", Method: string(domain.MethodSMS), Scheduled: true},
		},
	}
	tasks := &fakeTasks{}
	s := newTestScheduler(store, tasks, true)

	deleted, err := s.CancelForTeam(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted records, got %d", deleted)
	}
	if len(tasks.cancelled) != 1 {
		t.Errorf("expected the queued task cancelled, got %d", len(tasks.cancelled))
	}
	if len(store.active) != 0 {
		t.Errorf("expected reminder rows removed, %d left", len(store.active))
	}
}
