package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskReminderDelivery = "reminders.delivery"

// ReminderDeliveryPayload identifies the reminder record to deliver. The
// record itself carries the rendered message, so the payload stays small.
type ReminderDeliveryPayload struct {
	ReminderID string `json:"reminderId"`
	Method     string `json:"method"`
}

func NewReminderDeliveryTask(payload ReminderDeliveryPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReminderDelivery, data), nil
}

func ParseReminderDeliveryPayload(task *asynq.Task) (ReminderDeliveryPayload, error) {
	var payload ReminderDeliveryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ReminderDeliveryPayload{}, err
	}
	return payload, nil
}
