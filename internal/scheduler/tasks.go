package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskMailCheck = "mail.check"

const TaskNotifyDispatch = "notify.dispatch"

type MailCheckPayload struct {
	TriggeredBy string `json:"triggeredBy"`
}

type NotifyDispatchPayload struct {
	TriggeredBy string `json:"triggeredBy"`
}

func NewMailCheckTask(payload MailCheckPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMailCheck, data), nil
}

func ParseMailCheckPayload(task *asynq.Task) (MailCheckPayload, error) {
	var payload MailCheckPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return MailCheckPayload{}, err
	}
	return payload, nil
}

func NewNotifyDispatchTask(payload NotifyDispatchPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotifyDispatch, data), nil
}

func ParseNotifyDispatchPayload(task *asynq.Task) (NotifyDispatchPayload, error) {
	var payload NotifyDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return NotifyDispatchPayload{}, err
	}
	return payload, nil
}
