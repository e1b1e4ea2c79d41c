// Package movements consumes the movement event stream published by the
// movement service.
package movements

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskMovementRecorded is the task type for movement events.
const TaskMovementRecorded = "movements.recorded"

// MovementRecordedPayload describes one posted account movement.
type MovementRecordedPayload struct {
	MovementID string  `json:"movementId"`
	ProductID  string  `json:"productId"`
	ClientID   string  `json:"clientId"`
	Type       string  `json:"type"`
	Amount     float64 `json:"amount"`
}

// NewMovementRecordedTask builds an asynq task from a movement payload.
func NewMovementRecordedTask(payload MovementRecordedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMovementRecorded, data), nil
}

// ParseMovementRecordedPayload decodes a movement task's payload.
func ParseMovementRecordedPayload(task *asynq.Task) (MovementRecordedPayload, error) {
	var payload MovementRecordedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return MovementRecordedPayload{}, err
	}
	return payload, nil
}
