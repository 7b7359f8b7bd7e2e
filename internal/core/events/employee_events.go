package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeEmployeeCreated = "employee.created"
	EventTypeEmployeeUpdated = "employee.updated"
	EventTypeEmployeeDeleted = "employee.deleted"
)

// EmployeeEvent records a committed change to an employee record. Actor is the
// username of the caller, empty when unknown.
type EmployeeEvent struct {
	BaseEvent
	EmployeeID int64  `json:"employee_id"`
	Actor      string `json:"actor"`
}

func newEmployeeEvent(eventType string, employeeID int64, actor string, data map[string]interface{}) *EmployeeEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["employee_id"] = employeeID
	data["actor"] = actor
	return &EmployeeEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data:      data,
		},
		EmployeeID: employeeID,
		Actor:      actor,
	}
}

func NewEmployeeCreatedEvent(employeeID int64, actor, department string) *EmployeeEvent {
	return newEmployeeEvent(EventTypeEmployeeCreated, employeeID, actor, map[string]interface{}{
		"department": department,
	})
}

func NewEmployeeUpdatedEvent(employeeID int64, actor, department string) *EmployeeEvent {
	return newEmployeeEvent(EventTypeEmployeeUpdated, employeeID, actor, map[string]interface{}{
		"department": department,
	})
}

func NewEmployeeDeletedEvent(employeeID int64, actor string) *EmployeeEvent {
	return newEmployeeEvent(EventTypeEmployeeDeleted, employeeID, actor, nil)
}
