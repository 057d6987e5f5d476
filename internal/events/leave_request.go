package events

import "time"

const LeaveNotificationsTopic = "hr.leave.notifications.v1"

const (
	LeaveRequestCreated      = "leave_request_created"
	LeaveRequestUpdated      = "leave_request_updated"
	LeaveRequestApproved     = "leave_request_approved"
	LeaveRequestAutoApproved = "leave_request_auto_approved"
	LeaveRequestRejected     = "leave_request_rejected"
)

// LeaveRequestEvent is the notification intent written to the outbox on every
// request state change. Recipients carries the addresses the gateway should
// notify (owner, and the owner's manager when one is assigned).
type LeaveRequestEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	OwnerID    string    `json:"owner_id"`
	OwnerName  string    `json:"owner_name"`
	LeaveType  string    `json:"leave_type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TotalDays  int       `json:"total_days"`
	Status     string    `json:"status"`
	Recipients []string  `json:"recipients"`
	OccurredAt time.Time `json:"occurred_at"`
}
