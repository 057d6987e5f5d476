package leaverequest

import "time"

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

type CreateLeaveRequestRequest struct {
	LeaveType   string `json:"leave_type" binding:"required"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Description string `json:"description"`
	ManagerID   string `json:"manager_id" binding:"omitempty,uuid"`
}

type UpdateLeaveRequestRequest struct {
	LeaveType   string `json:"leave_type"`
	StartDate   string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Description string `json:"description"`
	ManagerID   string `json:"manager_id" binding:"omitempty,uuid"`
}

type DecisionRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

type LeaveRequestResponse struct {
	ID            string     `json:"id"`
	RequestNumber string     `json:"request_number"`
	UserID        string     `json:"user_id"`
	ManagerID     *string    `json:"manager_id,omitempty"`
	LeaveType     string     `json:"leave_type"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	TotalDays     int        `json:"total_days"`
	Description   string     `json:"description,omitempty"`
	Status        string     `json:"status"`
	ApprovedBy    *string    `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
