package leavetype

type CreateLeaveTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	DefaultDays int    `json:"default_days" binding:"min=0"`
}

type UpdateLeaveTypeRequest struct {
	DefaultDays int `json:"default_days" binding:"min=0"`
}

type LeaveTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DefaultDays int    `json:"default_days"`
}
