package leaverequest

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type LeaveRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_requests_number"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_user"`

	// ManagerID routes the request to an approver. Nil means unrouted; only
	// the grace-period sweep will ever resolve such a request.
	ManagerID *uuid.UUID `gorm:"type:uuid;index:idx_leave_requests_manager"`

	LeaveType   string    `gorm:"type:varchar(50);not null"`
	StartDate   time.Time `gorm:"type:date;not null"`
	EndDate     time.Time `gorm:"type:date;not null"`
	TotalDays   int       `gorm:"not null"`
	Description string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`

	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_requests_deleted_at"`
}

// CountDays returns the inclusive day span of a request. Dates are treated
// as whole calendar days; a single-day request counts as 1.
func CountDays(startDate, endDate time.Time) int {
	return int(endDate.Sub(startDate).Hours()/24) + 1
}
