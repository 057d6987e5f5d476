package balance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance is one user's remaining whole-day allowance for one leave
// type. The (user_id, leave_type_id) pair is unique; days never goes
// negative, enforced by the guarded deduct statement.
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_user_type"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_user_type"`
	Days        int       `gorm:"type:int;not null;default:0;check:days >= 0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BalanceView is the joined read model (balance plus leave type name).
type BalanceView struct {
	LeaveTypeID   uuid.UUID
	LeaveTypeName string
	Days          int
}
