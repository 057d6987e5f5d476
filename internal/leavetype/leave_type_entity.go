package leavetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_leave_types_name"`
	DefaultDays int       `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_types_deleted_at"`
}

// Names is the fixed set of absence categories the system accepts.
var Names = []string{
	"Annual Leave",
	"Volunteering Leave",
	"Paternity Leave",
	"Sabbatical Leave",
	"Relocation Leave",
	"Family Care Leave",
	"Compassionate Leave",
	"Marriage Leave",
	"Work From Home",
}

func IsValidName(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}
