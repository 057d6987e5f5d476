package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName string    `gorm:"type:varchar(255);not null"`
	Mobile   string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_users_mobile"`
	Email    string    `gorm:"type:text;uniqueIndex:uq_users_email"`
	Password string    `gorm:"type:text;not null"`
	Role     string    `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`

	// ManagerID is a non-owning reference to another user row. Kept as a
	// plain foreign key, never an embedded struct, since the chain is cyclic.
	ManagerID *uuid.UUID `gorm:"type:uuid;index:idx_users_manager"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_users_deleted_at"`
}

func IsValidRole(role string) bool {
	return role == RoleEmployee || role == RoleManager
}
