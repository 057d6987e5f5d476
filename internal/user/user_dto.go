package user

type CreateUserRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	Mobile    string `json:"mobile" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role" binding:"omitempty,oneof=EMPLOYEE MANAGER"`
	ManagerID string `json:"manager_id" binding:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	FullName  string `json:"full_name"`
	Mobile    string `json:"mobile"`
	Email     string `json:"email" binding:"omitempty,email"`
	Role      string `json:"role" binding:"omitempty,oneof=EMPLOYEE MANAGER"`
	ManagerID string `json:"manager_id" binding:"omitempty,uuid"`
}

type SearchUsersRequest struct {
	Search string `json:"search"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	FullName  string  `json:"full_name"`
	Mobile    string  `json:"mobile"`
	Email     string  `json:"email,omitempty"`
	Role      string  `json:"role"`
	ManagerID *string `json:"manager_id,omitempty"`
}
