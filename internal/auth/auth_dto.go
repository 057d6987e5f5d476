package auth

type LoginRequest struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Mobile   string `json:"mobile"`
	Role     string `json:"role"`
}
