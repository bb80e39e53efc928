package httpdto

// RegisterRequest is used for POST /auth/register
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is used for POST /auth/login
type LoginRequest struct {
	Identity string `json:"identity" binding:"required"` // username or email
	Password string `json:"password" binding:"required"`
}

// ProfileResponse is returned by GET /auth/profile
type ProfileResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}
