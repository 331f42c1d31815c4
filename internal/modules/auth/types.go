package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrOwnerExists        = errors.New("owner account already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionInvalid     = errors.New("session expired or revoked")
)

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name"`
	Mail     string `json:"mail"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

type LoginResult struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
}
