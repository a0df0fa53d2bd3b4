package handler

import "time"

// resultResponse is the envelope for replies that carry no resource.
type resultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6,max=100"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=NewPassword"`
}

type sessionResponse struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type loginResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Session *sessionResponse `json:"session,omitempty"`
}

// --- Accounts ---

type createAccountRequest struct {
	Username        string `json:"username"         validate:"required,max=100"`
	Password        string `json:"password"         validate:"required,min=6,max=100"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=Password"`
	RoleID          int64  `json:"role_id"          validate:"required,gt=0"`
}

// updateAccountRequest leaves the password untouched when Password is blank.
type updateAccountRequest struct {
	Username        string `json:"username"         validate:"required,max=100"`
	Password        string `json:"password"         validate:"omitempty,min=6,max=100"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=Password"`
	RoleID          int64  `json:"role_id"          validate:"required,gt=0"`
	Active          *bool  `json:"active"           validate:"required"`
}

type accountResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	RoleID    int64     `json:"role_id"`
	RoleName  string    `json:"role_name,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type accountListResponse struct {
	Data  []accountResponse `json:"data"`
	Total int               `json:"total"`
}

// --- Roles ---

type roleRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type roleResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type roleListResponse struct {
	Data  []roleResponse `json:"data"`
	Total int            `json:"total"`
}
