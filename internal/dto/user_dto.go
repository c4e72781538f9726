package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdateProfileRequest struct {
	Avatar   *string `json:"avatar"`
	Phone    *string `json:"phone"`
	RealName *string `json:"realName"`
	Address  *string `json:"address"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// RegisterAdminRequest creates admin or sysadmin accounts (sysadmin only).
type RegisterAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	RealName string `json:"realName"`
	Address  string `json:"address"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	RealName *string `json:"realName"`
	Address  *string `json:"address"`
	Role     *string `json:"role"`
}

type UpdateStatusRequest struct {
	IsEnabled *bool `json:"isEnabled"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// AdminUserDto is the management view of an account.
type AdminUserDto struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Phone       string     `json:"phone"`
	RealName    string     `json:"realName"`
	Address     string     `json:"address"`
	IsEnabled   bool       `json:"isEnabled"`
	IsLocked    bool       `json:"isLocked"`
	LockEndTime *time.Time `json:"lockEndTime,omitempty"`
	LockReason  string     `json:"lockReason,omitempty"`
	IsBanned    bool       `json:"isBanned"`
	BanEndTime  *time.Time `json:"banEndTime,omitempty"`
	BanReason   string     `json:"banReason,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
