package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles, ordered by privilege: resident < admin < sysadmin.
const (
	RoleResident = "resident"
	RoleAdmin    = "admin"
	RoleSysadmin = "sysadmin"
)

// User is a community account.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string     `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email       string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Role        string     `gorm:"size:20;not null;default:'resident'" json:"role"`
	Avatar      string     `gorm:"size:500" json:"avatar"`
	Phone       string     `gorm:"size:30" json:"phone"`
	RealName    string     `gorm:"size:50" json:"realName"`
	Address     string     `gorm:"size:255" json:"address"`
	IsEnabled   bool       `gorm:"not null;default:true" json:"isEnabled"`
	IsLocked    bool       `gorm:"not null;default:false" json:"isLocked"`
	LockEndTime *time.Time `json:"lockEndTime,omitempty"`
	LockReason  string     `gorm:"size:500" json:"lockReason,omitempty"`
	IsBanned    bool       `gorm:"not null;default:false" json:"isBanned"`
	BanEndTime  *time.Time `json:"banEndTime,omitempty"`
	BanReason   string     `gorm:"size:500" json:"banReason,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Locked reports whether the account is currently locked. A lock with an end
// time expires on its own; one without an end time holds until cleared.
func (u *User) Locked() bool {
	if !u.IsLocked {
		return false
	}
	if u.LockEndTime != nil {
		return u.LockEndTime.After(time.Now())
	}
	return true
}

// Banned reports whether a moderation ban is still in effect. Like locks,
// a ban with an end time expires on its own.
func (u *User) Banned() bool {
	if !u.IsBanned {
		return false
	}
	if u.BanEndTime != nil {
		return u.BanEndTime.After(time.Now())
	}
	return true
}

// IsAdminRole reports whether the user holds admin or sysadmin privileges.
func (u *User) IsAdminRole() bool {
	return u.Role == RoleAdmin || u.Role == RoleSysadmin
}
