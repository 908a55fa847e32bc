package domain

import "time"

// User roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// SysUser is an authenticated account (customer or admin). Signup is
// verified with an emailed OTP before the account becomes usable.
type SysUser struct {
	ID          int64     `gorm:"primaryKey" json:"id,string"`
	Email       string    `gorm:"size:128;uniqueIndex" json:"email" form:"email"`
	Password    string    `json:"-" form:"-"`
	Name        string    `json:"name" form:"name"`
	Phone       string    `gorm:"size:32" json:"phone" form:"phone"`
	Role        string    `gorm:"size:20;index;default:'customer'" json:"role"`
	IsVerified  bool      `gorm:"default:false" json:"is_verified"`
	Otp         string    `gorm:"size:12" json:"-"`
	OtpExpiry   time.Time `json:"-"`
	OtpAttempts int       `gorm:"default:0" json:"-"`
	LastLogin   time.Time `json:"last_login"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (SysUser) TableName() string {
	return "sys_user"
}
