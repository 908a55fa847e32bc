package domain

import "time"

// Customer is a walk-in booking contact; authenticated accounts live in SysUser.
type Customer struct {
	ID        int64     `gorm:"primaryKey" json:"id,string"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Phone     string    `gorm:"size:32;index" json:"phone" form:"phone"`
	Email     string    `gorm:"size:128" json:"email" form:"email"`
	Address   string    `gorm:"type:text" json:"address" form:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customer"
}
