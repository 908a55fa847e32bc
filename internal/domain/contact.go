package domain

import "time"

// ContactMessage is one contact form submission. Delivery state flags
// track the best-effort email notification and the legacy spreadsheet
// mirror under the data directory.
type ContactMessage struct {
	ID              int64     `gorm:"primaryKey" json:"id,string"`
	Name            string    `json:"name" form:"name"`
	Phone           string    `gorm:"size:32" json:"phone" form:"phone"`
	ServiceInterest string    `gorm:"size:200" json:"service_interest" form:"service_interest"`
	Address         string    `gorm:"type:text" json:"address" form:"address"`
	Message         string    `gorm:"type:text" json:"message" form:"message"`
	EmailSent       bool      `gorm:"default:false" json:"email_sent"`
	SheetUpdated    bool      `gorm:"default:false" json:"sheet_updated"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

func (ContactMessage) TableName() string {
	return "contact_message"
}
