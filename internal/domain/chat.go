package domain

import "time"

// ChatConversation archives a finished assistant session for audit.
// Live session state lives in the bbolt-backed assistant.SessionStore.
type ChatConversation struct {
	ID         int64     `gorm:"primaryKey" json:"id,string"`
	SessionId  string    `gorm:"size:64;index" json:"session_id"`
	Messages   string    `gorm:"type:text" json:"messages"` // JSON array of {role, content, at}
	CustomerId int64     `gorm:"index" json:"customer_id,string"`
	BookingId  int64     `gorm:"index" json:"booking_id,string"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ChatConversation) TableName() string {
	return "chat_conversation"
}
