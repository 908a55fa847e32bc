package domain

import (
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Booking status tags. A booking without a status is treated as pending.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Booking is one appointment request. ServiceIds holds a JSON array of
// SalonService identifiers; TotalAmount is whole rupees.
type Booking struct {
	ID            int64     `gorm:"primaryKey" json:"id,string"`
	CustomerId    int64     `gorm:"index" json:"customer_id,string" form:"customer_id"`
	UserId        int64     `gorm:"index" json:"user_id,string" form:"user_id"`
	ServiceIds    string    `gorm:"type:text" json:"service_ids" form:"service_ids"`
	AppointmentAt time.Time `gorm:"index" json:"appointment_at" form:"appointment_at"`
	Status        string    `gorm:"size:20;index;default:'pending'" json:"status" form:"status"`
	TotalAmount   int64     `gorm:"default:0" json:"total_amount" form:"total_amount"`
	Notes         string    `gorm:"type:text" json:"notes" form:"notes"`
	ReminderSent  bool      `gorm:"default:false" json:"reminder_sent"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Booking) TableName() string {
	return "booking"
}

// ValidBookingStatus reports whether s is one of the four status tags.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// NormalizeBookingStatus maps an absent status to pending.
func NormalizeBookingStatus(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return BookingPending
	}
	return s
}

// ServiceIdList decodes the ServiceIds JSON array. Malformed content
// yields an empty list rather than an error; callers fall back to
// free-text service names in that case.
func (b *Booking) ServiceIdList() []int64 {
	if strings.TrimSpace(b.ServiceIds) == "" {
		return nil
	}
	var ids []int64
	if err := jsoniter.UnmarshalFromString(b.ServiceIds, &ids); err != nil {
		return nil
	}
	return ids
}

// SetServiceIdList encodes ids into the ServiceIds column.
func (b *Booking) SetServiceIdList(ids []int64) {
	s, err := jsoniter.MarshalToString(ids)
	if err != nil {
		b.ServiceIds = "[]"
		return
	}
	b.ServiceIds = s
}
