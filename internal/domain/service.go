package domain

import "time"

// Service catalog categories shown on the storefront.
const (
	CategoryWomen    = "women"
	CategoryKids     = "kids"
	CategoryHome     = "home"
	CategoryProducts = "products"
)

// SalonService is one bookable catalog entry (doorstep salon service or
// retail product). Prices are whole rupees.
type SalonService struct {
	ID          int64     `gorm:"primaryKey" json:"id,string"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Description string    `gorm:"type:text" json:"description" form:"description"`
	Category    string    `gorm:"size:32;index" json:"category" form:"category"`
	PriceMin    int64     `json:"price_min" form:"price_min"`
	PriceMax    int64     `json:"price_max" form:"price_max"`
	Duration    int       `json:"duration" form:"duration"` // minutes
	ImageUrl    string    `gorm:"size:1024" json:"image_url" form:"image_url"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active" form:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (SalonService) TableName() string {
	return "salon_service"
}
