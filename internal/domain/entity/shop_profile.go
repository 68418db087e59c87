package entity

import "time"

// ShopProfileID is the fixed key of the single shop profile row
const ShopProfileID = 1

// ShopProfile holds the shop identity captured by the setup wizard
type ShopProfile struct {
	ID        int       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ShopName  string    `gorm:"size:255;not null" json:"shop_name"`
	OwnerName string    `gorm:"size:255;not null" json:"owner_name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the ShopProfile model
func (ShopProfile) TableName() string {
	return "shop_profile"
}
