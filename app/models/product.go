package models

import "time"

// Product categories for the add-on shop.
const (
	CategoryProteins   = "proteins"
	CategoryVegetables = "vegetables"
	CategoryFruits     = "fruits"
	CategoryGrains     = "grains"
	CategoryDairy      = "dairy"
	CategorySpices     = "spices"
	CategoryBeverages  = "beverages"
)

// Product is a single add-on shop item. Prices are whole naira and are the
// authoritative amounts for order lines; client-submitted prices are ignored.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(150);not null;index" json:"name" validate:"required,max=150"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:varchar(30);not null;index" json:"category" validate:"oneof=proteins vegetables fruits grains dairy spices beverages"`
	Price       int64     `gorm:"not null" json:"price" validate:"gt=0"`
	Unit        string    `gorm:"type:varchar(30);not null" json:"unit" validate:"required,max=30"`
	InStock     bool      `gorm:"default:true;index" json:"in_stock"`
	Popular     bool      `gorm:"default:false" json:"popular,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
