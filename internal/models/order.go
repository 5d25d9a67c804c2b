package models

import "time"

// Order: Müşteri siparişi (e-ticaret tarafından gelen satış siparişi)
type Order struct {
	ID           uint      `gorm:"primaryKey"`
	OrderNumber  string    `gorm:"size:100;uniqueIndex;not null"`
	CustomerName string    `gorm:"size:150"`
	PlacedAt     time.Time `gorm:"index;not null"` // sipariş tarihi
	Status       string    `gorm:"size:50;default:'processing'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem: Sipariş içindeki her ürün satırı
type OrderItem struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   uint   `gorm:"index;not null"`
	Name      string `gorm:"size:255;not null"`
	Quantity  int    `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
