package models

import "time"

const StoneOrderDefaultStatus = "needs_payment"

// StoneOrder: Tedarikçiye verilen toplu taş siparişi. Birden fazla Stone
// kaydını gruplar (many-to-many).
type StoneOrder struct {
	ID          uint      `gorm:"primaryKey"`
	OrderNumber string    `gorm:"size:100;not null;index"`
	OrderDate   time.Time `gorm:"index;not null"`
	Status      string    `gorm:"size:50;not null;default:'needs_payment';index"`
	CreatedBy   uint      `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StoneOrderItem: Taş ile taş siparişi arasındaki üyelik kaydı.
// InCart taşın değil üyeliğin özelliğidir: aynı taş başka bir siparişte
// sepete eklenmemiş olabilir.
type StoneOrderItem struct {
	ID           uint `gorm:"primaryKey"`
	StoneID      uint `gorm:"not null;uniqueIndex:idx_stone_order_pair;constraint:OnDelete:CASCADE"`
	StoneOrderID uint `gorm:"not null;uniqueIndex:idx_stone_order_pair;index;constraint:OnDelete:CASCADE"`
	InCart       bool `gorm:"default:false"`
	CreatedAt    time.Time

	Stone      Stone      `gorm:"foreignKey:StoneID;constraint:OnDelete:CASCADE"`
	StoneOrder StoneOrder `gorm:"foreignKey:StoneOrderID;constraint:OnDelete:CASCADE"`
}
