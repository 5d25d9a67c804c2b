package models

import "time"

// OrderExtension: Müşteri siparişine 1:1 bağlı üretim metadata'sı.
// Tarih alanları boş bırakılırsa ilk okumada sipariş tarihinden
// hesaplanıp kalıcı hale getirilir (+8 hafta / +10 hafta).
type OrderExtension struct {
	ID      uint `gorm:"primaryKey"`
	OrderID uint `gorm:"uniqueIndex;not null"`

	FinishByDate  *time.Time `gorm:"index"` // üretimin bitmesi gereken tarih
	DeliverByDate *time.Time `gorm:"index"` // müşteriye teslim tarihi

	OrderModel          bool   `gorm:"default:false"` // model sipariş edildi mi
	OrderProduction     bool   `gorm:"default:false"` // üretime verildi mi
	OrderPrinting       bool   `gorm:"default:false"` // baskıya verildi mi
	CastingNotes        string `gorm:"type:text"`     // döküm notları
	ManufacturingStatus string `gorm:"size:100;index"`
	OrderType           string `gorm:"size:100;default:'Standard'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
