package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	SizeUnitCarats = "carats"
	SizeUnitMM     = "mm"
)

// Stone: Bir sipariş için gereken taş kaydı. Sipariş satırına bağlı
// olabilir ama bağımsız da oluşturulabilir.
type Stone struct {
	ID          uint  `gorm:"primaryKey"`
	OrderID     *uint `gorm:"index"` // bağlı müşteri siparişi (opsiyonel)
	OrderItemID *uint `gorm:"index"` // bağlı sipariş satırı (opsiyonel)

	StoneType     *string  `gorm:"size:100"`
	StoneOrigin   string   `gorm:"size:100;default:'Natural'"`
	StoneShape    *string  `gorm:"size:100"`
	StoneQuantity int      `gorm:"not null;default:1"`
	SizeValue     *float64 // boş = boyut girilmemiş (0 değil!)
	SizeUnit      string   `gorm:"size:10;default:'carats'"`
	WeightCarats  *float64 // eski tek alanlı ağırlık, sadece fallback için
	StoneColor    *string  `gorm:"size:100"`
	StoneSetting  *string  `gorm:"size:100"`
	StoneClarity  *string  `gorm:"size:100"`
	CutGrade      *string  `gorm:"size:100"`
	OriginCountry *string  `gorm:"size:100"`
	Certificate   *string  `gorm:"size:255"`
	Comment       *string  `gorm:"type:text"`

	CreatedBy uint `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FormattedSize: Boyutu birimiyle birlikte formatlar.
// carats -> "1.25 ct", mm -> "6.5 mm", boyut yoksa "" döner.
func (s *Stone) FormattedSize() string {
	if s.SizeValue == nil || *s.SizeValue == 0 {
		// Eski kayıtlar için legacy ağırlık alanına düş
		if s.WeightCarats != nil && *s.WeightCarats != 0 {
			return strconv.FormatFloat(*s.WeightCarats, 'f', -1, 64) + " ct"
		}
		return ""
	}

	if s.SizeUnit == SizeUnitMM {
		return fmt.Sprintf("%.1f mm", *s.SizeValue)
	}
	return fmt.Sprintf("%.2f ct", *s.SizeValue)
}

// EffectiveSizeUnit: Birim boşsa carats varsayılır.
func (s *Stone) EffectiveSizeUnit() string {
	if s.SizeUnit == "" {
		return SizeUnitCarats
	}
	return s.SizeUnit
}

// DisplayString: Liste görünümleri için kısa özet.
// Örn: "Diamond, Natural, round, 1.25 ct, 2pc"
func (s *Stone) DisplayString() string {
	var parts []string

	if s.StoneType != nil && *s.StoneType != "" {
		parts = append(parts, *s.StoneType)
	}
	if s.StoneOrigin != "" {
		parts = append(parts, s.StoneOrigin)
	}
	if s.StoneShape != nil && *s.StoneShape != "" {
		parts = append(parts, *s.StoneShape)
	}
	if size := s.FormattedSize(); size != "" {
		parts = append(parts, size)
	}
	if s.StoneQuantity > 0 {
		parts = append(parts, fmt.Sprintf("%dpc", s.StoneQuantity))
	}

	return strings.Join(parts, ", ")
}
