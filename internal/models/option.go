package models

import "time"

// OptionValue: Dropdown'ları besleyen dinamik seçenek kaydı.
// key_value tipli gruplarda Value İngilizce anahtar, Label Türkçe etiket.
// array tipli gruplarda Label = Value. Durum tipli gruplarda Color dolu.
type OptionValue struct {
	ID         uint   `gorm:"primaryKey"`
	OptionType string `gorm:"size:50;not null;uniqueIndex:idx_option_type_value"`
	Value      string `gorm:"size:100;not null;uniqueIndex:idx_option_type_value"`
	Label      string `gorm:"size:150;not null"`
	Color      string `gorm:"size:20"` // sadece stone_order_statuses için
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OptionSortOrder: Sürükle-bırak sıralamasının kalıcı hali. Satır yoksa
// doğal (ekleme) sırası geçerlidir.
type OptionSortOrder struct {
	ID          uint   `gorm:"primaryKey"`
	OptionType  string `gorm:"size:50;not null;uniqueIndex:idx_sort_type_value"`
	OptionValue string `gorm:"size:100;not null;uniqueIndex:idx_sort_type_value"`
	SortOrder   int    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
