package models

import "time"

// OrderFile: Siparişe eklenmiş dosya (CAD modeli, sertifika taraması vb.)
type OrderFile struct {
	ID            uint   `gorm:"primaryKey"`
	OrderID       uint   `gorm:"index;not null"`
	FileName      string `gorm:"size:255;not null"` // kullanıcıya gösterilen ad
	FilePath      string `gorm:"size:500;not null"` // upload kökünden göreli yol
	FileType      string `gorm:"size:100"`
	FileSize      int64
	ThumbnailPath *string `gorm:"size:500"`
	Comment       *string `gorm:"type:text"`
	UploadedBy    uint    `gorm:"index;not null"`
	UploadedAt    time.Time
}
