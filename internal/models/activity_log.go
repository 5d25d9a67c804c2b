package models

import "time"

type LogSeverity string

const (
	SeverityInfo    LogSeverity = "info"
	SeveritySuccess LogSeverity = "success"
	SeverityWarning LogSeverity = "warning"
	SeverityError   LogSeverity = "error"
)

type ActivityLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	// Hangi kullanıcı?
	UserID   uint   `gorm:"index;not null"`
	UserName string `gorm:"size:100"` // kullanıcı adı (denormalize)

	// Ne yapıldı? (ör: "Stone created", "Option deleted")
	Action string `gorm:"size:100;not null"`

	// Hangi nesne? (ör: "stone", "stone_order", "order", "settings")
	ObjectType string `gorm:"size:50;index;not null"`
	ObjectID   *uint  `gorm:"index"`

	// Ek detaylar (JSON)
	Details string `gorm:"type:text"`

	Severity LogSeverity `gorm:"size:20;index;default:'info'"`
}
