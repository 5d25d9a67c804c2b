package audit

import (
	"encoding/json"
	"log"
	"math/rand"
	"time"

	"atolye-backend/internal/database"
	"atolye-backend/internal/models"
)

type LogOptions struct {
	UserID     uint
	Action     string
	ObjectType string
	ObjectID   *uint
	Details    any
	Severity   models.LogSeverity
}

// WriteLog: Aktivite kaydı yazar. Best-effort: hata asıl işlemi asla
// bozmamalı, sadece loglanır.
func WriteLog(opts LogOptions) {
	if opts.UserID == 0 {
		return
	}

	if opts.Severity == "" {
		opts.Severity = models.SeverityInfo
	}

	details := ""
	if opts.Details != nil {
		if b, err := json.Marshal(opts.Details); err == nil {
			details = string(b)
		}
	}

	userName := ""
	var user models.User
	if err := database.DB.Select("name").First(&user, opts.UserID).Error; err == nil {
		userName = user.Name
	}

	entry := models.ActivityLog{
		UserID:     opts.UserID,
		UserName:   userName,
		Action:     opts.Action,
		ObjectType: opts.ObjectType,
		ObjectID:   opts.ObjectID,
		Details:    details,
		Severity:   opts.Severity,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("Aktivite kaydı yazılamadı: %v", err)
		return
	}

	cleanOldLogs()
}

// cleanOldLogs: 30 günden eski kayıtları siler. Her yazmada çalışması
// gereksiz yük olacağı için %1 olasılıkla tetiklenir.
func cleanOldLogs() {
	if rand.Intn(100) != 0 {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -30)
	if err := database.DB.Where("created_at < ?", cutoff).Delete(&models.ActivityLog{}).Error; err != nil {
		log.Printf("Eski aktivite kayıtları temizlenemedi: %v", err)
	}
}

// ObjectID helper: uint'ten *uint üretir (log çağrılarını kısaltmak için)
func ObjectID(id uint) *uint {
	return &id
}
