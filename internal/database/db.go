package database

import (
	"log"

	"atolye-backend/internal/config"
	"atolye-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate: Tüm tabloları oluşturur/günceller. Testler in-memory SQLite
// ile aynı şemayı kurmak için de bunu çağırır.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.Stone{},
		&models.StoneOrder{},
		&models.StoneOrderItem{},
		&models.OrderExtension{},
		&models.OrderFile{},
		&models.OptionValue{},
		&models.OptionSortOrder{},
		&models.ActivityLog{},
	)
}
