package orders

import (
	"testing"
	"time"

	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Test veritabanı açılamadı: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Test veritabanı migrate edilemedi: %v", err)
	}

	database.DB = db
	return db
}

func createTestOrder(t *testing.T, db *gorm.DB, placed time.Time) *models.Order {
	order := models.Order{
		OrderNumber: "W-" + placed.Format("20060102150405.000"),
		PlacedAt:    placed,
		Status:      "processing",
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Test siparişi oluşturulamadı: %v", err)
	}
	return &order
}

func TestExtensionDefaultDates(t *testing.T) {
	db := setupOrderTestDB(t)

	placed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	order := createTestOrder(t, db, placed)

	ext, err := GetExtension(order)
	assert.NoError(t, err)
	assert.NotNil(t, ext.FinishByDate)
	assert.NotNil(t, ext.DeliverByDate)

	// +8 hafta ve +10 hafta
	assert.Equal(t, "2024-02-26", ext.FinishByDate.Format("2006-01-02"))
	assert.Equal(t, "2024-03-11", ext.DeliverByDate.Format("2006-01-02"))

	// Varsayılanlar kalıcı yazılır, ikinci okuma aynı değeri görür
	again, err := GetExtension(order)
	assert.NoError(t, err)
	assert.Equal(t, ext.ID, again.ID)
	assert.Equal(t, "2024-02-26", again.FinishByDate.Format("2006-01-02"))

	var count int64
	db.Model(&models.OrderExtension{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(1), count, "sipariş başına tek uzantı kaydı olmalı")
}

func TestExtensionDefaultsFillPersistedNulls(t *testing.T) {
	db := setupOrderTestDB(t)

	placed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	order := createTestOrder(t, db, placed)

	// Tarihsiz kayıt (eski veriden kalmış gibi)
	assert.NoError(t, db.Create(&models.OrderExtension{OrderID: order.ID}).Error)

	ext, err := GetExtension(order)
	assert.NoError(t, err)
	assert.Equal(t, "2024-02-26", ext.FinishByDate.Format("2006-01-02"))
	assert.Equal(t, "2024-03-11", ext.DeliverByDate.Format("2006-01-02"))
}

func TestUpdateExtensionFieldAllowList(t *testing.T) {
	db := setupOrderTestDB(t)
	order := createTestOrder(t, db, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := UpdateExtensionField(order, "order_type", "Wedding")
	assert.ErrorIs(t, err, ErrFieldNotAllowed, "order_type satır içi düzenlenemez")

	_, err = UpdateExtensionField(order, "id", 99)
	assert.ErrorIs(t, err, ErrFieldNotAllowed)

	ext, err := UpdateExtensionField(order, "manufacturing_status", "Casting")
	assert.NoError(t, err)
	assert.Equal(t, "Casting", ext.ManufacturingStatus)
}

func TestUpdateExtensionFieldCoercions(t *testing.T) {
	db := setupOrderTestDB(t)
	order := createTestOrder(t, db, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	ext, err := UpdateExtensionField(order, "finish_by_date", "2024-05-01")
	assert.NoError(t, err)
	assert.Equal(t, "2024-05-01", ext.FinishByDate.Format("2006-01-02"))

	_, err = UpdateExtensionField(order, "finish_by_date", "01/05/2024")
	assert.Error(t, err, "desteklenmeyen tarih formatı reddedilmeli")

	// Checkbox'lı istemciler "1" string gönderir
	ext, err = UpdateExtensionField(order, "order_model", "1")
	assert.NoError(t, err)
	assert.True(t, ext.OrderModel)

	ext, err = UpdateExtensionField(order, "order_production", true)
	assert.NoError(t, err)
	assert.True(t, ext.OrderProduction)

	ext, err = UpdateExtensionField(order, "order_printing", float64(0))
	assert.NoError(t, err)
	assert.False(t, ext.OrderPrinting)

	ext, err = UpdateExtensionField(order, "casting_notes", "14k sarı altın")
	assert.NoError(t, err)
	assert.Equal(t, "14k sarı altın", ext.CastingNotes)

	// Boş tarih alanı temizler
	ext, err = UpdateExtensionField(order, "finish_by_date", "")
	assert.NoError(t, err)
	assert.Nil(t, ext.FinishByDate)
}
