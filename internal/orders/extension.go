package orders

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"gorm.io/gorm"
)

// ErrFieldNotAllowed: İzin listesinde olmayan alan güncellenmeye çalışıldı.
var ErrFieldNotAllowed = errors.New("alan güncellenemez")

// Üretim ekranından satır içi düzenlenebilen alanlar. order_type burada
// yoktur; sipariş tipi oluşturma anında belirlenir.
var updatableFields = map[string]bool{
	"finish_by_date":       true,
	"deliver_by_date":      true,
	"order_model":          true,
	"order_production":     true,
	"casting_notes":        true,
	"order_printing":       true,
	"manufacturing_status": true,
}

const (
	defaultFinishWeeks  = 8
	defaultDeliverWeeks = 10
)

// EnsureExtension: Siparişin uzantı kaydını getirir, yoksa varsayılan
// tarihlerle oluşturur.
func EnsureExtension(order *models.Order) (*models.OrderExtension, error) {
	var ext models.OrderExtension
	err := database.DB.Where("order_id = ?", order.ID).First(&ext).Error
	if err == nil {
		return &ext, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	finish := order.PlacedAt.AddDate(0, 0, defaultFinishWeeks*7)
	deliver := order.PlacedAt.AddDate(0, 0, defaultDeliverWeeks*7)
	ext = models.OrderExtension{
		OrderID:       order.ID,
		FinishByDate:  &finish,
		DeliverByDate: &deliver,
	}
	if err := database.DB.Create(&ext).Error; err != nil {
		return nil, err
	}
	return &ext, nil
}

// GetExtension: Uzantıyı okur. Tarih alanları boşsa sipariş tarihinden
// hesaplanır ve kalıcı yazılır; sonraki okumalar aynı değeri görür.
func GetExtension(order *models.Order) (*models.OrderExtension, error) {
	ext, err := EnsureExtension(order)
	if err != nil {
		return nil, err
	}

	changed := false
	if ext.FinishByDate == nil {
		finish := order.PlacedAt.AddDate(0, 0, defaultFinishWeeks*7)
		ext.FinishByDate = &finish
		changed = true
	}
	if ext.DeliverByDate == nil {
		deliver := order.PlacedAt.AddDate(0, 0, defaultDeliverWeeks*7)
		ext.DeliverByDate = &deliver
		changed = true
	}

	if changed {
		if err := database.DB.Save(ext).Error; err != nil {
			return nil, err
		}
	}

	return ext, nil
}

// UpdateExtensionField: Tek alan günceller (satır içi düzenleme).
// İzin listesi dışındaki alan adları ErrFieldNotAllowed döner.
func UpdateExtensionField(order *models.Order, field string, value any) (*models.OrderExtension, error) {
	if !updatableFields[field] {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotAllowed, field)
	}

	ext, err := EnsureExtension(order)
	if err != nil {
		return nil, err
	}

	switch field {
	case "finish_by_date", "deliver_by_date":
		date, err := coerceDate(value)
		if err != nil {
			return nil, err
		}
		if field == "finish_by_date" {
			ext.FinishByDate = date
		} else {
			ext.DeliverByDate = date
		}
	case "order_model":
		ext.OrderModel = coerceBool(value)
	case "order_production":
		ext.OrderProduction = coerceBool(value)
	case "order_printing":
		ext.OrderPrinting = coerceBool(value)
	case "casting_notes":
		ext.CastingNotes = coerceString(value)
	case "manufacturing_status":
		ext.ManufacturingStatus = coerceString(value)
	}

	if err := database.DB.Save(ext).Error; err != nil {
		return nil, err
	}
	return ext, nil
}

func coerceDate(value any) (*time.Time, error) {
	s := strings.TrimSpace(coerceString(value))
	if s == "" {
		return nil, nil
	}
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("geçersiz tarih: %q", s)
	}
	return &date, nil
}

// coerceBool: JSON'dan bool, sayı veya "1"/"true" string gelebilir;
// checkbox'lı eski istemciler string gönderir.
func coerceBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v == "1" || strings.EqualFold(v, "true")
	default:
		return false
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
