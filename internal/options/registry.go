package options

import (
	"sort"
	"sync"

	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Format: Seçenek grubunun şekli.
//   - array: sadece değer listesi (shapes, clarities...)
//   - key_value: İngilizce anahtar + Türkçe etiket (types, colors...)
//   - status: anahtar + etiket + renk (stone_order_statuses)
type Format string

const (
	FormatArray    Format = "array"
	FormatKeyValue Format = "key_value"
	FormatStatus   Format = "status"
)

type TypeInfo struct {
	Format   Format
	Sortable bool
}

// optionTypes: Kapalı whitelist. Buranın dışındaki option_type istekleri
// reddedilir. order_types bilerek listede yok: seed ile gelir ama admin
// ekranından düzenlenmez.
var optionTypes = map[string]TypeInfo{
	"stone_types":            {FormatKeyValue, true},
	"stone_origins":          {FormatKeyValue, true},
	"stone_shapes":           {FormatArray, true},
	"stone_colors":           {FormatKeyValue, true},
	"stone_settings":         {FormatKeyValue, true},
	"stone_clarities":        {FormatArray, true},
	"stone_cut_grades":       {FormatArray, true},
	"origin_countries":       {FormatArray, true},
	"manufacturing_statuses": {FormatArray, true},
	"stone_size_units":       {FormatKeyValue, false},
	"stone_order_statuses":   {FormatStatus, false},
}

// Item: Tek dropdown seçeneği. Array tipli gruplarda Label == Value.
type Item struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// Registry: Dropdown seçeneklerinin read-through cache'li servisi.
// Mutasyonlar cache'i geçersiz kılar, okuma tekrar DB'den doldurur.
type Registry struct {
	mu    sync.RWMutex
	cache map[string][]Item
}

func NewRegistry() *Registry {
	return &Registry{cache: make(map[string][]Item)}
}

// TypeInfo: option_type whitelist'te mi, formatı ne?
func LookupType(optionType string) (TypeInfo, bool) {
	info, ok := optionTypes[optionType]
	return info, ok
}

// List: Seçenekleri sıralı döner. Sort-order tablosunda satır varsa o
// sıra, yoksa ekleme (id) sırası geçerlidir.
func (r *Registry) List(optionType string) ([]Item, error) {
	if _, ok := optionTypes[optionType]; !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Geçersiz seçenek tipi")
	}

	r.mu.RLock()
	if items, ok := r.cache[optionType]; ok {
		r.mu.RUnlock()
		return items, nil
	}
	r.mu.RUnlock()

	items, err := loadOrdered(database.DB, optionType)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Seçenekler yüklenemedi")
	}

	r.mu.Lock()
	r.cache[optionType] = items
	r.mu.Unlock()

	return items, nil
}

func loadOrdered(db *gorm.DB, optionType string) ([]Item, error) {
	var values []models.OptionValue
	if err := db.Where("option_type = ?", optionType).
		Order("id asc").
		Find(&values).Error; err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(values))
	for _, v := range values {
		items = append(items, Item{Value: v.Value, Label: v.Label, Color: v.Color})
	}

	var sortRows []models.OptionSortOrder
	if err := db.Where("option_type = ?", optionType).
		Order("sort_order asc").
		Find(&sortRows).Error; err != nil {
		return nil, err
	}

	if len(sortRows) == 0 {
		return items, nil
	}

	// Sort tablosundaki sıraya göre yeniden diz; tabloda olmayan değerler
	// listenin sonuna doğal sırayla eklenir (yeni eklenmiş olabilirler)
	rank := make(map[string]int, len(sortRows))
	for i, row := range sortRows {
		rank[row.OptionValue] = i
	}

	sort.SliceStable(items, func(i, j int) bool {
		ri, iok := rank[items[i].Value]
		rj, jok := rank[items[j].Value]
		if iok && jok {
			return ri < rj
		}
		if iok != jok {
			return iok
		}
		return false // ikisi de tabloda yoksa doğal sıra korunur
	})

	return items, nil
}

// Add: Seçenek ekler. Array tipli gruplar aynı değeri ikinci kez
// eklemez; key_value tipliler mevcut anahtarın etiketini günceller.
// Sıralanabilir gruplarda değer sort tablosunun sonuna eklenir.
func (r *Registry) Add(optionType, value, label, color string) error {
	info, ok := optionTypes[optionType]
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz seçenek tipi")
	}
	if value == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Değer boş olamaz")
	}

	if label == "" || info.Format == FormatArray {
		label = value
	}
	if info.Format != FormatStatus {
		color = ""
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.OptionValue
		err := tx.Where("option_type = ? AND value = ?", optionType, value).
			First(&existing).Error

		switch {
		case err == nil:
			if info.Format == FormatArray {
				return nil // array tipinde duplicate eklenmez, sessiz başarı
			}
			existing.Label = label
			if info.Format == FormatStatus {
				existing.Color = color
			}
			return tx.Save(&existing).Error
		case err == gorm.ErrRecordNotFound:
			row := models.OptionValue{
				OptionType: optionType,
				Value:      value,
				Label:      label,
				Color:      color,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			if info.Sortable {
				return appendSortOrder(tx, optionType, value)
			}
			return nil
		default:
			return err
		}
	})
	if err != nil {
		if _, ok := err.(*fiber.Error); ok {
			return err
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Seçenek eklenemedi")
	}

	r.invalidate(optionType)
	return nil
}

func appendSortOrder(tx *gorm.DB, optionType, value string) error {
	var exists int64
	if err := tx.Model(&models.OptionSortOrder{}).
		Where("option_type = ? AND option_value = ?", optionType, value).
		Count(&exists).Error; err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}

	var next int
	if err := tx.Model(&models.OptionSortOrder{}).
		Where("option_type = ?", optionType).
		Select("COALESCE(MAX(sort_order) + 1, 0)").
		Scan(&next).Error; err != nil {
		return err
	}

	return tx.Create(&models.OptionSortOrder{
		OptionType:  optionType,
		OptionValue: value,
		SortOrder:   next,
	}).Error
}

// Delete: Seçeneği siler. Olmayan değer için sessiz no-op; mevcut Stone
// kayıtlarının serbest metin alanları etkilenmez.
func (r *Registry) Delete(optionType, value string) error {
	info, ok := optionTypes[optionType]
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz seçenek tipi")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("option_type = ? AND value = ?", optionType, value).
			Delete(&models.OptionValue{}).Error; err != nil {
			return err
		}
		if info.Sortable {
			return tx.Where("option_type = ? AND option_value = ?", optionType, value).
				Delete(&models.OptionSortOrder{}).Error
		}
		return nil
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Seçenek silinemedi")
	}

	r.invalidate(optionType)
	return nil
}

// Reorder: Verilen değer listesini yeni sıra olarak kaydeder. Sort
// tablosunda olmayan değerler pozisyonlarına eklenir (upsert), işlem tek
// transaction'dır; herhangi bir adım başarısız olursa eski sıra korunur.
func (r *Registry) Reorder(optionType string, orderedValues []string) error {
	info, ok := optionTypes[optionType]
	if !ok || !info.Sortable {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz seçenek tipi")
	}
	if len(orderedValues) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Sıralama listesi boş")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for idx, value := range orderedValues {
			var row models.OptionSortOrder
			err := tx.Where("option_type = ? AND option_value = ?", optionType, value).
				First(&row).Error

			switch {
			case err == nil:
				if err := tx.Model(&row).Update("sort_order", idx).Error; err != nil {
					return err
				}
			case err == gorm.ErrRecordNotFound:
				if err := tx.Create(&models.OptionSortOrder{
					OptionType:  optionType,
					OptionValue: value,
					SortOrder:   idx,
				}).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Sıralama kaydedilemedi")
	}

	r.invalidate(optionType)
	return nil
}

// StatusInfo: Taş siparişi durum kodunu {etiket, renk} ikilisine çevirir.
// Bilinmeyen kod için kodun kendisi + nötr gri döner.
func (r *Registry) StatusInfo(status string) Item {
	items, err := r.List("stone_order_statuses")
	if err == nil {
		for _, item := range items {
			if item.Value == status {
				return item
			}
		}
	}
	return Item{Value: status, Label: status, Color: "#6c757d"}
}

func (r *Registry) invalidate(optionType string) {
	r.mu.Lock()
	delete(r.cache, optionType)
	r.mu.Unlock()
}

// Invalidate: Tüm cache'i boşaltır (seed sonrası ve testler için).
func (r *Registry) Invalidate() {
	r.mu.Lock()
	r.cache = make(map[string][]Item)
	r.mu.Unlock()
}
