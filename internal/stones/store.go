package stones

import (
	"errors"

	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"gorm.io/gorm"
)

// Normalize: Kayıt öncesi zorunlu alan düzeltmeleri. Origin hiçbir zaman
// boş kalmaz, miktar her zaman >= 1, birim boşsa carats.
func Normalize(stone *models.Stone) {
	if stone.StoneOrigin == "" {
		stone.StoneOrigin = "Natural"
	}
	if stone.StoneQuantity < 1 {
		stone.StoneQuantity = 1
	}
	if stone.SizeUnit == "" {
		stone.SizeUnit = models.SizeUnitCarats
	}
}

func Create(stone *models.Stone) error {
	Normalize(stone)
	return database.DB.Create(stone).Error
}

func Save(stone *models.Stone) error {
	Normalize(stone)
	return database.DB.Save(stone).Error
}

func Get(id uint) (*models.Stone, error) {
	var stone models.Stone
	if err := database.DB.First(&stone, id).Error; err != nil {
		return nil, err
	}
	return &stone, nil
}

// Delete: Önce taş siparişi üyeliklerini, sonra taşın kendisini siler.
// Şema cascade FK taşısa da sıra uygulama tarafında da korunur ki
// SQLite gibi FK'sız kurulumlarda artık satır kalmasın.
func Delete(id uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("stone_id = ?", id).
			Delete(&models.StoneOrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Stone{}, id).Error
	})
}

// StoneOrderOf: Taşın bağlı olduğu taş siparişini döner. Şema çoklu
// üyeliğe izin verir; pratikte taş tek aktif siparişte olur ve burada
// ilk eşleşme döner (sıra belirtilmemiş, belgelenmiş davranış).
func StoneOrderOf(stoneID uint) (*models.StoneOrder, error) {
	var order models.StoneOrder
	err := database.DB.
		Joins("INNER JOIN stone_order_items soi ON soi.stone_order_id = stone_orders.id").
		Where("soi.stone_id = ?", stoneID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

type ListFilters struct {
	Page          int
	PerPage       int
	OrderID       *uint
	OrderItemID   *uint
	HasStoneOrder *bool
	Search        string
}

type ListedStone struct {
	models.Stone
	HasStoneOrder bool `gorm:"column:has_stone_order"`
}

type ListResult struct {
	Stones []ListedStone
	Total  int64
	Pages  int64
}

// List: Filtreli, sayfalı taş listesi. Her satıra taşın herhangi bir taş
// siparişine bağlı olup olmadığı bilgisi eklenir.
func List(f ListFilters) (*ListResult, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 200 {
		f.PerPage = 20
	}

	q := database.DB.Model(&models.Stone{})

	if f.OrderID != nil {
		q = q.Where("order_id = ?", *f.OrderID)
	}
	if f.OrderItemID != nil {
		q = q.Where("order_item_id = ?", *f.OrderItemID)
	}
	if f.HasStoneOrder != nil {
		sub := "EXISTS (SELECT 1 FROM stone_order_items soi WHERE soi.stone_id = stones.id)"
		if *f.HasStoneOrder {
			q = q.Where(sub)
		} else {
			q = q.Where("NOT " + sub)
		}
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where(
			"stone_type LIKE ? OR stone_origin LIKE ? OR stone_shape LIKE ? OR comment LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []ListedStone
	err := q.Select("stones.*, " +
		"CASE WHEN EXISTS (SELECT 1 FROM stone_order_items soi WHERE soi.stone_id = stones.id) " +
		"THEN 1 ELSE 0 END AS has_stone_order").
		Order("id DESC").
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Stones: rows,
		Total:  total,
		Pages:  (total + int64(f.PerPage) - 1) / int64(f.PerPage),
	}, nil
}
