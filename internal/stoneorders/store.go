package stoneorders

import (
	"errors"
	"strconv"

	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"gorm.io/gorm"
)

// NextOrderNumber: Mevcut sipariş numaralarından tamamen sayısal
// olanların en büyüğü + 1. Sayısal olmayan numaralar ("abc", "2024-A")
// diziye katılmaz. Hiç sayısal numara yoksa "1".
func NextOrderNumber(db *gorm.DB) (string, error) {
	var numbers []string
	if err := db.Model(&models.StoneOrder{}).
		Pluck("order_number", &numbers).Error; err != nil {
		return "", err
	}

	max := 0
	found := false
	for _, num := range numbers {
		n, err := strconv.Atoi(num)
		if err != nil || n < 0 {
			continue
		}
		if !found || n > max {
			max = n
			found = true
		}
	}

	if !found {
		return "1", nil
	}
	return strconv.Itoa(max + 1), nil
}

// Create: Taş siparişi oluşturur. Numara boşsa otomatik atanır, durum
// boşsa needs_payment.
func Create(order *models.StoneOrder) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if order.OrderNumber == "" {
			num, err := NextOrderNumber(tx)
			if err != nil {
				return err
			}
			order.OrderNumber = num
		}
		if order.Status == "" {
			order.Status = models.StoneOrderDefaultStatus
		}
		return tx.Create(order).Error
	})
}

func Save(order *models.StoneOrder) error {
	return database.DB.Save(order).Error
}

func Get(id uint) (*models.StoneOrder, error) {
	var order models.StoneOrder
	if err := database.DB.First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Delete: Siparişi ve üyelik satırlarını siler. Taşların kendisi kalır.
func Delete(id uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("stone_order_id = ?", id).
			Delete(&models.StoneOrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.StoneOrder{}, id).Error
	})
}

// AddStone: Taşı siparişe ekler. (stone, order) çifti zaten varsa no-op
// başarı; tekrar eklemek hata değildir.
func AddStone(orderID, stoneID uint) error {
	return addStoneTx(database.DB, orderID, stoneID)
}

func addStoneTx(tx *gorm.DB, orderID, stoneID uint) error {
	var count int64
	if err := tx.Model(&models.StoneOrderItem{}).
		Where("stone_id = ? AND stone_order_id = ?", stoneID, orderID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return tx.Create(&models.StoneOrderItem{
		StoneID:      stoneID,
		StoneOrderID: orderID,
		InCart:       false,
	}).Error
}

func RemoveStone(orderID, stoneID uint) error {
	return database.DB.
		Where("stone_id = ? AND stone_order_id = ?", stoneID, orderID).
		Delete(&models.StoneOrderItem{}).Error
}

// SetInCart: Üyelik satırının in_cart bayrağını günceller. Bayrak taşa
// değil (taş, sipariş) çiftine aittir.
func SetInCart(orderID, stoneID uint, inCart bool) error {
	result := database.DB.Model(&models.StoneOrderItem{}).
		Where("stone_id = ? AND stone_order_id = ?", stoneID, orderID).
		Update("in_cart", inCart)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MemberStone: Sipariş kapsamındaki taş + üyelik bayrağı.
type MemberStone struct {
	models.Stone
	InCart bool `gorm:"column:in_cart"`
}

// Stones: Siparişteki taşları in_cart bilgisiyle döner (yeni eklenen üstte).
func Stones(orderID uint) ([]MemberStone, error) {
	var rows []MemberStone
	err := database.DB.Model(&models.Stone{}).
		Select("stones.*, soi.in_cart").
		Joins("INNER JOIN stone_order_items soi ON soi.stone_id = stones.id").
		Where("soi.stone_order_id = ?", orderID).
		Order("stones.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SetStones: Toplu düzenleme. İstenen küme ile mevcut küme arasındaki
// farkı alır: listede olmayan üyelikler silinir, yeni olanlar eklenir.
// Tek transaction; kısmi başarı olmaz.
func SetStones(orderID uint, stoneIDs []uint) error {
	desired := make(map[uint]bool, len(stoneIDs))
	for _, id := range stoneIDs {
		desired[id] = true
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		var current []models.StoneOrderItem
		if err := tx.Where("stone_order_id = ?", orderID).
			Find(&current).Error; err != nil {
			return err
		}

		currentSet := make(map[uint]bool, len(current))
		for _, item := range current {
			currentSet[item.StoneID] = true
			if !desired[item.StoneID] {
				if err := tx.Delete(&models.StoneOrderItem{}, item.ID).Error; err != nil {
					return err
				}
			}
		}

		for _, id := range stoneIDs {
			if !currentSet[id] {
				if err := addStoneTx(tx, orderID, id); err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// RelatedOrders: Siparişteki taşların bağlı olduğu müşteri siparişleri
// (distinct). Çözülemeyen order_id'ler sessizce atlanır.
func RelatedOrders(orderID uint) ([]models.Order, error) {
	var orderIDs []uint
	err := database.DB.Model(&models.Stone{}).
		Distinct("stones.order_id").
		Joins("INNER JOIN stone_order_items soi ON soi.stone_id = stones.id").
		Where("soi.stone_order_id = ? AND stones.order_id IS NOT NULL", orderID).
		Pluck("stones.order_id", &orderIDs).Error
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		var order models.Order
		if err := database.DB.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

type ListFilters struct {
	Page    int
	PerPage int
	Status  string
	Search  string
}

type ListedOrder struct {
	models.StoneOrder
	StoneCount    int64  `gorm:"column:stone_count"`
	CreatedByName string `gorm:"column:created_by_name"`
}

type ListResult struct {
	Orders []ListedOrder
	Total  int64
	Pages  int64
}

// List: Filtreli taş siparişi listesi; taş sayısı ve oluşturan kullanıcı
// adıyla zenginleştirilmiş.
func List(f ListFilters) (*ListResult, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 200 {
		f.PerPage = 20
	}

	q := database.DB.Model(&models.StoneOrder{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		q = q.Where("order_number LIKE ?", "%"+f.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []ListedOrder
	err := q.Select("stone_orders.*, " +
		"(SELECT COUNT(*) FROM stone_order_items WHERE stone_order_id = stone_orders.id) AS stone_count, " +
		"COALESCE(u.name, '') AS created_by_name").
		Joins("LEFT JOIN users u ON u.id = stone_orders.created_by").
		Order("stone_orders.id DESC").
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Orders: rows,
		Total:  total,
		Pages:  (total + int64(f.PerPage) - 1) / int64(f.PerPage),
	}, nil
}
