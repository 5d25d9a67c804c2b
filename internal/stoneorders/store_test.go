package stoneorders

import (
	"testing"

	"atolye-backend/internal/database"
	"atolye-backend/internal/models"
	"atolye-backend/internal/stones"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStoneOrderTestDB(t *testing.T) *gorm.DB {
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

func createTestStone(t *testing.T, db *gorm.DB, stoneType string, qty int) *models.Stone {
	stone := models.Stone{
		StoneType:     &stoneType,
		StoneQuantity: qty,
		CreatedBy:     1,
	}
	stones.Normalize(&stone)
	if err := db.Create(&stone).Error; err != nil {
		t.Fatalf("Test taşı oluşturulamadı: %v", err)
	}
	return &stone
}

func TestNextOrderNumber(t *testing.T) {
	db := setupStoneOrderTestDB(t)

	num, err := NextOrderNumber(db)
	assert.NoError(t, err)
	assert.Equal(t, "1", num, "tablo boşken 1 ile başlamalı")

	for _, existing := range []string{"5", "abc", "12", "2024-A"} {
		db.Create(&models.StoneOrder{OrderNumber: existing, CreatedBy: 1})
	}

	num, err = NextOrderNumber(db)
	assert.NoError(t, err)
	assert.Equal(t, "13", num, "sayısal olmayan numaralar diziye katılmamalı")
}

func TestCreateDefaults(t *testing.T) {
	setupStoneOrderTestDB(t)

	order := models.StoneOrder{CreatedBy: 1}
	err := Create(&order)
	assert.NoError(t, err)
	assert.Equal(t, "1", order.OrderNumber)
	assert.Equal(t, models.StoneOrderDefaultStatus, order.Status)

	second := models.StoneOrder{OrderNumber: "ÖZEL-1", Status: "paid", CreatedBy: 1}
	err = Create(&second)
	assert.NoError(t, err)
	assert.Equal(t, "ÖZEL-1", second.OrderNumber, "verilen numara korunmalı")
	assert.Equal(t, "paid", second.Status)
}

func TestAddStoneIdempotent(t *testing.T) {
	db := setupStoneOrderTestDB(t)

	order := models.StoneOrder{CreatedBy: 1}
	assert.NoError(t, Create(&order))
	stone := createTestStone(t, db, "Diamond", 2)

	assert.NoError(t, AddStone(order.ID, stone.ID))
	assert.NoError(t, AddStone(order.ID, stone.ID), "tekrar eklemek hata olmamalı")

	var count int64
	db.Model(&models.StoneOrderItem{}).
		Where("stone_order_id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(1), count, "çift üyelik oluşmamalı")
}

func TestSetStonesDiff(t *testing.T) {
	db := setupStoneOrderTestDB(t)

	order := models.StoneOrder{CreatedBy: 1}
	assert.NoError(t, Create(&order))

	a := createTestStone(t, db, "Diamond", 1)
	b := createTestStone(t, db, "Ruby", 1)
	c := createTestStone(t, db, "Sapphire", 1)

	assert.NoError(t, SetStones(order.ID, []uint{a.ID, b.ID}))
	assert.NoError(t, SetStones(order.ID, []uint{b.ID, c.ID}))

	members, err := Stones(order.ID)
	assert.NoError(t, err)
	assert.Len(t, members, 2)

	ids := map[uint]bool{}
	for _, m := range members {
		ids[m.ID] = true
	}
	assert.True(t, ids[b.ID])
	assert.True(t, ids[c.ID])
	assert.False(t, ids[a.ID], "listeden çıkan taş silinmiş olmalı")
}

func TestSetInCart(t *testing.T) {
	db := setupStoneOrderTestDB(t)

	order := models.StoneOrder{CreatedBy: 1}
	assert.NoError(t, Create(&order))
	stone := createTestStone(t, db, "Emerald", 1)
	assert.NoError(t, AddStone(order.ID, stone.ID))

	assert.NoError(t, SetInCart(order.ID, stone.ID, true))

	members, err := Stones(order.ID)
	assert.NoError(t, err)
	assert.Len(t, members, 1)
	assert.True(t, members[0].InCart)

	// Üye olmayan taş için not found
	other := createTestStone(t, db, "Topaz", 1)
	err = SetInCart(order.ID, other.ID, true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteRemovesMemberships(t *testing.T) {
	db := setupStoneOrderTestDB(t)

	order := models.StoneOrder{CreatedBy: 1}
	assert.NoError(t, Create(&order))
	stone := createTestStone(t, db, "Diamond", 1)
	assert.NoError(t, AddStone(order.ID, stone.ID))

	assert.NoError(t, Delete(order.ID))

	var memberships int64
	db.Model(&models.StoneOrderItem{}).Count(&memberships)
	assert.Equal(t, int64(0), memberships)

	// Taşın kendisi kalır
	var stoneCount int64
	db.Model(&models.Stone{}).Count(&stoneCount)
	assert.Equal(t, int64(1), stoneCount)
}

func TestRelatedOrders(t *testing.T) {
	db := setupStoneOrderTestDB(t)

	customer := models.Order{OrderNumber: "W-100", CustomerName: "Ayşe Yılmaz", Status: "processing"}
	assert.NoError(t, db.Create(&customer).Error)

	order := models.StoneOrder{CreatedBy: 1}
	assert.NoError(t, Create(&order))

	linked := createTestStone(t, db, "Diamond", 1)
	linked.OrderID = &customer.ID
	assert.NoError(t, db.Save(linked).Error)

	// Var olmayan siparişe bağlı taş sessizce atlanmalı
	ghostID := customer.ID + 99
	orphan := createTestStone(t, db, "Ruby", 1)
	orphan.OrderID = &ghostID
	assert.NoError(t, db.Save(orphan).Error)

	free := createTestStone(t, db, "Sapphire", 1)

	for _, s := range []*models.Stone{linked, orphan, free} {
		assert.NoError(t, AddStone(order.ID, s.ID))
	}

	related, err := RelatedOrders(order.ID)
	assert.NoError(t, err)
	assert.Len(t, related, 1)
	assert.Equal(t, "W-100", related[0].OrderNumber)
}

func TestListFilters(t *testing.T) {
	db := setupStoneOrderTestDB(t)

	user := models.User{Name: "Mehmet Demir", Email: "mehmet@atolye.local", PasswordHash: "x", Role: models.RoleStaff}
	assert.NoError(t, db.Create(&user).Error)

	paid := models.StoneOrder{OrderNumber: "101", Status: "paid", CreatedBy: user.ID}
	assert.NoError(t, Create(&paid))
	pending := models.StoneOrder{OrderNumber: "102", CreatedBy: user.ID}
	assert.NoError(t, Create(&pending))

	stone := createTestStone(t, db, "Diamond", 1)
	assert.NoError(t, AddStone(paid.ID, stone.ID))

	result, err := List(ListFilters{Status: "paid"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, "101", result.Orders[0].OrderNumber)
	assert.Equal(t, int64(1), result.Orders[0].StoneCount)
	assert.Equal(t, "Mehmet Demir", result.Orders[0].CreatedByName)

	result, err = List(ListFilters{Search: "10"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
}
