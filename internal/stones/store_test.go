package stones

import (
	"testing"

	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStoneTestDB(t *testing.T) *gorm.DB {
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

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

func TestNormalize(t *testing.T) {
	stone := models.Stone{StoneQuantity: 0}
	Normalize(&stone)

	assert.Equal(t, "Natural", stone.StoneOrigin)
	assert.Equal(t, 1, stone.StoneQuantity)
	assert.Equal(t, models.SizeUnitCarats, stone.SizeUnit)

	// Dolu değerlere dokunulmaz
	stone = models.Stone{StoneOrigin: "Lab Grown", StoneQuantity: 4, SizeUnit: models.SizeUnitMM}
	Normalize(&stone)
	assert.Equal(t, "Lab Grown", stone.StoneOrigin)
	assert.Equal(t, 4, stone.StoneQuantity)
	assert.Equal(t, models.SizeUnitMM, stone.SizeUnit)

	stone = models.Stone{StoneQuantity: -3}
	Normalize(&stone)
	assert.Equal(t, 1, stone.StoneQuantity, "negatif miktar 1'e çekilir")
}

func TestFormattedSize(t *testing.T) {
	tests := []struct {
		name     string
		stone    models.Stone
		expected string
	}{
		{"boyut yok", models.Stone{}, ""},
		{"sıfır boyut", models.Stone{SizeValue: f64Ptr(0)}, ""},
		{"karat", models.Stone{SizeValue: f64Ptr(1.25), SizeUnit: models.SizeUnitCarats}, "1.25 ct"},
		{"karat yuvarlama", models.Stone{SizeValue: f64Ptr(1.5), SizeUnit: models.SizeUnitCarats}, "1.50 ct"},
		{"milimetre", models.Stone{SizeValue: f64Ptr(6.5), SizeUnit: models.SizeUnitMM}, "6.5 mm"},
		{"birim boşsa karat", models.Stone{SizeValue: f64Ptr(2)}, "2.00 ct"},
		{"eski ağırlık alanı", models.Stone{WeightCarats: f64Ptr(0.75)}, "0.75 ct"},
		{"eski alan sıfırsa boş", models.Stone{WeightCarats: f64Ptr(0)}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.stone.FormattedSize())
		})
	}
}

func TestDeleteRemovesMemberships(t *testing.T) {
	db := setupStoneTestDB(t)

	stone := models.Stone{StoneType: strPtr("Diamond"), CreatedBy: 1}
	assert.NoError(t, Create(&stone))

	order := models.StoneOrder{OrderNumber: "1", Status: models.StoneOrderDefaultStatus, CreatedBy: 1}
	assert.NoError(t, db.Create(&order).Error)
	assert.NoError(t, db.Create(&models.StoneOrderItem{StoneID: stone.ID, StoneOrderID: order.ID}).Error)

	assert.NoError(t, Delete(stone.ID))

	var memberships int64
	db.Model(&models.StoneOrderItem{}).Count(&memberships)
	assert.Equal(t, int64(0), memberships, "üyelik satırı taşla birlikte silinmeli")

	// Sipariş kaydı yerinde kalır
	var orderCount int64
	db.Model(&models.StoneOrder{}).Count(&orderCount)
	assert.Equal(t, int64(1), orderCount)
}

func TestStoneOrderOf(t *testing.T) {
	db := setupStoneTestDB(t)

	stone := models.Stone{StoneType: strPtr("Ruby"), CreatedBy: 1}
	assert.NoError(t, Create(&stone))

	order, err := StoneOrderOf(stone.ID)
	assert.NoError(t, err)
	assert.Nil(t, order, "üyelik yoksa nil döner, hata değil")

	stoneOrder := models.StoneOrder{OrderNumber: "7", Status: models.StoneOrderDefaultStatus, CreatedBy: 1}
	assert.NoError(t, db.Create(&stoneOrder).Error)
	assert.NoError(t, db.Create(&models.StoneOrderItem{StoneID: stone.ID, StoneOrderID: stoneOrder.ID}).Error)

	order, err = StoneOrderOf(stone.ID)
	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, "7", order.OrderNumber)
}

func TestListAvailableFilter(t *testing.T) {
	db := setupStoneTestDB(t)

	free := models.Stone{StoneType: strPtr("Diamond"), CreatedBy: 1}
	assert.NoError(t, Create(&free))
	taken := models.Stone{StoneType: strPtr("Sapphire"), CreatedBy: 1}
	assert.NoError(t, Create(&taken))

	order := models.StoneOrder{OrderNumber: "1", Status: models.StoneOrderDefaultStatus, CreatedBy: 1}
	assert.NoError(t, db.Create(&order).Error)
	assert.NoError(t, db.Create(&models.StoneOrderItem{StoneID: taken.ID, StoneOrderID: order.ID}).Error)

	noOrder := false
	result, err := List(ListFilters{HasStoneOrder: &noOrder})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, free.ID, result.Stones[0].ID)
	assert.False(t, result.Stones[0].HasStoneOrder)

	hasOrder := true
	result, err = List(ListFilters{HasStoneOrder: &hasOrder})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, taken.ID, result.Stones[0].ID)
	assert.True(t, result.Stones[0].HasStoneOrder)
}

func TestListSearch(t *testing.T) {
	setupStoneTestDB(t)

	diamond := models.Stone{StoneType: strPtr("Diamond"), Comment: strPtr("nişan yüzüğü için"), CreatedBy: 1}
	assert.NoError(t, Create(&diamond))
	ruby := models.Stone{StoneType: strPtr("Ruby"), CreatedBy: 1}
	assert.NoError(t, Create(&ruby))

	result, err := List(ListFilters{Search: "nişan"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, diamond.ID, result.Stones[0].ID)

	result, err = List(ListFilters{Search: "Ruby"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
}

func TestListPagination(t *testing.T) {
	setupStoneTestDB(t)

	for i := 0; i < 25; i++ {
		stone := models.Stone{StoneType: strPtr("Diamond"), CreatedBy: 1}
		assert.NoError(t, Create(&stone))
	}

	result, err := List(ListFilters{Page: 2, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, int64(3), result.Pages)
	assert.Len(t, result.Stones, 10)
}
