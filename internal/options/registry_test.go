package options

import (
	"testing"

	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOptionsTestDB(t *testing.T) *gorm.DB {
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

func TestLookupType(t *testing.T) {
	info, ok := LookupType("stone_shapes")
	assert.True(t, ok)
	assert.Equal(t, FormatArray, info.Format)
	assert.True(t, info.Sortable)

	info, ok = LookupType("stone_order_statuses")
	assert.True(t, ok)
	assert.Equal(t, FormatStatus, info.Format)
	assert.False(t, info.Sortable)

	// order_types seed ile gelir ama admin ekranından yönetilmez
	_, ok = LookupType("order_types")
	assert.False(t, ok)

	_, ok = LookupType("users")
	assert.False(t, ok)
}

func TestListRejectsUnknownType(t *testing.T) {
	setupOptionsTestDB(t)
	reg := NewRegistry()

	_, err := reg.List("order_types")
	assert.Error(t, err)
}

func TestAddArrayDeduplicates(t *testing.T) {
	db := setupOptionsTestDB(t)
	reg := NewRegistry()

	assert.NoError(t, reg.Add("stone_shapes", "Round", "", ""))
	assert.NoError(t, reg.Add("stone_shapes", "Round", "", ""), "duplicate sessiz başarı olmalı")

	var count int64
	db.Model(&models.OptionValue{}).Where("option_type = ?", "stone_shapes").Count(&count)
	assert.Equal(t, int64(1), count)

	items, err := reg.List("stone_shapes")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Round", items[0].Label, "array tipinde etiket değere eşittir")
}

func TestAddKeyValueOverwritesLabel(t *testing.T) {
	setupOptionsTestDB(t)
	reg := NewRegistry()

	assert.NoError(t, reg.Add("stone_types", "Diamond", "Pırlanta", ""))
	assert.NoError(t, reg.Add("stone_types", "Diamond", "Elmas", ""))

	items, err := reg.List("stone_types")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Elmas", items[0].Label, "aynı anahtar etiketi günceller")
}

func TestAddStatusKeepsColor(t *testing.T) {
	setupOptionsTestDB(t)
	reg := NewRegistry()

	assert.NoError(t, reg.Add("stone_order_statuses", "paid", "Ödendi", "#ffc107"))

	items, err := reg.List("stone_order_statuses")
	assert.NoError(t, err)
	assert.Equal(t, "#ffc107", items[0].Color)

	// Status dışındaki tiplerde renk kaydedilmez
	assert.NoError(t, reg.Add("stone_types", "Ruby", "Yakut", "#ff0000"))
	items, err = reg.List("stone_types")
	assert.NoError(t, err)
	assert.Equal(t, "", items[0].Color)
}

func TestDeleteSilentNoOp(t *testing.T) {
	setupOptionsTestDB(t)
	reg := NewRegistry()

	assert.NoError(t, reg.Delete("stone_shapes", "YokBöyleŞekil"))
}

func TestDeleteRemovesSortRow(t *testing.T) {
	db := setupOptionsTestDB(t)
	reg := NewRegistry()

	assert.NoError(t, reg.Add("stone_shapes", "Round", "", ""))
	assert.NoError(t, reg.Add("stone_shapes", "Oval", "", ""))
	assert.NoError(t, reg.Delete("stone_shapes", "Round"))

	var sortCount int64
	db.Model(&models.OptionSortOrder{}).
		Where("option_type = ? AND option_value = ?", "stone_shapes", "Round").
		Count(&sortCount)
	assert.Equal(t, int64(0), sortCount)

	items, err := reg.List("stone_shapes")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Oval", items[0].Value)
}

func TestReorder(t *testing.T) {
	setupOptionsTestDB(t)
	reg := NewRegistry()

	for _, v := range []string{"Round", "Oval", "Pear"} {
		assert.NoError(t, reg.Add("stone_shapes", v, "", ""))
	}

	assert.NoError(t, reg.Reorder("stone_shapes", []string{"Pear", "Round", "Oval"}))

	items, err := reg.List("stone_shapes")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Pear", "Round", "Oval"}, values(items))
}

func TestReorderRejectsUnsortableType(t *testing.T) {
	setupOptionsTestDB(t)
	reg := NewRegistry()

	err := reg.Reorder("stone_order_statuses", []string{"paid"})
	assert.Error(t, err)
}

func TestListUnrankedValuesAppendAtEnd(t *testing.T) {
	db := setupOptionsTestDB(t)
	reg := NewRegistry()

	for _, v := range []string{"Round", "Oval"} {
		assert.NoError(t, reg.Add("stone_shapes", v, "", ""))
	}
	assert.NoError(t, reg.Reorder("stone_shapes", []string{"Oval", "Round"}))

	// Sort tablosuna girmemiş değer (doğrudan DB'ye eklenmiş gibi)
	assert.NoError(t, db.Create(&models.OptionValue{
		OptionType: "stone_shapes", Value: "Pear", Label: "Pear",
	}).Error)
	reg.Invalidate()

	items, err := reg.List("stone_shapes")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Oval", "Round", "Pear"}, values(items))
}

func TestStatusInfoFallback(t *testing.T) {
	setupOptionsTestDB(t)
	reg := NewRegistry()

	assert.NoError(t, reg.Add("stone_order_statuses", "paid", "Ödendi", "#ffc107"))

	info := reg.StatusInfo("paid")
	assert.Equal(t, "Ödendi", info.Label)
	assert.Equal(t, "#ffc107", info.Color)

	info = reg.StatusInfo("bilinmeyen_durum")
	assert.Equal(t, "bilinmeyen_durum", info.Label, "bilinmeyen kod olduğu gibi gösterilir")
	assert.Equal(t, "#6c757d", info.Color)
}

func TestSeedDefaultsIdempotent(t *testing.T) {
	db := setupOptionsTestDB(t)

	SeedDefaults()
	var first int64
	db.Model(&models.OptionValue{}).Count(&first)
	assert.Greater(t, first, int64(0))

	SeedDefaults()
	var second int64
	db.Model(&models.OptionValue{}).Count(&second)
	assert.Equal(t, first, second, "ikinci seed mevcut grupları atlamalı")
}

func TestCacheInvalidationOnAdd(t *testing.T) {
	setupOptionsTestDB(t)
	reg := NewRegistry()

	items, err := reg.List("stone_shapes")
	assert.NoError(t, err)
	assert.Len(t, items, 0)

	assert.NoError(t, reg.Add("stone_shapes", "Round", "", ""))

	items, err = reg.List("stone_shapes")
	assert.NoError(t, err)
	assert.Len(t, items, 1, "add sonrası cache tazelenmeli")
}

func values(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Value)
	}
	return out
}
