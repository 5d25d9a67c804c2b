package stoneorders

import (
	"strings"
	"testing"
	"time"

	"atolye-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

func memberStone(s models.Stone) MemberStone {
	return MemberStone{Stone: s}
}

func TestSupplierMessageEmpty(t *testing.T) {
	order := &models.StoneOrder{OrderDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "", SupplierMessage(order, nil))
}

func TestSupplierMessageFormat(t *testing.T) {
	order := &models.StoneOrder{OrderDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)}

	stones := []MemberStone{
		memberStone(models.Stone{
			StoneType:     strPtr("Diamond"),
			StoneOrigin:   "Natural",
			StoneShape:    strPtr("Round"),
			StoneQuantity: 2,
			SizeValue:     f64Ptr(1.25),
			SizeUnit:      models.SizeUnitCarats,
			StoneColor:    strPtr("D"),
			StoneClarity:  strPtr("VS1"),
			Certificate:   strPtr("GIA-123"),
			OriginCountry: strPtr("Botswana"),
			Comment:       strPtr("Eşleşen çift olsun"),
		}),
		memberStone(models.Stone{
			StoneType:     strPtr("Ruby"),
			StoneOrigin:   "Lab Grown",
			StoneShape:    strPtr("Oval"),
			StoneQuantity: 1,
			SizeValue:     f64Ptr(6.5),
			SizeUnit:      models.SizeUnitMM,
		}),
	}

	expected := "Stone order dated 2024-03-15\n" +
		"Required stones:\n\n" +
		"- Diamond, Round cut, 1.25 ct, D color, VS1 clarity - 2 pcs\n" +
		"  Certificate: GIA-123\n" +
		"  Origin: Botswana\n" +
		"  Note: Eşleşen çift olsun\n" +
		"\n" +
		"- Ruby, Lab Grown, Oval cut, 6.5 mm - 1 pc"

	assert.Equal(t, expected, SupplierMessage(order, stones))
}

func TestSupplierMessageGroupsIdenticalStones(t *testing.T) {
	order := &models.StoneOrder{OrderDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}

	same := func(qty int) MemberStone {
		return memberStone(models.Stone{
			StoneType:     strPtr("Sapphire"),
			StoneOrigin:   "Natural",
			StoneQuantity: qty,
		})
	}

	msg := SupplierMessage(order, []MemberStone{same(2), same(3)})

	assert.Contains(t, msg, "- Sapphire - 5 pcs")
	assert.Equal(t, 1, countLines(msg, "- Sapphire"), "aynı özellikler tek satırda toplanmalı")
}

func TestSupplierMessageSeparatesDifferentSizes(t *testing.T) {
	order := &models.StoneOrder{OrderDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}

	// 1.25 ct ve 1.254 ct aynı metni üretir ama ayrı gruplar olmalı
	a := memberStone(models.Stone{
		StoneType: strPtr("Diamond"), StoneOrigin: "Natural",
		StoneQuantity: 1, SizeValue: f64Ptr(1.25), SizeUnit: models.SizeUnitCarats,
	})
	b := memberStone(models.Stone{
		StoneType: strPtr("Diamond"), StoneOrigin: "Natural",
		StoneQuantity: 1, SizeValue: f64Ptr(1.254), SizeUnit: models.SizeUnitCarats,
	})

	msg := SupplierMessage(order, []MemberStone{a, b})
	assert.Equal(t, 2, countLines(msg, "- Diamond"), "ham boyutu farklı taşlar ayrı kalmalı")
}

func countLines(msg, prefix string) int {
	count := 0
	for _, line := range strings.Split(msg, "\n") {
		if strings.HasPrefix(line, prefix) {
			count++
		}
	}
	return count
}
