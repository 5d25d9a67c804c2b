package options

import (
	"log"

	"atolye-backend/internal/database"
	"atolye-backend/internal/models"
)

type seedGroup struct {
	optionType string
	items      []Item
}

// defaultOptions: İlk kurulumda yüklenen dropdown değerleri. Değerler
// İngilizce, etiketler Türkçe. Mevcut bir grup varsa dokunulmaz.
var defaultOptions = []seedGroup{
	{"stone_types", []Item{
		{Value: "Diamond", Label: "Pırlanta"},
		{Value: "Sapphire", Label: "Safir"},
		{Value: "Emerald", Label: "Zümrüt"},
		{Value: "Ruby", Label: "Yakut"},
		{Value: "Moissanite", Label: "Mozanit"},
	}},
	{"stone_origins", []Item{
		{Value: "Natural", Label: "Doğal"},
		{Value: "Lab Grown", Label: "Laboratuvar"},
	}},
	{"stone_shapes", arrayItems(
		"round", "princess", "cushion", "oval", "pear", "emerald", "heart",
		"radiant", "asscher", "marquise", "squareradiant", "squareemerald",
		"oldminer", "star", "rose", "square", "halfmoon", "trapezoid",
		"flanders", "briolette", "pentagonal", "hexagonal", "octagonal",
		"triangular", "trilliant", "calf", "taperedbaguette", "shield",
		"lozenge", "kite", "europeancut", "baguette", "bullet", "taperedbullet",
	)},
	{"stone_colors", []Item{
		{Value: "White", Label: "Beyaz"},
		{Value: "Red", Label: "Kırmızı"},
		{Value: "Green", Label: "Yeşil"},
		{Value: "Blue", Label: "Mavi"},
	}},
	{"stone_settings", []Item{
		{Value: "Four Prong", Label: "Dört Tırnak"},
		{Value: "Six Prong", Label: "Altı Tırnak"},
		{Value: "Channel", Label: "Kanal"},
		{Value: "Pave", Label: "Pave"},
		{Value: "Bezel", Label: "Bezel"},
		{Value: "French Pave", Label: "French Pave"},
	}},
	{"stone_clarities", arrayItems(
		"FL", "IF", "VVS1", "VVS2", "VS1", "VS2", "SI1", "SI2", "I1", "I2", "I3",
	)},
	{"stone_cut_grades", arrayItems(
		"Ideal", "Excellent", "Very Good", "Good", "Fair", "Poor",
	)},
	{"origin_countries", arrayItems(
		"Sri Lanka", "India", "Myanmar", "Thailand", "Madagascar", "Tanzania",
	)},
	{"manufacturing_statuses", arrayItems(
		"Model Ordered", "Printed", "Casting", "Cast",
		"Manufactured", "Hallmarking", "Hallmarked", "DONE",
	)},
	{"order_types", arrayItems("Standard", "Wedding")},
	{"stone_order_statuses", []Item{
		{Value: "in_cart", Label: "Sepete Eklendi", Color: "#bd0000"},
		{Value: "needs_payment", Label: "Ödeme Bekliyor", Color: "#dc3545"},
		{Value: "paid", Label: "Ödendi", Color: "#ffc107"},
		{Value: "ordered", Label: "Sipariş Verildi", Color: "#ffff07"},
		{Value: "shipping", Label: "Kargoda", Color: "#90EE90"},
		{Value: "received", Label: "Teslim Alındı", Color: "#28a745"},
	}},
	{"stone_size_units", []Item{
		{Value: "carats", Label: "Karat (ct)"},
		{Value: "mm", Label: "Milimetre (mm)"},
	}},
}

func arrayItems(values ...string) []Item {
	items := make([]Item, 0, len(values))
	for _, v := range values {
		items = append(items, Item{Value: v, Label: v})
	}
	return items
}

// SeedDefaults: Varsayılan seçenekleri yükler. Grup için zaten kayıt
// varsa (admin düzenlemiş olabilir) o grup atlanır.
func SeedDefaults() {
	for _, group := range defaultOptions {
		var count int64
		if err := database.DB.Model(&models.OptionValue{}).
			Where("option_type = ?", group.optionType).
			Count(&count).Error; err != nil {
			log.Printf("Seçenek grubu kontrol edilemedi (%s): %v", group.optionType, err)
			continue
		}
		if count > 0 {
			continue
		}

		for _, item := range group.items {
			row := models.OptionValue{
				OptionType: group.optionType,
				Value:      item.Value,
				Label:      item.Label,
				Color:      item.Color,
			}
			if err := database.DB.Create(&row).Error; err != nil {
				log.Printf("Varsayılan seçenek eklenemedi (%s/%s): %v", group.optionType, item.Value, err)
			}
		}
		log.Printf("Varsayılan seçenekler yüklendi: %s (%d adet)", group.optionType, len(group.items))
	}
}
