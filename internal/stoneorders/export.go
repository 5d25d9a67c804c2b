package stoneorders

import (
	"bytes"
	"fmt"
	"strings"

	"atolye-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

// BuildExcel: Tedarikçi mesajıyla aynı gruplama mantığını kullanarak
// sipariş içeriğini Excel dosyasına yazar.
func BuildExcel(order *models.StoneOrder, stones []MemberStone) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	headers := []string{"Taş", "Menşe", "Kesim", "Boyut", "Renk", "Berraklık", "Adet", "Sertifika", "Ülke", "Not"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	// Mesajdakiyle aynı gruplar, aynı sırada
	groups := groupStones(stones)
	row := 2
	for _, g := range groups {
		s := g.stone
		values := []any{
			deref(s.StoneType),
			s.StoneOrigin,
			deref(s.StoneShape),
			s.FormattedSize(),
			deref(s.StoneColor),
			deref(s.StoneClarity),
			g.quantity,
			strings.Join(g.certificates, ", "),
			strings.Join(g.origins, ", "),
			strings.Join(g.comments, "; "),
		}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
		row++
	}

	if err := f.SetColWidth(sheet, "A", "J", 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel dosyası yazılamadı: %w", err)
	}
	return buf, nil
}

// ExportFileName: İndirme için dosya adı. Örn: "tas-siparisi-42.xlsx"
func ExportFileName(order *models.StoneOrder) string {
	return fmt.Sprintf("tas-siparisi-%s.xlsx", order.OrderNumber)
}
