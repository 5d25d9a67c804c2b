package stoneorders

import (
	"fmt"
	"strconv"
	"strings"

	"atolye-backend/internal/models"
)

type messageGroup struct {
	stone        models.Stone
	quantity     int
	certificates []string
	origins      []string
	comments     []string
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// groupStones: Taşları ham özellik kümesine göre gruplar, ilk görülme
// sırası korunur. Gruplama görünen metne göre yapılmaz; "1.25 ct" yazan
// iki farklı boyut karışmasın.
func groupStones(stones []MemberStone) []*messageGroup {
	byKey := make(map[string]*messageGroup)
	var ordered []*messageGroup
	for _, ms := range stones {
		s := ms.Stone
		sizeValue := ""
		if s.SizeValue != nil && *s.SizeValue != 0 {
			sizeValue = strconv.FormatFloat(*s.SizeValue, 'f', -1, 64)
		}
		key := strings.Join([]string{
			deref(s.StoneType),
			s.StoneOrigin,
			deref(s.StoneShape),
			sizeValue,
			s.SizeUnit,
			deref(s.StoneColor),
			deref(s.StoneClarity),
			deref(s.CutGrade),
			deref(s.OriginCountry),
			deref(s.Certificate),
			deref(s.Comment),
		}, "|")

		g, ok := byKey[key]
		if !ok {
			g = &messageGroup{stone: s}
			byKey[key] = g
			ordered = append(ordered, g)
		}

		g.quantity += s.StoneQuantity
		if c := deref(s.Certificate); c != "" {
			g.certificates = appendUnique(g.certificates, c)
		}
		if o := deref(s.OriginCountry); o != "" {
			g.origins = appendUnique(g.origins, o)
		}
		if n := deref(s.Comment); n != "" {
			g.comments = appendUnique(g.comments, n)
		}
	}
	return ordered
}

// SupplierMessage: Tedarikçiye gönderilecek mesaj metni. Aynı özelliklere
// sahip taşlar tek satırda toplanır, adetleri toplanır. Siparişte taş
// yoksa boş string döner.
func SupplierMessage(order *models.StoneOrder, stones []MemberStone) string {
	if len(stones) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Stone order dated %s\n", order.OrderDate.Format("2006-01-02"))
	b.WriteString("Required stones:\n\n")

	for _, g := range groupStones(stones) {
		s := g.stone

		var parts []string
		if t := deref(s.StoneType); t != "" {
			parts = append(parts, t)
		}
		// Doğal taşta menşe yazılmaz, sadece lab-grown vb. belirtilir
		if s.StoneOrigin != "" && s.StoneOrigin != "Natural" {
			parts = append(parts, s.StoneOrigin)
		}
		if sh := deref(s.StoneShape); sh != "" {
			parts = append(parts, sh+" cut")
		}
		if size := s.FormattedSize(); size != "" {
			parts = append(parts, size)
		}
		if c := deref(s.StoneColor); c != "" {
			parts = append(parts, c+" color")
		}
		if cl := deref(s.StoneClarity); cl != "" {
			parts = append(parts, cl+" clarity")
		}

		unit := "pcs"
		if g.quantity == 1 {
			unit = "pc"
		}
		fmt.Fprintf(&b, "- %s - %d %s\n", strings.Join(parts, ", "), g.quantity, unit)

		if len(g.certificates) > 0 {
			fmt.Fprintf(&b, "  Certificate: %s\n", strings.Join(g.certificates, ", "))
		}
		if len(g.origins) > 0 {
			fmt.Fprintf(&b, "  Origin: %s\n", strings.Join(g.origins, ", "))
		}
		if len(g.comments) > 0 {
			fmt.Fprintf(&b, "  Note: %s\n", strings.Join(g.comments, "; "))
		}

		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String())
}
