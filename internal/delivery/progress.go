package delivery

import "time"

// Progress: Sipariş tarihinden teslim tarihine ilerleme durumu.
type Progress struct {
	Percentage int
	DaysLeft   *int
	TotalDays  *int
}

const (
	StatusNotStarted = "Not Started"
	StatusDone       = "DONE"
)

// Üretim durumlarının müşteriye gösterilen karşılıkları. Ara adımlar
// müşteriyi ilgilendirmez, üç ana faza indirgenir.
var clientStatusLabels = map[string]string{
	"Model Ordered": "Tasarlanıyor",
	"Printed":       "Tasarlanıyor",
	"Casting":       "Üretiliyor",
	"Cast":          "Üretiliyor",
	"Manufactured":  "Damgalanıyor",
	"Hallmarking":   "Damgalanıyor",
	"Hallmarked":    "Teslimata Hazır",
	StatusDone:      "Gönderildi",
}

// ClientStatus: Teknik üretim durumunu müşteri diline çevirir.
// Bilinmeyen durumlar genel "devam ediyor" olarak gösterilir.
func ClientStatus(rawStatus string) string {
	if label, ok := clientStatusLabels[rawStatus]; ok {
		return label
	}
	return "Devam Ediyor"
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	days := int(truncateDay(b).Sub(truncateDay(a)).Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}

// ComputeProgress: Yüzde ve kalan gün hesabı. Teslim tarihi geçtiyse
// kalan gün negatife döner ve yüzde 100'e sabitlenir.
func ComputeProgress(placedAt time.Time, deliverBy *time.Time, today time.Time) Progress {
	if deliverBy == nil {
		return Progress{}
	}

	start := truncateDay(placedAt)
	end := truncateDay(*deliverBy)
	now := truncateDay(today)

	totalDays := daysBetween(start, end)
	elapsedDays := daysBetween(start, now)
	daysLeft := daysBetween(now, end)

	percentage := 0.0
	if totalDays > 0 {
		percentage = float64(elapsedDays) / float64(totalDays) * 100
		if percentage > 100 {
			percentage = 100
		}
	}

	if now.After(end) {
		daysLeft = -daysLeft
		percentage = 100
	}

	return Progress{
		Percentage: int(percentage + 0.5),
		DaysLeft:   &daysLeft,
		TotalDays:  &totalDays,
	}
}
