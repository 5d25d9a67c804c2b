package delivery

import (
	"errors"
	"time"

	"atolye-backend/internal/database"
	"atolye-backend/internal/models"
	"atolye-backend/internal/orders"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DeliveryResponse struct {
	OrderNumber string `json:"order_number"`
	OrderDate   string `json:"order_date"`
	Status      string `json:"status"`       // müşteri dilinde
	StatusLabel string `json:"status_label"` // ilerleme çubuğu orta etiketi
	Percentage  int    `json:"percentage"`
	DaysLeft    *int   `json:"days_left,omitempty"`
	TargetDate  string `json:"target_date,omitempty"`
	Completed   bool   `json:"completed"`
	NotStarted  bool   `json:"not_started"`
}

// GET /api/delivery/:orderNumber
// Müşteriye açık uçtur, kimlik doğrulaması istemez. Fiyat, not gibi
// iç bilgiler yanıtta yer almaz.
func DeliveryStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderNumber := c.Params("orderNumber")
		if orderNumber == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Sipariş numarası zorunlu")
		}

		var order models.Order
		if err := database.DB.Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş yüklenemedi")
		}

		ext, err := orders.GetExtension(&order)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Teslimat bilgisi yüklenemedi")
		}

		today := time.Now()
		progress := ComputeProgress(order.PlacedAt, ext.DeliverByDate, today)

		rawStatus := ext.ManufacturingStatus
		completed := rawStatus == StatusDone
		notStarted := rawStatus == StatusNotStarted

		res := DeliveryResponse{
			OrderNumber: order.OrderNumber,
			OrderDate:   order.PlacedAt.Format("2006-01-02"),
			Status:      ClientStatus(rawStatus),
			StatusLabel: ClientStatus(rawStatus),
			Percentage:  progress.Percentage,
			Completed:   completed,
			NotStarted:  notStarted,
		}

		switch {
		case notStarted:
			res.Percentage = 0
		case completed:
			res.Percentage = 100
		}

		// Kalan gün sadece devam eden ve en az 1 günü olan siparişte gösterilir
		if !completed && progress.DaysLeft != nil && *progress.DaysLeft >= 1 {
			res.DaysLeft = progress.DaysLeft
		}

		// Erken biten sipariş için tahmini tarih artık yanıltıcıdır, gizlenir
		completedEarly := completed && ext.DeliverByDate != nil && today.Before(*ext.DeliverByDate)
		if ext.DeliverByDate != nil && !completedEarly {
			res.TargetDate = ext.DeliverByDate.Format("2006-01-02")
		}

		return c.JSON(res)
	}
}
