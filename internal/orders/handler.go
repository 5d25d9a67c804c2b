package orders

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"atolye-backend/internal/audit"
	"atolye-backend/internal/auth"
	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type OrderRequest struct {
	OrderNumber  string             `json:"order_number"`
	CustomerName string             `json:"customer_name"`
	PlacedAt     string             `json:"placed_at"` // "2006-01-02", boşsa bugün
	Status       string             `json:"status"`
	OrderType    string             `json:"order_type"`
	Items        []OrderItemRequest `json:"items"`
}

type ExtensionResponse struct {
	FinishByDate        string `json:"finish_by_date"`
	DeliverByDate       string `json:"deliver_by_date"`
	OrderModel          bool   `json:"order_model"`
	OrderProduction     bool   `json:"order_production"`
	OrderPrinting       bool   `json:"order_printing"`
	CastingNotes        string `json:"casting_notes"`
	ManufacturingStatus string `json:"manufacturing_status"`
	OrderType           string `json:"order_type"`
}

func toExtensionResponse(ext *models.OrderExtension) ExtensionResponse {
	res := ExtensionResponse{
		OrderModel:          ext.OrderModel,
		OrderProduction:     ext.OrderProduction,
		OrderPrinting:       ext.OrderPrinting,
		CastingNotes:        ext.CastingNotes,
		ManufacturingStatus: ext.ManufacturingStatus,
		OrderType:           ext.OrderType,
	}
	if ext.FinishByDate != nil {
		res.FinishByDate = ext.FinishByDate.Format("2006-01-02")
	}
	if ext.DeliverByDate != nil {
		res.DeliverByDate = ext.DeliverByDate.Format("2006-01-02")
	}
	return res
}

func loadOrder(c *fiber.Ctx) (*models.Order, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş ID")
	}

	var order models.Order
	if err := database.DB.Preload("Items").First(&order, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Sipariş yüklenemedi")
	}
	return &order, nil
}

// POST /api/orders
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body OrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if strings.TrimSpace(body.OrderNumber) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Sipariş numarası zorunlu")
		}

		order := models.Order{
			OrderNumber:  strings.TrimSpace(body.OrderNumber),
			CustomerName: strings.TrimSpace(body.CustomerName),
			PlacedAt:     time.Now(),
		}
		if body.PlacedAt != "" {
			placed, err := time.Parse("2006-01-02", body.PlacedAt)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş tarihi")
			}
			order.PlacedAt = placed
		}
		if body.Status != "" {
			order.Status = body.Status
		}
		for _, item := range body.Items {
			qty := item.Quantity
			if qty < 1 {
				qty = 1
			}
			order.Items = append(order.Items, models.OrderItem{Name: item.Name, Quantity: qty})
		}

		if err := database.DB.Create(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş oluşturulamadı")
		}

		// Uzantı kaydı sipariş ile birlikte açılır, tarihleri hazır olur
		ext, err := EnsureExtension(&order)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş uzantısı oluşturulamadı")
		}
		if body.OrderType != "" {
			ext.OrderType = body.OrderType
			if err := database.DB.Save(ext).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sipariş uzantısı kaydedilemedi")
			}
		}

		audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			Action:     "Order created",
			ObjectType: "order",
			ObjectID:   audit.ObjectID(order.ID),
			Details:    fiber.Map{"order_number": order.OrderNumber},
			Severity:   models.SeveritySuccess,
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"order":     order,
			"extension": toExtensionResponse(ext),
		})
	}
}

// GET /api/orders/:id
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, err := loadOrder(c)
		if err != nil {
			return err
		}

		ext, err := GetExtension(order)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş uzantısı yüklenemedi")
		}

		return c.JSON(fiber.Map{
			"order":     order,
			"extension": toExtensionResponse(ext),
		})
	}
}

// GET /api/orders?page=&per_page=&status=&search=
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		perPage, _ := strconv.Atoi(c.Query("per_page", "20"))
		if page < 1 {
			page = 1
		}
		if perPage < 1 || perPage > 200 {
			perPage = 20
		}

		q := database.DB.Model(&models.Order{})
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			q = q.Where("order_number LIKE ? OR customer_name LIKE ?",
				"%"+search+"%", "%"+search+"%")
		}

		var total int64
		if err := q.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler sayılamadı")
		}

		var orders []models.Order
		err := q.Preload("Items").
			Order("placed_at DESC").
			Offset((page - 1) * perPage).
			Limit(perPage).
			Find(&orders).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		return c.JSON(fiber.Map{
			"orders": orders,
			"total":  total,
			"pages":  (total + int64(perPage) - 1) / int64(perPage),
		})
	}
}

// GET /api/orders/:id/extension
func GetOrderExtensionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, err := loadOrder(c)
		if err != nil {
			return err
		}

		ext, err := GetExtension(order)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş uzantısı yüklenemedi")
		}

		return c.JSON(toExtensionResponse(ext))
	}
}

// PUT /api/orders/:id/extension
// Gövde: {"field": "finish_by_date", "value": "2024-05-01"}
func UpdateOrderExtensionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		order, err := loadOrder(c)
		if err != nil {
			return err
		}

		var body struct {
			Field string `json:"field"`
			Value any    `json:"value"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		ext, err := UpdateExtensionField(order, body.Field, body.Value)
		if err != nil {
			if errors.Is(err, ErrFieldNotAllowed) {
				return fiber.NewError(fiber.StatusBadRequest, "Bu alan güncellenemez: "+body.Field)
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			Action:     "Order extension updated",
			ObjectType: "order",
			ObjectID:   audit.ObjectID(order.ID),
			Details:    fiber.Map{"field": body.Field, "value": body.Value},
		})

		return c.JSON(toExtensionResponse(ext))
	}
}
