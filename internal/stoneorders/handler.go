package stoneorders

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"atolye-backend/internal/audit"
	"atolye-backend/internal/auth"
	"atolye-backend/internal/models"
	"atolye-backend/internal/options"
	"atolye-backend/internal/stones"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StoneOrderRequest struct {
	OrderNumber *string `json:"order_number"`
	OrderDate   *string `json:"order_date"` // "2006-01-02"
	Status      *string `json:"status"`
	StoneIDs    []uint  `json:"stone_ids"`
}

type StoneOrderResponse struct {
	ID          uint   `json:"id"`
	OrderNumber string `json:"order_number"`
	OrderDate   string `json:"order_date"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	StatusColor string `json:"status_color"`
	CreatedBy   uint   `json:"created_by"`
	CreatedAt   string `json:"created_at"`

	StoneCount    int64  `json:"stone_count,omitempty"`
	CreatedByName string `json:"created_by_name,omitempty"`
}

func toOrderResponse(reg *options.Registry, o *models.StoneOrder) StoneOrderResponse {
	info := reg.StatusInfo(o.Status)
	return StoneOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		OrderDate:   o.OrderDate.Format("2006-01-02"),
		Status:      o.Status,
		StatusLabel: info.Label,
		StatusColor: info.Color,
		CreatedBy:   o.CreatedBy,
		CreatedAt:   o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func parseOrderDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

func orderIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş ID")
	}
	return uint(id), nil
}

func loadOrder(id uint) (*models.StoneOrder, error) {
	order, err := Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Taş siparişi bulunamadı")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Taş siparişi yüklenemedi")
	}
	return order, nil
}

// POST /api/stone-orders
func CreateStoneOrderHandler(reg *options.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body StoneOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		order := models.StoneOrder{
			OrderDate: time.Now(),
			CreatedBy: userID,
		}
		if body.OrderNumber != nil {
			order.OrderNumber = strings.TrimSpace(*body.OrderNumber)
		}
		if body.OrderDate != nil && *body.OrderDate != "" {
			date, err := parseOrderDate(*body.OrderDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş tarihi")
			}
			order.OrderDate = date
		}
		if body.Status != nil && *body.Status != "" {
			order.Status = strings.TrimSpace(*body.Status)
		}

		if err := Create(&order); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Taş siparişi oluşturulamadı")
		}

		if len(body.StoneIDs) > 0 {
			if err := SetStones(order.ID, body.StoneIDs); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Taşlar siparişe eklenemedi")
			}
		}

		audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			Action:     "Stone order created",
			ObjectType: "stone_order",
			ObjectID:   audit.ObjectID(order.ID),
			Details:    fiber.Map{"order_number": order.OrderNumber, "stone_count": len(body.StoneIDs)},
			Severity:   models.SeveritySuccess,
		})

		return c.Status(fiber.StatusCreated).JSON(toOrderResponse(reg, &order))
	}
}

// PUT /api/stone-orders/:id
func UpdateStoneOrderHandler(reg *options.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		id, err := orderIDParam(c)
		if err != nil {
			return err
		}

		order, err := loadOrder(id)
		if err != nil {
			return err
		}

		var body StoneOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.OrderNumber != nil && strings.TrimSpace(*body.OrderNumber) != "" {
			order.OrderNumber = strings.TrimSpace(*body.OrderNumber)
		}
		if body.OrderDate != nil && *body.OrderDate != "" {
			date, err := parseOrderDate(*body.OrderDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş tarihi")
			}
			order.OrderDate = date
		}
		if body.Status != nil && *body.Status != "" {
			order.Status = strings.TrimSpace(*body.Status)
		}

		if err := Save(order); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Taş siparişi güncellenemedi")
		}

		// stone_ids gönderildiyse üyelik kümesi komple eşitlenir
		if body.StoneIDs != nil {
			if err := SetStones(order.ID, body.StoneIDs); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Taş listesi güncellenemedi")
			}
		}

		audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			Action:     "Stone order updated",
			ObjectType: "stone_order",
			ObjectID:   audit.ObjectID(order.ID),
			Details:    fiber.Map{"order_number": order.OrderNumber, "status": order.Status},
		})

		return c.JSON(toOrderResponse(reg, order))
	}
}

// DELETE /api/stone-orders/:id
func DeleteStoneOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		id, err := orderIDParam(c)
		if err != nil {
			return err
		}

		order, err := loadOrder(id)
		if err != nil {
			return err
		}

		if err := Delete(id); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Taş siparişi silinemedi")
		}

		audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			Action:     "Stone order deleted",
			ObjectType: "stone_order",
			ObjectID:   audit.ObjectID(id),
			Details:    fiber.Map{"order_number": order.OrderNumber},
			Severity:   models.SeverityWarning,
		})

		return c.JSON(fiber.Map{"message": "Taş siparişi silindi"})
	}
}

// GET /api/stone-orders/:id
func GetStoneOrderHandler(reg *options.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := orderIDParam(c)
		if err != nil {
			return err
		}

		order, err := loadOrder(id)
		if err != nil {
			return err
		}

		members, err := Stones(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş taşları yüklenemedi")
		}

		related, err := RelatedOrders(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bağlı siparişler yüklenemedi")
		}

		stoneItems := make([]stones.StoneResponse, 0, len(members))
		for i := range members {
			res := stones.ToResponse(&members[i].Stone)
			res.HasStoneOrder = true
			inCart := members[i].InCart
			res.InCart = &inCart
			stoneItems = append(stoneItems, res)
		}

		relatedItems := make([]fiber.Map, 0, len(related))
		for _, o := range related {
			relatedItems = append(relatedItems, fiber.Map{
				"id":            o.ID,
				"order_number":  o.OrderNumber,
				"customer_name": o.CustomerName,
				"status":        o.Status,
			})
		}

		res := toOrderResponse(reg, order)
		res.StoneCount = int64(len(members))

		return c.JSON(fiber.Map{
			"order":          res,
			"stones":         stoneItems,
			"related_orders": relatedItems,
		})
	}
}

// GET /api/stone-orders?page=&per_page=&status=&search=
func ListStoneOrdersHandler(reg *options.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var f ListFilters
		f.Page, _ = strconv.Atoi(c.Query("page", "1"))
		f.PerPage, _ = strconv.Atoi(c.Query("per_page", "20"))
		f.Status = strings.TrimSpace(c.Query("status"))
		f.Search = strings.TrimSpace(c.Query("search"))

		result, err := List(f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Taş siparişleri listelenemedi")
		}

		items := make([]StoneOrderResponse, 0, len(result.Orders))
		for i := range result.Orders {
			res := toOrderResponse(reg, &result.Orders[i].StoneOrder)
			res.StoneCount = result.Orders[i].StoneCount
			res.CreatedByName = result.Orders[i].CreatedByName
			items = append(items, res)
		}

		return c.JSON(fiber.Map{
			"orders": items,
			"total":  result.Total,
			"pages":  result.Pages,
		})
	}
}

// POST /api/stone-orders/:id/stones
func AddStoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		id, err := orderIDParam(c)
		if err != nil {
			return err
		}

		if _, err := loadOrder(id); err != nil {
			return err
		}

		var body struct {
			StoneID uint `json:"stone_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.StoneID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz taş ID")
		}

		if _, err := stones.Get(body.StoneID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Taş bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Taş yüklenemedi")
		}

		if err := AddStone(id, body.StoneID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Taş siparişe eklenemedi")
		}

		audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			Action:     "Stone added to order",
			ObjectType: "stone_order",
			ObjectID:   audit.ObjectID(id),
			Details:    fiber.Map{"stone_id": body.StoneID},
		})

		return c.JSON(fiber.Map{"message": "Taş siparişe eklendi"})
	}
}

// DELETE /api/stone-orders/:id/stones/:stoneId
func RemoveStoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		id, err := orderIDParam(c)
		if err != nil {
			return err
		}

		stoneID, err := strconv.ParseUint(c.Params("stoneId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz taş ID")
		}

		if err := RemoveStone(id, uint(stoneID)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Taş siparişten çıkarılamadı")
		}

		audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			Action:     "Stone removed from order",
			ObjectType: "stone_order",
			ObjectID:   audit.ObjectID(id),
			Details:    fiber.Map{"stone_id": stoneID},
		})

		return c.JSON(fiber.Map{"message": "Taş siparişten çıkarıldı"})
	}
}

// PUT /api/stone-orders/:id/stones/:stoneId/cart
func SetInCartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := orderIDParam(c)
		if err != nil {
			return err
		}

		stoneID, err := strconv.ParseUint(c.Params("stoneId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz taş ID")
		}

		var body struct {
			InCart bool `json:"in_cart"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if err := SetInCart(id, uint(stoneID), body.InCart); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Taş bu siparişte değil")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sepet durumu güncellenemedi")
		}

		return c.JSON(fiber.Map{"message": "Sepet durumu güncellendi", "in_cart": body.InCart})
	}
}

// GET /api/stone-orders/:id/message
func SupplierMessageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := orderIDParam(c)
		if err != nil {
			return err
		}

		order, err := loadOrder(id)
		if err != nil {
			return err
		}

		members, err := Stones(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş taşları yüklenemedi")
		}

		return c.JSON(fiber.Map{"message": SupplierMessage(order, members)})
	}
}

// GET /api/stone-orders/:id/export
func ExportStoneOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := orderIDParam(c)
		if err != nil {
			return err
		}

		order, err := loadOrder(id)
		if err != nil {
			return err
		}

		members, err := Stones(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş taşları yüklenemedi")
		}

		buf, err := BuildExcel(order, members)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", `attachment; filename="`+ExportFileName(order)+`"`)
		return c.Send(buf.Bytes())
	}
}
