package stones

import (
	"errors"
	"strconv"
	"strings"

	"atolye-backend/internal/audit"
	"atolye-backend/internal/auth"
	"atolye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StoneRequest: create ve update için ortak gövde. Tüm alanlar opsiyonel;
// update'te sadece gönderilen alanlar değişir.
type StoneRequest struct {
	OrderID       *uint    `json:"order_id"`
	OrderItemID   *uint    `json:"order_item_id"`
	StoneType     *string  `json:"stone_type"`
	StoneOrigin   *string  `json:"stone_origin"`
	StoneShape    *string  `json:"stone_shape"`
	StoneQuantity *int     `json:"stone_quantity"`
	SizeValue     *float64 `json:"size_value"`
	SizeUnit      *string  `json:"size_unit"`
	StoneColor    *string  `json:"stone_color"`
	StoneSetting  *string  `json:"stone_setting"`
	StoneClarity  *string  `json:"stone_clarity"`
	CutGrade      *string  `json:"cut_grade"`
	OriginCountry *string  `json:"origin_country"`
	Certificate   *string  `json:"certificate"`
	Comment       *string  `json:"comment"`
}

type StoneResponse struct {
	ID            uint     `json:"id"`
	OrderID       *uint    `json:"order_id"`
	OrderItemID   *uint    `json:"order_item_id"`
	StoneType     *string  `json:"stone_type"`
	StoneOrigin   string   `json:"stone_origin"`
	StoneShape    *string  `json:"stone_shape"`
	StoneQuantity int      `json:"stone_quantity"`
	SizeValue     *float64 `json:"size_value"`
	SizeUnit      string   `json:"size_unit"`
	StoneColor    *string  `json:"stone_color"`
	StoneSetting  *string  `json:"stone_setting"`
	StoneClarity  *string  `json:"stone_clarity"`
	CutGrade      *string  `json:"cut_grade"`
	OriginCountry *string  `json:"origin_country"`
	Certificate   *string  `json:"certificate"`
	Comment       *string  `json:"comment"`
	FormattedSize string   `json:"formatted_size"`
	Display       string   `json:"display"`
	CreatedBy     uint     `json:"created_by"`
	CreatedAt     string   `json:"created_at"`

	HasStoneOrder bool  `json:"has_stone_order"`
	InCart        *bool `json:"in_cart,omitempty"` // sadece sipariş kapsamında listelenirken
}

// ToResponse: Taş kaydını API yanıt gövdesine çevirir.
func ToResponse(s *models.Stone) StoneResponse {
	return StoneResponse{
		ID:            s.ID,
		OrderID:       s.OrderID,
		OrderItemID:   s.OrderItemID,
		StoneType:     s.StoneType,
		StoneOrigin:   s.StoneOrigin,
		StoneShape:    s.StoneShape,
		StoneQuantity: s.StoneQuantity,
		SizeValue:     s.SizeValue,
		SizeUnit:      s.EffectiveSizeUnit(),
		StoneColor:    s.StoneColor,
		StoneSetting:  s.StoneSetting,
		StoneClarity:  s.StoneClarity,
		CutGrade:      s.CutGrade,
		OriginCountry: s.OriginCountry,
		Certificate:   s.Certificate,
		Comment:       s.Comment,
		FormattedSize: s.FormattedSize(),
		Display:       s.DisplayString(),
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// apply: Request'teki dolu alanları modele geçirir. Boş string gönderilen
// serbest metin alanları NULL'a çevrilir ("boyut girilmedi" ile "0"
// ayrımı korunur).
func apply(body *StoneRequest, stone *models.Stone) {
	if body.OrderID != nil {
		stone.OrderID = nilIfZero(body.OrderID)
	}
	if body.OrderItemID != nil {
		stone.OrderItemID = nilIfZero(body.OrderItemID)
	}
	if body.StoneType != nil {
		stone.StoneType = nilIfEmpty(body.StoneType)
	}
	if body.StoneOrigin != nil {
		stone.StoneOrigin = strings.TrimSpace(*body.StoneOrigin)
	}
	if body.StoneShape != nil {
		stone.StoneShape = nilIfEmpty(body.StoneShape)
	}
	if body.StoneQuantity != nil {
		stone.StoneQuantity = *body.StoneQuantity
	}
	if body.SizeValue != nil {
		if *body.SizeValue == 0 {
			stone.SizeValue = nil
		} else {
			stone.SizeValue = body.SizeValue
		}
	}
	if body.SizeUnit != nil {
		stone.SizeUnit = strings.TrimSpace(*body.SizeUnit)
	}
	if body.StoneColor != nil {
		stone.StoneColor = nilIfEmpty(body.StoneColor)
	}
	if body.StoneSetting != nil {
		stone.StoneSetting = nilIfEmpty(body.StoneSetting)
	}
	if body.StoneClarity != nil {
		stone.StoneClarity = nilIfEmpty(body.StoneClarity)
	}
	if body.CutGrade != nil {
		stone.CutGrade = nilIfEmpty(body.CutGrade)
	}
	if body.OriginCountry != nil {
		stone.OriginCountry = nilIfEmpty(body.OriginCountry)
	}
	if body.Certificate != nil {
		stone.Certificate = nilIfEmpty(body.Certificate)
	}
	if body.Comment != nil {
		stone.Comment = nilIfEmpty(body.Comment)
	}
}

func nilIfEmpty(s *string) *string {
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func nilIfZero(n *uint) *uint {
	if *n == 0 {
		return nil
	}
	return n
}

// POST /api/stones
func CreateStoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body StoneRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		stone := models.Stone{CreatedBy: userID}
		apply(&body, &stone)

		if err := Create(&stone); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Taş oluşturulamadı")
		}

		audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			Action:     "Stone created",
			ObjectType: "stone",
			ObjectID:   audit.ObjectID(stone.ID),
			Details:    fiber.Map{"display": stone.DisplayString()},
			Severity:   models.SeveritySuccess,
		})

		return c.Status(fiber.StatusCreated).JSON(ToResponse(&stone))
	}
}

// PUT /api/stones/:id
func UpdateStoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz taş ID")
		}

		stone, err := Get(uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Taş bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Taş yüklenemedi")
		}

		var body StoneRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		apply(&body, stone)

		if err := Save(stone); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Taş güncellenemedi")
		}

		audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			Action:     "Stone updated",
			ObjectType: "stone",
			ObjectID:   audit.ObjectID(stone.ID),
			Details:    fiber.Map{"display": stone.DisplayString()},
		})

		return c.JSON(ToResponse(stone))
	}
}

// DELETE /api/stones/:id
func DeleteStoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz taş ID")
		}

		if _, err := Get(uint(id)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Taş bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Taş yüklenemedi")
		}

		if err := Delete(uint(id)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Taş silinemedi")
		}

		audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			Action:     "Stone deleted",
			ObjectType: "stone",
			ObjectID:   audit.ObjectID(uint(id)),
			Severity:   models.SeverityWarning,
		})

		return c.JSON(fiber.Map{"message": "Taş silindi"})
	}
}

// GET /api/stones/:id
func GetStoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz taş ID")
		}

		stone, err := Get(uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Taş bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Taş yüklenemedi")
		}

		res := ToResponse(stone)

		// Bağlı taş siparişi varsa yanıtına ekle
		order, err := StoneOrderOf(stone.ID)
		if err == nil && order != nil {
			res.HasStoneOrder = true
		}

		return c.JSON(res)
	}
}

// GET /api/stones?page=&per_page=&order_id=&order_item_id=&available=&search=
func ListStonesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var f ListFilters
		f.Page, _ = strconv.Atoi(c.Query("page", "1"))
		f.PerPage, _ = strconv.Atoi(c.Query("per_page", "20"))
		f.Search = strings.TrimSpace(c.Query("search"))

		if v := c.Query("order_id"); v != "" {
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				id := uint(n)
				f.OrderID = &id
			}
		}
		if v := c.Query("order_item_id"); v != "" {
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				id := uint(n)
				f.OrderItemID = &id
			}
		}
		if v := c.Query("available"); v != "" {
			// available=true: hiçbir taş siparişine bağlı olmayanlar
			available := v == "true" || v == "1"
			hasOrder := !available
			f.HasStoneOrder = &hasOrder
		}

		result, err := List(f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Taşlar listelenemedi")
		}

		items := make([]StoneResponse, 0, len(result.Stones))
		for i := range result.Stones {
			res := ToResponse(&result.Stones[i].Stone)
			res.HasStoneOrder = result.Stones[i].HasStoneOrder
			items = append(items, res)
		}

		return c.JSON(fiber.Map{
			"stones": items,
			"total":  result.Total,
			"pages":  result.Pages,
		})
	}
}
