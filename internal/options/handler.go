package options

import (
	"strings"

	"atolye-backend/internal/audit"
	"atolye-backend/internal/auth"
	"atolye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AddOptionRequest struct {
	OptionType string `json:"option_type"`
	Value      string `json:"value"`
	Label      string `json:"label"`
	Color      string `json:"color"`
}

type DeleteOptionRequest struct {
	OptionType string `json:"option_type"`
	Value      string `json:"value"`
}

type ReorderRequest struct {
	OptionType string   `json:"option_type"`
	Values     []string `json:"values"`
}

// GET /api/options/:type
func ListOptionsHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		optionType := c.Params("type")

		items, err := reg.List(optionType)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{"options": items})
	}
}

// POST /api/admin/options (admin)
func AddOptionHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body AddOptionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Value = strings.TrimSpace(body.Value)
		body.Label = strings.TrimSpace(body.Label)

		if err := reg.Add(body.OptionType, body.Value, body.Label, body.Color); err != nil {
			return err
		}

		audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			Action:     "Option added to " + body.OptionType,
			ObjectType: "settings",
			Details:    fiber.Map{"value": body.Value, "label": body.Label},
			Severity:   models.SeverityInfo,
		})

		items, err := reg.List(body.OptionType)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"options": items})
	}
}

// DELETE /api/admin/options (admin)
func DeleteOptionHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body DeleteOptionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if err := reg.Delete(body.OptionType, strings.TrimSpace(body.Value)); err != nil {
			return err
		}

		audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			Action:     "Option deleted from " + body.OptionType,
			ObjectType: "settings",
			Details:    fiber.Map{"value": body.Value},
			Severity:   models.SeverityWarning,
		})

		items, err := reg.List(body.OptionType)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"options": items})
	}
}

// PUT /api/admin/options/order (admin) - sürükle-bırak sıralaması
func ReorderOptionsHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body ReorderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		for i := range body.Values {
			body.Values[i] = strings.TrimSpace(body.Values[i])
		}

		if err := reg.Reorder(body.OptionType, body.Values); err != nil {
			return err
		}

		audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			Action:     "Options reordered: " + body.OptionType,
			ObjectType: "settings",
			Details:    fiber.Map{"values": body.Values},
			Severity:   models.SeverityInfo,
		})

		return c.JSON(fiber.Map{"message": "Sıralama kaydedildi"})
	}
}
