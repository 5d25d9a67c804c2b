package audit

import (
	"strconv"
	"time"

	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ActivityLogResponse struct {
	ID         uint   `json:"id"`
	CreatedAt  string `json:"created_at"`
	UserID     uint   `json:"user_id"`
	UserName   string `json:"user_name"`
	Action     string `json:"action"`
	ObjectType string `json:"object_type"`
	ObjectID   *uint  `json:"object_id"`
	Details    string `json:"details"`
	Severity   string `json:"severity"`
}

// GET /api/activity-logs?user_id=&object_type=&severity=&date_from=&date_to=&page=&per_page=
func ListActivityLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		perPage, _ := strconv.Atoi(c.Query("per_page", "50"))
		if page < 1 {
			page = 1
		}
		if perPage < 1 || perPage > 200 {
			perPage = 50
		}

		q := database.DB.Model(&models.ActivityLog{})

		if v := c.Query("user_id"); v != "" {
			q = q.Where("user_id = ?", v)
		}
		if v := c.Query("object_type"); v != "" {
			q = q.Where("object_type = ?", v)
		}
		if v := c.Query("severity"); v != "" {
			q = q.Where("severity = ?", v)
		}
		if v := c.Query("date_from"); v != "" {
			if t, err := time.Parse("2006-01-02", v); err == nil {
				q = q.Where("created_at >= ?", t)
			}
		}
		if v := c.Query("date_to"); v != "" {
			if t, err := time.Parse("2006-01-02", v); err == nil {
				// gün sonuna kadar dahil
				q = q.Where("created_at < ?", t.AddDate(0, 0, 1))
			}
		}

		var total int64
		if err := q.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar sayılamadı")
		}

		var logs []models.ActivityLog
		if err := q.Order("created_at DESC").
			Offset((page - 1) * perPage).
			Limit(perPage).
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar listelenemedi")
		}

		res := make([]ActivityLogResponse, 0, len(logs))
		for _, l := range logs {
			res = append(res, ActivityLogResponse{
				ID:         l.ID,
				CreatedAt:  l.CreatedAt.Format("2006-01-02 15:04:05"),
				UserID:     l.UserID,
				UserName:   l.UserName,
				Action:     l.Action,
				ObjectType: l.ObjectType,
				ObjectID:   l.ObjectID,
				Details:    l.Details,
				Severity:   string(l.Severity),
			})
		}

		return c.JSON(fiber.Map{
			"logs":  res,
			"total": total,
			"pages": (total + int64(perPage) - 1) / int64(perPage),
		})
	}
}
