package files

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

type FileResponse struct {
	ID           uint   `json:"id"`
	OrderID      uint   `json:"order_id"`
	FileName     string `json:"file_name"`
	FileType     string `json:"file_type"`
	FileSize     int64  `json:"file_size"`
	Comment      string `json:"comment,omitempty"`
	HasThumbnail bool   `json:"has_thumbnail"`
	UploadedBy   uint   `json:"uploaded_by"`
	UploadedAt   string `json:"uploaded_at"`
}

func toFileResponse(f *models.OrderFile) FileResponse {
	res := FileResponse{
		ID:           f.ID,
		OrderID:      f.OrderID,
		FileName:     f.FileName,
		FileType:     f.FileType,
		FileSize:     f.FileSize,
		HasThumbnail: f.ThumbnailPath != nil,
		UploadedBy:   f.UploadedBy,
		UploadedAt:   f.UploadedAt.Format("2006-01-02 15:04:05"),
	}
	if f.Comment != nil {
		res.Comment = *f.Comment
	}
	return res
}

func loadFile(c *fiber.Ctx) (*models.OrderFile, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Geçersiz dosya ID")
	}

	var file models.OrderFile
	if err := database.DB.First(&file, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Dosya bulunamadı")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Dosya yüklenemedi")
	}
	return &file, nil
}

// POST /api/orders/:id/files
// Multipart: "file" zorunlu, "thumbnail" ve "comment" opsiyonel.
func UploadFileHandler(st *Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		orderID, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş ID")
		}

		var order models.Order
		if err := database.DB.First(&order, uint(orderID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş yüklenemedi")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya zorunlu")
		}

		rel, abs, err := st.Prepare(order.ID, fileHeader.Filename, fileHeader.Size, false)
		if err != nil {
			if errors.Is(err, ErrFileTooLarge) || errors.Is(err, ErrForbiddenType) || errors.Is(err, ErrInvalidFileName) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya hazırlanamadı")
		}

		if err := c.SaveFile(fileHeader, abs); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya kaydedilemedi")
		}

		record := models.OrderFile{
			OrderID:    order.ID,
			FileName:   fileHeader.Filename,
			FilePath:   rel,
			FileType:   fileHeader.Header.Get("Content-Type"),
			FileSize:   fileHeader.Size,
			UploadedBy: userID,
			UploadedAt: time.Now(),
		}

		if comment := strings.TrimSpace(c.FormValue("comment")); comment != "" {
			record.Comment = &comment
		}

		// Küçük resim opsiyonel, hatası ana yüklemeyi bozmaz
		if thumbHeader, err := c.FormFile("thumbnail"); err == nil {
			thumbRel, thumbAbs, err := st.Prepare(order.ID, thumbHeader.Filename, thumbHeader.Size, true)
			if err == nil {
				if err := c.SaveFile(thumbHeader, thumbAbs); err == nil {
					record.ThumbnailPath = &thumbRel
				}
			}
		}

		if err := database.DB.Create(&record).Error; err != nil {
			st.Delete(rel)
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya kaydı oluşturulamadı")
		}

		audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			Action:     "File uploaded",
			ObjectType: "order_file",
			ObjectID:   audit.ObjectID(record.ID),
			Details:    fiber.Map{"order_id": order.ID, "file_name": record.FileName, "size": record.FileSize},
			Severity:   models.SeveritySuccess,
		})

		return c.Status(fiber.StatusCreated).JSON(toFileResponse(&record))
	}
}

// GET /api/orders/:id/files
func ListOrderFilesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş ID")
		}

		var records []models.OrderFile
		err = database.DB.Where("order_id = ?", uint(orderID)).
			Order("uploaded_at DESC").
			Find(&records).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosyalar listelenemedi")
		}

		items := make([]FileResponse, 0, len(records))
		for i := range records {
			items = append(items, toFileResponse(&records[i]))
		}

		return c.JSON(fiber.Map{"files": items})
	}
}

// DELETE /api/files/:id
func DeleteFileHandler(st *Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		file, err := loadFile(c)
		if err != nil {
			return err
		}

		// Fiziksel dosya kaybolmuş olsa bile kayıt silinir
		if err := st.Delete(file.FilePath); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya silinemedi")
		}
		if file.ThumbnailPath != nil {
			st.Delete(*file.ThumbnailPath)
		}

		if err := database.DB.Delete(file).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya kaydı silinemedi")
		}

		audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			Action:     "File deleted",
			ObjectType: "order_file",
			ObjectID:   audit.ObjectID(file.ID),
			Details:    fiber.Map{"order_id": file.OrderID, "file_name": file.FileName},
			Severity:   models.SeverityWarning,
		})

		return c.JSON(fiber.Map{"message": "Dosya silindi"})
	}
}

// GET /api/files/:id/download
func DownloadFileHandler(st *Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := loadFile(c)
		if err != nil {
			return err
		}

		abs, err := st.Resolve(file.FilePath)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya yolu çözülemedi")
		}

		return c.Download(abs, file.FileName)
	}
}

// GET /api/files/:id/thumbnail
func ThumbnailHandler(st *Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := loadFile(c)
		if err != nil {
			return err
		}

		if file.ThumbnailPath == nil {
			return fiber.NewError(fiber.StatusNotFound, "Küçük resim yok")
		}

		abs, err := st.Resolve(*file.ThumbnailPath)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya yolu çözülemedi")
		}

		return c.SendFile(abs)
	}
}
