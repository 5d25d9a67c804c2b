package main

import (
	"log"
	"strings"

	"atolye-backend/internal/audit"
	"atolye-backend/internal/auth"
	"atolye-backend/internal/config"
	"atolye-backend/internal/database"
	"atolye-backend/internal/delivery"
	"atolye-backend/internal/files"
	"atolye-backend/internal/models"
	"atolye-backend/internal/options"
	"atolye-backend/internal/orders"
	"atolye-backend/internal/stoneorders"
	"atolye-backend/internal/stones"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)
	options.SeedDefaults()

	reg := options.NewRegistry()
	storage := files.NewStorage(cfg.UploadPath, cfg.MaxUploadSizeMB)

	app := fiber.New(fiber.Config{
		BodyLimit: (cfg.MaxUploadSizeMB + 1) * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Müşteriye açık teslimat takibi (kimlik doğrulaması yok)
	api.Get("/delivery/:orderNumber", delivery.DeliveryStatusHandler())

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Kullanıcı yönetimi
	adminRoutes.Post("/users", auth.CreateUserHandler())

	// Seçenek kayıt defteri yönetimi
	adminRoutes.Post("/options", options.AddOptionHandler(reg))
	adminRoutes.Delete("/options", options.DeleteOptionHandler(reg))
	adminRoutes.Put("/options/order", options.ReorderOptionsHandler(reg))

	// Seçenek listeleri (formlar okur)
	protected.Get("/options/:type", options.ListOptionsHandler(reg))

	// Müşteri siparişleri
	protected.Post("/orders", orders.CreateOrderHandler())
	protected.Get("/orders", orders.ListOrdersHandler())
	protected.Get("/orders/:id", orders.GetOrderHandler())
	protected.Get("/orders/:id/extension", orders.GetOrderExtensionHandler())
	protected.Put("/orders/:id/extension", orders.UpdateOrderExtensionHandler())

	// Sipariş dosyaları
	protected.Post("/orders/:id/files", files.UploadFileHandler(storage))
	protected.Get("/orders/:id/files", files.ListOrderFilesHandler())
	protected.Delete("/files/:id", files.DeleteFileHandler(storage))
	protected.Get("/files/:id/download", files.DownloadFileHandler(storage))
	protected.Get("/files/:id/thumbnail", files.ThumbnailHandler(storage))

	// Taşlar
	protected.Post("/stones", stones.CreateStoneHandler())
	protected.Get("/stones", stones.ListStonesHandler())
	protected.Get("/stones/:id", stones.GetStoneHandler())
	protected.Put("/stones/:id", stones.UpdateStoneHandler())
	protected.Delete("/stones/:id", stones.DeleteStoneHandler())

	// Taş siparişleri
	protected.Post("/stone-orders", stoneorders.CreateStoneOrderHandler(reg))
	protected.Get("/stone-orders", stoneorders.ListStoneOrdersHandler(reg))
	protected.Get("/stone-orders/:id", stoneorders.GetStoneOrderHandler(reg))
	protected.Put("/stone-orders/:id", stoneorders.UpdateStoneOrderHandler(reg))
	protected.Delete("/stone-orders/:id", stoneorders.DeleteStoneOrderHandler())
	protected.Post("/stone-orders/:id/stones", stoneorders.AddStoneHandler())
	protected.Delete("/stone-orders/:id/stones/:stoneId", stoneorders.RemoveStoneHandler())
	protected.Put("/stone-orders/:id/stones/:stoneId/cart", stoneorders.SetInCartHandler())
	protected.Get("/stone-orders/:id/message", stoneorders.SupplierMessageHandler())
	protected.Get("/stone-orders/:id/export", stoneorders.ExportStoneOrderHandler())

	// Aktivite kayıtları
	protected.Get("/activity-logs", audit.ListActivityLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
