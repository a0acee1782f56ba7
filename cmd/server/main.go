package main

import (
	"errors"
	"log"
	"strings"

	"gidabagis-backend/internal/apperr"
	"gidabagis-backend/internal/audit"
	"gidabagis-backend/internal/auth"
	"gidabagis-backend/internal/catalog"
	"gidabagis-backend/internal/config"
	"gidabagis-backend/internal/contact"
	"gidabagis-backend/internal/dashboard"
	"gidabagis-backend/internal/database"
	"gidabagis-backend/internal/listing"
	"gidabagis-backend/internal/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Veritabanına bağlanılamadı:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration başarısız:", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var appErr *apperr.Error
			if errors.As(err, &appErr) {
				return c.Status(apperr.HTTPStatus(appErr)).JSON(fiber.Map{
					"error": appErr.Message,
				})
			}
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
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg, db))
	api.Post("/auth/login", auth.LoginHandler(cfg, db))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(db))

	// Veri yükleme
	protected.Post("/datasets/load", loader.LoadAllHandler(cfg, db))
	protected.Post("/datasets/:table/import", loader.ImportTableHandler(db))

	// Analitik sorgu kataloğu
	protected.Get("/queries", catalog.ListQueriesHandler())
	protected.Get("/queries/:name", catalog.RunQueryHandler(db))

	// Bağış ilanları
	protected.Get("/listings", listing.ListListingsHandler(db))
	protected.Post("/listings", listing.CreateListingHandler(db))
	protected.Delete("/listings/:id", listing.DeleteListingHandler(db))

	// Filtre seçenekleri
	protected.Get("/filters/:table/:column", listing.DistinctValuesHandler(db))

	// İletişim arama
	protected.Get("/contacts/providers", contact.ProviderContactsHandler(db))
	protected.Get("/contacts/receivers", contact.ReceiverContactsHandler(db))

	// Dashboard
	protected.Get("/dashboard/top-cities", dashboard.TopCitiesChartHandler(db))
	protected.Get("/dashboard/food-types", dashboard.FoodTypesChartHandler(db))
	protected.Get("/dashboard/claim-status", dashboard.ClaimStatusChartHandler(db))

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler(db))
	protected.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler(db))

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
