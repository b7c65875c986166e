package main

import (
	"log"
	"strings"

	"unilodge-backend/internal/auth"
	"unilodge-backend/internal/config"
	"unilodge-backend/internal/database"
	"unilodge-backend/internal/media"
	"unilodge-backend/internal/property"
	"unilodge-backend/internal/testimonial"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	db := database.Init(cfg)

	store, err := media.NewStore(cfg)
	if err != nil {
		log.Fatalf("Media store init failed: %v", err)
	}

	repo := property.NewRepository(db, cfg.StorageTimeout)
	importer := property.NewImporter(repo)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

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
	api.Post("/auth/signup", auth.SignupHandler(cfg, db))
	api.Post("/auth/login", auth.LoginHandler(cfg, db))
	api.Post("/admin/signup", auth.AdminSignupHandler(cfg, db))
	api.Post("/admin/login", auth.AdminLoginHandler(cfg, db))

	// Public property reads
	api.Get("/properties", property.ListPropertiesHandler(repo))
	api.Get("/properties/filter", property.FilterPropertiesHandler(repo))
	api.Get("/properties/search", property.SearchPropertiesHandler(repo))
	api.Get("/property", property.SearchByTitleHandler(repo))
	api.Get("/property/:id", property.GetPropertyHandler(repo))

	// Public testimonials
	api.Get("/testimonials", testimonial.ListTestimonialsHandler(db))
	api.Get("/testimonials/search", testimonial.SearchTestimonialsHandler(db))
	api.Post("/testimonials", testimonial.CreateTestimonialHandler(db))

	// Authenticated users
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/users", auth.ListUsersHandler(db))
	protected.Get("/users/:id", auth.GetUserHandler(db))
	protected.Put("/users/:id", auth.UpdateUserHandler(db))
	protected.Delete("/users/:id", auth.DeleteUserHandler(db))

	// Admin-only mutations
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireAdmin())

	adminRoutes.Post("/properties/upload", property.UploadPropertiesHandler(importer))
	adminRoutes.Post("/property", property.CreatePropertyHandler(repo, store))
	adminRoutes.Put("/property/:id", property.UpdatePropertyHandler(repo, store))
	adminRoutes.Delete("/property/:id", property.DeletePropertyHandler(repo, store))
	adminRoutes.Delete("/testimonials/:id", testimonial.DeleteTestimonialHandler(db))

	log.Println("Server listening on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
