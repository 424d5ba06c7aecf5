package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/DDricck/price-pulse-product-manager/internal/authz"
	"github.com/DDricck/price-pulse-product-manager/internal/config"
	"github.com/DDricck/price-pulse-product-manager/internal/handler"
	"github.com/DDricck/price-pulse-product-manager/internal/middleware"
	"github.com/DDricck/price-pulse-product-manager/internal/model"
	"github.com/DDricck/price-pulse-product-manager/internal/repository"
	"github.com/DDricck/price-pulse-product-manager/internal/service"
	"github.com/DDricck/price-pulse-product-manager/internal/ws"
	"github.com/DDricck/price-pulse-product-manager/pkg/database"
	"github.com/DDricck/price-pulse-product-manager/pkg/mailer"
)

func main() {
	// 1. Load config (reads .env when present)
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	// 2. Setup database
	db := database.ConnectDB(cfg.Database)
	if err := db.AutoMigrate(
		&model.User{}, &model.UserRole{}, &model.UserPermissions{},
		&model.Product{}, &model.PriceHistory{},
	); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Msg("database connection established")

	// 3. Seed the bootstrap admin if no admin exists yet
	seedBootstrapAdmin(db, cfg, log)

	// 4. WebSocket hub for change events
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency injection (wiring layers)
	productRepo := repository.NewProductRepo(db)
	priceRepo := repository.NewPriceHistoryRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewUserRoleRepo(db)
	permRepo := repository.NewUserPermissionsRepo(db)

	resolver := authz.NewResolver(roleRepo, permRepo, log)
	mail := mailer.New(cfg.SMTP)

	authService := service.NewAuthService(userRepo, resolver, mail, log)
	productService := service.NewProductService(productRepo, wsHub)
	priceService := service.NewPriceHistoryService(priceRepo, productRepo, wsHub)
	userService := service.NewUserManagementService(userRepo, roleRepo, permRepo, mail, wsHub, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	priceHandler := handler.NewPriceHistoryHandler(priceService)
	userHandler := handler.NewUserHandler(userService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "PricePulse API v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)

	protected := api.Group("", middleware.RequireAuth(userRepo, resolver))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/change-password", authHandler.ChangePassword)
	protected.Get("/me", authHandler.Me)

	// Products (permission flags enforced in the service layer)
	protected.Get("/products", productHandler.GetProducts)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:code", productHandler.UpdateProduct)
	protected.Delete("/products/:code", productHandler.DeleteProduct)
	protected.Post("/products/:code/restore", productHandler.RestoreProduct)

	// Price history per product
	protected.Get("/products/:code/prices", priceHandler.GetHistory)
	protected.Post("/products/:code/prices", priceHandler.AddEntry)
	protected.Put("/products/:code/prices/:date", priceHandler.EditEntry)
	protected.Delete("/products/:code/prices/:date", priceHandler.DeleteEntry)

	// User management (admin-only)
	admin := protected.Group("/users", middleware.RequireAdmin())
	admin.Get("", userHandler.GetUsers)
	admin.Post("/invite", userHandler.InviteUser)
	admin.Put("/:id/role", userHandler.UpdateUserRole)
	admin.Put("/:id/permissions", userHandler.UpdateUserPermissions)
	admin.Delete("/:id", userHandler.DeleteUser)

	// WebSocket change feed
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

// seedBootstrapAdmin creates the configured admin account with its role
// row if no account exists for that email.
func seedBootstrapAdmin(db *gorm.DB, cfg *config.Config, log zerolog.Logger) {
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewUserRoleRepo(db)

	if _, err := userRepo.FindByEmail(cfg.Admin.Email); err == nil {
		return
	}

	admin := &model.User{
		Email:     cfg.Admin.Email,
		FirstName: "Admin",
		IsActive:  true,
	}
	if err := admin.SetPassword(cfg.Admin.Password); err != nil {
		log.Warn().Err(err).Msg("failed to hash bootstrap admin password")
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Warn().Err(err).Msg("failed to create bootstrap admin")
		return
	}
	if err := roleRepo.Grant(admin.ID); err != nil {
		log.Warn().Err(err).Msg("failed to grant bootstrap admin role")
		return
	}
	log.Info().Str("email", cfg.Admin.Email).Msg("bootstrap admin created")
}
