package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"vrukshavalli/internal/config"
	"vrukshavalli/internal/domain"
	"vrukshavalli/internal/email"
	"vrukshavalli/internal/http/handlers"
	applog "vrukshavalli/internal/log"
	"vrukshavalli/internal/notify"
	"vrukshavalli/internal/repos"
	"vrukshavalli/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Realtime order feed; scopes prime from the order table on first connect.
	orderRepo := repos.NewOrderRepo(db)
	hub := notify.NewHub(func(scope string) []domain.OrderSummary {
		var (
			out []domain.OrderSummary
			err error
		)
		if scope == notify.ScopeAdmin {
			out, err = orderRepo.ListLatest(100)
		} else {
			out, err = orderRepo.ListByEmail(strings.TrimPrefix(scope, "user:"))
		}
		if err != nil {
			applog.Error(nil, "feed.prime.fail", err, map[string]any{"scope": scope})
			return nil
		}
		return out
	})
	go hub.Run()

	mailer := email.New(cfg.ResendAPIKey, cfg.EmailFrom)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{AllowCredentials: false}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/ws/")
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc, hub, mailer)

	api := app.Group("/api/v1")

	// Catalog
	api.Get("/plants", deps.PlantHandler.List)
	api.Get("/plants/:id", deps.PlantHandler.Detail)

	// Cart & pricing
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart/items", deps.CartHandler.Add)
	api.Put("/cart/items/:id", deps.CartHandler.SetQty)
	api.Delete("/cart/items/:id", deps.CartHandler.Remove)
	api.Delete("/cart", deps.CartHandler.Clear)
	api.Get("/quote", deps.CartHandler.Quote)

	// Orders (checkout throttled)
	api.Post("/orders", limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.checkout.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, retry soon"})
		},
	}), deps.OrderHandler.Place)
	api.Get("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.History)
	api.Get("/orders/:id", deps.OrderHandler.View)

	// Realtime order feed
	app.Get("/ws/orders", deps.FeedHandler.Upgrade, deps.FeedHandler.Stream())

	// Auth routes (login throttled)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, please try again later"})
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/orders", deps.AdminHandler.Orders)
	admin.Post("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Get("/plants", deps.AdminHandler.Plants)
	admin.Post("/plants", deps.AdminHandler.CreatePlant)
	admin.Put("/plants/:id", deps.AdminHandler.UpdatePlant)
	admin.Delete("/plants/:id", deps.AdminHandler.DeletePlant)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port})
	log.Fatal(app.Listen(":" + cfg.Port))
}
