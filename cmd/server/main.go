package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/greenwave/conference-ticketing/internal/clock"
	"github.com/greenwave/conference-ticketing/internal/config"
	"github.com/greenwave/conference-ticketing/internal/database"
	"github.com/greenwave/conference-ticketing/internal/handler"
	"github.com/greenwave/conference-ticketing/internal/middleware"
	"github.com/greenwave/conference-ticketing/internal/queue"
	"github.com/greenwave/conference-ticketing/internal/repository"
	"github.com/greenwave/conference-ticketing/internal/router"
	"github.com/greenwave/conference-ticketing/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// First start on an empty database creates the schema and seeds
	// the workshop catalog.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	attendees := repository.NewAttendeeRepo(db)
	tokens := repository.NewTokenRepo(db)
	ledger := repository.NewLedgerRepo(db)
	passes := repository.NewPassRepo(db)
	workshops := repository.NewWorkshopRepo(db)
	reservations := repository.NewReservationRepo(db)
	reports := repository.NewSalesReportRepo(db)

	publisher := queue.NewPublisher()
	svc := service.NewTicketing(
		attendees, passes, ledger, workshops, reservations, reports,
		publisher, clock.NewSystem(),
		service.AdminCredentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword},
		cfg.BcryptCost,
	)

	// Background consumer appends recorded sales to the audit log.
	go func() {
		if err := queue.StartSalesConsumer(); err != nil {
			log.Printf("sales consumer stopped: %v", err)
		}
	}()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}

	e := echo.New()
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	auth := handler.NewAuthHandler(cfg, svc, tokens)
	account := handler.NewAccountHandler(svc)
	tickets := handler.NewTicketHandler(svc)
	workshopH := handler.NewWorkshopHandler(svc)
	admin := handler.NewAdminHandler(cfg, svc)

	router.RegisterRoutes(e)
	router.RegisterPublic(e, tickets, workshopH, config.LoadCacheConfig(), rdb)
	router.RegisterAuth(e, auth)
	router.RegisterAttendee(e, account, tickets, workshopH, cfg.JWTSecret)
	router.RegisterAdmin(e, admin, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
