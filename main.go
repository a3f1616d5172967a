package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"franchise-membership-system/handlers"
	"franchise-membership-system/middleware"
	"franchise-membership-system/models"
	"franchise-membership-system/services"
	"franchise-membership-system/utils"
	"franchise-membership-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // profile images only
	})

	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(allowedOriginsList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	if err := utils.InitStorage(); err != nil {
		log.Fatal("failed to initialize object storage:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.BusinessDetails{},
		&models.ContactDetails{},
		&models.GainsProfile{},
		&models.Referral{},
		&models.Region{},
		&models.Club{},
		&models.FranchiseAdmin{},
		&models.MemberStats{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	authService := services.NewAuthService(db, []byte(jwtSecret))
	referralService := services.NewReferralService(db)
	profileService := services.NewProfileService(db)
	membershipService := services.NewMembershipService(db)
	franchiseService := services.NewFranchiseService(db)

	session := middleware.SessionMiddleware(db, []byte(jwtSecret))

	statsClient := workers.NewReferralStatsClient(db)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go workers.PollReferralStats(ctx, statsClient, 60*time.Second)

	membershipService.StartExpiryScheduler()

	handlers.SetupAuthRoutes(app, authService, session)
	handlers.SetupReferralRoutes(app, referralService, session)
	handlers.SetupProfileRoutes(app, profileService, session)
	handlers.SetupMembershipRoutes(app, membershipService, session)
	handlers.SetupFranchiseRoutes(app, franchiseService, session)

	app.Static("/uploads", "./uploads")

	go func() {
		if err := app.Listen(":5100"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("Server running on http://localhost:5100")
	log.Println("Referral stats polling running (every 60s)")
	log.Println("Membership expiry scheduler running (hourly)")

	<-ctx.Done()
	log.Println("Shutting down server...")
}
