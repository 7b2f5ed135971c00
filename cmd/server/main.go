package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"contacts-service/internal/application/services"
	"contacts-service/internal/config"
	"contacts-service/internal/delivery/httpapi"
	"contacts-service/internal/infrastructure/cache"
	"contacts-service/internal/infrastructure/db/postgres"
	"contacts-service/internal/infrastructure/email"
	"contacts-service/internal/infrastructure/tokens"
	"contacts-service/internal/infrastructure/upload"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatal("failed to migrate schema: ", err)
	}

	jwtService := tokens.NewJWTService(cfg.JWTSecret, cfg.JWTExpiration)
	sessionCache := cache.NewSessionCache(
		cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB),
		jwtService.AccessTTL(),
	)
	sender := email.NewSendgridSender(cfg.SendgridAPIKey, cfg.MailFrom, cfg.MailFromName)

	var uploader upload.Uploader = upload.Disabled{}
	if cfg.CloudinaryURL != "" {
		cloudinaryUploader, err := upload.NewCloudinaryUploader(cfg.CloudinaryURL)
		if err != nil {
			log.Fatal("invalid CLOUDINARY_URL: ", err)
		}
		uploader = cloudinaryUploader
	} else {
		log.Println("CLOUDINARY_URL not set, avatar uploads disabled")
	}

	userRepo := postgres.NewUserRepository(db)
	contactRepo := postgres.NewContactRepository(db)

	authService := services.NewAuthService(userRepo, sessionCache, jwtService, sender)
	userService := services.NewUserService(userRepo, sessionCache, uploader)
	contactService := services.NewContactService(contactRepo)

	e := httpapi.NewRouter(cfg, authService, userService, contactService)

	go func() {
		if err := e.Start(cfg.HTTPAddress()); err != nil {
			log.Println("server stopped: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatal("forced shutdown: ", err)
	}
}
