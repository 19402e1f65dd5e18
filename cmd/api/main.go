package main

import (
	"os"
	"time"

	"foodshare/internal/database"
	"foodshare/internal/logger"
	"foodshare/internal/middleware"
	"foodshare/internal/modules/auth"
	"foodshare/internal/modules/catalog"
	"foodshare/internal/modules/donation"
	"foodshare/internal/modules/feedback"
	"foodshare/internal/modules/match"
	"foodshare/internal/modules/notification"
	"foodshare/internal/modules/request"
	jwtsvc "foodshare/internal/pkg/jwt"
	"foodshare/internal/pkg/upload"
	"foodshare/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	logrus "github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()
	logger.Setup()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "foodshare.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	if err := repository.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
		logrus.Warn("JWT_SECRET not set, using insecure default")
	}
	jwt := jwtsvc.New(secret, 24*time.Hour)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwt))
	catalogHandler := catalog.NewHandler(catalog.NewService(categoryRepo))
	donationHandler := donation.NewHandler(donation.NewService(donationRepo, categoryRepo))
	requestHandler := request.NewHandler(request.NewService(requestRepo, donationRepo, matchRepo, notificationRepo))
	matchHandler := match.NewHandler(match.NewService(matchRepo, donationRepo, notificationRepo))
	feedbackHandler := feedback.NewHandler(feedback.NewService(feedbackRepo, matchRepo))
	notificationHandler := notification.NewHandler(notification.NewService(notificationRepo))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger())

	r.Static("/uploads", upload.Dir)

	api := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(api)
		catalogHandler.RegisterRoutes(api)
		donationHandler.RegisterRoutes(api)
		requestHandler.RegisterRoutes(api)
		matchHandler.RegisterRoutes(api)
		feedbackHandler.RegisterRoutes(api)
		notificationHandler.RegisterRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.Auth(jwt))
		{
			authHandler.RegisterProtectedRoutes(protected)
			donationHandler.RegisterProtectedRoutes(protected)
			requestHandler.RegisterProtectedRoutes(protected)
			matchHandler.RegisterProtectedRoutes(protected)
			feedbackHandler.RegisterProtectedRoutes(protected)
			notificationHandler.RegisterProtectedRoutes(protected)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.WithField("port", port).Info("starting server")
	if err := r.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}
