package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"golang-advisorybackend/config"
	"golang-advisorybackend/controllers"
	"golang-advisorybackend/database"
	"golang-advisorybackend/helpers"
	"golang-advisorybackend/logger"
	"golang-advisorybackend/middleware"
	"golang-advisorybackend/repository"
	"golang-advisorybackend/routes"
	"golang-advisorybackend/services"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(os.Getenv("LOG_LEVEL"))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to mongodb")
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			log.WithError(err).Error("error disconnecting from mongodb")
		}
	}()
	log.Info("connected to mongodb")

	if err := database.EnsureIndexes(ctx, client, cfg); err != nil {
		log.WithError(err).Fatal("failed to create indexes")
	}

	userCollection := database.OpenCollection(client, cfg, "user")
	contactCollection := database.OpenCollection(client, cfg, "contact")
	newsletterCollection := database.OpenCollection(client, cfg, "newsletter")
	blogCollection := database.OpenCollection(client, cfg, "blogpost")
	insightCollection := database.OpenCollection(client, cfg, "insight")
	investmentCollection := database.OpenCollection(client, cfg, "investment")
	applicationCollection := database.OpenCollection(client, cfg, "jobapplication")
	appointmentCollection := database.OpenCollection(client, cfg, "appointment")

	tokens := helpers.NewTokenHelper(userCollection, cfg.JWTSecret, cfg.AccessTokenHours, cfg.RefreshTokenHours)

	uploader, err := helpers.NewUploader(ctx, cfg.Spaces)
	if err != nil {
		log.WithError(err).Fatal("failed to initialise object storage")
	}

	notifier := services.NewLogNotifier(log)
	appointmentService := services.NewAppointmentService(
		repository.NewAppointmentRepository(appointmentCollection),
		repository.NewUserRepository(userCollection),
		notifier,
		log,
	)

	authController := controllers.NewAuthController(userCollection, tokens, log)
	contactController := controllers.NewContactController(contactCollection, notifier, log)
	newsletterController := controllers.NewNewsletterController(newsletterCollection, log)
	blogController := controllers.NewBlogController(blogCollection, log)
	insightController := controllers.NewInsightController(insightCollection, log)
	investmentController := controllers.NewInvestmentController(investmentCollection, log)
	jobController := controllers.NewJobController(applicationCollection, uploader, log)
	marketController := controllers.NewMarketController(log)
	adminController := controllers.NewAdminController(
		userCollection,
		contactCollection,
		newsletterCollection,
		investmentCollection,
		applicationCollection,
		appointmentCollection,
		log,
	)
	appointmentController := controllers.NewAppointmentController(appointmentService, log)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RateLimit(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	publicRoutes := api.Group("/")
	{
		routes.AuthRoutes(publicRoutes, authController)
		routes.ContentRoutes(publicRoutes,
			contactController,
			newsletterController,
			blogController,
			insightController,
			jobController,
			marketController,
		)
	}

	privateRoutes := api.Group("/")
	privateRoutes.Use(middleware.Authentication(tokens))
	{
		routes.UserRoutes(privateRoutes, authController)
		routes.InvestmentRoutes(privateRoutes, investmentController)
		routes.AppointmentRoutes(privateRoutes, appointmentController)
		routes.AdminUserRoutes(privateRoutes, adminController)
		routes.AdminContentRoutes(privateRoutes,
			contactController,
			newsletterController,
			blogController,
			insightController,
			jobController,
		)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}
