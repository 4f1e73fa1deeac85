package main

import (
	"log"

	"strava-whatsapp-bot/internal/config"
	"strava-whatsapp-bot/internal/database"
	"strava-whatsapp-bot/internal/handlers"
	"strava-whatsapp-bot/internal/rankings"
	"strava-whatsapp-bot/internal/services"
	"strava-whatsapp-bot/internal/strava"
	"strava-whatsapp-bot/internal/whatsapp"

	_ "strava-whatsapp-bot/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Strava WhatsApp Bot
// @version         1.0
// @description     Relays Strava running activities to a WhatsApp group and computes distance rankings.
// @host            localhost:8000
// @BasePath        /

func main() {
	cfg := config.Load()

	if cfg.StravaClientID == "" || cfg.StravaClientSecret == "" {
		log.Fatal("STRAVA_CLIENT_ID and STRAVA_CLIENT_SECRET must be set")
	}

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	stravaClient := strava.NewClient(cfg.StravaClientID, cfg.StravaClientSecret, cfg.StravaVerifyToken)
	whatsappClient := whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppGroupID)
	calc := rankings.NewCalculator(cfg.Timezone)

	athleteService := services.NewAthleteService(db)
	activityService := services.NewActivityService(db)
	webhookService := services.NewWebhookService(athleteService, activityService, calc, stravaClient, whatsappClient)

	webhookHandler := handlers.NewWebhookHandler(webhookService, cfg.StravaVerifyToken)
	rankingHandler := handlers.NewRankingHandler(activityService, calc)
	stravaHandler := handlers.NewStravaHandler(stravaClient, athleteService, cfg.WebhookURL)
	athleteHandler := handlers.NewAthleteHandler(athleteService, activityService)
	whatsappHandler := handlers.NewWhatsAppHandler(whatsappClient)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/", handlers.Health)

	r.GET("/webhook", webhookHandler.Verify)
	r.POST("/webhook", webhookHandler.HandleEvent)

	r.GET("/ranking/weekly", rankingHandler.Weekly)
	r.GET("/ranking/monthly", rankingHandler.Monthly)

	r.GET("/strava/auth", stravaHandler.AuthURL)
	r.GET("/strava/callback", stravaHandler.Callback)
	r.POST("/strava/webhook/subscribe", stravaHandler.Subscribe)
	r.GET("/strava/webhook/subscriptions", stravaHandler.ListSubscriptions)
	r.DELETE("/strava/webhook/subscriptions/:id", stravaHandler.DeleteSubscription)

	r.GET("/athletes", athleteHandler.ListAthletes)
	r.GET("/activities", athleteHandler.ListActivities)
	r.GET("/stats", athleteHandler.GetStats)

	r.GET("/whatsapp/health", whatsappHandler.Health)
	r.GET("/whatsapp/groups", whatsappHandler.Groups)

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
