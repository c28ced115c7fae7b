package main

import (
	"log"
	"os"
	"time"

	"github.com/axis-meridian-dev/Luber-development/internal/auth"
	"github.com/axis-meridian-dev/Luber-development/internal/db"
	"github.com/axis-meridian-dev/Luber-development/internal/dispatch"
	"github.com/axis-meridian-dev/Luber-development/internal/events"
	"github.com/axis-meridian-dev/Luber-development/internal/jobs"
	"github.com/axis-meridian-dev/Luber-development/internal/matching"
	"github.com/axis-meridian-dev/Luber-development/internal/middleware"
	"github.com/axis-meridian-dev/Luber-development/internal/packages"
	"github.com/axis-meridian-dev/Luber-development/internal/payments"
	"github.com/axis-meridian-dev/Luber-development/internal/shops"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"STRIPE_SECRET_KEY",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── EVENTS ─────────────────────────
	var publisher events.Publisher = events.NoopPublisher{}
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		rabbit, err := events.ConnectRabbitMQ(url)
		if err != nil {
			log.Fatal("❌ RabbitMQ init failed:", err)
		}
		defer rabbit.Close()
		publisher = rabbit
	}

	// ───────────────────────── PAYMENTS ─────────────────────────
	stripeClient := payments.NewClient(os.Getenv("STRIPE_SECRET_KEY"))

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── REPOS ─────────────────────────
	shopRepo := shops.NewPostgresRepository(pgDB)
	packageRepo := packages.NewPostgresRepository(pgDB)
	dispatchRepo := dispatch.NewPostgresRepository(pgDB)
	jobRepo := jobs.NewPostgresRepository(pgDB)
	technicianRepo := matching.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	shopService := shops.NewService(shopRepo)
	packageService := packages.NewService(packageRepo, shopRepo)
	dispatchService := dispatch.NewService(dispatchRepo, shopRepo)
	matchingService := matching.NewService(technicianRepo)
	jobService := jobs.NewService(jobRepo, stripeClient, publisher)

	// ───────────────────────── HANDLERS ─────────────────────────
	shopHandler := shops.NewHandler(shopService)
	packageHandler := packages.NewHandler(packageService)
	dispatchHandler := dispatch.NewHandler(dispatchService)
	matchingHandler := matching.NewHandler(matchingService)
	jobHandler := jobs.NewHandler(jobService)

	// ───────────────────────── CONSUMER ROUTES ─────────────────────────
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/jobs", jobHandler.CreateJob)
		api.GET("/jobs/:id", jobHandler.GetJob)
		api.POST("/jobs/:id/accept", jobHandler.AcceptJob)
		api.POST("/jobs/:id/start", jobHandler.StartJob)
		api.POST("/jobs/:id/complete", jobHandler.CompleteJob)
		api.POST("/jobs/:id/cancel", jobHandler.CancelJob)

		api.GET("/available-technicians", matchingHandler.AvailableTechnicians)
	}

	// ───────────────────────── SHOP ROUTES ─────────────────────────
	shop := r.Group("/shop")
	shop.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleShopOwner),
	)
	{
		// Dispatch
		shop.POST("/dispatch/assign", dispatchHandler.Assign)
		shop.POST("/dispatch/reassign", dispatchHandler.Reassign)
		shop.POST("/dispatch/auto-assign", dispatchHandler.AutoAssign)

		// Service packages
		shop.POST("/packages", packageHandler.Create)
		shop.GET("/packages", packageHandler.List)
		shop.PUT("/packages/:id", packageHandler.Update)
		shop.DELETE("/packages/:id", packageHandler.Delete)
		shop.PATCH("/packages/:id/active", packageHandler.ToggleActive)

		// Mobile technicians
		shop.POST("/technicians", shopHandler.AddTechnician)
		shop.GET("/technicians", shopHandler.ListTechnicians)
		shop.DELETE("/technicians/:id", shopHandler.RemoveTechnician)
		shop.PATCH("/technicians/:id/availability", shopHandler.SetAvailability)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Printf("🚀 API running at http://localhost:%s", port)
	r.Run(":" + port)
}
