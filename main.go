package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"gotours/config"
	"gotours/controller"
	"gotours/database"
	"gotours/middlewares"
	"gotours/route"
	"gotours/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	db, err := database.Connect(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return strings.HasPrefix(origin, "http://localhost:") ||
				strings.HasPrefix(origin, "http://127.0.0.1:") ||
				strings.HasPrefix(origin, "https://")
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middlewares.ErrorHandler(cfg.IsProduction()))

	tourHandler, err := controller.NewTourHandler(db, cfg)
	if err != nil {
		log.Fatal("Failed to init tour handler:", err)
	}

	route.Register(router, route.Deps{
		Auth:      controller.NewAuthHandler(db, cfg, utils.NewMailer(cfg.SMTP)),
		Users:     controller.NewUserHandler(db),
		Tours:     tourHandler,
		Reviews:   controller.NewReviewHandler(db),
		Protect:   middlewares.Protect(db, cfg),
		RateLimit: middlewares.NewRateLimiter(100, time.Hour).Middleware(),
		BodyLimit: middlewares.BodyLimit(10<<10, 10<<20),
	})
	router.NoRoute(middlewares.NotFound())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Println("Server listening on port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Println("Server shutdown:", err)
	}
	if err := db.Disconnect(ctx); err != nil {
		log.Println("Mongo disconnect:", err)
	}
}
