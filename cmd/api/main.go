package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"cloud.google.com/go/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/genai"

	_ "github.com/sayantan-2/splitbill/docs"
	"github.com/sayantan-2/splitbill/internal/auth"
	"github.com/sayantan-2/splitbill/internal/bill"
	"github.com/sayantan-2/splitbill/internal/config"
	"github.com/sayantan-2/splitbill/internal/database"
	"github.com/sayantan-2/splitbill/internal/group"
	"github.com/sayantan-2/splitbill/internal/notification"
	"github.com/sayantan-2/splitbill/internal/paymentrequest"
	"github.com/sayantan-2/splitbill/internal/receipt"
	"github.com/sayantan-2/splitbill/internal/user"
	"github.com/sayantan-2/splitbill/pkg/logging"
	mw "github.com/sayantan-2/splitbill/pkg/middleware"
)

// @title        SplitBill API
// @version      1.0
// @description  Bill splitting service: exact allocations, payment requests, and receipt scanning.
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	logging.Setup()

	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("Connected to database")

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTDuration)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, jwtManager)
	userHandler := user.NewHandler(userService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	// Notification feature
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// Payment request feature
	requestRepo := paymentrequest.NewRepository(db)
	requestService := paymentrequest.NewService(requestRepo, notificationService)
	requestHandler := paymentrequest.NewHandler(requestService)

	// Bill feature
	billRepo := bill.NewRepository(db)
	billService := bill.NewService(billRepo, groupService, requestService, notificationService)
	billHandler := bill.NewHandler(billService)

	// Receipt scanning is optional; it needs a bucket and model credentials
	var receiptHandler *receipt.Handler
	if cfg.GCSBucket != "" {
		ctx := context.Background()

		storageClient, err := storage.NewClient(ctx)
		if err != nil {
			slog.Error("Failed to create storage client", "error", err)
			os.Exit(1)
		}
		defer storageClient.Close()

		genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
		})
		if err != nil {
			slog.Error("Failed to create genai client", "error", err)
			os.Exit(1)
		}

		receiptStorage := receipt.NewStorage(storageClient, cfg.GCSBucket)
		receiptParser := receipt.NewParser(genaiClient, cfg.GeminiModel)
		receiptService := receipt.NewService(receiptStorage, receiptParser)
		receiptHandler = receipt.NewHandler(receiptService)
	} else {
		slog.Info("GCS_BUCKET not set, receipt scanning disabled")
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", userHandler.AuthRoutes())

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(jwtManager))

			r.Mount("/users", userHandler.Routes())
			r.Mount("/groups", groupHandler.Routes())
			r.Mount("/bills", billHandler.Routes())
			r.Mount("/payment-requests", requestHandler.Routes())
			r.Mount("/notifications", notificationHandler.Routes())
			if receiptHandler != nil {
				r.Mount("/receipts", receiptHandler.Routes())
			}
		})
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("Server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
