package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"conci-backend/config"
	"conci-backend/controllers"
	"conci-backend/routes"
	"conci-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Without an API key the classifier answers with its offline
	// fallback; guests still get replies, so this is not fatal.
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("⚠️  OPENAI_API_KEY is not set; classifier will run in fallback mode")
	} else {
		log.Println("✅ OPENAI_API_KEY detected.")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied")

	// Initialize services
	amenityService := services.NewAmenityService(db)
	classifier := services.NewOpenAIClassifier(apiKey)
	triageService := services.NewTriageService(db, classifier, amenityService, services.DefaultCommitmentPolicy())
	requestService := services.NewRequestService(db)
	assignmentService := services.NewAssignmentService(db)
	staffService := services.NewStaffService(db)
	roomService := services.NewRoomService(db)
	hotelService := services.NewHotelService(db)

	// Initialize controllers
	guestController := controllers.NewGuestController(triageService, requestService)
	requestController := controllers.NewRequestController(requestService, staffService)
	assignmentController := controllers.NewAssignmentController(assignmentService)
	amenityController := controllers.NewAmenityController(amenityService)
	roomController := controllers.NewRoomController(roomService)
	staffController := controllers.NewStaffController(staffService)
	hotelController := controllers.NewHotelController(hotelService)

	router := routes.SetupRouter(
		guestController,
		requestController,
		assignmentController,
		amenityController,
		roomController,
		staffController,
		hotelController,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// Write timeout leaves headroom for the classifier call.
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
