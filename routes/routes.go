package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"conci-backend/controllers"
	"conci-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	gc *controllers.GuestController,
	rc *controllers.RequestController,
	ac *controllers.AssignmentController,
	amc *controllers.AmenityController,
	roc *controllers.RoomController,
	sc *controllers.StaffController,
	hc *controllers.HotelController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		guest := api.Group("/guest")
		{
			guest.POST("/command", gc.ProcessCommand)
			guest.GET("/:hotelID/:roomNumber/updates", gc.GetUpdates)
		}

		requests := api.Group("/requests")
		{
			requests.GET("", rc.List)

			// /new must come before /:id
			requests.GET("/new", rc.CheckNew)

			requests.GET("/:id", rc.GetByID)
			requests.POST("/:id/status", rc.UpdateStatus)
			requests.POST("/:id/notes", rc.UpdateNotes)
			requests.POST("/:id/assign", rc.Assign)
		}

		assignments := api.Group("/assignments")
		{
			assignments.GET("", ac.List)
			assignments.POST("", ac.Create)
			assignments.GET("/:id", ac.GetByID)
			assignments.PUT("/:id", ac.Update)
			assignments.DELETE("/:id", ac.Delete)
			assignments.POST("/:id/checkin", ac.CheckIn)
			assignments.POST("/:id/checkout", ac.CheckOut)
		}

		amenities := api.Group("/amenities")
		{
			amenities.GET("", amc.List)
			amenities.POST("", amc.Create)
			amenities.PUT("/:id", amc.Update)
			amenities.DELETE("/:id", amc.Delete)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roc.List)
			rooms.POST("", roc.Create)
			rooms.PATCH("/:id/status", roc.UpdateStatus)
			rooms.DELETE("/:id", roc.Delete)
		}

		hotels := api.Group("/hotels")
		{
			hotels.GET("/:id/summary", hc.Summary)
			hotels.GET("/:id/config", hc.GetConfig)
			hotels.PUT("/:id/config", hc.SetConfig)
		}

		staff := api.Group("/staff")
		{
			staff.GET("", sc.List)
			staff.POST("", sc.Create)
		}

		api.POST("/auth/login", sc.Login)
	}

	return r
}
