package routes

import (
	"net/http"
	"time"

	"servana/handlers"
	"servana/middleware"
	"servana/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Provider *handlers.ProviderHandler
}

// RegisterRoutes sets up all endpoints.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Servana"})
	})
}

// RegisterBookingRoutes sets up the endpoints for the scheduling core.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.AuthMiddleware())
		bookingGroup.POST("", hb.Booking.CreateBooking)
		bookingGroup.GET("", hb.Booking.ListBookings)
		bookingGroup.POST("/:id/transition", hb.Booking.TransitionBooking)
		bookingGroup.POST("/:id/reschedule", hb.Booking.RescheduleBooking)
	}
}

// RegisterProviderRoutes registers provider management endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.Use(middleware.AuthMiddleware())
		api.GET("/:id", hb.Provider.GetProviderByIDHandler)
		api.GET("/:id/availability", hb.Provider.GetDayAvailabilityHandler)

		// Registration is an admin operation; updates are owner-or-admin.
		api.POST("", middleware.RequireRole(), hb.Provider.RegisterProviderHandler)
		api.PATCH("/:id", middleware.RequireRole(models.RoleProvider), hb.Provider.UpdateProviderHandler)
	}
}
