package api

import (
	"net/http" // HTTP status codes

	"ticket_system/internal/config"     // Application configuration
	"ticket_system/internal/middleware" // JWT middleware
	"ticket_system/internal/service"    // Mailer interface

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter wires every route. Register, login and forgot-password are
// public; everything else sits behind the JWT middleware.
func NewRouter(db *gorm.DB, rdb *redis.Client, mailer service.Mailer, cfg *config.Config) *gin.Engine {
	r := gin.Default() // Gin router instance

	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret) // Shared auth middleware

	// Root info endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"project": "Helpdesk API"})
	})

	// Uploaded profile images are served statically
	r.Static("/uploads", cfg.UploadDir)

	// User routes
	users := r.Group("/users")
	users.POST("/register", RegisterHandler(db, rdb))             // Registration endpoint
	users.POST("/login", LoginHandler(db, cfg.JWTSecret))         // Login endpoint
	users.POST("/forgot-password", ForgotPasswordHandler(db, mailer)) // Password reset endpoint
	users.GET("", auth, ListUsersHandler(db, rdb))                // List users endpoint
	users.GET("/:id", auth, GetUserHandler(db))                   // Get user endpoint
	users.DELETE("", auth, BulkDeleteUsersHandler(db, rdb))       // Bulk delete endpoint
	users.DELETE("/:id", auth, DeleteUserHandler(db, rdb))        // Delete user endpoint
	users.PATCH("/settings/profile/:id", auth, EditProfileHandler(db, rdb, cfg.UploadDir)) // Profile edit endpoint
	users.POST("/settings/change-password", auth, ChangePasswordHandler(db))               // Password change endpoint

	// Ticket routes
	tickets := r.Group("/tickets")
	tickets.Use(auth) // All ticket routes require a valid token
	tickets.POST("", CreateTicketHandler(db, rdb))      // Create ticket endpoint
	tickets.GET("", ListTicketsHandler(db, rdb))        // List tickets endpoint
	tickets.GET("/:id", GetTicketHandler(db))           // Get ticket endpoint
	tickets.DELETE("/:id", DeleteTicketHandler(db, rdb)) // Delete ticket endpoint
	tickets.PATCH("/:id", EditTicketHandler(db, rdb))   // Edit ticket endpoint

	// Reply routes, mounted at the root like the admin console expects
	r.POST("/:ticketId/replies", auth, CreateReplyHandler(db)) // Create reply endpoint
	r.GET("/replies", auth, ListRepliesHandler(db))            // List replies endpoint
	r.GET("/replies/:id", auth, GetReplyHandler(db))           // Get reply endpoint
	r.DELETE("/replies/:id", auth, DeleteReplyHandler(db))     // Delete reply endpoint
	r.PATCH("/replies/:id", auth, EditReplyHandler(db))        // Edit reply endpoint

	return r
}
