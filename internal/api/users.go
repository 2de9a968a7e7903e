package api

import (
	"context"       // Context for Redis operations
	"net/http"      // HTTP status codes
	"os"            // Upload directory creation
	"path/filepath" // Upload path handling
	"strconv"       // String conversion
	"strings"       // Content type checks
	"time"          // Cache TTL and upload filenames

	"ticket_system/internal/domain"     // Domain models
	"ticket_system/internal/service"    // User service
	"ticket_system/internal/utils"      // Token and cache utilities
	"ticket_system/internal/validation" // Request input shapes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
	"gorm.io/gorm"                 // GORM ORM library
)

// usersCacheKey caches the full user listing
const usersCacheKey = "users:all"

// ForgotPasswordRequest is the body for a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email"` // Account email address
}

// BulkDeleteRequest is the body for a bulk user delete
type BulkDeleteRequest struct {
	IDs []uint `json:"ids"` // Target user IDs
}

// RegisterHandler creates a new user account
func RegisterHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.RegisterInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate, enforce uniqueness, hash and persist
		user, err := service.RegisterUser(db, req)
		if err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		// The user listing changed, drop the cached copy
		_ = utils.DeleteCache(context.Background(), rdb, usersCacheKey)
		// Log the registration
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // New username
		}).Info("User registered")
		// Return the created user, password hash excluded by the model
		c.JSON(http.StatusCreated, gin.H{"data": user, "message": "User created successfully"})
	}
}

// LoginHandler authenticates a user and mints the token pair
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.LoginInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate shape and verify credentials
		user, err := service.LoginUser(db, req)
		if err != nil {
			// Every login failure surfaces as 401, internal failures as 500
			status := http.StatusUnauthorized
			if service.KindOf(err) == service.KindInternal {
				status = http.StatusInternalServerError
			}
			respondError(c, status, err)
			return
		}
		// Mint the access token (24h expiry)
		accessToken, err := utils.GenerateAccessToken(user.ID, user.Role, jwtSecret)
		if err != nil {
			respondError(c, http.StatusInternalServerError, err)
			return
		}
		// Mint the refresh token (no expiry)
		refreshToken, err := utils.GenerateRefreshToken(user.ID, user.Role, jwtSecret)
		if err != nil {
			respondError(c, http.StatusInternalServerError, err)
			return
		}
		// Return the user and both tokens
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"user":         user,         // Authenticated user
				"accessToken":  accessToken,  // Short-lived bearer token
				"refreshToken": refreshToken, // Long-lived bearer token
			},
			"message": "Login successful",
		})
	}
}

// ForgotPasswordHandler resets a password and mails the replacement
func ForgotPasswordHandler(db *gorm.DB, mailer service.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Reset and notify; mail failure rolls the reset back
		user, err := service.ForgotPasswordUser(db, mailer, req.Email)
		if err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		// The plaintext went to the mailbox only, never into the response
		c.JSON(http.StatusOK, gin.H{"data": user, "message": "New password sent to your email"})
	}
}

// ListUsersHandler returns all users, served from cache when possible
func ListUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var users []domain.User
		// Try the cached listing first
		if found, err := utils.GetCache(ctx, rdb, usersCacheKey, &users); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"data": users, "message": "Users retrieved successfully"})
			return
		}
		// Fetch from the database
		users, err := service.GetAllUsers(db)
		if err != nil {
			respondError(c, statusForRead(err), err)
			return
		}
		_ = utils.SetCache(ctx, rdb, usersCacheKey, users, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, gin.H{"data": users, "message": "Users retrieved successfully"})
	}
}

// GetUserHandler returns one user by ID
func GetUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c, "id", "User not found") // Parse the path parameter
		if err != nil {
			respondError(c, statusForRead(err), err)
			return
		}
		// Fetch the user
		user, err := service.GetUserByID(db, id)
		if err != nil {
			respondError(c, statusForRead(err), err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": user, "message": "User retrieved successfully"})
	}
}

// DeleteUserHandler deletes one user by ID
func DeleteUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c, "id", "User not found") // Parse the path parameter
		if err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		// Re-check existence, then delete
		if err := service.DeleteUserByID(db, id); err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		// The user listing changed, drop the cached copy
		_ = utils.DeleteCache(context.Background(), rdb, usersCacheKey)
		c.String(http.StatusOK, "User deleted successfully") // Plain text body
	}
}

// BulkDeleteUsersHandler deletes several users, best effort, returning a
// per-item outcome for each target
func BulkDeleteUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BulkDeleteRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
			// If binding fails or no targets given, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "No user ids provided"})
			return
		}
		// Independent concurrent deletes, no transactional atomicity
		results := service.DeleteUsersByIDs(db, req.IDs)
		// The user listing changed, drop the cached copy
		_ = utils.DeleteCache(context.Background(), rdb, usersCacheKey)
		c.JSON(http.StatusOK, gin.H{"data": results, "message": "Bulk delete completed"})
	}
}

// EditProfileHandler updates a user's profile. The multipart body may carry
// an optional image stored under the upload directory.
func EditProfileHandler(db *gorm.DB, rdb *redis.Client, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c, "id", "User not found") // Parse the path parameter
		if err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		var input service.EditUserInput
		// Optional role and fullname form fields
		if role, ok := c.GetPostForm("role"); ok {
			input.Role = &role
		}
		if fullname, ok := c.GetPostForm("fullname"); ok {
			input.Fullname = &fullname
		}
		// Optional profile image
		if file, err := c.FormFile("profile_url"); err == nil {
			// Only images are accepted
			if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Only images are allowed"})
				return
			}
			// Ensure the upload directory exists
			if err := os.MkdirAll(uploadDir, 0o755); err != nil {
				respondError(c, http.StatusInternalServerError, err)
				return
			}
			// Timestamp prefix keeps stored filenames unique
			filename := strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + filepath.Base(file.Filename)
			if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
				respondError(c, http.StatusInternalServerError, err)
				return
			}
			profileURL := "/uploads/" + filename // Public path under the static prefix
			input.ProfileURL = &profileURL
		}
		// Re-check existence, then patch the mutable fields
		user, err := service.EditUserByID(db, id, input)
		if err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		// The user listing changed, drop the cached copy
		_ = utils.DeleteCache(context.Background(), rdb, usersCacheKey)
		c.JSON(http.StatusOK, gin.H{"data": user, "message": "User profile updated successfully"})
	}
}

// ChangePasswordHandler verifies the old password and stores a new hash
func ChangePasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.ChangePasswordInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate, verify the old password and persist the new hash
		user, err := service.ChangePasswordUser(db, req)
		if err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": user, "message": "Password changed successfully"})
	}
}
