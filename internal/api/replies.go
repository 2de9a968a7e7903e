package api

import (
	"net/http" // HTTP status codes

	"ticket_system/internal/service" // Reply service

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// ReplyRequest is the body for reply creation and edits
type ReplyRequest struct {
	ReplyBody string `json:"reply_body"` // Reply content
}

// CreateReplyHandler creates a reply on the ticket named in the path
func CreateReplyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := principalID(c) // Author from verified claims only
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ticketID, err := parseID(c, "ticketId", "Ticket not found") // Ticket from the route path
		if err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		var req ReplyRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate the mandatory body and persist
		reply, err := service.CreateReply(db, service.CreateReplyInput{
			UserID:    userID,        // Author from claims
			TicketID:  ticketID,      // Ticket from path
			ReplyBody: req.ReplyBody, // Content
		})
		if err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": reply, "message": "Reply created successfully."})
	}
}

// ListRepliesHandler returns the authenticated user's replies
func ListRepliesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := principalID(c) // Scope from verified claims only
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Ownership-scoped fetch
		replies, err := service.GetAllReplies(db, userID)
		if err != nil {
			respondError(c, statusForRead(err), err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": replies, "message": "Replies retrieved successfully."})
	}
}

// GetReplyHandler returns one reply by ID
func GetReplyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c, "id", "Reply not found") // Parse the path parameter
		if err != nil {
			respondError(c, statusForRead(err), err)
			return
		}
		// Fetch the reply
		reply, err := service.GetReplyByID(db, id)
		if err != nil {
			respondError(c, statusForRead(err), err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": reply, "message": "Reply retrieved successfully."})
	}
}

// DeleteReplyHandler deletes one reply by ID
func DeleteReplyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c, "id", "Reply not found") // Parse the path parameter
		if err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		// Re-check existence, then delete
		if err := service.DeleteReplyByID(db, id); err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		c.String(http.StatusOK, "Reply deleted successfully.") // Plain text body
	}
}

// EditReplyHandler updates one reply's body by ID
func EditReplyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c, "id", "Reply not found") // Parse the path parameter
		if err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		var req ReplyRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Re-check existence, then update the body
		reply, err := service.EditReplyByID(db, id, req.ReplyBody)
		if err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": reply, "message": "Reply updated successfully."})
	}
}
