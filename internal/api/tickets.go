package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Cache TTL

	"ticket_system/internal/domain"  // Domain models
	"ticket_system/internal/service" // Ticket service
	"ticket_system/internal/utils"   // Cache utilities

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// ticketsCacheKey builds the cache key for one user's ticket listing
func ticketsCacheKey(userID uint) string {
	return "tickets:user:" + strconv.Itoa(int(userID))
}

// CreateTicketRequest is the body for ticket creation
type CreateTicketRequest struct {
	RequestTicket string `json:"request_ticket"` // Request title
	DueDate       string `json:"due_date"`       // Due date
	RolePIC       string `json:"role_pic"`       // Role of the person in charge
	ProductStatus string `json:"product_status"` // Product status label
	TicketBody    string `json:"ticket_body"`    // Ticket description
}

// EditTicketRequest is the body for a partial ticket edit
type EditTicketRequest struct {
	Status         *string `json:"status"`          // Workflow status
	PriorityStatus *string `json:"priority_status"` // Priority label
	RequestTicket  *string `json:"request_ticket"`  // Request title
	DueDate        *string `json:"due_date"`        // Due date
	RolePIC        *string `json:"role_pic"`        // Role of the person in charge
	ProductStatus  *string `json:"product_status"`  // Product status label
	TicketBody     *string `json:"ticket_body"`     // Ticket description
}

// CreateTicketHandler creates a ticket owned by the authenticated user
func CreateTicketHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := principalID(c) // Owner from verified claims only
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateTicketRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate the mandatory fields, normalize the due date and persist
		ticket, err := service.CreateTicket(db, service.CreateTicketInput{
			UserID:        userID,            // Owner from claims
			RequestTicket: req.RequestTicket, // Request title
			DueDate:       req.DueDate,       // Due date
			RolePIC:       req.RolePIC,       // Person in charge
			ProductStatus: req.ProductStatus, // Product status
			TicketBody:    req.TicketBody,    // Description
		})
		if err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		// The owner's listing changed, drop the cached copy
		_ = utils.DeleteCache(context.Background(), rdb, ticketsCacheKey(userID))
		c.JSON(http.StatusCreated, gin.H{"data": ticket, "message": "Ticket created successfully."})
	}
}

// ListTicketsHandler returns the authenticated user's tickets, served from
// cache when possible
func ListTicketsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := principalID(c) // Scope from verified claims only
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background() // Context for Redis operations
		var tickets []domain.Ticket
		// Try the cached listing first
		if found, err := utils.GetCache(ctx, rdb, ticketsCacheKey(userID), &tickets); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"data": tickets, "message": "Tickets retrieved successfully."})
			return
		}
		// Fetch from the database, due dates normalized on the way out
		tickets, err := service.GetAllTickets(db, userID)
		if err != nil {
			respondError(c, statusForRead(err), err)
			return
		}
		_ = utils.SetCache(ctx, rdb, ticketsCacheKey(userID), tickets, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, gin.H{"data": tickets, "message": "Tickets retrieved successfully."})
	}
}

// GetTicketHandler returns one ticket by ID
func GetTicketHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c, "id", "Ticket not found") // Parse the path parameter
		if err != nil {
			respondError(c, statusForRead(err), err)
			return
		}
		// Fetch the ticket
		ticket, err := service.GetTicketByID(db, id)
		if err != nil {
			respondError(c, statusForRead(err), err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": ticket, "message": "Ticket retrieved successfully."})
	}
}

// DeleteTicketHandler deletes one ticket by ID
func DeleteTicketHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c, "id", "Ticket not found") // Parse the path parameter
		if err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		// Re-check existence, then delete
		ticket, err := service.DeleteTicketByID(db, id)
		if err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		// The owner's listing changed, drop the cached copy
		_ = utils.DeleteCache(context.Background(), rdb, ticketsCacheKey(ticket.UserID))
		c.String(http.StatusOK, "Ticket deleted successfully.") // Plain text body
	}
}

// EditTicketHandler patches one ticket by ID
func EditTicketHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c, "id", "Ticket not found") // Parse the path parameter
		if err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		var req EditTicketRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Re-check existence, then apply the partial edit
		ticket, err := service.EditTicketByID(db, id, service.EditTicketInput{
			Status:         req.Status,         // Workflow status
			PriorityStatus: req.PriorityStatus, // Priority label
			RequestTicket:  req.RequestTicket,  // Request title
			DueDate:        req.DueDate,        // Due date
			RolePIC:        req.RolePIC,        // Person in charge
			ProductStatus:  req.ProductStatus,  // Product status
			TicketBody:     req.TicketBody,     // Description
		})
		if err != nil {
			respondError(c, statusForWrite(err), err)
			return
		}
		// The owner's listing changed, drop the cached copy
		_ = utils.DeleteCache(context.Background(), rdb, ticketsCacheKey(ticket.UserID))
		c.JSON(http.StatusOK, gin.H{"data": ticket, "message": "Ticket updated successfully."})
	}
}
