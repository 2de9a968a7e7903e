package service

import (
	"errors" // Error inspection
	"time"   // Date parsing and formatting

	"ticket_system/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// dueDateLayout is the display form for ticket due dates (dd-MM-yyyy)
const dueDateLayout = "02-01-2006"

// Accepted input layouts for due dates, tried in order
var dueDateInputLayouts = []string{
	dueDateLayout, // Already in display form
	"2006-01-02",  // ISO date
	time.RFC3339,  // Full timestamp
}

// CreateTicketInput carries the fields accepted at ticket creation
type CreateTicketInput struct {
	UserID        uint   // Owning user, taken from verified claims
	RequestTicket string // Request title
	DueDate       string // Due date in any accepted layout
	RolePIC       string // Role of the person in charge
	ProductStatus string // Product status label
	TicketBody    string // Ticket description
}

// EditTicketInput carries the patchable ticket fields; nil means unchanged
type EditTicketInput struct {
	Status         *string // Workflow status
	PriorityStatus *string // Priority label
	RequestTicket  *string // Request title
	DueDate        *string // Due date
	RolePIC        *string // Role of the person in charge
	ProductStatus  *string // Product status label
	TicketBody     *string // Ticket description
}

// formatDueDate normalizes a due date to the dd-MM-yyyy display form
func formatDueDate(value string) (string, error) {
	for _, layout := range dueDateInputLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(dueDateLayout), nil // Render in display form
		}
	}
	return "", errors.New("Invalid due date") // No accepted layout matched
}

// CreateTicket validates the mandatory fields, normalizes the due date and
// persists the ticket against the caller's user ID
func CreateTicket(db *gorm.DB, input CreateTicketInput) (*domain.Ticket, error) {
	// All five content fields are mandatory at creation
	if input.RequestTicket == "" || input.DueDate == "" || input.RolePIC == "" ||
		input.ProductStatus == "" || input.TicketBody == "" {
		return nil, Validation("Missing required ticket fields")
	}
	// Normalize the due date before persisting
	dueDate, err := formatDueDate(input.DueDate)
	if err != nil {
		return nil, Validation(err.Error())
	}
	ticket := domain.Ticket{
		UserID:        input.UserID,        // Owner from verified claims
		RequestTicket: input.RequestTicket, // Request title
		DueDate:       dueDate,             // Display form
		RolePIC:       input.RolePIC,       // Person in charge
		ProductStatus: input.ProductStatus, // Product status
		TicketBody:    input.TicketBody,    // Description
	}
	if err := db.Create(&ticket).Error; err != nil {
		return nil, err // Storage failure
	}
	return &ticket, nil
}

// GetAllTickets returns the tickets owned by one user, re-deriving the
// due date display form on every read
func GetAllTickets(db *gorm.DB, userID uint) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	// Ownership-scoped fetch
	if err := db.Where("user_id = ?", userID).Find(&tickets).Error; err != nil {
		return nil, err // Storage failure
	}
	// Stored and display representations may diverge; normalize on the way out
	for i := range tickets {
		if formatted, err := formatDueDate(tickets[i].DueDate); err == nil {
			tickets[i].DueDate = formatted
		}
	}
	return tickets, nil
}

// GetTicketByID returns one ticket or NotFound
func GetTicketByID(db *gorm.DB, id uint) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := db.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Ticket not found")
		}
		return nil, err // Storage failure
	}
	return &ticket, nil
}

// DeleteTicketByID deletes a ticket after re-checking existence and returns
// the deleted record so callers can invalidate owner-scoped caches
func DeleteTicketByID(db *gorm.DB, id uint) (*domain.Ticket, error) {
	ticket, err := GetTicketByID(db, id) // Existence check before mutation
	if err != nil {
		return nil, err
	}
	if err := db.Delete(&domain.Ticket{}, id).Error; err != nil {
		return nil, err // Storage failure
	}
	return ticket, nil
}

// EditTicketByID patches a ticket after re-checking existence. Mandatory
// fields are not re-validated on edit; partial edits are permitted.
func EditTicketByID(db *gorm.DB, id uint, input EditTicketInput) (*domain.Ticket, error) {
	ticket, err := GetTicketByID(db, id) // Existence check before mutation
	if err != nil {
		return nil, err
	}
	updates := map[string]any{} // Only provided fields are written
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.PriorityStatus != nil {
		updates["priority_status"] = *input.PriorityStatus
	}
	if input.RequestTicket != nil {
		updates["request_ticket"] = *input.RequestTicket
	}
	if input.DueDate != nil {
		// Keep the stored due date in display form
		dueDate, err := formatDueDate(*input.DueDate)
		if err != nil {
			return nil, Validation(err.Error())
		}
		updates["due_date"] = dueDate
	}
	if input.RolePIC != nil {
		updates["role_pic"] = *input.RolePIC
	}
	if input.ProductStatus != nil {
		updates["product_status"] = *input.ProductStatus
	}
	if input.TicketBody != nil {
		updates["ticket_body"] = *input.TicketBody
	}
	// Nothing to change, return the current record
	if len(updates) == 0 {
		return ticket, nil
	}
	if err := db.Model(ticket).Updates(updates).Error; err != nil {
		return nil, err // Storage failure
	}
	return GetTicketByID(db, id) // Return the stored state
}
