package domain

// Ticket Model
type Ticket struct {
	ID             uint   `gorm:"primaryKey" json:"id"`       // Primary key
	UserID         uint   `gorm:"not null" json:"user_id"`    // Foreign key to the owning User
	RequestTicket  string `gorm:"not null" json:"request_ticket"`  // Request title
	DueDate        string `gorm:"not null" json:"due_date"`   // Due date, rendered as dd-MM-yyyy
	RolePIC        string `gorm:"column:role_pic;not null" json:"role_pic"` // Role of the person in charge
	ProductStatus  string `gorm:"not null" json:"product_status"`  // Product status label
	TicketBody     string `gorm:"not null" json:"ticket_body"`     // Ticket description
	Status         string `json:"status"`                     // Workflow status
	PriorityStatus string `json:"priority_status"`            // Priority label
}
