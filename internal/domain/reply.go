package domain

// Reply Model
type Reply struct {
	ID        uint   `gorm:"primaryKey" json:"id"`     // Primary key
	TicketID  uint   `gorm:"not null" json:"ticket_id"` // Foreign key to the Ticket being replied to
	UserID    uint   `gorm:"not null" json:"user_id"`   // Foreign key to the authoring User
	ReplyBody string `gorm:"not null" json:"reply_body"` // Reply content
}
