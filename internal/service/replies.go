package service

import (
	"errors" // Error inspection

	"ticket_system/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// CreateReplyInput carries the fields accepted at reply creation
type CreateReplyInput struct {
	UserID    uint   // Authoring user, taken from verified claims
	TicketID  uint   // Target ticket, taken from the route path
	ReplyBody string // Reply content
}

// CreateReply validates the mandatory body and persists the reply
func CreateReply(db *gorm.DB, input CreateReplyInput) (*domain.Reply, error) {
	// The reply body is mandatory at creation
	if input.ReplyBody == "" {
		return nil, Validation("Missing reply body")
	}
	reply := domain.Reply{
		UserID:    input.UserID,    // Author from verified claims
		TicketID:  input.TicketID,  // Ticket from the route path
		ReplyBody: input.ReplyBody, // Content
	}
	if err := db.Create(&reply).Error; err != nil {
		return nil, err // Storage failure
	}
	return &reply, nil
}

// GetAllReplies returns the replies authored by one user
func GetAllReplies(db *gorm.DB, userID uint) ([]domain.Reply, error) {
	var replies []domain.Reply
	// Ownership-scoped fetch
	if err := db.Where("user_id = ?", userID).Find(&replies).Error; err != nil {
		return nil, err // Storage failure
	}
	return replies, nil
}

// GetReplyByID returns one reply or NotFound
func GetReplyByID(db *gorm.DB, id uint) (*domain.Reply, error) {
	var reply domain.Reply
	if err := db.First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Reply not found")
		}
		return nil, err // Storage failure
	}
	return &reply, nil
}

// DeleteReplyByID deletes a reply after re-checking existence
func DeleteReplyByID(db *gorm.DB, id uint) error {
	// Existence check before mutation
	if _, err := GetReplyByID(db, id); err != nil {
		return err
	}
	return db.Delete(&domain.Reply{}, id).Error
}

// EditReplyByID updates the reply body after re-checking existence
func EditReplyByID(db *gorm.DB, id uint, replyBody string) (*domain.Reply, error) {
	reply, err := GetReplyByID(db, id) // Existence check before mutation
	if err != nil {
		return nil, err
	}
	if err := db.Model(reply).Update("reply_body", replyBody).Error; err != nil {
		return nil, err // Storage failure
	}
	reply.ReplyBody = replyBody // Reflect the stored state
	return reply, nil
}
