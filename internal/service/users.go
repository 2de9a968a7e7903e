package service

import (
	"errors" // Error inspection
	"sync"   // WaitGroup for bulk deletes

	"ticket_system/internal/domain"     // Domain models
	"ticket_system/internal/utils"      // Password utilities
	"ticket_system/internal/validation" // Input validation

	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Mailer delivers notifications on behalf of the user service
type Mailer interface {
	Send(to, subject, body string) error
}

// EditUserInput carries the mutable profile fields; nil means unchanged
type EditUserInput struct {
	Role       *string // New role
	Fullname   *string // New display name
	ProfileURL *string // New avatar path
}

// BulkDeleteResult is the per-item outcome of a bulk user delete
type BulkDeleteResult struct {
	ID      uint   `json:"id"`              // Target user ID
	Deleted bool   `json:"deleted"`         // Whether the delete succeeded
	Error   string `json:"error,omitempty"` // Failure message when not deleted
}

// RegisterUser validates a registration, enforces email/username uniqueness,
// hashes the password and persists the new user
func RegisterUser(db *gorm.DB, input validation.RegisterInput) (*domain.User, error) {
	// Validate before any side effect
	if err := validation.ValidateRegister(input); err != nil {
		return nil, Validation(err.Error())
	}
	var existing domain.User
	// Check email uniqueness
	err := db.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return nil, Conflict("Email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err // Storage failure
	}
	// Check username uniqueness
	err = db.Where("username = ?", input.Username).First(&existing).Error
	if err == nil {
		return nil, Conflict("Username is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err // Storage failure
	}
	// Hash the password
	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err // Hashing failure is fatal to the operation
	}
	user := domain.User{
		Role:        input.Role,        // Role, storage default applies when empty
		Fullname:    input.Fullname,    // Display name
		Email:       input.Email,       // Unique email
		PhoneNumber: input.PhoneNumber, // Phone number
		Username:    input.Username,    // Unique username
		Password:    hash,              // Hashed password only
	}
	// Persist; the unique indexes close the check-then-insert race
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("Email or username is already registered")
		}
		return nil, err // Storage failure
	}
	return &user, nil
}

// LoginUser validates credentials and returns the matching user
func LoginUser(db *gorm.DB, input validation.LoginInput) (*domain.User, error) {
	// Validate the credential shape
	if err := validation.ValidateLogin(input); err != nil {
		return nil, Validation(err.Error())
	}
	var user domain.User
	// Fetch by username
	if err := db.Where("username = ?", input.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User not found")
		}
		return nil, err // Storage failure
	}
	// Verify the password against the stored hash
	if !utils.CheckPassword(input.Password, user.Password) {
		return nil, Unauthorized("Invalid username or password")
	}
	return &user, nil
}

// ForgotPasswordUser resets a user's password to a random one and mails it.
// If the mail cannot be delivered the previous hash is restored so the reset
// never happens silently.
func ForgotPasswordUser(db *gorm.DB, mailer Mailer, email string) (*domain.User, error) {
	// Validate the email shape
	if err := validation.ValidateForgotPassword(email); err != nil {
		return nil, Validation(err.Error())
	}
	var user domain.User
	// Fetch by email
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User not found")
		}
		return nil, err // Storage failure
	}
	// Generate the replacement password
	newPassword, err := utils.GenerateRandomPassword(12)
	if err != nil {
		return nil, err // Randomness failure is fatal to the operation
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return nil, err // Hashing failure is fatal to the operation
	}
	oldHash := user.Password // Kept to roll back if notification fails
	// Persist the new hash
	if err := db.Model(&user).Update("password", hash).Error; err != nil {
		return nil, err // Storage failure
	}
	// Notify the user; the plaintext goes to their mailbox only
	if err := mailer.Send(email, "Password Reset", "Your new password is: "+newPassword); err != nil {
		// Restore the previous hash so the user is not locked out unnotified
		if rbErr := db.Model(&user).Update("password", oldHash).Error; rbErr != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"error":   rbErr.Error(),
			}).Error("Failed to restore password after mail failure")
		}
		return nil, err // Mail transport failure is internal
	}
	user.Password = hash // Reflect the stored state
	return &user, nil
}

// GetAllUsers returns every user
func GetAllUsers(db *gorm.DB) ([]domain.User, error) {
	var users []domain.User
	if err := db.Find(&users).Error; err != nil {
		return nil, err // Storage failure
	}
	return users, nil
}

// GetUserByID returns one user or NotFound
func GetUserByID(db *gorm.DB, id uint) (*domain.User, error) {
	var user domain.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User not found")
		}
		return nil, err // Storage failure
	}
	return &user, nil
}

// DeleteUserByID deletes a user after re-checking existence
func DeleteUserByID(db *gorm.DB, id uint) error {
	// Existence check before mutation
	if _, err := GetUserByID(db, id); err != nil {
		return err
	}
	return db.Delete(&domain.User{}, id).Error
}

// DeleteUsersByIDs deletes several users concurrently, best effort. Each
// target gets its own outcome; a partial failure leaves the rest deleted.
func DeleteUsersByIDs(db *gorm.DB, ids []uint) []BulkDeleteResult {
	results := make([]BulkDeleteResult, len(ids)) // One slot per target
	var wg sync.WaitGroup                         // Tracks in-flight deletes
	for i, id := range ids {
		wg.Add(1)
		// Independent delete per target, no shared transaction
		go func(i int, id uint) {
			defer wg.Done()
			result := BulkDeleteResult{ID: id}
			if err := DeleteUserByID(db, id); err != nil {
				result.Error = err.Error() // Record the per-item failure
			} else {
				result.Deleted = true
			}
			results[i] = result // Each goroutine writes its own slot
		}(i, id)
	}
	wg.Wait() // Wait for all deletes to settle
	return results
}

// EditUserByID updates the mutable profile fields after re-checking existence
func EditUserByID(db *gorm.DB, id uint, input EditUserInput) (*domain.User, error) {
	user, err := GetUserByID(db, id) // Existence check before mutation
	if err != nil {
		return nil, err
	}
	updates := map[string]any{} // Only provided fields are written
	if input.Role != nil {
		updates["role"] = *input.Role
	}
	if input.Fullname != nil {
		updates["fullname"] = *input.Fullname
	}
	if input.ProfileURL != nil {
		updates["profile_url"] = *input.ProfileURL
	}
	// Nothing to change, return the current record
	if len(updates) == 0 {
		return user, nil
	}
	if err := db.Model(user).Updates(updates).Error; err != nil {
		return nil, err // Storage failure
	}
	return GetUserByID(db, id) // Return the stored state
}

// ChangePasswordUser verifies the old password and stores a new hash
func ChangePasswordUser(db *gorm.DB, input validation.ChangePasswordInput) (*domain.User, error) {
	// Validate the shape of all password fields
	if err := validation.ValidateChangePassword(input); err != nil {
		return nil, Validation(err.Error())
	}
	user, err := GetUserByID(db, input.ID) // Fetch the target user
	if err != nil {
		return nil, err
	}
	// The old password must verify against the stored hash
	if !utils.CheckPassword(input.OldPassword, user.Password) {
		return nil, Unauthorized("Invalid old password")
	}
	// The new password must be confirmed
	if input.NewPassword != input.ConfirmNewPassword {
		return nil, Validation("New password and confirm password do not match")
	}
	hash, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return nil, err // Hashing failure is fatal to the operation
	}
	if err := db.Model(user).Update("password", hash).Error; err != nil {
		return nil, err // Storage failure
	}
	user.Password = hash // Reflect the stored state
	return user, nil
}
