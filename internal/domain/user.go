package domain

// User Model
type User struct {
	ID          uint   `gorm:"primaryKey" json:"id"`                  // Primary key
	Role        string `gorm:"default:User" json:"role"`              // Role: Admin, User, ...
	Fullname    string `gorm:"not null" json:"fullname"`              // Full display name
	Email       string `gorm:"unique;not null" json:"email"`          // Unique email address
	PhoneNumber string `gorm:"not null" json:"phone_number"`          // Phone number, digits only
	Username    string `gorm:"unique;not null" json:"username"`       // Unique username
	Password    string `gorm:"not null" json:"-"`                     // Hashed password, never serialized
	ProfileURL  string `gorm:"column:profile_url" json:"profile_url"` // Optional path to uploaded avatar
}
