package validation

import (
	"errors"   // Error construction
	"net/mail" // Email address parsing
	"regexp"   // Regular expressions
)

// Field patterns
var (
	fullnameRegexp = regexp.MustCompile(`^[a-zA-Z\s]+$`) // Letters and spaces only
	phoneRegexp    = regexp.MustCompile(`^[0-9]+$`)      // Digits only
	usernameRegexp = regexp.MustCompile(`^[a-z0-9]+$`)   // Lowercase letters and digits only
)

// RegisterInput is the validated shape for user registration
type RegisterInput struct {
	Role        string `json:"role"`
	Fullname    string `json:"fullname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

// LoginInput is the validated shape for login
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordInput is the validated shape for a password change
type ChangePasswordInput struct {
	ID                 uint   `json:"id"`
	OldPassword        string `json:"oldPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// checkFullname validates the fullname field
func checkFullname(fullname string) error {
	if len(fullname) < 3 {
		return errors.New("Your fullname is too short")
	}
	if len(fullname) > 50 {
		return errors.New("Your fullname is too long")
	}
	if !fullnameRegexp.MatchString(fullname) {
		return errors.New("Your fullname should only contain letters and spaces")
	}
	return nil
}

// checkEmail validates the email field
func checkEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("Invalid email format")
	}
	return nil
}

// checkPhoneNumber validates the phone number field
func checkPhoneNumber(phone string) error {
	if len(phone) < 10 {
		return errors.New("Your phone number is too short")
	}
	if len(phone) > 15 {
		return errors.New("Your phone number is too long")
	}
	if !phoneRegexp.MatchString(phone) {
		return errors.New("Your phone number should only contain digits")
	}
	return nil
}

// checkUsername validates the username field
func checkUsername(username string) error {
	if len(username) < 3 {
		return errors.New("Your username is under 3 characters")
	}
	if len(username) > 16 {
		return errors.New("Your username is over 16 characters")
	}
	if !usernameRegexp.MatchString(username) {
		return errors.New("Username can only contain lowercase letters and numbers")
	}
	return nil
}

// checkPassword validates a password-like field against the minimum length
func checkPassword(password, message string) error {
	if len(password) < 8 {
		return errors.New(message)
	}
	return nil
}

// ValidateRegister validates a registration input, returning the first
// violated rule's message
func ValidateRegister(input RegisterInput) error {
	if err := checkFullname(input.Fullname); err != nil {
		return err
	}
	if err := checkEmail(input.Email); err != nil {
		return err
	}
	if err := checkPhoneNumber(input.PhoneNumber); err != nil {
		return err
	}
	if err := checkUsername(input.Username); err != nil {
		return err
	}
	return checkPassword(input.Password, "Your password is under 8 characters")
}

// ValidateLogin validates a login input
func ValidateLogin(input LoginInput) error {
	if err := checkUsername(input.Username); err != nil {
		return err
	}
	return checkPassword(input.Password, "Your password is under 8 characters")
}

// ValidateForgotPassword validates a password reset request
func ValidateForgotPassword(email string) error {
	return checkEmail(email)
}

// ValidateChangePassword validates a password change input
func ValidateChangePassword(input ChangePasswordInput) error {
	if err := checkPassword(input.OldPassword, "Old password must be at least 8 characters"); err != nil {
		return err
	}
	if err := checkPassword(input.NewPassword, "Your password is under 8 characters"); err != nil {
		return err
	}
	return checkPassword(input.ConfirmNewPassword, "Confirm new password must be at least 8 characters")
}
