package utils

import (
	"crypto/rand" // Cryptographically secure randomness
	"math/big"    // Big integers for rand.Int

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Character classes for generated passwords
const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	specialChars   = "!@#$%^&*"
)

// HashPassword hashes a plaintext password with bcrypt (cost 10)
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost) // Hash the password
	if err != nil {
		return "", err // Return error if hashing fails
	}
	return string(hash), nil // Return the hashed password
}

// CheckPassword compares a plaintext password against a stored bcrypt hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// randomChar picks one character from a set using crypto/rand
func randomChar(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set)))) // Random index into the set
	if err != nil {
		return 0, err // Return error if randomness fails
	}
	return set[n.Int64()], nil // Return the chosen character
}

// GenerateRandomPassword builds a random password of at least 12 characters,
// guaranteed to contain one lowercase letter, one uppercase letter, one digit
// and one special character, with the final sequence shuffled.
func GenerateRandomPassword(length int) (string, error) {
	// Enforce the minimum length
	if length < 12 {
		length = 12
	}
	allChars := lowercaseChars + uppercaseChars + digitChars + specialChars // Full alphabet
	password := make([]byte, 0, length)                                     // Password under construction
	// One guaranteed character from each class
	for _, set := range []string{lowercaseChars, uppercaseChars, digitChars, specialChars} {
		ch, err := randomChar(set) // Pick one character from the class
		if err != nil {
			return "", err // Return error if randomness fails
		}
		password = append(password, ch) // Append to the password
	}
	// Fill the remaining positions from the full alphabet
	for i := len(password); i < length; i++ {
		ch, err := randomChar(allChars) // Pick one character from the full alphabet
		if err != nil {
			return "", err // Return error if randomness fails
		}
		password = append(password, ch) // Append to the password
	}
	// Fisher-Yates shuffle so the guaranteed characters are not positional
	for i := len(password) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1))) // Random swap index
		if err != nil {
			return "", err // Return error if randomness fails
		}
		j := n.Int64()                                      // Swap target
		password[i], password[j] = password[j], password[i] // Swap the characters
	}
	return string(password), nil // Return the shuffled password
}
