package auth

import (
	"errors"
	"fmt"
	"strings"
)

// weakPasswordList contains common passwords that must be rejected.
var weakPasswordList = []string{
	"admin",
	"password",
	"123456",
	"secret",
	"admin123",
	"password123",
	"123456789",
	"12345678",
	"qwerty",
	"abc123",
	"letmein",
	"welcome",
	"monkey",
	"1234567890",
	"password1",
	"admin1",
	"test",
	"test123",
	"default",
	"root",
	"newsdiary",
}

// weakSecrets are JWT secrets rejected regardless of length.
var weakSecrets = []string{"secret", "password", "test", "admin", "default", "changeme"}

const (
	minPasswordLength = 12
	// minSecretLength is 256 bits for HS256.
	minSecretLength = 32
)

// ValidateCredentials checks the operator credentials at startup so the API
// never serves with an empty or guessable password. Messages never include
// the password itself.
func ValidateCredentials(user, pass string) error {
	if user == "" {
		return errors.New("admin credentials validation failed: ADMIN_USER must not be empty")
	}
	if pass == "" {
		return errors.New("admin credentials validation failed: ADMIN_USER_PASSWORD must not be empty")
	}
	if len(pass) < minPasswordLength {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must be at least %d characters (current length: %d)", minPasswordLength, len(pass))
	}
	if strings.EqualFold(pass, user) {
		return errors.New("admin credentials validation failed: ADMIN_USER_PASSWORD must not equal ADMIN_USER")
	}
	if isSimpleNumericPattern(pass) {
		return errors.New("admin credentials validation failed: ADMIN_USER_PASSWORD must not be a simple numeric pattern")
	}
	if isKeyboardPattern(pass) {
		return errors.New("admin credentials validation failed: ADMIN_USER_PASSWORD must not be a keyboard pattern")
	}

	lowerPass := strings.ToLower(pass)
	for _, weak := range weakPasswordList {
		if lowerPass == weak {
			return errors.New("admin credentials validation failed: ADMIN_USER_PASSWORD must not be a weak password")
		}
		// variations like "admin1234567890"
		if strings.HasPrefix(lowerPass, weak) && len(pass) < minPasswordLength+5 {
			return errors.New("admin credentials validation failed: ADMIN_USER_PASSWORD must not be based on common weak passwords")
		}
	}
	return nil
}

// ValidateJWTSecret checks the signing secret length and rejects repeated
// placeholder values.
func ValidateJWTSecret(secret string) error {
	if secret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if len(secret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters (256 bits)", minSecretLength)
	}
	if isRepeatedChar(secret) {
		return errors.New("JWT_SECRET must not be a single repeated character")
	}
	// "secretsecretsecret..." padded to length
	lower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if strings.ReplaceAll(lower, weak, "") == "" {
			return errors.New("JWT_SECRET must not be a common weak value")
		}
	}
	return nil
}

// isSimpleNumericPattern reports repeated digits or digit runs such as
// "123456789012".
func isSimpleNumericPattern(pass string) bool {
	if len(pass) < minPasswordLength {
		return false
	}
	if isRepeatedChar(pass) {
		return true
	}
	for _, ch := range pass {
		if ch < '0' || ch > '9' {
			return false
		}
	}

	isAscending := true
	isDescending := true
	for i := 1; i < len(pass); i++ {
		diff := int(pass[i]) - int(pass[i-1])
		// 9 wraps to 0
		if diff != 1 && diff != -9 {
			isAscending = false
		}
		if diff != -1 && diff != 9 {
			isDescending = false
		}
	}
	return isAscending || isDescending
}

func isRepeatedChar(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

var keyboardPatterns = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
	"qwerty",
	"asdfgh",
	"zxcvb",
}

func isKeyboardPattern(pass string) bool {
	lowerPass := strings.ToLower(pass)
	for _, pattern := range keyboardPatterns {
		if strings.Contains(lowerPass, pattern) || strings.Contains(lowerPass, reverse(pattern)) {
			return true
		}
	}
	return false
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
