package auth

import (
	"regexp"
	"unicode"

	"github.com/prathm201999/auth-service/internal/common"
)

const minPasswordLength = 8

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail performs a minimal shape check on the email used as the
// identity key. Full RFC validation is deliberately out of scope.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return common.NewValidationError("email must be a valid address")
	}
	return nil
}

// ValidatePassword enforces the signup password policy: minimum length plus
// at least one lowercase letter, one uppercase letter, one digit and one
// symbol. All violated rules are reported together so the caller can show
// complete feedback in one round trip.
func ValidatePassword(password string) error {
	var violations []string

	if len(password) < minPasswordLength {
		violations = append(violations, "password must be at least 8 characters long")
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if !hasLower {
		violations = append(violations, "password must contain at least one lowercase letter")
	}
	if !hasUpper {
		violations = append(violations, "password must contain at least one uppercase letter")
	}
	if !hasDigit {
		violations = append(violations, "password must contain at least one digit")
	}
	if !hasSymbol {
		violations = append(violations, "password must contain at least one special character")
	}

	if len(violations) > 0 {
		return common.NewValidationError(violations...)
	}

	return nil
}
