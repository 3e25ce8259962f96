package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades hash strength against login latency. 12 keeps a single
// verify in the tens of milliseconds on current hardware.
const bcryptCost = 12

// HashPassword produces a one-way bcrypt hash of the raw password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash. The
// comparison is constant-time inside bcrypt.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
