package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes an account password with the configured cost.
// The plain password is only ever seen by registration and login; everything
// else works with the hash.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether the submitted password matches the stored
// bcrypt hash. Comparison cost is constant regardless of where they differ.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
