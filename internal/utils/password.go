package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashAdminPassword bcrypt-hashes the operator credential. ADMIN_PASSWORD
// may hold either the plaintext or a hash produced here (see cmd/hashpw);
// the login handler accepts both.
func HashAdminPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
