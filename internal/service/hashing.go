package service

import "golang.org/x/crypto/bcrypt"

// Hash derives a bcrypt hash for storing user passwords
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
