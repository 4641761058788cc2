package utils

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/matthewhartstonge/argon2"
)

const MinPasswordLength = 8

var ErrWeakPassword = errors.New("password too weak")

var hashConfig = argon2.DefaultConfig()

// ValidatePassword enforces the admin password policy.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("%w: at least %d characters required", ErrWeakPassword, MinPasswordLength)
	}
	return nil
}

// HashPassword returns an argon2id PHC string.
func HashPassword(password string) (string, error) {
	encoded, err := hashConfig.HashEncoded([]byte(password))
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(encoded), nil
}

func VerifyPassword(encodedHash, password string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}

// NeedsRehash reports whether encodedHash was produced with weaker
// parameters than the current ones.
func NeedsRehash(encodedHash string) bool {
	raw, err := argon2.Decode([]byte(encodedHash))
	if err != nil {
		return true
	}
	return raw.Config.TimeCost < hashConfig.TimeCost ||
		raw.Config.MemoryCost < hashConfig.MemoryCost ||
		raw.Config.Mode != hashConfig.Mode
}
