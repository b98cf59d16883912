package password

import (
	"strings"

	"github.com/dtroode/identity-server/internal/model"
)

const (
	minLength = 8
	maxLength = 100

	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	digitChars   = "0123456789"
	specialChars = `!@#$%&()-_[]{};:"./<>?^*` + "`~',|=+ "
)

// ValidatePolicy checks a candidate password against the account password
// policy and returns a ValidationError listing every violated rule.
func ValidatePolicy(candidate string) error {
	var messages []string

	if len(candidate) < minLength {
		messages = append(messages, "password must be at least 8 characters long")
	}
	if len(candidate) > maxLength {
		messages = append(messages, "password must be at most 100 characters long")
	}
	if !strings.ContainsAny(candidate, upperChars) {
		messages = append(messages, "password must contain an uppercase letter")
	}
	if !strings.ContainsAny(candidate, lowerChars) {
		messages = append(messages, "password must contain a lowercase letter")
	}
	if !strings.ContainsAny(candidate, digitChars) {
		messages = append(messages, "password must contain a digit")
	}
	if !strings.ContainsAny(candidate, specialChars) {
		messages = append(messages, "password must contain a special character")
	}

	whitelist := upperChars + lowerChars + digitChars + specialChars
	for _, r := range candidate {
		if !strings.ContainsRune(whitelist, r) {
			messages = append(messages, "password contains an invalid character")
			break
		}
	}

	if len(messages) > 0 {
		return &model.ValidationError{Messages: messages}
	}
	return nil
}
