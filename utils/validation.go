// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// Local mobile format: 05 followed by 8 digits.
var phoneRegex = regexp.MustCompile(`^05\d{8}$`)

// ValidatePhone checks if a phone number matches the expected mobile format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	return phoneRegex.MatchString(cleaned)
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ContainsString reports whether list holds value.
func ContainsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
