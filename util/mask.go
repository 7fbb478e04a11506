package util

import "strings"

// MaskSecret keeps the first visiblePrefix characters of s and hides the rest.
func MaskSecret(s string, visiblePrefix int) string {
	if len(s) <= visiblePrefix {
		return "***"
	}
	return s[:visiblePrefix] + "***"
}

// MaskEmail keeps the first character of the local part and the domain:
// jane@example.com becomes j***@example.com.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || local == "" {
		return MaskSecret(email, 0)
	}
	return MaskSecret(local, 1) + "@" + domain
}

// MaskPhone keeps only the last two digits of a phone number.
func MaskPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if len(phone) <= 2 {
		return "***"
	}
	return "***" + phone[len(phone)-2:]
}
