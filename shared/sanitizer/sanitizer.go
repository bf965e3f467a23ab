// Package sanitizer masks contact details in chat bodies so parties cannot take a deal off the platform.
package sanitizer

import (
	"regexp"
)

const Mask = "[hidden]"

var (
	emailPattern = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	urlPattern   = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s]+|\b[a-z0-9\-]+\.(?:com|lk|net|org|io|me|info|biz)(?:/[^\s]*)?\b`)
	// Nine or more digits, optionally grouped by spaces, dots, dashes or a leading +.
	phonePattern = regexp.MustCompile(`\+?\d(?:[\s.\-()]*\d){8,}`)
)

// Clean applies the email, url and phone masks in that order.
func Clean(body string) string {
	body = emailPattern.ReplaceAllString(body, Mask)
	body = urlPattern.ReplaceAllString(body, Mask)
	body = phonePattern.ReplaceAllString(body, Mask)

	return body
}

// Changed reports whether Clean would alter body.
func Changed(body string) bool {
	return Clean(body) != body
}
