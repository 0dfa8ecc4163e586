package lib

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppLink builds a wa.me deep link for the configured contact number
// with an optional prefilled message.
func WhatsAppLink(number, message string) string {
	// wa.me expects digits only, no plus sign or separators
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)

	if message == "" {
		return fmt.Sprintf("https://wa.me/%s", digits)
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(message))
}

// MailtoLink builds a mailto deep link with optional subject and body.
func MailtoLink(email, subject, body string) string {
	link := "mailto:" + email

	params := url.Values{}
	if subject != "" {
		params.Set("subject", subject)
	}
	if body != "" {
		params.Set("body", body)
	}
	if encoded := params.Encode(); encoded != "" {
		link += "?" + encoded
	}
	return link
}
