package domain

import (
	"strings"
	"time"
)

// Contact is a WhatsApp counterpart identified by its phone number.
type Contact struct {
	ID          string     `json:"id"`
	PhoneNumber string     `json:"phoneNumber"`
	Name        string     `json:"name"`
	Email       string     `json:"email,omitempty"`
	Company     string     `json:"company,omitempty"`
	Tags        []string   `json:"tags"`
	Notes       string     `json:"notes,omitempty"`
	IsActive    bool       `json:"isActive"`
	LastContact *time.Time `json:"lastContact,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NormalizePhone strips everything but digits from a phone number or a
// WhatsApp chat id such as "5511999999999@c.us".
func NormalizePhone(s string) string {
	if i := strings.IndexByte(s, '@'); i >= 0 {
		s = s[:i]
	}
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
