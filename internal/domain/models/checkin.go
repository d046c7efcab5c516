package models

import "github.com/golang-jwt/jwt/v5"

// CheckInClaims binds a ticket, its event, and the holder into a short-lived
// check-in token. The compact serialized token is the QR code content.
type CheckInClaims struct {
	TicketID string `json:"ticketId"`
	EventID  string `json:"eventId"`
	Holder   string `json:"holder"`
	jwt.RegisteredClaims
}
