package entity

import (
	"time"
)

// Delivery channels
const (
	ChannelEmail    = "EMAIL"
	ChannelWhatsapp = "WHATSAPP"
	ChannelBoth     = "BOTH"
)

// ValidChannel reports whether c is one of the three recognized channels.
func ValidChannel(c string) bool {
	return c == ChannelEmail || c == ChannelWhatsapp || c == ChannelBoth
}

// Receipt delivery status
const (
	ReceiptStatusSent   = "SENT"
	ReceiptStatusFailed = "FAILED"
)

// CommunicationReceipt is the immutable record of one delivery attempt.
// Exactly one receipt is written per attempted (passenger, channel) pair,
// whether the transport succeeded or not. Receipts are never updated or
// deleted once written.
type CommunicationReceipt struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	TripID      uint      `json:"tripId" bson:"tripId"`
	PersonType  string    `json:"personType" bson:"personType"`
	PersonID    uint      `json:"personId" bson:"personId"`
	Channel     string    `json:"channel" bson:"channel"`
	ContentType string    `json:"contentType" bson:"contentType"` // comma-joined requested types
	Subject     string    `json:"subject,omitempty" bson:"subject,omitempty"`
	Body        string    `json:"body" bson:"body"`
	HTMLBody    string    `json:"htmlBody,omitempty" bson:"htmlBody,omitempty"`
	Status      string    `json:"status" bson:"status"`
	MessageID   string    `json:"messageId,omitempty" bson:"messageId,omitempty"`
	ErrorDetail string    `json:"errorDetail,omitempty" bson:"errorDetail,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// EmailMessage is what the email transport consumes.
type EmailMessage struct {
	To      string
	Subject string
	Text    string
	HTML    string
}
