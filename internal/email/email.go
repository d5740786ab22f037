package emails

import (
	"time"
)

type EmailStatus string

const (
	EmailQueued EmailStatus = "queued"
	EmailSent   EmailStatus = "sent"
	EmailFailed EmailStatus = "failed"
)

type Email struct {
	ID        string      `bson:"_id,omitempty" json:"id"`
	From      string      `bson:"from" json:"from"`
	To        []string    `bson:"to" json:"to"`
	Subject   string      `bson:"subject" json:"subject"`
	HtmlBody  string      `bson:"htmlBody,omitempty" json:"htmlBody,omitempty"`
	Status    EmailStatus `bson:"status" json:"status"`
	ErrorMsg  string      `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	CreatedAt time.Time   `bson:"createdAt" json:"createdAt"`
	SentAt    *time.Time  `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
}
