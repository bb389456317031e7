package models

import "time"

// Notification is a fire-and-forget request emitted toward a recipient.
// Delivery mechanics belong to the external dispatcher.
type Notification struct {
	ID          string       `db:"id" json:"id"`
	RecipientID string       `db:"recipient_id" json:"recipient_id"`
	Type        string       `db:"type" json:"type"`
	Title       string       `db:"title" json:"title"`
	Message     string       `db:"message" json:"message"`
	Priority    TaskPriority `db:"priority" json:"priority"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	Read        bool         `db:"read" json:"read"`
}
