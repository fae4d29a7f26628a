package model

import "time"

type MessageID string

type Priority string

const (
	PriorityNormal Priority = "NORMAL"
	PriorityUrgent Priority = "URGENT"
)

type Status string

const (
	StatusQueued     Status = "QUEUED"
	StatusProcessing Status = "PROCESSING"
	StatusSent       Status = "SENT"
	StatusDelivered  Status = "DELIVERED"
	StatusRead       Status = "READ"
	StatusFailed     Status = "FAILED"
)

// CostFor returns the fixed charge for a message of the given priority.
func CostFor(priority Priority) Money {
	if priority == PriorityUrgent {
		return CostUrgent
	}
	return CostNormal
}

type SendMessageParams struct {
	RecipientID AccountID `json:"recipientId"`
	Content     string    `json:"content"`
	Priority    Priority  `json:"priority"`
}

type Message struct {
	ID             MessageID      `db:"ID" json:"id"`
	CreatedAt      time.Time      `db:"CreatedAt" json:"createdAt"`
	ConversationID ConversationID `db:"ConversationID" json:"conversationId"`
	SenderID       AccountID      `db:"SenderID" json:"senderId"`
	RecipientID    AccountID      `db:"RecipientID" json:"recipientId"`
	Content        string         `db:"Content" json:"content"`
	Priority       Priority       `db:"Priority" json:"priority"`
	Cost           Money          `db:"Cost" json:"cost"`
	Status         Status         `db:"Status" json:"status"`
	Timestamp      time.Time      `db:"Timestamp" json:"timestamp"`
}
