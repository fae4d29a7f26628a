package model

import "time"

type ConversationID string

type Conversation struct {
	ID                 ConversationID `db:"ID" json:"id"`
	CreatedAt          time.Time      `db:"CreatedAt" json:"createdAt"`
	OwnerAccountID     AccountID      `db:"OwnerAccountID" json:"ownerAccountId"`
	CounterpartyID     AccountID      `db:"CounterpartyID" json:"counterpartyAccountId"`
	LastMessageContent string         `db:"LastMessageContent" json:"lastMessageContent"`
	LastMessageTime    time.Time      `db:"LastMessageTime" json:"lastMessageTime"`
	UnreadCount        int            `db:"UnreadCount" json:"unreadCount"`
}
