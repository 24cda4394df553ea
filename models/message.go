package models

import (
	"time"
)

// MessageKind values for Message.Kind.
const (
	// KindChat is free text with no side effect.
	KindChat = "chat"
	// KindCounterOffer carries a positive amount; accepting it sets the
	// order's agreed price.
	KindCounterOffer = "counter_offer"
	// KindSystem is a server-generated notice, never authored by a party.
	KindSystem = "system"
)

// Message is one entry in an order's append-only negotiation log. Messages
// are immutable once created: there is no update or delete path, and no
// soft-delete column. The auto-increment ID is the authoritative append
// order; ties are never broken by wall clock.
type Message struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	OrderID  uint   `gorm:"not null;index" json:"order_id"` // foreign key to orders table
	Order    Order  `gorm:"foreignKey:OrderID" json:"-"`    // don't include full order in JSON
	SenderID uint   `gorm:"not null;index" json:"sender_id"` // foreign key to users table
	Sender   User   `gorm:"foreignKey:SenderID" json:"sender"`
	Kind     string `gorm:"not null;default:'chat';index" json:"kind"` // chat, counter_offer, system
	Text     string `gorm:"type:text;not null" json:"text"`

	// Amount is set only for counter_offer messages and is always > 0.
	Amount *float64 `json:"amount,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}

// IsCounterOffer reports whether the message is a priced proposal.
func (m *Message) IsCounterOffer() bool {
	return m.Kind == KindCounterOffer
}
