package message

import "time"

// Message is one store-and-forward note between two marketplace users.
// OfferID is empty for direct messages.
type Message struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	OfferID   string    `json:"offerId,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
