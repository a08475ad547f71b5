package message

// SendMessageRequest is the body of POST /marketplace/message
type SendMessageRequest struct {
	From    string `json:"from" validate:"required"`
	To      string `json:"to" validate:"required"`
	OfferID string `json:"offerId" validate:"required"`
	Text    string `json:"text" validate:"required"`
}

// MessageResponse represents the response for a message
type MessageResponse struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	To        string `json:"to"`
	OfferID   string `json:"offerId,omitempty"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// ContactsResponse lists the users someone has exchanged messages with
type ContactsResponse struct {
	Username string   `json:"username"`
	Contacts []string `json:"contacts"`
}

func toResponse(m *Message) *MessageResponse {
	return &MessageResponse{
		ID:        m.ID,
		From:      m.From,
		To:        m.To,
		OfferID:   m.OfferID,
		Text:      m.Text,
		CreatedAt: m.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}

func toResponses(messages []*Message) []*MessageResponse {
	out := make([]*MessageResponse, len(messages))
	for i, m := range messages {
		out[i] = toResponse(m)
	}
	return out
}
