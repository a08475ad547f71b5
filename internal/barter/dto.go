package barter

// CreateBarterRequest is the body of POST /books/{username}.
// Server-owned fields (id, progress state, approval) are not accepted.
type CreateBarterRequest struct {
	FromUser            string  `json:"fromUser"`
	ToUser              string  `json:"toUser" validate:"required"`
	YourPreset          string  `json:"yourPreset"`
	OtherPreset         string  `json:"otherPreset"`
	YourTokensGiven     int64   `json:"yourTokensGiven" validate:"gte=0"`
	OtherTokensReceived int64   `json:"otherTokensReceived" validate:"gte=0"`
	YourCap             int64   `json:"yourCap" validate:"gte=0"`
	OtherCap            int64   `json:"otherCap" validate:"gte=0"`
	Date                string  `json:"date"` // YYYY-MM-DD, defaults to today (UTC)
	ExpenseEstimate     float64 `json:"expenseEstimate" validate:"gte=0"`
}

// BarterResponse represents a barter with its derived state
type BarterResponse struct {
	*Barter
	State State `json:"state"`
}

// ProgressResponse is the body of a successful day progression
type ProgressResponse struct {
	Barter *BarterResponse `json:"barter"`
	Note   string          `json:"note"`
}

// ToResponse converts a Barter model to a BarterResponse DTO
func (b *Barter) ToResponse() *BarterResponse {
	return &BarterResponse{Barter: b, State: b.State()}
}
