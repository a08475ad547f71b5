package barter

import "time"

// State is the progression state of a barter
type State string

const (
	StateIdle            State = "IDLE"
	StatePendingApproval State = "PENDING_APPROVAL"
)

// Barter is one ledger entry, owned by Username (the party whose books it sits in)
type Barter struct {
	ID                  string    `json:"id"`
	Username            string    `json:"username"`
	FromUser            string    `json:"fromUser"`
	ToUser              string    `json:"toUser"`
	YourPreset          string    `json:"yourPreset"`
	OtherPreset         string    `json:"otherPreset"`
	YourTokensGiven     int64     `json:"yourTokensGiven"`
	OtherTokensReceived int64     `json:"otherTokensReceived"`
	YourCap             int64     `json:"yourCap"`  // captured at creation, never recomputed
	OtherCap            int64     `json:"otherCap"` // captured at creation, never recomputed
	Date                string    `json:"date"`
	ExpenseEstimate     float64   `json:"expenseEstimate"`
	ProgressPending     bool      `json:"progressPending"`
	LastProgressNote    string    `json:"lastProgressNote"`
	Approved            bool      `json:"approved"`
	Revision            int64     `json:"revision"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// State derives the progression state from ProgressPending
func (b *Barter) State() State {
	if b.ProgressPending {
		return StatePendingApproval
	}
	return StateIdle
}
