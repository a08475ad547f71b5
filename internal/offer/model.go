package offer

import "time"

// Offer is a marketplace listing of tokens a user is willing to barter
type Offer struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Offer       string    `json:"offer"`
	Reveal      bool      `json:"reveal"`
	Preset      string    `json:"preset"`
	TokenAmount int64     `json:"tokenAmount"`
	Cap         int64     `json:"cap"`
	CreatedAt   time.Time `json:"createdAt"`
}
