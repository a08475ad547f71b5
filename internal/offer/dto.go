package offer

// CreateOfferRequest is the body of POST /marketplace/offers.
// Pointers distinguish a missing field from a zero value.
type CreateOfferRequest struct {
	User        string `json:"user" validate:"required"`
	Offer       string `json:"offer" validate:"required"`
	Reveal      *bool  `json:"reveal,omitempty"`
	Preset      string `json:"preset" validate:"required"`
	TokenAmount *int64 `json:"tokenAmount" validate:"required,gte=1"`
	Cap         *int64 `json:"cap" validate:"required,gte=0"`
}

// DeleteResponse acknowledges a removed offer
type DeleteResponse struct {
	Success bool `json:"success"`
}
