package user

// SelectPresetRequest represents the request body for choosing a demo business
type SelectPresetRequest struct {
	Preset string `json:"preset" validate:"required"`
}

// ProfileResponse represents the response for a single profile
type ProfileResponse struct {
	Username    string    `json:"username"`
	PresetName  string    `json:"presetName,omitempty"`
	PopTokenCap int64     `json:"popTokenCap"`
	CapSource   CapSource `json:"capSource"`
	UpdatedAt   string    `json:"updatedAt"`
}

// ToResponse converts a Profile model to a ProfileResponse DTO
func (p *Profile) ToResponse() *ProfileResponse {
	return &ProfileResponse{
		Username:    p.Username,
		PresetName:  p.PresetName,
		PopTokenCap: p.PopTokenCap,
		CapSource:   p.CapSource,
		UpdatedAt:   p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
