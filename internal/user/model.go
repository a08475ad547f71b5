package user

import "time"

// CapSource records where a profile's cap came from
type CapSource string

const (
	CapSourcePreset   CapSource = "preset"
	CapSourceFinverse CapSource = "finverse"
	CapSourceBrankas  CapSource = "brankas"
)

// Profile is a marketplace participant and the cap they are allowed to barter with
type Profile struct {
	Username    string    `json:"username"`
	PresetName  string    `json:"presetName"`
	PopTokenCap int64     `json:"popTokenCap"`
	CapSource   CapSource `json:"capSource"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
