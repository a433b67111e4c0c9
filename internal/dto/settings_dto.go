package dto

// SettingsResponse is the contest-wide flag bag.
type SettingsResponse struct {
	BlindMode   bool `json:"blind_mode"`
	ContestOpen bool `json:"contest_open"`
}

// SettingUpdateRequest toggles one contest-wide flag.
type SettingUpdateRequest struct {
	Key   string `json:"key" validate:"required,oneof=blind_mode contest_open"`
	Value bool   `json:"value"`
}
