package domain

// UserSettings is owned by the user and mutated only through the settings
// update path. SyncIntervalMinutes doubles as the default cache TTL when no
// explicit override is given on save.
type UserSettings struct {
	APIKey                string `json:"apiKey"`
	SyncIntervalMinutes   int    `json:"syncIntervalMinutes"`
	PagesSetupEnabled     bool   `json:"pagesSetupEnabled"`
	PagesAllowanceEnabled bool   `json:"pagesAllowanceEnabled"`
}

// DefaultUserSettings is the value synthesized on first run.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		APIKey:                "",
		SyncIntervalMinutes:   15,
		PagesSetupEnabled:     false,
		PagesAllowanceEnabled: true,
	}
}

// Coordinates is a device position yielded by the location collaborator.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
