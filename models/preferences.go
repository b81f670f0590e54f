package models

// Preferences holds the user-level toggles persisted alongside the
// appointment collection.
type Preferences struct {
	NotificationsEnabled bool `json:"notificationsEnabled"`
	DarkMode             bool `json:"darkMode"`
	CommercialMode       bool `json:"commercialMode"`
}
