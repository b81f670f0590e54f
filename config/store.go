package config

import (
	"path/filepath"

	"lexschedule-backend/store"
)

// Store is the process-wide record store, initialized once at startup.
var Store *store.Store

// ConnectStore opens the diskv-backed store under the configured data
// directory. Startup cannot proceed without local storage.
func ConnectStore() {
	s, err := store.Open(filepath.Join(App.DataDir, "records"))
	if err != nil {
		panic("Failed to open local store: " + err.Error())
	}
	Store = s
}
