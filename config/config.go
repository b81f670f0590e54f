package config

import (
	"github.com/kelseyhightower/envconfig"
)

// AppConfig is the process configuration, loaded from the environment (a .env
// file is read first by main's init).
type AppConfig struct {
	Port      string `envconfig:"PORT" default:"8080"`
	DataDir   string `envconfig:"DATA_DIR" default:"./data"`
	PublicDir string `envconfig:"PUBLIC_DIR" default:"./public"`

	// CacheGeneration versions the offline asset cache; bumping it on deploy
	// invalidates everything cached under the previous generation.
	CacheGeneration string `envconfig:"CACHE_GENERATION" default:"lexschedule-local-v15"`

	// ShellAssets overrides the built-in pre-cache manifest; ExtraAssets is
	// appended to whichever manifest is in effect.
	ShellAssets []string `envconfig:"SHELL_ASSETS"`
	ExtraAssets []string `envconfig:"EXTRA_ASSETS"`

	// Twilio delivery is optional; reminders fall back to the in-app feed
	// when these are unset.
	TwilioAccountSID     string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken      string `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber    string `envconfig:"TWILIO_PHONE_NUMBER"`
	TwilioWhatsAppNumber string `envconfig:"TWILIO_WHATSAPP_NUMBER"`
	LawyerPhone          string `envconfig:"LAWYER_PHONE"`
}

// defaultShellAssets is the pre-cache manifest for the bundled frontend: the
// app shell plus the CDN dependencies it loads. A different frontend layout
// replaces it via SHELL_ASSETS.
var defaultShellAssets = []string{
	"/",
	"/index.html",
	"/manifest.json",
	"/metadata.json",
	"/index.tsx",
	"/App.tsx",
	"/types.ts",
	"/components/AppointmentCard.tsx",
	"/components/ManualEntryModal.tsx",
	"/components/ConfirmModal.tsx",
	"/components/WeeklyCalendar.tsx",
	"/components/NotificationToast.tsx",
	"/components/NotificationPermissionModal.tsx",
	"/components/ArchiveModal.tsx",
	"https://cdn.tailwindcss.com",
	"https://esm.sh/react@18.3.1",
	"https://esm.sh/react-dom@18.3.1",
	"https://esm.sh/lucide-react@0.344.0",
	"https://cdn-icons-png.flaticon.com/512/924/924915.png",
}

// AssetManifest returns the full pre-cache manifest: ShellAssets (or the
// built-in default when unset) followed by ExtraAssets.
func (c AppConfig) AssetManifest() []string {
	shell := c.ShellAssets
	if len(shell) == 0 {
		shell = defaultShellAssets
	}
	manifest := make([]string, 0, len(shell)+len(c.ExtraAssets))
	manifest = append(manifest, shell...)
	return append(manifest, c.ExtraAssets...)
}

// App holds the loaded configuration for the running process.
var App AppConfig

// LoadConfig populates App from the environment.
func LoadConfig() error {
	return envconfig.Process("", &App)
}
