package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"lexschedule-backend/models"
)

// Storage keys. One key holds one JSON (or flag) value; the appointment
// collection is always written as a whole.
const (
	keyAppointments = "appointments"
	keyNotifiedIDs  = "notified_ids"
	keyNotifEnabled = "notifications_enabled"
	keyDarkMode     = "dark_mode"
	keyCommercial   = "commercial_mode"
)

// Store is the device-local persistence layer. It assumes a single logical
// writer; the mutex only keeps read-modify-replace cycles from interleaving
// when several HTTP handlers race on the same process.
type Store struct {
	mu sync.Mutex
	d  *diskv.Diskv
}

// Open creates the data directory if needed and returns a Store backed by it.
func Open(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
	}, nil
}

// LoadAppointments reads the full persisted collection. A missing or corrupt
// value is treated as "no data" and yields an empty slice, never an error.
func (s *Store) LoadAppointments() []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAppointmentsLocked()
}

func (s *Store) loadAppointmentsLocked() []models.Appointment {
	raw, err := s.d.Read(keyAppointments)
	if err != nil {
		return []models.Appointment{}
	}
	var appts []models.Appointment
	if err := json.Unmarshal(raw, &appts); err != nil {
		log.Printf("Corrupt appointment collection, starting empty: %v", err)
		return []models.Appointment{}
	}
	return appts
}

// ReplaceAppointments overwrites the entire persisted collection. Every
// mutating operation goes through here; there is no partial update API.
func (s *Store) ReplaceAppointments(appts []models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceAppointmentsLocked(appts)
}

func (s *Store) replaceAppointmentsLocked(appts []models.Appointment) error {
	raw, err := json.Marshal(appts)
	if err != nil {
		return fmt.Errorf("encode appointments: %w", err)
	}
	if err := s.d.Write(keyAppointments, raw); err != nil {
		return fmt.Errorf("write appointments: %w", err)
	}
	return nil
}

// Update applies fn to the current collection and persists the result as a
// whole, under the store lock.
func (s *Store) Update(fn func([]models.Appointment) []models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceAppointmentsLocked(fn(s.loadAppointmentsLocked()))
}

// LoadNotifiedIDs returns the set of appointment ids that have already
// received their 24-hour reminder.
func (s *Store) LoadNotifiedIDs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadNotifiedIDsLocked()
}

func (s *Store) loadNotifiedIDsLocked() []uuid.UUID {
	raw, err := s.d.Read(keyNotifiedIDs)
	if err != nil {
		return nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal(raw, &ids); err != nil {
		log.Printf("Corrupt notified-id list, starting empty: %v", err)
		return nil
	}
	return ids
}

// MarkNotified appends ids to the notified set. The set is append-only; ids
// already present are kept once.
func (s *Store) MarkNotified(ids ...uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.loadNotifiedIDsLocked()
	seen := make(map[uuid.UUID]bool, len(existing))
	for _, id := range existing {
		seen[id] = true
	}
	for _, id := range ids {
		if !seen[id] {
			existing = append(existing, id)
			seen[id] = true
		}
	}

	raw, err := json.Marshal(existing)
	if err != nil {
		return fmt.Errorf("encode notified ids: %w", err)
	}
	if err := s.d.Write(keyNotifiedIDs, raw); err != nil {
		return fmt.Errorf("write notified ids: %w", err)
	}
	return nil
}

// NotificationsEnabled reads the user-level notification toggle. The value is
// stored as the literal string "true"/"false".
func (s *Store) NotificationsEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := s.d.Read(keyNotifEnabled)
	return err == nil && string(raw) == "true"
}

// SetNotificationsEnabled persists the notification toggle.
func (s *Store) SetNotificationsEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	value := "false"
	if enabled {
		value = "true"
	}
	return s.d.Write(keyNotifEnabled, []byte(value))
}

// DarkMode reads the dark-mode flag (stored as a JSON boolean).
func (s *Store) DarkMode() bool { return s.readBool(keyDarkMode) }

// SetDarkMode persists the dark-mode flag.
func (s *Store) SetDarkMode(on bool) error { return s.writeBool(keyDarkMode, on) }

// CommercialMode reads the commercial-categories flag (stored as a JSON boolean).
func (s *Store) CommercialMode() bool { return s.readBool(keyCommercial) }

// SetCommercialMode persists the commercial-categories flag.
func (s *Store) SetCommercialMode(on bool) error { return s.writeBool(keyCommercial, on) }

// Preferences bundles the three toggles for the settings endpoint.
func (s *Store) Preferences() models.Preferences {
	return models.Preferences{
		NotificationsEnabled: s.NotificationsEnabled(),
		DarkMode:             s.DarkMode(),
		CommercialMode:       s.CommercialMode(),
	}
}

func (s *Store) readBool(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := s.d.Read(key)
	if err != nil {
		return false
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return v
}

func (s *Store) writeBool(key string, v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, _ := json.Marshal(v)
	return s.d.Write(key, raw)
}
