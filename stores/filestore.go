package stores

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dealerworks/dealer-engine-api/models"
)

const (
	dealersFileName  = "dealers.json"
	settingsFileName = "config.json"
)

// Store is the persistence contract: dealers keyed by their unique name and
// the user settings, serialized as structured text. Work orders and all
// derived totals are transient and never persist.
type Store interface {
	LoadDealers() (*Registry, error)
	SaveDealers(*Registry) error
	LoadSettings() (models.Settings, error)
	SaveSettings(models.Settings) error
}

// FileStore persists dealers and settings as JSON files in a data
// directory. A missing file means an empty store; a file that exists but
// cannot be decoded is surfaced as a StorageError rather than silently
// replaced.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed and returns a store
// over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &models.StorageError{Op: "create", Path: dir, Err: err}
	}
	return &FileStore{dir: dir}, nil
}

// dealerConfig is the persisted subset of a dealer.
type dealerConfig struct {
	Name    string          `json:"name"`
	Address []string        `json:"address"`
	Charges []models.Charge `json:"monthlyCharges"`
	Active  bool            `json:"active"`
}

// LoadDealers reads the dealer configs and builds a registry from them.
func (s *FileStore) LoadDealers() (*Registry, error) {
	path := filepath.Join(s.dir, dealersFileName)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewRegistry(), nil
	}
	if err != nil {
		return nil, &models.StorageError{Op: "read", Path: path, Err: err}
	}

	var configs []dealerConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, &models.StorageError{Op: "decode", Path: path, Err: err}
	}

	registry := NewRegistry()
	for _, cfg := range configs {
		dealer, err := models.NewDealer(cfg.Name)
		if err != nil {
			return nil, &models.StorageError{Op: "decode", Path: path, Err: err}
		}
		dealer.SetAddress(cfg.Address)
		dealer.SetCharges(cfg.Charges)
		dealer.SetActive(cfg.Active)
		if err := registry.Add(dealer); err != nil {
			return nil, &models.StorageError{Op: "decode", Path: path, Err: err}
		}
	}
	return registry, nil
}

// SaveDealers writes the dealer configs to disk, sorted by name so the file
// is stable across saves.
func (s *FileStore) SaveDealers(registry *Registry) error {
	path := filepath.Join(s.dir, dealersFileName)

	dealers := registry.Dealers()
	configs := make([]dealerConfig, 0, len(dealers))
	for _, d := range dealers {
		configs = append(configs, dealerConfig{
			Name:    d.Name(),
			Address: d.Address(),
			Charges: d.Charges(),
			Active:  d.Active(),
		})
	}

	data, err := json.MarshalIndent(configs, "", "  ")
	if err != nil {
		return &models.StorageError{Op: "encode", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &models.StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// LoadSettings reads the user settings, returning defaults when no config
// file exists yet.
func (s *FileStore) LoadSettings() (models.Settings, error) {
	path := filepath.Join(s.dir, settingsFileName)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, &models.StorageError{Op: "read", Path: path, Err: err}
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.Settings{}, &models.StorageError{Op: "decode", Path: path, Err: err}
	}
	return settings, nil
}

// SaveSettings writes the user settings to disk.
func (s *FileStore) SaveSettings(settings models.Settings) error {
	path := filepath.Join(s.dir, settingsFileName)

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return &models.StorageError{Op: "encode", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &models.StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}
