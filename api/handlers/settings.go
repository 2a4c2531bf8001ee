package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dealerworks/dealer-engine-api/config"
	"github.com/dealerworks/dealer-engine-api/models"
	"github.com/dealerworks/dealer-engine-api/stores"
)

// Settings exported for testing purposes
type Settings struct {
	Store stores.Store
}

// SettingsHandler returns the saved business settings
func (h Settings) SettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.LoadSettings()
	if err != nil {
		config.ErrorStatus("failed to load settings", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(settings)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateSettingsHandler replaces the business settings. Over-long fields
// are trimmed to their invoice layout limits rather than rejected.
func (h Settings) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	settings = settings.Normalize()

	if err := h.Store.SaveSettings(settings); err != nil {
		config.ErrorStatus("failed to save settings", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(settings)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
