package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerworks/dealer-engine-api/api/handlers"
	"github.com/dealerworks/dealer-engine-api/models"
)

func TestSettings_SettingsHandlerDefaults(t *testing.T) {
	_, store := newTestApp(t)
	h := handlers.Settings{Store: store}

	req := httptest.NewRequest("GET", "/api/v1/settings", nil)
	rr := httptest.NewRecorder()
	h.SettingsHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got models.Settings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, models.DefaultAccentColor, got.AccentColor)
}

func TestSettings_UpdateSettingsHandlerNormalizes(t *testing.T) {
	_, store := newTestApp(t)
	h := handlers.Settings{Store: store}

	body := `{"businessName":"  Photos R Us  ","invoiceTerms":"Due upon receipt","accentColor":"not-a-color"}`
	req := httptest.NewRequest("PUT", "/api/v1/settings", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.UpdateSettingsHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got models.Settings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Photos R Us", got.BusinessName)
	assert.Equal(t, "Due upon receip", got.InvoiceTerms)
	assert.Equal(t, models.DefaultAccentColor, got.AccentColor)

	// The normalized settings are what was persisted.
	saved, err := store.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "Photos R Us", saved.BusinessName)
}
