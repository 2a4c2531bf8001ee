package stores_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerworks/dealer-engine-api/models"
	"github.com/dealerworks/dealer-engine-api/stores"
)

func mustDate(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
}

func TestFileStoreLoadDealersMissingFile(t *testing.T) {
	store, err := stores.NewFileStore(t.TempDir())
	require.NoError(t, err)

	registry, err := store.LoadDealers()
	require.NoError(t, err)
	assert.Empty(t, registry.Dealers())
}

func TestFileStoreDealersRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := stores.NewFileStore(dir)
	require.NoError(t, err)

	dealer, err := models.NewDealer("Smith Motors")
	require.NoError(t, err)
	dealer.SetAddress([]string{"1 Main St", "Springfield"})
	dealer.SetCharges([]models.Charge{
		{Name: "Account Fee", Type: models.ChargeFixed, Price: decimal.NewFromInt(100), Enabled: true},
	})
	dealer.SetActive(false)

	registry := stores.NewRegistry()
	require.NoError(t, registry.Add(dealer))
	require.NoError(t, store.SaveDealers(registry))

	reloaded, err := store.LoadDealers()
	require.NoError(t, err)

	got, ok := reloaded.Lookup("Smith Motors")
	require.True(t, ok)
	assert.Equal(t, []string{"1 Main St", "Springfield"}, got.Address())
	assert.False(t, got.Active())

	charges := got.Charges()
	require.Len(t, charges, 1)
	assert.Equal(t, "Account Fee", charges[0].Name)
	assert.Equal(t, models.ChargeFixed, charges[0].Type)
	assert.True(t, charges[0].Price.Equal(decimal.NewFromInt(100)))
	assert.True(t, charges[0].Enabled)
}

func TestFileStoreWorkOrdersAreTransient(t *testing.T) {
	dir := t.TempDir()
	store, err := stores.NewFileStore(dir)
	require.NoError(t, err)

	dealer, err := models.NewDealer("Smith Motors")
	require.NoError(t, err)
	v, err := models.NewVehicleRecord("U1", models.ConditionUsed, decimal.NewFromInt(20), models.VehicleDetails{})
	require.NoError(t, err)
	require.True(t, dealer.AddVehicle(mustDate(t), v))
	require.True(t, dealer.Staged())

	registry := stores.NewRegistry()
	require.NoError(t, registry.Add(dealer))
	require.NoError(t, store.SaveDealers(registry))

	reloaded, err := store.LoadDealers()
	require.NoError(t, err)
	got, ok := reloaded.Lookup("Smith Motors")
	require.True(t, ok)
	assert.Equal(t, 0, got.VehicleCount())
	assert.False(t, got.Staged())
}

func TestFileStoreLoadDealersCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := stores.NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "dealers.json"), []byte("{not json"), 0o644))

	_, err = store.LoadDealers()
	var storageErr *models.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "decode", storageErr.Op)
}

func TestFileStoreSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := stores.NewFileStore(dir)
	require.NoError(t, err)

	// Missing file yields defaults, not an error.
	settings, err := store.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAccentColor, settings.AccentColor)

	settings.BusinessName = "Photos R Us"
	settings.InvoiceTerms = "Net 30"
	require.NoError(t, store.SaveSettings(settings))

	reloaded, err := store.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "Photos R Us", reloaded.BusinessName)
	assert.Equal(t, "Net 30", reloaded.InvoiceTerms)
}

func TestFileStoreLoadSettingsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := stores.NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o644))

	_, err = store.LoadSettings()
	var storageErr *models.StorageError
	require.ErrorAs(t, err, &storageErr)
}
