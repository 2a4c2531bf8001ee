package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerworks/dealer-engine-api/ingest"
	"github.com/dealerworks/dealer-engine-api/models"
)

func TestDetectSchema(t *testing.T) {
	autouplink, err := ingest.DetectSchema(21)
	require.NoError(t, err)
	assert.Equal(t, "Autouplink Tech", autouplink.Provider)
	assert.Equal(t, "Service Date/Time", autouplink.Date)
	assert.Equal(t, "Dealer Name", autouplink.DealerName)

	custom, err := ingest.DetectSchema(7)
	require.NoError(t, err)
	assert.Equal(t, "Custom Template", custom.Provider)
	assert.Equal(t, "Dealer", custom.DealerName)
	assert.Empty(t, custom.Vin, "the custom template carries no VIN column")
}

func TestDetectSchemaUnknownColumnCount(t *testing.T) {
	_, err := ingest.DetectSchema(13)
	var provErr *models.UnsupportedProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, 13, provErr.Columns)
}
