package store

import (
	"path/filepath"
	"testing"

	"brewja/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite3", filepath.Join(t.TempDir(), "brewja-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	in := []models.RawMaterial{
		{ID: "malt-1", Name: "Malte Pilsen", Type: models.MaterialMalt, Quantity: 25, Unit: "kg"},
		{ID: "hops-1", Name: "Lúpulo Citra", Type: models.MaterialHops, Quantity: 2, Unit: "kg", AlphaAcid: 12.5},
	}
	require.NoError(t, s.Save("brewja_materials", in))

	var out []models.RawMaterial
	require.NoError(t, s.Load("brewja_materials", &out))
	assert.Equal(t, in, out)
}

func TestSaveOverwritesExistingKey(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save("brewja_tanks", []models.Tank{{TankID: "FV-01", Capacity: 1000}}))
	require.NoError(t, s.Save("brewja_tanks", []models.Tank{{TankID: "FV-02", Capacity: 500}}))

	var out []models.Tank
	require.NoError(t, s.Load("brewja_tanks", &out))
	require.Len(t, out, 1)
	assert.Equal(t, "FV-02", out[0].TankID)
}

func TestLoadMissingKeyLeavesOutUntouched(t *testing.T) {
	s := openTestStore(t)

	out := []models.Keg{{ID: "K-001", Capacity: 50}}
	require.NoError(t, s.Load("brewja_kegs", &out))
	require.Len(t, out, 1)
	assert.Equal(t, "K-001", out[0].ID)
}

func TestLoadMalformedPayloadFallsBack(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.db.Create(&Document{Key: "brewja_history", Data: "{not json"}).Error)

	var out []models.HistoryEntry
	require.NoError(t, s.Load("brewja_history", &out))
	assert.Empty(t, out)
}
