package data

import (
	"os"
	"path/filepath"
	"testing"

	"project-feasibility/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEventsJSONRoundTripKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	events := []model.Event{
		{ID: "b", Type: model.EventCapacity, Mode: model.ModeDelta, StartYear: 1, EndYear: 5, Value: -5},
		{ID: "a", Type: model.EventCapacity, Mode: model.ModePercent, StartYear: 1, EndYear: 5, Value: -10},
	}
	require.NoError(t, SaveEventsJSON(path, events))

	got, err := LoadEventsJSON(path)
	require.NoError(t, err)
	assert.Equal(t, events, got)
}

func TestWithIDsThenSave(t *testing.T) {
	events := []model.Event{
		{ID: "keep", Type: model.EventCapacity, Mode: model.ModePercent, StartYear: 1, EndYear: 2, Value: -5},
		{Type: model.EventExpenseFuel, Mode: model.ModeDelta, StartYear: 3, EndYear: 4, Value: 10},
	}

	stamped := WithIDs(events)
	assert.Equal(t, "keep", stamped[0].ID)
	_, err := uuid.Parse(stamped[1].ID)
	assert.NoError(t, err)
	assert.Empty(t, events[1].ID, "input slice is left untouched")
	assert.Nil(t, WithIDs(nil))

	path := filepath.Join(t.TempDir(), "saved.json")
	require.NoError(t, SaveEventsJSON(path, stamped))
	got, err := LoadEventsJSON(path)
	require.NoError(t, err)
	assert.Equal(t, stamped, got)
}

func TestLoadEventsJSONWrapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	body := `{"events":[{"id":"1","type":"price_peak","mode":"absolute","start_year":2,"end_year":4,"value":5.5}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	got, err := LoadEventsJSON(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.EventPricePeak, got[0].Type)
	assert.Equal(t, 5.5, got[0].Value)

	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))
	_, err = LoadEventsJSON(path)
	assert.Error(t, err)
}

func TestListPresets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2_gas.yaml"), []byte(`
project:
  name: Gas Peaker
  project_life_years: 20
  capacity: 50000
  capex_schedule: [1000, 500]
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1_solar.yaml"), []byte(`
project:
  project_life_years: 25
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("project: [oops"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	presets, err := ListPresets(dir, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, presets, 2)
	assert.Equal(t, "1_solar", presets[0].ID)
	assert.Equal(t, "1_solar", presets[0].Name)
	assert.Equal(t, "Gas Peaker", presets[1].Name)
	assert.Equal(t, 1500.0, presets[1].Capex)

	missing, err := ListPresets(filepath.Join(dir, "nope"), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestPresetPath(t *testing.T) {
	p, ok := PresetPath("/presets", "1_solar")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join("/presets", "1_solar.yaml"), p)

	for _, id := range []string{"", "../etc/passwd", "a/b", `a\b`} {
		_, ok := PresetPath("/presets", id)
		assert.False(t, ok, id)
	}
}
