package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"project-feasibility/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const presetYAML = `
project:
  name: Solar 50MW
  project_life_years: 25
  capacity: 90000
  peak_price: 4.2
  off_peak_price: 2.6
  peak_share: 0.7
  fixed_opex: 1500000
  variable_opex_rate: 0.15
  fuel_cost: 0
  equity_ratio: 0.3
  debt_interest_rate: 0.055
  debt_tenor_years: 12
  discount_rate_project: 0.07
  discount_rate_equity: 0.11
  capex_schedule: [1800000]
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMergesPresetAndOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "solar.yaml", presetYAML)
	cfgPath := writeFile(t, dir, "config.yaml", `
project_file: solar.yaml
project:
  name: Solar 50MW (tariff review)
  peak_price: 4.8
  equity_ratio: 0
events:
  - id: "1"
    type: capacity
    mode: percent
    start_year: 11
    end_year: 25
    value: -10
    description: panel degradation
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	in := cfg.Project.ToModel()
	assert.Equal(t, "Solar 50MW (tariff review)", in.Name)
	assert.Equal(t, 25, in.ProjectLifeYears)
	assert.Equal(t, 4.8, in.PeakPrice)
	assert.Equal(t, 2.6, in.OffPeakPrice)
	assert.Equal(t, 0.7, in.PeakShare)
	assert.Equal(t, 0.0, in.EquityRatio, "explicit zero equity ratio must survive the merge")
	assert.Equal(t, []float64{1800000}, in.CapexSchedule)

	require.Len(t, cfg.Events, 1)
	assert.Equal(t, model.EventCapacity, cfg.Events[0].Type)
	assert.Equal(t, model.ModePercent, cfg.Events[0].Mode)
	assert.Equal(t, "panel degradation", cfg.Events[0].Description)
}

func TestToModelDefaults(t *testing.T) {
	in := ProjectConfig{ProjectLifeYears: 10}.ToModel()
	assert.Equal(t, DefaultPeakShare, in.PeakShare)
	assert.Equal(t, 1.0, in.EquityRatio)
	assert.Empty(t, in.CapexSchedule)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	badProject := writeFile(t, dir, "bad.yaml", `
project:
  project_life_years: 0
`)
	_, err := Load(badProject)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))

	badEvent := writeFile(t, dir, "bad_event.yaml", `
project:
  project_life_years: 5
events:
  - id: a
    type: capacity
    mode: delta
    start_year: 4
    end_year: 2
`)
	_, err = Load(badEvent)
	assert.True(t, errors.Is(err, model.ErrInvalidEvent))

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	missingPreset := writeFile(t, dir, "missing_preset.yaml", "project_file: nope.yaml\n")
	_, err = Load(missingPreset)
	assert.Error(t, err)
}

func TestMergeProjectKeepsBaseForZeroOverrides(t *testing.T) {
	share := 0.4
	base := ProjectConfig{Name: "a", Capacity: 10, PeakShare: &share, CapexSchedule: []float64{1}}
	fuel := 3.0
	out := MergeProject(base, ProjectConfig{FuelCost: &fuel})
	assert.Equal(t, "a", out.Name)
	assert.Equal(t, 10.0, out.Capacity)
	assert.Equal(t, 3.0, out.ToModel().FuelCost)
	assert.Equal(t, &share, out.PeakShare)
	assert.Equal(t, []float64{1}, out.CapexSchedule)
}

func TestLoadHonorsExplicitZeroOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "solar.yaml", presetYAML)
	cfgPath := writeFile(t, dir, "config.yaml", `
project_file: solar.yaml
project:
  fixed_opex: 0
  variable_opex_rate: 0
  debt_interest_rate: 0
  debt_tenor_years: 0
  discount_rate_project: 0
  discount_rate_equity: 0
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	in := cfg.Project.ToModel()
	assert.Equal(t, 0.0, in.FixedOpex)
	assert.Equal(t, 0.0, in.VariableOpexRate)
	assert.Equal(t, 0.0, in.DebtInterestRate)
	assert.Equal(t, 0, in.DebtTenorYears)
	assert.Equal(t, 0.0, in.DiscountRateProject)
	assert.Equal(t, 0.0, in.DiscountRateEquity)
	// untouched fields still come from the preset
	assert.Equal(t, 4.2, in.PeakPrice)
	assert.Equal(t, 0.3, in.EquityRatio)
}

func TestLoadServerDefaultsAndEnv(t *testing.T) {
	s, err := LoadServer("")
	require.NoError(t, err)
	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, CacheMemory, s.CacheBack)
	assert.Equal(t, time.Hour, s.CacheTTL)
	assert.False(t, s.Production())

	t.Setenv("API_PORT", "9090")
	t.Setenv("API_ENV", "production")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	s, err = LoadServer("")
	require.NoError(t, err)
	assert.Equal(t, "9090", s.Port)
	assert.True(t, s.Production())
	assert.Equal(t, CacheRedis, s.CacheBack)
	assert.Equal(t, 15*time.Minute, s.CacheTTL)
	assert.Equal(t, "cache:6379", s.RedisAddr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, s.CORSOrigins)

	t.Setenv("CACHE_BACKEND", "memcached")
	_, err = LoadServer("")
	assert.Error(t, err)
}
