package data

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"project-feasibility/internal/config"

	"go.uber.org/zap"
)

// Preset describes one project preset file.
type Preset struct {
	ID               string
	Name             string
	File             string
	ProjectLifeYears int
	Capacity         float64
	Capex            float64
}

// ListPresets reads every *.yaml preset in dir. Unreadable files are logged and skipped;
// a missing directory yields an empty list.
func ListPresets(dir string, logger *zap.Logger) ([]Preset, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		logger.Warn("project preset directory not found", zap.String("dir", dir))
		return []Preset{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]Preset, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		p, err := config.LoadProjectFile(path)
		if err != nil {
			logger.Warn("skipping invalid project preset", zap.String("file", path), zap.Error(err))
			continue
		}

		// "1_solar_50mw.yaml" -> "1_solar_50mw"
		id := strings.TrimSuffix(entry.Name(), ".yaml")
		name := p.Name
		if name == "" {
			name = id
		}
		capex := 0.0
		for _, c := range p.CapexSchedule {
			capex += c
		}
		out = append(out, Preset{
			ID:               id,
			Name:             name,
			File:             path,
			ProjectLifeYears: p.ProjectLifeYears,
			Capacity:         p.Capacity,
			Capex:            capex,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// PresetPath resolves a preset id (file name without extension) inside dir.
// Ids containing path separators are rejected.
func PresetPath(dir, id string) (string, bool) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", false
	}
	return filepath.Join(dir, id+".yaml"), true
}
