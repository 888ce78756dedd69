package handlers

import (
	"net/http"

	"project-feasibility/internal/api/models"
	"project-feasibility/internal/data"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProjectHandler lists project presets
type ProjectHandler struct {
	projectDir string
	logger     *zap.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectDir string, logger *zap.Logger) *ProjectHandler {
	logger.Info("using project preset directory", zap.String("dir", projectDir))
	return &ProjectHandler{projectDir: projectDir, logger: logger}
}

// ListProjects handles GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	presets, err := data.ListPresets(h.projectDir, h.logger)
	if err != nil {
		h.logger.Error("failed to read project directory", zap.String("dir", h.projectDir), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"projects": []models.ProjectInfo{}})
		return
	}

	projects := make([]models.ProjectInfo, 0, len(presets))
	for _, p := range presets {
		projects = append(projects, models.ProjectInfo{
			ID:   p.ID,
			Name: p.Name,
			File: p.File,
			Specs: models.ProjectSpecs{
				ProjectLifeYears: p.ProjectLifeYears,
				Capacity:         p.Capacity,
				TotalCapex:       p.Capex,
			},
		})
	}

	h.logger.Debug("listing projects", zap.Int("count", len(projects)))
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}
