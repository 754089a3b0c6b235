package api

import (
	"net/http"

	"litreview_go_backend/cmd/api/config"
	"litreview_go_backend/internal/auth"
	apperrors "litreview_go_backend/internal/errors"
	"litreview_go_backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type createRunRequest struct {
	ConfigSnapshot datatypes.JSONMap `json:"config_snapshot"`
}

func listRunsHandler(cfg *config.Config, projectService services.ProjectService, runService services.RunService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := pathUUID(c, "project_id")
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		if _, err := projectService.GetOwnedProject(projectID, auth.CallerID(c)); err != nil {
			apperrors.HandleError(c, err)
			return
		}
		skip, limit := pagination(c, cfg)
		runs, err := runService.ListRuns(projectID, skip, limit)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, runs)
	}
}

func createRunHandler(projectService services.ProjectService, runService services.RunService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := pathUUID(c, "project_id")
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		if _, err := projectService.GetOwnedProject(projectID, auth.CallerID(c)); err != nil {
			apperrors.HandleError(c, err)
			return
		}
		var req createRunRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error(err.Error()))
			return
		}
		run, err := runService.CreateRun(projectID, req.ConfigSnapshot)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, run)
	}
}

func getRunHandler(projectService services.ProjectService, runService services.RunService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := pathUUID(c, "project_id")
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		runID, err := pathUUID(c, "run_id")
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		if _, err := projectService.GetOwnedProject(projectID, auth.CallerID(c)); err != nil {
			apperrors.HandleError(c, err)
			return
		}
		run, err := runService.GetRun(projectID, runID)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, run)
	}
}
