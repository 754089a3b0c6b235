package api

import (
	"net/http"

	"litreview_go_backend/cmd/api/config"
	"litreview_go_backend/internal/auth"
	apperrors "litreview_go_backend/internal/errors"
	"litreview_go_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type createProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func listProjectsHandler(cfg *config.Config, projectService services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := pagination(c, cfg)
		projects, err := projectService.ListProjects(auth.CallerID(c), skip, limit)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, projects)
	}
}

func createProjectHandler(projectService services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error(err.Error()))
			return
		}
		project, err := projectService.CreateProject(auth.CallerID(c), req.Name, req.Description)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, project)
	}
}

func getProjectHandler(projectService services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := pathUUID(c, "project_id")
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		project, err := projectService.GetOwnedProject(projectID, auth.CallerID(c))
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, project)
	}
}

func updateProjectHandler(projectService services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := pathUUID(c, "project_id")
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		var req updateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error(err.Error()))
			return
		}
		project, err := projectService.UpdateProject(projectID, auth.CallerID(c), services.ProjectUpdate{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, project)
	}
}

func deleteProjectHandler(projectService services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := pathUUID(c, "project_id")
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		if err := projectService.DeleteProject(projectID, auth.CallerID(c)); err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
