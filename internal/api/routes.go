package api

import (
	"net/http"
	"strconv"

	"litreview_go_backend/cmd/api/config"
	"litreview_go_backend/internal/auth"
	apperrors "litreview_go_backend/internal/errors"
	"litreview_go_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, userService services.UserService, projectService services.ProjectService, runService services.RunService, paperService services.PaperService) {
	r.GET("/health", healthCheck)

	resolver := auth.NewHeaderCallerResolver(userService)
	projects := r.Group("/projects", auth.AuthMiddleware(resolver))
	{
		projects.GET("", listProjectsHandler(cfg, projectService))
		projects.POST("", createProjectHandler(projectService))
		projects.GET("/:project_id", getProjectHandler(projectService))
		projects.PATCH("/:project_id", updateProjectHandler(projectService))
		projects.DELETE("/:project_id", deleteProjectHandler(projectService))

		projects.GET("/:project_id/runs", listRunsHandler(cfg, projectService, runService))
		projects.POST("/:project_id/runs", createRunHandler(projectService, runService))
		projects.GET("/:project_id/runs/:run_id", getRunHandler(projectService, runService))

		projects.GET("/:project_id/papers", listPapersHandler(cfg, projectService, paperService))
		projects.POST("/:project_id/papers", addPaperHandler(projectService, paperService))
		projects.POST("/:project_id/papers/link", linkPaperHandler(projectService, paperService))
		projects.POST("/:project_id/papers/import", importBibtexHandler(projectService, paperService))
		projects.GET("/:project_id/papers/:paper_id", getPaperHandler(projectService, paperService))
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// pathUUID parses a uuid path parameter.
func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.New400Error("Invalid " + name)
	}
	return id, nil
}

// pagination reads the skip/limit window from the query string, falling back
// to skip=0 and the configured default page size.
func pagination(c *gin.Context, cfg *config.Config) (int, int) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(cfg.DefaultPageSize)))
	if err != nil || limit <= 0 {
		limit = cfg.DefaultPageSize
	}
	if limit > cfg.MaxPageSize {
		limit = cfg.MaxPageSize
	}
	return skip, limit
}
