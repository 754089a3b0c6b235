package api

import (
	"net/http"

	"litreview_go_backend/cmd/api/config"
	"litreview_go_backend/internal/auth"
	apperrors "litreview_go_backend/internal/errors"
	"litreview_go_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type addPaperRequest struct {
	DOI             *string  `json:"doi"`
	ArxivID         *string  `json:"arxiv_id"`
	Title           string   `json:"title" binding:"required"`
	Authors         []string `json:"authors"`
	Year            *int     `json:"year"`
	Abstract        *string  `json:"abstract"`
	InclusionReason *string  `json:"inclusion_reason"`
	Score           *float64 `json:"score"`
}

type linkPaperRequest struct {
	PaperID         uuid.UUID `json:"paper_id" binding:"required"`
	InclusionReason *string   `json:"inclusion_reason"`
	Score           *float64  `json:"score"`
}

type importBibtexRequest struct {
	Bibtex string `json:"bibtex" binding:"required"`
}

func listPapersHandler(cfg *config.Config, projectService services.ProjectService, paperService services.PaperService) gin.HandlerFunc {
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
		links, err := paperService.ListProjectPapers(projectID, skip, limit)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, links)
	}
}

func addPaperHandler(projectService services.ProjectService, paperService services.PaperService) gin.HandlerFunc {
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
		var req addPaperRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error(err.Error()))
			return
		}
		link, err := paperService.AddPaperToProject(projectID, services.PaperInput{
			DOI:      req.DOI,
			ArxivID:  req.ArxivID,
			Title:    req.Title,
			Authors:  req.Authors,
			Year:     req.Year,
			Abstract: req.Abstract,
		}, services.LinkMetadata{
			InclusionReason: req.InclusionReason,
			Score:           req.Score,
		})
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, link)
	}
}

func linkPaperHandler(projectService services.ProjectService, paperService services.PaperService) gin.HandlerFunc {
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
		var req linkPaperRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error(err.Error()))
			return
		}
		link, err := paperService.LinkPaperByID(projectID, req.PaperID, services.LinkMetadata{
			InclusionReason: req.InclusionReason,
			Score:           req.Score,
		})
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, link)
	}
}

func importBibtexHandler(projectService services.ProjectService, paperService services.PaperService) gin.HandlerFunc {
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
		var req importBibtexRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error(err.Error()))
			return
		}
		result, err := paperService.ImportBibtex(projectID, req.Bibtex)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func getPaperHandler(projectService services.ProjectService, paperService services.PaperService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := pathUUID(c, "project_id")
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		paperID, err := pathUUID(c, "paper_id")
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		if _, err := projectService.GetOwnedProject(projectID, auth.CallerID(c)); err != nil {
			apperrors.HandleError(c, err)
			return
		}
		link, err := paperService.GetProjectPaper(projectID, paperID)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, link)
	}
}
