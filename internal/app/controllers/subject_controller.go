package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unisession/internal/app/models/dto"
	"github.com/yigit/unisession/internal/app/services"
	"github.com/yigit/unisession/internal/middleware"
	"github.com/yigit/unisession/internal/pkg/helpers"
)

// SubjectController handles subject operations
type SubjectController struct {
	subjectService services.SubjectService
}

// NewSubjectController creates a new SubjectController
func NewSubjectController(subjectService services.SubjectService) *SubjectController {
	return &SubjectController{subjectService: subjectService}
}

// CreateSubject handles subject creation
// @Summary Create a new subject
// @Description Creates a subject. The name must be unique and the department must exist. extra is free-form JSON; extra.notes is searchable.
// @Tags subjects
// @Accept json
// @Produce json
// @Param request body dto.CreateSubjectRequest true "Subject information"
// @Success 201 {object} dto.APIResponse{data=models.Subject}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Subject already exists"
// @Router /subjects/ [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req dto.CreateSubjectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	subject, err := c.subjectService.CreateSubject(ctx, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(subject))
}

// GetSubjectByID retrieves a subject by ID
// @Summary Get subject details
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Subject}
// @Failure 400 {object} dto.ErrorResponse "Invalid subject ID format"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /subjects/{id} [get]
func (c *SubjectController) GetSubjectByID(ctx *gin.Context) {
	id, ok := helpers.ParseID(ctx.Param("id"))
	if !ok {
		middleware.InvalidID(ctx, "Subject")
		return
	}

	subject, err := c.subjectService.GetSubjectByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subject))
}

// ListSubjects retrieves a page of subjects
// @Summary List subjects
// @Tags subjects
// @Produce json
// @Param skip query int false "Records to skip" default(0) minimum(0)
// @Param limit query int false "Maximum records to return" default(100) minimum(1) maximum(1000)
// @Success 200 {object} dto.APIResponse{data=[]models.Subject}
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination parameters"
// @Router /subjects/ [get]
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	page := helpers.NewPaginationQuery(helpers.DefaultLimit)
	if !middleware.BindQuery(ctx, &page) {
		return
	}
	skip, limit := helpers.SkipLimit(page)

	subjects, err := c.subjectService.ListSubjects(ctx, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subjects))
}

// SearchSubjectsTrigram finds subjects with notes similar to a phrase
// @Summary Trigram search over subject notes
// @Description Returns subjects whose extra.notes is trigram-similar to query, most similar first
// @Tags subjects
// @Produce json
// @Param query query string true "Search phrase"
// @Param skip query int false "Records to skip" default(0) minimum(0)
// @Param limit query int false "Maximum records to return" default(100) minimum(1) maximum(1000)
// @Success 200 {object} dto.APIResponse{data=[]models.Subject}
// @Failure 400 {object} dto.ErrorResponse "Missing query"
// @Router /subjects/search-trgm/ [get]
func (c *SubjectController) SearchSubjectsTrigram(ctx *gin.Context) {
	query := dto.TrigramSearchQuery{PaginationQuery: helpers.NewPaginationQuery(helpers.DefaultLimit)}
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	skip, limit := helpers.SkipLimit(query.PaginationQuery)

	subjects, err := c.subjectService.SearchBySimilarity(ctx, query.Query, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subjects))
}

// SearchSubjectsRegex finds subjects whose notes match a regular expression
// @Summary Regular expression search over subject notes
// @Description Returns subjects whose extra.notes matches pattern (case-sensitive)
// @Tags subjects
// @Produce json
// @Param pattern query string true "Regular expression"
// @Param skip query int false "Records to skip" default(0) minimum(0)
// @Param limit query int false "Maximum records to return" default(100) minimum(1) maximum(1000)
// @Success 200 {object} dto.APIResponse{data=[]models.Subject}
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid pattern"
// @Router /subjects/search-regex/ [get]
func (c *SubjectController) SearchSubjectsRegex(ctx *gin.Context) {
	query := dto.RegexSearchQuery{PaginationQuery: helpers.NewPaginationQuery(helpers.DefaultLimit)}
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	skip, limit := helpers.SkipLimit(query.PaginationQuery)

	subjects, err := c.subjectService.SearchByRegex(ctx, query.Pattern, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subjects))
}
