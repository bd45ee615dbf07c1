package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unisession/internal/app/models"
	"github.com/yigit/unisession/internal/app/models/dto"
	"github.com/yigit/unisession/internal/app/services"
	"github.com/yigit/unisession/internal/middleware"
	"github.com/yigit/unisession/internal/pkg/helpers"
)

// FacultyController handles faculty-related operations
type FacultyController struct {
	facultyService services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService services.FacultyService) *FacultyController {
	return &FacultyController{
		facultyService: facultyService,
	}
}

// CreateFaculty handles faculty creation
// @Summary Create a new faculty
// @Description Creates a new faculty. Faculty names are unique.
// @Tags faculties
// @Accept json
// @Produce json
// @Param request body dto.CreateFacultyRequest true "Faculty information"
// @Success 201 {object} dto.APIResponse{data=models.Faculty} "Faculty created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Faculty already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculties/ [post]
func (c *FacultyController) CreateFaculty(ctx *gin.Context) {
	var req dto.CreateFacultyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	faculty, err := c.facultyService.CreateFaculty(ctx, &models.Faculty{Name: req.Name})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(faculty))
}

// GetFacultyByID retrieves a faculty by ID
// @Summary Get faculty details
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Faculty} "Faculty retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty ID format"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculties/{id} [get]
func (c *FacultyController) GetFacultyByID(ctx *gin.Context) {
	id, ok := helpers.ParseID(ctx.Param("id"))
	if !ok {
		middleware.InvalidID(ctx, "Faculty")
		return
	}

	faculty, err := c.facultyService.GetFacultyByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(faculty))
}

// ListFaculties retrieves a page of faculties
// @Summary List faculties
// @Description Lists faculties in ID order
// @Tags faculties
// @Produce json
// @Param skip query int false "Records to skip" default(0) minimum(0)
// @Param limit query int false "Maximum records to return" default(100) minimum(1) maximum(1000)
// @Success 200 {object} dto.APIResponse{data=[]models.Faculty} "Faculties retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculties/ [get]
func (c *FacultyController) ListFaculties(ctx *gin.Context) {
	page := helpers.NewPaginationQuery(helpers.DefaultLimit)
	if !middleware.BindQuery(ctx, &page) {
		return
	}
	skip, limit := helpers.SkipLimit(page)

	faculties, err := c.facultyService.ListFaculties(ctx, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(faculties))
}
