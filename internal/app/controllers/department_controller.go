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

// DepartmentController handles department-related operations
type DepartmentController struct {
	departmentService services.DepartmentService
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(departmentService services.DepartmentService) *DepartmentController {
	return &DepartmentController{
		departmentService: departmentService,
	}
}

// CreateDepartment handles department creation
// @Summary Create a new department
// @Description Creates a new department. Department names are unique.
// @Tags departments
// @Accept json
// @Produce json
// @Param request body dto.CreateDepartmentRequest true "Department information"
// @Success 201 {object} dto.APIResponse{data=models.Department} "Department created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Department already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/ [post]
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var req dto.CreateDepartmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	department, err := c.departmentService.CreateDepartment(ctx, &models.Department{Name: req.Name})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(department))
}

// GetDepartmentByID retrieves a department by ID
// @Summary Get department details
// @Tags departments
// @Produce json
// @Param id path int true "Department ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Department} "Department retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID format"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /departments/{id} [get]
func (c *DepartmentController) GetDepartmentByID(ctx *gin.Context) {
	id, ok := helpers.ParseID(ctx.Param("id"))
	if !ok {
		middleware.InvalidID(ctx, "Department")
		return
	}

	department, err := c.departmentService.GetDepartmentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(department))
}

// ListDepartments retrieves a page of departments
// @Summary List departments
// @Tags departments
// @Produce json
// @Param skip query int false "Records to skip" default(0) minimum(0)
// @Param limit query int false "Maximum records to return" default(100) minimum(1) maximum(1000)
// @Success 200 {object} dto.APIResponse{data=[]models.Department} "Departments retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination parameters"
// @Router /departments/ [get]
func (c *DepartmentController) ListDepartments(ctx *gin.Context) {
	page := helpers.NewPaginationQuery(helpers.DefaultLimit)
	if !middleware.BindQuery(ctx, &page) {
		return
	}
	skip, limit := helpers.SkipLimit(page)

	departments, err := c.departmentService.ListDepartments(ctx, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(departments))
}
