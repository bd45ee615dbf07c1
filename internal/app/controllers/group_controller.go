package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unisession/internal/app/models/dto"
	"github.com/yigit/unisession/internal/app/services"
	"github.com/yigit/unisession/internal/middleware"
	"github.com/yigit/unisession/internal/pkg/helpers"
)

// GroupController handles student group operations
type GroupController struct {
	groupService services.GroupService
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService services.GroupService) *GroupController {
	return &GroupController{groupService: groupService}
}

// CreateGroup handles group creation
// @Summary Create a new group
// @Description Creates a student group. The code must be unique and the faculty must exist.
// @Tags groups
// @Accept json
// @Produce json
// @Param request body dto.CreateGroupRequest true "Group information"
// @Success 201 {object} dto.APIResponse{data=models.Group} "Group created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Failure 409 {object} dto.ErrorResponse "Group code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/ [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	var req dto.CreateGroupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	group, err := c.groupService.CreateGroup(ctx, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(group))
}

// GetGroupByID retrieves a group by ID
// @Summary Get group details
// @Tags groups
// @Produce json
// @Param id path int true "Group ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Group}
// @Failure 400 {object} dto.ErrorResponse "Invalid group ID format"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [get]
func (c *GroupController) GetGroupByID(ctx *gin.Context) {
	id, ok := helpers.ParseID(ctx.Param("id"))
	if !ok {
		middleware.InvalidID(ctx, "Group")
		return
	}

	group, err := c.groupService.GetGroupByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(group))
}

// ListGroups retrieves a page of groups
// @Summary List groups
// @Tags groups
// @Produce json
// @Param skip query int false "Records to skip" default(0) minimum(0)
// @Param limit query int false "Maximum records to return" default(100) minimum(1) maximum(1000)
// @Success 200 {object} dto.APIResponse{data=[]models.Group}
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination parameters"
// @Router /groups/ [get]
func (c *GroupController) ListGroups(ctx *gin.Context) {
	page := helpers.NewPaginationQuery(helpers.DefaultLimit)
	if !middleware.BindQuery(ctx, &page) {
		return
	}
	skip, limit := helpers.SkipLimit(page)

	groups, err := c.groupService.ListGroups(ctx, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(groups))
}

// SearchGroups filters and sorts groups
// @Summary Search groups
// @Description Filters groups by faculty and minimum size. sort_by accepts code, course or num_students; any other value is ignored.
// @Tags groups
// @Produce json
// @Param faculty_id query int false "Faculty ID filter"
// @Param min_students query int false "Minimum number of students" minimum(0)
// @Param sort_by query string false "Sort field" Enums(code, course, num_students)
// @Param skip query int false "Records to skip" default(0) minimum(0)
// @Param limit query int false "Maximum records to return" default(100) minimum(1) maximum(1000)
// @Success 200 {object} dto.APIResponse{data=[]models.Group}
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Router /groups/search/ [get]
func (c *GroupController) SearchGroups(ctx *gin.Context) {
	query := dto.GroupSearchQuery{PaginationQuery: helpers.NewPaginationQuery(helpers.DefaultLimit)}
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	skip, limit := helpers.SkipLimit(query.PaginationQuery)

	groups, err := c.groupService.SearchGroups(ctx, services.GroupQuery{
		FacultyID:   query.FacultyID,
		MinStudents: query.MinStudents,
		SortBy:      query.SortBy,
		Skip:        skip,
		Limit:       limit,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(groups))
}

// PromoteGroups moves every group of a course to the next course
// @Summary Promote groups
// @Description Increments the course of every group currently in current_course
// @Tags groups
// @Produce json
// @Param current_course query int true "Course to promote" minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.PromoteGroupsResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid course"
// @Failure 404 {object} dto.ErrorResponse "No groups in the course"
// @Router /groups/promote/ [put]
func (c *GroupController) PromoteGroups(ctx *gin.Context) {
	var query dto.PromoteGroupsQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	updated, err := c.groupService.PromoteGroups(ctx, query.CurrentCourse)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewPromoteGroupsResponse(query.CurrentCourse, updated)))
}
