package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unisession/internal/app/models/dto"
	"github.com/yigit/unisession/internal/app/services"
	"github.com/yigit/unisession/internal/middleware"
	"github.com/yigit/unisession/internal/pkg/helpers"
)

// SessionController handles class session operations
type SessionController struct {
	sessionService services.SessionService
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService services.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// CreateSession handles session creation
// @Summary Create a new session
// @Description Creates a session. Group, subject and teacher must exist.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest true "Session information"
// @Success 201 {object} dto.APIResponse{data=models.Session}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Group, subject or teacher not found"
// @Router /sessions/ [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	var req dto.CreateSessionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	session, err := c.sessionService.CreateSession(ctx, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(session))
}

// GetSessionByID retrieves a session by ID
// @Summary Get session details
// @Tags sessions
// @Produce json
// @Param id path int true "Session ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Session}
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID format"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id} [get]
func (c *SessionController) GetSessionByID(ctx *gin.Context) {
	id, ok := helpers.ParseID(ctx.Param("id"))
	if !ok {
		middleware.InvalidID(ctx, "Session")
		return
	}

	session, err := c.sessionService.GetSessionByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(session))
}

// ListSessions retrieves a page of sessions
// @Summary List sessions
// @Tags sessions
// @Produce json
// @Param skip query int false "Records to skip" default(0) minimum(0)
// @Param limit query int false "Maximum records to return" default(100) minimum(1) maximum(1000)
// @Success 200 {object} dto.APIResponse{data=[]models.Session}
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination parameters"
// @Router /sessions/ [get]
func (c *SessionController) ListSessions(ctx *gin.Context) {
	page := helpers.NewPaginationQuery(helpers.DefaultLimit)
	if !middleware.BindQuery(ctx, &page) {
		return
	}
	skip, limit := helpers.SkipLimit(page)

	sessions, err := c.sessionService.ListSessions(ctx, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sessions))
}

// ListSessionDetails retrieves sessions with their group, subject and teacher
// @Summary List sessions with related records
// @Tags sessions
// @Produce json
// @Param skip query int false "Records to skip" default(0) minimum(0)
// @Param limit query int false "Maximum records to return" default(10) minimum(1) maximum(1000)
// @Success 200 {object} dto.APIResponse{data=[]models.SessionDetails}
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination parameters"
// @Router /sessions/details/ [get]
func (c *SessionController) ListSessionDetails(ctx *gin.Context) {
	page := helpers.NewPaginationQuery(helpers.DefaultDetailsLimit)
	if !middleware.BindQuery(ctx, &page) {
		return
	}
	skip, limit := helpers.SkipLimit(page)

	details, err := c.sessionService.ListSessionDetails(ctx, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(details))
}
