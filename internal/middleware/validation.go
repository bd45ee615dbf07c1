package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unisession/internal/app/models/dto"
)

// BindJSON binds and validates the request body into obj. On failure it writes
// a 400 response and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// BindQuery binds and validates the query string into obj. Fields whose keys
// are absent keep their preset values, so callers preset defaults first.
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// InvalidID writes the 400 response for a malformed path identifier
func InvalidID(c *gin.Context, entity string) {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+entity+" ID").
		WithField("id").
		WithDetails(entity + " ID must be a positive integer")
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}
