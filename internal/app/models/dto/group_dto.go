package dto

import "fmt"

// PromoteGroupsResponse reports the outcome of a course promotion
type PromoteGroupsResponse struct {
	CurrentCourse int    `json:"current_course" example:"1"`
	UpdatedCount  int64  `json:"updated_count" example:"12"`
	Message       string `json:"message" example:"Promoted 12 groups from course 1."`
}

// NewPromoteGroupsResponse builds the promotion summary
func NewPromoteGroupsResponse(course int, updated int64) PromoteGroupsResponse {
	return PromoteGroupsResponse{
		CurrentCourse: course,
		UpdatedCount:  updated,
		Message:       fmt.Sprintf("Promoted %d groups from course %d.", updated, course),
	}
}
