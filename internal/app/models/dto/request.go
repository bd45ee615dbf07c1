package dto

import (
	"github.com/yigit/unisession/internal/app/models"
	_ "github.com/yigit/unisession/internal/pkg/validation" // registers custom binding tags
)

// CreateFacultyRequest represents faculty creation data
type CreateFacultyRequest struct {
	Name string `json:"name" binding:"required,notblank,max=200" example:"Computer Science"`
}

// CreateDepartmentRequest represents department creation data
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,notblank,max=200" example:"Software Engineering"`
}

// CreateTeacherRequest represents teacher creation data
type CreateTeacherRequest struct {
	Name string `json:"name" binding:"required,notblank,max=200" example:"Dr. Alan Turing"`
}

// CreateGroupRequest represents group creation data
type CreateGroupRequest struct {
	Code        string `json:"code" binding:"required,notblank,max=50" example:"CS-101"`
	Course      int    `json:"course" binding:"required,gt=0" example:"1"`
	NumStudents int    `json:"num_students" binding:"required,gt=0" example:"25"`
	FacultyID   int64  `json:"faculty_id" binding:"required,gt=0" example:"1"`
}

// ToModel converts the request into a Group
func (r CreateGroupRequest) ToModel() *models.Group {
	return &models.Group{
		Code:        r.Code,
		Course:      r.Course,
		NumStudents: r.NumStudents,
		FacultyID:   r.FacultyID,
	}
}

// CreateSubjectRequest represents subject creation data
type CreateSubjectRequest struct {
	Name         string                 `json:"name" binding:"required,notblank,max=200" example:"Introduction to Algorithms"`
	NumHours     int                    `json:"num_hours" binding:"required,gt=0" example:"64"`
	DepartmentID int64                  `json:"department_id" binding:"required,gt=0" example:"1"`
	Extra        map[string]interface{} `json:"extra"`
}

// ToModel converts the request into a Subject
func (r CreateSubjectRequest) ToModel() *models.Subject {
	return &models.Subject{
		Name:         r.Name,
		NumHours:     r.NumHours,
		DepartmentID: r.DepartmentID,
		Extra:        r.Extra,
	}
}

// CreateSessionRequest represents session creation data
type CreateSessionRequest struct {
	GroupID     int64       `json:"group_id" binding:"required,gt=0" example:"1"`
	SubjectID   int64       `json:"subject_id" binding:"required,gt=0" example:"1"`
	TeacherID   int64       `json:"teacher_id" binding:"required,gt=0" example:"1"`
	ControlType string      `json:"control_type" binding:"required,notblank,max=100" example:"exam"`
	SessionDate models.Date `json:"session_date" swaggertype:"string" format:"date" example:"2025-01-20"`
}

// ToModel converts the request into a Session
func (r CreateSessionRequest) ToModel() *models.Session {
	return &models.Session{
		GroupID:     r.GroupID,
		SubjectID:   r.SubjectID,
		TeacherID:   r.TeacherID,
		ControlType: r.ControlType,
		SessionDate: r.SessionDate,
	}
}

// PaginationQuery is the skip/limit pair accepted by every list endpoint
type PaginationQuery struct {
	Skip  int `form:"skip" binding:"gte=0"`
	Limit int `form:"limit" binding:"gte=1"`
}

// GroupSearchQuery holds the query string of GET /groups/search/
type GroupSearchQuery struct {
	PaginationQuery
	FacultyID   int64  `form:"faculty_id" binding:"gte=0"`
	MinStudents int    `form:"min_students" binding:"gte=0"`
	SortBy      string `form:"sort_by"`
}

// PromoteGroupsQuery holds the query string of PUT /groups/promote/
type PromoteGroupsQuery struct {
	CurrentCourse int `form:"current_course" binding:"required,gt=0"`
}

// TrigramSearchQuery holds the query string of GET /subjects/search-trgm/
type TrigramSearchQuery struct {
	PaginationQuery
	Query string `form:"query" binding:"required"`
}

// RegexSearchQuery holds the query string of GET /subjects/search-regex/
type RegexSearchQuery struct {
	PaginationQuery
	Pattern string `form:"pattern" binding:"required"`
}
