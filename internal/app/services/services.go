package services

import (
	"context"

	"github.com/yigit/unisession/internal/app/models"
)

// FacultyStore is the persistence contract of FacultyService
type FacultyStore interface {
	CreateFaculty(ctx context.Context, faculty *models.Faculty) (int64, error)
	GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error)
	GetFacultyByName(ctx context.Context, name string) (*models.Faculty, error)
	ListFaculties(ctx context.Context, skip, limit uint64) ([]*models.Faculty, error)
}

// DepartmentStore is the persistence contract of DepartmentService
type DepartmentStore interface {
	CreateDepartment(ctx context.Context, department *models.Department) (int64, error)
	GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error)
	GetDepartmentByName(ctx context.Context, name string) (*models.Department, error)
	ListDepartments(ctx context.Context, skip, limit uint64) ([]*models.Department, error)
}

// TeacherStore is the persistence contract of TeacherService
type TeacherStore interface {
	CreateTeacher(ctx context.Context, teacher *models.Teacher) (int64, error)
	GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error)
	GetTeacherByName(ctx context.Context, name string) (*models.Teacher, error)
	ListTeachers(ctx context.Context, skip, limit uint64) ([]*models.Teacher, error)
}

// GroupStore is the persistence contract of GroupService
type GroupStore interface {
	CreateGroup(ctx context.Context, group *models.Group) (int64, error)
	GetGroupByID(ctx context.Context, id int64) (*models.Group, error)
	GetGroupByCode(ctx context.Context, code string) (*models.Group, error)
	ListGroups(ctx context.Context, skip, limit uint64) ([]*models.Group, error)
	SearchGroups(ctx context.Context, filter models.GroupSearchFilter) ([]*models.Group, error)
	PromoteGroups(ctx context.Context, currentCourse int) (int64, error)
}

// SubjectStore is the persistence contract of SubjectService
type SubjectStore interface {
	CreateSubject(ctx context.Context, subject *models.Subject) (int64, error)
	GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error)
	GetSubjectByName(ctx context.Context, name string) (*models.Subject, error)
	ListSubjects(ctx context.Context, skip, limit uint64) ([]*models.Subject, error)
	SearchSubjectsBySimilarity(ctx context.Context, query string, skip, limit uint64) ([]*models.Subject, error)
	SearchSubjectsByRegex(ctx context.Context, pattern string, skip, limit uint64) ([]*models.Subject, error)
}

// SessionStore is the persistence contract of SessionService
type SessionStore interface {
	CreateSession(ctx context.Context, session *models.Session) (int64, error)
	GetSessionByID(ctx context.Context, id int64) (*models.Session, error)
	ListSessions(ctx context.Context, skip, limit uint64) ([]*models.Session, error)
	ListSessionDetails(ctx context.Context, skip, limit uint64) ([]*models.SessionDetails, error)
}

// ReportStore is the persistence contract of ReportService
type ReportStore interface {
	StudentsPerFaculty(ctx context.Context) ([]*models.FacultyStats, error)
}

// Store is satisfied by both the in-memory store and the PostgreSQL repositories bundle
type Store interface {
	FacultyStore
	DepartmentStore
	TeacherStore
	GroupStore
	SubjectStore
	SessionStore
	ReportStore
}

// Services bundles every service of the API
type Services struct {
	Faculty    FacultyService
	Department DepartmentService
	Teacher    TeacherService
	Group      GroupService
	Subject    SubjectService
	Session    SessionService
	Report     ReportService
}

// NewServices wires every service against a single store
func NewServices(store Store) *Services {
	return &Services{
		Faculty:    NewFacultyService(store),
		Department: NewDepartmentService(store),
		Teacher:    NewTeacherService(store),
		Group:      NewGroupService(store, store),
		Subject:    NewSubjectService(store, store),
		Session:    NewSessionService(store, store, store, store),
		Report:     NewReportService(store),
	}
}
