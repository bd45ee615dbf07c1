package seed

import (
	"context"

	"github.com/yigit/unisession/internal/app/models"
	"github.com/yigit/unisession/internal/app/models/dto"
	"github.com/yigit/unisession/internal/app/services"
)

// ServiceTarget seeds in-process through the service layer, so every record
// passes the same validation and existence checks as an API call.
type ServiceTarget struct {
	svc *services.Services
}

// NewServiceTarget creates a Target backed by the application services
func NewServiceTarget(svc *services.Services) *ServiceTarget {
	return &ServiceTarget{svc: svc}
}

func (t *ServiceTarget) CreateFaculty(ctx context.Context, req dto.CreateFacultyRequest) (int64, error) {
	f, err := t.svc.Faculty.CreateFaculty(ctx, &models.Faculty{Name: req.Name})
	if err != nil {
		return 0, err
	}
	return f.ID, nil
}

func (t *ServiceTarget) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (int64, error) {
	d, err := t.svc.Department.CreateDepartment(ctx, &models.Department{Name: req.Name})
	if err != nil {
		return 0, err
	}
	return d.ID, nil
}

func (t *ServiceTarget) CreateTeacher(ctx context.Context, req dto.CreateTeacherRequest) (int64, error) {
	tc, err := t.svc.Teacher.CreateTeacher(ctx, &models.Teacher{Name: req.Name})
	if err != nil {
		return 0, err
	}
	return tc.ID, nil
}

func (t *ServiceTarget) CreateGroup(ctx context.Context, req dto.CreateGroupRequest) (int64, error) {
	g, err := t.svc.Group.CreateGroup(ctx, req.ToModel())
	if err != nil {
		return 0, err
	}
	return g.ID, nil
}

func (t *ServiceTarget) CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (int64, error) {
	s, err := t.svc.Subject.CreateSubject(ctx, req.ToModel())
	if err != nil {
		return 0, err
	}
	return s.ID, nil
}

func (t *ServiceTarget) CreateSession(ctx context.Context, req dto.CreateSessionRequest) (int64, error) {
	s, err := t.svc.Session.CreateSession(ctx, req.ToModel())
	if err != nil {
		return 0, err
	}
	return s.ID, nil
}
