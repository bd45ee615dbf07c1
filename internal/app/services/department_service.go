package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/unisession/internal/app/models"
	"github.com/yigit/unisession/internal/pkg/apperrors"
)

// DepartmentService defines the interface for department-related operations
type DepartmentService interface {
	CreateDepartment(ctx context.Context, department *models.Department) (*models.Department, error)
	GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error)
	ListDepartments(ctx context.Context, skip, limit uint64) ([]*models.Department, error)
}

type departmentServiceImpl struct {
	departmentRepo DepartmentStore
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo DepartmentStore) DepartmentService {
	return &departmentServiceImpl{departmentRepo: departmentRepo}
}

// CreateDepartment creates a new department after checking the name is not taken
func (s *departmentServiceImpl) CreateDepartment(ctx context.Context, department *models.Department) (*models.Department, error) {
	if department == nil {
		return nil, fmt.Errorf("%w: department is nil", apperrors.ErrValidationFailed)
	}
	name, err := validateName("Department", department.Name)
	if err != nil {
		return nil, err
	}

	existing, err := s.departmentRepo.GetDepartmentByName(ctx, name)
	if err != nil && !errors.Is(err, apperrors.ErrDepartmentNotFound) {
		return nil, fmt.Errorf("error checking department name: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrDepartmentAlreadyExists
	}

	created := &models.Department{Name: name}
	id, err := s.departmentRepo.CreateDepartment(ctx, created)
	if err != nil {
		if errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			return nil, apperrors.ErrDepartmentAlreadyExists
		}
		return nil, fmt.Errorf("error creating department: %w", err)
	}
	created.ID = id
	return created, nil
}

// GetDepartmentByID retrieves a department by ID
func (s *departmentServiceImpl) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid department ID", apperrors.ErrValidationFailed)
	}

	department, err := s.departmentRepo.GetDepartmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrDepartmentNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	return department, nil
}

// ListDepartments retrieves a page of departments
func (s *departmentServiceImpl) ListDepartments(ctx context.Context, skip, limit uint64) ([]*models.Department, error) {
	departments, err := s.departmentRepo.ListDepartments(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}
	return departments, nil
}
