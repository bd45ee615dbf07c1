package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/unisession/internal/app/models"
	"github.com/yigit/unisession/internal/pkg/apperrors"
)

// FacultyService defines the interface for faculty-related operations
type FacultyService interface {
	CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error)
	GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error)
	ListFaculties(ctx context.Context, skip, limit uint64) ([]*models.Faculty, error)
}

// facultyServiceImpl implements the FacultyService interface
type facultyServiceImpl struct {
	facultyRepo FacultyStore
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo FacultyStore) FacultyService {
	return &facultyServiceImpl{
		facultyRepo: facultyRepo,
	}
}

// validateName trims name and rejects blank values
func validateName(entity, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.NewValidationError(fmt.Sprintf("%s name cannot be empty", entity))
	}
	return name, nil
}

// CreateFaculty creates a new faculty after checking the name is not taken
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	if faculty == nil {
		return nil, fmt.Errorf("%w: faculty is nil", apperrors.ErrValidationFailed)
	}
	name, err := validateName("Faculty", faculty.Name)
	if err != nil {
		return nil, err
	}

	existing, err := s.facultyRepo.GetFacultyByName(ctx, name)
	if err != nil && !errors.Is(err, apperrors.ErrFacultyNotFound) {
		return nil, fmt.Errorf("error checking faculty name: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrFacultyAlreadyExists
	}

	created := &models.Faculty{Name: name}
	id, err := s.facultyRepo.CreateFaculty(ctx, created)
	if err != nil {
		if errors.Is(err, apperrors.ErrFacultyAlreadyExists) {
			return nil, apperrors.ErrFacultyAlreadyExists
		}
		return nil, fmt.Errorf("error creating faculty: %w", err)
	}
	created.ID = id
	return created, nil
}

// GetFacultyByID retrieves a faculty by ID
func (s *facultyServiceImpl) GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid faculty ID", apperrors.ErrValidationFailed)
	}

	faculty, err := s.facultyRepo.GetFacultyByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrFacultyNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty: %w", err)
	}
	return faculty, nil
}

// ListFaculties retrieves a page of faculties
func (s *facultyServiceImpl) ListFaculties(ctx context.Context, skip, limit uint64) ([]*models.Faculty, error) {
	faculties, err := s.facultyRepo.ListFaculties(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving faculties: %w", err)
	}
	return faculties, nil
}
