package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/unisession/internal/app/models"
	"github.com/yigit/unisession/internal/pkg/apperrors"
)

// SubjectService defines the interface for subject operations
type SubjectService interface {
	CreateSubject(ctx context.Context, subject *models.Subject) (*models.Subject, error)
	GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error)
	ListSubjects(ctx context.Context, skip, limit uint64) ([]*models.Subject, error)
	SearchBySimilarity(ctx context.Context, query string, skip, limit uint64) ([]*models.Subject, error)
	SearchByRegex(ctx context.Context, pattern string, skip, limit uint64) ([]*models.Subject, error)
}

type subjectServiceImpl struct {
	subjectRepo    SubjectStore
	departmentRepo DepartmentStore
}

// NewSubjectService creates a new subject service instance
func NewSubjectService(subjectRepo SubjectStore, departmentRepo DepartmentStore) SubjectService {
	return &subjectServiceImpl{
		subjectRepo:    subjectRepo,
		departmentRepo: departmentRepo,
	}
}

// CreateSubject rejects a duplicate name first, then a missing department, then inserts
func (s *subjectServiceImpl) CreateSubject(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	if subject == nil {
		return nil, fmt.Errorf("%w: subject is nil", apperrors.ErrValidationFailed)
	}
	name, err := validateName("Subject", subject.Name)
	if err != nil {
		return nil, err
	}
	if subject.NumHours <= 0 {
		return nil, apperrors.NewValidationError("Number of hours must be a positive number")
	}
	if subject.DepartmentID <= 0 {
		return nil, apperrors.NewValidationError("Department ID must be a positive number")
	}

	existing, err := s.subjectRepo.GetSubjectByName(ctx, name)
	if err != nil && !errors.Is(err, apperrors.ErrSubjectNotFound) {
		return nil, fmt.Errorf("error checking subject name: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrSubjectAlreadyExists
	}

	if _, err := s.departmentRepo.GetDepartmentByID(ctx, subject.DepartmentID); err != nil {
		if errors.Is(err, apperrors.ErrDepartmentNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error checking department: %w", err)
	}

	created := *subject
	created.Name = name
	id, err := s.subjectRepo.CreateSubject(ctx, &created)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrSubjectAlreadyExists, apperrors.ErrDepartmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating subject: %w", err)
	}
	created.ID = id
	return &created, nil
}

// GetSubjectByID retrieves a subject by ID
func (s *subjectServiceImpl) GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid subject ID", apperrors.ErrValidationFailed)
	}

	subject, err := s.subjectRepo.GetSubjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}
	return subject, nil
}

// ListSubjects retrieves a page of subjects
func (s *subjectServiceImpl) ListSubjects(ctx context.Context, skip, limit uint64) ([]*models.Subject, error) {
	subjects, err := s.subjectRepo.ListSubjects(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving subjects: %w", err)
	}
	return subjects, nil
}

// SearchBySimilarity finds subjects whose notes are trigram-similar to query
func (s *subjectServiceImpl) SearchBySimilarity(ctx context.Context, query string, skip, limit uint64) ([]*models.Subject, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.ErrSearchQueryRequired
	}

	subjects, err := s.subjectRepo.SearchSubjectsBySimilarity(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error searching subjects: %w", err)
	}
	return subjects, nil
}

// SearchByRegex finds subjects whose notes match pattern
func (s *subjectServiceImpl) SearchByRegex(ctx context.Context, pattern string, skip, limit uint64) ([]*models.Subject, error) {
	if pattern == "" {
		return nil, apperrors.ErrSearchQueryRequired
	}

	subjects, err := s.subjectRepo.SearchSubjectsByRegex(ctx, pattern, skip, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidSearchPattern) {
			return nil, apperrors.ErrInvalidSearchPattern
		}
		return nil, fmt.Errorf("error searching subjects: %w", err)
	}
	return subjects, nil
}
